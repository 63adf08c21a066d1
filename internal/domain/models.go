package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document represents one scanned document record moving through the
// pipeline. It is created at intake and advanced monotonically through the
// stage chain; this core never deletes it.
type Document struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	ImageName     string          `db:"image_name" json:"image_name"`
	BatchName     string          `db:"batch_name" json:"batch_name"`
	S3Bucket      string          `db:"s3_bucket" json:"s3_bucket"`
	S3Key         string          `db:"s3_key" json:"s3_key"`
	ContentType   string          `db:"content_type" json:"content_type"`
	Status        Status          `db:"status" json:"status"`
	RawText       string          `db:"raw_text" json:"raw_text"`
	ProcessedData json.RawMessage `db:"processed_data" json:"processed_data"`
	ErrorMessage  string          `db:"error_message" json:"error_message"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Default display metadata used when a record arrives without grouping info.
const (
	DefaultImageName = "unknown.TIF"
	DefaultBatchName = "unassigned"
)

// DisplayImageName returns the image name, defaulted if absent.
func (d *Document) DisplayImageName() string {
	if d.ImageName == "" {
		return DefaultImageName
	}
	return d.ImageName
}

// DisplayBatchName returns the batch name, defaulted if absent.
func (d *Document) DisplayBatchName() string {
	if d.BatchName == "" {
		return DefaultBatchName
	}
	return d.BatchName
}

// ExtractionResult is the structured outcome for a single schema field.
// Value is uppercase or the schema's missing sentinel; Flags is never empty.
type ExtractionResult struct {
	Value      string   `json:"value"`
	Confidence int      `json:"confidence"`
	Flags      []string `json:"flags"`
}

// FieldCandidate is one entry of a raw oracle response before
// normalization. Oracles return either the full structured shape or a bare
// scalar; the two cases are tagged here so normalization happens in exactly
// one place.
type FieldCandidate struct {
	Structured *ExtractionResult
	Scalar     string
}

// StructuredCandidate wraps an ExtractionResult as a candidate.
func StructuredCandidate(value string, confidence int, flags ...string) FieldCandidate {
	return FieldCandidate{Structured: &ExtractionResult{
		Value:      value,
		Confidence: confidence,
		Flags:      flags,
	}}
}

// ScalarCandidate wraps a bare value as a candidate.
func ScalarCandidate(value string) FieldCandidate {
	return FieldCandidate{Scalar: value}
}

// UnmarshalJSON accepts either the structured {value, confidence, flags}
// object or a bare scalar (string, number, bool).
func (c *FieldCandidate) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var res struct {
			Value      json.RawMessage `json:"value"`
			Confidence int             `json:"confidence"`
			Flags      []string        `json:"flags"`
		}
		if err := json.Unmarshal(data, &res); err != nil {
			return fmt.Errorf("decoding field candidate: %w", err)
		}
		c.Structured = &ExtractionResult{
			Value:      scalarString(res.Value),
			Confidence: res.Confidence,
			Flags:      res.Flags,
		}
		return nil
	}
	c.Scalar = scalarString(data)
	return nil
}

// scalarString renders a raw JSON scalar as its plain string form.
// null and absent values become the empty string.
func scalarString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}
