// Package normalize reduces raw oracle output to the canonical formatted
// record for a schema. Normalize is total: whatever shape the raw
// extraction takes, the result always carries exactly one column per
// schema slot.
package normalize

import (
	"strings"

	"deedflow/internal/domain"
	"deedflow/internal/schema"
)

// Delimiter separates columns in formatted records. Embedded delimiters in
// values are not escaped; this is a known limitation of the load format.
const Delimiter = "|"

// DefaultHeaderID is the image header id column emitted for every record.
const DefaultHeaderID = "1"

// Identity carries the leading display columns of a formatted record.
type Identity struct {
	ImageName string
	BatchName string
	HeaderID  string
}

// Record is the normalized structured precursor of one output line. Fields
// holds one ExtractionResult per schema field; the formatted line is a pure
// function of Identity, Fields, and the schema.
type Record struct {
	Identity Identity
	Schema   *schema.Schema
	Fields   map[string]domain.ExtractionResult
	Complete bool
}

// Normalize produces the canonical record for the given schema and raw
// extraction mapping. It never fails and never panics on malformed input.
func Normalize(s *schema.Schema, id Identity, raw map[string]domain.FieldCandidate) *Record {
	if id.HeaderID == "" {
		id.HeaderID = DefaultHeaderID
	}

	fields := make(map[string]domain.ExtractionResult, len(s.Fields))
	complete := true
	for _, def := range s.Fields {
		candidate, ok := raw[def.Name]
		res := normalizeField(s, def, candidate, ok)
		fields[def.Name] = res
		if def.Required && res.Value == s.Sentinel {
			complete = false
		}
	}

	return &Record{
		Identity: id,
		Schema:   s,
		Fields:   fields,
		Complete: complete,
	}
}

func normalizeField(s *schema.Schema, def schema.FieldDef, c domain.FieldCandidate, found bool) domain.ExtractionResult {
	if !found {
		return domain.ExtractionResult{
			Value:      s.Sentinel,
			Confidence: 0,
			Flags:      []string{domain.FlagFieldNotFound},
		}
	}

	if c.Structured == nil {
		// Bare scalar: coerce into the structured shape with the fixed
		// normalized confidence.
		return domain.ExtractionResult{
			Value:      normalizeValue(s, def, c.Scalar, nil),
			Confidence: domain.NormalizedConfidence,
			Flags:      []string{domain.FlagValueNormalized},
		}
	}

	flags := normalizeFlags(c.Structured.Flags)
	var extra []string
	value := normalizeValue(s, def, c.Structured.Value, &extra)
	return domain.ExtractionResult{
		Value:      value,
		Confidence: c.Structured.Confidence,
		Flags:      append(flags, extra...),
	}
}

// normalizeValue uppercases the string form of a value; an empty value
// becomes the schema sentinel. Values longer than the field's MaxLength are
// flagged, never truncated or rejected.
func normalizeValue(s *schema.Schema, def schema.FieldDef, v string, extraFlags *[]string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return s.Sentinel
	}
	if def.MaxLength > 0 && len(v) > def.MaxLength && extraFlags != nil {
		*extraFlags = append(*extraFlags, domain.FlagLengthExceeded)
	}
	return v
}

// normalizeFlags uppercases flag tokens and guarantees a non-empty set.
func normalizeFlags(flags []string) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		f = strings.ToUpper(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = append(out, domain.FlagNoFlags)
	}
	return out
}

// FailedExtraction builds the full-schema failure mapping: every declared
// field carries the sentinel value, confidence 0, and the given taxonomy
// flag. Passing it through Normalize yields a row of the exact expected
// column count, so a failed oracle call still produces well-formed output.
func FailedExtraction(s *schema.Schema, flag string) map[string]domain.FieldCandidate {
	raw := make(map[string]domain.FieldCandidate, len(s.Fields))
	for _, def := range s.Fields {
		raw[def.Name] = domain.StructuredCandidate(s.Sentinel, 0, flag)
	}
	return raw
}

// Columns renders the record's column values: identity, field values in
// schema order, confidence labels in the same order, then the trailer.
func (r *Record) Columns() []string {
	cols := make([]string, 0, r.Schema.ColumnCount())
	cols = append(cols, r.Identity.ImageName, r.Identity.BatchName, r.Identity.HeaderID)
	for _, def := range r.Schema.Fields {
		cols = append(cols, r.Fields[def.Name].Value)
	}
	for _, def := range r.Schema.Fields {
		cols = append(cols, domain.BucketConfidence(r.Fields[def.Name].Confidence))
	}
	for _, t := range r.Schema.Trailer {
		cols = append(cols, t.Value)
	}
	return cols
}

// Line renders the record as a single pipe-delimited output line.
func (r *Record) Line() string {
	return strings.Join(r.Columns(), Delimiter)
}

// HeaderFor renders the header line for a schema: same column count and
// order as Columns, carrying names instead of values. Confidence columns
// are prefixed CL_.
func HeaderFor(s *schema.Schema) string {
	cols := make([]string, 0, s.ColumnCount())
	cols = append(cols, "ImageName", "BatchName", "ImageHeaderID")
	for _, def := range s.Fields {
		cols = append(cols, def.Name)
	}
	for _, def := range s.Fields {
		cols = append(cols, "CL_"+def.Name)
	}
	for _, t := range s.Trailer {
		cols = append(cols, t.Name)
	}
	return strings.Join(cols, Delimiter)
}
