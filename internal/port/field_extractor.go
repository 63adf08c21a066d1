package port

import (
	"context"

	"deedflow/internal/domain"
)

// ExtractInput carries the data needed for field extraction.
type ExtractInput struct {
	SchemaName string
	RawText    string
	ImageName  string
}

// ExtractOutput contains the per-field candidates returned by an extractor,
// keyed by schema field name, plus audit metadata.
type ExtractOutput struct {
	Fields    map[string]domain.FieldCandidate
	ModelUsed string
}

// FieldExtractor abstracts LLM-based field extraction from OCR text.
type FieldExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
