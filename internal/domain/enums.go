package domain

// Status represents a document's position in the extraction pipeline.
// The concrete tokens are persisted in the store and are configuration
// values, not a versioned protocol.
type Status string

const (
	StatusScanned        Status = "scanned"
	StatusOCRPassed      Status = "ocrpassed"
	StatusLegalPassed    Status = "legalpassed"
	StatusMailingPassed  Status = "mailingpassed"
	StatusPropertyPassed Status = "propertypassed"
	StatusAPNPassed      Status = "apnpassed"
	StatusError          Status = "error"
)

// AllStatuses lists every pipeline status in chain order, error last.
// Used by the monitoring surface to report per-status counts.
var AllStatuses = []Status{
	StatusScanned,
	StatusOCRPassed,
	StatusLegalPassed,
	StatusMailingPassed,
	StatusPropertyPassed,
	StatusAPNPassed,
	StatusError,
}

// Extraction flag tokens. A field's flag set is never empty: absence of
// information is itself a flag.
const (
	FlagNoFlags           = "NO_FLAGS"
	FlagFieldNotFound     = "FIELD_NOT_FOUND"
	FlagValueNormalized   = "VALUE_NORMALIZED"
	FlagLengthExceeded    = "LENGTH_EXCEEDED"
	FlagExtractionFailed  = "EXTRACTION_FAILED"
	FlagMalformedResponse = "MALFORMED_RESPONSE"
)

// NormalizedConfidence is assigned to bare-scalar extraction results that
// were coerced into the structured shape.
const NormalizedConfidence = 95

// ConfidenceThreshold is the boundary for the HIGH confidence bucket.
const ConfidenceThreshold = 90

// Confidence bucket labels as they appear in formatted output.
const (
	ConfidenceHigh = "HIGH"
	ConfidenceLow  = "LOW"
)

// BucketConfidence maps a raw 0-100 confidence to its display label.
func BucketConfidence(confidence int) string {
	if confidence >= ConfidenceThreshold {
		return ConfidenceHigh
	}
	return ConfidenceLow
}

// AllowedImageTypes maps supported scan file extensions to MIME content types.
var AllowedImageTypes = map[string]string{
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"pdf":  "application/pdf",
}
