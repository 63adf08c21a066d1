// Package pipeline moves documents through the extraction stages, from
// scanned intake to the final formatted outputs.
package pipeline

import "deedflow/internal/domain"

// Stage binds an input status to a success status and the schema extracted
// at that step. Failure always transitions to StatusError.
type Stage struct {
	Name       string
	Input      domain.Status
	Success    domain.Status
	SchemaName string
}

// ExtractionStages returns the ordered extraction stages. The OCR intake
// stage (scanned -> ocrpassed) is separate; it produces raw text, not a
// formatted output, and is run by OCRWorker.
func ExtractionStages() []Stage {
	return []Stage{
		{Name: "legal", Input: domain.StatusOCRPassed, Success: domain.StatusLegalPassed, SchemaName: "legal"},
		{Name: "mailing", Input: domain.StatusLegalPassed, Success: domain.StatusMailingPassed, SchemaName: "mailing"},
		{Name: "property", Input: domain.StatusMailingPassed, Success: domain.StatusPropertyPassed, SchemaName: "property"},
		{Name: "apn", Input: domain.StatusPropertyPassed, Success: domain.StatusAPNPassed, SchemaName: "apn"},
	}
}
