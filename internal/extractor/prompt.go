package extractor

import (
	"fmt"
	"strings"

	"deedflow/internal/schema"
)

// BuildExtractionPrompt returns the field extraction prompt for a document
// schema. The prompt enumerates every schema field with its description and
// format so the model returns exactly the keys the normalizer expects.
func BuildExtractionPrompt(s *schema.Schema) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a title plant data extraction assistant. The text below was produced by OCR over a scanned recorded document. Extract the %s fields listed here into JSON.

FIELDS TO EXTRACT:
`, strings.ToLower(s.Name))

	for _, f := range s.Fields {
		fmt.Fprintf(&b, "- %q", f.Name)
		if f.Description != "" {
			fmt.Fprintf(&b, ": %s", f.Description)
		}
		if f.Format != "" {
			fmt.Fprintf(&b, " (format: %s)", f.Format)
		}
		if f.MaxLength > 0 {
			fmt.Fprintf(&b, " (max %d characters)", f.MaxLength)
		}
		b.WriteString("\n")
	}

	b.WriteString(`
IMPORTANT INSTRUCTIONS:
- OCR output is noisy. Correct obvious character substitutions (0/O, 1/I, 5/S) when context makes the intended value clear, and score such corrections with lower confidence.
- Return values in UPPERCASE.
- If a field is not present in the document, omit its key entirely. Do not invent values.
- Do not include any fields other than the ones listed.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation. The object must map each extracted field name to an object with two keys: "value" (the extracted text) and "confidence" (an integer from 0 to 100 indicating how certain you are).

Example:
{
  "` + exampleField(s) + `": {"value": "EXAMPLE", "confidence": 97}
}`)

	return b.String()
}

func exampleField(s *schema.Schema) string {
	if len(s.Fields) > 0 {
		return s.Fields[0].Name
	}
	return "Field_Name"
}
