package normalize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deedflow/internal/domain"
	"deedflow/internal/normalize"
	"deedflow/internal/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := &schema.Schema{
		Name:         "test",
		OutputSuffix: "Test",
		Sentinel:     "NONE",
		Fields: []schema.FieldDef{
			{Name: "Alpha", Required: true},
			{Name: "Beta", MaxLength: 5},
			{Name: "Gamma"},
		},
		Trailer: []schema.TrailerColumn{
			{Name: "IsFromModel", Value: "N"},
		},
	}
	reg, err := schema.NewRegistry(s)
	require.NoError(t, err)
	got, err := reg.Get("test")
	require.NoError(t, err)
	return got
}

func ident() normalize.Identity {
	return normalize.Identity{ImageName: "IMG001.TIF", BatchName: "BATCH01"}
}

func TestNormalize_MissingFieldBecomesSentinel(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), map[string]domain.FieldCandidate{
		"Alpha": domain.StructuredCandidate("lot 7", 96),
	})

	beta := rec.Fields["Beta"]
	assert.Equal(t, "NONE", beta.Value)
	assert.Equal(t, 0, beta.Confidence)
	assert.Equal(t, []string{domain.FlagFieldNotFound}, beta.Flags)
}

func TestNormalize_ScalarCandidateGetsFixedConfidence(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), map[string]domain.FieldCandidate{
		"Alpha": domain.ScalarCandidate("tract 12"),
	})

	alpha := rec.Fields["Alpha"]
	assert.Equal(t, "TRACT 12", alpha.Value)
	assert.Equal(t, domain.NormalizedConfidence, alpha.Confidence)
	assert.Equal(t, []string{domain.FlagValueNormalized}, alpha.Flags)
}

func TestNormalize_UppercasesAndTrims(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), map[string]domain.FieldCandidate{
		"Alpha": domain.StructuredCandidate("  lot 7, block b  ", 92),
	})

	assert.Equal(t, "LOT 7, BLOCK B", rec.Fields["Alpha"].Value)
}

func TestNormalize_EmptyValueBecomesSentinel(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), map[string]domain.FieldCandidate{
		"Alpha": domain.StructuredCandidate("   ", 92),
	})

	assert.Equal(t, "NONE", rec.Fields["Alpha"].Value)
	assert.False(t, rec.Complete, "required field resolved to sentinel")
}

func TestNormalize_OverlongValueFlaggedNotTruncated(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), map[string]domain.FieldCandidate{
		"Beta": domain.StructuredCandidate("abcdefgh", 91),
	})

	beta := rec.Fields["Beta"]
	assert.Equal(t, "ABCDEFGH", beta.Value)
	assert.Contains(t, beta.Flags, domain.FlagLengthExceeded)
}

func TestNormalize_FlagsNeverEmpty(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), map[string]domain.FieldCandidate{
		"Alpha": domain.StructuredCandidate("value", 92),
	})

	assert.Equal(t, []string{domain.FlagNoFlags}, rec.Fields["Alpha"].Flags)
}

func TestBucketConfidence_ThresholdBoundary(t *testing.T) {
	assert.Equal(t, domain.ConfidenceLow, domain.BucketConfidence(89))
	assert.Equal(t, domain.ConfidenceHigh, domain.BucketConfidence(90))
	assert.Equal(t, domain.ConfidenceLow, domain.BucketConfidence(0))
	assert.Equal(t, domain.ConfidenceHigh, domain.BucketConfidence(100))
}

func TestRecord_LineLayout(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), map[string]domain.FieldCandidate{
		"Alpha": domain.StructuredCandidate("X", 97),
		"Gamma": domain.StructuredCandidate("y", 42),
	})

	assert.Equal(t, "IMG001.TIF|BATCH01|1|X|NONE|Y|HIGH|LOW|LOW|N", rec.Line())
}

func TestRecord_ColumnCountInvariant(t *testing.T) {
	reg := schema.Builtin()

	for _, name := range reg.Names() {
		s, err := reg.Get(name)
		require.NoError(t, err)

		// Partial, empty, and failure-shaped inputs all yield full rows.
		inputs := []map[string]domain.FieldCandidate{
			nil,
			{s.Fields[0].Name: domain.ScalarCandidate("value")},
			normalize.FailedExtraction(s, domain.FlagExtractionFailed),
		}
		for _, raw := range inputs {
			rec := normalize.Normalize(s, ident(), raw)
			assert.Len(t, rec.Columns(), s.ColumnCount(), "schema %s", name)
		}
	}
}

func TestHeaderFor_MatchesRecordWidthAndNames(t *testing.T) {
	s := testSchema(t)

	header := normalize.HeaderFor(s)
	cols := strings.Split(header, normalize.Delimiter)

	require.Len(t, cols, s.ColumnCount())
	assert.Equal(t, []string{"ImageName", "BatchName", "ImageHeaderID"}, cols[:3])
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, cols[3:6])
	assert.Equal(t, []string{"CL_Alpha", "CL_Beta", "CL_Gamma"}, cols[6:9])
	assert.Equal(t, "IsFromModel", cols[9])
}

func TestFailedExtraction_YieldsFullSentinelRow(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), normalize.FailedExtraction(s, domain.FlagExtractionFailed))

	assert.Equal(t, "IMG001.TIF|BATCH01|1|NONE|NONE|NONE|LOW|LOW|LOW|N", rec.Line())
	for _, def := range s.Fields {
		res := rec.Fields[def.Name]
		assert.Equal(t, 0, res.Confidence)
		assert.Equal(t, []string{domain.FlagExtractionFailed}, res.Flags)
	}
	assert.False(t, rec.Complete)
}

func TestNormalize_CompleteWhenRequiredFieldsPresent(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, ident(), map[string]domain.FieldCandidate{
		"Alpha": domain.StructuredCandidate("present", 95),
	})

	assert.True(t, rec.Complete)
}

func TestNormalize_DefaultsHeaderID(t *testing.T) {
	s := testSchema(t)

	rec := normalize.Normalize(s, normalize.Identity{ImageName: "a", BatchName: "b"}, nil)
	assert.Equal(t, normalize.DefaultHeaderID, rec.Identity.HeaderID)

	rec = normalize.Normalize(s, normalize.Identity{ImageName: "a", BatchName: "b", HeaderID: "7"}, nil)
	assert.Equal(t, "7", rec.Identity.HeaderID)
}
