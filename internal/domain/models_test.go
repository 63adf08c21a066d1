package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deedflow/internal/domain"
)

func TestFieldCandidate_UnmarshalStructured(t *testing.T) {
	var c domain.FieldCandidate
	require.NoError(t, json.Unmarshal([]byte(`{"value":"LOT 7","confidence":97,"flags":["NO_FLAGS"]}`), &c))

	require.NotNil(t, c.Structured)
	assert.Equal(t, "LOT 7", c.Structured.Value)
	assert.Equal(t, 97, c.Structured.Confidence)
	assert.Equal(t, []string{"NO_FLAGS"}, c.Structured.Flags)
}

func TestFieldCandidate_UnmarshalBareScalars(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"TRACT 12"`, "TRACT 12"},
		{`42`, "42"},
		{`true`, "true"},
		{`null`, ""},
	}

	for _, tc := range cases {
		var c domain.FieldCandidate
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &c), "raw %s", tc.raw)
		assert.Nil(t, c.Structured, "raw %s", tc.raw)
		assert.Equal(t, tc.want, c.Scalar, "raw %s", tc.raw)
	}
}

func TestFieldCandidate_UnmarshalStructuredWithNumericValue(t *testing.T) {
	var c domain.FieldCandidate
	require.NoError(t, json.Unmarshal([]byte(`{"value":12,"confidence":88}`), &c))

	require.NotNil(t, c.Structured)
	assert.Equal(t, "12", c.Structured.Value)
	assert.Equal(t, 88, c.Structured.Confidence)
}

func TestDocument_DisplayDefaults(t *testing.T) {
	var doc domain.Document
	assert.Equal(t, domain.DefaultImageName, doc.DisplayImageName())
	assert.Equal(t, domain.DefaultBatchName, doc.DisplayBatchName())

	doc.ImageName = "IMG001.TIF"
	doc.BatchName = "BATCH01"
	assert.Equal(t, "IMG001.TIF", doc.DisplayImageName())
	assert.Equal(t, "BATCH01", doc.DisplayBatchName())
}
