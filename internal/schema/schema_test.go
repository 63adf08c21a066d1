package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deedflow/internal/domain"
	"deedflow/internal/schema"
)

func TestBuiltin_RegistersAllDocumentClasses(t *testing.T) {
	reg := schema.Builtin()

	assert.Equal(t, []string{"legal", "mailing", "property", "apn"}, reg.Names())

	for _, name := range reg.Names() {
		s, err := reg.Get(name)
		require.NoError(t, err)
		assert.NotEmpty(t, s.OutputSuffix)
		assert.Equal(t, schema.MissingSentinel, s.Sentinel)
	}
}

func TestRegistry_GetUnknownSchema(t *testing.T) {
	reg := schema.Builtin()

	_, err := reg.Get("deeds")
	assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
}

func TestNewRegistry_RejectsDuplicateNames(t *testing.T) {
	_, err := schema.NewRegistry(schema.Legal(), schema.Legal())
	assert.Error(t, err)
}

func TestColumnCount_MatchesFieldAndTrailerWidth(t *testing.T) {
	cases := []struct {
		name    string
		fields  int
		trailer int
	}{
		{"legal", 64, 2},
		{"mailing", 18, 2},
		{"property", 19, 2},
		{"apn", 2, 0},
	}

	reg := schema.Builtin()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := reg.Get(tc.name)
			require.NoError(t, err)
			assert.Len(t, s.Fields, tc.fields)
			assert.Len(t, s.Trailer, tc.trailer)
			assert.Equal(t, 3+2*tc.fields+tc.trailer, s.ColumnCount())
		})
	}
}

func TestSchema_FieldLookupFollowsDeclarationOrder(t *testing.T) {
	reg := schema.Builtin()
	s, err := reg.Get("mailing")
	require.NoError(t, err)

	names := s.FieldNames()
	require.Len(t, names, len(s.Fields))
	for i, def := range s.Fields {
		assert.Equal(t, def.Name, names[i])

		got, ok := s.Field(def.Name)
		require.True(t, ok, "field %s not found", def.Name)
		assert.Equal(t, def, got)
	}

	_, ok := s.Field("No_Such_Field")
	assert.False(t, ok)
}

func TestPropertyTrailer_CarriesFixedValues(t *testing.T) {
	s := schema.Property()
	require.Len(t, s.Trailer, 2)
	assert.Equal(t, "IsFromModel", s.Trailer[0].Name)
	assert.Equal(t, "N", s.Trailer[0].Value)
	assert.Equal(t, "XrefRemarks", s.Trailer[1].Name)
	assert.Equal(t, "NONE", s.Trailer[1].Value)
}

func TestAPNSchema_AllFieldsRequired(t *testing.T) {
	s := schema.APN()
	for _, def := range s.Fields {
		assert.True(t, def.Required, "field %s should be required", def.Name)
	}
}
