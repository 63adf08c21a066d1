// Package schema holds the static field definitions for each document
// class. Schemas are configuration: loaded once at process start and
// immutable for the process lifetime. Field order is significant: it fixes
// the column order of the pipe-delimited output that downstream batch
// loaders depend on.
package schema

import (
	"fmt"

	"deedflow/internal/domain"
)

// FieldDef describes a single extractable field.
type FieldDef struct {
	Name        string
	Description string
	Format      string
	MaxLength   int // 0 = no limit
	Required    bool
}

// TrailerColumn is a fixed column appended after the confidence columns.
// Both the header name and the emitted value are part of the schema shape,
// never inferred.
type TrailerColumn struct {
	Name  string
	Value string
}

// Schema is the ordered field layout for one document class.
type Schema struct {
	Name         string
	OutputSuffix string // output file suffix, e.g. "Legal" -> <batch>_Legal.txt
	Sentinel     string // stands in for "field not found"
	Fields       []FieldDef
	Trailer      []TrailerColumn

	byName map[string]int
}

// Field looks up a field definition by name.
func (s *Schema) Field(name string) (FieldDef, bool) {
	i, ok := s.byName[name]
	if !ok {
		return FieldDef{}, false
	}
	return s.Fields[i], true
}

// FieldNames returns the field names in schema order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// ColumnCount is the exact number of columns in every formatted record and
// header produced for this schema.
func (s *Schema) ColumnCount() int {
	return 3 + 2*len(s.Fields) + len(s.Trailer)
}

func (s *Schema) index() {
	s.byName = make(map[string]int, len(s.Fields))
	for i, f := range s.Fields {
		s.byName[f.Name] = i
	}
}

// Registry is a read-only collection of named schemas.
type Registry struct {
	schemas map[string]*Schema
	names   []string
}

// NewRegistry builds a registry from the given schemas. Duplicate names are
// a programming error.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if _, exists := r.schemas[s.Name]; exists {
			return nil, fmt.Errorf("duplicate schema %q", s.Name)
		}
		s.index()
		r.schemas[s.Name] = s
		r.names = append(r.names, s.Name)
	}
	return r, nil
}

// Get returns the schema with the given name.
func (r *Registry) Get(name string) (*Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSchemaNotFound, name)
	}
	return s, nil
}

// Names returns the registered schema names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Builtin returns the registry of the four production document classes.
func Builtin() *Registry {
	r, err := NewRegistry(Legal(), Mailing(), Property(), APN())
	if err != nil {
		panic(err)
	}
	return r
}

// MissingSentinel is the canonical stand-in for a field with no extracted
// value. Earlier deployments disagreed between "NONE" and empty string;
// "NONE" is the documented canonical choice for all builtin schemas.
const MissingSentinel = "NONE"
