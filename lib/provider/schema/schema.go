// Package schema declares the model and association layout shared by the
// relational provider implementations. A schema can be built in code or
// loaded from a TOML file (see testdata in this package for the format).
package schema

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// AssocKind distinguishes the two supported association directions.
type AssocKind string

const (
	AssocHasMany   AssocKind = "hasMany"
	AssocBelongsTo AssocKind = "belongsTo"
)

// Association links one model to another. For hasMany the foreign key lives
// on the target model, for belongsTo it lives on the owning model.
type Association struct {
	// Name is the bare association name (e.g. "parents"). The generated
	// instance method is "get" + Name with the first letter upper-cased.
	Name string `toml:"name"`
	// Model is the target model name (e.g. "Parent")
	Model string `toml:"model"`
	// ForeignKey is the attribute holding the reference (e.g. "student_id")
	ForeignKey string `toml:"foreign_key"`
	// Kind is either hasMany or belongsTo
	Kind AssocKind `toml:"kind"`
}

// MethodName returns the generated getter name for the association.
func (a Association) MethodName() string {
	if a.Name == "" {
		return ""
	}
	return "get" + strings.ToUpper(a.Name[:1]) + a.Name[1:]
}

// Model describes one relational model.
type Model struct {
	// Name is the exported model name (e.g. "Student")
	Name string `toml:"name"`
	// Table is the backing table name; defaults to the lower-cased model
	// name plus "s" when empty (only relevant for SQL-backed providers)
	Table string `toml:"table"`
	// Associations are the declared links to other models
	Associations []Association `toml:"association"`
}

// TableName returns the backing table name for SQL providers.
func (m Model) TableName() string {
	if m.Table != "" {
		return m.Table
	}
	return strings.ToLower(m.Name) + "s"
}

// Schema is the full model layout of one relational provider.
type Schema struct {
	Models []Model `toml:"model"`
}

// Model looks up a model by name.
func (s *Schema) Model(name string) (Model, bool) {
	for _, m := range s.Models {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// Validate checks that association targets exist and kinds are known.
func (s *Schema) Validate() error {
	for _, m := range s.Models {
		if m.Name == "" {
			return fmt.Errorf("schema contains a model without a name")
		}
		for _, a := range m.Associations {
			if a.Kind != AssocHasMany && a.Kind != AssocBelongsTo {
				return fmt.Errorf("model %s association %s: invalid kind %q", m.Name, a.Name, a.Kind)
			}
			if _, ok := s.Model(a.Model); !ok {
				return fmt.Errorf("model %s association %s: unknown target model %q", m.Name, a.Name, a.Model)
			}
			if a.ForeignKey == "" {
				return fmt.Errorf("model %s association %s: missing foreign key", m.Name, a.Name)
			}
		}
	}
	return nil
}

// LoadFile reads and validates a schema from a TOML file.
func LoadFile(path string) (*Schema, error) {
	var s Schema
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
