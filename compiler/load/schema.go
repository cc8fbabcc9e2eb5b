// Package load turns entity declarations into serializable descriptors.
//
// Descriptors come from Go schemas (MarshalSchema) or from YAML/JSON schema
// files (ReadFile, ReadDir). Either way the result is a *Schema that
// compiler/gen validates and builds into a graph.
package load

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/turner-townsend/genyrator"
	"github.com/turner-townsend/genyrator/schema/edge"
	"github.com/turner-townsend/genyrator/schema/field"
)

// Schema represents a loaded entity declaration.
type Schema struct {
	Name          string           `json:"name" yaml:"name"`
	Pos           string           `json:"-" yaml:"-"`
	Config        genyrator.Config `json:"config,omitempty" yaml:"config,omitempty"`
	Fields        []*Field         `json:"fields,omitempty" yaml:"fields,omitempty"`
	Relationships []*Relationship  `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// Field represents a loaded column declaration.
type Field struct {
	Name       string     `json:"name" yaml:"name"`
	Type       field.Type `json:"type" yaml:"type"`
	Nullable   bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Index      bool       `json:"index,omitempty" yaml:"index,omitempty"`
	Unique     bool       `json:"unique,omitempty" yaml:"unique,omitempty"`
	Identifier bool       `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	PrimaryKey bool       `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	MixedIn    bool       `json:"mixed_in,omitempty" yaml:"-"`
	Comment    string     `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Relationship represents a loaded relationship declaration. Its fields are
// the arguments of a relationship declaration; they are validated by
// gen.NewRelationship.
type Relationship struct {
	Target                 string             `json:"target" yaml:"target"`
	Cardinality            edge.Cardinality   `json:"cardinality" yaml:"cardinality"`
	SourceIdentifierColumn string             `json:"source_identifier_column,omitempty" yaml:"source_identifier_column,omitempty"`
	SourceForeignKeyColumn string             `json:"source_foreign_key_column,omitempty" yaml:"source_foreign_key_column,omitempty"`
	TargetForeignKeyColumn string             `json:"target_foreign_key_column,omitempty" yaml:"target_foreign_key_column,omitempty"`
	TargetIdentifierColumn string             `json:"target_identifier_column,omitempty" yaml:"target_identifier_column,omitempty"`
	JoinTable              string             `json:"join_table,omitempty" yaml:"join_table,omitempty"`
	SecondaryJoinColumn    string             `json:"secondary_join_column,omitempty" yaml:"secondary_join_column,omitempty"`
	PropertyName           string             `json:"property_name,omitempty" yaml:"property_name,omitempty"`
	KeyAliasInJSON         string             `json:"key_alias_in_json,omitempty" yaml:"key_alias_in_json,omitempty"`
	CascadeDelete          edge.CascadePolicy `json:"cascade_delete,omitzero" yaml:"cascade_delete,omitempty"`
	Cascade                string             `json:"cascade,omitempty" yaml:"cascade,omitempty"`
	Nullable               bool               `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Lazy                   bool               `json:"lazy,omitempty" yaml:"lazy,omitempty"`
	PostUpdate             bool               `json:"post_update,omitempty" yaml:"post_update,omitempty"`
	Comment                string             `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// NewField creates a loaded field from field descriptor.
func NewField(fd *field.Descriptor) (*Field, error) {
	if fd.Err != nil {
		return nil, fmt.Errorf("field %q: %w", fd.Name, fd.Err)
	}
	if !fd.Type.Valid() {
		return nil, fmt.Errorf("missing type info for field %q", fd.Name)
	}
	return &Field{
		Name:       fd.Name,
		Type:       fd.Type,
		Nullable:   fd.Nullable,
		Index:      fd.Index,
		Unique:     fd.Unique,
		Identifier: fd.Identifier,
		PrimaryKey: fd.PrimaryKey,
		Comment:    fd.Comment,
	}, nil
}

// NewRelationship creates a loaded relationship from relationship descriptor.
// It returns an error if the descriptor contains an error.
func NewRelationship(ed *edge.Descriptor) (*Relationship, error) {
	if ed.Err != nil {
		return nil, ed.Err
	}
	return &Relationship{
		Target:                 ed.Target,
		Cardinality:            ed.Cardinality,
		SourceIdentifierColumn: ed.SourceIdentifierColumn,
		SourceForeignKeyColumn: ed.SourceForeignKeyColumn,
		TargetForeignKeyColumn: ed.TargetForeignKeyColumn,
		TargetIdentifierColumn: ed.TargetIdentifierColumn,
		JoinTable:              ed.JoinTable,
		SecondaryJoinColumn:    ed.SecondaryJoinColumn,
		PropertyName:           ed.PropertyName,
		KeyAliasInJSON:         ed.KeyAliasInJSON,
		CascadeDelete:          ed.CascadeDelete,
		Cascade:                ed.Cascade,
		Nullable:               ed.Nullable,
		Lazy:                   ed.Lazy,
		PostUpdate:             ed.PostUpdate,
		Comment:                ed.Comment,
	}, nil
}

// Load converts a Go schema into a loaded schema.
func Load(schema genyrator.Interface) (*Schema, error) {
	s := &Schema{
		Config: schema.Config(),
		Name:   indirect(reflect.TypeOf(schema)).Name(),
	}
	if err := s.loadMixin(schema); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	fields, err := safeFields(schema)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	for _, f := range fields {
		sf, err := NewField(f.Descriptor())
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Name, err)
		}
		s.Fields = append(s.Fields, sf)
	}
	rels, err := safeRelationships(schema)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	for _, r := range rels {
		nr, err := NewRelationship(r.Descriptor())
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Name, err)
		}
		s.Relationships = append(s.Relationships, nr)
	}
	return s, nil
}

// MarshalSchema encodes the genyrator.Interface into a JSON
// that can be decoded into the Schema objects declared above.
func MarshalSchema(schema genyrator.Interface) ([]byte, error) {
	s, err := Load(schema)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalSchema decodes the given buffer to a loaded schema.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, err
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// check reports structural errors that decoding cannot catch.
func (s *Schema) check() error {
	if s.Name == "" {
		return fmt.Errorf("schema %s: missing name", s.Pos)
	}
	for i, f := range s.Fields {
		if f == nil || f.Name == "" {
			return fmt.Errorf("schema %q: field %d: missing name", s.Name, i)
		}
		if !f.Type.Valid() {
			return fmt.Errorf("schema %q: missing type info for field %q", s.Name, f.Name)
		}
	}
	for i, r := range s.Relationships {
		if r == nil || r.Target == "" {
			return fmt.Errorf("schema %q: relationship %d: missing target", s.Name, i)
		}
	}
	return nil
}

// loadMixin loads mixin to schema from genyrator.Interface.
func (s *Schema) loadMixin(schema genyrator.Interface) error {
	mixin, err := safeMixin(schema)
	if err != nil {
		return err
	}
	for _, mx := range mixin {
		name := indirect(reflect.TypeOf(mx)).Name()
		fields, err := safeFields(mx)
		if err != nil {
			return fmt.Errorf("mixin %q: %w", name, err)
		}
		for _, f := range fields {
			sf, err := NewField(f.Descriptor())
			if err != nil {
				return fmt.Errorf("mixin %q: %w", name, err)
			}
			sf.MixedIn = true
			s.Fields = append(s.Fields, sf)
		}
		rels, err := safeRelationships(mx)
		if err != nil {
			return fmt.Errorf("mixin %q: %w", name, err)
		}
		for _, r := range rels {
			nr, err := NewRelationship(r.Descriptor())
			if err != nil {
				return fmt.Errorf("mixin %q: %w", name, err)
			}
			s.Relationships = append(s.Relationships, nr)
		}
	}
	return nil
}

// safeFields wraps the schema.Fields and mixin.Fields method with recover to ensure no panics in marshaling.
func safeFields(fd interface{ Fields() []genyrator.Field }) (fields []genyrator.Field, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Fields panics: %v", fd, v)
			fields = nil
		}
	}()
	return fd.Fields(), nil
}

// safeRelationships wraps the schema.Relationships method with recover to ensure no panics in marshaling.
func safeRelationships(schema interface {
	Relationships() []genyrator.Relationship
}) (rels []genyrator.Relationship, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Relationships panics: %v", schema, v)
			rels = nil
		}
	}()
	return schema.Relationships(), nil
}

// safeMixin wraps the schema.Mixin method with recover to ensure no panics in marshaling.
func safeMixin(schema genyrator.Interface) (mixin []genyrator.Mixin, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("schema.Mixin panics: %v", v)
			mixin = nil
		}
	}()
	return schema.Mixin(), nil
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
