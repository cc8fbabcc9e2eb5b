// Package genyrator declares the interfaces used to describe entities in Go.
//
// An entity schema embeds Schema and overrides the methods it needs:
//
//	type Book struct{ genyrator.Schema }
//
//	func (Book) Mixin() []genyrator.Mixin {
//		return []genyrator.Mixin{mixin.ID{}, mixin.Time{}}
//	}
//
//	func (Book) Fields() []genyrator.Field {
//		return []genyrator.Field{
//			field.UUID("book_id").Identifier(),
//			field.String("name").Index(),
//			field.UUID("author_id").Nullable(),
//		}
//	}
//
//	func (Book) Relationships() []genyrator.Relationship {
//		return []genyrator.Relationship{
//			edge.One("Author", "author_id").
//				SourceForeignKey("author_id").
//				TargetIdentifier("author_id").
//				Nullable(),
//		}
//	}
//
// Schemas are loaded with compiler/load and turned into a validated graph by
// compiler/gen.
package genyrator

import (
	"github.com/turner-townsend/genyrator/schema/edge"
	"github.com/turner-townsend/genyrator/schema/field"
)

type (
	// Interface is the interface implemented by entity schemas.
	Interface interface {
		// Type is a dummy method used to distinguish schemas from other types.
		Type()
		// Fields returns the columns of the entity.
		Fields() []Field
		// Relationships returns the relationships declared on the entity.
		Relationships() []Relationship
		// Mixin returns reusable parts that are merged into the entity,
		// ahead of its own fields and relationships.
		Mixin() []Mixin
		// Config returns optional storage configuration.
		Config() Config
	}

	// Field is the interface implemented by column builders.
	Field interface {
		Descriptor() *field.Descriptor
	}

	// Relationship is the interface implemented by relationship builders.
	Relationship interface {
		Descriptor() *edge.Descriptor
	}

	// Mixin is a reusable set of fields and relationships.
	Mixin interface {
		Fields() []Field
		Relationships() []Relationship
	}

	// Config holds storage configuration of an entity.
	Config struct {
		// Table overrides the default table name.
		Table string `json:"table,omitempty" yaml:"table,omitempty"`
	}

	// Schema is the default implementation of Interface.
	// It should be embedded in every entity schema.
	Schema struct{}
)

// Type is a no-op method that marks the embedding type as a schema.
func (Schema) Type() {}

// Fields of the schema.
func (Schema) Fields() []Field { return nil }

// Relationships of the schema.
func (Schema) Relationships() []Relationship { return nil }

// Mixin of the schema.
func (Schema) Mixin() []Mixin { return nil }

// Config of the schema.
func (Schema) Config() Config { return Config{} }

var _ Interface = (*Schema)(nil)
