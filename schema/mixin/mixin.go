package mixin

import (
	"github.com/turner-townsend/genyrator"
	"github.com/turner-townsend/genyrator/schema/field"
)

// Schema is the default implementation for the genyrator.Mixin interface.
// It should be embedded in all custom mixin definitions.
type Schema struct{}

// Fields returns the fields of the mixin.
func (Schema) Fields() []genyrator.Field { return nil }

// Relationships returns the relationships of the mixin.
func (Schema) Relationships() []genyrator.Relationship { return nil }

var _ genyrator.Mixin = (*Schema)(nil)

// ID adds the "id" storage primary key. It is never rendered into documents.
type ID struct{ Schema }

// Fields of the ID mixin.
func (ID) Fields() []genyrator.Field {
	return []genyrator.Field{
		field.Int64("id").PrimaryKey(),
	}
}

// Time adds the "created" and "updated" timestamps.
type Time struct{ Schema }

// Fields of the Time mixin.
func (Time) Fields() []genyrator.Field {
	return []genyrator.Field{
		field.Time("created").Index(),
		field.Time("updated").Index(),
	}
}

var (
	_ genyrator.Mixin = (*ID)(nil)
	_ genyrator.Mixin = (*Time)(nil)
)
