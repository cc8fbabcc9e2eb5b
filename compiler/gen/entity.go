package gen

import (
	"github.com/turner-townsend/genyrator/compiler/load"
	"github.com/turner-townsend/genyrator/naming"
	"github.com/turner-townsend/genyrator/schema/field"
)

// Field is a column of an entity.
type Field struct {
	Name       string // Internal name, e.g. "book_id"
	JSONName   string // External name, e.g. "bookId"
	Type       field.Type
	Nullable   bool
	Index      bool
	Unique     bool
	Identifier bool
	PrimaryKey bool
	Comment    string
}

// GoName returns the name of the struct member holding the field.
func (f *Field) GoName() string { return goName(f.Name) }

// Entity is a validated entity with resolved relationships.
type Entity struct {
	Name          string // External type name, e.g. "Book"
	InternalName  string // e.g. "book"
	Pos           string // Schema file, if loaded from one
	Fields        []*Field
	Relationships []*Relationship

	table string
	conv  naming.Convention
}

func newEntity(conv naming.Convention, s *load.Schema) *Entity {
	e := &Entity{
		Name:         conv.TypeName(s.Name),
		InternalName: conv.ToInternal(s.Name),
		Pos:          s.Pos,
		table:        s.Config.Table,
		conv:         conv,
	}
	for _, f := range s.Fields {
		name := conv.ToInternal(f.Name)
		e.Fields = append(e.Fields, &Field{
			Name:       name,
			JSONName:   conv.ToExternal(name),
			Type:       f.Type,
			Nullable:   f.Nullable,
			Index:      f.Index,
			Unique:     f.Unique,
			Identifier: f.Identifier,
			PrimaryKey: f.PrimaryKey,
			Comment:    f.Comment,
		})
	}
	return e
}

// Table returns the table of the entity: the configured name, or the
// internal plural of the entity name ("BookGenre" is stored in "book_genres").
func (e *Entity) Table() string {
	if e.table != "" {
		return e.table
	}
	return e.conv.Plural(e.Name)
}

// Field returns the field with the given internal name.
func (e *Entity) Field(name string) (*Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Relationship returns the relationship with the given property name.
func (e *Entity) Relationship(property string) (*Relationship, bool) {
	for _, r := range e.Relationships {
		if r.PropertyName() == property {
			return r, true
		}
	}
	return nil, false
}

// Identifier returns the external identifier field, if declared.
func (e *Entity) Identifier() *Field {
	for _, f := range e.Fields {
		if f.Identifier {
			return f
		}
	}
	return nil
}

// PrimaryKey returns the storage primary key field, if declared.
func (e *Entity) PrimaryKey() *Field {
	for _, f := range e.Fields {
		if f.PrimaryKey {
			return f
		}
	}
	return nil
}

// Eager returns the relationships embedded in documents by default.
func (e *Entity) Eager() []*Relationship {
	var rels []*Relationship
	for _, r := range e.Relationships {
		if !r.Lazy() {
			rels = append(rels, r)
		}
	}
	return rels
}

// Deferred returns the relationships written in the second write phase.
func (e *Entity) Deferred() []*Relationship {
	var rels []*Relationship
	for _, r := range e.Relationships {
		if r.DeferredUpdate() {
			rels = append(rels, r)
		}
	}
	return rels
}

// GoName returns the name of the generated record type.
func (e *Entity) GoName() string { return goName(e.Name) }
