package load

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turner-townsend/genyrator"
	"github.com/turner-townsend/genyrator/schema/edge"
	"github.com/turner-townsend/genyrator/schema/field"
	"github.com/turner-townsend/genyrator/schema/mixin"
)

type Book struct {
	genyrator.Schema
}

func (Book) Mixin() []genyrator.Mixin {
	return []genyrator.Mixin{mixin.ID{}}
}

func (Book) Fields() []genyrator.Field {
	return []genyrator.Field{
		field.UUID("book_id").Identifier(),
		field.String("name").Comment("title"),
		field.UUID("author_id").Nullable(),
	}
}

func (Book) Relationships() []genyrator.Relationship {
	return []genyrator.Relationship{
		edge.One("Author", "author_id").
			SourceForeignKey("author_id").
			TargetIdentifier("author_id").
			Nullable(),
		edge.Many("Genre", "book_id").
			JoinTable("book_genre").
			KeyAlias("genre_id").
			CascadeDelete(true).
			Lazy(),
	}
}

func (Book) Config() genyrator.Config {
	return genyrator.Config{Table: "book"}
}

func TestMarshalSchema(t *testing.T) {
	t.Parallel()

	buf, err := MarshalSchema(&Book{})
	require.NoError(t, err)

	s, err := UnmarshalSchema(buf)
	require.NoError(t, err)
	assert.Equal(t, "Book", s.Name)
	assert.Equal(t, "book", s.Config.Table)

	require.Len(t, s.Fields, 4)
	assert.Equal(t, "id", s.Fields[0].Name)
	assert.True(t, s.Fields[0].PrimaryKey)
	assert.True(t, s.Fields[0].MixedIn)
	assert.Equal(t, "book_id", s.Fields[1].Name)
	assert.Equal(t, field.TypeUUID, s.Fields[1].Type)
	assert.True(t, s.Fields[1].Identifier)
	assert.False(t, s.Fields[1].MixedIn)
	assert.Equal(t, "title", s.Fields[2].Comment)
	assert.True(t, s.Fields[3].Nullable)

	require.Len(t, s.Relationships, 2)
	author := s.Relationships[0]
	assert.Equal(t, "Author", author.Target)
	assert.Equal(t, edge.ToOne, author.Cardinality)
	assert.Equal(t, "author_id", author.SourceForeignKeyColumn)
	assert.Equal(t, "author_id", author.TargetIdentifierColumn)
	assert.True(t, author.Nullable)
	genres := s.Relationships[1]
	assert.Equal(t, edge.ToMany, genres.Cardinality)
	assert.Equal(t, "book_genre", genres.JoinTable)
	assert.Equal(t, edge.CascadeBool(true), genres.CascadeDelete)
	assert.True(t, genres.Lazy)
}

func TestMarshalSchemaJSONShape(t *testing.T) {
	t.Parallel()

	buf, err := MarshalSchema(&Book{})
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf, &raw))
	rels := raw["relationships"].([]any)
	genres := rels[1].(map[string]any)
	assert.Equal(t, "to_many", genres["cardinality"])
	assert.Equal(t, true, genres["cascade_delete"])
	fields := raw["fields"].([]any)
	assert.Equal(t, "uuid", fields[1].(map[string]any)["type"])
}

type Broken struct {
	genyrator.Schema
}

func (Broken) Fields() []genyrator.Field {
	panic("boom")
}

type BrokenRelationship struct {
	genyrator.Schema
}

func (BrokenRelationship) Relationships() []genyrator.Relationship {
	return []genyrator.Relationship{edge.One("", "x")}
}

type BrokenMixin struct {
	genyrator.Schema
}

type panicMixin struct{ mixin.Schema }

func (panicMixin) Relationships() []genyrator.Relationship { panic("mixin boom") }

func (BrokenMixin) Mixin() []genyrator.Mixin {
	return []genyrator.Mixin{panicMixin{}}
}

func TestMarshalSchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		schema genyrator.Interface
		substr string
	}{
		{"fields_panic", Broken{}, "Fields panics: boom"},
		{"relationship_error", BrokenRelationship{}, "missing target"},
		{"mixin_panic", BrokenMixin{}, "mixin boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MarshalSchema(tt.schema)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestUnmarshalSchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `{`},
		{"missing_name", `{"fields":[]}`},
		{"field_name", `{"name":"Book","fields":[{"type":"int"}]}`},
		{"field_type", `{"name":"Book","fields":[{"name":"id"}]}`},
		{"unknown_type", `{"name":"Book","fields":[{"name":"id","type":"blob"}]}`},
		{"relationship_target", `{"name":"Book","relationships":[{"cardinality":"to_one"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalSchema([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}
