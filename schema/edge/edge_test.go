package edge_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/turner-townsend/genyrator/schema/edge"
)

func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *edge.Descriptor
		validate func(t *testing.T, desc *edge.Descriptor)
	}{
		{
			name: "to_one",
			build: func() *edge.Descriptor {
				return edge.One("Author", "author_id").
					SourceForeignKey("author_id").
					TargetIdentifier("author_id").
					Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, "Author", desc.Target)
				assert.Equal(t, edge.ToOne, desc.Cardinality)
				assert.Equal(t, "author_id", desc.SourceIdentifierColumn)
				assert.Equal(t, "author_id", desc.SourceForeignKeyColumn)
				assert.Equal(t, "author_id", desc.TargetIdentifierColumn)
				assert.False(t, desc.Nullable)
				assert.False(t, desc.Lazy)
				assert.NoError(t, desc.Err)
			},
		},
		{
			name: "to_many_join_table",
			build: func() *edge.Descriptor {
				return edge.Many("Genre", "book_id").
					JoinTable("book_genre").
					KeyAlias("genre_id").
					Property("genres").
					Lazy().
					Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.ToMany, desc.Cardinality)
				assert.Equal(t, "book_genre", desc.JoinTable)
				assert.Equal(t, "genre_id", desc.KeyAliasInJSON)
				assert.Equal(t, "genres", desc.PropertyName)
				assert.True(t, desc.Lazy)
			},
		},
		{
			name: "self_referential",
			build: func() *edge.Descriptor {
				return edge.Many("Book", "book_id").
					JoinTable("related_book").
					SecondaryJoin("related_book_id").
					Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, "related_book_id", desc.SecondaryJoinColumn)
			},
		},
		{
			name: "cascade",
			build: func() *edge.Descriptor {
				return edge.Many("Review", "book_id").
					TargetForeignKey("book_id").
					CascadeDeleteAll().
					Cascade("all, delete-orphan").
					Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.CascadeString("all"), desc.CascadeDelete)
				assert.Equal(t, "all, delete-orphan", desc.Cascade)
				assert.Equal(t, "book_id", desc.TargetForeignKeyColumn)
			},
		},
		{
			name: "post_update",
			build: func() *edge.Descriptor {
				return edge.One("Book", "favourite_book_id").
					Nullable().
					PostUpdate().
					CascadeDelete(false).
					Comment("favourite").
					Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.True(t, desc.PostUpdate)
				assert.True(t, desc.Nullable)
				assert.Equal(t, edge.CascadeBool(false), desc.CascadeDelete)
				assert.Equal(t, "favourite", desc.Comment)
			},
		},
		{
			name: "missing_target",
			build: func() *edge.Descriptor {
				return edge.One("", "x").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Error(t, desc.Err)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func TestCardinality(t *testing.T) {
	t.Parallel()

	c, err := edge.ParseCardinality("to_many")
	require.NoError(t, err)
	assert.Equal(t, edge.ToMany, c)
	assert.Equal(t, "to_one", edge.ToOne.String())
	assert.Equal(t, "unknown", edge.Unknown.String())

	_, err = edge.ParseCardinality("many_to_many")
	assert.Error(t, err)

	_, err = edge.Unknown.MarshalText()
	assert.Error(t, err)

	var got edge.Cardinality
	require.NoError(t, got.UnmarshalText([]byte("to_one")))
	assert.Equal(t, edge.ToOne, got)
}

func TestCascadePolicyJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected edge.CascadePolicy
	}{
		{`true`, edge.CascadeBool(true)},
		{`false`, edge.CascadeBool(false)},
		{`"all"`, edge.CascadeString("all")},
		{`"save-update"`, edge.CascadeString("save-update")},
		{`"true"`, edge.CascadeString("true")},
		{`null`, edge.CascadePolicy{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var p edge.CascadePolicy
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.expected, p)
		})
	}

	var p edge.CascadePolicy
	assert.Error(t, json.Unmarshal([]byte(`3`), &p))

	b, err := json.Marshal(edge.CascadeBool(true))
	require.NoError(t, err)
	assert.Equal(t, `true`, string(b))
	b, err = json.Marshal(edge.CascadeString("all"))
	require.NoError(t, err)
	assert.Equal(t, `"all"`, string(b))
	b, err = json.Marshal(edge.CascadeString("true"))
	require.NoError(t, err)
	assert.Equal(t, `"true"`, string(b))
}

func TestCascadePolicyYAML(t *testing.T) {
	t.Parallel()

	var v struct {
		A edge.CascadePolicy `yaml:"a"`
		B edge.CascadePolicy `yaml:"b"`
		C edge.CascadePolicy `yaml:"c"`
		D edge.CascadePolicy `yaml:"d"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: true\nb: all\nc: ~\nd: \"false\"\n"), &v))
	assert.Equal(t, edge.CascadeBool(true), v.A)
	assert.Equal(t, edge.CascadeString("all"), v.B)
	assert.True(t, v.C.IsZero())
	assert.Equal(t, edge.CascadeString("false"), v.D)
	_, isBool := v.D.Bool()
	assert.False(t, isBool)

	out, err := yaml.Marshal(map[string]edge.CascadePolicy{"a": edge.CascadeBool(false)})
	require.NoError(t, err)
	assert.Equal(t, "a: false\n", string(out))
	out, err = yaml.Marshal(map[string]edge.CascadePolicy{"a": edge.CascadeString("false")})
	require.NoError(t, err)
	assert.Equal(t, "a: \"false\"\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("a: [1, 2]\n"), &v))
}
