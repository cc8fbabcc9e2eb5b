package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turner-townsend/genyrator/schema/field"
)

func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		builder  *field.Builder
		expected field.Type
	}{
		{"bool", field.Bool("active"), field.TypeBool},
		{"int", field.Int("pages"), field.TypeInt},
		{"int64", field.Int64("id"), field.TypeInt64},
		{"float", field.Float("rating"), field.TypeFloat},
		{"string", field.String("name"), field.TypeString},
		{"text", field.Text("summary"), field.TypeText},
		{"time", field.Time("created"), field.TypeTime},
		{"date", field.Date("published"), field.TypeDate},
		{"uuid", field.UUID("book_id"), field.TypeUUID},
		{"json", field.JSON("extra"), field.TypeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := tt.builder.Descriptor()
			assert.Equal(t, tt.expected, fd.Type)
			assert.NoError(t, fd.Err)
			assert.False(t, fd.Nullable)
		})
	}
}

func TestModifiers(t *testing.T) {
	t.Parallel()

	fd := field.String("name").Nullable().Index().Comment("display name").Descriptor()
	assert.True(t, fd.Nullable)
	assert.True(t, fd.Index)
	assert.False(t, fd.Unique)
	assert.Equal(t, "display name", fd.Comment)

	fd = field.UUID("book_id").Identifier().Descriptor()
	assert.True(t, fd.Identifier)
	assert.True(t, fd.Index)
	assert.True(t, fd.Unique)
	require.NoError(t, fd.Err)

	fd = field.Int64("id").PrimaryKey().Descriptor()
	assert.True(t, fd.PrimaryKey)
}

func TestDescriptorErrors(t *testing.T) {
	t.Parallel()

	assert.Error(t, field.String("").Descriptor().Err)
	assert.Error(t, field.UUID("book_id").Nullable().Identifier().Descriptor().Err)
	assert.Error(t, field.UUID("book_id").Identifier().Nullable().Descriptor().Err)
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"bool", "int", "int64", "float", "string", "text", "time", "date", "uuid", "json"} {
		typ, err := field.ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, typ.String())
		assert.True(t, typ.Valid())
	}
	_, err := field.ParseType("decimal")
	assert.Error(t, err)
	assert.False(t, field.TypeInvalid.Valid())
	assert.Equal(t, "invalid", field.Type(200).String())
}

func TestTypeText(t *testing.T) {
	t.Parallel()

	b, err := field.TypeUUID.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "uuid", string(b))

	var typ field.Type
	require.NoError(t, typ.UnmarshalText([]byte("date")))
	assert.Equal(t, field.TypeDate, typ)
	assert.Error(t, typ.UnmarshalText([]byte("blob")))

	_, err = field.TypeInvalid.MarshalText()
	assert.Error(t, err)
}
