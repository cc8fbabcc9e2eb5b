package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$1", Placeholder(Postgres, 1))
	assert.Equal(t, "$12", Placeholder(Postgres, 12))
	assert.Equal(t, "?", Placeholder(MySQL, 3))
	assert.Equal(t, "?", Placeholder(SQLite, 3))
}

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dialect, ident, expected string
	}{
		{Postgres, "books", `"books"`},
		{SQLite, `we"ird`, `"we""ird"`},
		{MySQL, "books", "`books`"},
		{MySQL, "we`ird", "`we``ird`"},
		{Postgres, "library.books", `"library"."books"`},
		{MySQL, "library.books", "`library`.`books`"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.expected, Quote(tt.dialect, tt.ident))
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	for _, d := range Dialects {
		assert.True(t, Valid(d))
		assert.NoError(t, Check(d))
	}
	assert.False(t, Valid("oracle"))
	assert.Error(t, Check("oracle"))
}
