package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turner-townsend/genyrator/naming"
)

func TestFromDocument(t *testing.T) {
	t.Parallel()
	conv := naming.Snake()

	assert.Nil(t, FromDocument(conv, nil))
	assert.Equal(t, map[string]any{
		"book_id": "b1",
		"author":  map[string]any{"author_id": "a1"},
		"genres":  []any{map[string]any{"genre_id": "g1"}},
	}, FromDocument(conv, map[string]any{
		"bookId": "b1",
		"author": map[string]any{"authorId": "a1"},
		"genres": []any{map[string]any{"genreId": "g1"}},
	}))
}

func TestPatch(t *testing.T) {
	t.Parallel()
	conv := naming.Snake()
	current := map[string]any{
		"book_id": "b1",
		"name":    "Old",
		"rating":  3.0,
		"extra":   map[string]any{"keep": true},
	}
	patch := map[string]any{
		"name":   "New",
		"rating": nil,
		"extra":  map[string]any{"shelfCode": "A1"},
		"meta":   map[string]any{"pageCount": 3},
	}

	out := Patch(conv, current, patch, "extra")
	assert.Equal(t, map[string]any{
		"book_id": "b1",
		"name":    "New",
		"rating":  nil,
		"extra":   map[string]any{"shelfCode": "A1"},
		"meta":    map[string]any{"page_count": 3},
	}, out)
	assert.Equal(t, "Old", current["name"], "current must not be modified")
}

func TestColumns(t *testing.T) {
	t.Parallel()
	book, _ := fixture()

	cols, err := Columns(naming.Snake(), book)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cols["id"])
	assert.Equal(t, bookID, cols["book_id"])
	assert.Equal(t, &authorID, cols["author_id"])
	assert.NotContains(t, cols, "author")
	assert.NotContains(t, cols, "genres")

	cols, err = Columns(naming.Snake(), &Book{})
	require.NoError(t, err)
	assert.Contains(t, cols, "rating")
	assert.Nil(t, cols["rating"])
	assert.NotContains(t, cols, "id")

	cols, err = Columns(naming.Snake(), nil)
	require.NoError(t, err)
	assert.Nil(t, cols)
}
