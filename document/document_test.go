package document

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turner-townsend/genyrator/naming"
)

type Author struct {
	ID            int64     `genyrator:"id,pk"`
	AuthorID      uuid.UUID `genyrator:"author_id"`
	Name          string    `genyrator:"name"`
	FavouriteBook *Book     `genyrator:"favourite_book"`
	Books         []*Book   `genyrator:"books"`
}

type Book struct {
	ID        int64           `genyrator:"id,pk"`
	BookID    uuid.UUID       `genyrator:"book_id"`
	Name      string          `genyrator:"name"`
	Rating    *float64        `genyrator:"rating"`
	Published *naming.Date    `genyrator:"published"`
	Created   time.Time       `genyrator:"created"`
	AuthorID  *uuid.UUID      `genyrator:"author_id"`
	Extra     json.RawMessage `genyrator:"extra"`
	Author    *Author         `genyrator:"author"`
	Genres    []*Genre        `genyrator:"genres"`
	cache     string
}

type Genre struct {
	ID      int64     `genyrator:"id,pk"`
	GenreID uuid.UUID `genyrator:"genre_id"`
	Title   string    `genyrator:"title"`
}

var (
	authorID = uuid.MustParse("0b5b3a30-6c4c-4a3f-9d5e-1f2a3b4c5d6e")
	bookID   = uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-9a0b1c2d3e4f")
	created  = time.Date(2020, time.March, 4, 10, 30, 0, 0, time.UTC)
)

func fixture() (*Book, *Author) {
	rating := 4.5
	published := naming.Date{Year: 1969, Month: time.March, Day: 1}
	author := &Author{ID: 1, AuthorID: authorID, Name: "Ursula K. Le Guin"}
	book := &Book{
		ID:        7,
		BookID:    bookID,
		Name:      "The Left Hand of Darkness",
		Rating:    &rating,
		Published: &published,
		Created:   created,
		AuthorID:  &authorID,
		Extra:     json.RawMessage(`{"shelf_code":"A1"}`),
		Author:    author,
		Genres: []*Genre{
			{ID: 1, GenreID: uuid.MustParse("11111111-1111-4111-8111-111111111111"), Title: "science fiction"},
			{ID: 2, GenreID: uuid.MustParse("22222222-2222-4222-8222-222222222222"), Title: "anthropology"},
		},
		cache: "ignored",
	}
	author.Books = []*Book{book}
	author.FavouriteBook = book
	return book, author
}

func TestToDocumentNil(t *testing.T) {
	t.Parallel()
	conv := naming.Snake()

	doc, err := ToDocument(conv, nil)
	require.NoError(t, err)
	assert.Nil(t, doc)

	doc, err = ToDocument(conv, (*Book)(nil), "author")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestToDocumentScalars(t *testing.T) {
	t.Parallel()
	book, _ := fixture()

	doc, err := ToDocument(naming.Snake(), book)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"bookId":    bookID.String(),
		"name":      "The Left Hand of Darkness",
		"rating":    4.5,
		"published": "1969-03-01",
		"created":   "2020-03-04T10:30:00Z",
		"authorId":  authorID.String(),
		"extra":     json.RawMessage(`{"shelf_code":"A1"}`),
		"author": map[string]any{
			"authorId": authorID.String(),
			"name":     "Ursula K. Le Guin",
		},
	}, doc)
	assert.NotContains(t, doc, "genres")
	assert.NotContains(t, doc, "id")
}

func TestToDocumentExpandToOne(t *testing.T) {
	t.Parallel()
	book, _ := fixture()

	doc, err := ToDocument(naming.Snake(), book, "author")
	require.NoError(t, err)
	author, ok := doc["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, authorID.String(), author["authorId"])
	assert.NotContains(t, author, "books")
	favourite, ok := author["favouriteBook"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, bookID.String(), favourite["bookId"])
	assert.NotContains(t, favourite, "author")
}

func TestToDocumentExpandToMany(t *testing.T) {
	t.Parallel()
	book, _ := fixture()

	doc, err := ToDocument(naming.Snake(), book, "genres")
	require.NoError(t, err)
	genres, ok := doc["genres"].([]any)
	require.True(t, ok)
	require.Len(t, genres, 2)
	assert.Equal(t, map[string]any{
		"genreId": "11111111-1111-4111-8111-111111111111",
		"title":   "science fiction",
	}, genres[0])
	assert.Equal(t, "anthropology", genres[1].(map[string]any)["title"])
}

func TestToDocumentChain(t *testing.T) {
	t.Parallel()
	book, _ := fixture()

	doc, err := ToDocument(naming.Snake(), book, "author", "books", "genres")
	require.NoError(t, err)
	books := doc["author"].(map[string]any)["books"].([]any)
	require.Len(t, books, 1)
	nested := books[0].(map[string]any)
	assert.Equal(t, bookID.String(), nested["bookId"])
	assert.Len(t, nested["genres"], 2)
}

func TestToDocumentExternalPath(t *testing.T) {
	t.Parallel()
	_, author := fixture()

	doc, err := ToDocument(naming.Snake(), author, "favouriteBook", "genres")
	require.NoError(t, err)
	assert.Len(t, doc["favouriteBook"].(map[string]any)["genres"], 2)
}

func TestToDocumentNilRelationship(t *testing.T) {
	t.Parallel()
	book := &Book{BookID: bookID, Name: "Orphan"}

	doc, err := ToDocument(naming.Snake(), book, "author", "books")
	require.NoError(t, err)
	assert.Contains(t, doc, "author")
	assert.Nil(t, doc["author"])
	assert.Equal(t, "Orphan", doc["name"])
	assert.Nil(t, doc["rating"])
	assert.Nil(t, doc["published"])

	doc, err = ToDocument(naming.Snake(), book, "genres")
	require.NoError(t, err)
	assert.Equal(t, []any{}, doc["genres"])
}

func TestToDocumentUnknownPath(t *testing.T) {
	t.Parallel()
	book, _ := fixture()
	conv := naming.Snake()

	tests := []struct {
		name  string
		paths []string
	}{
		{"missing", []string{"publisher"}},
		{"scalar", []string{"name"}},
		{"nested", []string{"author", "publisher"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToDocument(conv, book, tt.paths...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownPath))
			var perr *PathError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.paths[len(tt.paths)-1], perr.Path)
		})
	}
	assert.Panics(t, func() { MustToDocument(conv, book, "publisher") })
	assert.NotPanics(t, func() { MustToDocument(conv, book, "author") })
}

func TestToDocumentCycle(t *testing.T) {
	t.Parallel()
	book, author := fixture()
	require.Same(t, book, author.FavouriteBook.Author.FavouriteBook)

	doc, err := ToDocument(naming.Snake(), author)
	require.NoError(t, err)
	favourite := doc["favouriteBook"].(map[string]any)
	assert.NotContains(t, favourite, "author")
}

func TestToDocumentNotRecord(t *testing.T) {
	t.Parallel()

	_, err := ToDocument(naming.Snake(), 42)
	assert.Error(t, err)
	_, err = ToDocument(naming.Snake(), time.Now())
	assert.Error(t, err)
}

type Timestamps struct {
	Created time.Time
	Updated time.Time `genyrator:"modified"`
}

type Note struct {
	Timestamps
	NoteID   string            `genyrator:"note_id"`
	PenName  string            // untagged
	Secret   string            `genyrator:"-"`
	Labels   map[string]string `genyrator:"labels"`
	Tags     []string          `genyrator:"tags"`
	Checksum sql.NullString    `genyrator:"checksum"`
	hidden   int
}

func TestToDocumentAttributes(t *testing.T) {
	t.Parallel()
	note := Note{
		Timestamps: Timestamps{Created: created, Updated: created.Add(time.Hour)},
		NoteID:     "n1",
		PenName:    "Tiptree",
		Secret:     "s",
		Labels:     map[string]string{"first_label": "x"},
		Tags:       []string{"b", "a"},
		Checksum:   sql.NullString{String: "abc", Valid: true},
	}
	doc, err := ToDocument(naming.Snake(), note)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"created":  "2020-03-04T10:30:00Z",
		"modified": "2020-03-04T11:30:00Z",
		"noteId":   "n1",
		"penName":  "Tiptree",
		"labels":   map[string]any{"firstLabel": "x"},
		"tags":     []any{"b", "a"},
		"checksum": "abc",
	}, doc)

	note.Checksum = sql.NullString{}
	doc, err = ToDocument(naming.Kebab(), &note)
	require.NoError(t, err)
	assert.Equal(t, "Tiptree", doc["penName"])
	assert.Nil(t, doc["checksum"])
}

func TestToDocuments(t *testing.T) {
	t.Parallel()
	conv := naming.Snake()
	books := []Book{{BookID: bookID, Name: "a"}, {Name: "b"}, {Name: "c"}}

	docs, err := ToDocuments(conv, books)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, name, docs[i].(map[string]any)["name"])
	}

	docs, err = ToDocuments(conv, []*Book(nil))
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = ToDocuments(conv, []*Book{nil, {Name: "x"}})
	require.NoError(t, err)
	assert.Nil(t, docs[0])

	_, err = ToDocuments(conv, books, "publisher")
	assert.ErrorIs(t, err, ErrUnknownPath)

	_, err = ToDocuments(conv, "books")
	assert.Error(t, err)

	list, err := ToList(conv, books[:1])
	require.NoError(t, err)
	assert.Len(t, list["data"], 1)
}

func TestToDocumentConcurrent(t *testing.T) {
	t.Parallel()
	book, _ := fixture()
	conv := naming.Snake()
	want := MustToDocument(conv, book, "genres")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ToDocument(conv, book, "genres")
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
