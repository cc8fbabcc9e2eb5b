// Package document converts records to plain documents for the wire and
// back.
//
// A record is a struct whose exported fields are its attributes. The
// attribute name is taken from the genyrator struct tag, or derived from the
// Go field name with the naming convention:
//
//	type Book struct {
//		ID       int64     `genyrator:"id,pk"`
//		BookID   uuid.UUID `genyrator:"book_id"`
//		Name     string    `genyrator:"name"`
//		Author   *Author   `genyrator:"author"`
//		Genres   []*Genre  `genyrator:"genres"`
//		internal string
//	}
//
// A pointer to (or value of) a record is a to-one relationship, a slice of
// records is a to-many relationship. Everything else is a scalar.
//
// ToDocument copies every scalar and to-one attribute, leaves out to-many
// attributes and storage primary keys, and expands one relationship chain:
//
//	doc, err := document.ToDocument(naming.Snake(), book, "author", "books")
//	// {"bookId": "...", "name": "...", "author": {"authorId": "...", "books": [...]}}
//
// Documents are built fresh on every call and owned by the caller.
package document
