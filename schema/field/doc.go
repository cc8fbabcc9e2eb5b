// Package field provides fluent builders for declaring entity columns.
//
// Field names are internal (snake_case) identifiers:
//
//	field.UUID("book_id").Identifier()
//	field.String("name").Index()
//	field.Float("rating").Nullable()
//	field.Date("published").Nullable()
//	field.Time("created")
//
// # Identifier and primary key
//
// The identifier column is the externally visible key of an entity (it is
// what a REST path segment such as /book/{bookId} addresses). The primary key
// is the storage surrogate key; it is never rendered into documents.
//
//	field.Int64("id").PrimaryKey()
//	field.UUID("book_id").Identifier()
package field
