// Package edge provides fluent builders for declaring relationships between
// entities.
//
// A relationship is declared on its source entity and points to a target
// entity by name. Cardinality is chosen by the constructor:
//
//	// Book -> Author, the foreign key lives on the book.
//	edge.One("Author", "author_id").
//		SourceForeignKey("author_id").
//		TargetIdentifier("author_id")
//
//	// Author -> Books, the foreign key lives on the book.
//	edge.Many("Book", "author_id").
//		TargetForeignKey("author_id").
//		TargetIdentifier("book_id").
//		Lazy()
//
// # Join tables
//
// Many-to-many relationships are routed through a join table:
//
//	edge.Many("Genre", "book_id").
//		JoinTable("book_genre").
//		KeyAlias("genre_id")
//
// Self-referential many-to-many relationships also need the column that
// holds the second leg of the join:
//
//	edge.Many("Book", "book_id").
//		JoinTable("related_book").
//		SecondaryJoin("related_book_id").
//		Property("related_books").
//		KeyAlias("book_id")
//
// # Reference cycles
//
// When two entities reference each other, one side must be written after
// both records exist. PostUpdate marks that side:
//
//	edge.One("Book", "favourite_book_id").
//		SourceForeignKey("favourite_book_id").
//		TargetIdentifier("book_id").
//		Nullable().
//		PostUpdate()
//
// Descriptors are validated when the graph is built (see compiler/gen).
package edge
