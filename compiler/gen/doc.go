// Package gen validates loaded entity schemas and generates record code.
//
// The pipeline is:
//
//	Schema files or Go schemas (compiler/load)
//	        ↓
//	   NewRelationship, once per declared relationship
//	        ↓
//	   Graph (entities with resolved relationships)
//	        ↓
//	   Generator (record structs, paths and write plans)
//
// # Relationships
//
// NewRelationship is the single place where relationship declarations are
// validated. It fails fast on the first violated rule and returns a
// *RelationshipError that names the owning entity, the relationship and the
// rule:
//
//	rel, err := gen.NewRelationship(naming.Snake(), &load.Relationship{
//		Target:                 "Author",
//		Cardinality:            edge.ToOne,
//		SourceIdentifierColumn: "author_id",
//		SourceForeignKeyColumn: "author_id",
//		TargetIdentifierColumn: "author_id",
//	})
//	// rel.PropertyName() == "author"
//	// rel.KeyAliasInJSON() == "authorId"
//
// A relationship is routed either directly or through a join table. The
// route is a closed set of two variants, so consumers switch on it:
//
//	switch r := rel.Route().(type) {
//	case gen.Direct:
//		_ = r.TargetIdentifierColumn
//	case gen.ViaJoinTable:
//		_ = r.JoinTableTypeName
//	}
//
// # Cascade delete policies
//
// Declared policies other than true, false and "all" are coerced to
// CascadeNone by default. WithStrictCascade turns them into errors.
//
// # Deferred updates
//
// Relationships declared with post_update are written in a second phase,
// after the owning record exists. Graph.WritePlan separates the columns of
// each phase and NewGraph rejects foreign key cycles that no deferred
// relationship breaks.
package gen
