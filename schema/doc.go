// Package schema groups the builders used to declare entities in Go:
//
//   - [field]: column builders
//   - [edge]: relationship builders
//   - [mixin]: reusable sets of columns
//
// An entity embeds genyrator.Schema and returns builders from its Fields,
// Relationships and Mixin methods. compiler/load turns it into the same
// descriptor that YAML and JSON schema files decode to.
package schema
