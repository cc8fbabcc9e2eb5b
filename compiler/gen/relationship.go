package gen

import (
	"fmt"

	"github.com/turner-townsend/genyrator/compiler/load"
	"github.com/turner-townsend/genyrator/naming"
	"github.com/turner-townsend/genyrator/schema/edge"
)

// CascadePolicy is the normalized cascade delete policy of a relationship.
type CascadePolicy uint8

// Cascade delete policies.
const (
	CascadeNone  CascadePolicy = iota // No policy declared.
	CascadeFalse                      // Explicitly disabled.
	CascadeTrue                       // Delete related records.
	CascadeAll                        // Store-specific "all" policy.
)

// String returns the declared form of the policy.
func (p CascadePolicy) String() string {
	switch p {
	case CascadeFalse:
		return "false"
	case CascadeTrue:
		return "true"
	case CascadeAll:
		return "all"
	}
	return "none"
}

// Route describes how the join key of a relationship is located.
// It is implemented by Direct and ViaJoinTable only.
type Route interface {
	route()
}

// Direct is the route of a relationship joined without an intermediary table.
type Direct struct {
	// TargetIdentifierColumn is the identifier column on the target side,
	// in internal form. Empty when not declared.
	TargetIdentifierColumn string
}

// ViaJoinTable is the route of a many-to-many relationship.
type ViaJoinTable struct {
	JoinTable         string
	JoinTableTypeName string // e.g. "BookGenre" for "book_genre"
}

func (Direct) route()       {}
func (ViaJoinTable) route() {}

// relationshipConfig holds the options of NewRelationship.
type relationshipConfig struct {
	owner  string
	strict bool
}

// RelationshipOption configures NewRelationship.
type RelationshipOption func(*relationshipConfig)

// Owner names the entity declaring the relationship in errors.
func Owner(entity string) RelationshipOption {
	return func(c *relationshipConfig) { c.owner = entity }
}

// StrictCascade rejects cascade delete policies other than true, false and
// "all" with ErrInvalidCascadePolicy.
func StrictCascade() RelationshipOption {
	return func(c *relationshipConfig) { c.strict = true }
}

// Relationship is a validated relationship from an owning entity to a
// target entity. It is immutable after construction.
type Relationship struct {
	shared
	route Route
	// target is resolved by NewGraph.
	target *Entity
}

// shared holds the fields common to both routes.
type shared struct {
	owner                  string
	targetEntity           string
	targetEntityInternal   string
	cardinality            edge.Cardinality
	sourceIdentifierColumn string
	sourceForeignKeyColumn string
	targetForeignKeyColumn string
	secondaryJoinColumn    string
	propertyName           string
	jsonPropertyName       string
	keyAliasInJSON         string
	nullable               bool
	lazy                   bool
	cascadeDelete          CascadePolicy
	cascade                string
	deferredUpdate         bool
	comment                string
}

// NewRelationship validates a relationship declaration and derives its names.
// Rules are checked in order and the first violation is returned:
//
//  1. source and target foreign key columns are mutually exclusive
//  2. a source foreign key requires a to-one relationship
//  3. the internal name of the target entity is derived
//  4. the property name defaults to the internal target name
//  5. the JSON key alias defaults to the target identifier column
//  6. the cascade delete policy is normalized
//  7. the direct or join-table route is built
func NewRelationship(conv naming.Convention, d *load.Relationship, opts ...RelationshipOption) (*Relationship, error) {
	cfg := &relationshipConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if d == nil || d.Target == "" {
		return nil, NewRelationshipError(cfg.owner, "", ErrInvalidRelationship, "missing target entity")
	}
	name := d.PropertyName
	if name == "" {
		name = d.Target
	}
	fail := func(rule error, format string, args ...any) error {
		return NewRelationshipError(cfg.owner, name, rule, fmt.Sprintf(format, args...))
	}
	if d.Cardinality != edge.ToOne && d.Cardinality != edge.ToMany {
		return nil, fail(ErrInvalidRelationship, "unknown cardinality %d", d.Cardinality)
	}
	if d.SourceForeignKeyColumn != "" && d.TargetForeignKeyColumn != "" {
		return nil, fail(ErrAmbiguousJoin, "source %q, target %q", d.SourceForeignKeyColumn, d.TargetForeignKeyColumn)
	}
	if d.SourceForeignKeyColumn != "" && d.Cardinality != edge.ToOne {
		return nil, fail(ErrSourceForeignKeyCardinality, "column %q on a %s relationship", d.SourceForeignKeyColumn, d.Cardinality)
	}
	internal := conv.ToInternal(d.Target)
	property := d.PropertyName
	if property == "" {
		property = internal
	}
	alias := d.KeyAliasInJSON
	if alias == "" {
		alias = d.TargetIdentifierColumn
	}
	if alias == "" {
		return nil, fail(ErrMissingKeyAlias, "set key_alias_in_json or target_identifier_column")
	}
	cascade, ok := normalizeCascade(d.CascadeDelete)
	if !ok && cfg.strict {
		return nil, fail(ErrInvalidCascadePolicy, "got %q", d.CascadeDelete.String())
	}
	s := shared{
		owner:                  cfg.owner,
		targetEntity:           d.Target,
		targetEntityInternal:   internal,
		cardinality:            d.Cardinality,
		sourceIdentifierColumn: conv.ToInternal(d.SourceIdentifierColumn),
		sourceForeignKeyColumn: conv.ToInternal(d.SourceForeignKeyColumn),
		targetForeignKeyColumn: conv.ToInternal(d.TargetForeignKeyColumn),
		secondaryJoinColumn:    conv.ToInternal(d.SecondaryJoinColumn),
		propertyName:           property,
		jsonPropertyName:       conv.ToExternal(property),
		keyAliasInJSON:         conv.ToExternal(alias),
		nullable:               d.Nullable,
		lazy:                   d.Lazy,
		cascadeDelete:          cascade,
		cascade:                d.Cascade,
		deferredUpdate:         d.PostUpdate,
		comment:                d.Comment,
	}
	if d.JoinTable == "" {
		return newDirect(s, conv.ToInternal(d.TargetIdentifierColumn)), nil
	}
	return newViaJoinTable(s, d.JoinTable, conv.TypeName(d.JoinTable)), nil
}

// MustNewRelationship is like NewRelationship but panics on error.
func MustNewRelationship(conv naming.Convention, d *load.Relationship, opts ...RelationshipOption) *Relationship {
	r, err := NewRelationship(conv, d, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func newDirect(s shared, targetIdentifierColumn string) *Relationship {
	return &Relationship{
		shared: s,
		route:  Direct{TargetIdentifierColumn: targetIdentifierColumn},
	}
}

func newViaJoinTable(s shared, joinTable, typeName string) *Relationship {
	return &Relationship{
		shared: s,
		route:  ViaJoinTable{JoinTable: joinTable, JoinTableTypeName: typeName},
	}
}

// normalizeCascade maps a declared policy to CascadePolicy. It reports false
// for policies that were coerced to CascadeNone.
func normalizeCascade(p edge.CascadePolicy) (CascadePolicy, bool) {
	if p.IsZero() {
		return CascadeNone, true
	}
	if v, ok := p.Bool(); ok {
		if v {
			return CascadeTrue, true
		}
		return CascadeFalse, true
	}
	if p.String() == "all" {
		return CascadeAll, true
	}
	return CascadeNone, false
}

// Owner returns the name of the entity declaring the relationship.
func (r *Relationship) Owner() string { return r.owner }

// TargetEntity returns the name of the target entity, e.g. "Author".
func (r *Relationship) TargetEntity() string { return r.targetEntity }

// TargetEntityInternal returns the internal name of the target entity, e.g. "author".
func (r *Relationship) TargetEntityInternal() string { return r.targetEntityInternal }

// Cardinality returns the cardinality of the relationship.
func (r *Relationship) Cardinality() edge.Cardinality { return r.cardinality }

// ToMany reports if the relationship yields a collection.
func (r *Relationship) ToMany() bool { return r.cardinality == edge.ToMany }

// SourceIdentifierColumn returns the join column of the owning entity.
func (r *Relationship) SourceIdentifierColumn() string { return r.sourceIdentifierColumn }

// SourceForeignKeyColumn returns the owning entity column that stores the
// target identifier, or "".
func (r *Relationship) SourceForeignKeyColumn() string { return r.sourceForeignKeyColumn }

// TargetForeignKeyColumn returns the target entity column that stores the
// owner identifier, or "".
func (r *Relationship) TargetForeignKeyColumn() string { return r.targetForeignKeyColumn }

// SecondaryJoinColumn returns the join-table column of the second leg of a
// self-referential join, or "".
func (r *Relationship) SecondaryJoinColumn() string { return r.secondaryJoinColumn }

// PropertyName returns the internal name of the relationship attribute.
func (r *Relationship) PropertyName() string { return r.propertyName }

// JSONPropertyName returns the external name of the relationship attribute.
func (r *Relationship) JSONPropertyName() string { return r.jsonPropertyName }

// KeyAliasInJSON returns the external key used when the relationship is
// embedded inline. It is never empty.
func (r *Relationship) KeyAliasInJSON() string { return r.keyAliasInJSON }

// Nullable reports if the relationship may be absent.
func (r *Relationship) Nullable() bool { return r.nullable }

// Lazy reports if the relationship is left out of documents by default.
func (r *Relationship) Lazy() bool { return r.lazy }

// CascadeDelete returns the normalized cascade delete policy.
func (r *Relationship) CascadeDelete() CascadePolicy { return r.cascadeDelete }

// Cascade returns the store-specific cascade directive.
func (r *Relationship) Cascade() string { return r.cascade }

// DeferredUpdate reports if the relationship is written after the owning
// record exists.
func (r *Relationship) DeferredUpdate() bool { return r.deferredUpdate }

// Comment returns the relationship comment.
func (r *Relationship) Comment() string { return r.comment }

// Route returns either a Direct or a ViaJoinTable value.
func (r *Relationship) Route() Route { return r.route }

// Target returns the resolved target entity. It is nil for relationships
// that are not part of a Graph.
func (r *Relationship) Target() *Entity { return r.target }

// String implements fmt.Stringer.
func (r *Relationship) String() string {
	if r.owner == "" {
		return r.propertyName
	}
	return r.owner + "." + r.propertyName
}
