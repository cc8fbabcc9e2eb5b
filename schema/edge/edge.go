package edge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Cardinality of a relationship.
type Cardinality uint8

// Relationship cardinalities.
const (
	Unknown Cardinality = iota
	ToOne               // At most one related record.
	ToMany              // Any number of related records.
)

// String returns the schema-file name of the cardinality.
func (c Cardinality) String() string {
	switch c {
	case ToOne:
		return "to_one"
	case ToMany:
		return "to_many"
	}
	return "unknown"
}

// ParseCardinality returns the cardinality with the given schema-file name.
func ParseCardinality(s string) (Cardinality, error) {
	switch s {
	case "to_one":
		return ToOne, nil
	case "to_many":
		return ToMany, nil
	}
	return Unknown, fmt.Errorf("edge: unknown cardinality %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Cardinality) MarshalText() ([]byte, error) {
	if c != ToOne && c != ToMany {
		return nil, fmt.Errorf("edge: invalid cardinality %d", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cardinality) UnmarshalText(b []byte) error {
	v, err := ParseCardinality(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// CascadePolicy is the declared cascade-delete policy of a relationship as
// written by the user. Schema files may spell it as a boolean or a string;
// the two are kept apart, so the string "true" is not the boolean true.
// The zero value declares no policy.
type CascadePolicy struct {
	raw    string
	isBool bool
}

// CascadeBool returns a boolean policy.
func CascadeBool(v bool) CascadePolicy {
	return CascadePolicy{raw: strconv.FormatBool(v), isBool: true}
}

// CascadeString returns a policy spelled as a string, e.g. "all".
func CascadeString(s string) CascadePolicy {
	return CascadePolicy{raw: s}
}

// Bool returns the value of a boolean policy. ok is false for string policies.
func (p CascadePolicy) Bool() (v, ok bool) {
	return p.raw == "true", p.isBool
}

// IsZero reports if no policy is declared.
func (p CascadePolicy) IsZero() bool {
	return p == CascadePolicy{}
}

// String returns the policy as written.
func (p CascadePolicy) String() string {
	return p.raw
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *CascadePolicy) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		*p = CascadePolicy{}
	case bool:
		*p = CascadeBool(v)
	case string:
		*p = CascadeString(v)
	default:
		return fmt.Errorf("edge: cascade delete policy must be a boolean or a string, got %T", v)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p CascadePolicy) MarshalJSON() ([]byte, error) {
	if v, ok := p.Bool(); ok {
		return json.Marshal(v)
	}
	return json.Marshal(p.raw)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *CascadePolicy) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("edge: cascade delete policy must be a scalar (line %d)", n.Line)
	}
	switch n.ShortTag() {
	case "!!null":
		*p = CascadePolicy{}
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		*p = CascadeBool(b)
	default:
		*p = CascadeString(n.Value)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p CascadePolicy) MarshalYAML() (any, error) {
	if v, ok := p.Bool(); ok {
		return v, nil
	}
	return p.raw, nil
}

// Descriptor holds the declared configuration of a relationship.
type Descriptor struct {
	Target                 string
	Cardinality            Cardinality
	SourceIdentifierColumn string
	SourceForeignKeyColumn string
	TargetForeignKeyColumn string
	TargetIdentifierColumn string
	JoinTable              string
	SecondaryJoinColumn    string
	PropertyName           string
	KeyAliasInJSON         string
	CascadeDelete          CascadePolicy
	Cascade                string
	Nullable               bool
	Lazy                   bool
	PostUpdate             bool
	Comment                string
	Err                    error
}

// Builder for relationships.
type Builder struct {
	desc *Descriptor
}

// One returns a to-one relationship to the target entity, joined on the
// given column of the source entity.
func One(target, sourceIdentifierColumn string) *Builder {
	return newBuilder(target, ToOne, sourceIdentifierColumn)
}

// Many returns a to-many relationship to the target entity, joined on the
// given column of the source entity.
func Many(target, sourceIdentifierColumn string) *Builder {
	return newBuilder(target, ToMany, sourceIdentifierColumn)
}

func newBuilder(target string, c Cardinality, col string) *Builder {
	d := &Descriptor{
		Target:                 target,
		Cardinality:            c,
		SourceIdentifierColumn: col,
	}
	if target == "" {
		d.Err = errors.New("edge: missing target entity")
	}
	return &Builder{desc: d}
}

// SourceForeignKey sets the column of the source entity that stores the
// identifier of the target. Only valid for to-one relationships.
func (b *Builder) SourceForeignKey(col string) *Builder {
	b.desc.SourceForeignKeyColumn = col
	return b
}

// TargetForeignKey sets the column of the target entity that stores the
// identifier of the source.
func (b *Builder) TargetForeignKey(col string) *Builder {
	b.desc.TargetForeignKeyColumn = col
	return b
}

// TargetIdentifier sets the identifier column of the target entity.
func (b *Builder) TargetIdentifier(col string) *Builder {
	b.desc.TargetIdentifierColumn = col
	return b
}

// JoinTable routes the relationship through the given join table.
func (b *Builder) JoinTable(table string) *Builder {
	b.desc.JoinTable = table
	return b
}

// SecondaryJoin sets the join-table column holding the second leg of a
// self-referential join.
func (b *Builder) SecondaryJoin(col string) *Builder {
	b.desc.SecondaryJoinColumn = col
	return b
}

// Property overrides the name of the relationship attribute.
func (b *Builder) Property(name string) *Builder {
	b.desc.PropertyName = name
	return b
}

// KeyAlias sets the key used when the relationship is embedded in a document.
func (b *Builder) KeyAlias(alias string) *Builder {
	b.desc.KeyAliasInJSON = alias
	return b
}

// CascadeDelete sets a boolean cascade-delete policy.
func (b *Builder) CascadeDelete(v bool) *Builder {
	b.desc.CascadeDelete = CascadeBool(v)
	return b
}

// CascadeDeleteAll sets the "all" cascade-delete policy.
func (b *Builder) CascadeDeleteAll() *Builder {
	b.desc.CascadeDelete = CascadeString("all")
	return b
}

// CascadeDeletePolicy sets the cascade-delete policy from its raw textual form.
func (b *Builder) CascadeDeletePolicy(raw string) *Builder {
	b.desc.CascadeDelete = CascadeString(raw)
	return b
}

// Cascade sets the store-specific cascade directive, e.g. "all, delete-orphan".
func (b *Builder) Cascade(directive string) *Builder {
	b.desc.Cascade = directive
	return b
}

// Nullable indicates that the relationship may be absent.
func (b *Builder) Nullable() *Builder {
	b.desc.Nullable = true
	return b
}

// Lazy indicates that the relationship is not embedded in documents by default.
func (b *Builder) Lazy() *Builder {
	b.desc.Lazy = true
	return b
}

// PostUpdate indicates that the relationship is written in a second pass,
// after the owning record exists.
func (b *Builder) PostUpdate() *Builder {
	b.desc.PostUpdate = true
	return b
}

// Comment sets the relationship comment.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the genyrator.Relationship interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
