package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the typed errors below.
var (
	// ErrInvalidSchema is matched by every *SchemaError.
	ErrInvalidSchema = errors.New("genyrator: invalid schema")
	// ErrMissingConfig is matched by every *ConfigError.
	ErrMissingConfig = errors.New("genyrator: missing configuration")
	// ErrInvalidRelationship is matched by every *RelationshipError.
	ErrInvalidRelationship = errors.New("genyrator: invalid relationship")
	// ErrGenerationFailed is matched by every *GenerationError.
	ErrGenerationFailed = errors.New("genyrator: code generation failed")
)

// Relationship validation rules, checked by NewRelationship in this order.
// A *RelationshipError also matches the rule it violated.
var (
	ErrAmbiguousJoin               = errors.New("ambiguous join routing: both source and target foreign key columns are set")
	ErrSourceForeignKeyCardinality = errors.New("source-side foreign key is only valid for to-one relationships")
	ErrMissingKeyAlias             = errors.New("cannot determine the external key for this relationship")
	ErrInvalidCascadePolicy        = errors.New("cascade delete policy must be true, false or \"all\"")
)

// message renders "genyrator: <kind><where>" followed by every non-empty
// detail, each after a colon.
func message(kind, where string, details ...string) string {
	var b strings.Builder
	b.WriteString("genyrator: ")
	b.WriteString(kind)
	b.WriteString(where)
	for _, d := range details {
		if d != "" {
			b.WriteString(": ")
			b.WriteString(d)
		}
	}
	return b.String()
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// SchemaError reports an entity or field declaration that cannot be used.
type SchemaError struct {
	Type    string // entity name
	Field   string // column or property, if any
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	var where string
	if e.Type != "" {
		where = " on type " + e.Type
	}
	if e.Field != "" {
		where += " field " + e.Field
	}
	return message("schema error", where, e.Message, causeText(e.Cause))
}

func (e *SchemaError) Unwrap() error { return e.Cause }

// Is matches ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// NewSchemaError returns a SchemaError on the given entity and field.
func NewSchemaError(typeName, fieldName, msg string, cause error) *SchemaError {
	return &SchemaError{Type: typeName, Field: fieldName, Message: msg, Cause: cause}
}

// ConfigError reports an option value that was rejected.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	where := fmt.Sprintf(" for %q", e.Option)
	if e.Value != nil {
		where += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return message("config error", where, e.Message)
}

// Is matches ErrMissingConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError returns a ConfigError for option.
func NewConfigError(option string, value any, msg string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: msg}
}

// RelationshipError reports which relationship declaration broke which rule.
type RelationshipError struct {
	Entity       string // owning entity, if known
	Relationship string // property name, or target entity when unresolved
	Rule         error  // e.g. ErrAmbiguousJoin
	Message      string
	Cause        error
}

func (e *RelationshipError) Error() string {
	var where string
	switch {
	case e.Entity != "" && e.Relationship != "":
		where = " on " + e.Entity + "." + e.Relationship
	case e.Relationship != "":
		where = " on " + e.Relationship
	case e.Entity != "":
		where = " on type " + e.Entity
	}
	return message("relationship error", where, causeText(e.Rule), e.Message, causeText(e.Cause))
}

func (e *RelationshipError) Unwrap() error { return e.Cause }

// Is matches ErrInvalidRelationship and the violated rule.
func (e *RelationshipError) Is(target error) bool {
	return target == ErrInvalidRelationship || (e.Rule != nil && target == e.Rule)
}

// NewRelationshipError returns a RelationshipError for a broken rule.
func NewRelationshipError(entity, relationship string, rule error, msg string) *RelationshipError {
	return &RelationshipError{Entity: entity, Relationship: relationship, Rule: rule, Message: msg}
}

// GenerationError reports a file that could not be rendered, formatted or
// written.
type GenerationError struct {
	Phase   string // "entity" or "graph"
	File    string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	var where string
	if e.Phase != "" {
		where = " in phase " + e.Phase
	}
	if e.File != "" {
		where += " (file: " + e.File + ")"
	}
	return message("generation error", where, e.Message, causeText(e.Cause))
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// Is matches ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError returns a GenerationError for file.
func NewGenerationError(phase, file, msg string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, File: file, Message: msg, Cause: cause}
}
