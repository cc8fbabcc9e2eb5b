package field

import (
	"errors"
	"fmt"
)

// A Type represents a column type.
type Type uint8

// Column types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt64
	TypeFloat
	TypeString
	TypeText
	TypeTime
	TypeDate
	TypeUUID
	TypeJSON
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeText:    "text",
	TypeTime:    "time",
	TypeDate:    "date",
	TypeUUID:    "uuid",
	TypeJSON:    "json",
}

// String returns the name of the type as used in schema files.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a known column type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// ParseType returns the Type with the given schema-file name.
func ParseType(s string) (Type, error) {
	for t := TypeBool; t < endTypes; t++ {
		if typeNames[t] == s {
			return t, nil
		}
	}
	return TypeInvalid, fmt.Errorf("field: unknown type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("field: invalid type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	typ, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = typ
	return nil
}

// Descriptor for field configuration.
type Descriptor struct {
	Name       string
	Type       Type
	Nullable   bool
	Index      bool
	Unique     bool
	Identifier bool
	PrimaryKey bool
	Comment    string
	Err        error
}

// Builder is the builder for all column types.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	d := &Descriptor{Name: name, Type: t}
	if name == "" {
		d.Err = errors.New("field: missing name")
	}
	return &Builder{desc: d}
}

// Bool returns a new boolean column.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Int returns a new integer column.
func Int(name string) *Builder { return newBuilder(name, TypeInt) }

// Int64 returns a new 64-bit integer column.
func Int64(name string) *Builder { return newBuilder(name, TypeInt64) }

// Float returns a new floating point column.
func Float(name string) *Builder { return newBuilder(name, TypeFloat) }

// String returns a new string column.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Text returns a new unbounded text column.
func Text(name string) *Builder { return newBuilder(name, TypeText) }

// Time returns a new timestamp column.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// Date returns a new calendar date column.
func Date(name string) *Builder { return newBuilder(name, TypeDate) }

// UUID returns a new unique identifier column.
func UUID(name string) *Builder { return newBuilder(name, TypeUUID) }

// JSON returns a new column holding user JSON. Its keys are never renamed
// when converting documents.
func JSON(name string) *Builder { return newBuilder(name, TypeJSON) }

// Nullable indicates that the column may hold NULL.
func (b *Builder) Nullable() *Builder {
	b.desc.Nullable = true
	if b.desc.Identifier {
		b.desc.Err = fmt.Errorf("field %q: identifier cannot be nullable", b.desc.Name)
	}
	return b
}

// Index adds a non-unique index on the column.
func (b *Builder) Index() *Builder {
	b.desc.Index = true
	return b
}

// Unique adds a unique constraint on the column.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// Identifier marks the column as the external identifier of the entity.
// Identifiers are indexed, unique and not nullable.
func (b *Builder) Identifier() *Builder {
	b.desc.Identifier = true
	b.desc.Index = true
	b.desc.Unique = true
	if b.desc.Nullable {
		b.desc.Err = fmt.Errorf("field %q: identifier cannot be nullable", b.desc.Name)
	}
	return b
}

// PrimaryKey marks the column as the storage primary key.
func (b *Builder) PrimaryKey() *Builder {
	b.desc.PrimaryKey = true
	return b
}

// Comment sets the column comment.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the genyrator.Field interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
