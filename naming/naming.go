// Package naming translates identifiers between the internal convention used
// by entity and relationship descriptors (lowercase words joined by a
// delimiter, e.g. "book_id") and the external convention used on the wire
// (lower camel case, e.g. "bookId").
//
// A Convention is an immutable value. There is no package-level default that
// callers could mutate; every component that renames identifiers receives the
// convention it should use:
//
//	conv := naming.Snake()
//	conv.ToExternal("book_id") // "bookId"
//	conv.ToInternal("bookId")  // "book_id"
//
// Digits and every upper case letter start a new word in the internal form
// ("address_1", "point_x_y"), which is the canonical form the round trip is
// defined on. Go identifiers with initialisms go through FromGoName instead.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
)

// rules is the inflection ruleset used for plural and singular forms.
var rules = inflect.NewDefaultRuleset()

// Convention describes one internal/external identifier convention.
type Convention struct {
	delim byte
}

// Snake returns the system convention: "_" delimited internal names and
// lower camel case external names.
func Snake() Convention { return Convention{delim: '_'} }

// Kebab returns a convention with "-" delimited internal names.
func Kebab() Convention { return Convention{delim: '-'} }

// New returns a convention that joins internal words with delim.
// The delimiter must be one of '_', '-' or '.'.
func New(delim byte) (Convention, error) {
	switch delim {
	case '_', '-', '.':
		return Convention{delim: delim}, nil
	}
	return Convention{}, fmt.Errorf("naming: unsupported delimiter %q", delim)
}

// MustNew is like New but panics on an unsupported delimiter.
func MustNew(delim byte) Convention {
	c, err := New(delim)
	if err != nil {
		panic(err)
	}
	return c
}

// Delimiter returns the internal word delimiter. The zero Convention
// behaves as Snake.
func (c Convention) Delimiter() byte {
	if c.delim == 0 {
		return '_'
	}
	return c.delim
}

// ToExternal converts an identifier to its external (wire) form.
func (c Convention) ToExternal(name string) string {
	return strcase.ToLowerCamel(name)
}

// ToInternal converts an identifier to its internal form. Every upper case
// rune starts a word, so "pointXY" becomes "point_x_y" and the round trip
// through ToExternal holds for single-letter words. Runs of digits form a
// word of their own.
func (c Convention) ToInternal(name string) string {
	d := c.Delimiter()
	var (
		b         strings.Builder
		pending   bool // separator seen since the last rune written
		lastDigit bool
	)
	b.Grow(len(name) + 4)
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' || r == '.' || r == rune(d) {
			pending = b.Len() > 0
			continue
		}
		digit := unicode.IsDigit(r)
		if b.Len() > 0 && (pending || unicode.IsUpper(r) || digit != lastDigit) {
			b.WriteByte(d)
		}
		b.WriteRune(unicode.ToLower(r))
		pending, lastDigit = false, digit
	}
	return b.String()
}

// FromGoName converts a Go identifier to its internal form. Unlike
// ToInternal it keeps initialisms together: "AuthorID" becomes "author_id".
func (c Convention) FromGoName(name string) string {
	return strcase.ToDelimited(name, c.Delimiter())
}

// TypeName returns the Go/ORM type name of an identifier in either
// convention, e.g. "book_genre" and "bookGenre" both become "BookGenre".
func (c Convention) TypeName(name string) string {
	return strcase.ToCamel(name)
}

// Plural returns the internal form of the plural of name.
// Used for table names: "BookGenre" becomes "book_genres".
func (c Convention) Plural(name string) string {
	return c.ToInternal(rules.Pluralize(c.TypeName(name)))
}

// Singular returns the internal form of the singular of name.
func (c Convention) Singular(name string) string {
	return c.ToInternal(rules.Singularize(c.TypeName(name)))
}

// String implements fmt.Stringer.
func (c Convention) String() string {
	return fmt.Sprintf("naming.Convention(%q)", c.Delimiter())
}
