package dialect

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Dialect names for external usage.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Dialects lists the supported dialects.
var Dialects = []string{Postgres, MySQL, SQLite}

// Valid reports if name is a supported dialect.
func Valid(name string) bool {
	return slices.Contains(Dialects, name)
}

// Check returns an error if name is not a supported dialect.
func Check(name string) error {
	if !Valid(name) {
		return fmt.Errorf("dialect: unsupported dialect %q", name)
	}
	return nil
}

// Placeholder returns the n-th (1-based) bind parameter of a statement.
func Placeholder(name string, n int) string {
	if name == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Quote quotes an identifier for the given dialect. Qualified names such
// as "library.books" are quoted part by part.
func Quote(name, ident string) string {
	q, esc := `"`, `""`
	if name == MySQL {
		q, esc = "`", "``"
	}
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		parts[i] = q + strings.ReplaceAll(p, q, esc) + q
	}
	return strings.Join(parts, ".")
}
