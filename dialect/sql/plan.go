package sql

import (
	"fmt"
	"slices"
)

// Plan describes how the records of one entity are written.
type Plan struct {
	// Entity names the entity in errors.
	Entity string
	// Table receives the records.
	Table string
	// Key is the column addressing a record in the second phase.
	Key string
	// Columns are written by the first phase insert.
	Columns []string
	// Deferred are written by the second phase update, once the record exists.
	Deferred []string
}

// Validate checks that the plan only names valid identifiers and that
// deferred columns can be addressed.
func (p Plan) Validate() error {
	if !isValidIdentifier(p.Table) {
		return fmt.Errorf("dialect/sql: plan %s: invalid table %q", p.Entity, p.Table)
	}
	for _, c := range append(slices.Clone(p.Columns), p.Deferred...) {
		if !isValidIdentifier(c) {
			return fmt.Errorf("dialect/sql: plan %s: invalid column %q", p.Entity, c)
		}
		if slices.Contains(p.Columns, c) && slices.Contains(p.Deferred, c) {
			return fmt.Errorf("dialect/sql: plan %s: column %q is written in both phases", p.Entity, c)
		}
	}
	if len(p.Deferred) > 0 {
		if !slices.Contains(p.Columns, p.Key) {
			return fmt.Errorf("dialect/sql: plan %s: key %q must be written by the insert", p.Entity, p.Key)
		}
	}
	return nil
}

// known reports if column is written by either phase.
func (p Plan) known(column string) bool {
	return slices.Contains(p.Columns, column) || slices.Contains(p.Deferred, column)
}
