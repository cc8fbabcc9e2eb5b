package document

import (
	"errors"
	"fmt"
)

// ErrUnknownPath is returned when an expand path does not name a
// relationship of the record.
var ErrUnknownPath = errors.New("document: unknown relationship path")

// PathError reports an expand path that does not name a relationship.
type PathError struct {
	Type string // Go type of the record
	Path string // Offending path element
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("document: %s has no relationship %q", e.Type, e.Path)
}

// Unwrap returns ErrUnknownPath.
func (e *PathError) Unwrap() error {
	return ErrUnknownPath
}
