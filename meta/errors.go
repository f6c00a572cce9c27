package meta

import (
	"errors"
	"fmt"
)

// ErrDuplicateDecorator is matched by every *DuplicateDecoratorError.
var ErrDuplicateDecorator = errors.New("meta: duplicate decorator")

// DuplicateDecoratorError is returned when a property name is registered
// with a reference kind different from the one it already carries.
type DuplicateDecoratorError struct {
	Entity   string
	Property string
	Existing ReferenceKind
	Incoming ReferenceKind
}

func (e *DuplicateDecoratorError) Error() string {
	return fmt.Sprintf("meta: duplicate decorator on %s.%s: declared as %s, cannot redeclare as %s",
		e.Entity, e.Property, e.Existing, e.Incoming)
}

func (e *DuplicateDecoratorError) Is(target error) bool {
	return target == ErrDuplicateDecorator
}

// TagError reports an `orm` tag or directive that could not be parsed.
type TagError struct {
	Entity string
	Field  string
	Tag    string
	Err    error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("meta: %s.%s: invalid orm tag %q: %v", e.Entity, e.Field, e.Tag, e.Err)
}

func (e *TagError) Unwrap() error { return e.Err }
