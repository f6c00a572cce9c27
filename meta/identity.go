// Package meta builds the canonical schema description of entity types from
// per-property registrations: property naming, accessor shape, reference
// kind, type descriptors, schema flags and check constraints.
//
// Registration happens once per process, while entity types are defined,
// through Store.Register, the Builder returned by Define, or Store.Load for
// tagged structs. Downstream schema generators and persistence layers read
// the resulting EntityMetadata and treat it as immutable.
package meta

import (
	"reflect"
)

// Identity identifies an entity class. reflect.Type satisfies it, so entities
// loaded from Go types are keyed by type identity rather than by name.
type Identity interface {
	Name() string
	String() string
}

// SourceType identifies a struct declared in source code that was never
// loaded as a reflect.Type, e.g. by a go/ast based generator.
type SourceType struct {
	Package string
	Type    string
}

// Name returns the bare type name.
func (s SourceType) Name() string { return s.Type }

// String returns the package-qualified type name.
func (s SourceType) String() string {
	if s.Package == "" {
		return s.Type
	}
	return s.Package + "." + s.Type
}

// TypeOf returns the identity of T, dereferencing pointer types.
func TypeOf[T any]() Identity {
	return indirect(reflect.TypeFor[T]())
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
