package meta

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mickamy/ormmeta/internal/naming"
)

// Load registers the struct type of model, field by field in declaration
// order:
//
//   - exported fields are plain stored properties;
//   - unexported fields tagged `orm` whose pointer type has X() and/or SetX(v)
//     methods are accessor properties, other tagged unexported fields are
//     plain;
//   - `orm:"-"` and embedded fields are skipped;
//   - `rel:"m:1"` (or many_to_one, has_many, ...) registers a relational kind
//     targeting the field's element type.
//
// When model implements Definer, DefineMetadata runs after the fields.
// The property Type defaults to the Go type of the field.
func (s *Store) Load(model any) (*EntityMetadata, error) {
	if model == nil {
		return nil, fmt.Errorf("meta: cannot load nil model")
	}
	t := indirect(reflect.TypeOf(model))
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("meta: %s is not a struct", t)
	}

	return s.Define(t, func(b *Builder) {
		ptr := reflect.PointerTo(t)
		for i := range t.NumField() {
			if b.err != nil {
				return
			}
			loadField(b, ptr, t.Field(i))
		}
		if b.err != nil {
			return
		}
		if d, ok := reflect.New(t).Interface().(Definer); ok {
			d.DefineMetadata(b)
		}
	})
}

func loadField(b *Builder, ptr reflect.Type, f reflect.StructField) {
	if f.Anonymous {
		return
	}
	body, tagged := f.Tag.Lookup("orm")
	if body == "-" || (!f.IsExported() && !tagged) {
		return
	}

	opts, err := ParseTag(body)
	if err != nil {
		b.fail(&TagError{Entity: b.entity.id.String(), Field: f.Name, Tag: body, Err: err})
		return
	}
	if opts.Type == "" {
		opts.Type = f.Type.String()
	}

	if rel, ok := f.Tag.Lookup("rel"); ok {
		kindName, _, _ := strings.Cut(rel, ",")
		kind, err := ParseReferenceKind(strings.TrimSpace(kindName))
		if err != nil {
			b.fail(&TagError{Entity: b.entity.id.String(), Field: f.Name, Tag: rel, Err: err})
			return
		}
		var target string
		if kind.IsRelation() {
			target = targetName(f.Type)
		}
		b.Reference(f.Name, kind, target, opts)
		return
	}

	m := Field()
	if !f.IsExported() {
		getter := hasMethod(ptr, naming.Capitalize(f.Name), 0)
		setter := hasMethod(ptr, "Set"+naming.Capitalize(f.Name), 1)
		if getter || setter {
			m = Accessor(getter, setter)
		}
	}
	b.register(f.Name, Scalar, "", m, []PropertyOptions{opts})
}

// hasMethod reports whether t has a method name taking params arguments
// besides the receiver.
func hasMethod(t reflect.Type, name string, params int) bool {
	m, ok := t.MethodByName(name)
	return ok && m.Type.NumIn() == params+1
}

// targetName unwraps pointers, slices and maps down to the named entity type.
func targetName(t reflect.Type) string {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			return t.Name()
		}
	}
}
