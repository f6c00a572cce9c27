package gen

import (
	"strings"

	"github.com/mickamy/ormmeta/internal/naming"
	"github.com/mickamy/ormmeta/meta"
)

// Register installs every parsed struct into store, keyed by
// meta.SourceType. Tag errors are reported before the struct's metadata is
// touched.
func Register(store *meta.Store, infos []*StructInfo) ([]*meta.EntityMetadata, error) {
	entities := make([]*meta.EntityMetadata, 0, len(infos))
	for _, info := range infos {
		e, err := registerStruct(store, info)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

type pendingProperty struct {
	name   string
	kind   meta.ReferenceKind
	target string
	member meta.MemberDescriptor
	opts   meta.PropertyOptions
}

func registerStruct(store *meta.Store, info *StructInfo) (*meta.EntityMetadata, error) {
	id := meta.SourceType{Package: info.Package, Type: info.Name}

	pending, err := collectProperties(id, info)
	if err != nil {
		return nil, err
	}

	return store.Define(id, func(b *meta.Builder) {
		if info.TableName != "" {
			b.Table(info.TableName)
		}
		for _, p := range pending {
			switch {
			case p.kind != meta.Scalar:
				b.Reference(p.name, p.kind, p.target, p.opts)
			case p.member.IsMethod():
				b.Method(p.name, p.opts)
			case p.member.Shape == meta.ShapeAccessor:
				b.Accessor(p.name, p.member.HasGetter, p.member.HasSetter, p.opts)
			default:
				b.Property(p.name, p.opts)
			}
		}
	})
}

func collectProperties(id meta.SourceType, info *StructInfo) ([]pendingProperty, error) {
	var pending []pendingProperty

	for _, f := range info.Fields {
		if f.Tag == "-" || (!f.Exported && !f.Tagged) {
			continue
		}
		opts, err := meta.ParseTag(f.Tag)
		if err != nil {
			return nil, &meta.TagError{Entity: id.String(), Field: f.Name, Tag: f.Tag, Err: err}
		}
		if opts.Type == "" {
			opts.Type = f.GoType
		}

		p := pendingProperty{name: f.Name, member: meta.Field(), opts: opts}
		if f.Rel != "" {
			kindName, _, _ := strings.Cut(f.Rel, ",")
			kind, err := meta.ParseReferenceKind(strings.TrimSpace(kindName))
			if err != nil {
				return nil, &meta.TagError{Entity: id.String(), Field: f.Name, Tag: f.Rel, Err: err}
			}
			p.kind = kind
			if kind.IsRelation() {
				p.target = elemName(f.GoType)
			}
		} else if !f.Exported {
			getter := hasMethod(info, naming.Capitalize(f.Name), 0)
			setter := hasMethod(info, "Set"+naming.Capitalize(f.Name), 1)
			if getter || setter {
				p.member = meta.Accessor(getter, setter)
			}
		}
		pending = append(pending, p)
	}

	for _, m := range info.Methods {
		if !m.Property {
			continue
		}
		opts, err := meta.ParseTag(m.Directive)
		if err != nil {
			return nil, &meta.TagError{Entity: id.String(), Field: m.Name, Tag: m.Directive, Err: err}
		}
		pending = append(pending, pendingProperty{name: m.Name, member: meta.Method(), opts: opts})
	}
	return pending, nil
}

func hasMethod(info *StructInfo, name string, params int) bool {
	m, ok := info.Method(name)
	return ok && m.Params == params
}
