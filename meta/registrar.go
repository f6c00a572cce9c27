package meta

import (
	"go.uber.org/zap"
)

// Register installs a scalar property on the entity identified by id.
//
// The name is validated against earlier registrations first, so a failed
// registration leaves the entity untouched. Registering the same scalar
// property again replaces the earlier record in place.
func (s *Store) Register(id Identity, propertyName string, m MemberDescriptor, opts PropertyOptions) error {
	return s.register(id, propertyName, Scalar, "", m, opts)
}

// RegisterReference installs a relational or embedded property pointing at
// target. It shares naming and conflict rules with Register.
func (s *Store) RegisterReference(id Identity, propertyName string, kind ReferenceKind, target string, m MemberDescriptor, opts PropertyOptions) error {
	return s.register(id, propertyName, kind, target, m, opts)
}

func (s *Store) register(id Identity, propertyName string, kind ReferenceKind, target string, m MemberDescriptor, opts PropertyOptions) error {
	entity := s.GetOrCreate(id)

	entity.mu.Lock()
	defer entity.mu.Unlock()

	if err := validateSingleReferenceKind(entity, propertyName, kind); err != nil {
		return err
	}

	alias := ResolveNames(propertyName, m, &opts)
	prop := newPropertyRecord(propertyName, kind, target, opts)
	InspectMember(m, prop, alias)

	if prop.Name != propertyName {
		if err := validateSingleReferenceKind(entity, prop.Name, kind); err != nil {
			return err
		}
	}

	entity.put(prop)
	setOptionsCheck(entity, prop.Name, opts.Check)

	s.logger.Debug("property registered",
		zap.Stringer("entity", id),
		zap.String("property", prop.Name),
		zap.Stringer("kind", kind),
		zap.Stringer("member", m.Shape),
	)
	return nil
}

// newPropertyRecord copies every option the registrar does not interpret
// onto a fresh record named propertyName.
func newPropertyRecord(propertyName string, kind ReferenceKind, target string, opts PropertyOptions) *PropertyRecord {
	p := &PropertyRecord{
		Name:   propertyName,
		Kind:   kind,
		Target: target,

		Type:       opts.Type,
		CustomType: opts.CustomType,
		ColumnType: opts.ColumnType,

		Persist:      opts.Persist,
		TrackChanges: opts.TrackChanges,

		Nullable:         opts.Nullable,
		Unique:           opts.Unique,
		Index:            opts.Index,
		Primary:          opts.Primary,
		Version:          opts.Version,
		ConcurrencyCheck: opts.ConcurrencyCheck,
		Hidden:           opts.Hidden,
		Lazy:             opts.Lazy,

		Length:        opts.Length,
		Precision:     opts.Precision,
		Scale:         opts.Scale,
		Unsigned:      opts.Unsigned,
		AutoIncrement: opts.AutoIncrement,

		Default:    opts.Default,
		DefaultRaw: opts.DefaultRaw,
		Formula:    opts.Formula,

		OnCreate: opts.OnCreate,
		OnUpdate: opts.OnUpdate,

		Serializer:          opts.Serializer,
		SerializedName:      opts.SerializedName,
		CustomOrder:         cloneStrings(opts.CustomOrder),
		Comment:             opts.Comment,
		Extra:               opts.Extra,
		IgnoreSchemaChanges: cloneStrings(opts.IgnoreSchemaChanges),
	}

	switch {
	case len(opts.FieldNames) > 0:
		p.FieldNames = cloneStrings(opts.FieldNames)
	case opts.FieldName != "":
		p.FieldNames = []string{opts.FieldName}
	}
	return p
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
