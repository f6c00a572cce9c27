package meta

// Builder registers the properties of one entity. After the first failed
// registration every further call is ignored and Err reports the failure.
type Builder struct {
	store  *Store
	entity *EntityMetadata
	err    error
	checks int
}

// Definer is implemented by entity structs that declare properties Store.Load
// cannot discover from struct fields, such as method-backed properties.
type Definer interface {
	DefineMetadata(b *Builder)
}

// Define runs fn against the entity T and returns its metadata, or the first
// registration error.
func Define[T any](s *Store, fn func(b *Builder)) (*EntityMetadata, error) {
	return s.Define(TypeOf[T](), fn)
}

// Define runs fn against the entity identified by id.
func (s *Store) Define(id Identity, fn func(b *Builder)) (*EntityMetadata, error) {
	b := &Builder{store: s, entity: s.GetOrCreate(id)}
	fn(b)
	if b.err != nil {
		return nil, b.err
	}
	return b.entity, nil
}

// Entity returns the metadata being built.
func (b *Builder) Entity() *EntityMetadata { return b.entity }

// Err returns the first registration error.
func (b *Builder) Err() error { return b.err }

// Property registers a plain stored field. opts holds at most one element.
func (b *Builder) Property(name string, opts ...PropertyOptions) *Builder {
	return b.register(name, Scalar, "", Field(), opts)
}

// Accessor registers a field exposed through a getter and/or a setter.
func (b *Builder) Accessor(name string, getter, setter bool, opts ...PropertyOptions) *Builder {
	return b.register(name, Scalar, "", Accessor(getter, setter), opts)
}

// Method registers a computed, non-persisted property.
func (b *Builder) Method(name string, opts ...PropertyOptions) *Builder {
	return b.register(name, Scalar, "", Method(), opts)
}

// Reference registers a relational or embedded property pointing at target.
func (b *Builder) Reference(name string, kind ReferenceKind, target string, opts ...PropertyOptions) *Builder {
	return b.register(name, kind, target, Field(), opts)
}

// Check adds a check constraint; an empty property makes it entity-level.
// The n-th Check of a Define pass replaces the n-th check of an earlier pass
// on the same entity, so re-running a definition does not duplicate checks.
func (b *Builder) Check(property string, expr Expression) *Builder {
	if b.err != nil || expr.IsZero() {
		return b
	}
	setBuilderCheck(b.entity, b.checks, property, expr)
	b.checks++
	return b
}

// Table pins the table name.
func (b *Builder) Table(name string) *Builder {
	if b.err == nil {
		b.entity.SetTableName(name)
	}
	return b
}

func (b *Builder) register(name string, kind ReferenceKind, target string, m MemberDescriptor, opts []PropertyOptions) *Builder {
	if b.err != nil {
		return b
	}
	var o PropertyOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	b.err = b.store.register(b.entity.id, name, kind, target, m, o)
	return b
}

// fail records err unless an earlier error is already recorded.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
