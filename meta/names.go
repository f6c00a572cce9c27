package meta

// ResolveNames computes the alias of a property and rewrites opts in place.
//
// A Name differing from propertyName on a field or accessor is a legacy
// column name: it moves to FieldName unless a field name was given
// explicitly, and Name is cleared. On a method-backed member Name is kept and
// the returned alias becomes the canonical property name.
func ResolveNames(propertyName string, m MemberDescriptor, opts *PropertyOptions) string {
	alias := opts.Name
	if alias == "" {
		alias = propertyName
	}
	if alias != propertyName && !m.IsMethod() {
		if opts.FieldName == "" && len(opts.FieldNames) == 0 {
			opts.FieldName = alias
		}
		opts.Name = ""
	}
	return alias
}
