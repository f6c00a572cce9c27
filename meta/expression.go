package meta

// Expression is either a literal SQL fragment or a function that produces one
// once the schema generator knows the table alias. This package never
// evaluates deferred expressions.
type Expression struct {
	literal  string
	deferred func(alias string) string
}

// Literal wraps a SQL fragment taken verbatim.
func Literal(sql string) Expression {
	return Expression{literal: sql}
}

// Deferred wraps a callback invoked with the table alias at generation time.
func Deferred(fn func(alias string) string) Expression {
	return Expression{deferred: fn}
}

// IsZero reports whether no expression was given.
func (e Expression) IsZero() bool {
	return e.literal == "" && e.deferred == nil
}

// IsDeferred reports whether the expression needs an alias to resolve.
func (e Expression) IsDeferred() bool {
	return e.deferred != nil
}

// Resolve returns the SQL fragment for alias. Literals ignore alias.
func (e Expression) Resolve(alias string) string {
	if e.deferred != nil {
		return e.deferred(alias)
	}
	return e.literal
}

// Check is a constraint expression collected for an entity. Property is empty
// for entity-level checks.
type Check struct {
	Property   string
	Expression Expression

	// fromOptions marks checks installed by the registrar from
	// PropertyOptions.Check, which a later registration of the same
	// property replaces.
	fromOptions bool

	// fromBuilder marks checks declared with Builder.Check, addressed by
	// their position among the entity's Builder checks.
	fromBuilder bool
}
