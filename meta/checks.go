package meta

// AddCheck appends a check constraint for property in declaration order.
func AddCheck(entity *EntityMetadata, property string, expr Expression) {
	entity.mu.Lock()
	defer entity.mu.Unlock()

	addCheck(entity, property, expr)
}

// AddEntityCheck appends a check constraint that belongs to no property.
func AddEntityCheck(entity *EntityMetadata, expr Expression) {
	AddCheck(entity, "", expr)
}

func addCheck(entity *EntityMetadata, property string, expr Expression) {
	if expr.IsZero() {
		return
	}
	entity.checks = append(entity.checks, Check{Property: property, Expression: expr})
}

// setOptionsCheck installs the check carried by a property's options,
// replacing the one a previous registration of the same property installed.
// A zero expr drops that previous check.
func setOptionsCheck(entity *EntityMetadata, property string, expr Expression) {
	for i, c := range entity.checks {
		if c.Property != property || !c.fromOptions {
			continue
		}
		if expr.IsZero() {
			entity.checks = append(entity.checks[:i:i], entity.checks[i+1:]...)
			return
		}
		entity.checks[i].Expression = expr
		return
	}
	if expr.IsZero() {
		return
	}
	entity.checks = append(entity.checks, Check{Property: property, Expression: expr, fromOptions: true})
}

// setBuilderCheck installs the n-th check a Builder declares during one Define
// pass, overwriting the n-th check an earlier pass installed.
func setBuilderCheck(entity *EntityMetadata, n int, property string, expr Expression) {
	entity.mu.Lock()
	defer entity.mu.Unlock()

	seen := 0
	for i, c := range entity.checks {
		if !c.fromBuilder {
			continue
		}
		if seen == n {
			entity.checks[i].Property = property
			entity.checks[i].Expression = expr
			return
		}
		seen++
	}
	entity.checks = append(entity.checks, Check{Property: property, Expression: expr, fromBuilder: true})
}
