package meta

// MemberShape classifies the member a property is declared on.
type MemberShape int

const (
	ShapeField MemberShape = iota
	ShapeAccessor
	ShapeMethod
)

func (s MemberShape) String() string {
	switch s {
	case ShapeField:
		return "field"
	case ShapeAccessor:
		return "accessor"
	case ShapeMethod:
		return "method"
	default:
		return "unknown"
	}
}

// MemberDescriptor describes the declared member: a stored field, a
// getter/setter pair backed by a field, or a method computing the value.
type MemberDescriptor struct {
	Shape     MemberShape
	HasGetter bool
	HasSetter bool
}

// Field describes a plain stored field.
func Field() MemberDescriptor {
	return MemberDescriptor{Shape: ShapeField}
}

// Accessor describes a field exposed through getter and/or setter methods.
func Accessor(getter, setter bool) MemberDescriptor {
	return MemberDescriptor{Shape: ShapeAccessor, HasGetter: getter, HasSetter: setter}
}

// Method describes a computed property with no storage of its own.
func Method() MemberDescriptor {
	return MemberDescriptor{Shape: ShapeMethod, HasGetter: true}
}

// IsMethod reports whether the member is method-backed.
func (m MemberDescriptor) IsMethod() bool {
	return m.Shape == ShapeMethod
}

// InspectMember sets the accessor flags of p from m. A method-backed member
// is never persisted, reports the "method" runtime type and takes alias as
// its canonical name.
func InspectMember(m MemberDescriptor, p *PropertyRecord, alias string) {
	switch m.Shape {
	case ShapeAccessor:
		p.Getter = m.HasGetter
		p.Setter = m.HasSetter
	case ShapeMethod:
		p.Getter = true
		p.Setter = false
		p.Persist = Bool(false)
		p.Type = "method"
		p.GetterName = p.Name
		p.MethodBacked = true
		p.Name = alias
	default:
		p.Getter = false
		p.Setter = false
	}
}
