package meta

// CustomType converts values between their entity and database forms.
// Implementations may also implement ColumnTyper to pick the column type.
type CustomType interface {
	ToDatabase(value any) (any, error)
	FromDatabase(value any) (any, error)
}

// ColumnTyper is optionally implemented by a CustomType.
type ColumnTyper interface {
	ColumnType() string
}

// PropertyOptions configures one property registration. Name, FieldName,
// FieldNames and Check are interpreted by the registrar; every other field is
// copied onto the PropertyRecord unchanged.
type PropertyOptions struct {
	// Name is the legacy column alias. On a method-backed property it renames
	// the property itself.
	Name       string
	FieldName  string
	FieldNames []string

	// Type is the application-level type, CustomType the marshalling type and
	// ColumnType the raw storage type. None is derived from the others.
	Type       string
	CustomType CustomType
	ColumnType string

	Length        int
	Precision     int
	Scale         int
	Unsigned      bool
	AutoIncrement bool

	Default    any
	DefaultRaw string
	Formula    Expression

	Nullable         *bool
	Unique           bool
	Index            bool
	Primary          bool
	Version          bool
	ConcurrencyCheck bool

	Persist      *bool
	TrackChanges *bool
	Hidden       bool
	Lazy         bool

	OnCreate func(entity any) any
	OnUpdate func(entity any) any

	// Check is routed to the entity's check list and never stored on the record.
	Check Expression

	Serializer          func(value any) any
	SerializedName      string
	CustomOrder         []string
	Comment             string
	Extra               string
	IgnoreSchemaChanges []string
}

// Bool returns a pointer to b, for the tri-state option fields.
func Bool(b bool) *bool {
	return &b
}
