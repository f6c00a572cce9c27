package meta

import "github.com/mickamy/ormmeta/internal/naming"

// PropertyRecord is the canonical metadata of one entity property.
type PropertyRecord struct {
	Name       string
	FieldNames []string
	Kind       ReferenceKind
	// Target is the referenced entity name for relational kinds.
	Target string

	Type       string
	CustomType CustomType
	ColumnType string

	Getter       bool
	Setter       bool
	GetterName   string
	MethodBacked bool
	Persist      *bool
	TrackChanges *bool

	Nullable         *bool
	Unique           bool
	Index            bool
	Primary          bool
	Version          bool
	ConcurrencyCheck bool
	Hidden           bool
	Lazy             bool

	Length        int
	Precision     int
	Scale         int
	Unsigned      bool
	AutoIncrement bool

	Default    any
	DefaultRaw string
	Formula    Expression

	OnCreate func(entity any) any
	OnUpdate func(entity any) any

	Serializer          func(value any) any
	SerializedName      string
	CustomOrder         []string
	Comment             string
	Extra               string
	IgnoreSchemaChanges []string
}

// FieldName returns the first explicit field name, or "" when the consumer
// should fall back to the naming strategy.
func (p *PropertyRecord) FieldName() string {
	if len(p.FieldNames) == 0 {
		return ""
	}
	return p.FieldNames[0]
}

// ColumnNames returns the explicit field names, or the single name the naming
// strategy derives from the property name.
func (p *PropertyRecord) ColumnNames(ns NamingStrategy) []string {
	if len(p.FieldNames) > 0 {
		return append([]string(nil), p.FieldNames...)
	}
	if ns == nil {
		return []string{p.Name}
	}
	return []string{ns.PropertyToColumnName(p.Name)}
}

// IsPersisted reports whether the property is written to storage.
// Unset Persist means persisted.
func (p *PropertyRecord) IsPersisted() bool {
	if p.MethodBacked {
		return false
	}
	return p.Persist == nil || *p.Persist
}

// IsNullable resolves the tri-state Nullable flag. Unset falls back to
// whether the runtime type is a pointer.
func (p *PropertyRecord) IsNullable() bool {
	if p.Nullable != nil {
		return *p.Nullable
	}
	return len(p.Type) > 0 && p.Type[0] == '*'
}

// NamingStrategy maps entity and property names to storage names.
type NamingStrategy interface {
	ClassToTableName(entity string) string
	PropertyToColumnName(property string) string
}

// UnderscoreNamingStrategy produces snake_case columns and plural snake_case
// tables: "UserProfile" → "user_profiles", "createdAt" → "created_at".
type UnderscoreNamingStrategy struct{}

func (UnderscoreNamingStrategy) ClassToTableName(entity string) string {
	return naming.TableName(entity)
}

func (UnderscoreNamingStrategy) PropertyToColumnName(property string) string {
	return naming.CamelToSnake(property)
}

// IdentityNamingStrategy keeps names as declared.
type IdentityNamingStrategy struct{}

func (IdentityNamingStrategy) ClassToTableName(entity string) string       { return entity }
func (IdentityNamingStrategy) PropertyToColumnName(property string) string { return property }

var (
	_ NamingStrategy = UnderscoreNamingStrategy{}
	_ NamingStrategy = IdentityNamingStrategy{}
)
