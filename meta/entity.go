package meta

import (
	"reflect"
	"sync"
)

// EntityMetadata is the metadata of one entity class: its properties in
// declaration order and the check constraints collected for it.
//
// Records returned by Properties and Property are shared with the store and
// must be treated as read-only.
type EntityMetadata struct {
	id Identity

	mu         sync.RWMutex
	names      []string
	properties map[string]*PropertyRecord
	checks     []Check
	table      string
}

func newEntityMetadata(id Identity) *EntityMetadata {
	return &EntityMetadata{
		id:         id,
		properties: make(map[string]*PropertyRecord),
	}
}

// Identity returns the class identity the metadata is keyed by.
func (e *EntityMetadata) Identity() Identity { return e.id }

// Name returns the bare entity type name.
func (e *EntityMetadata) Name() string { return e.id.Name() }

// Properties returns the property records in declaration order.
func (e *EntityMetadata) Properties() []*PropertyRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	props := make([]*PropertyRecord, 0, len(e.names))
	for _, name := range e.names {
		props = append(props, e.properties[name])
	}
	return props
}

// PropertyNames returns the canonical property names in declaration order.
func (e *EntityMetadata) PropertyNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return append([]string(nil), e.names...)
}

// Property returns the record registered under name.
func (e *EntityMetadata) Property(name string) (*PropertyRecord, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.properties[name]
	return p, ok
}

// Len returns the number of registered properties.
func (e *EntityMetadata) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.names)
}

// Checks returns the collected check constraints in declaration order.
func (e *EntityMetadata) Checks() []Check {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return append([]Check(nil), e.checks...)
}

// SetTableName pins the table name, overriding TableNamer and the naming
// strategy.
func (e *EntityMetadata) SetTableName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.table = name
}

// TableName resolves the storage table: an explicit name first, then a
// TableNamer implemented by the entity type, then the naming strategy.
func (e *EntityMetadata) TableName(ns NamingStrategy) string {
	e.mu.RLock()
	table := e.table
	e.mu.RUnlock()

	if table != "" {
		return table
	}
	if t, ok := e.id.(reflect.Type); ok {
		if name, ok := resolveTableNamer(t); ok {
			return name
		}
	}
	if ns == nil {
		ns = UnderscoreNamingStrategy{}
	}
	return ns.ClassToTableName(e.id.Name())
}

// put installs p under its canonical name, keeping the position of an
// earlier record with the same name. Callers hold e.mu.
func (e *EntityMetadata) put(p *PropertyRecord) {
	if _, ok := e.properties[p.Name]; !ok {
		e.names = append(e.names, p.Name)
	}
	e.properties[p.Name] = p
}
