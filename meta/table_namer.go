package meta

import "reflect"

// TableNamer can be implemented by entity structs to override the table name
// derived by the naming strategy.
type TableNamer interface {
	TableName() string
}

// resolveTableNamer reports the table name of t when t (value or pointer
// receiver) implements TableNamer.
func resolveTableNamer(t reflect.Type) (string, bool) {
	if t.Kind() == reflect.Interface {
		return "", false
	}
	if tn, ok := reflect.New(t).Interface().(TableNamer); ok {
		return tn.TableName(), true
	}
	return "", false
}
