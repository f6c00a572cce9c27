package meta

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mickamy/ormmeta/internal/tag"
)

// ParseTag converts the body of an `orm:"..."` tag into PropertyOptions.
// Deferred expressions, callbacks and custom types cannot be written in a
// tag; use Builder for those.
func ParseTag(body string) (PropertyOptions, error) {
	var opts PropertyOptions

	parsed, err := tag.Parse(body)
	if err != nil {
		return opts, err //nolint:wrapcheck // tag errors carry the body already
	}

	for _, o := range parsed {
		if err := applyTagOption(&opts, o); err != nil {
			return PropertyOptions{}, err
		}
	}
	return opts, nil
}

func applyTagOption(opts *PropertyOptions, o tag.Option) error {
	var err error
	switch o.Key {
	case "name":
		opts.Name, err = stringValue(o)
	case "fieldName":
		opts.FieldName, err = stringValue(o)
	case "fieldNames":
		opts.FieldNames, err = listValue(o)
	case "type":
		opts.Type, err = stringValue(o)
	case "columnType":
		opts.ColumnType, err = stringValue(o)
	case "length":
		opts.Length, err = intValue(o)
	case "precision":
		opts.Precision, err = intValue(o)
	case "scale":
		opts.Scale, err = intValue(o)
	case "unsigned":
		opts.Unsigned, err = boolValue(o)
	case "autoincrement":
		opts.AutoIncrement, err = boolValue(o)
	case "default":
		opts.Default = defaultValue(o)
	case "defaultRaw":
		opts.DefaultRaw, err = stringValue(o)
	case "formula":
		var s string
		s, err = stringValue(o)
		opts.Formula = Literal(s)
	case "nullable":
		opts.Nullable, err = boolPtrValue(o)
	case "unique":
		opts.Unique, err = boolValue(o)
	case "index":
		opts.Index, err = boolValue(o)
	case "primary":
		opts.Primary, err = boolValue(o)
	case "version":
		opts.Version, err = boolValue(o)
	case "concurrencyCheck":
		opts.ConcurrencyCheck, err = boolValue(o)
	case "persist":
		opts.Persist, err = boolPtrValue(o)
	case "trackChanges":
		opts.TrackChanges, err = boolPtrValue(o)
	case "hidden":
		opts.Hidden, err = boolValue(o)
	case "lazy":
		opts.Lazy, err = boolValue(o)
	case "check":
		var s string
		s, err = stringValue(o)
		opts.Check = Literal(s)
	case "serializedName":
		opts.SerializedName, err = stringValue(o)
	case "customOrder":
		opts.CustomOrder, err = listValue(o)
	case "comment":
		opts.Comment, err = stringValue(o)
	case "extra":
		opts.Extra, err = stringValue(o)
	case "ignoreSchemaChanges":
		opts.IgnoreSchemaChanges, err = listValue(o)
	default:
		return fmt.Errorf("meta: unknown tag option %q", o.Key)
	}
	if err != nil {
		return fmt.Errorf("meta: tag option %q: %w", o.Key, err)
	}
	return nil
}

func stringValue(o tag.Option) (string, error) {
	switch o.Kind {
	case tag.KindIdent, tag.KindString, tag.KindNumber:
		return o.Value, nil
	default:
		return "", errors.New("expected a value")
	}
}

func intValue(o tag.Option) (int, error) {
	if o.Kind != tag.KindNumber {
		return 0, errors.New("expected a number")
	}
	n, err := strconv.Atoi(o.Value)
	if err != nil {
		return 0, fmt.Errorf("expected an integer: %w", err)
	}
	return n, nil
}

func boolValue(o tag.Option) (bool, error) {
	switch {
	case o.Kind == tag.KindFlag:
		return true, nil
	case o.Kind == tag.KindIdent && o.Value == "true":
		return true, nil
	case o.Kind == tag.KindIdent && o.Value == "false":
		return false, nil
	default:
		return false, errors.New("expected true or false")
	}
}

func boolPtrValue(o tag.Option) (*bool, error) {
	b, err := boolValue(o)
	if err != nil {
		return nil, err
	}
	return Bool(b), nil
}

func listValue(o tag.Option) ([]string, error) {
	switch o.Kind {
	case tag.KindList:
		return o.List, nil
	case tag.KindIdent, tag.KindString:
		return []string{o.Value}, nil
	default:
		return nil, errors.New("expected a list")
	}
}

// defaultValue keeps quoted strings as strings and types bare numbers and
// booleans.
func defaultValue(o tag.Option) any {
	switch o.Kind {
	case tag.KindNumber:
		if n, err := strconv.ParseInt(o.Value, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(o.Value, 64); err == nil {
			return f
		}
		return o.Value
	case tag.KindIdent:
		switch o.Value {
		case "true":
			return true
		case "false":
			return false
		}
		return o.Value
	case tag.KindFlag:
		return nil
	default:
		return o.Value
	}
}
