package gen

import (
	"fmt"
	"strings"

	"github.com/mickamy/ormmeta/meta"
)

// Dialect abstracts DDL differences between database engines.
type Dialect interface {
	// Name returns the dialect name accepted by DialectByName.
	Name() string

	// QuoteIdent quotes an identifier (table name, column name) to safely
	// handle SQL reserved words. MySQL uses backticks; PostgreSQL and SQLite
	// use double quotes.
	QuoteIdent(name string) string

	// ColumnType maps a property's runtime type and numeric shape to a
	// column type. Callers handle explicit ColumnType overrides.
	ColumnType(p *meta.PropertyRecord) string

	// AutoIncrement returns the modifier appended to an auto-incrementing
	// primary key column.
	AutoIncrement() string

	// InlinePrimaryKey reports whether the AutoIncrement modifier already
	// declares the primary key (SQLite), so no table-level PRIMARY KEY is
	// rendered for it.
	InlinePrimaryKey() bool

	// BoolLiteral renders a boolean default value.
	BoolLiteral(b bool) string

	// ColumnComment returns the column comment clause, or "" when the dialect
	// has no inline column comments.
	ColumnComment(comment string) string
}

// MySQL is the Dialect for MySQL / MariaDB.
var MySQL Dialect = mysqlDialect{}

// PostgreSQL is the Dialect for PostgreSQL.
var PostgreSQL Dialect = postgresDialect{}

// SQLite is the Dialect for SQLite.
var SQLite Dialect = sqliteDialect{}

// DialectByName returns the dialect called name.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return PostgreSQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", name)
	}
}

// baseType normalizes a runtime type: "*string" → "string", "Time" → "time".
func baseType(t string) string {
	t = strings.TrimLeft(t, "*")
	if i := strings.LastIndex(t, "."); i >= 0 && !strings.HasPrefix(t, "[]") {
		t = t[i+1:]
	}
	return strings.ToLower(t)
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string                  { return "mysql" }
func (mysqlDialect) QuoteIdent(name string) string { return "`" + name + "`" }
func (mysqlDialect) AutoIncrement() string         { return " AUTO_INCREMENT" }
func (mysqlDialect) InlinePrimaryKey() bool        { return false }

func (mysqlDialect) BoolLiteral(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (mysqlDialect) ColumnComment(comment string) string {
	return " COMMENT " + quoteString(comment)
}

func (mysqlDialect) ColumnType(p *meta.PropertyRecord) string {
	base := baseType(p.Type)

	var t string
	switch base {
	case "string":
		return fmt.Sprintf("VARCHAR(%d)", lengthOr(p, 255))
	case "text":
		return "TEXT"
	case "int8", "uint8", "tinyint":
		t = "TINYINT"
	case "int16", "uint16", "smallint":
		t = "SMALLINT"
	case "int", "int32", "uint", "uint32", "integer":
		t = "INT"
	case "int64", "uint64", "bigint":
		t = "BIGINT"
	case "float32", "float":
		t = "FLOAT"
	case "float64", "double":
		t = "DOUBLE"
	case "decimal":
		t = decimal("DECIMAL", p)
	case "bool", "boolean":
		return "TINYINT(1)"
	case "time", "datetime":
		return "DATETIME"
	case "date":
		return "DATE"
	case "[]byte", "blob":
		return "BLOB"
	case "json", "rawmessage":
		return "JSON"
	case "uuid":
		return "CHAR(36)"
	default:
		return "TEXT"
	}
	if p.Unsigned || strings.HasPrefix(base, "uint") {
		t += " UNSIGNED"
	}
	return t
}

type postgresDialect struct{}

func (postgresDialect) Name() string                  { return "postgres" }
func (postgresDialect) QuoteIdent(name string) string { return `"` + name + `"` }
func (postgresDialect) AutoIncrement() string         { return " GENERATED BY DEFAULT AS IDENTITY" }
func (postgresDialect) InlinePrimaryKey() bool        { return false }
func (postgresDialect) ColumnComment(string) string   { return "" }

func (postgresDialect) BoolLiteral(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (postgresDialect) ColumnType(p *meta.PropertyRecord) string {
	switch baseType(p.Type) {
	case "string":
		return fmt.Sprintf("VARCHAR(%d)", lengthOr(p, 255))
	case "text":
		return "TEXT"
	case "int8", "uint8", "int16", "uint16", "tinyint", "smallint":
		return "SMALLINT"
	case "int", "int32", "uint", "uint32", "integer":
		return "INTEGER"
	case "int64", "uint64", "bigint":
		return "BIGINT"
	case "float32", "float":
		return "REAL"
	case "float64", "double":
		return "DOUBLE PRECISION"
	case "decimal":
		return decimal("NUMERIC", p)
	case "bool", "boolean":
		return "BOOLEAN"
	case "time", "datetime":
		return "TIMESTAMPTZ"
	case "date":
		return "DATE"
	case "[]byte", "blob":
		return "BYTEA"
	case "json", "rawmessage":
		return "JSONB"
	case "uuid":
		return "UUID"
	default:
		return "TEXT"
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string                  { return "sqlite" }
func (sqliteDialect) QuoteIdent(name string) string { return `"` + name + `"` }
func (sqliteDialect) AutoIncrement() string         { return " PRIMARY KEY AUTOINCREMENT" }
func (sqliteDialect) InlinePrimaryKey() bool        { return true }
func (sqliteDialect) ColumnComment(string) string   { return "" }

func (sqliteDialect) BoolLiteral(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ColumnType uses SQLite storage classes; AUTOINCREMENT requires INTEGER.
func (sqliteDialect) ColumnType(p *meta.PropertyRecord) string {
	switch baseType(p.Type) {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64",
		"integer", "tinyint", "smallint", "bigint", "bool", "boolean":
		return "INTEGER"
	case "float32", "float64", "float", "double":
		return "REAL"
	case "decimal":
		return "NUMERIC"
	case "[]byte", "blob":
		return "BLOB"
	case "time", "datetime", "date":
		return "DATETIME"
	default:
		return "TEXT"
	}
}

func lengthOr(p *meta.PropertyRecord, fallback int) int {
	if p.Length > 0 {
		return p.Length
	}
	return fallback
}

func decimal(name string, p *meta.PropertyRecord) string {
	if p.Precision == 0 {
		return name
	}
	return fmt.Sprintf("%s(%d,%d)", name, p.Precision, p.Scale)
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
