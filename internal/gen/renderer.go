package gen

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/mickamy/ormmeta/meta"
)

// RenderOption controls the output of Render.
type RenderOption struct {
	Dialect     Dialect             // defaults to PostgreSQL
	Naming      meta.NamingStrategy // defaults to meta.UnderscoreNamingStrategy
	IfNotExists bool
}

func (o RenderOption) withDefaults() RenderOption {
	if o.Dialect == nil {
		o.Dialect = PostgreSQL
	}
	if o.Naming == nil {
		o.Naming = meta.UnderscoreNamingStrategy{}
	}
	return o
}

var tableTmpl = template.Must(template.New("table").Parse(
	`CREATE TABLE {{if .IfNotExists}}IF NOT EXISTS {{end}}{{.Table}} (
{{- range $i, $line := .Lines}}{{if $i}},{{end}}
	{{$line}}
{{- end}}
)`))

var indexTmpl = template.Must(template.New("index").Parse(
	`CREATE INDEX {{if .IfNotExists}}IF NOT EXISTS {{end}}{{.Name}} ON {{.Table}} ({{.Column}})`))

type tableData struct {
	IfNotExists bool
	Table       string
	Lines       []string
}

type indexData struct {
	IfNotExists bool
	Name        string
	Table       string
	Column      string
}

// Render generates DDL for the given entities: for each entity a CREATE
// TABLE statement followed by its CREATE INDEX statements.
func Render(entities []*meta.EntityMetadata, opt RenderOption) ([]string, error) {
	if len(entities) == 0 {
		return nil, errors.New("no entities to render")
	}

	var stmts []string
	for _, e := range entities {
		s, err := RenderTable(e, opt)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s...)
	}
	return stmts, nil
}

// RenderTable generates the DDL of a single entity. Only persisted scalar
// properties without a formula become columns, in declaration order.
// Deferred checks are resolved with the table name as alias.
func RenderTable(e *meta.EntityMetadata, opt RenderOption) ([]string, error) {
	opt = opt.withDefaults()
	d, ns := opt.Dialect, opt.Naming
	qi := d.QuoteIdent
	table := e.TableName(ns)

	props := make([]*meta.PropertyRecord, 0, e.Len())
	pkColumns := 0
	for _, p := range e.Properties() {
		if !isColumn(p) {
			continue
		}
		props = append(props, p)
		if p.Primary {
			pkColumns += len(p.ColumnNames(ns))
		}
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("%s: no persisted scalar properties", e.Identity())
	}

	var (
		lines   []string
		pks     []string
		indexes []string
	)
	for _, p := range props {
		for _, col := range p.ColumnNames(ns) {
			autoInc := p.Primary && p.AutoIncrement && pkColumns == 1
			lines = append(lines, columnDef(d, p, col, autoInc))

			if p.Primary && !(autoInc && d.InlinePrimaryKey()) {
				pks = append(pks, qi(col))
			}
			if p.Index {
				idx, err := execute(indexTmpl, indexData{
					IfNotExists: opt.IfNotExists && d.Name() != MySQL.Name(),
					Name:        qi(table + "_" + col + "_index"),
					Table:       qi(table),
					Column:      qi(col),
				})
				if err != nil {
					return nil, err
				}
				indexes = append(indexes, idx)
			}
		}
	}
	if len(pks) > 0 {
		lines = append(lines, "PRIMARY KEY ("+strings.Join(pks, ", ")+")")
	}
	lines = append(lines, checkLines(e, table, d, ns)...)

	create, err := execute(tableTmpl, tableData{
		IfNotExists: opt.IfNotExists,
		Table:       qi(table),
		Lines:       lines,
	})
	if err != nil {
		return nil, err
	}
	return append([]string{create}, indexes...), nil
}

func isColumn(p *meta.PropertyRecord) bool {
	return p.Kind == meta.Scalar && p.IsPersisted() && p.Formula.IsZero()
}

func columnDef(d Dialect, p *meta.PropertyRecord, col string, autoInc bool) string {
	var b strings.Builder
	b.WriteString(d.QuoteIdent(col))
	b.WriteByte(' ')
	b.WriteString(columnType(d, p))
	if p.Primary || !p.IsNullable() {
		b.WriteString(" NOT NULL")
	}
	if autoInc {
		b.WriteString(d.AutoIncrement())
	}
	if def, ok := defaultValue(d, p); ok {
		b.WriteString(" DEFAULT ")
		b.WriteString(def)
	}
	if p.Unique && !p.Primary {
		b.WriteString(" UNIQUE")
	}
	if p.Comment != "" {
		b.WriteString(d.ColumnComment(p.Comment))
	}
	return b.String()
}

// columnType prefers the explicit column type, then the custom type's, then
// the dialect mapping of the runtime type.
func columnType(d Dialect, p *meta.PropertyRecord) string {
	if p.ColumnType != "" {
		return p.ColumnType
	}
	if ct, ok := p.CustomType.(meta.ColumnTyper); ok {
		if t := ct.ColumnType(); t != "" {
			return t
		}
	}
	return d.ColumnType(p)
}

func defaultValue(d Dialect, p *meta.PropertyRecord) (string, bool) {
	if p.DefaultRaw != "" {
		return p.DefaultRaw, true
	}
	switch v := p.Default.(type) {
	case nil:
		return "", false
	case string:
		return quoteString(v), true
	case bool:
		return d.BoolLiteral(v), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v), true
	default:
		return quoteString(fmt.Sprint(v)), true
	}
}

// checkLines names property checks <table>_<column>_check and entity checks
// <table>_check<n>; repeated names get a numeric suffix.
func checkLines(e *meta.EntityMetadata, table string, d Dialect, ns meta.NamingStrategy) []string {
	checks := e.Checks()
	lines := make([]string, 0, len(checks))
	seen := make(map[string]int)
	entityChecks := 0

	for _, c := range checks {
		var name string
		if c.Property == "" {
			entityChecks++
			name = fmt.Sprintf("%s_check%d", table, entityChecks)
		} else {
			name = table + "_" + checkColumn(e, c.Property, ns) + "_check"
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s%d", name, n)
		}
		lines = append(lines, fmt.Sprintf("CONSTRAINT %s CHECK (%s)", d.QuoteIdent(name), c.Expression.Resolve(table)))
	}
	return lines
}

func checkColumn(e *meta.EntityMetadata, property string, ns meta.NamingStrategy) string {
	if p, ok := e.Property(property); ok {
		return p.ColumnNames(ns)[0]
	}
	return ns.PropertyToColumnName(property)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
