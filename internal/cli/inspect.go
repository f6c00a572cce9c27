package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mickamy/ormmeta/meta"
)

func newInspectCommand(a *app) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "inspect [file.go]",
		Short: "Print the metadata registered for each entity",
		Example: `  ormmeta inspect models.go
  ormmeta inspect models.go --type Author --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := a.entities(args, typeName)
			if err != nil {
				return err
			}
			ns, err := a.cfg.NamingStrategy()
			if err != nil {
				return err
			}

			views := make([]entityView, 0, len(entities))
			for _, e := range entities {
				views = append(views, newEntityView(e, ns))
			}
			if a.cfg.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), views)
			}
			writeTable(cmd.OutOrStdout(), views)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only inspect this struct")
	return cmd
}

type entityView struct {
	Name       string         `json:"name"`
	Table      string         `json:"table"`
	Properties []propertyView `json:"properties"`
	Checks     []checkView    `json:"checks,omitempty"`
}

type propertyView struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Type       string   `json:"type"`
	Columns    []string `json:"columns,omitempty"`
	Target     string   `json:"target,omitempty"`
	GetterName string   `json:"getterName,omitempty"`
	Getter     bool     `json:"getter"`
	Setter     bool     `json:"setter"`
	Persisted  bool     `json:"persisted"`
	Nullable   bool     `json:"nullable"`
	Flags      []string `json:"flags,omitempty"`
}

type checkView struct {
	Property   string `json:"property,omitempty"`
	Expression string `json:"expression"`
}

func newEntityView(e *meta.EntityMetadata, ns meta.NamingStrategy) entityView {
	table := e.TableName(ns)
	v := entityView{Name: e.Name(), Table: table}

	for _, p := range e.Properties() {
		pv := propertyView{
			Name:       p.Name,
			Kind:       p.Kind.String(),
			Type:       p.Type,
			GetterName: p.GetterName,
			Getter:     p.Getter,
			Setter:     p.Setter,
			Persisted:  p.IsPersisted(),
			Nullable:   p.IsNullable(),
			Flags:      flags(p),
		}
		if p.Kind.IsRelation() {
			pv.Target = p.Target
		}
		if p.Kind == meta.Scalar && pv.Persisted {
			pv.Columns = p.ColumnNames(ns)
		}
		v.Properties = append(v.Properties, pv)
	}
	for _, c := range e.Checks() {
		v.Checks = append(v.Checks, checkView{Property: c.Property, Expression: c.Expression.Resolve(table)})
	}
	return v
}

func flags(p *meta.PropertyRecord) []string {
	var fs []string
	add := func(ok bool, name string) {
		if ok {
			fs = append(fs, name)
		}
	}
	add(p.Primary, "primary")
	add(p.AutoIncrement, "autoincrement")
	add(p.Unique, "unique")
	add(p.Index, "index")
	add(p.Version, "version")
	add(p.Lazy, "lazy")
	add(p.Hidden, "hidden")
	add(p.MethodBacked, "method")
	add(!p.Formula.IsZero(), "formula")
	return fs
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func writeTable(w io.Writer, views []entityView) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(w)
		}
		bold.Fprintf(w, "%s", v.Name)
		cyan.Fprintf(w, " (%s)\n", v.Table)

		rows := [][]string{{"PROPERTY", "KIND", "TYPE", "COLUMNS", "ACCESS", "FLAGS"}}
		for _, p := range v.Properties {
			columns := strings.Join(p.Columns, ",")
			if p.Target != "" {
				columns = "-> " + p.Target
			}
			rows = append(rows, []string{p.Name, p.Kind, p.Type, columns, access(p), strings.Join(p.Flags, ",")})
		}
		printRows(w, rows)

		for _, c := range v.Checks {
			on := c.Property
			if on == "" {
				on = "(entity)"
			}
			fmt.Fprintf(w, "  check %s: %s\n", on, c.Expression)
		}
	}
}

func access(p propertyView) string {
	switch {
	case p.Getter && p.Setter:
		return "get/set"
	case p.Getter:
		return "get"
	case p.Setter:
		return "set"
	default:
		return "field"
	}
}

func printRows(w io.Writer, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	for _, row := range rows {
		var b strings.Builder
		b.WriteString("  ")
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}
