package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mickamy/ormmeta/internal/gen"
)

func newDDLCommand(a *app) *cobra.Command {
	var typeName, out string

	cmd := &cobra.Command{
		Use:   "ddl [file.go]",
		Short: "Render CREATE TABLE statements",
		Example: `  # PostgreSQL DDL for every entity in models.go
  ormmeta ddl models.go

  # From go:generate, written next to the source file
  //go:generate ormmeta ddl --type User --dialect mysql --out user.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := a.render(args, typeName)
			if err != nil {
				return err
			}
			script := joinStatements(stmts)

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), script)
				return nil
			}
			if err := os.WriteFile(out, []byte(script), 0o644); err != nil { //nolint:gosec // schema files should be world-readable
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ormmeta: wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only render this struct")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func (a *app) render(args []string, typeName string) ([]string, error) {
	entities, err := a.entities(args, typeName)
	if err != nil {
		return nil, err
	}
	opt, err := a.renderOption()
	if err != nil {
		return nil, err
	}
	return gen.Render(entities, opt)
}

func joinStatements(stmts []string) string {
	var b strings.Builder
	for i, s := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s)
		b.WriteString(";\n")
	}
	return b.String()
}
