package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fatih/color"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mickamy/ormmeta/internal/gen"
)

func newApplyCommand(a *app) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "apply [file.go]",
		Short: "Execute the rendered DDL against a database",
		Example: `  ormmeta apply models.go --dialect sqlite --dsn file:app.db
  ORMMETA_DSN=postgres://localhost/app ormmeta apply models.go`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DSN == "" {
				return errors.New("no DSN configured (use --dsn or ORMMETA_DSN)")
			}
			stmts, err := a.render(args, typeName)
			if err != nil {
				return err
			}

			d := a.cfg.SQLDialect()
			db, err := sql.Open(gen.DriverName(d), a.cfg.DSN)
			if err != nil {
				return fmt.Errorf("open %s: %w", d.Name(), err)
			}
			defer func() { _ = db.Close() }()

			ctx := cmd.Context()
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("connect %s: %w", d.Name(), err)
			}
			if err := gen.Apply(ctx, db, stmts); err != nil {
				return err
			}

			a.logger.Info("ddl applied", zap.String("dialect", d.Name()), zap.Int("statements", len(stmts)))
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "applied %d statements\n", len(stmts))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only apply this struct")
	cmd.Flags().String("dsn", "", "data source name")
	_ = a.v.BindPFlag("dsn", cmd.Flags().Lookup("dsn"))
	return cmd
}
