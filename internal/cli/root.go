// Package cli implements the ormmeta command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mickamy/ormmeta/internal/config"
	"github.com/mickamy/ormmeta/internal/gen"
	"github.com/mickamy/ormmeta/meta"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "ormmeta",
		Short: "Inspect ORM metadata declared in Go source and render DDL",
		Long: `ormmeta reads orm/rel struct tags, TableName methods and
//ormmeta:property method directives from a Go file, builds the entity
metadata and prints it or renders CREATE TABLE statements for MySQL,
PostgreSQL or SQLite.

Settings come from ./ormmeta.yaml, ORMMETA_* environment variables and
flags, in increasing precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./ormmeta.yaml)")
	pf.String("dialect", "postgres", "SQL dialect: postgres, mysql or sqlite")
	pf.String("format", "table", "output format: table or json")
	pf.String("naming", "underscore", "naming strategy: underscore or identity")
	pf.Bool("if-not-exists", false, "render CREATE ... IF NOT EXISTS")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("verbose", "v", false, "log registration details to stderr")

	for key, flag := range map[string]string{
		"dialect":       "dialect",
		"format":        "format",
		"naming":        "naming",
		"if_not_exists": "if-not-exists",
		"no_color":      "no-color",
		"verbose":       "verbose",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(newInspectCommand(a))
	root.AddCommand(newDDLCommand(a))
	root.AddCommand(newApplyCommand(a))
	root.AddCommand(NewVersionCommand())

	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.NoColor {
		color.NoColor = true
	}
	if cfg.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		a.logger = l
	}
	return nil
}

// entities parses file (or $GOFILE under go:generate) and registers its
// annotated structs in a fresh store. A non-empty typeName keeps only that
// struct.
func (a *app) entities(args []string, typeName string) ([]*meta.EntityMetadata, error) {
	file := os.Getenv("GOFILE")
	if len(args) > 0 {
		file = args[0]
	}
	if file == "" {
		return nil, errors.New("no Go file given (pass one, or run via go:generate)")
	}

	infos, err := gen.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	if typeName != "" {
		infos = filterType(infos, typeName)
		if len(infos) == 0 {
			return nil, fmt.Errorf("type %s not found in %s", typeName, file)
		}
	}

	store := meta.NewStore(meta.WithLogger(a.logger))
	entities, err := gen.Register(store, infos)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", file, err)
	}
	a.logger.Info("entities registered", zap.String("file", file), zap.Int("count", len(entities)))
	return entities, nil
}

func (a *app) renderOption() (gen.RenderOption, error) {
	ns, err := a.cfg.NamingStrategy()
	if err != nil {
		return gen.RenderOption{}, err
	}
	return gen.RenderOption{
		Dialect:     a.cfg.SQLDialect(),
		Naming:      ns,
		IfNotExists: a.cfg.IfNotExists,
	}, nil
}

func filterType(infos []*gen.StructInfo, name string) []*gen.StructInfo {
	for _, info := range infos {
		if info.Name == name {
			return []*gen.StructInfo{info}
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
