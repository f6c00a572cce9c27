// Package config loads ormmeta settings from ormmeta.yaml, ORMMETA_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mickamy/ormmeta/internal/gen"
	"github.com/mickamy/ormmeta/meta"
)

// Config is the resolved ormmeta configuration.
type Config struct {
	Dialect     string `mapstructure:"dialect"`
	Format      string `mapstructure:"format"`
	Naming      string `mapstructure:"naming"`
	IfNotExists bool   `mapstructure:"if_not_exists"`
	NoColor     bool   `mapstructure:"no_color"`
	Verbose     bool   `mapstructure:"verbose"`
	DSN         string `mapstructure:"dsn"`
}

// New returns a viper instance with defaults and environment binding set up.
// Flags are bound by the caller with BindPFlag before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("dialect", "postgres")
	v.SetDefault("format", "table")
	v.SetDefault("naming", "underscore")
	v.SetDefault("if_not_exists", false)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)
	v.SetDefault("dsn", "")

	v.SetEnvPrefix("ORMMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file, or ormmeta.yaml in the working directory when file is
// empty. A missing ormmeta.yaml is not an error; a missing explicit file is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("ormmeta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := gen.DialectByName(c.Dialect); err != nil {
		return fmt.Errorf("dialect: %w", err)
	}
	switch c.Format {
	case "table", "json":
	default:
		return fmt.Errorf("format: unsupported %q (supported: table, json)", c.Format)
	}
	if _, err := c.NamingStrategy(); err != nil {
		return err
	}
	return nil
}

// SQLDialect returns the configured dialect.
func (c *Config) SQLDialect() gen.Dialect {
	d, err := gen.DialectByName(c.Dialect)
	if err != nil {
		return gen.PostgreSQL
	}
	return d
}

// NamingStrategy returns the configured naming strategy: "underscore" or
// "identity".
func (c *Config) NamingStrategy() (meta.NamingStrategy, error) {
	switch c.Naming {
	case "", "underscore":
		return meta.UnderscoreNamingStrategy{}, nil
	case "identity":
		return meta.IdentityNamingStrategy{}, nil
	default:
		return nil, fmt.Errorf("naming: unsupported %q (supported: underscore, identity)", c.Naming)
	}
}
