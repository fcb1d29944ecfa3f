package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Log            LogConfig
	Source         SourceConfig
	Database       DatabaseConfig
	Reconciliation ReconciliationConfig
	Output         OutputConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// SourceConfig selects where payment rows are read from
type SourceConfig struct {
	Kind         string // csv, postgres
	PaymentsFile string
	BookingsFile string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// ReconciliationConfig holds engine settings
type ReconciliationConfig struct {
	IncludeDraft      bool
	CurrencyPrecision int32
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Format string // json, xlsx
	Path   string // empty writes to stdout
}

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"

	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("source.kind", SourceCSV)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("reconciliation.include_draft", false)
	v.SetDefault("reconciliation.currency_precision", 0)
	v.SetDefault("output.format", FormatJSON)
}

// Load reads configuration from multiple sources.
// Priority (highest to lowest):
// 1. Environment variables with RECON_ prefix (e.g., RECON_DATABASE_URL)
// 2. reconciler.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("reconciler")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("RECON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Source: SourceConfig{
			Kind:         strings.ToLower(v.GetString("source.kind")),
			PaymentsFile: v.GetString("source.payments_file"),
			BookingsFile: v.GetString("source.bookings_file"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Reconciliation: ReconciliationConfig{
			IncludeDraft:      v.GetBool("reconciliation.include_draft"),
			CurrencyPrecision: v.GetInt32("reconciliation.currency_precision"),
		},
		Output: OutputConfig{
			Format: strings.ToLower(v.GetString("output.format")),
			Path:   v.GetString("output.path"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have a closed set of values.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceCSV, SourcePostgres:
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	switch c.Output.Format {
	case FormatJSON, FormatXLSX:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Reconciliation.CurrencyPrecision < 0 {
		return fmt.Errorf("currency precision must not be negative, got %d", c.Reconciliation.CurrencyPrecision)
	}
	return nil
}
