// Package config provides Viper-based configuration loading for the balance simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings for result persistence.
type DatabaseConfig struct {
	// Enabled turns on persistence of batch and A/B result tables.
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CatalogConfig names the champion and item tables.
type CatalogConfig struct {
	// Champions is a YAML/CSV file or a directory of them.
	Champions string `mapstructure:"champions"`
	// Items is a YAML/CSV file or a directory of them.
	Items string `mapstructure:"items"`
}

// SimulationConfig holds the default scenario for single queries and batch runs.
type SimulationConfig struct {
	Level           int     `mapstructure:"level"`
	DefenderArmor   float64 `mapstructure:"defender_armor"`
	DefenderMR      float64 `mapstructure:"defender_mr"`
	PhysMix         float64 `mapstructure:"phys_mix"`
	Robust          bool    `mapstructure:"robust"`
	IncomingPhysDPS float64 `mapstructure:"incoming_phys_dps"`
	IncomingMagDPS  float64 `mapstructure:"incoming_mag_dps"`

	// BatchConvention and QueryConvention are "ranking" or "query".
	BatchConvention string `mapstructure:"batch_convention"`
	QueryConvention string `mapstructure:"query_convention"`
}

// SensitivityConfig holds the scenario A/B runs evaluate under.
type SensitivityConfig struct {
	Level         int     `mapstructure:"level"`
	DefenderArmor float64 `mapstructure:"defender_armor"`
	DefenderMR    float64 `mapstructure:"defender_mr"`
	PhysMix       float64 `mapstructure:"phys_mix"`
	Robust        bool    `mapstructure:"robust"`

	// Sample is the number of best and worst items per champion.
	Sample     int    `mapstructure:"sample"`
	Convention string `mapstructure:"convention"`
}

// OutputConfig controls where result tables are written.
type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	XLSX bool   `mapstructure:"xlsx"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
	Sensitivity SensitivityConfig `mapstructure:"sensitivity"`
	Output      OutputConfig      `mapstructure:"output"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Database.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateCatalog(c.Catalog); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSensitivity(c.Sensitivity); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Output.Dir == "" {
		errs = append(errs, "output.dir must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCatalog(c CatalogConfig) error {
	var errs []string
	if c.Champions == "" {
		errs = append(errs, "catalog.champions must not be empty")
	}
	if c.Items == "" {
		errs = append(errs, "catalog.items must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

var validConventions = map[string]bool{"ranking": true, "query": true}

func validateScenario(prefix string, level int, armor, mr, physMix float64) []string {
	var errs []string
	if level < 1 {
		errs = append(errs, fmt.Sprintf("%s.level must be >= 1, got %d", prefix, level))
	}
	if armor < 0 {
		errs = append(errs, fmt.Sprintf("%s.defender_armor must be >= 0, got %g", prefix, armor))
	}
	if mr < 0 {
		errs = append(errs, fmt.Sprintf("%s.defender_mr must be >= 0, got %g", prefix, mr))
	}
	if physMix < 0 || physMix > 1 {
		errs = append(errs, fmt.Sprintf("%s.phys_mix must be within [0, 1], got %g", prefix, physMix))
	}
	return errs
}

func validateSimulation(s SimulationConfig) error {
	errs := validateScenario("simulation", s.Level, s.DefenderArmor, s.DefenderMR, s.PhysMix)
	if s.IncomingPhysDPS < 0 {
		errs = append(errs, fmt.Sprintf("simulation.incoming_phys_dps must be >= 0, got %g", s.IncomingPhysDPS))
	}
	if s.IncomingMagDPS < 0 {
		errs = append(errs, fmt.Sprintf("simulation.incoming_mag_dps must be >= 0, got %g", s.IncomingMagDPS))
	}
	if !validConventions[s.BatchConvention] {
		errs = append(errs, fmt.Sprintf("simulation.batch_convention must be one of [ranking, query], got %q", s.BatchConvention))
	}
	if !validConventions[s.QueryConvention] {
		errs = append(errs, fmt.Sprintf("simulation.query_convention must be one of [ranking, query], got %q", s.QueryConvention))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateSensitivity(s SensitivityConfig) error {
	errs := validateScenario("sensitivity", s.Level, s.DefenderArmor, s.DefenderMR, s.PhysMix)
	if s.Sample < 1 {
		errs = append(errs, fmt.Sprintf("sensitivity.sample must be >= 1, got %d", s.Sample))
	}
	if !validConventions[s.Convention] {
		errs = append(errs, fmt.Sprintf("sensitivity.convention must be one of [ranking, query], got %q", s.Convention))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with CHAMPSIM_ prefix
	v.SetEnvPrefix("CHAMPSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "champsim")
	v.SetDefault("database.password", "champsim")
	v.SetDefault("database.name", "champsim")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("catalog.champions", "content/champions")
	v.SetDefault("catalog.items", "content/items")

	v.SetDefault("simulation.level", 18)
	v.SetDefault("simulation.defender_armor", 40)
	v.SetDefault("simulation.defender_mr", 50)
	v.SetDefault("simulation.phys_mix", 0.7)
	v.SetDefault("simulation.robust", false)
	v.SetDefault("simulation.incoming_phys_dps", 150)
	v.SetDefault("simulation.incoming_mag_dps", 70)
	v.SetDefault("simulation.batch_convention", "ranking")
	v.SetDefault("simulation.query_convention", "query")

	v.SetDefault("sensitivity.level", 18)
	v.SetDefault("sensitivity.defender_armor", 100)
	v.SetDefault("sensitivity.defender_mr", 100)
	v.SetDefault("sensitivity.phys_mix", 0.7)
	v.SetDefault("sensitivity.robust", false)
	v.SetDefault("sensitivity.sample", 3)
	v.SetDefault("sensitivity.convention", "ranking")

	v.SetDefault("output.dir", "results")
	v.SetDefault("output.xlsx", false)
}
