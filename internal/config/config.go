//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-salesetl.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Config holds all configuration for pgedge-salesetl.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Run holds configuration for the run subcommand.
	Run RunConfig `mapstructure:"run"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// LoadConfig holds configuration for staging the source files.
type LoadConfig struct {
	// SourceDir is the directory containing the source CSV files.
	SourceDir string `mapstructure:"source_dir"`

	// Delimiter is the field delimiter used in the source files.
	Delimiter string `mapstructure:"delimiter"`
}

// RunConfig holds configuration for full pipeline runs.
type RunConfig struct {
	// Every repeats the full pipeline on this interval in minutes
	// (0 = run once and exit).
	Every int `mapstructure:"every"`

	// KeepStaging skips the staging purge after a successful build.
	KeepStaging bool `mapstructure:"keep_staging"`
}

// SeedConfig holds configuration for sample source file generation.
type SeedConfig struct {
	// Dir is the directory the sample CSV files are written to.
	Dir string `mapstructure:"dir"`

	// Row counts per source entity.
	Customers  int `mapstructure:"customers"`
	Suppliers  int `mapstructure:"suppliers"`
	Categories int `mapstructure:"categories"`
	Employees  int `mapstructure:"employees"`
	Shippers   int `mapstructure:"shippers"`
	Products   int `mapstructure:"products"`
	Orders     int `mapstructure:"orders"`

	// MaxLinesPerOrder caps the number of line items generated per order.
	MaxLinesPerOrder int `mapstructure:"max_lines_per_order"`

	// RandomSeed makes generation reproducible when non-zero.
	RandomSeed uint64 `mapstructure:"random_seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Load: LoadConfig{
			SourceDir: "./data",
			Delimiter: ",",
		},
		Run: RunConfig{
			Every:       0,
			KeepStaging: false,
		},
		Seed: SeedConfig{
			Dir:              "./data",
			Customers:        200,
			Suppliers:        30,
			Categories:       8,
			Employees:        10,
			Shippers:         3,
			Products:         120,
			Orders:           1000,
			MaxLinesPerOrder: 5,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-salesetl.yaml
// 3. ~/.config/pgedge-salesetl/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-salesetl")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-salesetl"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Load.SourceDir == "" {
		return fmt.Errorf("source directory is required")
	}
	if utf8.RuneCountInString(c.Load.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Load.Delimiter)
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.ValidateLoad(); err != nil {
		return err
	}
	if c.Run.Every < 0 {
		return fmt.Errorf("run interval must be non-negative")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if c.Seed.Dir == "" {
		return fmt.Errorf("seed output directory is required")
	}
	counts := map[string]int{
		"customers":  c.Seed.Customers,
		"suppliers":  c.Seed.Suppliers,
		"categories": c.Seed.Categories,
		"employees":  c.Seed.Employees,
		"shippers":   c.Seed.Shippers,
		"products":   c.Seed.Products,
		"orders":     c.Seed.Orders,
	}
	for name, n := range counts {
		if n < 1 {
			return fmt.Errorf("seed count for %s must be at least 1", name)
		}
	}
	if c.Seed.MaxLinesPerOrder < 1 {
		return fmt.Errorf("max_lines_per_order must be at least 1")
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Load.Delimiter)
	return r
}
