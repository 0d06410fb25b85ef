// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/open-edge-platform/arith-lexer/internal/report"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type LexerConfig struct {
	Workers     int           `yaml:"workers"`
	LineTimeout time.Duration `yaml:"lineTimeout"`
}

type DatabaseConfig struct {
	Driver        string        `yaml:"driver"`
	Path          string        `yaml:"path"`
	RetentionTime time.Duration `yaml:"retentionTime"`
	CleanupRate   time.Duration `yaml:"cleanupRate"`
}

// ServerConfig holds the listening ports. A zero MetricsPort disables the metrics
// endpoint of the gRPC server.
type ServerConfig struct {
	Port        int `yaml:"port"`
	GRPCPort    int `yaml:"grpcPort"`
	MetricsPort int `yaml:"metricsPort"`
}

type ReportConfig struct {
	Format string `yaml:"format"`
}

type Config struct {
	Lexer    LexerConfig    `yaml:"lexer"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Report   ReportConfig   `yaml:"report"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Lexer: LexerConfig{
			Workers:     4,
			LineTimeout: time.Second,
		},
		Database: DatabaseConfig{
			Driver:        DriverSQLite,
			Path:          "arith-lexer.db",
			RetentionTime: 240 * time.Hour,
			CleanupRate:   time.Hour,
		},
		Server: ServerConfig{
			Port:        8080,
			GRPCPort:    51001,
			MetricsPort: 9101,
		},
		Report: ReportConfig{
			Format: string(report.FormatTable),
		},
	}
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if c.Lexer.Workers <= 0 {
		errs = append(errs, fmt.Errorf("lexer workers must be positive, got %d", c.Lexer.Workers))
	}
	if c.Lexer.LineTimeout < 0 {
		errs = append(errs, fmt.Errorf("lexer line timeout must not be negative, got %v", c.Lexer.LineTimeout))
	}
	if c.Server.MetricsPort < 0 {
		errs = append(errs, fmt.Errorf("metrics port must not be negative, got %d", c.Server.MetricsPort))
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("sqlite database path is empty"))
		}
	case DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateLogLevel rejects log levels other than debug, info, warn and error.
func ValidateLogLevel(value string) error {
	switch value {
	case "debug":
	case "info":
	case "warn":
	case "error":
	default:
		return fmt.Errorf("invalid log level %q", value)
	}
	return nil
}

// LoadConfig reads file over the defaults. An empty file name yields the defaults.
func LoadConfig(file string) (Config, error) {
	config := Default()
	if file == "" {
		return config, nil
	}

	yfile, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read file %q: %w", file, err)
	}

	err = yaml.Unmarshal(yfile, &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", file, err)
	}
	return config, nil
}
