// Package config loads the ecotrack configuration from a YAML file.
// The resulting struct is passed explicitly into each component; there is
// no package-level singleton.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all ecotrack settings.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Sidra    SidraConfig    `yaml:"sidra"`
	Schedule string         `yaml:"schedule"` // cron spec for periodic updates
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig configures the read-only API server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig configures the SQLite store shared by the relational
// tables and the document collections.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SidraConfig configures the source client.
type SidraConfig struct {
	BaseURL     string   `yaml:"base_url"`
	Timeout     Duration `yaml:"timeout"`
	MaxAttempts int      `yaml:"max_attempts"`
	Backoff     Duration `yaml:"backoff"` // initial delay, doubled per attempt
}

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// LoggingConfig configures the zap logger built in cmd.
type LoggingConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		HTTP:     HTTPConfig{Addr: ":8080"},
		Database: DatabaseConfig{Path: "ecotrack.db"},
		Sidra: SidraConfig{
			BaseURL:     "https://apisidra.ibge.gov.br",
			Timeout:     Duration(60 * time.Second),
			MaxAttempts: 3,
			Backoff:     Duration(500 * time.Millisecond),
		},
		// 02:00 on the first day of each month, matching the IBGE
		// publication cadence.
		Schedule: "0 2 1 * *",
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads path and overlays it on Default. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Sidra.BaseURL == "" {
		return fmt.Errorf("sidra.base_url is required")
	}
	if c.Sidra.MaxAttempts < 1 {
		return fmt.Errorf("sidra.max_attempts must be at least 1")
	}
	return nil
}
