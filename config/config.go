// Package config reads and writes the YAML configuration file of the tmscore
// command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/BurntSushi/tmscore/apps/tmscore"
)

// Environment variables that override the configuration file.
const (
	EnvBinary   = "TMSCORE_BIN"
	EnvLogLevel = "TMSCORE_LOG_LEVEL"
	EnvDatabase = "TMSCORE_DB"
)

// Config is the tmscore command configuration.
type Config struct {
	TMscore TMscoreConfig `yaml:"tmscore"`
	Logging LoggingConfig `yaml:"logging"`

	// Database is the path of the result store. Empty disables it.
	Database string `yaml:"database"`
}

// TMscoreConfig controls how TMscore is run.
type TMscoreConfig struct {
	Binary         string   `yaml:"binary"`
	CheckMirror    bool     `yaml:"check_mirror"`
	ParseTransform bool     `yaml:"parse_transform"`
	Parallel       bool     `yaml:"parallel"`
	Workers        int      `yaml:"workers"`
	Args           []string `yaml:"args"`
}

// LoggingConfig configures the command's logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		TMscore: TMscoreConfig{
			CheckMirror:    tmscore.DefaultConfig.CheckMirror,
			ParseTransform: tmscore.DefaultConfig.ParseTransform,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file is not an error. Environment variables are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if bin := os.Getenv(EnvBinary); bin != "" {
		c.TMscore.Binary = bin
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv(EnvDatabase); path != "" {
		c.Database = path
	}
}

// Validate checks the values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.TMscore.Workers < 0 {
		return fmt.Errorf("tmscore.workers must not be negative, got %d",
			c.TMscore.Workers)
	}
	return nil
}

// Level returns the configured log level. Empty means info.
func (c *Config) Level() (zapcore.Level, error) {
	if c.Logging.Level == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// Comparison returns the library configuration for running TMscore.
func (c *Config) Comparison(logger *zap.Logger) tmscore.Config {
	conf := tmscore.DefaultConfig
	conf.Binary = c.TMscore.Binary
	conf.CheckMirror = c.TMscore.CheckMirror
	conf.ParseTransform = c.TMscore.ParseTransform
	conf.Parallel = c.TMscore.Parallel
	conf.Workers = c.TMscore.Workers
	conf.Args = append([]string(nil), c.TMscore.Args...)
	conf.Logger = logger
	return conf
}
