package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file written by "stmtimport init".
const DefaultFileName = "stmtimport.yaml"

// Environment overrides, applied after the config file.
const (
	EnvLedgerURL = "STMTIMPORT_LEDGER_URL"
	EnvLogLevel  = "STMTIMPORT_LOG_LEVEL"
)

// Config represents the top-level stmtimport.yaml configuration.
type Config struct {
	Ledger  LedgerConfig  `yaml:"ledger"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// LedgerConfig locates the ledger service.
type LedgerConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	CategoryTTL time.Duration `yaml:"category_ttl"`
}

// ImportConfig controls parsing and commit dispatch.
type ImportConfig struct {
	Delimiter   string  `yaml:"delimiter"`
	Concurrency int     `yaml:"concurrency"`
	RateLimit   float64 `yaml:"rate_limit"` // requests per second, 0 = unlimited
	Burst       int     `yaml:"burst"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a stmtimport.yaml file from disk. Keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadOrEnv loads .env from envFile if it exists, then the config file at
// path, then applies environment overrides.
func LoadOrEnv(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides config values with any set environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLedgerURL); v != "" {
		c.Ledger.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config pointing at a ledger on localhost.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			BaseURL:     "http://localhost:5000",
			Timeout:     10 * time.Second,
			CategoryTTL: 5 * time.Minute,
		},
		Import: ImportConfig{
			Delimiter:   ",",
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Ledger.BaseURL == "" {
		return errors.New("ledger.base_url is required")
	}
	if c.Ledger.Timeout < 0 {
		return fmt.Errorf("ledger.timeout must not be negative, got %s", c.Ledger.Timeout)
	}
	if _, err := c.Import.DelimiterRune(); err != nil {
		return err
	}
	if c.Import.Concurrency < 0 {
		return fmt.Errorf("import.concurrency must not be negative, got %d", c.Import.Concurrency)
	}
	if c.Import.RateLimit < 0 {
		return fmt.Errorf("import.rate_limit must not be negative, got %g", c.Import.RateLimit)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune. An empty value
// means comma.
func (c ImportConfig) DelimiterRune() (rune, error) {
	switch {
	case c.Delimiter == "":
		return ',', nil
	case c.Delimiter == `\t` || c.Delimiter == "tab":
		return '\t', nil
	case utf8.RuneCountInString(c.Delimiter) != 1:
		return 0, fmt.Errorf("import.delimiter must be a single character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == '"' {
		return 0, errors.New(`import.delimiter cannot be '"'`)
	}
	return r, nil
}
