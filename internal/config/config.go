package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a ledger directory.
const FileName = "cuadra.yaml"

// Config represents the top-level cuadra.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Matching MatchingConfig `yaml:"matching"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the organization.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// MatchingConfig holds the default reconciliation-hint thresholds.
// Commands may override both per invocation.
type MatchingConfig struct {
	AmountTolerance string `yaml:"amount_tolerance"` // decimal string, e.g. "0.50"
	WindowDays      int    `yaml:"window_days"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a cuadra.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
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

// Default returns a Config with sensible defaults for a new ledger.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "EUR",
		},
		Matching: MatchingConfig{
			AmountTolerance: "0.50",
			WindowDays:      20,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Cuadra",
			AuthorEmail: "ledger@cuadra.dev",
		},
	}
}
