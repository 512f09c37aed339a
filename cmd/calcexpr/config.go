package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calcexpr"
)

// Config holds the settings which may be given in a configuration file.
// Command-line flags override them.
type Config struct {
	// Degrees selects degrees for trigonometric functions.
	Degrees bool `yaml:"degrees"`
	// Digits is the number of significant digits in inexact results.
	Digits int `yaml:"digits"`
	// Lang is the BCP 47 tag of the language for displaying numbers. Empty
	// means plain ASCII.
	Lang string `yaml:"lang"`
	// State is the file holding the saved session, if any.
	State string `yaml:"state"`
	// History is the file holding interactive line history. Empty disables
	// saving history.
	History string `yaml:"history"`
	// Fractions prints exact results as fractions too.
	Fractions bool `yaml:"fractions"`
}

// Defaults returns the configuration used when there is no file. History is
// kept in the user's home directory, or not at all if there is none.
func Defaults() *Config {
	cfg := Config{Digits: calcexpr.DefaultDigits}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.History = filepath.Join(home, ".calcexpr_history")
	}
	return &cfg
}

// Load reads a configuration file. Settings missing from the file keep their
// defaults. An empty path gives the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that settings are in range.
func (cfg *Config) Validate() error {
	if cfg.Digits < 1 {
		return fmt.Errorf("digits (%d) must be positive", cfg.Digits)
	}
	return nil
}
