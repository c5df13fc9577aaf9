// Package config loads codedump defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the walked directory.
const FileName = ".codedump.yaml"

// EnvVar names a config file to use when no --config flag is given.
const EnvVar = "CODEDUMP_CONFIG"

// FilterConfig lists the ad-hoc inclusion filters.
type FilterConfig struct {
	// Name matches substrings of file base names
	Name []string `yaml:"name"`

	// Path matches substrings of relative paths
	Path []string `yaml:"path"`

	// Content matches substrings of file contents
	Content []string `yaml:"content"`
}

// Config represents codedump configuration options
type Config struct {
	// Output is the aggregated output path
	Output string `yaml:"output"`

	// Extensions restricts aggregation to these extensions (empty = all)
	Extensions []string `yaml:"extensions"`

	// Exclude lists glob patterns excluded in addition to the defaults
	Exclude []string `yaml:"exclude"`

	// Filters holds name, path and content filters
	Filters FilterConfig `yaml:"filters"`

	// SuppressPrompt omits the output preamble
	SuppressPrompt bool `yaml:"suppress_prompt"`

	// Force overwrites the output without asking
	Force bool `yaml:"force"`

	// Hidden includes hidden files and directories
	Hidden bool `yaml:"hidden"`

	// GlobalIgnore is an ignore file applied from the root
	GlobalIgnore string `yaml:"global_ignore"`

	// MaxFileSizeKB skips larger files (0 = unlimited)
	MaxFileSizeKB int `yaml:"max_file_size_kb"`

	// Workers is the number of concurrent file readers
	Workers int `yaml:"workers"`

	// Tree is an optional path for a tree listing of aggregated files
	Tree string `yaml:"tree"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		MaxFileSizeKB: 0, // Unlimited
		Workers:       1,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve picks the config file for a run: the explicit path if given, then
// the CODEDUMP_CONFIG environment variable, then FileName inside root.
func Resolve(explicit, root string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	return filepath.Join(root, FileName)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxFileSizeKB < 0 {
		return fmt.Errorf("max_file_size_kb must be >= 0, got %d", c.MaxFileSizeKB)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}
