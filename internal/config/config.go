// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigNotFound  = errors.New("config file not found")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all configuration for the converter. CLI flags override
// config values.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Conversion ConversionConfig `yaml:"conversion"`
	Renderer   RendererConfig   `yaml:"renderer"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// ConversionConfig defines conversion behavior.
type ConversionConfig struct {
	Retry     int    `yaml:"retry"`     // Retry passes for failed conversions (default: 1)
	Overwrite bool   `yaml:"overwrite"` // Reuse existing destinations instead of suffixing
	Sanitize  string `yaml:"sanitize"`  // Temp copy naming: "preserve" or "random"
}

// RendererConfig defines the external application.
type RendererConfig struct {
	Binary string `yaml:"binary"` // Explicit soffice path (empty = platform default)
}

// Sanitize mode names accepted in config files.
const (
	SanitizePreserve = "preserve"
	SanitizeRandom   = "random"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Conversion: ConversionConfig{Retry: 1, Sanitize: SanitizePreserve},
	}
}

// Load loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched in the current directory and the user config
// directory. Returns an error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		resolved, err := resolvePath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field values. Called automatically by Load, but available
// for consumers who construct Config manually.
func (c *Config) Validate() error {
	if c.Conversion.Retry < 0 {
		return fmt.Errorf("conversion.retry: must be >= 0, got %d", c.Conversion.Retry)
	}
	switch c.Conversion.Sanitize {
	case "", SanitizePreserve, SanitizeRandom:
	default:
		return fmt.Errorf("conversion.sanitize: invalid value %q (must be %q or %q)",
			c.Conversion.Sanitize, SanitizePreserve, SanitizeRandom)
	}
	return nil
}

// resolvePath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-xl2pdf/
func resolvePath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			candidate := filepath.Join(userDir, "go-xl2pdf", name+ext)
			if fileExists(candidate) {
				return candidate, nil
			}
			tried = append(tried, candidate)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
