// Package config loads the generator's YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the generator settings a project pins in a config file;
// command-line flags override individual entries.
type Config struct {
	// Package is the package name of the generated file.
	Package string `yaml:"package,omitempty"`

	// Output is the path the generated file is written to.
	Output string `yaml:"output,omitempty"`

	// RuntimeImport is the import path of the xmlmap runtime package as
	// seen from the generated code's module.
	RuntimeImport string `yaml:"runtime_import,omitempty"`

	// MaxDepth bounds the collection-path traversal.
	MaxDepth int `yaml:"max_depth,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Package:       "model",
		RuntimeImport: "xsdmodel/xmlmap",
		MaxDepth:      16,
	}
}

// LoadFile loads and validates a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config, applying defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	err := yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("config: package must not be empty")
	}

	if c.RuntimeImport == "" {
		return fmt.Errorf("config: runtime_import must not be empty")
	}

	if c.MaxDepth <= 0 {
		return fmt.Errorf("config: max_depth must be positive, got %d", c.MaxDepth)
	}

	return nil
}
