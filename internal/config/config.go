// Package config loads and validates the YAML build configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshjung/deliverance-star/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxTitleLength = 200  // Document title
	MaxPathLength  = 4096 // Source and output paths
)

// Default artifact locations, relative to the working directory.
const (
	DefaultHTMLPath = "build/book.html"
	DefaultMetaPath = "build/book.json"
)

// Config holds all configuration for an offline build.
type Config struct {
	Title  string       `yaml:"title"`  // Optional document title (informational)
	Source string       `yaml:"source"` // Markdown source file (required)
	Output OutputConfig `yaml:"output"`
}

// OutputConfig defines where the two artifacts are written.
type OutputConfig struct {
	HTML string `yaml:"html"` // Annotated HTML artifact (default: build/book.html)
	Meta string `yaml:"meta"` // JSON metadata artifact (default: build/book.json)
}

// DefaultConfig returns a config with default artifact paths and no source.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			HTML: DefaultHTMLPath,
			Meta: DefaultMetaPath,
		},
	}
}

// LoadConfig reads and validates a YAML config file. Omitted output paths
// fall back to the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if cfg.Output.HTML == "" {
		cfg.Output.HTML = DefaultHTMLPath
	}
	if cfg.Output.Meta == "" {
		cfg.Output.Meta = DefaultMetaPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field lengths. A config with no source is valid here;
// the CLI may supply the source as a flag, so the presence requirement is
// enforced after flag merging, not at load time.
func (c *Config) Validate() error {
	if err := validateFieldLength("title", c.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("source", c.Source, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.html", c.Output.HTML, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.meta", c.Output.Meta, MaxPathLength); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d > %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}
