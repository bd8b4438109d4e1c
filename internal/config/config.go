// Package config loads vibedit configuration: the log level and the formats
// available to the editor, declared in YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/vibedit/format"
	"github.com/chrisuehlinger/vibedit/internal/logging"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "VIBEDIT_LOG_LEVEL"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of a configuration file.
type Config struct {
	LogLevel string         `yaml:"log_level,omitempty"`
	Formats  []FormatConfig `yaml:"formats,omitempty"`

	// path is the file the configuration was loaded from.
	path string
}

// FormatConfig declares one format. Exactly one of Tag, Style or Script
// drives it; Tag may carry a Style giving its inline style equivalent.
type FormatConfig struct {
	Name    string       `yaml:"name"`
	Tag     string       `yaml:"tag,omitempty"`
	Aliases []string     `yaml:"aliases,omitempty"`
	Style   *StyleConfig `yaml:"style,omitempty"`
	Value   string       `yaml:"value,omitempty"`
	Script  string       `yaml:"script,omitempty"`
}

// StyleConfig names an inline style property and, for tag formats, the
// values that mean the format is on.
type StyleConfig struct {
	Property string   `yaml:"property"`
	Values   []string `yaml:"values,omitempty"`
}

// ValidationError describes one invalid field.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "formats[1].name").
	Field string

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap makes validation errors match ErrInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Default returns the configuration used when no file is given: info
// logging and the builtin formats only.
func Default() *Config {
	return &Config{LogLevel: "info"}
}

// Load reads and validates the configuration file at path. The log level
// may be overridden with VIBEDIT_LOG_LEVEL.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return parse(content, path)
}

// Parse decodes and validates a configuration document.
func Parse(content []byte) (*Config, error) {
	return parse(content, "")
}

func parse(content []byte, path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks the log level and every format declaration. All
// problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	fail := func(field, msg string, args ...any) {
		errs = append(errs, &ValidationError{
			Field:    field,
			Message:  fmt.Sprintf(msg, args...),
			FilePath: c.path,
		})
	}

	if c.LogLevel != "" && !logging.ValidLevel(c.LogLevel) {
		fail("log_level", "unknown level %q", c.LogLevel)
	}

	seen := make(map[string]bool, len(c.Formats))
	for i, f := range c.Formats {
		field := fmt.Sprintf("formats[%d]", i)
		if f.Name == "" {
			fail(field+".name", "is required")
			continue
		}
		field = fmt.Sprintf("formats[%d] (%s)", i, f.Name)
		if seen[f.Name] {
			fail(field, "declared twice")
		}
		seen[f.Name] = true

		if f.Script != "" {
			if f.Tag != "" || f.Style != nil {
				fail(field, "script formats take no tag or style")
			}
			continue
		}
		if f.Style != nil && f.Style.Property == "" {
			fail(field+".style.property", "is required")
		}
		if _, err := format.FromSpec(f.Spec()); err != nil {
			fail(field, "%v", err)
		}
	}
	return errors.Join(errs...)
}

// Spec converts a declarative format into a format spec.
func (f FormatConfig) Spec() format.Spec {
	spec := format.Spec{
		Name:    f.Name,
		Tag:     f.Tag,
		Aliases: f.Aliases,
		Value:   f.Value,
	}
	if f.Style != nil {
		spec.StyleProperty = f.Style.Property
		spec.StyleValues = f.Style.Values
	}
	return spec
}

// ScriptPath resolves the format's script relative to the configuration
// file. It returns "" for formats without a script.
func (c *Config) ScriptPath(f FormatConfig) string {
	if f.Script == "" || filepath.IsAbs(f.Script) || c.path == "" {
		return f.Script
	}
	return filepath.Join(filepath.Dir(c.path), f.Script)
}
