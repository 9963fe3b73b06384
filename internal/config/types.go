// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kushview/eltool/internal/bundle"
	"github.com/kushview/eltool/internal/format"
	"github.com/kushview/eltool/internal/version"
	"github.com/kushview/eltool/pkg/osc"
	"github.com/kushview/eltool/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultIdentifierPrefix prefixes generated bundle identifiers.
	DefaultIdentifierPrefix = "net.kushview"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrEmptyToolCommand is returned when a tool command line is blank.
	ErrEmptyToolCommand = errors.New("tool command must not be empty")
	// ErrEmptyHost is returned when no OSC host is configured.
	ErrEmptyHost = errors.New("host must not be empty")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// OSC sets the default engine endpoint.
		OSC OSCConfig `json:"osc" mapstructure:"osc"`
		// Version configures the version deriver.
		Version VersionConfig `json:"version" mapstructure:"version"`
		// Tools holds the command lines of external tools.
		Tools ToolsConfig `json:"tools" mapstructure:"tools"`
		// Bundle holds bundle defaults.
		Bundle BundleConfig `json:"bundle" mapstructure:"bundle"`
		// Format lists the sources clang-format runs over.
		Format FormatConfig `json:"format" mapstructure:"format"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// OSCConfig is the default OSC target.
	OSCConfig struct {
		Host string     `json:"host" mapstructure:"host"`
		Port types.Port `json:"port" mapstructure:"port"`
	}

	// VersionConfig configures version derivation.
	VersionConfig struct {
		// Current is the base version. Empty falls back to the binary's own version.
		Current string             `json:"current" mapstructure:"current"`
		Style   version.BuildStyle `json:"style" mapstructure:"style"`
		Backend version.Backend    `json:"backend" mapstructure:"backend"`
	}

	// ToolsConfig holds external tool command lines. Each value is split
	// with shell rules, so "xvfb-run -a Projucer" and "$HOME/bin/git" work.
	ToolsConfig struct {
		Git         string `json:"git" mapstructure:"git"`
		Projucer    string `json:"projucer" mapstructure:"projucer"`
		ClangFormat string `json:"clang_format" mapstructure:"clang_format"`
		Makensis    string `json:"makensis" mapstructure:"makensis"`
	}

	// BundleConfig holds bundle defaults.
	BundleConfig struct {
		Signature        string `json:"signature" mapstructure:"signature"`
		IdentifierPrefix string `json:"identifier_prefix" mapstructure:"identifier_prefix"`
	}

	// FormatConfig lists clang-format source globs.
	FormatConfig struct {
		Patterns []string `json:"patterns" mapstructure:"patterns"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging and error chains
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// Validate checks every section and collects all field errors.
func (c Config) Validate() error {
	var errs []error
	if c.OSC.Host == "" {
		errs = append(errs, fmt.Errorf("osc.host: %w", ErrEmptyHost))
	}
	if err := c.OSC.Port.ValidateDestination(); err != nil {
		errs = append(errs, fmt.Errorf("osc.port: %w", err))
	}
	if c.Version.Current != "" {
		if err := version.ValidateBase(c.Version.Current); err != nil {
			errs = append(errs, fmt.Errorf("version.current: %w", err))
		}
	}
	if err := c.Version.Style.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("version.style: %w", err))
	}
	if err := c.Version.Backend.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("version.backend: %w", err))
	}
	for _, tool := range c.Tools.entries() {
		if tool.line == "" {
			errs = append(errs, fmt.Errorf("tools.%s: %w", tool.key, ErrEmptyToolCommand))
		}
	}
	if len(c.Bundle.Signature) != 4 {
		errs = append(errs, fmt.Errorf("bundle.signature: %w: %q", bundle.ErrInvalidSignature, c.Bundle.Signature))
	}
	for _, p := range c.Format.Patterns {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Errorf("format.patterns: %w: %q", format.ErrInvalidPattern, p))
		}
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.color_scheme: %w", err))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Tool returns the command line configured for a tool key
// (git, projucer, clang_format, makensis).
func (t ToolsConfig) Tool(key string) string {
	for _, tool := range t.entries() {
		if tool.key == key {
			return tool.line
		}
	}
	return ""
}

type toolEntry struct {
	key, line string
}

func (t ToolsConfig) entries() []toolEntry {
	return []toolEntry{
		{"git", t.Git},
		{"projucer", t.Projucer},
		{"clang_format", t.ClangFormat},
		{"makensis", t.Makensis},
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate reports whether the ColorScheme is one of the defined schemes.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OSC: OSCConfig{
			Host: osc.DefaultHost,
			Port: osc.DefaultPort,
		},
		Version: VersionConfig{
			Style:   version.StyleDotted,
			Backend: version.BackendExec,
		},
		Tools: ToolsConfig{
			Git:         "git",
			Projucer:    "Projucer",
			ClangFormat: format.DefaultCommand,
			Makensis:    "makensis",
		},
		Bundle: BundleConfig{
			Signature:        bundle.DefaultSignature,
			IdentifierPrefix: DefaultIdentifierPrefix,
		},
		Format: FormatConfig{
			Patterns: format.DefaultPatterns(),
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
