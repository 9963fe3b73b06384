// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/kushview/eltool/internal/bundle"
	"github.com/kushview/eltool/internal/format"
	"github.com/kushview/eltool/internal/version"
	"github.com/kushview/eltool/pkg/types"
)

func TestColorScheme_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme  ColorScheme
		wantErr bool
	}{
		{ColorSchemeAuto, false},
		{ColorSchemeDark, false},
		{ColorSchemeLight, false},
		{"", true},
		{"solarized", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			err := tt.scheme.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidColorScheme) {
				t.Errorf("error should wrap ErrInvalidColorScheme, got %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"empty host", func(c *Config) { c.OSC.Host = "" }, ErrEmptyHost},
		{"zero port", func(c *Config) { c.OSC.Port = 0 }, types.ErrZeroPort},
		{"bad base", func(c *Config) { c.Version.Current = "one.two" }, version.ErrInvalidBase},
		{"v-prefixed base", func(c *Config) { c.Version.Current = "v1.2.3" }, nil},
		{"bad style", func(c *Config) { c.Version.Style = "roman" }, version.ErrInvalidBuildStyle},
		{"bad backend", func(c *Config) { c.Version.Backend = "hg" }, version.ErrInvalidBackend},
		{"empty tool", func(c *Config) { c.Tools.Makensis = "" }, ErrEmptyToolCommand},
		{"short signature", func(c *Config) { c.Bundle.Signature = "EL" }, bundle.ErrInvalidSignature},
		{"bad pattern", func(c *Config) { c.Format.Patterns = []string{"src/[*.cpp"} }, format.ErrInvalidPattern},
		{"bad scheme", func(c *Config) { c.UI.ColorScheme = "neon" }, ErrInvalidColorScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			var ice *InvalidConfigError
			if !errors.As(err, &ice) {
				t.Fatalf("Validate() = %T, want *InvalidConfigError", err)
			}
			found := false
			for _, fe := range ice.FieldErrors {
				if errors.Is(fe, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("FieldErrors = %v, want one wrapping %v", ice.FieldErrors, tt.want)
			}
		})
	}
}

func TestConfig_Validate_CollectsAll(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.OSC.Host = ""
	cfg.UI.ColorScheme = "neon"

	var ice *InvalidConfigError
	if !errors.As(cfg.Validate(), &ice) {
		t.Fatal("expected InvalidConfigError")
	}
	if len(ice.FieldErrors) != 2 {
		t.Errorf("FieldErrors = %v, want 2", ice.FieldErrors)
	}
}

func TestToolsConfig_Tool(t *testing.T) {
	t.Parallel()

	tools := DefaultConfig().Tools
	tools.ClangFormat = "clang-format-18"

	tests := map[string]string{
		"git":          "git",
		"projucer":     "Projucer",
		"clang_format": "clang-format-18",
		"makensis":     "makensis",
		"cmake":        "",
	}
	for key, want := range tests {
		if got := tools.Tool(key); got != want {
			t.Errorf("Tool(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestFormatCUEPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"osc", "port"}, "osc.port"},
		{[]string{"#Config", "version", "style"}, "version.style"},
		{[]string{"format", "patterns", "2"}, "format.patterns[2]"},
	}
	for _, tt := range tests {
		if got := formatCUEPath(tt.path); got != tt.want {
			t.Errorf("formatCUEPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
