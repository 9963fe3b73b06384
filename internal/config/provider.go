// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"slices"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
	// Path returns the file Load would read, or "" when defaults apply.
	Path(opts LoadOptions) (string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path resolves the configuration file without reading it.
func (p *fileProvider) Path(opts LoadOptions) (string, error) {
	return resolveConfigPath(opts)
}

// StaticProvider returns a fixed configuration. Tests use it in place of the
// file provider.
type StaticProvider struct {
	Config *Config
	File   string
}

// Load returns a copy of the static configuration, or the defaults.
func (p *StaticProvider) Load(ctx context.Context, _ LoadOptions) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Config == nil {
		return DefaultConfig(), nil
	}
	cfg := *p.Config
	cfg.Format.Patterns = slices.Clone(cfg.Format.Patterns)
	return &cfg, nil
}

// Path returns the configured file name.
func (p *StaticProvider) Path(LoadOptions) (string, error) {
	return p.File, nil
}
