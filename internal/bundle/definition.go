// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kushview/eltool/pkg/platform"
)

// DefaultSignature is the creator code used when none is configured.
const DefaultSignature = "????"

var (
	// ErrMissingName is returned when a Definition has no Name.
	ErrMissingName = errors.New("bundle name is required")
	// ErrInvalidName is returned for names that cannot be used as a
	// directory name on every supported platform.
	ErrInvalidName = errors.New("invalid bundle name")
	// ErrPlistRequired is returned for types that need a caller supplied
	// Info.plist when none was given.
	ErrPlistRequired = errors.New("an Info.plist is required for this bundle type")
	// ErrInvalidSignature is returned when the creator code is not exactly
	// four bytes.
	ErrInvalidSignature = errors.New("bundle signature must be exactly 4 characters")
	// ErrInputMissing is returned when a binary, plist or resource path does
	// not exist.
	ErrInputMissing = errors.New("bundle input not found")
)

// Definition describes one bundle to assemble. Relative paths are resolved
// against the current directory.
type Definition struct {
	Type       Type     `toml:"type"`
	Name       string   `toml:"name"`
	Binary     string   `toml:"binary"`
	Plist      string   `toml:"plist"`
	Resources  []string `toml:"resources"`
	OutDir     string   `toml:"out"`
	Signature  string   `toml:"signature"`
	Identifier string   `toml:"identifier"`
	Version    string   `toml:"version"`
	// Copyright is written as NSHumanReadableCopyright into a generated
	// Info.plist.
	Copyright string `toml:"copyright"`
	// Platform and Arch select the VST3 binary directory. They default to
	// the host and use GOOS/GOARCH names.
	Platform string `toml:"platform"`
	Arch     string `toml:"arch"`
	// Force removes an existing bundle before assembling.
	Force bool `toml:"force"`
}

// Merge returns d with every non-zero field of over applied on top.
func (d Definition) Merge(over Definition) Definition {
	setString := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	if over.Type != "" {
		d.Type = over.Type
	}
	setString(&d.Name, over.Name)
	setString(&d.Binary, over.Binary)
	setString(&d.Plist, over.Plist)
	setString(&d.OutDir, over.OutDir)
	setString(&d.Signature, over.Signature)
	setString(&d.Identifier, over.Identifier)
	setString(&d.Version, over.Version)
	setString(&d.Copyright, over.Copyright)
	setString(&d.Platform, over.Platform)
	setString(&d.Arch, over.Arch)
	if len(over.Resources) > 0 {
		d.Resources = over.Resources
	}
	d.Force = d.Force || over.Force
	return d
}

// withDefaults fills the zero fields that have defaults.
func (d Definition) withDefaults() Definition {
	if d.OutDir == "" {
		d.OutDir = "."
	}
	if d.Signature == "" {
		d.Signature = DefaultSignature
	}
	goos, goarch := platform.Host()
	if d.Platform == "" {
		d.Platform = goos
	}
	if d.Arch == "" {
		d.Arch = goarch
	}
	return d
}

// Validate checks the definition and every input path without touching
// the filesystem beyond stat calls.
func (d Definition) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}
	d = d.withDefaults()

	if d.Name == "" {
		return ErrMissingName
	}
	if strings.ContainsAny(d.Name, `/\:`) || d.Name == "." || d.Name == ".." || platform.IsWindowsReservedName(d.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, d.Name)
	}
	if len(d.Signature) != 4 {
		return fmt.Errorf("%w: %q", ErrInvalidSignature, d.Signature)
	}
	if d.Type.RequiresPlist() && d.Plist == "" {
		return fmt.Errorf("%w: %s", ErrPlistRequired, d.Type)
	}
	if d.Type == TypeVST3 {
		if _, err := platform.VST3BinaryDir(d.Platform, d.Arch); err != nil {
			return err
		}
	}

	if d.Binary != "" {
		if err := requireFile(d.Binary, "binary"); err != nil {
			return err
		}
	}
	if d.Plist != "" {
		if err := requireFile(d.Plist, "plist"); err != nil {
			return err
		}
	}
	for _, res := range d.Resources {
		if _, err := os.Stat(res); err != nil {
			return fmt.Errorf("%w: resource %s", ErrInputMissing, res)
		}
	}
	return nil
}

// BundleIdentifier returns the configured identifier or prefix.name.
func (d Definition) BundleIdentifier(prefix string) string {
	if d.Identifier != "" {
		return d.Identifier
	}
	if prefix == "" {
		return d.Name
	}
	return strings.TrimSuffix(prefix, ".") + "." + d.Name
}

func requireFile(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrInputMissing, what, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s %s is a directory", ErrInputMissing, what, path)
	}
	return nil
}
