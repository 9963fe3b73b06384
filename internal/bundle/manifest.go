// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// manifestFile is the on-disk shape of a bundle manifest:
//
//	[bundle]
//	type = "vst3"
//	name = "Element"
//	binary = "build/Element.so"
//	resources = ["data/presets"]
type manifestFile struct {
	Bundle Definition `toml:"bundle"`
}

// LoadManifest reads a TOML bundle manifest. Relative input and output
// paths are resolved against the manifest's directory.
func LoadManifest(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read manifest: %w", err)
	}

	def, err := ParseManifest(data)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def.resolve(filepath.Dir(path)), nil
}

// ParseManifest decodes manifest data. Unknown keys are rejected.
func ParseManifest(data []byte) (Definition, error) {
	var mf manifestFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&mf); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Definition{}, fmt.Errorf("unknown manifest keys:\n%s", strict.String())
		}
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return Definition{}, fmt.Errorf("parse manifest at line %d, column %d: %w", row, col, err)
		}
		return Definition{}, fmt.Errorf("parse manifest: %w", err)
	}
	return mf.Bundle, nil
}

// MarshalManifest encodes def in manifest form.
func MarshalManifest(def Definition) ([]byte, error) {
	return toml.Marshal(manifestFile{Bundle: def})
}

func (d Definition) resolve(base string) Definition {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	d.Binary = abs(d.Binary)
	d.Plist = abs(d.Plist)
	d.OutDir = abs(d.OutDir)
	if len(d.Resources) > 0 {
		res := make([]string, len(d.Resources))
		for i, r := range d.Resources {
			res[i] = abs(r)
		}
		d.Resources = res
	}
	return d
}
