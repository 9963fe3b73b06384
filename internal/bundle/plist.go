// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"fmt"

	"howett.net/plist"
)

// defaultPlistVersion is written when a generated Info.plist has no
// version.
const defaultPlistVersion = "0.0.1"

// infoPlist is the generated Info.plist for bundles that do not ship one.
type infoPlist struct {
	Name               string `plist:"CFBundleName"`
	Executable         string `plist:"CFBundleExecutable,omitempty"`
	Identifier         string `plist:"CFBundleIdentifier"`
	Version            string `plist:"CFBundleVersion"`
	ShortVersionString string `plist:"CFBundleShortVersionString"`
	Signature          string `plist:"CFBundleSignature"`
	PackageType        string `plist:"CFBundlePackageType"`
	InfoString         string `plist:"CFBundleGetInfoString,omitempty"`
	Copyright          string `plist:"NSHumanReadableCopyright,omitempty"`
}

// generatePlist renders a default XML Info.plist.
func generatePlist(d Definition, hasBinary bool) ([]byte, error) {
	version := d.Version
	if version == "" {
		version = defaultPlistVersion
	}

	info := infoPlist{
		Name:               d.Name,
		Identifier:         d.BundleIdentifier(""),
		Version:            version,
		ShortVersionString: version,
		Signature:          d.Signature,
		PackageType:        d.Type.PackageType(),
		InfoString:         "Created by eltool",
		Copyright:          d.Copyright,
	}
	if hasBinary {
		info.Executable = d.Name
	}

	data, err := plist.MarshalIndent(info, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encode Info.plist: %w", err)
	}
	return data, nil
}

// patchPlist sets the identifier and version keys of an existing plist,
// keeping its encoding format. Empty values leave the keys untouched.
func patchPlist(data []byte, identifier, version string) ([]byte, error) {
	if identifier == "" && version == "" {
		return data, nil
	}

	var doc map[string]any
	format, err := plist.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("decode Info.plist: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	if identifier != "" {
		doc["CFBundleIdentifier"] = identifier
	}
	if version != "" {
		doc["CFBundleVersion"] = version
		doc["CFBundleShortVersionString"] = version
	}

	out, err := plist.MarshalIndent(doc, format, "\t")
	if err != nil {
		return nil, fmt.Errorf("encode Info.plist: %w", err)
	}
	return out, nil
}
