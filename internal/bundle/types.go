// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"
)

const (
	// TypeMacApp is a macOS application bundle (<Name>.app).
	TypeMacApp Type = "macapp"
	// TypeComponent is an Audio Unit component bundle (<Name>.component).
	TypeComponent Type = "component"
	// TypeVST3 is a VST3 plugin bundle (<Name>.vst3).
	TypeVST3 Type = "vst3"
	// TypeFramework is a versioned macOS framework (<Name>.framework).
	TypeFramework Type = "framework"
)

// ErrInvalidType is the sentinel error wrapped by InvalidTypeError.
var ErrInvalidType = errors.New("invalid bundle type")

type (
	// Type selects a bundle layout.
	Type string

	// InvalidTypeError is returned when a Type is not one of the known
	// layouts.
	InvalidTypeError struct {
		Value Type
	}
)

// Error implements the error interface.
func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid bundle type %q (valid: %v)", e.Value, Types())
}

// Unwrap returns ErrInvalidType for errors.Is() compatibility.
func (e *InvalidTypeError) Unwrap() error { return ErrInvalidType }

// Types returns every supported bundle type.
func Types() []Type {
	return []Type{TypeMacApp, TypeComponent, TypeVST3, TypeFramework}
}

// Validate returns an error if t is not a known type.
func (t Type) Validate() error {
	switch t {
	case TypeMacApp, TypeComponent, TypeVST3, TypeFramework:
		return nil
	default:
		return &InvalidTypeError{Value: t}
	}
}

// String returns the type name.
func (t Type) String() string { return string(t) }

// Extension returns the bundle directory extension, including the dot.
func (t Type) Extension() string {
	switch t {
	case TypeMacApp:
		return ".app"
	case TypeComponent:
		return ".component"
	case TypeVST3:
		return ".vst3"
	case TypeFramework:
		return ".framework"
	default:
		return ""
	}
}

// PackageType returns the four-character CFBundlePackageType code.
func (t Type) PackageType() string {
	switch t {
	case TypeMacApp:
		return "APPL"
	case TypeFramework:
		return "FMWK"
	default:
		return "BNDL"
	}
}

// RequiresPlist reports whether the caller must supply an Info.plist.
func (t Type) RequiresPlist() bool {
	return t == TypeMacApp || t == TypeComponent
}
