// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"testing"
)

func TestType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ           Type
		ext, pkgType  string
		requiresPlist bool
	}{
		{TypeMacApp, ".app", "APPL", true},
		{TypeComponent, ".component", "BNDL", true},
		{TypeVST3, ".vst3", "BNDL", false},
		{TypeFramework, ".framework", "FMWK", false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			t.Parallel()

			if err := tt.typ.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if got := tt.typ.Extension(); got != tt.ext {
				t.Errorf("Extension() = %q, want %q", got, tt.ext)
			}
			if got := tt.typ.PackageType(); got != tt.pkgType {
				t.Errorf("PackageType() = %q, want %q", got, tt.pkgType)
			}
			if got := tt.typ.RequiresPlist(); got != tt.requiresPlist {
				t.Errorf("RequiresPlist() = %v, want %v", got, tt.requiresPlist)
			}
		})
	}
}

func TestType_Invalid(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{"", "bogus", "MACAPP", "app"} {
		err := typ.Validate()
		if !errors.Is(err, ErrInvalidType) {
			t.Errorf("Type(%q).Validate() = %v, want ErrInvalidType", typ, err)
		}
		var typeErr *InvalidTypeError
		if !errors.As(err, &typeErr) || typeErr.Value != typ {
			t.Errorf("Type(%q): errors.As() did not recover the value", typ)
		}
	}
}

func TestPkgInfo(t *testing.T) {
	t.Parallel()

	if got := string(PkgInfo(TypeMacApp, "????")); got != "APPL????" {
		t.Errorf("PkgInfo(macapp) = %q", got)
	}
	if got := string(PkgInfo(TypeComponent, "Elmt")); got != "BNDLElmt" {
		t.Errorf("PkgInfo(component) = %q", got)
	}
}
