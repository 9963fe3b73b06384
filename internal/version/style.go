// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"fmt"

	"github.com/kushview/eltool/pkg/types"
)

const (
	// StyleDotted appends ".N": 1.2.3.45
	StyleDotted BuildStyle = "dotted"
	// StyleDashed appends "-N": 1.2.3-45
	StyleDashed BuildStyle = "dashed"
	// StyleRevision appends "_rN": 1.2.3_r45
	StyleRevision BuildStyle = "revision"
	// StyleNumber prints only the build number: 45
	StyleNumber BuildStyle = "number"
)

// ErrInvalidBuildStyle is the sentinel error wrapped by InvalidBuildStyleError.
var ErrInvalidBuildStyle = errors.New("invalid build style")

type (
	// BuildStyle selects how a build number is attached to the base.
	BuildStyle string

	// InvalidBuildStyleError is returned for unknown style names.
	InvalidBuildStyleError struct {
		Value BuildStyle
	}
)

// Error implements the error interface.
func (e *InvalidBuildStyleError) Error() string {
	return fmt.Sprintf("invalid build style %q (valid: %v)", e.Value, BuildStyles())
}

// Unwrap returns ErrInvalidBuildStyle for errors.Is() compatibility.
func (e *InvalidBuildStyleError) Unwrap() error { return ErrInvalidBuildStyle }

// BuildStyles lists the accepted styles.
func BuildStyles() []BuildStyle {
	return []BuildStyle{StyleDotted, StyleDashed, StyleRevision, StyleNumber}
}

// Validate returns an error if s is not a known style. The empty string
// is accepted and means StyleDotted.
func (s BuildStyle) Validate() error {
	switch s {
	case "", StyleDotted, StyleDashed, StyleRevision, StyleNumber:
		return nil
	default:
		return &InvalidBuildStyleError{Value: s}
	}
}

// String returns the style name.
func (s BuildStyle) String() string { return string(s) }

// Apply attaches build number n to base.
func (s BuildStyle) Apply(base string, n types.BuildNumber) string {
	num := n.String()
	switch s {
	case StyleDashed:
		return base + "-" + num
	case StyleRevision:
		return base + "_r" + num
	case StyleNumber:
		return num
	default:
		return base + "." + num
	}
}
