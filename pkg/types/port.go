// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidPort is the sentinel error wrapped by InvalidPortError.
	ErrInvalidPort = errors.New("invalid port")
	// ErrZeroPort is returned when a destination port is left at zero.
	ErrZeroPort = errors.New("port must not be zero for a destination")
)

type (
	// Port represents a UDP or TCP port number.
	// The zero value (0) is valid for listeners and means "auto-select an
	// available port". Destinations must use 1-65535.
	Port int

	// InvalidPortError is returned when a Port value is outside 0-65535.
	InvalidPortError struct {
		Value Port
	}
)

// String returns the decimal string representation of the Port.
func (p Port) String() string { return strconv.Itoa(int(p)) }

// Validate returns an error if the Port is outside the valid range.
// The zero value (0) means auto-select and is valid.
func (p Port) Validate() error {
	if p < 0 || p > 65535 {
		return &InvalidPortError{Value: p}
	}
	return nil
}

// ValidateDestination is Validate plus a non-zero check, for ports that are
// sent to rather than listened on.
func (p Port) ValidateDestination() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p == 0 {
		return ErrZeroPort
	}
	return nil
}

// Error implements the error interface for InvalidPortError.
func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid port %d: must be 0 (auto-select) or 1-65535", e.Value)
}

// Unwrap returns ErrInvalidPort for errors.Is() compatibility.
func (e *InvalidPortError) Unwrap() error { return ErrInvalidPort }
