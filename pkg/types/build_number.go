// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidBuildNumber is the sentinel error wrapped by InvalidBuildNumberError.
var ErrInvalidBuildNumber = errors.New("invalid build number")

type (
	// BuildNumber is a monotonically increasing build counter, usually the
	// number of commits between a reference revision and HEAD.
	BuildNumber int

	// InvalidBuildNumberError is returned for negative build numbers.
	InvalidBuildNumberError struct {
		Value BuildNumber
	}
)

// String returns the decimal string representation of the BuildNumber.
func (n BuildNumber) String() string { return strconv.Itoa(int(n)) }

// Validate returns an error if the BuildNumber is negative.
func (n BuildNumber) Validate() error {
	if n < 0 {
		return &InvalidBuildNumberError{Value: n}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidBuildNumberError) Error() string {
	return fmt.Sprintf("invalid build number %d (must not be negative)", e.Value)
}

// Unwrap returns ErrInvalidBuildNumber.
func (e *InvalidBuildNumberError) Unwrap() error { return ErrInvalidBuildNumber }

// ParseBuildNumber parses the decimal output of a commit counter such as
// `git rev-list --count`.
func ParseBuildNumber(s string) (BuildNumber, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBuildNumber, s)
	}
	n := BuildNumber(v)
	if err := n.Validate(); err != nil {
		return 0, err
	}
	return n, nil
}
