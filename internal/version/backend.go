// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"fmt"

	"github.com/kushview/eltool/internal/toolexec"
)

const (
	// BackendExec runs the git executable.
	BackendExec Backend = "exec"
	// BackendGit reads the repository with go-git.
	BackendGit Backend = "git"
)

// ErrInvalidBackend is the sentinel error wrapped by InvalidBackendError.
var ErrInvalidBackend = errors.New("invalid repository backend")

type (
	// Backend names a Repository implementation.
	Backend string

	// InvalidBackendError is returned for unknown backend names.
	InvalidBackendError struct {
		Value Backend
	}
)

// Error implements the error interface.
func (e *InvalidBackendError) Error() string {
	return fmt.Sprintf("invalid repository backend %q (valid: exec, git)", e.Value)
}

// Unwrap returns ErrInvalidBackend for errors.Is() compatibility.
func (e *InvalidBackendError) Unwrap() error { return ErrInvalidBackend }

// Validate returns an error if b is not a known backend. Empty means exec.
func (b Backend) Validate() error {
	switch b {
	case "", BackendExec, BackendGit:
		return nil
	default:
		return &InvalidBackendError{Value: b}
	}
}

// String returns the backend name.
func (b Backend) String() string { return string(b) }

// Open returns the Repository for dir. gitCmd is the configured git command
// line and is only used by the exec backend.
func (b Backend) Open(dir string, runner toolexec.Runner, gitCmd string) (Repository, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b == BackendGit {
		return NewGitRepository(dir), nil
	}
	return NewExecRepository(dir, runner, gitCmd), nil
}
