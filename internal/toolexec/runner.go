// SPDX-License-Identifier: MPL-2.0

package toolexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kushview/eltool/pkg/types"
)

// ErrToolNotFound is the sentinel error wrapped by ToolNotFoundError.
var ErrToolNotFound = errors.New("tool not found")

type (
	// Runner executes external commands.
	Runner interface {
		// Run executes cmd and waits for it to finish. A non-zero exit
		// status is reported through Result.ExitCode, not as an error.
		// Errors are reserved for commands that could not be started.
		Run(ctx context.Context, cmd Command) (Result, error)
		// LookPath reports where name would be executed from.
		LookPath(name string) (string, error)
	}

	// Command describes one invocation.
	Command struct {
		Name string
		Args []string
		// Dir is the working directory. Empty means the current directory.
		Dir string
		// Env is appended to the inherited environment as KEY=VALUE pairs.
		Env []string
		// Stdout and Stderr, when set, receive output as it is produced.
		// Output is captured into the Result either way.
		Stdout io.Writer
		Stderr io.Writer
	}

	// Result is the outcome of a finished command.
	Result struct {
		ExitCode types.ExitCode
		Stdout   string
		Stderr   string
	}

	// ToolNotFoundError is returned when the executable cannot be located.
	ToolNotFoundError struct {
		Name string
		Err  error
	}
)

// Argv returns the command name followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String returns the command line for log output.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool { return r.ExitCode.IsSuccess() }

// Error implements the error interface.
func (e *ToolNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: executable not found: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("%s: executable not found", e.Name)
}

// Unwrap returns ErrToolNotFound for errors.Is() compatibility.
func (e *ToolNotFoundError) Unwrap() error { return ErrToolNotFound }

// IsToolNotFound reports whether err means the executable is missing.
func IsToolNotFound(err error) bool {
	return errors.Is(err, ErrToolNotFound)
}
