// SPDX-License-Identifier: MPL-2.0

package toolexec

import (
	"errors"
	"fmt"
	"os"

	"mvdan.cc/sh/v3/shell"
)

// ErrEmptyCommandLine is returned when a configured tool command line
// expands to nothing.
var ErrEmptyCommandLine = errors.New("empty command line")

// SplitCommandLine splits a configured tool command line into words using
// shell quoting rules and expands $VAR references with env. A nil env reads
// the process environment.
func SplitCommandLine(line string, env func(string) string) ([]string, error) {
	if env == nil {
		env = os.Getenv
	}
	fields, err := shell.Fields(line, env)
	if err != nil {
		return nil, fmt.Errorf("parse command line %q: %w", line, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyCommandLine, line)
	}
	return fields, nil
}

// ToolCommand builds a Command from a configured tool command line followed
// by args. Words after the first in the configured line become leading
// arguments, so "xcrun clang-format" works.
func ToolCommand(line string, args ...string) (Command, error) {
	fields, err := SplitCommandLine(line, nil)
	if err != nil {
		return Command{}, err
	}
	all := append(fields[1:len(fields):len(fields)], args...)
	return Command{Name: fields[0], Args: all}, nil
}
