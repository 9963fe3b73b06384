// SPDX-License-Identifier: MPL-2.0

// Package format runs clang-format over source files selected with
// doublestar glob patterns.
package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/kushview/eltool/internal/toolexec"
	"github.com/kushview/eltool/pkg/types"
)

const (
	// DefaultCommand is the clang-format command line used when none is
	// configured.
	DefaultCommand = "clang-format"
	// DefaultBatchSize bounds the number of files per clang-format call.
	DefaultBatchSize = 64
)

var (
	// ErrNoPatterns is returned when no glob patterns are configured.
	ErrNoPatterns = errors.New("no source patterns given")
	// ErrInvalidPattern is returned for malformed glob patterns.
	ErrInvalidPattern = errors.New("invalid glob pattern")
	// ErrNeedsFormatting is returned in check mode when a file would change.
	ErrNeedsFormatting = errors.New("files need formatting")
)

// DefaultPatterns are the sources formatted when nothing is configured.
func DefaultPatterns() []string {
	return []string{
		"src/**/*.cpp",
		"src/**/*.h",
		"include/**/*.hpp",
		"include/**/*.h",
		"test/**/*.cpp",
	}
}

type (
	// Formatter runs clang-format through a toolexec.Runner.
	Formatter struct {
		runner    toolexec.Runner
		command   string
		logger    *log.Logger
		batchSize int
	}

	// Report summarizes one run.
	Report struct {
		Files   []string
		Batches int
	}

	// RunError is returned when clang-format exits non-zero.
	RunError struct {
		ExitCode types.ExitCode
		Output   string
		Check    bool
	}
)

// Error implements the error interface.
func (e *RunError) Error() string {
	out := strings.TrimSpace(e.Output)
	if e.Check {
		return fmt.Sprintf("%s:\n%s", ErrNeedsFormatting, out)
	}
	return fmt.Sprintf("clang-format exited with code %d: %s", e.ExitCode, out)
}

// Unwrap returns ErrNeedsFormatting for check mode failures.
func (e *RunError) Unwrap() error {
	if e.Check {
		return ErrNeedsFormatting
	}
	return nil
}

// NewFormatter returns a Formatter for the configured clang-format command
// line. batchSize <= 0 selects DefaultBatchSize.
func NewFormatter(runner toolexec.Runner, command string, batchSize int, logger *log.Logger) *Formatter {
	if command == "" {
		command = DefaultCommand
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Formatter{runner: runner, command: command, batchSize: batchSize, logger: logger}
}

// Expand resolves patterns below root and returns the matching files,
// slash separated, relative to root, deduplicated and sorted.
func Expand(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	fsys := os.DirFS(root)
	seen := map[string]struct{}{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	slices.Sort(files)
	return files, nil
}

// Run formats the files matching patterns below root in place, or with
// check set only reports whether any file would change.
func (f *Formatter) Run(ctx context.Context, root string, patterns []string, check bool) (*Report, error) {
	files, err := Expand(root, patterns)
	if err != nil {
		return nil, err
	}

	fields, err := toolexec.SplitCommandLine(f.command, nil)
	if err != nil {
		return nil, err
	}
	if _, err := f.runner.LookPath(fields[0]); err != nil {
		return nil, err
	}

	report := &Report{Files: files}
	if len(files) == 0 {
		f.logger.Warn("no files matched", "patterns", patterns)
		return report, nil
	}

	var failures []string
	var lastCode types.ExitCode
	for batch := range slices.Chunk(files, f.batchSize) {
		args := []string{"-i"}
		if check {
			args = []string{"--dry-run", "-Werror"}
		}
		args = append(args, batch...)

		cmd, err := toolexec.ToolCommand(f.command, args...)
		if err != nil {
			return nil, err
		}
		cmd.Dir = root

		f.logger.Debug("clang-format batch", "files", len(batch), "check", check)
		res, err := f.runner.Run(ctx, cmd)
		if err != nil {
			return nil, err
		}
		report.Batches++
		if !res.Success() {
			lastCode = res.ExitCode
			failures = append(failures, res.Stderr)
			if !check {
				break
			}
		}
	}

	if len(failures) > 0 {
		return report, &RunError{ExitCode: lastCode, Output: strings.Join(failures, "\n"), Check: check}
	}
	return report, nil
}
