// SPDX-License-Identifier: MPL-2.0

// Package projucer regenerates IDE project files by asking Projucer to
// resave .jucer projects.
package projucer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kushview/eltool/internal/toolexec"
	"github.com/kushview/eltool/pkg/types"
)

// DefaultCommand is the Projucer command line used when none is configured.
const DefaultCommand = "Projucer"

var (
	// ErrNoProjects is returned when Resave is called without projects.
	ErrNoProjects = errors.New("no .jucer projects given")
	// ErrProjectMissing is returned when a project file does not exist.
	ErrProjectMissing = errors.New("project file not found")
)

type (
	// Resaver runs `Projucer --resave` for project files.
	Resaver struct {
		runner  toolexec.Runner
		command string
		logger  *log.Logger
		// Stdout and Stderr receive Projucer's output when set.
		Stdout io.Writer
		Stderr io.Writer
	}

	// ResaveError is returned when Projucer exits non-zero for a project.
	ResaveError struct {
		Project  string
		ExitCode types.ExitCode
		Output   string
	}
)

// Error implements the error interface.
func (e *ResaveError) Error() string {
	msg := fmt.Sprintf("projucer --resave %s exited with code %d", e.Project, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// NewResaver returns a Resaver for the configured Projucer command line.
func NewResaver(runner toolexec.Runner, command string, logger *log.Logger) *Resaver {
	if command == "" {
		command = DefaultCommand
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resaver{runner: runner, command: command, logger: logger}
}

// Check verifies that every project exists and that Projucer can be found,
// without running anything.
func (r *Resaver) Check(projects []string) error {
	if len(projects) == 0 {
		return ErrNoProjects
	}
	for _, p := range projects {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			return fmt.Errorf("%w: %s", ErrProjectMissing, p)
		}
	}

	fields, err := toolexec.SplitCommandLine(r.command, nil)
	if err != nil {
		return err
	}
	_, err = r.runner.LookPath(fields[0])
	return err
}

// Resave runs Projucer once per project, in order, stopping at the first
// failure.
func (r *Resaver) Resave(ctx context.Context, projects []string) error {
	if err := r.Check(projects); err != nil {
		return err
	}

	for _, p := range projects {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}

		cmd, err := toolexec.ToolCommand(r.command, "--resave", abs)
		if err != nil {
			return err
		}
		cmd.Stdout, cmd.Stderr = r.Stdout, r.Stderr

		r.logger.Info("resaving project", "project", p)
		res, err := r.runner.Run(ctx, cmd)
		if err != nil {
			return err
		}
		if !res.Success() {
			return &ResaveError{Project: p, ExitCode: res.ExitCode, Output: res.Stderr}
		}
	}
	return nil
}
