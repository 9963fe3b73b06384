// SPDX-License-Identifier: MPL-2.0

package toolexec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/kushview/eltool/pkg/types"
)

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Logger receives a debug line per command. Nil discards.
	Logger *log.Logger
}

// NewExecRunner returns an ExecRunner that logs to logger.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

// LookPath wraps exec.LookPath and converts failures to *ToolNotFoundError.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", &ToolNotFoundError{Name: name, Err: err}
	}
	return path, nil
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	path, err := r.LookPath(cmd.Name)
	if err != nil {
		return Result{ExitCode: types.ExitFailure}, err
	}

	if r.Logger != nil {
		r.Logger.Debug("running", "cmd", cmd.String(), "dir", cmd.Dir)
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, path, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdout = teeTo(&stdout, cmd.Stdout)
	c.Stderr = teeTo(&stderr, cmd.Stderr)

	err = c.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		res.ExitCode = types.ProcessExitCode(exitErr.ExitCode())
		return res, nil
	}

	res.ExitCode = types.ExitFailure
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	return res, err
}

func teeTo(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
