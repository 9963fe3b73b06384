// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/kushview/eltool/internal/config"
	"github.com/kushview/eltool/internal/toolexec"
)

// harness runs the command tree in-process against a fake runner and a
// static configuration.
type harness struct {
	t      *testing.T
	cfg    *config.Config
	runner *toolexec.FakeRunner
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		t:      t,
		cfg:    config.DefaultConfig(),
		runner: toolexec.NewFakeRunner(),
	}
}

// run executes args with a fresh App and returns the handler error.
func (h *harness) run(args ...string) error {
	h.t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()

	app := NewApp(Dependencies{
		Config: &config.StaticProvider{Config: h.cfg},
		Runner: h.runner,
		Stdout: &h.stdout,
		Stderr: &h.stderr,
	})
	root := newRootCommand(app)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// code returns the exit code err maps to.
func (h *harness) code(err error) int {
	return int(exitCode(err))
}
