// SPDX-License-Identifier: MPL-2.0

package toolexec

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kushview/eltool/pkg/types"
)

type (
	// FakeRunner is a scripted Runner for tests. Responses are keyed by the
	// space-joined argv. Tools listed in Missing behave as if they were not
	// installed. Unscripted commands fail the call with an error.
	FakeRunner struct {
		Responses map[string]FakeResponse
		Missing   map[string]bool

		mu    sync.Mutex
		calls []Command
	}

	// FakeResponse is the scripted outcome of one command line.
	FakeResponse struct {
		Result Result
		Err    error
	}
)

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: map[string]FakeResponse{},
		Missing:   map[string]bool{},
	}
}

// On scripts a successful response with the given stdout.
func (f *FakeRunner) On(argv string, stdout string) *FakeRunner {
	f.Responses[argv] = FakeResponse{Result: Result{Stdout: stdout}}
	return f
}

// OnExit scripts a response with a non-zero exit code.
func (f *FakeRunner) OnExit(argv string, code types.ExitCode, stderr string) *FakeRunner {
	f.Responses[argv] = FakeResponse{Result: Result{ExitCode: code, Stderr: stderr}}
	return f
}

// Uninstall marks name as missing.
func (f *FakeRunner) Uninstall(name string) *FakeRunner {
	f.Missing[name] = true
	return f
}

// LookPath implements Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", &ToolNotFoundError{Name: name}
	}
	return "/usr/bin/" + name, nil
}

// Run implements Runner.
func (f *FakeRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{ExitCode: types.ExitFailure}, err
	}
	if f.Missing[cmd.Name] {
		return Result{ExitCode: types.ExitFailure}, &ToolNotFoundError{Name: cmd.Name}
	}

	resp, ok := f.Responses[cmd.String()]
	if !ok {
		return Result{ExitCode: types.ExitFailure}, fmt.Errorf("unexpected command: %s", cmd.String())
	}
	if cmd.Stdout != nil && resp.Result.Stdout != "" {
		_, _ = io.WriteString(cmd.Stdout, resp.Result.Stdout)
	}
	if cmd.Stderr != nil && resp.Result.Stderr != "" {
		_, _ = io.WriteString(cmd.Stderr, resp.Result.Stderr)
	}
	return resp.Result, resp.Err
}

// Calls returns the commands run so far.
func (f *FakeRunner) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Command(nil), f.calls...)
}

// CallLines returns Calls rendered with Command.String.
func (f *FakeRunner) CallLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Ran reports whether a command line starting with prefix was run.
func (f *FakeRunner) Ran(prefix string) bool {
	for _, line := range f.CallLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
