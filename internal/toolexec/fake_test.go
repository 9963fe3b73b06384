// SPDX-License-Identifier: MPL-2.0

package toolexec

import (
	"context"
	"strings"
	"testing"
)

func TestFakeRunner(t *testing.T) {
	t.Parallel()

	f := NewFakeRunner().
		On("git status --porcelain", " M main.go\n").
		OnExit("git rev-list --count bogus..HEAD", 128, "fatal: bad revision").
		Uninstall("makensis")

	var out strings.Builder
	res, err := f.Run(t.Context(), Command{Name: "git", Args: []string{"status", "--porcelain"}, Stdout: &out})
	if err != nil || !res.Success() {
		t.Fatalf("Run(status) = %+v, %v", res, err)
	}
	if out.String() != " M main.go\n" {
		t.Errorf("streamed stdout = %q", out.String())
	}

	res, err = f.Run(t.Context(), Command{Name: "git", Args: []string{"rev-list", "--count", "bogus..HEAD"}})
	if err != nil {
		t.Fatalf("Run(rev-list) error = %v", err)
	}
	if res.ExitCode != 128 {
		t.Errorf("ExitCode = %d, want 128", res.ExitCode)
	}

	if _, err := f.Run(t.Context(), Command{Name: "makensis", Args: []string{"x.nsi"}}); !IsToolNotFound(err) {
		t.Errorf("Run(makensis) error = %v, want tool not found", err)
	}
	if _, err := f.LookPath("makensis"); !IsToolNotFound(err) {
		t.Errorf("LookPath(makensis) error = %v, want tool not found", err)
	}

	if _, err := f.Run(t.Context(), Command{Name: "git", Args: []string{"push"}}); err == nil {
		t.Error("unscripted command succeeded")
	}

	if got := len(f.Calls()); got != 4 {
		t.Errorf("recorded %d calls, want 4", got)
	}
	if !f.Ran("git rev-list") {
		t.Error("Ran(git rev-list) = false")
	}
}

func TestFakeRunner_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	f := NewFakeRunner().On("git status --porcelain", "")
	if _, err := f.Run(ctx, Command{Name: "git", Args: []string{"status", "--porcelain"}}); err == nil {
		t.Error("Run() with cancelled context succeeded")
	}
}
