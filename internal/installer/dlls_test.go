// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDLLStager_Stage(t *testing.T) {
	t.Parallel()

	first := stageTree(t, "bin/a.dll", "bin/deep/b.dll", "bin/readme.txt")
	second := stageTree(t, "a.dll", "c.dll")
	target := filepath.Join(t.TempDir(), "dist")

	staged, err := NewDLLStager(nil).Stage(t.Context(), []string{first, second}, target, "")
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	want := []string{
		filepath.Join(target, "a.dll"),
		filepath.Join(target, "b.dll"),
		filepath.Join(target, "c.dll"),
	}
	if len(staged) != len(want) {
		t.Fatalf("Stage() = %v, want %v", staged, want)
	}
	for i := range want {
		if staged[i] != want[i] {
			t.Errorf("staged[%d] = %q, want %q", i, staged[i], want[i])
		}
	}

	// The later source wins for duplicate names.
	data, err := os.ReadFile(filepath.Join(target, "a.dll"))
	if err != nil || string(data) != "a.dll" {
		t.Errorf("a.dll = %q, %v; want content from the second source", data, err)
	}
	if _, err := os.Stat(filepath.Join(target, "readme.txt")); !os.IsNotExist(err) {
		t.Error("non-matching file was staged")
	}
}

func TestDLLStager_CustomPattern(t *testing.T) {
	t.Parallel()

	src := stageTree(t, "x/lib.so", "x/lib.dll")
	target := t.TempDir()

	staged, err := NewDLLStager(nil).Stage(t.Context(), []string{src}, target, "**/*.so")
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if len(staged) != 1 || filepath.Base(staged[0]) != "lib.so" {
		t.Errorf("Stage() = %v", staged)
	}
}

func TestDLLStager_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewDLLStager(nil).Stage(t.Context(), []string{t.TempDir()}, t.TempDir(), "[bad"); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("Stage() with bad pattern error = %v, want ErrInvalidPattern", err)
	}
	if _, err := NewDLLStager(nil).Stage(t.Context(), []string{filepath.Join(t.TempDir(), "missing")}, t.TempDir(), ""); err == nil {
		t.Error("Stage() with missing source succeeded")
	}
}
