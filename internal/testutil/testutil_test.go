// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSetenv_RestoredAfterTest(t *testing.T) {
	const key = "ELTOOL_TESTUTIL_VAR"
	Unsetenv(t, key)

	t.Run("set", func(t *testing.T) {
		Setenv(t, key, "value")
		if got := os.Getenv(key); got != "value" {
			t.Errorf("Getenv = %q, want value", got)
		}
	})

	if _, ok := os.LookupEnv(key); ok {
		t.Error("variable still set after the subtest ended")
	}
}

func TestSetHome(t *testing.T) {
	home := t.TempDir()
	t.Run("home", func(t *testing.T) {
		SetHome(t, home)
		got, err := os.UserHomeDir()
		if err != nil || got != home {
			t.Errorf("UserHomeDir() = %q, %v; want %q", got, err, home)
		}
	})

	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	if os.Getenv(key) == home {
		t.Errorf("%s still points at the temporary home", key)
	}
}

func TestMustWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")
	if got := MustWriteFile(t, path, "hello", 0o644); got != path {
		t.Errorf("MustWriteFile() = %q, want %q", got, path)
	}
	if got := MustReadFile(t, path); got != "hello" {
		t.Errorf("MustReadFile() = %q, want hello", got)
	}
}

func TestChdir(t *testing.T) {
	dir := t.TempDir()
	original, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("chdir", func(t *testing.T) {
		Chdir(t, dir)
		wd, _ := os.Getwd()
		resolved, _ := filepath.EvalSymlinks(dir)
		if wd != dir && wd != resolved {
			t.Errorf("Getwd() = %q, want %q", wd, dir)
		}
	})

	if wd, _ := os.Getwd(); wd != original {
		t.Errorf("after the subtest Getwd() = %q, want %q", wd, original)
	}
}
