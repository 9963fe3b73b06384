// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Setenv sets key to value until the test ends. Like t.Setenv it must not
// be used in parallel tests.
func Setenv(t testing.TB, key, value string) {
	t.Helper()
	restoreEnv(t, key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s: %v", key, err)
	}
}

// Unsetenv removes key until the test ends.
func Unsetenv(t testing.TB, key string) {
	t.Helper()
	restoreEnv(t, key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
}

// SetHome points the user home directory used by os.UserHomeDir at dir.
func SetHome(t testing.TB, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		Setenv(t, "USERPROFILE", dir)
		return
	}
	Setenv(t, "HOME", dir)
}

func restoreEnv(t testing.TB, key string) {
	prev, had := os.LookupEnv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

// Chdir moves into dir until the test ends.
func Chdir(t testing.TB, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory %s: %v", prev, err)
		}
	})
}

// MustWriteFile writes content to path, creating its parent directories,
// and returns path so fixtures can be built inline.
func MustWriteFile(t testing.TB, path, content string, perm os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// MustReadFile returns the content of path.
func MustReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
