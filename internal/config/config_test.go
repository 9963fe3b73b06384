// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/kushview/eltool/internal/issue"
	"github.com/kushview/eltool/internal/testutil"
	"github.com/kushview/eltool/internal/version"
	"github.com/kushview/eltool/pkg/types"
)

// isolate runs the test from an empty working directory so a stray
// ./config.cue cannot leak in, and returns an empty config directory.
func isolate(t *testing.T) string {
	t.Helper()
	testutil.Chdir(t, t.TempDir())
	return t.TempDir()
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	return testutil.MustWriteFile(t, filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), content, 0o644)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.OSC.Host != "localhost" || cfg.OSC.Port != 9000 {
		t.Errorf("default OSC target = %s:%d, want localhost:9000", cfg.OSC.Host, cfg.OSC.Port)
	}
	if cfg.Version.Style != version.StyleDotted {
		t.Errorf("default style = %q, want dotted", cfg.Version.Style)
	}
	if cfg.Version.Backend != version.BackendExec {
		t.Errorf("default backend = %q, want exec", cfg.Version.Backend)
	}
	if cfg.Tools.Projucer != "Projucer" || cfg.Tools.ClangFormat != "clang-format" {
		t.Errorf("default tools = %+v", cfg.Tools)
	}
	if cfg.Bundle.Signature != "????" {
		t.Errorf("default signature = %q, want ????", cfg.Bundle.Signature)
	}
	if len(cfg.Format.Patterns) == 0 {
		t.Error("expected default format patterns")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto || cfg.UI.Verbose {
		t.Errorf("default UI = %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-specific")
	}

	testutil.Setenv(t, "XDG_CONFIG_HOME", "/tmp/test-xdg-config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	home := t.TempDir()
	testutil.SetHome(t, home)
	testutil.Unsetenv(t, "XDG_CONFIG_HOME")

	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %s, want %s", got, dir)
	}

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "config.cue"); path != want {
		t.Errorf("DefaultConfigPath() = %s, want %s", path, want)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	cfgDir := isolate(t)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	cfgDir := isolate(t)
	want := writeConfig(t, cfgDir, `
osc: port: 9100
tools: projucer: "xvfb-run -a Projucer"
version: {
	current: "1.2.3"
	style:   "revision"
}
format: patterns: ["modules/**/*.cpp"]
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if path != want {
		t.Errorf("resolved path = %q, want %q", path, want)
	}
	if cfg.OSC.Port != 9100 {
		t.Errorf("OSC.Port = %d, want 9100", cfg.OSC.Port)
	}
	if cfg.OSC.Host != "localhost" {
		t.Errorf("OSC.Host = %q, default should survive", cfg.OSC.Host)
	}
	if cfg.Tools.Projucer != "xvfb-run -a Projucer" {
		t.Errorf("Tools.Projucer = %q", cfg.Tools.Projucer)
	}
	if cfg.Tools.Git != "git" {
		t.Errorf("Tools.Git = %q, default should survive", cfg.Tools.Git)
	}
	if cfg.Version.Current != "1.2.3" || cfg.Version.Style != version.StyleRevision {
		t.Errorf("Version = %+v", cfg.Version)
	}
	if !reflect.DeepEqual(cfg.Format.Patterns, []string{"modules/**/*.cpp"}) {
		t.Errorf("Format.Patterns = %v", cfg.Format.Patterns)
	}
}

func TestLoad_LocalConfigFallback(t *testing.T) {
	cfgDir := isolate(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	writeConfig(t, wd, `bundle: identifier_prefix: "com.example"`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if path != "config.cue" {
		t.Errorf("resolved path = %q, want config.cue", path)
	}
	if cfg.Bundle.IdentifierPrefix != "com.example" {
		t.Errorf("IdentifierPrefix = %q", cfg.Bundle.IdentifierPrefix)
	}
}

func TestLoad_ConfigDirWinsOverLocal(t *testing.T) {
	cfgDir := isolate(t)
	wd, _ := os.Getwd()
	writeConfig(t, wd, `osc: port: 1111`)
	writeConfig(t, cfgDir, `osc: port: 2222`)

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.OSC.Port != 2222 {
		t.Errorf("OSC.Port = %d, want 2222", cfg.OSC.Port)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	cfgDir := isolate(t)
	writeConfig(t, cfgDir, `osc: port: 2222`)
	custom := testutil.MustWriteFile(t, filepath.Join(t.TempDir(), "custom.cue"), `osc: host: "10.0.0.2"`, 0o644)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: custom, ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if path != custom {
		t.Errorf("resolved path = %q, want %q", path, custom)
	}
	if cfg.OSC.Host != "10.0.0.2" || cfg.OSC.Port != 9000 {
		t.Errorf("OSC = %+v, custom file should be used exclusively", cfg.OSC)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	isolate(t)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: "/nonexistent/eltool.cue"})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionableError, got %T", err)
	}
	if ae.Operation != "load configuration" {
		t.Errorf("Operation = %q", ae.Operation)
	}
	if ae.Resource != "/nonexistent/eltool.cue" {
		t.Errorf("Resource = %q", ae.Resource)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions")
	}
}

func TestLoad_InvalidFiles(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"syntax error", "osc: {port: ", "config.cue"},
		{"wrong type", `osc: port: "nine"`, "port"},
		{"out of range", `osc: port: 70000`, "port"},
		{"unknown style", `version: style: "weird"`, "style"},
		{"unknown field", `colour: "blue"`, "colour"},
		{"bad signature", `bundle: signature: "TOOLONG"`, "signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgDir := isolate(t)
			writeConfig(t, cfgDir, tt.content)

			_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
			if err == nil {
				t.Fatal("expected error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected ActionableError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	cfgDir := isolate(t)
	writeConfig(t, cfgDir, `osc: port: 9100`)
	testutil.Setenv(t, "ELTOOL_OSC_PORT", "9001")
	testutil.Setenv(t, "ELTOOL_TOOLS_GIT", "/opt/git/bin/git")

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.OSC.Port != types.Port(9001) {
		t.Errorf("OSC.Port = %d, want 9001 from env", cfg.OSC.Port)
	}
	if cfg.Tools.Git != "/opt/git/bin/git" {
		t.Errorf("Tools.Git = %q", cfg.Tools.Git)
	}
}

func TestLoad_EnvOverrideIsValidated(t *testing.T) {
	cfgDir := isolate(t)
	testutil.Setenv(t, "ELTOOL_VERSION_BACKEND", "svn")

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, version.ErrInvalidBackend) {
		t.Errorf("err = %v, want ErrInvalidBackend in the chain", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_LoadsBack(t *testing.T) {
	cfgDir := isolate(t)

	cfg := DefaultConfig()
	cfg.OSC.Host = "studio.local"
	cfg.Version.Current = "2.0.0"
	cfg.Version.Backend = version.BackendGit
	cfg.Tools.Makensis = `"C:\Program Files\NSIS\makensis.exe"`
	cfg.Format.Patterns = []string{"src/**/*.cpp"}
	cfg.UI.ColorScheme = ColorSchemeDark

	path := filepath.Join(cfgDir, "config.cue")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v\n%s", err, testutil.MustReadFile(t, path))
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("loaded = %+v\nwant    %+v", loaded, cfg)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "eltool")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, err := CreateDefaultConfig(false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}
	if !strings.Contains(testutil.MustReadFile(t, path), `host: "localhost"`) {
		t.Error("generated file should contain the default host")
	}

	testutil.MustWriteFile(t, path, "// mine\n", 0o644)
	if _, err := CreateDefaultConfig(false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second call err = %v, want ErrConfigExists", err)
	}
	if got := testutil.MustReadFile(t, path); got != "// mine\n" {
		t.Error("existing file must be kept without force")
	}

	if _, err := CreateDefaultConfig(true); err != nil {
		t.Fatalf("forced call returned error: %v", err)
	}
	if got := testutil.MustReadFile(t, path); got == "// mine\n" {
		t.Error("force should replace the file")
	}
}

func TestConstants(t *testing.T) {
	t.Parallel()

	if AppName != "eltool" {
		t.Errorf("AppName = %q", AppName)
	}
	if EnvPrefix != "ELTOOL" {
		t.Errorf("EnvPrefix = %q", EnvPrefix)
	}
	if ConfigFileName+"."+ConfigFileExt != "config.cue" {
		t.Errorf("config file = %s.%s", ConfigFileName, ConfigFileExt)
	}
}
