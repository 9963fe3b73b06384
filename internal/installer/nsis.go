// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/kushview/eltool/internal/toolexec"
	"github.com/kushview/eltool/pkg/types"
)

var (
	//go:embed templates/installer.nsi.tmpl
	nsisTemplateText string

	nsisTemplate = template.Must(template.New("installer.nsi").
			Funcs(template.FuncMap{"win": toWindowsPath, "nsisquote": nsisQuote}).
			Parse(nsisTemplateText))
)

var (
	// ErrMissingField is returned when a required installer field is empty.
	ErrMissingField = errors.New("required installer field is empty")
	// ErrNoFiles is returned when the staged directory holds no files.
	ErrNoFiles = errors.New("no files to install")
)

type (
	// NSISOptions describes the installer to generate.
	NSISOptions struct {
		Name      string
		Version   string
		Publisher string
		// FilesDir is the staged directory whose contents are installed.
		FilesDir string
		// OutFile is the installer executable makensis writes.
		// Defaults to "<Name>-<Version>-setup.exe".
		OutFile string
		// ScriptPath is where the .nsi script is written.
		// Defaults to "<Name>.nsi".
		ScriptPath string
		// InstallDir is written verbatim so it may use NSIS variables.
		// Defaults to "$PROGRAMFILES64\<Name>".
		InstallDir string
	}

	// NSISResult reports what Generate produced.
	NSISResult struct {
		Script    string
		Installer string
		// Compiled is false for dry runs.
		Compiled bool
		Files    int
	}

	// MakensisError is returned when makensis exits non-zero.
	MakensisError struct {
		ExitCode types.ExitCode
		Output   string
	}

	// NSISGenerator renders installer scripts and compiles them.
	NSISGenerator struct {
		runner   toolexec.Runner
		makensis string
		logger   *log.Logger
	}

	nsisData struct {
		NSISOptions
		Dirs       []nsisDir
		Files      []string
		RemoveDirs []string
	}

	nsisDir struct {
		Path  string
		Files []nsisFile
	}

	nsisFile struct {
		Source string
	}
)

// Error implements the error interface.
func (e *MakensisError) Error() string {
	return fmt.Sprintf("makensis failed with exit code %d: %s", e.ExitCode, strings.TrimSpace(e.Output))
}

// WithDefaults fills the derived fields.
func (o NSISOptions) WithDefaults() NSISOptions {
	if o.OutFile == "" && o.Name != "" {
		o.OutFile = fmt.Sprintf("%s-%s-setup.exe", o.Name, o.Version)
	}
	if o.ScriptPath == "" && o.Name != "" {
		o.ScriptPath = o.Name + ".nsi"
	}
	if o.InstallDir == "" && o.Name != "" {
		o.InstallDir = `$PROGRAMFILES64\` + nsisQuote(o.Name)
	}
	if o.Publisher == "" {
		o.Publisher = o.Name
	}
	return o
}

// Validate checks required fields and that FilesDir is a directory.
func (o NSISOptions) Validate() error {
	required := []struct{ field, value string }{
		{"name", o.Name},
		{"version", o.Version},
		{"files", o.FilesDir},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, r.field)
		}
	}
	info, err := os.Stat(o.FilesDir)
	if err != nil {
		return fmt.Errorf("files directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("files directory %s is not a directory", o.FilesDir)
	}
	return nil
}

// NewNSISGenerator returns a generator that compiles scripts with the
// makensis command line.
func NewNSISGenerator(runner toolexec.Runner, makensis string, logger *log.Logger) *NSISGenerator {
	if makensis == "" {
		makensis = "makensis"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &NSISGenerator{runner: runner, makensis: makensis, logger: logger}
}

// Generate writes the installer script and, unless dryRun is set, runs
// makensis on it.
func (g *NSISGenerator) Generate(ctx context.Context, opts NSISOptions, dryRun bool) (*NSISResult, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	files, err := stagedFiles(opts.FilesDir)
	if err != nil {
		return nil, err
	}

	script, err := RenderNSIS(opts, files)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(opts.ScriptPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create script directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.ScriptPath, script, 0o644); err != nil {
		return nil, fmt.Errorf("write script: %w", err)
	}
	g.logger.Debug("wrote NSIS script", "path", opts.ScriptPath, "files", len(files))

	res := &NSISResult{Script: opts.ScriptPath, Installer: opts.OutFile, Files: len(files)}
	if dryRun {
		return res, nil
	}

	cmd, err := toolexec.ToolCommand(g.makensis, opts.ScriptPath)
	if err != nil {
		return nil, err
	}
	out, err := g.runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if !out.Success() {
		return nil, &MakensisError{ExitCode: out.ExitCode, Output: out.Stdout + out.Stderr}
	}
	res.Compiled = true
	return res, nil
}

// RenderNSIS renders the installer script for files, given as slash
// separated paths relative to opts.FilesDir.
func RenderNSIS(opts NSISOptions, files []string) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, opts.FilesDir)
	}

	byDir := map[string][]nsisFile{}
	removeDirs := map[string]struct{}{}
	for _, f := range files {
		dir := path.Dir(f)
		if dir == "." {
			dir = ""
		}
		byDir[dir] = append(byDir[dir], nsisFile{Source: filepath.Join(opts.FilesDir, filepath.FromSlash(f))})
		for d := dir; d != "" && d != "."; d = path.Dir(d) {
			removeDirs[d] = struct{}{}
		}
	}

	data := nsisData{NSISOptions: opts, Files: files}
	for dir, dirFiles := range byDir {
		data.Dirs = append(data.Dirs, nsisDir{Path: dir, Files: dirFiles})
	}
	sort.Slice(data.Dirs, func(i, j int) bool { return data.Dirs[i].Path < data.Dirs[j].Path })

	for d := range removeDirs {
		data.RemoveDirs = append(data.RemoveDirs, d)
	}
	// Deepest first so RMDir sees empty directories.
	sort.Slice(data.RemoveDirs, func(i, j int) bool {
		a, b := data.RemoveDirs[i], data.RemoveDirs[j]
		if da, db := strings.Count(a, "/"), strings.Count(b, "/"); da != db {
			return da > db
		}
		return a < b
	})

	var buf bytes.Buffer
	if err := nsisTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render NSIS script: %w", err)
	}
	return buf.Bytes(), nil
}

// stagedFiles lists every regular file below dir, slash separated and
// sorted.
func stagedFiles(dir string) ([]string, error) {
	files, err := doublestar.Glob(os.DirFS(dir), "**", doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// nsisEscaper escapes text for a double-quoted NSIS string, where $ starts
// a variable and $\" is a literal quote.
var nsisEscaper = strings.NewReplacer(
	"$", "$$",
	`"`, `$\"`,
	"\r", `$\r`,
	"\n", `$\n`,
)

func nsisQuote(s string) string {
	return nsisEscaper.Replace(s)
}

func toWindowsPath(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}
