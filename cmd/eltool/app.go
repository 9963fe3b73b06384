// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/kushview/eltool/internal/config"
	"github.com/kushview/eltool/internal/issue"
	"github.com/kushview/eltool/internal/toolexec"
	"github.com/kushview/eltool/pkg/types"
)

// skipConfigAnnotation marks commands that must run even when the
// configuration file is broken.
const skipConfigAnnotation = "eltool/skip-config"

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every command handler receives an App and reaches configuration,
	// logging and external tools through it.
	App struct {
		Config   config.Provider
		Runner   toolexec.Runner
		Resolver *net.Resolver
		Logger   *log.Logger

		stdout io.Writer
		stderr io.Writer

		// configPath is the --config flag value.
		configPath string
		verbose    bool
		cfg        *config.Config
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Runner   toolexec.Runner
		Resolver *net.Resolver
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		Prefix: config.AppName,
		Level:  log.InfoLevel,
	})
	if deps.Runner == nil {
		deps.Runner = toolexec.NewExecRunner(logger)
	}

	return &App{
		Config:   deps.Config,
		Runner:   deps.Runner,
		Resolver: deps.Resolver,
		Logger:   logger,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// Cfg returns the loaded configuration, or the defaults before loading.
func (a *App) Cfg() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// Verbose reports whether --verbose or ui.verbose is set.
func (a *App) Verbose() bool {
	return a.verbose
}

// loadConfig reads the configuration and applies its UI settings.
func (a *App) loadConfig(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.UI.Verbose {
		a.verbose = true
	}
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
	a.applyLogLevel()
	return nil
}

func (a *App) applyLogLevel() {
	if a.verbose {
		a.Logger.SetLevel(log.DebugLevel)
		return
	}
	a.Logger.SetLevel(log.InfoLevel)
}

// glamourStyle maps ui.color_scheme to a glamour style name.
func (a *App) glamourStyle() string {
	switch a.Cfg().UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// renderIssue prints a catalog entry to stderr. Rendering failures are logged
// and otherwise ignored.
func (a *App) renderIssue(entry *issue.Issue) {
	if entry == nil {
		return
	}
	rendered, err := entry.Render(a.glamourStyle())
	if err != nil {
		a.Logger.Warn("failed to render issue", "id", entry.Id(), "error", err)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// printError writes err to stderr, using the actionable form when available.
func (a *App) printError(err error) {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error:"), formatErrorForDisplay(err, a.verbose))
}

// fail reports err with an optional catalog entry and returns the ExitError
// that ends the command.
func (a *App) fail(code types.ExitCode, err error, entry *issue.Issue) error {
	a.printError(err)
	a.renderIssue(entry)
	return &ExitError{Code: code}
}

// toolFailure handles errors from external tool invocations. A missing tool
// prints the catalog entry for the configured tool key.
func (a *App) toolFailure(toolKey string, err error) error {
	var notFound *toolexec.ToolNotFoundError
	if errors.As(err, &notFound) {
		return a.fail(types.ExitFailure, issue.NewErrorContext().
			WithOperation("run "+notFound.Name).
			WithSuggestion(fmt.Sprintf("Install %s or set tools.%s in the configuration", notFound.Name, toolKey)).
			Wrap(err).
			BuildError(), issue.ForTool(toolKey))
	}
	return err
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose mode shows the chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
