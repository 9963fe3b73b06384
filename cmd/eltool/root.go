// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/kushview/eltool/internal/issue"
	"github.com/kushview/eltool/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree for app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eltool",
		Short: "Build and packaging tools for Element",
		Long: TitleStyle.Render("eltool") + SubtitleStyle.Render(" - build and packaging tools for Element") + `

eltool derives version strings, regenerates Projucer projects, formats
sources, assembles macOS and VST3 bundles, generates NSIS installers and
talks to a running engine over OSC.

` + SubtitleStyle.Render("Examples:") + `
  eltool version --build              Print the version with a build number
  eltool bundle --type vst3 --name Element --binary build/Element.so
  eltool osc send --samplerate 48000  Change the engine sample rate
  eltool config show                  Show current configuration`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.applyLogLevel()
			if cmd.Annotations[skipConfigAnnotation] != "" {
				return nil
			}
			if err := app.loadConfig(cmd.Context()); err != nil {
				return app.fail(types.ExitFailure, err, issue.Get(issue.ConfigLoadFailedId))
			}
			return nil
		},
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/eltool/config.cue)")

	rootCmd.AddCommand(
		newVersionCommand(app),
		newProjucerCommand(app),
		newFormatCommand(app),
		newBundleCommand(app),
		newInstallerCommand(app),
		newDLLsCommand(app),
		newOSCCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// errorHandler prints errors that reach fang. Errors already reported by a
// handler arrive as an ExitError without a cause and print nothing.
func errorHandler(app *App) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return
		}
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			fmt.Fprintln(w, ErrorStyle.Render("Error:"), ae.Format(app.Verbose()))
			return
		}
		fang.DefaultErrorHandler(w, styles, err)
	}
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := newRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler(app)),
	)
	os.Exit(int(exitCode(err)))
}
