// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushview/eltool/internal/format"
	"github.com/kushview/eltool/pkg/types"
)

// newFormatCommand creates the `eltool format` command.
func newFormatCommand(app *App) *cobra.Command {
	var (
		check bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "format [pattern...]",
		Short: "Run clang-format over the sources",
		Long: `Run clang-format in place over every file matching the patterns, which
default to format.patterns from the configuration. Patterns are doublestar
globs relative to --dir. With --check nothing is rewritten and the command
fails if any file needs formatting.`,
		Example: `  eltool format
  eltool format --check
  eltool format 'src/engine/**/*.cpp'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if len(patterns) == 0 {
				patterns = app.Cfg().Format.Patterns
			}

			f := format.NewFormatter(app.Runner, app.Cfg().Tools.ClangFormat, 0, app.Logger)
			report, err := f.Run(cmd.Context(), dir, patterns, check)
			if err != nil {
				if errors.Is(err, format.ErrNeedsFormatting) {
					fmt.Fprintln(app.stderr, err.Error())
					fmt.Fprintln(app.stdout, WarningStyle.Render(crossMark), "Some files need formatting. Run", CmdStyle.Render("eltool format"), "to fix them.")
					return &ExitError{Code: types.ExitFailure}
				}
				var runErr *format.RunError
				if errors.Is(err, format.ErrNoPatterns) || errors.Is(err, format.ErrInvalidPattern) || errors.As(err, &runErr) {
					return app.fail(types.ExitFailure, err, nil)
				}
				return app.toolFailure("clang_format", err)
			}

			switch {
			case len(report.Files) == 0:
				fmt.Fprintln(app.stdout, WarningStyle.Render("No files matched"), patterns)
			case check:
				fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), fmt.Sprintf("%d files are formatted", len(report.Files)))
			default:
				fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), fmt.Sprintf("Formatted %d files", len(report.Files)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "report files that need formatting without changing them")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory the patterns are relative to")
	return cmd
}
