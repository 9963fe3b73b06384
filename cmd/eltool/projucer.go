// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushview/eltool/internal/issue"
	"github.com/kushview/eltool/internal/projucer"
	"github.com/kushview/eltool/pkg/types"
)

// newProjucerCommand creates the `eltool projucer` command tree.
func newProjucerCommand(app *App) *cobra.Command {
	projucerCmd := &cobra.Command{
		Use:   "projucer",
		Short: "Regenerate IDE projects with Projucer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	projucerCmd.AddCommand(&cobra.Command{
		Use:     "resave <file.jucer>...",
		Short:   "Run Projucer --resave on each project",
		Example: `  eltool projucer resave projects/Element.jucer projects/ElementFX.jucer`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := projucer.NewResaver(app.Runner, app.Cfg().Tools.Projucer, app.Logger)
			r.Stdout, r.Stderr = app.stdout, app.stderr
			if !app.Verbose() {
				r.Stdout = nil
			}

			err := r.Resave(cmd.Context(), args)
			switch {
			case err == nil:
			case errors.Is(err, projucer.ErrProjectMissing):
				return app.fail(types.ExitFailure, err, issue.Get(issue.ProjectNotFoundId))
			case errors.Is(err, projucer.ErrNoProjects):
				return app.fail(types.ExitFailure, err, nil)
			default:
				var resaveErr *projucer.ResaveError
				if errors.As(err, &resaveErr) {
					return app.fail(types.ExitFailure, err, nil)
				}
				return app.toolFailure("projucer", err)
			}

			fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), fmt.Sprintf("Resaved %d project(s)", len(args)))
			return nil
		},
	})
	return projucerCmd
}
