// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushview/eltool/internal/installer"
	"github.com/kushview/eltool/internal/issue"
	"github.com/kushview/eltool/pkg/types"
)

// newInstallerCommand creates the `eltool installer` command tree.
func newInstallerCommand(app *App) *cobra.Command {
	installerCmd := &cobra.Command{
		Use:   "installer",
		Short: "Generate Windows installers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	installerCmd.AddCommand(newNSISCommand(app))
	return installerCmd
}

func newNSISCommand(app *App) *cobra.Command {
	var (
		opts   installer.NSISOptions
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "nsis",
		Short: "Write an NSIS script for a staged directory and run makensis",
		Long: `Write an NSIS script that installs every file below --files, registers
an uninstaller and its Add/Remove Programs entry, then compile it with
makensis. With --dry-run only the script is written.`,
		Example: `  eltool installer nsis --name Element --version 1.0.0 --publisher Kushview --files dist/win64
  eltool installer nsis --name Element --version 1.0.0 --publisher Kushview --files dist --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := installer.NewNSISGenerator(app.Runner, app.Cfg().Tools.Makensis, app.Logger)
			res, err := gen.Generate(cmd.Context(), opts, dryRun)
			if err != nil {
				if errors.Is(err, installer.ErrMissingField) || errors.Is(err, installer.ErrNoFiles) {
					return app.fail(types.ExitFailure, err, nil)
				}
				var mkErr *installer.MakensisError
				if errors.As(err, &mkErr) {
					return app.fail(types.ExitFailure, issue.WrapWithOperation(err, "compile installer"), nil)
				}
				return app.toolFailure("makensis", err)
			}

			fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), "Wrote", CmdStyle.Render(res.Script), fmt.Sprintf("(%d files)", res.Files))
			if res.Compiled {
				fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), "Built", CmdStyle.Render(res.Installer))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Name, "name", "", "product name")
	f.StringVar(&opts.Version, "version", "", "product version")
	f.StringVar(&opts.Publisher, "publisher", "", "publisher shown in Add/Remove Programs")
	f.StringVar(&opts.FilesDir, "files", "", "staged directory to install")
	f.StringVar(&opts.OutFile, "out", "", "installer executable (default <name>-<version>-setup.exe)")
	f.StringVar(&opts.ScriptPath, "script", "", "generated script path (default <name>.nsi)")
	f.StringVar(&opts.InstallDir, "install-dir", "", `install directory (default $PROGRAMFILES64\<name>)`)
	f.BoolVar(&dryRun, "dry-run", false, "write the script without running makensis")
	return cmd
}

// newDLLsCommand creates the `eltool dlls` command tree.
func newDLLsCommand(app *App) *cobra.Command {
	dllsCmd := &cobra.Command{
		Use:   "dlls",
		Short: "Stage Windows runtime libraries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var (
		from    []string
		to      string
		pattern string
	)
	copyCmd := &cobra.Command{
		Use:     "copy",
		Short:   "Copy DLLs from build directories next to an executable",
		Example: `  eltool dlls copy --from build/libs --from C:\deps\bin --to dist\win64`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(from) == 0 || to == "" {
				return app.fail(types.ExitFailure, errors.New("--from and --to are required"), nil)
			}
			staged, err := installer.NewDLLStager(app.Logger).Stage(cmd.Context(), from, to, pattern)
			if err != nil {
				return app.fail(types.ExitFailure, issue.WrapWithOperation(err, "stage DLLs"), nil)
			}
			if app.Verbose() {
				for _, p := range staged {
					fmt.Fprintln(app.stdout, "  "+SubtitleStyle.Render(p))
				}
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), fmt.Sprintf("Staged %d files into", len(staged)), CmdStyle.Render(to))
			return nil
		},
	}
	copyCmd.Flags().StringArrayVar(&from, "from", nil, "source directory (repeatable)")
	copyCmd.Flags().StringVar(&to, "to", "", "target directory")
	copyCmd.Flags().StringVar(&pattern, "pattern", installer.DefaultDLLPattern, "glob selecting files below each source")

	dllsCmd.AddCommand(copyCmd)
	return dllsCmd
}
