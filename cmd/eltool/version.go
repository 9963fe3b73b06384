// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kushview/eltool/internal/version"
	"github.com/kushview/eltool/pkg/types"
)

type versionFlags struct {
	current string
	build   bool
	style   string
	since   string
	prefix  string
	suffix  string
	dir     string
	backend string
}

// newVersionCommand creates the `eltool version` command.
func newVersionCommand(app *App) *cobra.Command {
	var flags versionFlags

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version derived from the repository state",
		Long: `Print a version string composed as

  <prefix><base>[<build>][-dirty]<suffix>

The base comes from --current-version, then version.current in the
configuration, then the version eltool was built with. "-dirty" is added
when the working tree has uncommitted changes. Without a repository the
bare base is printed.`,
		Example: `  eltool version --current-version 1.2.3
  eltool version --build --style revision --since v1.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.current, "current-version", "", "base semantic version")
	cmd.Flags().BoolVar(&flags.build, "build", false, "append the commit count as a build number")
	cmd.Flags().StringVar(&flags.style, "style", "", "build number style: dotted, dashed, revision or number")
	cmd.Flags().StringVar(&flags.since, "since", "", "count commits after this revision (default: all commits)")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "text printed before the version")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "text printed after the version")
	cmd.Flags().StringVar(&flags.dir, "dir", ".", "repository directory")
	cmd.Flags().StringVar(&flags.backend, "backend", "", "repository backend: exec or git")

	return cmd
}

func runVersion(cmd *cobra.Command, app *App, flags versionFlags) error {
	cfg := app.Cfg()

	opts := version.Options{
		Base:   baseVersion(flags.current, cfg.Version.Current),
		Build:  flags.build,
		Style:  cfg.Version.Style,
		Since:  flags.since,
		Prefix: flags.prefix,
		Suffix: flags.suffix,
	}
	if flags.style != "" {
		opts.Style = version.BuildStyle(flags.style)
	}
	if err := opts.Validate(); err != nil {
		return app.fail(types.ExitFailure, err, nil)
	}

	backend := cfg.Version.Backend
	if flags.backend != "" {
		backend = version.Backend(flags.backend)
	}
	repo, err := backend.Open(flags.dir, app.Runner, cfg.Tools.Git)
	if err != nil {
		return app.fail(types.ExitFailure, err, nil)
	}

	v, err := version.NewDeriver(repo, app.Logger).Derive(cmd.Context(), opts)
	if err != nil {
		return app.fail(types.ExitFailure, err, nil)
	}
	fmt.Fprintln(app.stdout, v)
	return nil
}

// baseVersion picks the first configured base. The build's own version is
// used only when it is a semantic version.
func baseVersion(flag, configured string) string {
	switch {
	case flag != "":
		return flag
	case configured != "":
		return configured
	case version.ValidateBase(Version) == nil:
		return Version
	default:
		return version.DefaultBase
	}
}
