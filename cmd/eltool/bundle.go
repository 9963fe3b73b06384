// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kushview/eltool/internal/bundle"
	"github.com/kushview/eltool/internal/issue"
	"github.com/kushview/eltool/pkg/types"
)

type bundleFlags struct {
	def      bundle.Definition
	typeName string
	manifest string
}

// newBundleCommand creates the `eltool bundle` command.
func newBundleCommand(app *App) *cobra.Command {
	var flags bundleFlags

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Assemble a macOS app, AU component, VST3 or framework bundle",
		Long: `Assemble a bundle directory from a built binary, an Info.plist and
resources. Layouts:

  macapp     <Name>.app/Contents/{MacOS,Resources,Info.plist,PkgInfo}
  component  <Name>.component/Contents/{MacOS,Resources,Info.plist,PkgInfo}
  vst3       <Name>.vst3/Contents/<platform dir>/<binary>
  framework  <Name>.framework/Versions/A with Current, binary and Resources links

Flags override values read from --manifest. Everything is validated before
the first file is written.`,
		Example: `  eltool bundle --type macapp --name Element --binary build/Element --plist Info.plist
  eltool bundle --type vst3 --name Element --binary build/Element.so --platform linux
  eltool bundle --manifest bundles/au.toml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, app, &flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.typeName, "type", "", "bundle type: macapp, component, vst3 or framework")
	f.StringVar(&flags.def.Name, "name", "", "bundle name without extension")
	f.StringVar(&flags.def.Binary, "binary", "", "built binary to copy into the bundle")
	f.StringVar(&flags.def.Plist, "plist", "", "Info.plist to copy (required for macapp and component)")
	f.StringArrayVar(&flags.def.Resources, "resources", nil, "file or directory copied into Resources (repeatable)")
	f.StringVar(&flags.def.OutDir, "out", "", "output directory (default \".\")")
	f.StringVar(&flags.def.Signature, "signature", "", "four character creator code for PkgInfo (default from bundle.signature)")
	f.StringVar(&flags.def.Identifier, "identifier", "", "CFBundleIdentifier to write into Info.plist")
	f.StringVar(&flags.def.Version, "version", "", "CFBundleVersion to write into Info.plist")
	f.StringVar(&flags.def.Copyright, "copyright", "", "NSHumanReadableCopyright for a generated Info.plist")
	f.StringVar(&flags.def.Platform, "platform", "", "VST3 target platform: darwin, linux or windows (default host)")
	f.StringVar(&flags.def.Arch, "arch", "", "VST3 target architecture (default host)")
	f.StringVar(&flags.manifest, "manifest", "", "TOML bundle manifest")
	f.BoolVar(&flags.def.Force, "force", false, "remove an existing bundle first")

	return cmd
}

func runBundle(cmd *cobra.Command, app *App, flags *bundleFlags) error {
	// The type is checked before the manifest is read so an unknown type
	// never touches the filesystem.
	if flags.typeName != "" {
		flags.def.Type = bundle.Type(flags.typeName)
		if err := flags.def.Type.Validate(); err != nil {
			return app.fail(types.ExitUsage, err, issue.Get(issue.InvalidBundleTypeId))
		}
	}

	def := flags.def
	if flags.manifest != "" {
		base, err := bundle.LoadManifest(flags.manifest)
		if err != nil {
			return app.fail(types.ExitFailure, issue.NewErrorContext().
				WithOperation("read bundle manifest").
				WithResource(flags.manifest).
				WithSuggestion("Keys live under a [bundle] table: type, name, binary, plist, resources, out").
				Wrap(err).
				BuildError(), nil)
		}
		def = base.Merge(flags.def)
	}

	if def.Type == "" {
		return app.fail(types.ExitFailure, errors.New("--type is required"), issue.Get(issue.InvalidBundleTypeId))
	}
	if err := def.Type.Validate(); err != nil {
		return app.fail(types.ExitUsage, err, issue.Get(issue.InvalidBundleTypeId))
	}

	cfg := app.Cfg()
	if def.Signature == "" {
		def.Signature = cfg.Bundle.Signature
	}
	if def.Type == bundle.TypeFramework && def.Plist == "" && def.Name != "" {
		def.Identifier = def.BundleIdentifier(cfg.Bundle.IdentifierPrefix)
	}

	res, err := bundle.NewBuilder(app.Logger).Build(cmd.Context(), def)
	if err != nil {
		return bundleFailure(app, def, err)
	}

	fmt.Fprintln(app.stdout, SuccessStyle.Render(checkMark), "Created", CmdStyle.Render(res.Path))
	if app.Verbose() {
		for _, entry := range res.Entries {
			fmt.Fprintln(app.stdout, "  "+SubtitleStyle.Render(filepath.ToSlash(entry)))
		}
	}
	return nil
}

func bundleFailure(app *App, def bundle.Definition, err error) error {
	ctx := issue.NewErrorContext().WithOperation("assemble " + string(def.Type) + " bundle").Wrap(err)
	if def.Name != "" {
		ctx.WithResource(def.Name + def.Type.Extension())
	}

	switch {
	case errors.Is(err, bundle.ErrInvalidType):
		return app.fail(types.ExitUsage, err, issue.Get(issue.InvalidBundleTypeId))
	case errors.Is(err, bundle.ErrPlistRequired):
		return app.fail(types.ExitFailure, ctx.WithSuggestion("Pass --plist <file>").BuildError(), issue.Get(issue.PlistRequiredId))
	case errors.Is(err, bundle.ErrMissingName):
		return app.fail(types.ExitFailure, ctx.WithSuggestion("Pass --name <bundle name>").BuildError(), nil)
	case errors.Is(err, bundle.ErrInputMissing):
		return app.fail(types.ExitFailure, ctx.WithSuggestion("Check that the build produced every input").BuildError(), nil)
	default:
		return app.fail(types.ExitFailure, ctx.BuildError(), nil)
	}
}
