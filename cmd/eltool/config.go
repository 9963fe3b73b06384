// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kushview/eltool/internal/config"
	"github.com/kushview/eltool/pkg/types"
)

// newConfigCommand creates the `eltool config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage eltool configuration",
		Long: `Manage eltool configuration.

Configuration is read from the first file found:
  - the --config flag
  - Linux: $XDG_CONFIG_HOME/eltool/config.cue (~/.config/eltool/config.cue)
  - macOS: ~/Library/Application Support/eltool/config.cue
  - Windows: %APPDATA%\eltool\config.cue
  - ./config.cue

ELTOOL_* environment variables override file values, for example
ELTOOL_OSC_PORT=9001 or ELTOOL_TOOLS_PROJUCER=/opt/JUCE/Projucer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(app.stdout, config.GenerateCUE(app.Cfg()))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:         "path",
		Short:       "Show configuration file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Create the default configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig(force)
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Fprintln(app.stdout, WarningStyle.Render("Configuration already exists at"), path)
				fmt.Fprintln(app.stdout, "Use --force to overwrite it.")
				return nil
			}
			if err != nil {
				return app.fail(types.ExitFailure, fmt.Errorf("failed to create config: %w", err), nil)
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render(checkMark), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

func showConfig(app *App) error {
	cfg := app.Cfg()
	out := app.stdout
	key := CmdStyle.Render
	value := func(v any) string { return SuccessStyle.Render(fmt.Sprint(v)) }

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	path, err := app.Config.Path(config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil || path == "" {
		fmt.Fprintf(out, "%s: %s\n", key("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(out, "%s: %s\n", key("Config file"), path)
	}

	section := func(name string) {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s:\n", key(name))
	}
	field := func(name string, v any) {
		fmt.Fprintf(out, "  %s: %s\n", name, value(v))
	}

	section("osc")
	field("host", cfg.OSC.Host)
	field("port", cfg.OSC.Port)

	section("version")
	if cfg.Version.Current == "" {
		fmt.Fprintf(out, "  current: %s\n", SubtitleStyle.Render("(build version)"))
	} else {
		field("current", cfg.Version.Current)
	}
	field("style", cfg.Version.Style)
	field("backend", cfg.Version.Backend)

	section("tools")
	field("git", cfg.Tools.Git)
	field("projucer", cfg.Tools.Projucer)
	field("clang_format", cfg.Tools.ClangFormat)
	field("makensis", cfg.Tools.Makensis)

	section("bundle")
	field("signature", cfg.Bundle.Signature)
	field("identifier_prefix", cfg.Bundle.IdentifierPrefix)

	section("format")
	field("patterns", strings.Join(cfg.Format.Patterns, ", "))

	section("ui")
	field("verbose", cfg.UI.Verbose)
	field("color_scheme", cfg.UI.ColorScheme)

	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(types.ExitFailure, err, nil)
	}
	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		return app.fail(types.ExitFailure, err, nil)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", defaultPath)

	if active, err := app.Config.Path(config.LoadOptions{ConfigFilePath: app.configPath}); err == nil && active != "" && active != defaultPath {
		fmt.Fprintf(app.stdout, "Active file: %s\n", active)
	}
	return nil
}
