// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Each color has a light and a dark variant; ui.color_scheme pins which one
// lipgloss picks, otherwise the terminal background decides.
var (
	accentColor = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#A78BFA"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	okColor     = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	failColor   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	warnColor   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	pathColor   = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
)

var (
	// TitleStyle heads the root help, `config show` and the OSC sender.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	// SubtitleStyle is for labels and secondary detail.
	SubtitleStyle = lipgloss.NewStyle().Foreground(dimColor)

	// SuccessStyle marks created bundles, sent messages and clean checks.
	SuccessStyle = lipgloss.NewStyle().Foreground(okColor)

	// ErrorStyle marks failed sends and the "Error:" prefix.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(failColor)

	// WarningStyle is for hints and files that need formatting.
	WarningStyle = lipgloss.NewStyle().Foreground(warnColor)

	// CmdStyle renders paths, command names and config keys.
	CmdStyle = lipgloss.NewStyle().Foreground(pathColor)
)

const (
	checkMark = "✓"
	crossMark = "✗"
)
