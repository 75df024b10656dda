package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	// SpinnerStyle colors the spinner glyph.
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// MessageStyle renders the text next to the spinner.
	MessageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// HelpStyle renders key hints.
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Symbols for visual feedback.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolInfo    = "ℹ"
	SymbolWarning = "⚠"
)
