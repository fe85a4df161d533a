package ui

import "github.com/charmbracelet/lipgloss"

// RAMA theme colors (from sysc family)
var (
	RAMARed   = lipgloss.Color("#ef233c") // Pantone red
	RAMAMuted = lipgloss.Color("#8d99ae") // Cool gray

	// Semantic colors
	ColorSuccess = lipgloss.Color("#2ecc71")
	ColorWarning = lipgloss.Color("#f39c12")
	ColorError   = RAMARed
	ColorInfo    = lipgloss.Color("#3498db")
)

var (
	// Section headings ("The following renames will be performed:")
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RAMARed)

	MutedStyle = lipgloss.NewStyle().
			Foreground(RAMAMuted)

	// Destination paths and the container, the parts the user must check
	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Status marker styles (moonbit-inspired)
var (
	OKMarker   = lipgloss.NewStyle().Foreground(ColorSuccess).SetString("[OK]")
	InfoMarker = lipgloss.NewStyle().Foreground(ColorInfo).SetString("[INFO]")
	WarnMarker = lipgloss.NewStyle().Foreground(ColorWarning).SetString("[WARN]")
	FailMarker = lipgloss.NewStyle().Foreground(ColorError).SetString("[FAIL]")
)
