package repl

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	InputStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	ResultStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)
