package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#0EA5E9")
	secondaryColor = lipgloss.Color("#6B7280")
	clockColor     = lipgloss.Color("#10B981")

	// Header bar
	headerStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	// Cards
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	imageStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(clockColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// Input area
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(primaryColor)
)
