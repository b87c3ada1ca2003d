package tui

import "github.com/charmbracelet/lipgloss"

var (
	// titleStyle is the style for the application title in the header
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginLeft(2)

	// displayStyle frames the expression / result line
	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Align(lipgloss.Right)

	displayErrorStyle = displayStyle.
				BorderForeground(lipgloss.Color("196")).
				Foreground(lipgloss.Color("196")).
				Align(lipgloss.Left)

	buttonStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))

	operatorButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("214"))

	pressedButtonStyle = buttonStyle.
				Bold(true).
				Reverse(true)

	// statusStyle is the style for the lock indicator and clipboard notices
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginLeft(2)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			MarginLeft(2)

	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			MarginLeft(2)
)
