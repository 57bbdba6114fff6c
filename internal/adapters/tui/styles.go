package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorIris  = lipgloss.Color("#5D3FD3")
	colorSlate = lipgloss.Color("#667085")

	fileRunningStyle = lipgloss.NewStyle().
				Foreground(colorIris).
				Bold(true)

	fileDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	fileErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	fileCachedStyle = lipgloss.NewStyle().
			Foreground(colorSlate).
			Faint(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(colorSlate)
)
