package ui

import "github.com/charmbracelet/lipgloss"

var (
	stepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
)
