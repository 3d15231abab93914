package tui

import "github.com/charmbracelet/lipgloss"

var (
	plainStyle    = lipgloss.NewStyle()
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	lastMoveStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	playableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	xWonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	oWonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	drawnStyle    = lipgloss.NewStyle().Faint(true)

	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bannerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)
