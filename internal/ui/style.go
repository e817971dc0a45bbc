package ui

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().Bold(true)
	OK    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Warn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Fail  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	Faint = lipgloss.NewStyle().Faint(true)
)
