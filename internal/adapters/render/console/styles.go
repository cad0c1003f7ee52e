package console

import "github.com/charmbracelet/lipgloss"

type styles struct {
	timestamp lipgloss.Style
	session   lipgloss.Style
	success   lipgloss.Style
	info      lipgloss.Style
	warn      lipgloss.Style
	err       lipgloss.Style
}

func newStyles() styles {
	return styles{
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		session:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warn:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		err:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
