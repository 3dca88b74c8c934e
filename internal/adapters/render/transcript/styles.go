package transcript

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	body      lipgloss.Style
	active    lipgloss.Style
	detail    lipgloss.Style
	warning   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	scope     lipgloss.Style
	score     lipgloss.Style
	snippet   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120")),
		body:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		scope:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		score:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		snippet:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}
