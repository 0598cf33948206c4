package plan

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	chapter    lipgloss.Style
	chapterOK  lipgloss.Style
	topic      lipgloss.Style
	topicOK    lipgloss.Style
	topicID    lipgloss.Style
	detail     lipgloss.Style
	question   lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	barText    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		chapter:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		chapterOK:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		topic:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		topicOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		topicID:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		question:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barText:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
