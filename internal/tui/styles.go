package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title lipgloss.Style

	BadgeIdle      lipgloss.Style
	BadgeListening lipgloss.Style
	BadgeThinking  lipgloss.Style
	BadgeNarrating lipgloss.Style

	Story   lipgloss.Style
	Interim lipgloss.Style

	ChoiceKey  lipgloss.Style
	ChoiceText lipgloss.Style

	Status lipgloss.Style
	Help   lipgloss.Style
}

func defaultStyles() styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),

		BadgeIdle:      badge.Foreground(lipgloss.Color("232")).Background(lipgloss.Color("245")),
		BadgeListening: badge.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")),
		BadgeThinking:  badge.Foreground(lipgloss.Color("232")).Background(lipgloss.Color("220")),
		BadgeNarrating: badge.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("32")),

		Story: lipgloss.NewStyle().Padding(0, 1),
		Interim: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),

		ChoiceKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		ChoiceText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Padding(0, 1),
	}
}
