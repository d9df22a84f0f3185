package ui

import "github.com/charmbracelet/lipgloss"

// Theme carries every style the stage renderers use. The palette keeps
// the neon cyan/magenta look of the hosted experience.
type Theme struct {
	Header       lipgloss.Style
	RailActive   lipgloss.Style
	RailDone     lipgloss.Style
	RailIdle     lipgloss.Style
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Body         lipgloss.Style
	Muted        lipgloss.Style
	Accent       lipgloss.Style
	Success      lipgloss.Style
	Danger       lipgloss.Style
	ErrorBox     lipgloss.Style
	SuccessBox   lipgloss.Style
	Panel        lipgloss.Style
	PanelFocus   lipgloss.Style
	Modal        lipgloss.Style
	ChoiceActive lipgloss.Style
	Status       lipgloss.Style
	Mono         lipgloss.Style
}

func DefaultTheme(ascii bool) Theme {
	cyan := lipgloss.Color("#22D3EE")
	magenta := lipgloss.Color("#E879F9")
	purple := lipgloss.Color("#A78BFA")
	green := lipgloss.Color("#4ADE80")
	red := lipgloss.Color("#F87171")
	ink := lipgloss.Color("#0A0A0A")
	fog := lipgloss.Color("#67E8F9")
	dim := lipgloss.Color("#155E75")

	border := lipgloss.RoundedBorder()
	if ascii {
		border = lipgloss.NormalBorder()
	}

	return Theme{
		Header:       lipgloss.NewStyle().Foreground(cyan).Background(ink).Bold(true).Padding(0, 1),
		RailActive:   lipgloss.NewStyle().Foreground(cyan).Bold(true),
		RailDone:     lipgloss.NewStyle().Foreground(green),
		RailIdle:     lipgloss.NewStyle().Foreground(dim),
		Title:        lipgloss.NewStyle().Foreground(cyan).Bold(true),
		Subtitle:     lipgloss.NewStyle().Foreground(fog).Faint(true),
		Body:         lipgloss.NewStyle().Foreground(fog),
		Muted:        lipgloss.NewStyle().Foreground(dim),
		Accent:       lipgloss.NewStyle().Foreground(magenta).Bold(true),
		Success:      lipgloss.NewStyle().Foreground(green).Bold(true),
		Danger:       lipgloss.NewStyle().Foreground(red).Bold(true),
		ErrorBox:     lipgloss.NewStyle().Foreground(red).BorderStyle(border).BorderForeground(red).Padding(0, 1),
		SuccessBox:   lipgloss.NewStyle().Foreground(green).BorderStyle(border).BorderForeground(green).Padding(0, 1),
		Panel:        lipgloss.NewStyle().BorderStyle(border).BorderForeground(dim).Padding(0, 1),
		PanelFocus:   lipgloss.NewStyle().BorderStyle(border).BorderForeground(cyan).Padding(0, 1),
		Modal:        lipgloss.NewStyle().BorderStyle(border).BorderForeground(magenta).Padding(1, 2),
		ChoiceActive: lipgloss.NewStyle().Foreground(cyan).Bold(true),
		Status:       lipgloss.NewStyle().Foreground(purple),
		Mono:         lipgloss.NewStyle().Foreground(fog).Bold(true),
	}
}
