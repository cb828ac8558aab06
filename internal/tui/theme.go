package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	base           lipgloss.Style
	title          lipgloss.Style
	heading        lipgloss.Style
	muted          lipgloss.Style
	button         lipgloss.Style
	buttonDisabled lipgloss.Style
	err            lipgloss.Style
	panel          lipgloss.Style
	alert          lipgloss.Style
}

func newTheme(bg, fg, accent, muted, danger string) theme {
	return theme{
		base:           lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg)).Padding(0, 1),
		title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		heading:        lipgloss.NewStyle().Bold(true).Underline(true),
		muted:          lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		button:         lipgloss.NewStyle().Foreground(lipgloss.Color(bg)).Background(lipgloss.Color(accent)).Padding(0, 1),
		buttonDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Padding(0, 1).Strikethrough(true),
		err:            lipgloss.NewStyle().Foreground(lipgloss.Color(danger)),
		panel:          lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(muted)).Padding(0, 1),
		alert:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(accent)).Padding(1, 2).Bold(true),
	}
}

var (
	lightTheme = newTheme("#FFFFFF", "#1F1F1F", "#2F6FDE", "#6E6E6E", "#C62828")
	darkTheme  = newTheme("#121212", "#F0F0F0", "#C89A3A", "#8C8C8C", "#FF4D4F")
)

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}
