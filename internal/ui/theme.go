package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors and styles of the dashboard
type Theme struct {
	Name string

	// Core colors
	Primary   lipgloss.Color // active pane border and title background
	Secondary lipgloss.Color // app title, selected item in the active pane
	Message   lipgloss.Color // profile name and auto refresh state
	TitleFg   lipgloss.Color

	// Inactive panes
	InactiveBorder   lipgloss.Color
	InactiveTitleBg  lipgloss.Color
	InactiveSelected lipgloss.Color

	// User messages
	MessageInfo  lipgloss.Color
	MessageError lipgloss.Color

	// Debug segment of the status line
	Debug lipgloss.Color
}

// ThemeGruvbox returns the default Gruvbox theme
func ThemeGruvbox() *Theme {
	return &Theme{
		Name:             "gruvbox",
		Primary:          lipgloss.Color("#b8bb26"),
		Secondary:        lipgloss.Color("#83a598"),
		Message:          lipgloss.Color("#d3869b"),
		TitleFg:          lipgloss.Color("#282828"),
		InactiveBorder:   lipgloss.Color("#928374"),
		InactiveTitleBg:  lipgloss.Color("#bdae93"),
		InactiveSelected: lipgloss.Color("#fabd2f"),
		MessageInfo:      lipgloss.Color("#83a598"),
		MessageError:     lipgloss.Color("#fb4934"),
		Debug:            lipgloss.Color("#928374"),
	}
}

// BorderColor returns the border color of a pane
func (t *Theme) BorderColor(active bool) lipgloss.Color {
	if active {
		return t.Primary
	}
	return t.InactiveBorder
}

// PaneTitle returns the style of a pane's title
func (t *Theme) PaneTitle(active bool) lipgloss.Style {
	bg := t.InactiveTitleBg
	if active {
		bg = t.Primary
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.TitleFg).
		Background(bg)
}

// SelectedItem returns the style of the selected item in a list pane
func (t *Theme) SelectedItem(active bool) lipgloss.Style {
	fg := t.InactiveSelected
	if active {
		fg = t.Secondary
	}
	return lipgloss.NewStyle().Bold(true).Foreground(fg)
}

// AppTitle returns the style of the app title in the status line
func (t *Theme) AppTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.TitleFg).
		Background(t.Secondary)
}
