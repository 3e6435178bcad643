package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Panel is a bordered box with its title set into the top border
type Panel struct {
	Title       string
	TitleStyle  lipgloss.Style
	BorderColor lipgloss.Color
	Lines       []string
	PadLeft     int
	PadTop      int
	Center      bool
}

// Render draws the panel to fill r exactly
func (p Panel) Render(r Rect) string {
	innerW := max(r.Width-2, 0)
	innerH := max(r.Height-2, 0)
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(p.BorderColor)

	content := make([]string, 0, innerH)
	for range p.PadTop {
		content = append(content, "")
	}
	pad := strings.Repeat(" ", p.PadLeft)
	for _, line := range p.Lines {
		content = append(content, pad+line)
	}
	if len(content) > innerH {
		content = content[:innerH]
	}
	for len(content) < innerH {
		content = append(content, "")
	}

	var b strings.Builder

	title := ""
	if p.Title != "" {
		title = p.TitleStyle.Render(truncate.String(p.Title, uint(innerW)))
	}
	b.WriteString(edge.Render(border.TopLeft))
	b.WriteString(title)
	b.WriteString(edge.Render(strings.Repeat(border.Top, max(innerW-lipgloss.Width(title), 0))))
	b.WriteString(edge.Render(border.TopRight))

	for _, line := range content {
		line = truncate.String(line, uint(innerW))
		if p.Center {
			line = lipgloss.PlaceHorizontal(innerW, lipgloss.Center, line)
		} else {
			line += strings.Repeat(" ", max(innerW-lipgloss.Width(line), 0))
		}
		b.WriteString("\n")
		b.WriteString(edge.Render(border.Left))
		b.WriteString(line)
		b.WriteString(edge.Render(border.Right))
	}

	if r.Height >= 2 {
		b.WriteString("\n")
		b.WriteString(edge.Render(border.BottomLeft + strings.Repeat(border.Bottom, innerW) + border.BottomRight))
	}

	return b.String()
}
