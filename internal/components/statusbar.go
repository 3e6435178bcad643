package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/dhth/ecscope/internal/types"
	"github.com/dhth/ecscope/internal/ui"
)

const appTitle = " ecscope "

// DebugInfo is the state shown in the status line when debug is on
type DebugInfo struct {
	Errors     int
	LastPane   *types.Pane
	ActivePane types.Pane
	Renders    uint64
	Events     uint64
	Width      int
	Height     int
}

// StatusBar is the single line below the panes
type StatusBar struct {
	Profile     string
	AutoRefresh bool
	Marked      int
	Debug       *DebugInfo
	Message     *types.UserMessage
}

// AutoRefreshText describes the auto refresh state for marked services
func AutoRefreshText(marked int) string {
	switch marked {
	case 0:
		return "auto refresh on for all services"
	case 1:
		return "auto refresh on for 1 service"
	default:
		return fmt.Sprintf("auto refresh on for %d services", marked)
	}
}

// DebugText renders the debug segment
func DebugText(d DebugInfo) string {
	var b strings.Builder
	if d.Errors > 0 {
		fmt.Fprintf(&b, " [%d errors]", d.Errors)
	}
	if d.LastPane != nil {
		fmt.Fprintf(&b, " [%s]", d.LastPane)
	} else {
		b.WriteString(" -")
	}
	fmt.Fprintf(&b, " -> [%s]", d.ActivePane)
	fmt.Fprintf(&b, " [render counter: %d]", d.Renders)
	fmt.Fprintf(&b, " [event counter: %d]", d.Events)
	fmt.Fprintf(&b, " [dimensions: %dx%d]", d.Width, d.Height)
	return b.String()
}

// View renders the status bar, cut to width
func (sb StatusBar) View(theme *ui.Theme, width int) string {
	parts := []string{
		theme.AppTitle().Render(appTitle),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf(" [%s]", sb.Profile)),
	}

	if sb.AutoRefresh {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Message).Render(" "+AutoRefreshText(sb.Marked)))
	}

	if sb.Debug != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Debug).Render(DebugText(*sb.Debug)))
	}

	if sb.Message != nil && sb.Message.Text != "" {
		parts = append(parts, " "+ui.RenderMessage(sb.Message, theme, 0))
	}

	line := strings.Join(parts, "")
	if width > 0 {
		line = truncate.String(line, uint(width))
	}
	return line
}
