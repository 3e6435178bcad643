package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/dhth/ecscope/internal/types"
)

// RenderMessage renders a user message styled by its type. Long messages
// are truncated to width.
func RenderMessage(msg *types.UserMessage, theme *Theme, width int) string {
	if msg == nil || msg.Text == "" {
		return ""
	}

	text := msg.Text
	if width > 0 {
		text = truncate.StringWithTail(text, uint(width), "…")
	}

	color := theme.MessageInfo
	if msg.Type == types.MessageTypeError {
		color = theme.MessageError
	}

	return lipgloss.NewStyle().Foreground(color).Render(text)
}
