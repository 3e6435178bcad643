package components

import (
	"github.com/charmbracelet/lipgloss"
)

const highlightSymbol = "> "

// List renders the visible window of a list pane. Selected is -1 when
// nothing is selected.
type List struct {
	Items         []string
	Selected      int
	SelectedStyle lipgloss.Style
}

// Lines returns at most height lines, scrolled so the selected item is
// visible
func (l List) Lines(height int) []string {
	if height <= 0 || len(l.Items) == 0 {
		return nil
	}

	offset := 0
	if l.Selected >= height {
		offset = l.Selected - height + 1
	}
	end := min(offset+height, len(l.Items))

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		if i == l.Selected {
			lines = append(lines, l.SelectedStyle.Render(highlightSymbol+l.Items[i]))
			continue
		}
		lines = append(lines, "  "+l.Items[i])
	}
	return lines
}
