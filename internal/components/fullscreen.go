package components

import (
	"fmt"

	"github.com/dhth/ecscope/internal/keyboard"
)

// HelpLines lists every key binding, grouped by section
func HelpLines(sections []keyboard.Section) []string {
	var lines []string
	for i, s := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, s.Title)
		for _, b := range s.Bindings {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			lines = append(lines, fmt.Sprintf("    %-12s%s", h.Key, h.Desc))
		}
	}
	return lines
}

// TooSmallLines explains that the terminal is below the minimum size
func TooSmallLines(width, height int) []string {
	return []string{
		"",
		"Terminal size too small:",
		fmt.Sprintf("  Width = %d Height = %d", width, height),
		"",
		"Minimum dimensions needed:",
		fmt.Sprintf("  Width = %d Height = %d", MinWidth, MinHeight),
		"",
		"Press (q/<ctrl+c>/<esc> to exit)",
	}
}
