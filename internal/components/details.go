package components

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const labelWidth = 17

// Field is one labelled value in a detail pane
type Field struct {
	Label string
	Value string
}

// DetailLines lays fields out as aligned label/value rows. Values longer
// than width are wrapped under their value column, on word boundaries
// where possible.
func DetailLines(fields []Field, width int) []string {
	valueWidth := max(width-labelWidth, 10)
	indent := strings.Repeat(" ", labelWidth)

	var lines []string
	for _, f := range fields {
		wrapped := strings.Split(wrap.String(wordwrap.String(f.Value, valueWidth), valueWidth), "\n")
		lines = append(lines, fmt.Sprintf("%-*s%s", labelWidth, f.Label, wrapped[0]))
		for _, rest := range wrapped[1:] {
			lines = append(lines, indent+rest)
		}
	}
	return lines
}
