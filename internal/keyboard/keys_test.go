package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpSections(t *testing.T) {
	k := GetKeys()
	sections := k.HelpSections()

	assert.Equal(t, []string{"General", "Panes", "Lists", "Data"}, []string{
		sections[0].Title, sections[1].Title, sections[2].Title, sections[3].Title,
	})

	seen := make(map[string]bool)
	for _, s := range sections {
		for _, b := range s.Bindings {
			h := b.Help()
			assert.NotEmpty(t, h.Key)
			assert.NotEmpty(t, h.Desc)
			assert.False(t, seen[h.Key], "%s is listed twice", h.Key)
			seen[h.Key] = true
		}
	}
	assert.Len(t, seen, 23)
}
