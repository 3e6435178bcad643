package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// copyToClipboard copies text to system clipboard
func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
