package cli

import (
	"os"

	"golang.org/x/term"
)

const defaultWidth = 100

// termWidth returns the terminal width, falling back when stdout is not a
// terminal.
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
