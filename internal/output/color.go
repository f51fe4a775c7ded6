package output

import (
	"os"

	"golang.org/x/term"
)

// ShouldColor reports whether colored output should be written to f. Color
// is off when disabled explicitly, when NO_COLOR is set, or when f is not a
// terminal.
func ShouldColor(f *os.File, noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
