package output

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Message palette used by Console
var (
	ColorSuccess = color.New(color.FgGreen)
	ColorError   = color.New(color.FgRed)
	ColorWarning = color.New(color.FgYellow)
	ColorInfo    = color.New(color.FgCyan)
	ColorDebug   = color.New(color.FgHiBlack)
)

// IsColorEnabled reports whether messages written to stderr should be colored.
// Build output on stdout is never colored.
func IsColorEnabled() bool {
	return colorSupported(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv)
}

// colorSupported honors NO_COLOR and a dumb or missing TERM.
func colorSupported(tty bool, getenv func(string) string) bool {
	if !tty || getenv("NO_COLOR") != "" {
		return false
	}
	switch getenv("TERM") {
	case "", "dumb":
		return false
	}
	return true
}

// setColors switches fatih/color globally.
func setColors(enabled bool) {
	color.NoColor = !enabled
}
