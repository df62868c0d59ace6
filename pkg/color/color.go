// Package color renders ANSI-colored terminal text for diagnostics and the
// interactive session. Output degrades to plain text when NO_COLOR is set,
// the terminal is dumb, or the host disables it.
package color

import "os"

const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Red       = "\033[31m"
	Yellow    = "\033[33m"
	Cyan      = "\033[36m"
	Gray      = "\033[90m"
	BrightRed = "\033[91m"
)

var colorEnabled = true

func init() {
	if os.Getenv("NO_COLOR") != "" || !isTerminal() {
		colorEnabled = false
	}
}

func isTerminal() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// EnableColor turns colored output on or off for the whole process.
func EnableColor(enable bool) {
	colorEnabled = enable
}

// IsColorEnabled reports whether output is currently colored.
func IsColorEnabled() bool {
	return colorEnabled
}

// Colorize wraps text in the given ANSI code when color is enabled.
func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return color + text + Reset
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	return Colorize(Bold, text)
}

// Banner renders a section heading for diagnostic output.
func Banner(title string) string {
	return BrightRedText("=== " + title + " ===")
}

// Exception renders an uncaught-exception report.
func Exception(message string) string {
	return BrightRedText(message)
}

// Result renders a value echoed by the interactive session.
func Result(text string) string {
	return GrayText(text)
}
