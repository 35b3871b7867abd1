package ui

import "fmt"

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Successf returns a formatted success message with a checkmark.
func Successf(format string, args ...any) string {
	return SymbolSuccess + " " + fmt.Sprintf(format, args...)
}

// Errorf returns a formatted error message with an X.
func Errorf(format string, args ...any) string {
	return SymbolError + " " + fmt.Sprintf(format, args...)
}

// Warningf returns a formatted warning message.
func Warningf(format string, args ...any) string {
	return SymbolWarning + " " + fmt.Sprintf(format, args...)
}

// Infof returns a formatted informational message.
func Infof(format string, args ...any) string {
	return SymbolInfo + " " + fmt.Sprintf(format, args...)
}

// Header returns a styled section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath returns an accent-styled path.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint returns muted hint text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count returns a count with the right plural form, e.g. "3 notes".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
