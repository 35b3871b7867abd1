// Package ui renders the migrator's terminal output.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Accent style for file paths and note titles.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))

	// Muted style for secondary detail (reasons, counts).
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for section headers and emphasis.
	Bold = lipgloss.NewStyle().Bold(true)
)

// Interactive reports whether stdout is a terminal. Styled and rendered
// output is reserved for interactive sessions; piped output stays plain.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
