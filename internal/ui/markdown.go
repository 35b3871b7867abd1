package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback width when detection fails.
const DefaultTermWidth = 100

// TermWidth returns the current terminal width, or the fallback when stdout
// is not a terminal.
func TermWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return DefaultTermWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return DefaultTermWidth
}

// RenderMarkdown renders markdown for terminal display, used by the preview
// command. Non-interactive output gets the raw markdown back.
func RenderMarkdown(content string) (string, error) {
	if !Interactive() {
		return content, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(TermWidth()),
	)
	if err != nil {
		return "", err
	}
	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}
