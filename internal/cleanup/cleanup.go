// Package cleanup applies the optional final transformations to the fully
// rewritten output notes. It runs last so every decision is made against the
// converted body, not the source text.
package cleanup

import (
	"strings"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/metadata"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/wikilink"
)

// Options toggles each cleanup step independently.
type Options struct {
	// RemoveBrokenEmbeds strips embeds whose attachment never resolved
	// (ghosts). Broken internal links are never touched here.
	RemoveBrokenEmbeds bool

	// DeleteEmptyNotes drops notes whose body is empty after all other
	// transformations.
	DeleteEmptyNotes bool
}

// Deletion records one note removed from the output set.
type Deletion struct {
	RelPath string
	Title   string
}

// Actions summarizes what the pass did.
type Actions struct {
	EmbedsRemoved int
	Deleted       []Deletion
}

// Apply runs the configured cleanup steps over the whole output set and
// returns the notes that survive. ghosts is the set of vault-relative embed
// targets flagged during attachment migration.
func Apply(notes []*metadata.Note, ghosts map[string]bool, opts Options) ([]*metadata.Note, Actions) {
	var actions Actions
	kept := make([]*metadata.Note, 0, len(notes))

	for _, note := range notes {
		if opts.RemoveBrokenEmbeds && len(ghosts) > 0 {
			note.Body = stripGhostEmbeds(note.Body, ghosts, &actions.EmbedsRemoved)
		}

		if opts.DeleteEmptyNotes && strings.TrimSpace(note.Body) == "" {
			actions.Deleted = append(actions.Deleted, Deletion{
				RelPath: note.Entry.RelPath,
				Title:   note.Entry.Title,
			})
			continue
		}
		kept = append(kept, note)
	}

	return kept, actions
}

// stripGhostEmbeds removes ghost embed markup line by line. Text around an
// inline embed stays intact; a line left holding only whitespace is dropped.
func stripGhostEmbeds(body string, ghosts map[string]bool, removed *int) string {
	lines := strings.Split(body, "\n")
	out := lines[:0]

	for _, line := range lines {
		matches := wikilink.FindAll(line)
		stripped := line
		hadGhost := false
		for _, m := range matches {
			if !m.Embed || !ghosts[m.Target] {
				continue
			}
			stripped = strings.Replace(stripped, m.Literal, "", 1)
			hadGhost = true
			*removed++
		}
		if hadGhost && strings.TrimSpace(stripped) == "" {
			continue
		}
		out = append(out, stripped)
	}
	return strings.Join(out, "\n")
}
