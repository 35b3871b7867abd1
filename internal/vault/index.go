package vault

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/bundle"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/dates"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/parser"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/paths"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/slugs"
)

// ErrDuplicateID marks two bundles sharing one identifier. This is fatal:
// link resolution cannot be trusted once note identity is ambiguous.
var ErrDuplicateID = errors.New("duplicate note id")

// Entry is the indexed identity of one note. Entries are resolved completely
// during pass 1 so pass-2 links always see the final target name.
type Entry struct {
	ID string

	// Title is the final note title: sanitized, daily-normalized, and for
	// placeholder-named notes already derived from content (or synthetic).
	Title string

	// RelPath is the note's output path relative to the vault root,
	// including any collision suffix.
	RelPath string

	IsDaily bool
}

// Target returns the wikilink target for this note.
func (e Entry) Target() string {
	return paths.Stem(e.RelPath)
}

// Skip records a bundle that could not be indexed.
type Skip struct {
	Bundle string
	Reason string
	Err    error
}

// Index is the read-only global map consulted during the rewrite pass.
// It is built once and never mutated afterwards.
type Index struct {
	entries map[string]Entry
	notes   []*bundle.Note // traversal order, for the rewrite pass
	skips   []Skip
}

// Lookup resolves a note id. Resolution is by exact id match only.
func (ix *Index) Lookup(id string) (Entry, bool) {
	e, ok := ix.entries[id]
	return e, ok
}

// Len returns the number of indexed notes.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Notes returns every successfully parsed note in traversal order. The
// rewrite pass iterates this instead of re-reading the source tree.
func (ix *Index) Notes() []*bundle.Note {
	return ix.notes
}

// Skips returns the bundles that failed to parse during indexing.
func (ix *Index) Skips() []Skip {
	return ix.skips
}

// Entries returns all entries sorted by output path.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, 0, len(ix.entries))
	for _, e := range ix.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out
}

// BuildIndex runs the whole first pass: every bundle in the tree is parsed
// and indexed before any rewrite may begin. Unparseable bundles are recorded
// as skips and do not abort the run; a duplicate id does.
func BuildIndex(root string) (*Index, error) {
	ix := &Index{entries: make(map[string]Entry)}
	taken := make(map[string]bool)

	err := WalkBundles(root, func(v BundleVisit) error {
		note, err := bundle.Read(v.Path)
		if err != nil {
			ix.skips = append(ix.skips, Skip{
				Bundle: v.Path,
				Reason: skipReason(err),
				Err:    err,
			})
			return nil
		}

		if prev, dup := ix.entries[note.ID]; dup {
			return fmt.Errorf("%w: %q claimed by both %s and %s",
				ErrDuplicateID, note.ID, prev.RelPath, v.Path)
		}

		title := resolveTitle(note)
		entry := Entry{
			ID:      note.ID,
			Title:   title,
			RelPath: paths.Unique(paths.NoteFile(v.RelDir, title), taken),
			IsDaily: note.IsDaily,
		}
		ix.entries[note.ID] = entry
		ix.notes = append(ix.notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// resolveTitle finalizes a note's title at index time: daily notes get the
// canonical date form, placeholder names are derived from body content, and
// notes with no usable content anywhere fall back to a synthetic id-based
// name so links to them stay unique.
func resolveTitle(note *bundle.Note) string {
	if note.IsDaily {
		return dates.CanonicalDaily(note.Title)
	}
	if !slugs.IsPlaceholder(note.Title) {
		return note.Title
	}
	derived := strings.TrimSpace(parser.DeriveTitle(note.Body))
	if derived != "" {
		if s := slugs.SanitizeTitle(derived); !slugs.IsPlaceholder(s) {
			return s
		}
	}
	return slugs.SyntheticName(note.ID)
}

// skipReason maps a bundle error to its log label.
func skipReason(err error) string {
	switch {
	case errors.Is(err, bundle.ErrEncrypted):
		return "encrypted"
	case errors.Is(err, bundle.ErrMalformed):
		return "malformed"
	default:
		return "unreadable"
	}
}
