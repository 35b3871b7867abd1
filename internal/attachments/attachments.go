// Package attachments relocates bundle assets into the output vault and
// rewrites their in-body references.
//
// Every note owns one attachments subfolder named after its output filename.
// Destination paths are unique across the whole vault: same-named files from
// different notes land in different folders, and collisions inside one
// folder get numeric suffixes. The (note id, source name) mapping is
// memoized, so a file referenced twice is copied once.
package attachments

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/atomicfile"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/bundle"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/paths"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/slugs"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/vault"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/wikilink"
)

// assetRefRegex matches in-body asset references: ![alt](assets/name).
var assetRefRegex = regexp.MustCompile(`!\[[^\]]*\]\(assets/([^)]+)\)`)

// Copied records one relocated attachment.
type Copied struct {
	Source string // absolute source path
	Dest   string // vault-relative destination
}

// Ghost records a referenced attachment that could not be relocated.
type Ghost struct {
	Target string // the vault-relative path the body now embeds
	Source string // the asset name the note referenced
	Reason string
}

// Result is the outcome of migrating one note's attachments.
type Result struct {
	Body   string
	Copied []Copied
	Ghosts []Ghost
}

type memoKey struct {
	noteID string
	source string
}

// Migrator computes collision-free destinations and copies asset bytes.
// It accumulates state across the whole rewrite pass; the memo and the
// per-folder name sets are append-only.
type Migrator struct {
	outputRoot string
	dryRun     bool
	memo       map[memoKey]string
	taken      map[string]map[string]bool
}

// New returns a Migrator writing under outputRoot.
func New(outputRoot string) *Migrator {
	return &Migrator{
		outputRoot: outputRoot,
		memo:       make(map[memoKey]string),
		taken:      make(map[string]map[string]bool),
	}
}

// NewDryRun returns a Migrator that computes destinations and rewrites
// references without touching the filesystem. Used by preview.
func NewDryRun() *Migrator {
	m := New("")
	m.dryRun = true
	return m
}

// MigrateNote copies the attachments referenced by one note and rewrites the
// body's references to their new vault-relative paths. Missing or unreadable
// sources keep their (rewritten) reference but are reported as ghosts for
// the cleanup pass. Copies are idempotent: a rerun overwrites identically.
func (m *Migrator) MigrateNote(note *bundle.Note, entry vault.Entry, body string) Result {
	folder := paths.AttachmentFolder(entry.RelPath)
	res := Result{}

	res.Body = assetRefRegex.ReplaceAllStringFunc(body, func(match string) string {
		raw := assetRefRegex.FindStringSubmatch(match)[1]
		name := raw
		if decoded, err := url.PathUnescape(raw); err == nil {
			name = decoded
		}

		dest, ghost := m.place(note, folder, name, &res)
		if ghost != nil {
			res.Ghosts = append(res.Ghosts, *ghost)
		}
		return wikilink.Embed(dest)
	})
	return res
}

// place resolves (and memoizes) the destination for one referenced asset,
// copying the bytes on first sight. A non-nil ghost means the reference has
// no usable source.
func (m *Migrator) place(note *bundle.Note, folder, name string, res *Result) (string, *Ghost) {
	key := memoKey{noteID: note.ID, source: name}
	if dest, ok := m.memo[key]; ok {
		return dest, nil
	}

	names := m.taken[folder]
	if names == nil {
		names = make(map[string]bool)
		m.taken[folder] = names
	}
	dest := folder + "/" + paths.Unique(slugs.SanitizeTitle(name), names)
	m.memo[key] = dest

	if m.dryRun {
		return dest, nil
	}

	src := sourcePath(note, name)
	if src == "" {
		return dest, &Ghost{Target: dest, Source: name, Reason: "missing from export"}
	}

	destAbs, err := paths.Join(m.outputRoot, dest)
	if err != nil {
		return dest, &Ghost{Target: dest, Source: name, Reason: err.Error()}
	}
	if err := atomicfile.CopyFile(src, destAbs); err != nil {
		return dest, &Ghost{Target: dest, Source: name, Reason: err.Error()}
	}

	res.Copied = append(res.Copied, Copied{Source: src, Dest: dest})
	return dest, nil
}

// sourcePath locates the asset file inside the bundle, trying the decoded
// name first and the raw directory listing second (exports occasionally keep
// the URL-encoded name on disk).
func sourcePath(note *bundle.Note, name string) string {
	assetsDir := note.AssetsDir()
	if assetsDir == "" {
		return ""
	}

	direct := filepath.Join(assetsDir, filepath.FromSlash(name))
	if st, err := os.Stat(direct); err == nil && !st.IsDir() {
		return direct
	}

	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		decoded, err := url.PathUnescape(e.Name())
		if err != nil {
			continue
		}
		if decoded == name {
			return filepath.Join(assetsDir, e.Name())
		}
	}
	return ""
}
