// Package resolver rewrites Craft internal reference markers into Obsidian
// wikilinks using the completed global index.
package resolver

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/slugs"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/vault"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/wikilink"
)

// craftLinkRegex matches [display](craftdocs://open?...) reference markers.
var craftLinkRegex = regexp.MustCompile(`\[([^\]]+)\]\((craftdocs://open\?[^)]+)\)`)

// jsLinkRegex matches [text](javascript:...) pseudo-links, which carry no
// destination worth keeping.
var jsLinkRegex = regexp.MustCompile(`\[([^\]]+)\]\(javascript:[^)]+\)`)

// idParams are the query parameter names Craft has used for the target note
// id across export versions, in lookup order.
var idParams = []string{"blockId", "id", "identifier"}

// Unresolved records a reference whose target id is absent from the index.
type Unresolved struct {
	TargetID string // "" when the marker carried no recognizable id
	Display  string
}

// Resolver rewrites one note body at a time against a read-only index.
type Resolver struct {
	index *vault.Index
}

// New returns a Resolver over a completed index.
func New(index *vault.Index) *Resolver {
	return &Resolver{index: index}
}

// Rewrite replaces every internal reference marker in body.
//
//   - Target found, display matches the resolved title: [[Title]]
//   - Target found, display differs: [[Title|display]]
//   - Target missing or marker unparseable: the display text is left as
//     plain unlinked text and the miss is reported. Broken internal links
//     are never stripped; that treatment is reserved for ghost attachments.
func (r *Resolver) Rewrite(body string) (out string, resolved int, misses []Unresolved) {

	out = craftLinkRegex.ReplaceAllStringFunc(body, func(match string) string {
		groups := craftLinkRegex.FindStringSubmatch(match)
		display, rawURL := groups[1], groups[2]

		id := targetID(rawURL)
		if id == "" {
			misses = append(misses, Unresolved{Display: display})
			return display
		}

		entry, ok := r.index.Lookup(id)
		if !ok {
			misses = append(misses, Unresolved{TargetID: id, Display: display})
			return display
		}

		resolved++
		target := entry.Target()
		if slugs.SanitizeTitle(display) == target {
			return wikilink.Build(target, "")
		}
		return wikilink.Build(target, display)
	})

	// javascript: pseudo-links degrade to their text unconditionally.
	out = jsLinkRegex.ReplaceAllString(out, "$1")

	return out, resolved, misses
}

// targetID extracts the note id from a craftdocs:// URL, tolerating the
// parameter spellings of different export versions.
func targetID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	for _, param := range idParams {
		if v := strings.TrimSpace(q.Get(param)); v != "" {
			return v
		}
	}
	return ""
}
