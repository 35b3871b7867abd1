// Package slugs provides canonical note-name helpers used across the migrator.
//
// There are two naming strategies in play:
//   - Obsidian filenames: human-readable titles with a conservative set of
//     forbidden characters stripped. Spaces and unicode are preserved because
//     the filename doubles as the wikilink target.
//   - Synthetic slugs: a last resort for notes with no usable title anywhere,
//     built on gosimple/slug so the result is always a valid filename.
//
// This package centralizes both strategies so their implementations are not
// duplicated.
package slugs

import (
	"regexp"
	"strings"

	goslug "github.com/gosimple/slug"
)

// DefaultTitle is the placeholder for notes whose title could not be
// determined from the bundle name.
const DefaultTitle = "Untitled"

// MaxTitleLength caps sanitized titles so they stay usable as filenames.
const MaxTitleLength = 200

// placeholders are bundle names that carry no real title. Craft exports
// unnamed documents under these names. Comparison is case-insensitive.
var placeholders = map[string]bool{
	"":             true,
	"untitled":     true,
	"new document": true,
}

// numberedPlaceholderRegex matches the numbered variants Craft assigns when
// several unnamed documents exist ("Untitled 2", "New Document 3").
var numberedPlaceholderRegex = regexp.MustCompile(`^(untitled|new document) \d+$`)

// SanitizeTitle strips characters that are invalid in Obsidian filenames,
// trims whitespace, and caps the length. An empty result yields DefaultTitle.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|':
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if runes := []rune(s); len(runes) > MaxTitleLength {
		s = strings.TrimSpace(string(runes[:MaxTitleLength]))
	}
	if s == "" {
		return DefaultTitle
	}
	return s
}

// IsPlaceholder reports whether a title carries no real information and
// should be replaced by a content-derived or synthetic name.
func IsPlaceholder(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	return placeholders[t] || numberedPlaceholderRegex.MatchString(t)
}

// SyntheticName builds a stable fallback name from a note id, used when
// neither the bundle name nor the body yields a usable title.
func SyntheticName(id string) string {
	prefix := id
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	slugged := goslug.Make("untitled " + prefix)
	if slugged == "" {
		return strings.ToLower(DefaultTitle)
	}
	return slugged
}
