// Package paths provides canonical helpers for output-vault path handling:
// - vault-relative note and attachment paths (always '/'-separated)
// - deterministic collision suffixing
// - a root-escape guard for everything the migrator writes
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AttachmentsDir is the top-level folder holding per-note attachment
// subfolders in the output vault.
const AttachmentsDir = "attachments"

// Normalize converts a vault-relative path-like value to '/'-separated form
// with no leading "./" or "/" and no duplicate separators.
func Normalize(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// NoteFile joins a vault-relative directory and a note title into the note's
// output file path.
func NoteFile(dir, title string) string {
	if dir == "" || dir == "." {
		return title + ".md"
	}
	return Normalize(dir) + "/" + title + ".md"
}

// Stem returns the filename of a vault-relative path without its extension.
// This is the wikilink target for a note file.
func Stem(relPath string) string {
	base := relPath
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// AttachmentFolder returns the vault-relative attachments subfolder owned by
// the note at relPath.
func AttachmentFolder(noteRelPath string) string {
	return AttachmentsDir + "/" + Stem(noteRelPath)
}

// WithSuffix inserts a numeric disambiguating suffix before the extension:
// WithSuffix("img.png", 2) == "img-2.png".
func WithSuffix(name string, n int) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%d%s", stem, n, ext)
}

// Unique resolves name against taken, appending -1, -2, ... before the
// extension until the result is unused. The chosen name is recorded in taken.
func Unique(name string, taken map[string]bool) string {
	candidate := name
	for n := 1; taken[candidate]; n++ {
		candidate = WithSuffix(name, n)
	}
	taken[candidate] = true
	return candidate
}

// ErrOutsideRoot indicates a path that escapes the output vault root.
var ErrOutsideRoot = fmt.Errorf("path escapes vault root")

// Join resolves a vault-relative path against root and rejects any result
// that escapes it (directory traversal in bundle content).
func Join(root, rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	joined := filepath.Join(root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	if abs != absRoot && !strings.HasPrefix(abs, absRoot+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return joined, nil
}
