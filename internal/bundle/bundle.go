// Package bundle parses one Craft .textbundle into a structured note record.
//
// A bundle is a directory holding info.json (identity + timestamps), exactly
// one markdown file, and an optional assets/ directory. Parsing is pure: no
// state outside the bundle is read and nothing is written.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/dates"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/slugs"
)

// Error kinds. Both cause the bundle to be skipped and logged; neither
// aborts the run.
var (
	// ErrMalformed marks a structurally invalid bundle (missing info.json,
	// no markdown file, unreadable encoding).
	ErrMalformed = errors.New("malformed bundle")

	// ErrEncrypted marks a password-protected bundle whose content cannot
	// be read.
	ErrEncrypted = errors.New("encrypted bundle")
)

// Note is the immutable record produced from one bundle.
type Note struct {
	ID       string
	Title    string // sanitized bundle name; may be a placeholder
	Body     string // raw markdown, references not yet rewritten
	Created  string // YYYY-MM-DD, "" when the export had no timestamp
	Modified string
	IsDaily  bool

	// AttachmentRefs are the asset paths referenced from the body, decoded
	// and in order of first appearance.
	AttachmentRefs []string

	// BundlePath is the source directory the note was parsed from.
	BundlePath string

	// Warnings are non-fatal oddities found while parsing.
	Warnings []string
}

// info mirrors the fields of Craft's info.json that the migration needs.
type info struct {
	Identifier       string   `json:"identifier"`
	CreationDate     *float64 `json:"creationDate"`
	ModificationDate *float64 `json:"modificationDate"`
	IsEncrypted      bool     `json:"isEncrypted"`
}

// assetRefRegex matches in-body asset references: ![alt](assets/name).
var assetRefRegex = regexp.MustCompile(`!\[[^\]]*\]\(assets/([^)]+)\)`)

// IsBundleDir reports whether a directory name is a Craft note bundle.
func IsBundleDir(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".textbundle") || strings.HasSuffix(lower, ".textpack")
}

// BaseName returns the note title embedded in a bundle directory name.
func BaseName(dirName string) string {
	ext := filepath.Ext(dirName)
	return strings.TrimSuffix(dirName, ext)
}

// Read parses the bundle at path. It fails with ErrMalformed or ErrEncrypted
// (wrapped with detail); any other error is an I/O failure.
func Read(path string) (*Note, error) {
	inf, err := readInfo(path)
	if err != nil {
		return nil, err
	}
	if inf.IsEncrypted {
		return nil, fmt.Errorf("%w: %s is password protected", ErrEncrypted, filepath.Base(path))
	}
	if inf.Identifier == "" {
		return nil, fmt.Errorf("%w: %s has no identifier", ErrMalformed, filepath.Base(path))
	}

	note := &Note{
		ID:         inf.Identifier,
		Title:      slugs.SanitizeTitle(BaseName(filepath.Base(path))),
		BundlePath: path,
	}
	note.IsDaily = dates.IsDailyTitle(note.Title)
	note.Created, _ = dates.FromUnix(inf.CreationDate)
	note.Modified, _ = dates.FromUnix(inf.ModificationDate)

	body, warnings, err := readMarkdown(path)
	if err != nil {
		return nil, err
	}
	note.Body = body
	note.Warnings = warnings
	note.AttachmentRefs = extractAssetRefs(body)

	return note, nil
}

// readInfo loads and decodes info.json.
func readInfo(path string) (*info, error) {
	data, err := os.ReadFile(filepath.Join(path, "info.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no readable info.json", ErrMalformed, filepath.Base(path))
	}
	var inf info
	if err := json.Unmarshal(data, &inf); err != nil {
		return nil, fmt.Errorf("%w: %s info.json: %v", ErrMalformed, filepath.Base(path), err)
	}
	return &inf, nil
}

// readMarkdown locates the bundle's markdown file and returns its content.
// Multiple markdown files produce a warning and the lexically first wins.
func readMarkdown(path string) (string, []string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: cannot list %s", ErrMalformed, filepath.Base(path))
	}

	var mdFiles, cryptFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".md", ".markdown":
			mdFiles = append(mdFiles, e.Name())
		case ".crypt":
			cryptFiles = append(cryptFiles, e.Name())
		}
	}
	sort.Strings(mdFiles)

	if len(mdFiles) == 0 {
		if len(cryptFiles) > 0 {
			return "", nil, fmt.Errorf("%w: %s holds only encrypted content", ErrEncrypted, filepath.Base(path))
		}
		return "", nil, fmt.Errorf("%w: %s has no markdown file", ErrMalformed, filepath.Base(path))
	}

	var warnings []string
	if len(mdFiles) > 1 {
		warnings = append(warnings, fmt.Sprintf("multiple markdown files, using %s", mdFiles[0]))
	}

	data, err := os.ReadFile(filepath.Join(path, mdFiles[0]))
	if err != nil {
		return "", nil, fmt.Errorf("%w: cannot read %s/%s", ErrMalformed, filepath.Base(path), mdFiles[0])
	}
	return string(data), warnings, nil
}

// extractAssetRefs collects referenced asset names, URL-decoded, deduplicated
// in order of first appearance.
func extractAssetRefs(body string) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, m := range assetRefRegex.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, name)
	}
	return refs
}

// AssetsDir returns the bundle's assets directory, or "" when it has none.
func (n *Note) AssetsDir() string {
	dir := filepath.Join(n.BundlePath, "assets")
	if st, err := os.Stat(dir); err == nil && st.IsDir() {
		return dir
	}
	return ""
}
