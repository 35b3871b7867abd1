// Package testutil builds throwaway Craft export trees for tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Export is a temporary Craft export tree builder. Call Build to create the
// actual directory under t.TempDir().
type Export struct {
	Path    string
	t       *testing.T
	bundles []bundleSpec
}

type bundleSpec struct {
	relDir string // directory under the export root, "" for the root
	name   string // bundle directory name without the .textbundle extension
	info   map[string]any
	body   *string
	assets map[string][]byte
	files  map[string][]byte // extra loose files inside the bundle
}

// NewExport creates a new export tree builder.
func NewExport(t *testing.T) *Export {
	t.Helper()
	return &Export{t: t}
}

// Bundle adds a bundle with the default info.json and the given body.
// name may include a folder prefix: "Projects/My Note".
func (e *Export) Bundle(name, id, body string) *Export {
	return e.BundleWithInfo(name, map[string]any{"identifier": id}, body)
}

// BundleWithInfo adds a bundle with explicit info.json fields and body.
func (e *Export) BundleWithInfo(name string, info map[string]any, body string) *Export {
	relDir := filepath.Dir(name)
	if relDir == "." {
		relDir = ""
	}
	e.bundles = append(e.bundles, bundleSpec{
		relDir: relDir,
		name:   filepath.Base(name),
		info:   info,
		body:   &body,
		assets: make(map[string][]byte),
		files:  make(map[string][]byte),
	})
	return e
}

// Asset attaches a file to the most recently added bundle's assets/ dir.
func (e *Export) Asset(name string, data []byte) *Export {
	e.last().assets[name] = data
	return e
}

// File adds a loose file inside the most recently added bundle.
func (e *Export) File(name string, data []byte) *Export {
	e.last().files[name] = data
	return e
}

// NoBody removes the markdown file from the most recently added bundle,
// making it malformed.
func (e *Export) NoBody() *Export {
	e.last().body = nil
	return e
}

func (e *Export) last() *bundleSpec {
	if len(e.bundles) == 0 {
		e.t.Fatal("no bundle added yet")
	}
	return &e.bundles[len(e.bundles)-1]
}

// Build writes the export tree and returns the builder for chaining.
func (e *Export) Build() *Export {
	e.t.Helper()
	e.Path = e.t.TempDir()

	for _, b := range e.bundles {
		dir := filepath.Join(e.Path, filepath.FromSlash(b.relDir), b.name+".textbundle")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			e.t.Fatalf("create bundle dir: %v", err)
		}

		if b.info != nil {
			data, err := json.Marshal(b.info)
			if err != nil {
				e.t.Fatalf("marshal info.json: %v", err)
			}
			e.write(filepath.Join(dir, "info.json"), data)
		}
		if b.body != nil {
			e.write(filepath.Join(dir, "text.markdown"), []byte(*b.body))
		}
		for name, data := range b.assets {
			e.write(filepath.Join(dir, "assets", name), data)
		}
		for name, data := range b.files {
			e.write(filepath.Join(dir, name), data)
		}
	}
	return e
}

// BundlePath returns the absolute path of a bundle added with name.
func (e *Export) BundlePath(name string) string {
	return filepath.Join(e.Path, filepath.FromSlash(name)+".textbundle")
}

func (e *Export) write(path string, data []byte) {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		e.t.Fatalf("write %s: %v", path, err)
	}
}

// Info builds a standard info.json map with timestamps.
func Info(id string, created, modified float64) map[string]any {
	return map[string]any{
		"identifier":       id,
		"creationDate":     created,
		"modificationDate": modified,
	}
}

// Vault wraps an output directory with file assertions.
type Vault struct {
	Path string
	t    *testing.T
}

// NewVault wraps an output vault path for assertions.
func NewVault(t *testing.T, path string) *Vault {
	t.Helper()
	return &Vault{Path: path, t: t}
}

// ReadFile returns a vault file's content, failing the test if unreadable.
func (v *Vault) ReadFile(relPath string) string {
	v.t.Helper()
	data, err := os.ReadFile(filepath.Join(v.Path, filepath.FromSlash(relPath)))
	if err != nil {
		v.t.Fatalf("read %s: %v", relPath, err)
	}
	return string(data)
}

// AssertFileExists fails the test if the file does not exist.
func (v *Vault) AssertFileExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, filepath.FromSlash(relPath))); err != nil {
		v.t.Errorf("expected file to exist: %s (%v)", relPath, err)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (v *Vault) AssertFileNotExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, filepath.FromSlash(relPath))); err == nil {
		v.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain substr.
func (v *Vault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		v.t.Errorf("expected %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains substr.
func (v *Vault) AssertFileNotContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if strings.Contains(content, substr) {
		v.t.Errorf("expected %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}
