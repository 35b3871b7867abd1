// Package vault implements the first migration pass: traversing the source
// tree and building the global note index every rewrite depends on.
package vault

import (
	"io/fs"
	"path/filepath"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/bundle"
)

// BundleVisit describes one bundle found during traversal.
type BundleVisit struct {
	// Path is the absolute bundle directory.
	Path string
	// RelDir is the bundle's parent directory relative to the input root,
	// '/'-separated, "" for the root itself. The output vault mirrors it.
	RelDir string
}

// WalkBundles traverses the source tree in deterministic lexical order and
// calls handler for every .textbundle/.textpack directory. The walk does not
// descend into bundles, so bundle-internal folders never register as bundles
// themselves.
func WalkBundles(root string, handler func(v BundleVisit) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || !bundle.IsBundleDir(d.Name()) {
			return nil
		}

		relParent, relErr := filepath.Rel(root, filepath.Dir(path))
		if relErr != nil || relParent == "." {
			relParent = ""
		}

		if err := handler(BundleVisit{Path: path, RelDir: filepath.ToSlash(relParent)}); err != nil {
			return err
		}
		return filepath.SkipDir
	})
}
