package migrate_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/audit"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/config"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/migrate"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/testutil"
)

func newPipeline(t *testing.T, input string, cfg config.Config) *migrate.Pipeline {
	t.Helper()
	log := audit.New(filepath.Join(t.TempDir(), "migration.log"), true)
	return migrate.New(input, filepath.Join(t.TempDir(), "vault"), cfg, log)
}

func run(t *testing.T, p *migrate.Pipeline) *migrate.Summary {
	t.Helper()
	if _, err := p.BuildIndex(); err != nil {
		t.Fatal(err)
	}
	summary, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

func TestRunFailsBeforeIndexing(t *testing.T) {
	exp := testutil.NewExport(t).Bundle("A", "id-a", "x").Build()
	p := newPipeline(t, exp.Path, config.Config{})

	if _, err := p.Run(); !errors.Is(err, migrate.ErrNotIndexed) {
		t.Errorf("err = %v, want ErrNotIndexed", err)
	}
}

func TestRunFullMigration(t *testing.T) {
	exp := testutil.NewExport(t).
		Bundle("Home", "id-home", "# Home\n\nsee [Project X](craftdocs://open?blockId=id-proj)\n\n![map](assets/map.png)\n").
		Asset("map.png", []byte("png")).
		Bundle("Projects/Project X", "id-proj", "back to [Home](craftdocs://open?blockId=id-home)\n#work\n").
		Build()
	p := newPipeline(t, exp.Path, config.Config{})

	summary := run(t, p)

	if summary.Notes != 2 || summary.LinksResolved != 2 || summary.LinksUnresolved != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.AttachmentCopies != 1 || summary.Ghosts != 0 {
		t.Errorf("summary = %+v", summary)
	}

	v := testutil.NewVault(t, p.Output())
	v.AssertFileExists("Home.md")
	v.AssertFileExists("Projects/Project X.md")
	v.AssertFileExists("attachments/Home/map.png")

	v.AssertFileContains("Home.md", "[[Project X]]")
	v.AssertFileContains("Home.md", "![[attachments/Home/map.png]]")
	v.AssertFileNotContains("Home.md", "# Home")
	v.AssertFileContains("Projects/Project X.md", "[[Home]]")
	v.AssertFileContains("Projects/Project X.md", "tags:")
	v.AssertFileContains("Projects/Project X.md", "- work")
	v.AssertFileNotContains("Projects/Project X.md", "#work")
}

func TestRunForwardReferences(t *testing.T) {
	// A link in an early bundle to a note indexed later must resolve; that is
	// the whole point of completing the index before rewriting.
	exp := testutil.NewExport(t).
		Bundle("Aaa", "id-a", "[Zzz](craftdocs://open?blockId=id-z)").
		Bundle("Zzz", "id-z", "content").
		Build()
	p := newPipeline(t, exp.Path, config.Config{})

	summary := run(t, p)

	if summary.LinksResolved != 1 || summary.LinksUnresolved != 0 {
		t.Errorf("summary = %+v", summary)
	}
	testutil.NewVault(t, p.Output()).AssertFileContains("Aaa.md", "[[Zzz]]")
}

func TestRunUnresolvedLinkLeftAsText(t *testing.T) {
	exp := testutil.NewExport(t).
		Bundle("A", "id-a", "gone: [old note](craftdocs://open?blockId=never-exported)").
		Build()
	p := newPipeline(t, exp.Path, config.Config{})

	summary := run(t, p)

	if summary.LinksUnresolved != 1 {
		t.Errorf("summary = %+v", summary)
	}
	v := testutil.NewVault(t, p.Output())
	v.AssertFileContains("A.md", "gone: old note")
	v.AssertFileNotContains("A.md", "[[")
}

func TestRunSkipsBadBundles(t *testing.T) {
	exp := testutil.NewExport(t).
		Bundle("Good", "id-g", "fine").
		Bundle("NoID", "", "body").
		BundleWithInfo("Secret", map[string]any{"identifier": "id-s", "isEncrypted": true}, "x").
		Build()
	p := newPipeline(t, exp.Path, config.Config{})

	summary := run(t, p)

	if summary.Notes != 1 || summary.Skipped != 2 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunOutputNotEmpty(t *testing.T) {
	exp := testutil.NewExport(t).Bundle("A", "id-a", "x").Build()
	p := newPipeline(t, exp.Path, config.Config{})
	if err := os.MkdirAll(p.Output(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(p.Output(), "existing.md"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := p.BuildIndex(); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(); !errors.Is(err, migrate.ErrOutputNotEmpty) {
		t.Errorf("err = %v, want ErrOutputNotEmpty", err)
	}
}

func TestRunOverwriteClearsOutput(t *testing.T) {
	exp := testutil.NewExport(t).Bundle("A", "id-a", "x").Build()
	p := newPipeline(t, exp.Path, config.Config{OverwriteOutput: true})
	if err := os.MkdirAll(p.Output(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(p.Output(), "stale.md"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	run(t, p)

	v := testutil.NewVault(t, p.Output())
	v.AssertFileNotExists("stale.md")
	v.AssertFileExists("A.md")
}

func TestRunCleanupOptions(t *testing.T) {
	exp := testutil.NewExport(t).
		Bundle("Holes", "id-h", "text\n![gone](assets/gone.png)\n").
		Bundle("Empty", "id-e", "").
		Build()
	p := newPipeline(t, exp.Path, config.Config{
		RemoveBrokenImageLinks: true,
		DeleteEmptyNotes:       true,
	})

	summary := run(t, p)

	if summary.Ghosts != 1 || summary.EmbedsRemoved != 1 || summary.Deleted != 1 {
		t.Errorf("summary = %+v", summary)
	}
	v := testutil.NewVault(t, p.Output())
	v.AssertFileNotContains("Holes.md", "![[")
	v.AssertFileNotExists("Empty.md")
}

func TestRunProvenanceTag(t *testing.T) {
	exp := testutil.NewExport(t).Bundle("A", "id-a", "content").Build()
	p := newPipeline(t, exp.Path, config.Config{AddProvenanceTag: true})

	run(t, p)

	testutil.NewVault(t, p.Output()).AssertFileContains("A.md", "- source/craft")
}

func TestRunDailyNote(t *testing.T) {
	exp := testutil.NewExport(t).
		BundleWithInfo("2025.06.01", testutil.Info("id-d", 1767225600, 1767225600), "morning log").
		Build()
	p := newPipeline(t, exp.Path, config.Config{})

	run(t, p)

	v := testutil.NewVault(t, p.Output())
	v.AssertFileExists("2025-06-01.md")
	v.AssertFileContains("2025-06-01.md", "created:")
	v.AssertFileContains("2025-06-01.md", "2025-06-01")
}

func TestRunIdempotent(t *testing.T) {
	exp := testutil.NewExport(t).
		Bundle("Home", "id-home", "link [Other](craftdocs://open?blockId=id-other)\n![p](assets/p.png)\n#tag\n").
		Asset("p.png", []byte("img")).
		Bundle("Other", "id-other", "plain").
		Build()

	read := func(t *testing.T, root string) map[string]string {
		t.Helper()
		files := make(map[string]string)
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(root, path)
			files[filepath.ToSlash(rel)] = string(data)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		return files
	}

	p1 := newPipeline(t, exp.Path, config.Config{})
	run(t, p1)
	first := read(t, p1.Output())

	p2 := newPipeline(t, exp.Path, config.Config{})
	run(t, p2)
	second := read(t, p2.Output())

	if len(first) == 0 {
		t.Fatal("no output files")
	}
	if len(first) != len(second) {
		t.Fatalf("file sets differ: %d vs %d", len(first), len(second))
	}
	for rel, content := range first {
		if second[rel] != content {
			t.Errorf("%s differs between runs", rel)
		}
	}
}
