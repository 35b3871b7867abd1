package migrate

import (
	"fmt"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/attachments"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/bundle"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/config"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/metadata"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/resolver"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/vault"
)

// Preview converts a single bundle against a completed index and returns the
// rendered output file without writing anything: attachment references are
// rewritten to their would-be destinations but no bytes are copied.
func Preview(index *vault.Index, bundlePath string, cfg config.Config) (string, error) {
	note, err := bundle.Read(bundlePath)
	if err != nil {
		return "", err
	}
	entry, ok := index.Lookup(note.ID)
	if !ok {
		return "", fmt.Errorf("bundle %s is not part of the indexed tree", bundlePath)
	}

	body, _, _ := resolver.New(index).Rewrite(note.Body)
	att := attachments.NewDryRun().MigrateNote(note, entry, body)
	out := metadata.Consolidate(note, entry, att.Body, cfg.AddProvenanceTag)
	return out.Render()
}
