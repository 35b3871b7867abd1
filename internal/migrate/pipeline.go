// Package migrate orchestrates the two-stage migration pipeline:
//
//	Index → Rewrite
//
// Stage 1 (BuildIndex) observes the entire source tree and produces the
// global note index. Stage 2 (Run) rewrites every note against that index,
// relocates attachments, consolidates metadata, applies cleanup, and
// persists the output vault. Run fails fast when invoked before BuildIndex:
// forward references are legal, so rewriting against a partial index would
// silently break links.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/atomicfile"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/attachments"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/audit"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/cleanup"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/config"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/metadata"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/paths"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/resolver"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/vault"
)

var (
	// ErrNotIndexed marks a rewrite attempt before the index was built.
	ErrNotIndexed = errors.New("rewrite pass invoked before indexing completed")

	// ErrOutputNotEmpty marks a non-empty output directory without the
	// overwrite option.
	ErrOutputNotEmpty = errors.New("output directory exists and is not empty")
)

// Summary is the final accounting of one run.
type Summary struct {
	StartedAt        time.Time
	FinishedAt       time.Time
	Notes            int
	Skipped          int
	LinksResolved    int
	LinksUnresolved  int
	AttachmentCopies int
	Ghosts           int
	Deleted          int
	EmbedsRemoved    int
}

// Pipeline runs one migration from input to output.
type Pipeline struct {
	input  string
	output string
	cfg    config.Config
	log    *audit.Logger
	index  *vault.Index
}

// New creates a pipeline. The configuration is fixed for the run.
func New(input, output string, cfg config.Config, log *audit.Logger) *Pipeline {
	return &Pipeline{input: input, output: output, cfg: cfg, log: log}
}

// Input returns the source tree root.
func (p *Pipeline) Input() string { return p.input }

// Output returns the output vault root.
func (p *Pipeline) Output() string { return p.output }

// BuildIndex runs stage 1 over the whole source tree.
func (p *Pipeline) BuildIndex() (*vault.Index, error) {
	ix, err := vault.BuildIndex(p.input)
	if err != nil {
		return nil, err
	}
	p.index = ix
	return ix, nil
}

// Run executes stage 2 and persists the output vault.
func (p *Pipeline) Run() (*Summary, error) {
	if p.index == nil {
		return nil, ErrNotIndexed
	}

	summary := &Summary{StartedAt: time.Now().UTC()}

	if err := p.prepareOutput(); err != nil {
		return nil, err
	}

	for _, skip := range p.index.Skips() {
		summary.Skipped++
		if err := p.log.LogSkip(skip.Bundle, fmt.Sprintf("%s: %v", skip.Reason, skip.Err)); err != nil {
			return nil, err
		}
	}

	res := resolver.New(p.index)
	migrator := attachments.New(p.output)
	ghosts := make(map[string]bool)
	var outputs []*metadata.Note

	for _, note := range p.index.Notes() {
		entry, ok := p.index.Lookup(note.ID)
		if !ok {
			// Cannot happen for an index built by stage 1; treat as the
			// integrity failure it would be.
			return nil, fmt.Errorf("note %s missing from its own index", note.ID)
		}

		for _, w := range note.Warnings {
			p.log.LogWarning(note.ID, entry.RelPath, w)
		}

		body, resolved, misses := res.Rewrite(note.Body)
		summary.LinksResolved += resolved
		summary.LinksUnresolved += len(misses)
		for _, miss := range misses {
			p.log.LogUnresolved(note.ID, entry.RelPath, miss.TargetID, miss.Display)
		}

		att := migrator.MigrateNote(note, entry, body)
		summary.AttachmentCopies += len(att.Copied)
		summary.Ghosts += len(att.Ghosts)
		for _, g := range att.Ghosts {
			ghosts[g.Target] = true
			p.log.LogGhost(note.ID, entry.RelPath, g.Target, g.Reason)
		}

		outputs = append(outputs, metadata.Consolidate(note, entry, att.Body, p.cfg.AddProvenanceTag))
	}

	kept, actions := cleanup.Apply(outputs, ghosts, cleanup.Options{
		RemoveBrokenEmbeds: p.cfg.RemoveBrokenImageLinks,
		DeleteEmptyNotes:   p.cfg.DeleteEmptyNotes,
	})
	summary.EmbedsRemoved = actions.EmbedsRemoved
	summary.Deleted = len(actions.Deleted)
	for _, d := range actions.Deleted {
		p.log.LogDelete(d.RelPath, "empty after conversion")
	}

	for _, note := range kept {
		if err := p.persist(note); err != nil {
			return nil, err
		}
		summary.Notes++
	}

	summary.FinishedAt = time.Now().UTC()
	return summary, nil
}

// prepareOutput ensures the output directory is ready: empty, freshly
// cleared when overwriting is allowed, refused otherwise.
func (p *Pipeline) prepareOutput() error {
	entries, err := os.ReadDir(p.output)
	switch {
	case os.IsNotExist(err):
		// created below
	case err != nil:
		return fmt.Errorf("inspect output directory: %w", err)
	case len(entries) > 0 && !p.cfg.OverwriteOutput:
		return fmt.Errorf("%w: %s", ErrOutputNotEmpty, p.output)
	case len(entries) > 0:
		if err := os.RemoveAll(p.output); err != nil {
			return fmt.Errorf("clear output directory: %w", err)
		}
	}
	if err := os.MkdirAll(p.output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// persist writes one output note atomically.
func (p *Pipeline) persist(note *metadata.Note) error {
	content, err := note.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", note.Entry.RelPath, err)
	}
	abs, err := paths.Join(p.output, note.Entry.RelPath)
	if err != nil {
		return fmt.Errorf("place %s: %w", note.Entry.RelPath, err)
	}
	if err := atomicfile.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", note.Entry.RelPath, err)
	}
	return nil
}
