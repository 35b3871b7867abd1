// Package metadata consolidates a note's scattered metadata into the
// structured front-block of the output file.
//
// It collects inline tags out of the body, carries bundle timestamps
// forward, applies the provenance tag when configured, and finalizes the
// body (tag markers stripped, open tasks tagged, redundant title heading
// removed).
package metadata

import (
	"strings"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/bundle"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/frontmatter"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/parser"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/vault"
)

// ProvenanceTag marks notes imported from Craft.
const ProvenanceTag = "source/craft"

// Note is the final output artifact: front-block plus converted body,
// addressed by its vault-relative path. Created here, possibly deleted by
// the cleanup pass, finally persisted by the pipeline.
type Note struct {
	Entry vault.Entry
	Block frontmatter.Block
	Body  string
}

// Render serializes the note to file content.
func (n *Note) Render() (string, error) {
	return frontmatter.Compose(n.Block, n.Body)
}

// Consolidate builds the output note for one source note. body is the text
// after link and attachment rewriting; the index entry supplies the final
// title and output path.
func Consolidate(src *bundle.Note, entry vault.Entry, body string, addProvenance bool) *Note {
	tags := parser.ExtractTags(body)
	body = parser.StripTagMarkers(body)
	body = parser.TagTasks(body)
	body = parser.StripTitleHeading(body, entry.Title)
	if src.Title != entry.Title {
		body = parser.StripTitleHeading(body, src.Title)
	}

	if addProvenance {
		tags = append(tags, ProvenanceTag)
	}

	created := src.Created
	if entry.IsDaily {
		// The title date is authoritative for daily notes; the bundle's
		// creation timestamp is when the note was (re)created in Craft.
		created = entry.Title
	}

	return &Note{
		Entry: entry,
		Block: frontmatter.Block{
			Title:    entry.Title,
			Created:  created,
			Modified: src.Modified,
			Tags:     frontmatter.NormalizeTags(tags),
		},
		Body: strings.TrimSpace(body),
	}
}
