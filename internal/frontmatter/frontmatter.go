// Package frontmatter renders and parses the YAML front-block prepended to
// every converted note.
package frontmatter

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Block is the structured metadata of one output note. Field order here is
// the emission order in the rendered YAML.
type Block struct {
	Title    string   `yaml:"title"`
	Created  string   `yaml:"created,omitempty"`
	Modified string   `yaml:"modified,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

// NormalizeTags dedupes and sorts a tag list, dropping empties. Tags are a
// set; output order is alphabetical so reruns are byte-identical.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Render serializes the block between '---' fences. Tags are normalized as
// part of rendering.
func (b Block) Render() (string, error) {
	b.Tags = NormalizeTags(b.Tags)
	data, err := yaml.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal front-block: %w", err)
	}
	return "---\n" + string(data) + "---\n", nil
}

// Compose joins a rendered front-block and a body into file content.
func Compose(block Block, body string) (string, error) {
	fm, err := block.Render()
	if err != nil {
		return "", err
	}
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return fm, nil
	}
	return fm + "\n" + body + "\n", nil
}

// Split separates file content into its front-block and body. When the
// content has no front-block, ok is false and body is the whole content.
func Split(content string) (block Block, body string, ok bool) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return Block{}, content, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			raw := strings.Join(lines[1:i], "\n")
			if err := yaml.Unmarshal([]byte(raw), &block); err != nil {
				return Block{}, content, false
			}
			return block, strings.Join(lines[i+1:], "\n"), true
		}
	}
	return Block{}, content, false
}
