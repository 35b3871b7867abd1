// Package wikilink provides canonical construction and scanning of Obsidian
// wikilinks, the output link format of the migration.
//
// Grammar emitted:
//
//	[[target]]
//	[[target|display text]]
//	![[attachments/note/file.png]]   (embed)
//
// Scanning intentionally does not understand markdown code fences; the
// cleanup pass operates line-wise on already-converted bodies.
package wikilink

import (
	"regexp"
	"strings"
)

// Match represents a wikilink or embed found in a line.
type Match struct {
	Target      string
	DisplayText *string
	Embed       bool
	Start       int
	End         int
	Literal     string
}

var re = regexp.MustCompile(`(!?)\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// Build renders a link to target, adding a |display alias only when the
// display text actually differs from the target.
func Build(target, display string) string {
	if display == "" || display == target {
		return "[[" + target + "]]"
	}
	return "[[" + target + "|" + display + "]]"
}

// Embed renders an embedded-file link.
func Embed(target string) string {
	return "![[" + target + "]]"
}

// FindAll finds wikilinks and embeds in a single line.
func FindAll(line string) []Match {
	var out []Match
	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[0], m[1]
		embed := m[2] != m[3]

		target := strings.TrimSpace(line[m[4]:m[5]])
		if target == "" {
			continue
		}

		var display *string
		if m[6] >= 0 {
			d := strings.TrimSpace(line[m[6]:m[7]])
			display = &d
		}

		out = append(out, Match{
			Target:      target,
			DisplayText: display,
			Embed:       embed,
			Start:       start,
			End:         end,
			Literal:     line[start:end],
		})
	}
	return out
}

// ParseExact parses a string that is exactly a wikilink or embed literal.
func ParseExact(s string) (m Match, ok bool) {
	s = strings.TrimSpace(s)
	matches := FindAll(s)
	if len(matches) != 1 || matches[0].Start != 0 || matches[0].End != len(s) {
		return Match{}, false
	}
	return matches[0], true
}
