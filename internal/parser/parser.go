// Package parser handles scanning Craft markdown bodies: inline tags, open
// task lines, and title-bearing structure.
package parser

import (
	"regexp"
	"strings"
)

// tagRegex matches Craft inline tags: #tag, #a/b, #a-b, #a.b.
var tagRegex = regexp.MustCompile(`#([a-zA-Z0-9_\-/]+(?:\.[a-zA-Z0-9_\-/]+)*)`)

// taskRegex matches open task list items, tolerating an existing #task
// marker so re-tagging is idempotent.
var taskRegex = regexp.MustCompile(`(?m)^(\s*-\s\[\s*\].+?)(?:\s+#task)?$`)

// ExtractTags collects all inline tag names from a body, in order of
// appearance. Duplicates are preserved; callers dedupe.
func ExtractTags(body string) []string {
	var tags []string
	for _, m := range tagRegex.FindAllStringSubmatch(body, -1) {
		tags = append(tags, m[1])
	}
	return tags
}

// StripTagMarkers removes the '#' from inline tags, leaving the tag text in
// place so sentences keep reading naturally.
func StripTagMarkers(body string) string {
	return tagRegex.ReplaceAllString(body, "$1")
}

// TagTasks appends a #task marker to every open task line that does not
// already carry one, so converted tasks surface in Obsidian task queries.
func TagTasks(body string) string {
	return taskRegex.ReplaceAllString(body, "$1 #task")
}

// StripTitleHeading removes a leading "# <title>" heading matching the note
// title (case-insensitive); Obsidian already shows the filename as the title.
func StripTitleHeading(body, title string) string {
	if title == "" {
		return body
	}
	re, err := regexp.Compile(`(?i)^#\s*` + regexp.QuoteMeta(title) + `\s*\n`)
	if err != nil {
		return body
	}
	return re.ReplaceAllString(body, "")
}

// FirstLine returns the first non-empty line of a body with any leading
// heading markers removed, or "" when the body holds no usable text.
func FirstLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimLeft(line, "# ")
		if line != "" {
			return line
		}
	}
	return ""
}
