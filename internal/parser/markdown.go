package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DeriveTitle extracts a candidate note title from markdown content using
// goldmark: the text of the first heading, falling back to the text of the
// first paragraph-level block, falling back to a plain line scan.
//
// The function is pure and deterministic; it is invoked only when a note
// has no explicit title.
func DeriveTitle(content string) string {
	source := []byte(content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var heading, paragraph string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading:
			if heading == "" {
				heading = nodeText(n, source)
			}
			if heading != "" {
				return ast.WalkStop, nil
			}
		case *ast.Paragraph:
			if paragraph == "" {
				paragraph = nodeText(n, source)
			}
		}
		return ast.WalkContinue, nil
	})

	if heading != "" {
		return heading
	}
	if paragraph != "" {
		// Only the first line of a multi-line paragraph is a usable name.
		if i := strings.IndexByte(paragraph, '\n'); i >= 0 {
			paragraph = paragraph[:i]
		}
		return strings.TrimSpace(paragraph)
	}
	return FirstLine(content)
}

// nodeText collects the raw text of a node's descendants.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
