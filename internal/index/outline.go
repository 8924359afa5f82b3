package index

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/weyl-ai/weyl-website/internal/util"
)

// markdown is stateless after construction and safe for concurrent use.
var markdown = goldmark.New()

// Outline lists the headings of a Markdown body down to maxDepth.
func Outline(body string, maxDepth int) []Heading {
	if body == "" {
		return []Heading{}
	}

	src := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(src))

	headings := []Heading{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level <= maxDepth {
			label := strings.TrimSpace(inlineText(h, src))
			if label != "" {
				headings = append(headings, Heading{
					Depth:  h.Level,
					Text:   label,
					Anchor: util.Slugify(label),
				})
			}
		}
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// inlineText concatenates the text segments under n.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
