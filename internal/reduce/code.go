// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package reduce

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdown is stateless after construction and safe for concurrent use.
var markdown = goldmark.New()

// span is a half-open byte range [start, stop). indented marks an indented
// code block, which MDX also produces for nested component children.
type span struct {
	start, stop int
	indented    bool
}

// codeSpans returns the byte ranges of inline code, fenced code blocks and
// indented code blocks in s, in document order. Component tags are never
// recognised inside these ranges, so `Promise<Response>` stays code.
func codeSpans(s string) []span {
	if s == "" {
		return nil
	}

	src := []byte(s)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var spans []span
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			if lines.Len() > 0 {
				_, indented := n.(*ast.CodeBlock)
				spans = append(spans, span{
					start:    lines.At(0).Start,
					stop:     lines.At(lines.Len() - 1).Stop,
					indented: indented,
				})
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					spans = append(spans, span{start: t.Segment.Start, stop: t.Segment.Stop})
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return spans
}
