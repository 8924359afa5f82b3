// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"strings"
	"time"

	"github.com/weyl-ai/weyl-website/internal/index"
)

// Markdown renders the page at path (for example "api/sync" or
// "plan/hello") as Markdown. Unknown paths yield content.ErrNotFound.
func (e *Exporter) Markdown(ctx context.Context, path string) (a Artifact, err error) {
	defer observe("markdown", time.Now(), &err)

	idx, err := e.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}
	s, err := idx.Lookup(path)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Body:         []byte(e.renderMarkdown(s)),
		ContentType:  ContentTypeMarkdown,
		CacheControl: e.cacheControl(),
		NoIndex:      true,
	}, nil
}

// renderMarkdown produces "# <title>", a blockquoted description when one
// is present, then the reduced body.
func (e *Exporter) renderMarkdown(s index.Summary) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(s.Title)
	sb.WriteString("\n\n")

	if desc := strings.TrimSpace(s.Description); desc != "" {
		for _, line := range strings.Split(desc, "\n") {
			sb.WriteString(strings.TrimRight("> "+line, " "))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if body := e.reduceBody(s); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}

	return sb.String()
}
