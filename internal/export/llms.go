// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"strings"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/index"
	"github.com/weyl-ai/weyl-website/internal/reduce"
	"github.com/weyl-ai/weyl-website/internal/site"
)

const sectionRule = "---\n\n"

// LLMsText renders /llms.txt from the profile's curated sections. It does
// not read the content store.
func (e *Exporter) LLMsText(_ context.Context) (a Artifact, err error) {
	defer observe("llms.txt", time.Now(), &err)

	return Artifact{
		Body:         []byte(e.renderLLMsText()),
		ContentType:  ContentTypeText,
		CacheControl: e.cacheControl(),
		NoIndex:      true,
	}, nil
}

func (e *Exporter) renderLLMsText() string {
	p := e.profile
	var sb strings.Builder

	writeHeader(&sb, p.LLMs.Title, p.LLMs.Summary, p.LLMs.About)
	for _, s := range p.LLMs.Sections {
		e.writeSection(&sb, s, 2)
	}

	return p.Expand(strings.TrimRight(sb.String(), "\n")+"\n", e.now())
}

// writeHeader writes "# title", the blockquoted summary and the about text.
func writeHeader(sb *strings.Builder, title, summary, about string) {
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	if summary = strings.TrimSpace(summary); summary != "" {
		sb.WriteString("> ")
		sb.WriteString(summary)
		sb.WriteString("\n\n")
	}
	if about = strings.TrimSpace(about); about != "" {
		sb.WriteString(about)
		sb.WriteString("\n\n")
	}
}

func (e *Exporter) writeSection(sb *strings.Builder, s site.Section, level int) {
	sb.WriteString(strings.Repeat("#", level))
	sb.WriteString(" ")
	sb.WriteString(s.Title)
	sb.WriteString("\n\n")

	if body := strings.TrimSpace(s.Body); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}

	if len(s.Items) > 0 {
		for _, item := range s.Items {
			sb.WriteString("- ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(s.Links) > 0 {
		for _, l := range s.Links {
			sb.WriteString("- ")
			sb.WriteString(e.formatLink(l))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for _, sub := range s.Subsections {
		e.writeSection(sb, sub, level+1)
	}
}

func (e *Exporter) formatLink(l site.Link) string {
	url := e.profile.AbsURL(l.URL)
	if l.Plain {
		return l.Title + ": " + url
	}
	out := "[" + l.Title + "](" + url + ")"
	if l.Description != "" {
		out += ": " + l.Description
	}
	return out
}

// LLMsFull renders /llms-full.txt: the profile preamble, then docs grouped
// by their first slug segment, standards, blog posts, and the appendix.
func (e *Exporter) LLMsFull(ctx context.Context) (a Artifact, err error) {
	defer observe("llms-full.txt", time.Now(), &err)

	idx, err := e.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Body:         []byte(e.renderLLMsFull(idx)),
		ContentType:  ContentTypeText,
		CacheControl: e.cacheControl(),
		NoIndex:      true,
	}, nil
}

func (e *Exporter) renderLLMsFull(idx *index.Index) string {
	p := e.profile
	full := p.Full
	now := idx.GeneratedAt
	expand := func(s string) string { return p.Expand(s, now) }

	var sb strings.Builder
	writeHeader(&sb, full.Title, p.LLMs.Summary, p.LLMs.About)
	writeBlock(&sb, expand(p.Text(full.Preamble)), true)

	// Docs
	writeSectionHeading(&sb, full.Docs, expand)
	for _, g := range groupByFirstSegment(idx.Docs()) {
		sb.WriteString("### ")
		sb.WriteString(p.CategoryName(g.name))
		sb.WriteString("\n\n")
		for _, s := range g.docs {
			sb.WriteString("#### ")
			sb.WriteString(s.Title)
			sb.WriteString("\n\n")
			sb.WriteString("**URL**: ")
			sb.WriteString(s.URL)
			sb.WriteString("\n")
			sb.WriteString("**Description**: ")
			sb.WriteString(s.Description)
			sb.WriteString("\n\n")
			e.writeBody(&sb, s, full.Docs, full.MinBody)
			sb.WriteString(sectionRule)
		}
	}

	writeBlock(&sb, expand(p.Text(full.Interlude)), false)

	// Standards
	writeSectionHeading(&sb, full.Std, expand)
	for _, s := range idx.Std() {
		sb.WriteString("### ")
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
		sb.WriteString("**URL**: ")
		sb.WriteString(s.URL)
		sb.WriteString("\n")
		if s.Description != "" {
			sb.WriteString("**Description**: ")
			sb.WriteString(s.Description)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		e.writeBody(&sb, s, full.Std, full.MinBody)
		sb.WriteString(sectionRule)
	}

	// Blog
	writeSectionHeading(&sb, full.Blog, expand)
	for _, s := range idx.Blog() {
		sb.WriteString("### ")
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
		sb.WriteString("**URL**: ")
		sb.WriteString(s.URL)
		sb.WriteString("\n")
		sb.WriteString("**Published**: ")
		sb.WriteString(s.PublishedAt.UTC().Format(time.DateOnly))
		sb.WriteString("\n")
		sb.WriteString("**Author**: ")
		sb.WriteString(s.Author)
		sb.WriteString("\n")
		if len(s.Tags) > 0 {
			sb.WriteString("**Tags**: ")
			sb.WriteString(strings.Join(s.Tags, ", "))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(s.Description)
		sb.WriteString("\n\n")
		e.writeBody(&sb, s, full.Blog, full.MinBody)
		sb.WriteString(sectionRule)
	}

	writeBlock(&sb, expand(p.Text(full.Appendix)), false)

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// writeBody writes the reduced, truncated body when it is longer than minBody.
func (e *Exporter) writeBody(sb *strings.Builder, s index.Summary, cfg site.FullSection, minBody int) {
	text := e.reduceBody(s)
	if reduce.RuneLen(text) <= minBody {
		return
	}
	sb.WriteString(reduce.Truncate(text, cfg.Truncate, cfg.Marker))
	sb.WriteString("\n\n")
}

func writeSectionHeading(sb *strings.Builder, cfg site.FullSection, expand func(string) string) {
	if cfg.Heading == "" {
		return
	}
	sb.WriteString("## ")
	sb.WriteString(cfg.Heading)
	sb.WriteString("\n\n")
	if intro := strings.TrimSpace(cfg.Intro); intro != "" {
		sb.WriteString(expand(intro))
		sb.WriteString("\n\n")
	}
}

// writeBlock writes a static text block, optionally framed by rules.
func writeBlock(sb *strings.Builder, text string, framed bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if framed {
		sb.WriteString(sectionRule)
	}
	sb.WriteString(text)
	sb.WriteString("\n\n")
	if framed {
		sb.WriteString(sectionRule)
	}
}

type docGroup struct {
	name string
	docs []index.Summary
}

// groupByFirstSegment groups slug-ordered docs by the first slug segment,
// keeping groups in order of first appearance.
func groupByFirstSegment(docs []index.Summary) []docGroup {
	var groups []docGroup
	pos := make(map[string]int)
	for _, s := range docs {
		name, _, _ := strings.Cut(s.Slug, "/")
		if name == "" {
			name = content.DefaultCategory
		}
		i, ok := pos[name]
		if !ok {
			i = len(groups)
			pos[name] = i
			groups = append(groups, docGroup{name: name})
		}
		groups[i].docs = append(groups[i].docs, s)
	}
	return groups
}
