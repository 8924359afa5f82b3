// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/index"
)

// JSONIndex is the document served at /docs.json. Every key is always
// present; empty collections are empty arrays.
type JSONIndex struct {
	Site          JSONSite          `json:"site"`
	Documentation []JSONPage        `json:"documentation"`
	Standards     []JSONPage        `json:"standards"`
	Blog          []JSONPost        `json:"blog"`
	Endpoints     map[string]string `json:"endpoints"`
}

// JSONSite is the site metadata block.
type JSONSite struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Updated     string `json:"updated"`
}

// JSONPage is a docs or standards entry.
type JSONPage struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Updated     string          `json:"updated"`
	Tags        []string        `json:"tags"`
	Outline     []index.Heading `json:"outline"`
}

// JSONPost is a blog entry.
type JSONPost struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Type        string          `json:"type"`
	Published   string          `json:"published"`
	Updated     string          `json:"updated"`
	Author      string          `json:"author"`
	Tags        []string        `json:"tags"`
	Outline     []index.Heading `json:"outline"`
}

// JSONIndex renders /docs.json.
func (e *Exporter) JSONIndex(ctx context.Context) (a Artifact, err error) {
	defer observe("docs.json", time.Now(), &err)

	idx, err := e.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}
	body, err := marshalJSON(e.buildJSONIndex(idx))
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Body:         body,
		ContentType:  ContentTypeJSON,
		CacheControl: e.cacheControl(),
	}, nil
}

func (e *Exporter) buildJSONIndex(idx *index.Index) JSONIndex {
	p := e.profile
	out := JSONIndex{
		Site: JSONSite{
			Name:        p.Site.Name,
			URL:         p.BaseURL(),
			Description: p.Site.Description,
			Version:     p.Site.Version,
			Updated:     idx.GeneratedAt.UTC().Format(time.RFC3339),
		},
		Documentation: jsonPages(idx.Docs()),
		Standards:     jsonPages(idx.Std()),
		Blog:          make([]JSONPost, 0, len(idx.Blog())),
		Endpoints:     make(map[string]string, len(p.Endpoints)),
	}

	for _, s := range idx.Blog() {
		out.Blog = append(out.Blog, JSONPost{
			Slug:        s.Slug,
			Title:       s.Title,
			Description: s.Description,
			URL:         s.URL,
			Type:        policyFor(content.CollectionBlog).kind,
			Published:   s.PublishedAt.UTC().Format(time.RFC3339),
			Updated:     s.LastModified.UTC().Format(time.RFC3339),
			Author:      s.Author,
			Tags:        s.Tags,
			Outline:     s.Outline,
		})
	}

	for name, path := range p.Endpoints {
		out.Endpoints[name] = p.AbsURL(path)
	}

	return out
}

func jsonPages(summaries []index.Summary) []JSONPage {
	pages := make([]JSONPage, 0, len(summaries))
	for _, s := range summaries {
		pages = append(pages, JSONPage{
			Slug:        s.Slug,
			Title:       s.Title,
			Description: s.Description,
			URL:         s.URL,
			Type:        policyFor(s.Collection).kind,
			Category:    s.Category,
			Updated:     s.LastModified.UTC().Format(time.RFC3339),
			Tags:        s.Tags,
			Outline:     s.Outline,
		})
	}
	return pages
}

// marshalJSON encodes v indented, without HTML escaping.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
