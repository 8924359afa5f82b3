// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/index"
	"github.com/weyl-ai/weyl-website/internal/seo"
)

// collectionPolicy holds the format-level constants of a collection.
type collectionPolicy struct {
	changeFreq seo.ChangeFreq
	priority   string
	kind       string // ai:type and JSON "type"
}

var policies = map[content.Collection]collectionPolicy{
	content.CollectionDocs: {changeFreq: seo.ChangeFreqWeekly, priority: "0.8", kind: "documentation"},
	content.CollectionStd:  {changeFreq: seo.ChangeFreqWeekly, priority: "0.7", kind: "standard"},
	content.CollectionBlog: {changeFreq: seo.ChangeFreqMonthly, priority: "0.6", kind: "article"},
}

func policyFor(c content.Collection) collectionPolicy {
	if p, ok := policies[c]; ok {
		return p
	}
	return collectionPolicy{changeFreq: seo.ChangeFreqWeekly, priority: "0.5", kind: "page"}
}

// Sitemap renders /sitemap.xml.
func (e *Exporter) Sitemap(ctx context.Context) (a Artifact, err error) {
	defer observe("sitemap.xml", time.Now(), &err)
	return e.sitemap(ctx, seo.NewSitemapBuilder(e.profile.BaseURL()))
}

// AISitemap renders /ai-sitemap.xml, the sitemap with ai:metadata blocks.
func (e *Exporter) AISitemap(ctx context.Context) (a Artifact, err error) {
	defer observe("ai-sitemap.xml", time.Now(), &err)
	return e.sitemap(ctx, seo.NewAISitemapBuilder(e.profile.BaseURL()))
}

func (e *Exporter) sitemap(ctx context.Context, b *seo.SitemapBuilder) (Artifact, error) {
	idx, err := e.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}

	body, err := e.buildSitemap(idx, b)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Body:         body,
		ContentType:  ContentTypeXML,
		CacheControl: e.cacheControl(),
	}, nil
}

// buildSitemap adds the homepage and every indexable document, docs
// first, then standards, then blog posts newest first.
func (e *Exporter) buildSitemap(idx *index.Index, b *seo.SitemapBuilder) ([]byte, error) {
	home := e.profile.Site.Home
	b.AddHomepage(idx.GeneratedAt, &seo.EntryMeta{
		Title:       home.Title,
		Description: home.Description,
		Type:        "homepage",
	})

	for _, s := range idx.All() {
		if s.NoIndex {
			continue
		}
		p := policyFor(s.Collection)
		meta := &seo.EntryMeta{
			Title:       s.Title,
			Description: s.Description,
			Type:        p.kind,
			Tags:        s.Tags,
		}
		if s.Collection == content.CollectionBlog {
			meta.Published = s.PublishedAt
			meta.Author = s.Author
		} else {
			meta.Category = s.Category
		}

		b.Add(seo.SitemapEntry{
			Loc:        s.URL,
			LastMod:    s.LastModified,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
			Meta:       meta,
		})
	}

	return b.Build()
}
