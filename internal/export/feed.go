// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/index"
	"github.com/weyl-ai/weyl-website/internal/seo"
	"github.com/weyl-ai/weyl-website/internal/site"
)

// Feed renders the RSS feed the profile serves at route, such as
// "/blog/rss.xml". Every feed lists the blog collection with canonical
// URLs; feeds differ only in channel metadata.
func (e *Exporter) Feed(ctx context.Context, route string) (a Artifact, err error) {
	defer observe("rss", time.Now(), &err)

	feed, ok := e.profile.Feed(route)
	if !ok {
		return Artifact{}, fmt.Errorf("feed %s: %w", route, content.ErrNotFound)
	}

	idx, err := e.Load(ctx)
	if err != nil {
		return Artifact{}, err
	}

	body, err := e.buildFeed(idx, feed)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Body:         body,
		ContentType:  ContentTypeRSS,
		CacheControl: e.cacheControl(),
	}, nil
}

func (e *Exporter) buildFeed(idx *index.Index, feed site.Feed) ([]byte, error) {
	b := seo.NewFeedBuilder(seo.FeedChannel{
		Title:       feed.Title,
		Description: feed.Description,
		Link:        e.profile.AbsURL(feed.Link),
		SelfURL:     e.profile.AbsURL(feed.Path),
		Language:    feed.Language,
		Copyright:   feed.Copyright,
		Editor:      feed.Editor,
		Generator:   e.opts.Generator,
		TTL:         feed.TTL,
		BuildDate:   idx.GeneratedAt,
	})

	for _, s := range idx.Blog() {
		b.AddItem(seo.FeedItem{
			Title:       s.Title,
			Description: s.Description,
			Link:        s.URL,
			PubDate:     s.PublishedAt,
			Author:      s.Author,
			Categories:  s.Tags,
		})
	}

	return b.Build()
}
