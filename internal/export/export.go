// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package export renders the indexed content into every machine-readable
// artifact the site serves: per-page Markdown, the JSON index, sitemaps,
// RSS feeds and the LLM context documents.
//
// Every render re-reads the content store; nothing is cached between calls.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/index"
	"github.com/weyl-ai/weyl-website/internal/metrics"
	"github.com/weyl-ai/weyl-website/internal/reduce"
	"github.com/weyl-ai/weyl-website/internal/site"
)

// Content types of the rendered artifacts.
const (
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
	ContentTypeJSON     = "application/json; charset=utf-8"
	ContentTypeXML      = "application/xml; charset=utf-8"
	ContentTypeRSS      = "application/rss+xml; charset=utf-8"
	ContentTypeText     = "text/plain; charset=utf-8"
)

// Default cache lifetimes.
const (
	DefaultMaxAge     = time.Hour
	DefaultLongMaxAge = 24 * time.Hour
)

// Artifact is one rendered export.
type Artifact struct {
	Body         []byte
	ContentType  string
	CacheControl string
	NoIndex      bool // sent as X-Robots-Tag: noindex
}

// Options configures an Exporter.
type Options struct {
	Index       index.Options
	MaxAge      time.Duration // Cache lifetime of content-derived artifacts
	LongMaxAge  time.Duration // Cache lifetime of manifests and robots.txt
	OpenAPIPath string        // openapi.yaml or openapi.json on disk
	Generator   string        // RSS generator string
	DisallowAll bool          // robots.txt blocks every crawler
	Now         func() time.Time
}

// Exporter renders artifacts from a content store and a site profile.
type Exporter struct {
	store   content.Store
	profile *site.Profile
	opts    Options
	logger  *slog.Logger
}

// New creates an Exporter. The profile's site URL is used as the base URL
// when opts.Index.BaseURL is empty.
func New(store content.Store, profile *site.Profile, opts Options, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Index.BaseURL == "" {
		opts.Index.BaseURL = profile.BaseURL()
	}
	if opts.Index.Prefixes == nil {
		opts.Index.Prefixes = index.DefaultPrefixes()
	}
	if opts.Index.DefaultAuthor == "" {
		opts.Index.DefaultAuthor = profile.Site.Author
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultMaxAge
	}
	if opts.LongMaxAge <= 0 {
		opts.LongMaxAge = DefaultLongMaxAge
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Exporter{store: store, profile: profile, opts: opts, logger: logger}
}

// Profile returns the site profile the exporter renders with.
func (e *Exporter) Profile() *site.Profile {
	return e.profile
}

// Load reads a fresh index snapshot from the store.
func (e *Exporter) Load(ctx context.Context) (*index.Index, error) {
	opts := e.opts.Index
	opts.Now = e.now()

	idx, err := index.Load(ctx, e.store, opts, e.logger)
	if err != nil {
		return nil, err
	}
	for _, c := range content.Collections() {
		metrics.IndexedDocuments.WithLabelValues(string(c)).Set(float64(len(idx.Collection(c))))
	}
	return idx, nil
}

func (e *Exporter) now() time.Time {
	return e.opts.Now().UTC()
}

func (e *Exporter) cacheControl() string {
	return cacheControl(e.opts.MaxAge)
}

func (e *Exporter) longCacheControl() string {
	return cacheControl(e.opts.LongMaxAge)
}

func cacheControl(d time.Duration) string {
	return fmt.Sprintf("public, max-age=%d", int(d.Seconds()))
}

// reduceBody returns the plain-text body of s. Malformed component markup
// is logged and the body is emitted unreduced.
func (e *Exporter) reduceBody(s index.Summary) string {
	text, err := reduce.Reduce(s.Body)
	if err != nil {
		metrics.ReducerFallbacks.Inc()
		e.logger.Warn("emitting unreduced body",
			"collection", s.Collection, "slug", s.Slug, "error", err)
	}
	return text
}

// observe records the duration and failure kind of one render. It is
// deferred with a pointer to the caller's named error result.
func observe(artifact string, start time.Time, errp *error) {
	metrics.RenderDuration.WithLabelValues(artifact).Observe(time.Since(start).Seconds())
	if errp != nil && *errp != nil {
		metrics.RenderErrors.WithLabelValues(artifact, ErrorKind(*errp)).Inc()
	}
}

// ErrorKind classifies a render error for metrics and logging.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, content.ErrNotFound):
		return "not_found"
	case errors.Is(err, content.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, content.ErrMissingField), errors.Is(err, content.ErrInvalidField):
		return "invalid_content"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
