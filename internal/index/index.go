// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package index normalises raw content collections into the ordered,
// draft-free summaries every export format renders from.
package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/util"
)

// MaxBlogDescription is the longest description a blog post may carry.
const MaxBlogDescription = 160

// Options controls URL construction and defaults applied while indexing.
type Options struct {
	BaseURL       string                        // e.g. "https://weyl.ai"
	Prefixes      map[content.Collection]string // e.g. blog: "/plan/", docs: "/"
	DefaultAuthor string
	Now           time.Time // Effective publish time for docs and std pages

	// SkipInvalid makes Load render a collection with a bad record as an
	// empty section instead of failing the whole export.
	SkipInvalid bool
}

// DefaultPrefixes returns the collection prefixes used by the site.
func DefaultPrefixes() map[content.Collection]string {
	return map[content.Collection]string{
		content.CollectionBlog: "/plan/",
		content.CollectionDocs: "/",
		content.CollectionStd:  "/std/",
	}
}

// Prefix returns the URL prefix for c, "/" when unset.
func (o Options) Prefix(c content.Collection) string {
	if p, ok := o.Prefixes[c]; ok && p != "" {
		return p
	}
	return "/"
}

// URL builds the canonical URL for a slug in c.
func (o Options) URL(c content.Collection, slug string) string {
	return CanonicalURL(o.BaseURL, o.Prefix(c), slug)
}

// CanonicalURL is the single URL rule shared by every export:
// baseURL + collectionPrefix + slug + "/".
func CanonicalURL(baseURL, prefix, slug string) string {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return base + prefix + strings.Trim(slug, "/") + "/"
}

// Heading is one entry of a document outline.
type Heading struct {
	Depth  int    `json:"depth"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
}

// Summary is a normalised, export-ready document.
type Summary struct {
	Collection   content.Collection
	Slug         string
	Title        string
	Description  string
	PublishedAt  time.Time
	UpdatedAt    *time.Time
	LastModified time.Time
	Tags         []string
	Author       string
	Category     string
	URL          string
	NoIndex      bool
	Body         string
	Outline      []Heading
}

// FieldError reports a record that fails the collection schema.
type FieldError struct {
	Collection content.Collection
	Slug       string
	Field      string
	Err        error // content.ErrMissingField or content.ErrInvalidField
}

func (e *FieldError) Error() string {
	slug := e.Slug
	if slug == "" {
		slug = "(no slug)"
	}
	return fmt.Sprintf("%s/%s: %s: %v", e.Collection, slug, e.Field, e.Err)
}

// Unwrap exposes the sentinel.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Build filters drafts, validates, sorts and normalises one collection.
// Blog posts are ordered newest first; docs and std pages by slug.
// It fails on the first invalid record.
func Build(c content.Collection, docs []content.Document, opts Options) ([]Summary, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	seen := make(map[string]bool, len(docs))
	out := make([]Summary, 0, len(docs))

	for _, d := range docs {
		if d.Draft {
			continue
		}
		if err := validate(c, d); err != nil {
			return nil, err
		}
		if seen[d.Slug] {
			return nil, &FieldError{Collection: c, Slug: d.Slug, Field: "slug", Err: fmt.Errorf("%w: duplicate slug", content.ErrInvalidField)}
		}
		seen[d.Slug] = true

		s := Summary{
			Collection:  c,
			Slug:        d.Slug,
			Title:       d.Title,
			Description: d.Description,
			PublishedAt: d.PublishedAt,
			UpdatedAt:   d.UpdatedAt,
			Tags:        append([]string(nil), d.Tags...),
			Author:      d.Author,
			Category:    d.Category,
			URL:         opts.URL(c, d.Slug),
			NoIndex:     d.NoIndex,
			Body:        d.Body,
			Outline:     Outline(d.Body, 3),
		}
		if s.Tags == nil {
			s.Tags = []string{}
		}
		if s.Author == "" {
			s.Author = opts.DefaultAuthor
		}
		if c != content.CollectionBlog {
			if s.Category == "" {
				s.Category = content.DefaultCategory
			}
			if s.PublishedAt.IsZero() {
				s.PublishedAt = now
			}
		}
		s.LastModified = s.PublishedAt
		if s.UpdatedAt != nil && !s.UpdatedAt.IsZero() {
			s.LastModified = *s.UpdatedAt
		}

		out = append(out, s)
	}

	if c == content.CollectionBlog {
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
				return out[i].PublishedAt.After(out[j].PublishedAt)
			}
			return out[i].Slug < out[j].Slug
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Slug < out[j].Slug
		})
	}

	return out, nil
}

func validate(c content.Collection, d content.Document) error {
	missing := func(field string) error {
		return &FieldError{Collection: c, Slug: d.Slug, Field: field, Err: content.ErrMissingField}
	}

	if strings.TrimSpace(d.Slug) == "" {
		return missing("slug")
	}
	// Request paths are lowercased before lookup, so anything else would
	// publish a URL that cannot be served.
	if !util.IsValidContentPath(d.Slug) {
		return &FieldError{Collection: c, Slug: d.Slug, Field: "slug",
			Err: fmt.Errorf("%w: want lowercase segments joined by \"/\"", content.ErrInvalidField)}
	}
	if strings.TrimSpace(d.Title) == "" {
		return missing("title")
	}
	if c == content.CollectionBlog {
		if strings.TrimSpace(d.Description) == "" {
			return missing("description")
		}
		if n := len([]rune(d.Description)); n > MaxBlogDescription {
			return &FieldError{Collection: c, Slug: d.Slug, Field: "description",
				Err: fmt.Errorf("%w: %d characters, max %d", content.ErrInvalidField, n, MaxBlogDescription)}
		}
		if d.PublishedAt.IsZero() {
			return missing("pubDate")
		}
	}
	return nil
}

// Index holds every collection of one snapshot.
type Index struct {
	Options     Options
	GeneratedAt time.Time
	collections map[content.Collection][]Summary
}

// New assembles an Index from already-built collections.
func New(opts Options, collections map[content.Collection][]Summary) *Index {
	idx := &Index{
		Options:     opts,
		GeneratedAt: opts.Now,
		collections: make(map[content.Collection][]Summary, len(collections)),
	}
	for c, s := range collections {
		idx.collections[c] = s
	}
	return idx
}

// Load reads and builds every known collection from store. A collection
// the store does not have becomes an empty section; an unreadable store
// aborts with content.ErrUnavailable.
func Load(ctx context.Context, store content.Store, opts Options, logger *slog.Logger) (*Index, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	if logger == nil {
		logger = slog.Default()
	}

	built := make(map[content.Collection][]Summary)
	for _, c := range content.Collections() {
		docs, err := store.List(ctx, c)
		if err != nil {
			if errors.Is(err, content.ErrCollectionNotFound) {
				logger.Debug("collection not found, exporting empty section", "collection", c)
				built[c] = []Summary{}
				continue
			}
			return nil, fmt.Errorf("listing %s: %w", c, err)
		}

		summaries, err := Build(c, docs, opts)
		if err != nil {
			var fe *FieldError
			if opts.SkipInvalid && errors.As(err, &fe) {
				logger.Warn("invalid content record, exporting empty section",
					"collection", c, "slug", fe.Slug, "field", fe.Field, "error", err)
				built[c] = []Summary{}
				continue
			}
			return nil, fmt.Errorf("indexing %s: %w", c, err)
		}
		built[c] = summaries
	}

	return New(opts, built), nil
}

// Collection returns the ordered summaries of c (never nil).
func (idx *Index) Collection(c content.Collection) []Summary {
	if s, ok := idx.collections[c]; ok {
		return s
	}
	return []Summary{}
}

// Blog returns blog posts, newest first.
func (idx *Index) Blog() []Summary { return idx.Collection(content.CollectionBlog) }

// Docs returns docs pages by slug.
func (idx *Index) Docs() []Summary { return idx.Collection(content.CollectionDocs) }

// Std returns standards pages by slug.
func (idx *Index) Std() []Summary { return idx.Collection(content.CollectionStd) }

// All returns every summary in export order (docs, std, blog).
func (idx *Index) All() []Summary {
	var all []Summary
	for _, c := range content.Collections() {
		all = append(all, idx.Collection(c)...)
	}
	return all
}

// Lookup resolves a site path (without leading slash or ".md" suffix) to a
// summary. The path is matched against each collection's URL prefix, so
// "plan/hello" finds blog slug "hello" and "api/sync" finds the docs page.
// A trailing "/index" folds into its directory.
func (idx *Index) Lookup(path string) (Summary, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return Summary{}, content.ErrNotFound
	}
	if strings.HasSuffix(path, "/index") {
		path = strings.TrimSuffix(path, "/index")
	}

	// Longest prefixes first so "/std/" wins over the "/" docs prefix.
	colls := content.Collections()
	sort.SliceStable(colls, func(i, j int) bool {
		return len(idx.Options.Prefix(colls[i])) > len(idx.Options.Prefix(colls[j]))
	})

	for _, c := range colls {
		prefix := strings.Trim(idx.Options.Prefix(c), "/")
		slug := path
		if prefix != "" {
			if !strings.HasPrefix(path, prefix+"/") {
				continue
			}
			slug = strings.TrimPrefix(path, prefix+"/")
		}
		for _, s := range idx.Collection(c) {
			if s.Slug == slug {
				return s, nil
			}
		}
	}

	return Summary{}, fmt.Errorf("%s: %w", path, content.ErrNotFound)
}
