// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/weyl-ai/weyl-website/internal/util"
)

// contentExtensions lists the file extensions read as documents.
var contentExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
}

// dateLayouts are the accepted front matter date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FSStore reads collections from a directory tree laid out as
// <root>/<collection>/**/<name>.md(x), each file carrying YAML front matter.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{fsys: os.DirFS(dir)}
}

// NewFSStoreFS creates a store over an arbitrary file system.
func NewFSStoreFS(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// frontMatter mirrors the content schema of the site's collections.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Slug        string   `yaml:"slug"`
	PubDate     string   `yaml:"pubDate"`
	UpdatedDate string   `yaml:"updatedDate"`
	Author      string   `yaml:"author"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Category    string   `yaml:"category"`
	NoIndex     bool     `yaml:"noindex"`
}

// List implements Store.
func (s *FSStore) List(ctx context.Context, c Collection) ([]Document, error) {
	if _, err := fs.Stat(s.fsys, "."); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	dir := string(c)
	info, err := fs.Stat(s.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", c, ErrCollectionNotFound)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", c, ErrCollectionNotFound)
	}

	var docs []Document
	err = fs.WalkDir(s.fsys, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !contentExtensions[strings.ToLower(path.Ext(p))] {
			return nil
		}

		data, err := fs.ReadFile(s.fsys, p)
		if err != nil {
			return err
		}
		doc, err := parseDocument(c, strings.TrimPrefix(p, dir+"/"), data)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidField) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrUnavailable, c, err)
	}

	return docs, nil
}

// Get implements Store.
func (s *FSStore) Get(ctx context.Context, c Collection, slug string) (Document, error) {
	docs, err := s.List(ctx, c)
	if err != nil {
		return Document{}, err
	}
	for _, d := range docs {
		if d.Slug == slug {
			return d, nil
		}
	}
	return Document{}, fmt.Errorf("%s/%s: %w", c, slug, ErrNotFound)
}

// parseDocument builds a Document from a file's bytes. rel is the path
// relative to the collection directory.
func parseDocument(c Collection, rel string, data []byte) (Document, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return Document{}, fmt.Errorf("%s/%s: parse front matter: %w: %w", c, rel, ErrInvalidField, err)
	}

	doc := Document{
		Collection:  c,
		Slug:        fm.Slug,
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Body:        string(body),
		Tags:        fm.Tags,
		Draft:       fm.Draft,
		Category:    fm.Category,
		Author:      fm.Author,
		NoIndex:     fm.NoIndex,
	}
	if doc.Slug == "" {
		doc.Slug = SlugFromPath(rel)
	}

	if fm.PubDate != "" {
		t, err := parseDate(fm.PubDate)
		if err != nil {
			return Document{}, fmt.Errorf("%s/%s: pubDate: %w: %w", c, rel, ErrInvalidField, err)
		}
		doc.PublishedAt = t
	}
	if fm.UpdatedDate != "" {
		t, err := parseDate(fm.UpdatedDate)
		if err != nil {
			return Document{}, fmt.Errorf("%s/%s: updatedDate: %w: %w", c, rel, ErrInvalidField, err)
		}
		doc.UpdatedAt = &t
	}

	return doc, nil
}

// SlugFromPath derives a slug from a collection-relative file path:
// the extension is dropped, each segment is slugified, and a trailing
// "index" segment folds into its directory.
func SlugFromPath(rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	var segments []string
	for _, seg := range strings.Split(rel, "/") {
		if s := util.Slugify(seg); s != "" {
			segments = append(segments, s)
		}
	}
	if n := len(segments); n > 1 && segments[n-1] == "index" {
		segments = segments[:n-1]
	}
	return strings.Join(segments, "/")
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
