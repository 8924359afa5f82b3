// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content defines the document model shared by every export format
// and the read-only Store interface the exporters consume.
package content

import (
	"context"
	"time"
)

// Collection names a set of documents sharing one schema.
type Collection string

// Known collections.
const (
	CollectionBlog Collection = "blog"
	CollectionDocs Collection = "docs"
	CollectionStd  Collection = "std"
)

// DefaultCategory is used for docs and standards pages without a category.
const DefaultCategory = "general"

// Collections returns every known collection in export order.
func Collections() []Collection {
	return []Collection{CollectionDocs, CollectionStd, CollectionBlog}
}

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	switch c {
	case CollectionBlog, CollectionDocs, CollectionStd:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (c Collection) String() string {
	return string(c)
}

// Document is a raw record as read from a Store, before indexing.
type Document struct {
	Collection  Collection
	Slug        string
	Title       string
	Description string
	Body        string
	PublishedAt time.Time  // Required for blog posts
	UpdatedAt   *time.Time // Optional revision timestamp
	Tags        []string
	Draft       bool
	Category    string
	Author      string
	NoIndex     bool // Excluded from sitemaps only
}

// LastModified returns UpdatedAt when set, PublishedAt otherwise.
func (d Document) LastModified() time.Time {
	if d.UpdatedAt != nil && !d.UpdatedAt.IsZero() {
		return *d.UpdatedAt
	}
	return d.PublishedAt
}

// Store is the read interface over a versioned content collection.
//
// List returns documents in storage order, drafts included. Get returns
// ErrNotFound when no document in the collection has the slug.
type Store interface {
	List(ctx context.Context, c Collection) ([]Document, error)
	Get(ctx context.Context, c Collection, slug string) (Document, error)
}
