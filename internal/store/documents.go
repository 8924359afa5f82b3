// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/util"
)

// DocumentStore implements content.Store over the documents table.
type DocumentStore struct {
	db      *sql.DB
	queries *Queries
}

// NewDocumentStore creates a store over a migrated database.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db, queries: New(db)}
}

// List implements content.Store. A known collection without rows is empty,
// not missing.
func (s *DocumentStore) List(ctx context.Context, c content.Collection) ([]content.Document, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%s: %w", c, content.ErrCollectionNotFound)
	}

	rows, err := s.queries.ListDocuments(ctx, string(c))
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", content.ErrUnavailable, c, err)
	}

	docs := make([]content.Document, 0, len(rows))
	for _, row := range rows {
		d, err := documentFromRow(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Get implements content.Store.
func (s *DocumentStore) Get(ctx context.Context, c content.Collection, slug string) (content.Document, error) {
	if !c.Valid() {
		return content.Document{}, fmt.Errorf("%s: %w", c, content.ErrCollectionNotFound)
	}

	row, err := s.queries.GetDocument(ctx, string(c), slug)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Document{}, fmt.Errorf("%s/%s: %w", c, slug, content.ErrNotFound)
	}
	if err != nil {
		return content.Document{}, fmt.Errorf("%w: reading %s/%s: %w", content.ErrUnavailable, c, slug, err)
	}
	return documentFromRow(row)
}

// ImportResult reports what an Import changed.
type ImportResult struct {
	Written int // documents inserted or replaced
	Removed int // rows dropped because src no longer has them
}

// Import mirrors src into the database in one transaction. Every document
// of src is upserted and rows of the same collections that src no longer
// has are removed. Collections src does not have are left untouched.
func (s *DocumentStore) Import(ctx context.Context, src content.Store) (ImportResult, error) {
	var res ImportResult

	batches := make(map[content.Collection][]DocumentRow)
	for _, c := range content.Collections() {
		docs, err := src.List(ctx, c)
		if errors.Is(err, content.ErrCollectionNotFound) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", c, err)
		}
		rows := make([]DocumentRow, 0, len(docs))
		for _, d := range docs {
			row, err := rowFromDocument(d)
			if err != nil {
				return res, err
			}
			rows = append(rows, row)
		}
		batches[c] = rows
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("beginning import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.queries.WithTx(tx)
	now := time.Now().UTC()
	for _, c := range content.Collections() {
		rows, ok := batches[c]
		if !ok {
			continue
		}

		keep := make(map[string]bool, len(rows))
		for _, row := range rows {
			if err := q.UpsertDocument(ctx, row, now); err != nil {
				return ImportResult{}, fmt.Errorf("importing %s/%s: %w", row.Collection, row.Slug, err)
			}
			keep[row.Slug] = true
		}

		existing, err := q.ListDocuments(ctx, string(c))
		if err != nil {
			return ImportResult{}, fmt.Errorf("listing %s: %w", c, err)
		}
		for _, row := range existing {
			if keep[row.Slug] {
				continue
			}
			if _, err := q.DeleteDocument(ctx, row.Collection, row.Slug); err != nil {
				return ImportResult{}, fmt.Errorf("removing %s/%s: %w", row.Collection, row.Slug, err)
			}
			res.Removed++
		}
		res.Written += len(rows)
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("committing import: %w", err)
	}
	return res, nil
}

func rowFromDocument(d content.Document) (DocumentRow, error) {
	if !d.Collection.Valid() {
		return DocumentRow{}, fmt.Errorf("%w: unknown collection %q", content.ErrInvalidField, d.Collection)
	}
	if strings.TrimSpace(d.Slug) == "" {
		return DocumentRow{}, fmt.Errorf("%s: slug: %w", d.Collection, content.ErrMissingField)
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return DocumentRow{}, fmt.Errorf("encoding tags: %w", err)
	}

	var published *time.Time
	if !d.PublishedAt.IsZero() {
		published = &d.PublishedAt
	}

	return DocumentRow{
		Collection:  string(d.Collection),
		Slug:        d.Slug,
		Title:       d.Title,
		Description: d.Description,
		Body:        d.Body,
		PublishedAt: util.NullTimeFromPtr(published),
		UpdatedAt:   util.NullTimeFromPtr(d.UpdatedAt),
		Tags:        string(tagsJSON),
		Draft:       d.Draft,
		Category:    util.NullStringFromValue(d.Category),
		Author:      util.NullStringFromValue(d.Author),
		NoIndex:     d.NoIndex,
	}, nil
}

func documentFromRow(row DocumentRow) (content.Document, error) {
	var tags []string
	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
			return content.Document{}, fmt.Errorf("%s/%s: tags: %w: %v", row.Collection, row.Slug, content.ErrInvalidField, err)
		}
	}

	d := content.Document{
		Collection:  content.Collection(row.Collection),
		Slug:        row.Slug,
		Title:       row.Title,
		Description: row.Description,
		Body:        row.Body,
		UpdatedAt:   util.TimePtrFromNull(row.UpdatedAt),
		Tags:        tags,
		Draft:       row.Draft,
		Category:    row.Category.String,
		Author:      row.Author.String,
		NoIndex:     row.NoIndex,
	}
	if row.PublishedAt.Valid {
		d.PublishedAt = row.PublishedAt.Time.UTC()
	}
	if d.UpdatedAt != nil {
		u := d.UpdatedAt.UTC()
		d.UpdatedAt = &u
	}
	return d, nil
}
