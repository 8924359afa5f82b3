// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/store"
)

// FixedNow is the clock used by exporter tests.
var FixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a logger that discards everything.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary content database with migrations applied.
// It is closed when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SampleDocuments returns a small corpus covering every collection: three
// blog posts in non-chronological order, a draft, and docs and std pages.
func SampleDocuments() []content.Document {
	day := func(m time.Month) time.Time { return time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC) }
	return []content.Document{
		{Collection: content.CollectionBlog, Slug: "january", Title: "January", Description: "Jan post", PublishedAt: day(time.January)},
		{Collection: content.CollectionBlog, Slug: "march", Title: "March", Description: "Mar post", PublishedAt: day(time.March), Tags: []string{"release"}},
		{Collection: content.CollectionBlog, Slug: "february", Title: "February", Description: "Feb post", PublishedAt: day(time.February)},
		{Collection: content.CollectionBlog, Slug: "draft-post", Title: "Draft", Description: "Not yet", PublishedAt: day(time.April), Draft: true},
		{Collection: content.CollectionDocs, Slug: "api/sync", Title: "Sync tier", Description: "Real-time generation", Category: "api",
			Body: "## Requests\n\nSend a POST request.\n\n<Callout>internal</Callout>"},
		{Collection: content.CollectionDocs, Slug: "getting-started", Title: "Getting started", Description: "First steps"},
		{Collection: content.CollectionStd, Slug: "nix/guides", Title: "Nix guides", Description: "Nix tutorials"},
	}
}

// SeedDB writes docs into a migrated database.
func SeedDB(t *testing.T, db *sql.DB, docs ...content.Document) {
	t.Helper()

	src := content.NewMemoryStore(docs...)
	if _, err := store.NewDocumentStore(db).Import(context.Background(), src); err != nil {
		t.Fatalf("seeding database: %v", err)
	}
}
