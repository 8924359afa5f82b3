// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store. It backs tests and the profile-only
// mode where no content directory is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[Collection][]Document
	err  error
}

// NewMemoryStore creates a store seeded with docs.
func NewMemoryStore(docs ...Document) *MemoryStore {
	s := &MemoryStore{docs: make(map[Collection][]Document)}
	for _, d := range docs {
		s.docs[d.Collection] = append(s.docs[d.Collection], d)
	}
	return s
}

// Add appends a document to its collection.
func (s *MemoryStore) Add(d Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.Collection] = append(s.docs[d.Collection], d)
}

// SetError makes every subsequent read fail with err wrapped in ErrUnavailable.
// Passing nil restores normal reads.
func (s *MemoryStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, c Collection) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, s.err)
	}
	docs, ok := s.docs[c]
	if !ok {
		return nil, fmt.Errorf("%s: %w", c, ErrCollectionNotFound)
	}
	out := make([]Document, len(docs))
	copy(out, docs)
	return out, nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, c Collection, slug string) (Document, error) {
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
