// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "errors"

var (
	// ErrNotFound is returned when a slug is absent from a collection.
	ErrNotFound = errors.New("content not found")

	// ErrMissingField is returned when a record lacks a required field.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is returned when a field violates its schema (e.g. length).
	ErrInvalidField = errors.New("invalid field")

	// ErrCollectionNotFound is returned when a store has no backing data for
	// a collection. Collection-wide exports render it as an empty section.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrUnavailable is returned when the store cannot be read at all.
	ErrUnavailable = errors.New("content store unavailable")
)
