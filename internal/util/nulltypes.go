// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"time"
)

// NullTimeFromPtr converts a pointer to time.Time into sql.NullTime.
// Nil and zero times become an invalid NullTime.
func NullTimeFromPtr(ptr *time.Time) sql.NullTime {
	if ptr == nil || ptr.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *ptr, Valid: true}
}

// TimePtrFromNull converts sql.NullTime back into a pointer, nil when invalid.
func TimePtrFromNull(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// NullStringFromValue creates a sql.NullString from a string value.
// Returns a valid NullString if the string is non-empty, otherwise returns an invalid one.
func NullStringFromValue(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
