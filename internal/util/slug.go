// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose helpers: slug generation and
// validation with Unicode normalization, safe path joins, and nullable
// column conversions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex matches non-alphanumeric characters (except hyphens)
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// whitespaceRun matches runs of whitespace
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Slugify converts a string to a URL-friendly slug.
// It converts to lowercase, removes accents, replaces whitespace with hyphens,
// and removes all non-alphanumeric characters except hyphens.
func Slugify(s string) string {
	// Decompose accents and drop the combining marks
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidContentPath checks a path-like slug such as "api/sync" or
// "std/nix/guides": one or more valid segments joined by single slashes.
// Segments may also contain underscores and dots as long as they are not
// "." or "..".
func IsValidContentPath(s string) bool {
	if s == "" || strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/") {
		return false
	}
	for _, seg := range strings.Split(s, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
		for _, r := range seg {
			if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.') {
				return false
			}
		}
	}
	return true
}
