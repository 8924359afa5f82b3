// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package reduce turns marked-up document bodies (Markdown with embedded
// components) into plain narrative text for the text and Markdown exports.
package reduce

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed is returned when component tags are unbalanced or interleaved.
var ErrMalformed = errors.New("malformed component markup")

// MalformedError describes where component stripping gave up.
type MalformedError struct {
	Offset int    // Byte offset in the body after rule 1
	Tag    string // Offending tag name
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: <%s> at offset %d: %s", ErrMalformed, e.Tag, e.Offset, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

var (
	importExportLine = regexp.MustCompile(`(?m)^[ \t]*(?:import|export)\s.*$`)
	htmlComment      = regexp.MustCompile(`(?s)<!--.*?-->`)
	exprComment      = regexp.MustCompile(`(?s)\{/\*.*?\*/\}`)
	leadingMeta      = regexp.MustCompile(`(?s)\A\s*---[ \t]*\n.*?\n---[ \t]*(?:\n|\z)`)
	fenceLanguage    = regexp.MustCompile("(?m)^([ \\t]*```)[^`\\s][^\\n]*$")
	blankLineSpaces  = regexp.MustCompile(`(?m)^[ \t]+$`)
	extraNewlines    = regexp.MustCompile(`\n{3,}`)
)

// Reduce applies, in order:
//  1. drop import/export lines
//  2. drop component blocks (tags starting with an uppercase letter, paired or
//     self-closing, with everything nested inside)
//  3. drop comment blocks
//  4. drop a leading "---" delimited metadata block
//  5. strip the language tag from opening code fences
//  6. collapse three or more newlines to two
//  7. trim surrounding whitespace
//
// When component tags are malformed the original body is returned unchanged
// together with a *MalformedError; callers emit it as-is and log the warning.
func Reduce(body string) (string, error) {
	if body == "" {
		return "", nil
	}

	text := strings.ReplaceAll(body, "\r\n", "\n")
	text = importExportLine.ReplaceAllString(text, "")

	text, err := stripComponents(text)
	if err != nil {
		return body, err
	}

	text = htmlComment.ReplaceAllString(text, "")
	text = exprComment.ReplaceAllString(text, "")
	text = leadingMeta.ReplaceAllString(text, "")
	text = fenceLanguage.ReplaceAllString(text, "$1")
	text = blankLineSpaces.ReplaceAllString(text, "")
	text = extraNewlines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text), nil
}

// Truncate cuts s to at most limit runes and appends marker when it did.
// A non-positive limit disables truncation.
func Truncate(s string, limit int, marker string) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + marker
		}
		n++
	}
	return s
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return len([]rune(s))
}
