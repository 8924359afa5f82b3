// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePathWithinBase ensures that a resolved path is within the expected
// base directory. It cleans both paths and checks that the resolved path
// starts with the base path. Returns an error if path traversal is detected.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// Trailing separator keeps /export-malicious from matching /export
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: path escapes base directory")
	}

	return nil
}

// SafeJoinPath joins path components and validates the result is within
// the base directory. Returns the cleaned path or an error if traversal
// is detected.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	fullPath := filepath.Join(append([]string{basePath}, components...)...)

	if err := ValidatePathWithinBase(basePath, fullPath); err != nil {
		return "", err
	}

	return fullPath, nil
}

// FileForSlug maps a path-like slug ("api/sync") to a file under base
// ("<base>/api/sync.md" for ext ".md"). Slugs that would escape base are rejected.
func FileForSlug(base, slug, ext string) (string, error) {
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return "", fmt.Errorf("empty slug")
	}
	if ContainsPathTraversal(slug) {
		return "", fmt.Errorf("invalid slug %q: path traversal", slug)
	}
	parts := strings.Split(slug, "/")
	parts[len(parts)-1] += ext
	return SafeJoinPath(base, parts...)
}

// ContainsPathTraversal checks if a path contains traversal sequences.
// Returns true if the path contains ".." after cleaning.
func ContainsPathTraversal(path string) bool {
	cleaned := filepath.Clean(path)
	return strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, string(filepath.Separator)+"..")
}
