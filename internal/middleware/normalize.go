// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"path"
	"strings"
)

// NormalizePath redirects (HTTP 301) to the canonical form of the request
// path: duplicate slashes collapsed, lowercased, and a trailing slash added
// to paths without a file extension. The query string is preserved.
// Only GET and HEAD requests are redirected.
func NormalizePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		p := r.URL.Path
		if canonical := CanonicalPath(p); canonical != p {
			newURL := canonical
			if r.URL.RawQuery != "" {
				newURL += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, newURL, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CanonicalPath applies the NormalizePath rules to p.
func CanonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	p = strings.ToLower(p)
	if p != "/" && !strings.HasSuffix(p, "/") && !hasFileExtension(p) {
		p += "/"
	}
	return p
}

// hasFileExtension reports whether the last path segment ends in an
// alphanumeric extension such as ".md" or ".xml".
func hasFileExtension(p string) bool {
	ext := path.Ext(p)
	if len(ext) < 2 {
		return false
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
