// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/export"
)

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// writeArtifact writes a rendered artifact with its content type and
// cache headers.
func writeArtifact(w http.ResponseWriter, a export.Artifact) {
	h := w.Header()
	h.Set(HeaderContentType, a.ContentType)
	if a.CacheControl != "" {
		h.Set(headerCacheControl, a.CacheControl)
	}
	if a.NoIndex {
		h.Set(headerRobotsTag, "noindex")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Body)
}

// writeExportError maps a render error to a response. Missing content is a
// plain 404; a missing OpenAPI document is a JSON 404; anything else is
// logged and answered with a generic 500.
func writeExportError(w http.ResponseWriter, r *http.Request, artifact string, err error) {
	switch {
	case errors.Is(err, export.ErrOpenAPIUnavailable):
		writeJSONError(w, http.StatusNotFound, "OpenAPI spec not available")
	case errors.Is(err, content.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	default:
		logAndInternalError(w, "failed to render artifact",
			"artifact", artifact,
			"path", r.URL.Path,
			"kind", export.ErrorKind(err),
			"error", err,
		)
	}
}
