// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weyl-ai/weyl-website/internal/export"
)

type renderFunc func(ctx context.Context) (export.Artifact, error)

// ExportHandler serves the rendered artifacts of an exporter.
type ExportHandler struct {
	exporter *export.Exporter
}

// NewExportHandler creates a new export handler.
func NewExportHandler(exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Routes registers every artifact route on r. Feed and static document
// routes come from the site profile. Any other path ending in ".md" is
// served as the Markdown rendition of a page.
func (h *ExportHandler) Routes(r chi.Router) {
	e := h.exporter

	r.Get(RouteDocsJSON, h.serve("docs.json", e.JSONIndex))
	r.Get(RouteSitemap, h.serve("sitemap.xml", e.Sitemap))
	r.Get(RouteAISitemap, h.serve("ai-sitemap.xml", e.AISitemap))
	r.Get(RouteLLMs, h.serve("llms.txt", e.LLMsText))
	r.Get(RouteLLMsFull, h.serve("llms-full.txt", e.LLMsFull))
	r.Get(RouteAIPlugin, h.serve("ai-plugin.json", e.AIPlugin))
	r.Get(RouteOpenAPI, h.serve("openapi.json", e.OpenAPI))
	r.Get(RouteRobots, h.serve("robots.txt", e.Robots))

	profile := e.Profile()
	for _, f := range profile.Feeds {
		route := f.Path
		r.Get(route, h.serve(route, func(ctx context.Context) (export.Artifact, error) {
			return e.Feed(ctx, route)
		}))
	}
	for _, name := range profile.DocumentNames() {
		r.Get(RouteRoot+name, h.serve(name, func(ctx context.Context) (export.Artifact, error) {
			return e.StaticDoc(ctx, name)
		}))
	}

	r.Get(RouteCatchAll, h.Markdown)
}

// Markdown handles GET /{slug}.md.
func (h *ExportHandler) Markdown(w http.ResponseWriter, r *http.Request) {
	p := chi.URLParam(r, "*")
	if p == "" {
		p = strings.TrimPrefix(r.URL.Path, RouteRoot)
	}
	if !strings.HasSuffix(p, MarkdownSuffix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	a, err := h.exporter.Markdown(r.Context(), strings.TrimSuffix(p, MarkdownSuffix))
	if err != nil {
		writeExportError(w, r, "markdown", err)
		return
	}
	writeArtifact(w, a)
}

func (h *ExportHandler) serve(name string, render renderFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := render(r.Context())
		if err != nil {
			writeExportError(w, r, name, err)
			return
		}
		writeArtifact(w, a)
	}
}
