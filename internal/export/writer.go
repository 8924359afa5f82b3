// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/weyl-ai/weyl-website/internal/index"
	"github.com/weyl-ai/weyl-website/internal/metrics"
	"github.com/weyl-ai/weyl-website/internal/util"
)

// WriteResult summarises one static export run.
type WriteResult struct {
	Dir   string
	Files int
}

// WriteAll renders every artifact into dir. Files are written to a sibling
// temporary directory first and moved into place only when every render
// succeeded, so a failed run leaves the previous export untouched.
func (e *Exporter) WriteAll(ctx context.Context, dir string) (res WriteResult, err error) {
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.ExportRuns.WithLabelValues(result).Inc()
	}()

	dir = filepath.Clean(dir)
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return WriteResult{}, fmt.Errorf("creating export parent: %w", err)
	}
	tmp, err := os.MkdirTemp(filepath.Dir(dir), "."+filepath.Base(dir)+"-*")
	if err != nil {
		return WriteResult{}, fmt.Errorf("creating export staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }()
	if err := os.Chmod(tmp, 0o755); err != nil {
		return WriteResult{}, fmt.Errorf("creating export staging dir: %w", err)
	}

	w := &treeWriter{root: tmp}
	if err := e.writeArtifacts(ctx, w); err != nil {
		return WriteResult{}, err
	}
	if err := replaceDir(tmp, dir); err != nil {
		return WriteResult{}, err
	}

	e.logger.Info("static export written", "dir", dir, "files", w.files)
	return WriteResult{Dir: dir, Files: w.files}, nil
}

func (e *Exporter) writeArtifacts(ctx context.Context, w *treeWriter) error {
	idx, err := e.Load(ctx)
	if err != nil {
		return err
	}

	for _, s := range idx.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		file, err := util.FileForSlug(w.root, sitePath(idx, s), ".md")
		if err != nil {
			return fmt.Errorf("%s/%s: %w", s.Collection, s.Slug, err)
		}
		if err := w.writeFile(file, []byte(e.renderMarkdown(s))); err != nil {
			return err
		}
	}

	named := []struct {
		name   string
		render func(context.Context) (Artifact, error)
	}{
		{"docs.json", e.JSONIndex},
		{"sitemap.xml", e.Sitemap},
		{"ai-sitemap.xml", e.AISitemap},
		{"llms.txt", e.LLMsText},
		{"llms-full.txt", e.LLMsFull},
		{".well-known/ai-plugin.json", e.AIPlugin},
		{"robots.txt", e.Robots},
	}
	for _, n := range named {
		a, err := n.render(ctx)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", n.name, err)
		}
		if err := w.write(n.name, a.Body); err != nil {
			return err
		}
	}

	for _, f := range e.profile.Feeds {
		a, err := e.Feed(ctx, f.Path)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", f.Path, err)
		}
		if err := w.write(f.Path, a.Body); err != nil {
			return err
		}
	}

	for _, name := range e.profile.DocumentNames() {
		a, err := e.StaticDoc(ctx, name)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		if err := w.write(name, a.Body); err != nil {
			return err
		}
	}

	a, err := e.OpenAPI(ctx)
	switch {
	case errors.Is(err, ErrOpenAPIUnavailable):
		e.logger.Debug("no OpenAPI document, skipping openapi.json")
	case err != nil:
		return fmt.Errorf("rendering openapi.json: %w", err)
	default:
		if err := w.write("openapi.json", a.Body); err != nil {
			return err
		}
	}

	return nil
}

// sitePath is the URL path of s without slashes, e.g. "plan/hello".
func sitePath(idx *index.Index, s index.Summary) string {
	prefix := strings.Trim(idx.Options.Prefix(s.Collection), "/")
	if prefix == "" {
		return s.Slug
	}
	return prefix + "/" + s.Slug
}

type treeWriter struct {
	root  string
	files int
}

func (w *treeWriter) write(name string, body []byte) error {
	file, err := util.SafeJoinPath(w.root, strings.TrimPrefix(name, "/"))
	if err != nil {
		return err
	}
	return w.writeFile(file, body)
}

func (w *treeWriter) writeFile(file string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(file), err)
	}
	if err := os.WriteFile(file, body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	w.files++
	return nil
}

// replaceDir moves src to dst, replacing any previous dst.
func replaceDir(src, dst string) error {
	old := ""
	if _, err := os.Stat(dst); err == nil {
		old = dst + ".old"
		_ = os.RemoveAll(old)
		if err := os.Rename(dst, old); err != nil {
			return fmt.Errorf("moving previous export aside: %w", err)
		}
	}
	if err := os.Rename(src, dst); err != nil {
		if old != "" {
			_ = os.Rename(old, dst)
		}
		return fmt.Errorf("moving export into place: %w", err)
	}
	if old != "" {
		_ = os.RemoveAll(old)
	}
	return nil
}
