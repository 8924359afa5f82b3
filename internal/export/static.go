// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/seo"
	"github.com/weyl-ai/weyl-website/internal/site"
)

// ErrOpenAPIUnavailable is returned when no OpenAPI document is configured
// or the configured file does not exist.
var ErrOpenAPIUnavailable = fmt.Errorf("OpenAPI spec not available: %w", content.ErrNotFound)

// StaticDoc renders a profile document such as "agents.md" with its
// placeholders filled in.
func (e *Exporter) StaticDoc(_ context.Context, name string) (a Artifact, err error) {
	defer observe(name, time.Now(), &err)

	text, err := e.profile.Document(name)
	if err != nil {
		if errors.Is(err, site.ErrUnknownDocument) {
			return Artifact{}, fmt.Errorf("%w: %w", content.ErrNotFound, err)
		}
		return Artifact{}, err
	}

	return Artifact{
		Body:         []byte(e.profile.Expand(text, e.now())),
		ContentType:  ContentTypeMarkdown,
		CacheControl: e.cacheControl(),
	}, nil
}

// AIPlugin renders /.well-known/ai-plugin.json.
func (e *Exporter) AIPlugin(_ context.Context) (a Artifact, err error) {
	defer observe("ai-plugin.json", time.Now(), &err)

	manifest := e.profile.Plugin
	manifest.API.URL = e.profile.AbsURL(manifest.API.URL)
	manifest.LogoURL = e.profile.AbsURL(manifest.LogoURL)
	manifest.LegalInfoURL = e.profile.AbsURL(manifest.LegalInfoURL)

	body, err := marshalJSON(manifest)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Body:         body,
		ContentType:  ContentTypeJSON,
		CacheControl: e.longCacheControl(),
	}, nil
}

// OpenAPI renders the configured OpenAPI document as JSON. YAML and JSON
// sources are both accepted.
func (e *Exporter) OpenAPI(_ context.Context) (a Artifact, err error) {
	defer observe("openapi.json", time.Now(), &err)

	if e.opts.OpenAPIPath == "" {
		return Artifact{}, ErrOpenAPIUnavailable
	}
	data, err := os.ReadFile(e.opts.OpenAPIPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Artifact{}, ErrOpenAPIUnavailable
		}
		return Artifact{}, fmt.Errorf("reading OpenAPI document: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Artifact{}, fmt.Errorf("parsing OpenAPI document: %w", err)
	}
	body, err := marshalJSON(jsonCompatible(doc))
	if err != nil {
		return Artifact{}, fmt.Errorf("encoding OpenAPI document: %w", err)
	}

	return Artifact{
		Body:         body,
		ContentType:  ContentTypeJSON,
		CacheControl: e.cacheControl(),
	}, nil
}

// jsonCompatible converts YAML mappings with non-string keys (such as
// unquoted response codes) into string-keyed maps.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = jsonCompatible(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = jsonCompatible(val)
		}
		return t
	default:
		return v
	}
}

// Robots renders /robots.txt, pointing crawlers at both sitemaps.
func (e *Exporter) Robots(_ context.Context) (a Artifact, err error) {
	defer observe("robots.txt", time.Now(), &err)

	body := seo.NewRobotsBuilder(seo.RobotsConfig{
		SiteURL:       e.profile.BaseURL(),
		DisallowAll:   e.opts.DisallowAll,
		DisallowPaths: e.profile.Robots.Disallow,
		Sitemaps:      []string{"/sitemap.xml", "/ai-sitemap.xml"},
		LLMsPath:      "/llms.txt",
	}).Build()

	return Artifact{
		Body:         []byte(body),
		ContentType:  ContentTypeText,
		CacheControl: e.longCacheControl(),
	}, nil
}
