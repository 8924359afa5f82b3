// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/index"
	"github.com/weyl-ai/weyl-website/internal/metrics"
	"github.com/weyl-ai/weyl-website/internal/site"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func testDocuments() []content.Document {
	return []content.Document{
		{
			Collection: content.CollectionBlog, Slug: "january", Title: "January notes",
			Description: "Start of the year", PublishedAt: day(time.January, 1), NoIndex: true,
			Body: "short",
		},
		{
			Collection: content.CollectionBlog, Slug: "march", Title: "March release",
			Description: "FP4 on Blackwell", PublishedAt: day(time.March, 1), Tags: []string{"release", "gpu"},
			Body: strings.Repeat("m", 3500),
		},
		{
			Collection: content.CollectionBlog, Slug: "february", Title: `Tom & Jerry's "<Guide>"`,
			Description: "Cats & mice", PublishedAt: day(time.February, 1), Author: "Ada",
			Body: "Body of the february post that is long enough to pass the minimum body length for llms-full.txt output.",
		},
		{
			Collection: content.CollectionBlog, Slug: "secret-draft", Title: "Secret draft",
			Draft: true,
		},
		{
			Collection: content.CollectionDocs, Slug: "api/sync", Title: "Sync tier",
			Description: "Real-time generation", Category: "api",
			Body: "import { Callout } from '../components'\n\n## Dedicated capacity\n\n<Callout type=\"info\">\nHidden note\n</Callout>\n\nSync requests are served from reserved GPUs and return within one hundred milliseconds for most models.",
		},
		{
			Collection: content.CollectionDocs, Slug: "getting-started", Title: "Getting started",
			Description: "Get up and running", Body: "tiny",
		},
		{
			Collection: content.CollectionDocs, Slug: "internal/notes", Title: "Internal notes",
			Description: "Hidden from crawlers", NoIndex: true,
		},
		{
			Collection: content.CollectionDocs, Slug: "wip", Title: "Work in progress", Draft: true,
		},
		{
			Collection: content.CollectionStd, Slug: "nix/guides", Title: "Nix guides",
			Body: strings.Repeat("n", 2500),
		},
	}
}

func newTestExporter(t *testing.T, store content.Store, opts Options) *Exporter {
	t.Helper()
	profile, err := site.Default()
	if err != nil {
		t.Fatalf("site.Default() error = %v", err)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, profile, opts, logger)
}

func render(t *testing.T, fn func(context.Context) (Artifact, error)) string {
	t.Helper()
	a, err := fn(context.Background())
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	return string(a.Body)
}

func TestCanonicalURLsAgreeAcrossFormats(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})

	var idx JSONIndex
	if err := json.Unmarshal([]byte(render(t, e.JSONIndex)), &idx); err != nil {
		t.Fatalf("docs.json is not valid JSON: %v", err)
	}
	sitemap := render(t, e.Sitemap)
	rss := render(t, func(ctx context.Context) (Artifact, error) { return e.Feed(ctx, "/plan/rss.xml") })

	wantDocs := []string{
		"https://weyl.ai/api/sync/",
		"https://weyl.ai/getting-started/",
		"https://weyl.ai/internal/notes/",
	}
	if len(idx.Documentation) != len(wantDocs) {
		t.Fatalf("documentation has %d entries, want %d", len(idx.Documentation), len(wantDocs))
	}
	for i, p := range idx.Documentation {
		if p.URL != wantDocs[i] {
			t.Errorf("documentation[%d].url = %q, want %q", i, p.URL, wantDocs[i])
		}
		if p.Slug != "internal/notes" && !strings.Contains(sitemap, "<loc>"+p.URL+"</loc>") {
			t.Errorf("sitemap is missing %s", p.URL)
		}
	}

	for _, post := range idx.Blog {
		if !strings.Contains(rss, "<link>"+post.URL+"</link>") {
			t.Errorf("rss is missing link %s", post.URL)
		}
		if !strings.Contains(rss, "<guid>"+post.URL+"</guid>") {
			t.Errorf("rss is missing guid %s", post.URL)
		}
		if !strings.HasPrefix(post.URL, "https://weyl.ai/plan/") {
			t.Errorf("blog url = %q, want /plan/ prefix", post.URL)
		}
	}

	md, err := e.Markdown(context.Background(), "plan/march")
	if err != nil {
		t.Fatalf("Markdown(plan/march) error = %v", err)
	}
	if !strings.HasPrefix(string(md.Body), "# March release\n") {
		t.Errorf("Markdown(plan/march) = %q", md.Body)
	}
}

func TestDraftsExcludedEverywhere(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})

	artifacts := map[string]func(context.Context) (Artifact, error){
		"docs.json":      e.JSONIndex,
		"sitemap.xml":    e.Sitemap,
		"ai-sitemap.xml": e.AISitemap,
		"llms-full.txt":  e.LLMsFull,
		"rss": func(ctx context.Context) (Artifact, error) {
			return e.Feed(ctx, "/blog/rss.xml")
		},
	}
	for name, fn := range artifacts {
		body := render(t, fn)
		for _, draft := range []string{"secret-draft", "Secret draft", "Work in progress", "/wip/"} {
			if strings.Contains(body, draft) {
				t.Errorf("%s contains draft marker %q", name, draft)
			}
		}
	}

	for _, path := range []string{"plan/secret-draft", "wip"} {
		if _, err := e.Markdown(context.Background(), path); !errors.Is(err, content.ErrNotFound) {
			t.Errorf("Markdown(%q) error = %v, want ErrNotFound", path, err)
		}
	}
}

func TestSitemapAndFeedEscapeIdentically(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})

	const escaped = "Tom &amp; Jerry&apos;s &quot;&lt;Guide&gt;&quot;"

	aiSitemap := render(t, e.AISitemap)
	if !strings.Contains(aiSitemap, "<ai:title>"+escaped+"</ai:title>") {
		t.Errorf("ai-sitemap.xml does not contain escaped title:\n%s", aiSitemap)
	}
	rss := render(t, func(ctx context.Context) (Artifact, error) { return e.Feed(ctx, "/blog/rss.xml") })
	if !strings.Contains(rss, "<title>"+escaped+"</title>") {
		t.Errorf("rss does not contain escaped title:\n%s", rss)
	}
	if !strings.Contains(rss, "<description>Cats &amp; mice</description>") {
		t.Errorf("rss does not contain escaped description")
	}

	for name, body := range map[string]string{"ai-sitemap.xml": aiSitemap, "rss": rss} {
		var v any
		if err := xml.Unmarshal([]byte(body), &v); err != nil {
			t.Errorf("%s is not well-formed XML: %v", name, err)
		}
	}
}

func TestBlogOrderNewestFirst(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})

	rss := render(t, func(ctx context.Context) (Artifact, error) { return e.Feed(ctx, "/plan/rss.xml") })
	full := render(t, e.LLMsFull)

	order := []string{"/plan/march/", "/plan/february/", "/plan/january/"}
	for name, body := range map[string]string{"rss": rss, "llms-full.txt": full} {
		last := -1
		for _, u := range order {
			i := strings.Index(body, u)
			if i < 0 {
				t.Fatalf("%s is missing %s", name, u)
			}
			if i < last {
				t.Errorf("%s lists %s out of order", name, u)
			}
			last = i
		}
	}

	if !strings.Contains(rss, "<pubDate>Fri, 01 Mar 2024 00:00:00 +0000</pubDate>") {
		t.Errorf("rss pubDate is not RFC 1123Z")
	}
}

func TestMarkdownExport(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})

	a, err := e.Markdown(context.Background(), "api/sync")
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	got := string(a.Body)

	want := "# Sync tier\n\n> Real-time generation\n\n## Dedicated capacity\n\nSync requests are served"
	if !strings.HasPrefix(got, want) {
		t.Errorf("Markdown() =\n%s\nwant prefix\n%s", got, want)
	}
	for _, gone := range []string{"import", "Callout", "Hidden note"} {
		if strings.Contains(got, gone) {
			t.Errorf("Markdown() still contains %q", gone)
		}
	}
	if a.ContentType != ContentTypeMarkdown {
		t.Errorf("ContentType = %q, want %q", a.ContentType, ContentTypeMarkdown)
	}
	if !a.NoIndex {
		t.Error("Markdown artifact should be noindex")
	}
	if a.CacheControl != "public, max-age=3600" {
		t.Errorf("CacheControl = %q", a.CacheControl)
	}

	if _, err := e.Markdown(context.Background(), "api/missing"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("Markdown(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMarkdownMalformedBodyFallsBack(t *testing.T) {
	store := content.NewMemoryStore(content.Document{
		Collection: content.CollectionDocs, Slug: "broken", Title: "Broken",
		Body: "before <Callout>never closed",
	})
	e := newTestExporter(t, store, Options{})

	before := testutil.ToFloat64(metrics.ReducerFallbacks)
	a, err := e.Markdown(context.Background(), "broken")
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if !strings.Contains(string(a.Body), "before <Callout>never closed") {
		t.Errorf("Markdown() = %q, want unreduced body", a.Body)
	}
	if got := testutil.ToFloat64(metrics.ReducerFallbacks) - before; got != 1 {
		t.Errorf("reducer fallbacks delta = %v, want 1", got)
	}
}

func TestLLMsFullBodies(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})
	full := render(t, e.LLMsFull)

	if !strings.HasPrefix(full, "# Weyl - Complete Documentation\n\n> ") {
		t.Errorf("llms-full.txt header = %q", full[:60])
	}
	if !strings.Contains(full, "### API Reference\n\n#### Sync tier\n\n**URL**: https://weyl.ai/api/sync/\n") {
		t.Error("llms-full.txt is missing the grouped docs entry")
	}

	// std bodies are cut at 2000 characters.
	if !strings.Contains(full, strings.Repeat("n", 2000)+"\n\n[Content truncated - see full page]") {
		t.Error("std body not truncated with marker")
	}
	if strings.Contains(full, strings.Repeat("n", 2001)) {
		t.Error("std body exceeds the truncation limit")
	}

	// blog bodies are cut at 3000 characters.
	if !strings.Contains(full, strings.Repeat("m", 3000)+"\n\n[Content truncated - see full article]") {
		t.Error("blog body not truncated with marker")
	}

	// Bodies of 100 characters or fewer are omitted.
	for _, short := range []string{"\nshort\n", "\ntiny\n"} {
		if strings.Contains(full, short) {
			t.Errorf("llms-full.txt includes short body %q", short)
		}
	}

	if !strings.Contains(full, "**Author**: Ada\n") {
		t.Error("blog author missing")
	}
	if !strings.Contains(full, "**Author**: Weyl Team\n") {
		t.Error("default blog author missing")
	}
	if strings.Contains(full, "{{") {
		t.Error("llms-full.txt has unexpanded placeholders")
	}
	if !strings.Contains(full, "*Generated: 2024-06-01T12:00:00Z*") {
		t.Error("llms-full.txt is missing the generated stamp")
	}
}

func TestLLMsFullListsEveryDocument(t *testing.T) {
	docs := []content.Document{{
		Collection: content.CollectionDocs, Slug: "api/async", Title: "Async tier",
		Description: "Queued generation", Body: strings.Repeat("d", 3500),
	}}
	for i := 0; i < 25; i++ {
		slug := fmt.Sprintf("lang/page-%02d", i)
		docs = append(docs, content.Document{
			Collection: content.CollectionStd, Slug: slug, Title: slug,
			Body: strings.Repeat("s", 150),
		})
	}
	e := newTestExporter(t, content.NewMemoryStore(docs...), Options{})
	full := render(t, e.LLMsFull)

	for i := 0; i < 25; i++ {
		u := fmt.Sprintf("**URL**: https://weyl.ai/std/lang/page-%02d/\n", i)
		if !strings.Contains(full, u) {
			t.Errorf("llms-full.txt is missing %q", u)
		}
	}

	if !strings.Contains(full, strings.Repeat("d", 3000)+"\n\n[Content truncated - see full page]") {
		t.Error("docs body not truncated with marker")
	}
	if strings.Contains(full, strings.Repeat("d", 3001)) {
		t.Error("docs body exceeds the truncation limit")
	}
}

func TestNoIndexOnlyAffectsSitemaps(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})

	for name, fn := range map[string]func(context.Context) (Artifact, error){
		"sitemap.xml": e.Sitemap, "ai-sitemap.xml": e.AISitemap,
	} {
		body := render(t, fn)
		for _, u := range []string{"https://weyl.ai/plan/january/", "https://weyl.ai/internal/notes/"} {
			if strings.Contains(body, u) {
				t.Errorf("%s lists noindex page %s", name, u)
			}
		}
		if !strings.Contains(body, "<loc>https://weyl.ai/</loc>") {
			t.Errorf("%s is missing the homepage", name)
		}
	}

	rss := render(t, func(ctx context.Context) (Artifact, error) { return e.Feed(ctx, "/blog/rss.xml") })
	if !strings.Contains(rss, "https://weyl.ai/plan/january/") {
		t.Error("rss should list noindex blog posts")
	}
	if !strings.Contains(render(t, e.JSONIndex), "https://weyl.ai/internal/notes/") {
		t.Error("docs.json should list noindex docs pages")
	}
}

func TestSitemapPolicy(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})
	ai := render(t, e.AISitemap)

	for _, want := range []string{
		`xmlns:ai="https://weyl.ai/schemas/ai-sitemap/1.0"`,
		"<changefreq>daily</changefreq>\n    <priority>1.0</priority>",
		"<lastmod>2024-06-01T12:00:00Z</lastmod>\n    <changefreq>weekly</changefreq>\n    <priority>0.8</priority>",
		"<changefreq>weekly</changefreq>\n    <priority>0.7</priority>",
		"<lastmod>2024-03-01T00:00:00Z</lastmod>\n    <changefreq>monthly</changefreq>\n    <priority>0.6</priority>",
		"<ai:type>article</ai:type>",
		"<ai:type>documentation</ai:type>",
		"<ai:type>standard</ai:type>",
		"<ai:category>api</ai:category>",
		"<ai:tag>gpu</ai:tag>",
	} {
		if !strings.Contains(ai, want) {
			t.Errorf("ai-sitemap.xml is missing %q", want)
		}
	}

	plain := render(t, e.Sitemap)
	if strings.Contains(plain, "ai:metadata") {
		t.Error("sitemap.xml should not carry ai:metadata")
	}
}

func TestJSONIndexNeverNull(t *testing.T) {
	store := content.NewMemoryStore(content.Document{
		Collection: content.CollectionDocs, Slug: "bare", Title: "Bare page",
	})
	e := newTestExporter(t, store, Options{})
	body := render(t, e.JSONIndex)

	if strings.Contains(body, "null") {
		t.Errorf("docs.json contains null:\n%s", body)
	}
	for _, want := range []string{
		`"standards": []`,
		`"blog": []`,
		`"tags": []`,
		`"outline": []`,
		`"category": "general"`,
		`"llms_txt": "https://weyl.ai/llms.txt"`,
		`"updated": "2024-06-01T12:00:00Z"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("docs.json is missing %s", want)
		}
	}
}

func TestUnavailableStore(t *testing.T) {
	store := content.NewMemoryStore(testDocuments()...)
	store.SetError(errors.New("disk gone"))
	e := newTestExporter(t, store, Options{})

	_, err := e.Sitemap(context.Background())
	if !errors.Is(err, content.ErrUnavailable) {
		t.Fatalf("Sitemap() error = %v, want ErrUnavailable", err)
	}
	if got := ErrorKind(err); got != "unavailable" {
		t.Errorf("ErrorKind() = %q, want unavailable", got)
	}
	if _, err := e.LLMsText(context.Background()); err != nil {
		t.Errorf("LLMsText() should not read the store, got %v", err)
	}
}

func TestMixedCaseSlugNeverPublished(t *testing.T) {
	store := content.NewMemoryStore(content.Document{
		Collection: content.CollectionDocs, Slug: "API-Guide", Title: "API guide",
	})

	e := newTestExporter(t, store, Options{})
	_, err := e.Sitemap(context.Background())
	if !errors.Is(err, content.ErrInvalidField) {
		t.Fatalf("Sitemap() error = %v, want ErrInvalidField", err)
	}

	e = newTestExporter(t, store, Options{Index: index.Options{SkipInvalid: true}})
	body := render(t, e.Sitemap)
	if strings.Contains(body, "API-Guide") {
		t.Errorf("sitemap publishes unservable slug: %q", body)
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{content.ErrNotFound, "not_found"},
		{ErrOpenAPIUnavailable, "not_found"},
		{content.ErrMissingField, "invalid_content"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestLLMsText(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(), Options{})
	a, err := e.LLMsText(context.Background())
	if err != nil {
		t.Fatalf("LLMsText() error = %v", err)
	}
	got := string(a.Body)

	for _, want := range []string{
		"# Weyl\n\n> Weyl is purpose-built inference infrastructure",
		"## What We Do\n\n- **Inference API**",
		"- Homepage: https://weyl.ai\n",
		"- Blog: https://weyl.ai/plan/\n",
		"### API Reference\n\n- [API Overview](https://weyl.ai/api/): Generative media at the speed of thought\n",
		"- [Hallway Hypothesis](https://weyl.ai/papers/hallway-hypothesis.pdf)\n",
		"For expanded content including full page text, see: https://weyl.ai/llms-full.txt",
		"- Email: info@weyl.ai\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("llms.txt is missing %q", want)
		}
	}
	if a.ContentType != ContentTypeText || !a.NoIndex {
		t.Errorf("artifact = %q noindex=%v", a.ContentType, a.NoIndex)
	}
}

func TestStaticDocuments(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(), Options{})

	a, err := e.StaticDoc(context.Background(), "agents.md")
	if err != nil {
		t.Fatalf("StaticDoc() error = %v", err)
	}
	body := string(a.Body)
	if !strings.HasPrefix(body, "# Weyl AI - Agent Instructions") {
		t.Errorf("agents.md = %q", body[:40])
	}
	if strings.Contains(body, "{{") {
		t.Error("agents.md has unexpanded placeholders")
	}

	if _, err := e.StaticDoc(context.Background(), "nope.md"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("StaticDoc(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestAIPlugin(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(), Options{})
	a, err := e.AIPlugin(context.Background())
	if err != nil {
		t.Fatalf("AIPlugin() error = %v", err)
	}

	var manifest site.Plugin
	if err := json.Unmarshal(a.Body, &manifest); err != nil {
		t.Fatalf("ai-plugin.json is not valid JSON: %v", err)
	}
	if manifest.API.URL != "https://weyl.ai/openapi.json" {
		t.Errorf("api.url = %q", manifest.API.URL)
	}
	if manifest.LogoURL != "https://weyl.ai/weyl-logo.svg" {
		t.Errorf("logo_url = %q", manifest.LogoURL)
	}
	if a.CacheControl != "public, max-age=86400" {
		t.Errorf("CacheControl = %q", a.CacheControl)
	}
}

func TestOpenAPI(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		e := newTestExporter(t, content.NewMemoryStore(), Options{})
		_, err := e.OpenAPI(context.Background())
		if !errors.Is(err, ErrOpenAPIUnavailable) || !errors.Is(err, content.ErrNotFound) {
			t.Errorf("OpenAPI() error = %v, want ErrOpenAPIUnavailable", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		e := newTestExporter(t, content.NewMemoryStore(), Options{
			OpenAPIPath: filepath.Join(t.TempDir(), "openapi.yaml"),
		})
		if _, err := e.OpenAPI(context.Background()); !errors.Is(err, content.ErrNotFound) {
			t.Errorf("OpenAPI() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("yaml converted to json", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "openapi.yaml")
		src := "openapi: 3.0.0\ninfo:\n  title: Weyl API\npaths:\n  /v1/images:\n    post:\n      responses:\n        200:\n          description: OK\n"
		if err := os.WriteFile(file, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		e := newTestExporter(t, content.NewMemoryStore(), Options{OpenAPIPath: file})

		a, err := e.OpenAPI(context.Background())
		if err != nil {
			t.Fatalf("OpenAPI() error = %v", err)
		}
		var doc map[string]any
		if err := json.Unmarshal(a.Body, &doc); err != nil {
			t.Fatalf("openapi.json is not valid JSON: %v", err)
		}
		if doc["openapi"] != "3.0.0" {
			t.Errorf("openapi = %v", doc["openapi"])
		}
		if !strings.Contains(string(a.Body), `"200": {`) {
			t.Errorf("response code key not stringified:\n%s", a.Body)
		}
	})
}

func TestRobots(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(), Options{})
	got := render(t, e.Robots)
	for _, want := range []string{
		"User-agent: *\nDisallow: /api/og/\nAllow: /\n",
		"Sitemap: https://weyl.ai/sitemap.xml\n",
		"Sitemap: https://weyl.ai/ai-sitemap.xml\n",
		"# LLM-readable site summary: https://weyl.ai/llms.txt\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("robots.txt is missing %q", want)
		}
	}

	staging := newTestExporter(t, content.NewMemoryStore(), Options{DisallowAll: true})
	if got := render(t, staging.Robots); got != "User-agent: *\nDisallow: /\n" {
		t.Errorf("staging robots.txt = %q", got)
	}
}

func TestFeedUnknownRoute(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(), Options{})
	if _, err := e.Feed(context.Background(), "/nope/rss.xml"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("Feed(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestWriteAll(t *testing.T) {
	e := newTestExporter(t, content.NewMemoryStore(testDocuments()...), Options{})
	dir := filepath.Join(t.TempDir(), "public")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "stale.txt")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	before := testutil.ToFloat64(metrics.ExportRuns.WithLabelValues("success"))
	res, err := e.WriteAll(context.Background(), dir)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if got := testutil.ToFloat64(metrics.ExportRuns.WithLabelValues("success")) - before; got != 1 {
		t.Errorf("export runs delta = %v, want 1", got)
	}

	for _, name := range []string{
		"api/sync.md",
		"getting-started.md",
		"internal/notes.md",
		"std/nix/guides.md",
		"plan/march.md",
		"plan/february.md",
		"plan/january.md",
		"docs.json",
		"sitemap.xml",
		"ai-sitemap.xml",
		"llms.txt",
		"llms-full.txt",
		"blog/rss.xml",
		"plan/rss.xml",
		"agents.md",
		"context.md",
		"robots.txt",
		".well-known/ai-plugin.json",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	for _, absent := range []string{"plan/secret-draft.md", "wip.md", "openapi.json", "stale.txt"} {
		if _, err := os.Stat(filepath.Join(dir, absent)); !os.IsNotExist(err) {
			t.Errorf("%s should not exist, stat error = %v", absent, err)
		}
	}
	if res.Files != 18 {
		t.Errorf("Files = %d, want 18", res.Files)
	}

	md, err := os.ReadFile(filepath.Join(dir, "api/sync.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(md), "# Sync tier\n\n> Real-time generation\n") {
		t.Errorf("api/sync.md = %q", md)
	}

	entries, err := os.ReadDir(filepath.Dir(dir))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("staging directories left behind: %v", entries)
	}
}

func TestWriteAllFailureKeepsPreviousExport(t *testing.T) {
	store := content.NewMemoryStore(testDocuments()...)
	e := newTestExporter(t, store, Options{})
	dir := filepath.Join(t.TempDir(), "public")

	if _, err := e.WriteAll(context.Background(), dir); err != nil {
		t.Fatalf("first WriteAll() error = %v", err)
	}

	store.SetError(errors.New("disk gone"))
	if _, err := e.WriteAll(context.Background(), dir); !errors.Is(err, content.ErrUnavailable) {
		t.Fatalf("WriteAll() error = %v, want ErrUnavailable", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "docs.json")); err != nil {
		t.Errorf("previous export was removed: %v", err)
	}
}
