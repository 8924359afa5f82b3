// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestNewSitemapBuilder(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	if builder == nil {
		t.Fatal("NewSitemapBuilder() returned nil")
	}
	if builder.siteURL != "https://example.com" {
		t.Errorf("siteURL = %q, want %q", builder.siteURL, "https://example.com")
	}
	if builder.Len() != 0 {
		t.Errorf("Len() = %d, want 0", builder.Len())
	}
	if builder.ai {
		t.Error("NewSitemapBuilder() should not enable the ai extension")
	}
}

func TestSitemapBuilderAddHomepage(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddHomepage(time.Time{}, nil)

	if len(builder.urls) != 1 {
		t.Fatalf("urls length = %d, want 1", len(builder.urls))
	}

	url := builder.urls[0]
	if url.Loc.Raw != "https://example.com/" {
		t.Errorf("Loc = %q, want %q", url.Loc.Raw, "https://example.com/")
	}
	if url.Priority != "1.0" {
		t.Errorf("Priority = %q, want %q", url.Priority, "1.0")
	}
	if url.ChangeFreq != ChangeFreqDaily {
		t.Errorf("ChangeFreq = %q, want %q", url.ChangeFreq, ChangeFreqDaily)
	}
}

func TestSitemapBuilderAdd(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	updatedAt := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	builder.Add(SitemapEntry{
		Loc:        "https://example.com/about-us/",
		LastMod:    updatedAt,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
		Meta:       &EntryMeta{Title: "About"},
	})

	if len(builder.urls) != 1 {
		t.Fatalf("urls length = %d, want 1", len(builder.urls))
	}

	url := builder.urls[0]
	if url.Loc.Raw != "https://example.com/about-us/" {
		t.Errorf("Loc = %q, want %q", url.Loc.Raw, "https://example.com/about-us/")
	}
	if url.LastMod != "2025-01-15T10:00:00Z" {
		t.Errorf("LastMod = %q, want %q", url.LastMod, "2025-01-15T10:00:00Z")
	}
	if url.AI != nil {
		t.Error("standard sitemap should not carry ai:metadata")
	}
}

func TestSitemapBuilderLastModWithZeroTime(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.Add(SitemapEntry{Loc: "https://example.com/no-date/"})

	if builder.urls[0].LastMod != "" {
		t.Errorf("LastMod = %q, want empty string for zero time", builder.urls[0].LastMod)
	}
}

func TestSitemapBuilderBuild(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddHomepage(time.Time{}, nil)
	builder.Add(SitemapEntry{Loc: "https://example.com/about/", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"})

	out, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	content := string(out)

	if !strings.HasPrefix(content, "<?xml") {
		t.Error("Build() output should start with XML header")
	}
	if !strings.Contains(content, `xmlns="`+XMLNamespace+`"`) {
		t.Errorf("Build() output should contain namespace %q", XMLNamespace)
	}
	if strings.Contains(content, "xmlns:ai") {
		t.Error("standard sitemap should not declare the ai namespace")
	}
	if !strings.Contains(content, "<loc>https://example.com/about/</loc>") {
		t.Error("Build() output should contain about page URL")
	}

	// Output must be well-formed
	var parsed struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("Build() output is not valid XML: %v", err)
	}
	if len(parsed.URLs) != 2 {
		t.Errorf("parsed %d urls, want 2", len(parsed.URLs))
	}
}

func TestSitemapBuilderBuildEmpty(t *testing.T) {
	out, err := NewSitemapBuilder("https://example.com").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(string(out), "<urlset") {
		t.Error("Build() empty sitemap should still have urlset element")
	}
}

func TestAISitemapBuild(t *testing.T) {
	builder := NewAISitemapBuilder("https://example.com")
	builder.AddHomepage(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), &EntryMeta{
		Title:       "Home",
		Description: "Fast",
		Type:        "homepage",
	})
	builder.Add(SitemapEntry{
		Loc:        "https://example.com/plan/hello/",
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.6",
		Meta: &EntryMeta{
			Title:       `Tom & Jerry's "<Guide>"`,
			Description: "d",
			Type:        "article",
			Published:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Author:      "Ada",
			Tags:        []string{"a&b", "nix"},
		},
	})

	out, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	content := string(out)

	for _, want := range []string{
		`xmlns:ai="` + AINamespace + `"`,
		"<ai:type>homepage</ai:type>",
		"<ai:title>Tom &amp; Jerry&apos;s &quot;&lt;Guide&gt;&quot;</ai:title>",
		"<ai:published>2024-03-01T00:00:00Z</ai:published>",
		"<ai:author>Ada</ai:author>",
		"<ai:tag>a&amp;b</ai:tag>",
		"<ai:tag>nix</ai:tag>",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Build() output should contain %q\n%s", want, content)
		}
	}
	if strings.Contains(content, "<ai:category>") {
		t.Error("empty category should be omitted")
	}

	var parsed struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("Build() output is not valid XML: %v", err)
	}
}
