// Package seo builds the crawler-facing XML and text artifacts: sitemaps
// (standard and AI-extended), RSS feeds and robots.txt.
package seo

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// AINamespace is the namespace of the ai: sitemap extension.
const AINamespace = "https://weyl.ai/schemas/ai-sitemap/1.0"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        XMLText     `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq  `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	AI         *AIMetadata `xml:"ai:metadata,omitempty"`
}

// AIMetadata is the ai:metadata block of the AI sitemap.
type AIMetadata struct {
	Title       XMLText   `xml:"ai:title"`
	Description XMLText   `xml:"ai:description"`
	Type        string    `xml:"ai:type"`
	Category    *XMLText  `xml:"ai:category,omitempty"`
	Published   string    `xml:"ai:published,omitempty"`
	Author      *XMLText  `xml:"ai:author,omitempty"`
	Tags        []XMLText `xml:"ai:tag"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XMLNSAI string       `xml:"xmlns:ai,attr,omitempty"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapEntry contains data needed to add a URL to the sitemap.
type SitemapEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq ChangeFreq
	Priority   string
	Meta       *EntryMeta // rendered only by AI sitemaps
}

// EntryMeta is the descriptive metadata of an AI sitemap entry.
type EntryMeta struct {
	Title       string
	Description string
	Type        string // homepage, documentation, standard, article
	Category    string
	Published   time.Time
	Author      string
	Tags        []string
}

// SitemapBuilder builds sitemap XML.
type SitemapBuilder struct {
	siteURL string
	ai      bool
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for a standard sitemap.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		urls:    make([]SitemapURL, 0),
	}
}

// NewAISitemapBuilder creates a builder that also renders ai:metadata.
func NewAISitemapBuilder(siteURL string) *SitemapBuilder {
	b := NewSitemapBuilder(siteURL)
	b.ai = true
	return b
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage(lastMod time.Time, meta *EntryMeta) {
	b.Add(SitemapEntry{
		Loc:        b.siteURL + "/",
		LastMod:    lastMod,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
		Meta:       meta,
	})
}

// Add adds one entry to the sitemap.
func (b *SitemapBuilder) Add(e SitemapEntry) {
	url := SitemapURL{
		Loc:        Text(e.Loc),
		ChangeFreq: e.ChangeFreq,
		Priority:   e.Priority,
	}
	if !e.LastMod.IsZero() {
		url.LastMod = e.LastMod.UTC().Format(time.RFC3339)
	}
	if b.ai && e.Meta != nil {
		url.AI = aiMetadata(e.Meta)
	}
	b.urls = append(b.urls, url)
}

func aiMetadata(m *EntryMeta) *AIMetadata {
	md := &AIMetadata{
		Title:       Text(m.Title),
		Description: Text(m.Description),
		Type:        m.Type,
		Category:    OptionalText(m.Category),
		Author:      OptionalText(m.Author),
		Tags:        Texts(m.Tags),
	}
	if !m.Published.IsZero() {
		md.Published = m.Published.UTC().Format(time.RFC3339)
	}
	return md
}

// Len returns the number of URLs added so far.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}
	if b.ai {
		sitemap.XMLNSAI = AINamespace
	}

	// Add XML header
	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
