// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site loads the site profile: the hand-authored metadata, link
// lists and static documents that the export formats render alongside
// indexed content.
package site

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults
var defaultFS embed.FS

// DefaultProfileFile is the profile file name inside a profile directory.
const DefaultProfileFile = "profile.yaml"

// Placeholders expanded in profile text blocks.
const (
	PlaceholderSiteURL   = "{{site_url}}"
	PlaceholderDate      = "{{date}}"
	PlaceholderGenerated = "{{generated}}"
)

// ErrUnknownDocument is returned for a static document the profile does not list.
var ErrUnknownDocument = errors.New("unknown static document")

// Profile is the complete site profile.
type Profile struct {
	Site      Site              `yaml:"site"`
	LLMs      LLMs              `yaml:"llms"`
	Full      Full              `yaml:"full"`
	Feeds     []Feed            `yaml:"feeds"`
	Endpoints map[string]string `yaml:"endpoints"`
	Documents map[string]string `yaml:"documents"`
	Plugin    Plugin            `yaml:"plugin"`
	Robots    Robots            `yaml:"robots"`

	// texts holds file-backed blocks (documents, preamble, appendix)
	// keyed by their profile-relative file name.
	texts map[string]string
}

// Site describes the site itself.
type Site struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Author      string `yaml:"author"`
	Email       string `yaml:"email"`
	Home        Page   `yaml:"home"`
}

// Page is a title/description pair for a non-collection page.
type Page struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// LLMs is the short-form llms.txt document.
type LLMs struct {
	Title    string    `yaml:"title"`
	Summary  string    `yaml:"summary"`
	About    string    `yaml:"about"`
	Sections []Section `yaml:"sections"`
}

// Section is one headed block of llms.txt.
type Section struct {
	Title       string    `yaml:"title"`
	Body        string    `yaml:"body"`
	Items       []string  `yaml:"items"`
	Links       []Link    `yaml:"links"`
	Subsections []Section `yaml:"subsections"`
}

// Link is a list entry. Plain links render as "Title: URL", the rest as
// "[Title](URL): Description".
type Link struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Plain       bool   `yaml:"plain"`
}

// Full configures llms-full.txt.
type Full struct {
	Title      string            `yaml:"title"`
	Preamble   string            `yaml:"preamble"`  // file
	Interlude  string            `yaml:"interlude"` // file, rendered after docs
	Appendix   string            `yaml:"appendix"`  // file
	MinBody    int               `yaml:"min_body"`
	Docs       FullSection       `yaml:"docs"`
	Std        FullSection       `yaml:"std"`
	Blog       FullSection       `yaml:"blog"`
	Categories map[string]string `yaml:"categories"`
}

// FullSection configures one collection section of llms-full.txt. Every
// document of the collection is listed.
type FullSection struct {
	Heading  string `yaml:"heading"`
	Intro    string `yaml:"intro"`
	Truncate int    `yaml:"truncate"` // max body characters, 0 for no limit
	Marker   string `yaml:"marker"`
}

// Feed describes one RSS channel over the blog collection.
type Feed struct {
	Path        string `yaml:"path"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
	Language    string `yaml:"language"`
	Copyright   string `yaml:"copyright"`
	Editor      string `yaml:"editor"`
	TTL         int    `yaml:"ttl"`
}

// Plugin is the /.well-known/ai-plugin.json manifest.
type Plugin struct {
	SchemaVersion       string     `yaml:"schema_version" json:"schema_version"`
	NameForHuman        string     `yaml:"name_for_human" json:"name_for_human"`
	NameForModel        string     `yaml:"name_for_model" json:"name_for_model"`
	DescriptionForHuman string     `yaml:"description_for_human" json:"description_for_human"`
	DescriptionForModel string     `yaml:"description_for_model" json:"description_for_model"`
	Auth                PluginAuth `yaml:"auth" json:"auth"`
	API                 PluginAPI  `yaml:"api" json:"api"`
	LogoURL             string     `yaml:"logo_url" json:"logo_url"`
	ContactEmail        string     `yaml:"contact_email" json:"contact_email"`
	LegalInfoURL        string     `yaml:"legal_info_url" json:"legal_info_url"`
}

// PluginAuth is the manifest auth block.
type PluginAuth struct {
	Type              string `yaml:"type" json:"type"`
	AuthorizationType string `yaml:"authorization_type" json:"authorization_type,omitempty"`
}

// PluginAPI is the manifest api block.
type PluginAPI struct {
	Type                string `yaml:"type" json:"type"`
	URL                 string `yaml:"url" json:"url"`
	IsUserAuthenticated bool   `yaml:"is_user_authenticated" json:"is_user_authenticated"`
}

// Robots holds extra robots.txt rules.
type Robots struct {
	Disallow []string `yaml:"disallow"`
}

// Default returns the embedded profile.
func Default() (*Profile, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, DefaultProfileFile)
}

// Load reads a profile from disk. Files it references are resolved
// relative to the profile's directory.
func Load(file string) (*Profile, error) {
	return LoadFS(os.DirFS(filepath.Dir(file)), filepath.Base(file))
}

// LoadFS reads the profile name from fsys together with every text file
// it references.
func LoadFS(fsys fs.FS, name string) (*Profile, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	var p Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", name, err)
	}

	p.texts = make(map[string]string)
	dir := path.Dir(name)
	refs := []string{p.Full.Preamble, p.Full.Interlude, p.Full.Appendix}
	for _, file := range p.Documents {
		refs = append(refs, file)
	}
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, ok := p.texts[ref]; ok {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, ref))
		if err != nil {
			return nil, fmt.Errorf("reading profile text %s: %w", ref, err)
		}
		p.texts[ref] = string(data)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the fields every export relies on.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Site.Name) == "" {
		return errors.New("profile: site.name is required")
	}
	if strings.TrimSpace(p.Site.URL) == "" {
		return errors.New("profile: site.url is required")
	}
	seen := make(map[string]bool, len(p.Feeds))
	for i, f := range p.Feeds {
		if !strings.HasPrefix(f.Path, "/") {
			return fmt.Errorf("profile: feeds[%d].path must start with /", i)
		}
		if seen[f.Path] {
			return fmt.Errorf("profile: duplicate feed path %s", f.Path)
		}
		seen[f.Path] = true
	}
	for name := range p.Documents {
		if strings.Contains(name, "/") {
			return fmt.Errorf("profile: document name %q must not contain /", name)
		}
	}
	return nil
}

// BaseURL returns the site URL without a trailing slash.
func (p *Profile) BaseURL() string {
	return strings.TrimRight(p.Site.URL, "/")
}

// AbsURL resolves a site-relative URL ("/api/") against the site URL.
// Anything else is returned unchanged.
func (p *Profile) AbsURL(u string) string {
	if u == "/" {
		return p.BaseURL()
	}
	if strings.HasPrefix(u, "/") {
		return p.BaseURL() + u
	}
	return u
}

// Expand substitutes the profile placeholders in s.
func (p *Profile) Expand(s string, now time.Time) string {
	now = now.UTC()
	return strings.NewReplacer(
		PlaceholderSiteURL, p.BaseURL(),
		PlaceholderDate, now.Format(time.DateOnly),
		PlaceholderGenerated, now.Format(time.RFC3339),
	).Replace(s)
}

// Text returns a file-backed block by its profile-relative file name.
func (p *Profile) Text(file string) string {
	return p.texts[file]
}

// Document returns the raw text of a static document such as "agents.md".
func (p *Profile) Document(name string) (string, error) {
	file, ok := p.Documents[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrUnknownDocument)
	}
	return p.texts[file], nil
}

// DocumentNames lists the static documents in a stable order.
func (p *Profile) DocumentNames() []string {
	names := make([]string, 0, len(p.Documents))
	for name := range p.Documents {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Feed returns the feed served at route.
func (p *Profile) Feed(route string) (Feed, bool) {
	for _, f := range p.Feeds {
		if f.Path == route {
			return f, true
		}
	}
	return Feed{}, false
}

// CategoryName returns the llms-full heading for a docs category.
func (p *Profile) CategoryName(category string) string {
	if name, ok := p.Full.Categories[category]; ok {
		return name
	}
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + strings.ReplaceAll(category[1:], "-", " ")
}
