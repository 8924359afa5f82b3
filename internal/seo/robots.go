// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
)

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL       string   // Base URL for sitemap references
	DisallowAll   bool     // Block all crawlers (for staging sites)
	ExtraRules    string   // Additional custom rules
	DisallowPaths []string // Paths to disallow (e.g., /api/og/)
	Sitemaps      []string // Site-relative sitemap paths, default /sitemap.xml
	LLMsPath      string   // Site-relative llms.txt path, advertised as a comment
}

// RobotsBuilder builds robots.txt content.
type RobotsBuilder struct {
	config RobotsConfig
}

// NewRobotsBuilder creates a new robots.txt builder.
func NewRobotsBuilder(config RobotsConfig) *RobotsBuilder {
	return &RobotsBuilder{config: config}
}

// Build generates the robots.txt content.
func (b *RobotsBuilder) Build() string {
	var sb strings.Builder

	// User-agent directive (applies to all crawlers)
	sb.WriteString("User-agent: *\n")

	if b.config.DisallowAll {
		sb.WriteString("Disallow: /\n")
	} else {
		for _, path := range b.config.DisallowPaths {
			sb.WriteString("Disallow: ")
			sb.WriteString(path)
			sb.WriteString("\n")
		}

		// Allow everything else
		sb.WriteString("Allow: /\n")
	}

	if b.config.ExtraRules != "" {
		sb.WriteString("\n")
		sb.WriteString(b.config.ExtraRules)
		if !strings.HasSuffix(b.config.ExtraRules, "\n") {
			sb.WriteString("\n")
		}
	}

	if b.config.SiteURL == "" || b.config.DisallowAll {
		return sb.String()
	}

	base := strings.TrimSuffix(b.config.SiteURL, "/")
	sitemaps := b.config.Sitemaps
	if len(sitemaps) == 0 {
		sitemaps = []string{"/sitemap.xml"}
	}

	sb.WriteString("\n")
	for _, path := range sitemaps {
		sb.WriteString("Sitemap: ")
		sb.WriteString(base)
		sb.WriteString(path)
		sb.WriteString("\n")
	}

	if b.config.LLMsPath != "" {
		sb.WriteString("\n# LLM-readable site summary: ")
		sb.WriteString(base)
		sb.WriteString(b.config.LLMsPath)
		sb.WriteString("\n")
	}

	return sb.String()
}
