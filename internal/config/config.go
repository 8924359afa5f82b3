// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/weyl-ai/weyl-website/internal/content"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// SiteURL overrides the profile's site.url when set.
	SiteURL     string `env:"WEYL_SITE_URL"`
	ProfilePath string `env:"WEYL_PROFILE_PATH"` // Empty uses the embedded profile
	OpenAPIPath string `env:"WEYL_OPENAPI_PATH" envDefault:"./openapi.yaml"`

	// Content source: a SQLite database, a directory of Markdown/MDX files,
	// or neither (profile-only artifacts with empty collections).
	ContentDB  string `env:"WEYL_CONTENT_DB"`
	ContentDir string `env:"WEYL_CONTENT_DIR" envDefault:"./src/content"`

	ServerHost string `env:"WEYL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"WEYL_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"WEYL_ENV" envDefault:"development"`
	LogLevel   string `env:"WEYL_LOG_LEVEL" envDefault:"info"`

	// Collection URL prefixes
	BlogPrefix string `env:"WEYL_BLOG_PREFIX" envDefault:"/plan/"`
	DocsPrefix string `env:"WEYL_DOCS_PREFIX" envDefault:"/"`
	StdPrefix  string `env:"WEYL_STD_PREFIX" envDefault:"/std/"`

	// Static export
	ExportDir      string `env:"WEYL_EXPORT_DIR" envDefault:"./dist"`
	ExportSchedule string `env:"WEYL_EXPORT_SCHEDULE"` // cron expression, empty disables

	RequestTimeout time.Duration `env:"WEYL_REQUEST_TIMEOUT" envDefault:"30s"`
	MaxAge         time.Duration `env:"WEYL_MAX_AGE" envDefault:"1h"`
	RobotsDisallow bool          `env:"WEYL_ROBOTS_DISALLOW" envDefault:"false"` // Block every crawler (staging)
	SkipInvalid    bool          `env:"WEYL_SKIP_INVALID" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseDatabase returns true if a SQLite content database is configured.
func (c Config) UseDatabase() bool {
	return c.ContentDB != ""
}

// ScheduledExport returns true if periodic static exports are configured.
func (c Config) ScheduledExport() bool {
	return c.ExportSchedule != ""
}

// Prefixes returns the collection URL prefixes.
func (c Config) Prefixes() map[content.Collection]string {
	return map[content.Collection]string{
		content.CollectionBlog: c.BlogPrefix,
		content.CollectionDocs: c.DocsPrefix,
		content.CollectionStd:  c.StdPrefix,
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env.Parse cannot.
func (c *Config) Validate() error {
	if c.SiteURL != "" {
		if err := validateSiteURL(c.SiteURL); err != nil {
			return err
		}
	}

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("WEYL_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}

	prefixes := []struct{ name, value string }{
		{"WEYL_BLOG_PREFIX", c.BlogPrefix},
		{"WEYL_DOCS_PREFIX", c.DocsPrefix},
		{"WEYL_STD_PREFIX", c.StdPrefix},
	}
	for _, p := range prefixes {
		if !strings.HasPrefix(p.value, "/") || !strings.HasSuffix(p.value, "/") {
			return fmt.Errorf("%s must start and end with /, got %q", p.name, p.value)
		}
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("WEYL_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("WEYL_MAX_AGE must not be negative, got %s", c.MaxAge)
	}
	return nil
}

func validateSiteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("WEYL_SITE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("WEYL_SITE_URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("WEYL_SITE_URL must be absolute, got %q", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("WEYL_SITE_URL must not have a query or fragment, got %q", raw)
	}
	return nil
}
