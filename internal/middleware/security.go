// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the export service.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS.
	IsDevelopment bool

	// ContentSecurityPolicy is the CSP header value. The service only serves
	// text, XML and JSON, so the default policy forbids everything.
	ContentSecurityPolicy string

	// HSTSMaxAge is the max-age for Strict-Transport-Security in seconds.
	// Set to 0 to disable HSTS.
	HSTSMaxAge int

	// HSTSIncludeSubDomains includes subdomains in HSTS policy.
	HSTSIncludeSubDomains bool

	// FrameOptions controls the X-Frame-Options header.
	FrameOptions string

	// ReferrerPolicy controls the Referrer-Policy header.
	ReferrerPolicy string

	// AllowOrigin, when set, is sent as Access-Control-Allow-Origin so
	// browser-based agents can fetch the machine-readable artifacts.
	AllowOrigin string

	// ExcludePaths are path prefixes that skip security headers.
	ExcludePaths []string
}

// DefaultSecurityHeadersConfig returns a SecurityHeadersConfig with defaults
// for a read-only artifact server.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:         isDev,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		HSTSMaxAge:            31536000, // 1 year
		FrameOptions:          "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		AllowOrigin:           "*",
		ExcludePaths:          []string{"/metrics"},
	}
	if !isDev {
		cfg.HSTSIncludeSubDomains = true
	}
	return cfg
}

// SecurityHeaders returns a middleware that adds security headers to responses.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	hsts := ""
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			h := w.Header()
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.AllowOrigin != "" {
				h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			}

			next.ServeHTTP(w, r)
		})
	}
}
