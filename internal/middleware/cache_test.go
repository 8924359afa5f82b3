// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCacheControl(t *testing.T) {
	tests := []struct {
		name   string
		maxAge time.Duration
		want   string
	}{
		{
			name:   "one hour",
			maxAge: time.Hour,
			want:   "public, max-age=3600",
		},
		{
			name:   "one day",
			maxAge: 24 * time.Hour,
			want:   "public, max-age=86400",
		},
		{
			name:   "zero",
			maxAge: 0,
			want:   "public, max-age=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			wrapped := CacheControl(tt.maxAge)(handler)

			req := httptest.NewRequest(http.MethodGet, "/docs.json", nil)
			rr := httptest.NewRecorder()
			wrapped.ServeHTTP(rr, req)

			if got := rr.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheControlHandlerOverrides(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	CacheControl(time.Hour)(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q, want handler value", got)
	}
}

func TestNoStore(t *testing.T) {
	rr := httptest.NewRecorder()
	NoStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}
