// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/version"
)

// CheckFunc checks one dependency. A nil error means healthy.
type CheckFunc func(ctx context.Context) error

// HealthHandler handles health check requests.
type HealthHandler struct {
	checks    map[string]CheckFunc
	version   *version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler running the named checks.
func NewHealthHandler(checks map[string]CheckFunc, info *version.Info) *HealthHandler {
	if info == nil {
		info = &version.Info{Version: "dev"}
	}
	return &HealthHandler{
		checks:    checks,
		version:   info,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /healthz. Any failing check turns the status to
// "degraded" with a 503. ?verbose=true adds runtime information.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Checks:    make(map[string]Check, len(h.checks)),
	}

	for name, fn := range h.checks {
		c := runCheck(r.Context(), fn)
		if c.Status != "healthy" {
			status.Status = "degraded"
		}
		status.Checks[name] = c
	}

	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func runCheck(ctx context.Context, fn CheckFunc) Check {
	start := time.Now()
	err := fn(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// StoreCheck checks a content store by listing the docs collection. A
// store without docs is still healthy.
func StoreCheck(store content.Store) CheckFunc {
	return func(ctx context.Context) error {
		_, err := store.List(ctx, content.CollectionDocs)
		if err != nil && !errors.Is(err, content.ErrCollectionNotFound) {
			return err
		}
		return nil
	}
}

// getSystemInfo returns system-level metrics.
func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
