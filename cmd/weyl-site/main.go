// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weyl-ai/weyl-website/internal/config"
	"github.com/weyl-ai/weyl-website/internal/content"
	"github.com/weyl-ai/weyl-website/internal/export"
	"github.com/weyl-ai/weyl-website/internal/handler"
	"github.com/weyl-ai/weyl-website/internal/index"
	"github.com/weyl-ai/weyl-website/internal/logging"
	"github.com/weyl-ai/weyl-website/internal/metrics"
	"github.com/weyl-ai/weyl-website/internal/middleware"
	"github.com/weyl-ai/weyl-website/internal/scheduler"
	"github.com/weyl-ai/weyl-website/internal/site"
	"github.com/weyl-ai/weyl-website/internal/store"
	"github.com/weyl-ai/weyl-website/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	exportDir := flag.String("export", "", "Write every artifact to `DIR` and exit")
	importDir := flag.String("import", "", "Mirror the content directory `DIR` into WEYL_CONTENT_DB and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "weyl-site - weyl.ai content index and export service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_SITE_URL          Canonical site URL (default: profile site.url)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_PROFILE_PATH      Site profile YAML (default: embedded profile)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_OPENAPI_PATH      OpenAPI document (default: ./openapi.yaml)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_CONTENT_DB        SQLite content database (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_CONTENT_DIR       Markdown content directory (default: ./src/content)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_EXPORT_DIR        Scheduled export directory (default: ./dist)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_EXPORT_SCHEDULE   Cron expression for scheduled exports (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WEYL_ROBOTS_DISALLOW   Block every crawler in robots.txt (default: false)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("weyl-site %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if *importDir != "" {
		if err := runImport(*importDir); err != nil {
			slog.Error("import error", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*exportDir); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(exportDir string) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	contentStore, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer func(db *sql.DB) {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}(db)
	}

	exporter := export.New(contentStore, profile, export.Options{
		Index: index.Options{
			BaseURL:     profile.BaseURL(),
			Prefixes:    cfg.Prefixes(),
			SkipInvalid: cfg.SkipInvalid,
		},
		MaxAge:      cfg.MaxAge,
		OpenAPIPath: cfg.OpenAPIPath,
		Generator:   "weyl-site " + appVersion,
		DisallowAll: cfg.RobotsDisallow,
	}, logger)

	// One-shot static build
	if exportDir != "" {
		res, err := exporter.WriteAll(context.Background(), exportDir)
		if err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
		slog.Info("export complete", "dir", res.Dir, "files", res.Files)
		return nil
	}

	checks := map[string]handler.CheckFunc{
		"store": handler.StoreCheck(contentStore),
	}

	if cfg.ScheduledExport() {
		exportScheduler := scheduler.New(cfg.ExportSchedule, func(ctx context.Context) error {
			res, err := exporter.WriteAll(ctx, cfg.ExportDir)
			if err != nil {
				return err
			}
			slog.Info("scheduled export complete", "dir", res.Dir, "files", res.Files)
			return nil
		}, logger)
		if err := exportScheduler.Start(); err != nil {
			return fmt.Errorf("starting export scheduler: %w", err)
		}
		defer exportScheduler.Stop()
		checks["export"] = exportScheduler.Check
		slog.Info("export scheduler started", "schedule", cfg.ExportSchedule, "dir", cfg.ExportDir)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(reg)

	healthHandler := handler.NewHealthHandler(checks, versionInfo)
	exportHandler := handler.NewExportHandler(exporter)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chimw.Compress(5)) // Gzip compression with level 5
	r.Use(chimw.GetHead)     // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Get(handler.RouteHealth, healthHandler.Health)
		r.Handle(handler.RouteMetrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.NormalizePath) // Redirect to lowercase, slash-terminated paths (301)
		r.Use(middleware.CacheControl(cfg.MaxAge))
		exportHandler.Routes(r)
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// runImport loads a content directory into the SQLite database: documents
// are upserted and rows the directory no longer has are removed.
func runImport(dir string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	if !cfg.UseDatabase() {
		return errors.New("import needs WEYL_CONTENT_DB")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("content directory %q not found", dir)
	}

	db, err := store.Open(cfg.ContentDB)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := store.NewDocumentStore(db).Import(ctx, content.NewFSStore(dir))
	if err != nil {
		return fmt.Errorf("importing %s: %w", dir, err)
	}
	slog.Info("import complete", "dir", dir, "db", cfg.ContentDB, "written", res.Written, "removed", res.Removed)
	return nil
}

// loadProfile reads the site profile, falling back to the embedded one.
// WEYL_SITE_URL overrides the profile's site URL.
func loadProfile(cfg *config.Config) (*site.Profile, error) {
	var (
		profile *site.Profile
		err     error
	)
	if cfg.ProfilePath != "" {
		profile, err = site.Load(cfg.ProfilePath)
	} else {
		profile, err = site.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading site profile: %w", err)
	}
	if cfg.SiteURL != "" {
		profile.Site.URL = cfg.SiteURL
	}
	slog.Info("site profile loaded", "site", profile.Site.Name, "url", profile.BaseURL(), "path", cfg.ProfilePath)
	return profile, nil
}

// openStore picks the content backend: the SQLite database when configured,
// otherwise the content directory, otherwise an empty store.
func openStore(cfg *config.Config) (content.Store, *sql.DB, error) {
	if cfg.UseDatabase() {
		slog.Info("initializing database", "path", cfg.ContentDB)
		db, err := store.Open(cfg.ContentDB)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing database: %w", err)
		}
		slog.Info("database ready")
		return store.NewDocumentStore(db), db, nil
	}

	if info, err := os.Stat(cfg.ContentDir); err == nil && info.IsDir() {
		slog.Info("serving content directory", "path", cfg.ContentDir)
		return content.NewFSStore(cfg.ContentDir), nil, nil
	}

	slog.Warn("no content source found, serving an empty site", "content_dir", cfg.ContentDir)
	return content.NewMemoryStore(), nil, nil
}
