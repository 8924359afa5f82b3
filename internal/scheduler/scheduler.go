// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler rebuilds the static export on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled run. The context is cancelled when the scheduler stops.
type Job func(ctx context.Context) error

// Scheduler runs a single job on a cron schedule. Runs never overlap.
type Scheduler struct {
	schedule string
	job      Job
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
	lastRun time.Time
	lastErr error
}

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// New creates a new scheduler instance.
func New(schedule string, job Job, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{logger: logger}
	return &Scheduler{
		schedule: schedule,
		job:      job,
		cron:     cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registers the job and begins the scheduler.
func (s *Scheduler) Start() error {
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { _ = s.Run() }); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.schedule, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, cancelling a run in progress and
// waiting for it to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Run executes the job once, outside the schedule. It returns ErrBusy
// when a run is already in progress.
func (s *Scheduler) Run() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrBusy
	}
	s.running = true
	s.mu.Unlock()

	start := time.Now()
	err := s.job(s.ctx)

	s.mu.Lock()
	s.running = false
	s.lastRun = start
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled export failed", "error", err, "duration", time.Since(start))
		return err
	}
	s.logger.Info("scheduled export finished", "duration", time.Since(start))
	return nil
}

// LastRun returns the start time and result of the most recent run.
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

// NextRun returns the next scheduled time, zero before Start.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Check reports the outcome of the most recent run for health checks. It is
// nil before the first run and after a successful one.
func (s *Scheduler) Check(context.Context) error {
	last, err := s.LastRun()
	if err == nil {
		return nil
	}
	next := "not scheduled"
	if n := s.NextRun(); !n.IsZero() {
		next = n.UTC().Format(time.RFC3339)
	}
	return fmt.Errorf("export at %s failed (next run %s): %w", last.UTC().Format(time.RFC3339), next, err)
}

// ErrBusy is returned by Run while another run is in progress.
var ErrBusy = fmt.Errorf("export already running")

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
