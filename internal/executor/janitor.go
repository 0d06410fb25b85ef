// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/open-edge-platform/arith-lexer/internal/config"
	"github.com/open-edge-platform/arith-lexer/internal/database"
)

// Janitor periodically deletes the stored analyses older than the retention time.
type Janitor struct {
	cfg      config.DatabaseConfig
	logger   *slog.Logger
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	analyses database.RetentionManager
}

// NewJanitor creates a Janitor that removes analyses through the given manager.
func NewJanitor(cfg config.DatabaseConfig, analyses database.RetentionManager, logLevel string) *Janitor {
	opts := setLogLvl(logLevel)
	return &Janitor{
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(os.Stdout, &opts)),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		analyses: analyses,
	}
}

// Start runs a cleanup every CleanupRate until Stop is called or ctx is done.
// A non-positive CleanupRate or RetentionTime disables the janitor.
func (j *Janitor) Start(ctx context.Context) {
	if j.cfg.CleanupRate <= 0 || j.cfg.RetentionTime <= 0 {
		j.logger.Info("Retention of analyses is disabled")
		close(j.done)
		return
	}

	go func() {
		defer close(j.done)

		cleanupTicker := time.NewTicker(j.cfg.CleanupRate)
		defer cleanupTicker.Stop()

		for {
			select {
			case <-j.quit:
				j.logger.Info("Received signal: stopping janitor")
				return
			case <-ctx.Done():
				return
			case <-cleanupTicker.C:
				j.Cleanup(ctx)
			}
		}
	}()
}

// Stop stops the janitor and waits for a running cleanup to finish. It must be
// called after Start.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.quit)
	})
	<-j.done
}

// Cleanup deletes the analyses exceeding the retention time once.
func (j *Janitor) Cleanup(ctx context.Context) {
	deleted, err := j.analyses.DeleteAnalysesExceedingDuration(ctx, j.cfg.RetentionTime)
	if err != nil {
		j.logger.Error("failed to clean up old analyses", slog.Any("error", err))
		return
	}
	if deleted > 0 {
		j.logger.Info("deleted old analyses", slog.Int64("count", deleted), slog.Duration("retention", j.cfg.RetentionTime))
	}
}
