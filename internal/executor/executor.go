// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/open-edge-platform/arith-lexer/internal/config"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

// Analyzer classifies the lines of a source on a bounded pool of workers. Lines are
// independent of each other, so they are analyzed in any order while the result
// keeps the input order.
type Analyzer struct {
	cfg    config.LexerConfig
	logger *slog.Logger

	analyzeLine func(string) []lexer.Record
}

// New creates an Analyzer logging at the given level.
func New(cfg config.LexerConfig, logLevel string) *Analyzer {
	opts := setLogLvl(logLevel)
	return &Analyzer{
		cfg:         cfg,
		logger:      slog.New(slog.NewTextHandler(os.Stdout, &opts)),
		analyzeLine: lexer.AnalyzeLine,
	}
}

// Analyze returns the records of every line, in line order. It stops early when ctx
// is done or the run exceeds LineTimeout per line. Lines already analyzed when the
// deadline passes are kept.
func (a *Analyzer) Analyze(ctx context.Context, lines []string) ([][]lexer.Record, error) {
	out := make([][]lexer.Record, len(lines))
	if len(lines) == 0 {
		return out, nil
	}

	if a.cfg.LineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.LineTimeout*time.Duration(len(lines)))
		defer cancel()
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers())

	// dispatchErr is set when lines were left undispatched.
	var dispatchErr error
	for i, line := range lines {
		if err := gctx.Err(); err != nil {
			dispatchErr = err
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = a.analyzeLine(line)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = dispatchErr
	}
	if err != nil {
		a.logger.Error("analysis interrupted", slog.Int("lines", len(lines)), slog.Any("error", err))
		return nil, fmt.Errorf("failed to analyze %d lines: %w", len(lines), err)
	}

	a.logger.Debug("analysis done", slog.Int("lines", len(lines)), slog.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (a *Analyzer) workers() int {
	if a.cfg.Workers <= 0 {
		return 1
	}
	return a.cfg.Workers
}

func setLogLvl(logLvl string) slog.HandlerOptions {
	switch logLvl {
	case "debug":
		return slog.HandlerOptions{
			Level: slog.LevelDebug,
		}
	case "info":
		return slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	case "warn":
		return slog.HandlerOptions{
			Level: slog.LevelWarn,
		}
	case "error":
		return slog.HandlerOptions{
			Level: slog.LevelError,
		}
	default:
		return slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}
}
