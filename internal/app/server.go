// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/open-edge-platform/arith-lexer/internal/config"
	"github.com/open-edge-platform/arith-lexer/internal/database"
	"github.com/open-edge-platform/arith-lexer/internal/metrics"
)

var logger = slog.Default()

// NewServer builds the echo server serving the lexer API.
func NewServer(conf config.Config, logLvl string, dbService *database.DBService, analyzer LineAnalyzer, collector *metrics.Collector) *echo.Echo {
	// Creating new Echo server
	e := echo.New()

	// Create a custom logger using slog
	opts := setLogLvl(e, logLvl)
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &opts))

	// Set slog logger as the default logger for Echo to use the same logger configuration without explicitly passing the logger instance around.
	slog.SetDefault(logger)

	serverInterface := NewServerInterfaceHandler(dbService, analyzer, collector)

	// Registering API call handlers
	RegisterHandlers(e, serverInterface)

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("4M"))
	// Use middleware to log requests with the custom logger
	e.Use(middleware.RequestLoggerWithConfig(
		middleware.RequestLoggerConfig{
			// NOTE: skipping GET requests from curl/kube-probe to /api/v1/status
			// in order to not log incoming readiness/liveness probes requests
			Skipper:      skipLog,
			LogURI:       true,
			LogStatus:    true,
			LogError:     true,
			LogUserAgent: true,
			LogMethod:    true,
			LogLatency:   true,
			LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
				attrs := []slog.Attr{
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("user-agent", v.UserAgent),
					slog.String("method", v.Method),
					slog.Duration("latency", v.Latency),
				}
				if v.Error != nil {
					logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR", append(attrs, slog.String("error", v.Error.Error()))...)
					return nil
				}
				logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST", attrs...)
				return nil
			},
		},
	))

	// Print welcome message in logs
	welcomeMessage(e, conf, logLvl)

	return e
}

// StartServer serves the API on the configured port until ctx is done, then shuts
// the server down gracefully within 5 seconds.
func StartServer(ctx context.Context, conf config.Config, logLvl string, dbService *database.DBService, analyzer LineAnalyzer, collector *metrics.Collector) error {
	e := NewServer(conf, logLvl, dbService, analyzer, collector)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", conf.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	ctxTimeout, cancelTimeout := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelTimeout()
	if err := e.Shutdown(ctxTimeout); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func setLogLvl(e *echo.Echo, logLvl string) slog.HandlerOptions {
	switch logLvl {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
		return slog.HandlerOptions{
			Level: slog.LevelDebug,
		}
	case "info":
		e.Logger.SetLevel(log.INFO)
		return slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	case "warn":
		e.Logger.SetLevel(log.WARN)
		return slog.HandlerOptions{
			Level: slog.LevelWarn,
		}
	case "error":
		e.Logger.SetLevel(log.ERROR)
		return slog.HandlerOptions{
			Level: slog.LevelError,
		}
	default:
		e.Logger.SetLevel(log.INFO)
		return slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}
}

func welcomeMessage(e *echo.Echo, cfg config.Config, logLvl string) {
	e.HidePort = true
	e.HideBanner = true
	fmt.Println("Arithmetic Lexer")
	fmt.Printf("⇨ Log level: %s\n", logLvl)
	fmt.Printf("⇨ HTTP server port: %d\n", cfg.Server.Port)
	fmt.Println("Configuration:")
	printStruct("Lexer", cfg.Lexer)
	printStruct("Database", cfg.Database)
}

func printStruct(header string, obj any) {
	fmt.Printf("⇨ %s:\n", header)
	vals := reflect.ValueOf(obj)
	types := vals.Type()
	for i := 0; i < vals.NumField(); i++ {
		fmt.Printf("  %s: %v\n", types.Field(i).Name, vals.Field(i))
	}
}
