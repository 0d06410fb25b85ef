// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	db "github.com/open-edge-platform/arith-lexer/internal/database"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
	"github.com/open-edge-platform/arith-lexer/internal/metrics"
)

// LineAnalyzer classifies the lexemes of a batch of lines.
type LineAnalyzer interface {
	Analyze(ctx context.Context, lines []string) ([][]lexer.Record, error)
}

// HealthChecker reports whether a dependency of the server is usable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type ServerInterfaceHandler struct {
	analyses db.AnalysisManager
	health   HealthChecker
	analyzer LineAnalyzer
	metrics  *metrics.Collector
}

const (
	errHTTPBadRequest              = "bad request"
	errHTTPFailedToAnalyze         = "failed to analyze lines"
	errHTTPAnalysisTimedOut        = "analysis timed out"
	errHTTPFailedToSaveAnalysis    = "failed to save analysis"
	errHTTPFailedToGetAnalyses     = "failed to get analyses"
	errHTTPFailedToGetAnalysis     = "failed to get analysis"
	errHTTPAnalysisNotFound        = "analysis not found"
	errHTTPFailedToGetSummary      = "failed to get analysis summary"
	errHTTPFailedToReadRequestBody = "failed to read request body"
)

func NewServerInterfaceHandler(dbService *db.DBService, analyzer LineAnalyzer, collector *metrics.Collector) *ServerInterfaceHandler {
	return &ServerInterfaceHandler{
		analyses: dbService,
		health:   dbService,
		analyzer: analyzer,
		metrics:  collector,
	}
}

// RegisterHandlers registers the API routes of w on e.
func RegisterHandlers(e *echo.Echo, w *ServerInterfaceHandler) {
	g := e.Group("/api/v1")
	g.GET("/status", w.GetStatus)
	g.POST("/tokenize", w.PostTokenize)
	g.POST("/classify", w.PostClassify)
	g.POST("/analyses", w.PostAnalysis)
	g.GET("/analyses", w.GetAnalyses)
	g.GET("/analyses/:id", w.GetAnalysis)
	g.GET("/analyses/:id/summary", w.GetAnalysisSummary)

	if w.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(w.metrics.Handler()))
	}
}

func (w *ServerInterfaceHandler) GetStatus(ctx echo.Context) error {
	if w.health != nil {
		if err := w.health.Ping(ctx.Request().Context()); err != nil {
			logError(ctx, "Database is not reachable", err)
			return ctx.JSON(http.StatusOK, ServiceStatus{State: Failed})
		}
	}
	return ctx.JSON(http.StatusOK, ServiceStatus{State: Ready})
}

func (w *ServerInterfaceHandler) PostTokenize(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		logError(ctx, errHTTPFailedToReadRequestBody, err)
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}

	line, err := getRequiredString(body, "line")
	if err != nil {
		logError(ctx, "Failed to parse tokenize request", err)
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}

	lexemes := lexer.Tokenize(line)
	if lexemes == nil {
		lexemes = []string{}
	}
	return ctx.JSON(http.StatusOK, TokenizeResult{Lexemes: lexemes})
}

func (w *ServerInterfaceHandler) PostClassify(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		logError(ctx, errHTTPFailedToReadRequestBody, err)
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}

	lexeme, err := getRequiredString(body, "lexeme")
	if err != nil {
		logError(ctx, "Failed to parse classify request", err)
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}
	if lexeme == "" {
		logWarn(ctx, "Empty lexeme")
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}

	return ctx.JSON(http.StatusOK, ClassifyResult{
		Lexeme:   lexeme,
		Category: lexer.Classify(lexeme),
	})
}

func (w *ServerInterfaceHandler) PostAnalysis(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		logError(ctx, errHTTPFailedToReadRequestBody, err)
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}

	source, lines, err := parseAnalysisRequest(body)
	if err != nil {
		logError(ctx, "Failed to parse analysis request", err)
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}

	start := time.Now()
	analyzed, err := w.analyzer.Analyze(ctx.Request().Context(), lines)
	if errors.Is(err, context.DeadlineExceeded) {
		logError(ctx, fmt.Sprintf("Analysis of %q timed out", source), err)
		return httpError(ctx, http.StatusServiceUnavailable, errHTTPAnalysisTimedOut)
	} else if err != nil {
		logError(ctx, fmt.Sprintf("Failed to analyze %q", source), err)
		return httpError(ctx, http.StatusInternalServerError, errHTTPFailedToAnalyze)
	}
	if w.metrics != nil {
		w.metrics.Observe(analyzed, time.Since(start))
	}

	stored, err := w.analyses.SaveAnalysis(ctx.Request().Context(), source, analyzed)
	if err != nil {
		logError(ctx, fmt.Sprintf("Failed to save analysis of %q", source), err)
		return httpError(ctx, http.StatusInternalServerError, errHTTPFailedToSaveAnalysis)
	}

	return ctx.JSON(http.StatusCreated, AnalysisWithRecords{
		Analysis: toAnalysis(stored),
		Lines:    nonNilLines(analyzed),
	})
}

func (w *ServerInterfaceHandler) GetAnalyses(ctx echo.Context) error {
	stored, err := w.analyses.ListAnalyses(ctx.Request().Context())
	if err != nil {
		logError(ctx, errHTTPFailedToGetAnalyses, err)
		return httpError(ctx, http.StatusInternalServerError, errHTTPFailedToGetAnalyses)
	}

	analyses := make([]Analysis, 0, len(stored))
	for _, a := range stored {
		analyses = append(analyses, toAnalysis(a))
	}
	return ctx.JSON(http.StatusOK, AnalysisList{Analyses: analyses})
}

func (w *ServerInterfaceHandler) GetAnalysis(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		logError(ctx, "Invalid analysis ID", err)
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}

	a, err := w.analyses.GetAnalysis(ctx.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logWarn(ctx, fmt.Sprintf("Analysis not found: %q", id))
		return httpError(ctx, http.StatusNotFound, errHTTPAnalysisNotFound)
	} else if err != nil {
		logError(ctx, fmt.Sprintf("Failed to retrieve analysis: %q", id), err)
		return httpError(ctx, http.StatusInternalServerError, errHTTPFailedToGetAnalysis)
	}

	return ctx.JSON(http.StatusOK, AnalysisWithRecords{
		Analysis: toAnalysis(a),
		Lines:    nonNilLines(a.Lines()),
	})
}

func (w *ServerInterfaceHandler) GetAnalysisSummary(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		logError(ctx, "Invalid analysis ID", err)
		return httpError(ctx, http.StatusBadRequest, errHTTPBadRequest)
	}

	counts, err := w.analyses.GetCategoryCounts(ctx.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logWarn(ctx, fmt.Sprintf("Analysis not found: %q", id))
		return httpError(ctx, http.StatusNotFound, errHTTPAnalysisNotFound)
	} else if err != nil {
		logError(ctx, fmt.Sprintf("Failed to count categories of analysis: %q", id), err)
		return httpError(ctx, http.StatusInternalServerError, errHTTPFailedToGetSummary)
	}

	return ctx.JSON(http.StatusOK, AnalysisSummary{ID: id, Counts: counts})
}
