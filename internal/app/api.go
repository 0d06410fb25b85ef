// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/open-edge-platform/arith-lexer/internal/database/models"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

type ServiceState string

const (
	Ready  ServiceState = "ready"
	Failed ServiceState = "failed"
)

type ServiceStatus struct {
	State ServiceState `json:"state"`
}

type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type TokenizeResult struct {
	Lexemes []string `json:"lexemes"`
}

type ClassifyResult struct {
	Lexeme   string         `json:"lexeme"`
	Category lexer.Category `json:"category"`
}

type Analysis struct {
	ID           uuid.UUID `json:"id"`
	Source       string    `json:"source"`
	LineCount    int       `json:"lineCount"`
	CreationDate time.Time `json:"creationDate"`
}

type AnalysisWithRecords struct {
	Analysis
	Lines [][]lexer.Record `json:"lines"`
}

type AnalysisList struct {
	Analyses []Analysis `json:"analyses"`
}

type AnalysisSummary struct {
	ID     uuid.UUID                `json:"id"`
	Counts map[lexer.Category]int64 `json:"counts"`
}

func toAnalysis(a *models.Analysis) Analysis {
	return Analysis{
		ID:           a.ID,
		Source:       a.Source,
		LineCount:    a.LineCount,
		CreationDate: a.CreationDate,
	}
}

// nonNilLines makes empty lines encode as [] rather than null.
func nonNilLines(lines [][]lexer.Record) [][]lexer.Record {
	out := make([][]lexer.Record, len(lines))
	for i, records := range lines {
		if records == nil {
			records = []lexer.Record{}
		}
		out[i] = records
	}
	return out
}
