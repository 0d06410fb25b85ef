// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/open-edge-platform/arith-lexer/internal/clock"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

// Analysis is one analyzed source, e.g. a file or an API request body.
type Analysis struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Source       string    `gorm:"not null"`
	LineCount    int       `gorm:"not null"`
	CreationDate time.Time `gorm:"not null;index"`
	Records      []Record
}

func (a *Analysis) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreationDate.IsZero() {
		a.CreationDate = clock.Now()
	}
	if a.LineCount < 0 {
		return fmt.Errorf("negative line count: %d", a.LineCount)
	}
	return nil
}

// Lines groups the records of the analysis by line. Records must be sorted by line
// and position, as returned by the database service.
func (a *Analysis) Lines() [][]lexer.Record {
	lines := make([][]lexer.Record, a.LineCount)
	for _, r := range a.Records {
		if r.Line < 1 || r.Line > a.LineCount {
			continue
		}
		lines[r.Line-1] = append(lines[r.Line-1], lexer.Record{Lexeme: r.Lexeme, Category: r.Category})
	}
	return lines
}

// Record is a classified lexeme of an analysis.
type Record struct {
	ID         int64          `gorm:"primaryKey;autoIncrement"`
	AnalysisID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Line       int            `gorm:"not null"`
	Position   int            `gorm:"not null"`
	Lexeme     string         `gorm:"not null"`
	Category   lexer.Category `gorm:"not null"`
}

func (r *Record) BeforeCreate(*gorm.DB) error {
	if r.Lexeme == "" {
		return errors.New("empty lexeme")
	}
	if r.Line < 1 {
		return fmt.Errorf("invalid line number: %d", r.Line)
	}
	return r.Category.Validate()
}

// NewAnalysis builds an analysis from per-line records. Lines are numbered from 1
// and positions from 0.
func NewAnalysis(source string, lines [][]lexer.Record) *Analysis {
	a := &Analysis{
		Source:    source,
		LineCount: len(lines),
	}
	for i, records := range lines {
		for j, r := range records {
			a.Records = append(a.Records, Record{
				Line:     i + 1,
				Position: j,
				Lexeme:   r.Lexeme,
				Category: r.Category,
			})
		}
	}
	return a
}
