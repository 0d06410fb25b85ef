// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/open-edge-platform/arith-lexer/internal/config"
	"github.com/open-edge-platform/arith-lexer/internal/database/models"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

// AnalysisManager stores analyses and their classified lexemes.
type AnalysisManager interface {
	// SaveAnalysis stores the records of every line of a source and returns the stored analysis.
	SaveAnalysis(ctx context.Context, source string, lines [][]lexer.Record) (*models.Analysis, error)

	// GetAnalysis gets an analysis and its records, sorted by line and position.
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.Analysis, error)

	// ListAnalyses gets every analysis without its records, newest first.
	ListAnalyses(ctx context.Context) ([]*models.Analysis, error)

	// GetCategoryCounts counts the records of an analysis per category.
	GetCategoryCounts(ctx context.Context, id uuid.UUID) (map[lexer.Category]int64, error)
}

// RetentionManager removes analyses that are too old to be kept.
type RetentionManager interface {
	// DeleteAnalysesExceedingDuration deletes the analyses, and their records, created more than dur ago.
	// It returns the number of deleted analyses.
	DeleteAnalysesExceedingDuration(ctx context.Context, dur time.Duration) (int64, error)
}

// ConnectDB opens the database selected by cfg. Postgres connection parameters are
// read from the standard PG* environment variables.
func ConnectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		host := os.Getenv("PGHOST")
		port := os.Getenv("PGPORT")
		user := os.Getenv("PGUSER")
		password := os.Getenv("PGPASSWORD")
		dbname := os.Getenv("PGDATABASE")

		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=prefer", host, user, password, dbname, port)
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true, CreateBatchSize: saveBatchSize})
	if err != nil {
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables of the analysis models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Analysis{}, &models.Record{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
