// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/open-edge-platform/arith-lexer/internal/clock"
	"github.com/open-edge-platform/arith-lexer/internal/database/models"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

// saveBatchSize bounds the records inserted per statement so large analyses stay
// under the bound-variable limit of SQLite.
const saveBatchSize = 500

func (d *DBService) SaveAnalysis(ctx context.Context, source string, lines [][]lexer.Record) (*models.Analysis, error) {
	analysis := models.NewAnalysis(source, lines)

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{CreateBatchSize: saveBatchSize}).Create(analysis).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis of %q: %w", source, err)
	}
	return analysis, nil
}

func (d *DBService) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	err := d.DB.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB {
			return db.Order("line ASC, position ASC")
		}).
		Where("id = ?", id).
		First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (d *DBService) ListAnalyses(ctx context.Context) ([]*models.Analysis, error) {
	analyses := []*models.Analysis{}
	err := d.DB.WithContext(ctx).
		Order("creation_date DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

func (d *DBService) GetCategoryCounts(ctx context.Context, id uuid.UUID) (map[lexer.Category]int64, error) {
	var counts []struct {
		Category lexer.Category
		Count    int64
	}

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", id).First(&models.Analysis{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Record{}).
			Select("category, COUNT(*) AS count").
			Where("analysis_id = ?", id).
			Group("category").
			Scan(&counts).Error
	})
	if err != nil {
		return nil, err
	}

	out := make(map[lexer.Category]int64, len(counts))
	for _, c := range counts {
		out[c.Category] = c.Count
	}
	return out, nil
}

func (d *DBService) DeleteAnalysesExceedingDuration(ctx context.Context, dur time.Duration) (int64, error) {
	var deleted int64
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&models.Analysis{}).
			Where("creation_date < ?", clock.Now().Add(-dur)).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("analysis_id IN ?", ids).Delete(&models.Record{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Analysis{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete analyses older than %v: %w", dur, err)
	}
	return deleted, nil
}
