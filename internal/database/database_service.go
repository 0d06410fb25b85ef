// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package database

import (
	"context"

	"gorm.io/gorm"
)

// DBService implements the analysis storage on top of a gorm connection.
type DBService struct {
	DB *gorm.DB
}

var (
	_ AnalysisManager  = (*DBService)(nil)
	_ RetentionManager = (*DBService)(nil)
)

// Ping checks that the database can be reached.
func (d *DBService) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
