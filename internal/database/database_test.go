// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package database_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/open-edge-platform/arith-lexer/internal/clock"
	"github.com/open-edge-platform/arith-lexer/internal/config"
	"github.com/open-edge-platform/arith-lexer/internal/database"
	"github.com/open-edge-platform/arith-lexer/internal/database/models"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
)

const (
	dbQueryTimeout = 5 * time.Second
)

var db *database.DBService

var _ = Describe("Database", func() {
	BeforeEach(func() {
		dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"))
		Expect(err).ToNot(HaveOccurred())
		db = &database.DBService{DB: dbConn}

		Expect(database.Migrate(dbConn)).To(Succeed())

		clock.SetFakeClock()
		clock.FakeClock.Set(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	})

	AfterEach(func() {
		clock.UnsetFakeClock()

		if db == nil {
			return
		}
		db.DB.Exec("DELETE FROM records")
		db.DB.Exec("DELETE FROM analyses")

		dbConn, err := db.DB.DB()
		Expect(err).ToNot(HaveOccurred())
		Expect(dbConn.Close()).To(Succeed())
	})

	Context("With no analyses", func() {
		It("Gets an empty list of analyses", func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			analyses, err := db.ListAnalyses(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(analyses).To(BeEmpty())
		})

		It("Fails to get an unknown analysis", func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			analysis, err := db.GetAnalysis(ctx, uuid.New())
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
			Expect(analysis).To(BeNil())
		})

		It("Fails to count the categories of an unknown analysis", func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			counts, err := db.GetCategoryCounts(ctx, uuid.New())
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
			Expect(counts).To(BeNil())
		})

		It("Deletes nothing", func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			deleted, err := db.DeleteAnalysesExceedingDuration(ctx, time.Hour)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(deleted).To(BeZero())
		})
	})

	Context("With stored analyses", func() {
		var first, second *models.Analysis

		BeforeEach(func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			var err error
			first, err = db.SaveAnalysis(ctx, "first.txt", lexer.AnalyzeLines([]string{
				"x = 3 + 4.5 // sum",
				"",
				"(x+y)",
			}))
			Expect(err).ShouldNot(HaveOccurred())

			clock.FakeClock.Add(2 * time.Hour)

			second, err = db.SaveAnalysis(ctx, "second.txt", lexer.AnalyzeLines([]string{"y=-5"}))
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("Gets an analysis with its records in order", func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			analysis, err := db.GetAnalysis(ctx, first.ID)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(analysis).To(PointTo(MatchFields(IgnoreExtras, Fields{
				"ID":        Equal(first.ID),
				"Source":    Equal("first.txt"),
				"LineCount": Equal(3),
				"Records":   HaveLen(10),
			})))

			Expect(analysis.Records[0]).To(MatchFields(IgnoreExtras, Fields{
				"Line":     Equal(1),
				"Position": Equal(0),
				"Lexeme":   Equal("x"),
				"Category": Equal(lexer.CategoryVariable),
			}))
			Expect(analysis.Records[9]).To(MatchFields(IgnoreExtras, Fields{
				"Line":     Equal(3),
				"Position": Equal(2),
				"Lexeme":   Equal(")"),
				"Category": Equal(lexer.CategoryClosingParenthesis),
			}))

			lines := analysis.Lines()
			Expect(lines).To(HaveLen(3))
			Expect(lines[1]).To(BeEmpty())
			Expect(lines[2]).To(Equal([]lexer.Record{
				{Lexeme: "(", Category: lexer.CategoryOpeningParenthesis},
				{Lexeme: "x+y", Category: lexer.CategoryUnidentified},
				{Lexeme: ")", Category: lexer.CategoryClosingParenthesis},
			}))
		})

		It("Lists analyses newest first without records", func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			analyses, err := db.ListAnalyses(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(analyses).To(HaveLen(2))
			Expect(analyses[0].ID).To(Equal(second.ID))
			Expect(analyses[1].ID).To(Equal(first.ID))
			Expect(analyses[0].Records).To(BeEmpty())
		})

		It("Counts records per category", func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			counts, err := db.GetCategoryCounts(ctx, first.ID)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(counts).To(Equal(map[lexer.Category]int64{
				lexer.CategoryVariable:           1,
				lexer.CategoryAssignment:         1,
				lexer.CategoryInteger:            1,
				lexer.CategoryAddition:           1,
				lexer.CategoryFloat:              1,
				lexer.CategoryComment:            2,
				lexer.CategoryOpeningParenthesis: 1,
				lexer.CategoryUnidentified:       1,
				lexer.CategoryClosingParenthesis: 1,
			}))
		})

		It("Deletes analyses exceeding the retention time", func() {
			ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
			defer cancel()

			deleted, err := db.DeleteAnalysesExceedingDuration(ctx, time.Hour)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(deleted).To(Equal(int64(1)))

			_, err = db.GetAnalysis(ctx, first.ID)
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))

			var orphans int64
			Expect(db.DB.Model(&models.Record{}).Where("analysis_id = ?", first.ID).Count(&orphans).Error).To(Succeed())
			Expect(orphans).To(BeZero())

			analysis, err := db.GetAnalysis(ctx, second.ID)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(analysis.Records).To(HaveLen(3))
		})
	})

	It("Rejects records with an unknown category", func() {
		ctx, cancel := context.WithTimeout(context.Background(), dbQueryTimeout)
		defer cancel()

		_, err := db.SaveAnalysis(ctx, "bad.txt", [][]lexer.Record{{{Lexeme: "%", Category: "Modulo"}}})
		Expect(err).To(MatchError(ContainSubstring(`unknown category: "Modulo"`)))

		analyses, err := db.ListAnalyses(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(analyses).To(BeEmpty())
	})

	It("Saves an analysis of the maximum number of lines", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		lines := make([]string, 10000)
		for i := range lines {
			lines[i] = "x = 3 + 4.5"
		}

		analysis, err := db.SaveAnalysis(ctx, "big", lexer.AnalyzeLines(lines))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(analysis.LineCount).To(Equal(10000))

		var records int64
		Expect(db.DB.WithContext(ctx).Model(&models.Record{}).
			Where("analysis_id = ?", analysis.ID).
			Count(&records).Error).To(Succeed())
		Expect(records).To(Equal(int64(50000)))

		counts, err := db.GetCategoryCounts(ctx, analysis.ID)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(counts).To(HaveKeyWithValue(lexer.CategoryFloat, int64(10000)))
	})
})

var _ = Describe("ConnectDB", func() {
	It("Opens an sqlite database", func() {
		dbConn, err := database.ConnectDB(config.DatabaseConfig{Driver: config.DriverSQLite, Path: "file::memory:"})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(database.Migrate(dbConn)).To(Succeed())

		sqlDB, err := dbConn.DB()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("Rejects an unknown driver", func() {
		_, err := database.ConnectDB(config.DatabaseConfig{Driver: "mysql"})
		Expect(err).To(MatchError(`unknown database driver "mysql"`))
	})
})
