// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/open-edge-platform/arith-lexer/internal/config"
	"github.com/open-edge-platform/arith-lexer/internal/database"
	"github.com/open-edge-platform/arith-lexer/internal/executor"
	"github.com/open-edge-platform/arith-lexer/internal/lexer"
	"github.com/open-edge-platform/arith-lexer/internal/report"
	"github.com/open-edge-platform/arith-lexer/internal/source"
)

const defaultInput = "expressions.txt"

type options struct {
	input    string
	format   string
	logLevel string
	store    bool
}

func main() {
	configFile := flag.String("config", "", "config file path")
	input := flag.String("input", defaultInput, "file with one expression per line")
	format := flag.String("format", "", "report format (table, json or yaml), overrides the config file")
	logLevel := flag.String("log-level", "warn", "log level")
	store := flag.Bool("store", false, "store the analysis in the configured database")

	flag.Parse()

	configuration, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	err = config.ValidateLogLevel(*logLevel)
	if err != nil {
		log.Fatal(err.Error())
	}

	opts := options{
		input:    *input,
		format:   *format,
		logLevel: *logLevel,
		store:    *store,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configuration, opts, os.Stdout); err != nil {
		log.Fatal(err.Error())
	}
}

// run analyzes the input file and writes the report to w.
func run(ctx context.Context, conf config.Config, opts options, w io.Writer) error {
	formatName := conf.Report.Format
	if opts.format != "" {
		formatName = opts.format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	lines, err := source.ReadFile(opts.input)
	if err != nil {
		return err
	}

	analyzed, err := executor.New(conf.Lexer, opts.logLevel).Analyze(ctx, lines)
	if err != nil {
		return err
	}

	if opts.store {
		if err := saveAnalysis(ctx, conf.Database, opts.input, analyzed); err != nil {
			return err
		}
	}

	return report.Write(w, format, analyzed)
}

func saveAnalysis(ctx context.Context, cfg config.DatabaseConfig, input string, analyzed [][]lexer.Record) error {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error appeared when closing database connection: %v", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	analysis, err := (&database.DBService{DB: db}).SaveAnalysis(ctx, input, analyzed)
	if err != nil {
		return err
	}
	log.Printf("Stored analysis %v of %q", analysis.ID, input)
	return nil
}
