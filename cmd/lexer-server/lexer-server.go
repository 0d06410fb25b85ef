// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/open-edge-platform/arith-lexer/internal/app"
	"github.com/open-edge-platform/arith-lexer/internal/config"
	"github.com/open-edge-platform/arith-lexer/internal/database"
	"github.com/open-edge-platform/arith-lexer/internal/executor"
	"github.com/open-edge-platform/arith-lexer/internal/metrics"
)

func main() {
	configFile := flag.String("config", "", "config file path")
	apiPort := flag.Int("port", 0, "API service port, overrides the config file")
	logLevel := flag.String("log-level", "info", "API server log level")

	flag.Parse()

	configuration, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *apiPort != 0 {
		configuration.Server.Port = *apiPort
	}

	err = config.ValidateLogLevel(*logLevel)
	if err != nil {
		log.Fatal(err.Error())
	}

	db, err := database.ConnectDB(configuration.Database)
	if err != nil {
		log.Fatal(err.Error())
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err.Error())
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err.Error())
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error appeared when closing database connection: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbService := &database.DBService{DB: db}

	janitor := executor.NewJanitor(configuration.Database, dbService, *logLevel)
	janitor.Start(ctx)
	defer janitor.Stop()

	analyzer := executor.New(configuration.Lexer, *logLevel)
	if err := app.StartServer(ctx, configuration, *logLevel, dbService, analyzer, metrics.NewCollector()); err != nil {
		log.Printf("Server error: %v", err)
	}
	log.Println("Shutdown completed.")
}
