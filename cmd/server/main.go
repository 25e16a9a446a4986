// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Marakulin

package main

import (
	"context"
	"fmt"

	"github.com/dmarakulin/learn-logbook/internal/config"
	handler "github.com/dmarakulin/learn-logbook/internal/handler/http"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/server"
	"github.com/dmarakulin/learn-logbook/internal/service"
	"github.com/dmarakulin/learn-logbook/internal/store"
	"github.com/dmarakulin/learn-logbook/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("logbook-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, cfg, log)
	handlers := handler.NewHandler(services, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
