package main

import (
	"context"
	"fmt"

	"github.com/dmarakulin/learn-logbook/internal/adapter"
	"github.com/dmarakulin/learn-logbook/internal/cache"
	"github.com/dmarakulin/learn-logbook/internal/client"
	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/service"
	"github.com/dmarakulin/learn-logbook/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("logbook-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	cacheStore, err := cache.NewSQLiteStore(context.Background(), cfg.Cache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local cache")
	}

	serverAdapter := adapter.NewHTTPServerAdapter(cfg.Adapter, log)

	services := service.NewClientServices(cacheStore, serverAdapter, cfg, log)

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
