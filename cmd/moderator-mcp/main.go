package main

import (
	"fmt"
	"os"

	"github.com/cdentertainment/site-api/config"
	apprepository "github.com/cdentertainment/site-api/internal/app/repository"
	appservice "github.com/cdentertainment/site-api/internal/app/service"
	"github.com/cdentertainment/site-api/internal/infra/logger"
	infraPostgres "github.com/cdentertainment/site-api/internal/infra/postgres"
	"github.com/cdentertainment/site-api/internal/mcptools"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

func main() {
	// stdout carries the MCP protocol; zap writes to stderr.
	log := logger.MustInit(logger.FromEnv("moderator-mcp"))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	gormDB, err := infraPostgres.NewGorm(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	songService := appservice.NewSongRequestService(appservice.SongRequestDeps{
		Logger:   log,
		Requests: apprepository.NewSongRequestRepository(gormDB),
		Settings: apprepository.NewSettingsRepository(gormDB),
	})

	s := server.NewMCPServer(
		"cd-entertainment-moderator",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	mcptools.NewModerator(songService, log).Register(s)

	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", zap.Error(err))
	}
}
