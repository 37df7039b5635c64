package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/probuilds/sc2coach/internal/api"
	"github.com/probuilds/sc2coach/internal/config"
	"github.com/probuilds/sc2coach/internal/db"
	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/repository/sqlite"
	"github.com/probuilds/sc2coach/internal/sc2reader"
	"github.com/probuilds/sc2coach/internal/services"
	"github.com/probuilds/sc2coach/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("SC2Coach Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("sc2reader_url=%s", cfg.SC2ReaderURL)
	log.Debug("max_upload_bytes=%d", cfg.MaxUploadBytes)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("parse_worker_count=%d", cfg.ParseWorkerCount)
	log.Debug("parse_queue_size=%d", cfg.ParseQueueSize)
	log.Debug("max_issues_per_game=%d", cfg.MaxIssuesPerGame)

	if cfg.AuthSecret == "" {
		log.Warn("AUTH_SECRET is empty; all bearer tokens will be rejected")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	replayRepo := sqlite.NewReplayRepository(database.DB)
	buildOrderRepo := sqlite.NewBuildOrderRepository(database.DB)
	contentRepo := sqlite.NewContentRepository(database.DB)
	userRepo := sqlite.NewUserRepository(database.DB)
	eventRepo := sqlite.NewEventRepository(database.DB)

	parsePool := worker.NewPool(cfg.ParseWorkerCount, cfg.ParseQueueSize)

	parser := sc2reader.New(cfg.SC2ReaderURL, cfg.SC2ReaderAPIKey)
	replayService := services.NewReplayService(replayRepo, parser)
	buildOrderService := services.NewBuildOrderService(buildOrderRepo)
	analysisService := services.NewAnalysisService(replayService, buildOrderService)
	contentService := services.NewContentService(contentRepo)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)

	srv := &api.Server{
		Replays:        replayService,
		Analysis:       analysisService,
		BuildOrders:    buildOrderService,
		Content:        contentService,
		Users:          userService,
		Events:         eventService,
		ParsePool:      parsePool,
		AuthSecret:     cfg.AuthSecret,
		MaxUploadBytes: cfg.MaxUploadBytes,
		MaxIssues:      cfg.MaxIssuesPerGame,
	}

	ctx, cancel := context.WithCancel(context.Background())
	parsePool.Start(ctx)

	if cfg.SeedBuildOrders {
		parsePool.Submit(&worker.SeedBuildOrdersJob{Repo: buildOrderRepo})
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker context")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping parse pool")
	parsePool.Stop()

	log.Info("===========================================")
	log.Info("SC2Coach Server Stopped")
	log.Info("===========================================")
}
