package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"photofeed/internal/config"
	"photofeed/internal/database"
	"photofeed/internal/handlers"
	"photofeed/internal/log"
	"photofeed/internal/moderation"
	"photofeed/internal/server"
	"photofeed/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	sink, err := storage.NewSink(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init blob sink")
	}

	moderator := moderation.New(logger)

	handlerSet := handlers.NewHandlerSet(logger, db, sink, moderator, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, db)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, db *sql.DB) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if err := db.Close(); err != nil {
		logger.Error().Err(err).Msg("database close error")
	}

	logger.Info().Msg("server exited cleanly")
}
