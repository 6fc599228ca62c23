package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/falsedev/TechStruck_Go/internal/config"
	"github.com/falsedev/TechStruck_Go/internal/database"
	"github.com/falsedev/TechStruck_Go/internal/database/postgres"
	"github.com/falsedev/TechStruck_Go/internal/handler"
	"github.com/falsedev/TechStruck_Go/internal/logger"
	"github.com/falsedev/TechStruck_Go/internal/oauth"
	"github.com/falsedev/TechStruck_Go/internal/server"
	"github.com/falsedev/TechStruck_Go/internal/statetoken"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: logger.DefaultServiceName,
		Version:     handler.Version,
		Environment: cfg.Environment,
	})

	pool, err := database.NewPool(cfg.GetDBConnString(),
		database.DefaultMaxConnections,
		database.DefaultMaxIdleTime,
		database.DefaultMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewAccountLinkRepository(pool)
	codec := statetoken.NewCodec(cfg.SigningSecret)
	oauthService := oauth.NewService(codec, oauth.NewExchanger(), repo, oauth.Providers(cfg), cfg.StateTokenTTL)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, oauthService)

	// Run the server and wait for a shutdown signal
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		slog.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}
