package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/falsedev/TechStruck_Go/internal/config"
	"github.com/falsedev/TechStruck_Go/migrations"
)

// Applies database migrations. Usage:
//
//	migrate [up|down|status]
//
// defaults to "up".
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := sql.Open("pgx", cfg.GetDBConnString())
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set goose dialect", "error", err)
		os.Exit(1)
	}

	if err := goose.RunContext(context.Background(), command, db, "."); err != nil {
		slog.Error("Migration failed", "command", command, "error", err)
		os.Exit(1)
	}

	slog.Info("Migrations complete", "command", command)
}
