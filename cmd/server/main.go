// Package main implements the entry point for the slide deck API server,
// which edits slide decks in memory and persists snapshots to PostgreSQL
// when a database is configured.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/slidedeck/internal/config"
	"github.com/phrazzld/slidedeck/internal/platform/logger"
	"github.com/phrazzld/slidedeck/internal/platform/postgres"
	"github.com/phrazzld/slidedeck/internal/redact"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml if present)")
	migrateCmd := flag.String("migrate", "", "run a database migration command (up|down|reset|status|version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrateCmd); err != nil {
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration and either executes a migration command or serves
// the API until ctx is cancelled.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"persistence", cfg.Database.Enabled(),
		"auth", cfg.Auth.Enabled())

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, log)
	}

	var db *sql.DB
	if cfg.Database.Enabled() {
		db, err = postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established")
	} else {
		log.Warn("No database configured, decks will not survive a restart")
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads configuration from the optional file and environment.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
