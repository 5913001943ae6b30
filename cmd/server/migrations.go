package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/phrazzld/slidedeck/internal/config"
	"github.com/phrazzld/slidedeck/internal/platform/postgres"
)

// ErrNoDatabase is returned when a migration is requested without a database URL.
var ErrNoDatabase = errors.New("database.url must be set to run migrations")

// handleMigrations runs one goose command against the configured database.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	if !slices.Contains(postgres.MigrationCommands, command) {
		return fmt.Errorf("unknown migration command %q, expected one of %s",
			command, strings.Join(postgres.MigrationCommands, ", "))
	}
	if !cfg.Database.Enabled() {
		return ErrNoDatabase
	}

	log.Info("Executing migrations", "command", command)

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	if err := postgres.Migrate(ctx, db, command, log); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("Migrations completed", "command", command)
	return nil
}
