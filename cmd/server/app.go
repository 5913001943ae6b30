package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/slidedeck/internal/config"
	"github.com/phrazzld/slidedeck/internal/events"
	"github.com/phrazzld/slidedeck/internal/platform/postgres"
	"github.com/phrazzld/slidedeck/internal/service"
	"github.com/phrazzld/slidedeck/internal/service/auth"
	"github.com/phrazzld/slidedeck/internal/store"
	"github.com/phrazzld/slidedeck/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// deckStore is nil when no database is configured
	deckStore store.DeckStore

	// jwtService is nil when no JWT secret is configured
	jwtService auth.JWTService

	eventEmitter *events.InMemoryEventEmitter
	taskRunner   *task.TaskRunner
	workspace    *service.Workspace
}

// newApplication creates a new application instance with all dependencies initialized.
// db may be nil, in which case decks live only in memory.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	if cfg.Auth.Enabled() {
		var err error
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	} else {
		logger.Warn("No JWT secret configured, the deck API is unauthenticated")
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.EventHandlerFunc(app.logDocumentChange))

	var repo service.DeckRepository
	if db != nil {
		app.deckStore = postgres.NewPostgresDeckStore(db, logger)
		repo = app.deckStore

		var err error
		app.taskRunner, err = setupTaskRunner(app)
		if err != nil {
			return nil, fmt.Errorf("failed to setup task runner: %w", err)
		}

		factory := task.NewSnapshotTaskFactory(db, app.deckStore, logger)
		app.eventEmitter.RegisterHandler(task.NewSnapshotEventHandler(factory, app.taskRunner, logger))
	}

	app.workspace = service.NewWorkspace(
		cfg.Editor.Theme,
		service.EditorConfig{
			IDLength:      cfg.Editor.IDLength,
			MaxIDAttempts: cfg.Editor.MaxIDAttempts,
			StrictIndex:   cfg.Editor.StrictIndex,
		},
		app.eventEmitter,
		repo,
		logger.With("component", "workspace"),
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns when ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setupTaskRunner initializes and starts the background snapshot writer.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	taskRunner := task.NewTaskRunner(task.TaskRunnerConfig{
		QueueSize:   app.config.Task.QueueSize,
		WorkerCount: app.config.Task.WorkerCount,
	}, app.logger)

	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}
	return taskRunner, nil
}

// logDocumentChange traces every committed mutation.
func (app *application) logDocumentChange(ctx context.Context, e *events.DocumentChangedEvent) error {
	app.logger.Debug("document changed",
		"deck_id", e.DeckID,
		"operation", e.Operation,
		"revision", e.Revision,
		"actor", e.Actor,
		"slide_count", len(e.Document.Slides))
	return nil
}

// cleanup drains pending snapshots and releases the database.
func (app *application) cleanup(ctx context.Context) {
	if app.taskRunner != nil {
		if err := app.taskRunner.Stop(ctx); err != nil {
			app.logger.Error("Pending deck snapshots were not written", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
