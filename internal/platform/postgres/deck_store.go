package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/platform/logger"
	"github.com/phrazzld/slidedeck/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

const upsertDeckQuery = `
	INSERT INTO decks (id, revision, document, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET revision = EXCLUDED.revision,
		document = EXCLUDED.document,
		updated_at = EXCLUDED.updated_at
	WHERE decks.revision < EXCLUDED.revision
`

// Save implements store.DeckStore.Save.
// Returns store.ErrStaleRevision when a newer or equal revision is already stored.
func (s *PostgresDeckStore) Save(ctx context.Context, snapshot store.DeckSnapshot) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := snapshot.Validate(); err != nil {
		log.Warn("deck snapshot validation failed",
			slog.String("error", err.Error()),
			slog.String("deck_id", snapshot.ID.String()))
		return err
	}

	document, err := json.Marshal(snapshot.Document)
	if err != nil {
		return store.NewStoreError("deck", "save", "failed to encode document", err)
	}

	now := s.now()
	createdAt := snapshot.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := snapshot.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	result, err := s.db.ExecContext(ctx, upsertDeckQuery,
		snapshot.ID,
		snapshot.Revision,
		string(document),
		createdAt,
		updatedAt,
	)
	if err != nil {
		log.Error("failed to save deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", snapshot.ID.String()),
			slog.Int64("revision", snapshot.Revision))
		return store.NewStoreError("deck", "save", "upsert failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrStaleRevision); err != nil {
		if errors.Is(err, store.ErrStaleRevision) {
			log.Debug("stale deck snapshot skipped",
				slog.String("deck_id", snapshot.ID.String()),
				slog.Int64("revision", snapshot.Revision))
		}
		return err
	}

	log.Debug("deck saved",
		slog.String("deck_id", snapshot.ID.String()),
		slog.Int64("revision", snapshot.Revision),
		slog.Int("slide_count", len(snapshot.Document.Slides)))
	return nil
}

// Get implements store.DeckStore.Get.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Get(ctx context.Context, id uuid.UUID) (*store.DeckSnapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, revision, document, created_at, updated_at
		FROM decks
		WHERE id = $1
	`

	var snapshot store.DeckSnapshot
	var document []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&snapshot.ID,
		&snapshot.Revision,
		&document,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "query failed", MapError(err))
	}

	if err := json.Unmarshal(document, &snapshot.Document); err != nil {
		log.Error("stored deck document is unreadable",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "failed to decode document",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	return &snapshot, nil
}

// Delete implements store.DeckStore.Delete.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return store.NewStoreError("deck", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		return err
	}

	log.Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}

// WithTx implements store.DeckStore.WithTx.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
		now:    s.now,
	}
}
