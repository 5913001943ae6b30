package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/domain"
)

// DeckSnapshot is a persisted copy of a deck at a given revision.
type DeckSnapshot struct {
	ID        uuid.UUID
	Revision  int64
	Document  domain.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the snapshot before it is written.
func (s DeckSnapshot) Validate() error {
	if s.ID == uuid.Nil {
		return fmt.Errorf("%w: deck id is nil", ErrInvalidEntity)
	}
	if s.Revision < 0 {
		return fmt.Errorf("%w: negative revision %d", ErrInvalidEntity, s.Revision)
	}
	if err := s.Document.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	return nil
}

// DeckStore defines the interface for deck snapshot persistence.
type DeckStore interface {
	// Save upserts the snapshot. When the stored revision is already at or
	// above snapshot.Revision the row is left untouched and ErrStaleRevision
	// is returned.
	Save(ctx context.Context, snapshot DeckSnapshot) error

	// Get retrieves the latest snapshot of a deck.
	// Returns ErrDeckNotFound if the deck does not exist.
	Get(ctx context.Context, id uuid.UUID) (*DeckSnapshot, error)

	// Delete removes a deck.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DeckStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) DeckStore
}
