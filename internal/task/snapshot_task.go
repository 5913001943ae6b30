package task

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/events"
	"github.com/phrazzld/slidedeck/internal/store"
)

// Common errors
var (
	ErrNilDeckStore = errors.New("deck store cannot be nil")
	ErrNilEvent     = errors.New("event cannot be nil")
)

// SnapshotTask writes the document carried by one change event to the deck
// store. Snapshots older than the stored revision are skipped.
type SnapshotTask struct {
	id        uuid.UUID
	snapshot  store.DeckSnapshot
	db        *sql.DB
	deckStore store.DeckStore
	logger    *slog.Logger

	mu     sync.Mutex
	status TaskStatus
}

// NewSnapshotTask creates a task persisting event. When db is nil the save
// runs without a transaction.
func NewSnapshotTask(
	event *events.DocumentChangedEvent,
	db *sql.DB,
	deckStore store.DeckStore,
	logger *slog.Logger,
) (*SnapshotTask, error) {
	if event == nil {
		return nil, ErrNilEvent
	}
	if deckStore == nil {
		return nil, ErrNilDeckStore
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SnapshotTask{
		id: uuid.New(),
		snapshot: store.DeckSnapshot{
			ID:        event.DeckID,
			Revision:  event.Revision,
			Document:  event.Document,
			UpdatedAt: event.CreatedAt,
		},
		db:        db,
		deckStore: deckStore,
		logger: logger.With(
			"task_type", TaskTypeDeckSnapshot,
			"deck_id", event.DeckID,
			"revision", event.Revision,
		),
		status: TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *SnapshotTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *SnapshotTask) Type() string {
	return TaskTypeDeckSnapshot
}

// Status returns the current task status
func (t *SnapshotTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// DeckID returns the deck being persisted.
func (t *SnapshotTask) DeckID() uuid.UUID {
	return t.snapshot.ID
}

// Revision returns the revision being persisted.
func (t *SnapshotTask) Revision() int64 {
	return t.snapshot.Revision
}

func (t *SnapshotTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

// Execute upserts the snapshot.
func (t *SnapshotTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)

	var err error
	if t.db == nil {
		err = t.deckStore.Save(ctx, t.snapshot)
	} else {
		err = store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
			return t.deckStore.WithTx(tx).Save(ctx, t.snapshot)
		})
	}

	switch {
	case err == nil:
		t.logger.Debug("deck snapshot persisted")
	case errors.Is(err, store.ErrStaleRevision):
		t.logger.Debug("newer deck snapshot already persisted")
	default:
		t.setStatus(TaskStatusFailed)
		return err
	}

	t.setStatus(TaskStatusCompleted)
	return nil
}

// SnapshotTaskFactory creates SnapshotTask instances bound to one store.
type SnapshotTaskFactory struct {
	db        *sql.DB
	deckStore store.DeckStore
	logger    *slog.Logger
}

// NewSnapshotTaskFactory creates a new factory for SnapshotTasks. db may be
// nil when deckStore needs no transaction.
func NewSnapshotTaskFactory(db *sql.DB, deckStore store.DeckStore, logger *slog.Logger) *SnapshotTaskFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotTaskFactory{
		db:        db,
		deckStore: deckStore,
		logger:    logger.With("component", "snapshot_task_factory"),
	}
}

// CreateTask creates a new SnapshotTask for the event.
func (f *SnapshotTaskFactory) CreateTask(event *events.DocumentChangedEvent) (Task, error) {
	task, err := NewSnapshotTask(event, f.db, f.deckStore, f.logger)
	if err != nil {
		return nil, err
	}
	return task, nil
}
