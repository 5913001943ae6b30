package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/slidedeck/internal/events"
)

// TaskFactory turns a change event into a task.
type TaskFactory interface {
	CreateTask(event *events.DocumentChangedEvent) (Task, error)
}

// SnapshotEventHandler implements the events.EventHandler interface by
// submitting a snapshot task for every document change. It never blocks the
// publishing editor: a full queue is reported as an error and the next
// revision supersedes the lost one.
type SnapshotEventHandler struct {
	factory TaskFactory
	runner  TaskSubmitter
	logger  *slog.Logger
}

// NewSnapshotEventHandler creates a new event handler that uses the given
// factory to create tasks, and submits them to the provided runner.
func NewSnapshotEventHandler(factory TaskFactory, runner TaskSubmitter, logger *slog.Logger) *SnapshotEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotEventHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "snapshot_event_handler"),
	}
}

// HandleEvent creates a snapshot task for event and submits it.
func (h *SnapshotEventHandler) HandleEvent(ctx context.Context, event *events.DocumentChangedEvent) error {
	if event == nil {
		return ErrNilEvent
	}

	task, err := h.factory.CreateTask(event)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"deck_id", event.DeckID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.runner.Submit(ctx, task); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", task.ID(),
			"deck_id", event.DeckID,
			"revision", event.Revision)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("snapshot task submitted",
		"task_id", task.ID(),
		"deck_id", event.DeckID,
		"revision", event.Revision,
		"operation", event.Operation)
	return nil
}

// Ensure SnapshotEventHandler implements events.EventHandler
var _ events.EventHandler = (*SnapshotEventHandler)(nil)
