package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockTask is a simple implementation of the Task interface for testing
type MockTask struct {
	TaskID    uuid.UUID
	TaskType  string
	ExecuteFn func(ctx context.Context) error

	mu     sync.Mutex
	status TaskStatus
	runs   int
}

// NewMockTask creates a new MockTask that succeeds when executed.
func NewMockTask(taskType string) *MockTask {
	return &MockTask{
		TaskID:    uuid.New(),
		TaskType:  taskType,
		ExecuteFn: func(ctx context.Context) error { return nil },
		status:    TaskStatusPending,
	}
}

// ID returns the task's unique identifier
func (t *MockTask) ID() uuid.UUID {
	return t.TaskID
}

// Type returns the task type identifier
func (t *MockTask) Type() string {
	return t.TaskType
}

// Status returns the current task status
func (t *MockTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Runs reports how many times Execute was called.
func (t *MockTask) Runs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runs
}

// Execute runs ExecuteFn and records the outcome.
func (t *MockTask) Execute(ctx context.Context) error {
	t.mu.Lock()
	t.runs++
	t.status = TaskStatusProcessing
	t.mu.Unlock()

	err := t.ExecuteFn(ctx)

	t.mu.Lock()
	if err != nil {
		t.status = TaskStatusFailed
	} else {
		t.status = TaskStatusCompleted
	}
	t.mu.Unlock()
	return err
}
