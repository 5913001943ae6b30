package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrRunnerStopped is returned by Submit after Stop has been called.
var ErrRunnerStopped = errors.New("task runner is stopped")

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// TaskRunner manages background task processing. Tasks submitted before
// Start are buffered and run once the workers come up.
type TaskRunner struct {
	queue  *TaskQueue
	pool   *WorkerPool
	config TaskRunnerConfig
	logger *slog.Logger

	mu      sync.Mutex
	stopped bool
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)
	pool.SetErrorHandler(func(task Task, err error) {
		logger.Error("task execution failed",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", err)
	})

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		config: config,
		logger: logger,
	}
}

// SetErrorHandler allows setting a custom error handler function.
// It must be called before Start.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit adds a new task to the queue without blocking.
// Returns ErrQueueFull when the buffer is exhausted.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()
	if stopped {
		return ErrRunnerStopped
	}

	if err := r.queue.Enqueue(task); err != nil {
		if errors.Is(err, ErrQueueClosed) {
			return ErrRunnerStopped
		}
		return fmt.Errorf("failed to submit task: %w", err)
	}
	return nil
}

// Start begins processing tasks
func (r *TaskRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return ErrRunnerStopped
	}
	r.pool.Start()
	return nil
}

// Stop refuses new tasks and lets the workers drain the queue. If ctx ends
// first, running tasks are cancelled and the remaining ones are dropped.
func (r *TaskRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	r.mu.Unlock()

	r.queue.Close()
	r.pool.Start()

	if err := r.pool.Wait(ctx); err != nil {
		dropped := r.queue.Len()
		r.pool.Stop()
		r.logger.Warn("task runner stopped before draining",
			"dropped_tasks", dropped,
			"error", err)
		return fmt.Errorf("task runner drain interrupted: %w", err)
	}

	r.pool.Stop()
	return nil
}
