package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTaskQueue implements TaskQueueReader for testing
type mockTaskQueue struct {
	ch chan Task
}

func newMockTaskQueue() *mockTaskQueue {
	return &mockTaskQueue{
		ch: make(chan Task, 10),
	}
}

func (m *mockTaskQueue) GetChannel() <-chan Task {
	return m.ch
}

func TestNewWorkerPool(t *testing.T) {
	logger := setupTestLogger()
	taskQueue := newMockTaskQueue()

	pool := NewWorkerPool(taskQueue, WorkerPoolConfig{WorkerCount: 5}, logger)

	assert.NotNil(t, pool)
	assert.Equal(t, 5, pool.workerCount)
	assert.Equal(t, taskQueue, pool.taskQueue)
	assert.NotNil(t, pool.ctx)
	assert.NotNil(t, pool.cancel)
	assert.Nil(t, pool.errorHandler)

	// Invalid worker counts fall back to one worker
	pool = NewWorkerPool(taskQueue, WorkerPoolConfig{WorkerCount: 0}, logger)
	assert.Equal(t, 1, pool.workerCount)

	pool = NewWorkerPool(taskQueue, WorkerPoolConfig{WorkerCount: -5}, logger)
	assert.Equal(t, 1, pool.workerCount)
}

func TestWorkerPool_ProcessesTasks(t *testing.T) {
	queue := newMockTaskQueue()
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 3}, setupTestLogger())

	tasks := make([]*MockTask, 5)
	for i := range tasks {
		tasks[i] = NewMockTask("mock")
		queue.ch <- tasks[i]
	}
	close(queue.ch)

	pool.Start()
	pool.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, pool.Wait(ctx))

	for _, task := range tasks {
		assert.Equal(t, 1, task.Runs())
		assert.Equal(t, TaskStatusCompleted, task.Status())
	}
}

func TestWorkerPool_ErrorHandler(t *testing.T) {
	queue := newMockTaskQueue()
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, setupTestLogger())

	var mu sync.Mutex
	var failed []error
	pool.SetErrorHandler(func(task Task, err error) {
		mu.Lock()
		failed = append(failed, err)
		mu.Unlock()
	})

	failing := NewMockTask("mock")
	failing.ExecuteFn = func(ctx context.Context) error { return errors.New("boom") }
	panicking := NewMockTask("mock")
	panicking.ExecuteFn = func(ctx context.Context) error { panic("kaboom") }
	ok := NewMockTask("mock")

	queue.ch <- failing
	queue.ch <- panicking
	queue.ch <- ok
	close(queue.ch)

	pool.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, pool.Wait(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failed, 2)
	assert.EqualError(t, failed[0], "boom")
	assert.Contains(t, failed[1].Error(), "kaboom")
	assert.Equal(t, TaskStatusFailed, failing.Status())
	assert.Equal(t, TaskStatusCompleted, ok.Status())
}

func TestWorkerPool_StopCancelsRunningTask(t *testing.T) {
	queue := newMockTaskQueue()
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, setupTestLogger())

	started := make(chan struct{})
	blocking := NewMockTask("mock")
	blocking.ExecuteFn = func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}
	queue.ch <- blocking

	pool.Start()
	<-started

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker pool did not stop")
	}
	assert.Equal(t, TaskStatusFailed, blocking.Status())
}

func TestWorkerPool_WaitHonoursContext(t *testing.T) {
	queue := newMockTaskQueue()
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, setupTestLogger())
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Wait(ctx), context.DeadlineExceeded)
}
