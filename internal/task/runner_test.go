package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRunner_Submit(t *testing.T) {
	t.Parallel()

	logger := setupTestLogger()

	t.Run("successful submission", func(t *testing.T) {
		t.Parallel()

		runner := NewTaskRunner(DefaultTaskRunnerConfig(), logger)
		task := NewMockTask("mock")
		require.NoError(t, runner.Submit(context.Background(), task))

		require.NoError(t, runner.Start())
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, runner.Stop(ctx))

		assert.Equal(t, 1, task.Runs())
	})

	t.Run("queue full", func(t *testing.T) {
		t.Parallel()

		config := DefaultTaskRunnerConfig()
		config.QueueSize = 1
		runner := NewTaskRunner(config, logger)

		require.NoError(t, runner.Submit(context.Background(), NewMockTask("mock")))
		err := runner.Submit(context.Background(), NewMockTask("mock"))

		assert.ErrorIs(t, err, ErrQueueFull)
		assert.Contains(t, err.Error(), "queue is full")
	})

	t.Run("after stop", func(t *testing.T) {
		t.Parallel()

		runner := NewTaskRunner(DefaultTaskRunnerConfig(), logger)
		require.NoError(t, runner.Stop(context.Background()))

		assert.ErrorIs(t, runner.Submit(context.Background(), NewMockTask("mock")), ErrRunnerStopped)
		assert.ErrorIs(t, runner.Start(), ErrRunnerStopped)
		assert.NoError(t, runner.Stop(context.Background()))
	})
}

func TestTaskRunner_StopDrainsQueue(t *testing.T) {
	t.Parallel()

	config := TaskRunnerConfig{WorkerCount: 2, QueueSize: 50}
	runner := NewTaskRunner(config, setupTestLogger())

	var executed atomic.Int32
	for i := 0; i < 20; i++ {
		task := NewMockTask("mock")
		task.ExecuteFn = func(ctx context.Context) error {
			executed.Add(1)
			return nil
		}
		require.NoError(t, runner.Submit(context.Background(), task))
	}

	require.NoError(t, runner.Start())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runner.Stop(ctx))

	assert.Equal(t, int32(20), executed.Load())
}

func TestTaskRunner_StopTimeout(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 5}, setupTestLogger())

	started := make(chan struct{})
	blocking := NewMockTask("mock")
	blocking.ExecuteFn = func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}
	require.NoError(t, runner.Submit(context.Background(), blocking))
	require.NoError(t, runner.Start())
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := runner.Stop(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, TaskStatusFailed, blocking.Status())
}

func TestTaskRunner_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 5}, setupTestLogger())

	var handled atomic.Int32
	runner.SetErrorHandler(func(task Task, err error) {
		handled.Add(1)
	})

	task := NewMockTask("mock")
	task.ExecuteFn = func(ctx context.Context) error { return assert.AnError }
	require.NoError(t, runner.Submit(context.Background(), task))
	require.NoError(t, runner.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, runner.Stop(ctx))

	assert.Equal(t, int32(1), handled.Load())
}
