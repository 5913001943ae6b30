package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrDeckNotFound", err: ErrDeckNotFound, expected: true},
		{
			name:     "wrapped ErrDeckNotFound",
			err:      fmt.Errorf("failed to load deck: %w", ErrDeckNotFound),
			expected: true,
		},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("deck", "get", "no rows", ErrDeckNotFound),
			expected: true,
		},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("deck", "save", "upsert failed", ErrInvalidEntity)
		assert.Equal(t, "save operation on deck failed: upsert failed: invalid entity", err.Error())
		assert.ErrorIs(t, err, ErrInvalidEntity)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("deck", "delete", "nothing to delete", nil)
		assert.Equal(t, "delete operation on deck failed: nothing to delete", err.Error())
		assert.Nil(t, err.Unwrap())
	})
}
