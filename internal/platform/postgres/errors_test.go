package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/slidedeck/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "no rows", err: sql.ErrNoRows, expected: store.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolationCode}, expected: store.ErrDuplicate},
		{name: "check violation", err: &pgconn.PgError{Code: checkViolationCode, ConstraintName: "decks_revision_check"}, expected: store.ErrInvalidEntity},
		{name: "not null violation", err: &pgconn.PgError{Code: notNullViolationCode, ColumnName: "document"}, expected: store.ErrInvalidEntity},
		{name: "invalid text", err: &pgconn.PgError{Code: invalidTextRepresentationCode}, expected: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			assert.ErrorIs(t, mapped, tt.expected)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil))
	})

	t.Run("unmapped passes through", func(t *testing.T) {
		original := errors.New("connection refused")
		assert.Equal(t, original, MapError(original))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrDeckNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrDeckNotFound), store.ErrDeckNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))
	assert.Error(t, CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver")), nil))
}
