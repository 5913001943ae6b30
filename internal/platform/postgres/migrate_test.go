package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	versions, err := EmbeddedMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, int64(1), versions[0])

	for i := 1; i < len(versions); i++ {
		assert.Greater(t, versions[i], versions[i-1])
	}
}

func TestMigrate_UnknownCommand(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = Migrate(context.Background(), db, "sideways", discardLogger)
	assert.ErrorContains(t, err, "unknown migration command")
	assert.NoError(t, mock.ExpectationsWereMet())
}
