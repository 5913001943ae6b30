package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface a DeckStore runs against. Both *sql.DB and
// *sql.Tx satisfy it, so the same store code serves direct snapshot
// writes and the transactional upsert of a snapshot task (see WithTx).
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
