// Package postgres provides the PostgreSQL implementation of store.DeckStore.
// Documents are kept whole in a JSONB column next to the revision that
// produced them; the schema is managed by the goose migrations embedded in
// this package.
package postgres
