// Package task runs background work on a bounded in-memory queue drained by
// a fixed pool of workers. Deck snapshots are persisted this way so that
// editing never waits on the database.
package task
