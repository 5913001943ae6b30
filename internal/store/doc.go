// Package store defines interfaces for deck persistence.
// These interfaces abstract the underlying data storage mechanism from
// the editing core, so documents can be snapshotted without the core
// depending on a specific database technology.
package store
