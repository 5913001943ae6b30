// Package service contains the deck editing use cases.
//
// DeckEditor owns one Document and is the only way to change it. Every
// operation runs under the editor's lock, leaves the document satisfying
// its invariants (at least one slide, active index in range, unique ids),
// and then publishes a DocumentChangedEvent so observers such as the
// snapshot persister see each completed state in order.
//
// Workspace holds many independent editors keyed by deck id, restoring
// persisted decks on demand through a DeckRepository.
//
// Expected failures are reported through the sentinel errors in errors.go
// so the API layer can map them with errors.Is.
package service
