// Package events provides the notification channel between the mutation
// engine and the collaborators that observe it.
//
// After every completed mutation the engine emits a DocumentChangedEvent
// carrying the full resulting document. Handlers (persistence, rendering,
// history) register with an EventEmitter and are called synchronously, so
// they only ever see a document that already satisfies its invariants.
//
// The primary components are:
// - DocumentChangedEvent: the snapshot published after a mutation
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
