// Package api exposes deck editing over HTTP. Handlers decode and validate
// requests, run the matching DeckEditor operation and answer with the
// resulting document and revision. Service errors are mapped to status codes
// and client-safe messages in errors.go.
package api
