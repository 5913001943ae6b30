package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/domain"
)

// Operation names the mutation that produced an event.
type Operation string

// Mutation operations reported on events.
const (
	OperationCreateDeck       Operation = "create_deck"
	OperationCreateSlide      Operation = "create_slide"
	OperationResetSlides      Operation = "reset_slides"
	OperationDeleteSlide      Operation = "delete_slide"
	OperationUpdateSlidesList Operation = "update_slides_list"
	OperationUpdateSlide      Operation = "update_slide"
	OperationSetSlideIndex    Operation = "set_slide_index"
	OperationSetTheme         Operation = "set_theme"
)

// DocumentChangedEvent is published after a mutation completes. Document is
// a deep copy owned by the event; handlers may keep it.
type DocumentChangedEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// DeckID identifies the document that changed
	DeckID uuid.UUID `json:"deck_id"`

	// Operation is the mutation that produced the change
	Operation Operation `json:"operation"`

	// Revision increases by one with every mutation of the deck
	Revision int64 `json:"revision"`

	// Actor is the subject of the caller that triggered the mutation, if known
	Actor string `json:"actor,omitempty"`

	// Document is the full state after the mutation
	Document domain.Document `json:"document"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewDocumentChangedEvent creates an event for the given deck and snapshot.
func NewDocumentChangedEvent(
	deckID uuid.UUID,
	op Operation,
	revision int64,
	actor string,
	doc domain.Document,
) *DocumentChangedEvent {
	return &DocumentChangedEvent{
		ID:        uuid.New(),
		DeckID:    deckID,
		Operation: op,
		Revision:  revision,
		Actor:     actor,
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *DocumentChangedEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *DocumentChangedEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *DocumentChangedEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the engine to publish changes without knowing its observers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *DocumentChangedEvent) error
}

type actorKey struct{}

// WithActor records the caller's subject on ctx so emitted events carry it.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the subject stored by WithActor, or "".
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
