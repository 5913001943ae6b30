package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/domain"
	"github.com/phrazzld/slidedeck/internal/service"
)

// DeckResponse is the full state of one deck.
type DeckResponse struct {
	// ID identifies the deck
	ID uuid.UUID `json:"id"`

	// Revision counts the mutations applied to the deck
	Revision int64 `json:"revision"`

	// Document holds the slides, the active slide index and the theme
	Document domain.Document `json:"document"`
}

// DeckListResponse lists the open decks.
type DeckListResponse struct {
	Decks []service.DeckSummary `json:"decks"`
}

// DeleteSlidesRequest names the slides to delete.
type DeleteSlidesRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// UpdateSlidesListRequest replaces the whole slide sequence.
type UpdateSlidesListRequest struct {
	Slides []domain.Slide `json:"slides" validate:"required"`
}

// SetSlideIndexRequest selects the active slide.
type SetSlideIndexRequest struct {
	Index *int `json:"index" validate:"required"`
}
