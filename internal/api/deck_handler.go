package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/api/shared"
	"github.com/phrazzld/slidedeck/internal/domain"
	"github.com/phrazzld/slidedeck/internal/platform/logger"
	"github.com/phrazzld/slidedeck/internal/service"
)

// DeckWorkspace is the set of open decks the handler edits.
// service.Workspace satisfies it.
type DeckWorkspace interface {
	Create(ctx context.Context) (*service.DeckEditor, error)
	Get(ctx context.Context, id uuid.UUID) (*service.DeckEditor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List() []service.DeckSummary
}

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	workspace DeckWorkspace
	logger    *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(workspace DeckWorkspace, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		workspace: workspace,
		logger:    logger.With("component", "deck_handler"),
	}
}

// mutation applies one editor operation and renders the resulting deck.
type mutation func(ctx context.Context, editor *service.DeckEditor) (domain.Document, error)

// CreateDeck handles POST /api/decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	editor, err := h.workspace.Create(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	doc, revision := editor.Snapshot()
	w.Header().Set("Location", "/api/decks/"+editor.ID().String())
	shared.RespondWithJSON(w, r, http.StatusCreated, DeckResponse{
		ID:       editor.ID(),
		Revision: revision,
		Document: doc,
	})
}

// ListDecks handles GET /api/decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, DeckListResponse{Decks: h.workspace.List()})
}

// GetDeck handles GET /api/decks/{id}
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.editorFromPath(w, r)
	if !ok {
		return
	}

	doc, revision := editor.Snapshot()
	shared.RespondWithJSON(w, r, http.StatusOK, DeckResponse{
		ID:       editor.ID(),
		Revision: revision,
		Document: doc,
	})
}

// DeleteDeck handles DELETE /api/decks/{id}
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.workspace.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateSlide handles POST /api/decks/{id}/slides
func (h *DeckHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, http.StatusCreated, func(ctx context.Context, e *service.DeckEditor) (domain.Document, error) {
		return e.CreateSlide(ctx)
	})
}

// ResetSlides handles POST /api/decks/{id}/reset
func (h *DeckHandler) ResetSlides(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, http.StatusOK, func(ctx context.Context, e *service.DeckEditor) (domain.Document, error) {
		return e.ResetSlides(ctx)
	})
}

// DeleteSlide handles DELETE /api/decks/{id}/slides/{slideID}
func (h *DeckHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	slideID := chi.URLParam(r, "slideID")
	if slideID == "" {
		HandleAPIError(w, r, domain.NewValidationError("slideID", "is required", domain.ErrInvalidID), "")
		return
	}
	h.mutate(w, r, http.StatusOK, func(ctx context.Context, e *service.DeckEditor) (domain.Document, error) {
		return e.DeleteSlide(ctx, slideID)
	})
}

// DeleteSlides handles POST /api/decks/{id}/slides/delete
func (h *DeckHandler) DeleteSlides(w http.ResponseWriter, r *http.Request) {
	var req DeleteSlidesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.mutate(w, r, http.StatusOK, func(ctx context.Context, e *service.DeckEditor) (domain.Document, error) {
		return e.DeleteSlide(ctx, req.IDs...)
	})
}

// UpdateSlidesList handles PUT /api/decks/{id}/slides
func (h *DeckHandler) UpdateSlidesList(w http.ResponseWriter, r *http.Request) {
	var req UpdateSlidesListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.mutate(w, r, http.StatusOK, func(ctx context.Context, e *service.DeckEditor) (domain.Document, error) {
		return e.UpdateSlidesList(ctx, req.Slides)
	})
}

// UpdateCurrentSlide handles PATCH /api/decks/{id}/slides/current
func (h *DeckHandler) UpdateCurrentSlide(w http.ResponseWriter, r *http.Request) {
	var patch service.SlidePatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		if errors.Is(err, service.ErrInvalidPatch) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	h.mutate(w, r, http.StatusOK, func(ctx context.Context, e *service.DeckEditor) (domain.Document, error) {
		return e.UpdateSlide(ctx, patch)
	})
}

// SetSlideIndex handles PUT /api/decks/{id}/index
func (h *DeckHandler) SetSlideIndex(w http.ResponseWriter, r *http.Request) {
	var req SetSlideIndexRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.mutate(w, r, http.StatusOK, func(ctx context.Context, e *service.DeckEditor) (domain.Document, error) {
		return e.SetSlideIndex(ctx, *req.Index)
	})
}

// SetTheme handles PUT /api/decks/{id}/theme
func (h *DeckHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var theme domain.Theme
	if !decodeAndValidate(w, r, &theme) {
		return
	}
	h.mutate(w, r, http.StatusOK, func(ctx context.Context, e *service.DeckEditor) (domain.Document, error) {
		return e.SetTheme(ctx, theme)
	})
}

// editorFromPath resolves the {id} path parameter to an open deck.
func (h *DeckHandler) editorFromPath(w http.ResponseWriter, r *http.Request) (*service.DeckEditor, bool) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return nil, false
	}

	editor, err := h.workspace.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return editor, true
}

// mutate runs op against the deck named in the path and renders the deck.
// On failure only the error is reported; state the editor kept (such as the
// blank-slide fallback of an empty slide list) is readable through GetDeck.
func (h *DeckHandler) mutate(w http.ResponseWriter, r *http.Request, status int, op mutation) {
	editor, ok := h.editorFromPath(w, r)
	if !ok {
		return
	}

	if _, err := op(r.Context(), editor); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Read the document and revision together; a concurrent request may
	// already have moved the deck past the state op returned.
	doc, revision := editor.Snapshot()
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("deck mutated",
		"deck_id", editor.ID(),
		"revision", revision,
		"path", r.URL.Path)
	shared.RespondWithJSON(w, r, status, DeckResponse{
		ID:       editor.ID(),
		Revision: revision,
		Document: doc,
	})
}

// Routes registers the deck endpoints on r.
func (h *DeckHandler) Routes(r chi.Router) {
	r.Post("/decks", h.CreateDeck)
	r.Get("/decks", h.ListDecks)
	r.Route("/decks/{id}", func(r chi.Router) {
		r.Get("/", h.GetDeck)
		r.Delete("/", h.DeleteDeck)
		r.Post("/reset", h.ResetSlides)
		r.Put("/index", h.SetSlideIndex)
		r.Put("/theme", h.SetTheme)
		r.Post("/slides", h.CreateSlide)
		r.Put("/slides", h.UpdateSlidesList)
		r.Post("/slides/delete", h.DeleteSlides)
		r.Patch("/slides/current", h.UpdateCurrentSlide)
		r.Delete("/slides/{slideID}", h.DeleteSlide)
	})
}
