package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/domain"
	"github.com/phrazzld/slidedeck/internal/events"
	"github.com/phrazzld/slidedeck/internal/store"
)

// DeckRepository is the persistence view the workspace needs. store.DeckStore
// satisfies it.
type DeckRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*store.DeckSnapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeckSummary describes an open deck.
type DeckSummary struct {
	ID         uuid.UUID `json:"id"`
	Revision   int64     `json:"revision"`
	SlideCount int       `json:"slide_count"`
	SlideIndex int       `json:"slide_index"`
}

// Workspace holds the open decks. Each deck is edited independently; the
// workspace lock only guards the registry.
type Workspace struct {
	theme   domain.Theme
	cfg     EditorConfig
	emitter events.EventEmitter
	repo    DeckRepository
	opts    []EditorOption
	logger  *slog.Logger

	mu    sync.RWMutex
	decks map[uuid.UUID]*DeckEditor
}

// NewWorkspace creates a workspace whose new decks start from theme. repo
// may be nil, in which case decks live only in memory.
func NewWorkspace(
	theme domain.Theme,
	cfg EditorConfig,
	emitter events.EventEmitter,
	repo DeckRepository,
	logger *slog.Logger,
	opts ...EditorOption,
) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		theme:   theme,
		cfg:     cfg,
		emitter: emitter,
		repo:    repo,
		opts:    opts,
		logger:  logger,
		decks:   make(map[uuid.UUID]*DeckEditor),
	}
}

// Create opens a new deck with a single blank slide and announces it.
func (w *Workspace) Create(ctx context.Context) (*DeckEditor, error) {
	w.mu.RLock()
	theme := w.theme
	w.mu.RUnlock()

	editor, err := NewDeckEditor(theme, w.cfg, w.emitter, w.logger, w.opts...)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.decks[editor.ID()] = editor
	w.mu.Unlock()

	editor.mu.Lock()
	editor.publish(ctx, events.OperationCreateDeck)
	editor.mu.Unlock()

	w.logger.Info("deck created", "deck_id", editor.ID())
	return editor, nil
}

// Get returns the open editor for id, restoring it from the repository when
// it is not in memory.
func (w *Workspace) Get(ctx context.Context, id uuid.UUID) (*DeckEditor, error) {
	w.mu.RLock()
	editor, ok := w.decks[id]
	w.mu.RUnlock()
	if ok {
		return editor, nil
	}

	if w.repo == nil {
		return nil, ErrDeckNotFound
	}

	snapshot, err := w.repo.Get(ctx, id)
	if err != nil {
		return nil, NewDeckServiceError("get_deck", "failed to load deck", err)
	}

	restored, err := RestoreDeckEditor(snapshot.ID, snapshot.Revision, snapshot.Document,
		w.cfg, w.emitter, w.logger, w.opts...)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Another request may have restored the deck meanwhile.
	if existing, ok := w.decks[id]; ok {
		return existing, nil
	}
	w.decks[id] = restored
	w.logger.Info("deck restored", "deck_id", id, "revision", snapshot.Revision)
	return restored, nil
}

// Delete closes the deck and removes its persisted snapshot.
func (w *Workspace) Delete(ctx context.Context, id uuid.UUID) error {
	w.mu.Lock()
	_, open := w.decks[id]
	delete(w.decks, id)
	w.mu.Unlock()

	if w.repo == nil {
		if !open {
			return ErrDeckNotFound
		}
		return nil
	}

	if err := w.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrDeckNotFound) && open {
			// Never persisted yet.
			return nil
		}
		return NewDeckServiceError("delete_deck", "failed to delete deck", err)
	}
	w.logger.Info("deck deleted", "deck_id", id)
	return nil
}

// List summarizes the open decks ordered by id.
func (w *Workspace) List() []DeckSummary {
	w.mu.RLock()
	editors := make([]*DeckEditor, 0, len(w.decks))
	for _, e := range w.decks {
		editors = append(editors, e)
	}
	w.mu.RUnlock()

	out := make([]DeckSummary, 0, len(editors))
	for _, e := range editors {
		e.mu.RLock()
		out = append(out, DeckSummary{
			ID:         e.id,
			Revision:   e.revision,
			SlideCount: len(e.doc.Slides),
			SlideIndex: e.doc.SlideIndex,
		})
		e.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// SetDefaultTheme changes the theme given to decks created afterwards.
func (w *Workspace) SetDefaultTheme(theme domain.Theme) error {
	if err := theme.Validate(); err != nil {
		return invariantError("set_default_theme", "invalid theme", err)
	}
	w.mu.Lock()
	w.theme = theme
	w.mu.Unlock()
	return nil
}
