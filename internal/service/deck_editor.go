package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/domain"
	"github.com/phrazzld/slidedeck/internal/events"
	"github.com/phrazzld/slidedeck/internal/idgen"
	"github.com/phrazzld/slidedeck/internal/platform/logger"
)

// EditorConfig tunes identifier allocation and index handling.
type EditorConfig struct {
	// IDLength is the length of generated slide identifiers.
	IDLength int
	// MaxIDAttempts bounds redraws when a generated id collides.
	MaxIDAttempts int
	// StrictIndex rejects out-of-range SetSlideIndex calls instead of clamping.
	StrictIndex bool
}

// DefaultEditorConfig returns the configuration used when none is supplied.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		IDLength:      idgen.DefaultLength,
		MaxIDAttempts: idgen.DefaultMaxAttempts,
	}
}

func (c EditorConfig) withDefaults() EditorConfig {
	if c.IDLength <= 0 {
		c.IDLength = idgen.DefaultLength
	}
	if c.MaxIDAttempts <= 0 {
		c.MaxIDAttempts = idgen.DefaultMaxAttempts
	}
	return c
}

// EditorOption customizes a DeckEditor at construction.
type EditorOption func(*DeckEditor)

// WithIDGenerator replaces the crypto/rand backed identifier generator.
func WithIDGenerator(g *idgen.Generator) EditorOption {
	return func(e *DeckEditor) {
		if g != nil {
			e.ids = g
		}
	}
}

// WithDeckID fixes the deck identifier instead of generating one.
func WithDeckID(id uuid.UUID) EditorOption {
	return func(e *DeckEditor) {
		e.id = id
	}
}

// DeckEditor is the mutation engine for a single document. All mutations
// serialize on its lock; reads return deep copies.
type DeckEditor struct {
	id      uuid.UUID
	cfg     EditorConfig
	ids     *idgen.Generator
	emitter events.EventEmitter
	logger  *slog.Logger

	mu       sync.RWMutex
	doc      domain.Document
	revision int64
}

func newEditor(cfg EditorConfig, emitter events.EventEmitter, log *slog.Logger, opts []EditorOption) *DeckEditor {
	if log == nil {
		log = slog.Default()
	}
	e := &DeckEditor{
		id:      uuid.New(),
		cfg:     cfg.withDefaults(),
		ids:     idgen.New(),
		emitter: emitter,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = log.With("component", "deck_editor")
	return e
}

// NewDeckEditor creates an editor holding a single blank slide styled by theme.
func NewDeckEditor(
	theme domain.Theme,
	cfg EditorConfig,
	emitter events.EventEmitter,
	log *slog.Logger,
	opts ...EditorOption,
) (*DeckEditor, error) {
	if err := theme.Validate(); err != nil {
		return nil, invariantError("create_deck", "invalid theme", err)
	}

	e := newEditor(cfg, emitter, log, opts)
	first, err := e.blankSlide(nil, theme)
	if err != nil {
		return nil, NewDeckServiceError("create_deck", "failed to create first slide", err)
	}
	e.doc = domain.NewDocument(first, theme)
	return e, nil
}

// RestoreDeckEditor rebuilds an editor from a persisted document.
func RestoreDeckEditor(
	id uuid.UUID,
	revision int64,
	doc domain.Document,
	cfg EditorConfig,
	emitter events.EventEmitter,
	log *slog.Logger,
	opts ...EditorOption,
) (*DeckEditor, error) {
	if err := doc.Validate(); err != nil {
		return nil, invariantError("restore_deck", "persisted document is invalid", err)
	}
	e := newEditor(cfg, emitter, log, append([]EditorOption{WithDeckID(id)}, opts...))
	e.doc = doc.Clone()
	e.revision = revision
	return e, nil
}

// ID returns the deck identifier.
func (e *DeckEditor) ID() uuid.UUID {
	return e.id
}

// Revision returns the number of mutations applied so far.
func (e *DeckEditor) Revision() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// Document returns a deep copy of the current document.
func (e *DeckEditor) Document() domain.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone()
}

// Snapshot returns the document together with the revision it belongs to.
func (e *DeckEditor) Snapshot() (domain.Document, int64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone(), e.revision
}

// Slides returns a deep copy of the slide sequence.
func (e *DeckEditor) Slides() []domain.Slide {
	return e.Document().Slides
}

// SlideIndex returns the active slide index.
func (e *DeckEditor) SlideIndex() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.SlideIndex
}

// Theme returns the theme consulted for new slides.
func (e *DeckEditor) Theme() domain.Theme {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Theme
}

// CurrentSlide returns a deep copy of the slide at the active index.
func (e *DeckEditor) CurrentSlide() domain.Slide {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Slides[e.doc.SlideIndex].Clone()
}

// CreateSlide appends a blank slide built from the current theme. The
// active index does not move.
func (e *DeckEditor) CreateSlide(ctx context.Context) (domain.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slide, err := e.blankSlide(e.doc.SlideIDs(), e.doc.Theme)
	if err != nil {
		return e.doc.Clone(), NewDeckServiceError("create_slide", "failed to allocate slide id", err)
	}

	next := e.doc
	next.Slides = make([]domain.Slide, len(e.doc.Slides), len(e.doc.Slides)+1)
	copy(next.Slides, e.doc.Slides)
	next.Slides = append(next.Slides, slide)

	e.log(ctx).Debug("slide created", "slide_id", slide.ID, "slide_count", len(next.Slides))
	return e.commit(ctx, events.OperationCreateSlide, next), nil
}

// ResetSlides discards every slide and installs one blank slide at index 0.
func (e *DeckEditor) ResetSlides(ctx context.Context) (domain.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.resetLocked()
	if err != nil {
		return e.doc.Clone(), NewDeckServiceError("reset_slides", "failed to allocate slide id", err)
	}
	return e.commit(ctx, events.OperationResetSlides, next), nil
}

// DeleteSlide removes every slide whose id is in ids. Unknown ids are
// ignored. Removing the last slide installs a blank one, and the active
// index is clamped to the new length.
func (e *DeckEditor) DeleteSlide(ctx context.Context, ids ...string) (domain.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	targets := make(map[string]bool, len(ids))
	for _, id := range ids {
		targets[id] = false
	}

	remaining := make([]domain.Slide, 0, len(e.doc.Slides))
	for _, s := range e.doc.Slides {
		if _, ok := targets[s.ID]; ok {
			targets[s.ID] = true
			continue
		}
		remaining = append(remaining, s)
	}

	for id, matched := range targets {
		if !matched {
			e.log(ctx).Debug("slide not found, nothing to delete", "slide_id", id)
		}
	}
	if len(remaining) == len(e.doc.Slides) {
		return e.doc.Clone(), nil
	}

	var next domain.Document
	if len(remaining) == 0 {
		var err error
		next, err = e.resetLocked()
		if err != nil {
			return e.doc.Clone(), NewDeckServiceError("delete_slide", "failed to allocate fallback slide id", err)
		}
		e.log(ctx).Info("last slide deleted, installed blank slide", "slide_id", next.Slides[0].ID)
	} else {
		next = e.doc
		next.Slides = remaining
		next.SlideIndex = min(e.doc.SlideIndex, len(remaining)-1)
	}

	return e.commit(ctx, events.OperationDeleteSlide, next), nil
}

// UpdateSlidesList replaces the slide sequence wholesale.
//
// An empty list is rejected: the document falls back to a single blank
// slide and ErrInvariantViolation is returned alongside it. Any other
// invalid list (duplicate ids, malformed elements) is rejected with the
// state left unchanged.
func (e *DeckEditor) UpdateSlidesList(ctx context.Context, slides []domain.Slide) (domain.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	const op = "update_slides_list"

	if len(slides) == 0 {
		next, err := e.resetLocked()
		if err != nil {
			return e.doc.Clone(), NewDeckServiceError(op, "failed to allocate fallback slide id", err)
		}
		e.log(ctx).Warn("empty slide list rejected, installed blank slide", "slide_id", next.Slides[0].ID)
		doc := e.commit(ctx, events.OperationUpdateSlidesList, next)
		return doc, invariantError(op, "slide list is empty", domain.ErrEmptyDocument)
	}

	if err := domain.ValidateSlides(slides); err != nil {
		e.log(ctx).Warn("slide list rejected", "error", err, "slide_count", len(slides))
		return e.doc.Clone(), invariantError(op, "slide list is invalid", err)
	}

	next := e.doc
	next.Slides = make([]domain.Slide, len(slides))
	for i, s := range slides {
		next.Slides[i] = s.Clone()
		if next.Slides[i].Elements == nil {
			next.Slides[i].Elements = domain.ElementList{}
		}
	}
	next.SlideIndex = min(e.doc.SlideIndex, len(next.Slides)-1)

	return e.commit(ctx, events.OperationUpdateSlidesList, next), nil
}

// UpdateSlide merges patch into the slide at the active index. Fields the
// patch does not name are left untouched, as are all other slides.
func (e *DeckEditor) UpdateSlide(ctx context.Context, patch SlidePatch) (domain.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if patch.IsEmpty() {
		return e.doc.Clone(), nil
	}

	idx := e.doc.SlideIndex
	updated := patch.ApplyTo(e.doc.Slides[idx])
	if err := updated.Validate(); err != nil {
		e.log(ctx).Warn("slide patch rejected", "error", err, "slide_id", updated.ID)
		return e.doc.Clone(), invariantError("update_slide", "patched slide is invalid", err)
	}

	next := e.doc
	next.Slides = make([]domain.Slide, len(e.doc.Slides))
	copy(next.Slides, e.doc.Slides)
	next.Slides[idx] = updated

	e.log(ctx).Debug("slide updated", "slide_id", updated.ID, "fields", patch.Fields())
	return e.commit(ctx, events.OperationUpdateSlide, next), nil
}

// SetSlideIndex moves the active slide. Out-of-range values are clamped,
// or rejected with ErrInvalidSlideIndex when StrictIndex is set.
func (e *DeckEditor) SetSlideIndex(ctx context.Context, index int) (domain.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	last := len(e.doc.Slides) - 1
	if index < 0 || index > last {
		if e.cfg.StrictIndex {
			return e.doc.Clone(), NewDeckServiceError("set_slide_index",
				fmt.Sprintf("index %d outside [0, %d]", index, last), ErrInvalidSlideIndex)
		}
		clamped := max(0, min(index, last))
		e.log(ctx).Warn("slide index out of range, clamped", "requested", index, "index", clamped)
		index = clamped
	}

	if index == e.doc.SlideIndex {
		return e.doc.Clone(), nil
	}

	next := e.doc
	next.SlideIndex = index
	return e.commit(ctx, events.OperationSetSlideIndex, next), nil
}

// SetTheme replaces the theme. Existing slides keep their styling; only
// slides created afterwards pick up the new values.
func (e *DeckEditor) SetTheme(ctx context.Context, theme domain.Theme) (domain.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := theme.Validate(); err != nil {
		return e.doc.Clone(), invariantError("set_theme", "invalid theme", err)
	}
	if theme == e.doc.Theme {
		return e.doc.Clone(), nil
	}

	next := e.doc
	next.Theme = theme
	return e.commit(ctx, events.OperationSetTheme, next), nil
}

// resetLocked builds the single-blank-slide document. The fresh id avoids
// every id currently in use so the replacement is distinguishable.
func (e *DeckEditor) resetLocked() (domain.Document, error) {
	slide, err := e.blankSlide(e.doc.SlideIDs(), e.doc.Theme)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.NewDocument(slide, e.doc.Theme), nil
}

func (e *DeckEditor) blankSlide(taken []string, theme domain.Theme) (domain.Slide, error) {
	used := make(map[string]struct{}, len(taken))
	for _, id := range taken {
		used[id] = struct{}{}
	}
	id, err := e.ids.Unique(e.cfg.IDLength, e.cfg.MaxIDAttempts, func(candidate string) bool {
		_, ok := used[candidate]
		return ok
	})
	if err != nil {
		if errors.Is(err, idgen.ErrExhausted) {
			return domain.Slide{}, fmt.Errorf("%w: %w", ErrIdentifierExhausted, err)
		}
		return domain.Slide{}, err
	}
	return domain.NewBlankSlide(id, theme), nil
}

// commit installs next, bumps the revision and notifies observers while the
// lock is still held, so events are delivered in revision order.
func (e *DeckEditor) commit(ctx context.Context, op events.Operation, next domain.Document) domain.Document {
	e.doc = next
	e.revision++
	e.publish(ctx, op)
	return e.doc.Clone()
}

func (e *DeckEditor) publish(ctx context.Context, op events.Operation) {
	if e.emitter == nil {
		return
	}
	event := events.NewDocumentChangedEvent(e.id, op, e.revision, events.ActorFromContext(ctx), e.doc.Clone())
	if err := e.emitter.EmitEvent(ctx, event); err != nil {
		e.log(ctx).Error("document change handler failed",
			"error", err,
			"operation", op,
			"revision", e.revision)
	}
}

func (e *DeckEditor) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, e.logger).With("deck_id", e.id)
}
