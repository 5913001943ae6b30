package domain

import "fmt"

// Document is the full in-memory deck: the ordered slides, the active slide
// index and the theme consulted for new entities.
//
// A valid Document always has at least one slide and
// 0 <= SlideIndex < len(Slides).
type Document struct {
	Slides     []Slide `json:"slides"`
	SlideIndex int     `json:"slideIndex"`
	Theme      Theme   `json:"theme"`
}

// NewDocument returns a document holding the single given slide.
func NewDocument(first Slide, theme Theme) Document {
	return Document{
		Slides:     []Slide{first},
		SlideIndex: 0,
		Theme:      theme,
	}
}

// Validate checks the structural invariants of the document: non-empty,
// index in range, slide ids unique, and every slide valid.
func (d Document) Validate() error {
	if len(d.Slides) == 0 {
		return NewValidationError("slides", "is empty", ErrEmptyDocument)
	}
	if d.SlideIndex < 0 || d.SlideIndex >= len(d.Slides) {
		return NewValidationError(
			"slideIndex",
			fmt.Sprintf("%d outside [0, %d)", d.SlideIndex, len(d.Slides)),
			ErrSlideIndexOutOfRange,
		)
	}
	if err := d.Theme.Validate(); err != nil {
		return err
	}
	return ValidateSlides(d.Slides)
}

// ValidateSlides checks each slide and that slide ids are unique within the
// sequence. It does not require the sequence to be non-empty.
func ValidateSlides(slides []Slide) error {
	seen := make(map[string]struct{}, len(slides))
	for i, s := range slides {
		if _, dup := seen[s.ID]; dup {
			return NewValidationError(
				fmt.Sprintf("slides[%d].id", i),
				fmt.Sprintf("%q is used more than once", s.ID),
				ErrDuplicateID,
			)
		}
		seen[s.ID] = struct{}{}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SlideIDs returns the slide identifiers in order.
func (d Document) SlideIDs() []string {
	ids := make([]string, len(d.Slides))
	for i, s := range d.Slides {
		ids[i] = s.ID
	}
	return ids
}

// IndexOf returns the position of the slide with the given id, or -1.
func (d Document) IndexOf(slideID string) int {
	for i, s := range d.Slides {
		if s.ID == slideID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	if d.Slides != nil {
		out.Slides = make([]Slide, len(d.Slides))
		for i, s := range d.Slides {
			out.Slides[i] = s.Clone()
		}
	}
	return out
}
