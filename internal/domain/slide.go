package domain

import "fmt"

// BackgroundType discriminates the populated fields of a Background.
type BackgroundType string

// Background types.
const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundImage    BackgroundType = "image"
	BackgroundGradient BackgroundType = "gradient"
)

// ImageSize is the fill mode of an image background.
type ImageSize string

// Image fill modes.
const (
	ImageSizeCover   ImageSize = "cover"
	ImageSizeContain ImageSize = "contain"
	ImageSizeRepeat  ImageSize = "repeat"
)

// GradientType selects linear or radial gradients.
type GradientType string

// Gradient types.
const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// Background is the page-level fill of a slide. Only the fields relevant to
// Type are populated; the rest stay absent rather than defaulted.
type Background struct {
	Type           BackgroundType `json:"type"                     validate:"required,oneof=solid image gradient"`
	Color          string         `json:"color,omitempty"`
	Image          string         `json:"image,omitempty"`
	ImageSize      ImageSize      `json:"imageSize,omitempty"      validate:"omitempty,oneof=cover contain repeat"`
	GradientType   GradientType   `json:"gradientType,omitempty"   validate:"omitempty,oneof=linear radial"`
	GradientColor  *[2]string     `json:"gradientColor,omitempty"`
	GradientRotate *float64       `json:"gradientRotate,omitempty"`
}

// SolidBackground returns a solid background of the given color.
func SolidBackground(color string) Background {
	return Background{Type: BackgroundSolid, Color: color}
}

// Validate checks the background against its type.
func (b Background) Validate() error {
	return validateStruct(b)
}

// Clone returns a deep copy of the background.
func (b Background) Clone() Background {
	b.GradientColor = clonePtr(b.GradientColor)
	b.GradientRotate = clonePtr(b.GradientRotate)
	return b
}

// Animation binds an entrance/exit effect to an element of the same slide.
type Animation struct {
	ElID     string  `json:"elId"     validate:"required"`
	Type     string  `json:"type"     validate:"required"`
	Duration float64 `json:"duration" validate:"gte=0"`
}

// TurningMode is the transition played when the slide is entered.
type TurningMode string

// Transition modes.
const (
	TurningNone   TurningMode = "no"
	TurningFade   TurningMode = "fade"
	TurningSlideX TurningMode = "slideX"
	TurningSlideY TurningMode = "slideY"
)

// Slide is one page of the deck. Elements are ordered: their position is the
// z-order and tab order, and is preserved by every mutation that does not
// explicitly reorder.
type Slide struct {
	ID          string      `json:"id"                    validate:"required"`
	Elements    ElementList `json:"elements"`
	Remark      string      `json:"remark,omitempty"`
	Background  *Background `json:"background,omitempty"`
	Animations  []Animation `json:"animations,omitempty"  validate:"omitempty,dive"`
	TurningMode TurningMode `json:"turningMode,omitempty" validate:"omitempty,oneof=no fade slideX slideY"`
}

// NewBlankSlide builds an empty slide whose solid background takes the
// theme's background color. The caller supplies the identifier so that
// uniqueness can be enforced against the owning document.
func NewBlankSlide(id string, theme Theme) Slide {
	bg := SolidBackground(theme.BackgroundColor)
	return Slide{
		ID:         id,
		Elements:   ElementList{},
		Background: &bg,
	}
}

// Validate checks the slide and every element on it, including element id
// uniqueness within the slide.
func (s Slide) Validate() error {
	if err := validateStruct(s); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(s.Elements))
	for i, el := range s.Elements {
		if el == nil {
			return NewValidationError(fmt.Sprintf("elements[%d]", i), "is null", ErrInvalidElement)
		}
		if err := el.Validate(); err != nil {
			return fmt.Errorf("slide %s element %d: %w", s.ID, i, err)
		}
		id := el.Base().ID
		if _, dup := seen[id]; dup {
			return NewValidationError(
				fmt.Sprintf("elements[%d].id", i),
				fmt.Sprintf("%q is used more than once on slide %s", id, s.ID),
				ErrDuplicateID,
			)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ElementIDs returns the identifiers of the slide's elements in order.
func (s Slide) ElementIDs() []string {
	ids := make([]string, 0, len(s.Elements))
	for _, el := range s.Elements {
		ids = append(ids, el.Base().ID)
	}
	return ids
}

// GroupMembers returns the elements sharing groupID, in slide order.
func (s Slide) GroupMembers(groupID string) []Element {
	if groupID == "" {
		return nil
	}
	var members []Element
	for _, el := range s.Elements {
		if el.Base().GroupID == groupID {
			members = append(members, el)
		}
	}
	return members
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := s
	out.Elements = s.Elements.Clone()
	if s.Background != nil {
		bg := s.Background.Clone()
		out.Background = &bg
	}
	if s.Animations != nil {
		out.Animations = make([]Animation, len(s.Animations))
		copy(out.Animations, s.Animations)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
