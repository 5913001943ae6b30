package domain

import (
	"encoding/json"
	"fmt"
)

// ElementType is the discriminator of the element union.
type ElementType string

// Element types. Shape, table, latex, video and audio have no attributes of
// their own in this model and are carried as PlaceholderElement.
const (
	ElementText  ElementType = "text"
	ElementImage ElementType = "image"
	ElementShape ElementType = "shape"
	ElementLine  ElementType = "line"
	ElementTable ElementType = "table"
	ElementLatex ElementType = "latex"
	ElementVideo ElementType = "video"
	ElementAudio ElementType = "audio"
)

// IsPlaceholder reports whether t is one of the attribute-less variants.
func (t ElementType) IsPlaceholder() bool {
	switch t {
	case ElementShape, ElementTable, ElementLatex, ElementVideo, ElementAudio:
		return true
	default:
		return false
	}
}

// Element is one placed object on a slide. The set of implementations is
// closed: *TextElement, *ImageElement, *LineElement and *PlaceholderElement.
type Element interface {
	// Type returns the variant tag.
	Type() ElementType
	// Base exposes the attributes shared by every variant.
	Base() *ElementBase
	// Validate checks the element's own invariants.
	Validate() error
	// Clone returns a deep copy.
	Clone() Element

	isElement()
}

// LinkType is the kind of hyperlink target.
type LinkType string

// Link kinds.
const (
	LinkWeb   LinkType = "web"
	LinkSlide LinkType = "slide"
)

// Link points at a URL or at another slide of the document by id.
type Link struct {
	Type   LinkType `json:"type"   validate:"required,oneof=web slide"`
	Target string   `json:"target" validate:"required"`
}

// ElementBase holds the attributes every variant shares.
//
// GroupID is a relation, not a container: elements with the same GroupID
// belong to one logical group that no entity owns.
type ElementBase struct {
	ID      string  `json:"id"                validate:"required"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Width   float64 `json:"width"`
	Lock    bool    `json:"lock,omitempty"`
	GroupID string  `json:"groupId,omitempty"`
	Link    *Link   `json:"link,omitempty"`
}

// Base returns b itself so embedding structs satisfy Element.Base.
func (b *ElementBase) Base() *ElementBase { return b }

func (b ElementBase) clone() ElementBase {
	b.Link = clonePtr(b.Link)
	return b
}

// Box is the bounding-box extent carried by every variant except lines.
type Box struct {
	Height float64 `json:"height"`
	Rotate float64 `json:"rotate"`
}

// OutlineStyle is the stroke pattern of an outline.
type OutlineStyle string

// Outline styles.
const (
	OutlineSolid  OutlineStyle = "solid"
	OutlineDashed OutlineStyle = "dashed"
)

// Outline is an element border. Every field is optional on its own.
type Outline struct {
	Style OutlineStyle `json:"style,omitempty" validate:"omitempty,oneof=dashed solid"`
	Width *float64     `json:"width,omitempty" validate:"omitempty,gte=0"`
	Color string       `json:"color,omitempty"`
}

func (o *Outline) clone() *Outline {
	if o == nil {
		return nil
	}
	out := *o
	out.Width = clonePtr(o.Width)
	return &out
}

// Shadow is either fully specified or absent.
type Shadow struct {
	H     float64 `json:"h"`
	V     float64 `json:"v"`
	Blur  float64 `json:"blur"  validate:"gte=0"`
	Color string  `json:"color" validate:"required"`
}

// TextElement is a rich-text box. Content is an HTML string whose inline
// styles override DefaultFontName and DefaultColor.
type TextElement struct {
	ElementBase
	Box
	Content         string   `json:"content"`
	DefaultFontName string   `json:"defaultFontName"`
	DefaultColor    string   `json:"defaultColor"`
	Outline         *Outline `json:"outline,omitempty"`
	Fill            string   `json:"fill,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty" validate:"omitempty,gt=0"`
	WordSpace       *float64 `json:"wordSpace,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty"    validate:"omitempty,gte=0,lte=1"`
	Shadow          *Shadow  `json:"shadow,omitempty"`
	FontSize        string   `json:"fontSize,omitempty"`
	TextDecoration  string   `json:"textDecoration,omitempty"`
	FontStyle       string   `json:"fontStyle,omitempty"`
	FontWeight      *int     `json:"fontWeight,omitempty"`
}

// Default text rendering values applied when the optional field is absent.
const (
	DefaultLineHeight = 1.5
	DefaultWordSpace  = 0.0
	DefaultOpacity    = 1.0
)

// NewTextElement creates a text element styled from the theme.
func NewTextElement(id string, left, top, width, height float64, content string, theme Theme) *TextElement {
	return &TextElement{
		ElementBase:     ElementBase{ID: id, Left: left, Top: top, Width: width},
		Box:             Box{Height: height},
		Content:         content,
		DefaultFontName: theme.FontName,
		DefaultColor:    theme.FontColor,
	}
}

// Type implements Element.
func (e *TextElement) Type() ElementType { return ElementText }

// Validate implements Element.
func (e *TextElement) Validate() error { return validateStruct(e) }

// Clone implements Element.
func (e *TextElement) Clone() Element {
	if e == nil {
		return nil
	}
	out := *e
	out.ElementBase = e.ElementBase.clone()
	out.Outline = e.Outline.clone()
	out.LineHeight = clonePtr(e.LineHeight)
	out.WordSpace = clonePtr(e.WordSpace)
	out.Opacity = clonePtr(e.Opacity)
	out.Shadow = clonePtr(e.Shadow)
	out.FontWeight = clonePtr(e.FontWeight)
	return &out
}

// EffectiveLineHeight returns LineHeight or its default.
func (e *TextElement) EffectiveLineHeight() float64 {
	if e.LineHeight == nil {
		return DefaultLineHeight
	}
	return *e.LineHeight
}

// EffectiveOpacity returns Opacity or its default.
func (e *TextElement) EffectiveOpacity() float64 {
	if e.Opacity == nil {
		return DefaultOpacity
	}
	return *e.Opacity
}

func (e *TextElement) isElement() {}

// ImageFilters are CSS filter values. An empty field means the filter's
// implicit default, see Resolved.
type ImageFilters struct {
	Blur       string `json:"blur,omitempty"`
	Brightness string `json:"brightness,omitempty"`
	Contrast   string `json:"contrast,omitempty"`
	Grayscale  string `json:"grayscale,omitempty"`
	Saturate   string `json:"saturate,omitempty"`
	HueRotate  string `json:"hue-rotate,omitempty"`
	Opacity    string `json:"opacity,omitempty"`
}

// Resolved returns a copy with every unset filter replaced by its default.
func (f ImageFilters) Resolved() ImageFilters {
	def := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return ImageFilters{
		Blur:       def(f.Blur, "0px"),
		Brightness: def(f.Brightness, "100%"),
		Contrast:   def(f.Contrast, "100%"),
		Grayscale:  def(f.Grayscale, "0%"),
		Saturate:   def(f.Saturate, "100%"),
		HueRotate:  def(f.HueRotate, "0deg"),
		Opacity:    def(f.Opacity, "100%"),
	}
}

// ImageClip crops an image to a normalized range, e.g. [[10,10],[90,90]]
// keeps 10%..90% on both axes, masked by a named clip shape.
type ImageClip struct {
	Range [2][2]float64 `json:"range"`
	Shape string        `json:"shape" validate:"required"`
}

// ImageElement is a placed picture.
type ImageElement struct {
	ElementBase
	Box
	FixedRatio bool          `json:"fixedRatio"`
	Src        string        `json:"src"              validate:"required"`
	Outline    *Outline      `json:"outline,omitempty"`
	Filters    *ImageFilters `json:"filters,omitempty"`
	Clip       *ImageClip    `json:"clip,omitempty"`
	FlipH      bool          `json:"flipH,omitempty"`
	FlipV      bool          `json:"flipV,omitempty"`
	Shadow     *Shadow       `json:"shadow,omitempty"`
}

// Type implements Element.
func (e *ImageElement) Type() ElementType { return ElementImage }

// Validate implements Element.
func (e *ImageElement) Validate() error {
	if err := validateStruct(e); err != nil {
		return err
	}
	if e.Clip != nil {
		r := e.Clip.Range
		if r[0][0] > r[1][0] || r[0][1] > r[1][1] {
			return NewValidationError("clip.range", "start must not exceed end", ErrInvalidElement)
		}
	}
	return nil
}

// Clone implements Element.
func (e *ImageElement) Clone() Element {
	if e == nil {
		return nil
	}
	out := *e
	out.ElementBase = e.ElementBase.clone()
	out.Outline = e.Outline.clone()
	out.Filters = clonePtr(e.Filters)
	out.Clip = clonePtr(e.Clip)
	out.Shadow = clonePtr(e.Shadow)
	return &out
}

func (e *ImageElement) isElement() {}

// Point is an absolute [x, y] position.
type Point [2]float64

// LineStyle is the stroke pattern of a line.
type LineStyle string

// Line styles.
const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// LinePoint decorates a line endpoint.
type LinePoint string

// Endpoint decorations.
const (
	LinePointNone  LinePoint = ""
	LinePointArrow LinePoint = "arrow"
	LinePointDot   LinePoint = "dot"
)

// LineElement is a segment between two points. It has no Box: its extent
// derives from Start and End. Broken (a polyline elbow) and Curve (a control
// point) describe alternate renderings of the same endpoints.
type LineElement struct {
	ElementBase
	Start  Point        `json:"start"`
	End    Point        `json:"end"`
	Style  LineStyle    `json:"style"            validate:"required,oneof=solid dashed"`
	Color  string       `json:"color"`
	Points [2]LinePoint `json:"points"           validate:"dive,omitempty,oneof=arrow dot"`
	Shadow *Shadow      `json:"shadow,omitempty"`
	Broken *Point       `json:"broken,omitempty"`
	Curve  *Point       `json:"curve,omitempty"`
}

// Type implements Element.
func (e *LineElement) Type() ElementType { return ElementLine }

// Validate implements Element.
func (e *LineElement) Validate() error { return validateStruct(e) }

// Clone implements Element.
func (e *LineElement) Clone() Element {
	if e == nil {
		return nil
	}
	out := *e
	out.ElementBase = e.ElementBase.clone()
	out.Shadow = clonePtr(e.Shadow)
	out.Broken = clonePtr(e.Broken)
	out.Curve = clonePtr(e.Curve)
	return &out
}

func (e *LineElement) isElement() {}

// PlaceholderElement carries the shape, table, latex, video and audio
// variants. Attributes beyond the shared base are kept verbatim in Attrs so
// they survive a decode/encode cycle untouched.
type PlaceholderElement struct {
	ElementBase
	Box
	Kind  ElementType                `json:"-"`
	Attrs map[string]json.RawMessage `json:"-"`
}

// NewPlaceholderElement creates an attribute-less element of a placeholder kind.
func NewPlaceholderElement(kind ElementType, base ElementBase, box Box) (*PlaceholderElement, error) {
	if !kind.IsPlaceholder() {
		return nil, fmt.Errorf("%w: %q is not a placeholder kind", ErrUnknownElementType, kind)
	}
	return &PlaceholderElement{ElementBase: base, Box: box, Kind: kind}, nil
}

// Type implements Element.
func (e *PlaceholderElement) Type() ElementType { return e.Kind }

// Validate implements Element.
func (e *PlaceholderElement) Validate() error {
	if !e.Kind.IsPlaceholder() {
		return NewValidationError("type", fmt.Sprintf("%q is not a placeholder kind", e.Kind), ErrUnknownElementType)
	}
	return validateStruct(e)
}

// Clone implements Element.
func (e *PlaceholderElement) Clone() Element {
	if e == nil {
		return nil
	}
	out := *e
	out.ElementBase = e.ElementBase.clone()
	if e.Attrs != nil {
		out.Attrs = make(map[string]json.RawMessage, len(e.Attrs))
		for k, v := range e.Attrs {
			out.Attrs[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &out
}

func (e *PlaceholderElement) isElement() {}

// Compile-time checks that the variants implement Element.
var (
	_ Element = (*TextElement)(nil)
	_ Element = (*ImageElement)(nil)
	_ Element = (*LineElement)(nil)
	_ Element = (*PlaceholderElement)(nil)
)
