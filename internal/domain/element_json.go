package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// baseKeys are the JSON keys owned by ElementBase, Box and the type tag.
var baseKeys = map[string]struct{}{
	"type": {}, "id": {}, "left": {}, "top": {}, "width": {}, "height": {},
	"rotate": {}, "lock": {}, "groupId": {}, "link": {},
}

// MarshalJSON writes the text variant with its type tag.
func (e TextElement) MarshalJSON() ([]byte, error) {
	type alias TextElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		alias
	}{ElementText, alias(e)})
}

// MarshalJSON writes the image variant with its type tag.
func (e ImageElement) MarshalJSON() ([]byte, error) {
	type alias ImageElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		alias
	}{ElementImage, alias(e)})
}

// MarshalJSON writes the line variant with its type tag. Lines never emit
// height or rotate.
func (e LineElement) MarshalJSON() ([]byte, error) {
	type alias LineElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		alias
	}{ElementLine, alias(e)})
}

// MarshalJSON writes the shared base, the type tag, and the preserved
// variant attributes. Base keys always win over Attrs.
func (e PlaceholderElement) MarshalJSON() ([]byte, error) {
	head, err := json.Marshal(struct {
		Type ElementType `json:"type"`
		ElementBase
		Box
	}{e.Kind, e.ElementBase, e.Box})
	if err != nil {
		return nil, err
	}
	if len(e.Attrs) == 0 {
		return head, nil
	}

	fields := make(map[string]json.RawMessage, len(e.Attrs)+len(baseKeys))
	for k, v := range e.Attrs {
		fields[k] = v
	}
	var base map[string]json.RawMessage
	if err := json.Unmarshal(head, &base); err != nil {
		return nil, err
	}
	for k, v := range base {
		fields[k] = v
	}
	return json.Marshal(fields)
}

// UnmarshalElement decodes one element, dispatching on its "type" key and
// enforcing the box rule: lines carry neither height nor rotate, every other
// variant carries both.
func UnmarshalElement(data []byte) (Element, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: element is not a JSON object: %v", ErrInvalidFormat, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: element is null", ErrInvalidFormat)
	}

	rawType, ok := fields["type"]
	if !ok {
		return nil, NewValidationError("type", "is required", ErrInvalidElement)
	}
	var kind ElementType
	if err := json.Unmarshal(rawType, &kind); err != nil {
		return nil, fmt.Errorf("%w: element type: %v", ErrInvalidFormat, err)
	}

	_, hasHeight := fields["height"]
	_, hasRotate := fields["rotate"]
	if kind == ElementLine {
		if hasHeight || hasRotate {
			return nil, NewValidationError("line", "must not carry height or rotate", ErrInvalidElement)
		}
	} else if kind == ElementText || kind == ElementImage || kind.IsPlaceholder() {
		if !hasHeight || !hasRotate {
			return nil, NewValidationError(string(kind), "must carry height and rotate", ErrInvalidElement)
		}
	}

	switch {
	case kind == ElementText:
		el := &TextElement{}
		if err := json.Unmarshal(data, el); err != nil {
			return nil, fmt.Errorf("%w: text element: %v", ErrInvalidFormat, err)
		}
		return el, nil
	case kind == ElementImage:
		el := &ImageElement{}
		if err := json.Unmarshal(data, el); err != nil {
			return nil, fmt.Errorf("%w: image element: %v", ErrInvalidFormat, err)
		}
		return el, nil
	case kind == ElementLine:
		el := &LineElement{}
		if err := json.Unmarshal(data, el); err != nil {
			return nil, fmt.Errorf("%w: line element: %v", ErrInvalidFormat, err)
		}
		return el, nil
	case kind.IsPlaceholder():
		return unmarshalPlaceholder(kind, data, fields)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownElementType, kind)
	}
}

func unmarshalPlaceholder(kind ElementType, data []byte, fields map[string]json.RawMessage) (Element, error) {
	var shared struct {
		ElementBase
		Box
	}
	if err := json.Unmarshal(data, &shared); err != nil {
		return nil, fmt.Errorf("%w: %s element: %v", ErrInvalidFormat, kind, err)
	}

	el := &PlaceholderElement{ElementBase: shared.ElementBase, Box: shared.Box, Kind: kind}
	for k, v := range fields {
		if _, isBase := baseKeys[k]; isBase {
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return nil, fmt.Errorf("%w: %s attribute %q: %v", ErrInvalidFormat, kind, k, err)
		}
		if el.Attrs == nil {
			el.Attrs = make(map[string]json.RawMessage)
		}
		el.Attrs[k] = json.RawMessage(buf.Bytes())
	}
	return el, nil
}

// ElementList is the ordered element sequence of a slide. It encodes as a
// JSON array of tagged objects.
type ElementList []Element

// MarshalJSON encodes the list; a nil list encodes as an empty array.
func (l ElementList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Element(l))
}

// UnmarshalJSON decodes each element through UnmarshalElement.
func (l *ElementList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("%w: elements: %v", ErrInvalidFormat, err)
	}
	out := make(ElementList, 0, len(raws))
	for i, raw := range raws {
		el, err := UnmarshalElement(raw)
		if err != nil {
			return fmt.Errorf("elements[%d]: %w", i, err)
		}
		out = append(out, el)
	}
	*l = out
	return nil
}

// Clone returns a deep copy of the list.
func (l ElementList) Clone() ElementList {
	if l == nil {
		return nil
	}
	out := make(ElementList, len(l))
	for i, el := range l {
		if el != nil {
			out[i] = el.Clone()
		}
	}
	return out
}
