package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/phrazzld/slidedeck/internal/domain"
)

// Field is an optional patch value. Set distinguishes "absent" from an
// explicit zero or null.
type Field[T any] struct {
	Set   bool
	Value T
}

// Set returns a present Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// SlidePatch is a shallow partial update of a slide. Absent fields are left
// untouched; a JSON null clears the field. The slide id cannot be patched.
type SlidePatch struct {
	Elements    Field[domain.ElementList]
	Remark      Field[string]
	Background  Field[*domain.Background]
	Animations  Field[[]domain.Animation]
	TurningMode Field[domain.TurningMode]
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// UnmarshalJSON decodes a JSON object, recording which keys were present.
// Unknown keys and "id" are rejected with ErrInvalidPatch.
func (p *SlidePatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: patch must be an object", ErrInvalidPatch)
	}

	var out SlidePatch
	var unknown []string
	for key, value := range raw {
		var err error
		switch key {
		case "elements":
			out.Elements.Set = true
			err = json.Unmarshal(value, &out.Elements.Value)
			if err == nil && out.Elements.Value == nil {
				out.Elements.Value = domain.ElementList{}
			}
		case "remark":
			out.Remark.Set = true
			err = json.Unmarshal(value, &out.Remark.Value)
		case "background":
			out.Background.Set = true
			if !isNull(value) {
				err = json.Unmarshal(value, &out.Background.Value)
			}
		case "animations":
			out.Animations.Set = true
			if !isNull(value) {
				err = json.Unmarshal(value, &out.Animations.Value)
			}
		case "turningMode":
			out.TurningMode.Set = true
			err = json.Unmarshal(value, &out.TurningMode.Value)
		default:
			unknown = append(unknown, key)
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidPatch, key, err)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unsupported fields %s", ErrInvalidPatch, strings.Join(unknown, ", "))
	}

	*p = out
	return nil
}

// MarshalJSON emits only the present fields.
func (p SlidePatch) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 5)
	if p.Elements.Set {
		out["elements"] = p.Elements.Value
	}
	if p.Remark.Set {
		out["remark"] = p.Remark.Value
	}
	if p.Background.Set {
		out["background"] = p.Background.Value
	}
	if p.Animations.Set {
		out["animations"] = p.Animations.Value
	}
	if p.TurningMode.Set {
		out["turningMode"] = p.TurningMode.Value
	}
	return json.Marshal(out)
}

// IsEmpty reports whether the patch names no field.
func (p SlidePatch) IsEmpty() bool {
	return !p.Elements.Set && !p.Remark.Set && !p.Background.Set &&
		!p.Animations.Set && !p.TurningMode.Set
}

// Fields lists the present field names in a fixed order.
func (p SlidePatch) Fields() []string {
	var names []string
	if p.Elements.Set {
		names = append(names, "elements")
	}
	if p.Remark.Set {
		names = append(names, "remark")
	}
	if p.Background.Set {
		names = append(names, "background")
	}
	if p.Animations.Set {
		names = append(names, "animations")
	}
	if p.TurningMode.Set {
		names = append(names, "turningMode")
	}
	return names
}

// ApplyTo returns a copy of s with the present fields overwritten. The
// patch's values are deep-copied so s never aliases caller memory.
func (p SlidePatch) ApplyTo(s domain.Slide) domain.Slide {
	out := s.Clone()
	if p.Elements.Set {
		out.Elements = p.Elements.Value.Clone()
		if out.Elements == nil {
			out.Elements = domain.ElementList{}
		}
	}
	if p.Remark.Set {
		out.Remark = p.Remark.Value
	}
	if p.Background.Set {
		out.Background = nil
		if p.Background.Value != nil {
			bg := p.Background.Value.Clone()
			out.Background = &bg
		}
	}
	if p.Animations.Set {
		out.Animations = nil
		if p.Animations.Value != nil {
			out.Animations = append([]domain.Animation(nil), p.Animations.Value...)
		}
	}
	if p.TurningMode.Set {
		out.TurningMode = p.TurningMode.Value
	}
	return out
}
