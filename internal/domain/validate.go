package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// structValidator holds the struct-tag rules for every domain type.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(backgroundStructLevel, Background{})
	return v
}

// validateStruct runs the struct-tag rules on v and converts the first
// failing field into a ValidationError.
func validateStruct(v any) error {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return NewValidationError(
			fe.Namespace(),
			fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			ErrValidation,
		)
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// backgroundStructLevel enforces that only the fields of the active
// background type are populated.
func backgroundStructLevel(sl validator.StructLevel) {
	bg := sl.Current().Interface().(Background)

	switch bg.Type {
	case BackgroundSolid:
		if bg.Color == "" {
			sl.ReportError(bg.Color, "Color", "color", "required_for_solid", "")
		}
		if bg.Image != "" || bg.ImageSize != "" {
			sl.ReportError(bg.Image, "Image", "image", "excluded_for_solid", "")
		}
		if bg.GradientType != "" || bg.GradientColor != nil || bg.GradientRotate != nil {
			sl.ReportError(bg.GradientType, "GradientType", "gradientType", "excluded_for_solid", "")
		}
	case BackgroundImage:
		if bg.Image == "" {
			sl.ReportError(bg.Image, "Image", "image", "required_for_image", "")
		}
		if bg.Color != "" {
			sl.ReportError(bg.Color, "Color", "color", "excluded_for_image", "")
		}
		if bg.GradientType != "" || bg.GradientColor != nil || bg.GradientRotate != nil {
			sl.ReportError(bg.GradientType, "GradientType", "gradientType", "excluded_for_image", "")
		}
	case BackgroundGradient:
		if bg.GradientType == "" {
			sl.ReportError(bg.GradientType, "GradientType", "gradientType", "required_for_gradient", "")
		}
		if bg.GradientColor == nil {
			sl.ReportError(bg.GradientColor, "GradientColor", "gradientColor", "required_for_gradient", "")
		}
		if bg.GradientRotate != nil && bg.GradientType != GradientLinear {
			sl.ReportError(bg.GradientRotate, "GradientRotate", "gradientRotate", "linear_only", "")
		}
		if bg.Color != "" || bg.Image != "" || bg.ImageSize != "" {
			sl.ReportError(bg.Color, "Color", "color", "excluded_for_gradient", "")
		}
	}
}
