package domain

// Theme holds the deck-wide defaults consulted whenever a slide or element is
// created. Changing it never rewrites existing slides.
type Theme struct {
	BackgroundColor string `json:"backgroundColor" mapstructure:"background_color" validate:"required"`
	ThemeColor      string `json:"themeColor"      mapstructure:"theme_color"      validate:"required"`
	FontColor       string `json:"fontColor"       mapstructure:"font_color"       validate:"required"`
	FontName        string `json:"fontName"        mapstructure:"font_name"        validate:"required"`
}

// DefaultTheme returns the theme used when none is configured.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: "#ffffff",
		ThemeColor:      "#d14424",
		FontColor:       "#333333",
		FontName:        "Microsoft Yahei",
	}
}

// Validate checks that every theme value is set.
func (t Theme) Validate() error {
	return validateStruct(t)
}
