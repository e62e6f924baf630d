package model

import "strings"

// Placeholder texts shown instead of slide content.
const (
	TextNoSlides   = "(no slides)"
	TextNoContent  = "(no content)"
	TextFetchError = "(error fetching live verse)"
)

// ComposedOutput is the result of one reconciliation cycle.
// Blank and Theme are override flags that force the display clear.
type ComposedOutput struct {
	HTML       string
	Text       string
	Img        string
	Title      string
	SourceName string
	Blank      bool
	Theme      bool
}

// IsOverride reports whether the output is a blank/theme override.
func (o ComposedOutput) IsOverride() bool {
	return o.Blank || o.Theme
}

// Key returns the content key used for change detection:
// the image reference, else the markup, else the text, else "".
func (o ComposedOutput) Key() string {
	switch {
	case o.Img != "":
		return o.Img
	case o.HTML != "":
		return o.HTML
	default:
		return o.Text
	}
}

// ShowsTitle reports whether the title belongs on screen. Only song items
// carry a meaningful title.
func (o ComposedOutput) ShowsTitle() bool {
	return strings.Contains(strings.ToLower(o.SourceName), "song")
}

// Override builds the output for a blank/theme push signal.
func Override(blank, theme bool) ComposedOutput {
	return ComposedOutput{Blank: blank, Theme: theme}
}
