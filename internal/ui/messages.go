// Package ui provides the Bubble Tea stage surface for stageview.
package ui

import "github.com/abelbrown/stageview/internal/coord"

// TitleSet is sent when the reconciler updates the title line.
type TitleSet struct {
	Title string
}

// Cleared is sent when the surface is emptied.
type Cleared struct{}

// TextShown is sent when composed text replaces the surface content.
type TextShown struct {
	Text string
}

// ImageShown is sent when an image replaces the surface content.
// A terminal cannot draw it, so the App shows Alt and the source.
type ImageShown struct {
	Src string
	Alt string
}

// StateChanged is sent on every controller state transition.
type StateChanged struct {
	State coord.State
}
