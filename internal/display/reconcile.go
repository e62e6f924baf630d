// Package display decides whether the stage surface must change and
// drives it when it does.
package display

import (
	"context"

	"github.com/abelbrown/stageview/internal/logging"
	"github.com/abelbrown/stageview/internal/model"
	"github.com/abelbrown/stageview/internal/otel"
)

// Action is the outcome of one reconciliation.
type Action int

const (
	// Skip leaves the surface untouched: the content did not change.
	Skip Action = iota
	// Render replaced the surface content.
	Render
	// Clear emptied the surface for a blank/theme override.
	Clear
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Clear:
		return "clear"
	default:
		return "skip"
	}
}

// Surface is the rendering target. Calls for one cycle arrive in order:
// SetTitle, then Clear, then at most one of ShowText or ShowImage.
type Surface interface {
	SetTitle(title string)
	Clear()
	ShowText(text string)
	ShowImage(src, alt string)
}

// ImageSource resolves the high-resolution variant of the live image.
type ImageSource interface {
	LiveImage(ctx context.Context) (string, error)
}

// State remembers the content key currently on screen.
// The zero value means nothing is shown.
type State struct {
	lastKey string
	shown   bool
}

// Key returns the displayed key and whether anything is displayed.
func (s State) Key() (string, bool) {
	return s.lastKey, s.shown
}

// Reset forgets the displayed key so the next real content always renders.
func (s *State) Reset() {
	s.lastKey = ""
	s.shown = false
}

func (s *State) set(key string) {
	s.lastKey = key
	s.shown = true
}

// Reconciler compares composed output against what is on screen and
// updates the surface when needed.
//
// Not goroutine-safe: it is owned by the sync controller loop, which is the
// only caller and therefore the only writer of State.
type Reconciler struct {
	surface Surface
	images  ImageSource // optional
	state   State
	events  *otel.Logger
}

// NewReconciler creates a Reconciler. images may be nil, in which case
// image slides render from their original reference.
func NewReconciler(surface Surface, images ImageSource, events *otel.Logger) *Reconciler {
	return &Reconciler{
		surface: surface,
		images:  images,
		events:  events,
	}
}

// State returns a copy of the display state.
func (r *Reconciler) State() State {
	return r.state
}

// Reconcile applies one candidate output to the surface.
//
// The title is evaluated on every call, independent of the outcome.
// Overrides always clear and reset the state; otherwise identical content
// is skipped and anything else is rendered.
func (r *Reconciler) Reconcile(ctx context.Context, out model.ComposedOutput) Action {
	if out.ShowsTitle() {
		r.surface.SetTitle(out.Title)
	} else {
		r.surface.SetTitle("")
	}

	if out.IsOverride() {
		r.surface.Clear()
		r.state.Reset()
		r.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindClear, Comp: "display"})
		logging.Debug("display cleared", "blank", out.Blank, "theme", out.Theme)
		return Clear
	}

	key := out.Key()
	if last, shown := r.state.Key(); shown && last == key {
		r.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSkip, Comp: "display", Key: otel.ShortKey(key)})
		return Skip
	}

	r.surface.Clear()
	if out.Img != "" {
		r.surface.ShowImage(r.resolveImage(ctx, out.Img), imageAlt(out.Title))
	} else {
		r.surface.ShowText(Normalize(out.Key()))
	}
	r.state.set(key)

	r.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindRender, Comp: "display", Key: otel.ShortKey(key)})
	logging.Debug("display rendered", "key", otel.ShortKey(key))
	return Render
}

// resolveImage asks for the high-resolution variant and falls back to the
// original reference on any failure.
func (r *Reconciler) resolveImage(ctx context.Context, src string) string {
	if r.images == nil {
		return src
	}
	hi, err := r.images.LiveImage(ctx)
	if err != nil || hi == "" {
		r.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindImageFallback, Comp: "display"})
		logging.Debug("high-res image unavailable, using original", "err", err)
		return src
	}
	return hi
}

func imageAlt(title string) string {
	if title == "" {
		return "Image"
	}
	return title
}
