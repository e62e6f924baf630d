package compose

import "github.com/abelbrown/stageview/internal/model"

// Options are the composition feature toggles. Both default to on and are
// fixed for the lifetime of the process.
type Options struct {
	Dedup   bool
	Pairing bool
}

// DefaultOptions enables duplicate collapsing and verse/chorus pairing.
func DefaultOptions() Options {
	return Options{Dedup: true, Pairing: true}
}

// Compose builds the output for the current selection of list.
//
// An empty list and a list without selection produce placeholder text.
// Image slides and untagged slides pass through as they are; tagged slides
// are grouped by Pair.
func Compose(list model.ItemList, opts Options) model.ComposedOutput {
	if len(list.Items) == 0 {
		return model.ComposedOutput{Text: model.TextNoSlides, SourceName: list.Name}
	}

	sel := list.Selected()
	if sel < 0 {
		return model.ComposedOutput{Text: model.TextNoContent, SourceName: list.Name}
	}
	selected := list.Items[sel]

	out := model.ComposedOutput{Title: selected.Title, SourceName: list.Name}

	switch {
	case selected.Img != "":
		out.Img = selected.Img
	case selected.Tag == "":
		out.HTML = selected.HTML
		out.Text = selected.Text
	default:
		out.HTML = Pair(list.Items, sel, opts.Pairing).Render(list.Items, opts.Dedup)
	}
	return out
}
