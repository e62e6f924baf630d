package compose

import (
	"strings"

	"github.com/abelbrown/stageview/internal/model"
)

// lineBreak separates blocks and segments in composed markup.
const lineBreak = "<br>"

// Kind describes how the selected item was grouped.
type Kind int

const (
	// KindTag groups every item sharing the selected tag, adjacent or not.
	KindTag Kind = iota
	// KindVerse is a verse segment, optionally followed by its chorus.
	KindVerse
	// KindChorus is a chorus segment, optionally preceded by its verse.
	KindChorus
)

func (k Kind) String() string {
	switch k {
	case KindVerse:
		return "verse"
	case KindChorus:
		return "chorus"
	default:
		return "tag"
	}
}

// Plan is the grouping decision for one selection.
// Segments are in display order (verse before chorus). For KindTag,
// Indices lists the grouped items instead.
type Plan struct {
	Kind     Kind
	Segments []model.Segment
	Indices  []int
}

// Pair decides which items accompany the selected one.
//
// With pairing enabled a selected verse is shown with the next chorus that
// appears before any other verse, and a selected chorus is shown with the
// nearest preceding verse. In every other case the plan falls back to all
// items carrying the selected tag.
func Pair(items []model.Item, sel int, pairing bool) Plan {
	tag := items[sel].Tag

	if pairing {
		switch {
		case model.IsVerse(tag):
			verse := Locate(items, sel)
			plan := Plan{Kind: KindVerse, Segments: []model.Segment{verse}}
			if chorus, ok := nextChorus(items, verse.End+1); ok {
				plan.Segments = append(plan.Segments, chorus)
			}
			return plan

		case model.IsChorus(tag):
			chorus := Locate(items, sel)
			plan := Plan{Kind: KindChorus, Segments: []model.Segment{chorus}}
			if verse, ok := prevVerse(items, chorus.Start-1); ok {
				plan.Segments = []model.Segment{verse, chorus}
			}
			return plan
		}
	}

	return Plan{Kind: KindTag, Indices: LocateAll(items, tag)}
}

// Render composes the markup for a plan. Each segment is collapsed on its
// own before the segments are joined. A segment with no content is left
// out so no dangling separator remains.
func (p Plan) Render(items []model.Item, dedup bool) string {
	if p.Kind == KindTag {
		grouped := make([]model.Item, 0, len(p.Indices))
		for _, i := range p.Indices {
			grouped = append(grouped, items[i])
		}
		return strings.Join(Collapse(Blocks(grouped), dedup), lineBreak)
	}

	parts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		blocks := Blocks(items[seg.Start : seg.End+1])
		if blank(blocks) {
			continue
		}
		parts = append(parts, strings.Join(Collapse(blocks, dedup), lineBreak))
	}
	return strings.Join(parts, lineBreak)
}

// blank reports whether every block is empty.
func blank(blocks []string) bool {
	for _, b := range blocks {
		if b != "" {
			return false
		}
	}
	return true
}
