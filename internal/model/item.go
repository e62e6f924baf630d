// Package model provides the data types shared by the composition engine,
// the reconciler and the fetch/push adapters.
//
// Items and lists are immutable once decoded: every fetch produces a new
// ItemList and nothing downstream mutates it.
package model

import (
	"regexp"
)

var (
	verseRe  = regexp.MustCompile(`(?i)^V\d+`)
	chorusRe = regexp.MustCompile(`(?i)^R\d+`)
)

// IsVerse reports whether tag is verse-classified (V1, v2, ...).
func IsVerse(tag string) bool {
	return verseRe.MatchString(tag)
}

// IsChorus reports whether tag is chorus-classified (R1, r2, ...).
func IsChorus(tag string) bool {
	return chorusRe.MatchString(tag)
}

// Item is one slide of the live service item.
// Content is mutually exclusive and checked in priority order: Img, HTML, Text.
type Item struct {
	Tag      string `json:"tag"`
	HTML     string `json:"html,omitempty"`
	Text     string `json:"text,omitempty"`
	Img      string `json:"img,omitempty"`
	Title    string `json:"title,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// Block returns the content block used for composition: the markup if
// present, otherwise the plain text.
func (it Item) Block() string {
	if it.HTML != "" {
		return it.HTML
	}
	return it.Text
}

// ItemList is the live item as returned by the controller.
// Order is significant: contiguity is defined by position, not tag value.
type ItemList struct {
	Name  string `json:"name"`
	Items []Item `json:"slides"`
}

// Selected returns the index of the first selected item, or -1.
func (l ItemList) Selected() int {
	for i, it := range l.Items {
		if it.Selected {
			return i
		}
	}
	return -1
}

// Segment is an inclusive [Start, End] range of an ItemList.
type Segment struct {
	Start int
	End   int
}
