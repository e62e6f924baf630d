// Package compose turns a live item list into the output shown on stage.
// All functions are pure: items in, output out. No side effects.
package compose

import (
	"strings"

	"github.com/abelbrown/stageview/internal/model"
)

// Repeat markers wrap a block that was sung more than once in a row.
const (
	repeatOpen  = "//: "
	repeatClose = " ://"
)

// annotated reports whether a block is already wrapped in repeat markers.
func annotated(block string) bool {
	return strings.HasPrefix(block, strings.TrimSpace(repeatOpen))
}

// Collapse merges runs of consecutive identical blocks into one block
// wrapped in repeat markers. A run of any length collapses to exactly one
// annotated entry. Non-adjacent duplicates are never merged.
//
// When enabled is false the input is returned as a copy, unchanged.
func Collapse(blocks []string, enabled bool) []string {
	result := make([]string, 0, len(blocks))
	if !enabled {
		return append(result, blocks...)
	}

	for i, block := range blocks {
		if i > 0 && block == blocks[i-1] {
			last := len(result) - 1
			if !annotated(result[last]) {
				result[last] = repeatOpen + block + repeatClose
			}
			continue
		}
		result = append(result, block)
	}
	return result
}

// Blocks extracts the content block of every item.
func Blocks(items []model.Item) []string {
	blocks := make([]string, len(items))
	for i, it := range items {
		blocks[i] = it.Block()
	}
	return blocks
}
