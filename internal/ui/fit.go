package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// fitLyrics lays text out inside a width x height box.
//
// Lines longer than the box are wrapped, and the wrap width is narrowed by
// binary search to the smallest width that needs no extra rows. Wrapped
// lines therefore come out balanced instead of leaving a short orphan.
// Content taller than the box is clipped with an ellipsis row.
func fitLyrics(text string, width, height int) string {
	if text == "" || width < 1 || height < 1 {
		return ""
	}

	render := func(w int) string { return Lyrics.Width(w).Render(text) }

	hi := min(width, naturalWidth(text))
	lo := min(hi, longestWord(text))
	if lo < 1 {
		lo = 1
	}

	target := lipgloss.Height(render(hi))
	if target > height {
		return clipLines(render(hi), height)
	}

	for lo < hi {
		mid := (lo + hi) / 2
		if lipgloss.Height(render(mid)) <= target {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return render(hi)
}

// naturalWidth is the widest explicit line.
func naturalWidth(text string) int {
	w := 0
	for _, line := range strings.Split(text, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func longestWord(text string) int {
	w := 0
	for _, word := range strings.Fields(text) {
		w = max(w, lipgloss.Width(word))
	}
	return w
}

func clipLines(block string, height int) string {
	lines := strings.Split(block, "\n")
	if len(lines) <= height {
		return block
	}
	lines = lines[:height-1]
	lines = append(lines, HelpStyle.Render("…"))
	return strings.Join(lines, "\n")
}

// truncateRunes shortens s to at most n terminal cells.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return runewidth.Truncate(s, n, "…")
}
