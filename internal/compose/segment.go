package compose

import "github.com/abelbrown/stageview/internal/model"

// Locate returns the maximal run of adjacent items carrying exactly the
// same tag as items[ref]. Pattern class does not matter here: V1 followed
// by V2 is two segments.
func Locate(items []model.Item, ref int) model.Segment {
	tag := items[ref].Tag
	seg := model.Segment{Start: ref, End: ref}
	for seg.Start > 0 && items[seg.Start-1].Tag == tag {
		seg.Start--
	}
	for seg.End < len(items)-1 && items[seg.End+1].Tag == tag {
		seg.End++
	}
	return seg
}

// LocateAll returns the index of every item carrying tag, adjacent or not.
func LocateAll(items []model.Item, tag string) []int {
	var idx []int
	for i, it := range items {
		if it.Tag == tag {
			idx = append(idx, i)
		}
	}
	return idx
}

// nextChorus scans forward from `from` for the chorus that follows a verse.
// A verse-classified tag ends the search. The chorus extends over later
// items with the same tag, skipping unrelated items in between, until the
// next verse-classified tag.
func nextChorus(items []model.Item, from int) (model.Segment, bool) {
	for i := from; i < len(items); i++ {
		tag := items[i].Tag
		if model.IsChorus(tag) {
			seg := model.Segment{Start: i, End: i}
			for j := i + 1; j < len(items); j++ {
				if model.IsVerse(items[j].Tag) {
					break
				}
				if items[j].Tag == tag {
					seg.End = j
				}
			}
			return seg, true
		}
		if model.IsVerse(tag) {
			break
		}
	}
	return model.Segment{}, false
}

// prevVerse scans backward from `from` for the nearest verse-classified
// item and returns its segment, extended backward while the tag matches.
func prevVerse(items []model.Item, from int) (model.Segment, bool) {
	for i := from; i >= 0; i-- {
		tag := items[i].Tag
		if !model.IsVerse(tag) {
			continue
		}
		seg := model.Segment{Start: i, End: i}
		for seg.Start > 0 && items[seg.Start-1].Tag == tag {
			seg.Start--
		}
		return seg, true
	}
	return model.Segment{}, false
}
