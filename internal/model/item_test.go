package model

import (
	"encoding/json"
	"testing"
)

func TestTagClasses(t *testing.T) {
	tests := []struct {
		tag    string
		verse  bool
		chorus bool
	}{
		{"V1", true, false},
		{"v12", true, false},
		{"R1", false, true},
		{"r2", false, true},
		{"B1", false, false},
		{"V", false, false},
		{"", false, false},
		{"XV1", false, false},
	}
	for _, tt := range tests {
		if got := IsVerse(tt.tag); got != tt.verse {
			t.Errorf("IsVerse(%q) = %v, want %v", tt.tag, got, tt.verse)
		}
		if got := IsChorus(tt.tag); got != tt.chorus {
			t.Errorf("IsChorus(%q) = %v, want %v", tt.tag, got, tt.chorus)
		}
	}
}

func TestItemListDecode(t *testing.T) {
	payload := `{"name":"Songs","slides":[
		{"tag":"V1","html":"<b>a</b>","title":"T"},
		{"tag":"V1","text":"b","selected":true},
		{"img":"data:x"}
	]}`

	var list ItemList
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Name != "Songs" || len(list.Items) != 3 {
		t.Fatalf("unexpected list %+v", list)
	}
	if got := list.Selected(); got != 1 {
		t.Errorf("Selected() = %d, want 1", got)
	}
	if got := list.Items[2].Img; got != "data:x" {
		t.Errorf("Img = %q", got)
	}
}

func TestSelectedNone(t *testing.T) {
	if got := (ItemList{Items: []Item{{Tag: "V1"}}}).Selected(); got != -1 {
		t.Errorf("Selected() = %d, want -1", got)
	}
}

func TestComposedOutputKey(t *testing.T) {
	tests := []struct {
		name string
		out  ComposedOutput
		want string
	}{
		{"image wins", ComposedOutput{Img: "i", HTML: "h", Text: "t"}, "i"},
		{"markup next", ComposedOutput{HTML: "h", Text: "t"}, "h"},
		{"text last", ComposedOutput{Text: "t"}, "t"},
		{"empty", ComposedOutput{}, ""},
	}
	for _, tt := range tests {
		if got := tt.out.Key(); got != tt.want {
			t.Errorf("%s: Key() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestShowsTitle(t *testing.T) {
	for name, want := range map[string]bool{
		"Songs":           true,
		"My SONG service": true,
		"Bible":           false,
		"":                false,
	} {
		if got := (ComposedOutput{SourceName: name}).ShowsTitle(); got != want {
			t.Errorf("ShowsTitle(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestOverride(t *testing.T) {
	if !Override(true, false).IsOverride() || !Override(false, true).IsOverride() {
		t.Error("blank or theme must be an override")
	}
	if Override(false, false).IsOverride() {
		t.Error("neither flag is not an override")
	}
}
