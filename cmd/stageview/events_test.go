package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleEvents = `{"t":"2026-01-02T10:00:00Z","level":"info","kind":"sync.fetch.start","comp":"sync","gen":1}
{"t":"2026-01-02T10:00:00.05Z","level":"info","kind":"sync.fetch.complete","comp":"sync","gen":1,"dur_ms":50}
not json
{"t":"2026-01-02T10:00:01Z","level":"warn","kind":"sync.fetch.error","comp":"sync","gen":2,"err":"timeout"}
{"t":"2026-01-02T10:00:02Z","level":"debug","kind":"display.skip","comp":"display","key":"abc"}
`

func TestReadTailLines(t *testing.T) {
	all := func(eventRecord) bool { return true }

	lines := readTailLines(strings.NewReader(sampleEvents), 50, all)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (malformed line skipped)", len(lines))
	}

	lines = readTailLines(strings.NewReader(sampleEvents), 2, all)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].ev.Kind != "sync.fetch.error" || lines[1].ev.Kind != "display.skip" {
		t.Errorf("tail kept %s, %s; want the last two", lines[0].ev.Kind, lines[1].ev.Kind)
	}

	if lines := readTailLines(strings.NewReader(sampleEvents), 0, all); len(lines) != 0 {
		t.Errorf("tail 0 returned %d lines", len(lines))
	}
}

func TestEventFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter eventFilter
		want   int
	}{
		{"all", eventFilter{}, 4},
		{"kind prefix", eventFilter{kind: "sync.fetch"}, 3},
		{"min level", eventFilter{minLevel: "warn"}, 1},
		{"component", eventFilter{comp: "display"}, 1},
		{"generation", eventFilter{gen: 1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := readTailLines(strings.NewReader(sampleEvents), 50, tt.filter.match)
			if len(lines) != tt.want {
				t.Errorf("got %d lines, want %d", len(lines), tt.want)
			}
		})
	}
}

func TestFormatEvent(t *testing.T) {
	ev := eventRecord{
		Time:  time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		Level: "warn",
		Kind:  "sync.fetch.error",
		Comp:  "sync",
		Gen:   3,
		DurMs: 12.5,
		Err:   "timeout",
	}
	got := formatEvent(ev)
	for _, want := range []string{"10:00:00.000", "WARN", "sync.fetch.error", "(12.5ms)", "gen=3", "err=timeout"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatEvent = %q, missing %q", got, want)
		}
	}
}

func TestEventsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := os.WriteFile(path, []byte(sampleEvents), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "events", "--file", path, "--kind", "display")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if !strings.Contains(out, "display.skip") || strings.Contains(out, "sync.fetch") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = runCmd(t, "events", "--file", path, "--json", "--tail", "1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if strings.TrimSpace(out) != `{"t":"2026-01-02T10:00:02Z","level":"debug","kind":"display.skip","comp":"display","key":"abc"}` {
		t.Errorf("raw output = %q", out)
	}
}

func TestEventsMissingFile(t *testing.T) {
	if _, err := runCmd(t, "events", "--file", filepath.Join(t.TempDir(), "none.jsonl")); err == nil {
		t.Error("missing event file should be an error")
	}
}

func TestFollowEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := os.WriteFile(path, []byte(sampleEvents), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	readTailLines(f, 0, func(eventRecord) bool { return true })

	got := make(chan string, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- followEvents(ctx, f, eventFilter{comp: "push"}.match, func(ev eventRecord, raw []byte) {
			got <- ev.Kind
		})
	}()

	w, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// Give the watcher time to register before writing
	time.Sleep(50 * time.Millisecond)
	w.WriteString(`{"t":"2026-01-02T10:00:03Z","level":"info","kind":"sync.notify","comp":"sync"}` + "\n")
	w.WriteString(`{"t":"2026-01-02T10:00:04Z","level":"info","kind":"push.connect","comp":"push"}` + "\n")

	select {
	case kind := <-got:
		if kind != "push.connect" {
			t.Errorf("followed %q, want push.connect", kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("appended event not followed")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("followEvents: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("followEvents did not stop on cancel")
	}
}
