package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abelbrown/stageview/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// eventRecord mirrors otel.Event for JSON decoding.
// Decoding from JSONL keeps old event files readable when the schema grows.
type eventRecord struct {
	Time      time.Time      `json:"t"`
	Level     string         `json:"level"`
	Kind      string         `json:"kind"`
	Comp      string         `json:"comp"`
	SessionID string         `json:"session_id"`
	Gen       uint64         `json:"gen"`
	State     string         `json:"state"`
	DurMs     float64        `json:"dur_ms"`
	Count     int            `json:"count"`
	Key       string         `json:"key"`
	Err       string         `json:"err"`
	Msg       string         `json:"msg"`
	Extra     map[string]any `json:"extra"`
}

// eventFilter selects events for display. Zero fields match everything.
type eventFilter struct {
	kind     string // kind prefix, e.g. "sync.fetch"
	minLevel string
	comp     string
	gen      uint64
}

func (f eventFilter) match(ev eventRecord) bool {
	if f.kind != "" && !strings.HasPrefix(ev.Kind, f.kind) {
		return false
	}
	if f.minLevel != "" && levelRank(ev.Level) < levelRank(f.minLevel) {
		return false
	}
	if f.comp != "" && ev.Comp != f.comp {
		return false
	}
	if f.gen != 0 && ev.Gen != f.gen {
		return false
	}
	return true
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level string) int {
	switch level {
	case "debug":
		return 0
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 0
	}
}

// eventLogPath returns the JSONL event file for day.
func eventLogPath(day time.Time) (string, error) {
	dir, err := logging.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("events-%s.jsonl", day.Format("2006-01-02"))), nil
}

func newEventsCmd() *cobra.Command {
	var (
		filter  eventFilter
		tail    int
		follow  bool
		rawJSON bool
		file    string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the JSONL event log of today's display sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := file
			if path == "" {
				p, err := eventLogPath(time.Now())
				if err != nil {
					return err
				}
				path = p
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("event log not found at %s (run the display first): %w", path, err)
			}
			defer f.Close()

			out := cmd.OutOrStdout()
			format := func(ev eventRecord, raw []byte) string {
				if rawJSON {
					return string(raw)
				}
				return formatEvent(ev)
			}

			for _, l := range readTailLines(f, tail, filter.match) {
				fmt.Fprintln(out, format(l.ev, l.raw))
			}
			if !follow {
				return nil
			}

			return followEvents(cmd.Context(), f, filter.match, func(ev eventRecord, raw []byte) {
				fmt.Fprintln(out, format(ev, raw))
			})
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&tail, "tail", 50, "Number of recent lines to show")
	fl.BoolVarP(&follow, "follow", "f", false, "Follow mode (like tail -f)")
	fl.StringVar(&filter.kind, "kind", "", "Filter by event kind prefix (e.g. 'sync.fetch')")
	fl.StringVar(&filter.minLevel, "level", "", "Minimum level: debug, info, warn, error")
	fl.StringVar(&filter.comp, "comp", "", "Filter by component name")
	fl.Uint64Var(&filter.gen, "gen", 0, "Filter by fetch generation")
	fl.BoolVar(&rawJSON, "json", false, "Output raw JSON lines")
	fl.StringVar(&file, "file", "", "Event file (default today's file in ~/.stageview/logs)")
	return cmd
}

// followEvents prints lines appended to f until ctx is cancelled. f must
// already be positioned at the end of the lines printed so far.
func followEvents(ctx context.Context, f *os.File, match func(eventRecord) bool, emit func(eventRecord, []byte)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(f.Name()); err != nil {
		return fmt.Errorf("watch %s: %w", f.Name(), err)
	}

	reader := bufio.NewReader(f)
	var partial []byte
	drain := func() error {
		for {
			chunk, err := reader.ReadBytes('\n')
			partial = append(partial, chunk...)
			if err == io.EOF {
				// Keep an unterminated line until its newline arrives
				return nil
			}
			if err != nil {
				return err
			}
			line := trimLine(partial)
			partial = partial[:0]

			var ev eventRecord
			if len(line) == 0 || json.Unmarshal(line, &ev) != nil {
				continue
			}
			if match(ev) {
				emit(ev, append([]byte(nil), line...))
			}
		}
	}

	if err := drain(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != 0 {
				if err := drain(); err != nil {
					return err
				}
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("event log watcher error", "err", err)
		}
	}
}

func formatEvent(ev eventRecord) string {
	ts := ev.Time.Format("15:04:05.000")
	lvl := strings.ToUpper(ev.Level)
	if lvl == "" {
		lvl = "?"
	}

	parts := []string{fmt.Sprintf("%s %-5s [%-7s] %-22s", ts, lvl, ev.Comp, ev.Kind)}

	if ev.Msg != "" {
		parts = append(parts, "- "+ev.Msg)
	}
	if ev.DurMs > 0 {
		parts = append(parts, fmt.Sprintf("(%.*fms)", durPrecision(ev.DurMs), ev.DurMs))
	}
	if ev.Gen > 0 {
		parts = append(parts, fmt.Sprintf("gen=%d", ev.Gen))
	}
	if ev.State != "" {
		parts = append(parts, "state="+ev.State)
	}
	if ev.Count > 0 {
		parts = append(parts, fmt.Sprintf("n=%d", ev.Count))
	}
	if ev.Key != "" {
		parts = append(parts, "key="+ev.Key)
	}
	if ev.Err != "" {
		parts = append(parts, "err="+ev.Err)
	}

	return strings.Join(parts, " ")
}

type parsedLine struct {
	ev  eventRecord
	raw []byte
}

// readTailLines reads r and returns the last n lines matching the filter.
func readTailLines(r io.Reader, n int, match func(eventRecord) bool) []parsedLine {
	scanner := bufio.NewScanner(r)
	// Allow large lines (some events may have big Extra maps)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)

	var ring []parsedLine
	if n > 0 {
		ring = make([]parsedLine, 0, n)
	}

	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev eventRecord
		if json.Unmarshal(raw, &ev) != nil {
			continue
		}
		if !match(ev) {
			continue
		}
		// Make a copy of raw since scanner reuses the buffer
		rawCopy := make([]byte, len(raw))
		copy(rawCopy, raw)

		if len(ring) < n {
			ring = append(ring, parsedLine{ev: ev, raw: rawCopy})
		} else if n > 0 {
			copy(ring, ring[1:])
			ring[n-1] = parsedLine{ev: ev, raw: rawCopy}
		}
	}

	return ring
}

func trimLine(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func durPrecision(ms float64) int {
	if ms >= 100 {
		return 0
	}
	if ms >= 1 {
		return 1
	}
	return 2
}
