// Package otel provides structured observability for stageview.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// events asynchronously via a buffered channel and background drain goroutine.
// An optional RingBuffer keeps recent events for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Sync controller events
	KindNotify        EventKind = "sync.notify"
	KindOverride      EventKind = "sync.override"
	KindFetchStart    EventKind = "sync.fetch.start"
	KindFetchComplete EventKind = "sync.fetch.complete"
	KindFetchError    EventKind = "sync.fetch.error"
	KindFetchStale    EventKind = "sync.fetch.stale"

	// Reconciler events
	KindRender        EventKind = "display.render"
	KindSkip          EventKind = "display.skip"
	KindClear         EventKind = "display.clear"
	KindImageFallback EventKind = "display.image_fallback"

	// Push channel events
	KindPushConnect    EventKind = "push.connect"
	KindPushDisconnect EventKind = "push.disconnect"
	KindPushMessage    EventKind = "push.message"
	KindPushMalformed  EventKind = "push.malformed"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`       // component: "sync", "display", "push", "main"
	SessionID string         `json:"session_id,omitempty"` // random hex, same for entire run
	Gen       uint64         `json:"gen,omitempty"`        // fetch generation
	State     string         `json:"state,omitempty"`      // controller state after the event
	Dur       time.Duration  `json:"-"`                    // not serialized directly
	DurMs     float64        `json:"dur_ms,omitempty"`     // computed from Dur at marshal time
	Count     int            `json:"count,omitempty"`
	Key       string         `json:"key,omitempty"` // shortened content key
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON implements json.Marshaler, converting Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	a := struct {
		Alias
	}{Alias: Alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}

// ShortKey trims a content key for logging. Image keys are often data URIs
// hundreds of kilobytes long.
func ShortKey(key string) string {
	const max = 48
	r := []rune(key)
	if len(r) <= max {
		return key
	}
	return string(r[:max]) + "…"
}
