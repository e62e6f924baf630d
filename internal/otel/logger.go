package otel

// Goroutine safety:
// The drain goroutine is the sole reader of l.ch and the sole writer to l.w.
// Logger.mu protects only the l.buf pointer (read by drain, written by SetRingBuffer).
// The ring buffer has its own mutex; drain releases Logger.mu before Push.

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// writerChanSize is the capacity of the async write channel.
const writerChanSize = 1024

type logEntry struct {
	data []byte
	ev   Event
}

// Logger serializes events as JSONL via an async background writer.
// Goroutine-safe. A nil *Logger accepts and discards every call, so
// components can hold an optional event log without nil checks.
type Logger struct {
	mu        sync.Mutex
	buf       *RingBuffer
	sessionID string
	ch        chan logEntry
	w         io.Writer
	dropped   atomic.Uint64
	closed    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewLogger creates a Logger writing JSONL to w asynchronously.
// Call Close to flush and stop the drain goroutine.
func NewLogger(w io.Writer) *Logger {
	var sid [8]byte
	_, _ = rand.Read(sid[:])

	l := &Logger{
		sessionID: fmt.Sprintf("%x", sid[:]),
		ch:        make(chan logEntry, writerChanSize),
		w:         w,
		done:      make(chan struct{}),
	}
	go l.drain()
	return l
}

// NewNullLogger creates a Logger that discards output but still feeds an
// attached ring buffer.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

func (l *Logger) drain() {
	defer close(l.done)
	for entry := range l.ch {
		if _, err := l.w.Write(entry.data); err != nil {
			l.dropped.Add(1)
		}

		l.mu.Lock()
		rb := l.buf
		l.mu.Unlock()

		if rb != nil {
			rb.Push(entry.ev)
		}
	}
}

// Emit queues an event. Sets Time (if zero) and SessionID. Non-blocking:
// if the channel is full or the logger is closed the event is dropped and
// counted.
func (l *Logger) Emit(e Event) {
	if l == nil {
		return
	}
	defer func() {
		// Close may race the closed-flag check below.
		if recover() != nil {
			l.dropped.Add(1)
		}
	}()

	if l.closed.Load() {
		l.dropped.Add(1)
		return
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.sessionID

	data, err := json.Marshal(e)
	if err != nil {
		l.dropped.Add(1)
		return
	}
	data = append(data, '\n')

	select {
	case l.ch <- logEntry{data: data, ev: e}:
	default:
		l.dropped.Add(1)
	}
}

// Info emits an info-level event.
func (l *Logger) Info(kind EventKind, comp string, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Warn emits a warn-level event.
func (l *Logger) Warn(kind EventKind, comp string, msg string) {
	l.Emit(Event{Level: LevelWarn, Kind: kind, Comp: comp, Msg: msg})
}

// Error emits an error-level event. Nil err is logged as an empty string.
func (l *Logger) Error(kind EventKind, comp string, err error) {
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	l.Emit(Event{Level: LevelError, Kind: kind, Comp: comp, Err: errStr})
}

// SetRingBuffer attaches a ring buffer for live inspection.
func (l *Logger) SetRingBuffer(buf *RingBuffer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = buf
}

// Dropped returns the number of events dropped since creation.
func (l *Logger) Dropped() uint64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close flushes pending events and stops the drain goroutine. Idempotent.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.ch)
		<-l.done

		if d := l.dropped.Load(); d > 0 {
			fmt.Fprintf(os.Stderr, "stageview: %d events dropped during session %s\n", d, l.sessionID)
		}
	})
}
