package otel

import "sync"

// DefaultRingSize is the default ring buffer capacity.
const DefaultRingSize = 256

// RingBuffer is a fixed-size circular buffer of Events.
// Goroutine-safe for concurrent Push and read operations.
type RingBuffer struct {
	mu    sync.Mutex
	buf   []Event
	head  int // next write position
	count int // number of valid entries (0..len(buf))
}

// NewRingBuffer creates a ring buffer with the given capacity.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{buf: make([]Event, size)}
}

// Push adds an event, overwriting the oldest if full.
// The Extra map is copied so callers may reuse theirs.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		cp := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			cp[k] = v
		}
		e.Extra = cp
	}
	r.mu.Lock()
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// Last returns the n most recent events, oldest first.
// If n exceeds the count, all events are returned. n <= 0 returns nil.
func (r *RingBuffer) Last(n int) []Event {
	if n <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if n > r.count {
		n = r.count
	}
	if n == 0 {
		return nil
	}

	size := len(r.buf)
	result := make([]Event, n)
	start := (r.head - n + size) % size
	for i := 0; i < n; i++ {
		result[i] = r.buf[(start+i)%size]
	}
	return result
}

// Len returns the number of events currently in the buffer.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int {
	return len(r.buf)
}

// Stats returns counts by EventKind over all buffered events.
func (r *RingBuffer) Stats() map[EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[EventKind]int)
	size := len(r.buf)
	start := (r.head - r.count + size) % size
	for i := 0; i < r.count; i++ {
		counts[r.buf[(start+i)%size].Kind]++
	}
	return counts
}
