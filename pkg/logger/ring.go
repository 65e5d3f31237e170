package logger

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// DefaultRingSize is the number of log lines kept for the dashboard.
const DefaultRingSize = 1000

// subscriberBuffer is how many entries a live subscriber may lag behind
// before entries are dropped for it.
const subscriberBuffer = 64

// Entry is one captured log line.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Raw       string `json:"raw"`
}

// RingBuffer is an io.Writer that keeps the most recent log lines in memory
// and fans them out to live subscribers. Writes never block on subscribers.
type RingBuffer struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
	subs    map[chan Entry]struct{}
}

// NewRingBuffer creates a ring buffer holding up to size entries.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{
		entries: make([]Entry, size),
		subs:    make(map[chan Entry]struct{}),
	}
}

// Write implements io.Writer. Each call is expected to carry one zerolog
// JSON line; anything else is kept verbatim as the message.
func (r *RingBuffer) Write(p []byte) (int, error) {
	entry := parseEntry(p)

	r.mu.Lock()
	r.entries[r.next] = entry
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	for ch := range r.subs {
		select {
		case ch <- entry:
		default:
		}
	}
	r.mu.Unlock()

	return len(p), nil
}

// Snapshot returns the buffered entries, oldest first.
func (r *RingBuffer) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// SubscribeWithSnapshot registers a live listener and returns the entries
// buffered at that moment. Every later write reaches the channel and none
// earlier does. Call Unsubscribe when done.
func (r *RingBuffer) SubscribeWithSnapshot() ([]Entry, chan Entry) {
	ch := make(chan Entry, subscriberBuffer)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[ch] = struct{}{}
	return r.snapshotLocked(), ch
}

func (r *RingBuffer) snapshotLocked() []Entry {
	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}
	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

// Unsubscribe removes and closes a listener channel.
func (r *RingBuffer) Unsubscribe(ch chan Entry) {
	r.mu.Lock()
	if _, ok := r.subs[ch]; ok {
		delete(r.subs, ch)
		close(ch)
	}
	r.mu.Unlock()
}

func parseEntry(p []byte) Entry {
	raw := strings.TrimRight(string(p), "\n")

	var line struct {
		Time    string `json:"time"`
		Level   string `json:"level"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(p, &line); err != nil {
		return Entry{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Level:     "info",
			Message:   raw,
			Raw:       raw,
		}
	}
	if line.Time == "" {
		line.Time = time.Now().UTC().Format(time.RFC3339)
	}
	return Entry{
		Timestamp: line.Time,
		Level:     line.Level,
		Message:   line.Message,
		Raw:       raw,
	}
}
