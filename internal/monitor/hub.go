// Package monitor shares the tracking loop's live state with observers
// such as the HTTP API and the tray without blocking the loop.
package monitor

import (
	"sync"
	"time"
)

// DefaultBuffer is the per-subscriber message buffer.
const DefaultBuffer = 32

// Message types published on the hub.
const (
	TypeEvent = "event"
	TypeMode  = "mode"
)

// Status is a point-in-time snapshot of the tracking session.
type Status struct {
	SessionID       string    `json:"session_id,omitempty"`
	Mode            string    `json:"mode"`
	Dragging        bool      `json:"dragging"`
	ScrollCount     int       `json:"scroll_count"`
	ScrollDirection int       `json:"scroll_direction"`
	Frames          uint64    `json:"frames"`
	CursorX         int       `json:"cursor_x"`
	CursorY         int       `json:"cursor_y"`
	LastEvent       string    `json:"last_event,omitempty"`
	StartedAt       time.Time `json:"started_at"`
}

// Message is a single notification sent to subscribers.
type Message struct {
	Type      string `json:"type"`
	Kind      string `json:"kind,omitempty"`
	Source    string `json:"source,omitempty"`
	Mode      string `json:"mode,omitempty"`
	X         int    `json:"x,omitempty"`
	Y         int    `json:"y,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Hub holds the latest status and preview frame and fans messages out to
// subscribers. Publishing never blocks: a subscriber that falls behind
// misses messages.
type Hub struct {
	mu       sync.RWMutex
	status   Status
	frame    []byte
	frameSeq uint64
	subs     map[chan Message]struct{}
	buffer   int
	dropped  uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs:   make(map[chan Message]struct{}),
		buffer: DefaultBuffer,
	}
}

// SetStatus replaces the current snapshot.
func (h *Hub) SetStatus(s Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = s
}

// Status returns the current snapshot.
func (h *Hub) Status() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// SetFrame stores the latest JPEG-encoded preview frame.
func (h *Hub) SetFrame(jpeg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = jpeg
	h.frameSeq++
}

// Frame returns the latest preview frame and its sequence number. The
// sequence is zero until the first frame arrives.
func (h *Hub) Frame() ([]byte, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frame, h.frameSeq
}

// Subscribe registers a new listener. The returned function unsubscribes
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of active listeners.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers msg to every subscriber with room in its buffer.
func (h *Hub) Publish(msg Message) {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			h.dropped++
		}
	}
}

// Dropped returns how many deliveries were skipped for slow subscribers.
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}
