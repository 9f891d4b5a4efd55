package overlay

import (
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MockRenderer records shown frames and replays a scripted key sequence.
type MockRenderer struct {
	mu     sync.Mutex
	keys   []int
	shown  int
	polls  int
	closes int
}

// NewMockRenderer creates a renderer that returns keys in order, one per
// PollKey call, and -1 once they run out.
func NewMockRenderer(keys ...int) *MockRenderer {
	return &MockRenderer{keys: keys}
}

func (m *MockRenderer) Show(frame *gocv.Mat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown++
}

func (m *MockRenderer) PollKey(time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls++
	if len(m.keys) == 0 {
		return -1
	}
	k := m.keys[0]
	m.keys = m.keys[1:]
	return k
}

func (m *MockRenderer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// Shown returns how many frames were displayed.
func (m *MockRenderer) Shown() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shown
}

// Polls returns how many times PollKey was called.
func (m *MockRenderer) Polls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls
}

// Closes returns how many times Close was called.
func (m *MockRenderer) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
