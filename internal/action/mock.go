package action

import (
	"fmt"
	"sync"
)

// MockPointer records every call for tests. It enforces the same fail-safe
// margin as RobotPointer.
type MockPointer struct {
	Width  int
	Height int

	mu       sync.Mutex
	calls    []string
	moveErr  error
	clickErr error
}

// NewMockPointer creates a MockPointer with the given screen size.
func NewMockPointer(width, height int) *MockPointer {
	return &MockPointer{Width: width, Height: height}
}

// SetMoveError makes every MoveTo fail with err.
func (m *MockPointer) SetMoveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveErr = err
}

// SetClickError makes Click and RightClick fail with err.
func (m *MockPointer) SetClickError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clickErr = err
}

func (m *MockPointer) MoveTo(x, y int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.moveErr != nil {
		return m.moveErr
	}
	if !inBounds(x, y, m.Width, m.Height) {
		return ErrFailSafe
	}
	m.calls = append(m.calls, fmt.Sprintf("move %d %d", x, y))
	return nil
}

func (m *MockPointer) Click() error {
	return m.record("click", m.clickErr)
}

func (m *MockPointer) RightClick() error {
	return m.record("right_click", m.clickErr)
}

func (m *MockPointer) Scroll(amount int) error {
	return m.record(fmt.Sprintf("scroll %d", amount), nil)
}

func (m *MockPointer) ScreenSize() (int, int) {
	return m.Width, m.Height
}

// Calls returns a copy of the recorded calls.
func (m *MockPointer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears the recorded calls.
func (m *MockPointer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockPointer) record(call string, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		return err
	}
	m.calls = append(m.calls, call)
	return nil
}
