package overlay

import (
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// DefaultWindowTitle is the preview window title.
const DefaultWindowTitle = "Nayana"

// Window shows frames in an OpenCV highgui window. The native window is
// created on first use, so it belongs to the goroutine running the loop.
type Window struct {
	title  string
	win    *gocv.Window
	mu     sync.Mutex
	closed bool
}

// NewWindow returns a preview window with the given title.
func NewWindow(title string) *Window {
	if title == "" {
		title = DefaultWindowTitle
	}
	return &Window{title: title}
}

func (w *Window) ensure() *gocv.Window {
	if w.win == nil {
		w.win = gocv.NewWindow(w.title)
	}
	return w.win
}

// Show displays frame in the window.
func (w *Window) Show(frame *gocv.Mat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || frame == nil || frame.Empty() {
		return
	}
	w.ensure().IMShow(*frame)
}

// PollKey pumps the window event loop for up to d and returns the low byte
// of the pressed key, or -1 when nothing was pressed.
func (w *Window) PollKey(d time.Duration) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return -1
	}
	ms := int(d / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	key := w.ensure().WaitKey(ms)
	if key < 0 {
		return -1
	}
	return key & 0xFF
}

// Close destroys the window. Subsequent calls are no-ops.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.win == nil {
		return nil
	}
	return w.win.Close()
}

// Headless discards frames and never reports key presses. Input arrives
// through the tray or the HTTP API instead.
type Headless struct{}

// NewHeadless returns a renderer without a display.
func NewHeadless() *Headless { return &Headless{} }

func (Headless) Show(*gocv.Mat) {}

// PollKey sleeps for d so the loop keeps a steady pace, then returns -1.
func (Headless) PollKey(d time.Duration) int {
	if d > 0 {
		time.Sleep(d)
	}
	return -1
}

func (Headless) Close() error { return nil }
