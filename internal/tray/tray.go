// Package tray provides a system tray menu for switching tracking modes.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/nayana/internal/gesture"
)

// Tray represents the system tray application. Menu clicks are reported as
// the same key codes the preview window produces.
type Tray struct {
	onKey   func(key int)
	onReady func()
	mode    gesture.Mode
	mu      sync.RWMutex

	// Menu items stored for later updates
	modeItems     map[gesture.Mode]*systray.MenuItem
	menuLastEvent *systray.MenuItem
}

// New creates a new Tray showing ModeBoth.
func New() *Tray {
	return &Tray{
		mode:      gesture.ModeBoth,
		modeItems: make(map[gesture.Mode]*systray.MenuItem),
	}
}

// OnKey sets the callback invoked with a key code for every menu action.
func (t *Tray) OnKey(fn func(key int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onKey = fn
}

// OnReady sets a function run once the tray menu exists.
func (t *Tray) OnReady(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReady = fn
}

// Run starts the system tray application.
// This function blocks until Quit is called and must run on the main thread.
func (t *Tray) Run() {
	systray.Run(t.setup, t.onExit)
}

// Quit stops the tray event loop, unblocking Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// setup is called when the system tray is ready.
func (t *Tray) setup() {
	systray.SetTitle("Nayana")
	systray.SetTooltip("Nayana hand and eye pointer")

	t.mu.Lock()
	for _, m := range []gesture.Mode{gesture.ModeHand, gesture.ModeEye, gesture.ModeBoth} {
		t.modeItems[m] = systray.AddMenuItemCheckbox(modeTitle(m), "Switch tracking mode", m == t.mode)
	}
	systray.AddSeparator()

	t.menuLastEvent = systray.AddMenuItem("Last: none", "Last pointer action")
	t.menuLastEvent.Disable()
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Nayana")
	hand, eye, both := t.modeItems[gesture.ModeHand], t.modeItems[gesture.ModeEye], t.modeItems[gesture.ModeBoth]
	ready := t.onReady
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-hand.ClickedCh:
				t.handleMode(gesture.ModeHand)
			case <-eye.ClickedCh:
				t.handleMode(gesture.ModeEye)
			case <-both.ClickedCh:
				t.handleMode(gesture.ModeBoth)
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()

	if ready != nil {
		ready()
	}
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

func modeTitle(m gesture.Mode) string {
	switch m {
	case gesture.ModeHand:
		return "Hand"
	case gesture.ModeEye:
		return "Eye"
	default:
		return "Hand + Eye"
	}
}

// handleMode forwards a mode selection. The checkmark moves when the loop
// confirms the switch through SetMode.
func (t *Tray) handleMode(m gesture.Mode) {
	t.emit(m.Key())
}

// handleQuit forwards the quit key. The caller stops the tray once the
// loop has shut down.
func (t *Tray) handleQuit() {
	t.emit(gesture.KeyQuit)
}

func (t *Tray) emit(key int) {
	t.mu.RLock()
	callback := t.onKey
	t.mu.RUnlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(key)
	}
}

// SetMode updates the checked mode item.
func (t *Tray) SetMode(m gesture.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = m
	for mode, item := range t.modeItems {
		if item == nil {
			continue
		}
		if mode == m {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// Mode returns the mode currently shown as checked.
func (t *Tray) Mode() gesture.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// SetLastEvent updates the last action display in the menu.
func (t *Tray) SetLastEvent(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastEvent != nil {
		if name == "" {
			t.menuLastEvent.SetTitle("Last: none")
		} else {
			t.menuLastEvent.SetTitle("Last: " + name)
		}
	}
}
