package gesture

import (
	"fmt"
	"strings"
)

// Mode selects which gesture rules run.
type Mode int

// The zero Mode is ModeBoth, so a zero Session starts with every rule enabled.
const (
	ModeBoth Mode = iota
	ModeHand
	ModeEye
)

// Input keys recognised by the control loop.
const (
	KeyHand = 'h'
	KeyEye  = 'e'
	KeyBoth = 'b'
	// KeyQuit is not a mode key; the control loop stops on it.
	KeyQuit = 'q'
)

// ModeForKey maps a mode-switch key to its Mode.
func ModeForKey(key int) (Mode, bool) {
	switch key {
	case KeyHand:
		return ModeHand, true
	case KeyEye:
		return ModeEye, true
	case KeyBoth:
		return ModeBoth, true
	}
	return ModeBoth, false
}

// ParseMode accepts the long and short mode names, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hand", "h":
		return ModeHand, nil
	case "eye", "e":
		return ModeEye, nil
	case "both", "b":
		return ModeBoth, nil
	}
	return ModeBoth, fmt.Errorf("unknown mode %q", s)
}

// Hands reports whether hand rules run in this mode.
func (m Mode) Hands() bool {
	return m == ModeHand || m == ModeBoth
}

// Eyes reports whether eye rules run in this mode.
func (m Mode) Eyes() bool {
	return m == ModeEye || m == ModeBoth
}

// Key returns the input key that selects m.
func (m Mode) Key() int {
	switch m {
	case ModeHand:
		return KeyHand
	case ModeEye:
		return KeyEye
	default:
		return KeyBoth
	}
}

// String returns the one-letter overlay label.
func (m Mode) String() string {
	switch m {
	case ModeHand:
		return "H"
	case ModeEye:
		return "E"
	case ModeBoth:
		return "B"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Name returns the long mode name.
func (m Mode) Name() string {
	switch m {
	case ModeHand:
		return "hand"
	case ModeEye:
		return "eye"
	default:
		return "both"
	}
}
