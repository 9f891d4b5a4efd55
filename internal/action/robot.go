package action

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// RobotPointer drives the real cursor through robotgo.
type RobotPointer struct {
	width  int
	height int
}

// NewRobotPointer creates a RobotPointer for the primary screen.
func NewRobotPointer() *RobotPointer {
	w, h := robotgo.GetScreenSize()
	return &RobotPointer{width: w, height: h}
}

// MoveTo moves the cursor, refusing targets inside the fail-safe margin.
func (p *RobotPointer) MoveTo(x, y int) error {
	if !inBounds(x, y, p.width, p.height) {
		return fmt.Errorf("move to (%d, %d) on %dx%d: %w", x, y, p.width, p.height, ErrFailSafe)
	}
	robotgo.Move(x, y)
	return nil
}

// Click presses and releases the left button.
func (p *RobotPointer) Click() error {
	robotgo.Click("left")
	return nil
}

// RightClick presses and releases the right button.
func (p *RobotPointer) RightClick() error {
	robotgo.Click("right")
	return nil
}

// Scroll turns the vertical wheel.
func (p *RobotPointer) Scroll(amount int) error {
	robotgo.Scroll(0, amount)
	return nil
}

// ScreenSize returns the screen size captured at construction.
func (p *RobotPointer) ScreenSize() (int, int) {
	return p.width, p.height
}
