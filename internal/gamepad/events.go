package gamepad

import "fmt"

// Side identifies one of the two analog sticks.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

type EventKind int

const (
	KindButton EventKind = iota
	KindAxis
	KindStick
)

func (k EventKind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindAxis:
		return "axis"
	case KindStick:
		return "stick"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one of ButtonChanged, AxisChanged or StickChanged.
type Event interface {
	Kind() EventKind

	event()
}

// ButtonChanged is emitted once per press or release transition.
type ButtonChanged struct {
	Button  int
	Pressed bool
}

// AxisChanged carries the new value of an axis that differs from the
// previous tick.
type AxisChanged struct {
	Axis  int
	Value float64
}

// StickChanged carries both current components of a stick when either of
// them moved.
type StickChanged struct {
	XAxis int
	YAxis int
	X     float64
	Y     float64
	Side  Side
}

func (ButtonChanged) Kind() EventKind { return KindButton }
func (AxisChanged) Kind() EventKind { return KindAxis }
func (StickChanged) Kind() EventKind { return KindStick }

func (ButtonChanged) event() {}
func (AxisChanged) event() {}
func (StickChanged) event() {}

func (e ButtonChanged) String() string {
	if e.Pressed {
		return fmt.Sprintf("button %d pressed", e.Button)
	}
	return fmt.Sprintf("button %d released", e.Button)
}

func (e AxisChanged) String() string {
	return fmt.Sprintf("axis %d = %g", e.Axis, e.Value)
}

func (e StickChanged) String() string {
	return fmt.Sprintf("%s stick (%d,%d) = (%g, %g)", e.Side, e.XAxis, e.YAxis, e.X, e.Y)
}

// DeviceEvent pairs an event with the handle of the device it came from.
type DeviceEvent struct {
	Gamepad Gamepad
	Event   Event
}
