// Package gamepad turns polled controller snapshots into discrete input
// events.
//
// A Source enumerates raw devices. The Registry tracks one Gamepad handle per
// device index and refreshes their mappings every tick; a Synthesizer diffs
// the previous and current snapshots into ButtonChanged, AxisChanged and
// StickChanged events. Reader drives the whole loop at a fixed interval.
package gamepad

import "errors"

// ErrVibrationUnsupported is the panic value of Gamepad.Vibrate.
var ErrVibrationUnsupported = errors.New("gamepad: vibration is not implemented")

// Raw is a connected controller as reported by a device source. Values are
// read by position; implementations must not block.
type Raw interface {
	// Index is unique among currently connected devices and stable while
	// the device stays connected.
	Index() int
	// ID describes the device (vendor/product).
	ID() string
	Connected() bool
	MappingType() MappingType
	NumButtons() int
	Pressed(i int) bool
	NumAxes() int
	// Axis returns false when the value cannot be read.
	Axis(i int) (float64, bool)
}

// Source enumerates the currently connected raw devices.
type Source interface {
	Gamepads() []Raw
}

// Gamepad is a handle on one device together with the mapping read from it
// when the handle was made. Two handles denote the same device iff their
// indices match.
type Gamepad struct {
	index     int
	id        string
	connected bool
	mapping   Mapping
	raw       Raw
}

// New wraps raw, deciding the mapping type from what the hardware reports.
func New(raw Raw) Gamepad {
	return read(raw, raw.MappingType())
}

func read(raw Raw, t MappingType) Gamepad {
	return Gamepad{
		index:     raw.Index(),
		id:        raw.ID(),
		connected: raw.Connected(),
		mapping:   NewMapping(raw, t),
		raw:       raw,
	}
}

func (g Gamepad) Index() int { return g.index }

func (g Gamepad) ID() string { return g.id }

func (g Gamepad) Connected() bool { return g.connected }

func (g Gamepad) Mapping() Mapping { return g.mapping }

func (g Gamepad) Raw() Raw { return g.raw }

// Equal reports whether g and other denote the same device.
func (g Gamepad) Equal(other Gamepad) bool {
	return g.index == other.index
}

// Refresh re-reads the raw device. The mapping type stays the one the
// handle was created with.
func (g Gamepad) Refresh() Gamepad {
	if g.raw == nil {
		return g
	}
	return read(g.raw, g.mapping.Type())
}

// Vibrate always panics with ErrVibrationUnsupported.
func (g Gamepad) Vibrate(value, duration float64) {
	panic(ErrVibrationUnsupported)
}
