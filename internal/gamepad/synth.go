package gamepad

import (
	"fmt"
	"log/slog"
)

// MatchMode selects which devices of two snapshots are compared.
type MatchMode int

const (
	// MatchByIndex diffs every current device against the previous entry
	// with the same index.
	MatchByIndex MatchMode = iota
	// MatchFirst diffs only the first entry of each snapshot.
	MatchFirst
)

func (m MatchMode) String() string {
	if m == MatchFirst {
		return "first"
	}
	return "index"
}

// ParseMatchMode accepts "index" (or "") and "first".
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "index", "":
		return MatchByIndex, nil
	case "first":
		return MatchFirst, nil
	default:
		return 0, fmt.Errorf("unknown match mode %q", s)
	}
}

// Synthesizer turns two consecutive snapshots into events.
type Synthesizer struct {
	mode   MatchMode
	logger *slog.Logger
}

func NewSynthesizer(mode MatchMode, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{mode: mode, logger: logger}
}

func (s *Synthesizer) Mode() MatchMode { return s.mode }

// Synthesize compares prev and curr and returns the resulting events in the
// order of curr. Devices without a previous entry produce nothing.
func (s *Synthesizer) Synthesize(prev, curr []Gamepad) []DeviceEvent {
	if s.mode == MatchFirst {
		if len(prev) == 0 || len(curr) == 0 {
			return nil
		}
		return s.appendDevice(nil, prev[0], curr[0])
	}

	byIndex := make(map[int]Gamepad, len(prev))
	for _, g := range prev {
		if _, dup := byIndex[g.index]; !dup {
			byIndex[g.index] = g
		}
	}

	var out []DeviceEvent
	for _, g := range curr {
		old, ok := byIndex[g.index]
		if !ok {
			continue
		}
		out = s.appendDevice(out, old, g)
	}
	return out
}

func (s *Synthesizer) appendDevice(out []DeviceEvent, old, cur Gamepad) []DeviceEvent {
	if !sameShape(old, cur) {
		s.logger.Debug("skipping device with mismatched mapping", "index", cur.index, "id", cur.id)
		return out
	}
	for _, e := range Diff(old, cur) {
		out = append(out, DeviceEvent{Gamepad: cur, Event: e})
	}
	return out
}

// Synthesize diffs every device of curr against its entry in prev by index.
func Synthesize(prev, curr []Gamepad) []DeviceEvent {
	return NewSynthesizer(MatchByIndex, nil).Synthesize(prev, curr)
}

func sameShape(a, b Gamepad) bool {
	return a.mapping != nil && b.mapping != nil && a.mapping.Type() == b.mapping.Type()
}

// Diff returns the events that turn prev into curr for one device: button
// transitions by ascending index, then changed axes by ascending index, then
// the left and right sticks. It returns nil when the mappings differ in type.
func Diff(prev, curr Gamepad) []Event {
	if !sameShape(prev, curr) {
		return nil
	}

	var events []Event

	oldButtons, newButtons := prev.mapping.ButtonStates(), curr.mapping.ButtonStates()
	for i := range min(len(oldButtons), len(newButtons)) {
		if oldButtons[i] != newButtons[i] {
			events = append(events, ButtonChanged{Button: i, Pressed: newButtons[i]})
		}
	}

	oldAxes, newAxes := prev.mapping.AxisValues(), curr.mapping.AxisValues()
	for i := range min(len(oldAxes), len(newAxes)) {
		if oldAxes[i] != newAxes[i] {
			events = append(events, AxisChanged{Axis: i, Value: newAxes[i]})
		}
	}

	if e, ok := stickChange(oldAxes, newAxes, AxisLeftX, AxisLeftY, SideLeft); ok {
		events = append(events, e)
	}
	if e, ok := stickChange(oldAxes, newAxes, AxisRightX, AxisRightY, SideRight); ok {
		events = append(events, e)
	}

	return events
}

type axisValue struct {
	v  float64
	ok bool
}

func axisAt(axes []float64, i int) axisValue {
	if i < len(axes) {
		return axisValue{v: axes[i], ok: true}
	}
	return axisValue{}
}

func stickChange(oldAxes, newAxes []float64, x, y int, side Side) (StickChanged, bool) {
	ox, oy := axisAt(oldAxes, x), axisAt(oldAxes, y)
	nx, ny := axisAt(newAxes, x), axisAt(newAxes, y)
	if ox == nx && oy == ny {
		return StickChanged{}, false
	}
	if !nx.ok || !ny.ok {
		return StickChanged{}, false
	}
	return StickChanged{XAxis: x, YAxis: y, X: nx.v, Y: ny.v, Side: side}, true
}
