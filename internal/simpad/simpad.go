// Package simpad provides in-memory gamepads for tests and the simulated
// device source.
package simpad

import (
	"fmt"
	"slices"
	"sync"

	"github.com/soar/padsynth/internal/gamepad"
)

// Pad is a settable raw gamepad. All methods are safe for concurrent use.
type Pad struct {
	mu         sync.Mutex
	index      int
	id         string
	connected  bool
	mapping    gamepad.MappingType
	buttons    []bool
	axes       []float64
	unreadable map[int]bool
}

// NewStandard returns a connected pad with the standard 17-button, 4-axis layout.
func NewStandard(index int) *Pad {
	return &Pad{
		index:     index,
		id:        fmt.Sprintf("Simulated Standard Gamepad %d (Vendor: 0000 Product: 0000)", index),
		connected: true,
		mapping:   gamepad.MappingStandard,
		buttons:   make([]bool, gamepad.StandardButtons),
		axes:      make([]float64, gamepad.StandardAxes),
	}
}

// NewUnmapped returns a connected pad without a recognized layout.
func NewUnmapped(index, buttons, axes int) *Pad {
	return &Pad{
		index:     index,
		id:        fmt.Sprintf("Simulated Joystick %d", index),
		connected: true,
		mapping:   gamepad.MappingUnknown,
		buttons:   make([]bool, buttons),
		axes:      make([]float64, axes),
	}
}

func (p *Pad) Index() int { return p.index }

func (p *Pad) ID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

func (p *Pad) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *Pad) MappingType() gamepad.MappingType {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mapping
}

func (p *Pad) NumButtons() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buttons)
}

func (p *Pad) Pressed(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return i >= 0 && i < len(p.buttons) && p.buttons[i]
}

func (p *Pad) NumAxes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.axes)
}

func (p *Pad) Axis(i int) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.axes) || p.unreadable[i] {
		return 0, false
	}
	return p.axes[i], true
}

// SetID changes the device description.
func (p *Pad) SetID(id string) *Pad {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = id
	return p
}

// SetButton presses or releases button i, growing the button list if needed.
func (p *Pad) SetButton(i int, pressed bool) *Pad {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= len(p.buttons) {
		p.buttons = append(p.buttons, make([]bool, i+1-len(p.buttons))...)
	}
	p.buttons[i] = pressed
	return p
}

// SetAxis sets axis i, growing the axis list if needed. The axis becomes
// readable again.
func (p *Pad) SetAxis(i int, v float64) *Pad {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= len(p.axes) {
		p.axes = append(p.axes, make([]float64, i+1-len(p.axes))...)
	}
	p.axes[i] = v
	delete(p.unreadable, i)
	return p
}

// SetUnreadable makes reads of axis i fail until it is set again.
func (p *Pad) SetUnreadable(i int) *Pad {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unreadable == nil {
		p.unreadable = make(map[int]bool)
	}
	p.unreadable[i] = true
	return p
}

// SetMappingType changes what the pad reports as its layout.
func (p *Pad) SetMappingType(t gamepad.MappingType) *Pad {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mapping = t
	return p
}

// SetLayout replaces the button and axis lists with the given lengths.
func (p *Pad) SetLayout(buttons, axes int) *Pad {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buttons = resize(p.buttons, buttons)
	p.axes = resize(p.axes, axes)
	return p
}

func (p *Pad) SetConnected(connected bool) *Pad {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = connected
	return p
}

func resize[T any](s []T, n int) []T {
	if n <= len(s) {
		return s[:n:n]
	}
	return append(s, make([]T, n-len(s))...)
}

// Source is a gamepad.Source over a set of Pads.
type Source struct {
	mu   sync.Mutex
	pads []*Pad
}

func NewSource(pads ...*Pad) *Source {
	return &Source{pads: pads}
}

// Add plugs in a pad.
func (s *Source) Add(p *Pad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pads = append(s.pads, p)
}

// Remove unplugs the pad with the given index.
func (s *Source) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pads = slices.DeleteFunc(s.pads, func(p *Pad) bool { return p.index == index })
}

func (s *Source) Pads() []*Pad {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.pads)
}

// Gamepads implements gamepad.Source.
func (s *Source) Gamepads() []gamepad.Raw {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gamepad.Raw, len(s.pads))
	for i, p := range s.pads {
		out[i] = p
	}
	return out
}
