package gamepad

import (
	"slices"
	"sync"
)

// Registry tracks the currently known devices, at most one handle per index.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	gamepads []Gamepad
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register wraps raw and starts tracking it unless a device with the same
// index is already tracked. The returned handle always reflects raw as just
// read.
func (r *Registry) Register(raw Raw) Gamepad {
	g := New(raw)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.tracks(g.index) {
		r.gamepads = append(r.gamepads, g)
	}
	return g
}

// Unregister stops tracking the device with the given index.
func (r *Registry) Unregister(index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.gamepads)
	r.gamepads = slices.DeleteFunc(r.gamepads, func(g Gamepad) bool { return g.index == index })
	return len(r.gamepads) != before
}

// Snapshot re-reads every tracked device and returns the fresh handles in
// tracking order. Tracked state is not modified.
func (r *Registry) Snapshot() []Gamepad {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return refreshAll(r.gamepads)
}

// Advance replaces the tracked set with next.
func (r *Registry) Advance(next []Gamepad) {
	next = slices.Clone(next)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.gamepads = next
}

// Collect snapshots every tracked device, synthesizes events against the
// tracked state and advances to the snapshot, as one exclusive step.
func (r *Registry) Collect(s *Synthesizer) []DeviceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := refreshAll(r.gamepads)
	events := s.Synthesize(r.gamepads, next)
	r.gamepads = next
	return events
}

// Gamepads returns a copy of the tracked handles.
func (r *Registry) Gamepads() []Gamepad {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.gamepads)
}

// Lookup returns the tracked handle with the given index.
func (r *Registry) Lookup(index int) (Gamepad, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.gamepads {
		if g.index == index {
			return g, true
		}
	}
	return Gamepad{}, false
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.gamepads)
}

func (r *Registry) tracks(index int) bool {
	for _, g := range r.gamepads {
		if g.index == index {
			return true
		}
	}
	return false
}

func refreshAll(gamepads []Gamepad) []Gamepad {
	out := make([]Gamepad, len(gamepads))
	for i, g := range gamepads {
		out[i] = g.Refresh()
	}
	return out
}
