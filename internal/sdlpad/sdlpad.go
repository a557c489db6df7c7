// Package sdlpad is a gamepad.Source backed by the SDL3 joystick API.
//
// Controllers found in the gamepad layout table are exposed with the
// standard mapping; anything else is exposed with its raw buttons and axes.
// Every method must be called from the goroutine that called Open, which
// gamepad.Reader guarantees.
package sdlpad

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/padsynth/internal/gamepad"
)

// Source enumerates SDL joysticks.
type Source struct {
	deadzone  float64
	logger    *slog.Logger
	joysticks map[sdl.JoystickID]*joystick
	opened    bool
}

// New returns an unopened source. Axis values inside deadzone read as 0.
func New(deadzone float64, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		deadzone:  deadzone,
		logger:    logger,
		joysticks: make(map[sdl.JoystickID]*joystick),
	}
}

// Open initializes the SDL joystick subsystem and opens the joysticks that
// are already connected.
func (s *Source) Open() error {
	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("SDL init failed: %s", sdl.GetError())
	}
	s.opened = true
	s.logger.Info("SDL3 joystick subsystem initialized")

	for _, id := range sdl.GetJoysticks() {
		s.openJoystick(id)
	}
	return nil
}

// Close closes every joystick and shuts SDL down.
func (s *Source) Close() error {
	if !s.opened {
		return nil
	}
	for id, j := range s.joysticks {
		sdl.CloseJoystick(j.js)
		delete(s.joysticks, id)
	}
	sdl.Quit()
	s.opened = false
	return nil
}

// Gamepads pumps SDL events and returns the connected joysticks ordered by
// index, each holding its values as of this call.
func (s *Source) Gamepads() []gamepad.Raw {
	if !s.opened {
		return nil
	}
	s.processEvents()

	joysticks := make([]*joystick, 0, len(s.joysticks))
	for _, j := range s.joysticks {
		j.refresh()
		joysticks = append(joysticks, j)
	}
	slices.SortFunc(joysticks, func(a, b *joystick) int { return a.index - b.index })

	out := make([]gamepad.Raw, len(joysticks))
	for i, j := range joysticks {
		out[i] = j
	}
	return out
}

func (s *Source) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			s.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			s.removeJoystick(event.JDevice().Which)
		}
	}
}

func (s *Source) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := s.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		s.logger.Warn("failed to open joystick", "instance", instanceID, "error", sdl.GetError())
		return
	}

	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	layout, _ := gamepad.LayoutFor(vendorID, productID)

	j := &joystick{
		js:       js,
		index:    s.freeIndex(),
		id:       fmt.Sprintf("%s (Vendor: %04x Product: %04x)", name, vendorID, productID),
		layout:   layout,
		deadzone: s.deadzone,
	}
	s.joysticks[instanceID] = j
	j.refresh()

	layoutName := "unmapped"
	if layout != nil {
		layoutName = layout.Name
	}
	s.logger.Debug("joystick opened",
		"index", j.index, "name", name, "vid", fmt.Sprintf("%04X", vendorID), "pid", fmt.Sprintf("%04X", productID),
		"layout", layoutName,
		"axes", sdl.GetNumJoystickAxes(js), "buttons", sdl.GetNumJoystickButtons(js), "hats", sdl.GetNumJoystickHats(js))
}

func (s *Source) removeJoystick(instanceID sdl.JoystickID) {
	j, exists := s.joysticks[instanceID]
	if !exists {
		return
	}
	s.logger.Debug("joystick closed", "index", j.index, "id", j.id)
	j.markDisconnected()
	sdl.CloseJoystick(j.js)
	delete(s.joysticks, instanceID)
}

// freeIndex returns the lowest index no open joystick uses.
func (s *Source) freeIndex() int {
	used := make(map[int]bool, len(s.joysticks))
	for _, j := range s.joysticks {
		used[j.index] = true
	}
	i := 0
	for used[i] {
		i++
	}
	return i
}

// joystick is one open SDL joystick. Its values are captured by refresh.
type joystick struct {
	js       *sdl.Joystick
	index    int
	id       string
	layout   *gamepad.Layout
	deadzone float64

	mu        sync.Mutex
	connected bool
	buttons   []bool
	axes      []float64
}

func (j *joystick) refresh() {
	connected := sdl.JoystickConnected(j.js)
	var buttons []bool
	var axes []float64

	if j.layout != nil {
		s := j.layout.Translate(reader{j.js}, j.deadzone)
		buttons, axes = s.Buttons[:], s.Axes[:]
	} else {
		buttons = make([]bool, max(sdl.GetNumJoystickButtons(j.js), 0))
		for i := range buttons {
			buttons[i] = sdl.GetJoystickButton(j.js, int32(i))
		}
		axes = make([]float64, max(sdl.GetNumJoystickAxes(j.js), 0))
		for i := range axes {
			axes[i] = gamepad.ApplyDeadzone(gamepad.NormalizeAxis(sdl.GetJoystickAxis(j.js, int32(i))), j.deadzone)
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.connected = connected
	j.buttons = buttons
	j.axes = axes
}

func (j *joystick) markDisconnected() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.connected = false
}

func (j *joystick) Index() int { return j.index }

func (j *joystick) ID() string { return j.id }

func (j *joystick) Connected() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.connected
}

func (j *joystick) MappingType() gamepad.MappingType {
	if j.layout != nil {
		return gamepad.MappingStandard
	}
	return gamepad.MappingUnknown
}

func (j *joystick) NumButtons() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.buttons)
}

func (j *joystick) Pressed(i int) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return i >= 0 && i < len(j.buttons) && j.buttons[i]
}

func (j *joystick) NumAxes() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.axes)
}

func (j *joystick) Axis(i int) (float64, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if i < 0 || i >= len(j.axes) {
		return 0, false
	}
	return j.axes[i], true
}

// reader exposes an SDL joystick to gamepad.Layout.
type reader struct {
	js *sdl.Joystick
}

func (r reader) NumButtons() int32 { return sdl.GetNumJoystickButtons(r.js) }

func (r reader) Button(i int32) bool { return sdl.GetJoystickButton(r.js, i) }

func (r reader) NumAxes() int32 { return sdl.GetNumJoystickAxes(r.js) }

func (r reader) Axis(i int32) int16 { return sdl.GetJoystickAxis(r.js, i) }

func (r reader) Hat() uint8 {
	if sdl.GetNumJoystickHats(r.js) == 0 {
		return 0
	}
	return sdl.GetJoystickHat(r.js, 0)
}
