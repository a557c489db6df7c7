package gamepad

const (
	StandardButtons = 17
	StandardAxes    = 4
)

// MappingType is the hardware-reported layout of a device.
type MappingType int

const (
	// MappingUnknown means the hardware reports no recognized layout.
	MappingUnknown MappingType = iota
	MappingStandard
)

func (t MappingType) String() string {
	switch t {
	case MappingStandard:
		return "standard"
	default:
		return "unmapped"
	}
}

// Mapping is one device's button and axis state at an instant. It is either
// a Standard or an Unmapped value.
type Mapping interface {
	Type() MappingType
	// ButtonStates returns the pressed state of every button, by position.
	ButtonStates() []bool
	// AxisValues returns every axis value, by position.
	AxisValues() []float64

	mapping()
}

// Standard is the fixed 17-button, 4-axis layout. Axes 0-1 are the left
// stick, 2-3 the right stick.
type Standard struct {
	Buttons [StandardButtons]bool  `json:"buttons"`
	Axes    [StandardAxes]float64 `json:"axes"`
}

func (Standard) Type() MappingType { return MappingStandard }

func (m Standard) ButtonStates() []bool { return m.Buttons[:] }

func (m Standard) AxisValues() []float64 { return m.Axes[:] }

func (Standard) mapping() {}

// Unmapped holds whatever buttons and axes the hardware reports. Lengths
// may change between polls on exotic devices.
type Unmapped struct {
	Buttons []bool    `json:"buttons"`
	Axes    []float64 `json:"axes"`
}

func (Unmapped) Type() MappingType { return MappingUnknown }

func (m Unmapped) ButtonStates() []bool { return m.Buttons }

func (m Unmapped) AxisValues() []float64 { return m.Axes }

func (Unmapped) mapping() {}

// NewMapping reads raw into a Mapping of type t. It never fails: buttons the
// device does not report read as released and unreadable axes read as 0.
func NewMapping(raw Raw, t MappingType) Mapping {
	if t == MappingStandard {
		var m Standard
		n := min(raw.NumButtons(), StandardButtons)
		for i := range n {
			m.Buttons[i] = raw.Pressed(i)
		}
		for i := range m.Axes {
			m.Axes[i] = readAxis(raw, i)
		}
		return m
	}

	m := Unmapped{
		Buttons: make([]bool, max(raw.NumButtons(), 0)),
		Axes:    make([]float64, max(raw.NumAxes(), 0)),
	}
	for i := range m.Buttons {
		m.Buttons[i] = raw.Pressed(i)
	}
	for i := range m.Axes {
		m.Axes[i] = readAxis(raw, i)
	}
	return m
}

func readAxis(raw Raw, i int) float64 {
	if i >= raw.NumAxes() {
		return 0
	}
	v, ok := raw.Axis(i)
	if !ok {
		return 0
	}
	return v
}
