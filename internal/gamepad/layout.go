package gamepad

import "math"

// Standard button positions.
const (
	ButtonSouth = iota // A / Cross
	ButtonEast         // B / Circle
	ButtonWest         // X / Square
	ButtonNorth        // Y / Triangle
	ButtonLeftBumper
	ButtonRightBumper
	ButtonLeftTrigger
	ButtonRightTrigger
	ButtonSelect
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight
	ButtonHome
)

// Standard axis positions.
const (
	AxisLeftX = iota
	AxisLeftY
	AxisRightX
	AxisRightY
)

// Hat bits as reported by SDL.
const (
	HatUp    uint8 = 0x01
	HatRight uint8 = 0x02
	HatDown  uint8 = 0x04
	HatLeft  uint8 = 0x08
)

// A trigger axis counts as a pressed trigger button above this value.
const triggerPressThreshold = 0.5

// AxisMapping defines how a raw axis index feeds the standard layout.
type AxisMapping struct {
	Index int32
	// Target is a standard axis position, or a standard button position when IsTrigger is set.
	Target    int
	IsTrigger bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw button index maps to a standard button position.
type ButtonMapping struct {
	Index  int32
	Target int
}

// Layout translates one controller family's raw joystick indices into the
// standard 17-button, 4-axis order.
type Layout struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// RawReader gives a layout access to one joystick's raw values.
type RawReader interface {
	NumButtons() int32
	Button(index int32) bool
	NumAxes() int32
	Axis(index int32) int16
	Hat() uint8
}

// Translate reads r through the layout. Raw indices the device does not
// report are left released / centered.
func (l *Layout) Translate(r RawReader, deadzone float64) Standard {
	var s Standard

	numAxes := r.NumAxes()
	for _, am := range l.Axes {
		if am.Index >= numAxes {
			continue
		}
		raw := r.Axis(am.Index)
		if am.IsTrigger {
			v := ApplyDeadzone(NormalizeTrigger(raw, am.RawMin, am.RawMax), deadzone)
			s.Buttons[am.Target] = s.Buttons[am.Target] || v > triggerPressThreshold
			continue
		}
		s.Axes[am.Target] = ApplyDeadzone(NormalizeAxis(raw), deadzone)
	}

	numButtons := r.NumButtons()
	for _, bm := range l.Buttons {
		if bm.Index >= numButtons {
			continue
		}
		s.Buttons[bm.Target] = s.Buttons[bm.Target] || r.Button(bm.Index)
	}

	if l.HasHat {
		hat := r.Hat()
		s.Buttons[ButtonDpadUp] = s.Buttons[ButtonDpadUp] || hat&HatUp != 0
		s.Buttons[ButtonDpadRight] = s.Buttons[ButtonDpadRight] || hat&HatRight != 0
		s.Buttons[ButtonDpadDown] = s.Buttons[ButtonDpadDown] || hat&HatDown != 0
		s.Buttons[ButtonDpadLeft] = s.Buttons[ButtonDpadLeft] || hat&HatLeft != 0
	}

	return s
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

var sticks = []AxisMapping{
	{Index: 0, Target: AxisLeftX},
	{Index: 1, Target: AxisLeftY},
	{Index: 2, Target: AxisRightX},
	{Index: 3, Target: AxisRightY},
}

var xboxLayout = &Layout{
	Name: "xbox",
	Axes: append(sticks[:len(sticks):len(sticks)],
		AxisMapping{Index: 4, Target: ButtonLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		AxisMapping{Index: 5, Target: ButtonRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	),
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonSouth},
		{Index: 1, Target: ButtonEast},
		{Index: 2, Target: ButtonWest},
		{Index: 3, Target: ButtonNorth},
		{Index: 4, Target: ButtonLeftBumper},
		{Index: 5, Target: ButtonRightBumper},
		{Index: 6, Target: ButtonSelect},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonHome},
	},
	HasHat: true,
}

var playstationLayout = &Layout{
	Name: "playstation",
	Axes: append(sticks[:len(sticks):len(sticks)],
		AxisMapping{Index: 4, Target: ButtonLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		AxisMapping{Index: 5, Target: ButtonRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	),
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonSouth},  // Cross (×)
		{Index: 1, Target: ButtonEast},   // Circle (○)
		{Index: 2, Target: ButtonWest},   // Square (□)
		{Index: 3, Target: ButtonNorth},  // Triangle (△)
		{Index: 4, Target: ButtonSelect}, // Share / Create
		{Index: 5, Target: ButtonHome},   // PS button
		{Index: 6, Target: ButtonStart},  // Options
		{Index: 7, Target: ButtonLeftStick},
		{Index: 8, Target: ButtonRightStick},
		{Index: 9, Target: ButtonLeftBumper},   // L1
		{Index: 10, Target: ButtonRightBumper}, // R1
	},
	HasHat: true,
}

// The Pro Controller reports ZL/ZR as buttons rather than axes.
var switchProLayout = &Layout{
	Name: "switch_pro",
	Axes: sticks,
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonSouth},
		{Index: 1, Target: ButtonEast},
		{Index: 2, Target: ButtonWest},
		{Index: 3, Target: ButtonNorth},
		{Index: 4, Target: ButtonLeftBumper},
		{Index: 5, Target: ButtonRightBumper},
		{Index: 6, Target: ButtonSelect},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonHome},
		{Index: 11, Target: ButtonLeftTrigger},
		{Index: 12, Target: ButtonRightTrigger},
	},
	HasHat: true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*Layout{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxLayout, // Xbox 360
	{0x045E, 0x02FF}: xboxLayout, // Xbox One
	{0x045E, 0x0B12}: xboxLayout, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxLayout, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationLayout, // DualSense
	{0x054C, 0x09CC}: playstationLayout, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationLayout, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProLayout,
}

// LayoutFor returns the standard layout for a device identified by
// vendor/product ID. Unknown devices have no layout and are exposed unmapped.
func LayoutFor(vendorID, productID uint16) (*Layout, bool) {
	l, ok := knownDevices[deviceKey{VendorID: vendorID, ProductID: productID}]
	return l, ok
}
