package gamepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeJoystick struct {
	buttons []bool
	axes    []int16
	hat     uint8
}

func (f *fakeJoystick) NumButtons() int32 { return int32(len(f.buttons)) }
func (f *fakeJoystick) Button(i int32) bool { return f.buttons[i] }
func (f *fakeJoystick) NumAxes() int32 { return int32(len(f.axes)) }
func (f *fakeJoystick) Axis(i int32) int16 { return f.axes[i] }
func (f *fakeJoystick) Hat() uint8 { return f.hat }

func TestLayoutFor(t *testing.T) {
	l, ok := LayoutFor(0x045E, 0x0B13)
	assert.True(t, ok)
	assert.Equal(t, "xbox", l.Name)

	l, ok = LayoutFor(0x054C, 0x0CE6)
	assert.True(t, ok)
	assert.Equal(t, "playstation", l.Name)

	_, ok = LayoutFor(0x1234, 0x5678)
	assert.False(t, ok)
}

func TestTranslateXbox(t *testing.T) {
	js := &fakeJoystick{
		buttons: make([]bool, 11),
		axes:    []int16{32767, -32768, 0, 16384, 32767, -32768},
		hat:     HatUp | HatLeft,
	}
	js.buttons[0] = true  // A
	js.buttons[6] = true  // View
	js.buttons[10] = true // Guide

	s := xboxLayout.Translate(js, 0)

	assert.True(t, s.Buttons[ButtonSouth])
	assert.True(t, s.Buttons[ButtonSelect])
	assert.True(t, s.Buttons[ButtonHome])
	assert.True(t, s.Buttons[ButtonLeftTrigger])
	assert.False(t, s.Buttons[ButtonRightTrigger])
	assert.True(t, s.Buttons[ButtonDpadUp])
	assert.True(t, s.Buttons[ButtonDpadLeft])
	assert.False(t, s.Buttons[ButtonDpadDown])
	assert.False(t, s.Buttons[ButtonEast])

	assert.Equal(t, 1.0, s.Axes[AxisLeftX])
	assert.Equal(t, -1.0, s.Axes[AxisLeftY])
	assert.Equal(t, 0.0, s.Axes[AxisRightX])
	assert.InDelta(t, 0.5, s.Axes[AxisRightY], 0.001)
}

func TestTranslateMissingInputs(t *testing.T) {
	js := &fakeJoystick{buttons: []bool{true}, axes: []int16{1000}}

	s := playstationLayout.Translate(js, 0.05)

	assert.True(t, s.Buttons[ButtonSouth])
	assert.Equal(t, 0.0, s.Axes[AxisLeftX], "inside deadzone")
	assert.Equal(t, [StandardAxes]float64{}, s.Axes)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, -1.0, NormalizeAxis(-32768))
	assert.Equal(t, 1.0, NormalizeAxis(32767))
	assert.Equal(t, 0.0, NormalizeTrigger(-32768, -32768, 32767))
	assert.Equal(t, 1.0, NormalizeTrigger(32767, -32768, 32767))
	assert.Equal(t, 0.0, NormalizeTrigger(5, 3, 3))
	assert.Equal(t, 0.0, ApplyDeadzone(0.01, 0.05))
	assert.Equal(t, -0.5, ApplyDeadzone(-0.5, 0.05))
}
