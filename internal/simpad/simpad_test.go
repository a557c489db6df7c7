package simpad_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soar/padsynth/internal/gamepad"
	"github.com/soar/padsynth/internal/simpad"
)

func TestPadReads(t *testing.T) {
	p := simpad.NewStandard(2).SetButton(3, true).SetAxis(1, -0.25).SetUnreadable(2)

	assert.Equal(t, 2, p.Index())
	assert.True(t, p.Connected())
	assert.Equal(t, gamepad.MappingStandard, p.MappingType())
	assert.Equal(t, gamepad.StandardButtons, p.NumButtons())
	assert.True(t, p.Pressed(3))
	assert.False(t, p.Pressed(99))

	v, ok := p.Axis(1)
	assert.True(t, ok)
	assert.Equal(t, -0.25, v)
	_, ok = p.Axis(2)
	assert.False(t, ok)
	_, ok = p.Axis(-1)
	assert.False(t, ok)

	p.SetAxis(2, 0.5)
	v, ok = p.Axis(2)
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
}

func TestPadGrowsAndShrinks(t *testing.T) {
	p := simpad.NewUnmapped(0, 2, 1)
	p.SetButton(5, true).SetAxis(3, 1)
	assert.Equal(t, 6, p.NumButtons())
	assert.Equal(t, 4, p.NumAxes())

	p.SetLayout(1, 0)
	assert.Equal(t, 1, p.NumButtons())
	assert.Equal(t, 0, p.NumAxes())
}

func TestSourceAddRemove(t *testing.T) {
	s := simpad.NewSource(simpad.NewStandard(0))
	s.Add(simpad.NewUnmapped(1, 4, 2))
	assert.Len(t, s.Gamepads(), 2)

	s.Remove(0)
	raws := s.Gamepads()
	if assert.Len(t, raws, 1) {
		assert.Equal(t, 1, raws[0].Index())
	}
}

func TestDemoApply(t *testing.T) {
	p := simpad.NewStandard(0)
	d := simpad.NewDemo(4*time.Second, p)

	d.Apply(0)
	x, _ := p.Axis(gamepad.AxisLeftX)
	y, _ := p.Axis(gamepad.AxisLeftY)
	rx, _ := p.Axis(gamepad.AxisRightX)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, -1.0, rx)
	assert.True(t, p.Pressed(gamepad.ButtonSouth))

	d.Apply(time.Second)
	x, _ = p.Axis(gamepad.AxisLeftX)
	y, _ = p.Axis(gamepad.AxisLeftY)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 1.0, y)
	assert.False(t, p.Pressed(gamepad.ButtonSouth))
	assert.True(t, p.Pressed(gamepad.ButtonEast))
}
