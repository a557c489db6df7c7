package gamepad_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soar/padsynth/internal/gamepad"
	"github.com/soar/padsynth/internal/simpad"
)

func eventsOf(des []gamepad.DeviceEvent) []gamepad.Event {
	out := make([]gamepad.Event, len(des))
	for i, de := range des {
		out[i] = de.Event
	}
	return out
}

func TestDiff(t *testing.T) {
	type testCase struct {
		name     string
		prev     func() *simpad.Pad
		mutate   func(p *simpad.Pad)
		expected []gamepad.Event
	}

	cases := []testCase{
		{
			name:     "press",
			prev:     func() *simpad.Pad { return simpad.NewUnmapped(0, 1, 0) },
			mutate:   func(p *simpad.Pad) { p.SetButton(0, true) },
			expected: []gamepad.Event{gamepad.ButtonChanged{Button: 0, Pressed: true}},
		},
		{
			name:     "held button is silent",
			prev:     func() *simpad.Pad { return simpad.NewUnmapped(0, 1, 0).SetButton(0, true) },
			mutate:   func(p *simpad.Pad) {},
			expected: nil,
		},
		{
			name:     "release",
			prev:     func() *simpad.Pad { return simpad.NewUnmapped(0, 1, 0).SetButton(0, true) },
			mutate:   func(p *simpad.Pad) { p.SetButton(0, false) },
			expected: []gamepad.Event{gamepad.ButtonChanged{Button: 0, Pressed: false}},
		},
		{
			name:     "axis change has no tolerance",
			prev:     func() *simpad.Pad { return simpad.NewUnmapped(0, 0, 1) },
			mutate:   func(p *simpad.Pad) { p.SetAxis(0, 0.30000000000000004) },
			expected: []gamepad.Event{gamepad.AxisChanged{Axis: 0, Value: 0.30000000000000004}},
		},
		{
			name:   "left stick",
			prev:   func() *simpad.Pad { return simpad.NewStandard(0) },
			mutate: func(p *simpad.Pad) { p.SetAxis(0, 0.5) },
			expected: []gamepad.Event{
				gamepad.AxisChanged{Axis: 0, Value: 0.5},
				gamepad.StickChanged{XAxis: 0, YAxis: 1, X: 0.5, Y: 0, Side: gamepad.SideLeft},
			},
		},
		{
			name:   "both sticks",
			prev:   func() *simpad.Pad { return simpad.NewStandard(0) },
			mutate: func(p *simpad.Pad) { p.SetAxis(1, -1).SetAxis(3, 0.25) },
			expected: []gamepad.Event{
				gamepad.AxisChanged{Axis: 1, Value: -1},
				gamepad.AxisChanged{Axis: 3, Value: 0.25},
				gamepad.StickChanged{XAxis: 0, YAxis: 1, X: 0, Y: -1, Side: gamepad.SideLeft},
				gamepad.StickChanged{XAxis: 2, YAxis: 3, X: 0, Y: 0.25, Side: gamepad.SideRight},
			},
		},
		{
			name:   "ordering buttons then axes then sticks",
			prev:   func() *simpad.Pad { return simpad.NewStandard(0).SetButton(12, true) },
			mutate: func(p *simpad.Pad) { p.SetAxis(2, 1).SetButton(12, false).SetButton(1, true).SetAxis(0, -1) },
			expected: []gamepad.Event{
				gamepad.ButtonChanged{Button: 1, Pressed: true},
				gamepad.ButtonChanged{Button: 12, Pressed: false},
				gamepad.AxisChanged{Axis: 0, Value: -1},
				gamepad.AxisChanged{Axis: 2, Value: 1},
				gamepad.StickChanged{XAxis: 0, YAxis: 1, X: -1, Y: 0, Side: gamepad.SideLeft},
				gamepad.StickChanged{XAxis: 2, YAxis: 3, X: 1, Y: 0, Side: gamepad.SideRight},
			},
		},
		{
			name:     "stick needs both components",
			prev:     func() *simpad.Pad { return simpad.NewUnmapped(0, 0, 3) },
			mutate:   func(p *simpad.Pad) { p.SetAxis(2, 0.75) },
			expected: []gamepad.Event{gamepad.AxisChanged{Axis: 2, Value: 0.75}},
		},
		{
			name:   "stick appears when axes grow",
			prev:   func() *simpad.Pad { return simpad.NewUnmapped(0, 0, 2) },
			mutate: func(p *simpad.Pad) { p.SetLayout(0, 4) },
			expected: []gamepad.Event{
				gamepad.StickChanged{XAxis: 2, YAxis: 3, X: 0, Y: 0, Side: gamepad.SideRight},
			},
		},
		{
			name:     "shorter sequence stops pairing",
			prev:     func() *simpad.Pad { return simpad.NewUnmapped(0, 3, 0) },
			mutate:   func(p *simpad.Pad) { p.SetLayout(1, 0).SetButton(0, true) },
			expected: []gamepad.Event{gamepad.ButtonChanged{Button: 0, Pressed: true}},
		},
		{
			name:     "unreadable axis reads as zero",
			prev:     func() *simpad.Pad { return simpad.NewUnmapped(0, 0, 1).SetAxis(0, 0.4) },
			mutate:   func(p *simpad.Pad) { p.SetUnreadable(0) },
			expected: []gamepad.Event{gamepad.AxisChanged{Axis: 0, Value: 0}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.prev()
			prev := gamepad.New(p)
			tc.mutate(p)
			curr := gamepad.New(p)
			assert.Equal(t, tc.expected, gamepad.Diff(prev, curr))
		})
	}
}

func TestDiffShapeMismatch(t *testing.T) {
	p := simpad.NewStandard(0)
	prev := gamepad.New(p)
	p.SetMappingType(gamepad.MappingUnknown).SetButton(0, true)
	curr := gamepad.New(p)

	assert.Nil(t, gamepad.Diff(prev, curr))
	assert.Empty(t, gamepad.Synthesize([]gamepad.Gamepad{prev}, []gamepad.Gamepad{curr}))
	assert.Nil(t, gamepad.Diff(gamepad.Gamepad{}, curr))
}

func TestSynthesizeSelfIsEmpty(t *testing.T) {
	s := []gamepad.Gamepad{
		gamepad.New(simpad.NewStandard(0).SetButton(4, true).SetAxis(1, 0.3)),
		gamepad.New(simpad.NewUnmapped(1, 6, 3).SetAxis(2, -0.1)),
	}
	for _, mode := range []gamepad.MatchMode{gamepad.MatchByIndex, gamepad.MatchFirst} {
		t.Run(mode.String(), func(t *testing.T) {
			assert.Empty(t, gamepad.NewSynthesizer(mode, nil).Synthesize(s, s))
		})
	}
}

func TestSynthesizeNewDeviceIsSilent(t *testing.T) {
	a := simpad.NewStandard(0)
	b := simpad.NewStandard(1).SetButton(0, true)
	prev := []gamepad.Gamepad{gamepad.New(a)}
	curr := []gamepad.Gamepad{gamepad.New(a), gamepad.New(b)}

	assert.Empty(t, gamepad.Synthesize(prev, curr))
	assert.Empty(t, gamepad.Synthesize(nil, curr))
	assert.Empty(t, gamepad.Synthesize(prev, nil))
}

func TestSynthesizeByIndex(t *testing.T) {
	a := simpad.NewStandard(0)
	b := simpad.NewStandard(3)
	prev := []gamepad.Gamepad{gamepad.New(a), gamepad.New(b)}

	a.SetButton(0, true)
	b.SetAxis(gamepad.AxisRightX, 0.5)
	// Reordered on purpose: matching is by index, not position.
	curr := []gamepad.Gamepad{gamepad.New(b), gamepad.New(a)}

	got := gamepad.Synthesize(prev, curr)
	if !assert.Len(t, got, 3) {
		return
	}
	assert.Equal(t, 3, got[0].Gamepad.Index())
	assert.Equal(t, gamepad.AxisChanged{Axis: 2, Value: 0.5}, got[0].Event)
	assert.Equal(t, 3, got[1].Gamepad.Index())
	assert.Equal(t, gamepad.StickChanged{XAxis: 2, YAxis: 3, X: 0.5, Y: 0, Side: gamepad.SideRight}, got[1].Event)
	assert.Equal(t, 0, got[2].Gamepad.Index())
	assert.Equal(t, gamepad.ButtonChanged{Button: 0, Pressed: true}, got[2].Event)
}

func TestSynthesizeFirstOnly(t *testing.T) {
	a := simpad.NewStandard(0)
	b := simpad.NewStandard(1)
	prev := []gamepad.Gamepad{gamepad.New(a), gamepad.New(b)}

	a.SetButton(2, true)
	b.SetButton(2, true)
	curr := []gamepad.Gamepad{gamepad.New(a), gamepad.New(b)}

	got := gamepad.NewSynthesizer(gamepad.MatchFirst, nil).Synthesize(prev, curr)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 0, got[0].Gamepad.Index())
		assert.Equal(t, gamepad.ButtonChanged{Button: 2, Pressed: true}, got[0].Event)
	}
}

func TestParseMatchMode(t *testing.T) {
	m, err := gamepad.ParseMatchMode("first")
	assert.NoError(t, err)
	assert.Equal(t, gamepad.MatchFirst, m)

	m, err = gamepad.ParseMatchMode("")
	assert.NoError(t, err)
	assert.Equal(t, gamepad.MatchByIndex, m)

	_, err = gamepad.ParseMatchMode("all")
	assert.Error(t, err)
}

func TestEventStrings(t *testing.T) {
	assert.Equal(t, "button 3 pressed", gamepad.ButtonChanged{Button: 3, Pressed: true}.String())
	assert.Equal(t, "button 3 released", gamepad.ButtonChanged{Button: 3}.String())
	assert.Equal(t, "axis 2 = -0.8", gamepad.AxisChanged{Axis: 2, Value: -0.8}.String())
	assert.Equal(t, "right stick (2,3) = (0, -0.8)",
		gamepad.StickChanged{XAxis: 2, YAxis: 3, Y: -0.8, Side: gamepad.SideRight}.String())
	assert.Equal(t, "stick", gamepad.KindStick.String())
}
