package gamepad

// DeviceState is the JSON view of one Gamepad handle.
type DeviceState struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Connected bool      `json:"connected"`
	Mapping   string    `json:"mapping"`
	Buttons   []bool    `json:"buttons"`
	Axes      []float64 `json:"axes"`
}

// StateOf captures g for serialization.
func StateOf(g Gamepad) DeviceState {
	s := DeviceState{
		Index:     g.index,
		ID:        g.id,
		Connected: g.connected,
		Buttons:   []bool{},
		Axes:      []float64{},
	}
	if g.mapping != nil {
		s.Mapping = g.mapping.Type().String()
		s.Buttons = append(s.Buttons, g.mapping.ButtonStates()...)
		s.Axes = append(s.Axes, g.mapping.AxisValues()...)
	}
	return s
}

// States captures every handle of a snapshot.
func States(gamepads []Gamepad) []DeviceState {
	out := make([]DeviceState, len(gamepads))
	for i, g := range gamepads {
		out[i] = StateOf(g)
	}
	return out
}
