package hub

import (
	"time"

	"github.com/soar/padsynth/internal/gamepad"
)

// Message types sent from server to client.
const (
	TypeSnapshot       = "snapshot"
	TypeEvents         = "events"
	TypeDeviceSelected = "device_selected"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type        string                `json:"type"`
	Seq         int64                 `json:"seq"`
	Timestamp   int64                 `json:"timestamp"` // Unix milliseconds
	DeviceIndex *int                  `json:"deviceIndex,omitempty"`
	Devices     []gamepad.DeviceState `json:"devices,omitzero"`
	Events      []EventPayload        `json:"events,omitempty"`
}

// EventPayload is the wire form of one gamepad event. Index is the button
// or axis index, or the X axis of a stick.
type EventPayload struct {
	Type    string        `json:"type"`
	Index   int           `json:"index"`
	Pressed *bool         `json:"pressed,omitempty"`
	Value   *float64      `json:"value,omitempty"`
	Stick   *StickPayload `json:"stick,omitempty"`
}

type StickPayload struct {
	Side  string  `json:"side"`
	XAxis int     `json:"xAxis"`
	YAxis int     `json:"yAxis"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// NewEventPayload converts a gamepad event to its wire form.
func NewEventPayload(e gamepad.Event) EventPayload {
	p := EventPayload{Type: e.Kind().String()}
	switch ev := e.(type) {
	case gamepad.ButtonChanged:
		p.Index = ev.Button
		p.Pressed = &ev.Pressed
	case gamepad.AxisChanged:
		p.Index = ev.Axis
		p.Value = &ev.Value
	case gamepad.StickChanged:
		p.Index = ev.XAxis
		p.Stick = &StickPayload{Side: ev.Side.String(), XAxis: ev.XAxis, YAxis: ev.YAxis, X: ev.X, Y: ev.Y}
	}
	return p
}

// NewSnapshotMessage creates a "snapshot" message listing every tracked
// device. The list is encoded even when empty.
func NewSnapshotMessage(seq int64, devices []gamepad.DeviceState) *WSMessage {
	if devices == nil {
		devices = []gamepad.DeviceState{}
	}
	return &WSMessage{
		Type:      TypeSnapshot,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Devices:   devices,
	}
}

// NewEventsMessage creates an "events" message for one device.
func NewEventsMessage(seq int64, at time.Time, deviceIndex int, events []EventPayload) *WSMessage {
	return &WSMessage{
		Type:        TypeEvents,
		Seq:         seq,
		Timestamp:   at.UnixMilli(),
		DeviceIndex: &deviceIndex,
		Events:      events,
	}
}

// NewDeviceSelectedMessage confirms a client's device filter. A nil index
// means the client follows every device.
func NewDeviceSelectedMessage(deviceIndex *int) *WSMessage {
	return &WSMessage{
		Type:        TypeDeviceSelected,
		Timestamp:   time.Now().UnixMilli(),
		DeviceIndex: deviceIndex,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type        string `json:"type"`
	DeviceIndex *int   `json:"deviceIndex"`
}

const ClientSelectDevice = "select_device"
