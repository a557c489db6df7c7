package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/soar/padsynth/internal/gamepad"
)

const (
	sendBuffer = 256
	writeWait  = 5 * time.Second
)

// DeviceLookup resolves a device index to a tracked gamepad.
type DeviceLookup interface {
	Lookup(index int) (gamepad.Gamepad, bool)
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string

	mu     sync.Mutex
	send   chan []byte
	closed bool
	device *int // nil follows every device
}

// NewClient creates a new Client attached to the hub, following every device.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		id:   uuid.NewString(),
		send: make(chan []byte, sendBuffer),
	}
}

func (c *Client) ID() string { return c.id }

// Follow restricts the client to one device; nil follows every device.
func (c *Client) Follow(deviceIndex *int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if deviceIndex == nil {
		c.device = nil
		return
	}
	i := *deviceIndex
	c.device = &i
}

// Follows reports whether messages about deviceIndex go to this client.
func (c *Client) Follows(deviceIndex int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device == nil || *c.device == deviceIndex
}

func (c *Client) trySend(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
}

// ReadPump reads client commands until the connection fails, then
// unregisters the client.
func (c *Client) ReadPump(devices DeviceLookup, logger *slog.Logger) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			logger.Warn("error parsing client message", "client", c.id, "error", err)
			continue
		}

		switch clientMsg.Type {
		case ClientSelectDevice:
			if clientMsg.DeviceIndex != nil {
				if _, ok := devices.Lookup(*clientMsg.DeviceIndex); !ok {
					logger.Warn("client selected unknown device", "client", c.id, "device", *clientMsg.DeviceIndex)
					continue
				}
			}
			c.Follow(clientMsg.DeviceIndex)
			data, err := json.Marshal(NewDeviceSelectedMessage(clientMsg.DeviceIndex))
			if err != nil {
				logger.Error("error marshaling device_selected message", "error", err)
				continue
			}
			c.trySend(data)
			logger.Debug("client switched device", "client", c.id, "device", clientMsg.DeviceIndex)
		default:
			logger.Warn("unknown client message", "client", c.id, "type", clientMsg.Type)
		}
	}
}
