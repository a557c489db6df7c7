package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/soar/padsynth/internal/gamepad"
	"github.com/soar/padsynth/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, devices Devices, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)

		// Send current state to the new client
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPump(devices, logger)
	}
}

func handleDevices(devices Devices, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(gamepad.States(devices.Gamepads())); err != nil {
			logger.Warn("failed to write device list", "error", err)
		}
	}
}
