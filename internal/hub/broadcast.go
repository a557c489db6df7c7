package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/soar/padsynth/internal/gamepad"
)

const (
	fullSyncInterval = 5 * time.Second
	eventCountSync   = 100
)

// DeviceLister returns the currently tracked devices.
type DeviceLister interface {
	Gamepads() []gamepad.Gamepad
}

// Broadcaster forwards reader batches to the hub, one events message per
// device, and periodically sends a full device snapshot.
type Broadcaster struct {
	hub     *Hub
	batches <-chan gamepad.Batch
	devices DeviceLister
	logger  *slog.Logger

	mu  sync.Mutex
	seq int64
}

func NewBroadcaster(h *Hub, batches <-chan gamepad.Batch, devices DeviceLister, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		hub:     h,
		batches: batches,
		devices: devices,
		logger:  logger,
	}
}

// Run starts the broadcaster loop and returns when ctx is done or the batch
// channel is closed.
func (b *Broadcaster) Run(ctx context.Context) error {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var sent int
	for {
		select {
		case <-ctx.Done():
			return nil

		case batch, ok := <-b.batches:
			if !ok {
				return nil
			}
			sent += b.sendBatch(batch)
			// Send a full snapshot periodically so late joiners and
			// lossy clients resynchronize.
			if sent >= eventCountSync {
				b.sendSnapshot()
				sent = 0
			}

		case <-ticker.C:
			b.sendSnapshot()
		}
	}
}

// SendInitialState sends the current snapshot to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	data, err := json.Marshal(NewSnapshotMessage(b.nextSeq(), gamepad.States(b.devices.Gamepads())))
	if err != nil {
		b.logger.Error("error marshaling initial state", "error", err)
		return
	}
	c.trySend(data)
}

func (b *Broadcaster) nextSeq() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

func (b *Broadcaster) sendSnapshot() {
	data, err := json.Marshal(NewSnapshotMessage(b.nextSeq(), gamepad.States(b.devices.Gamepads())))
	if err != nil {
		b.logger.Error("error marshaling snapshot message", "error", err)
		return
	}
	b.hub.Broadcast(data)
}

// sendBatch groups the batch by device, keeping event order, and returns the
// number of messages sent.
func (b *Broadcaster) sendBatch(batch gamepad.Batch) int {
	var order []int
	grouped := make(map[int][]EventPayload)
	for _, de := range batch.Events {
		idx := de.Gamepad.Index()
		if _, ok := grouped[idx]; !ok {
			order = append(order, idx)
		}
		grouped[idx] = append(grouped[idx], NewEventPayload(de.Event))
	}

	for _, idx := range order {
		data, err := json.Marshal(NewEventsMessage(b.nextSeq(), batch.Time, idx, grouped[idx]))
		if err != nil {
			b.logger.Error("error marshaling events message", "device", idx, "error", err)
			continue
		}
		b.hub.BroadcastToDevice(data, idx)
	}
	return len(order)
}
