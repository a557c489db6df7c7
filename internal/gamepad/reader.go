package gamepad

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/soar/padsynth/internal/log"
)

const (
	DefaultPollInterval = 16 * time.Millisecond // ~60Hz
	batchBuffer         = 64
)

// Opener is implemented by sources that must be initialised on the polling
// goroutine. Such sources are also closed there, if they implement io.Closer.
type Opener interface {
	Open() error
}

// Batch is the set of events produced by one tick.
type Batch struct {
	Seq    int64
	Time   time.Time
	Events []DeviceEvent
}

// Reader polls a Source at a fixed interval and publishes the synthesized
// events of every tick that produced any.
type Reader struct {
	source   Source
	registry *Registry
	synth    *Synthesizer
	interval time.Duration
	logger   *slog.Logger

	batches chan Batch
	seq     int64
	dropped atomic.Int64
}

type ReaderConfig struct {
	Source       Source
	Registry     *Registry
	Synthesizer  *Synthesizer
	PollInterval time.Duration
	Logger       *slog.Logger
}

func NewReader(cfg ReaderConfig) *Reader {
	r := &Reader{
		source:   cfg.Source,
		registry: cfg.Registry,
		synth:    cfg.Synthesizer,
		interval: cfg.PollInterval,
		logger:   cfg.Logger,
		batches:  make(chan Batch, batchBuffer),
	}
	if r.registry == nil {
		r.registry = NewRegistry()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.synth == nil {
		r.synth = NewSynthesizer(MatchByIndex, r.logger)
	}
	if r.interval <= 0 {
		r.interval = DefaultPollInterval
	}
	return r
}

// Batches returns the channel on which event batches are sent.
func (r *Reader) Batches() <-chan Batch {
	return r.batches
}

func (r *Reader) Registry() *Registry {
	return r.registry
}

// Dropped returns how many batches were discarded because the consumer
// fell behind.
func (r *Reader) Dropped() int64 {
	return r.dropped.Load()
}

// Run polls until ctx is done. The source is opened and closed on the
// calling goroutine, which stays locked to its OS thread.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if o, ok := r.source.(Opener); ok {
		if err := o.Open(); err != nil {
			return fmt.Errorf("open gamepad source: %w", err)
		}
	}
	if c, ok := r.source.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				r.logger.Warn("failed to close gamepad source", "error", err)
			}
		}()
	}

	r.logger.Info("gamepad reader started", "interval", r.interval, "match", r.synth.Mode())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("gamepad reader stopped")
			return nil
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick performs one poll: it registers newly enumerated devices, forgets
// vanished ones, synthesizes events and publishes them. A device reported
// under a tracked index by a different Raw starts over without a baseline. The events are also
// returned.
func (r *Reader) Tick() []DeviceEvent {
	raws := r.source.Gamepads()

	seen := make(map[int]bool, len(raws))
	for _, raw := range raws {
		seen[raw.Index()] = true
		if tracked, ok := r.registry.Lookup(raw.Index()); ok {
			if tracked.Raw() == raw {
				continue
			}
			// The index was reused by another device within one poll.
			r.registry.Unregister(raw.Index())
			r.logger.Info("gamepad replaced", "index", tracked.Index(), "old", tracked.ID(), "new", raw.ID())
		}
		g := r.registry.Register(raw)
		r.logger.Info("gamepad connected",
			"index", g.Index(), "id", g.ID(), "mapping", g.Mapping().Type(),
			"buttons", len(g.Mapping().ButtonStates()), "axes", len(g.Mapping().AxisValues()))
	}
	for _, g := range r.registry.Gamepads() {
		if !seen[g.Index()] && r.registry.Unregister(g.Index()) {
			r.logger.Info("gamepad disconnected", "index", g.Index(), "id", g.ID())
		}
	}

	events := r.registry.Collect(r.synth)
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		r.logger.Log(context.Background(), log.LevelTrace, "gamepad event", "index", e.Gamepad.Index(), "event", e.Event)
	}

	r.seq++
	b := Batch{Seq: r.seq, Time: time.Now(), Events: events}
	select {
	case r.batches <- b:
	default:
		// Drop if channel is full to avoid stalling the poll loop
		r.dropped.Add(1)
	}
	return events
}
