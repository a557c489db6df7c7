package simpad

import (
	"context"
	"math"
	"time"

	"github.com/soar/padsynth/internal/gamepad"
)

// Demo animates pads so the service has something to show without
// hardware: the left stick circles once per period, the right stick sweeps
// horizontally, and face buttons are pulsed in turn.
type Demo struct {
	pads   []*Pad
	period time.Duration
}

func NewDemo(period time.Duration, pads ...*Pad) *Demo {
	if period <= 0 {
		period = 4 * time.Second
	}
	return &Demo{pads: pads, period: period}
}

// Apply sets every pad to its state at elapsed time since start. Axes are
// rounded to two decimals so that successive ticks repeat values.
func (d *Demo) Apply(elapsed time.Duration) {
	phase := float64(elapsed%d.period) / float64(d.period)
	angle := 2 * math.Pi * phase

	for n, p := range d.pads {
		shift := float64(n) * math.Pi / 2
		p.SetAxis(gamepad.AxisLeftX, round2(math.Cos(angle+shift)))
		p.SetAxis(gamepad.AxisLeftY, round2(math.Sin(angle+shift)))
		p.SetAxis(gamepad.AxisRightX, round2(2*phase-1))
		p.SetAxis(gamepad.AxisRightY, 0)

		held := int(phase * 4)
		for b := gamepad.ButtonSouth; b <= gamepad.ButtonNorth; b++ {
			p.SetButton(b, b == held)
		}
	}
}

// Run applies the animation every interval until ctx is done.
func (d *Demo) Run(ctx context.Context, interval time.Duration) {
	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			d.Apply(now.Sub(start))
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
