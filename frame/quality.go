package frame

import (
	"fmt"
	"math"

	"github.com/chenyukang/fiber-world/render"
)

// Quality is the adaptive rendering state.
type Quality uint8

const (
	// Normal renders at up to MaxDPR with the full route cap.
	Normal Quality = iota
	// Reduced renders at ratio 1 with the reduced route cap.
	Reduced
)

func (q Quality) String() string {
	if q == Reduced {
		return "reduced"
	}
	return "normal"
}

// Adaptive quality thresholds (ms) and ratio bounds.
const (
	slowFrame     = 22.0
	fastFrame     = 15.0
	MaxDPR        = 1.35
	dprStep       = 0.05
	initialAvg    = 16.0
	deviceDPRCap  = 2.0
	smoothing     = 0.9
	minFrameDelta = 1.0
)

// governor smooths frame intervals and decides ratio and route cap.
type governor struct {
	avg     float64
	prev    float64
	hasPrev bool
	dpr     float64
	quality Quality
}

// checkCanvas rejects a w×h canvas that cannot be rasterized at the highest
// ratio a governor started at device may reach. Non-finite or negative
// extents pass; the layout clamps them.
func checkCanvas(w, h, device float64) error {
	dpr := math.Max(math.Min(device, deviceDPRCap), MaxDPR)
	pw, ph := math.Ceil(extent(w)*dpr), math.Ceil(extent(h)*dpr)
	if pw*ph > render.MaxPixels {
		return fmt.Errorf("%w: %v×%v at ratio %v is %.0f px", ErrCanvasTooLarge, w, h, dpr, pw*ph)
	}
	return nil
}

func extent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func newGovernor(device float64) governor {
	return governor{avg: initialAvg, dpr: math.Min(device, deviceDPRCap)}
}

// observe feeds timestamp ts (ms) and reports whether the ratio changed.
func (g *governor) observe(ts float64) (changed bool) {
	if g.hasPrev {
		dt := math.Max(minFrameDelta, ts-g.prev)
		g.avg = g.avg*smoothing + dt*(1-smoothing)
	}
	g.prev, g.hasPrev = ts, true

	switch {
	case g.avg > slowFrame && g.dpr > 1:
		g.dpr = 1
		g.quality = Reduced
		return true
	case g.avg < fastFrame && g.dpr < MaxDPR:
		g.dpr = math.Min(MaxDPR, g.dpr+dprStep)
		g.quality = Normal
		return true
	}
	return false
}
