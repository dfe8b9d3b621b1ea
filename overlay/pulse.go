package overlay

import "math"

// PulseGrowth is the radius added to every pulse per Step.
const PulseGrowth = 1.8

// Pulse is an expanding ring centred on a node.
type Pulse struct {
	X, Y  float64
	R     float64
	MaxR  float64
	Hue   int
	Alpha float64
}

// Fade returns the expansion progress t = R/MaxR in [0,1] and the alpha
// scaled by (1-t). MaxR below 1 is treated as 1.
func (p Pulse) Fade() (t, alpha float64) {
	maxR := math.Max(1, p.MaxR)
	t = math.Max(0, math.Min(1, p.R/maxR))
	return t, p.Alpha * (1 - t)
}

// Alive reports whether the pulse is finite, still visible and within MaxR.
func (p Pulse) Alive() bool {
	if !finite(p.X) || !finite(p.Y) || !finite(p.R) || !finite(p.MaxR) || !finite(p.Alpha) {
		return false
	}
	if p.R > math.Max(1, p.MaxR) {
		return false
	}
	_, a := p.Fade()
	return a > 0
}

// Pulses is an ordered list of live pulses. The zero value is ready to use.
type Pulses struct {
	list []Pulse
}

// Emit appends p unless it is already dead.
func (ps *Pulses) Emit(p Pulse) {
	if p.Alive() {
		ps.list = append(ps.list, p)
	}
}

// Step grows every pulse by PulseGrowth and drops the ones that died.
func (ps *Pulses) Step() {
	kept := ps.list[:0]
	for _, p := range ps.list {
		if !p.Alive() {
			continue
		}
		p.R += PulseGrowth
		if p.Alive() {
			kept = append(kept, p)
		}
	}
	clear(ps.list[len(kept):])
	ps.list = kept
}

// All returns the live pulses. The slice is only valid until the next Step.
func (ps *Pulses) All() []Pulse {
	return ps.list
}

// Len returns the number of live pulses.
func (ps *Pulses) Len() int {
	return len(ps.list)
}

// Reset drops every pulse.
func (ps *Pulses) Reset() {
	ps.list = ps.list[:0]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
