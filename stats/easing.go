package stats

import (
	"math"
	"time"
)

// Easing moves a displayed value toward its target over an elapsed interval.
type Easing interface {
	Ease(display, target float64, dt time.Duration) float64
}

// Proportional closes a fixed fraction of the gap per call and snaps once
// within Snap of the target. The interval is ignored.
type Proportional struct {
	Step float64
	Snap float64
}

// Ease implements Easing.
func (p Proportional) Ease(display, target float64, _ time.Duration) float64 {
	d := display + (target-display)*p.Step
	if math.Abs(target-d) < p.Snap {
		return target
	}
	return d
}

// Exponential decays the gap with time constant Tau: d = t + (d−t)·e^(−dt/τ).
// A non-positive Tau jumps straight to the target.
type Exponential struct {
	Tau time.Duration
}

// Ease implements Easing.
func (e Exponential) Ease(display, target float64, dt time.Duration) float64 {
	if e.Tau <= 0 {
		return target
	}
	if dt <= 0 {
		return display
	}
	return target + (display-target)*math.Exp(-float64(dt)/float64(e.Tau))
}
