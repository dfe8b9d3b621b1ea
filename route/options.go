package route

import (
	"errors"
	"fmt"
)

// Sentinel errors for the route engine.
var (
	// ErrGraphNil indicates New was called without a graph.
	ErrGraphNil = errors.New("route: graph is nil")
	// ErrSourceNil indicates New was called without a random source.
	ErrSourceNil = errors.New("route: random source is nil")
	// ErrOptionViolation indicates an invalid Option or Params value.
	ErrOptionViolation = errors.New("route: invalid option supplied")
)

// Params tunes route generation and heat side effects.
type Params struct {
	// HopMin and HopMax bound the hop budget of each path (inclusive).
	HopMin, HopMax int
	// SpeedMin and SpeedSpan give speed = SpeedMin + U·SpeedSpan (t per frame).
	SpeedMin, SpeedSpan float64
	// HueMin and HueSpan give hue = HueMin + ⌊U·HueSpan⌋.
	HueMin, HueSpan int
	// PriorityRate is the share of routes tagged priority.
	PriorityRate float64
	// PrioritySpeed multiplies the speed of priority routes.
	PrioritySpeed float64
	// Intensity and PriorityIntensity scale the heat a route deposits.
	Intensity, PriorityIntensity float64
	// PathHeat warms every channel of the path per frame; SegmentHeat warms
	// the channel being traversed.
	PathHeat, SegmentHeat float64
}

// DefaultParams returns the tuning used by the landing page.
func DefaultParams() Params {
	return Params{
		HopMin:            4,
		HopMax:            8,
		SpeedMin:          0.006,
		SpeedSpan:         0.01,
		HueMin:            30,
		HueSpan:           60,
		PriorityRate:      0.1,
		PrioritySpeed:     1.5,
		Intensity:         1.0,
		PriorityIntensity: 1.4,
		PathHeat:          0.035,
		SegmentHeat:       0.45,
	}
}

// Validate reports the first meaningless value, wrapped in ErrOptionViolation.
func (p Params) Validate() error {
	switch {
	case p.HopMin < 1 || p.HopMax < p.HopMin:
		return fmt.Errorf("%w: hops [%d,%d]", ErrOptionViolation, p.HopMin, p.HopMax)
	case !(p.SpeedMin > 0) || p.SpeedSpan < 0:
		return fmt.Errorf("%w: speed %v+%v", ErrOptionViolation, p.SpeedMin, p.SpeedSpan)
	case p.HueSpan < 1:
		return fmt.Errorf("%w: HueSpan=%d", ErrOptionViolation, p.HueSpan)
	case p.PriorityRate < 0 || p.PriorityRate > 1:
		return fmt.Errorf("%w: PriorityRate=%v", ErrOptionViolation, p.PriorityRate)
	case !(p.PrioritySpeed > 0):
		return fmt.Errorf("%w: PrioritySpeed=%v", ErrOptionViolation, p.PrioritySpeed)
	case p.Intensity < 0 || p.PriorityIntensity < 0 || p.PathHeat < 0 || p.SegmentHeat < 0:
		return fmt.Errorf("%w: negative heat", ErrOptionViolation)
	}
	return nil
}

// Option customizes New.
type Option func(*Params)

// WithParams replaces the whole parameter set.
func WithParams(p Params) Option {
	return func(dst *Params) { *dst = p }
}

// WithHops overrides the hop budget range.
func WithHops(lo, hi int) Option {
	return func(p *Params) { p.HopMin, p.HopMax = lo, hi }
}

// WithPriorityRate overrides the share of priority routes.
func WithPriorityRate(rate float64) Option {
	return func(p *Params) { p.PriorityRate = rate }
}
