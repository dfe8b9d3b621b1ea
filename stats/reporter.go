package stats

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chenyukang/fiber-world/rng"
)

// Sentinel errors for the reporter.
var (
	// ErrSourceNil indicates New was called without a random source.
	ErrSourceNil = errors.New("stats: random source is nil")
	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("stats: invalid option supplied")
)

// Throughput per route is drawn from [tpsBase, tpsBase+tpsSpan).
const (
	tpsBase = 120
	tpsSpan = 80
)

// Slot receives formatted counter text.
type Slot interface {
	SetText(string)
}

// SlotFunc adapts a function to Slot.
type SlotFunc func(string)

// SetText implements Slot. A nil SlotFunc discards the text.
func (f SlotFunc) SetText(s string) {
	if f != nil {
		f(s)
	}
}

// Slots are the three output targets. Any of them may be nil.
type Slots struct {
	Nodes      Slot
	Channels   Slot
	Throughput Slot
}

// Sample is a raw reading of the live visualization.
type Sample struct {
	Nodes    int
	Channels int
	Routes   int
}

// Values holds displayed or target counter values.
type Values struct {
	Nodes      float64 `json:"nodes"`
	Channels   float64 `json:"channels"`
	Throughput float64 `json:"throughput"`
}

// Reporter owns the eased counters. It is safe for concurrent use.
type Reporter struct {
	mu         sync.Mutex
	src        rng.Source
	easing     Easing
	multiplier float64
	slots      Slots
	target     Values
	display    Values
}

// Option customizes New.
type Option func(*Reporter) error

// WithEasing selects the easing function; nil is rejected.
func WithEasing(e Easing) Option {
	return func(r *Reporter) error {
		if e == nil {
			return fmt.Errorf("%w: WithEasing(nil)", ErrOptionViolation)
		}
		r.easing = e
		return nil
	}
}

// WithMultiplier scales every target; it must be positive and finite.
func WithMultiplier(m float64) Option {
	return func(r *Reporter) error {
		if !(m > 0) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: multiplier %v", ErrOptionViolation, m)
		}
		r.multiplier = m
		return nil
	}
}

// WithSlots sets the output targets.
func WithSlots(s Slots) Option {
	return func(r *Reporter) error {
		r.slots = s
		return nil
	}
}

// DefaultEasing closes a third of the gap per interval.
func DefaultEasing() Easing {
	return Proportional{Step: 0.35, Snap: 0.5}
}

// New returns a Reporter drawing throughput noise from src.
func New(src rng.Source, opts ...Option) (*Reporter, error) {
	if src == nil {
		return nil, fmt.Errorf("stats.New: %w", ErrSourceNil)
	}
	r := &Reporter{src: src, easing: DefaultEasing(), multiplier: 1}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("stats.New: %w", err)
		}
	}
	return r, nil
}

// Sample records new targets from s.
func (r *Reporter) Sample(s Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tps := float64(s.Routes) * (tpsBase + r.src.Next()*tpsSpan)
	r.target = Values{
		Nodes:      float64(s.Nodes) * r.multiplier,
		Channels:   float64(s.Channels) * r.multiplier,
		Throughput: math.Round(tps) * r.multiplier,
	}
}

// Ease advances the displayed values by dt and writes them to the slots.
func (r *Reporter) Ease(dt time.Duration) Values {
	r.mu.Lock()
	r.display = Values{
		Nodes:      r.easing.Ease(r.display.Nodes, r.target.Nodes, dt),
		Channels:   r.easing.Ease(r.display.Channels, r.target.Channels, dt),
		Throughput: r.easing.Ease(r.display.Throughput, r.target.Throughput, dt),
	}
	v, slots := r.display, r.slots
	r.mu.Unlock()

	write(slots.Nodes, v.Nodes)
	write(slots.Channels, v.Channels)
	write(slots.Throughput, v.Throughput)
	return v
}

// Update samples and eases in one step.
func (r *Reporter) Update(s Sample, dt time.Duration) Values {
	r.Sample(s)
	return r.Ease(dt)
}

// Snapshot returns the displayed values rounded to integers.
func (r *Reporter) Snapshot() Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Values{
		Nodes:      math.Round(r.display.Nodes),
		Channels:   math.Round(r.display.Channels),
		Throughput: math.Round(r.display.Throughput),
	}
}

// Target returns the current targets.
func (r *Reporter) Target() Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

// Format renders v rounded with thousands separators, e.g. 12,345.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return humanize.Comma(int64(math.Round(v)))
}

func write(s Slot, v float64) {
	if s != nil {
		s.SetText(Format(v))
	}
}
