// Package rng - deterministic pseudo-random streams for layout generation.
//
// Goals:
//   - Determinism: same seed ⇒ identical sequence on every platform.
//   - Encapsulation: one generator type; no time-based sources hidden anywhere.
//   - Cheap: O(1) per draw, no allocations.
//
// Concurrency:
//   - LCG is NOT goroutine-safe. Do not share one across goroutines.
//   - Use Derive to split an independent stream for a second consumer.
package rng

// DefaultSeed is the seed used by the visualizer when none is configured.
const DefaultSeed uint32 = 1337

// Numerical Recipes LCG constants; arithmetic wraps mod 2^32.
const (
	multiplier uint32 = 1664525
	increment  uint32 = 1013904223
)

// twoTo32 maps a uint32 state onto [0,1).
const twoTo32 = 4294967296.0

// Source is the only capability consumers need: a float in [0,1).
type Source interface {
	Next() float64
}

// LCG is a 32-bit linear congruential generator.
type LCG struct {
	state uint32
}

// New returns a generator seeded verbatim with seed.
// Complexity: O(1).
func New(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next advances the recurrence seed = (a*seed + c) mod 2^32 and returns seed/2^32.
// Complexity: O(1).
func (r *LCG) Next() float64 {
	r.state = multiplier*r.state + increment
	return float64(r.state) / twoTo32
}

// State exposes the current recurrence value.
func (r *LCG) State() uint32 {
	return r.state
}

// Derive creates an independent deterministic stream keyed by stream.
// The parent advances by one draw so repeated derivations differ.
// Complexity: O(1).
func (r *LCG) Derive(stream uint64) *LCG {
	parent := r.Next()
	return New(mix(uint64(parent*twoTo32), stream))
}

// mix is a SplitMix64-style finalizer folded to 32 bits.
func mix(parent, stream uint64) uint32 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return uint32(x ^ (x >> 32))
}

// Intn returns an integer in [0,n). n<=0 yields 0.
func Intn(s Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Next() * float64(n))
	if i >= n { // guard against rounding at the top of the range
		i = n - 1
	}
	return i
}

// Range returns a float in [lo,hi).
func Range(s Source, lo, hi float64) float64 {
	return lo + s.Next()*(hi-lo)
}

// Chance reports true with probability p.
func Chance(s Source, p float64) bool {
	return s.Next() < p
}
