package network

import (
	"errors"
	"fmt"
	"image/color"
)

// Sentinel errors for network operations.
var (
	// ErrNodeIndex indicates an index outside [0,len(Nodes)).
	ErrNodeIndex = errors.New("network: node index out of range")
	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("network: self-loop not allowed")
	// ErrDegreeCap indicates an endpoint already holds its tier's maximum degree.
	ErrDegreeCap = errors.New("network: degree cap reached")
	// ErrOptionViolation indicates an invalid Option or Params value.
	ErrOptionViolation = errors.New("network: invalid option supplied")
	// ErrUnknownTier indicates an unrecognised tier name.
	ErrUnknownTier = errors.New("network: unknown tier")
)

// Tier classifies nodes by visual weight; connection radius and degree cap
// decrease from Hub to Micro.
type Tier uint8

const (
	// Hub is a large anchor node.
	Hub Tier = iota
	// Secondary nodes ring a hub.
	Secondary
	// Micro nodes fill rings, clusters and the central band.
	Micro

	tierCount
)

var tierNames = [tierCount]string{"hub", "secondary", "micro"}

// String returns "hub", "secondary" or "micro".
func (t Tier) String() string {
	if t < tierCount {
		return tierNames[t]
	}
	return fmt.Sprintf("tier(%d)", uint8(t))
}

// ParseTier maps a tier name back to its Tier.
func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if name == s {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Node is a placed vertex. Neighbors lists adjacent node indices in insertion order.
type Node struct {
	X, Y      float64
	R         float64
	Tier      Tier
	Color     color.NRGBA
	Ring      color.NRGBA
	Neighbors []int
}

// Edge is an undirected channel between node indices A and B (A != B).
// W is the proximity weight in (0,1]; Heat is transient emphasis in [0,1].
type Edge struct {
	A, B int
	W    float64
	Heat float64
}

// EdgeKey identifies an unordered node pair: the smaller index in the high
// 32 bits, the larger in the low 32 bits.
type EdgeKey uint64

// KeyOf returns the order-independent key of the pair (a,b).
func KeyOf(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey(uint64(uint32(a))<<32 | uint64(uint32(b)))
}

// Nodes returns the endpoints encoded in k, smaller first.
func (k EdgeKey) Nodes() (a, b int) {
	return int(uint32(k >> 32)), int(uint32(k))
}

// String renders the key as "a-b".
func (k EdgeKey) String() string {
	a, b := k.Nodes()
	return fmt.Sprintf("%d-%d", a, b)
}

// NodeColor is the core fill shared by all nodes.
var NodeColor = color.NRGBA{R: 200, G: 240, B: 255, A: 230}

// RingPalette holds the multi-color outer ring tints.
var RingPalette = []color.NRGBA{
	{R: 0x7C, G: 0xFF, B: 0xB2, A: 0xFF},
	{R: 0xFF, G: 0x67, B: 0x67, A: 0xFF},
	{R: 0xFF, G: 0xE1, B: 0x5D, A: 0xFF},
	{R: 0x66, G: 0xB3, B: 0xFF, A: 0xFF},
	{R: 0xB2, G: 0x66, B: 0xFF, A: 0xFF},
	{R: 0xFF, G: 0x9E, B: 0x66, A: 0xFF},
	{R: 0x5C, G: 0xFF, B: 0xC7, A: 0xFF},
	{R: 0xFF, G: 0x66, B: 0xC4, A: 0xFF},
}
