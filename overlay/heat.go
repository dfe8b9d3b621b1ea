package overlay

import (
	"slices"

	"github.com/chenyukang/fiber-world/network"
)

const (
	// DecayFactor multiplies every hot edge's heat once per frame.
	DecayFactor = 0.93
	// HeatFloor is the heat below which an edge leaves the hot set.
	HeatFloor = 0.01
	// MaxHeat bounds edge heat.
	MaxHeat = 1.0
)

// HeatMap is the set of edge slots whose heat is above HeatFloor.
// The zero value is ready to use.
type HeatMap struct {
	hot map[int]struct{}
}

// NewHeatMap returns an empty HeatMap.
func NewHeatMap() *HeatMap {
	return &HeatMap{hot: make(map[int]struct{})}
}

// Add raises the heat of edge slot by amount, clamped to MaxHeat, and marks
// it hot. Out-of-range slots and non-positive amounts are ignored.
func (h *HeatMap) Add(g *network.Graph, slot int, amount float64) bool {
	if g == nil || slot < 0 || slot >= len(g.Edges) || !(amount > 0) {
		return false
	}
	if h.hot == nil {
		h.hot = make(map[int]struct{})
	}
	e := &g.Edges[slot]
	e.Heat = min(MaxHeat, e.Heat+amount)
	h.hot[slot] = struct{}{}
	return true
}

// Decay multiplies every hot edge by DecayFactor. Edges that fall below
// HeatFloor, or whose slot no longer exists, are zeroed and dropped.
func (h *HeatMap) Decay(g *network.Graph) {
	for slot := range h.hot {
		if g == nil || slot >= len(g.Edges) {
			delete(h.hot, slot)
			continue
		}
		e := &g.Edges[slot]
		e.Heat *= DecayFactor
		if e.Heat < HeatFloor {
			e.Heat = 0
			delete(h.hot, slot)
		}
	}
}

// Hot returns the hot slots in ascending order.
func (h *HeatMap) Hot() []int {
	out := make([]int, 0, len(h.hot))
	for slot := range h.hot {
		out = append(out, slot)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of hot edges.
func (h *HeatMap) Len() int {
	return len(h.hot)
}

// Contains reports whether slot is hot.
func (h *HeatMap) Contains(slot int) bool {
	_, ok := h.hot[slot]
	return ok
}

// Reset cools every hot edge of g and empties the set. g may be nil when the
// graph it referred to has been discarded.
func (h *HeatMap) Reset(g *network.Graph) {
	if g != nil {
		for slot := range h.hot {
			if slot < len(g.Edges) {
				g.Edges[slot].Heat = 0
			}
		}
	}
	clear(h.hot)
}
