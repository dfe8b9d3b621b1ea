package route

import "github.com/chenyukang/fiber-world/network"

// Outcome classifies how a path search from a start toward a target ended.
type Outcome int

const (
	// Arrived: the greedy walk ended on the target.
	Arrived Outcome = iota
	// Detour: the target lies within the hop budget but the greedy walk
	// stopped short of it.
	Detour
	// OutOfReach: the target is connected but farther than the hop budget.
	OutOfReach
	// Severed: no channel path joins start and target.
	Severed

	outcomeCount
)

// Outcomes lists every Outcome in order.
var Outcomes = [outcomeCount]Outcome{Arrived, Detour, OutOfReach, Severed}

func (o Outcome) String() string {
	switch o {
	case Arrived:
		return "arrived"
	case Detour:
		return "detour"
	case OutOfReach:
		return "out_of_reach"
	case Severed:
		return "severed"
	}
	return "unknown"
}

// Classify reports the Outcome of path, the greedy result of a walk from a
// toward b within maxHops.
func Classify(g *network.Graph, path []int, a, b, maxHops int) Outcome {
	if len(path) > 1 && path[len(path)-1] == b {
		return Arrived
	}
	if g.Within(a, b, maxHops) {
		return Detour
	}
	if g.Reachable(a, b) {
		return OutOfReach
	}
	return Severed
}

// Tally counts path searches by Outcome.
type Tally [outcomeCount]int

// Get returns the count for o.
func (t *Tally) Get(o Outcome) int {
	if o < 0 || o >= outcomeCount {
		return 0
	}
	return t[o]
}

// Total returns the number of searches counted.
func (t *Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}
