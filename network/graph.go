package network

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/chenyukang/fiber-world/bfs"
	"github.com/chenyukang/fiber-world/rng"
	"github.com/chenyukang/fiber-world/spatial"
)

// Graph owns the nodes and edges of one generated layout.
// It is not safe for concurrent mutation.
type Graph struct {
	Width, Height float64
	Nodes         []Node
	Edges         []Edge

	params Params
	index  map[EdgeKey]int
	grid   *spatial.Grid
}

// candidate pairs a node index with its squared distance to a query point.
type candidate struct {
	idx int
	d2  float64
}

// Params returns the parameters the graph was built with.
func (g *Graph) Params() Params {
	return g.params
}

// Len returns the node count (bfs.Graph).
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// Neighbors returns the adjacency of node i (bfs.Graph). Out-of-range yields nil.
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= len(g.Nodes) {
		return nil
	}
	return g.Nodes[i].Neighbors
}

// EdgeCount returns the number of channels.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// Degree returns the number of channels incident to node i.
func (g *Graph) Degree(i int) int {
	return len(g.Neighbors(i))
}

// Cap returns the degree cap of node i's tier.
func (g *Graph) Cap(i int) int {
	return g.params.Tier(g.Nodes[i].Tier).MaxDegree
}

// Radius returns the connection radius of node i's tier. A zero radius
// disables automatic linking for that tier.
func (g *Graph) Radius(i int) float64 {
	return g.params.Tier(g.Nodes[i].Tier).Radius
}

// EdgeIndex looks up the edge slot for the unordered pair (a,b).
// Complexity: O(1).
func (g *Graph) EdgeIndex(a, b int) (int, bool) {
	slot, ok := g.index[KeyOf(a, b)]
	return slot, ok
}

// Slot looks up an edge slot by key.
func (g *Graph) Slot(k EdgeKey) (int, bool) {
	slot, ok := g.index[k]
	return slot, ok
}

// HasEdge reports whether a channel joins a and b.
func (g *Graph) HasEdge(a, b int) bool {
	_, ok := g.index[KeyOf(a, b)]
	return ok
}

// AddEdge inserts the channel (a,b) with weight w clamped to [WeightFloor,1].
// An existing channel is returned with added=false and no error.
// Returns ErrNodeIndex, ErrSelfLoop or ErrDegreeCap on violations.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(a, b int, w float64) (slot int, added bool, err error) {
	n := len(g.Nodes)
	if a < 0 || a >= n || b < 0 || b >= n {
		return -1, false, fmt.Errorf("AddEdge(%d,%d): %w", a, b, ErrNodeIndex)
	}
	if a == b {
		return -1, false, fmt.Errorf("AddEdge(%d,%d): %w", a, b, ErrSelfLoop)
	}
	key := KeyOf(a, b)
	if slot, ok := g.index[key]; ok {
		return slot, false, nil
	}
	if g.Degree(a) >= g.Cap(a) || g.Degree(b) >= g.Cap(b) {
		return -1, false, fmt.Errorf("AddEdge(%d,%d): %w", a, b, ErrDegreeCap)
	}
	if math.IsNaN(w) {
		w = g.params.WeightFloor
	}
	w = math.Min(1, math.Max(g.params.WeightFloor, w))

	slot = len(g.Edges)
	g.Edges = append(g.Edges, Edge{A: a, B: b, W: w})
	g.index[key] = slot
	g.Nodes[a].Neighbors = append(g.Nodes[a].Neighbors, b)
	g.Nodes[b].Neighbors = append(g.Nodes[b].Neighbors, a)

	return slot, true, nil
}

// Hubs returns the indices of hub-tier nodes in placement order.
func (g *Graph) Hubs() []int {
	var hubs []int
	for i := range g.Nodes {
		if g.Nodes[i].Tier == Hub {
			hubs = append(hubs, i)
		}
	}
	return hubs
}

// Dist2 returns the squared distance between nodes a and b.
func (g *Graph) Dist2(a, b int) float64 {
	dx := g.Nodes[a].X - g.Nodes[b].X
	dy := g.Nodes[a].Y - g.Nodes[b].Y
	return dx*dx + dy*dy
}

// Nearest returns the node closest to (x,y) within maxDist, or -1.
// Complexity: O(k) over the grid cells within maxDist.
func (g *Graph) Nearest(x, y, maxDist float64) int {
	if g.grid == nil || len(g.Nodes) == 0 {
		return -1
	}
	best, bestD2 := -1, maxDist*maxDist
	for _, j := range g.grid.Query(nil, x, y, maxDist) {
		dx, dy := g.Nodes[j].X-x, g.Nodes[j].Y-y
		d2 := dx*dx + dy*dy
		if d2 < bestD2 || (d2 == bestD2 && (best < 0 || j < best)) {
			best, bestD2 = j, d2
		}
	}
	return best
}

// candidates returns the nodes within radius of node i, nearest first
// (index breaks ties), reusing buf.
func (g *Graph) candidates(buf []candidate, ids []int, i int, radius float64) ([]candidate, []int) {
	p := g.Nodes[i]
	ids = g.grid.Query(ids[:0], p.X, p.Y, radius)
	buf = buf[:0]
	for _, j := range ids {
		if j != i {
			buf = append(buf, candidate{idx: j, d2: g.Dist2(i, j)})
		}
	}
	slices.SortFunc(buf, func(x, y candidate) int {
		if c := cmp.Compare(x.d2, y.d2); c != 0 {
			return c
		}
		return cmp.Compare(x.idx, y.idx)
	})
	return buf, ids
}

// Grow reach and retry bounds. A built layout leaves few nodes below their
// degree cap, so Grow searches past the tier radius and tries several of them.
const (
	GrowReach = 4
	growTries = 8
)

// Grow adds one channel between two nodes that are both below their degree
// cap. It starts from a randomly chosen open node with a positive radius and
// links it to its nearest open non-neighbor within GrowReach radii, trying up
// to growTries open nodes. Returns the new slot, or ok=false when no pair
// qualifies.
func (g *Graph) Grow(src rng.Source) (slot int, ok bool) {
	if len(g.Nodes) < 2 || g.grid == nil {
		return -1, false
	}
	var open []int
	for i := range g.Nodes {
		if g.open(i) && g.Radius(i) > 0 {
			open = append(open, i)
		}
	}
	if len(open) == 0 {
		return -1, false
	}
	var (
		cands []candidate
		ids   []int
	)
	first := rng.Intn(src, len(open))
	for k := 0; k < min(len(open), growTries); k++ {
		i := open[(first+k)%len(open)]
		r := g.Radius(i)
		reach := r * GrowReach
		cands, ids = g.candidates(cands, ids, i, reach)
		for _, c := range cands {
			d := math.Sqrt(c.d2)
			if d > reach {
				break
			}
			if g.HasEdge(i, c.idx) || !g.open(c.idx) {
				continue
			}
			if slot, added, err := g.AddEdge(i, c.idx, 1-d/(r+1)); err == nil && added {
				return slot, true
			}
		}
	}
	return -1, false
}

func (g *Graph) open(i int) bool {
	return g.Degree(i) < g.Cap(i)
}

// Components labels each node with its connected component and returns the count.
func (g *Graph) Components() ([]int, int) {
	return bfs.Components(g)
}

// Reachable reports whether b can be reached from a over existing channels.
func (g *Graph) Reachable(a, b int) bool {
	res, err := bfs.BFS(g, a)
	if err != nil {
		return false
	}
	return res.Reached(b)
}

// Within reports whether b is at most maxHops channels away from a.
// maxHops < 1 only accepts a == b.
func (g *Graph) Within(a, b, maxHops int) bool {
	if maxHops < 1 {
		return a == b && a >= 0 && a < g.Len()
	}
	res, err := bfs.BFS(g, a, bfs.WithMaxDepth(maxHops))
	if err != nil {
		return false
	}
	return res.Reached(b)
}

// ShortestPath returns a minimum-hop channel path from a to b, or nil when
// b cannot be reached.
func (g *Graph) ShortestPath(a, b int) []int {
	res, err := bfs.BFS(g, a)
	if err != nil {
		return nil
	}
	path, err := res.PathTo(b)
	if err != nil {
		return nil
	}
	return path
}
