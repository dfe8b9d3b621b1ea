package route

import (
	"math"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/rng"
)

// FindPath walks greedily from a toward b for at most maxHops hops, always
// stepping to the unvisited neighbor closest to b (lower index on ties). It
// stops early at b or at a dead end. Paths shorter than two nodes are
// returned as nil.
func FindPath(g *network.Graph, a, b, maxHops int) []int {
	n := g.Len()
	if a < 0 || a >= n || b < 0 || b >= n || maxHops < 1 {
		return nil
	}
	target := g.Nodes[b]
	path := []int{a}
	visited := map[int]bool{a: true}
	cur := a
	for hop := 0; hop < maxHops; hop++ {
		next, best := -1, math.Inf(1)
		for _, j := range g.Neighbors(cur) {
			if visited[j] {
				continue
			}
			dx, dy := g.Nodes[j].X-target.X, g.Nodes[j].Y-target.Y
			d := dx*dx + dy*dy
			if d < best || (d == best && j < next) {
				next, best = j, d
			}
		}
		if next < 0 {
			break
		}
		path = append(path, next)
		visited[next] = true
		cur = next
		if cur == b {
			break
		}
	}
	if len(path) < 2 {
		return nil
	}
	return path
}

// PickNode returns a uniformly chosen node index satisfying keep, or -1.
// A nil keep accepts every node.
func PickNode(g *network.Graph, src rng.Source, keep func(network.Node) bool) int {
	var idx []int
	for i := range g.Nodes {
		if keep == nil || keep(g.Nodes[i]) {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return -1
	}
	return idx[rng.Intn(src, len(idx))]
}
