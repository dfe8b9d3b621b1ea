package route

import (
	"github.com/google/uuid"

	"github.com/chenyukang/fiber-world/network"
)

// Route is a payment particle travelling along Path.
// Path[Seg] → Path[Seg+1] is the channel being traversed at progress T.
type Route struct {
	ID        uuid.UUID
	Path      []int
	Seg       int
	T         float64
	Speed     float64
	Hue       int
	Priority  bool
	Intensity float64

	dormant bool
}

// Dormant reports whether the route failed to find a new path and awaits Prune.
func (r *Route) Dormant() bool {
	return r.dormant
}

// Segment returns the endpoints of the channel being traversed. On a
// one-node path both are the same node.
func (r *Route) Segment() (a, b int) {
	a = r.Path[r.Seg]
	b = a
	if r.Seg+1 < len(r.Path) {
		b = r.Path[r.Seg+1]
	}
	return a, b
}

// Position interpolates the particle position on g.
func (r *Route) Position(g *network.Graph) (x, y float64) {
	a, b := r.Segment()
	na, nb := g.Nodes[a], g.Nodes[b]
	return na.X + (nb.X-na.X)*r.T, na.Y + (nb.Y-na.Y)*r.T
}

// Direction returns the vector of the current segment, used for trails.
func (r *Route) Direction(g *network.Graph) (dx, dy float64) {
	a, b := r.Segment()
	return g.Nodes[b].X - g.Nodes[a].X, g.Nodes[b].Y - g.Nodes[a].Y
}
