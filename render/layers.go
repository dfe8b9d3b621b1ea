package render

import (
	"math"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/overlay"
	"github.com/chenyukang/fiber-world/route"
)

// TrailLength is the number of fading dots drawn behind a route particle.
const TrailLength = 6

// MaxHoverLinks bounds the neighbor links highlighted around a hovered node.
const MaxHoverLinks = 8

// WashAlpha is the breathing overlay alpha at timestamp ts (ms).
func WashAlpha(ts float64) float64 {
	return 0.04 + math.Sin(ts*0.002)*0.018
}

// Wash paints the breathing overlay.
func Wash(s Surface, ts float64, pal Palette) {
	s.Wash(WithAlpha(pal.Wash, WashAlpha(ts)))
}

// HotEdges strokes the given hot slots, brighter and wider with more heat.
func HotEdges(s Surface, g *network.Graph, slots []int, pal Palette) {
	for _, slot := range slots {
		if slot < 0 || slot >= len(g.Edges) {
			continue
		}
		e := g.Edges[slot]
		if e.Heat <= overlay.HeatFloor {
			continue
		}
		a, b := g.Nodes[e.A], g.Nodes[e.B]
		alpha := math.Min(0.6, 0.06+e.Heat*0.55)
		width := 1 + e.W*1.6 + e.Heat*2
		s.Line(a.X, a.Y, b.X, b.Y, width+2, WithAlpha(pal.Hot, alpha/4))
		s.Line(a.X, a.Y, b.X, b.Y, width, WithAlpha(pal.Hot, alpha))
	}
}

// Route strokes the route path and its particle with a fading trail.
func Route(s Surface, g *network.Graph, r *route.Route) {
	if len(r.Path) < 2 {
		return
	}
	pathColor := Hue(r.Hue, 0.6, 0.2)
	for i := 0; i+1 < len(r.Path); i++ {
		a, b := g.Nodes[r.Path[i]], g.Nodes[r.Path[i+1]]
		s.Line(a.X, a.Y, b.X, b.Y, 2, pathColor)
	}
	x, y := r.Position(g)
	dx, dy := r.Direction(g)
	for i := 0; i < TrailLength; i++ {
		k := math.Max(0, 1-float64(i)*0.18)
		fi := float64(i)
		s.Disc(x-dx*fi*0.05, y-dy*fi*0.05, 3.2*k, Hue(r.Hue, 0.7-fi*0.08, 0.35-fi*0.05))
	}
	s.Disc(x, y, 3.5, Hue(r.Hue, 0.6, 1))
}

// Pulses strokes every live pulse; the stroke thins and fades as it expands.
func Pulses(s Surface, ps []overlay.Pulse) {
	for _, p := range ps {
		t, a := p.Fade()
		if a <= 0 {
			continue
		}
		s.Ring(p.X, p.Y, p.R, 2+(1-t)*2, Hue(p.Hue, 0.6+(1-t)*0.2, a))
	}
}

// Hover rings node idx and highlights up to MaxHoverLinks of its channels.
// A negative idx draws nothing.
func Hover(s Surface, g *network.Graph, idx int, pal Palette) {
	if idx < 0 || idx >= g.Len() {
		return
	}
	n := g.Nodes[idx]
	s.Ring(n.X, n.Y, n.R+4, 2.5, WithAlpha(n.Ring, 1))
	nbrs := n.Neighbors
	if len(nbrs) > MaxHoverLinks {
		nbrs = nbrs[:MaxHoverLinks]
	}
	for _, j := range nbrs {
		m := g.Nodes[j]
		s.Line(n.X, n.Y, m.X, m.Y, 2, WithAlpha(pal.HoverLink, 0.5))
	}
}
