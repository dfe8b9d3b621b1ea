package render

import (
	"fmt"
	"image"
	"math"

	"github.com/chenyukang/fiber-world/network"
)

// Update reports what Ensure did.
type Update uint8

const (
	// Unchanged means the cached raster was reused as is.
	Unchanged Update = iota
	// Appended means only channels added since the last draw were painted.
	Appended
	// Redrawn means the raster was rebuilt from scratch.
	Redrawn
)

func (u Update) String() string {
	switch u {
	case Unchanged:
		return "unchanged"
	case Appended:
		return "appended"
	case Redrawn:
		return "redrawn"
	}
	return fmt.Sprintf("update(%d)", uint8(u))
}

// StaticLayer caches the channels and nodes of one graph. The zero value is
// empty and redraws on first Ensure.
type StaticLayer struct {
	raster  *Raster
	graph   *network.Graph
	edges   int
	dpr     float64
	w, h    float64
	palette string
}

// Ensure brings the cached raster up to date with g at pixel ratio dpr.
func (l *StaticLayer) Ensure(g *network.Graph, dpr float64, pal Palette) (Update, error) {
	if g == nil {
		return Unchanged, fmt.Errorf("Ensure: %w", ErrNilGraph)
	}
	stale := l.raster == nil || l.graph != g || l.dpr != dpr ||
		l.w != g.Width || l.h != g.Height || l.palette != pal.Name
	if stale {
		r, err := NewRaster(g.Width, g.Height, dpr)
		if err != nil {
			return Unchanged, fmt.Errorf("Ensure: %w", err)
		}
		*l = StaticLayer{raster: r, graph: g, dpr: dpr, w: g.Width, h: g.Height, palette: pal.Name}
		paintBackground(r, g, pal)
		for i := range g.Edges {
			paintChannel(r, g, g.Edges[i], pal)
		}
		for i := range g.Nodes {
			paintNode(r, g.Nodes[i], pal)
		}
		l.edges = len(g.Edges)
		return Redrawn, nil
	}
	if len(g.Edges) <= l.edges {
		return Unchanged, nil
	}
	for _, e := range g.Edges[l.edges:] {
		paintChannel(l.raster, g, e, pal)
		paintNode(l.raster, g.Nodes[e.A], pal)
		paintNode(l.raster, g.Nodes[e.B], pal)
	}
	l.edges = len(g.Edges)
	return Appended, nil
}

// Image returns the cached raster, or nil before the first Ensure.
func (l *StaticLayer) Image() image.Image {
	if l.raster == nil {
		return nil
	}
	return l.raster.Image()
}

// Edges returns how many channels the raster holds.
func (l *StaticLayer) Edges() int { return l.edges }

// Invalidate forces the next Ensure to redraw.
func (l *StaticLayer) Invalidate() { l.raster = nil }

// glowSteps approximates the radial background gradient with stacked discs.
const glowSteps = 6

func paintBackground(s Surface, g *network.Graph, pal Palette) {
	s.Clear(pal.Background)
	cx, cy := g.Width/2, g.Height/2
	outer := math.Max(g.Width, g.Height) * 0.6
	for i := 0; i < glowSteps; i++ {
		k := float64(glowSteps-i) / glowSteps
		s.Disc(cx, cy, 10+outer*k, WithAlpha(pal.Glow, 0.06/glowSteps))
	}
}

func paintChannel(s Surface, g *network.Graph, e network.Edge, pal Palette) {
	a, b := g.Nodes[e.A], g.Nodes[e.B]
	s.Line(a.X, a.Y, b.X, b.Y, 0.6+e.W*1.4, WithAlpha(pal.Channel, 0.05+e.W*0.18))
}

func paintNode(s Surface, n network.Node, pal Palette) {
	halo, ring := 6.0, 1.2
	switch n.Tier {
	case network.Hub:
		halo, ring = 16, 2.4
	case network.Secondary:
		halo, ring = 10, 1.6
	}
	s.Disc(n.X, n.Y, n.R+halo/4, WithAlpha(pal.NodeHalo, 0.18))
	s.Ring(n.X, n.Y, math.Max(1, n.R+1.2), ring, WithAlpha(n.Ring, 0.9))
	s.Disc(n.X, n.Y, n.R, WithAlpha(pal.NodeCore, 0.9))
}
