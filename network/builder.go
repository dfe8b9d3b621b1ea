package network

import (
	"fmt"
	"math"

	"github.com/chenyukang/fiber-world/rng"
	"github.com/chenyukang/fiber-world/spatial"
)

// Build generates a layout for a width×height canvas.
//
// Steps:
//  1. Clamp the canvas to MinCanvas and derive the target node count from its area.
//  2. Place hubs, then per hub a secondary ring, a micro ring and micro clusters.
//  3. Fill a central band of micro nodes up to the target (never past MaxNodes).
//  4. Link nodes through a spatial grid, nearest first, within tier radius and caps.
//
// Returns ErrOptionViolation (wrapped) for invalid options; degenerate canvas
// sizes are clamped, never rejected.
func Build(width, height float64, opts ...Option) (*Graph, error) {
	cfg, err := newBuildConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	w, h := clampExtent(width), clampExtent(height)
	grid, err := spatial.NewGrid(w, h, cfg.params.CellSize)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	g := &Graph{
		Width:  w,
		Height: h,
		params: cfg.params,
		index:  make(map[EdgeKey]int),
		grid:   grid,
	}
	p := placer{g: g, src: cfg.rand, spread: spreadOf(w, h)}
	p.place()
	for i := range g.Nodes {
		grid.Insert(i, g.Nodes[i].X, g.Nodes[i].Y)
	}
	g.link()

	return g, nil
}

// TargetNodes returns clamp(area/AreaPerNode, MinNodes, MaxNodes) for a canvas.
func TargetNodes(p Params, width, height float64) int {
	area := clampExtent(width) * clampExtent(height)
	n := int(math.Round(area / p.AreaPerNode))
	if n < p.MinNodes {
		n = p.MinNodes
	}
	if n > p.MaxNodes {
		n = p.MaxNodes
	}
	return n
}

func clampExtent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinCanvas {
		return MinCanvas
	}
	return v
}

// spreadOf scales ring distances to the canvas span.
func spreadOf(w, h float64) float64 {
	s := math.Min(w, h) / referenceSpan
	return math.Min(1.6, math.Max(0.3, s))
}

// placer holds the state of the node placement pass.
type placer struct {
	g      *Graph
	src    rng.Source
	spread float64
}

func (p *placer) place() {
	g, par := p.g, p.g.params
	target := TargetNodes(par, g.Width, g.Height)

	hubs := make([][3]float64, len(par.Hubs))
	for i, hs := range par.Hubs {
		hubs[i] = [3]float64{
			g.Width * hs.FX,
			g.Height * (hs.FY + (p.src.Next()-0.5)*hs.Jitter),
			hs.R,
		}
	}
	for _, hb := range hubs {
		p.add(hb[0], hb[1], hb[2], Hub)
	}

	for _, hb := range hubs {
		hx, hy := hb[0], hb[1]
		for i := 0; i < par.SecondaryPerHub; i++ {
			ang := float64(i)/float64(par.SecondaryPerHub)*2*math.Pi + p.src.Next()*0.6
			dist := (35 + p.src.Next()*70) * p.spread
			p.add(hx+math.Cos(ang)*dist, hy+math.Sin(ang)*dist, 3+p.src.Next()*2.5, Secondary)
		}
		for i := 0; i < par.MicroPerHub; i++ {
			ang := p.src.Next() * 2 * math.Pi
			dist := (80 + p.src.Next()*120) * p.spread
			p.add(hx+math.Cos(ang)*dist, hy+math.Sin(ang)*dist, 1+p.src.Next()*1.5, Micro)
		}
		for c := 0; c < par.ClustersPerHub; c++ {
			ang := p.src.Next() * 2 * math.Pi
			base := (120 + p.src.Next()*160) * p.spread
			cx, cy := hx+math.Cos(ang)*base, hy+math.Sin(ang)*base
			size := 10 + rng.Intn(p.src, 20)
			for i := 0; i < size; i++ {
				a2 := p.src.Next() * 2 * math.Pi
				d2 := (10 + p.src.Next()*40) * p.spread
				p.add(cx+math.Cos(a2)*d2, cy+math.Sin(a2)*d2, 1+p.src.Next()*1.2, Micro)
			}
		}
	}

	band := target - len(g.Nodes)
	if band < par.MinBand {
		band = par.MinBand
	}
	if room := par.MaxNodes - len(g.Nodes); band > room {
		band = room
	}
	for i := 0; i < band; i++ {
		x := g.Width * (0.15 + p.src.Next()*0.70)
		y := g.Height*(0.30+p.src.Next()*0.40) + (p.src.Next()-0.5)*12
		p.add(x, y, 1+p.src.Next()*1.4, Micro)
	}
}

// add appends a node clamped to the canvas and draws its ring tint.
func (p *placer) add(x, y, r float64, t Tier) int {
	g := p.g
	ring := RingPalette[rng.Intn(p.src, len(RingPalette))]
	g.Nodes = append(g.Nodes, Node{
		X:     math.Min(g.Width, math.Max(0, x)),
		Y:     math.Min(g.Height, math.Max(0, y)),
		R:     r,
		Tier:  t,
		Color: NodeColor,
		Ring:  ring,
	})
	return len(g.Nodes) - 1
}

// link connects every node to its nearest candidates inside the tier radius
// while both endpoints stay under their degree caps.
func (g *Graph) link() {
	var (
		buf []candidate
		ids []int
	)
	for i := range g.Nodes {
		r, limit := g.Radius(i), g.Cap(i)
		if r <= 0 || g.Degree(i) >= limit {
			continue
		}
		buf, ids = g.candidates(buf, ids, i, r)
		for _, c := range buf {
			if g.Degree(i) >= limit {
				break
			}
			d := math.Sqrt(c.d2)
			if d > r {
				break
			}
			if g.HasEdge(i, c.idx) || g.Degree(c.idx) >= g.Cap(c.idx) {
				continue
			}
			// caps and duplicates are checked above, AddEdge cannot fail here
			_, _, _ = g.AddEdge(i, c.idx, 1-d/(r+1))
		}
	}
}
