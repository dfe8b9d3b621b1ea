package route

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/overlay"
	"github.com/chenyukang/fiber-world/rng"
)

// Endpoint bias for fresh routes and for in-place respawns.
const (
	startBase, startSpan = 0.35, 0.2
	endBase, endSpan     = 0.55, 0.2
	respawnStart         = 0.4
	respawnEnd           = 0.6
)

// Engine owns the routes, heat and pulses of one graph.
// It is not safe for concurrent use.
type Engine struct {
	g      *network.Graph
	src    rng.Source
	params Params
	routes []*Route
	tally  Tally

	heat   *overlay.HeatMap
	pulses *overlay.Pulses
}

// New returns an Engine bound to g that draws from src.
func New(g *network.Graph, src rng.Source, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("route.New: %w", ErrGraphNil)
	}
	if src == nil {
		return nil, fmt.Errorf("route.New: %w", ErrSourceNil)
	}
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("route.New: %w", err)
	}
	return &Engine{
		g:      g,
		src:    src,
		params: p,
		heat:   overlay.NewHeatMap(),
		pulses: &overlay.Pulses{},
	}, nil
}

// Graph returns the graph routes currently run on.
func (e *Engine) Graph() *network.Graph { return e.g }

// Params returns the engine parameters.
func (e *Engine) Params() Params { return e.params }

// Heat returns the hot-edge set.
func (e *Engine) Heat() *overlay.HeatMap { return e.heat }

// Pulses returns the live pulses.
func (e *Engine) Pulses() *overlay.Pulses { return e.pulses }

// Routes returns the live routes. The slice is owned by the engine.
func (e *Engine) Routes() []*Route { return e.routes }

// Len returns the number of live routes.
func (e *Engine) Len() int { return len(e.routes) }

// Spawn tries count times to add a route and returns how many succeeded.
func (e *Engine) Spawn(count int) int {
	n := 0
	for i := 0; i < count; i++ {
		if _, ok := e.SpawnRoute(); ok {
			n++
		}
	}
	return n
}

// SpawnRoute picks a start in the left part of the canvas and an end in the
// right part, then adds a route between them. ok is false when no endpoint
// qualifies or the greedy walk produced fewer than two nodes.
func (e *Engine) SpawnRoute() (*Route, bool) {
	w := e.g.Width
	startMax := w * (startBase + e.src.Next()*startSpan)
	start := PickNode(e.g, e.src, func(n network.Node) bool { return n.X < startMax })
	endMin := w * (endBase - e.src.Next()*endSpan)
	end := PickNode(e.g, e.src, func(n network.Node) bool { return n.X > endMin })
	if start < 0 || end < 0 {
		return nil, false
	}
	return e.SpawnBetween(start, end)
}

// SpawnBetween adds a route from a toward b. A start node without usable
// channels yields (nil, false) and leaves the engine unchanged.
func (e *Engine) SpawnBetween(a, b int) (*Route, bool) {
	path := e.search(a, b)
	if path == nil {
		return nil, false
	}
	p := e.params
	r := &Route{
		ID:        uuid.New(),
		Path:      path,
		T:         e.src.Next(),
		Speed:     p.SpeedMin + e.src.Next()*p.SpeedSpan,
		Hue:       p.HueMin + rng.Intn(e.src, p.HueSpan),
		Intensity: p.Intensity,
	}
	if rng.Chance(e.src, p.PriorityRate) {
		r.Priority = true
		r.Speed *= p.PrioritySpeed
		r.Intensity = p.PriorityIntensity
	}
	e.routes = append(e.routes, r)
	return r, true
}

func (e *Engine) hops() int {
	return e.params.HopMin + rng.Intn(e.src, e.params.HopMax-e.params.HopMin+1)
}

// search runs FindPath with a fresh hop budget and tallies the outcome.
func (e *Engine) search(a, b int) []int {
	hops := e.hops()
	path := FindPath(e.g, a, b, hops)
	e.tally[Classify(e.g, path, a, b, hops)]++
	return path
}

// TakeTally returns the outcomes counted since the previous call and
// resets the counts.
func (e *Engine) TakeTally() Tally {
	t := e.tally
	e.tally = Tally{}
	return t
}

// AddHeat warms the channel (a,b). Unknown pairs are ignored.
func (e *Engine) AddHeat(a, b int, amount float64) bool {
	slot, ok := e.g.EdgeIndex(a, b)
	if !ok {
		return false
	}
	return e.heat.Add(e.g, slot, amount)
}

// Warm deposits one frame of heat: PathHeat on every channel of the path
// and SegmentHeat on the current one, both scaled by the route intensity.
func (e *Engine) Warm(r *Route) {
	if r.dormant || len(r.Path) < 2 {
		return
	}
	for i := 0; i+1 < len(r.Path); i++ {
		e.AddHeat(r.Path[i], r.Path[i+1], e.params.PathHeat*r.Intensity)
	}
	a, b := r.Segment()
	e.AddHeat(a, b, e.params.SegmentHeat*r.Intensity)
}

// Advance moves r by speed·dt. dt is in frames; non-positive dt is a no-op.
// Crossing t=1 fires an arrival pulse at the next node. Reaching the end of
// the path fires a terminal pulse and regenerates the path in place; when
// no new path exists the route goes dormant.
func (e *Engine) Advance(r *Route, dt float64) {
	if r.dormant || !(dt > 0) {
		return
	}
	r.T += r.Speed * dt
	if r.T < 1 {
		return
	}
	if r.Seg+1 < len(r.Path) {
		n := e.g.Nodes[r.Path[r.Seg+1]]
		e.pulses.Emit(overlay.Pulse{X: n.X, Y: n.Y, R: n.R + 3, MaxR: n.R + 26, Alpha: 0.9, Hue: r.Hue})
	}
	r.T = 0
	r.Seg++
	if r.Seg < len(r.Path)-1 {
		return
	}

	last := e.g.Nodes[r.Path[len(r.Path)-1]]
	e.pulses.Emit(overlay.Pulse{X: last.X, Y: last.Y, R: last.R + 4, MaxR: last.R + 36, Alpha: 0.95, Hue: r.Hue})
	r.Seg = 0

	w := e.g.Width
	start := PickNode(e.g, e.src, func(n network.Node) bool { return n.X < w*respawnStart })
	end := PickNode(e.g, e.src, func(n network.Node) bool { return n.X > w*respawnEnd })
	if start < 0 || end < 0 {
		r.dormant = true
		return
	}
	if path := e.search(start, end); path != nil {
		r.Path = path
		return
	}
	r.dormant = true
}

// Prune drops dormant routes and returns how many were removed.
func (e *Engine) Prune() int {
	kept := e.routes[:0]
	for _, r := range e.routes {
		if !r.dormant {
			kept = append(kept, r)
		}
	}
	removed := len(e.routes) - len(kept)
	clear(e.routes[len(kept):])
	e.routes = kept
	return removed
}

// Trim drops routes beyond max, keeping the oldest.
func (e *Engine) Trim(max int) {
	if max < 0 {
		max = 0
	}
	if len(e.routes) > max {
		clear(e.routes[max:])
		e.routes = e.routes[:max]
	}
}

// Reset discards routes, pulses, heat and the outcome tally and rebinds the
// engine to g.
// A nil g keeps the current graph.
func (e *Engine) Reset(g *network.Graph) {
	e.heat.Reset(e.g)
	e.pulses.Reset()
	clear(e.routes)
	e.routes = e.routes[:0]
	e.tally = Tally{}
	if g != nil {
		e.g = g
	}
}

// Step warms and advances every route by dt frames, then prunes.
func (e *Engine) Step(dt float64) {
	for _, r := range e.routes {
		e.Warm(r)
		e.Advance(r, dt)
	}
	e.Prune()
}
