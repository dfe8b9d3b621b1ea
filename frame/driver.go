package frame

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/render"
	"github.com/chenyukang/fiber-world/rng"
	"github.com/chenyukang/fiber-world/route"
	"github.com/chenyukang/fiber-world/stats"
	"github.com/chenyukang/fiber-world/theme"
)

// Independent animation streams derived from the seed.
const (
	streamRoutes = iota + 1
	streamChance
	streamStats
)

// Marker is a hub position for an overlay consumer.
type Marker struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Driver owns the visualization state. Create it with New.
type Driver struct {
	mu    sync.Mutex
	opts  Options
	log   *slog.Logger
	stats *stats.Reporter

	routeSrc  rng.Source
	chanceSrc rng.Source
	graph     *network.Graph
	engine    *route.Engine

	static   render.StaticLayer
	canvas   *render.Raster
	mode     theme.Mode
	palette  render.Palette
	gov      governor
	routeCap int

	hover   bool
	hoverX  float64
	hoverY  float64
	frames  uint64
	running bool
}

// New builds the graph, spawns the initial routes and returns a Driver.
// No frame exists until the first Tick.
func New(opts ...Option) (*Driver, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("frame.New: %w", err)
		}
	}
	if err := checkCanvas(o.Width, o.Height, o.DevicePixelRatio); err != nil {
		return nil, fmt.Errorf("frame.New: %w", err)
	}
	log := o.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	base := rng.New(o.Seed)
	d := &Driver{
		opts:      o,
		log:       log,
		routeSrc:  base.Derive(streamRoutes),
		chanceSrc: base.Derive(streamChance),
		mode:      theme.Dark,
		gov:       newGovernor(o.DevicePixelRatio),
		routeCap:  o.RouteCap,
	}
	if o.Theme != nil {
		d.mode = o.Theme.Get()
	}
	d.palette = render.PaletteFor(d.mode.IsDark())
	d.stats = o.Stats
	if d.stats == nil {
		rep, err := stats.New(base.Derive(streamStats), o.StatsOpts...)
		if err != nil {
			return nil, fmt.Errorf("frame.New: %w", err)
		}
		d.stats = rep
	}
	if err := d.rebuild("init"); err != nil {
		return nil, fmt.Errorf("frame.New: %w", err)
	}
	return d, nil
}

// rebuild regenerates the graph for the current size and respawns routes.
// Caller holds mu (or is New).
func (d *Driver) rebuild(reason string) error {
	netOpts := append(append([]network.Option(nil), d.opts.Network...), network.WithSeed(d.opts.Seed))
	g, err := network.Build(d.opts.Width, d.opts.Height, netOpts...)
	if err != nil {
		return err
	}
	if d.engine == nil {
		eng, err := route.New(g, d.routeSrc, d.opts.Route...)
		if err != nil {
			return err
		}
		d.engine = eng
	} else {
		d.engine.Reset(g)
	}
	d.graph = g
	d.static.Invalidate()
	d.engine.Spawn(d.opts.InitialRoutes)

	d.log.Debug("graph rebuilt", "reason", reason, "nodes", g.Len(), "edges", g.EdgeCount(), "routes", d.engine.Len())
	if d.opts.Observe != nil {
		d.opts.Observe.ObserveRebuild(reason, g.Len(), g.EdgeCount())
	}
	return nil
}

// Tick renders one frame at timestamp ts (ms, monotonic).
func (d *Driver) Tick(ts float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()

	if d.gov.observe(ts) {
		if d.gov.quality == Reduced {
			d.routeCap = d.opts.ReducedRouteCap
		}
		d.log.Debug("quality adapted", "quality", d.gov.quality, "dpr", d.gov.dpr, "avg_ms", d.gov.avg)
	}
	if d.opts.Theme != nil {
		if m := d.opts.Theme.Get(); m != d.mode {
			d.mode = m
			d.palette = render.PaletteFor(m.IsDark())
			if err := d.rebuild("theme"); err != nil {
				return fmt.Errorf("Tick: %w", err)
			}
		}
	}
	if _, err := d.static.Ensure(d.graph, d.gov.dpr, d.palette); err != nil {
		return fmt.Errorf("Tick: %w", err)
	}
	if err := d.ensureCanvas(); err != nil {
		return fmt.Errorf("Tick: %w", err)
	}

	g, eng, c, pal := d.graph, d.engine, d.canvas, d.palette
	c.Clear(pal.Background)
	c.Blit(d.static.Image())

	heat := eng.Heat()
	render.HotEdges(c, g, heat.Hot(), pal)
	heat.Decay(g)
	render.Wash(c, ts, pal)

	for _, r := range eng.Routes() {
		eng.Warm(r)
		render.Route(c, g, r)
		eng.Advance(r, 1)
	}
	eng.Prune()

	render.Pulses(c, eng.Pulses().All())
	eng.Pulses().Step()

	if d.hover {
		render.Hover(c, g, g.Nearest(d.hoverX, d.hoverY, d.opts.HoverRadius), pal)
	}

	eng.Trim(d.routeCap)
	fs := FrameStats{Quality: d.gov.quality, DPR: d.gov.dpr}
	if eng.Len() < d.routeCap && rng.Chance(d.chanceSrc, d.opts.SpawnChance) {
		_, fs.Spawned = eng.SpawnRoute()
	}
	if rng.Chance(d.chanceSrc, d.opts.EdgeChurn) {
		_, fs.Grew = g.Grow(d.chanceSrc)
	}
	fs.Searches = eng.TakeTally()
	d.frames++

	if d.opts.Observe != nil {
		fs.Elapsed = time.Since(start)
		fs.Routes, fs.Hot, fs.Pulses = eng.Len(), heat.Len(), eng.Pulses().Len()
		d.opts.Observe.ObserveFrame(fs)
	}
	return nil
}

// ensureCanvas keeps the frame raster matched to the static layer size.
func (d *Driver) ensureCanvas() error {
	want := d.static.Image().Bounds()
	if d.canvas != nil && d.canvas.Bounds() == want && d.canvas.Scale() == d.gov.dpr {
		return nil
	}
	c, err := render.NewRaster(d.graph.Width, d.graph.Height, d.gov.dpr)
	if err != nil {
		return err
	}
	d.canvas = c
	return nil
}

// Resize rebuilds the graph for a w×h canvas and resets routes, pulses and heat.
// A canvas too large to rasterize returns ErrCanvasTooLarge and keeps the
// current layout.
func (d *Driver) Resize(w, h float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkCanvas(w, h, d.opts.DevicePixelRatio); err != nil {
		return fmt.Errorf("Resize: %w", err)
	}
	d.opts.Width, d.opts.Height = w, h
	if err := d.rebuild("resize"); err != nil {
		return fmt.Errorf("Resize: %w", err)
	}
	return nil
}

// Retune replaces the network options and per-frame chances, then rebuilds.
// The driver seed still applies over any seed in net.
func (d *Driver) Retune(net []network.Option, spawn, churn float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	o := d.opts
	if err := WithChances(spawn, churn)(&o); err != nil {
		return fmt.Errorf("Retune: %w", err)
	}
	prev := d.opts
	o.Network = append([]network.Option(nil), net...)
	d.opts = o
	if err := d.rebuild("retune"); err != nil {
		d.opts = prev
		return fmt.Errorf("Retune: %w", err)
	}
	return nil
}

// Click spawns ClickRoutes extra routes and returns how many succeeded.
func (d *Driver) Click() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.Spawn(d.opts.ClickRoutes)
}

// Hover highlights the node nearest to (x,y) on following frames.
func (d *Driver) Hover(x, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hover, d.hoverX, d.hoverY = true, x, y
}

// Leave clears the hover highlight.
func (d *Driver) Leave() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hover = false
}

// HubMarkers returns the positions of up to network.MaxHubs hubs.
func (d *Driver) HubMarkers() []Marker {
	d.mu.Lock()
	defer d.mu.Unlock()
	hubs := d.graph.Hubs()
	if len(hubs) > network.MaxHubs {
		hubs = hubs[:network.MaxHubs]
	}
	out := make([]Marker, len(hubs))
	for i, h := range hubs {
		n := d.graph.Nodes[h]
		out[i] = Marker{X: n.X, Y: n.Y, R: n.R}
	}
	return out
}

// Snapshot copies the last rendered frame.
func (d *Driver) Snapshot() (*image.RGBA, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.canvas == nil || d.frames == 0 {
		return nil, ErrNoFrame
	}
	return d.canvas.Snapshot(), nil
}

// WritePNG encodes the last rendered frame to w.
func (d *Driver) WritePNG(w io.Writer) error {
	img, err := d.Snapshot()
	if err != nil {
		return fmt.Errorf("WritePNG: %w", err)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("WritePNG: %w", err)
	}
	return nil
}

// State is a read-only summary for inspection endpoints.
type State struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Nodes    int     `json:"nodes"`
	Edges    int     `json:"edges"`
	Routes   int     `json:"routes"`
	Hot      int     `json:"hot"`
	Pulses   int     `json:"pulses"`
	Frames   uint64  `json:"frames"`
	DPR      float64 `json:"dpr"`
	RouteCap int     `json:"route_cap"`
	Quality  string  `json:"quality"`
	Theme    string  `json:"theme"`
}

// State returns the current summary.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State{
		Width:    d.graph.Width,
		Height:   d.graph.Height,
		Nodes:    d.graph.Len(),
		Edges:    d.graph.EdgeCount(),
		Routes:   d.engine.Len(),
		Hot:      d.engine.Heat().Len(),
		Pulses:   d.engine.Pulses().Len(),
		Frames:   d.frames,
		DPR:      d.gov.dpr,
		RouteCap: d.routeCap,
		Quality:  d.gov.quality.String(),
		Theme:    string(d.mode),
	}
}

// Stats returns the reporter sampled by the driver.
func (d *Driver) Stats() *stats.Reporter {
	return d.stats
}

// SampleStats feeds the reporter with current counts and eases by dt.
func (d *Driver) SampleStats(dt time.Duration) stats.Values {
	d.mu.Lock()
	s := stats.Sample{Nodes: d.graph.Len(), Channels: d.graph.EdgeCount(), Routes: d.engine.Len()}
	d.mu.Unlock()
	return d.stats.Update(s, dt)
}
