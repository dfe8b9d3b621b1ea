package frame

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/route"
	"github.com/chenyukang/fiber-world/stats"
	"github.com/chenyukang/fiber-world/theme"
)

// Sentinel errors for the frame driver.
var (
	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("frame: invalid option supplied")
	// ErrNoFrame indicates no frame has been rendered yet.
	ErrNoFrame = errors.New("frame: no frame rendered yet")
	// ErrRunning indicates Run was called while another Run is active.
	ErrRunning = errors.New("frame: driver already running")
	// ErrCanvasTooLarge indicates a canvas whose frame raster would exceed
	// render.MaxPixels at the highest ratio the driver may pick.
	ErrCanvasTooLarge = errors.New("frame: canvas too large")
)

// Options configure a Driver.
type Options struct {
	Width, Height    float64
	DevicePixelRatio float64
	Seed             uint32
	FPS              int
	StatsInterval    time.Duration
	InitialRoutes    int
	RouteCap         int
	ReducedRouteCap  int
	SpawnChance      float64
	EdgeChurn        float64
	HoverRadius      float64
	ClickRoutes      int

	Network []network.Option
	Route   []route.Option
	Theme   theme.Source
	Stats   *stats.Reporter
	// StatsOpts configure the reporter New creates when Stats is nil.
	StatsOpts []stats.Option
	Logger    *slog.Logger
	Observe   Observer
}

// DefaultOptions returns the landing-page configuration for an 800×600 canvas.
func DefaultOptions() Options {
	return Options{
		Width:            800,
		Height:           600,
		DevicePixelRatio: 1,
		Seed:             1337,
		FPS:              60,
		StatsInterval:    1200 * time.Millisecond,
		InitialRoutes:    10,
		RouteCap:         12,
		ReducedRouteCap:  10,
		SpawnChance:      0.012,
		EdgeChurn:        0.004,
		HoverRadius:      60,
		ClickRoutes:      2,
	}
}

// Option mutates Options; violations are recorded and returned by New.
type Option func(*Options) error

// WithSize sets the canvas size in canvas units.
func WithSize(w, h float64) Option {
	return func(o *Options) error {
		o.Width, o.Height = w, h
		return nil
	}
}

// WithDevicePixelRatio sets the device ratio; the driver uses min(ratio, 2).
func WithDevicePixelRatio(r float64) Option {
	return func(o *Options) error {
		if !(r > 0) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: device pixel ratio %v", ErrOptionViolation, r)
		}
		o.DevicePixelRatio = r
		return nil
	}
}

// WithSeed seeds both the layout and the animation streams.
func WithSeed(seed uint32) Option {
	return func(o *Options) error {
		o.Seed = seed
		return nil
	}
}

// WithFPS sets the Run tick rate.
func WithFPS(fps int) Option {
	return func(o *Options) error {
		if fps < 1 || fps > 240 {
			return fmt.Errorf("%w: fps %d", ErrOptionViolation, fps)
		}
		o.FPS = fps
		return nil
	}
}

// WithStatsInterval sets how often Run samples the stat reporter.
func WithStatsInterval(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("%w: stats interval %v", ErrOptionViolation, d)
		}
		o.StatsInterval = d
		return nil
	}
}

// WithChances sets the per-frame route spawn and channel growth probabilities.
func WithChances(spawn, churn float64) Option {
	return func(o *Options) error {
		if spawn < 0 || spawn > 1 || churn < 0 || churn > 1 {
			return fmt.Errorf("%w: spawn %v churn %v", ErrOptionViolation, spawn, churn)
		}
		o.SpawnChance, o.EdgeChurn = spawn, churn
		return nil
	}
}

// WithRouteCaps sets the initial route count and the Normal/Reduced caps.
func WithRouteCaps(initial, normal, reduced int) Option {
	return func(o *Options) error {
		if initial < 0 || normal < 0 || reduced < 0 {
			return fmt.Errorf("%w: route caps %d/%d/%d", ErrOptionViolation, initial, normal, reduced)
		}
		o.InitialRoutes, o.RouteCap, o.ReducedRouteCap = initial, normal, reduced
		return nil
	}
}

// WithNetwork appends options passed to network.Build on every rebuild.
func WithNetwork(opts ...network.Option) Option {
	return func(o *Options) error {
		o.Network = append(o.Network, opts...)
		return nil
	}
}

// WithRoute appends options passed to route.New.
func WithRoute(opts ...route.Option) Option {
	return func(o *Options) error {
		o.Route = append(o.Route, opts...)
		return nil
	}
}

// WithTheme sets the theme read on every tick. Without it the driver stays dark.
func WithTheme(src theme.Source) Option {
	return func(o *Options) error {
		o.Theme = src
		return nil
	}
}

// WithStats sets the reporter sampled every StatsInterval.
func WithStats(r *stats.Reporter) Option {
	return func(o *Options) error {
		o.Stats = r
		return nil
	}
}

// WithStatsOptions tunes the driver-owned reporter. Ignored with WithStats.
func WithStatsOptions(opts ...stats.Option) Option {
	return func(o *Options) error {
		o.StatsOpts = append(o.StatsOpts, opts...)
		return nil
	}
}

// WithLogger sets the logger; nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) error {
		o.Logger = l
		return nil
	}
}

// WithObserver receives per-frame and rebuild measurements.
func WithObserver(obs Observer) Option {
	return func(o *Options) error {
		o.Observe = obs
		return nil
	}
}

// Observer receives driver measurements. Implementations must be cheap;
// they run on the tick path under the driver lock.
type Observer interface {
	ObserveFrame(FrameStats)
	ObserveRebuild(reason string, nodes, edges int)
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Elapsed time.Duration
	Quality Quality
	DPR     float64
	Routes  int
	Hot     int
	Pulses  int
	Spawned bool
	Grew    bool
	// Searches counts route path searches since the previous frame by outcome.
	Searches route.Tally
}
