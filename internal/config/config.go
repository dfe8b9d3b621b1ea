// Package config loads the fiberworld TOML tuning file and watches it for
// changes.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chenyukang/fiber-world/frame"
	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/route"
	"github.com/chenyukang/fiber-world/stats"
)

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds every tunable of the visualizer.
type Config struct {
	Canvas    CanvasConfig    `toml:"canvas"`
	Network   NetworkConfig   `toml:"network"`
	Animation AnimationConfig `toml:"animation"`
	Stats     StatsConfig     `toml:"stats"`
	Server    ServerConfig    `toml:"server"`
	Log       LogConfig       `toml:"log"`
}

// CanvasConfig sets the default canvas.
type CanvasConfig struct {
	Width            float64 `toml:"width"`
	Height           float64 `toml:"height"`
	DevicePixelRatio float64 `toml:"device_pixel_ratio"`
	Seed             uint32  `toml:"seed"`
	Theme            string  `toml:"theme"`
}

// TierConfig is the radius and degree cap of one node tier.
type TierConfig struct {
	Radius    float64 `toml:"radius"`
	MaxDegree int     `toml:"max_degree"`
}

// NetworkConfig tunes graph generation.
type NetworkConfig struct {
	CellSize    float64    `toml:"cell_size"`
	AreaPerNode float64    `toml:"area_per_node"`
	MinNodes    int        `toml:"min_nodes"`
	MaxNodes    int        `toml:"max_nodes"`
	Hub         TierConfig `toml:"hub"`
	Secondary   TierConfig `toml:"secondary"`
	Micro       TierConfig `toml:"micro"`
}

// AnimationConfig tunes the frame loop.
type AnimationConfig struct {
	FPS             int     `toml:"fps"`
	SpawnChance     float64 `toml:"spawn_chance"`
	EdgeChurn       float64 `toml:"edge_churn"`
	InitialRoutes   int     `toml:"initial_routes"`
	RouteCap        int     `toml:"route_cap"`
	ReducedRouteCap int     `toml:"reduced_route_cap"`
	PriorityRate    float64 `toml:"priority_rate"`
}

// StatsConfig tunes the counters.
type StatsConfig struct {
	IntervalMS int     `toml:"interval_ms"`
	Multiplier float64 `toml:"multiplier"`
	Easing     string  `toml:"easing"` // "proportional" or "exponential"
	Step       float64 `toml:"step"`
	TauMS      int     `toml:"tau_ms"`
}

// ServerConfig configures `fiberworld serve`.
type ServerConfig struct {
	Addr       string  `toml:"addr"`
	ClickRate  float64 `toml:"click_rate"`
	ClickBurst int     `toml:"click_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// Default returns the landing-page configuration.
func Default() *Config {
	np := network.DefaultParams()
	rp := route.DefaultParams()
	fo := frame.DefaultOptions()
	return &Config{
		Canvas: CanvasConfig{Width: fo.Width, Height: fo.Height, DevicePixelRatio: 1, Seed: np.Seed, Theme: "dark"},
		Network: NetworkConfig{
			CellSize:    np.CellSize,
			AreaPerNode: np.AreaPerNode,
			MinNodes:    np.MinNodes,
			MaxNodes:    np.MaxNodes,
			Hub:         tierConfig(np.Tier(network.Hub)),
			Secondary:   tierConfig(np.Tier(network.Secondary)),
			Micro:       tierConfig(np.Tier(network.Micro)),
		},
		Animation: AnimationConfig{
			FPS:             fo.FPS,
			SpawnChance:     fo.SpawnChance,
			EdgeChurn:       fo.EdgeChurn,
			InitialRoutes:   fo.InitialRoutes,
			RouteCap:        fo.RouteCap,
			ReducedRouteCap: fo.ReducedRouteCap,
			PriorityRate:    rp.PriorityRate,
		},
		Stats:  StatsConfig{IntervalMS: int(fo.StatsInterval / time.Millisecond), Multiplier: 1, Easing: "proportional", Step: 0.35, TauMS: 800},
		Server: ServerConfig{Addr: ":8080", ClickRate: 5, ClickBurst: 10},
		Log:    LogConfig{Level: "info"},
	}
}

func tierConfig(tp network.TierParams) TierConfig {
	return TierConfig{Radius: tp.Radius, MaxDegree: tp.MaxDegree}
}

// Dir returns $XDG_CONFIG_HOME/fiberworld, falling back to ~/.config.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "fiberworld")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config.Load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// Validate checks the values the other packages do not check themselves.
func (c *Config) Validate() error {
	switch {
	case c.Stats.IntervalMS <= 0:
		return fmt.Errorf("%w: stats.interval_ms=%d", ErrInvalid, c.Stats.IntervalMS)
	case c.Stats.Easing != "proportional" && c.Stats.Easing != "exponential":
		return fmt.Errorf("%w: stats.easing=%q", ErrInvalid, c.Stats.Easing)
	case c.Stats.Step <= 0 || c.Stats.Step > 1:
		return fmt.Errorf("%w: stats.step=%v", ErrInvalid, c.Stats.Step)
	case c.Server.ClickRate <= 0 || c.Server.ClickBurst < 1:
		return fmt.Errorf("%w: server click limit %v/%d", ErrInvalid, c.Server.ClickRate, c.Server.ClickBurst)
	}
	if err := c.networkParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) networkParams() network.Params {
	p := network.DefaultParams()
	p.Seed = c.Canvas.Seed
	p.CellSize = c.Network.CellSize
	p.AreaPerNode = c.Network.AreaPerNode
	p.MinNodes = c.Network.MinNodes
	p.MaxNodes = c.Network.MaxNodes
	p.Tiers[network.Hub] = network.TierParams{Radius: c.Network.Hub.Radius, MaxDegree: c.Network.Hub.MaxDegree}
	p.Tiers[network.Secondary] = network.TierParams{Radius: c.Network.Secondary.Radius, MaxDegree: c.Network.Secondary.MaxDegree}
	p.Tiers[network.Micro] = network.TierParams{Radius: c.Network.Micro.Radius, MaxDegree: c.Network.Micro.MaxDegree}
	return p
}

// NetworkOptions converts the network section to network.Build options.
func (c *Config) NetworkOptions() []network.Option {
	return []network.Option{network.WithParams(c.networkParams())}
}

// StatsInterval returns the sampling period.
func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Stats.IntervalMS) * time.Millisecond
}

// Easing returns the configured stats easing.
func (c *Config) Easing() stats.Easing {
	if c.Stats.Easing == "exponential" {
		return stats.Exponential{Tau: time.Duration(c.Stats.TauMS) * time.Millisecond}
	}
	return stats.Proportional{Step: c.Stats.Step, Snap: 0.5}
}

// FrameOptions converts the canvas and animation sections to frame options.
func (c *Config) FrameOptions() []frame.Option {
	a := c.Animation
	return []frame.Option{
		frame.WithSize(c.Canvas.Width, c.Canvas.Height),
		frame.WithDevicePixelRatio(c.Canvas.DevicePixelRatio),
		frame.WithSeed(c.Canvas.Seed),
		frame.WithFPS(a.FPS),
		frame.WithStatsInterval(c.StatsInterval()),
		frame.WithChances(a.SpawnChance, a.EdgeChurn),
		frame.WithRouteCaps(a.InitialRoutes, a.RouteCap, a.ReducedRouteCap),
		frame.WithNetwork(c.NetworkOptions()...),
		frame.WithRoute(route.WithPriorityRate(a.PriorityRate)),
		frame.WithStatsOptions(stats.WithEasing(c.Easing()), stats.WithMultiplier(c.Stats.Multiplier)),
	}
}
