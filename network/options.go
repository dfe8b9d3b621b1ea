package network

import (
	"fmt"
	"math"

	"github.com/chenyukang/fiber-world/rng"
)

// MaxHubs bounds the number of hub anchors.
const MaxHubs = 5

// MinCanvas is the smallest width or height Build accepts; smaller extents are clamped up.
const MinCanvas = 64.0

// referenceSpan is the canvas span at which ring distances are used unscaled.
const referenceSpan = 550.0

// TierParams holds the connection radius and degree cap of one tier.
type TierParams struct {
	Radius    float64
	MaxDegree int
}

// HubSpec places a hub at (FX·width, (FY ± Jitter/2)·height) with radius R.
type HubSpec struct {
	FX, FY float64
	Jitter float64
	R      float64
}

// Params aggregates every tuning constant of the generator.
type Params struct {
	Seed            uint32
	CellSize        float64
	AreaPerNode     float64
	MinNodes        int
	MaxNodes        int
	MinBand         int
	SecondaryPerHub int
	MicroPerHub     int
	ClustersPerHub  int
	WeightFloor     float64
	Hubs            []HubSpec
	Tiers           [tierCount]TierParams
}

// DefaultParams returns the parameterization used by the landing page.
func DefaultParams() Params {
	return Params{
		Seed:            rng.DefaultSeed,
		CellSize:        40,
		AreaPerNode:     450,
		MinNodes:        500,
		MaxNodes:        1300,
		MinBand:         200,
		SecondaryPerHub: 24,
		MicroPerHub:     40,
		ClustersPerHub:  4,
		WeightFloor:     0.05,
		Hubs: []HubSpec{
			{FX: 0.18, FY: 0.45, Jitter: 0.2, R: 10},
			{FX: 0.35, FY: 0.50, Jitter: 0.2, R: 12},
			{FX: 0.55, FY: 0.50, Jitter: 0.2, R: 12},
			{FX: 0.80, FY: 0.48, Jitter: 0.15, R: 14},
			{FX: 0.08, FY: 0.25, Jitter: 0.1, R: 9},
		},
		Tiers: [tierCount]TierParams{
			Hub:       {Radius: 220, MaxDegree: 24},
			Secondary: {Radius: 140, MaxDegree: 8},
			Micro:     {Radius: 75, MaxDegree: 4},
		},
	}
}

// Tier returns the parameters of tier t.
func (p Params) Tier(t Tier) TierParams {
	if t >= tierCount {
		return p.Tiers[Micro]
	}
	return p.Tiers[t]
}

// Validate reports the first meaningless value, wrapped in ErrOptionViolation.
func (p Params) Validate() error {
	switch {
	case !(p.CellSize > 0) || math.IsInf(p.CellSize, 0):
		return fmt.Errorf("%w: CellSize=%v", ErrOptionViolation, p.CellSize)
	case !(p.AreaPerNode > 0):
		return fmt.Errorf("%w: AreaPerNode=%v", ErrOptionViolation, p.AreaPerNode)
	case p.MinNodes < 0 || p.MaxNodes < p.MinNodes:
		return fmt.Errorf("%w: node clamp [%d,%d]", ErrOptionViolation, p.MinNodes, p.MaxNodes)
	case p.MinBand < 0 || p.SecondaryPerHub < 0 || p.MicroPerHub < 0 || p.ClustersPerHub < 0:
		return fmt.Errorf("%w: negative population count", ErrOptionViolation)
	case p.WeightFloor < 0 || p.WeightFloor > 1:
		return fmt.Errorf("%w: WeightFloor=%v", ErrOptionViolation, p.WeightFloor)
	case len(p.Hubs) > MaxHubs:
		return fmt.Errorf("%w: %d hubs > %d", ErrOptionViolation, len(p.Hubs), MaxHubs)
	}
	for t, tp := range p.Tiers {
		if tp.Radius < 0 || tp.MaxDegree < 0 {
			return fmt.Errorf("%w: tier %s radius=%v cap=%d", ErrOptionViolation, Tier(t), tp.Radius, tp.MaxDegree)
		}
	}
	return nil
}

// Option customizes Build.
type Option func(*buildConfig)

type buildConfig struct {
	params Params
	rand   rng.Source
	err    error
}

// WithParams replaces the whole parameter set.
func WithParams(p Params) Option {
	return func(c *buildConfig) {
		c.params = p
	}
}

// WithSeed seeds the layout stream. Ignored when WithRand is also given.
func WithSeed(seed uint32) Option {
	return func(c *buildConfig) {
		c.params.Seed = seed
	}
}

// WithRand supplies an explicit stream; nil is recorded as an option violation.
func WithRand(src rng.Source) Option {
	return func(c *buildConfig) {
		if src == nil {
			c.err = fmt.Errorf("%w: WithRand(nil)", ErrOptionViolation)
			return
		}
		c.rand = src
	}
}

// WithHubs overrides the hub anchors.
func WithHubs(hubs ...HubSpec) Option {
	return func(c *buildConfig) {
		c.params.Hubs = append([]HubSpec(nil), hubs...)
	}
}

// WithTier overrides radius and degree cap of one tier.
func WithTier(t Tier, tp TierParams) Option {
	return func(c *buildConfig) {
		if t >= tierCount {
			c.err = fmt.Errorf("%w: %s", ErrUnknownTier, t)
			return
		}
		c.params.Tiers[t] = tp
	}
}

func newBuildConfig(opts ...Option) (buildConfig, error) {
	c := buildConfig{params: DefaultParams()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.err != nil {
		return c, c.err
	}
	if err := c.params.Validate(); err != nil {
		return c, err
	}
	if c.rand == nil {
		c.rand = rng.New(c.params.Seed)
	}
	return c, nil
}
