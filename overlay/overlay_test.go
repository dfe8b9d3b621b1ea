package overlay_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/overlay"
)

func smallGraph(t *testing.T) *network.Graph {
	t.Helper()
	g, err := network.Build(300, 240, network.WithSeed(9))
	require.NoError(t, err)
	require.Greater(t, g.EdgeCount(), 3)
	return g
}

//----------------------------------------------------------------------------//
// HeatMap
//----------------------------------------------------------------------------//

func TestHeatMap_AddClamps(t *testing.T) {
	g := smallGraph(t)
	h := overlay.NewHeatMap()

	require.True(t, h.Add(g, 1, 0.7))
	require.True(t, h.Add(g, 1, 0.7))
	assert.Equal(t, overlay.MaxHeat, g.Edges[1].Heat)
	assert.Equal(t, 1, h.Len())
	assert.True(t, h.Contains(1))

	assert.False(t, h.Add(g, -1, 0.5))
	assert.False(t, h.Add(g, g.EdgeCount(), 0.5))
	assert.False(t, h.Add(g, 2, 0))
	assert.False(t, h.Add(g, 2, math.NaN()))
	assert.False(t, h.Add(nil, 2, 0.5))
	assert.Equal(t, 1, h.Len())
}

func TestHeatMap_DecayDropsBelowFloor(t *testing.T) {
	g := smallGraph(t)
	h := &overlay.HeatMap{} // zero value works
	h.Add(g, 0, 1)

	for i := 0; i < 63; i++ {
		h.Decay(g)
	}
	require.True(t, h.Contains(0), "0.93^63 is still above the floor")
	require.InDelta(t, math.Pow(0.93, 63), g.Edges[0].Heat, 1e-9)

	h.Decay(g)
	require.False(t, h.Contains(0))
	require.Zero(t, g.Edges[0].Heat)
}

func TestHeatMap_BoundsUnderLoad(t *testing.T) {
	g := smallGraph(t)
	h := overlay.NewHeatMap()
	for frame := 0; frame < 200; frame++ {
		for slot := 0; slot < g.EdgeCount(); slot += 3 {
			h.Add(g, slot, 0.45)
		}
		h.Decay(g)
		for _, e := range g.Edges {
			require.GreaterOrEqual(t, e.Heat, 0.0)
			require.LessOrEqual(t, e.Heat, 1.0)
		}
	}
}

func TestHeatMap_HotSortedAndReset(t *testing.T) {
	g := smallGraph(t)
	h := overlay.NewHeatMap()
	for _, s := range []int{3, 0, 2} {
		h.Add(g, s, 0.5)
	}
	assert.Equal(t, []int{0, 2, 3}, h.Hot())

	h.Reset(g)
	assert.Zero(t, h.Len())
	for _, s := range []int{0, 2, 3} {
		assert.Zero(t, g.Edges[s].Heat)
	}
}

func TestHeatMap_DecayForgetsMissingSlots(t *testing.T) {
	g := smallGraph(t)
	h := overlay.NewHeatMap()
	h.Add(g, g.EdgeCount()-1, 0.5)

	small, err := network.Build(64, 64, network.WithTier(network.Micro, network.TierParams{}),
		network.WithTier(network.Secondary, network.TierParams{}), network.WithTier(network.Hub, network.TierParams{}))
	require.NoError(t, err)
	h.Decay(small)
	assert.Zero(t, h.Len())
}

//----------------------------------------------------------------------------//
// Pulses
//----------------------------------------------------------------------------//

func TestPulse_Fade(t *testing.T) {
	p := overlay.Pulse{R: 18, MaxR: 36, Alpha: 0.9}
	tt, a := p.Fade()
	assert.InDelta(t, 0.5, tt, 1e-12)
	assert.InDelta(t, 0.45, a, 1e-12)

	tiny := overlay.Pulse{R: 0.5, MaxR: 0, Alpha: 1}
	tt, _ = tiny.Fade()
	assert.InDelta(t, 0.5, tt, 1e-12, "MaxR is floored at 1")
}

func TestPulses_StepLifetime(t *testing.T) {
	var ps overlay.Pulses
	ps.Emit(overlay.Pulse{X: 5, Y: 5, R: 10, MaxR: 36, Alpha: 0.95, Hue: 40})

	for i := 0; i < 14; i++ {
		ps.Step()
	}
	require.Equal(t, 1, ps.Len())
	require.InDelta(t, 10+14*overlay.PulseGrowth, ps.All()[0].R, 1e-9)

	ps.Step()
	require.Zero(t, ps.Len())
}

func TestPulses_DropsInvalid(t *testing.T) {
	cases := []struct {
		name string
		p    overlay.Pulse
	}{
		{"NaNRadius", overlay.Pulse{R: math.NaN(), MaxR: 10, Alpha: 1}},
		{"InfMax", overlay.Pulse{R: 1, MaxR: math.Inf(1), Alpha: 1}},
		{"Faded", overlay.Pulse{R: 1, MaxR: 10, Alpha: 0}},
		{"Oversized", overlay.Pulse{R: 20, MaxR: 10, Alpha: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ps overlay.Pulses
			ps.Emit(tc.p)
			assert.Zero(t, ps.Len())
			assert.False(t, tc.p.Alive())
		})
	}
}

func TestPulses_Reset(t *testing.T) {
	var ps overlay.Pulses
	for i := 0; i < 5; i++ {
		ps.Emit(overlay.Pulse{R: 1, MaxR: 30, Alpha: 0.9})
	}
	ps.Reset()
	assert.Zero(t, ps.Len())
}

func BenchmarkHeatDecay(b *testing.B) {
	g, _ := network.Build(800, 600)
	h := overlay.NewHeatMap()
	for i := 0; i < b.N; i++ {
		for s := 0; s < 64 && s < g.EdgeCount(); s++ {
			h.Add(g, s, 0.45)
		}
		h.Decay(g)
	}
}
