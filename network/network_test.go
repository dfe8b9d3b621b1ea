package network_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/rng"
)

// fixedHubs pins the hub layout so tests do not depend on the default table.
var fixedHubs = []network.HubSpec{
	{FX: 0.25, FY: 0.5, Jitter: 0, R: 10},
	{FX: 0.75, FY: 0.5, Jitter: 0, R: 12},
}

// requireWellFormed checks edge validity, uniqueness, index consistency,
// degree caps and canvas bounds.
func requireWellFormed(t *testing.T, g *network.Graph) {
	t.Helper()
	seen := make(map[network.EdgeKey]bool, len(g.Edges))
	for slot, e := range g.Edges {
		require.NotEqual(t, e.A, e.B, "self-loop at slot %d", slot)
		require.GreaterOrEqual(t, e.A, 0)
		require.GreaterOrEqual(t, e.B, 0)
		require.Less(t, e.A, g.Len())
		require.Less(t, e.B, g.Len())
		k := network.KeyOf(e.A, e.B)
		require.False(t, seen[k], "duplicate edge %s", k)
		seen[k] = true

		got, ok := g.EdgeIndex(e.B, e.A)
		require.True(t, ok)
		require.Equal(t, slot, got)
		require.Greater(t, e.W, 0.0)
		require.LessOrEqual(t, e.W, 1.0)
	}
	for i, n := range g.Nodes {
		require.LessOrEqual(t, g.Degree(i), g.Cap(i), "node %d (%s) exceeds cap", i, n.Tier)
		require.GreaterOrEqual(t, n.X, 0.0)
		require.LessOrEqual(t, n.X, g.Width)
		require.GreaterOrEqual(t, n.Y, 0.0)
		require.LessOrEqual(t, n.Y, g.Height)
		for _, j := range n.Neighbors {
			require.True(t, g.HasEdge(i, j))
		}
	}
}

//----------------------------------------------------------------------------//
// Build
//----------------------------------------------------------------------------//

// TestBuild_Deterministic builds the same 200×200 canvas twice.
func TestBuild_Deterministic(t *testing.T) {
	build := func() *network.Graph {
		g, err := network.Build(200, 200, network.WithSeed(1337), network.WithHubs(fixedHubs...))
		require.NoError(t, err)
		return g
	}
	a, b := build(), build()
	require.Equal(t, a.Len(), b.Len())
	require.Equal(t, a.EdgeCount(), b.EdgeCount())
	require.Equal(t, a.Edges, b.Edges)
	for i := range a.Nodes {
		require.Equal(t, a.Nodes[i].X, b.Nodes[i].X)
		require.Equal(t, a.Nodes[i].Neighbors, b.Nodes[i].Neighbors)
	}
}

// TestBuild_SeedsDiffer guards against the seed being ignored.
func TestBuild_SeedsDiffer(t *testing.T) {
	a, err := network.Build(640, 480, network.WithSeed(1))
	require.NoError(t, err)
	b, err := network.Build(640, 480, network.WithSeed(2))
	require.NoError(t, err)
	require.NotEqual(t, a.Nodes[0].Y, b.Nodes[0].Y)
}

// TestBuild_Invariants checks structural guarantees across canvases and seeds.
func TestBuild_Invariants(t *testing.T) {
	cases := []struct {
		name string
		w, h float64
		seed uint32
	}{
		{"Small", 200, 200, 1337},
		{"Landing", 700, 550, 1337},
		{"Wide", 1600, 500, 7},
		{"Degenerate", 0, -5, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := network.Build(tc.w, tc.h, network.WithSeed(tc.seed))
			require.NoError(t, err)
			requireWellFormed(t, g)
			require.LessOrEqual(t, g.Len(), network.DefaultParams().MaxNodes)
			require.Len(t, g.Hubs(), len(network.DefaultParams().Hubs))
			require.NotZero(t, g.EdgeCount())
		})
	}
}

// TestBuild_Resize rebuilds from 800×600 to 400×300: node count changes and
// every node stays inside the smaller canvas.
func TestBuild_Resize(t *testing.T) {
	big, err := network.Build(800, 600)
	require.NoError(t, err)
	small, err := network.Build(400, 300)
	require.NoError(t, err)

	require.NotEqual(t, big.Len(), small.Len())
	for i, n := range small.Nodes {
		if n.X < 0 || n.X > 400 || n.Y < 0 || n.Y > 300 {
			t.Fatalf("node %d at (%v,%v) outside 400×300", i, n.X, n.Y)
		}
	}
}

// TestBuild_DegenerateClamp ensures tiny canvases are clamped, not rejected.
func TestBuild_DegenerateClamp(t *testing.T) {
	g, err := network.Build(1, 1)
	require.NoError(t, err)
	require.Equal(t, network.MinCanvas, g.Width)
	require.Equal(t, network.MinCanvas, g.Height)
}

// TestBuild_OptionErrors verifies invalid options surface ErrOptionViolation.
func TestBuild_OptionErrors(t *testing.T) {
	tooMany := make([]network.HubSpec, network.MaxHubs+1)
	bad := network.DefaultParams()
	bad.CellSize = 0

	cases := []struct {
		name string
		opt  network.Option
		want error
	}{
		{"NilRand", network.WithRand(nil), network.ErrOptionViolation},
		{"TooManyHubs", network.WithHubs(tooMany...), network.ErrOptionViolation},
		{"BadCell", network.WithParams(bad), network.ErrOptionViolation},
		{"BadTier", network.WithTier(network.Tier(9), network.TierParams{}), network.ErrUnknownTier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := network.Build(300, 300, tc.opt)
			if !errors.Is(err, tc.want) {
				t.Errorf("Build error = %v; want %v", err, tc.want)
			}
		})
	}
}

// TestTargetNodes checks the area-scaled clamp.
func TestTargetNodes(t *testing.T) {
	p := network.DefaultParams()
	assert.Equal(t, p.MinNodes, network.TargetNodes(p, 300, 220))
	assert.Equal(t, 1067, network.TargetNodes(p, 800, 600))
	assert.Equal(t, p.MaxNodes, network.TargetNodes(p, 4000, 4000))
}

// TestWithTier_DegreeCap narrows micro caps and verifies enforcement.
func TestWithTier_DegreeCap(t *testing.T) {
	g, err := network.Build(500, 400, network.WithTier(network.Micro, network.TierParams{Radius: 75, MaxDegree: 1}))
	require.NoError(t, err)
	requireWellFormed(t, g)
	for i, n := range g.Nodes {
		if n.Tier == network.Micro {
			require.LessOrEqual(t, g.Degree(i), 1)
		}
	}
}

//----------------------------------------------------------------------------//
// AddEdge / Grow / queries
//----------------------------------------------------------------------------//

// TestAddEdge covers insertion, dedup and every error class.
func TestAddEdge(t *testing.T) {
	g, err := network.Build(300, 300, network.WithHubs(fixedHubs...), network.WithTier(network.Micro, network.TierParams{Radius: 0, MaxDegree: 4}),
		network.WithTier(network.Secondary, network.TierParams{Radius: 0, MaxDegree: 8}),
		network.WithTier(network.Hub, network.TierParams{Radius: 0, MaxDegree: 24}))
	require.NoError(t, err)
	require.Zero(t, g.EdgeCount(), "zero radius must leave every node isolated")

	a, b := 2, 3
	slot, added, err := g.AddEdge(a, b, 0.5)
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, 0, slot)

	again, added, err := g.AddEdge(b, a, 0.9)
	require.NoError(t, err)
	require.False(t, added)
	require.Equal(t, slot, again)
	require.Equal(t, 1, g.EdgeCount())

	_, _, err = g.AddEdge(a, a, 1)
	require.ErrorIs(t, err, network.ErrSelfLoop)
	_, _, err = g.AddEdge(-1, a, 1)
	require.ErrorIs(t, err, network.ErrNodeIndex)
	_, _, err = g.AddEdge(a, g.Len(), 1)
	require.ErrorIs(t, err, network.ErrNodeIndex)

	// weight is floored
	slot, _, err = g.AddEdge(4, 5, -3)
	require.NoError(t, err)
	require.Equal(t, g.Params().WeightFloor, g.Edges[slot].W)

	// saturate a micro node then hit the cap
	micro := -1
	for i, n := range g.Nodes {
		if n.Tier == network.Micro && g.Degree(i) == 0 {
			micro = i
			break
		}
	}
	require.GreaterOrEqual(t, micro, 0)
	linked := 0
	for j := 0; linked < g.Cap(micro); j++ {
		if j == micro || g.Degree(j) >= g.Cap(j) {
			continue
		}
		_, ok, err := g.AddEdge(micro, j, 0.5)
		require.NoError(t, err)
		if ok {
			linked++
		}
	}
	other := -1
	for j := range g.Nodes {
		if j != micro && !g.HasEdge(micro, j) {
			other = j
			break
		}
	}
	_, _, err = g.AddEdge(micro, other, 0.5)
	require.ErrorIs(t, err, network.ErrDegreeCap)
	requireWellFormed(t, g)
}

// TestGrow inserts channels and keeps the invariants.
func TestGrow(t *testing.T) {
	g, err := network.Build(700, 550)
	require.NoError(t, err)
	before := g.EdgeCount()
	src := rng.New(5)
	grown := 0
	for i := 0; i < 500; i++ {
		if slot, ok := g.Grow(src); ok {
			require.Equal(t, g.EdgeCount()-1, slot)
			grown++
		}
	}
	require.Positive(t, grown)
	require.Equal(t, before+grown, g.EdgeCount())
	requireWellFormed(t, g)
}

// TestGrow_DefaultLayouts: built layouts leave most nodes at their cap, and
// churn still finds a pair of open nodes until none is left in reach.
func TestGrow_DefaultLayouts(t *testing.T) {
	for _, size := range [][2]float64{{320, 240}, {800, 600}, {1600, 900}} {
		g, err := network.Build(size[0], size[1])
		require.NoError(t, err)
		src := rng.New(1)

		slot, ok := g.Grow(src)
		require.True(t, ok, "%v×%v", size[0], size[1])
		e := g.Edges[slot]
		require.LessOrEqual(t, g.Dist2(e.A, e.B), math.Pow(network.GrowReach*g.Params().Tier(network.Hub).Radius, 2))

		stalled := false
		for i := 0; i < 2000 && !stalled; i++ {
			_, ok = g.Grow(src)
			stalled = !ok
		}
		require.True(t, stalled, "open pairs run out")
		requireWellFormed(t, g)
	}
}

// TestGrow_NoOpenNodes: a graph whose open nodes all have zero radius never grows.
func TestGrow_NoOpenNodes(t *testing.T) {
	zero := network.TierParams{Radius: 0, MaxDegree: 4}
	g, err := network.Build(300, 300,
		network.WithTier(network.Hub, zero),
		network.WithTier(network.Secondary, zero),
		network.WithTier(network.Micro, zero))
	require.NoError(t, err)
	_, ok := g.Grow(rng.New(1))
	require.False(t, ok)
	require.Zero(t, g.EdgeCount())
}

// TestNearest finds the closest node and respects the distance limit.
func TestNearest(t *testing.T) {
	g, err := network.Build(400, 300, network.WithHubs(fixedHubs...))
	require.NoError(t, err)
	hub := g.Hubs()[0]
	n := g.Nodes[hub]
	got := g.Nearest(n.X, n.Y, 5)
	require.GreaterOrEqual(t, got, 0)
	require.InDelta(t, 0, g.Dist2(got, hub), 25)
	require.Equal(t, -1, g.Nearest(-1000, -1000, 10))
}

// TestComponentsAndReachable checks bfs-backed topology queries.
func TestComponentsAndReachable(t *testing.T) {
	g, err := network.Build(300, 300, network.WithTier(network.Micro, network.TierParams{Radius: 0, MaxDegree: 4}),
		network.WithTier(network.Secondary, network.TierParams{Radius: 0, MaxDegree: 8}),
		network.WithTier(network.Hub, network.TierParams{Radius: 0, MaxDegree: 24}))
	require.NoError(t, err)
	_, count := g.Components()
	require.Equal(t, g.Len(), count)

	_, _, err = g.AddEdge(0, 1, 1)
	require.NoError(t, err)
	_, _, err = g.AddEdge(1, 2, 1)
	require.NoError(t, err)
	require.True(t, g.Reachable(0, 2))
	require.False(t, g.Reachable(0, 3))
	require.False(t, g.Reachable(-1, 3))

	require.True(t, g.Within(0, 2, 2))
	require.False(t, g.Within(0, 2, 1))
	require.True(t, g.Within(0, 0, 0))
	require.False(t, g.Within(0, 3, 10))
	require.Equal(t, []int{0, 1, 2}, g.ShortestPath(0, 2))
	require.Equal(t, []int{2}, g.ShortestPath(2, 2))
	require.Nil(t, g.ShortestPath(0, 3))
	require.Nil(t, g.ShortestPath(0, g.Len()))
	_, count = g.Components()
	require.Equal(t, g.Len()-2, count)
}

// TestTierAndKey covers name parsing and key symmetry.
func TestTierAndKey(t *testing.T) {
	for _, tier := range []network.Tier{network.Hub, network.Secondary, network.Micro} {
		got, err := network.ParseTier(tier.String())
		require.NoError(t, err)
		require.Equal(t, tier, got)
	}
	_, err := network.ParseTier("mega")
	require.ErrorIs(t, err, network.ErrUnknownTier)

	require.Equal(t, network.KeyOf(3, 9), network.KeyOf(9, 3))
	a, b := network.KeyOf(9, 3).Nodes()
	require.Equal(t, 3, a)
	require.Equal(t, 9, b)
	require.Equal(t, "3-9", network.KeyOf(9, 3).String())
}

func BenchmarkBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = network.Build(800, 600)
	}
}
