package route_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/rng"
	"github.com/chenyukang/fiber-world/route"
)

// pairGraph returns two hubs at x=0.1w and x=0.5w joined by one channel.
// No node lies right of 0.6w, so a finished route cannot respawn.
func pairGraph(t *testing.T) *network.Graph {
	t.Helper()
	p := network.DefaultParams()
	p.Hubs = []network.HubSpec{{FX: 0.1, FY: 0.5, R: 10}, {FX: 0.5, FY: 0.5, R: 10}}
	p.SecondaryPerHub, p.MicroPerHub, p.ClustersPerHub = 0, 0, 0
	p.MinBand, p.MinNodes, p.MaxNodes = 0, 0, 2
	p.Tiers[network.Hub] = network.TierParams{Radius: 0, MaxDegree: 4}
	g, err := network.Build(400, 300, network.WithParams(p))
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	_, _, err = g.AddEdge(0, 1, 1)
	require.NoError(t, err)
	return g
}

// chainGraph returns an isolated-node graph with the chain 0-1-2-3 added.
func chainGraph(t *testing.T) *network.Graph {
	t.Helper()
	zero := network.TierParams{Radius: 0, MaxDegree: 8}
	g, err := network.Build(500, 400,
		network.WithTier(network.Hub, zero),
		network.WithTier(network.Secondary, zero),
		network.WithTier(network.Micro, zero))
	require.NoError(t, err)
	require.Zero(t, g.EdgeCount())
	for i := 0; i < 3; i++ {
		_, _, err = g.AddEdge(i, i+1, 1)
		require.NoError(t, err)
	}
	return g
}

func requireAdjacent(t *testing.T, g *network.Graph, r *route.Route) {
	t.Helper()
	require.GreaterOrEqual(t, len(r.Path), 2)
	require.Less(t, r.Seg, len(r.Path)-1)
	for i := 0; i+1 < len(r.Path); i++ {
		require.True(t, g.HasEdge(r.Path[i], r.Path[i+1]), "route %s hop %d", r.ID, i)
	}
}

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew_Errors(t *testing.T) {
	g := pairGraph(t)
	_, err := route.New(nil, rng.New(1))
	assert.ErrorIs(t, err, route.ErrGraphNil)
	_, err = route.New(g, nil)
	assert.ErrorIs(t, err, route.ErrSourceNil)
	_, err = route.New(g, rng.New(1), route.WithHops(5, 2))
	assert.ErrorIs(t, err, route.ErrOptionViolation)
	_, err = route.New(g, rng.New(1), route.WithPriorityRate(1.5))
	assert.ErrorIs(t, err, route.ErrOptionViolation)
}

//----------------------------------------------------------------------------//
// Paths
//----------------------------------------------------------------------------//

func TestFindPath_Chain(t *testing.T) {
	g := chainGraph(t)
	assert.Equal(t, []int{0, 1, 2, 3}, route.FindPath(g, 0, 3, 8))
	assert.Equal(t, []int{0, 1}, route.FindPath(g, 0, 3, 1), "hop budget cuts the walk short")
	assert.Equal(t, []int{3, 2, 1, 0}, route.FindPath(g, 3, 0, 8))
	assert.Nil(t, route.FindPath(g, 0, 3, 0))
	assert.Nil(t, route.FindPath(g, -1, 3, 4))
}

// TestSpawnBetween_Severed: a start node with no channels yields no route.
func TestSpawnBetween_Severed(t *testing.T) {
	g := chainGraph(t)
	isolated := g.Len() - 1
	require.Zero(t, g.Degree(isolated))

	e, err := route.New(g, rng.New(3))
	require.NoError(t, err)
	r, ok := e.SpawnBetween(isolated, 0)
	assert.False(t, ok)
	assert.Nil(t, r)
	assert.Zero(t, e.Len())
}

// TestClassify separates a reached target from a short budget, a greedy
// dead end and a severed pair.
func TestClassify(t *testing.T) {
	g := chainGraph(t)
	cases := []struct {
		name string
		path []int
		b    int
		hops int
		want route.Outcome
	}{
		{"Arrived", route.FindPath(g, 0, 3, 8), 3, 8, route.Arrived},
		{"OutOfReach", route.FindPath(g, 0, 3, 2), 3, 2, route.OutOfReach},
		{"Detour", []int{0, 1}, 2, 4, route.Detour},
		{"Severed", route.FindPath(g, 0, 4, 8), 4, 8, route.Severed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, route.Classify(g, tc.path, 0, tc.b, tc.hops))
			assert.Equal(t, strings.ToLower(tc.name), strings.ReplaceAll(tc.want.String(), "_", ""))
		})
	}
	assert.Equal(t, "unknown", route.Outcome(99).String())
}

// TestTakeTally counts spawn searches by outcome and resets on read.
func TestTakeTally(t *testing.T) {
	g := chainGraph(t)
	e, err := route.New(g, rng.New(4), route.WithHops(8, 8))
	require.NoError(t, err)
	_, ok := e.SpawnBetween(0, 3)
	require.True(t, ok)
	_, ok = e.SpawnBetween(4, 0)
	require.False(t, ok)

	tally := e.TakeTally()
	assert.Equal(t, 1, tally.Get(route.Arrived))
	assert.Equal(t, 1, tally.Get(route.Severed))
	assert.Zero(t, tally.Get(route.Outcome(-1)))
	assert.Equal(t, 2, tally.Total())
	drained := e.TakeTally()
	assert.Zero(t, drained.Total())

	e.SpawnBetween(0, 3)
	e.Reset(nil)
	afterReset := e.TakeTally()
	assert.Zero(t, afterReset.Total())
}

func TestPickNode(t *testing.T) {
	g := chainGraph(t)
	src := rng.New(5)
	for i := 0; i < 50; i++ {
		j := route.PickNode(g, src, func(n network.Node) bool { return n.Tier == network.Hub })
		require.Equal(t, network.Hub, g.Nodes[j].Tier)
	}
	assert.Equal(t, -1, route.PickNode(g, src, func(network.Node) bool { return false }))
}

//----------------------------------------------------------------------------//
// Heat and motion
//----------------------------------------------------------------------------//

func TestWarm_IntensityScalesHeat(t *testing.T) {
	cases := []struct {
		name string
		rate float64
		want float64
	}{
		{"Regular", 0, 0.035 + 0.45},
		{"Priority", 1, (0.035 + 0.45) * 1.4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := pairGraph(t)
			e, err := route.New(g, rng.New(1), route.WithPriorityRate(tc.rate))
			require.NoError(t, err)
			r, ok := e.SpawnBetween(0, 1)
			require.True(t, ok)
			require.Equal(t, tc.rate == 1, r.Priority)

			e.Warm(r)
			assert.InDelta(t, tc.want, g.Edges[0].Heat, 1e-12)
			assert.Equal(t, []int{0}, e.Heat().Hot())
		})
	}
}

func TestAddHeat_UnknownEdge(t *testing.T) {
	g := chainGraph(t)
	e, err := route.New(g, rng.New(1))
	require.NoError(t, err)
	assert.False(t, e.AddHeat(0, 2, 0.5))
	assert.False(t, e.AddHeat(0, 99999, 0.5))
	assert.True(t, e.AddHeat(1, 0, 0.5))
	assert.Equal(t, 1, e.Heat().Len())
}

// TestAdvance_TerminalGoesDormant: arrival and terminal pulses fire, and a
// respawn with no eligible end node marks the route for pruning.
func TestAdvance_TerminalGoesDormant(t *testing.T) {
	g := pairGraph(t)
	e, err := route.New(g, rng.New(2))
	require.NoError(t, err)
	r, ok := e.SpawnBetween(0, 1)
	require.True(t, ok)
	r.T, r.Speed = 0, 1

	e.Advance(r, 0)
	assert.Zero(t, r.T, "zero dt does not move")

	e.Advance(r, 1)
	assert.Equal(t, 2, e.Pulses().Len())
	assert.True(t, r.Dormant())
	assert.Equal(t, 1, e.Prune())
	assert.Zero(t, e.Len())
}

// TestAdvance_RespawnInPlace: a route finishing its path fires both pulses
// and takes a fresh left-to-right path under the same ID.
func TestAdvance_RespawnInPlace(t *testing.T) {
	g, err := network.Build(800, 600)
	require.NoError(t, err)
	e, err := route.New(g, rng.New(rng.DefaultSeed))
	require.NoError(t, err)

	respawned := 0
	for attempt := 0; attempt < 40; attempt++ {
		r, ok := e.SpawnRoute()
		if !ok {
			continue
		}
		id := r.ID
		r.Seg, r.T, r.Speed = len(r.Path)-2, 0, 1
		pulses := e.Pulses().Len()
		e.TakeTally()

		e.Advance(r, 1)
		require.Equal(t, pulses+2, e.Pulses().Len(), "arrival and terminal pulses")
		respawn := e.TakeTally()
		require.Equal(t, 1, respawn.Total(), "one search per respawn")
		if r.Dormant() {
			continue
		}
		respawned++
		assert.Equal(t, id, r.ID)
		assert.Zero(t, r.Seg)
		assert.Zero(t, r.T)
		assert.Less(t, g.Nodes[r.Path[0]].X, 0.4*g.Width)
		requireAdjacent(t, g, r)
	}
	require.Positive(t, respawned)
}

func TestAdvance_MidPathArrival(t *testing.T) {
	g := chainGraph(t)
	e, err := route.New(g, rng.New(2), route.WithHops(8, 8))
	require.NoError(t, err)
	r, ok := e.SpawnBetween(0, 3)
	require.True(t, ok)
	r.T, r.Speed = 0, 0.5

	e.Advance(r, 1)
	assert.Equal(t, 0, r.Seg)
	assert.InDelta(t, 0.5, r.T, 1e-12)
	x, _ := r.Position(g)
	assert.InDelta(t, (g.Nodes[0].X+g.Nodes[1].X)/2, x, 1e-9)

	e.Advance(r, 1)
	assert.Equal(t, 1, r.Seg)
	assert.Zero(t, r.T)
	require.Equal(t, 1, e.Pulses().Len())
	p := e.Pulses().All()[0]
	assert.Equal(t, g.Nodes[1].X, p.X)
	assert.Equal(t, g.Nodes[1].R+26, p.MaxR)
}

// TestStep_RoutesStayAdjacent runs the engine for many frames on a real
// layout and checks every live route against the graph.
func TestStep_RoutesStayAdjacent(t *testing.T) {
	g, err := network.Build(800, 600)
	require.NoError(t, err)
	e, err := route.New(g, rng.New(rng.DefaultSeed))
	require.NoError(t, err)
	require.Positive(t, e.Spawn(10))

	for frame := 0; frame < 600; frame++ {
		e.Step(1)
		e.Heat().Decay(g)
		e.Pulses().Step()
		for _, r := range e.Routes() {
			require.False(t, r.Dormant())
			requireAdjacent(t, g, r)
			require.GreaterOrEqual(t, r.T, 0.0)
			require.Less(t, r.T, 1.0)
		}
		for _, ed := range g.Edges {
			require.LessOrEqual(t, ed.Heat, 1.0)
		}
	}
}

func TestTrimAndReset(t *testing.T) {
	g, err := network.Build(800, 600)
	require.NoError(t, err)
	e, err := route.New(g, rng.New(11))
	require.NoError(t, err)
	e.Spawn(20)
	require.Greater(t, e.Len(), 5)

	e.Trim(5)
	assert.Equal(t, 5, e.Len())
	e.Trim(-1)
	assert.Zero(t, e.Len())

	e.Spawn(4)
	e.Step(1)
	other, err := network.Build(400, 300)
	require.NoError(t, err)
	e.Reset(other)
	assert.Same(t, other, e.Graph())
	assert.Zero(t, e.Len())
	assert.Zero(t, e.Heat().Len())
	assert.Zero(t, e.Pulses().Len())
	for _, ed := range g.Edges {
		assert.Zero(t, ed.Heat)
	}
}

func BenchmarkStep(b *testing.B) {
	g, _ := network.Build(800, 600)
	e, _ := route.New(g, rng.New(1))
	e.Spawn(12)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step(1)
		e.Heat().Decay(g)
	}
}
