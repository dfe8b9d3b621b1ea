package spatial_test

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chenyukang/fiber-world/spatial"
)

//----------------------------------------------------------------------------//
// NewGrid and InBounds Tests
//----------------------------------------------------------------------------//

// TestNewGrid_Errors verifies that NewGrid rejects degenerate extents and cells.
func TestNewGrid_Errors(t *testing.T) {
	cases := []struct {
		name      string
		w, h, c   float64
		wantError error
	}{
		{"ZeroCell", 100, 100, 0, spatial.ErrBadCellSize},
		{"NaNCell", 100, 100, math.NaN(), spatial.ErrBadCellSize},
		{"InfCell", 100, 100, math.Inf(1), spatial.ErrBadCellSize},
		{"ZeroWidth", 0, 100, 40, spatial.ErrBadExtent},
		{"NegativeHeight", 100, -1, 40, spatial.ErrBadExtent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := spatial.NewGrid(tc.w, tc.h, tc.c)
			if !errors.Is(err, tc.wantError) {
				t.Errorf("NewGrid(%v,%v,%v) error = %v; want %v", tc.w, tc.h, tc.c, err, tc.wantError)
			}
		})
	}
}

// TestGrid_Dimensions checks ceil-based column/row counts.
func TestGrid_Dimensions(t *testing.T) {
	g, err := spatial.NewGrid(810, 600, 40)
	require.NoError(t, err)
	require.Equal(t, 21, g.Cols)
	require.Equal(t, 15, g.Rows)
	require.True(t, g.InBounds(20, 14))
	require.False(t, g.InBounds(21, 0))
	require.False(t, g.InBounds(0, -1))
}

// TestGrid_CellClamping ensures border and out-of-canvas points land in edge cells.
func TestGrid_CellClamping(t *testing.T) {
	g, err := spatial.NewGrid(200, 200, 40)
	require.NoError(t, err)

	cx, cy := g.Cell(200, 200) // exactly on the far border
	require.Equal(t, 4, cx)
	require.Equal(t, 4, cy)

	cx, cy = g.Cell(-15, 999)
	require.Equal(t, 0, cx)
	require.Equal(t, 4, cy)

	idx := g.Index(85, 45)
	x, y := g.Coordinate(idx)
	require.Equal(t, 2, x)
	require.Equal(t, 1, y)
}

//----------------------------------------------------------------------------//
// Query Tests
//----------------------------------------------------------------------------//

// TestGrid_Query verifies that radius queries cover the neighboring cells only.
func TestGrid_Query(t *testing.T) {
	g, err := spatial.NewGrid(400, 400, 40)
	require.NoError(t, err)

	g.Insert(0, 200, 200) // centre
	g.Insert(1, 230, 210) // same cell
	g.Insert(2, 250, 200) // one cell east
	g.Insert(3, 390, 390) // far corner
	require.Equal(t, 4, g.Len())

	got := g.Query(nil, 200, 200, 40)
	sort.Ints(got)
	require.Equal(t, []int{0, 1, 2}, got)

	got = g.Query(nil, 200, 200, 400)
	sort.Ints(got)
	require.Equal(t, []int{0, 1, 2, 3}, got)

	require.Empty(t, g.Query(nil, 0, 0, -1))
}

func BenchmarkGrid_Query(b *testing.B) {
	g, _ := spatial.NewGrid(800, 600, 40)
	for i := 0; i < 1000; i++ {
		g.Insert(i, float64(i%800), float64((i*7)%600))
	}
	buf := make([]int, 0, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = g.Query(buf[:0], 400, 300, 75)
	}
}
