package render_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenyukang/fiber-world/network"
	"github.com/chenyukang/fiber-world/overlay"
	"github.com/chenyukang/fiber-world/render"
	"github.com/chenyukang/fiber-world/rng"
)

// recorder is a Surface that counts calls instead of drawing.
type recorder struct {
	clears, washes, lines, rings, discs, blits int
}

func (r *recorder) Clear(color.Color)                         { r.clears++ }
func (r *recorder) Wash(color.Color)                          { r.washes++ }
func (r *recorder) Line(_, _, _, _, _ float64, _ color.Color) { r.lines++ }
func (r *recorder) Ring(_, _, _, _ float64, _ color.Color)    { r.rings++ }
func (r *recorder) Disc(_, _, _ float64, _ color.Color)       { r.discs++ }
func (r *recorder) Blit(image.Image)                          { r.blits++ }

var _ render.Surface = (*recorder)(nil)
var _ render.Surface = (*render.Raster)(nil)

//----------------------------------------------------------------------------//
// Raster
//----------------------------------------------------------------------------//

func TestNewRaster_Size(t *testing.T) {
	r, err := render.NewRaster(101, 51, 1.5)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 152, 77), r.Bounds())
	assert.Equal(t, 1.5, r.Scale())
}

func TestNewRaster_Errors(t *testing.T) {
	cases := []struct {
		name      string
		w, h, dpr float64
	}{
		{"ZeroWidth", 0, 10, 1},
		{"NaNDpr", 10, 10, math.NaN()},
		{"InfHeight", 10, math.Inf(1), 1},
		{"TooLarge", 20000, 20000, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := render.NewRaster(tc.w, tc.h, tc.dpr)
			assert.ErrorIs(t, err, render.ErrBadSize)
		})
	}
}

func TestRaster_Paint(t *testing.T) {
	r, err := render.NewRaster(40, 40, 1)
	require.NoError(t, err)
	r.Clear(color.NRGBA{B: 255, A: 255})
	assert.Equal(t, color.RGBA{B: 255, A: 255}, r.Image().RGBAAt(2, 2))

	r.Disc(20, 20, 10, color.NRGBA{R: 255, A: 255})
	c := r.Image().RGBAAt(20, 20)
	assert.Greater(t, c.R, uint8(200))
	assert.Less(t, c.B, uint8(50))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, r.Image().RGBAAt(2, 2), "outside the disc")

	snap := r.Snapshot()
	r.Clear(color.NRGBA{A: 255})
	assert.Equal(t, c, snap.RGBAAt(20, 20), "snapshot is a copy")
}

func TestRaster_BlitScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 255, 255
	}
	dst, err := render.NewRaster(10, 10, 2)
	require.NoError(t, err)
	dst.Blit(src)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, dst.Image().RGBAAt(10, 10))
}

//----------------------------------------------------------------------------//
// StaticLayer
//----------------------------------------------------------------------------//

func TestStaticLayer_Ensure(t *testing.T) {
	g, err := network.Build(320, 240)
	require.NoError(t, err)
	var l render.StaticLayer
	require.Nil(t, l.Image())

	up, err := l.Ensure(g, 1.25, render.Dark())
	require.NoError(t, err)
	assert.Equal(t, render.Redrawn, up)
	pw, ph := render.PixelSize(320, 240, 1.25)
	assert.Equal(t, image.Rect(0, 0, pw, ph), l.Image().Bounds())
	assert.Equal(t, g.EdgeCount(), l.Edges())

	up, err = l.Ensure(g, 1.25, render.Dark())
	require.NoError(t, err)
	assert.Equal(t, render.Unchanged, up)

	src := rng.New(3)
	grew := false
	for i := 0; i < 200 && !grew; i++ {
		_, grew = g.Grow(src)
	}
	require.True(t, grew)
	up, err = l.Ensure(g, 1.25, render.Dark())
	require.NoError(t, err)
	assert.Equal(t, render.Appended, up)
	assert.Equal(t, g.EdgeCount(), l.Edges())

	other, err := network.Build(320, 240)
	require.NoError(t, err)
	steps := []struct {
		name string
		g    *network.Graph
		dpr  float64
		pal  render.Palette
	}{
		{"Dpr", g, 1, render.Dark()},
		{"Palette", g, 1, render.Light()},
		{"Graph", other, 1, render.Light()},
	}
	for _, st := range steps {
		up, err := l.Ensure(st.g, st.dpr, st.pal)
		require.NoError(t, err, st.name)
		assert.Equal(t, render.Redrawn, up, st.name)
	}

	l.Invalidate()
	up, err = l.Ensure(g, 1, render.Light())
	require.NoError(t, err)
	assert.Equal(t, render.Redrawn, up)

	_, err = l.Ensure(nil, 1, render.Dark())
	assert.ErrorIs(t, err, render.ErrNilGraph)
}

//----------------------------------------------------------------------------//
// Per-frame layers
//----------------------------------------------------------------------------//

func TestHover_CapsLinks(t *testing.T) {
	g, err := network.Build(800, 600)
	require.NoError(t, err)
	busy := -1
	for i := range g.Nodes {
		if g.Degree(i) > render.MaxHoverLinks {
			busy = i
			break
		}
	}
	require.GreaterOrEqual(t, busy, 0)

	var rec recorder
	render.Hover(&rec, g, busy, render.Dark())
	assert.Equal(t, 1, rec.rings)
	assert.Equal(t, render.MaxHoverLinks, rec.lines)

	rec = recorder{}
	render.Hover(&rec, g, -1, render.Dark())
	assert.Zero(t, rec.rings+rec.lines)
}

func TestHotEdges_SkipsColdAndMissing(t *testing.T) {
	g, err := network.Build(300, 300)
	require.NoError(t, err)
	g.Edges[0].Heat = 0.5
	var rec recorder
	render.HotEdges(&rec, g, []int{0, 1, -4, g.EdgeCount()}, render.Dark())
	assert.Equal(t, 2, rec.lines, "one glow and one core stroke for the single hot edge")
}

func TestPulses_SkipsFaded(t *testing.T) {
	var rec recorder
	render.Pulses(&rec, []overlay.Pulse{
		{R: 5, MaxR: 30, Alpha: 0.9},
		{R: 30, MaxR: 30, Alpha: 0.9},
	})
	assert.Equal(t, 1, rec.rings)
}

func TestWashAlpha(t *testing.T) {
	assert.InDelta(t, 0.04, render.WashAlpha(0), 1e-12)
	for ts := 0.0; ts < 10000; ts += 37 {
		a := render.WashAlpha(ts)
		require.GreaterOrEqual(t, a, 0.022-1e-12)
		require.LessOrEqual(t, a, 0.058+1e-12)
	}
	var rec recorder
	render.Wash(&rec, 100, render.Light())
	assert.Equal(t, 1, rec.washes)
}

func TestHue(t *testing.T) {
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, render.Hue(120, 0.5, 1))
	assert.Equal(t, uint8(0), render.Hue(40, 0.5, -1).A)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 128}, render.WithAlpha(color.NRGBA{R: 1, G: 2, B: 3, A: 9}, 0.5))
}

func BenchmarkStaticLayer(b *testing.B) {
	g, _ := network.Build(800, 600)
	for i := 0; i < b.N; i++ {
		var l render.StaticLayer
		_, _ = l.Ensure(g, 1, render.Dark())
	}
}
