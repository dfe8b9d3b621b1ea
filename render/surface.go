package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"
)

// Sentinel errors for rasterization.
var (
	// ErrBadSize indicates an empty, non-finite or oversized raster.
	ErrBadSize = errors.New("render: invalid raster size")
	// ErrNilGraph indicates a nil graph was passed to the static layer.
	ErrNilGraph = errors.New("render: graph is nil")
)

// MaxPixels bounds the pixel area of a single raster.
const MaxPixels = 8192 * 8192

// Surface is the drawing capability the renderers need. Coordinates and
// widths are in canvas units.
type Surface interface {
	// Clear fills the whole surface with c, replacing what was there.
	Clear(c color.Color)
	// Wash composites c over the whole surface.
	Wash(c color.Color)
	// Line strokes a segment.
	Line(x1, y1, x2, y2, width float64, c color.Color)
	// Ring strokes a circle outline.
	Ring(x, y, r, width float64, c color.Color)
	// Disc fills a circle.
	Disc(x, y, r float64, c color.Color)
	// Blit composites src over the surface, stretched to cover it.
	Blit(src image.Image)
}

// Raster is a Surface backed by an *image.RGBA and the go-chart rasterizer.
type Raster struct {
	img   *image.RGBA
	gc    *drawing.RasterGraphicContext
	scale float64
}

// PixelSize returns ⌈w·dpr⌉×⌈h·dpr⌉.
func PixelSize(w, h, dpr float64) (int, int) {
	return int(math.Ceil(w * dpr)), int(math.Ceil(h * dpr))
}

// NewRaster allocates a raster for a w×h canvas at pixel ratio dpr.
func NewRaster(w, h, dpr float64) (*Raster, error) {
	if !(dpr > 0) || math.IsInf(dpr, 0) || !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("NewRaster(%v,%v,%v): %w", w, h, dpr, ErrBadSize)
	}
	pw, ph := PixelSize(w, h, dpr)
	if pw*ph > MaxPixels {
		return nil, fmt.Errorf("NewRaster: %dx%d px: %w", pw, ph, ErrBadSize)
	}
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, fmt.Errorf("NewRaster: %w", err)
	}
	gc.Scale(dpr, dpr)
	return &Raster{img: img, gc: gc, scale: dpr}, nil
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// Scale returns the device pixel ratio.
func (r *Raster) Scale() float64 { return r.scale }

// Bounds returns the pixel bounds.
func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

// Clear implements Surface.
func (r *Raster) Clear(c color.Color) {
	xdraw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Wash implements Surface.
func (r *Raster) Wash(c color.Color) {
	xdraw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Over)
}

// Line implements Surface.
func (r *Raster) Line(x1, y1, x2, y2, width float64, c color.Color) {
	r.gc.BeginPath()
	r.gc.MoveTo(x1, y1)
	r.gc.LineTo(x2, y2)
	r.gc.SetLineWidth(width)
	r.gc.SetStrokeColor(c)
	r.gc.Stroke()
}

// Ring implements Surface.
func (r *Raster) Ring(x, y, rad, width float64, c color.Color) {
	if !(rad > 0) {
		return
	}
	r.gc.BeginPath()
	r.gc.ArcTo(x, y, rad, rad, 0, 2*math.Pi)
	r.gc.Close()
	r.gc.SetLineWidth(width)
	r.gc.SetStrokeColor(c)
	r.gc.Stroke()
}

// Disc implements Surface.
func (r *Raster) Disc(x, y, rad float64, c color.Color) {
	if !(rad > 0) {
		return
	}
	r.gc.BeginPath()
	r.gc.ArcTo(x, y, rad, rad, 0, 2*math.Pi)
	r.gc.Close()
	r.gc.SetFillColor(c)
	r.gc.Fill()
}

// Blit implements Surface. Sources of a different size are resampled.
func (r *Raster) Blit(src image.Image) {
	if src == nil {
		return
	}
	dst := r.img.Bounds()
	if src.Bounds().Size() == dst.Size() {
		xdraw.Draw(r.img, dst, src, src.Bounds().Min, xdraw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(r.img, dst, src, src.Bounds(), xdraw.Over, nil)
}

// Snapshot returns a copy of the backing image.
func (r *Raster) Snapshot() *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}
