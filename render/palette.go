package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the color set of one theme.
type Palette struct {
	Name       string
	Background color.NRGBA
	Glow       color.NRGBA
	Channel    color.NRGBA
	NodeCore   color.NRGBA
	NodeHalo   color.NRGBA
	Hot        color.NRGBA
	Wash       color.NRGBA
	HoverLink  color.NRGBA
}

// Dark returns the default night palette.
func Dark() Palette {
	return Palette{
		Name:       "dark",
		Background: color.NRGBA{R: 6, G: 10, B: 24, A: 255},
		Glow:       color.NRGBA{R: 80, G: 180, B: 255, A: 255},
		Channel:    color.NRGBA{R: 120, G: 230, B: 255, A: 255},
		NodeCore:   color.NRGBA{R: 220, G: 248, B: 255, A: 255},
		NodeHalo:   color.NRGBA{R: 120, G: 220, B: 255, A: 255},
		Hot:        color.NRGBA{R: 140, G: 240, B: 255, A: 255},
		Wash:       color.NRGBA{R: 120, G: 220, B: 255, A: 255},
		HoverLink:  color.NRGBA{R: 160, G: 240, B: 255, A: 255},
	}
}

// Light returns the day palette: pale background, deeper channel tones.
func Light() Palette {
	return Palette{
		Name:       "light",
		Background: color.NRGBA{R: 244, G: 247, B: 252, A: 255},
		Glow:       color.NRGBA{R: 120, G: 170, B: 230, A: 255},
		Channel:    color.NRGBA{R: 30, G: 110, B: 190, A: 255},
		NodeCore:   color.NRGBA{R: 40, G: 80, B: 140, A: 255},
		NodeHalo:   color.NRGBA{R: 60, G: 130, B: 210, A: 255},
		Hot:        color.NRGBA{R: 0, G: 140, B: 220, A: 255},
		Wash:       color.NRGBA{R: 90, G: 150, B: 220, A: 255},
		HoverLink:  color.NRGBA{R: 20, G: 120, B: 200, A: 255},
	}
}

// PaletteFor returns Dark for dark=true and Light otherwise.
func PaletteFor(dark bool) Palette {
	if dark {
		return Dark()
	}
	return Light()
}

// WithAlpha returns c with its alpha replaced by a in [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = unit8(a)
	return c
}

// Hue converts an HSL hue in degrees at full saturation to a color with
// lightness l and alpha a, both in [0,1].
func Hue(h int, l, a float64) color.NRGBA {
	r, g, b := colorful.Hsl(float64(h%360), 1, clamp01(l)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: unit8(a)}
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func unit8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
