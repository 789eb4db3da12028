package gradient

import (
	"fmt"
	"image/color"
	"math"

	"mandelbrot/misc"
)

// Color holds four normalized channels in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// Normalize converts a palette color given on the 0-255 scale.
func Normalize(c color.RGBA) Color {
	return Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
		A: float64(c.A) / 255.0,
	}
}

// RGBA implements color.Color. Channels are premultiplied by alpha as the interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns the 8 bit non-premultiplied equivalent of c.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: channel8(c.A),
	}
}

func (c Color) String() string {
	return fmt.Sprintf("{Color R: %f G: %f B: %f A: %f}", c.R, c.G, c.B, c.A)
}

func channel8(v float64) uint8 {
	return uint8(math.Round(misc.Clamp(v, 0, 1) * 255))
}

func lerp(c1 Color, c2 Color, fraction float64) Color {
	return Color{
		R: misc.LerpFloat64(c1.R, c2.R, fraction),
		G: misc.LerpFloat64(c1.G, c2.G, fraction),
		B: misc.LerpFloat64(c1.B, c2.B, fraction),
		A: misc.LerpFloat64(c1.A, c2.A, fraction),
	}
}
