package mandelbrot

import (
	"image"
	"math"

	"mandelbrot/gradient"
)

// Buffer is an owned, row-major grid of colors.
type Buffer struct {
	Height int
	Pix    []gradient.Color
	Width  int
}

func NewBuffer(width int, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Height: height,
		Pix:    make([]gradient.Color, width*height),
		Width:  width,
	}
}

func (b *Buffer) At(x int, y int) gradient.Color {
	return b.Pix[y*b.Width+x]
}

func (b *Buffer) Set(x int, y int, c gradient.Color) {
	b.Pix[y*b.Width+x] = c
}

// Image copies the buffer into an 8 bit image for encoding or display.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetNRGBA(x, y, b.At(x, y).NRGBA())
		}
	}
	return img
}

// RenderBuffer evaluates every pixel of v and colors it with t[count mod t.Steps()].
func RenderBuffer(v Viewport, t *gradient.Table, maxIterations int) *Buffer {
	buffer := NewBuffer(v.WidthPx, v.HeightPx)
	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			count := Iterate(v.Plane(x, y), maxIterations)
			buffer.Set(x, y, t.Wrap(int(count)))
		}
	}
	return buffer
}

// Evaluate returns the iteration value for pixel (x, y) of p: the escape count, or the
// normalized count when p asks for smooth coloring.
func Evaluate(p Params, x int, y int) float64 {
	c := p.Viewport.Plane(x, y)
	if p.SmoothColoring {
		return Smooth(c, p.MaxIterations)
	}
	return float64(Iterate(c, p.MaxIterations))
}

// Colorize maps an iteration value from Evaluate onto t. Every strategy colors through here so
// they all produce the same buffer.
func Colorize(t *gradient.Table, iterations float64, smooth bool) gradient.Color {
	whole, fraction := math.Modf(iterations)
	if !smooth || fraction == 0 {
		return t.Wrap(int(whole))
	}
	return t.Blend(int(whole), fraction)
}
