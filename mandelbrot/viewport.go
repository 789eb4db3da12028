package mandelbrot

import (
	"errors"
	"fmt"
)

// MaxPixels caps the size of a pixel grid. A 4096x4096 frame is the largest a viewer may ask for.
const MaxPixels = 1 << 24

var ErrInvalidSize = errors.New("invalid pixel grid size")

// Viewport is the rectangle of the complex plane mapped onto a WidthPx x HeightPx pixel grid.
// RStart and IStart are the plane coordinates of pixel (0, 0).
type Viewport struct {
	RStart   float64
	IStart   float64
	Width    float64
	Height   float64
	WidthPx  int
	HeightPx int
}

// Plane converts pixel (x, y) to its point in the complex plane.
func (v Viewport) Plane(x int, y int) complex128 {
	real := v.RStart + v.Width*float64(x)/float64(v.WidthPx)
	imag := v.IStart + v.Height*float64(y)/float64(v.HeightPx)
	return complex(real, imag)
}

// Center is the plane coordinate in the middle of the viewport.
func (v Viewport) Center() (float64, float64) {
	return v.RStart + v.Width/2.0, v.IStart + v.Height/2.0
}

// Bounds returns the real and imaginary extents covered by the viewport.
func (v Viewport) Bounds() (minReal, maxReal, minImag, maxImag float64) {
	return v.RStart, v.RStart + v.Width, v.IStart, v.IStart + v.Height
}

func (v Viewport) String() string {
	minReal, maxReal, minImag, maxImag := v.Bounds()
	output := "{Viewport "
	output += fmt.Sprintf("Real: [%g, %g] ", minReal, maxReal)
	output += fmt.Sprintf("Imag: [%g, %g] ", minImag, maxImag)
	output += fmt.Sprintf("Pixels: %dx%d}", v.WidthPx, v.HeightPx)
	return output
}

// CheckPixels reports whether a widthPx x heightPx grid is positive and within MaxPixels. The
// product is never computed so huge sizes cannot overflow.
func CheckPixels(widthPx int, heightPx int) error {
	if widthPx <= 0 || heightPx <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, widthPx, heightPx)
	}
	if widthPx > MaxPixels/heightPx {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidSize, widthPx, heightPx, MaxPixels)
	}
	return nil
}
