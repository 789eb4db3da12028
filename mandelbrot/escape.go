// Package mandelbrot evaluates the escape time of points in the complex plane and renders
// viewports of the Mandelbrot set into color buffers.
package mandelbrot

import (
	"math"
	"math/cmplx"

	"mandelbrot/misc"
)

// EscapeRadius is the magnitude past which an orbit is known to diverge.
const EscapeRadius = 2.0

// Result is the 1-based iteration on which an orbit escaped, or Bounded.
type Result int

// Bounded marks an orbit that stayed within EscapeRadius for every iteration allowed. Escape
// counts start at 1, so it never collides with a real count.
const Bounded Result = 0

func (r Result) Escaped() bool {
	return r != Bounded
}

func (r Result) Bounded() bool {
	return r == Bounded
}

var log2 = math.Log(2)

// Iterate applies z = z^2 + c from z = 0 and returns the iteration on which |z| first exceeds
// EscapeRadius, or Bounded when maxIterations pass without that happening.
func Iterate(c complex128, maxIterations int) Result {
	_, result := orbit(c, maxIterations)
	return result
}

// Smooth returns the normalized iteration count of c, which varies continuously between
// neighbouring escape counts. Escaped points are clamped to [1, maxIterations]. Bounded points
// return 0.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func Smooth(c complex128, maxIterations int) float64 {
	z, result := orbit(c, maxIterations)
	if result.Bounded() {
		return 0
	}

	zn := math.Log(cmplx.Abs(z))
	nu := math.Log(zn/log2) / log2
	return misc.Clamp(float64(result)+1-nu, 1, float64(maxIterations))
}

func orbit(c complex128, maxIterations int) (complex128, Result) {
	z := complex(0, 0)
	for i := 1; i <= maxIterations; i++ {
		z = z*z + c
		if cmplx.Abs(z) > EscapeRadius {
			return z, Result(i)
		}
	}
	return z, Bounded
}
