// Package gradient builds fixed size color tables by piecewise linear interpolation between
// palette colors and serves constant time lookups into them.
package gradient

import (
	"errors"
	"fmt"
	"image/color"

	"mandelbrot/misc"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ControlPoint anchors a palette color at a position in [0, 1].
type ControlPoint struct {
	Position float64
	Color    color.RGBA
}

// Table is an immutable sequence of Steps() colors.
type Table struct {
	colors []Color
}

// FromEndpoints interpolates steps colors from start to end, both endpoints included.
func FromEndpoints(start color.RGBA, end color.RGBA, steps int) (*Table, error) {
	if steps < 2 || steps > MaxSteps {
		return nil, fmt.Errorf("%w: steps must be in [2, %d], got %d", ErrInvalidArgument, MaxSteps, steps)
	}

	s := [4]float64{float64(start.R), float64(start.G), float64(start.B), float64(start.A)}
	e := [4]float64{float64(end.R), float64(end.G), float64(end.B), float64(end.A)}
	var step [4]float64
	for ch := range step {
		step[ch] = (e[ch] - s[ch]) / float64(steps-1)
	}

	colors := make([]Color, steps)
	for i := 0; i < steps; i++ {
		fi := float64(i)
		colors[i] = Color{
			R: (s[0] + fi*step[0]) / 255.0,
			G: (s[1] + fi*step[1]) / 255.0,
			B: (s[2] + fi*step[2]) / 255.0,
			A: (s[3] + fi*step[3]) / 255.0,
		}
	}
	return &Table{colors: colors}, nil
}

// FromControlPoints spaces colors evenly over [0, 1] and samples steps colors from them.
func FromControlPoints(colors []color.RGBA, steps int) (*Table, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 colors, got %d", ErrInvalidArgument, len(colors))
	}
	if steps < 2 || steps > MaxSteps {
		return nil, fmt.Errorf("%w: steps must be in [2, %d], got %d", ErrInvalidArgument, MaxSteps, steps)
	}

	count := len(colors)
	points := make([]ControlPoint, count)
	for i, c := range colors {
		points[i] = ControlPoint{Position: float64(i) / float64(count-1), Color: c}
	}

	out := make([]Color, steps)
	first, second := 0, 1
	for j := 0; j < steps; j++ {
		p := float64(j) / float64(steps-1)

		// Both p and the control positions only grow with j, so the bracket never moves back.
		for second < count-1 && !(points[first].Position <= p && p <= points[second].Position) {
			first++
			second++
		}

		switch {
		case points[first].Position == p:
			out[j] = Normalize(points[first].Color)
		case points[second].Position == p:
			out[j] = Normalize(points[second].Color)
		default:
			q := misc.MapRange(p, points[first].Position, points[second].Position, 0.0, 1.0)
			out[j] = interpolate(points[first].Color, points[second].Color, q)
		}
	}
	return &Table{colors: out}, nil
}

func interpolate(c1 color.RGBA, c2 color.RGBA, q float64) Color {
	return Color{
		R: misc.LerpFloat64(float64(c1.R), float64(c2.R), q) / 255.0,
		G: misc.LerpFloat64(float64(c1.G), float64(c2.G), q) / 255.0,
		B: misc.LerpFloat64(float64(c1.B), float64(c2.B), q) / 255.0,
		A: misc.LerpFloat64(float64(c1.A), float64(c2.A), q) / 255.0,
	}
}

func (t *Table) Steps() int {
	return len(t.colors)
}

// At returns the color at index i, which must satisfy 0 <= i < Steps().
func (t *Table) At(i int) (Color, error) {
	if i < 0 || i >= len(t.colors) {
		return Color{}, fmt.Errorf("%w: index expected to be in [0, %d), got %d", ErrIndexOutOfRange, len(t.colors), i)
	}
	return t.colors[i], nil
}

// Wrap returns the color at i modulo Steps(). Negative indexes wrap from the end.
func (t *Table) Wrap(i int) Color {
	n := len(t.colors)
	i %= n
	if i < 0 {
		i += n
	}
	return t.colors[i]
}

// Blend mixes Wrap(i) and Wrap(i+1) by fraction.
func (t *Table) Blend(i int, fraction float64) Color {
	return lerp(t.Wrap(i), t.Wrap(i+1), fraction)
}

// Colors returns a copy of the table.
func (t *Table) Colors() []Color {
	colors := make([]Color, len(t.colors))
	copy(colors, t.colors)
	return colors
}
