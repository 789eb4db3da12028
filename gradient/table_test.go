package gradient

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

const tolerance = 1e-9

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func sameColor(a, b Color) bool {
	return closeTo(a.R, b.R) && closeTo(a.G, b.G) && closeTo(a.B, b.B) && closeTo(a.A, b.A)
}

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	cyan  = color.RGBA{0, 255, 255, 255}
)

func TestFromEndpointsEndsMatchInputs(t *testing.T) {
	tests := []struct {
		name       string
		start, end color.RGBA
		steps      int
	}{
		{"Two steps", black, white, 2},
		{"Sixteen steps", red, blue, 16},
		{"Translucent", color.RGBA{10, 20, 30, 0}, color.RGBA{200, 100, 50, 255}, 7},
		{"Descending", white, black, 255},
		{"Same color", cyan, cyan, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := FromEndpoints(tt.start, tt.end, tt.steps)
			if err != nil {
				t.Fatalf("FromEndpoints() error = %v", err)
			}
			if table.Steps() != tt.steps {
				t.Fatalf("Steps() = %d, want %d", table.Steps(), tt.steps)
			}
			first, _ := table.At(0)
			last, _ := table.At(tt.steps - 1)
			if !sameColor(first, Normalize(tt.start)) {
				t.Errorf("first = %v, want %v", first, Normalize(tt.start))
			}
			if !sameColor(last, Normalize(tt.end)) {
				t.Errorf("last = %v, want %v", last, Normalize(tt.end))
			}
		})
	}
}

func TestFromEndpointsIsMonotonic(t *testing.T) {
	start := color.RGBA{0, 200, 40, 255}
	end := color.RGBA{255, 10, 40, 0}
	table, err := FromEndpoints(start, end, 32)
	if err != nil {
		t.Fatalf("FromEndpoints() error = %v", err)
	}

	colors := table.Colors()
	for i := 1; i < len(colors); i++ {
		prev, cur := colors[i-1], colors[i]
		if cur.R < prev.R {
			t.Errorf("red decreased at %d: %f < %f", i, cur.R, prev.R)
		}
		if cur.G > prev.G {
			t.Errorf("green increased at %d: %f > %f", i, cur.G, prev.G)
		}
		if !closeTo(cur.B, prev.B) {
			t.Errorf("blue changed at %d: %f != %f", i, cur.B, prev.B)
		}
		if cur.A > prev.A {
			t.Errorf("alpha increased at %d: %f > %f", i, cur.A, prev.A)
		}
	}
}

func TestFromControlPointsKnotsAreExact(t *testing.T) {
	tests := []struct {
		name   string
		colors []color.RGBA
		steps  int
	}{
		{"Three colors five steps", []color.RGBA{black, red, white}, 5},
		{"Four colors seven steps", []color.RGBA{black, red, green, white}, 7},
		{"Six colors sixteen steps", []color.RGBA{black, blue, cyan, red, green, white}, 16},
		{"Six colors eleven steps", []color.RGBA{black, blue, cyan, red, green, white}, 11},
		{"Two colors two steps", []color.RGBA{red, blue}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := FromControlPoints(tt.colors, tt.steps)
			if err != nil {
				t.Fatalf("FromControlPoints() error = %v", err)
			}

			count := len(tt.colors)
			for i, c := range tt.colors {
				// Control point i lands on output j when i/(count-1) == j/(steps-1).
				if (i*(tt.steps-1))%(count-1) != 0 {
					continue
				}
				j := i * (tt.steps - 1) / (count - 1)
				got, err := table.At(j)
				if err != nil {
					t.Fatalf("At(%d) error = %v", j, err)
				}
				if got != Normalize(c) {
					t.Errorf("At(%d) = %v, want exactly %v", j, got, Normalize(c))
				}
			}
		})
	}
}

func TestFromControlPointsInterpolates(t *testing.T) {
	table, err := FromControlPoints([]color.RGBA{black, white}, 3)
	if err != nil {
		t.Fatalf("FromControlPoints() error = %v", err)
	}
	mid, _ := table.At(1)
	want := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	if !sameColor(mid, want) {
		t.Errorf("At(1) = %v, want %v", mid, want)
	}

	table, err = FromControlPoints([]color.RGBA{black, red, white}, 9)
	if err != nil {
		t.Fatalf("FromControlPoints() error = %v", err)
	}
	// Position 0.25 sits halfway between black and red.
	quarter, _ := table.At(2)
	want = Color{R: 0.5, G: 0, B: 0, A: 1}
	if !sameColor(quarter, want) {
		t.Errorf("At(2) = %v, want %v", quarter, want)
	}
	// Position 0.75 sits halfway between red and white.
	threeQuarters, _ := table.At(6)
	want = Color{R: 1, G: 0.5, B: 0.5, A: 1}
	if !sameColor(threeQuarters, want) {
		t.Errorf("At(6) = %v, want %v", threeQuarters, want)
	}
}

func TestFromControlPointsMatchesEndpointsForTwoColors(t *testing.T) {
	a, err := FromControlPoints([]color.RGBA{red, blue}, 10)
	if err != nil {
		t.Fatalf("FromControlPoints() error = %v", err)
	}
	b, err := FromEndpoints(red, blue, 10)
	if err != nil {
		t.Fatalf("FromEndpoints() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		ca, _ := a.At(i)
		cb, _ := b.At(i)
		if !sameColor(ca, cb) {
			t.Errorf("At(%d) control points %v != endpoints %v", i, ca, cb)
		}
	}
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Table, error)
	}{
		{"Endpoints one step", func() (*Table, error) { return FromEndpoints(black, white, 1) }},
		{"Endpoints zero steps", func() (*Table, error) { return FromEndpoints(black, white, 0) }},
		{"Endpoints negative steps", func() (*Table, error) { return FromEndpoints(black, white, -4) }},
		{"Control points one color", func() (*Table, error) { return FromControlPoints([]color.RGBA{black}, 16) }},
		{"Control points no colors", func() (*Table, error) { return FromControlPoints(nil, 16) }},
		{"Control points one step", func() (*Table, error) { return FromControlPoints([]color.RGBA{black, white}, 1) }},
		{"Endpoints too many steps", func() (*Table, error) { return FromEndpoints(black, white, MaxSteps+1) }},
		{"Control points too many steps", func() (*Table, error) { return FromControlPoints([]color.RGBA{black, white}, 1<<40) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := tt.build()
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
			if table != nil {
				t.Errorf("table = %v, want nil", table)
			}
		})
	}
}

func TestAtBounds(t *testing.T) {
	table, err := FromEndpoints(black, white, 4)
	if err != nil {
		t.Fatalf("FromEndpoints() error = %v", err)
	}

	tests := []struct {
		index   int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{3, false},
		{4, true},
		{100, true},
	}
	for _, tt := range tests {
		_, err := table.At(tt.index)
		if tt.wantErr != errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("At(%d) error = %v, wantErr %v", tt.index, err, tt.wantErr)
		}
	}
}

func TestWrap(t *testing.T) {
	table, err := FromControlPoints([]color.RGBA{black, red, white}, 3)
	if err != nil {
		t.Fatalf("FromControlPoints() error = %v", err)
	}

	tests := []struct {
		index int
		want  color.RGBA
	}{
		{0, black},
		{1, red},
		{2, white},
		{3, black},
		{7, red},
		{-1, white},
	}
	for _, tt := range tests {
		if got := table.Wrap(tt.index); got != Normalize(tt.want) {
			t.Errorf("Wrap(%d) = %v, want %v", tt.index, got, Normalize(tt.want))
		}
	}
}

func TestBlend(t *testing.T) {
	table, err := FromControlPoints([]color.RGBA{black, white}, 2)
	if err != nil {
		t.Fatalf("FromControlPoints() error = %v", err)
	}
	got := table.Blend(0, 0.25)
	want := Color{R: 0.25, G: 0.25, B: 0.25, A: 1}
	if !sameColor(got, want) {
		t.Errorf("Blend(0, 0.25) = %v, want %v", got, want)
	}
	// Blending past the last entry wraps to the first.
	got = table.Blend(1, 0.5)
	want = Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	if !sameColor(got, want) {
		t.Errorf("Blend(1, 0.5) = %v, want %v", got, want)
	}
}

func TestColorsIsACopy(t *testing.T) {
	table, _ := FromEndpoints(black, white, 2)
	colors := table.Colors()
	colors[0] = Color{R: 1}
	if got, _ := table.At(0); got != Normalize(black) {
		t.Errorf("table changed through Colors(): At(0) = %v", got)
	}
}

func TestColorNRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 1}
	got := c.NRGBA()
	want := color.NRGBA{R: 255, G: 128, B: 0, A: 255}
	if got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}

	clamped := Color{R: 2, G: -1, B: 0, A: 1}.NRGBA()
	if clamped.R != 255 || clamped.G != 0 {
		t.Errorf("NRGBA() did not clamp: %v", clamped)
	}
}

func TestChannel8(t *testing.T) {
	tests := []struct {
		input    float64
		expected uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{7, 255},
	}

	for _, tt := range tests {
		if got := channel8(tt.input); got != tt.expected {
			t.Errorf("channel8(%f) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}
