package mandelbrot

import (
	"math"
	"testing"
)

func TestIterate(t *testing.T) {
	tests := []struct {
		name          string
		c             complex128
		maxIterations int
		want          Result
	}{
		{"Origin is bounded", 0, 100, Bounded},
		{"Origin with one iteration", 0, 1, Bounded},
		{"Origin with large cap", 0, 5000, Bounded},
		{"Minus one cycles", -1, 200, Bounded},
		{"Minus two stays on the boundary", -2, 200, Bounded},
		{"Three escapes at once", 3, 100, 1},
		{"Far point escapes at once", complex(10, -10), 100, 1},
		{"Just outside the radius", complex(0, 2.01), 100, 1},
		{"One escapes on the third step", 1, 100, 3},
		{"Imaginary unit is bounded", complex(0, 1), 500, Bounded},
		{"Zero cap never iterates", 3, 0, Bounded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Iterate(tt.c, tt.maxIterations); got != tt.want {
				t.Errorf("Iterate(%v, %d) = %d, want %d", tt.c, tt.maxIterations, got, tt.want)
			}
		})
	}
}

func TestIterateOutsideRadiusEscapesFirst(t *testing.T) {
	for angle := 0.0; angle < 2*math.Pi; angle += 0.1 {
		c := complex(2.5*math.Cos(angle), 2.5*math.Sin(angle))
		if got := Iterate(c, 50); got != 1 {
			t.Errorf("Iterate(%v) = %d, want 1", c, got)
		}
	}
}

func TestResult(t *testing.T) {
	if !Bounded.Bounded() || Bounded.Escaped() {
		t.Errorf("Bounded reports Bounded() %t Escaped() %t", Bounded.Bounded(), Bounded.Escaped())
	}
	r := Result(7)
	if r.Bounded() || !r.Escaped() {
		t.Errorf("Result(7) reports Bounded() %t Escaped() %t", r.Bounded(), r.Escaped())
	}
}

func TestSmooth(t *testing.T) {
	if got := Smooth(0, 100); got != 0 {
		t.Errorf("Smooth(0) = %f, want 0", got)
	}

	// Far away points escape with a huge magnitude and clamp to 1.
	if got := Smooth(complex(1e6, 0), 100); got != 1 {
		t.Errorf("Smooth(1e6) = %f, want 1", got)
	}

	// Smooth stays within one iteration of the escape count around the set boundary.
	for _, c := range []complex128{complex(0.3, 0.5), complex(-0.75, 0.1), complex(0.26, 0)} {
		count := Iterate(c, 1000)
		if count.Bounded() {
			continue
		}
		s := Smooth(c, 1000)
		if s < 1 || s > float64(count)+1 {
			t.Errorf("Smooth(%v) = %f, escape count %d", c, s, count)
		}
	}
}

func TestSmoothStaysInRange(t *testing.T) {
	const maxIterations = 6
	for x := -2.5; x <= 1.5; x += 0.05 {
		for y := -1.5; y <= 1.5; y += 0.05 {
			c := complex(x, y)
			if Iterate(c, maxIterations).Bounded() {
				continue
			}
			if s := Smooth(c, maxIterations); s < 1 || s > maxIterations {
				t.Fatalf("Smooth(%v, %d) = %f, want within [1, %d]", c, maxIterations, s, maxIterations)
			}
		}
	}
}
