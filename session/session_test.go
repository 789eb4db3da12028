package session

import (
	"context"
	"errors"
	"math"
	"testing"

	"mandelbrot/gradient"
	"mandelbrot/mandelbrot"
	"mandelbrot/task"
	"mandelbrot/worker"
)

func testSettings() mandelbrot.Settings {
	return mandelbrot.Settings{
		HeightPx:      9,
		MaxIterations: 64,
		WidthPx:       16,
	}
}

func newSession(t *testing.T, strategy mandelbrot.Strategy) *Session {
	t.Helper()
	s, err := New(testSettings(), strategy)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestApplyIterations(t *testing.T) {
	tests := []struct {
		name    string
		actions []Kind
		want    int
	}{
		{"Up is capped", []Kind{IterationsUp}, mandelbrot.MaxIterationsLimit},
		{"Down", []Kind{IterationsDown, IterationsDown}, mandelbrot.MaxIterationsLimit - 2},
		{"Toggle to zero", []Kind{IterationsToggle}, 0},
		{"Toggle back", []Kind{IterationsToggle, IterationsToggle}, mandelbrot.MaxIterationsLimit},
		{"Down floors at zero", []Kind{IterationsToggle, IterationsDown}, 0},
		{"Up from zero", []Kind{IterationsToggle, IterationsUp, IterationsUp}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := testSettings()
			settings.MaxIterations = mandelbrot.MaxIterationsLimit
			s, err := New(settings, nil)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			for _, kind := range tt.actions {
				if err := s.Apply(Action{Kind: kind}); err != nil {
					t.Fatalf("Apply(%s) error = %v", kind, err)
				}
			}
			if got := s.Status().MaxIterations; got != tt.want {
				t.Errorf("MaxIterations = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyNavigation(t *testing.T) {
	s := newSession(t, nil)
	reference := testSettings()
	reference.Verify()
	n := reference.Navigator()

	actions := []Action{
		{Kind: Pan, X: 1, Y: -1, Elapsed: 0.5},
		{Kind: ZoomIn, Elapsed: 2},
		{Kind: Center, X: 3, Y: 7},
		{Kind: Scroll, Y: 2},
		{Kind: ZoomOut, Elapsed: 0.5},
		{Kind: Resize, X: 32, Y: 9},
	}
	for _, a := range actions {
		if err := s.Apply(a); err != nil {
			t.Fatalf("Apply(%s) error = %v", a.String(), err)
		}
	}
	n.Pan(1, -1, 0.5)
	n.ZoomIn(2)
	n.CenterOn(3, 7)
	n.Scroll(2)
	n.ZoomOut(0.5)
	if err := n.Resize(32, 9); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	if got := s.Params().Viewport; got != n.Viewport() {
		t.Errorf("Viewport = %s, want %s", got.String(), n.Viewport().String())
	}
	status := s.Status()
	if status.WidthPx != 32 || status.ZoomAmount != n.ZoomAmount() {
		t.Errorf("Status() = %s", status.String())
	}

	if err := s.Apply(Action{Kind: Reset}); err != nil {
		t.Fatalf("Apply(reset) error = %v", err)
	}
	if s.Status().ZoomAmount != 0 {
		t.Errorf("ZoomAmount after reset = %f", s.Status().ZoomAmount)
	}
}

func TestApplyRejectsHugeResize(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{"Overflowing grid", Action{Kind: Resize, X: 1 << 40, Y: 1 << 40}},
		{"Beyond int range", Action{Kind: Resize, X: 1e30, Y: 4}},
		{"Too many pixels", Action{Kind: Resize, X: 8192, Y: 8192}},
		{"Not a number", Action{Kind: Resize, X: math.NaN(), Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, mandelbrot.Sequential{})
			before := s.Params()
			if err := s.Apply(tt.action); !errors.Is(err, mandelbrot.ErrInvalidSize) {
				t.Errorf("Apply(%s) error = %v, want ErrInvalidSize", tt.action.String(), err)
			}
			if s.Params() != before {
				t.Errorf("Apply(%s) changed the params", tt.action.String())
			}

			buffer, err := s.Render(context.Background())
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if buffer.Width != before.Viewport.WidthPx || buffer.Height != before.Viewport.HeightPx {
				t.Errorf("buffer = %dx%d, want %dx%d", buffer.Width, buffer.Height, before.Viewport.WidthPx, before.Viewport.HeightPx)
			}
		})
	}
}

func TestApplyUnknownAction(t *testing.T) {
	s := newSession(t, nil)
	before := s.Params()
	if err := s.Apply(Action{Kind: "teleport"}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Apply(teleport) error = %v, want ErrUnknownAction", err)
	}
	if s.Params() != before {
		t.Error("unknown action changed the session")
	}
}

func TestRenderStrategiesAgree(t *testing.T) {
	sequential := newSession(t, nil)
	parallel := newSession(t, worker.NewPool(3, task.Tile))

	for _, s := range []*Session{sequential, parallel} {
		s.Apply(Action{Kind: ZoomIn, Elapsed: 1})
		s.Apply(Action{Kind: Pan, X: -1, Elapsed: 0.2})
	}

	want, err := sequential.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got, err := parallel.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel %d = %v, want %v", i, got.Pix[i], want.Pix[i])
		}
	}
	if sequential.Status().Frame != 1 {
		t.Errorf("Frame = %d, want 1", sequential.Status().Frame)
	}
}

func TestSetPalette(t *testing.T) {
	s := newSession(t, nil)
	s.Apply(Action{Kind: IterationsToggle})

	if err := s.SetPalette(gradient.Settings{Start: "red", End: "blue", Steps: 4}); err != nil {
		t.Fatalf("SetPalette() error = %v", err)
	}
	buffer, err := s.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// With no iterations every point is bounded and takes the first color.
	want := gradient.Color{R: 1, G: 0, B: 0, A: 1}
	for i, c := range buffer.Pix {
		if c != want {
			t.Fatalf("pixel %d = %v, want %v", i, c, want)
		}
	}

	if err := s.SetPalette(gradient.Settings{Colors: []string{"not-a-color", "blue"}}); !errors.Is(err, gradient.ErrUnknownColor) {
		t.Errorf("SetPalette(bad color) error = %v, want ErrUnknownColor", err)
	}
	buffer, _ = s.Render(context.Background())
	if buffer.Pix[0] != want {
		t.Errorf("failed SetPalette replaced the table")
	}
}

func TestRenderFailureKeepsFrameCount(t *testing.T) {
	s := newSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Render(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if s.Status().Frame != 0 {
		t.Errorf("Frame = %d, want 0", s.Status().Frame)
	}
}
