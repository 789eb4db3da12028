package mandelbrot

import (
	"errors"
	"testing"
)

func TestSettingsVerify(t *testing.T) {
	tests := []struct {
		name              string
		settings          Settings
		wantMaxIterations int
		wantWidthPx       int
	}{
		{"Defaults", Settings{}, MaxIterationsLimit, 1920},
		{"Keeps values", Settings{MaxIterations: 100, WidthPx: 64}, 100, 64},
		{"Clamps iterations", Settings{MaxIterations: 5000}, MaxIterationsLimit, 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.settings
			if err := s.Verify(); err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if s.MaxIterations != tt.wantMaxIterations {
				t.Errorf("MaxIterations = %d, want %d", s.MaxIterations, tt.wantMaxIterations)
			}
			if s.WidthPx != tt.wantWidthPx {
				t.Errorf("WidthPx = %d, want %d", s.WidthPx, tt.wantWidthPx)
			}
			if s.Height != 4.2 || s.HeightPx != 1080 {
				t.Errorf("Height = %f HeightPx = %d, want 4.2 and 1080", s.Height, s.HeightPx)
			}
			if s.PanSpeed != DefaultPanSpeed || s.ZoomRate != DefaultZoomRate {
				t.Errorf("PanSpeed = %f ZoomRate = %f", s.PanSpeed, s.ZoomRate)
			}
			if _, err := s.Palette.Build(); err != nil {
				t.Errorf("Palette.Build() error = %v", err)
			}
		})
	}
}

func TestSettingsVerifyRejectsHugeGrid(t *testing.T) {
	s := Settings{WidthPx: 1 << 40, HeightPx: 1 << 40}
	if err := s.Verify(); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Verify() error = %v, want ErrInvalidSize", err)
	}
}

func TestSettingsNavigator(t *testing.T) {
	s := Settings{Height: 2, WidthPx: 40, HeightPx: 20, PanSpeed: 3, ZoomRate: 2}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	n := s.Navigator()
	v := n.Viewport()
	if v.Width != 4 || v.Height != 2 || v.WidthPx != 40 || v.HeightPx != 20 {
		t.Errorf("Viewport() = %s", v.String())
	}
	if n.PanSpeed != 3 || n.ZoomRate != 2 {
		t.Errorf("PanSpeed = %f ZoomRate = %f, want 3 and 2", n.PanSpeed, n.ZoomRate)
	}
}
