package mandelbrot

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
	"mandelbrot/gradient"
)

// MaxIterationsLimit caps the iteration count a viewer can ask for.
const MaxIterationsLimit = 1024

type Settings struct {
	logger bslogger.Logger

	Height         float64
	HeightPx       int
	MaxIterations  int
	PanSpeed       float64
	Palette        gradient.Settings
	SmoothColoring bool
	WidthPx        int
	ZoomRate       float64
}

func (s *Settings) String() string {
	output := "{MandelbrotSettings "
	output += fmt.Sprintf("Height: %f ", s.Height)
	output += fmt.Sprintf("Pixels: %dx%d ", s.WidthPx, s.HeightPx)
	output += fmt.Sprintf("MaxIterations: %d ", s.MaxIterations)
	output += fmt.Sprintf("PanSpeed: %f ", s.PanSpeed)
	output += fmt.Sprintf("ZoomRate: %f ", s.ZoomRate)
	output += fmt.Sprintf("SmoothColoring: %t ", s.SmoothColoring)
	output += fmt.Sprintf("Palette: %s}", s.Palette.String())
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("MandelbrotSettings", bslogger.Normal, nil)

	if s.Height <= 0 {
		s.Height = 4.2
	}
	if s.HeightPx <= 0 {
		s.HeightPx = 1080
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = MaxIterationsLimit
	}
	if s.MaxIterations > MaxIterationsLimit {
		s.logger.Infof("Clamping MaxIterations %d to %d", s.MaxIterations, MaxIterationsLimit)
		s.MaxIterations = MaxIterationsLimit
	}
	if s.PanSpeed <= 0 {
		s.PanSpeed = DefaultPanSpeed
	}
	// s.SmoothColoring defaults to false already
	if s.WidthPx <= 0 {
		s.WidthPx = 1920
	}
	if s.ZoomRate <= 0 {
		s.ZoomRate = DefaultZoomRate
	}
	if err := CheckPixels(s.WidthPx, s.HeightPx); err != nil {
		return err
	}

	return s.Palette.Verify()
}

// Navigator builds the initial navigator the settings describe.
func (s *Settings) Navigator() *Navigator {
	n := NewNavigator(s.Height, s.WidthPx, s.HeightPx)
	n.PanSpeed = s.PanSpeed
	n.ZoomRate = s.ZoomRate
	return n
}
