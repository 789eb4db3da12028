// Package session holds the state of one interactive viewer: where it is looking, how it colors
// and how it renders.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
	"mandelbrot/gradient"
	"mandelbrot/mandelbrot"
)

// Status is the read-out a viewer shows next to the image.
type Status struct {
	Frame          uint    `json:"frame"`
	HeightPx       int     `json:"heightPx"`
	MaxImag        float64 `json:"maxImag"`
	MaxIterations  int     `json:"maxIterations"`
	MaxReal        float64 `json:"maxReal"`
	MinImag        float64 `json:"minImag"`
	MinReal        float64 `json:"minReal"`
	SmoothColoring bool    `json:"smoothColoring"`
	WidthPx        int     `json:"widthPx"`
	ZoomAmount     float64 `json:"zoomAmount"`
}

func (s Status) String() string {
	output := fmt.Sprintf("real [%g, %g] ", s.MinReal, s.MaxReal)
	output += fmt.Sprintf("imag [%g, %g] ", s.MinImag, s.MaxImag)
	output += fmt.Sprintf("iterations %d ", s.MaxIterations)
	output += fmt.Sprintf("zoom %.2f", s.ZoomAmount)
	return output
}

// Session is safe for concurrent use. Inputs applied while a frame renders affect the next frame
// only.
type Session struct {
	frame               uint
	logger              bslogger.Logger
	maxIterations       int
	mutex               sync.Mutex
	navigator           *mandelbrot.Navigator
	nextIterationSwitch int
	smoothColoring      bool
	strategy            mandelbrot.Strategy
	table               *gradient.Table
}

// New verifies settings and builds the session's table. A nil strategy renders sequentially.
func New(settings mandelbrot.Settings, strategy mandelbrot.Strategy) (*Session, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	table, err := settings.Palette.Build()
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		strategy = mandelbrot.Sequential{}
	}

	return &Session{
		logger:         bslogger.NewLogger("Session", bslogger.Normal, nil),
		maxIterations:  settings.MaxIterations,
		navigator:      settings.Navigator(),
		smoothColoring: settings.SmoothColoring,
		strategy:       strategy,
		table:          table,
	}, nil
}

// Apply mutates the session for one input. Nothing is rendered.
func (s *Session) Apply(a Action) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch a.Kind {
	case Pan:
		s.navigator.Pan(a.X, a.Y, a.Elapsed)
	case ZoomIn:
		s.navigator.ZoomIn(a.Elapsed)
	case ZoomOut:
		s.navigator.ZoomOut(a.Elapsed)
	case Scroll:
		s.navigator.Scroll(a.Y)
	case Reset:
		s.navigator.Reset()
	case Center:
		s.navigator.CenterOn(a.X, a.Y)
	case IterationsUp:
		if s.maxIterations < mandelbrot.MaxIterationsLimit {
			s.maxIterations++
		}
	case IterationsDown:
		if s.maxIterations > 0 {
			s.maxIterations--
		}
	case IterationsToggle:
		if s.nextIterationSwitch == 0 {
			s.maxIterations = 0
			s.nextIterationSwitch = mandelbrot.MaxIterationsLimit
		} else {
			s.maxIterations = mandelbrot.MaxIterationsLimit
			s.nextIterationSwitch = 0
		}
	case Resize:
		// Anything past MaxPixels (or NaN) is rejected before it is converted to an int.
		if !(a.X <= mandelbrot.MaxPixels && a.Y <= mandelbrot.MaxPixels) {
			return fmt.Errorf("%w: %gx%g", mandelbrot.ErrInvalidSize, a.X, a.Y)
		}
		if err := s.navigator.Resize(int(a.X), int(a.Y)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}

	s.logger.Debugf("Applied %s", a.String())
	return nil
}

// Params snapshots what the next frame will be rendered from.
func (s *Session) Params() mandelbrot.Params {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.params()
}

func (s *Session) params() mandelbrot.Params {
	return mandelbrot.Params{
		MaxIterations:  s.maxIterations,
		SmoothColoring: s.smoothColoring,
		Viewport:       s.navigator.Viewport(),
	}
}

// Render regenerates the frame for the current state and waits for it.
func (s *Session) Render(ctx context.Context) (*mandelbrot.Buffer, error) {
	s.mutex.Lock()
	params := s.params()
	table := s.table
	strategy := s.strategy
	s.mutex.Unlock()

	buffer, err := mandelbrot.Render(ctx, strategy, params, table)
	if err != nil {
		s.logger.Warningf("Rendering frame - %s", err)
		return nil, err
	}

	s.mutex.Lock()
	s.frame++
	s.mutex.Unlock()
	return buffer, nil
}

// SetPalette rebuilds the gradient table. On error the previous table is kept.
func (s *Session) SetPalette(palette gradient.Settings) error {
	if err := palette.Verify(); err != nil {
		return err
	}
	table, err := palette.Build()
	if err != nil {
		return err
	}

	s.mutex.Lock()
	s.table = table
	s.mutex.Unlock()
	s.logger.Infof("Palette set to %s", palette.String())
	return nil
}

// SetSmoothColoring switches between banded and smooth coloring.
func (s *Session) SetSmoothColoring(smooth bool) {
	s.mutex.Lock()
	s.smoothColoring = smooth
	s.mutex.Unlock()
}

func (s *Session) Status() Status {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	v := s.navigator.Viewport()
	minReal, maxReal, minImag, maxImag := v.Bounds()
	return Status{
		Frame:          s.frame,
		HeightPx:       v.HeightPx,
		MaxImag:        maxImag,
		MaxIterations:  s.maxIterations,
		MaxReal:        maxReal,
		MinImag:        minImag,
		MinReal:        minReal,
		SmoothColoring: s.smoothColoring,
		WidthPx:        v.WidthPx,
		ZoomAmount:     s.navigator.ZoomAmount(),
	}
}
