package session

import (
	"context"
	"fmt"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
)

// Step applies its action Frames times, rendering after each application.
type Step struct {
	Action
	Frames int `json:"frames,omitempty"`
}

// Script is a recorded sequence of inputs, played back to produce an animation.
type Script struct {
	RenderFirst bool   `json:"renderFirst"`
	Steps       []Step `json:"steps"`
}

func LoadScript(fileName string) (Script, error) {
	script := Script{}
	if err := misc.ReadJSON(fileName, &script); err != nil {
		return script, err
	}
	return script, script.Verify()
}

// Verify defaults Frames to 1 and rejects unknown actions before anything is rendered.
func (sc *Script) Verify() error {
	for i := range sc.Steps {
		if sc.Steps[i].Frames <= 0 {
			sc.Steps[i].Frames = 1
		}
		switch sc.Steps[i].Kind {
		case Pan, ZoomIn, ZoomOut, Scroll, Reset, Center, IterationsUp, IterationsDown, IterationsToggle, Resize:
		default:
			return fmt.Errorf("step %d: %w: %q", i, ErrUnknownAction, sc.Steps[i].Kind)
		}
	}
	return nil
}

// FrameCount is the number of frames Play hands to its callback.
func (sc *Script) FrameCount() int {
	count := 0
	if sc.RenderFirst {
		count++
	}
	for _, step := range sc.Steps {
		if step.Frames <= 0 {
			count++
			continue
		}
		count += step.Frames
	}
	return count
}

// Play runs the script against the session and hands every rendered frame to frame, numbered
// from 0. It stops at the first error.
func (s *Session) Play(ctx context.Context, sc Script, frame func(number int, buffer *mandelbrot.Buffer) error) error {
	if err := sc.Verify(); err != nil {
		return err
	}

	number := 0
	render := func() error {
		buffer, err := s.Render(ctx)
		if err != nil {
			return err
		}
		err = frame(number, buffer)
		number++
		return err
	}

	if sc.RenderFirst {
		if err := render(); err != nil {
			return err
		}
	}
	for _, step := range sc.Steps {
		for i := 0; i < step.Frames; i++ {
			if err := s.Apply(step.Action); err != nil {
				return err
			}
			if err := render(); err != nil {
				return err
			}
		}
	}
	return nil
}
