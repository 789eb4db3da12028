package session

import (
	"errors"
	"fmt"
)

var ErrUnknownAction = errors.New("unknown action")

// Kind names a viewer input.
type Kind string

const (
	Pan              Kind = "pan"
	ZoomIn           Kind = "zoom-in"
	ZoomOut          Kind = "zoom-out"
	Scroll           Kind = "scroll"
	Reset            Kind = "reset"
	Center           Kind = "center"
	IterationsUp     Kind = "iterations-up"
	IterationsDown   Kind = "iterations-down"
	IterationsToggle Kind = "iterations-toggle"
	Resize           Kind = "resize"
)

// Action is one viewer input. X and Y carry the pan direction, the scroll amount (Y), the clicked
// pixel or the new pixel size, depending on Kind. Elapsed is the time in seconds the input was
// held, used by pan and zoom.
type Action struct {
	Elapsed float64 `json:"elapsed,omitempty"`
	Kind    Kind    `json:"kind"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
}

func (a Action) String() string {
	return fmt.Sprintf("{Action Kind: %s X: %f Y: %f Elapsed: %f}", a.Kind, a.X, a.Y, a.Elapsed)
}
