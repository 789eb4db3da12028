package terminal

import (
	"context"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/gdamore/tcell/v2"
	"mandelbrot/session"
)

// KeyElapsed is how long, in seconds, one key press holds a pan or zoom input.
const KeyElapsed = 0.1

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

// Viewer drives a session from terminal input.
type Viewer struct {
	logger  bslogger.Logger
	screen  tcell.Screen
	session *session.Session
}

// NewViewer wraps an initialized screen. The session is resized to fit the screen.
func NewViewer(screen tcell.Screen, s *session.Session) (*Viewer, error) {
	v := &Viewer{
		logger:  bslogger.NewLogger("Terminal", bslogger.Normal, nil),
		screen:  screen,
		session: s,
	}
	if err := v.fit(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Viewer) fit() error {
	width, height := PixelSize(v.screen.Size())
	return v.session.Apply(session.Action{Kind: session.Resize, X: float64(width), Y: float64(height)})
}

// Redraw renders the current frame and shows it with its status line.
func (v *Viewer) Redraw(ctx context.Context) error {
	buffer, err := v.session.Render(ctx)
	if err != nil {
		return err
	}
	_, rows := v.screen.Size()
	Draw(v.screen, buffer)
	DrawText(v.screen, rows-1, v.session.Status().String(), statusStyle)
	v.screen.Show()
	return nil
}

// action maps an event to a session input. ok is false for events the viewer ignores.
func (v *Viewer) action(ev tcell.Event) (a session.Action, ok bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		// Buffer row 0 is drawn at the top, so moving up means lowering the imaginary start.
		switch ev.Key() {
		case tcell.KeyUp:
			return session.Action{Kind: session.Pan, Y: -1, Elapsed: KeyElapsed}, true
		case tcell.KeyDown:
			return session.Action{Kind: session.Pan, Y: 1, Elapsed: KeyElapsed}, true
		case tcell.KeyLeft:
			return session.Action{Kind: session.Pan, X: -1, Elapsed: KeyElapsed}, true
		case tcell.KeyRight:
			return session.Action{Kind: session.Pan, X: 1, Elapsed: KeyElapsed}, true
		case tcell.KeyRune:
		default:
			return session.Action{}, false
		}

		switch ev.Rune() {
		case 'w':
			return session.Action{Kind: session.Pan, Y: -1, Elapsed: KeyElapsed}, true
		case 's':
			return session.Action{Kind: session.Pan, Y: 1, Elapsed: KeyElapsed}, true
		case 'a':
			return session.Action{Kind: session.Pan, X: -1, Elapsed: KeyElapsed}, true
		case 'd':
			return session.Action{Kind: session.Pan, X: 1, Elapsed: KeyElapsed}, true
		case '+', '=':
			return session.Action{Kind: session.ZoomIn, Elapsed: KeyElapsed}, true
		case '-':
			return session.Action{Kind: session.ZoomOut, Elapsed: KeyElapsed}, true
		case ' ':
			return session.Action{Kind: session.Reset}, true
		case 'x':
			return session.Action{Kind: session.IterationsUp}, true
		case 'z':
			return session.Action{Kind: session.IterationsDown}, true
		case 'm':
			return session.Action{Kind: session.IterationsToggle}, true
		}

	case *tcell.EventMouse:
		column, row := ev.Position()
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.Button1 != 0:
			// Aim at the middle of the cell, which holds pixel rows 2*row and 2*row+1.
			return session.Action{Kind: session.Center, X: float64(column) + 0.5, Y: float64(row*2 + 1)}, true
		case buttons&tcell.WheelUp != 0:
			return session.Action{Kind: session.Scroll, Y: 1}, true
		case buttons&tcell.WheelDown != 0:
			return session.Action{Kind: session.Scroll, Y: -1}, true
		}

	case *tcell.EventResize:
		width, height := PixelSize(ev.Size())
		return session.Action{Kind: session.Resize, X: float64(width), Y: float64(height)}, true
	}

	return session.Action{}, false
}

func isQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}

// HandleEvent applies one event and redraws when it changed anything.
func (v *Viewer) HandleEvent(ctx context.Context, ev tcell.Event) (quit bool, err error) {
	if isQuit(ev) {
		return true, nil
	}

	a, ok := v.action(ev)
	if !ok {
		return false, nil
	}
	if a.Kind == session.Resize {
		v.screen.Sync()
	}
	if err := v.session.Apply(a); err != nil {
		return false, err
	}
	return false, v.Redraw(ctx)
}

// Run draws the first frame and handles events until the user quits, the screen is finalized or
// ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	defer v.screen.DisableMouse()

	if err := v.Redraw(ctx); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, more := <-events:
			if !more {
				return nil
			}
			quit, err := v.HandleEvent(ctx, ev)
			if err != nil {
				v.logger.Warningf("Handling event - %s", err)
				return err
			}
			if quit {
				v.logger.Info("Quitting")
				return nil
			}
		}
	}
}
