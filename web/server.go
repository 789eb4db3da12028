// Package web serves a session per websocket connection. Every request is answered with a JSON
// text message carrying the status, followed by a binary message with the frame as a PNG when the
// request rendered one.
package web

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"net/http"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"mandelbrot/gradient"
	"mandelbrot/mandelbrot"
	"mandelbrot/session"
)

// Request is one message from the browser. An empty Kind re-renders without any input.
type Request struct {
	session.Action
	Palette *gradient.Settings `json:"palette,omitempty"`
	Smooth  *bool              `json:"smooth,omitempty"`
}

type Reply struct {
	Error  string         `json:"error,omitempty"`
	Status session.Status `json:"status"`
}

type server struct {
	logger   bslogger.Logger
	settings mandelbrot.Settings
	strategy mandelbrot.Strategy
}

// Handler serves the viewer page on / and the websocket on /ws. Every connection gets its own
// session built from settings. All sessions share strategy.
func Handler(settings mandelbrot.Settings, strategy mandelbrot.Strategy) http.Handler {
	s := &server{
		logger:   bslogger.NewLogger("Web", bslogger.Normal, nil),
		settings: settings,
		strategy: strategy,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWebsocket)
	mux.HandleFunc("/", s.serveIndex)
	return mux
}

func NewServer(address string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (s *server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}

func (s *server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warningf("Accepting websocket - %s", err)
		return
	}
	defer c.CloseNow()

	viewer, err := session.New(s.settings, s.strategy)
	if err != nil {
		s.logger.Errorf("Creating session - %s", err)
		c.Close(websocket.StatusInternalError, "session")
		return
	}
	s.logger.Infof("Viewer connected from %s", r.RemoteAddr)

	ctx := r.Context()
	if err := s.reply(ctx, c, viewer, nil); err != nil {
		s.logger.Warningf("Sending first frame - %s", err)
		return
	}

	for {
		var request Request
		if err := wsjson.Read(ctx, c, &request); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				s.logger.Infof("Viewer disconnected from %s", r.RemoteAddr)
				return
			}
			s.logger.Warningf("Reading request - %s", err)
			return
		}

		if err := s.reply(ctx, c, viewer, apply(viewer, request)); err != nil {
			s.logger.Warningf("Replying - %s", err)
			return
		}
	}
}

func apply(viewer *session.Session, request Request) error {
	if request.Palette != nil {
		if err := viewer.SetPalette(*request.Palette); err != nil {
			return err
		}
	}
	if request.Smooth != nil {
		viewer.SetSmoothColoring(*request.Smooth)
	}
	if request.Kind == "" {
		return nil
	}
	return viewer.Apply(request.Action)
}

// reply renders unless applyErr is set and sends the outcome.
func (s *server) reply(ctx context.Context, c *websocket.Conn, viewer *session.Session, applyErr error) error {
	if applyErr != nil {
		return wsjson.Write(ctx, c, Reply{Error: applyErr.Error(), Status: viewer.Status()})
	}

	buffer, err := viewer.Render(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return wsjson.Write(ctx, c, Reply{Error: err.Error(), Status: viewer.Status()})
	}

	image := bytes.Buffer{}
	if err := png.Encode(&image, buffer.Image()); err != nil {
		return err
	}
	if err := wsjson.Write(ctx, c, Reply{Status: viewer.Status()}); err != nil {
		return err
	}
	return c.Write(ctx, websocket.MessageBinary, image.Bytes())
}
