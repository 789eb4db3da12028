package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/gdamore/tcell/v2"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/session"
	"mandelbrot/terminal"
	"mandelbrot/web"
	"mandelbrot/worker"
)

func main() {
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)

	args, err := parseArguments(os.Args[1:])
	misc.CheckError(err, logger, misc.Fatal)
	logger.Debug(args.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = run(ctx, args, logger)
	if errors.Is(err, context.Canceled) {
		logger.Info("Interrupted")
		return
	}
	misc.CheckError(err, logger, misc.Fatal)
}

func run(ctx context.Context, args arguments, logger bslogger.Logger) error {
	switch args.mode {
	case "render":
		return runRender(ctx, args, logger)
	case "worker":
		return runWorker(ctx, args, logger)
	case "terminal":
		return runTerminal(ctx, args)
	case "web":
		return runWeb(ctx, args, logger)
	default:
		return fmt.Errorf("%w: %q", errUnknownMode, args.mode)
	}
}

func newSession(args arguments) (*session.Session, func() error, error) {
	settings, err := loadSettings(args.settings)
	if err != nil {
		return nil, nil, err
	}
	strategy, closeStrategy, err := newStrategy(args)
	if err != nil {
		return nil, nil, err
	}
	s, err := session.New(settings, strategy)
	if err != nil {
		closeStrategy()
		return nil, nil, err
	}
	return s, closeStrategy, nil
}

func runRender(ctx context.Context, args arguments, logger bslogger.Logger) error {
	s, closeStrategy, err := newSession(args)
	if err != nil {
		return err
	}
	defer closeStrategy()

	script := session.Script{RenderFirst: true}
	if args.script != "" {
		if script, err = session.LoadScript(args.script); err != nil {
			return err
		}
	}
	if err := ensureDirectory(args.output); err != nil {
		return err
	}

	total := script.FrameCount()
	startTime := time.Now()
	err = s.Play(ctx, script, func(number int, buffer *mandelbrot.Buffer) error {
		if err := writeFrame(args.output, number, buffer); err != nil {
			return err
		}
		logger.Infof("Saved image to %s [%d/%d]", framePath(args.output, number), number+1, total)
		return nil
	})
	if err != nil {
		return err
	}
	logger.Infof("Rendered %d frames in %s", total, time.Since(startTime))
	return nil
}

func runWorker(ctx context.Context, args arguments, logger bslogger.Logger) error {
	address := args.address
	if address == "" {
		port, err := misc.GetFreePort()
		if err != nil {
			return err
		}
		logger.Debugf("Found free port: %d", port)
		address = misc.LocalAddressWithPort(port)
	}

	settings, err := worker.NewSettings(args.workerSettings, worker.Settings{Address: address})
	if err != nil {
		return err
	}
	w, err := worker.NewWorker(settings)
	if err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

func runTerminal(ctx context.Context, args arguments) error {
	s, closeStrategy, err := newSession(args)
	if err != nil {
		return err
	}
	defer closeStrategy()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	viewer, err := terminal.NewViewer(screen, s)
	if err != nil {
		return err
	}
	return viewer.Run(ctx)
}

func runWeb(ctx context.Context, args arguments, logger bslogger.Logger) error {
	settings, err := loadSettings(args.settings)
	if err != nil {
		return err
	}
	strategy, closeStrategy, err := newStrategy(args)
	if err != nil {
		return err
	}
	defer closeStrategy()

	address := args.address
	if address == "" {
		address = ":8080"
	}
	server := web.NewServer(address, web.Handler(settings, strategy))

	errs := make(chan error, 1)
	go func() {
		logger.Infof("Listening on http://%s", address)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
