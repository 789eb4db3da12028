package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"mandelbrot/coordinator"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/task"
	"mandelbrot/worker"
)

var (
	errUnknownMode       = errors.New("unknown mode")
	errUnknownStrategy   = errors.New("unknown strategy")
	errUnknownGeneration = errors.New("unknown task generation")
)

type arguments struct {
	address             string
	coordinatorSettings string
	generation          string
	mode                string
	output              string
	script              string
	settings            string
	strategy            string
	workerAddresses     string
	workerSettings      string
	workers             int
}

func parseArguments(args []string) (arguments, error) {
	a := arguments{}
	flags := flag.NewFlagSet("mandelbrot", flag.ContinueOnError)
	flags.StringVar(&a.address, "address", "", "Address to serve on in worker and web mode")
	flags.StringVar(&a.coordinatorSettings, "coordinatorSettings", "", "Json file with the coordinator settings, overriding -generation and -workerAddresses")
	flags.StringVar(&a.generation, "generation", "row", "How frames are cut into tasks: row, column, image or tile")
	flags.StringVar(&a.mode, "mode", "render", "What to run: render, worker, terminal or web")
	flags.StringVar(&a.output, "output", "frames", "Directory render mode writes png files to")
	flags.StringVar(&a.script, "script", "", "Json file with the inputs render mode plays back")
	flags.StringVar(&a.settings, "settings", "", "Json file with the mandelbrot settings")
	flags.StringVar(&a.strategy, "strategy", "sequential", "How frames are rendered: sequential, parallel or remote")
	flags.StringVar(&a.workerAddresses, "workerAddresses", "", "Comma separated worker addresses for the remote strategy")
	flags.StringVar(&a.workerSettings, "workerSettings", "", "Json file with the worker settings, overriding -address")
	flags.IntVar(&a.workers, "workers", 0, "Goroutines for the parallel strategy, 0 for one per cpu")
	if err := flags.Parse(args); err != nil {
		return a, err
	}
	return a, nil
}

func (a arguments) String() string {
	output := "\nArguments\n"
	output += fmt.Sprintf("Mode: %s\n", a.mode)
	output += fmt.Sprintf("Strategy: %s\n", a.strategy)
	output += fmt.Sprintf("Generation: %s\n", a.generation)
	output += fmt.Sprintf("Settings: %s\n", a.settings)
	output += fmt.Sprintf("Script: %s\n", a.script)
	output += fmt.Sprintf("Output: %s\n", a.output)
	output += fmt.Sprintf("Address: %s\n", a.address)
	output += fmt.Sprintf("Workers: %d\n", a.workers)
	output += fmt.Sprintf("Worker Addresses: %s\n", a.workerAddresses)
	output += fmt.Sprintf("Coordinator Settings: %s\n", a.coordinatorSettings)
	output += fmt.Sprintf("Worker Settings: %s\n", a.workerSettings)
	return output
}

func parseGeneration(name string) (task.Generation, error) {
	for g := task.Row; g <= task.Tile; g++ {
		if strings.EqualFold(name, g.String()) {
			return g, nil
		}
	}
	return task.Row, fmt.Errorf("%w: %q", errUnknownGeneration, name)
}

func splitAddresses(addresses string) []string {
	var out []string
	for _, address := range strings.Split(addresses, ",") {
		if address = strings.TrimSpace(address); address != "" {
			out = append(out, address)
		}
	}
	return out
}

func loadSettings(fileName string) (mandelbrot.Settings, error) {
	settings := mandelbrot.Settings{}
	if err := misc.ReadJSON(fileName, &settings); err != nil {
		return settings, err
	}
	return settings, settings.Verify()
}

// newStrategy builds the strategy a picks. The returned close function releases whatever the
// strategy holds on to.
func newStrategy(a arguments) (mandelbrot.Strategy, func() error, error) {
	noop := func() error { return nil }

	generation, err := parseGeneration(a.generation)
	if err != nil {
		return nil, noop, err
	}

	switch a.strategy {
	case "sequential":
		return mandelbrot.Sequential{}, noop, nil
	case "parallel":
		return worker.NewPool(a.workers, generation), noop, nil
	case "remote":
		settings, err := coordinator.NewSettings(a.coordinatorSettings, coordinator.Settings{
			TaskGeneration:  generation,
			WorkerAddresses: splitAddresses(a.workerAddresses),
		})
		if err != nil {
			return nil, noop, err
		}
		c, err := coordinator.NewCoordinator(settings)
		if err != nil {
			return nil, noop, err
		}
		return c, c.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", errUnknownStrategy, a.strategy)
	}
}

func framePath(directory string, number int) string {
	return filepath.Join(directory, fmt.Sprintf("%d.png", number))
}

func writeFrame(directory string, number int, buffer *mandelbrot.Buffer) error {
	image := bytes.Buffer{}
	if err := png.Encode(&image, buffer.Image()); err != nil {
		return err
	}
	_, err := misc.WriteFile(framePath(directory, number), image.Bytes())
	return err
}

func ensureDirectory(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return os.MkdirAll(directory, os.ModePerm)
	}
	return nil
}
