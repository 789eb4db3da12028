// Package coordinator renders frames on remote workers reached over net/rpc.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
	"mandelbrot/gradient"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/rpc"
	"mandelbrot/task"
)

var (
	ErrNoWorkers      = errors.New("no workers")
	ErrIncompleteTask = errors.New("worker returned an incomplete task")
	ErrClosed         = errors.New("coordinator closed")
)

// Coordinator is a mandelbrot.Strategy that fans a frame's tasks out to every connected worker.
// A frame fails as soon as any worker call fails; it is never retried.
type Coordinator struct {
	clients            []*rpc.TcpClient
	closed             bool
	frame              uint
	logger             bslogger.Logger
	mutex              sync.Mutex
	taskGeneratedCount uint
	taskIngestedCount  uint

	Generation task.Generation
}

// New connects to every worker address and checks that each answers a roll call.
func New(addresses []string) (*Coordinator, error) {
	if len(addresses) == 0 {
		return nil, ErrNoWorkers
	}

	c := &Coordinator{
		logger:     bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		Generation: task.Row,
	}
	for _, address := range addresses {
		client := rpc.NewTcpClient(address, address)
		if err := client.Connect(); err != nil {
			c.Close()
			return nil, fmt.Errorf("connecting to worker %s: %w", address, err)
		}
		c.clients = append(c.clients, client)

		var present bool
		if err := client.Call("Worker.RollCall", misc.Nothing{}, &present); err != nil || !present {
			c.Close()
			return nil, fmt.Errorf("worker %s missed roll call: %v", address, err)
		}
		c.logger.Infof("Worker joined: %s", address)
	}
	return c, nil
}

func NewCoordinator(settings Settings) (*Coordinator, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	c, err := New(settings.WorkerAddresses)
	if err != nil {
		return nil, err
	}
	c.Generation = settings.TaskGeneration
	return c, nil
}

func (c *Coordinator) Dispatch(ctx context.Context, params mandelbrot.Params, table *gradient.Table) *mandelbrot.Job {
	job := mandelbrot.NewJob()
	if table == nil {
		job.Fail(mandelbrot.ErrNoTable)
		return job
	}
	if err := params.Verify(); err != nil {
		job.Fail(err)
		return job
	}

	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		job.Fail(ErrClosed)
		return job
	}
	clients := c.clients
	frame := c.frame
	c.frame++
	tasks := task.Split(c.taskGeneratedCount, frame, params, c.Generation)
	c.taskGeneratedCount += uint(len(tasks))
	c.mutex.Unlock()

	buffer := mandelbrot.NewBuffer(params.Viewport.WidthPx, params.Viewport.HeightPx)
	go func() {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		tasksTodo := make(chan task.Task)
		errs := make(chan error, len(clients))
		wg := sync.WaitGroup{}
		for _, client := range clients {
			wg.Add(1)
			go func(client *rpc.TcpClient) {
				defer wg.Done()
				for todo := range tasksTodo {
					if err := c.render(client, todo, buffer, table); err != nil {
						errs <- err
						cancel()
						return
					}
				}
			}(client)
		}

	generate:
		for _, todo := range tasks {
			select {
			case tasksTodo <- todo:
			case <-ctx.Done():
				break generate
			}
		}
		close(tasksTodo)
		wg.Wait()

		select {
		case err := <-errs:
			c.logger.Errorf("Frame %d failed: %s", frame, err)
			job.Fail(err)
			return
		default:
		}
		if err := ctx.Err(); err != nil {
			job.Fail(err)
			return
		}
		c.logger.Debugf("Frame %d done with %d tasks", frame, len(tasks))
		job.Complete(buffer, nil)
	}()

	return job
}

func (c *Coordinator) render(client *rpc.TcpClient, todo task.Task, buffer *mandelbrot.Buffer, table *gradient.Table) error {
	var done task.Task
	if err := client.Call("Worker.RenderTask", todo, &done); err != nil {
		return fmt.Errorf("worker %s: %w", client.Name, err)
	}
	if !done.Done() || len(done.Results) != len(todo.Coordinates) {
		return fmt.Errorf("%w: %s from %s", ErrIncompleteTask, done.String(), client.Name)
	}
	// Coordinates come from Split, so a result on its own coordinate is also inside the frame.
	for i, result := range done.Results {
		want := todo.Coordinates[i]
		if result.Column != want.Column || result.Row != want.Row {
			return fmt.Errorf("%w: %s from %s, want %s", ErrIncompleteTask, result.String(), client.Name, want.String())
		}
	}
	done.Ingest(buffer, table)

	c.mutex.Lock()
	c.taskIngestedCount++
	c.mutex.Unlock()
	return nil
}

// Stats reports how many tasks have been generated and ingested so far.
func (c *Coordinator) Stats() (generated uint, ingested uint) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.taskGeneratedCount, c.taskIngestedCount
}

// Close disconnects from every worker. Frames dispatched afterwards fail with ErrClosed.
func (c *Coordinator) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var err error
	for _, client := range c.clients {
		if disconnectErr := client.Disconnect(); disconnectErr != nil && err == nil {
			err = disconnectErr
		}
	}
	c.logger.Infof("Disconnected from %d workers", len(c.clients))
	return err
}
