package worker

import (
	"context"
	"runtime"
	"sync"

	"mandelbrot/gradient"
	"mandelbrot/mandelbrot"
	"mandelbrot/task"
)

// Pool renders a frame on local goroutines. Each task writes a disjoint set of pixels so the
// shared buffer needs no locking.
type Pool struct {
	Generation task.Generation
	Workers    int
}

func NewPool(workers int, generation task.Generation) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		Generation: generation,
		Workers:    workers,
	}
}

func (p *Pool) Dispatch(ctx context.Context, params mandelbrot.Params, table *gradient.Table) *mandelbrot.Job {
	job := mandelbrot.NewJob()
	if table == nil {
		job.Fail(mandelbrot.ErrNoTable)
		return job
	}
	if err := params.Verify(); err != nil {
		job.Fail(err)
		return job
	}

	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	tasks := task.Split(0, 0, params, p.Generation)
	buffer := mandelbrot.NewBuffer(params.Viewport.WidthPx, params.Viewport.HeightPx)

	go func() {
		tasksTodo := make(chan task.Task)
		wg := sync.WaitGroup{}
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for todo := range tasksTodo {
					todo.Process()
					todo.Ingest(buffer, table)
				}
			}()
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

		if err := ctx.Err(); err != nil {
			job.Fail(err)
			return
		}
		job.Complete(buffer, nil)
	}()

	return job
}
