package mandelbrot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mandelbrot/gradient"
)

var ErrNoTable = errors.New("no gradient table")

// Params is the immutable parameter block a strategy renders from. It is copied at dispatch so
// the caller may keep moving its viewport while a frame is in flight.
type Params struct {
	MaxIterations  int
	SmoothColoring bool
	Viewport       Viewport
}

func (p Params) String() string {
	return fmt.Sprintf("{Params MaxIterations: %d SmoothColoring: %t Viewport: %s}", p.MaxIterations, p.SmoothColoring, p.Viewport.String())
}

// Verify rejects parameters no strategy can render.
func (p Params) Verify() error {
	return CheckPixels(p.Viewport.WidthPx, p.Viewport.HeightPx)
}

// Strategy renders a frame, possibly asynchronously. The returned Job is the fence the caller
// waits on before using the buffer.
type Strategy interface {
	Dispatch(ctx context.Context, p Params, t *gradient.Table) *Job
}

// Job is a frame in flight.
type Job struct {
	buffer *Buffer
	done   chan struct{}
	err    error
	once   sync.Once
}

func NewJob() *Job {
	return &Job{done: make(chan struct{})}
}

// Complete publishes the outcome of the job. Only the first call has any effect.
func (j *Job) Complete(buffer *Buffer, err error) {
	j.once.Do(func() {
		if err == nil {
			j.buffer = buffer
		}
		j.err = err
		close(j.done)
	})
}

// Fail completes the job with err.
func (j *Job) Fail(err error) {
	j.Complete(nil, err)
}

func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job completes or ctx ends. The buffer is only valid when err is nil.
func (j *Job) Wait(ctx context.Context) (*Buffer, error) {
	select {
	case <-j.done:
		return j.buffer, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Sequential renders on the calling goroutine. Its jobs are complete when Dispatch returns.
type Sequential struct{}

func (Sequential) Dispatch(ctx context.Context, p Params, t *gradient.Table) *Job {
	job := NewJob()
	if t == nil {
		job.Fail(ErrNoTable)
		return job
	}
	if err := p.Verify(); err != nil {
		job.Fail(err)
		return job
	}
	if err := ctx.Err(); err != nil {
		job.Fail(err)
		return job
	}

	if !p.SmoothColoring {
		job.Complete(RenderBuffer(p.Viewport, t, p.MaxIterations), nil)
		return job
	}

	buffer := NewBuffer(p.Viewport.WidthPx, p.Viewport.HeightPx)
	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			buffer.Set(x, y, Colorize(t, Evaluate(p, x, y), true))
		}
	}
	job.Complete(buffer, nil)
	return job
}

// Render dispatches a frame on s and waits for it.
func Render(ctx context.Context, s Strategy, p Params, t *gradient.Table) (*Buffer, error) {
	return s.Dispatch(ctx, p, t).Wait(ctx)
}
