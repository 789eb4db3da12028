package worker

import (
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"mandelbrot/misc"
	"mandelbrot/rpc"
	"mandelbrot/task"
)

// Worker evaluates tasks handed to it over rpc by a coordinator.
type Worker struct {
	logger         bslogger.Logger
	mutex          sync.Mutex
	shutdown       chan struct{}
	stopOnce       sync.Once
	tasksCompleted int

	Server *rpc.TcpServer
}

// NewWorker starts serving on the address in settings. Use port 0 to pick a free port.
func NewWorker(settings Settings) (*Worker, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	worker := &Worker{
		logger:   bslogger.NewLogger("Worker", bslogger.Normal, nil),
		shutdown: make(chan struct{}),
	}
	worker.Server = rpc.NewTcpServer(worker, settings.Address, "WorkerServer")
	if err := worker.Server.Run(); err != nil {
		return nil, err
	}
	worker.logger.Infof("Serving tasks on %s", worker.Address())

	go worker.tickers()

	return worker, nil
}

func (w *Worker) tickers() {
	heartBeat := time.NewTicker(30 * time.Second)
	defer heartBeat.Stop()

	for {
		select {
		case <-heartBeat.C:
			w.logger.Debug("Heart beat ticker")
			w.logger.Infof("Tasks [Completed: %d]", w.TasksCompleted())
		case <-w.shutdown:
			return
		}
	}
}

func (w *Worker) Address() string {
	return w.Server.Address()
}

func (w *Worker) TasksCompleted() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.tasksCompleted
}

// Stop stops serving. Calling it more than once is safe.
func (w *Worker) Stop() error {
	w.stopOnce.Do(func() {
		close(w.shutdown)
	})
	w.logger.Info("Shutting down")
	return w.Server.Stop()
}

// RenderTask evaluates every coordinate of todo and returns it with its results filled in.
func (w *Worker) RenderTask(todo task.Task, done *task.Task) error {
	todo.Process()
	todo.WorkerAddress = w.Address()
	*done = todo

	w.mutex.Lock()
	w.tasksCompleted++
	w.mutex.Unlock()
	w.logger.Debugf("Rendered %s", todo.String())
	return nil
}

func (w *Worker) RollCall(request misc.Nothing, reply *bool) error {
	*reply = true
	return nil
}
