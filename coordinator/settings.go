package coordinator

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
	"mandelbrot/misc"
	"mandelbrot/task"
)

type Settings struct {
	logger bslogger.Logger

	TaskGeneration  task.Generation
	WorkerAddresses []string
}

// NewSettings starts from defaults and overrides whatever settingsFile sets. An empty
// settingsFile keeps the defaults as they are.
func NewSettings(settingsFile string, defaults Settings) (Settings, error) {
	s := defaults
	if err := misc.ReadJSON(settingsFile, &s); err != nil {
		return s, err
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Task Generation: %s\n", s.TaskGeneration)
	output += fmt.Sprintf("Worker Addresses: %v\n", s.WorkerAddresses)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil)
	if s.TaskGeneration < task.Row || s.TaskGeneration > task.Tile {
		s.logger.Warningf("Unknown task generation %s, using %s", s.TaskGeneration, task.Row)
		s.TaskGeneration = task.Row
	}
	if len(s.WorkerAddresses) == 0 {
		return ErrNoWorkers
	}
	return nil
}
