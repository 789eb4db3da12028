package worker

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
	"mandelbrot/misc"
)

const DefaultPort = 51001

type Settings struct {
	logger bslogger.Logger

	Address string
}

// NewSettings starts from defaults and overrides whatever settingsFile sets.
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
	output := "\nWorker settings\n"
	output += fmt.Sprintf("Address: %s\n", s.Address)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("WorkerSettings", bslogger.Normal, nil)
	if s.Address == "" {
		s.Address = misc.LocalAddressWithPort(DefaultPort)
	}
	return nil
}
