package gradient

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// DefaultColors is the palette used when a settings file names none.
var DefaultColors = []string{"black", "blue", "cyan", "red", "lime", "white"}

const (
	DefaultSteps = 16
	// MaxSteps caps how many colors a table may hold.
	MaxSteps = 1 << 16
)

var ErrUnknownColor = errors.New("unknown color")

// Settings describes a palette either as a Start/End pair or as an ordered list of Colors.
// Colors are css color names or #rgb / #rrggbb hex strings.
type Settings struct {
	logger bslogger.Logger

	Colors []string
	End    string
	Start  string
	Steps  int
}

func (s *Settings) String() string {
	output := "{Palette "
	if len(s.Colors) > 0 {
		output += fmt.Sprintf("Colors: %v ", s.Colors)
	} else {
		output += fmt.Sprintf("Start: %s ", s.Start)
		output += fmt.Sprintf("End: %s ", s.End)
	}
	output += fmt.Sprintf("Steps: %d}", s.Steps)
	return output
}

// Verify fills in defaults for anything left unset.
func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("PaletteSettings", bslogger.Normal, nil)

	if s.Steps == 0 {
		s.Steps = DefaultSteps
	}
	if s.Steps > MaxSteps {
		s.logger.Infof("Clamping Steps %d to %d", s.Steps, MaxSteps)
		s.Steps = MaxSteps
	}
	if len(s.Colors) == 0 && (s.Start == "") != (s.End == "") {
		s.logger.Warningf("Palette needs both Start and End, got Start %q End %q. Using the default palette.", s.Start, s.End)
		s.Start, s.End = "", ""
	}
	if len(s.Colors) == 0 && s.Start == "" {
		s.Colors = append([]string(nil), DefaultColors...)
	}
	if len(s.Colors) > 0 && s.Start != "" {
		s.logger.Infof("Palette has both Colors and Start/End. Ignoring Start/End.")
		s.Start, s.End = "", ""
	}
	return nil
}

// Build constructs the table the settings describe.
func (s *Settings) Build() (*Table, error) {
	if len(s.Colors) == 0 && s.Start != "" {
		start, err := ParseColor(s.Start)
		if err != nil {
			return nil, err
		}
		end, err := ParseColor(s.End)
		if err != nil {
			return nil, err
		}
		return FromEndpoints(start, end, s.Steps)
	}

	colors := make([]color.RGBA, len(s.Colors))
	for i, name := range s.Colors {
		c, err := ParseColor(name)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return FromControlPoints(colors, s.Steps)
}

// ParseColor reads a css color name or a hex color. Parsed colors are fully opaque.
func ParseColor(s string) (color.RGBA, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty string", ErrUnknownColor)
	}

	if c, ok := colornames.Map[value]; ok {
		return c, nil
	}

	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
