package task

import "fmt"

// Pixel is an evaluated coordinate. Iterations is the value mandelbrot.Evaluate returned, so it
// only has a fractional part when smooth coloring is on.
type Pixel struct {
	Column     int
	Iterations float64
	Row        int
}

func (p *Pixel) String() string {
	output := "{Pixel "
	output += fmt.Sprintf("Column: %d ", p.Column)
	output += fmt.Sprintf("Iterations: %f ", p.Iterations)
	output += fmt.Sprintf("Row: %d}", p.Row)
	return output
}
