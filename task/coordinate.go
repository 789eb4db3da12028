package task

import "fmt"

// Coordinate is a pixel of the frame a task belongs to.
type Coordinate struct {
	Column int
	Row    int
}

func (c *Coordinate) String() string {
	output := "{Coordinate "
	output += fmt.Sprintf("Column: %d ", c.Column)
	output += fmt.Sprintf("Row: %d}", c.Row)
	return output
}
