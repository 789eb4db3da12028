package task

import (
	"errors"
	"fmt"

	"mandelbrot/gradient"
	"mandelbrot/mandelbrot"
)

const (
	Row Generation = iota
	Column
	Image
	Tile
)

// TileSize is the edge length of Tile tasks. Tiles on the right and bottom edges are clipped.
const TileSize = 64

var ErrNoMoreTasks = errors.New("no more tasks")

// Generation decides how a frame is cut into tasks.
type Generation int

func (g Generation) String() string {
	if g < Row || g > Tile {
		return fmt.Sprintf("Generation(%d)", int(g))
	}
	return []string{
		"Row", "Column", "Image", "Tile",
	}[g]
}

// Task is a batch of coordinates from one frame, evaluated together.
type Task struct {
	Coordinates   []Coordinate
	CurrentTask   int
	Frame         uint
	ID            uint
	Params        mandelbrot.Params
	Results       []Pixel
	WorkerAddress string
}

func NewTask(id uint, frame uint, params mandelbrot.Params) Task {
	return Task{
		Frame:  frame,
		ID:     id,
		Params: params,
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Frame: %d ", t.Frame)
	output += fmt.Sprintf("Result Count: %d ", len(t.Results))
	output += fmt.Sprintf("Task Count: %d}", len(t.Coordinates))
	return output
}

func (t *Task) AddTaskForPixel(coordinate Coordinate) {
	t.Coordinates = append(t.Coordinates, coordinate)
}

func (t *Task) AddTasksForRow(row int, width int) {
	for c := 0; c < width; c++ {
		t.AddTaskForPixel(Coordinate{Column: c, Row: row})
	}
}

func (t *Task) AddTasksForColumn(column int, height int) {
	for r := 0; r < height; r++ {
		t.AddTaskForPixel(Coordinate{Column: column, Row: r})
	}
}

// AddTasksForRectangle adds every pixel with minColumn <= column < maxColumn and
// minRow <= row < maxRow.
func (t *Task) AddTasksForRectangle(minColumn int, minRow int, maxColumn int, maxRow int) {
	for r := minRow; r < maxRow; r++ {
		for c := minColumn; c < maxColumn; c++ {
			t.AddTaskForPixel(Coordinate{Column: c, Row: r})
		}
	}
}

// GetNextTask
// Returns the current coordinate to be processed. Make sure to return the result to the
// AddResult method before calling this method again
func (t *Task) GetNextTask() (Coordinate, error) {
	if t.CurrentTask >= len(t.Coordinates) {
		return Coordinate{}, ErrNoMoreTasks
	}
	return t.Coordinates[t.CurrentTask], nil
}

// AddResult
// When returning a result the CurrentTask value is incremented so the next call to the
// GetNextTask method will return the correct coordinate
func (t *Task) AddResult(pixel Pixel) {
	t.Results = append(t.Results, pixel)
	t.CurrentTask++
}

// Done reports whether every coordinate has a result.
func (t *Task) Done() bool {
	return len(t.Results) >= len(t.Coordinates)
}

// Process evaluates every remaining coordinate of the task.
func (t *Task) Process() {
	for {
		coordinate, err := t.GetNextTask()
		if err != nil {
			break
		}
		t.AddResult(Pixel{
			Column:     coordinate.Column,
			Iterations: mandelbrot.Evaluate(t.Params, coordinate.Column, coordinate.Row),
			Row:        coordinate.Row,
		})
	}
}

// Split cuts a frame into tasks that together cover every pixel exactly once. Task IDs start at
// firstID and increase by one.
func Split(firstID uint, frame uint, params mandelbrot.Params, generation Generation) []Task {
	width, height := params.Viewport.WidthPx, params.Viewport.HeightPx
	if width <= 0 || height <= 0 {
		return nil
	}

	id := firstID
	var tasks []Task
	next := func() *Task {
		tasks = append(tasks, NewTask(id, frame, params))
		id++
		return &tasks[len(tasks)-1]
	}

	switch generation {
	case Column:
		for column := 0; column < width; column++ {
			next().AddTasksForColumn(column, height)
		}
	case Image:
		next().AddTasksForRectangle(0, 0, width, height)
	case Tile:
		for minRow := 0; minRow < height; minRow += TileSize {
			maxRow := minRow + TileSize
			if maxRow > height {
				maxRow = height
			}
			for minColumn := 0; minColumn < width; minColumn += TileSize {
				maxColumn := minColumn + TileSize
				if maxColumn > width {
					maxColumn = width
				}
				next().AddTasksForRectangle(minColumn, minRow, maxColumn, maxRow)
			}
		}
	default:
		for row := 0; row < height; row++ {
			next().AddTasksForRow(row, width)
		}
	}
	return tasks
}

// Ingest colors the task's results with table and writes them into buffer.
func (t *Task) Ingest(buffer *mandelbrot.Buffer, table *gradient.Table) {
	for _, result := range t.Results {
		buffer.Set(result.Column, result.Row, mandelbrot.Colorize(table, result.Iterations, t.Params.SmoothColoring))
	}
}
