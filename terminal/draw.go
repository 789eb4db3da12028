// Package terminal shows a session in a terminal. Each cell holds two vertically stacked pixels
// drawn with an upper half block: the foreground is the top pixel and the background the bottom.
package terminal

import (
	"github.com/gdamore/tcell/v2"
	"mandelbrot/gradient"
	"mandelbrot/mandelbrot"
)

const upperHalfBlock = '▀'

// PixelSize is the pixel grid that fills a screen of the given size, keeping the last row for
// the status line.
func PixelSize(columns int, rows int) (int, int) {
	rows--
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	return columns, rows * 2
}

func tcellColor(c gradient.Color) tcell.Color {
	n := c.NRGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

// Draw paints buffer from the top left corner of screen. Pixels outside the screen are clipped.
func Draw(screen tcell.Screen, buffer *mandelbrot.Buffer) {
	columns, rows := screen.Size()
	for y := 0; y*2 < buffer.Height && y < rows; y++ {
		for x := 0; x < buffer.Width && x < columns; x++ {
			style := tcell.StyleDefault.Foreground(tcellColor(buffer.At(x, y*2)))
			if y*2+1 < buffer.Height {
				style = style.Background(tcellColor(buffer.At(x, y*2+1)))
			}
			screen.SetContent(x, y, upperHalfBlock, nil, style)
		}
	}
}

// DrawText writes text on one row starting at column 0 and blanks the rest of the row.
func DrawText(screen tcell.Screen, row int, text string, style tcell.Style) {
	columns, _ := screen.Size()
	x := 0
	for _, r := range text {
		if x >= columns {
			break
		}
		screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < columns; x++ {
		screen.SetContent(x, row, ' ', nil, style)
	}
}
