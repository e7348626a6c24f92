package ansii

import (
	"math"
	"strings"

	"brickbreaker/internal/breakout"
	"brickbreaker/internal/renderer"
)

type Cell struct {
	Bg renderer.Color
	Fg renderer.Color
	Ch rune
}

// Canvas draws the game world onto a grid of terminal cells. World
// coordinates are scaled down so the whole world fits the grid.
type Canvas struct {
	cols, rows   int
	cellW, cellH float32
	cells        []Cell
}

func NewCanvas(cols, rows int, worldW, worldH float32) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &Canvas{
		cols:  cols,
		rows:  rows,
		cellW: worldW / float32(cols),
		cellH: worldH / float32(rows),
		cells: make([]Cell, cols*rows),
	}
}

func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// At returns the cell at column x, row y, both starting at 0. It panics if
// the cell is outside the grid.
func (c *Canvas) At(x, y int) Cell {
	return c.cells[y*c.cols+x]
}

func (c *Canvas) Clear(col renderer.Color) {
	for i := range c.cells {
		c.cells[i] = Cell{Bg: col, Ch: ' '}
	}
}

func (c *Canvas) FillRect(r breakout.Rect, col renderer.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	c0 := int(math.Floor(float64(r.X / c.cellW)))
	r0 := int(math.Floor(float64(r.Y / c.cellH)))
	c1 := int(math.Ceil(float64(r.Right()/c.cellW))) - 1
	r1 := int(math.Ceil(float64(r.Bottom()/c.cellH))) - 1
	c1 = max(c1, c0)
	r1 = max(r1, r0)
	if c1 < 0 || r1 < 0 || c0 >= c.cols || r0 >= c.rows {
		return
	}
	c0 = breakout.Clamp(c0, 0, c.cols-1)
	c1 = breakout.Clamp(c1, 0, c.cols-1)
	r0 = breakout.Clamp(r0, 0, c.rows-1)
	r1 = breakout.Clamp(r1, 0, c.rows-1)

	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			c.paint(x, y, col)
		}
	}
}

// FillCircle paints every cell whose centre lies in the circle. The cell
// under the centre is always painted so a small ball never disappears.
func (c *Canvas) FillCircle(center breakout.Vector, radius float32, col renderer.Color) {
	cx, cy := c.cellOf(center.X, center.Y)
	if cx >= 0 && cy >= 0 && cx < c.cols && cy < c.rows {
		c.paint(cx, cy, col)
	}

	c0, r0 := c.cellOf(center.X-radius, center.Y-radius)
	c1, r1 := c.cellOf(center.X+radius, center.Y+radius)
	c0, c1 = breakout.Clamp(c0, 0, c.cols-1), breakout.Clamp(c1, 0, c.cols-1)
	r0, r1 = breakout.Clamp(r0, 0, c.rows-1), breakout.Clamp(r1, 0, c.rows-1)

	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			mx := (float32(x) + 0.5) * c.cellW
			my := (float32(y) + 0.5) * c.cellH
			dx, dy := mx-center.X, my-center.Y
			if dx*dx+dy*dy <= radius*radius {
				c.paint(x, y, col)
			}
		}
	}
}

// DrawText writes text starting at (x, y). The terminal has one font size,
// so size is ignored.
func (c *Canvas) DrawText(text string, x, y float32, size int, col renderer.Color) {
	cx, cy := c.cellOf(x, y)
	if cy < 0 || cy >= c.rows {
		return
	}
	for _, ch := range text {
		if cx >= 0 && cx < c.cols {
			cell := &c.cells[cy*c.cols+cx]
			cell.Ch = ch
			cell.Fg = col
		}
		cx++
	}
}

func (c *Canvas) MeasureText(text string, size int) float32 {
	return float32(len([]rune(text))) * c.cellW
}

// Frame renders the whole grid as escape codes, starting from the top left
// corner. Colour codes are only written when they change.
func (c *Canvas) Frame() string {
	var builder strings.Builder
	builder.WriteString(string(Screen.Home))

	var bg, fg renderer.Color
	first := true
	for y := range c.rows {
		builder.WriteString(string(Screen.PlaceCursor(1, y+1)))
		for x := range c.cols {
			cell := c.cells[y*c.cols+x]
			if first || cell.Bg != bg {
				bg = cell.Bg
				builder.WriteString(string(Background(bg.R, bg.G, bg.B)))
			}
			if first || cell.Fg != fg {
				fg = cell.Fg
				builder.WriteString(string(Foreground(fg.R, fg.G, fg.B)))
			}
			first = false

			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			builder.WriteRune(ch)
		}
	}
	builder.WriteString(string(Styles.Reset))
	return builder.String()
}

func (c *Canvas) cellOf(x, y float32) (int, int) {
	return int(math.Floor(float64(x / c.cellW))), int(math.Floor(float64(y / c.cellH)))
}

// Painting a cell clears any text that was on it.
func (c *Canvas) paint(x, y int, col renderer.Color) {
	c.cells[y*c.cols+x] = Cell{Bg: col, Ch: ' '}
}
