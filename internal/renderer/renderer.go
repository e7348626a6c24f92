package renderer

import (
	"fmt"

	"brickbreaker/internal/breakout"
)

type Color struct {
	R, G, B uint8
}

var (
	DarkGray = Color{80, 80, 80}
	RayWhite = Color{245, 245, 245}
	White    = Color{255, 255, 255}
	Orange   = Color{255, 161, 0}
)

// Canvas is the set of drawing primitives the game needs from a backend.
type Canvas interface {
	Clear(c Color)
	FillRect(r breakout.Rect, c Color)
	FillCircle(center breakout.Vector, radius float32, c Color)
	DrawText(text string, x, y float32, size int, c Color)
	// MeasureText returns the width text would take up, in world units.
	MeasureText(text string, size int) float32
}

const (
	hudSize   = 20
	titleSize = 40
	bodySize  = 30
)

// Draw paints one frame of w onto c. It only reads the world.
func Draw(c Canvas, w *breakout.World) {
	c.Clear(DarkGray)

	c.FillRect(w.Paddle.Rect, RayWhite)
	c.FillCircle(w.Ball.Pos, breakout.BallRadius, RayWhite)
	for _, b := range w.Bricks {
		if b.Active {
			c.FillRect(b.Rect, Orange)
		}
	}

	drawCentered(c, w, "Press P to pause the game", 10, hudSize)
	c.DrawText(fmt.Sprintf("Score: %d", w.Score), 10, 10, hudSize, White)
	c.DrawText(fmt.Sprintf("Lives: %d", w.Lives), w.Width-80, 10, hudSize, White)

	half := w.Height / 2
	switch w.State {
	case breakout.StateInit:
		drawCentered(c, w, "Brick Breaker Game Controls", half-100, titleSize)
		drawCentered(c, w, "To Move The Paddle Use: Left Arrow (Left) - Right Arrow (Right)", half-50, bodySize)
		drawCentered(c, w, "Good Luck", half, bodySize)
		drawCentered(c, w, "Press SPACE to Start", half+50, bodySize)
	case breakout.StatePause:
		drawCentered(c, w, "Game Paused", half-20, titleSize)
	case breakout.StateOver:
		drawCentered(c, w, "Game Over. Press R To Restart", half-20, titleSize)
	}
}

func drawCentered(c Canvas, w *breakout.World, text string, y float32, size int) {
	x := w.Width/2 - c.MeasureText(text, size)/2
	c.DrawText(text, x, y, size, White)
}
