package breakout

type stepResult struct {
	bricks   int
	lifeLost bool
	over     bool
}

// step runs one frame of play: move, bounce, break, and check for a lost ball.
func (w *World) step(in Input) stepResult {
	var res stepResult

	w.movePaddle(in)

	w.Ball.Pos.X += w.Ball.Vel.X
	w.Ball.Pos.Y += w.Ball.Vel.Y

	w.checkWalls()
	w.checkPaddle()
	res.bricks = w.checkBricks()

	if w.Lives <= 0 {
		res.over = true
	}

	if w.Ball.Pos.Y >= w.Height {
		w.Lives--
		res.lifeLost = true
		if w.Lives > 0 {
			w.resetBall()
		} else {
			res.over = true
		}
	}

	return res
}

func (w *World) movePaddle(in Input) {
	x := w.Paddle.Rect.X
	if in.Left {
		x -= w.Paddle.Speed
	}
	if in.Right {
		x += w.Paddle.Speed
	}
	w.Paddle.Rect.X = Clamp(x, 0, w.Width-w.Paddle.Rect.Width)
}

// Bounces only turn the ball back toward the field, so a ball that is still
// touching a wall on the next frame keeps going the right way.
func (w *World) checkWalls() {
	b := &w.Ball
	if b.Pos.X <= BallRadius {
		b.Vel.X = abs32(b.Vel.X)
	}
	if b.Pos.X >= w.Width-BallRadius {
		b.Vel.X = -abs32(b.Vel.X)
	}
	if b.Pos.Y <= BallRadius {
		b.Vel.Y = abs32(b.Vel.Y)
	}
}

func (w *World) checkPaddle() {
	if CircleRectOverlap(w.Ball.Pos, BallRadius, w.Paddle.Rect) {
		w.Ball.Vel.Y = -abs32(w.Ball.Vel.Y)
	}
}

func (w *World) checkBricks() int {
	broken := 0
	for i := range w.Bricks {
		br := &w.Bricks[i]
		if !br.Active || !CircleRectOverlap(w.Ball.Pos, BallRadius, br.Rect) {
			continue
		}
		br.Active = false
		w.Ball.Vel.Y = -w.Ball.Vel.Y
		w.Score += PointsPerBrick
		broken++
	}
	return broken
}
