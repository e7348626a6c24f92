package breakout

const (
	ScreenWidth  = 1200
	ScreenHeight = 800
)

// Paddle
const (
	PaddleWidth  = 200
	PaddleHeight = 10
	PaddleSpeed  = 6
	// Distance from the bottom of the screen to the paddle's top edge.
	PaddleLift = 20
)

// Ball
const (
	BallRadius = 10
	BallSpeedX = 2.5
	BallSpeedY = -2.5
)

// Bricks
const (
	BrickWidthFactor  = 0.04
	BrickHeightFactor = 0.02
	BrickGutter       = 10
	BrickRows         = 8
	BrickTop          = 30
)

// Rules
const (
	StartingLives  = 3
	PointsPerBrick = 10
)

// NewWorld lays out a fresh game for a screen of the given size, waiting on
// the start screen.
func NewWorld(width, height float32) *World {
	w := &World{
		Width:  width,
		Height: height,
		State:  StateInit,
	}
	w.Init()
	return w
}

// Init puts every entity back where a new game starts. The state is left
// alone; callers decide where to go next.
func (w *World) Init() {
	w.Paddle = Paddle{
		Rect: Rect{
			X:      w.Width/2 - PaddleWidth/2,
			Y:      w.Height - PaddleLift,
			Width:  PaddleWidth,
			Height: PaddleHeight,
		},
		Speed: PaddleSpeed,
	}
	w.resetBall()
	w.Bricks = layoutBricks(w.Width, w.Height)
	w.Score = 0
	w.Lives = StartingLives
}

func (w *World) resetBall() {
	w.Ball = Ball{
		Pos: Vector{X: w.Width / 2, Y: w.Height / 2},
		Vel: Vector{X: BallSpeedX, Y: BallSpeedY},
	}
}

// layoutBricks builds the grid column by column. The number of columns is
// whatever fits across the screen, and the leftover space is split evenly on
// both sides.
func layoutBricks(width, height float32) []Brick {
	bw := width * BrickWidthFactor
	bh := height * BrickHeightFactor
	cols := int(width / (bw + BrickGutter))
	if cols < 0 {
		cols = 0
	}
	xOffset := (width - float32(cols)*(bw+BrickGutter)) / 2

	bricks := make([]Brick, 0, cols*BrickRows)
	for i := range cols {
		for j := range BrickRows {
			bricks = append(bricks, Brick{
				Rect: Rect{
					X:      float32(i)*(bw+BrickGutter) + xOffset,
					Y:      float32(j)*(bh+BrickGutter) + BrickTop,
					Width:  bw,
					Height: bh,
				},
				Active: true,
			})
		}
	}
	return bricks
}

// ActiveBricks counts the bricks still standing.
func (w *World) ActiveBricks() int {
	n := 0
	for _, b := range w.Bricks {
		if b.Active {
			n++
		}
	}
	return n
}
