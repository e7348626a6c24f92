package breakout

type State int

const (
	StateInit State = iota
	StatePlay
	StatePause
	StateOver
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StatePlay:
		return "play"
	case StatePause:
		return "pause"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

type Vector struct {
	X float32
	Y float32
}

type Paddle struct {
	Rect  Rect
	Speed float32
}

type Ball struct {
	Pos Vector
	Vel Vector
}

type Brick struct {
	Rect   Rect
	Active bool
}

// Input is what the player did this frame. Left and Right are held keys,
// the rest are only true on the frame the key went down.
type Input struct {
	Left    bool
	Right   bool
	Start   bool
	Pause   bool
	Restart bool
}

// IsZero reports whether no key was held or pressed.
func (in Input) IsZero() bool {
	return in == Input{}
}

// Effects are the side effects a transition asks the world to apply.
type Effects struct {
	Reset    bool
	Simulate bool
}

// World owns every game entity. Nothing in this package keeps global state.
type World struct {
	Width  float32
	Height float32

	State  State
	Paddle Paddle
	Ball   Ball
	Bricks []Brick
	Score  int
	Lives  int

	// Frame counts calls to Update since the world was created.
	Frame uint64
}
