package renderer

import (
	"time"

	"brickbreaker/internal/breakout"
)

type UiAction rune

const (
	Unknown UiAction = iota
	Quit    UiAction = 81 // 'Q'
	Left    UiAction = 65 // 'A'
	Right   UiAction = 68 // 'D'
	Pause   UiAction = 80 // 'P'
	Restart UiAction = 82 // 'R'
	Start   UiAction = 32 // ' '
)

const (
	ctrlC = 3
	esc   = 27
)

// ProcessInput maps a single key to an action. Letters are case-insensitive.
func ProcessInput(rawInput rune) (action UiAction) {
	inputVal := int(rawInput)
	// Convert to UpperCase
	if inputVal >= 97 && inputVal <= 122 {
		inputVal = inputVal - 32
	}
	switch UiAction(inputVal) {
	case Quit, Left, Right, Pause, Restart, Start:
		return UiAction(inputVal)
	case ctrlC:
		return Quit
	}
	return Unknown
}

// Decode turns one read from a raw terminal into actions. A read can hold
// several keys when the terminal is autorepeating. Arrow keys come in as
// ESC [ C and ESC [ D.
func Decode(buf []byte) []UiAction {
	var actions []UiAction
	for i := 0; i < len(buf); i++ {
		if buf[i] != esc {
			if a := ProcessInput(rune(buf[i])); a != Unknown {
				actions = append(actions, a)
			}
			continue
		}

		if i+2 >= len(buf) || buf[i+1] != '[' {
			continue
		}
		switch buf[i+2] {
		case 'D':
			actions = append(actions, Left)
		case 'C':
			actions = append(actions, Right)
		}
		i += 2
	}
	return actions
}

// Keyboard turns key presses into per-frame input. A terminal never tells us
// when a key is released, so a movement key counts as held for HoldWindow
// after its last press or repeat.
type Keyboard struct {
	HoldWindow time.Duration

	lastLeft  time.Time
	lastRight time.Time
	start     bool
	pause     bool
	restart   bool
}

func NewKeyboard(holdWindow time.Duration) *Keyboard {
	return &Keyboard{HoldWindow: holdWindow}
}

func (k *Keyboard) Press(action UiAction, at time.Time) {
	switch action {
	case Left:
		k.lastLeft = at
		k.lastRight = time.Time{}
	case Right:
		k.lastRight = at
		k.lastLeft = time.Time{}
	case Start:
		k.start = true
	case Pause:
		k.pause = true
	case Restart:
		k.restart = true
	}
}

// Sample reports the input for the frame at now. Start, pause and restart
// are reported once and then cleared.
func (k *Keyboard) Sample(now time.Time) breakout.Input {
	in := breakout.Input{
		Left:    k.held(k.lastLeft, now),
		Right:   k.held(k.lastRight, now),
		Start:   k.start,
		Pause:   k.pause,
		Restart: k.restart,
	}
	k.start, k.pause, k.restart = false, false, false
	return in
}

func (k *Keyboard) held(last, now time.Time) bool {
	return !last.IsZero() && now.Sub(last) < k.HoldWindow
}
