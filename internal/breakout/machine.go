package breakout

// Outcome describes what happened during one call to Update.
type Outcome struct {
	From         State
	To           State
	BricksBroken int
	LifeLost     bool
}

// Changed reports whether the frame moved the game to a different state.
func (o Outcome) Changed() bool {
	return o.From != o.To
}

// Transition decides the next state from the current one and the frame's
// input. It never touches a World, so it can be checked on its own.
func Transition(s State, in Input) (State, Effects) {
	switch s {
	case StateInit:
		if in.Start {
			return StatePlay, Effects{}
		}
	case StatePlay:
		if in.Pause {
			return StatePause, Effects{Simulate: true}
		}
		return StatePlay, Effects{Simulate: true}
	case StatePause:
		if in.Pause {
			return StatePlay, Effects{}
		}
	case StateOver:
		if in.Restart {
			return StatePlay, Effects{Reset: true}
		}
	}
	return s, Effects{}
}

// Update advances the world by one frame.
func (w *World) Update(in Input) Outcome {
	w.Frame++

	out := Outcome{From: w.State}
	next, eff := Transition(w.State, in)

	if eff.Reset {
		w.Init()
	}
	if eff.Simulate {
		res := w.step(in)
		out.BricksBroken = res.bricks
		out.LifeLost = res.lifeLost
		if res.over {
			next = StateOver
		}
	}

	w.State = next
	out.To = next
	return out
}
