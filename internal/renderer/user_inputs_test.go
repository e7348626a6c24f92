package renderer

import (
	"slices"
	"testing"
	"time"

	"brickbreaker/internal/breakout"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []UiAction
	}{
		{"letters", []byte("adpr q"), []UiAction{Left, Right, Pause, Restart, Start, Quit}},
		{"upper case", []byte("AD"), []UiAction{Left, Right}},
		{"arrows", []byte("\x1b[D\x1b[C"), []UiAction{Left, Right}},
		{"autorepeat", []byte("\x1b[D\x1b[D\x1b[D"), []UiAction{Left, Left, Left}},
		{"up arrow ignored", []byte("\x1b[Ap"), []UiAction{Pause}},
		{"bare escape", []byte("\x1b"), nil},
		{"ctrl-c", []byte{3}, []UiAction{Quit}},
		{"unknown keys", []byte("xyz"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Decode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyboardHoldWindow(t *testing.T) {
	k := NewKeyboard(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	k.Press(Left, t0)
	if in := k.Sample(t0.Add(50 * time.Millisecond)); !in.Left || in.Right {
		t.Fatalf("sample inside window = %+v, want left held", in)
	}
	if in := k.Sample(t0.Add(150 * time.Millisecond)); in.Left {
		t.Fatalf("sample after window = %+v, want released", in)
	}

	k.Press(Left, t0)
	k.Press(Right, t0.Add(10*time.Millisecond))
	if in := k.Sample(t0.Add(20 * time.Millisecond)); in.Left || !in.Right {
		t.Fatalf("right after left = %+v, want only right", in)
	}
}

func TestKeyboardPressesAreOneShot(t *testing.T) {
	k := NewKeyboard(100 * time.Millisecond)
	now := time.Unix(1000, 0)

	k.Press(Start, now)
	k.Press(Pause, now)
	k.Press(Restart, now)
	k.Press(Quit, now)

	in := k.Sample(now)
	if in != (breakout.Input{Start: true, Pause: true, Restart: true}) {
		t.Fatalf("first sample = %+v", in)
	}
	if in := k.Sample(now); !in.IsZero() {
		t.Fatalf("second sample = %+v, want nothing", in)
	}
}
