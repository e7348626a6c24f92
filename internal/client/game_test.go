package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"brickbreaker/internal/ansii"
	"brickbreaker/internal/breakout"
	"brickbreaker/internal/renderer"
	"brickbreaker/internal/replay"
)

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func testOptions(in io.Reader, out io.Writer) Options {
	w := breakout.NewWorld(breakout.ScreenWidth, breakout.ScreenHeight)
	return Options{
		In:            in,
		Out:           out,
		World:         w,
		Canvas:        ansii.NewCanvas(60, 20, w.Width, w.Height),
		Keyboard:      renderer.NewKeyboard(50 * time.Millisecond),
		FrameInterval: time.Millisecond,
	}
}

func runGame(t *testing.T, opts Options) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Game(ctx, opts) }()
	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("game loop did not stop")
		return nil
	}
}

func TestGameQuitKey(t *testing.T) {
	opts := testOptions(strings.NewReader("q"), io.Discard)
	if err := runGame(t, opts); err != nil {
		t.Fatalf("game: %v", err)
	}
	if opts.World.State != breakout.StateInit {
		t.Fatalf("state = %v, want init", opts.World.State)
	}
}

func TestGameStopsOnInputError(t *testing.T) {
	boom := errors.New("boom")
	err := runGame(t, testOptions(errReader{err: boom}, io.Discard))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	if err := runGame(t, testOptions(errReader{err: io.EOF}, io.Discard)); err != nil {
		t.Fatalf("EOF should end the game cleanly, got %v", err)
	}
}

func TestGameStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Game(ctx, testOptions(pr, io.Discard)) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("game: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("game loop ignored cancellation")
	}
}

func TestGameStartsPlayingAndRecords(t *testing.T) {
	pr, pw := io.Pipe()
	var screen, rec bytes.Buffer

	opts := testOptions(pr, &screen)
	recorder, err := replay.NewWriter(&rec, replay.Header{Width: breakout.ScreenWidth, Height: breakout.ScreenHeight, FPS: 1000})
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	opts.Recorder = recorder

	go func() {
		pw.Write([]byte(" "))
		time.Sleep(50 * time.Millisecond)
		pw.Write([]byte("q"))
		pw.Close()
	}()

	if err := runGame(t, opts); err != nil {
		t.Fatalf("game: %v", err)
	}
	if opts.World.State != breakout.StatePlay {
		t.Fatalf("state = %v, want play", opts.World.State)
	}
	if !strings.Contains(screen.String(), "Score: 0") {
		t.Fatalf("no frame drawn")
	}

	if err := recorder.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	r, err := replay.NewReader(&rec)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	replayed := breakout.NewWorld(breakout.ScreenWidth, breakout.ScreenHeight)
	if _, err := replay.Play(r, replayed); err != nil {
		t.Fatalf("play: %v", err)
	}
	if replayed.State != breakout.StatePlay || replayed.Ball != opts.World.Ball {
		t.Fatalf("replay diverged: %v %+v vs %+v", replayed.State, replayed.Ball, opts.World.Ball)
	}
}
