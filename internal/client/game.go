package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"brickbreaker/internal/ansii"
	"brickbreaker/internal/breakout"
	"brickbreaker/internal/config"
	"brickbreaker/internal/renderer"
	"brickbreaker/internal/replay"

	"github.com/google/uuid"
)

const title = "Brick Breaker"

type Options struct {
	In       io.Reader
	Out      io.Writer
	World    *breakout.World
	Canvas   *ansii.Canvas
	Keyboard *renderer.Keyboard
	// Recorder is optional.
	Recorder      *replay.Writer
	FrameInterval time.Duration
	Logger        *slog.Logger
}

// Run takes over the terminal, plays until the player quits or ctx is
// cancelled, and puts the terminal back the way it was.
func Run(ctx context.Context, cfg config.Configuration, session uuid.UUID, logger *slog.Logger) error {
	if !ansii.IsTerminal() {
		return errors.New("stdin is not a terminal")
	}
	cols, rows, err := ansii.GetTermSize()
	if err != nil {
		return err
	}

	world := breakout.NewWorld(breakout.ScreenWidth, breakout.ScreenHeight)
	opts := Options{
		In:            os.Stdin,
		Out:           os.Stdout,
		World:         world,
		Canvas:        ansii.NewCanvas(cols, rows, world.Width, world.Height),
		Keyboard:      renderer.NewKeyboard(cfg.HoldWindow()),
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger,
	}

	if cfg.RecordPath != "" {
		f, err := os.Create(cfg.RecordPath)
		if err != nil {
			return fmt.Errorf("create recording: %w", err)
		}
		defer f.Close()

		rec, err := replay.NewWriter(f, replay.Header{
			Session: session,
			Width:   world.Width,
			Height:  world.Height,
			FPS:     cfg.TargetFPS,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Flush(); err != nil {
				logger.Error("failed to flush recording", slog.Any("error", err))
			}
		}()
		opts.Recorder = rec
		logger.Info("recording session", slog.String("path", cfg.RecordPath))
	}

	prev, err := ansii.MakeTermRaw()
	if err != nil {
		return err
	}
	defer ansii.RestoreTerm(prev)

	os.Stdout.WriteString(string(ansii.Screen.Title(title) + ansii.Screen.HideCursor + ansii.Screen.ClearScreen))
	defer os.Stdout.WriteString(string(ansii.Styles.Reset + ansii.Screen.ClearScreen + ansii.Screen.Home + ansii.Screen.ShowCursor))

	return Game(ctx, opts)
}

// Game runs the frame loop: read input, update the world, draw it. All
// game state stays on the calling goroutine; the input reader only hands
// over decoded actions.
func Game(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := make(chan renderer.UiAction, 64)
	readErr := make(chan error, 1)

	// Input handler
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := opts.In.Read(buf)
			for _, a := range renderer.Decode(buf[:n]) {
				select {
				case actions <- a:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(opts.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("game loop cancelled")
			return nil

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				logger.Debug("input closed")
				return nil
			}
			return fmt.Errorf("read input: %w", err)

		case a := <-actions:
			if a == renderer.Quit {
				logger.Info("player quit", slog.Int("score", opts.World.Score))
				return nil
			}
			opts.Keyboard.Press(a, time.Now())

		case now := <-ticker.C:
			if err := frame(opts, logger, now); err != nil {
				return err
			}
		}
	}
}

func frame(opts Options, logger *slog.Logger, now time.Time) error {
	w := opts.World
	in := opts.Keyboard.Sample(now)
	out := w.Update(in)

	if out.Changed() {
		logger.Debug("state changed",
			slog.String("from", out.From.String()),
			slog.String("to", out.To.String()),
			slog.Uint64("frame", w.Frame))
		if out.From == breakout.StateOver {
			logger.Info("game restarted")
		}
		if out.To == breakout.StateOver {
			logger.Info("game over", slog.Int("score", w.Score))
		}
	}
	if out.LifeLost {
		logger.Info("ball lost", slog.Int("lives", w.Lives))
	}

	if opts.Recorder != nil && replay.ShouldRecord(out.From, in) {
		if err := opts.Recorder.Write(replay.Record{Frame: w.Frame, Input: in}); err != nil {
			return err
		}
	}

	renderer.Draw(opts.Canvas, w)
	if _, err := io.WriteString(opts.Out, opts.Canvas.Frame()); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}
