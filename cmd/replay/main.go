package main

import (
	"fmt"
	"log/slog"
	"os"

	"brickbreaker/internal/breakout"
	"brickbreaker/internal/config"
	"brickbreaker/internal/replay"
)

// Plays a recorded session through a fresh world without a terminal and
// reports where it ended up.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: replay <recording> [config.json]")
		os.Exit(2)
	}
	var path string
	if len(os.Args) > 2 {
		path = os.Args[2]
	}
	if err := config.LoadConfig(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(slog.Level(config.Config.LogLevel))

	if err := run(os.Args[1]); err != nil {
		slog.Error("replay failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	r, err := replay.NewReader(f)
	if err != nil {
		return err
	}
	slog.Info("replaying session",
		slog.String("session", r.Header.Session.String()),
		slog.Int("fps", r.Header.FPS))

	w := breakout.NewWorld(r.Header.Width, r.Header.Height)
	n, err := replay.Play(r, w)
	if err != nil {
		return fmt.Errorf("after %d records: %w", n, err)
	}

	slog.Info("replay finished",
		slog.Int("records", n),
		slog.Uint64("frames", w.Frame),
		slog.String("state", w.State.String()),
		slog.Int("score", w.Score),
		slog.Int("lives", w.Lives),
		slog.Int("bricksLeft", w.ActiveBricks()))
	return nil
}
