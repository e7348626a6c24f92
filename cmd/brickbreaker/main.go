package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"brickbreaker/internal/client"
	"brickbreaker/internal/config"

	"github.com/google/uuid"
)

func main() {
	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := config.LoadConfig(path); err != nil {
		fmt.Fprintln(os.Stderr, "Sorry, the configuration is no good:", err)
		os.Exit(1)
	}

	// The terminal belongs to the game while it runs, so logs go to a file.
	logFile, err := os.OpenFile(config.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	session := uuid.New()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: slog.Level(config.Config.LogLevel),
	})).With(slog.String("session", session.String()))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting brick breaker", slog.Int("targetFps", config.Config.TargetFPS))
	if err := client.Run(ctx, config.Config, session, logger); err != nil {
		logger.Error("game exited with error", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, "Brick breaker stopped:", err)
		stop()
		logFile.Close()
		os.Exit(1)
	}
	logger.Info("bye")
}
