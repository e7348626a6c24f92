package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

var Config Configuration

// MaxFPS is the highest frame rate a session recording will accept.
const MaxFPS = 1000

// Configuration only covers how the game runs. Gameplay constants live in
// package breakout.
type Configuration struct {
	LogLevel     int    `json:"logLevel" env:"BRICKS_LOG_LEVEL"`
	LogFile      string `json:"logFile" env:"BRICKS_LOG_FILE"`
	TargetFPS    int    `json:"targetFps" env:"BRICKS_TARGET_FPS"`
	HoldWindowMs int    `json:"holdWindowMs" env:"BRICKS_HOLD_WINDOW_MS"`
	RecordPath   string `json:"recordPath" env:"BRICKS_RECORD_PATH"`
}

func Default() Configuration {
	return Configuration{
		LogLevel:     int(slog.LevelInfo),
		LogFile:      "brickbreaker.log",
		TargetFPS:    60,
		HoldWindowMs: 120,
	}
}

// FrameInterval is the time between two ticks of the game loop.
func (c Configuration) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.TargetFPS)
}

func (c Configuration) HoldWindow() time.Duration {
	return time.Duration(c.HoldWindowMs) * time.Millisecond
}

// LoadConfig reads path, or config.json when path is empty, on top of the
// defaults and then applies environment overrides. A missing or unreadable
// file is not an error; bad environment values are.
func LoadConfig(path string) error {
	var c = Default()

	var cf []byte
	var err error
	if path != "" {
		cf, err = os.ReadFile(path)
	} else {
		cf, err = os.ReadFile("config.json")
	}
	if err != nil {
		slog.Info("failed to open config at path provided, using default config instead", slog.Any("error", err))
	} else if err = json.Unmarshal(cf, &c); err != nil {
		slog.Info("failed to read configuration, using default config instead", slog.Any("error", err))
		c = Default()
	}

	if err := env.Parse(&c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if c.TargetFPS <= 0 {
		slog.Info("target fps must be positive, using default", slog.Int("targetFps", c.TargetFPS))
		c.TargetFPS = Default().TargetFPS
	}
	if c.TargetFPS > MaxFPS {
		slog.Info("target fps too high, capping", slog.Int("targetFps", c.TargetFPS), slog.Int("max", MaxFPS))
		c.TargetFPS = MaxFPS
	}
	if c.HoldWindowMs <= 0 {
		c.HoldWindowMs = Default().HoldWindowMs
	}

	Config = c
	return nil
}
