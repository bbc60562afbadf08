// File: utils/config.go
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Level is one row of the AI difficulty table.
type Level struct {
	AIReaction float64 `json:"aiReaction" toml:"aiReaction" yaml:"aiReaction"` // Seconds a prediction is trusted before re-predicting
	AIError    float64 `json:"aiError" toml:"aiError" yaml:"aiError"`          // Max noise (px) added to a prediction made from across the court
}

// Config holds all configurable game parameters.
type Config struct {
	// Timing
	FPS           int     `json:"fps" toml:"fps" yaml:"fps"`                               // Simulation ticks per second when hosted by an actor or terminal
	MaxFrameDelta float64 `json:"maxFrameDelta" toml:"maxFrameDelta" yaml:"maxFrameDelta"` // Upper bound (s) on the dt handed to Match.Update

	// Court
	Width     float64 `json:"width" toml:"width" yaml:"width"`
	Height    float64 `json:"height" toml:"height" yaml:"height"`
	WallWidth float64 `json:"wallWidth" toml:"wallWidth" yaml:"wallWidth"`

	// Paddle
	PaddleWidth  float64 `json:"paddleWidth" toml:"paddleWidth" yaml:"paddleWidth"`
	PaddleHeight float64 `json:"paddleHeight" toml:"paddleHeight" yaml:"paddleHeight"`
	PaddleSpeed  float64 `json:"paddleSpeed" toml:"paddleSpeed" yaml:"paddleSpeed"` // Seconds to travel the full vertical range
	TiltFactor   float64 `json:"tiltFactor" toml:"tiltFactor" yaml:"tiltFactor"`    // Over-range applied to absolute (remote) positioning

	// Ball
	BallRadius float64 `json:"ballRadius" toml:"ballRadius" yaml:"ballRadius"`
	BallSpeed  float64 `json:"ballSpeed" toml:"ballSpeed" yaml:"ballSpeed"` // Seconds to cross the court horizontally at serve speed
	BallAccel  float64 `json:"ballAccel" toml:"ballAccel" yaml:"ballAccel"`

	// Match
	MaxGoals int `json:"maxGoals" toml:"maxGoals" yaml:"maxGoals"`

	// AI
	AIDeadband float64 `json:"aiDeadband" toml:"aiDeadband" yaml:"aiDeadband"` // Distance (px) from paddle center treated as on target
	Levels     []Level `json:"levels" toml:"levels" yaml:"levels"`

	// Presentation flags read by renderers
	Footprints  bool `json:"footprints" toml:"footprints" yaml:"footprints"`
	Predictions bool `json:"predictions" toml:"predictions" yaml:"predictions"`

	// Server
	Addr string `json:"addr" toml:"addr" yaml:"addr"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		// Timing
		FPS:           60,
		MaxFrameDelta: 0.1,

		// Court
		Width:     640,
		Height:    480,
		WallWidth: 12,

		// Paddle
		PaddleWidth:  12,
		PaddleHeight: 60,
		PaddleSpeed:  2,
		TiltFactor:   0.5,

		// Ball
		BallRadius: 5,
		BallSpeed:  4,
		BallAccel:  8,

		// Match
		MaxGoals: 9,

		// AI
		AIDeadband: 5,
		Levels:     DefaultLevels(),

		Addr: ":3001",
	}
}

// DefaultLevels is the 17 row difficulty table. Row 8 is used when scores are tied.
func DefaultLevels() []Level {
	levels := make([]Level, 17)
	for i := range levels {
		levels[i] = Level{
			AIReaction: 0.2 + 0.1*float64(i),
			AIError:    40 + 10*float64(i),
		}
	}
	return levels
}

// TickPeriod converts FPS into the ticker period used by runners.
func (c Config) TickPeriod() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// Level returns the level row for index, clamped into the table.
func (c Config) Level(index int) Level {
	if len(c.Levels) == 0 {
		return Level{}
	}
	if index < 0 {
		index = 0
	} else if index >= len(c.Levels) {
		index = len(c.Levels) - 1
	}
	return c.Levels[index]
}

// Validate fails fast on configurations the simulation cannot run with.
func (c Config) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"wallWidth", c.WallWidth},
		{"paddleWidth", c.PaddleWidth},
		{"paddleHeight", c.PaddleHeight},
		{"paddleSpeed", c.PaddleSpeed},
		{"ballRadius", c.BallRadius},
		{"ballSpeed", c.BallSpeed},
		{"maxFrameDelta", c.MaxFrameDelta},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.BallAccel < 0 {
		return fmt.Errorf("%w: ballAccel must not be negative, got %v", ErrInvalidConfig, c.BallAccel)
	}
	if c.TiltFactor < 0 {
		return fmt.Errorf("%w: tiltFactor must not be negative, got %v", ErrInvalidConfig, c.TiltFactor)
	}
	if c.AIDeadband < 0 {
		return fmt.Errorf("%w: aiDeadband must not be negative, got %v", ErrInvalidConfig, c.AIDeadband)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.MaxGoals < 1 {
		return fmt.Errorf("%w: maxGoals must be at least 1, got %d", ErrInvalidConfig, c.MaxGoals)
	}

	playHeight := c.Height - 2*c.WallWidth
	if c.PaddleHeight >= playHeight {
		return fmt.Errorf("%w: paddleHeight %v does not fit the play area %v", ErrInvalidConfig, c.PaddleHeight, playHeight)
	}
	if 2*c.BallRadius >= playHeight {
		return fmt.Errorf("%w: ballRadius %v does not fit the play area %v", ErrInvalidConfig, c.BallRadius, playHeight)
	}
	if 2*c.PaddleWidth+2*c.BallRadius >= c.Width {
		return fmt.Errorf("%w: paddles and ball do not fit the court width %v", ErrInvalidConfig, c.Width)
	}

	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: levels table is empty", ErrInvalidConfig)
	}
	for i, level := range c.Levels {
		if level.AIReaction < 0 || level.AIError < 0 {
			return fmt.Errorf("%w: level %d has negative values", ErrInvalidConfig, i)
		}
	}
	return nil
}

// LoadConfig overlays the file at path on DefaultConfig and validates the
// result. The format is picked from the extension: .toml, .yaml/.yml or .json.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
