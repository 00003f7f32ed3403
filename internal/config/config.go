// Package config provides settings loading for Temporal Precision: a YAML
// or TOML file, embedded defaults, TEMPORAL_* environment overrides and
// validation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/temporal-precision/internal/game"
	"github.com/vovakirdan/temporal-precision/internal/theme"
)

// Limits enforced by Validate.
const (
	MinFPS         = 1
	MaxFPS         = 240
	MaxQuickSelect = 9 // Bound to keys 1-9
)

// Config contains all settings.
type Config struct {
	Game        GameConfig        `yaml:"game" toml:"game"`
	Celebration CelebrationConfig `yaml:"celebration" toml:"celebration"`
	Display     DisplayConfig     `yaml:"display" toml:"display"`
	Log         LogConfig         `yaml:"log" toml:"log"`
	SSH         SSHConfig         `yaml:"ssh" toml:"ssh"`

	// Source is where the settings were read from, "embedded" for the
	// built-in defaults.
	Source string `yaml:"-" toml:"-"`
}

// GameConfig defines the game policy.
type GameConfig struct {
	Target      float64   `yaml:"target" toml:"target" env:"TARGET"`                   // Seconds
	QuickSelect []float64 `yaml:"quick_select" toml:"quick_select" env:"QUICK_SELECT"` // Preset targets
	MaxHistory  int       `yaml:"max_history" toml:"max_history" env:"MAX_HISTORY"`
}

// CelebrationConfig defines the new-record highlight.
type CelebrationConfig struct {
	Duration time.Duration `yaml:"duration" toml:"duration" env:"CELEBRATION_DURATION"`
	Policy   string        `yaml:"policy" toml:"policy" env:"CELEBRATION_POLICY"` // "restart" or "independent"
}

// DisplayConfig defines presentation settings.
type DisplayConfig struct {
	FPS            int     `yaml:"fps" toml:"fps" env:"FPS"`
	Theme          string  `yaml:"theme" toml:"theme" env:"THEME"` // Theme ID
	CloseThreshold float64 `yaml:"close_threshold" toml:"close_threshold" env:"CLOSE_THRESHOLD"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	Debug bool   `yaml:"debug" toml:"debug" env:"LOG_DEBUG"`
	File  string `yaml:"file" toml:"file" env:"LOG_FILE"`
}

// SSHConfig defines the serve command's listener.
type SSHConfig struct {
	Address     string        `yaml:"address" toml:"address" env:"SSH_ADDR"`
	HostKey     string        `yaml:"host_key" toml:"host_key" env:"SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" toml:"idle_timeout" env:"SSH_IDLE_TIMEOUT"`
}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var errs []error

	if err := game.ValidateTarget(c.Game.Target); err != nil {
		errs = append(errs, fmt.Errorf("game.target: %w", err))
	}
	if c.Game.MaxHistory < 1 {
		errs = append(errs, fmt.Errorf("game.max_history: must be at least 1, got %d", c.Game.MaxHistory))
	}
	if len(c.Game.QuickSelect) > MaxQuickSelect {
		errs = append(errs, fmt.Errorf("game.quick_select: at most %d values, got %d", MaxQuickSelect, len(c.Game.QuickSelect)))
	}
	for i, v := range c.Game.QuickSelect {
		if err := game.ValidateTarget(v); err != nil {
			errs = append(errs, fmt.Errorf("game.quick_select[%d]: %w", i, err))
		}
	}

	if c.Celebration.Duration <= 0 {
		errs = append(errs, fmt.Errorf("celebration.duration: must be positive, got %v", c.Celebration.Duration))
	}
	if !game.CelebrationPolicy(c.Celebration.Policy).Valid() {
		errs = append(errs, fmt.Errorf("celebration.policy: unknown policy %q", c.Celebration.Policy))
	}

	if c.Display.FPS < MinFPS || c.Display.FPS > MaxFPS {
		errs = append(errs, fmt.Errorf("display.fps: must be in [%d, %d], got %d", MinFPS, MaxFPS, c.Display.FPS))
	}
	if _, ok := theme.Get(c.Display.Theme); !ok {
		errs = append(errs, fmt.Errorf("display.theme: unknown theme %q", c.Display.Theme))
	}
	if c.Display.CloseThreshold < 0 {
		errs = append(errs, fmt.Errorf("display.close_threshold: must not be negative, got %v", c.Display.CloseThreshold))
	}

	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("ssh.idle_timeout: must not be negative, got %v", c.SSH.IdleTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

// GameOptions converts the settings into controller options.
// Time sources and the keeper are left for the caller to fill.
func (c Config) GameOptions(logger *log.Logger) game.Options {
	start, _ := theme.IndexOf(c.Display.Theme)
	return game.Options{
		Target:              c.Game.Target,
		MaxHistory:          c.Game.MaxHistory,
		ThemeCount:          theme.Count(),
		StartTheme:          start,
		CelebrationDuration: c.Celebration.Duration,
		CelebrationPolicy:   game.CelebrationPolicy(c.Celebration.Policy),
		Logger:              logger,
	}
}

// FrameInterval returns the redraw interval for the configured FPS.
func (c Config) FrameInterval() time.Duration {
	fps := c.Display.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
