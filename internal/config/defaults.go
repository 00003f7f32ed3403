package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/temporal-precision/internal/game"
	"github.com/vovakirdan/temporal-precision/internal/score"
)

//go:embed defaults/temporal.yaml
var defaultYAML []byte

// DefaultSSHAddress is the listener used by serve when none is configured.
const DefaultSSHAddress = ":23240"

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Target:      game.DefaultTarget,
			QuickSelect: []float64{1, 3, 5, 10},
			MaxHistory:  score.DefaultMaxHistory,
		},
		Celebration: CelebrationConfig{
			Duration: game.DefaultCelebrationDuration,
			Policy:   string(game.CelebrationRestart),
		},
		Display: DisplayConfig{
			FPS:            60,
			Theme:          "01",
			CloseThreshold: score.DefaultCloseThreshold,
		},
		SSH: SSHConfig{
			Address:     DefaultSSHAddress,
			IdleTimeout: 30 * time.Minute,
		},
		Source: sourceEmbedded,
	}
}
