package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Backend:     BackendTerm,
			Device:      "/dev/fb0",
			PixelFormat: "bgr",
			Width:       800,
			Height:      600,
		},
		Game: GameConfig{
			Asteroids:           6,
			RefillWaves:         true,
			MaxProjectiles:      100,
			ProjectileSpeed:     10,
			ProjectileSpeedMin:  2,
			ProjectileSpeedMax:  50,
			ProjectileSpeedStep: 1,
			FireCooldownTicks:   4,
			InputPollInterval:   2,
			FrameMicros:         16000,
			SplashTicks:         120,
		},
		Ship: ShipConfig{
			Nose:         24,
			BaseWidth:    18,
			Thrust:       1.5,
			RotationStep: 0.08,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
