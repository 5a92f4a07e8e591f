package loop

import (
	"time"

	"github.com/tomz197/fbroids/internal/config"
	"github.com/tomz197/fbroids/internal/object"
)

// Settings holds the tunable parameters of a run.
type Settings struct {
	Asteroids   int
	RefillWaves bool

	MaxProjectiles      int
	ProjectileSpeed     float32
	ProjectileSpeedMin  float32
	ProjectileSpeedMax  float32
	ProjectileSpeedStep float32
	FireCooldownTicks   int

	InputPollInterval int // ticks between input polls
	FrameTime         time.Duration
	SplashTicks       int

	Ship object.ShipTuning
}

// DefaultSettings returns the settings of the default configuration.
func DefaultSettings() Settings {
	return SettingsFrom(config.Default())
}

// SettingsFrom extracts the loop settings from a validated configuration.
func SettingsFrom(cfg config.Config) Settings {
	g := cfg.Game
	return Settings{
		Asteroids:           g.Asteroids,
		RefillWaves:         g.RefillWaves,
		MaxProjectiles:      g.MaxProjectiles,
		ProjectileSpeed:     g.ProjectileSpeed,
		ProjectileSpeedMin:  g.ProjectileSpeedMin,
		ProjectileSpeedMax:  g.ProjectileSpeedMax,
		ProjectileSpeedStep: g.ProjectileSpeedStep,
		FireCooldownTicks:   g.FireCooldownTicks,
		InputPollInterval:   max(g.InputPollInterval, 1),
		FrameTime:           g.FrameTime(),
		SplashTicks:         g.SplashTicks,
		Ship: object.ShipTuning{
			NoseDist:     cfg.Ship.Nose,
			BaseWidth:    cfg.Ship.BaseWidth,
			Thrust:       cfg.Ship.Thrust,
			RotationStep: cfg.Ship.RotationStep,
		},
	}
}
