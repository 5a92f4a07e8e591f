// Package config provides YAML-based configuration for the display, the
// simulation and the ship, plus shared environment helpers.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Display backend names.
const (
	BackendMemory = "memory"
	BackendTerm   = "term"
	BackendTcell  = "tcell"
	BackendFbdev  = "fbdev"
)

// Config contains all configuration for a run.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Game    GameConfig    `yaml:"game"`
	Ship    ShipConfig    `yaml:"ship"`
}

// DisplayConfig selects and shapes the output device.
type DisplayConfig struct {
	Backend       string `yaml:"backend"`
	Device        string `yaml:"device"`
	PixelFormat   string `yaml:"pixel_format"`
	StridePadding int    `yaml:"stride_padding"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
}

// GameConfig defines simulation parameters.
type GameConfig struct {
	Asteroids           int     `yaml:"asteroids"`
	RefillWaves         bool    `yaml:"refill_waves"`
	MaxProjectiles      int     `yaml:"max_projectiles"`
	ProjectileSpeed     float32 `yaml:"projectile_speed"`
	ProjectileSpeedMin  float32 `yaml:"projectile_speed_min"`
	ProjectileSpeedMax  float32 `yaml:"projectile_speed_max"`
	ProjectileSpeedStep float32 `yaml:"projectile_speed_step"`
	FireCooldownTicks   int     `yaml:"fire_cooldown_ticks"`
	InputPollInterval   int     `yaml:"input_poll_interval"` // ticks between input polls
	FrameMicros         int     `yaml:"frame_micros"`
	SplashTicks         int     `yaml:"splash_ticks"`
	Seed                uint64  `yaml:"seed"` // 0 = seed from the clock
}

// FrameTime returns the per-tick pacing target.
func (g GameConfig) FrameTime() time.Duration {
	return time.Duration(g.FrameMicros) * time.Microsecond
}

// ShipConfig defines ship geometry and handling.
type ShipConfig struct {
	Nose         float32 `yaml:"nose"`
	BaseWidth    float32 `yaml:"base_width"`
	Thrust       float32 `yaml:"thrust"`
	RotationStep float32 `yaml:"rotation_step"`
}

// Validate checks that every value can drive a run.
func (c Config) Validate() error {
	switch c.Display.Backend {
	case BackendMemory, BackendTerm, BackendTcell, BackendFbdev:
	default:
		return fmt.Errorf("%w: display.backend %q", ErrInvalid, c.Display.Backend)
	}
	if c.Display.Backend == BackendMemory {
		if c.Display.Width <= 0 || c.Display.Height <= 0 {
			return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
		}
		if c.Display.StridePadding < 0 {
			return fmt.Errorf("%w: display.stride_padding %d", ErrInvalid, c.Display.StridePadding)
		}
	}

	g := c.Game
	if g.Asteroids < 0 {
		return fmt.Errorf("%w: game.asteroids %d", ErrInvalid, g.Asteroids)
	}
	if g.MaxProjectiles < 0 {
		return fmt.Errorf("%w: game.max_projectiles %d", ErrInvalid, g.MaxProjectiles)
	}
	if g.ProjectileSpeedMin <= 0 || g.ProjectileSpeedMin > g.ProjectileSpeedMax {
		return fmt.Errorf("%w: projectile speed range [%v, %v]", ErrInvalid, g.ProjectileSpeedMin, g.ProjectileSpeedMax)
	}
	if g.ProjectileSpeed < g.ProjectileSpeedMin || g.ProjectileSpeed > g.ProjectileSpeedMax {
		return fmt.Errorf("%w: game.projectile_speed %v outside [%v, %v]", ErrInvalid, g.ProjectileSpeed, g.ProjectileSpeedMin, g.ProjectileSpeedMax)
	}
	if g.ProjectileSpeedStep <= 0 {
		return fmt.Errorf("%w: game.projectile_speed_step %v", ErrInvalid, g.ProjectileSpeedStep)
	}
	if g.FireCooldownTicks < 0 {
		return fmt.Errorf("%w: game.fire_cooldown_ticks %d", ErrInvalid, g.FireCooldownTicks)
	}
	if g.InputPollInterval < 1 {
		return fmt.Errorf("%w: game.input_poll_interval %d", ErrInvalid, g.InputPollInterval)
	}
	if g.FrameMicros < 0 {
		return fmt.Errorf("%w: game.frame_micros %d", ErrInvalid, g.FrameMicros)
	}
	if g.SplashTicks < 0 {
		return fmt.Errorf("%w: game.splash_ticks %d", ErrInvalid, g.SplashTicks)
	}

	s := c.Ship
	if s.Nose <= 0 || s.BaseWidth <= 0 {
		return fmt.Errorf("%w: ship geometry nose=%v base_width=%v", ErrInvalid, s.Nose, s.BaseWidth)
	}
	if s.Thrust < 0 || s.RotationStep < 0 {
		return fmt.Errorf("%w: ship handling thrust=%v rotation_step=%v", ErrInvalid, s.Thrust, s.RotationStep)
	}
	return nil
}
