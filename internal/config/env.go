package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables consulted on top of the config file.
const (
	EnvDisplay  = "FBROIDS_DISPLAY"
	EnvConfig   = "FBROIDS_CONFIG"
	EnvLogLevel = "FBROIDS_LOG_LEVEL"
	EnvFbdev    = "FBROIDS_FBDEV"
	EnvSeed     = "FBROIDS_SEED"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides cfg with any FBROIDS_* variables that are set.
func ApplyEnv(cfg *Config) error {
	cfg.Display.Backend = GetEnv(EnvDisplay, cfg.Display.Backend)
	cfg.Display.Device = GetEnv(EnvFbdev, cfg.Display.Device)
	if v := GetEnv(EnvSeed, ""); v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvSeed, v)
		}
		cfg.Game.Seed = seed
	}
	return nil
}
