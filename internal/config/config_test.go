package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded config differs from Default():\n%+v\n%+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, work)

	userPath := filepath.Join(home, ".fbroids", "game.yaml")
	localPath := filepath.Join("configs", "game.yaml")
	customPath := filepath.Join(work, "custom.yaml")

	// Nothing on disk: embedded default.
	cfg, src, err := Load("")
	if err != nil || src != SourceEmbedded || cfg.Game.Asteroids != 6 {
		t.Fatalf("embedded: src=%q asteroids=%d err=%v", src, cfg.Game.Asteroids, err)
	}

	writeFile(t, localPath, "game:\n  asteroids: 3\n")
	cfg, src, err = Load("")
	if err != nil || src != localPath || cfg.Game.Asteroids != 3 {
		t.Fatalf("local: src=%q asteroids=%d err=%v", src, cfg.Game.Asteroids, err)
	}

	writeFile(t, userPath, "game:\n  asteroids: 9\n")
	cfg, src, err = Load("")
	if err != nil || src != userPath || cfg.Game.Asteroids != 9 {
		t.Fatalf("user: src=%q asteroids=%d err=%v", src, cfg.Game.Asteroids, err)
	}

	writeFile(t, customPath, "game:\n  asteroids: 12\n")
	cfg, src, err = Load(customPath)
	if err != nil || src != customPath || cfg.Game.Asteroids != 12 {
		t.Fatalf("custom: src=%q asteroids=%d err=%v", src, cfg.Game.Asteroids, err)
	}

	// Keys missing from a file keep their defaults.
	if cfg.Game.MaxProjectiles != 100 || cfg.Ship.Nose != 24 {
		t.Errorf("partial file lost defaults: %+v", cfg)
	}
}

func TestLoadSkipsBrokenUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	writeFile(t, filepath.Join(home, ".fbroids", "game.yaml"), "game: [not, a, map")
	_, src, err := Load("")
	if err != nil || src != SourceEmbedded {
		t.Errorf("broken user file: src=%q err=%v, expected embedded fallback", src, err)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "display: {backend: term")
	if _, _, err := Load(bad); err == nil {
		t.Error("unparsable custom file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"unknown backend", func(c *Config) { c.Display.Backend = "x11" }, false},
		{"memory zero width", func(c *Config) { c.Display.Backend = BackendMemory; c.Display.Width = 0 }, false},
		{"memory negative padding", func(c *Config) { c.Display.Backend = BackendMemory; c.Display.StridePadding = -1 }, false},
		{"term ignores memory size", func(c *Config) { c.Display.Width = 0 }, true},
		{"negative asteroids", func(c *Config) { c.Game.Asteroids = -1 }, false},
		{"speed below min", func(c *Config) { c.Game.ProjectileSpeed = 1 }, false},
		{"inverted range", func(c *Config) { c.Game.ProjectileSpeedMin = 60 }, false},
		{"zero step", func(c *Config) { c.Game.ProjectileSpeedStep = 0 }, false},
		{"zero poll interval", func(c *Config) { c.Game.InputPollInterval = 0 }, false},
		{"zero nose", func(c *Config) { c.Ship.Nose = 0 }, false},
		{"zero frame time", func(c *Config) { c.Game.FrameMicros = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDisplay, BackendMemory)
	t.Setenv(EnvFbdev, "/dev/fb1")
	t.Setenv(EnvSeed, "0x2a")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Backend != BackendMemory || cfg.Display.Device != "/dev/fb1" || cfg.Game.Seed != 42 {
		t.Errorf("env not applied: %+v", cfg.Display)
	}

	t.Setenv(EnvSeed, "many")
	if err := ApplyEnv(&cfg); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad seed: expected ErrInvalid, got %v", err)
	}
}

func TestFrameTime(t *testing.T) {
	g := Default().Game
	if got := g.FrameTime().Microseconds(); got != 16000 {
		t.Errorf("FrameTime() = %dµs, expected 16000", got)
	}
}

func TestMarshalLoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Display.Backend = BackendMemory
	cfg.Game.Seed = 42
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("decoded %+v, expected %+v", back, cfg)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
