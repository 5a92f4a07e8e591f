package object

import (
	"github.com/tomz197/fbroids/internal/physics"
	"github.com/tomz197/fbroids/internal/rng"
)

// AsteroidSpawner creates the asteroid field and, optionally, a fresh wave
// once the field has been cleared.
type AsteroidSpawner struct {
	target  int
	refill  bool
	waves   int
	spawned int
}

// NewAsteroidSpawner creates a spawner for waves of target asteroids.
func NewAsteroidSpawner(target int, refill bool) *AsteroidSpawner {
	if target < 0 {
		target = 0
	}
	return &AsteroidSpawner{
		target: target,
		refill: refill,
	}
}

// Populate returns a new wave of full-size asteroids.
func (s *AsteroidSpawner) Populate(r *rng.XorShift64, b physics.Bounds) []Asteroid {
	field := make([]Asteroid, 0, s.target)
	for i := 0; i < s.target; i++ {
		field = append(field, NewRandomAsteroid(r, b))
	}
	s.waves++
	s.spawned += s.target
	return field
}

// Update starts a new wave when every asteroid is gone and refill is on.
// It reports whether a wave was added.
func (s *AsteroidSpawner) Update(current []Asteroid, r *rng.XorShift64, b physics.Bounds) ([]Asteroid, bool) {
	if !s.refill || s.target == 0 || len(current) > 0 {
		return current, false
	}
	return append(current, s.Populate(r, b)...), true
}

// Waves returns how many waves have been spawned.
func (s *AsteroidSpawner) Waves() int {
	return s.waves
}

// Spawned returns the total number of full-size asteroids created.
func (s *AsteroidSpawner) Spawned() int {
	return s.spawned
}
