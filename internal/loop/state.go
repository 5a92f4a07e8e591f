package loop

import (
	"github.com/tomz197/fbroids/internal/object"
	"github.com/tomz197/fbroids/internal/physics"
)

// State holds the simulated world. It is owned by the frame loop goroutine.
type State struct {
	Bounds      physics.Bounds
	Ship        *object.Ship
	Asteroids   []object.Asteroid
	Projectiles []object.Projectile

	ProjectileSpeed float32
	Tick            uint64
	cooldown        int // ticks until the next shot is allowed
}

// NewState creates a world of bounds with the ship at rest in the center.
func NewState(b physics.Bounds, s Settings) *State {
	return &State{
		Bounds:          b,
		Ship:            object.NewShip(b, s.Ship),
		Projectiles:     make([]object.Projectile, 0, s.MaxProjectiles),
		ProjectileSpeed: s.ProjectileSpeed,
	}
}

// Stats counts what happened during a run.
type Stats struct {
	Ticks   uint64
	Shots   int
	Dropped int // fire intents refused because the projectile cap was reached
	Hits    int
	Waves   int
}

// Retain returns a fresh slice holding the items for which keep reports true,
// in their original order.
func Retain[T any](items []T, keep func(i int) bool) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if keep(i) {
			out = append(out, items[i])
		}
	}
	return out
}
