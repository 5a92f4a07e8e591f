package loop

import (
	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/input"
	"github.com/tomz197/fbroids/internal/object"
	"github.com/tomz197/fbroids/internal/physics"
	"github.com/tomz197/fbroids/internal/rng"
)

// Game advances the world one fixed tick at a time.
type Game struct {
	settings Settings
	state    *State
	rng      *rng.XorShift64
	spawner  *object.AsteroidSpawner
	hits     *hitResolver
	stats    Stats
}

// NewGame creates a game over b and spawns the first wave.
func NewGame(b physics.Bounds, s Settings, r *rng.XorShift64) *Game {
	g := &Game{
		settings: s,
		state:    NewState(b, s),
		rng:      r,
		spawner:  object.NewAsteroidSpawner(s.Asteroids, s.RefillWaves),
		hits:     newHitResolver(b),
	}
	g.state.Asteroids = g.spawner.Populate(r, b)
	g.stats.Waves = g.spawner.Waves()
	return g
}

// State returns the world state.
func (g *Game) State() *State { return g.state }

// Stats returns the counters so far.
func (g *Game) Stats() Stats { return g.stats }

// Step runs one tick of simulation for the given intent: ship, fire gating,
// projectiles, asteroids, asteroid contacts, then projectile hits.
func (g *Game) Step(in input.Intent) {
	s := g.state
	b := s.Bounds

	s.Ship.Update(in.Rotate, in.Thrust, b)
	g.gateFire(in)

	for i := range s.Projectiles {
		s.Projectiles[i].Update()
	}
	s.Projectiles = Retain(s.Projectiles, func(i int) bool {
		return s.Projectiles[i].OnScreen(b)
	})

	for i := range s.Asteroids {
		s.Asteroids[i].Update(b)
	}
	ResolveAsteroidCollisions(s.Asteroids, b)

	var hits int
	s.Projectiles, s.Asteroids, hits = g.hits.Resolve(s.Projectiles, s.Asteroids, g.rng, b)
	g.stats.Hits += hits

	if field, added := g.spawner.Update(s.Asteroids, g.rng, b); added {
		s.Asteroids = field
		g.stats.Waves = g.spawner.Waves()
	}

	s.Tick++
	g.stats.Ticks = s.Tick
}

// gateFire applies the speed adjustment and spawns a projectile if firing
// is allowed this tick.
func (g *Game) gateFire(in input.Intent) {
	s := g.state
	cfg := g.settings

	if in.SpeedUp {
		s.ProjectileSpeed = min(s.ProjectileSpeed+cfg.ProjectileSpeedStep, cfg.ProjectileSpeedMax)
	}
	if in.SpeedDown {
		s.ProjectileSpeed = max(s.ProjectileSpeed-cfg.ProjectileSpeedStep, cfg.ProjectileSpeedMin)
	}

	if s.cooldown > 0 {
		s.cooldown--
	}
	if !in.Fire || s.cooldown > 0 {
		return
	}
	if len(s.Projectiles) >= cfg.MaxProjectiles {
		g.stats.Dropped++
		return
	}
	s.Projectiles = append(s.Projectiles, object.NewProjectile(s.Ship, s.ProjectileSpeed))
	s.cooldown = cfg.FireCooldownTicks
	g.stats.Shots++
}

// Draw renders the world into c. It does not modify the state.
func (g *Game) Draw(c *draw.Canvas) {
	s := g.state
	c.Clear(draw.Black)
	for i := range s.Asteroids {
		s.Asteroids[i].Draw(c, s.Bounds)
	}
	for i := range s.Projectiles {
		s.Projectiles[i].Draw(c)
	}
	s.Ship.Draw(c)
}
