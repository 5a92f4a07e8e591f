package object

import (
	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/physics"
)

// ProjectileTrail is the drawn length of a projectile in pixels.
const ProjectileTrail = 6.0

// projectileFallbackDir is the travel direction assumed for a resting projectile.
var projectileFallbackDir = physics.Vec{X: 0, Y: 1}

// Projectile is a shot moving in a straight line. Projectiles do not wrap.
type Projectile struct {
	Pos physics.Vec
	Vel physics.Vec
}

// NewProjectile spawns a projectile at the ship's nose travelling along its
// forward vector at speed.
func NewProjectile(s *Ship, speed float32) Projectile {
	return Projectile{
		Pos: s.Nose(),
		Vel: s.Forward().Scale(speed),
	}
}

// Update advances the projectile by its velocity.
func (p *Projectile) Update() {
	p.Pos = p.Pos.Add(p.Vel)
}

// OnScreen reports whether the projectile is still inside the world.
func (p *Projectile) OnScreen(b physics.Bounds) bool {
	return b.Contains(p.Pos)
}

// direction returns the normalized velocity, or the fallback for a zero
// velocity.
func (p *Projectile) direction() physics.Vec {
	l := p.Vel.Len()
	if l == 0 {
		return projectileFallbackDir
	}
	return p.Vel.Scale(1 / l)
}

// Draw renders a short trail behind the projectile.
func (p *Projectile) Draw(c *draw.Canvas) {
	tail := p.Pos.Sub(p.direction().Scale(ProjectileTrail))
	c.DrawLine(draw.Pt(p.Pos.X, p.Pos.Y), draw.Pt(tail.X, tail.Y), ProjectileColor)
}
