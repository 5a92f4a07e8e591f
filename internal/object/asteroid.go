package object

import (
	"math"

	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/physics"
	"github.com/tomz197/fbroids/internal/rng"
)

// Hexagon shape and split parameters.
const (
	Vertices = 6

	JitterMin = 0.75
	JitterMax = 1.25

	MaxSplitStage  = 2
	MinChildRadius = 4.0

	childVelocityKeep = 2.0 / 3.0
	kickMin           = 0.8
	kickMax           = 2.5
)

// Spawn placement parameters.
const (
	spawnMinCenterDist = 120.0 // keep clear of the ship's start
	spawnMinRadius     = 18.0
	spawnMinSpeed      = 0.5
	spawnMaxSpeed      = 2.0
	spawnMaxAttempts   = 64
)

const tau = 2 * math.Pi

// Asteroid is a jagged hexagon drifting through the wrapping world.
type Asteroid struct {
	Pos        physics.Vec
	Vel        physics.Vec
	Radius     float32           // base radius before jitter
	BaseAngle  float32           // hexagon orientation
	Jitter     [Vertices]float32 // per-vertex radius factors in [0.75, 1.25]
	SplitStage uint8             // 2: splits into 4, 1: splits into 2, 0: destroyed outright
}

// randomJitter fills a fresh set of vertex factors.
func randomJitter(r *rng.XorShift64) [Vertices]float32 {
	var j [Vertices]float32
	for i := range j {
		j[i] = r.Range(JitterMin, JitterMax)
	}
	return j
}

// NewRandomAsteroid creates a full-size asteroid away from the world center.
func NewRandomAsteroid(r *rng.XorShift64, b physics.Bounds) Asteroid {
	center := b.Center()
	maxRadius := min(b.Width, b.Height)*0.08 + 12

	var pos physics.Vec
	for attempt := 0; ; attempt++ {
		pos = physics.Vec{X: r.Range(0, b.Width), Y: r.Range(0, b.Height)}
		// Worlds too small to have a clear ring accept the last candidate.
		if pos.Sub(center).LenSq() >= spawnMinCenterDist*spawnMinCenterDist || attempt >= spawnMaxAttempts {
			break
		}
	}

	radius := r.Range(spawnMinRadius, maxRadius)
	speed := r.Range(spawnMinSpeed, spawnMaxSpeed)
	dir := r.Range(0, tau)

	return Asteroid{
		Pos:        pos,
		Vel:        physics.Forward(dir).Scale(speed),
		Radius:     radius,
		BaseAngle:  r.Range(0, tau),
		Jitter:     randomJitter(r),
		SplitStage: MaxSplitStage,
	}
}

// CollisionRadius approximates the hexagon by the mean of its smallest and
// largest jittered vertex radius.
func (a *Asteroid) CollisionRadius() float32 {
	minR := a.Radius * a.Jitter[0]
	maxR := minR
	for _, j := range a.Jitter[1:] {
		r := a.Radius * j
		minR = min(minR, r)
		maxR = max(maxR, r)
	}
	return 0.5 * (minR + maxR)
}

// Mass is the area proxy collision_radius² with unit density.
func (a *Asteroid) Mass() float32 {
	r := a.CollisionRadius()
	return r * r
}

// Update advances the asteroid by its velocity and wraps it.
func (a *Asteroid) Update(b physics.Bounds) {
	a.Pos = b.Wrap(a.Pos.Add(a.Vel))
}

// SpawnChildren returns the fragments produced when a projectile destroys a.
// Stage 2 yields 4 children, stage 1 yields 2, stage 0 none.
func (a *Asteroid) SpawnChildren(r *rng.XorShift64) []Asteroid {
	if a.SplitStage == 0 {
		return nil
	}
	count := 2
	if a.SplitStage >= 2 {
		count = 4
	}
	spread := float32(tau) / float32(count)
	radius := max(a.Radius*0.5, MinChildRadius)

	// Kicks fan out evenly around one random heading.
	spreadBase := r.Range(0, tau)

	out := make([]Asteroid, 0, count)
	for k := 0; k < count; k++ {
		baseAngle := r.Range(0, tau)
		jitter := randomJitter(r)
		dir := spreadBase + float32(k)*spread
		kick := physics.Forward(dir).Scale(r.Range(kickMin, kickMax))
		vel := a.Vel.Scale(childVelocityKeep).Add(kick)

		out = append(out, Asteroid{
			Pos:        a.Pos.Add(vel.Scale(0.5)),
			Vel:        vel,
			Radius:     radius,
			BaseAngle:  baseAngle,
			Jitter:     jitter,
			SplitStage: a.SplitStage - 1,
		})
	}
	return out
}

// Outline returns the hexagon vertices in world space, unwrapped.
func (a *Asteroid) Outline() [Vertices]physics.Vec {
	var out [Vertices]physics.Vec
	for k := range out {
		local := physics.Vec{Y: a.Radius * a.Jitter[k]}.Rotate(float32(k) * tau / Vertices)
		out[k] = a.Pos.Add(local.Rotate(a.BaseAngle))
	}
	return out
}

// Draw renders the asteroid outline at its position and at the eight
// toroidal neighbor offsets so that edge-straddling rocks appear on both sides.
func (a *Asteroid) Draw(c *draw.Canvas, b physics.Bounds) {
	outline := a.Outline()
	points := c.BorrowPoints(Vertices)
	for _, off := range WrapOffsets(b) {
		toPoints(points, outline[:], off)
		c.DrawPolygon(points, AsteroidColor)
	}
}
