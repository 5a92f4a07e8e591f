package loop

import (
	"github.com/tomz197/fbroids/internal/object"
	"github.com/tomz197/fbroids/internal/physics"
	"github.com/tomz197/fbroids/internal/rng"
)

// Asteroid contact parameters.
const (
	restitution       = 0.9
	correctionSlop    = 0.01 // penetration left uncorrected
	correctionPercent = 0.8
	minSeparation     = 1e-5

	gridMinCell = 32.0 // keeps the grid coarse once only small fragments remain
)

// fallbackNormal is used when two centers coincide.
var fallbackNormal = physics.Vec{X: 1, Y: 0}

// ResolveAsteroidCollisions bounces overlapping asteroids off each other.
// Pairs are visited once each, in ascending index order, so earlier pairs
// see the effects of earlier resolutions within the same call.
func ResolveAsteroidCollisions(asteroids []object.Asteroid, b physics.Bounds) {
	for i := 0; i < len(asteroids); i++ {
		for j := i + 1; j < len(asteroids); j++ {
			resolvePair(&asteroids[i], &asteroids[j], b)
		}
	}
}

// resolvePair separates a1 and a2 along the contact normal and applies an
// inelastic impulse if they are approaching.
func resolvePair(a1, a2 *object.Asteroid, b physics.Bounds) {
	r1, r2 := a1.CollisionRadius(), a2.CollisionRadius()
	sum := r1 + r2

	delta := b.ShortestDelta(a1.Pos, a2.Pos)
	distSq := delta.LenSq()
	if distSq >= sum*sum {
		return
	}

	dist := physics.Sqrt(distSq)
	var n physics.Vec
	if dist <= minSeparation {
		n = fallbackNormal
		dist = sum
	} else {
		n = delta.Scale(1 / dist)
	}

	inv1 := 1 / a1.Mass()
	inv2 := 1 / a2.Mass()
	invSum := inv1 + inv2

	// Positional correction
	if penetration := sum - dist; penetration > 0 {
		corr := max(penetration-correctionSlop, 0) * correctionPercent / invSum
		a1.Pos = b.Wrap(a1.Pos.Sub(n.Scale(corr * inv1)))
		a2.Pos = b.Wrap(a2.Pos.Add(n.Scale(corr * inv2)))
	}

	// Impulse, only while approaching
	rel := a2.Vel.Sub(a1.Vel).Dot(n)
	if rel >= 0 {
		return
	}
	j := -(1 + restitution) * rel / invSum
	a1.Vel = a1.Vel.Sub(n.Scale(j * inv1))
	a2.Vel = a2.Vel.Add(n.Scale(j * inv2))
}

// hitResolver matches projectiles against asteroids. A spatial grid keyed
// by asteroid center narrows the candidates; its cells are at least as wide
// as the largest collision radius, so every asteroid containing a point lies
// in the 3x3 neighborhood of that point.
type hitResolver struct {
	grid  *physics.SpatialGrid
	radii []float32
	dead  []bool
}

func newHitResolver(b physics.Bounds) *hitResolver {
	return &hitResolver{grid: physics.NewSpatialGrid(b, gridMinCell)}
}

// prepare rebuilds the grid for the current asteroid positions.
func (h *hitResolver) prepare(asteroids []object.Asteroid) {
	h.radii = h.radii[:0]
	var maxRadius float32
	for i := range asteroids {
		r := asteroids[i].CollisionRadius()
		h.radii = append(h.radii, r)
		maxRadius = max(maxRadius, r)
	}

	h.grid.Reset(max(maxRadius, gridMinCell))
	for i := range asteroids {
		h.grid.Insert(asteroids[i].Pos, i)
	}

	if cap(h.dead) < len(asteroids) {
		h.dead = make([]bool, len(asteroids))
	}
	h.dead = h.dead[:len(asteroids)]
	clear(h.dead)
}

// firstHit returns the lowest-index live asteroid containing p, or -1.
func (h *hitResolver) firstHit(p physics.Vec, asteroids []object.Asteroid, b physics.Bounds) int {
	best := -1
	h.grid.QueryAround(p, func(i int) bool {
		if h.dead[i] || (best >= 0 && i >= best) {
			return false
		}
		if b.PointInCircle(p, asteroids[i].Pos, h.radii[i]) {
			best = i
		}
		return false
	})
	return best
}

// Resolve destroys every projectile that strikes a live asteroid together
// with that asteroid, splitting it. Projectiles are handled in order and
// each one takes at most the lowest-index asteroid it hits. It returns the
// surviving projectiles, the surviving asteroids followed by the children,
// and the number of hits.
func (h *hitResolver) Resolve(
	projectiles []object.Projectile,
	asteroids []object.Asteroid,
	r *rng.XorShift64,
	b physics.Bounds,
) ([]object.Projectile, []object.Asteroid, int) {
	if len(projectiles) == 0 || len(asteroids) == 0 {
		return projectiles, asteroids, 0
	}
	h.prepare(asteroids)

	spent := make([]bool, len(projectiles))
	var children []object.Asteroid
	hits := 0
	for pi := range projectiles {
		ai := h.firstHit(projectiles[pi].Pos, asteroids, b)
		if ai < 0 {
			continue
		}
		spent[pi] = true
		h.dead[ai] = true
		hits++
		for _, c := range asteroids[ai].SpawnChildren(r) {
			c.Pos = b.Wrap(c.Pos)
			children = append(children, c)
		}
	}
	if hits == 0 {
		return projectiles, asteroids, 0
	}

	survivors := Retain(projectiles, func(i int) bool { return !spent[i] })
	field := Retain(asteroids, func(i int) bool { return !h.dead[i] })
	return survivors, append(field, children...), hits
}
