package object

import (
	"math"
	"testing"

	"github.com/tomz197/fbroids/internal/alloc"
	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/physics"
	"github.com/tomz197/fbroids/internal/rng"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func uniformAsteroid(pos physics.Vec, radius float32) Asteroid {
	return Asteroid{
		Pos:        pos,
		Radius:     radius,
		Jitter:     [Vertices]float32{1, 1, 1, 1, 1, 1},
		SplitStage: MaxSplitStage,
	}
}

func TestAsteroidWrapScenario(t *testing.T) {
	b := physics.NewBounds(800, 600)
	a := uniformAsteroid(physics.Vec{X: 799, Y: 300}, 20)
	a.Vel = physics.Vec{X: 5}

	a.Update(b)
	if !near(a.Pos.X, 4, 1e-4) || !near(a.Pos.Y, 300, 1e-4) {
		t.Errorf("position after wrap = %v, expected (4, 300)", a.Pos)
	}
}

func TestWrapInvariantAfterUpdates(t *testing.T) {
	b := physics.NewBounds(320, 200)
	r := rng.New(99)

	ship := NewShip(b, DefaultShipTuning())
	field := NewAsteroidSpawner(12, false).Populate(r, b)
	for i := range field {
		field[i].Vel = field[i].Vel.Scale(9)
	}

	for tick := 0; tick < 500; tick++ {
		ship.Update(int8(tick%3-1), 1, b)
		if ship.Pos.X < 0 || ship.Pos.X >= b.Width || ship.Pos.Y < 0 || ship.Pos.Y >= b.Height {
			t.Fatalf("tick %d: ship at %v outside world", tick, ship.Pos)
		}
		for i := range field {
			field[i].Update(b)
			p := field[i].Pos
			if p.X < 0 || p.X >= b.Width || p.Y < 0 || p.Y >= b.Height {
				t.Fatalf("tick %d: asteroid %d at %v outside world", tick, i, p)
			}
		}
	}
}

func TestCollisionRadius(t *testing.T) {
	a := uniformAsteroid(physics.Vec{}, 20)
	a.Jitter = [Vertices]float32{0.75, 1.0, 1.25, 0.9, 1.1, 1.0}

	// min 15, max 25
	if got := a.CollisionRadius(); !near(got, 20, 1e-5) {
		t.Errorf("CollisionRadius() = %v, expected 20", got)
	}
	if got := a.Mass(); !near(got, 400, 1e-3) {
		t.Errorf("Mass() = %v, expected 400", got)
	}
}

func TestCollisionRadiusPermutationInvariant(t *testing.T) {
	base := [Vertices]float32{0.8, 1.2, 0.95, 1.05, 0.77, 1.24}
	a := uniformAsteroid(physics.Vec{}, 31)
	a.Jitter = base
	expected := a.CollisionRadius()

	r := rng.New(5)
	for i := 0; i < 50; i++ {
		perm := base
		for j := Vertices - 1; j > 0; j-- {
			k := int(r.Uint32() % uint32(j+1))
			perm[j], perm[k] = perm[k], perm[j]
		}
		a.Jitter = perm
		if got := a.CollisionRadius(); got != expected {
			t.Fatalf("permutation %v radius %v, expected %v", perm, got, expected)
		}
	}
}

func TestMassPositive(t *testing.T) {
	r := rng.New(3)
	b := physics.NewBounds(800, 600)
	for i := 0; i < 200; i++ {
		a := NewRandomAsteroid(r, b)
		if a.Mass() <= 0 {
			t.Fatalf("asteroid %+v has non-positive mass", a)
		}
		for _, j := range a.Jitter {
			if j < JitterMin || j > JitterMax {
				t.Fatalf("jitter %v outside [%v,%v]", j, JitterMin, JitterMax)
			}
		}
	}
}

func TestRandomAsteroidPlacement(t *testing.T) {
	b := physics.NewBounds(800, 600)
	r := rng.New(77)
	maxRadius := float32(600*0.08 + 12)

	for i := 0; i < 300; i++ {
		a := NewRandomAsteroid(r, b)
		if d := a.Pos.Sub(b.Center()).Len(); d < spawnMinCenterDist {
			t.Fatalf("asteroid spawned %v from center", d)
		}
		if a.Radius < spawnMinRadius || a.Radius > maxRadius {
			t.Fatalf("radius %v outside [%v,%v]", a.Radius, spawnMinRadius, maxRadius)
		}
		if s := a.Vel.Len(); s < spawnMinSpeed-1e-4 || s > spawnMaxSpeed+1e-4 {
			t.Fatalf("speed %v outside range", s)
		}
		if a.SplitStage != MaxSplitStage {
			t.Fatalf("split stage %d, expected %d", a.SplitStage, MaxSplitStage)
		}
	}
}

func TestRandomAsteroidTinyWorldTerminates(t *testing.T) {
	b := physics.NewBounds(50, 50)
	a := NewRandomAsteroid(rng.New(1), b)
	if !b.Contains(a.Pos) {
		t.Errorf("asteroid at %v outside tiny world", a.Pos)
	}
}

func TestSpawnChildren(t *testing.T) {
	tests := []struct {
		name           string
		stage          uint8
		radius         float32
		expectedCount  int
		expectedStage  uint8
		expectedRadius float32
	}{
		{"stage 2 splits into 4", 2, 40, 4, 1, 20},
		{"stage 1 splits into 2", 1, 20, 2, 0, 10},
		{"stage 0 leaves nothing", 0, 10, 0, 0, 0},
		{"radius floor", 2, 6, 4, 1, MinChildRadius},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parent := uniformAsteroid(physics.Vec{X: 100, Y: 100}, tc.radius)
			parent.SplitStage = tc.stage
			parent.Vel = physics.Vec{X: 3, Y: -1.5}

			kids := parent.SpawnChildren(rng.New(11))
			if len(kids) != tc.expectedCount {
				t.Fatalf("got %d children, expected %d", len(kids), tc.expectedCount)
			}
			inherited := parent.Vel.Scale(2.0 / 3.0)
			for _, k := range kids {
				if k.SplitStage != tc.expectedStage {
					t.Errorf("child stage %d, expected %d", k.SplitStage, tc.expectedStage)
				}
				if k.Radius != tc.expectedRadius {
					t.Errorf("child radius %v, expected %v", k.Radius, tc.expectedRadius)
				}
				kick := k.Vel.Sub(inherited).Len()
				if kick < kickMin-1e-4 || kick > kickMax+1e-4 {
					t.Errorf("kick magnitude %v outside [%v,%v]", kick, kickMin, kickMax)
				}
				offset := k.Pos.Sub(parent.Pos)
				half := k.Vel.Scale(0.5)
				if !near(offset.X, half.X, 1e-4) || !near(offset.Y, half.Y, 1e-4) {
					t.Errorf("child offset %v, expected half velocity %v", offset, half)
				}
				for _, j := range k.Jitter {
					if j < JitterMin || j > JitterMax {
						t.Errorf("child jitter %v out of range", j)
					}
				}
			}
		})
	}
}

func TestSpawnChildrenKicksSpreadEvenly(t *testing.T) {
	parent := uniformAsteroid(physics.Vec{X: 50, Y: 50}, 30)
	kids := parent.SpawnChildren(rng.New(8)) // parent at rest: velocity is pure kick

	for i := 1; i < len(kids); i++ {
		a := kids[0].Vel
		b := kids[i].Vel
		cos := a.Dot(b) / (a.Len() * b.Len())
		expected := float32(math.Cos(float64(i) * math.Pi / 2))
		if !near(cos, expected, 1e-4) {
			t.Errorf("child %d angle cos %v, expected %v", i, cos, expected)
		}
	}
}

func TestShipThrustSetsSpeedAndFriction(t *testing.T) {
	b := physics.NewBounds(800, 600)
	s := NewShip(b, DefaultShipTuning())

	s.Update(0, 1, b)
	// Moved by the full thrust, then friction.
	if !near(s.Pos.Y, 300+1.5, 1e-4) || !near(s.Pos.X, 400, 1e-4) {
		t.Errorf("position after thrust = %v", s.Pos)
	}
	if !near(s.Speed, 1.5*0.85, 1e-5) {
		t.Errorf("speed = %v, expected %v", s.Speed, 1.5*0.85)
	}

	// Thrust again resets rather than accumulates.
	s.Update(0, 1, b)
	if !near(s.Speed, 1.5*0.85, 1e-5) {
		t.Errorf("speed after second thrust = %v, expected reset to %v", s.Speed, 1.5*0.85)
	}

	// Coasting decays.
	s.Update(0, 0, b)
	if !near(s.Speed, 1.5*0.85*0.85, 1e-5) {
		t.Errorf("coasting speed = %v", s.Speed)
	}

	s.Update(0, -1, b)
	if !near(s.Speed, -1.5*0.85, 1e-5) {
		t.Errorf("reverse speed = %v", s.Speed)
	}
}

func TestShipRotation(t *testing.T) {
	b := physics.NewBounds(800, 600)
	s := NewShip(b, DefaultShipTuning())
	for i := 0; i < 10; i++ {
		s.Update(1, 0, b)
	}
	if !near(s.Angle, 0.8, 1e-5) {
		t.Errorf("angle = %v, expected 0.8", s.Angle)
	}
	s.Update(-1, 0, b)
	if !near(s.Angle, 0.72, 1e-5) {
		t.Errorf("angle = %v, expected 0.72", s.Angle)
	}
}

func TestShipGeometry(t *testing.T) {
	b := physics.NewBounds(800, 600)
	s := NewShip(b, DefaultShipTuning())

	nose := s.Nose()
	if !near(nose.X, 400, 1e-4) || !near(nose.Y, 324, 1e-4) {
		t.Errorf("Nose() = %v, expected (400, 324)", nose)
	}
	v := s.Vertices()
	if v[0] != nose {
		t.Errorf("first vertex %v should be the nose %v", v[0], nose)
	}
	if !near(v[1].X, 391, 1e-4) || !near(v[1].Y, 288, 1e-4) {
		t.Errorf("left base = %v", v[1])
	}
	if !near(v[2].X, 409, 1e-4) || !near(v[2].Y, 288, 1e-4) {
		t.Errorf("right base = %v", v[2])
	}

	// Facing +X after a quarter turn the other way: forward(-π/2) = (1, 0).
	s.Angle = -math.Pi / 2
	nose = s.Nose()
	if !near(nose.X, 424, 1e-3) || !near(nose.Y, 300, 1e-3) {
		t.Errorf("rotated Nose() = %v, expected (424, 300)", nose)
	}
}

func TestProjectileSpawnAndCull(t *testing.T) {
	b := physics.NewBounds(800, 600)
	s := NewShip(b, DefaultShipTuning())
	p := NewProjectile(s, 10)
	if p.Pos != s.Nose() {
		t.Errorf("projectile at %v, expected nose %v", p.Pos, s.Nose())
	}
	if !near(p.Vel.Y, 10, 1e-5) || !near(p.Vel.X, 0, 1e-5) {
		t.Errorf("projectile velocity %v", p.Vel)
	}

	q := Projectile{Pos: physics.Vec{X: 400, Y: 300}, Vel: physics.Vec{Y: -20}}
	ticks := 0
	for q.OnScreen(b) {
		q.Update()
		ticks++
		if q.Pos.Y >= 0 && !q.OnScreen(b) {
			t.Fatalf("culled while still at y=%v", q.Pos.Y)
		}
	}
	if ticks != 16 || q.Pos.Y >= 0 {
		t.Errorf("culled after %d ticks at y=%v, expected 16 ticks and y<0", ticks, q.Pos.Y)
	}
}

func newCanvas(t *testing.T, w, h int) *draw.Canvas {
	t.Helper()
	c, err := draw.NewCanvas(w, h, draw.FormatRGB, alloc.Heap{})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestProjectileDrawZeroVelocity(t *testing.T) {
	c := newCanvas(t, 20, 20)
	p := Projectile{Pos: physics.Vec{X: 10, Y: 10}}
	p.Draw(c)
	// Trail runs against the fallback direction (0,1): upward.
	if c.PixelAt(10, 10) != ProjectileColor || c.PixelAt(10, 4) != ProjectileColor {
		t.Error("zero-velocity projectile trail not drawn upward")
	}
	if c.PixelAt(10, 11) == ProjectileColor {
		t.Error("trail extends forward")
	}
}

func TestProjectileDrawTrail(t *testing.T) {
	c := newCanvas(t, 30, 30)
	p := Projectile{Pos: physics.Vec{X: 20, Y: 15}, Vel: physics.Vec{X: 12}}
	p.Draw(c)
	for x := 14; x <= 20; x++ {
		if c.PixelAt(x, 15) != ProjectileColor {
			t.Errorf("trail pixel (%d,15) not set", x)
		}
	}
	if c.PixelAt(13, 15) == ProjectileColor || c.PixelAt(21, 15) == ProjectileColor {
		t.Error("trail longer than expected")
	}
}

func TestAsteroidDrawWrapsAcrossEdges(t *testing.T) {
	b := physics.NewBounds(100, 80)
	c := newCanvas(t, 100, 80)
	a := uniformAsteroid(physics.Vec{X: 98, Y: 40}, 10)
	a.Draw(c, b)

	// The left flank is a vertical edge at x ≈ 89; the right flank sits past
	// the seam at x ≈ 106.7 and must show up at x ≈ 7.
	leftSide := false
	for y := 30; y <= 50; y++ {
		for x := 0; x <= 10; x++ {
			if c.PixelAt(x, y) == AsteroidColor {
				leftSide = true
			}
		}
	}
	if !leftSide {
		t.Error("asteroid on the right edge is not drawn on the left side")
	}
	if c.PixelAt(89, 40) != AsteroidColor {
		t.Error("left flank at (89,40) not drawn")
	}
}

func TestShipDraw(t *testing.T) {
	b := physics.NewBounds(100, 100)
	c := newCanvas(t, 100, 100)
	s := NewShip(b, DefaultShipTuning())
	s.Draw(c)
	for _, v := range s.Vertices() {
		p := draw.Pt(v.X, v.Y)
		if c.PixelAt(p.X, p.Y) != ShipColor {
			t.Errorf("ship vertex %v not drawn", p)
		}
	}
}

func TestAsteroidSpawner(t *testing.T) {
	b := physics.NewBounds(800, 600)
	r := rng.New(4)

	s := NewAsteroidSpawner(5, true)
	field := s.Populate(r, b)
	if len(field) != 5 {
		t.Fatalf("Populate gave %d asteroids", len(field))
	}
	if _, added := s.Update(field, r, b); added {
		t.Error("spawner refilled a non-empty field")
	}
	refilled, added := s.Update(nil, r, b)
	if !added || len(refilled) != 5 || s.Waves() != 2 || s.Spawned() != 10 {
		t.Errorf("refill: added=%v len=%d waves=%d spawned=%d", added, len(refilled), s.Waves(), s.Spawned())
	}

	noRefill := NewAsteroidSpawner(5, false)
	if out, added := noRefill.Update(nil, r, b); added || len(out) != 0 {
		t.Error("spawner without refill added a wave")
	}
}

func TestWrapOffsets(t *testing.T) {
	off := WrapOffsets(physics.NewBounds(10, 20))
	if off[0] != (physics.Vec{}) {
		t.Errorf("first offset %v, expected identity", off[0])
	}
	seen := map[physics.Vec]bool{}
	for _, o := range off {
		seen[o] = true
		if (o.X != 0 && o.X != 10 && o.X != -10) || (o.Y != 0 && o.Y != 20 && o.Y != -20) {
			t.Errorf("unexpected offset %v", o)
		}
	}
	if len(seen) != 9 {
		t.Errorf("offsets not distinct: %v", off)
	}
}
