// Package physics provides float32 vector math, toroidal world bounds and
// broad-phase collision helpers.
package physics

import "math"

// Vec is a 2D vector in screen space (X right, Y down).
type Vec struct {
	X, Y float32
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec) Scale(s float32) Vec { return Vec{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float32 { return v.X*o.X + v.Y*o.Y }

// LenSq returns the squared length of v.
func (v Vec) LenSq() float32 { return v.X*v.X + v.Y*v.Y }

// Len returns the length of v.
func (v Vec) Len() float32 { return Sqrt(v.LenSq()) }

// Rotate rotates v by angle radians. (0,1) rotated by θ equals Forward(θ).
func (v Vec) Rotate(angle float32) Vec {
	s, c := Sin(angle), Cos(angle)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Forward returns the unit vector a body at angle θ faces; θ=0 points to +Y.
func Forward(angle float32) Vec {
	return Vec{-Sin(angle), Cos(angle)}
}

// Sin is a float32 sine.
func Sin(a float32) float32 { return float32(math.Sin(float64(a))) }

// Cos is a float32 cosine.
func Cos(a float32) float32 { return float32(math.Cos(float64(a))) }

// Sqrt is a float32 square root.
func Sqrt(a float32) float32 { return float32(math.Sqrt(float64(a))) }

// Bounds is the immutable size of a wrap-around world in pixels.
type Bounds struct {
	Width, Height float32
}

// NewBounds returns bounds for a world of w×h pixels.
func NewBounds(w, h int) Bounds {
	return Bounds{Width: float32(w), Height: float32(h)}
}

// Center returns the middle of the world.
func (b Bounds) Center() Vec {
	return Vec{b.Width / 2, b.Height / 2}
}

// Wrap re-maps p into [0,Width)×[0,Height) by adding or subtracting the
// dimension until the coordinate is inside.
func (b Bounds) Wrap(p Vec) Vec {
	return Vec{wrapAxis(p.X, b.Width), wrapAxis(p.Y, b.Height)}
}

func wrapAxis(v, dim float32) float32 {
	if dim <= 0 {
		return v
	}
	if v < -dim || v >= 2*dim {
		// Far outside: fold first so the loops below run at most once.
		v = float32(math.Mod(float64(v), float64(dim)))
	}
	for v < 0 {
		v += dim
	}
	for v >= dim {
		v -= dim
	}
	return v
}

// Contains reports whether p lies inside the world without wrapping.
func (b Bounds) Contains(p Vec) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// ShortestDelta returns the minimum-distance vector from a to b on the torus.
func (b Bounds) ShortestDelta(from, to Vec) Vec {
	return Vec{
		shortestAxis(to.X-from.X, b.Width),
		shortestAxis(to.Y-from.Y, b.Height),
	}
}

func shortestAxis(d, dim float32) float32 {
	half := 0.5 * dim
	if d > half {
		d -= dim
	} else if d < -half {
		d += dim
	}
	return d
}

// TorusDistanceSquared returns the squared shortest distance between a and b.
func (b Bounds) TorusDistanceSquared(from, to Vec) float32 {
	return b.ShortestDelta(from, to).LenSq()
}

// PointInCircle reports whether p is within radius of c on the torus.
func (b Bounds) PointInCircle(p, c Vec, radius float32) bool {
	return b.TorusDistanceSquared(p, c) <= radius*radius
}

// CirclesOverlap reports whether two circles overlap on the torus.
func (b Bounds) CirclesOverlap(c1 Vec, r1 float32, c2 Vec, r2 float32) bool {
	sum := r1 + r2
	return b.TorusDistanceSquared(c1, c2) < sum*sum
}
