// Package object holds the simulated entities: the ship, asteroids and
// projectiles, with their motion, geometry and draw routines.
package object

import (
	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/physics"
)

// Entity colors.
var (
	ShipColor       = draw.White
	AsteroidColor   = draw.Grey
	ProjectileColor = draw.Yellow
)

// WrapOffsets returns the translation offsets at which a wrapped object must
// be drawn: the identity first, then the eight toroidal neighbors
// (±width, ±height and their combinations).
func WrapOffsets(b physics.Bounds) [9]physics.Vec {
	var out [9]physics.Vec
	n := 1
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out[n] = physics.Vec{X: float32(dx) * b.Width, Y: float32(dy) * b.Height}
			n++
		}
	}
	return out
}

// toPoints rounds world positions into pixel points, translated by off.
func toPoints(dst []draw.Point, src []physics.Vec, off physics.Vec) {
	for i, v := range src {
		dst[i] = draw.Pt(v.X+off.X, v.Y+off.Y)
	}
}
