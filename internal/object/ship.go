package object

import (
	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/physics"
)

// Friction is the per-tick speed decay applied to the ship.
const Friction = 0.85

// ShipTuning holds the geometry and handling parameters of the ship.
type ShipTuning struct {
	NoseDist     float32 // center to nose along forward
	BaseWidth    float32 // width of the triangle base
	Thrust       float32 // speed set by a full thrust intent
	RotationStep float32 // radians per rotation intent
}

// DefaultShipTuning returns the stock handling values.
func DefaultShipTuning() ShipTuning {
	return ShipTuning{
		NoseDist:     24,
		BaseWidth:    18,
		Thrust:       1.5,
		RotationStep: 0.08,
	}
}

// Ship is the player-controlled triangle.
type Ship struct {
	Pos   physics.Vec
	Angle float32 // radians; 0 faces +Y
	Speed float32 // scalar speed along forward
	ShipTuning
}

// NewShip creates a ship at rest in the center of the world.
func NewShip(b physics.Bounds, tuning ShipTuning) *Ship {
	return &Ship{
		Pos:        b.Center(),
		ShipTuning: tuning,
	}
}

// Forward returns the unit vector the ship faces.
func (s *Ship) Forward() physics.Vec {
	return physics.Forward(s.Angle)
}

// Nose returns the nose position in world space.
func (s *Ship) Nose() physics.Vec {
	return s.Pos.Add(s.Forward().Scale(s.NoseDist))
}

// Vertices returns nose, left-base and right-base in world space.
func (s *Ship) Vertices() [3]physics.Vec {
	h, w := s.NoseDist, s.BaseWidth
	local := [3]physics.Vec{
		{X: 0, Y: h},
		{X: -w / 2, Y: -h / 2},
		{X: w / 2, Y: -h / 2},
	}
	var out [3]physics.Vec
	for i, v := range local {
		out[i] = s.Pos.Add(v.Rotate(s.Angle))
	}
	return out
}

// Update applies one tick of intent. rot and thrust are -1, 0 or 1.
// Nonzero thrust sets the speed rather than adding to it; friction and
// wrapping always apply after the move.
func (s *Ship) Update(rot, thrust int8, b physics.Bounds) {
	s.Angle += float32(rot) * s.RotationStep
	if thrust != 0 {
		s.Speed = float32(thrust) * s.Thrust
	}

	s.Pos = s.Pos.Add(s.Forward().Scale(s.Speed))
	s.Speed *= Friction
	s.Pos = b.Wrap(s.Pos)
}

// Draw renders the ship as a wireframe triangle.
func (s *Ship) Draw(c *draw.Canvas) {
	v := s.Vertices()
	c.DrawTriangle(
		draw.Pt(v[0].X, v[0].Y),
		draw.Pt(v[1].X, v[1].Y),
		draw.Pt(v[2].X, v[2].Y),
		ShipColor,
	)
}
