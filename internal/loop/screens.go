package loop

import (
	"github.com/tomz197/fbroids/internal/draw"
)

// Splash overlays a logo on the first frames of a run.
type Splash struct {
	Logo  draw.RGBAImage
	Ticks uint64 // frames the logo stays up
}

// Active reports whether the logo is shown on tick.
func (s *Splash) Active(tick uint64) bool {
	return s != nil && tick < s.Ticks && len(s.Logo.Pix) > 0
}

// Draw blits the logo centered on c. A logo larger than c is anchored at
// the top-left corner and clipped.
func (s *Splash) Draw(c *draw.Canvas) {
	x := max((c.Width()-s.Logo.Width)/2, 0)
	y := max((c.Height()-s.Logo.Height)/2, 0)
	c.BlitRGBA(s.Logo, x, y)
}
