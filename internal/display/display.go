// Package display provides the output devices the back buffer is flushed
// into: an in-memory framebuffer, terminal renderers and the Linux fbdev.
package display

import (
	"errors"
	"fmt"

	"github.com/tomz197/fbroids/internal/draw"
)

// ErrUnavailable is returned when a display device cannot be opened.
var ErrUnavailable = errors.New("display unavailable")

// Mode describes a display, captured once when it is opened.
type Mode struct {
	Width  int // visible pixels per scanline
	Height int // scanlines
	Stride int // pixels between scanline starts, >= Width
	Format draw.PixelFormat
}

func (m Mode) String() string {
	return fmt.Sprintf("%dx%d stride=%d format=%s", m.Width, m.Height, m.Stride, m.Format)
}

// Display is a device with a linear framebuffer.
type Display interface {
	// Mode returns the geometry and pixel format of the device.
	Mode() Mode
	// Framebuffer returns the device memory the back buffer is flushed into.
	Framebuffer() *draw.Framebuffer
	// Present makes the framebuffer contents visible.
	Present() error
	// Close releases the device.
	Close() error
}

// newRegion allocates memory for a framebuffer of m.
func newRegion(m Mode) ([]byte, *draw.Framebuffer, error) {
	stride := m.Stride * draw.BytesPerPixel
	mem := make([]byte, stride*m.Height)
	fb, err := draw.NewFramebuffer(mem, m.Width, m.Height, stride)
	if err != nil {
		return nil, nil, err
	}
	return mem, fb, nil
}

// halfBlock returns the colors of the two pixels covered by terminal cell
// (col, row): the top pixel is drawn as foreground of '▀', the bottom as
// background.
func halfBlock(fb *draw.Framebuffer, p draw.PixelPacker, col, row int) (top, bottom draw.Color) {
	top = p.Unpack(fb.PixelAt(col, row*2))
	bottom = p.Unpack(fb.PixelAt(col, row*2+1))
	return top, bottom
}

// upperHalfBlock is the cell glyph used by the terminal renderers.
const upperHalfBlock = '▀'
