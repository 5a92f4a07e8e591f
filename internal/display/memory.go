package display

import (
	"fmt"

	"github.com/tomz197/fbroids/internal/draw"
)

// Memory is an in-process display. Scanlines may carry padding so that the
// stride differs from the width, as on real hardware.
type Memory struct {
	mode   Mode
	mem    []byte
	fb     *draw.Framebuffer
	frames int
}

// NewMemory creates a width×height display with padding extra pixels per
// scanline.
func NewMemory(width, height, padding int, format draw.PixelFormat) (*Memory, error) {
	if width <= 0 || height <= 0 || padding < 0 {
		return nil, fmt.Errorf("%w: memory display %dx%d padding %d", ErrUnavailable, width, height, padding)
	}
	mode := Mode{Width: width, Height: height, Stride: width + padding, Format: format}
	mem, fb, err := newRegion(mode)
	if err != nil {
		return nil, err
	}
	return &Memory{mode: mode, mem: mem, fb: fb}, nil
}

func (m *Memory) Mode() Mode                     { return m.mode }
func (m *Memory) Framebuffer() *draw.Framebuffer { return m.fb }
func (m *Memory) Close() error                   { return nil }

// Present counts the frame.
func (m *Memory) Present() error {
	m.frames++
	return nil
}

// Frames returns how many frames were presented.
func (m *Memory) Frames() int {
	return m.frames
}

// Bytes exposes the whole region, padding included.
func (m *Memory) Bytes() []byte {
	return m.mem
}
