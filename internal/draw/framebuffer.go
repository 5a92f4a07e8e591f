package draw

import (
	"errors"
	"fmt"
)

// ErrFramebufferTooSmall is returned when a memory region cannot hold the
// requested geometry.
var ErrFramebufferTooSmall = errors.New("framebuffer region too small")

// Framebuffer is a device-owned memory region of known width, height and
// scanline stride. Callers only get bounded row and whole-image copies.
type Framebuffer struct {
	mem    []byte
	width  int // pixels
	height int // pixels
	stride int // bytes per scanline
}

// NewFramebuffer wraps mem as a width×height image whose scanlines start
// strideBytes apart.
func NewFramebuffer(mem []byte, width, height, strideBytes int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFramebufferTooSmall, width, height)
	}
	rowBytes := width * BytesPerPixel
	if strideBytes < rowBytes {
		return nil, fmt.Errorf("%w: stride %d below row size %d", ErrFramebufferTooSmall, strideBytes, rowBytes)
	}
	need := strideBytes*(height-1) + rowBytes
	if len(mem) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrFramebufferTooSmall, len(mem), need)
	}
	return &Framebuffer{mem: mem, width: width, height: height, stride: strideBytes}, nil
}

// Width returns the visible width in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the visible height in pixels.
func (f *Framebuffer) Height() int { return f.height }

// Stride returns the scanline stride in bytes.
func (f *Framebuffer) Stride() int { return f.stride }

// RowBytes returns the visible bytes per scanline.
func (f *Framebuffer) RowBytes() int { return f.width * BytesPerPixel }

// Contiguous reports whether scanlines are packed without padding.
func (f *Framebuffer) Contiguous() bool { return f.stride == f.RowBytes() }

// WriteRow copies src into scanline y. src is truncated to the visible row.
func (f *Framebuffer) WriteRow(y int, src []byte) {
	if y < 0 || y >= f.height {
		return
	}
	off := y * f.stride
	copy(f.mem[off:off+f.RowBytes()], src)
}

// WriteAll copies a tightly packed image into the region. On a contiguous
// framebuffer this is a single copy, otherwise it falls back to rows.
func (f *Framebuffer) WriteAll(src []byte) {
	n := f.RowBytes() * f.height
	if !f.Contiguous() {
		for y := 0; y < f.height && y*f.RowBytes() < len(src); y++ {
			f.WriteRow(y, src[y*f.RowBytes():])
		}
		return
	}
	copy(f.mem[:n], src)
}

// ReadRow copies visible scanline y into dst and returns the bytes copied.
func (f *Framebuffer) ReadRow(y int, dst []byte) int {
	if y < 0 || y >= f.height {
		return 0
	}
	off := y * f.stride
	return copy(dst, f.mem[off:off+f.RowBytes()])
}

// PixelAt returns the native pixel at (x, y), or zero outside the image.
func (f *Framebuffer) PixelAt(x, y int) Pixel {
	var p Pixel
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return p
	}
	off := y*f.stride + x*BytesPerPixel
	copy(p[:], f.mem[off:off+BytesPerPixel])
	return p
}
