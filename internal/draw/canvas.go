package draw

import (
	"fmt"

	"github.com/tomz197/fbroids/internal/alloc"
)

// bufferAlign is the alignment requested for back buffer storage.
const bufferAlign = 16

// Canvas is the off-screen back buffer. Pixels are stored tightly packed
// (width*4 bytes per row) in the device's native channel order; Flush copies
// them into the real framebuffer.
type Canvas struct {
	width  int
	height int
	pixels []byte
	packer PixelPacker
	alloc  alloc.Allocator

	// Reusable buffer for polygon vertex generation
	polygonBuf []Point
}

// NewCanvas allocates a width×height back buffer through a, packing colors
// for format. The format's packer is chosen here, once.
func NewCanvas(width, height int, format PixelFormat, a alloc.Allocator) (*Canvas, error) {
	packer, err := PackerFor(format)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFramebufferTooSmall, width, height)
	}
	if a == nil {
		a = alloc.Heap{}
	}
	pixels, err := a.AllocZeroed(width*height*BytesPerPixel, bufferAlign)
	if err != nil {
		return nil, fmt.Errorf("allocate back buffer %dx%d: %w", width, height, err)
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: pixels,
		packer: packer,
		alloc:  a,
	}, nil
}

// Release returns the pixel storage to the allocator. The canvas must not
// be used afterwards.
func (c *Canvas) Release() {
	if c.pixels != nil {
		c.alloc.Free(c.pixels)
		c.pixels = nil
	}
}

// Width returns the buffer width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the buffer height in pixels.
func (c *Canvas) Height() int { return c.height }

// Packer returns the pixel packer selected at initialization.
func (c *Canvas) Packer() PixelPacker { return c.packer }

// Clear fills every pixel with col.
func (c *Canvas) Clear(col Color) {
	p := c.packer.Pack(col)
	if len(c.pixels) == 0 {
		return
	}
	copy(c.pixels[:BytesPerPixel], p[:])
	// Doubling copy fills the rest in O(log n) calls.
	for filled := BytesPerPixel; filled < len(c.pixels); filled *= 2 {
		copy(c.pixels[filled:], c.pixels[:filled])
	}
}

// PutPixel sets the pixel at (x, y); coordinates outside the buffer are ignored.
func (c *Canvas) PutPixel(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	p := c.packer.Pack(col)
	off := (y*c.width + x) * BytesPerPixel
	copy(c.pixels[off:off+BytesPerPixel], p[:])
}

// PixelAt returns the color at (x, y), decoded through the packer.
// Outside the buffer it returns Black.
func (c *Canvas) PixelAt(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Black
	}
	var p Pixel
	off := (y*c.width + x) * BytesPerPixel
	copy(p[:], c.pixels[off:off+BytesPerPixel])
	return c.packer.Unpack(p)
}

// Flush copies the back buffer into fb. When the framebuffer has no
// scanline padding this is one contiguous copy; otherwise every row is copied
// to respect the device stride. fb must have the canvas's dimensions.
func (c *Canvas) Flush(fb *Framebuffer) error {
	if fb.Width() != c.width || fb.Height() != c.height {
		return fmt.Errorf("%w: framebuffer %dx%d, back buffer %dx%d",
			ErrFramebufferTooSmall, fb.Width(), fb.Height(), c.width, c.height)
	}
	rowBytes := c.width * BytesPerPixel
	if fb.Stride() == rowBytes {
		fb.WriteAll(c.pixels)
		return nil
	}
	for y := 0; y < c.height; y++ {
		off := y * rowBytes
		fb.WriteRow(y, c.pixels[off:off+rowBytes])
	}
	return nil
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// This avoids per-frame allocations for polygon rendering.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
