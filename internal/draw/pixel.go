// Package draw implements the back-buffer compositor: device pixel packing,
// bounded drawing primitives and the stride-aware flush into a framebuffer.
package draw

import (
	"errors"
	"fmt"
)

// BytesPerPixel is the size of every supported native pixel.
const BytesPerPixel = 4

// ErrUnsupportedFormat is returned for pixel formats that cannot back a
// linear framebuffer.
var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// PixelFormat is the channel arrangement a display reports.
type PixelFormat int

const (
	FormatRGB     PixelFormat = iota // bytes R, G, B, reserved
	FormatBGR                        // bytes B, G, R, reserved
	FormatBitmask                    // arbitrary channel masks
	FormatBltOnly                    // no linear framebuffer
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatBGR:
		return "bgr"
	case FormatBitmask:
		return "bitmask"
	case FormatBltOnly:
		return "blt-only"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// ParsePixelFormat converts a config name into a PixelFormat.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch s {
	case "rgb", "RGB":
		return FormatRGB, nil
	case "bgr", "BGR":
		return FormatBGR, nil
	case "bitmask":
		return FormatBitmask, nil
	case "blt-only", "blt":
		return FormatBltOnly, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Color is a straight 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Grey   = Color{180, 180, 190}
	Yellow = Color{255, 220, 64}
)

// Pixel is one pixel in device-native byte order.
type Pixel [BytesPerPixel]byte

// PixelPacker converts between colors and one device's native pixel layout.
type PixelPacker interface {
	Pack(c Color) Pixel
	Unpack(p Pixel) Color
}

type rgbPacker struct{}

func (rgbPacker) Pack(c Color) Pixel    { return Pixel{c.R, c.G, c.B, 0} }
func (rgbPacker) Unpack(p Pixel) Color { return Color{p[0], p[1], p[2]} }

type bgrPacker struct{}

func (bgrPacker) Pack(c Color) Pixel    { return Pixel{c.B, c.G, c.R, 0} }
func (bgrPacker) Unpack(p Pixel) Color { return Color{p[2], p[1], p[0]} }

// PackerFor selects the packer for a device format. It is called once at
// initialization; the result is reused for every pixel.
func PackerFor(f PixelFormat) (PixelPacker, error) {
	switch f {
	case FormatRGB:
		return rgbPacker{}, nil
	case FormatBGR:
		return bgrPacker{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}
