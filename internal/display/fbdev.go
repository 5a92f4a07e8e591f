package display

import "github.com/tomz197/fbroids/internal/draw"

// DefaultFbdev is the framebuffer device opened when none is configured.
const DefaultFbdev = "/dev/fb0"

// fbBitfield mirrors struct fb_bitfield.
type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// fbFormat maps the channel layout reported by the driver to a pixel
// format. Only 32 bpp layouts with 8-bit channels qualify as RGB or BGR;
// anything else is reported as Bitmask.
func fbFormat(bpp uint32, red, green, blue fbBitfield) draw.PixelFormat {
	if bpp != 32 || red.Length != 8 || green.Length != 8 || blue.Length != 8 || green.Offset != 8 {
		return draw.FormatBitmask
	}
	switch {
	case red.Offset == 0 && blue.Offset == 16:
		return draw.FormatRGB
	case red.Offset == 16 && blue.Offset == 0:
		return draw.FormatBGR
	}
	return draw.FormatBitmask
}
