package draw

import "math"

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Pt rounds a float position to the nearest pixel.
func Pt(x, y float32) Point {
	return Point{
		X: int(math.Round(float64(x))),
		Y: int(math.Round(float64(y))),
	}
}

// DrawLine draws a line between two points using Bresenham's algorithm.
// Works in every octant; pixels outside the buffer are skipped.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.PutPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawTriangle draws the outline of the triangle a-b-c.
func (c *Canvas) DrawTriangle(a, b, d Point, col Color) {
	c.DrawLine(a, b, col)
	c.DrawLine(b, d, col)
	c.DrawLine(d, a, col)
}

// DrawPolygon draws a closed polygon outline.
func (c *Canvas) DrawPolygon(points []Point, col Color) {
	if len(points) < 2 {
		return
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// RGBAImage is a straight-alpha RGBA8 image, 4 bytes per pixel, rows packed.
type RGBAImage struct {
	Pix    []byte
	Width  int
	Height int
}

// BlitRGBA copies img into the buffer with its top-left corner at (dx, dy).
// Pixels with alpha 0 are skipped; every other pixel is written opaque
// through the packer. The copied region is clipped to the buffer.
func (c *Canvas) BlitRGBA(img RGBAImage, dx, dy int) {
	if dx < 0 || dy < 0 || dx >= c.width || dy >= c.height {
		return
	}
	w := min(img.Width, c.width-dx)
	h := min(img.Height, c.height-dy)
	srcStride := img.Width * 4

	for row := 0; row < h; row++ {
		srcOff := row * srcStride
		if srcOff+w*4 > len(img.Pix) {
			return
		}
		src := img.Pix[srcOff : srcOff+w*4]
		dstOff := ((dy+row)*c.width + dx) * BytesPerPixel

		for x := 0; x < w; x++ {
			s := src[x*4 : x*4+4]
			if s[3] == 0 {
				continue
			}
			p := c.packer.Pack(Color{s[0], s[1], s[2]})
			copy(c.pixels[dstOff+x*BytesPerPixel:], p[:])
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
