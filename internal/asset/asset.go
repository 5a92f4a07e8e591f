// Package asset holds the images embedded into the binary.
package asset

//go:generate go run ../../cmd/logogen --in ../../assets/logo.png --out . --pkg asset

import (
	_ "embed"

	"github.com/tomz197/fbroids/internal/draw"
)

//go:embed logo.rgba
var logoRGBA []byte

// Logo returns the splash logo as straight RGBA.
func Logo() draw.RGBAImage {
	return draw.RGBAImage{Pix: logoRGBA, Width: LogoWidth, Height: LogoHeight}
}
