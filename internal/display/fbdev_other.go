//go:build !linux

package display

import (
	"fmt"
	"runtime"

	"github.com/tomz197/fbroids/internal/draw"
)

// Fbdev is only available on Linux.
type Fbdev struct{}

// OpenFbdev always fails outside Linux.
func OpenFbdev(path string) (*Fbdev, error) {
	return nil, fmt.Errorf("%w: fbdev is not supported on %s", ErrUnavailable, runtime.GOOS)
}

func (*Fbdev) Mode() Mode                     { return Mode{} }
func (*Fbdev) Framebuffer() *draw.Framebuffer { return nil }
func (*Fbdev) Present() error                 { return nil }
func (*Fbdev) Close() error                   { return nil }
