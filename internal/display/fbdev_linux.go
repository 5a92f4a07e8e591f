package display

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/tomz197/fbroids/internal/draw"
)

const (
	ioctlGetVScreenInfo = 0x4600 // FBIOGET_VSCREENINFO
	ioctlGetFScreenInfo = 0x4602 // FBIOGET_FSCREENINFO
)

// fbVarScreeninfo mirrors struct fb_var_screeninfo.
type fbVarScreeninfo struct {
	Xres         uint32
	Yres         uint32
	XresVirtual  uint32
	YresVirtual  uint32
	Xoffset      uint32
	Yoffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          fbBitfield
	Green        fbBitfield
	Blue         fbBitfield
	Transp       fbBitfield
	Nonstd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	Pixclock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HsyncLen     uint32
	VsyncLen     uint32
	Sync         uint32
	Vmode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

// fbFixScreeninfo mirrors struct fb_fix_screeninfo.
type fbFixScreeninfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	Xpanstep     uint16
	Ypanstep     uint16
	Ywrapstep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Fbdev is a Linux framebuffer device mapped into memory. Writes to the
// framebuffer are visible immediately.
type Fbdev struct {
	fd   int
	mem  []byte
	mode Mode
	fb   *draw.Framebuffer
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// OpenFbdev opens and maps the framebuffer device at path.
func OpenFbdev(path string) (*Fbdev, error) {
	if path == "" {
		path = DefaultFbdev
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}

	d, err := mapFbdev(fd, path)
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	return d, nil
}

func mapFbdev(fd int, path string) (*Fbdev, error) {
	var vinfo fbVarScreeninfo
	if err := ioctl(fd, ioctlGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		return nil, fmt.Errorf("%w: %s: FBIOGET_VSCREENINFO: %v", ErrUnavailable, path, err)
	}
	var finfo fbFixScreeninfo
	if err := ioctl(fd, ioctlGetFScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		return nil, fmt.Errorf("%w: %s: FBIOGET_FSCREENINFO: %v", ErrUnavailable, path, err)
	}

	format := fbFormat(vinfo.BitsPerPixel, vinfo.Red, vinfo.Green, vinfo.Blue)
	if vinfo.BitsPerPixel != 32 {
		return nil, fmt.Errorf("%w: %s: %d bits per pixel", draw.ErrUnsupportedFormat, path, vinfo.BitsPerPixel)
	}

	stride := int(finfo.LineLength)
	width, height := int(vinfo.Xres), int(vinfo.Yres)
	mem, err := unix.Mmap(fd, 0, int(finfo.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: mmap: %v", ErrUnavailable, path, err)
	}

	// Start at the visible panning offset.
	off := int(vinfo.Yoffset)*stride + int(vinfo.Xoffset)*draw.BytesPerPixel
	if off > len(mem) {
		off = 0
	}
	fb, err := draw.NewFramebuffer(mem[off:], width, height, stride)
	if err != nil {
		_ = unix.Munmap(mem)
		return nil, err
	}

	return &Fbdev{
		fd:  fd,
		mem: mem,
		mode: Mode{
			Width:  width,
			Height: height,
			Stride: stride / draw.BytesPerPixel,
			Format: format,
		},
		fb: fb,
	}, nil
}

func (d *Fbdev) Mode() Mode                     { return d.mode }
func (d *Fbdev) Framebuffer() *draw.Framebuffer { return d.fb }

// Present is a no-op: the mapping is the scanout buffer.
func (d *Fbdev) Present() error { return nil }

// Close unmaps and closes the device.
func (d *Fbdev) Close() error {
	err := unix.Munmap(d.mem)
	if cerr := unix.Close(d.fd); err == nil {
		err = cerr
	}
	return err
}
