package display

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/fbroids/internal/draw"
	"github.com/tomz197/fbroids/internal/input"
)

// Tcell renders half-block cells onto a tcell screen and doubles as the
// keyboard source for that screen.
type Tcell struct {
	screen tcell.Screen
	mode   Mode
	fb     *draw.Framebuffer
	packer draw.PixelPacker

	events  chan tcell.Event
	quit    chan struct{}
	tracker *input.Tracker
	now     func() time.Time
}

// OpenTcell creates and initializes a terminal screen.
func OpenTcell(format draw.PixelFormat, hold time.Duration) (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	t, err := NewTcell(screen, format, hold)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return t, nil
}

// NewTcell wraps an initialized screen. The resolution is taken from the
// screen size now and is not re-read on resize.
func NewTcell(screen tcell.Screen, format draw.PixelFormat, hold time.Duration) (*Tcell, error) {
	packer, err := draw.PackerFor(format)
	if err != nil {
		return nil, err
	}
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: screen %dx%d", ErrUnavailable, cols, rows)
	}
	mode := Mode{Width: cols, Height: rows * 2, Stride: cols, Format: format}
	_, fb, err := newRegion(mode)
	if err != nil {
		return nil, err
	}

	screen.HideCursor()
	screen.Clear()

	t := &Tcell{
		screen:  screen,
		mode:    mode,
		fb:      fb,
		packer:  packer,
		events:  make(chan tcell.Event, 64),
		quit:    make(chan struct{}),
		tracker: input.NewTracker(hold),
		now:     time.Now,
	}
	go t.pollEvents()
	return t, nil
}

// pollEvents forwards screen events until the screen is finalized.
func (t *Tcell) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

func (t *Tcell) Mode() Mode                     { return t.mode }
func (t *Tcell) Framebuffer() *draw.Framebuffer { return t.fb }

// Present copies the framebuffer into the screen cells and shows them.
func (t *Tcell) Present() error {
	rows := t.mode.Height / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < t.mode.Width; col++ {
			top, bottom := halfBlock(t.fb, t.packer, col, row)
			style := tcell.StyleDefault.
				Foreground(tcellColor(top)).
				Background(tcellColor(bottom))
			t.screen.SetContent(col, row, upperHalfBlock, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Poll drains pending key events and returns the current intent.
func (t *Tcell) Poll() input.Intent {
	now := t.now()
	for {
		select {
		case ev := <-t.events:
			if key, ok := ev.(*tcell.EventKey); ok {
				t.tracker.Press(tcellKey(key), now)
			}
		default:
			return t.tracker.Intent(now)
		}
	}
}

// Close finalizes the screen.
func (t *Tcell) Close() error {
	close(t.quit)
	t.screen.Fini()
	return nil
}

func tcellColor(c draw.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func tcellKey(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.KeyExit
	case tcell.KeyRune:
		return input.RuneKey(ev.Rune())
	}
	return input.KeyNone
}

var _ input.Source = (*Tcell)(nil)
