package display

import (
	"fmt"
	"io"

	"github.com/tomz197/fbroids/internal/draw"
)

// Term renders the framebuffer to an ANSI terminal with truecolor
// half-block cells, two pixels per cell. Only cells whose colors changed
// since the previous frame are rewritten.
type Term struct {
	cw     *ChunkWriter
	mode   Mode
	fb     *draw.Framebuffer
	packer draw.PixelPacker
	cols   int
	rows   int

	prev    []cellColors
	drawn   bool
	fg, bg  draw.Color
	colored bool
}

type cellColors struct {
	top, bottom draw.Color
}

// NewTerm creates a terminal display of cols×rows cells writing to w.
// The resolution is cols × rows*2 pixels.
func NewTerm(w io.Writer, cols, rows int, format draw.PixelFormat) (*Term, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: terminal %dx%d", ErrUnavailable, cols, rows)
	}
	packer, err := draw.PackerFor(format)
	if err != nil {
		return nil, err
	}
	mode := Mode{Width: cols, Height: rows * 2, Stride: cols, Format: format}
	_, fb, err := newRegion(mode)
	if err != nil {
		return nil, err
	}

	t := &Term{
		cw:     NewChunkWriter(w, 0, 0),
		mode:   mode,
		fb:     fb,
		packer: packer,
		cols:   cols,
		rows:   rows,
		prev:   make([]cellColors, cols*rows),
	}
	t.cw.WriteString(seqHideCursor)
	t.cw.WriteString(seqClearScreen)
	if err := t.cw.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return t, nil
}

// OpenTerm sizes the display from the terminal behind size.
func OpenTerm(w io.Writer, size TermSizeFunc, format draw.PixelFormat) (*Term, error) {
	cols, rows, err := size()
	if err != nil {
		return nil, fmt.Errorf("%w: terminal size: %v", ErrUnavailable, err)
	}
	return NewTerm(w, cols, rows, format)
}

func (t *Term) Mode() Mode                     { return t.mode }
func (t *Term) Framebuffer() *draw.Framebuffer { return t.fb }

// Present writes every changed cell.
func (t *Term) Present() error {
	for row := 0; row < t.rows; row++ {
		// cursor is valid only right after a written cell on this row
		cursor := -1
		for col := 0; col < t.cols; col++ {
			top, bottom := halfBlock(t.fb, t.packer, col, row)
			cell := cellColors{top, bottom}
			i := row*t.cols + col
			if t.drawn && t.prev[i] == cell {
				continue
			}
			t.prev[i] = cell

			if cursor != col {
				t.cw.MoveCursor(col+1, row+1)
			}
			if !t.colored || t.fg != top {
				t.cw.SetColor(sgrForeground, top)
				t.fg = top
			}
			if !t.colored || t.bg != bottom {
				t.cw.SetColor(sgrBackground, bottom)
				t.bg = bottom
			}
			t.colored = true
			t.cw.WriteRune(upperHalfBlock)
			cursor = col + 1
		}
	}
	t.drawn = true
	return t.cw.Flush()
}

// Close restores the terminal.
func (t *Term) Close() error {
	t.cw.WriteString(seqReset)
	t.cw.WriteString(seqClearScreen)
	t.cw.WriteString(seqShowCursor)
	return t.cw.Flush()
}
