package display

import (
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/tomz197/fbroids/internal/draw"
)

// maxChunkSize caps a single write to the terminal.
const maxChunkSize = 1400

// ANSI sequences used by the terminal renderer.
const (
	seqClearScreen = "\033[H\033[2J"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
	seqReset       = "\033[0m"
)

// SGR color selectors.
const (
	sgrForeground = 38
	sgrBackground = 48
)

// ChunkWriter batches a frame of escape sequences and cell text and hands it
// to the terminal in writes of at most maxChunkSize bytes. All cursor
// positions are shifted by a fixed offset.
type ChunkWriter struct {
	w      io.Writer
	buf    []byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter over w. offsetCol and offsetRow are
// added to every MoveCursor position.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		w:      w,
		buf:    make([]byte, 0, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// MoveCursor queues a cursor position sequence for the 1-based cell.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row+cw.offRow), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col+cw.offCol), 10)
	cw.buf = append(cw.buf, 'H')
}

// SetColor queues a truecolor SGR sequence; selector is sgrForeground or
// sgrBackground.
func (cw *ChunkWriter) SetColor(selector int, c draw.Color) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(selector), 10)
	cw.buf = append(cw.buf, ";2;"...)
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		if i > 0 {
			cw.buf = append(cw.buf, ';')
		}
		cw.buf = strconv.AppendUint(cw.buf, uint64(v), 10)
	}
	cw.buf = append(cw.buf, 'm')
}

// Write queues p. It never fails.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

func (cw *ChunkWriter) WriteRune(r rune) {
	cw.buf = utf8.AppendRune(cw.buf, r)
}

// Len returns the number of queued bytes.
func (cw *ChunkWriter) Len() int {
	return len(cw.buf)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the queued bytes and empties the queue, keeping its memory.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf
	cw.buf = cw.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize reads the size of the terminal on stdout.
var StdoutSize TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
