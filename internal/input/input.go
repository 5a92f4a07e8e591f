// Package input turns keyboard events into per-poll game intents.
package input

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// DefaultHold is how long a key is considered "held" after its last press.
// Terminals send no key-up events, so a held key is seen as auto-repeat.
const DefaultHold = 100 * time.Millisecond

// Intent is the discrete per-poll command set consumed by the game.
type Intent struct {
	Rotate    int8 // -1 left, 0 none, 1 right
	Thrust    int8 // -1 backward, 0 none, 1 forward
	Fire      bool
	SpeedUp   bool
	SpeedDown bool
	Exit      bool
}

// Source yields the intent for the current poll.
type Source interface {
	Poll() Intent
}

// None is a Source with no keyboard attached.
type None struct{}

// Poll always returns the zero intent.
func (None) Poll() Intent { return Intent{} }

// Key is a game-relevant key.
type Key uint8

// Keys understood by the tracker. Anything else is ignored.
const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyFire
	KeySpeedUp
	KeySpeedDown
	KeyExit
	numKeys
)

// Tracker records the last press of each key and folds them into intents.
// Movement and fire keys count as held within the hold window; speed keys
// are edge triggered and exit latches.
type Tracker struct {
	mu        sync.Mutex
	hold      time.Duration
	pressed   [numKeys]time.Time
	speedUp   int
	speedDown int
	exit      bool
}

// NewTracker creates a tracker with the given hold window.
func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Tracker{hold: hold}
}

// Press records a key press at now.
func (t *Tracker) Press(k Key, now time.Time) {
	if k == KeyNone || k >= numKeys {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	switch k {
	case KeySpeedUp:
		t.speedUp++
	case KeySpeedDown:
		t.speedDown++
	case KeyExit:
		t.exit = true
	}
	t.pressed[k] = now
}

// Intent builds the intent as of now and consumes pending speed steps.
func (t *Tracker) Intent(now time.Time) Intent {
	t.mu.Lock()
	defer t.mu.Unlock()

	held := func(k Key) bool {
		p := t.pressed[k]
		return !p.IsZero() && now.Sub(p) < t.hold
	}

	var in Intent
	if held(KeyLeft) {
		in.Rotate--
	}
	if held(KeyRight) {
		in.Rotate++
	}
	if held(KeyUp) {
		in.Thrust++
	}
	if held(KeyDown) {
		in.Thrust--
	}
	in.Fire = held(KeyFire)

	if t.speedUp > 0 {
		in.SpeedUp = true
		t.speedUp--
	}
	if t.speedDown > 0 {
		in.SpeedDown = true
		t.speedDown--
	}
	in.Exit = t.exit
	return in
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	tracker *Tracker
	parser  Parser
	now     func() time.Time
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader, hold time.Duration) *Stream {
	s := &Stream{
		ch:      make(chan byte, 128),
		tracker: NewTracker(hold),
		now:     time.Now,
	}
	br := bufio.NewReader(r)
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes from the stream (non-blocking) and
// returns the resulting intent.
func (s *Stream) Poll() Intent {
	now := s.now()
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.parser.Feed(buf, func(k Key) { s.tracker.Press(k, now) })
	return s.tracker.Intent(now)
}

// Parser decodes terminal bytes into keys. An escape sequence split
// across two feeds is carried over; a lone ESC on an empty feed is the
// Escape key.
type Parser struct {
	pending []byte
}

// Feed parses buf, calling emit for every recognized key.
func (p *Parser) Feed(buf []byte, emit func(Key)) {
	if len(p.pending) > 0 {
		if len(buf) == 0 {
			// Nothing followed: it was a bare ESC.
			p.pending = p.pending[:0]
			emit(KeyExit)
			return
		}
		buf = append(p.pending, buf...)
		p.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			emit(byteKey(b))
			continue
		}

		// ESC [ <code> (CSI) or ESC O <code> (application cursor mode)
		if i+1 >= len(buf) || (i+2 >= len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O')) {
			p.pending = append(p.pending[:0], buf[i:]...)
			return
		}
		if buf[i+1] != '[' && buf[i+1] != 'O' {
			emit(KeyExit)
			continue
		}
		switch buf[i+2] {
		case 'A': // Up arrow
			emit(KeyUp)
		case 'B': // Down arrow
			emit(KeyDown)
		case 'C': // Right arrow
			emit(KeyRight)
		case 'D': // Left arrow
			emit(KeyLeft)
		}
		i += 2
	}
}

// byteKey maps a single byte to its key.
func byteKey(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03':
		return KeyExit
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case ' ':
		return KeyFire
	case '+', '=':
		return KeySpeedUp
	case '-', '_':
		return KeySpeedDown
	}
	return KeyNone
}

// RuneKey maps a printable rune to its key, for event-based backends.
func RuneKey(r rune) Key {
	if r > 0x7f {
		return KeyNone
	}
	return byteKey(byte(r))
}
