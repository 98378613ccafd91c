package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, never releases.
const keyHoldDuration = 120 * time.Millisecond

// keyState tracks the last time each logical key was pressed.
type keyState struct {
	thrust  time.Time
	left    time.Time
	right   time.Time
	fire    time.Time
	pause   time.Time
	restart time.Time
	quit    time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	closed  bool
	now     func() time.Time
	partial []byte // Unfinished escape sequence held from the previous Read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// Closed reports whether the underlying reader has ended (e.g. SSH disconnect).
func (s *Stream) Closed() bool {
	return s.closed
}

// Reset forgets every key pressed so far, so a key that started a game does
// not also act in it.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// Read drains all available bytes from the stream (non-blocking) and returns
// the keys held at this instant. Arrow-key escape sequences are decoded.
// A sequence cut short at the end of the available bytes waits one Read for
// the rest; if nothing follows, a lone ESC counts as a key press.
func (s *Stream) Read() Held {
	now := s.now()
	buf := s.partial
	s.partial = nil
	fresh := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh = true
		default:
			break drain
		}
	}

	if fresh && !s.closed {
		if n := unfinishedEscape(buf); n > 0 {
			s.partial = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.thrust = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}
		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Held{
		Thrust:  held(s.state.thrust),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Fire:    held(s.state.fire),
		Pause:   held(s.state.pause),
		Restart: held(s.state.restart),
		Quit:    held(s.state.quit) || s.closed,
	}
}

// unfinishedEscape returns the length of a trailing ESC or ESC [ that may be
// the start of an arrow key.
func unfinishedEscape(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return 2
	default:
		return 0
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.thrust = now
	case ' ':
		state.fire = now
	case 'p', 'P', '\x1b':
		state.pause = now
	case 'r', 'R', '\n', '\r':
		state.restart = now
	}
}
