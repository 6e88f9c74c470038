// Package input turns a raw terminal byte stream into per-frame key snapshots.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, never releases.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Fire    bool
	Enter   bool
	Escape  bool
	Closed  bool   // The underlying reader hit EOF or an error
	Pressed []byte // Raw bytes received this frame
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	fire   time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch       chan byte
	done     chan struct{}
	stopOnce sync.Once
	state    keyState
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop tells the reader goroutine to exit instead of waiting for a consumer.
// A read already blocked on the underlying reader returns on its next byte or error.
func (s *Stream) Stop() {
	if s == nil || s.done == nil {
		return
	}
	s.stopOnce.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return s.Read(time.Now())
}

// Read drains all available bytes and reports which keys count as held at now.
// Handles escape sequences for arrow keys. Left and right may both be held.
func (s *Stream) Read(now time.Time) Input {
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

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool {
		return !t.IsZero() && now.Sub(t) < keyHoldDuration
	}
	return Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Fire:    held(s.state.fire),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Closed:  s.closed,
		Pressed: buf,
	}
}

// ResetKeyInput forgets every held key, so a key used to change screens
// does not leak into the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', 'w', 'W', 'k', 'K':
		state.fire = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
