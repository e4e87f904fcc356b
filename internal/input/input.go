package input

import (
	"bufio"
	"bytes"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// MouseButton identifies a mouse button in SGR reports.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// SGR button flags that mark motion and wheel reports.
const (
	mouseMotionFlag = 32
	mouseWheelFlag  = 64
)

// Click is a mouse button press at a 1-based terminal cell.
type Click struct {
	Button MouseButton
	Col    int
	Row    int
}

// Input represents the current frame's input state.
//
// Left, Right and Up are held keys. The remaining flags and Clicks only report
// presses seen since the previous read.
type Input struct {
	Left    bool
	Right   bool
	Up      bool
	Fire    bool
	Pause   bool
	Restart bool
	Quit    bool
	Enter   bool
	Escape  bool
	Clicks  []Click
	Pressed []byte
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
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

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets held keys, so a key held across a screen change does
// not leak into the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and SGR mouse reports.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := drain(s)
	return parse(&s.state, buf, now)
}

// drain collects every byte currently queued on the stream.
func drain(s *Stream) []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// parse updates the key state from buf and builds the frame's input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ ...
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if n := parseCSI(state, &in, buf[i:], now); n > 0 {
				i += n - 1
				continue
			}
		}

		applyByte(state, &in, b, now)
	}

	// Held keys are "pressed" if seen within hold duration
	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Up = now.Sub(state.up) < keyHoldDuration

	return in
}

// parseCSI handles arrow keys and SGR mouse reports at the start of seq.
// It returns the number of bytes consumed, or 0 if seq is not recognized.
func parseCSI(state *keyState, in *Input, seq []byte, now time.Time) int {
	switch seq[2] {
	case 'A': // Up arrow
		state.up = now
		return 3
	case 'C': // Right arrow
		state.right = now
		return 3
	case 'D': // Left arrow
		state.left = now
		return 3
	case 'B': // Down arrow, unused
		return 3
	case '<':
		return parseMouse(in, seq)
	}
	return 0
}

// parseMouse decodes ESC [ < b ; col ; row (M|m). Only button presses are
// reported; releases, motion and wheel events are consumed and dropped.
func parseMouse(in *Input, seq []byte) int {
	end := bytes.IndexAny(seq, "Mm")
	if end < 0 {
		return 0
	}
	fields := bytes.Split(seq[3:end], []byte{';'})
	if len(fields) != 3 {
		return end + 1
	}
	var vals [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(string(f))
		if err != nil {
			return end + 1
		}
		vals[i] = v
	}

	button := vals[0]
	if seq[end] == 'm' || button&(mouseMotionFlag|mouseWheelFlag) != 0 {
		return end + 1
	}
	in.Clicks = append(in.Clicks, Click{
		Button: MouseButton(button & 3),
		Col:    vals[1],
		Row:    vals[2],
	})
	return end + 1
}

// applyByte updates the input for a single key byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		in.Quit = true
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case ' ':
		in.Fire = true
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Restart = true
	case '\n', '\r':
		in.Enter = true
	case '\x1b':
		in.Escape = true
	case '\x03': // Ctrl+C in raw mode
		in.Quit = true
	}
}
