package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	now := time.Now()
	var state keyState

	in := parse(&state, []byte("a p r\x1b[A"), now)
	if !in.Left || !in.Up || in.Right {
		t.Fatalf("held keys wrong: %+v", in)
	}
	if !in.Fire || !in.Pause || !in.Restart || in.Quit {
		t.Fatalf("one-shot keys wrong: %+v", in)
	}

	// Held keys persist briefly, one-shot keys do not
	in = parse(&state, nil, now.Add(keyHoldDuration/2))
	if !in.Left || !in.Up || in.Fire || in.Pause {
		t.Fatalf("unexpected state after empty read: %+v", in)
	}
	in = parse(&state, nil, now.Add(2*keyHoldDuration))
	if in.Left || in.Up {
		t.Fatal("held keys should expire")
	}
}

func TestParseArrows(t *testing.T) {
	var state keyState
	in := parse(&state, []byte("\x1b[D\x1b[C"), time.Now())
	if !in.Left || !in.Right || in.Escape {
		t.Fatalf("arrows parsed wrong: %+v", in)
	}
}

func TestParseMouse(t *testing.T) {
	var state keyState
	buf := []byte("\x1b[<0;10;5M\x1b[<0;10;5m\x1b[<2;30;7M\x1b[<32;1;1M\x1b[<64;1;1Mq")

	in := parse(&state, buf, time.Now())
	if len(in.Clicks) != 2 {
		t.Fatalf("expected 2 clicks, got %+v", in.Clicks)
	}
	if in.Clicks[0] != (Click{Button: MouseLeft, Col: 10, Row: 5}) {
		t.Fatalf("first click %+v", in.Clicks[0])
	}
	if in.Clicks[1] != (Click{Button: MouseRight, Col: 30, Row: 7}) {
		t.Fatalf("second click %+v", in.Clicks[1])
	}
	if !in.Quit {
		t.Fatal("key after mouse reports should still be parsed")
	}
	if in.Escape {
		t.Fatal("mouse reports must not count as escape")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}
	for _, b := range []byte("wd") {
		s.ch <- b
	}
	if in := ReadInput(s); !in.Up || !in.Right {
		t.Fatalf("keys not read: %+v", in)
	}
	ResetKeyInput(s)
	if in := ReadInput(s); in.Up || in.Right {
		t.Fatal("reset should drop held keys")
	}
}

func TestStreamCloses(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))

	deadline := time.After(time.Second)
	quit := false
	for !s.Closed() {
		if ReadInput(s).Quit {
			quit = true
		}
		select {
		case <-deadline:
			t.Fatal("stream did not close")
		case <-time.After(time.Millisecond):
		}
	}
	if !quit {
		t.Fatal("quit key lost")
	}
}
