package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

// Common colors.
var (
	White  = RGB{255, 255, 255}
	Gray   = RGB{110, 110, 110}
	Cyan   = RGB{80, 220, 255}
	Yellow = RGB{255, 220, 80}
	Orange = RGB{255, 140, 40}
	Red    = RGB{255, 70, 70}
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ColorReset restores the default terminal colors.
const ColorReset = "\033[0m"

// Terminal control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqMouseOn    = "\033[?1000h\033[?1006h" // Button presses, SGR encoding
	seqMouseOff   = "\033[?1006l\033[?1000l"
)

// EnterGameMode hides the cursor, turns on mouse reporting and clears the
// screen.
func EnterGameMode(w io.Writer) {
	io.WriteString(w, seqHideCursor+seqMouseOn+seqClear)
}

// LeaveGameMode undoes EnterGameMode.
func LeaveGameMode(w io.Writer) {
	io.WriteString(w, seqMouseOff+seqClear+seqShowCursor)
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// AppendFg appends a truecolor foreground sequence for c.
func AppendFg(dst []byte, c RGB) []byte {
	return appendColor(dst, "\033[38;2;", c)
}

// AppendBg appends a truecolor background sequence for c.
func AppendBg(dst []byte, c RGB) []byte {
	return appendColor(dst, "\033[48;2;", c)
}

func appendColor(dst []byte, prefix string, c RGB) []byte {
	dst = append(dst, prefix...)
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.B), 10)
	return append(dst, 'm')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
