package draw

import (
	"io"
	"strconv"
)

// maxChunkSize keeps each write under a typical MTU so SSH sends whole
// packets without stalling on a partial frame.
const maxChunkSize = 1400

// Frame collects one frame of terminal output: changed canvas cells, overlay
// text and screen clears. Positions are 1-based canvas cells; the frame adds
// the centering offset. Nothing reaches the terminal until Flush.
type Frame struct {
	w      io.Writer
	buf    []byte
	offCol int
	offRow int
}

// NewFrame creates a frame writing to w with the given centering offset.
func NewFrame(w io.Writer, offsetCol, offsetRow int) *Frame {
	return &Frame{w: w, offCol: offsetCol, offRow: offsetRow}
}

// SetOffset updates the centering offset after a resize.
func (f *Frame) SetOffset(offsetCol, offsetRow int) {
	f.offCol = offsetCol
	f.offRow = offsetRow
}

// Len is the number of bytes queued.
func (f *Frame) Len() int {
	return len(f.buf)
}

func (f *Frame) moveTo(col, row int) {
	f.buf = append(f.buf, "\033["...)
	f.buf = strconv.AppendInt(f.buf, int64(row+f.offRow), 10)
	f.buf = append(f.buf, ';')
	f.buf = strconv.AppendInt(f.buf, int64(col+f.offCol), 10)
	f.buf = append(f.buf, 'H')
}

// Cell queues one half-block cell from its packed top and bottom pixels.
func (f *Frame) Cell(col, row int, top, bottom uint32) {
	f.moveTo(col, row)
	f.buf = appendCell(f.buf, top, bottom)
}

// Text queues s at (col, row) in the terminal's default color.
func (f *Frame) Text(col, row int, s string) {
	f.moveTo(col, row)
	f.buf = append(f.buf, s...)
}

// TextColor queues s at (col, row) in color c.
func (f *Frame) TextColor(col, row int, s string, c RGB) {
	f.moveTo(col, row)
	f.buf = AppendFg(f.buf, c)
	f.buf = append(f.buf, s...)
	f.buf = append(f.buf, ColorReset...)
}

// ClearScreen queues a full terminal clear. Everything queued before it is
// dropped since the clear would erase it anyway.
func (f *Frame) ClearScreen() {
	f.buf = append(f.buf[:0], seqClear...)
}

// Flush writes the queued output in MTU-sized chunks and empties the frame.
func (f *Frame) Flush() error {
	data := f.buf
	f.buf = f.buf[:0]
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := f.w.Write(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}
