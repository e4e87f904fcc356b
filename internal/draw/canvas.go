package draw

import (
	"math"
	"sort"
)

// pixelSet marks a packed pixel as drawn; the low 24 bits hold the color.
const pixelSet = 1 << 24

// cellUnknown forces a cell to be rewritten on the next Render.
const cellUnknown = ^uint64(0)

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. Supports scaling from logical coordinates to
// actual terminal pixels. Render only rewrites cells that changed since the
// previous frame.
type Canvas struct {
	termWidth      int      // Actual terminal columns
	termHeight     int      // Actual terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint32 // Flat slice: [y * termWidth + x], zero when empty
	cells          []uint64 // Last rendered (top, bottom) pair per cell

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	scaledBuf       []Point   // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64 // Reusable buffer for scanline intersections
	polygonBuf      []Point   // Reusable buffer for polygon point generation
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint32, subPixelHeight*termWidth)
		c.cells = make([]uint64, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.ForceRedraw()
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.cells {
		c.cells[i] = cellUnknown
	}
}

// MarkTextDirty marks n cells starting at the 1-based canvas position
// (col, row) as overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.cells[r*c.termWidth+x] = cellUnknown
		}
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col RGB) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = pixelSet | uint32(col.R)<<16 | uint32(col.G)<<8 | uint32(col.B)
	}
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col RGB) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col RGB) {
	// Scale to pixel coordinates for drawing
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col RGB) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	// Draw outline
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// DrawCircle draws a circle of logical radius r around center. The circle
// is always at least one pixel so tiny bodies stay visible.
func (c *Canvas) DrawCircle(center Point, r float64, filled bool, col RGB) {
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	c.setPixel(int(math.Round(cx)), int(math.Round(cy)), col)
	if rx < 0.5 && ry < 0.5 {
		return
	}

	if filled {
		yStart := int(math.Floor(cy - ry))
		yEnd := int(math.Ceil(cy + ry))
		for y := yStart; y <= yEnd; y++ {
			dy := (float64(y) + 0.5 - cy) / ry
			if dy < -1 || dy > 1 {
				continue
			}
			half := rx * math.Sqrt(1-dy*dy)
			xStart := int(math.Ceil(cx - half - 0.5))
			xEnd := int(math.Floor(cx + half - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}

	// Outline as a polygon fine enough that neighbouring vertices touch
	n := int(2 * math.Pi * max(rx, ry))
	n = min(max(n, 8), 96)
	pts := c.BorrowPoints(n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	for i := 0; i < n; i++ {
		c.DrawLine(pts[i], pts[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col RGB) {
	// Reuse or grow scaled points buffer
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	// Scale points to pixel coordinates
	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	// Find bounding box in pixel space
	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	// Scanline fill in pixel space
	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		// Reuse intersection buffer
		intersections := c.intersectionBuf[:0]

		// Find intersections with all edges
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// Render queues the cells that changed since the previous Render.
func (c *Canvas) Render(f *Frame) {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			cell := uint64(top)<<32 | uint64(bottom)
			idx := row*c.termWidth + col
			if c.cells[idx] == cell {
				continue // Unchanged since last frame
			}
			c.cells[idx] = cell
			f.Cell(col+1, row+1, top, bottom)
		}
	}
}

// appendCell appends the styled half-block character for one cell.
func appendCell(buf []byte, top, bottom uint32) []byte {
	buf = append(buf, ColorReset...)
	switch {
	case top == 0 && bottom == 0:
		return append(buf, BlockEmpty)
	case top == bottom:
		buf = AppendFg(buf, unpack(top))
		buf = append(buf, string(BlockFull)...)
	case bottom == 0:
		buf = AppendFg(buf, unpack(top))
		buf = append(buf, string(BlockUpperHalf)...)
	case top == 0:
		buf = AppendFg(buf, unpack(bottom))
		buf = append(buf, string(BlockLowerHalf)...)
	default:
		buf = AppendFg(buf, unpack(top))
		buf = AppendBg(buf, unpack(bottom))
		buf = append(buf, string(BlockUpperHalf)...)
	}
	return append(buf, ColorReset...)
}

func unpack(p uint32) RGB {
	return RGB{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(f *Frame) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions, relative to the canvas origin
	left := 0
	right := c.termWidth + 1
	top := 0
	bottom := c.termHeight + 1

	line := make([]rune, c.termWidth)
	for i := range line {
		line[i] = '─'
	}
	horizontal := string(line)

	if hasV {
		if hasH {
			f.Text(left, top, "┌"+horizontal+"┐")
			f.Text(left, bottom, "└"+horizontal+"┘")
		} else {
			f.Text(1, top, horizontal)
			f.Text(1, bottom, horizontal)
		}
	}

	if hasH {
		for row := 1; row <= c.termHeight; row++ {
			f.Text(left, row, "│")
			f.Text(right, row, "│")
		}
	}
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical maps a 1-based terminal cell (as reported by the mouse,
// offset included) to logical coordinates inside that cell, the inverse of
// LogicalToTerminal. ok is false when the cell lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	px := col - 1 - c.offsetCol
	py := row - 1 - c.offsetRow
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.termHeight {
		return 0, 0, false
	}
	x = float64(px) / c.scaleX
	y = (float64(py)*2 + 1) / c.scaleY
	return x, y, true
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// This avoids per-frame allocations for polygon rendering.
// Thread-safe as long as each goroutine uses its own Canvas instance.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
