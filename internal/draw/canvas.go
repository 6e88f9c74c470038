package draw

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// cell is what one terminal character shows.
type cell struct {
	ch     rune
	fg, bg Color
}

// staleCell never matches a real cell, forcing a redraw.
var staleCell = cell{ch: -1}

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// It maps logical coordinates to terminal pixels and only re-emits cells that changed
// since the previous Render.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	prev           []cell  // What the terminal currently shows, [row * termWidth + col]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets used to center the canvas in large terminals.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
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
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.ForceRedraw()
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
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

// ForceRedraw makes the next Render emit every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = staleCell
	}
}

// MarkTextDirty marks n cells starting at the 1-based canvas position (col, row) as overwritten
// by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.prev[r*c.termWidth+x] = staleCell
		}
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// FillRect fills a logical rectangle. Anything with a non-zero size covers at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64, color Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, color)
		}
	}
}

// pixelSpan converts a logical interval to an inclusive pixel range.
func pixelSpan(start, size, scale float64) (int, int) {
	from := int(math.Floor(start * scale))
	to := int(math.Ceil((start+size)*scale)) - 1
	if to < from {
		to = from
	}
	return from, to
}

// glyph returns the character and colours for one terminal cell.
func (c *Canvas) glyph(col, row int) cell {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]

	switch {
	case top == ColorNone && bottom == ColorNone:
		return cell{ch: BlockEmpty}
	case top == bottom:
		return cell{ch: BlockFull, fg: top}
	case bottom == ColorNone:
		return cell{ch: BlockUpperHalf, fg: top}
	case top == ColorNone:
		return cell{ch: BlockLowerHalf, fg: bottom}
	default:
		return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes every changed cell to w.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			g := c.glyph(col, row)
			idx := row*c.termWidth + col
			if c.prev[idx] == g {
				continue
			}
			c.prev[idx] = g

			c.renderBuf.WriteString("\033[")
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
			c.renderBuf.WriteByte(';')
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
			c.renderBuf.WriteByte('H')
			if g.ch == BlockEmpty {
				c.renderBuf.WriteByte(' ')
				continue
			}
			writeStyle(&c.renderBuf, c.numBuf[:], g.fg, g.bg)
			c.renderBuf.WriteRune(g.ch)
			c.renderBuf.WriteString(resetStyle)
		}
	}

	writeChunked(w, c.renderBuf.String())
}

// writeChunked writes data in MTU-sized pieces.
func writeChunked(w io.Writer, data string) {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	io.WriteString(w, buf.String())
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
func (c *Canvas) LogicalToTerminal(p Point) (col, row int) {
	px := int(math.Round(p.X * c.scaleX))
	py := int(math.Round(p.Y * c.scaleY))
	return px + 1, py/2 + 1
}
