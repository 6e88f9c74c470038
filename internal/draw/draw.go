// Package draw renders to ANSI terminals: a colour half-block canvas plus text helpers.
package draw

import (
	"strconv"
	"strings"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is a palette index. ColorNone marks an empty pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
)

// ansiCodes maps a palette index to its ANSI foreground colour number.
// Background codes are the same number plus ten.
var ansiCodes = [...]int{
	ColorNone:   39,
	ColorRed:    91,
	ColorGreen:  92,
	ColorYellow: 93,
	ColorWhite:  97,
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

const resetStyle = "\033[0m"

// writeStyle appends the SGR sequence selecting fg on bg.
func writeStyle(b *strings.Builder, numBuf []byte, fg, bg Color) {
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(numBuf[:0], int64(ansiCodes[fg]), 10))
	b.WriteByte(';')
	bgCode := 49
	if bg != ColorNone {
		bgCode = ansiCodes[bg] + 10
	}
	b.Write(strconv.AppendInt(numBuf[:0], int64(bgCode), 10))
	b.WriteByte('m')
}
