package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/temporal-precision/internal/core"
)

// GlyphHeight is the number of rows in a big-digit glyph.
const GlyphHeight = 7

const glyphGap = 1 // Blank columns between glyphs

// glyphs is a seven-row block font for the timer. '#' cells are drawn filled.
var glyphs = map[rune][GlyphHeight]string{
	'0': {" ### ", "#   #", "#  ##", "# # #", "##  #", "#   #", " ### "},
	'1': {"  #  ", " ##  ", "# #  ", "  #  ", "  #  ", "  #  ", "#####"},
	'2': {" ### ", "#   #", "    #", "   # ", "  #  ", " #   ", "#####"},
	'3': {" ### ", "#   #", "    #", "  ## ", "    #", "#   #", " ### "},
	'4': {"   # ", "  ## ", " # # ", "#  # ", "#####", "   # ", "   # "},
	'5': {"#####", "#    ", "#### ", "    #", "    #", "#   #", " ### "},
	'6': {"  ## ", " #   ", "#    ", "#### ", "#   #", "#   #", " ### "},
	'7': {"#####", "    #", "   # ", "  #  ", " #   ", " #   ", " #   "},
	'8': {" ### ", "#   #", "#   #", " ### ", "#   #", "#   #", " ### "},
	'9': {" ### ", "#   #", "#   #", " ####", "    #", "   # ", " ##  "},
	'.': {"  ", "  ", "  ", "  ", "  ", "  ", "##"},
	's': {"    ", "    ", " ###", "#   ", " ## ", "   #", "### "},
}

// FormatTimer renders d as whole seconds and four truncated decimals,
// e.g. 3.0021. Negative durations render as zero.
func FormatTimer(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := d / time.Second
	frac := (d % time.Second) / (100 * time.Microsecond)
	return fmt.Sprintf("%d.%04d", secs, frac)
}

// DigitsWidth returns the number of columns DrawDigits needs for text.
// Runes without a glyph are skipped.
func DigitsWidth(text string) int {
	w := 0
	n := 0
	for _, r := range text {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		w += len(g[0])
		n++
	}
	if n > 1 {
		w += (n - 1) * glyphGap
	}
	return w
}

// DrawDigits draws text in the block font with its top-left corner at
// (x, y) and returns the width drawn.
func DrawDigits(s *core.Screen, x, y int, text string, c core.Color) int {
	start := x
	first := true
	for _, r := range text {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		if !first {
			x += glyphGap
		}
		first = false

		for row, line := range g {
			for col, ch := range line {
				if ch == '#' {
					s.SetColor(x+col, y+row, '█', c)
				}
			}
		}
		x += len(g[0])
	}
	return x - start
}
