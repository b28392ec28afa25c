/*
Copyright 2024 Tim St. Pierre
Formats text into full screen frames for lcd2004
*/
package lcd2004

import (
	"fmt"
	"strings"
)

// DefaultFiller pads centered header lines.
const DefaultFiller = '-'

// Frame is one full screen, one string per display line. Each byte is one
// character cell.
type Frame []string

// Check reports ErrDimension unless f has exactly lines rows of exactly cols
// bytes each.
func (f Frame) Check(lines, cols int) error {
	if len(f) != lines {
		return fmt.Errorf("%w: %d rows, want %d", ErrDimension, len(f), lines)
	}
	for i, l := range f {
		if len(l) != cols {
			return fmt.Errorf("%w: row %d is %d wide, want %d", ErrDimension, i, len(l), cols)
		}
	}
	return nil
}

// Center pads text on both sides with fill up to width. When the padding is
// odd the extra cell goes right, unless width is odd too. Text that is not
// shorter than width is cut to width.
func Center(text string, width int, fill byte) string {
	if width <= 0 {
		return ""
	}
	if len(text) >= width {
		return text[:width]
	}
	margin := width - len(text)
	left := margin/2 + (margin & width & 1)
	f := string(fill)
	return strings.Repeat(f, left) + text + strings.Repeat(f, margin-left)
}

// LeftPad pads text on the right with spaces up to width, cutting it if it
// is longer.
func LeftPad(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(text) >= width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}

// WrapHeadline builds a frame with the centered league name on the first
// line and the headline word-wrapped over the remaining lines. A word is
// only added while the line plus the word stays under width, and each word
// carries a trailing space. Words that do not fit on the last line are
// dropped. Words are never split, so a word of width or more characters
// stops the wrap.
func WrapHeadline(league, headline string, width, lines int) Frame {
	if lines <= 0 {
		return Frame{}
	}
	f := make(Frame, 0, lines)
	f = append(f, Center(displayable(league), width, DefaultFiller))

	words := strings.Fields(displayable(headline))
	i := 0
	for row := 1; row < lines; row++ {
		var b strings.Builder
		for i < len(words) && b.Len()+len(words[i]) < width {
			b.WriteString(words[i])
			b.WriteByte(' ')
			i++
		}
		f = append(f, LeftPad(b.String(), width))
	}
	return f
}

// Banner frames the given lines, centered, between two filler lines.
func Banner(width int, lines ...string) Frame {
	f := Frame{strings.Repeat(string(DefaultFiller), width)}
	for _, l := range lines {
		f = append(f, Center(displayable(l), width, DefaultFiller))
	}
	return append(f, strings.Repeat(string(DefaultFiller), width))
}

// displayable replaces anything outside printable ASCII, which the
// controller's character ROM does not map, so one byte is one cell.
func displayable(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case r < 0x20 || r > 0x7E:
			return '?'
		}
		return r
	}, s)
}
