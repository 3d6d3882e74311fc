package filter

import (
	"strings"

	"github.com/unilibs/uniwidth"
)

// Cell is the minimal per-position data Build needs: a display rune and
// whether this position is the trailing spacer half of a wide character
// (in which case it contributes no rune of its own to the scanned text).
// Filters never see a caller's grid type directly; the window that owns
// the real cell grid converts into this shape before calling Build.
type Cell struct {
	Char   rune
	Spacer bool
}

// Line is one physical row handed to Build: its cells and whether its own
// WRAPPED property is set (it continues onto the next physical row).
type Line struct {
	Cells   []Cell
	Wrapped bool
}

// Buffer is the serialized visible image a Filter scans: the joined text
// of every line, plus a per-rune map back to (line, column) so a match's
// rune offsets can be translated into view-relative grid coordinates.
// Wrapped lines are joined with no separator; unwrapped lines are joined
// with "\n", so a URL split across a wrap is never missed and one that
// ends a paragraph is never accidentally merged with the next.
type Buffer struct {
	Text string
	rows int
	line []int
	col  []int
}

// Build serializes lines into a Buffer. Wide characters occupy one rune
// but advance the column by their display width; their trailing spacer
// cell contributes no rune of its own.
func Build(lines []Line) *Buffer {
	b := &Buffer{rows: len(lines)}
	var sb strings.Builder
	for i, ln := range lines {
		col := 0
		for _, c := range ln.Cells {
			if c.Spacer {
				continue
			}
			sb.WriteRune(c.Char)
			b.line = append(b.line, i)
			b.col = append(b.col, col)
			col += runeDisplayWidth(c.Char)
		}
		if i == len(lines)-1 {
			continue
		}
		if ln.Wrapped {
			continue
		}
		sb.WriteByte('\n')
		b.line = append(b.line, i)
		b.col = append(b.col, col)
	}
	b.Text = sb.String()
	return b
}

func runeDisplayWidth(r rune) int {
	w := uniwidth.RuneWidth(r)
	if w <= 0 {
		return 1
	}
	return w
}

// Rows returns the number of physical lines the Buffer was built from.
func (b *Buffer) Rows() int {
	return b.rows
}

// Locate translates a rune offset into Text back into (line, column) in
// the coordinate space of the lines passed to Build.
func (b *Buffer) Locate(runeOffset int) (line, col int, ok bool) {
	if runeOffset < 0 || runeOffset >= len(b.line) {
		return 0, 0, false
	}
	return b.line[runeOffset], b.col[runeOffset], true
}

// runeLen returns the number of runes in s.
func runeLen(s string) int {
	return len([]rune(s))
}
