// Package history implements two of the scrollback backends a Screen can be
// configured with: Compact (a bounded in-memory ring) and File (unbounded,
// backed by temp files with demand-paged mmap). The None mode has no type
// here; the root package's NoopScrollback serves it. The package is
// deliberately self-contained — it defines its own Cell/History shapes
// rather than importing the root package, which owns the conversion between
// the two at the point it wires a backend into a Terminal (WithHistory or
// Config.HistoryMode), avoiding an import cycle.
package history

import "image/color"

// CellFlags mirrors the root package's cell rendition/storage bitmask for
// the subset History actually needs to preserve across a backend.
type CellFlags uint32

// NamedColor mirrors the root package's semantic color reference (default
// foreground/background/cursor, ANSI dim variants).
type NamedColor struct {
	Name int
}

// IndexedColor mirrors the root package's 256-color palette reference.
type IndexedColor struct {
	Index int
}

// Hyperlink mirrors the root package's OSC-8 link association. History does
// not persist it (see diskCellSize in file.go), and Cell below has no
// hyperlink field.
type Hyperlink struct {
	ID  string
	URI string
}

// Cell is the backend-local mirror of the root package's Cell: the fields a
// scrollback backend must retain to restore a line to the screen. Color
// values are either *NamedColor, *IndexedColor, or a literal color.Color
// (typically image/color.RGBA); History never resolves them against a
// palette itself.
type Cell struct {
	Char  rune
	Fg    color.Color
	Bg    color.Color
	Flags CellFlags
}

// History is the backend contract Compact and File satisfy; it mirrors the
// root package's History interface structurally so the root-side adapter
// can wrap either backend without either package importing the other's
// concrete types.
type History interface {
	LineCount() int
	LineLength(i int) int
	GetCells(i, col, n int, dst []Cell) int
	IsWrapped(i int) bool
	AppendCells(cells []Cell, n int)
	AppendLine(wrapped bool)
	RemoveLastCells()
	Reflow(newColumns int) int
	Clear()
	SetMaxLines(max int)
	MaxLines() int
}

// rawLine is the backend-agnostic shape reflow operates on: a cell run plus
// whether it continues onto the next line.
type rawLine struct {
	cells   []Cell
	wrapped bool
}

// reflowLines re-splits a sequence of stored lines at newColumns. It first
// reconstitutes logical paragraphs by concatenating runs joined by the
// WRAPPED flag, then re-splits each paragraph at the new width, marking
// every fragment but the last as wrapped. A paragraph with no cells becomes
// a single empty, non-wrapped line; an empty lines slice yields no lines.
func reflowLines(lines []rawLine, newColumns int) []rawLine {
	if newColumns <= 0 {
		return lines
	}

	var paragraphs [][]Cell
	var cur []Cell
	haveCur := false
	for _, ln := range lines {
		cur = append(cur, ln.cells...)
		haveCur = true
		if !ln.wrapped {
			paragraphs = append(paragraphs, cur)
			cur = nil
			haveCur = false
		}
	}
	if haveCur {
		paragraphs = append(paragraphs, cur)
	}

	var out []rawLine
	for _, p := range paragraphs {
		if len(p) == 0 {
			out = append(out, rawLine{})
			continue
		}
		for start := 0; start < len(p); start += newColumns {
			end := start + newColumns
			wrapped := true
			if end >= len(p) {
				end = len(p)
				wrapped = false
			}
			seg := make([]Cell, end-start)
			copy(seg, p[start:end])
			out = append(out, rawLine{cells: seg, wrapped: wrapped})
		}
	}
	return out
}
