// Package decode turns a range of terminal cells into plain text or HTML,
// the two serializations named as the final leaf component: everything
// upstream (screen, history, filters, hotspots) produces cell data or
// coordinates, and these decoders are what turns that into bytes a host
// can hand to a clipboard, a log file, or a browser.
package decode

import (
	"image/color"
	"strings"
)

// Cell is the minimal per-position data a decoder needs. Hosts convert
// their own grid cell type into this shape; decode has no dependency on
// any particular screen implementation.
type Cell struct {
	Char   rune
	Spacer bool

	Fg, Bg       color.Color
	Bold         bool
	Dim          bool
	Italic       bool
	Underline    bool
	Strike       bool
	Reverse      bool
	Hidden       bool
	HyperlinkURI string
}

// Row is one physical line of cells plus whether it continues onto the
// next row via a wrap (no line break is emitted after a wrapped row).
type Row struct {
	Cells   []Cell
	Wrapped bool
}

// PlainTextOptions shapes how PlainText renders a range of rows.
type PlainTextOptions struct {
	// PreserveLineBreaks inserts "\n" between rows that did not continue
	// via a wrap. When false, all rows are concatenated with no separator.
	PreserveLineBreaks bool
	// TrimTrailingWhitespace strips trailing spaces from each row before
	// joining.
	TrimTrailingWhitespace bool
}

// PlainText renders rows to a string: null cells contribute a single space
// and wide-character spacers contribute nothing, so each wide character
// appears once.
func PlainText(rows []Row, opts PlainTextOptions) string {
	var b strings.Builder
	for i, row := range rows {
		line := plainTextRow(row.Cells)
		if opts.TrimTrailingWhitespace {
			line = strings.TrimRight(line, " ")
		}
		b.WriteString(line)
		if i == len(rows)-1 {
			continue
		}
		if opts.PreserveLineBreaks && !row.Wrapped {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func plainTextRow(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.Spacer {
			continue
		}
		if c.Char == 0 {
			b.WriteRune(' ')
		} else {
			b.WriteRune(c.Char)
		}
	}
	return b.String()
}
