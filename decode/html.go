package decode

import (
	"fmt"
	"html"
	"image/color"
	"strings"
)

// HTMLOptions shapes how HTML renders a range of rows.
type HTMLOptions struct {
	PreserveLineBreaks     bool
	TrimTrailingWhitespace bool
}

// HTML renders rows to a single <div>. Each contiguous stretch of cells
// sharing the same resolved style is one run: a <span> with inline CSS
// carrying foreground, background, and rendition, or bare text when the
// run has no style. Runs never
// cross a row boundary, since a row may end in a line break the next
// row's run must not inherit visually.
func HTML(rows []Row, opts HTMLOptions) string {
	var b strings.Builder
	b.WriteString("<div>")
	for i, row := range rows {
		writeHTMLRow(&b, row.Cells, opts.TrimTrailingWhitespace)
		if i == len(rows)-1 {
			continue
		}
		if opts.PreserveLineBreaks && !row.Wrapped {
			b.WriteString("<br>")
		}
	}
	b.WriteString("</div>")
	return b.String()
}

func writeHTMLRow(b *strings.Builder, cells []Cell, trimTrailing bool) {
	cells = trimmedRow(cells, trimTrailing)

	var run strings.Builder
	var runStyle string
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runStyle == "" {
			b.WriteString(run.String())
		} else {
			fmt.Fprintf(b, `<span style="%s">%s</span>`, runStyle, run.String())
		}
		run.Reset()
	}

	for _, c := range cells {
		if c.Spacer {
			continue
		}
		style := cellStyle(c)
		if style != runStyle && run.Len() > 0 {
			flush()
		}
		runStyle = style
		ch := c.Char
		if ch == 0 {
			ch = ' '
		}
		run.WriteString(html.EscapeString(string(ch)))
	}
	flush()
}

// trimmedRow drops trailing cells that render as a plain space with no
// non-default styling, matching TrimTrailingWhitespace's text-mode effect
// without destroying a meaningfully-styled trailing run (e.g. a
// background-colored margin the caller intentionally selected).
func trimmedRow(cells []Cell, trim bool) []Cell {
	if !trim {
		return cells
	}
	end := len(cells)
	for end > 0 {
		c := cells[end-1]
		if c.Spacer {
			end--
			continue
		}
		isSpace := c.Char == 0 || c.Char == ' '
		if isSpace && cellStyle(c) == "" {
			end--
			continue
		}
		break
	}
	return cells[:end]
}

func cellStyle(c Cell) string {
	fg, bg := c.Fg, c.Bg
	if c.Reverse {
		fg, bg = bg, fg
	}

	var decls []string
	if fg != nil {
		decls = append(decls, "color:"+cssColor(fg))
	}
	if bg != nil {
		decls = append(decls, "background-color:"+cssColor(bg))
	}
	if c.Bold {
		decls = append(decls, "font-weight:bold")
	}
	if c.Dim {
		decls = append(decls, "opacity:0.6")
	}
	if c.Italic {
		decls = append(decls, "font-style:italic")
	}
	if c.Underline {
		decls = append(decls, "text-decoration:underline")
	}
	if c.Strike {
		decls = append(decls, "text-decoration:line-through")
	}
	if c.Hidden {
		decls = append(decls, "visibility:hidden")
	}
	return strings.Join(decls, ";")
}

func cssColor(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "transparent"
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", r>>8, g>>8, b>>8)
}
