package headlessterm

import (
	"strings"

	"github.com/danielgatis/go-ansicode"
	"github.com/konterm/konterm/decode"
)

// SelectedTextOption shapes how GetSelectedText/SelectedText renders a
// selection's underlying cells into a string.
type SelectedTextOption int

const (
	// PreserveLineBreaks inserts "\n" between lines that did not continue
	// via a wrap, rather than collapsing the selection onto one line.
	PreserveLineBreaks SelectedTextOption = iota
	// TrimLeadingWhitespace strips leading spaces from each emitted line.
	TrimLeadingWhitespace
	// TrimTrailingWhitespace strips trailing spaces from each emitted line.
	TrimTrailingWhitespace
	// ConvertToHtml renders the selection through decode.HTML: one <div>
	// with a <span> of inline CSS for each styled run of cells.
	ConvertToHtml
	// ExcludePrompt omits rows between a PromptStart and CommandStart mark.
	ExcludePrompt
	// ExcludeInput omits rows between a CommandStart and CommandExecuted mark.
	ExcludeInput
	// ExcludeOutput omits rows between a CommandExecuted and
	// CommandFinished mark.
	ExcludeOutput
)

func hasOption(opts []SelectedTextOption, want SelectedTextOption) bool {
	for _, o := range opts {
		if o == want {
			return true
		}
	}
	return false
}

// rowExcluded reports whether absRow falls inside a prompt-mark range the
// caller asked to exclude.
func (t *Terminal) rowExcluded(absRow int, excludePrompt, excludeInput, excludeOutput bool) bool {
	if !excludePrompt && !excludeInput && !excludeOutput {
		return false
	}
	// Walk marks in order, tracking the most recent boundary type seen at
	// or before absRow.
	lastType := ansicode.ShellIntegrationMark(-1)
	haveMark := false
	for _, m := range t.promptMarks {
		if m.Row > absRow {
			break
		}
		lastType = m.Type
		haveMark = true
	}
	if !haveMark {
		return false
	}
	switch lastType {
	case ansicode.PromptStart:
		return excludePrompt
	case ansicode.CommandStart:
		return excludeInput
	case ansicode.CommandExecuted:
		return excludeOutput
	}
	return false
}

// GetSelectedText returns the active selection's text with default
// rendering (no line-break preservation, no trimming, no exclusions).
// Returns "" if no selection is active.
func (t *Terminal) GetSelectedText() string {
	return t.SelectedText()
}

// SelectedText returns the active selection's text, shaped by opts.
// Returns "" if no selection is active.
func (t *Terminal) SelectedText(opts ...SelectedTextOption) string {
	if !t.selection.Active {
		return ""
	}

	preserveBreaks := hasOption(opts, PreserveLineBreaks)
	trimLeading := hasOption(opts, TrimLeadingWhitespace)
	trimTrailing := hasOption(opts, TrimTrailingWhitespace)
	excludePrompt := hasOption(opts, ExcludePrompt)
	excludeInput := hasOption(opts, ExcludeInput)
	excludeOutput := hasOption(opts, ExcludeOutput)

	historyLen := t.primaryBuffer.HistoryLen()
	start, end := t.selection.Start, t.selection.End
	convertToHTML := hasOption(opts, ConvertToHtml)

	var lines []string
	var wrapped []bool
	var htmlRows []decode.Row

	appendRow := func(absRow int, colLo, colHi int, fullRow bool) {
		if t.rowExcluded(absRow, excludePrompt, excludeInput, excludeOutput) {
			return
		}
		var text string
		var isWrapped bool
		var cells []Cell
		if absRow < historyLen {
			hl := t.primaryBuffer.HistoryLine(absRow)
			if hl != nil {
				cells = rowRangeCells(hl.Cells, colLo, colHi, fullRow)
				text = cellsToString(cells)
				isWrapped = hl.IsWrapped()
			}
		} else {
			row := absRow - historyLen
			if row >= 0 && row < t.rows {
				cells = t.rowRangeCellsFromBuffer(row, colLo, colHi, fullRow)
				text = cellsToString(cells)
				isWrapped = t.activeBuffer.IsWrapped(row)
			}
		}
		lines = append(lines, text)
		wrapped = append(wrapped, isWrapped)
		if convertToHTML {
			htmlRows = append(htmlRows, decode.Row{Cells: cellsToDecodeCells(cells), Wrapped: isWrapped})
		}
	}

	switch t.selection.Mode {
	case SelectionBlock:
		lo, hi := start.Col, end.Col
		if lo > hi {
			lo, hi = hi, lo
		}
		for row := start.Row; row <= end.Row; row++ {
			appendRow(row, lo, hi+1, false)
		}

	case SelectionLine:
		for row := start.Row; row <= end.Row; row++ {
			appendRow(row, 0, 0, true)
		}

	default: // SelectionStream
		if start.Row == end.Row {
			appendRow(start.Row, start.Col, end.Col+1, false)
		} else {
			appendRow(start.Row, start.Col, 0, false)
			for row := start.Row + 1; row < end.Row; row++ {
				appendRow(row, 0, 0, true)
			}
			appendRow(end.Row, 0, end.Col+1, false)
		}
	}

	for i := range lines {
		if trimLeading {
			lines[i] = strings.TrimLeft(lines[i], " ")
		}
		if trimTrailing {
			lines[i] = strings.TrimRight(lines[i], " ")
		}
	}

	var b strings.Builder
	for i, line := range lines {
		b.WriteString(line)
		if i == len(lines)-1 {
			continue
		}
		if preserveBreaks && !wrapped[i] {
			b.WriteString("\n")
		}
	}

	if convertToHTML {
		return decode.HTML(htmlRows, decode.HTMLOptions{
			PreserveLineBreaks:     preserveBreaks,
			TrimTrailingWhitespace: trimTrailing,
		})
	}
	return b.String()
}

// rowRangeCells returns cells[colLo:colHi] (or the whole row when fullRow
// is set), clamped to the row's bounds.
func rowRangeCells(cells []Cell, colLo, colHi int, fullRow bool) []Cell {
	if fullRow {
		colLo, colHi = 0, len(cells)
	}
	if colLo < 0 {
		colLo = 0
	}
	if colHi > len(cells) {
		colHi = len(cells)
	}
	if colLo >= colHi {
		return nil
	}
	return cells[colLo:colHi]
}

func (t *Terminal) rowRangeCellsFromBuffer(row, colLo, colHi int, fullRow bool) []Cell {
	if fullRow {
		colLo, colHi = 0, t.cols
	}
	if colLo < 0 {
		colLo = 0
	}
	if colHi > t.cols {
		colHi = t.cols
	}
	if colLo >= colHi {
		return nil
	}
	out := make([]Cell, 0, colHi-colLo)
	for col := colLo; col < colHi; col++ {
		cell := t.activeBuffer.Cell(row, col)
		if cell == nil {
			out = append(out, NewCell())
			continue
		}
		out = append(out, *cell)
	}
	return out
}

// cellsToString renders cells to plain text, mapping null cells to spaces
// and skipping wide-character spacers, trimming trailing spaces the way a
// terminal selection always has.
func cellsToString(cells []Cell) string {
	var b strings.Builder
	for i := range cells {
		cell := &cells[i]
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			b.WriteRune(' ')
		} else {
			b.WriteRune(cell.Char)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// cellsToDecodeCells converts a Terminal's own Cell type into the
// decode package's host-agnostic shape, resolving colors against the
// default palette.
func cellsToDecodeCells(cells []Cell) []decode.Cell {
	out := make([]decode.Cell, len(cells))
	for i := range cells {
		c := &cells[i]
		fg := resolveColorWithPalette(c.Fg, true, nil)
		bg := resolveColorWithPalette(c.Bg, false, nil)
		dc := decode.Cell{
			Char:      c.Char,
			Spacer:    c.IsWideSpacer(),
			Fg:        fg,
			Bg:        bg,
			Bold:      c.HasFlag(CellFlagBold),
			Dim:       c.HasFlag(CellFlagDim),
			Italic:    c.HasFlag(CellFlagItalic),
			Underline: c.HasFlag(CellFlagUnderline) || c.HasFlag(CellFlagDoubleUnderline) || c.HasFlag(CellFlagCurlyUnderline),
			Strike:    c.HasFlag(CellFlagStrike),
			Reverse:   c.HasFlag(CellFlagReverse),
			Hidden:    c.HasFlag(CellFlagHidden),
		}
		if c.Hyperlink != nil {
			dc.HyperlinkURI = c.Hyperlink.URI
		}
		out[i] = dc
	}
	return out
}

// ViewportRowToAbsolute converts a 0-based row within the currently visible
// screen to an absolute row spanning history + screen (0 is the oldest
// history line).
func (t *Terminal) ViewportRowToAbsolute(viewportRow int) int {
	return t.primaryBuffer.HistoryLen() + viewportRow
}

// AbsoluteRowToViewport converts an absolute row back to a viewport row.
// Returns -1 if the row is in history or beyond the visible screen.
func (t *Terminal) AbsoluteRowToViewport(absRow int) int {
	historyLen := t.primaryBuffer.HistoryLen()
	row := absRow - historyLen
	if row < 0 || row >= t.rows {
		return -1
	}
	return row
}
