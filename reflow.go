package headlessterm

// reflowScreen re-wraps the primary buffer's logical content (history plus
// the visible screen) to newCols. Lines connected by a WRAPPED flag are
// treated as one logical paragraph; each paragraph is re-split at the new
// width and the history/screen boundary shifts accordingly: narrowing
// pushes overflow into history, widening can pull lines back out of it.
// The actual re-splitting of stored lines is delegated to the History
// backend's own Reflow, so a File-backed history can rewrite its line
// index without touching cell bytes; the screen's own rows are folded into
// history first so the whole paragraph sequence reflows as one run.
//
// The cursor is relocated to the same logical character offset it indexed
// before reflow, clamping to the end of its paragraph if that character no
// longer exists. Selection anchors are remapped the same way; if either
// anchor's row no longer resolves to a paragraph, the selection is
// cleared.
func reflowScreen(t *Terminal, newCols int) {
	buf := t.primaryBuffer
	if newCols == buf.Cols() {
		return
	}

	screenRows := buf.Rows()
	historyLen := buf.HistoryLen()

	cursorAbsRow := historyLen + t.cursor.Row
	cursorOffset, cursorParagraph, cursorOK := logicalOffset(buf, historyLen, cursorAbsRow, t.cursor.Col)

	hadSelection := t.selection.Active
	var selStartOffset, selEndOffset, selStartParagraph, selEndParagraph int
	var selStartOK, selEndOK bool
	if hadSelection {
		selStartOffset, selStartParagraph, selStartOK = logicalOffset(buf, historyLen, t.selection.Start.Row, t.selection.Start.Col)
		selEndOffset, selEndParagraph, selEndOK = logicalOffset(buf, historyLen, t.selection.End.Row, t.selection.End.Col)
	}

	// Precompute where each paragraph's content lands after reflow, using
	// the same join-then-resplit algorithm the History backends apply to
	// their own stored lines. This only drives cursor/selection placement;
	// the actual mutation below is delegated to History.Reflow.
	paragraphs := collectLogicalParagraphs(buf, historyLen, screenRows)
	var cursorNewRow, cursorNewCol int
	var selStartNewRow, selStartNewCol, selEndNewRow, selEndNewCol int
	row := 0
	for idx, p := range paragraphs {
		lines := rewrapParagraph(p, newCols)
		if cursorOK && idx == cursorParagraph {
			cursorNewRow, cursorNewCol = locateInRewrapped(lines, row, cursorOffset)
		}
		if selStartOK && idx == selStartParagraph {
			selStartNewRow, selStartNewCol = locateInRewrapped(lines, row, selStartOffset)
		}
		if selEndOK && idx == selEndParagraph {
			selEndNewRow, selEndNewCol = locateInRewrapped(lines, row, selEndOffset)
		}
		row += len(lines)
	}
	totalAfter := row

	_, discardsEverything := buf.HistoryProvider().(NoopScrollback)
	history := buf.HistoryProvider()
	if history == nil || discardsEverything {
		// Nothing can be folded in and read back out: None discards every
		// appended line, so pushing the screen into it would lose content
		// that should have stayed visible. Re-split each screen row's own
		// paragraph run in place instead, same as the alternate screen.
		reflowScreenOnly(buf, newCols)
		relocateCursorAndSelection(t, buf, 0, totalAfter, screenRows, newCols,
			cursorOK, cursorNewRow, cursorNewCol,
			hadSelection, selStartOK, selEndOK,
			selStartNewRow, selStartNewCol, selEndNewRow, selEndNewCol)
		return
	}

	// Fold the live screen into history so the backend reflows the whole
	// paragraph sequence as one run, then pull back enough lines to refill
	// the screen at the new width.
	for r := 0; r < screenRows; r++ {
		buf.pushToHistory(buf.Line(r))
	}
	history.Reflow(newCols)

	total := history.LineCount()
	screenStart := total - screenRows
	if screenStart < 0 {
		screenStart = 0
	}
	keep := total - screenStart

	popped := make([]Line, keep)
	for i := keep - 1; i >= 0; i-- {
		last := history.LineCount() - 1
		n := history.LineLength(last)
		dst := make([]Cell, n)
		got := history.GetCells(last, 0, n, dst)
		line := NewLine(newCols)
		copy(line.Cells, dst[:got])
		if history.IsWrapped(last) {
			line.SetProperty(LinePropertyWrapped)
		}
		popped[i] = line
		history.RemoveLastCells()
	}

	newLines := make([]Line, screenRows)
	for i := range newLines {
		newLines[i] = NewLine(newCols)
	}
	copy(newLines, popped)
	for i := range newLines {
		for c := range newLines[i].Cells {
			newLines[i].Cells[c].MarkDirty()
		}
	}

	buf.lines = newLines
	buf.cols = newCols
	buf.tabStop = newTabStops(newCols)
	buf.hasDirty = true

	relocateCursorAndSelection(t, buf, screenStart, totalAfter, screenRows, newCols,
		cursorOK, cursorNewRow, cursorNewCol,
		hadSelection, selStartOK, selEndOK,
		selStartNewRow, selStartNewCol, selEndNewRow, selEndNewCol)
}

// reflowScreenOnly handles the no-history case: the screen rows are joined
// into paragraphs along their wrap flags (no lines are folded in from
// history), re-split, and laid back out from the top, padding or truncating
// to fit screenRows.
func reflowScreenOnly(buf *Buffer, newCols int) {
	screenRows := buf.Rows()
	paragraphs := collectLogicalParagraphs(buf, 0, screenRows)
	var final []reflowLine
	for _, p := range paragraphs {
		final = append(final, rewrapParagraph(p, newCols)...)
	}
	newLines := make([]Line, screenRows)
	for i := range newLines {
		newLines[i] = NewLine(newCols)
	}
	for i := 0; i < len(final) && i < screenRows; i++ {
		copy(newLines[i].Cells, final[i].cells)
		if final[i].wrapped {
			newLines[i].SetProperty(LinePropertyWrapped)
		}
		for c := range newLines[i].Cells {
			newLines[i].Cells[c].MarkDirty()
		}
	}
	buf.lines = newLines
	buf.cols = newCols
	buf.tabStop = newTabStops(newCols)
	buf.hasDirty = true
}

func newTabStops(cols int) []bool {
	stops := make([]bool, cols)
	for i := 0; i < cols; i += 8 {
		stops[i] = true
	}
	return stops
}

// relocateCursorAndSelection applies the precomputed post-reflow positions,
// converting the cursor's absolute row into a screen-relative one and
// clamping both to the new dimensions.
func relocateCursorAndSelection(
	t *Terminal, buf *Buffer, screenStart, totalAfter, screenRows, newCols int,
	cursorOK bool, cursorNewRow, cursorNewCol int,
	hadSelection, selStartOK, selEndOK bool,
	selStartNewRow, selStartNewCol, selEndNewRow, selEndNewCol int,
) {
	if cursorOK {
		r := cursorNewRow - screenStart
		if r < 0 {
			r = 0
		}
		if r >= screenRows {
			r = screenRows - 1
		}
		t.cursor.Row = r
		t.cursor.Col = clampCol(cursorNewCol, newCols)
	}

	if hadSelection {
		if !selStartOK || !selEndOK {
			t.selection.Active = false
			return
		}
		t.selection.Start = clampSelectionPos(selStartNewRow, selStartNewCol, totalAfter, newCols)
		t.selection.End = clampSelectionPos(selEndNewRow, selEndNewCol, totalAfter, newCols)
	}
}

// reflowLine is one physical row produced by re-splitting a logical
// paragraph at a new column width.
type reflowLine struct {
	cells   []Cell
	wrapped bool
}

// paragraphCells returns a trimmed copy of the cells that make up absRow,
// reading from history or the live screen as appropriate.
func paragraphCells(buf *Buffer, historyLen, absRow int) []Cell {
	if absRow < historyLen {
		hl := buf.HistoryLine(absRow)
		if hl == nil {
			return nil
		}
		n := hl.TrimmedLength()
		return append([]Cell(nil), hl.Cells[:n]...)
	}
	line := buf.Line(absRow - historyLen)
	if line == nil {
		return nil
	}
	n := line.TrimmedLength()
	return append([]Cell(nil), line.Cells[:n]...)
}

// isWrappedAbs reports whether absRow continues onto the next line.
func isWrappedAbs(buf *Buffer, historyLen, absRow int) bool {
	if absRow < historyLen {
		h := buf.HistoryProvider()
		if h == nil {
			return false
		}
		return h.IsWrapped(absRow)
	}
	return buf.IsWrapped(absRow - historyLen)
}

// collectLogicalParagraphs walks history followed by the screen, joining
// runs of wrapped lines into single cell slices.
func collectLogicalParagraphs(buf *Buffer, historyLen, screenRows int) [][]Cell {
	totalLines := historyLen + screenRows
	var paragraphs [][]Cell
	var current []Cell
	for absRow := 0; absRow < totalLines; absRow++ {
		current = append(current, paragraphCells(buf, historyLen, absRow)...)
		if !isWrappedAbs(buf, historyLen, absRow) {
			paragraphs = append(paragraphs, current)
			current = nil
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}
	return paragraphs
}

// rewrapParagraph splits cells into chunks of at most newCols, marking
// every chunk but the last as wrapped.
func rewrapParagraph(cells []Cell, newCols int) []reflowLine {
	if len(cells) == 0 {
		return []reflowLine{{}}
	}
	var lines []reflowLine
	for len(cells) > newCols {
		lines = append(lines, reflowLine{cells: cells[:newCols], wrapped: true})
		cells = cells[newCols:]
	}
	lines = append(lines, reflowLine{cells: cells})
	return lines
}

// logicalOffset converts an (absRow, col) cell position into a
// (paragraph index, character offset within that paragraph) pair.
func logicalOffset(buf *Buffer, historyLen, targetAbsRow, col int) (offset, paragraph int, ok bool) {
	totalLines := historyLen + buf.Rows()
	if targetAbsRow < 0 || targetAbsRow >= totalLines {
		return 0, 0, false
	}
	running := 0
	idx := 0
	for absRow := 0; absRow < targetAbsRow; absRow++ {
		running += len(paragraphCells(buf, historyLen, absRow))
		if !isWrappedAbs(buf, historyLen, absRow) {
			running = 0
			idx++
		}
	}
	return running + col, idx, true
}

// locateInRewrapped finds the (row, col) of a paragraph-relative character
// offset within its re-split lines, clamping to the paragraph's last
// character if the offset no longer exists.
func locateInRewrapped(lines []reflowLine, startRow, offset int) (row, col int) {
	acc := 0
	for i, ln := range lines {
		n := len(ln.cells)
		if offset <= acc+n {
			return startRow + i, offset - acc
		}
		acc += n
	}
	last := len(lines) - 1
	if last < 0 {
		return startRow, 0
	}
	return startRow + last, len(lines[last].cells)
}

func clampCol(col, newCols int) int {
	if col < 0 {
		return 0
	}
	if col >= newCols {
		return newCols - 1
	}
	return col
}

// clampSelectionPos keeps a remapped selection anchor within the reflowed
// content's bounds.
func clampSelectionPos(row, col, total, newCols int) Position {
	if row < 0 {
		row = 0
	}
	if total > 0 && row >= total {
		row = total - 1
	}
	return Position{Row: row, Col: clampCol(col, newCols)}
}
