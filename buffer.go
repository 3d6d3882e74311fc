package headlessterm

// Buffer stores a 2D grid of cells (one Line per row, carrying its
// LineProperty flags) and optionally evicts scrolled-off lines into a
// History backend.
type Buffer struct {
	rows     int
	cols     int
	lines    []Line
	tabStop  []bool
	history  History
	hasDirty bool
}

// NewBuffer creates a buffer with the given dimensions and no history.
func NewBuffer(rows, cols int) *Buffer {
	return NewBufferWithStorage(rows, cols, NoopScrollback{})
}

// NewBufferWithStorage creates a buffer with a custom History backend.
// Tab stops are initialized every 8 columns.
func NewBufferWithStorage(rows, cols int, history History) *Buffer {
	b := &Buffer{
		rows:    rows,
		cols:    cols,
		lines:   make([]Line, rows),
		tabStop: make([]bool, cols),
		history: history,
	}

	for i := range b.lines {
		b.lines[i] = NewLine(cols)
	}

	for i := 0; i < cols; i += 8 {
		b.tabStop[i] = true
	}

	return b
}

// Rows returns the buffer height in character rows.
func (b *Buffer) Rows() int {
	return b.rows
}

// Cols returns the buffer width in character columns.
func (b *Buffer) Cols() int {
	return b.cols
}

// Line returns a pointer to the Line at row, or nil if out of bounds.
func (b *Buffer) Line(row int) *Line {
	if row < 0 || row >= b.rows {
		return nil
	}
	return &b.lines[row]
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (b *Buffer) Cell(row, col int) *Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil
	}
	return &b.lines[row].Cells[col]
}

// SetCell replaces the cell at (row, col) and marks it dirty.
// Does nothing if coordinates are out of bounds.
func (b *Buffer) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	cell.MarkDirty()
	b.lines[row].Cells[col] = cell
	b.hasDirty = true
}

// MarkDirty marks the cell at (row, col) as modified.
// Does nothing if coordinates are out of bounds.
func (b *Buffer) MarkDirty(row, col int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	b.lines[row].Cells[col].MarkDirty()
	b.hasDirty = true
}

// HasDirty returns true if any cell has been modified since the last ClearAllDirty call.
func (b *Buffer) HasDirty() bool {
	return b.hasDirty
}

// DirtyCells returns positions of all modified cells.
func (b *Buffer) DirtyCells() []Position {
	var positions []Position
	for row := range b.lines {
		for col := range b.lines[row].Cells {
			if b.lines[row].Cells[col].IsDirty() {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// ClearAllDirty resets the dirty state of all cells.
func (b *Buffer) ClearAllDirty() {
	for row := range b.lines {
		for col := range b.lines[row].Cells {
			b.lines[row].Cells[col].ClearDirty()
		}
	}
	b.hasDirty = false
}

// ClearRow resets all cells in the row to default state, clears its
// properties, and marks them dirty.
func (b *Buffer) ClearRow(row int) {
	if row < 0 || row >= b.rows {
		return
	}
	for col := range b.lines[row].Cells {
		b.lines[row].Cells[col].Reset()
		b.lines[row].Cells[col].MarkDirty()
	}
	b.lines[row].Properties = 0
	b.hasDirty = true
}

// ClearRowRange resets cells in the row from startCol (inclusive) to endCol
// (exclusive), including any carrying CellFlagProtected. This is the base
// (non-selective) ED/EL behavior; use ClearRowRangeSelective for DECSED/DECSEL.
func (b *Buffer) ClearRowRange(row, startCol, endCol int) {
	b.clearRowRange(row, startCol, endCol, false)
}

// ClearRowRangeSelective behaves like ClearRowRange but honors
// CellFlagProtected, leaving protected cells untouched (DECSEL/DECSED).
func (b *Buffer) ClearRowRangeSelective(row, startCol, endCol int) {
	b.clearRowRange(row, startCol, endCol, true)
}

func (b *Buffer) clearRowRange(row, startCol, endCol int, selective bool) {
	if row < 0 || row >= b.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > b.cols {
		endCol = b.cols
	}
	for col := startCol; col < endCol; col++ {
		cell := &b.lines[row].Cells[col]
		if selective && cell.IsProtected() {
			continue
		}
		cell.Reset()
		cell.MarkDirty()
	}
	b.hasDirty = true
}

// ClearAll resets all cells in the buffer to default state.
func (b *Buffer) ClearAll() {
	for row := range b.lines {
		b.ClearRow(row)
	}
}

// ScrollUp shifts lines up by n positions within [top, bottom). Lines
// scrolled off the top are appended to History if top==0; otherwise they are
// discarded (§4.1).
func (b *Buffer) ScrollUp(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > b.rows {
		bottom = b.rows
	}
	if n > bottom-top {
		n = bottom - top
	}

	if b.history != nil && top == 0 {
		for i := 0; i < n; i++ {
			b.pushToHistory(&b.lines[i])
		}
	}

	for row := top; row < bottom-n; row++ {
		b.lines[row] = b.lines[row+n]
		for col := range b.lines[row].Cells {
			b.lines[row].Cells[col].MarkDirty()
		}
	}

	for row := bottom - n; row < bottom; row++ {
		b.lines[row] = NewLine(b.cols)
		for col := range b.lines[row].Cells {
			b.lines[row].Cells[col].MarkDirty()
		}
	}
	b.hasDirty = true
}

// pushToHistory appends a trimmed copy of line to the History backend.
func (b *Buffer) pushToHistory(line *Line) {
	n := line.TrimmedLength()
	if n > 0 {
		b.history.AppendCells(line.Cells[:n], n)
	}
	b.history.AppendLine(line.IsWrapped())
}

// ScrollDown shifts lines down by n positions within [top, bottom).
// Top lines are cleared and marked dirty.
func (b *Buffer) ScrollDown(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > b.rows {
		bottom = b.rows
	}
	if n > bottom-top {
		n = bottom - top
	}

	for row := bottom - 1; row >= top+n; row-- {
		b.lines[row] = b.lines[row-n]
		for col := range b.lines[row].Cells {
			b.lines[row].Cells[col].MarkDirty()
		}
	}

	for row := top; row < top+n; row++ {
		b.lines[row] = NewLine(b.cols)
		for col := range b.lines[row].Cells {
			b.lines[row].Cells[col].MarkDirty()
		}
	}
	b.hasDirty = true
}

// InsertLines inserts n blank lines at row, shifting existing lines down.
// Equivalent to ScrollDown(row, bottom, n).
func (b *Buffer) InsertLines(row, n, bottom int) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	b.ScrollDown(row, bottom, n)
}

// DeleteLines removes n lines at row, shifting remaining lines up.
// Equivalent to ScrollUp(row, bottom, n).
func (b *Buffer) DeleteLines(row, n, bottom int) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	b.ScrollUp(row, bottom, n)
}

// InsertBlanks inserts n blank cells at (row, col), shifting existing characters right.
func (b *Buffer) InsertBlanks(row, col, n int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols || n <= 0 {
		return
	}
	cells := b.lines[row].Cells
	for c := b.cols - 1; c >= col+n; c-- {
		cells[c] = cells[c-n]
		cells[c].MarkDirty()
	}
	for c := col; c < col+n && c < b.cols; c++ {
		cells[c].Reset()
		cells[c].MarkDirty()
	}
	b.hasDirty = true
}

// DeleteChars removes n characters at (row, col), shifting remaining characters left.
func (b *Buffer) DeleteChars(row, col, n int) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols || n <= 0 {
		return
	}
	cells := b.lines[row].Cells
	for c := col; c < b.cols-n; c++ {
		cells[c] = cells[c+n]
		cells[c].MarkDirty()
	}
	for c := b.cols - n; c < b.cols; c++ {
		if c >= 0 {
			cells[c].Reset()
			cells[c].MarkDirty()
		}
	}
	b.hasDirty = true
}

// Resize changes buffer dimensions, preserving existing cells where possible.
// Content is kept at the top-left corner. When shrinking, bottom/right content is lost.
// When growing, new empty cells are added at the bottom/right.
// Tab stops are extended if columns increase. This is the non-reflowing
// resize used for the alternate screen and when reflow_on_resize is off;
// Terminal.Resize runs reflowScreen on the primary screen instead when
// column-aware reflow applies.
func (b *Buffer) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	newLines := make([]Line, rows)
	for i := range newLines {
		newLines[i] = NewLine(cols)
		if i < b.rows {
			n := cols
			if len(b.lines[i].Cells) < n {
				n = len(b.lines[i].Cells)
			}
			copy(newLines[i].Cells, b.lines[i].Cells[:n])
			newLines[i].Properties = b.lines[i].Properties
		}
		for j := range newLines[i].Cells {
			newLines[i].Cells[j].MarkDirty()
		}
	}

	b.lines = newLines
	b.rows = rows
	b.cols = cols
	b.hasDirty = true

	newTabStop := make([]bool, cols)
	copy(newTabStop, b.tabStop)
	for i := len(b.tabStop); i < cols; i += 8 {
		newTabStop[i] = true
	}
	b.tabStop = newTabStop
}

// SetTabStop enables a tab stop at the specified column.
func (b *Buffer) SetTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStop[col] = true
	}
}

// ClearTabStop disables the tab stop at the specified column.
func (b *Buffer) ClearTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStop[col] = false
	}
}

// ClearAllTabStops disables all tab stops.
func (b *Buffer) ClearAllTabStops() {
	for i := range b.tabStop {
		b.tabStop[i] = false
	}
}

// NextTabStop returns the column index of the next enabled tab stop after col.
// Returns the last column if no tab stop is found.
func (b *Buffer) NextTabStop(col int) int {
	for c := col + 1; c < b.cols; c++ {
		if b.tabStop[c] {
			return c
		}
	}
	return b.cols - 1
}

// PrevTabStop returns the column index of the previous enabled tab stop
// before col. Returns 0 if none is found (backward_tab from column 0 is a
// no-op per §4.1).
func (b *Buffer) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if b.tabStop[c] {
			return c
		}
	}
	return 0
}

// FillWithE fills all cells with 'E' (used by DECALN alignment test pattern).
func (b *Buffer) FillWithE() {
	for row := range b.lines {
		for col := range b.lines[row].Cells {
			b.lines[row].Cells[col].Reset()
			b.lines[row].Cells[col].Char = 'E'
			b.lines[row].Cells[col].MarkDirty()
		}
	}
	b.hasDirty = true
}

// HistoryLen returns the number of lines stored in History.
func (b *Buffer) HistoryLen() int {
	if b.history == nil {
		return 0
	}
	return b.history.LineCount()
}

// HistoryLine materializes a Line from History, where 0 is the oldest line.
// Returns nil if index is out of range or history is disabled.
func (b *Buffer) HistoryLine(index int) *Line {
	if b.history == nil || index < 0 || index >= b.history.LineCount() {
		return nil
	}
	n := b.history.LineLength(index)
	line := NewLine(b.cols)
	dst := make([]Cell, n)
	got := b.history.GetCells(index, 0, n, dst)
	copy(line.Cells, dst[:got])
	if b.history.IsWrapped(index) {
		line.SetProperty(LinePropertyWrapped)
	}
	return &line
}

// ClearHistory removes all stored history lines.
func (b *Buffer) ClearHistory() {
	if b.history != nil {
		b.history.Clear()
	}
}

// SetMaxHistory sets the maximum number of history lines to retain.
func (b *Buffer) SetMaxHistory(max int) {
	if b.history != nil {
		b.history.SetMaxLines(max)
	}
}

// MaxHistory returns the current maximum history capacity.
func (b *Buffer) MaxHistory() int {
	if b.history == nil {
		return 0
	}
	return b.history.MaxLines()
}

// SetHistory replaces the History backend, migrating existing lines into it
// in order (§4.3 backend migration). The Buffer itself is not reset.
func (b *Buffer) SetHistory(h History) {
	if b.history != nil {
		n := b.history.LineCount()
		for i := 0; i < n; i++ {
			ln := b.history.LineLength(i)
			dst := make([]Cell, ln)
			got := b.history.GetCells(i, 0, ln, dst)
			h.AppendCells(dst[:got], got)
			h.AppendLine(b.history.IsWrapped(i))
		}
	}
	b.history = h
}

// HistoryProvider returns the current History backend.
func (b *Buffer) HistoryProvider() History {
	return b.history
}

// LineContent returns the text content of a line, trimming trailing spaces.
// Wide character spacers are skipped. Returns empty string if the line is empty or out of bounds.
func (b *Buffer) LineContent(row int) string {
	if row < 0 || row >= b.rows {
		return ""
	}
	n := b.lines[row].TrimmedLength()
	if n == 0 {
		return ""
	}
	runes := make([]rune, 0, n)
	for _, cell := range b.lines[row].Cells[:n] {
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Char)
		}
	}
	return string(runes)
}

// --- Auto Resize ---

// GrowRows appends n new rows to the bottom of the buffer.
func (b *Buffer) GrowRows(n int) {
	if n <= 0 {
		return
	}
	newRows := b.rows + n
	newLines := make([]Line, newRows)
	copy(newLines, b.lines)
	for i := b.rows; i < newRows; i++ {
		newLines[i] = NewLine(b.cols)
		for j := range newLines[i].Cells {
			newLines[i].Cells[j].MarkDirty()
		}
	}
	b.lines = newLines
	b.rows = newRows
	b.hasDirty = true
}

// GrowCols expands a single row to at least minCols columns.
func (b *Buffer) GrowCols(row, minCols int) {
	if row < 0 || row >= b.rows {
		return
	}
	if minCols <= len(b.lines[row].Cells) {
		return
	}
	newCells := make([]Cell, minCols)
	copy(newCells, b.lines[row].Cells)
	for j := len(b.lines[row].Cells); j < minCols; j++ {
		newCells[j] = NewCell()
		newCells[j].MarkDirty()
	}
	b.lines[row].Cells = newCells

	if minCols > b.cols {
		b.cols = minCols
		newTabStop := make([]bool, minCols)
		copy(newTabStop, b.tabStop)
		for i := len(b.tabStop); i < minCols; i += 8 {
			newTabStop[i] = true
		}
		b.tabStop = newTabStop
	}
	b.hasDirty = true
}

// --- Wrapped Line Tracking ---

// IsWrapped returns true if the line was wrapped due to column overflow.
func (b *Buffer) IsWrapped(row int) bool {
	if row < 0 || row >= b.rows {
		return false
	}
	return b.lines[row].IsWrapped()
}

// SetWrapped sets whether the line was wrapped or ended with an explicit newline.
func (b *Buffer) SetWrapped(row int, wrapped bool) {
	if row < 0 || row >= b.rows {
		return
	}
	if wrapped {
		b.lines[row].SetProperty(LinePropertyWrapped)
	} else {
		b.lines[row].ClearProperty(LinePropertyWrapped)
	}
}

// Position identifies a cell location in the terminal grid (0-based).
type Position struct {
	Row int
	Col int
}

// Before returns true if this position comes before other in reading order (top-to-bottom, left-to-right).
func (p Position) Before(other Position) bool {
	if p.Row < other.Row {
		return true
	}
	if p.Row == other.Row && p.Col < other.Col {
		return true
	}
	return false
}

// Equal returns true if both row and column match.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}
