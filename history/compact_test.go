package history

import "testing"

func cellsOf(chars string) []Cell {
	cells := make([]Cell, len(chars))
	for i, r := range chars {
		cells[i] = Cell{Char: r}
	}
	return cells
}

func appendLine(h History, text string, wrapped bool) {
	cells := cellsOf(text)
	h.AppendCells(cells, len(cells))
	h.AppendLine(wrapped)
}

func lineText(h History, i int) string {
	n := h.LineLength(i)
	dst := make([]Cell, n)
	got := h.GetCells(i, 0, n, dst)
	out := make([]rune, got)
	for k := 0; k < got; k++ {
		out[k] = dst[k].Char
	}
	return string(out)
}

func TestCompactEvictsOldestPastMax(t *testing.T) {
	c := NewCompact(3)

	appendLine(c, "one", false)
	appendLine(c, "two", false)
	appendLine(c, "three", false)
	if c.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", c.LineCount())
	}

	appendLine(c, "four", false)
	if c.LineCount() != 3 {
		t.Fatalf("expected eviction to keep line count at 3, got %d", c.LineCount())
	}
	if lineText(c, 0) != "two" {
		t.Errorf("expected oldest line ('one') evicted, got line 0 = %q", lineText(c, 0))
	}
	if lineText(c, 2) != "four" {
		t.Errorf("expected newest line 'four' at index 2, got %q", lineText(c, 2))
	}
}

func TestCompactUnboundedWhenMaxIsZero(t *testing.T) {
	c := NewCompact(0)
	for i := 0; i < 50; i++ {
		appendLine(c, "x", false)
	}
	if c.LineCount() != 50 {
		t.Errorf("expected no eviction for max<=0, got %d lines", c.LineCount())
	}
}

func TestCompactSetMaxLinesTrimsImmediately(t *testing.T) {
	c := NewCompact(0)
	for i := 0; i < 5; i++ {
		appendLine(c, "x", false)
	}
	c.SetMaxLines(2)
	if c.LineCount() != 2 {
		t.Errorf("expected SetMaxLines to trim immediately to 2, got %d", c.LineCount())
	}
}

func TestCompactRemoveLastCellsUndoesAppendLine(t *testing.T) {
	c := NewCompact(0)
	appendLine(c, "keep", false)
	appendLine(c, "drop", false)
	c.RemoveLastCells()
	if c.LineCount() != 1 {
		t.Fatalf("expected 1 line after RemoveLastCells, got %d", c.LineCount())
	}
	if lineText(c, 0) != "keep" {
		t.Errorf("expected remaining line to be 'keep', got %q", lineText(c, 0))
	}
}

func TestCompactReflowRewrapsAtNewWidth(t *testing.T) {
	c := NewCompact(0)
	// "hello world" wrapped across two 6-column lines becomes two lines at
	// width 6; reflowing to width 11 should merge them back into one.
	appendLine(c, "hello ", true)
	appendLine(c, "world", false)

	delta := c.Reflow(11)
	if c.LineCount() != 1 {
		t.Fatalf("expected reflow to merge wrapped lines into 1, got %d (delta %d)", c.LineCount(), delta)
	}
	if lineText(c, 0) != "hello world" {
		t.Errorf("expected merged line 'hello world', got %q", lineText(c, 0))
	}
	if c.IsWrapped(0) {
		t.Error("expected the merged, fully-fit line to not be marked wrapped")
	}
}

func TestCompactReflowEvictsPastMaxAfterGrowth(t *testing.T) {
	c := NewCompact(2)
	appendLine(c, "aaaaaaaaaa", false) // 10 chars
	appendLine(c, "bbbbbbbbbb", false)

	// Reflowing to width 3 splits each 10-char line into 4 fragments (3,3,3,1),
	// producing 8 lines total, which must then be evicted back down to 2.
	c.Reflow(3)
	if c.LineCount() != 2 {
		t.Fatalf("expected eviction back to max 2 lines after reflow growth, got %d", c.LineCount())
	}
}
