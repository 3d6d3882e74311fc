package history

import "testing"

func newTestFile(t *testing.T) *File {
	t.Helper()
	f, err := NewFile("")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFileAppendAndGetCellsRoundTrip(t *testing.T) {
	f := newTestFile(t)

	cells := []Cell{
		{Char: 'h', Flags: CellFlags(1)},
		{Char: 'i', Fg: &NamedColor{Name: 256}},
	}
	f.AppendCells(cells, len(cells))
	f.AppendLine(true)

	if f.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", f.LineCount())
	}
	if got := f.LineLength(0); got != 2 {
		t.Fatalf("expected line length 2, got %d", got)
	}
	if !f.IsWrapped(0) {
		t.Error("expected line 0 to be marked wrapped")
	}

	dst := make([]Cell, 2)
	got := f.GetCells(0, 0, 2, dst)
	if got != 2 {
		t.Fatalf("expected 2 cells read back, got %d", got)
	}
	if dst[0].Char != 'h' || dst[1].Char != 'i' {
		t.Errorf("expected cells [h i], got %q %q", dst[0].Char, dst[1].Char)
	}
	if dst[0].Flags != CellFlags(1) {
		t.Errorf("expected flags to round-trip, got %v", dst[0].Flags)
	}
	nc, ok := dst[1].Fg.(*NamedColor)
	if !ok || nc.Name != 256 {
		t.Errorf("expected Fg to round-trip as NamedColor{256}, got %#v", dst[1].Fg)
	}
}

func TestFileGetCellsOutOfRangeIsZeroed(t *testing.T) {
	f := newTestFile(t)
	f.AppendCells(cellsOf("ab"), 2)
	f.AppendLine(false)

	dst := make([]Cell, 2)
	if got := f.GetCells(0, 5, 2, dst); got != 0 {
		t.Errorf("expected 0 cells for an out-of-range column, got %d", got)
	}
	if got := f.GetCells(5, 0, 2, dst); got != 0 {
		t.Errorf("expected 0 cells for an out-of-range line, got %d", got)
	}
}

func TestFileRemoveLastCellsUndoesAppendLine(t *testing.T) {
	f := newTestFile(t)
	f.AppendCells(cellsOf("keep"), 4)
	f.AppendLine(false)
	f.AppendCells(cellsOf("drop"), 4)
	f.AppendLine(false)

	f.RemoveLastCells()
	if f.LineCount() != 1 {
		t.Fatalf("expected 1 line after RemoveLastCells, got %d", f.LineCount())
	}
	dst := make([]Cell, 4)
	f.GetCells(0, 0, 4, dst)
	if string([]rune{dst[0].Char, dst[1].Char, dst[2].Char, dst[3].Char}) != "keep" {
		t.Errorf("expected remaining line to read 'keep', got %v", dst)
	}
}

func TestFileReflowRewrapsAcrossTheIndex(t *testing.T) {
	f := newTestFile(t)
	// One paragraph spanning two wrapped lines at width 6: "hello " + "world".
	f.AppendCells(cellsOf("hello "), 6)
	f.AppendLine(true)
	f.AppendCells(cellsOf("world"), 5)
	f.AppendLine(false)

	delta := f.Reflow(11)
	if f.LineCount() != 1 {
		t.Fatalf("expected reflow to merge into 1 line, got %d (delta %d)", f.LineCount(), delta)
	}
	if f.LineLength(0) != 11 {
		t.Fatalf("expected merged line length 11, got %d", f.LineLength(0))
	}
	dst := make([]Cell, 11)
	f.GetCells(0, 0, 11, dst)
	out := make([]rune, 11)
	for i, c := range dst {
		out[i] = c.Char
	}
	if string(out) != "hello world" {
		t.Errorf("expected 'hello world', got %q", string(out))
	}
}

func TestFileClearResetsLineCount(t *testing.T) {
	f := newTestFile(t)
	f.AppendCells(cellsOf("ab"), 2)
	f.AppendLine(false)
	f.Clear()
	if f.LineCount() != 0 {
		t.Errorf("expected 0 lines after Clear, got %d", f.LineCount())
	}
}

func TestFileMaxLinesIsUnbounded(t *testing.T) {
	f := newTestFile(t)
	if f.MaxLines() != 0 {
		t.Errorf("expected File.MaxLines() == 0 (unbounded), got %d", f.MaxLines())
	}
	f.SetMaxLines(10) // no-op
	if f.MaxLines() != 0 {
		t.Error("expected SetMaxLines to remain a no-op on the unbounded backend")
	}
}

