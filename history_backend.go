package headlessterm

import (
	"io"

	"github.com/konterm/konterm/history"
)

// historyAdapter wraps a history.Compact or history.File — both of which
// operate on the history package's own Cell shape — as a root History,
// converting cells element-wise at the GetCells/AppendCells boundary. This
// is the seam that lets history stay free of a dependency on this package:
// history would otherwise have to import it for Cell, and this package
// already imports history to construct backends, which is a cycle.
type historyAdapter struct {
	backend history.History
}

// wrapHistory adapts a history package backend to the root History
// interface.
func wrapHistory(b history.History) History {
	return &historyAdapter{backend: b}
}

func (a *historyAdapter) LineCount() int          { return a.backend.LineCount() }
func (a *historyAdapter) LineLength(i int) int    { return a.backend.LineLength(i) }
func (a *historyAdapter) IsWrapped(i int) bool    { return a.backend.IsWrapped(i) }
func (a *historyAdapter) AppendLine(wrapped bool) { a.backend.AppendLine(wrapped) }
func (a *historyAdapter) RemoveLastCells()        { a.backend.RemoveLastCells() }
func (a *historyAdapter) Clear()                  { a.backend.Clear() }

// Close releases the backend's resources if it holds any (history.File's
// temp files), satisfying io.Closer for Terminal.Close to call through to.
func (a *historyAdapter) Close() error {
	if c, ok := a.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
func (a *historyAdapter) SetMaxLines(max int) { a.backend.SetMaxLines(max) }
func (a *historyAdapter) MaxLines() int       { return a.backend.MaxLines() }

func (a *historyAdapter) Reflow(newColumns int) int {
	return a.backend.Reflow(newColumns)
}

func (a *historyAdapter) GetCells(i, col, n int, dst []Cell) int {
	src := make([]history.Cell, n)
	got := a.backend.GetCells(i, col, n, src)
	for k := 0; k < got; k++ {
		dst[k] = cellFromHistory(src[k])
	}
	return got
}

func (a *historyAdapter) AppendCells(cells []Cell, n int) {
	if n > len(cells) {
		n = len(cells)
	}
	out := make([]history.Cell, n)
	for k := 0; k < n; k++ {
		out[k] = cellToHistory(cells[k])
	}
	a.backend.AppendCells(out, n)
}

func cellToHistory(c Cell) history.Cell {
	return history.Cell{
		Char:  c.Char,
		Fg:    c.Fg,
		Bg:    c.Bg,
		Flags: history.CellFlags(c.Flags),
	}
}

func cellFromHistory(c history.Cell) Cell {
	cell := NewCell()
	cell.Char = c.Char
	cell.Flags = CellFlags(c.Flags)
	if c.Fg != nil {
		cell.Fg = c.Fg
	}
	if c.Bg != nil {
		cell.Bg = c.Bg
	}
	return cell
}

// newConfiguredHistory builds the primary-screen history backend New()
// defaults to when no WithHistory option overrode it, dispatching on
// Config.HistoryMode (§6's history_mode: None/Bounded/Unbounded).
func (t *Terminal) newConfiguredHistory() History {
	switch t.config.HistoryMode {
	case HistoryModeBounded:
		max := t.config.HistoryMaxLines
		if max <= 0 {
			max = DefaultHistoryMaxLines
		}
		return wrapHistory(history.NewCompact(max))
	case HistoryModeUnbounded:
		f, err := history.NewFile(t.config.ScrollbackDir)
		if err != nil {
			t.emitDiagnostic(DiagnosticHistoryIOError, "unbounded history backend unavailable, falling back to no scrollback: "+err.Error())
			return NoopScrollback{}
		}
		return wrapHistory(f)
	default:
		return NoopScrollback{}
	}
}
