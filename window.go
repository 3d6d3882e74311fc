package headlessterm

import (
	"github.com/konterm/konterm/filter"
	"github.com/konterm/konterm/hotspot"
)

// ScreenWindow is a sliding view over a Terminal's visible image: the
// active screen plus, optionally, a run of history rows immediately above
// it. It owns the filter chain that turns that combined image into
// hotspots, and exposes plain-text search over the same image.
type ScreenWindow struct {
	term         *Terminal
	historyLines int

	chain      *filter.FilterChain
	fileFilter *filter.FileFilter
	escFilter  *filter.EscapeSequenceUrlFilter
}

// NewScreenWindow creates a window over term's visible screen, installed
// with the standard filter chain (URLs/emails, existing file paths
// resolved against the terminal's working directory, inline hex colors,
// and OSC-8 hyperlink spans). historyLines extra rows of primary-buffer
// scrollback are included above the screen in the image filters scan; it
// has no effect while the alternate screen is active, since alternate
// buffers carry no history.
func NewScreenWindow(term *Terminal, historyLines int) *ScreenWindow {
	if historyLines < 0 {
		historyLines = 0
	}
	w := &ScreenWindow{term: term, historyLines: historyLines}
	w.fileFilter = filter.NewFileFilter(term.WorkingDirectoryPath())
	w.escFilter = filter.NewEscapeSequenceUrlFilter(w.hyperlinkSpans, 0)
	w.chain = filter.NewChain(filter.NewUrlFilter(), w.fileFilter, filter.NewColorFilter(), w.escFilter)
	return w
}

// SetFilterChain replaces the installed filter chain, e.g. to append a
// user-supplied Marker regex via filter.NewMarkerFilter, or to change
// which filter wins overlapping hotspots by reordering.
func (w *ScreenWindow) SetFilterChain(c *filter.FilterChain) {
	w.chain = c
}

// Process re-scans the window's current image with the installed filter
// chain and publishes the resulting hotspots.
func (w *ScreenWindow) Process() []*hotspot.HotSpot {
	lines, startAbsRow := w.serialize()
	w.fileFilter.Cwd = w.term.WorkingDirectoryPath()
	w.escFilter.WindowStartAbsRow = startAbsRow
	return w.chain.Process(filter.Build(lines))
}

// Hotspots returns the hotspot list from the most recently completed
// Process pass.
func (w *ScreenWindow) Hotspots() []*hotspot.HotSpot {
	return w.chain.Hotspots()
}

// HotspotAt returns the first hotspot, in insertion order, covering
// (line, col) in window-relative coordinates — row 0 is the window's
// first row, which is a history row when historyLines > 0.
func (w *ScreenWindow) HotspotAt(line, col int) (*hotspot.HotSpot, bool) {
	return w.chain.At(line, col)
}

// AbsRow converts a window-relative row into the terminal's absolute
// row space (history followed by screen), the same convention
// Terminal.ViewportRowToAbsolute uses.
func (w *ScreenWindow) AbsRow(windowRow int) int {
	return w.windowStartAbsRow() + windowRow
}

// Find searches the window's current image (screen plus any included
// history context) for pattern, returning window-relative positions of
// the first character of each match.
func (w *ScreenWindow) Find(pattern string) []Position {
	if pattern == "" {
		return nil
	}
	lines, _ := w.serialize()
	patternRunes := []rune(pattern)

	var matches []Position
	for row, ln := range lines {
		var text []rune
		for _, c := range ln.Cells {
			if c.Spacer {
				continue
			}
			text = append(text, c.Char)
		}
		for col := 0; col <= len(text)-len(patternRunes); col++ {
			found := true
			for i, pr := range patternRunes {
				if text[col+i] != pr {
					found = false
					break
				}
			}
			if found {
				matches = append(matches, Position{Row: row, Col: col})
			}
		}
	}
	return matches
}

// windowStartAbsRow returns the absolute row the window's first line
// corresponds to, without materializing the line contents.
func (w *ScreenWindow) windowStartAbsRow() int {
	t := w.term
	if t.activeBuffer != t.primaryBuffer || w.historyLines == 0 {
		return t.historyEvictedTotal
	}
	histLen := t.primaryBuffer.HistoryLen()
	take := w.historyLines
	if take > histLen {
		take = histLen
	}
	return t.historyEvictedTotal - take
}

// serialize builds the filter.Line slice for the window's current image:
// up to historyLines rows of primary-buffer scrollback immediately above
// the active screen, then the screen itself. Returns the absolute row the
// first returned line corresponds to.
func (w *ScreenWindow) serialize() ([]filter.Line, int) {
	t := w.term
	buf := t.activeBuffer
	startAbsRow := w.windowStartAbsRow()

	var lines []filter.Line
	if buf == t.primaryBuffer && w.historyLines > 0 {
		histLen := buf.HistoryLen()
		take := w.historyLines
		if take > histLen {
			take = histLen
		}
		for i := histLen - take; i < histLen; i++ {
			hist := buf.HistoryLine(i)
			if hist == nil {
				continue
			}
			n := hist.TrimmedLength()
			lines = append(lines, toFilterLine(hist.Cells[:n], hist.IsWrapped()))
		}
	}

	for r := 0; r < buf.Rows(); r++ {
		line := buf.Line(r)
		n := line.TrimmedLength()
		lines = append(lines, toFilterLine(line.Cells[:n], line.IsWrapped()))
	}
	return lines, startAbsRow
}

func toFilterLine(cells []Cell, wrapped bool) filter.Line {
	out := make([]filter.Cell, len(cells))
	for i, c := range cells {
		out[i] = filter.Cell{Char: c.Char, Spacer: c.HasFlag(CellFlagWideCharSpacer)}
	}
	return filter.Line{Cells: out, Wrapped: wrapped}
}

func (w *ScreenWindow) hyperlinkSpans() []filter.HyperlinkSpan {
	spans := w.term.HyperlinkSpans()
	out := make([]filter.HyperlinkSpan, len(spans))
	for i, s := range spans {
		out[i] = filter.HyperlinkSpan{
			URI: s.URI, StartAbsRow: s.StartAbsRow, StartCol: s.StartCol,
			EndAbsRow: s.EndAbsRow, EndCol: s.EndCol,
		}
	}
	return out
}
