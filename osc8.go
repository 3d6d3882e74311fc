package headlessterm

import "strings"

// HyperlinkSpan is a finalized OSC-8 hyperlink region: every cell from
// (StartAbsRow, StartCol) up to but excluding (EndAbsRow, EndCol) carried the
// same hyperlink. Rows are absolute (see absoluteRow), so a span survives
// scrolling until its start row is evicted past the retained history window.
type HyperlinkSpan struct {
	URI         string
	ID          string
	StartAbsRow int
	StartCol    int
	EndAbsRow   int
	EndCol      int
}

// pendingHyperlinkSpan accumulates the span currently being written; it is
// finalized into a HyperlinkSpan once the active hyperlink changes or clears.
type pendingHyperlinkSpan struct {
	hyperlink   *Hyperlink
	startAbsRow int
	startCol    int
	cellCount   int
}

// absoluteRow maps a primary-screen row to a monotonically increasing
// coordinate that survives eviction: each line pushed into history bumps
// every still-visible row's absolute position by the same amount, so storing
// historyEvictedTotal once per evicted batch (rather than per row) is enough
// to keep existing spans valid.
func (t *Terminal) absoluteRow(row int) int {
	return t.historyEvictedTotal + row
}

// hyperlinkSchemeAllowed reports whether uri's scheme passes
// Config.OSC8AllowedSchemes (an empty list allows everything).
func (t *Terminal) hyperlinkSchemeAllowed(uri string) bool {
	if len(t.config.OSC8AllowedSchemes) == 0 {
		return true
	}
	idx := strings.Index(uri, ":")
	if idx <= 0 {
		return false
	}
	scheme := strings.ToLower(uri[:idx])
	for _, s := range t.config.OSC8AllowedSchemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}
	return false
}

// beginHyperlinkSpan starts tracking a new pending span at the cursor's
// current absolute position. Call after currentHyperlink has been updated to
// the new, non-nil link.
func (t *Terminal) beginHyperlinkSpan(link *Hyperlink) {
	if link == nil {
		return
	}
	if !t.hyperlinkSchemeAllowed(link.URI) {
		t.emitDiagnostic(DiagnosticHyperlinkSchemeRejected, link.URI)
		t.currentHyperlink = nil
		return
	}
	t.pendingSpan = &pendingHyperlinkSpan{
		hyperlink:   link,
		startAbsRow: t.absoluteRow(t.cursor.Row),
		startCol:    t.cursor.Col,
	}
}

// noteHyperlinkCell records that one cell carrying the pending span's link
// was just written at the cursor's pre-advance position.
func (t *Terminal) noteHyperlinkCell() {
	if t.pendingSpan == nil {
		return
	}
	limit := t.config.MaxHyperlinkSpanCells
	if limit <= 0 {
		limit = DefaultConfig().MaxHyperlinkSpanCells
	}
	if t.pendingSpan.cellCount >= limit {
		return
	}
	t.pendingSpan.cellCount++
}

// endHyperlinkSpan finalizes the pending span (if any) into hyperlinkSpans.
func (t *Terminal) endHyperlinkSpan() {
	p := t.pendingSpan
	if p == nil {
		return
	}
	t.pendingSpan = nil
	if p.cellCount == 0 {
		return
	}

	limit := t.config.MaxHyperlinkSpanCells
	if limit <= 0 {
		limit = DefaultConfig().MaxHyperlinkSpanCells
	}
	if p.cellCount >= limit {
		t.emitDiagnostic(DiagnosticHyperlinkSpanTruncated, p.hyperlink.URI)
	}

	endRow, endCol := p.startAbsRow, p.startCol+p.cellCount
	for endCol >= t.cols && t.cols > 0 {
		endCol -= t.cols
		endRow++
	}

	t.hyperlinkSpans = append(t.hyperlinkSpans, HyperlinkSpan{
		URI:         p.hyperlink.URI,
		ID:          p.hyperlink.ID,
		StartAbsRow: p.startAbsRow,
		StartCol:    p.startCol,
		EndAbsRow:   endRow,
		EndCol:      endCol,
	})
	t.pruneHyperlinkSpans()
}

// pruneHyperlinkSpans drops spans that have scrolled entirely past the
// oldest line the active History backend still retains. Unbounded backends
// (None's always-empty, File's unbounded) never prune via this path.
func (t *Terminal) pruneHyperlinkSpans() {
	max := t.primaryBuffer.MaxHistory()
	if max <= 0 {
		return
	}
	oldestRetained := t.historyEvictedTotal - max
	if oldestRetained <= 0 {
		return
	}
	out := t.hyperlinkSpans[:0]
	for _, s := range t.hyperlinkSpans {
		if s.EndAbsRow >= oldestRetained {
			out = append(out, s)
		}
	}
	t.hyperlinkSpans = out
}

// HyperlinkSpans returns a copy of every finalized hyperlink span still
// tracked (i.e. not yet pruned by history eviction).
func (t *Terminal) HyperlinkSpans() []HyperlinkSpan {
	out := make([]HyperlinkSpan, len(t.hyperlinkSpans))
	copy(out, t.hyperlinkSpans)
	return out
}

// HyperlinkAt returns the hyperlink span covering the given absolute row and
// column, if any, including the span still being written.
func (t *Terminal) HyperlinkAt(absRow, col int) (HyperlinkSpan, bool) {
	if t.pendingSpan != nil {
		p := t.pendingSpan
		endCol := p.startCol + p.cellCount
		endRow := p.startAbsRow
		for endCol >= t.cols && t.cols > 0 {
			endCol -= t.cols
			endRow++
		}
		if spanContains(p.startAbsRow, p.startCol, endRow, endCol, absRow, col) {
			return HyperlinkSpan{
				URI: p.hyperlink.URI, ID: p.hyperlink.ID,
				StartAbsRow: p.startAbsRow, StartCol: p.startCol,
				EndAbsRow: endRow, EndCol: endCol,
			}, true
		}
	}
	for _, s := range t.hyperlinkSpans {
		if spanContains(s.StartAbsRow, s.StartCol, s.EndAbsRow, s.EndCol, absRow, col) {
			return s, true
		}
	}
	return HyperlinkSpan{}, false
}

func spanContains(startRow, startCol, endRow, endCol, row, col int) bool {
	pos := row*1_000_000 + col
	start := startRow*1_000_000 + startCol
	end := endRow*1_000_000 + endCol
	return pos >= start && pos < end
}
