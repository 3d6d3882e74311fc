package filter

import "github.com/konterm/konterm/hotspot"

// HyperlinkSpan is the minimal shape EscapeSequenceUrlFilter needs from an
// OSC-8 hyperlink span: a URI and its absolute-row/column extent. The
// window that owns the real span bookkeeping converts into this shape.
type HyperlinkSpan struct {
	URI         string
	StartAbsRow int
	StartCol    int
	EndAbsRow   int
	EndCol      int
}

// EscapeSequenceUrlFilter is the non-regex filter named in the filter
// chain: rather than scanning text, it reads the screen's own OSC-8
// hyperlink span history and reports one hotspot per span that overlaps
// the window currently being processed.
type EscapeSequenceUrlFilter struct {
	// Spans returns the hyperlink spans currently tracked, in absolute-row
	// coordinates.
	Spans func() []HyperlinkSpan

	// WindowStartAbsRow is the absolute row the first line passed to
	// Build corresponds to; spans are translated into window-relative
	// coordinates against it.
	WindowStartAbsRow int
}

// NewEscapeSequenceUrlFilter creates a filter reading spans from spans,
// translating them against a window starting at windowStartAbsRow.
func NewEscapeSequenceUrlFilter(spans func() []HyperlinkSpan, windowStartAbsRow int) *EscapeSequenceUrlFilter {
	return &EscapeSequenceUrlFilter{Spans: spans, WindowStartAbsRow: windowStartAbsRow}
}

// Process implements Filter. It ignores buf.Text entirely: the span
// coordinates it reports came from the screen's own bookkeeping, not from
// re-scanning the serialized image.
func (f *EscapeSequenceUrlFilter) Process(buf *Buffer) []*hotspot.HotSpot {
	if f.Spans == nil {
		return nil
	}
	var out []*hotspot.HotSpot
	for _, s := range f.Spans() {
		startLine := s.StartAbsRow - f.WindowStartAbsRow
		endLine := s.EndAbsRow - f.WindowStartAbsRow
		if endLine < 0 || startLine >= buf.Rows() {
			continue
		}
		h := hotspot.New(hotspot.EscapedUrl, hotspot.Region{
			StartLine: startLine, StartColumn: s.StartCol,
			EndLine: endLine, EndColumn: s.EndCol,
		})
		h.URL = s.URI
		h.Text = s.URI
		h.Actions = linkActions
		out = append(out, h)
	}
	return out
}
