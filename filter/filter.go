// Package filter implements the post-pass over the visible terminal image
// that recognizes URLs, file paths, colors, and OSC-8 hyperlinks, turning
// them into hotspot.HotSpot regions a host can render as clickable.
package filter

import (
	"sync/atomic"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/konterm/konterm/hotspot"
)

// defaultMatchTimeout bounds a single regex match attempt. Filters compile
// their patterns with this budget so a pathological match against a huge
// or adversarial line aborts that attempt instead of hanging the pass.
const defaultMatchTimeout = 250 * time.Millisecond

// Filter scans a Buffer and returns the hotspots it recognizes.
type Filter interface {
	Process(buf *Buffer) []*hotspot.HotSpot
}

// FilterChain owns an ordered list of filters and the hotspot list from
// the most recently completed pass. Process is the sole mutator; it
// publishes the new list in one atomic store, so Hotspots and At never
// observe a partially-updated list — a concurrent reader sees either the
// full previous pass's results or the full new ones.
type FilterChain struct {
	filters []Filter
	current atomic.Pointer[[]*hotspot.HotSpot]
}

// NewChain creates a chain running filters in the given order.
func NewChain(filters ...Filter) *FilterChain {
	c := &FilterChain{filters: filters}
	empty := []*hotspot.HotSpot{}
	c.current.Store(&empty)
	return c
}

// AddFilter appends f to the chain, to run after every filter already
// installed.
func (c *FilterChain) AddFilter(f Filter) {
	c.filters = append(c.filters, f)
}

// Process re-scans buf with every installed filter, in order, and
// publishes the combined hotspot list. Filters run in insertion order and
// their hotspots are appended in that order, so two overlapping hotspots
// resolve lookups to whichever filter ran first.
func (c *FilterChain) Process(buf *Buffer) []*hotspot.HotSpot {
	var found []*hotspot.HotSpot
	for _, f := range c.filters {
		found = append(found, f.Process(buf)...)
	}
	c.current.Store(&found)
	return found
}

// Hotspots returns the hotspot list published by the most recently
// completed Process pass.
func (c *FilterChain) Hotspots() []*hotspot.HotSpot {
	return *c.current.Load()
}

// At returns the first hotspot, in insertion order, covering (line, col).
func (c *FilterChain) At(line, col int) (*hotspot.HotSpot, bool) {
	for _, h := range c.Hotspots() {
		if h.Region.Contains(line, col) {
			return h, true
		}
	}
	return nil, false
}

// RegExpFilter wraps a compiled regex and emits one hotspot per non-empty
// match via build. UrlFilter, FileFilter, and ColorFilter are all built on
// top of it.
type RegExpFilter struct {
	Pattern *regexp2.Regexp
	Build   func(buf *Buffer, m *regexp2.Match) *hotspot.HotSpot
}

// Process implements Filter.
func (f *RegExpFilter) Process(buf *Buffer) []*hotspot.HotSpot {
	var out []*hotspot.HotSpot
	m, err := f.Pattern.FindStringMatch(buf.Text)
	for err == nil && m != nil {
		if m.Length > 0 {
			if hs := f.Build(buf, m); hs != nil {
				out = append(out, hs)
			}
		}
		m, err = f.Pattern.FindNextMatch(m)
	}
	return out
}

// compile builds a regexp2 pattern with the chain's default match budget.
func compile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = defaultMatchTimeout
	return re
}

// buildHotSpot locates the rune span [startRune, endRune) in buf and, if
// both ends resolve, returns a HotSpot of kind covering it with Text set.
func buildHotSpot(buf *Buffer, startRune, endRune int, kind hotspot.Type, text string) *hotspot.HotSpot {
	if startRune < 0 || endRune <= startRune {
		return nil
	}
	startLine, startCol, ok := buf.Locate(startRune)
	if !ok {
		return nil
	}
	endLine, endCol, ok := buf.Locate(endRune - 1)
	if !ok {
		return nil
	}
	h := hotspot.New(kind, hotspot.Region{
		StartLine: startLine, StartColumn: startCol,
		EndLine: endLine, EndColumn: endCol + 1,
	})
	h.Text = text
	return h
}

// NewMarkerFilter compiles a user-supplied regular expression into a
// RegExpFilter that reports plain Marker hotspots, with no type-specific
// context beyond the matched text.
func NewMarkerFilter(pattern string) (*RegExpFilter, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = defaultMatchTimeout
	return &RegExpFilter{
		Pattern: re,
		Build: func(buf *Buffer, m *regexp2.Match) *hotspot.HotSpot {
			text := m.String()
			return buildHotSpot(buf, m.Index, m.Index+runeLen(text), hotspot.Marker, text)
		},
	}, nil
}

var linkActions = []hotspot.Action{
	{ID: "open", Label: "Open Link"},
	{ID: "copy", Label: "Copy to Clipboard"},
}
