package filter

import (
	stdcolor "image/color"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/konterm/konterm/hotspot"
)

// colorPattern matches #RRGGBBAA, #RRGGBB, or a bare 12-hex-digit X11-style
// triple (4 hex digits per channel).
var colorPattern = compile(`#[0-9A-Fa-f]{8}\b|#[0-9A-Fa-f]{6}\b|\b[0-9A-Fa-f]{12}\b`)

// ColorFilter recognizes inline hex color literals and reports their RGB
// value for a host to render as a swatch.
type ColorFilter struct {
	re RegExpFilter
}

// NewColorFilter creates a ColorFilter ready to install on a FilterChain.
func NewColorFilter() *ColorFilter {
	f := &ColorFilter{}
	f.re = RegExpFilter{Pattern: colorPattern, Build: f.build}
	return f
}

// Process implements Filter.
func (f *ColorFilter) Process(buf *Buffer) []*hotspot.HotSpot {
	return f.re.Process(buf)
}

func (f *ColorFilter) build(buf *Buffer, m *regexp2.Match) *hotspot.HotSpot {
	text := m.String()
	rgba, ok := parseColorText(text)
	if !ok {
		return nil
	}
	hs := buildHotSpot(buf, m.Index, m.Index+runeLen(text), hotspot.Color, text)
	if hs == nil {
		return nil
	}
	hs.RGB = rgba
	return hs
}

// parseColorText parses #RRGGBB, #RRGGBBAA, and bare 12-hex-digit forms.
// The 12-digit form carries 4 hex digits per channel (X11 color syntax
// without the "rgb:" prefix); only the high byte of each channel is kept.
func parseColorText(s string) (stdcolor.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 6:
		r, g, b, ok := hexTriple(s[0:2], s[2:4], s[4:6])
		return stdcolor.RGBA{R: r, G: g, B: b, A: 255}, ok
	case 8:
		r, g, b, ok := hexTriple(s[0:2], s[2:4], s[4:6])
		a, aok := hexByte(s[6:8])
		if !ok || !aok {
			return stdcolor.RGBA{}, false
		}
		return stdcolor.RGBA{R: r, G: g, B: b, A: a}, true
	case 12:
		r, ok1 := hexByte(s[0:2])
		g, ok2 := hexByte(s[4:6])
		b, ok3 := hexByte(s[8:10])
		return stdcolor.RGBA{R: r, G: g, B: b, A: 255}, ok1 && ok2 && ok3
	default:
		return stdcolor.RGBA{}, false
	}
}

func hexTriple(rs, gs, bs string) (r, g, b uint8, ok bool) {
	var ok1, ok2, ok3 bool
	r, ok1 = hexByte(rs)
	g, ok2 = hexByte(gs)
	b, ok3 = hexByte(bs)
	return r, g, b, ok1 && ok2 && ok3
}

func hexByte(s string) (uint8, bool) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}
