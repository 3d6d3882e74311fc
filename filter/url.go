package filter

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/konterm/konterm/hotspot"
)

// urlPattern matches a scheme://... link up to the first whitespace or
// quote/bracket character.
var urlPattern = compile(`(?i)\b[a-z][a-z0-9+.\-]*://[^\s<>"']+`)

// emailPattern matches a bare user@host.tld address.
var emailPattern = compile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)

// urlTrailingPunct is trimmed off the end of a scheme:// match: it is
// rarely part of the URL itself and usually belongs to surrounding prose
// ("see https://example.com.", "(https://example.com)").
const urlTrailingPunct = ".,;:!?)]}'\""

// UrlFilter recognizes scheme://... links and user@host.tld addresses,
// reporting the former as Link hotspots and the latter as EmailAddress.
type UrlFilter struct {
	link  RegExpFilter
	email RegExpFilter
}

// NewUrlFilter creates a UrlFilter ready to install on a FilterChain.
func NewUrlFilter() *UrlFilter {
	f := &UrlFilter{}
	f.link = RegExpFilter{Pattern: urlPattern, Build: f.buildLink}
	f.email = RegExpFilter{Pattern: emailPattern, Build: f.buildEmail}
	return f
}

// Process implements Filter.
func (f *UrlFilter) Process(buf *Buffer) []*hotspot.HotSpot {
	out := f.link.Process(buf)
	out = append(out, f.email.Process(buf)...)
	return out
}

func (f *UrlFilter) buildLink(buf *Buffer, m *regexp2.Match) *hotspot.HotSpot {
	text := strings.TrimRight(m.String(), urlTrailingPunct)
	if text == "" {
		return nil
	}
	end := m.Index + runeLen(text)
	hs := buildHotSpot(buf, m.Index, end, hotspot.Link, text)
	if hs == nil {
		return nil
	}
	hs.URL = text
	hs.Actions = linkActions
	return hs
}

func (f *UrlFilter) buildEmail(buf *Buffer, m *regexp2.Match) *hotspot.HotSpot {
	text := m.String()
	hs := buildHotSpot(buf, m.Index, m.Index+runeLen(text), hotspot.EmailAddress, text)
	if hs == nil {
		return nil
	}
	hs.URL = "mailto:" + text
	hs.Actions = linkActions
	return hs
}
