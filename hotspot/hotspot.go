// Package hotspot defines the clickable/activatable regions the filter
// chain produces: an axis-aligned span over the visible image, a type tag,
// and enough context for a host to act on it.
package hotspot

import (
	"image/color"

	"github.com/google/uuid"
)

// Type classifies what a HotSpot represents and, indirectly, which of its
// context fields are meaningful.
type Type int

const (
	NotSpecified Type = iota
	Link
	EmailAddress
	File
	EscapedUrl
	Color
	Marker
)

func (t Type) String() string {
	switch t {
	case Link:
		return "Link"
	case EmailAddress:
		return "EmailAddress"
	case File:
		return "File"
	case EscapedUrl:
		return "EscapedUrl"
	case Color:
		return "Color"
	case Marker:
		return "Marker"
	default:
		return "NotSpecified"
	}
}

// Region is an axis-aligned span over the visible image in view-relative
// coordinates. A multi-line region covers the tail of StartLine from
// StartColumn onward, every full line in between, and the head of EndLine
// up to (but excluding) EndColumn — the same reading-order shape a stream
// selection covers.
type Region struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

// Contains reports whether (line, col) falls within the region.
func (r Region) Contains(line, col int) bool {
	if line < r.StartLine || line > r.EndLine {
		return false
	}
	if line == r.StartLine && col < r.StartColumn {
		return false
	}
	if line == r.EndLine && col >= r.EndColumn {
		return false
	}
	return true
}

// Action is one operation a host can offer for a HotSpot, e.g. "open in
// browser" or "reveal in file manager".
type Action struct {
	ID    string
	Label string
}

// HotSpot is a region of the visible image carrying a type tag and
// activation behavior. It is owned by the FilterChain pass that produced
// it and is invalidated the moment that chain reprocesses the image —
// callers should not retain a HotSpot across a Process call.
type HotSpot struct {
	ID     uuid.UUID
	Kind   Type
	Region Region

	// Text is the matched or display text (the URL, the raw path text,
	// the hex color literal).
	Text string

	// URL is set for Link, EmailAddress, and EscapedUrl hotspots.
	URL string

	// Path, Line, and Col are set for File hotspots: Path is the resolved
	// absolute path, Line and Col are the optional 1-based suffix
	// (":line[:col]" or "(line)"), 0 when absent.
	Path string
	Line int
	Col  int

	// RGB is set for Color hotspots.
	RGB color.RGBA

	// Actions lists the operations a host may offer for this hotspot.
	Actions []Action

	activate func(action string) error
}

// New creates a HotSpot of the given kind covering region, with a fresh
// stable ID.
func New(kind Type, region Region) *HotSpot {
	return &HotSpot{ID: uuid.New(), Kind: kind, Region: region}
}

// SetActivator installs the closure Activate calls. No filter in package
// filter sets one; a hotspot has an activator only once a caller installs it.
func (h *HotSpot) SetActivator(fn func(action string) error) {
	h.activate = fn
}

// Activate runs the hotspot's activation closure with the given action ID
// (e.g. "open", "copy", "reveal"). It is a no-op if no activator was set.
func (h *HotSpot) Activate(action string) error {
	if h.activate == nil {
		return nil
	}
	return h.activate(action)
}
