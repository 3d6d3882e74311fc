package headlessterm

import "image/color"

// CellFlags is a bitmask of cell rendering attributes and storage hints.
type CellFlags uint32

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagDim
	CellFlagItalic
	CellFlagUnderline
	CellFlagDoubleUnderline
	CellFlagCurlyUnderline
	CellFlagDottedUnderline
	CellFlagDashedUnderline
	CellFlagBlinkSlow
	CellFlagBlinkFast
	CellFlagReverse
	CellFlagHidden
	CellFlagStrike
	CellFlagOverline
	CellFlagWideChar       // first cell of a two-column character
	CellFlagWideCharSpacer // trailing half of a two-column character
	CellFlagExtended       // Char holds a handle into the ExtendedCharTable, not a literal code point
	CellFlagProtected      // exempt from DECSED/DECSEL selective erase
	CellFlagDirty
)

// Cell stores one grid position: a code point (or, when CellFlagExtended is
// set, a handle into the owning Screen's ExtendedCharTable), its
// foreground/background colors, rendition flags, and an implicit display
// width derived from the wide-char flags.
//
// A wide (2-column) character occupies two adjacent cells: the first carries
// CellFlagWideChar, the second is a CellFlagWideCharSpacer cell sharing the
// same colors and rendition (§3 invariant 2).
type Cell struct {
	Char           rune
	Fg             color.Color
	Bg             color.Color
	UnderlineColor color.Color
	Flags          CellFlags
	Hyperlink      *Hyperlink
}

// Hyperlink associates a cell with a clickable link (OSC 8).
type Hyperlink struct {
	ID  string
	URI string
}

// NewCell creates a cell initialized with space character and default colors.
func NewCell() Cell {
	return Cell{
		Char: ' ',
		Fg:   &NamedColor{Name: NamedColorForeground},
		Bg:   &NamedColor{Name: NamedColorBackground},
	}
}

// Reset clears all attributes and sets the cell to default state (space character, default colors).
func (c *Cell) Reset() {
	c.Char = ' '
	c.Fg = &NamedColor{Name: NamedColorForeground}
	c.Bg = &NamedColor{Name: NamedColorBackground}
	c.UnderlineColor = nil
	c.Flags = 0
	c.Hyperlink = nil
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsDirty returns true if the cell was modified since the last ClearDirty call.
func (c *Cell) IsDirty() bool {
	return c.HasFlag(CellFlagDirty)
}

// MarkDirty marks the cell as modified for dirty tracking.
func (c *Cell) MarkDirty() {
	c.SetFlag(CellFlagDirty)
}

// ClearDirty resets the dirty tracking flag.
func (c *Cell) ClearDirty() {
	c.ClearFlag(CellFlagDirty)
}

// IsWide returns true if this cell contains a wide character (CJK, emoji, etc.) that occupies 2 columns.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer returns true if this is the second cell of a wide character (should be skipped during rendering).
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// IsExtended returns true if Char holds a handle into the ExtendedCharTable
// rather than a literal code point (§3).
func (c *Cell) IsExtended() bool {
	return c.HasFlag(CellFlagExtended)
}

// IsProtected returns true if the cell is exempt from DECSED/DECSEL selective erase.
func (c *Cell) IsProtected() bool {
	return c.HasFlag(CellFlagProtected)
}

// Width reports the cell's column footprint: 2 for the leading half of a
// wide character, 0 for its trailing spacer, 1 otherwise (§3).
func (c *Cell) Width() int {
	switch {
	case c.HasFlag(CellFlagWideChar):
		return 2
	case c.HasFlag(CellFlagWideCharSpacer):
		return 0
	default:
		return 1
	}
}

// Copy returns a deep copy of the cell, including the hyperlink pointer.
func (c *Cell) Copy() Cell {
	return Cell{
		Char:           c.Char,
		Fg:             c.Fg,
		Bg:             c.Bg,
		UnderlineColor: c.UnderlineColor,
		Flags:          c.Flags,
		Hyperlink:      c.Hyperlink,
	}
}

const visualRenditionMask = CellFlagBold | CellFlagDim | CellFlagItalic | CellFlagUnderline |
	CellFlagDoubleUnderline | CellFlagCurlyUnderline | CellFlagDottedUnderline | CellFlagDashedUnderline |
	CellFlagBlinkSlow | CellFlagBlinkFast |
	CellFlagReverse | CellFlagHidden | CellFlagStrike | CellFlagOverline

// VisuallyEqual compares two cells the way a renderer would: resolved color
// plus rendition flags, ignoring bookkeeping bits such as dirty tracking or
// whether the code point happens to be stored via an extended-char handle
// (§3's ColorEntry invariant).
func (c *Cell) VisuallyEqual(o *Cell, palette *[256]color.RGBA) bool {
	if c.Flags&visualRenditionMask != o.Flags&visualRenditionMask {
		return false
	}
	return resolveColorWithPalette(c.Fg, true, palette) == resolveColorWithPalette(o.Fg, true, palette) &&
		resolveColorWithPalette(c.Bg, false, palette) == resolveColorWithPalette(o.Bg, false, palette)
}
