package headlessterm

// LineProperty is a bitmask of per-line flags carried alongside a row's
// cells: continuation, double-width/height rendering hints, and shell
// integration markers (OSC 133).
type LineProperty uint8

const (
	LinePropertyWrapped LineProperty = 1 << iota
	LinePropertyDoubleWidth
	LinePropertyDoubleHeightTop
	LinePropertyDoubleHeightBottom
	LinePropertyPromptStart
	LinePropertyInputStart
	LinePropertyOutputStart
)

// Line is one row of cells plus its LineProperty flags. Its length is fixed
// at the owning Screen's or History backend's column count; trailing cells
// past the logical end-of-content may be the default cell.
type Line struct {
	Cells      []Cell
	Properties LineProperty
}

// NewLine returns a Line of the given width filled with default cells.
func NewLine(width int) Line {
	cells := make([]Cell, width)
	for i := range cells {
		cells[i] = NewCell()
	}
	return Line{Cells: cells}
}

// HasProperty reports whether the given flag is set.
func (l *Line) HasProperty(p LineProperty) bool {
	return l.Properties&p != 0
}

// SetProperty enables the given flag without affecting others.
func (l *Line) SetProperty(p LineProperty) {
	l.Properties |= p
}

// ClearProperty disables the given flag without affecting others.
func (l *Line) ClearProperty(p LineProperty) {
	l.Properties &^= p
}

// IsWrapped reports whether this line continues onto the next one.
func (l *Line) IsWrapped() bool {
	return l.HasProperty(LinePropertyWrapped)
}

// TrimmedLength returns the index one past the last non-default cell, the
// length History stores for a line (trailing default cells are not
// persisted).
func (l *Line) TrimmedLength() int {
	for i := len(l.Cells) - 1; i >= 0; i-- {
		c := l.Cells[i]
		if c.Char != ' ' || c.Flags&^CellFlagDirty != 0 || c.Hyperlink != nil {
			return i + 1
		}
	}
	return 0
}

// Text renders the line's cells as a string, skipping wide-char spacer
// cells so each logical character appears once.
func (l *Line) Text() string {
	runes := make([]rune, 0, len(l.Cells))
	for _, c := range l.Cells {
		if c.IsWideSpacer() {
			continue
		}
		runes = append(runes, c.Char)
	}
	return string(runes)
}
