package history

// Compact is the bounded, in-memory ring backend: a plain slice of lines,
// trimmed from the front once the configured maximum is exceeded. Random
// access and append are both effectively O(1); there is no persistence.
type Compact struct {
	lines   []rawLine
	pending []Cell
	max     int
}

// NewCompact creates a Compact history capped at max lines. max <= 0 means
// unbounded (matching MaxLines' 0-means-unbounded convention).
func NewCompact(max int) *Compact {
	return &Compact{max: max}
}

func (c *Compact) LineCount() int {
	return len(c.lines)
}

func (c *Compact) LineLength(i int) int {
	if i < 0 || i >= len(c.lines) {
		return 0
	}
	return len(c.lines[i].cells)
}

func (c *Compact) GetCells(i, col, n int, dst []Cell) int {
	if i < 0 || i >= len(c.lines) {
		return 0
	}
	cells := c.lines[i].cells
	if col < 0 || col >= len(cells) {
		return 0
	}
	end := col + n
	if end > len(cells) {
		end = len(cells)
	}
	return copy(dst, cells[col:end])
}

func (c *Compact) IsWrapped(i int) bool {
	if i < 0 || i >= len(c.lines) {
		return false
	}
	return c.lines[i].wrapped
}

// AppendCells extends the line currently being built. A line is not visible
// via LineCount until AppendLine finalizes it.
func (c *Compact) AppendCells(cells []Cell, n int) {
	if n > len(cells) {
		n = len(cells)
	}
	cp := make([]Cell, n)
	copy(cp, cells[:n])
	c.pending = append(c.pending, cp...)
}

func (c *Compact) AppendLine(wrapped bool) {
	c.lines = append(c.lines, rawLine{cells: c.pending, wrapped: wrapped})
	c.pending = nil
	c.evict()
}

func (c *Compact) evict() {
	if c.max <= 0 {
		return
	}
	if over := len(c.lines) - c.max; over > 0 {
		c.lines = c.lines[over:]
	}
}

func (c *Compact) RemoveLastCells() {
	if len(c.lines) == 0 {
		return
	}
	c.lines = c.lines[:len(c.lines)-1]
}

func (c *Compact) Reflow(newColumns int) int {
	before := len(c.lines)
	c.lines = reflowLines(c.lines, newColumns)
	c.evict()
	return len(c.lines) - before
}

func (c *Compact) Clear() {
	c.lines = nil
	c.pending = nil
}

func (c *Compact) SetMaxLines(max int) {
	c.max = max
	c.evict()
}

func (c *Compact) MaxLines() int {
	return c.max
}

var _ History = (*Compact)(nil)
