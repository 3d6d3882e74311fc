package headlessterm

import "sync"

// ExtendedCharHandle is a stable identifier for an interned multi-codepoint
// grapheme cluster. It is stored in a Cell's Char field (cast to rune) when
// CellFlagExtended is set.
type ExtendedCharHandle uint32

type extendedCharEntry struct {
	runes    []rune
	refcount int
}

// ExtendedCharTable interns grapheme clusters that span more than one code
// point (combining sequences, ZWJ emoji, regional indicators) behind a
// stable handle, so a Cell can stay a fixed-size record. Lookup is by value:
// interning the same sequence twice returns the same handle.
//
// A table is constructed explicitly and owned by whichever Screens share it
// rather than held as global package state: the caller decides lifetime and
// whether a registry is shared across more than one Screen.
type ExtendedCharTable struct {
	mu      sync.Mutex
	byValue map[string]ExtendedCharHandle
	entries map[ExtendedCharHandle]*extendedCharEntry
	next    ExtendedCharHandle
	limit   int
}

// DefaultExtendedCharLimit bounds the number of code points a single handle
// may intern when a Config does not set one.
const DefaultExtendedCharLimit = 16

// NewExtendedCharTable creates an empty table. limit is the maximum number
// of code points a single handle may intern (the extended_char_limit
// option); values <= 0 fall back to DefaultExtendedCharLimit.
func NewExtendedCharTable(limit int) *ExtendedCharTable {
	if limit <= 0 {
		limit = DefaultExtendedCharLimit
	}
	return &ExtendedCharTable{
		byValue: make(map[string]ExtendedCharHandle),
		entries: make(map[ExtendedCharHandle]*extendedCharEntry),
		limit:   limit,
	}
}

// Intern records runes as a single grapheme cluster and returns its handle.
// It fails (returns the zero handle and false) when runes is empty or
// exceeds the table's per-handle limit; the caller falls back to runes[0]
// with CellFlagExtended cleared, per the resource-exhaustion policy.
func (t *ExtendedCharTable) Intern(runes []rune) (ExtendedCharHandle, bool) {
	if len(runes) == 0 || len(runes) > t.limit {
		return 0, false
	}

	key := string(runes)

	t.mu.Lock()
	defer t.mu.Unlock()

	if h, ok := t.byValue[key]; ok {
		t.entries[h].refcount++
		return h, true
	}

	t.next++
	h := t.next
	cp := make([]rune, len(runes))
	copy(cp, runes)
	t.byValue[key] = h
	t.entries[h] = &extendedCharEntry{runes: cp, refcount: 1}
	return h, true
}

// Retain increments a handle's refcount. Copying a cell that holds a handle
// must call this so the entry outlives all of its owning cells.
func (t *ExtendedCharTable) Retain(h ExtendedCharHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[h]; ok {
		e.refcount++
	}
}

// Release decrements a handle's refcount, freeing the slot at zero.
// Overwriting a cell that holds a handle must call this.
func (t *ExtendedCharTable) Release(h ExtendedCharHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[h]
	if !ok {
		return
	}
	e.refcount--
	if e.refcount <= 0 {
		delete(t.entries, h)
		delete(t.byValue, string(e.runes))
	}
}

// Lookup returns the code points behind a handle.
func (t *ExtendedCharTable) Lookup(h ExtendedCharHandle) ([]rune, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[h]
	if !ok {
		return nil, false
	}
	out := make([]rune, len(e.runes))
	copy(out, e.runes)
	return out, true
}

// Len reports the number of distinct interned handles, exposed for
// diagnostics.
func (t *ExtendedCharTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
