package history

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// diskCellSize is the fixed on-disk record size for one Cell: code point
// (4), rendition flags (4), foreground tag+value (1+4), background tag+value
// (1+4). UnderlineColor and Hyperlink are not persisted — OSC-8 span state
// lives in the emulator's own bounded extractor, not mirrored per backend.
const diskCellSize = 18

func encodeColor(c color.Color) (tag uint8, val uint32) {
	if c == nil {
		return 0, 0
	}
	switch v := c.(type) {
	case *NamedColor:
		return 1, uint32(v.Name)
	case *IndexedColor:
		return 2, uint32(v.Index)
	case color.RGBA:
		return 3, uint32(v.R)<<24 | uint32(v.G)<<16 | uint32(v.B)<<8 | uint32(v.A)
	default:
		r, g, b, a := c.RGBA()
		return 3, uint32(r>>8)<<24 | uint32(g>>8)<<16 | uint32(b>>8)<<8 | uint32(a>>8)
	}
}

func decodeColor(tag uint8, val uint32) color.Color {
	switch tag {
	case 1:
		return &NamedColor{Name: int(val)}
	case 2:
		return &IndexedColor{Index: int(val)}
	case 3:
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}
	default:
		return nil
	}
}

func encodeCell(c Cell) [diskCellSize]byte {
	var buf [diskCellSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(c.Char))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(c.Flags))
	ft, fv := encodeColor(c.Fg)
	buf[8] = ft
	binary.LittleEndian.PutUint32(buf[9:13], fv)
	bt, bv := encodeColor(c.Bg)
	buf[13] = bt
	binary.LittleEndian.PutUint32(buf[14:18], bv)
	return buf
}

func decodeCell(b []byte) Cell {
	var c Cell
	c.Char = rune(binary.LittleEndian.Uint32(b[0:4]))
	c.Flags = CellFlags(binary.LittleEndian.Uint32(b[4:8]))
	c.Fg = decodeColor(b[8], binary.LittleEndian.Uint32(b[9:13]))
	c.Bg = decodeColor(b[13], binary.LittleEndian.Uint32(b[14:18]))
	return c
}

// mapThreshold mirrors Konsole's HistoryFile::MAP_THRESHOLD: once the
// read/write balance counter (incremented on write, decremented on read)
// drops below this, reads have dominated writes heavily enough to justify
// mapping the file read-only.
const mapThreshold = -1000

// historyFile is one of the three append-only, crash-safe temp files behind
// the File backend: opened and immediately unlinked so the OS reclaims it on
// process exit even if Close is never called. It tracks a read/write balance
// and demand-maps itself read-only once reads dominate, grounded directly on
// Konsole's HistoryFile.
type historyFile struct {
	f       *os.File
	length  int64
	mapped  *mmap.ReaderAt
	balance int
}

func newHistoryFile(dir string) (*historyFile, error) {
	f, err := os.CreateTemp(dir, "konterm-history-*")
	if err != nil {
		return nil, err
	}
	name := f.Name()
	if err := os.Remove(name); err != nil {
		f.Close()
		return nil, err
	}
	return &historyFile{f: f}, nil
}

func (h *historyFile) unmap() {
	if h.mapped != nil {
		h.mapped.Close()
		h.mapped = nil
	}
}

func (h *historyFile) mapNow() {
	path := fmt.Sprintf("/proc/self/fd/%d", h.f.Fd())
	r, err := mmap.Open(path)
	if err != nil {
		return
	}
	h.mapped = r
}

// add appends buf to the file, unmapping first per Konsole's add(): a mapped
// read-only view cannot be grown in place.
func (h *historyFile) add(buf []byte) error {
	h.unmap()
	if _, err := h.f.WriteAt(buf, h.length); err != nil {
		return err
	}
	h.length += int64(len(buf))
	h.balance++
	return nil
}

// get reads len(dst) bytes at offset. A transient failure (out-of-range
// offset, I/O error) zero-fills dst and returns the error, matching the
// core's degrade-silently error policy for history I/O.
func (h *historyFile) get(offset int64, dst []byte) error {
	if offset < 0 || offset+int64(len(dst)) > h.length {
		for i := range dst {
			dst[i] = 0
		}
		return io.ErrUnexpectedEOF
	}
	h.balance--
	if h.balance < mapThreshold && h.mapped == nil {
		h.mapNow()
	}
	var err error
	if h.mapped != nil {
		_, err = h.mapped.ReadAt(dst, offset)
	} else {
		_, err = h.f.ReadAt(dst, offset)
	}
	if err != nil {
		for i := range dst {
			dst[i] = 0
		}
	}
	return err
}

func (h *historyFile) truncate(newLen int64) {
	h.unmap()
	h.length = newLen
}

func (h *historyFile) close() error {
	h.unmap()
	return h.f.Close()
}

// File is the unbounded, file-backed history: three historyFile instances
// hold the concatenated cell records, per-line end offsets, and per-line
// flag bytes (§4.3). Reflow touches only index and flags — the cells stream
// is a single unbroken run of records and a new column width just changes
// where line boundaries fall within it.
type File struct {
	dir       string
	cells     *historyFile
	index     *historyFile
	flags     *historyFile
	lineCount int
}

// NewFile creates a File history backend rooted at dir (empty string uses
// the system temp directory, os.CreateTemp's default).
func NewFile(dir string) (*File, error) {
	cells, err := newHistoryFile(dir)
	if err != nil {
		return nil, err
	}
	index, err := newHistoryFile(dir)
	if err != nil {
		cells.close()
		return nil, err
	}
	flags, err := newHistoryFile(dir)
	if err != nil {
		cells.close()
		index.close()
		return nil, err
	}
	return &File{dir: dir, cells: cells, index: index, flags: flags}, nil
}

// Close releases the backend's three temp files. File histories are owned
// exclusively by their backend instance and must be released by the host
// when the history is discarded or replaced.
func (f *File) Close() error {
	f.cells.close()
	f.index.close()
	f.flags.close()
	return nil
}

func (f *File) startOffset(i int) int64 {
	if i <= 0 {
		return 0
	}
	var buf [8]byte
	if err := f.index.get(int64(i-1)*8, buf[:]); err != nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

func (f *File) endOffset(i int) int64 {
	var buf [8]byte
	if err := f.index.get(int64(i)*8, buf[:]); err != nil {
		return f.startOffset(i)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

func (f *File) LineCount() int {
	return f.lineCount
}

func (f *File) LineLength(i int) int {
	if i < 0 || i >= f.lineCount {
		return 0
	}
	return int((f.endOffset(i) - f.startOffset(i)) / diskCellSize)
}

func (f *File) GetCells(i, col, n int, dst []Cell) int {
	if i < 0 || i >= f.lineCount {
		return 0
	}
	lineLen := f.LineLength(i)
	if col < 0 || col >= lineLen {
		return 0
	}
	if col+n > lineLen {
		n = lineLen - col
	}
	buf := make([]byte, n*diskCellSize)
	off := f.startOffset(i) + int64(col)*diskCellSize
	if err := f.cells.get(off, buf); err != nil {
		return 0
	}
	for k := 0; k < n; k++ {
		dst[k] = decodeCell(buf[k*diskCellSize : (k+1)*diskCellSize])
	}
	return n
}

func (f *File) IsWrapped(i int) bool {
	if i < 0 || i >= f.lineCount {
		return false
	}
	var b [1]byte
	if err := f.flags.get(int64(i), b[:]); err != nil {
		return false
	}
	return b[0]&1 != 0
}

func (f *File) AppendCells(cellsIn []Cell, n int) {
	if n > len(cellsIn) {
		n = len(cellsIn)
	}
	if n == 0 {
		return
	}
	buf := make([]byte, n*diskCellSize)
	for k := 0; k < n; k++ {
		rec := encodeCell(cellsIn[k])
		copy(buf[k*diskCellSize:(k+1)*diskCellSize], rec[:])
	}
	f.cells.add(buf)
}

func (f *File) AppendLine(wrapped bool) {
	var off [8]byte
	binary.LittleEndian.PutUint64(off[:], uint64(f.cells.length))
	f.index.add(off[:])
	var fb byte
	if wrapped {
		fb = 1
	}
	f.flags.add([]byte{fb})
	f.lineCount++
}

func (f *File) RemoveLastCells() {
	if f.lineCount == 0 {
		return
	}
	newCellsLen := f.startOffset(f.lineCount - 1)
	f.cells.truncate(newCellsLen)
	f.index.truncate(int64(f.lineCount-1) * 8)
	f.flags.truncate(int64(f.lineCount - 1))
	f.lineCount--
}

func (f *File) Reflow(newColumns int) int {
	if newColumns <= 0 || f.lineCount == 0 {
		return 0
	}
	oldCount := f.lineCount
	lens := make([]int, oldCount)
	wrapped := make([]bool, oldCount)
	for i := 0; i < oldCount; i++ {
		lens[i] = f.LineLength(i)
		wrapped[i] = f.IsWrapped(i)
	}

	var paragraphs []int
	cur, have := 0, false
	for i := 0; i < oldCount; i++ {
		cur += lens[i]
		have = true
		if !wrapped[i] {
			paragraphs = append(paragraphs, cur)
			cur, have = 0, false
		}
	}
	if have {
		paragraphs = append(paragraphs, cur)
	}

	newIndex, err := newHistoryFile(f.dir)
	if err != nil {
		return 0
	}
	newFlags, err := newHistoryFile(f.dir)
	if err != nil {
		newIndex.close()
		return 0
	}

	var offset int64
	newCount := 0
	writeEntry := func(length int, lineWrapped bool) {
		offset += int64(length) * diskCellSize
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(offset))
		newIndex.add(b[:])
		var fb byte
		if lineWrapped {
			fb = 1
		}
		newFlags.add([]byte{fb})
		newCount++
	}

	for _, length := range paragraphs {
		if length == 0 {
			writeEntry(0, false)
			continue
		}
		remaining := length
		for remaining > 0 {
			seg := newColumns
			lineWrapped := true
			if seg >= remaining {
				seg = remaining
				lineWrapped = false
			}
			writeEntry(seg, lineWrapped)
			remaining -= seg
		}
	}

	f.index.close()
	f.flags.close()
	f.index = newIndex
	f.flags = newFlags
	delta := newCount - oldCount
	f.lineCount = newCount
	return delta
}

// Clear drops all stored lines by discarding and reopening the three temp
// files, matching the crash-safety property of starting unlinked.
func (f *File) Clear() {
	f.cells.close()
	f.index.close()
	f.flags.close()
	f.cells, _ = newHistoryFile(f.dir)
	f.index, _ = newHistoryFile(f.dir)
	f.flags, _ = newHistoryFile(f.dir)
	f.lineCount = 0
}

// SetMaxLines is a no-op: File is the Unbounded backend.
func (f *File) SetMaxLines(max int) {}

// MaxLines always reports 0 (unbounded).
func (f *File) MaxLines() int { return 0 }

var _ History = (*File)(nil)
