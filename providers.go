package headlessterm

import "io"

// ResponseProvider writes terminal responses (e.g., cursor position reports) back to the PTY.
// Typically an io.Writer connected to the PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data (useful when responses are not needed).
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07) characters.
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title changes (OSC 0, 1, 2).
type TitleProvider interface {
	// SetTitle is called when the title changes.
	SetTitle(title string)
	// PushTitle saves the current title to the stack.
	PushTitle()
	// PopTitle restores the title from the stack.
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// --- APC Provider ---

// APCProvider handles Application Program Command sequences (OSC _).
type APCProvider interface {
	// Receive is called with the payload of an APC sequence.
	Receive(data []byte)
}

// NoopAPC ignores all APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

// --- PM Provider ---

// PMProvider handles Privacy Message sequences (OSC ^).
type PMProvider interface {
	// Receive is called with the payload of a PM sequence.
	Receive(data []byte)
}

// NoopPM ignores all PM sequences.
type NoopPM struct{}

func (NoopPM) Receive(data []byte) {}

// --- SOS Provider ---

// SOSProvider handles Start of String sequences (OSC X).
type SOSProvider interface {
	// Receive is called with the payload of a SOS sequence.
	Receive(data []byte)
}

// NoopSOS ignores all SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive(data []byte) {}

// Ensure implementations satisfy their interfaces
var _ ResponseProvider = NoopResponse{}

// ClipboardProvider handles clipboard read/write operations (OSC 52).
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for clipboard, 'p' for primary selection).
	Read(clipboard byte) string
	// Write stores content to the specified clipboard.
	Write(clipboard byte, data []byte)
}

// History stores lines evicted from the top of the primary screen. Three
// backends implement it: None (discards everything), Compact (a bounded
// in-memory ring) and File (unbounded, mmap-backed). A Screen swap between
// primary and alternate image does not destroy a History; changing the
// backend migrates existing lines into the replacement.
type History interface {
	// LineCount returns the number of stored lines.
	LineCount() int
	// LineLength returns the trimmed cell count of line i.
	LineLength(i int) int
	// GetCells copies up to n cells of line i starting at col into dst,
	// returning the number of cells written.
	GetCells(i, col, n int, dst []Cell) int
	// IsWrapped reports whether line i continues onto the line after it
	// once restored to the screen.
	IsWrapped(i int) bool
	// AppendCells appends the first n cells of cells as a new, growing line.
	AppendCells(cells []Cell, n int)
	// AppendLine finalizes the line most recently grown by AppendCells,
	// recording its wrapped flag, and starts a new empty line.
	AppendLine(wrapped bool)
	// RemoveLastCells discards the most recently appended line, undoing the
	// last AppendLine/AppendCells pair.
	RemoveLastCells()
	// Reflow re-splits all stored lines at newColumns and returns the
	// resulting change in LineCount.
	Reflow(newColumns int) int
	// Clear removes all stored lines.
	Clear()
	// SetMaxLines sets the maximum capacity; 0 means unbounded. Compact
	// trims oldest lines immediately if the new maximum is smaller.
	SetMaxLines(max int)
	// MaxLines returns the current maximum capacity, 0 meaning unbounded.
	MaxLines() int
}

// --- Clipboard Implementations ---

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string  { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// --- History Implementations ---

// NoopScrollback is the None history backend: every operation is a no-op or
// returns zero, used for the alternate screen (which never has history) and
// as the default when a host configures history_mode = None.
type NoopScrollback struct{}

func (NoopScrollback) LineCount() int                        { return 0 }
func (NoopScrollback) LineLength(i int) int                  { return 0 }
func (NoopScrollback) GetCells(i, col, n int, dst []Cell) int { return 0 }
func (NoopScrollback) IsWrapped(i int) bool                   { return false }
func (NoopScrollback) AppendCells(cells []Cell, n int)        {}
func (NoopScrollback) AppendLine(wrapped bool)                {}
func (NoopScrollback) RemoveLastCells()                       {}
func (NoopScrollback) Reflow(newColumns int) int              { return 0 }
func (NoopScrollback) Clear()                                 {}
func (NoopScrollback) SetMaxLines(max int)                    {}
func (NoopScrollback) MaxLines() int                          { return 0 }

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before ANSI parsing for replay or debugging.
type RecordingProvider interface {
	// Record appends raw bytes to the recording.
	Record(data []byte)
	// Data returns all captured bytes since the last Clear call.
	Data() []byte
	// Clear discards all recorded data.
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// Ensure implementations satisfy their interfaces
var _ BellProvider = (*NoopBell)(nil)
var _ TitleProvider = (*NoopTitle)(nil)
var _ APCProvider = (*NoopAPC)(nil)
var _ PMProvider = (*NoopPM)(nil)
var _ SOSProvider = (*NoopSOS)(nil)
var _ ClipboardProvider = (*NoopClipboard)(nil)
var _ History = (*NoopScrollback)(nil)
var _ RecordingProvider = (*NoopRecording)(nil)
