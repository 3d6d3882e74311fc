package headlessterm

import (
	"image/color"
	"io"

	"github.com/danielgatis/go-ansicode"
	"github.com/rs/zerolog"
)

// Ensure Terminal implements ansicode.Handler
var _ ansicode.Handler = (*Terminal)(nil)

// TerminalMode is a bitmask of terminal behavior flags.
// Multiple modes can be active simultaneously.
type TerminalMode uint32

const (
	// ModeCursorKeys enables cursor key mode (DECCKM).
	ModeCursorKeys TerminalMode = 1 << iota
	// ModeColumnMode enables 132-column mode.
	ModeColumnMode
	// ModeInsert enables insert mode (characters shift right instead of overwrite).
	ModeInsert
	// ModeOrigin enables origin mode (cursor positioning relative to scroll region).
	ModeOrigin
	// ModeLineWrap enables automatic line wrapping at column boundaries.
	ModeLineWrap
	// ModeBlinkingCursor enables blinking cursor.
	ModeBlinkingCursor
	// ModeLineFeedNewLine makes line feed also move to column 0.
	ModeLineFeedNewLine
	// ModeShowCursor makes the cursor visible.
	ModeShowCursor
	// ModeReportMouseClicks enables mouse click reporting.
	ModeReportMouseClicks
	// ModeReportCellMouseMotion enables mouse motion reporting (cell-based).
	ModeReportCellMouseMotion
	// ModeReportAllMouseMotion enables reporting of all mouse motion events.
	ModeReportAllMouseMotion
	// ModeReportFocusInOut enables focus in/out event reporting.
	ModeReportFocusInOut
	// ModeUTF8Mouse enables UTF-8 mouse encoding.
	ModeUTF8Mouse
	// ModeSGRMouse enables SGR mouse encoding.
	ModeSGRMouse
	// ModeAlternateScroll enables alternate scroll mode.
	ModeAlternateScroll
	// ModeUrgencyHints enables urgency hints.
	ModeUrgencyHints
	// ModeSwapScreenAndSetRestoreCursor swaps to alternate screen and saves cursor.
	// When unset, restores primary screen and cursor position.
	ModeSwapScreenAndSetRestoreCursor
	// ModeBracketedPaste enables bracketed paste mode.
	ModeBracketedPaste
	// ModeKeypadApplication enables application keypad mode.
	ModeKeypadApplication
)

const (
	// DEFAULT_ROWS is the default number of terminal rows.
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default number of terminal columns.
	DEFAULT_COLS = 80
)

// SelectionMode distinguishes the three ways a Selection's anchors bound
// text: a contiguous run of the visible stream, an axis-aligned column
// rectangle, or whole lines.
type SelectionMode int

const (
	SelectionStream SelectionMode = iota
	SelectionBlock
	SelectionLine
)

// Selection defines a text region in absolute history_index+screen_row
// space. Start and End are normalized so Start is always before or equal to
// End in reading order.
type Selection struct {
	Start  Position
	End    Position
	Mode   SelectionMode
	Active bool
}

// Terminal emulates a VT220/xterm-class terminal without a display. It
// maintains two buffers: primary (with History) and alternate (no
// History). The active buffer switches when entering/exiting alternate
// screen mode.
//
// Terminal is not safe for concurrent use: every public method runs to
// completion on the caller's goroutine and the type holds no internal
// locks, matching the single-threaded cooperative scheduling model the core
// assumes. A host that drives a Terminal from more than one goroutine must
// serialize its own calls.
type Terminal struct {
	// Dimensions
	rows int
	cols int

	// Buffers
	primaryBuffer   *Buffer
	alternateBuffer *Buffer
	activeBuffer    *Buffer

	// Cursor
	cursor      *Cursor
	savedCursor *SavedCursor

	// Current cell attributes
	template CellTemplate

	// Charsets
	charsets       [4]Charset
	activeCharset  int
	charsetIndexes [4]CharsetIndex

	// Scrolling region
	scrollTop    int
	scrollBottom int

	// Modes
	modes TerminalMode

	// Title
	title      string
	titleStack []string

	// Colors
	colors map[int]color.Color

	// Hyperlink
	currentHyperlink *Hyperlink
	pendingSpan      *pendingHyperlinkSpan
	hyperlinkSpans   []HyperlinkSpan

	// historyEvictedTotal is the running count of lines ever pushed from the
	// primary screen into history, used to translate a hyperlink span's
	// coordinates (recorded while the cell was still on-screen) into
	// absolute history+screen space after the line has scrolled away.
	historyEvictedTotal int

	// Keyboard mode
	keyboardModes   []ansicode.KeyboardMode
	modifyOtherKeys ansicode.ModifyOtherKeys

	// Internal ANSI decoder
	decoder *ansicode.Decoder

	// Selection
	selection Selection

	// History backend (scrollback)
	history History

	// Middleware for handler interception
	middleware *Middleware

	// Providers for external data/actions
	responseProvider  ResponseProvider
	bellProvider      BellProvider
	titleProvider     TitleProvider
	apcProvider       APCProvider
	pmProvider        PMProvider
	sosProvider       SOSProvider
	clipboardProvider ClipboardProvider

	// AutoResize mode: terminal grows instead of scrolling/wrapping
	autoResize bool

	// Recording provider for capturing raw input
	recordingProvider RecordingProvider

	// Shell integration / semantic prompt marks (OSC 133)
	promptMarks []PromptMark

	// Working directory (OSC 7)
	workingDir string

	// Semantic prompt handler notified of each recorded mark.
	semanticPromptHandler SemanticPromptHandler

	// Desktop notification provider (OSC 99)
	notificationProvider NotificationProvider

	// User variables (OSC 1337 SetUserVar)
	userVars map[string]string

	// Size provider for pixel-level queries
	sizeProvider SizeProvider

	// Config carries the host-supplied options from §6 that affect runtime
	// behavior beyond simple field assignment (reflow, OSC-8 scheme list,
	// extended-char limit, word characters for double-click selection).
	config Config

	// extendedChars interns multi-codepoint grapheme clusters. Always
	// non-nil; defaults to a private table sized by config.ExtendedCharLimit.
	extendedChars *ExtendedCharTable

	// lastBaseRow/Col/Width track the most recently written base cell so a
	// following zero-width combining mark can be folded onto it. lastBaseRow
	// is -1 when there is no live base cell to accumulate onto (freshly
	// constructed, or the cursor has since moved away).
	lastBaseRow   int
	lastBaseCol   int
	lastBaseWidth int

	// logger receives trace-level diagnostics for ignored/malformed
	// sequences (§4.2, §7). Disabled (zerolog.Nop()) unless WithLogger sets it.
	logger zerolog.Logger

	// diagnostics is the structured event channel surfacing non-fatal
	// degradation (history I/O failure, extended-char saturation, unknown
	// color scheme reference) to the host, per §7.
	diagnostics chan Diagnostic
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions.
// Values <= 0 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}
	if cols <= 0 {
		cols = DEFAULT_COLS
	}
	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithResponse sets the writer for terminal responses (e.g., cursor position reports).
// If nil, responses are discarded.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) {
		t.responseProvider = p
	}
}

// WithBell sets the handler for bell/beep events.
// Defaults to a no-op if not set.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) {
		t.bellProvider = p
	}
}

// WithTitle sets the handler for window title changes.
// Defaults to a no-op if not set.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) {
		t.titleProvider = p
	}
}

// WithAPC sets the handler for Application Program Command sequences.
// Defaults to a no-op if not set.
func WithAPC(p APCProvider) Option {
	return func(t *Terminal) {
		t.apcProvider = p
	}
}

// WithPM sets the handler for Privacy Message sequences.
// Defaults to a no-op if not set.
func WithPM(p PMProvider) Option {
	return func(t *Terminal) {
		t.pmProvider = p
	}
}

// WithSOS sets the handler for Start of String sequences.
// Defaults to a no-op if not set.
func WithSOS(p SOSProvider) Option {
	return func(t *Terminal) {
		t.sosProvider = p
	}
}

// WithClipboard sets the handler for clipboard read/write operations (OSC 52).
// Defaults to a no-op if not set.
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) {
		t.clipboardProvider = p
	}
}

// WithHistory sets the History backend that receives lines evicted from the
// top of the primary screen. When not set, the backend is built from
// Config.HistoryMode.
func WithHistory(h History) Option {
	return func(t *Terminal) {
		t.history = h
	}
}

// WithConfig applies the host configuration struct (§6) wholesale.
func WithConfig(c Config) Option {
	return func(t *Terminal) {
		t.config = c
	}
}

// WithMiddleware sets functions to intercept ANSI handler calls.
// Each middleware receives the original parameters and a next function to call the default implementation.
func WithMiddleware(mw *Middleware) Option {
	return func(t *Terminal) {
		if t.middleware == nil {
			t.middleware = &Middleware{}
		}
		t.middleware.Merge(mw)
	}
}

// WithAutoResize enables growth mode: the buffer expands instead of scrolling or wrapping.
// Useful for capturing complete output without truncation.
func WithAutoResize() Option {
	return func(t *Terminal) {
		t.autoResize = true
	}
}

// WithRecording sets the handler for capturing raw input bytes before ANSI parsing.
// Useful for replay, debugging, or regression testing.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) {
		t.recordingProvider = p
	}
}

// WithSemanticPromptHandler sets the handler notified of prompt/command
// marks (OSC 133) alongside the shell integration provider.
// Defaults to a no-op if not set.
func WithSemanticPromptHandler(h SemanticPromptHandler) Option {
	return func(t *Terminal) {
		t.semanticPromptHandler = h
	}
}

// WithNotification sets the handler for desktop notification requests
// (OSC 99). Defaults to a no-op if not set.
func WithNotification(p NotificationProvider) Option {
	return func(t *Terminal) {
		t.notificationProvider = p
	}
}

// WithSizeProvider sets the provider for pixel dimension queries.
func WithSizeProvider(p SizeProvider) Option {
	return func(t *Terminal) {
		t.sizeProvider = p
	}
}

// WithLogger sets the trace-level diagnostic logger. Defaults to a disabled
// logger, so embedding a Terminal never produces output unless asked.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Terminal) {
		t.logger = l
	}
}

// WithDiagnostics sets the channel non-fatal diagnostic events are sent on
// (§7). Sends are non-blocking: a full or nil channel silently drops the
// event rather than stall the core.
func WithDiagnostics(ch chan Diagnostic) Option {
	return func(t *Terminal) {
		t.diagnostics = ch
	}
}

// New creates a terminal with the given options.
// Defaults to 24x80 with line wrap and cursor visible.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows:              DEFAULT_ROWS,
		cols:              DEFAULT_COLS,
		colors:            make(map[int]color.Color),
		keyboardModes:     make([]ansicode.KeyboardMode, 0),
		bellProvider:      NoopBell{},
		titleProvider:     NoopTitle{},
		apcProvider:       NoopAPC{},
		pmProvider:        NoopPM{},
		sosProvider:       NoopSOS{},
		clipboardProvider: NoopClipboard{},
		recordingProvider:     NoopRecording{},
		config:                DefaultConfig(),
		logger:                zerolog.Nop(),
		semanticPromptHandler: NoopSemanticPromptHandler{},
		notificationProvider:  NoopNotification{},
		userVars:              make(map[string]string),
		lastBaseRow:           -1,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.history == nil {
		t.history = t.newConfiguredHistory()
	}
	t.primaryBuffer = NewBufferWithStorage(t.rows, t.cols, t.history)
	t.alternateBuffer = NewBuffer(t.rows, t.cols) // Alternate buffer has no history
	t.activeBuffer = t.primaryBuffer

	t.cursor = NewCursor()
	t.template = NewCellTemplate()

	t.scrollTop = 0
	t.scrollBottom = t.rows

	t.modes = ModeLineWrap | ModeShowCursor
	if t.config.MouseTrackingInitial {
		t.modes |= ModeReportMouseClicks
	}

	limit := t.config.ExtendedCharLimit
	if limit <= 0 {
		limit = DefaultExtendedCharLimit
	}
	t.extendedChars = NewExtendedCharTable(limit)

	t.decoder = ansicode.NewDecoder(t)

	return t
}

func (t *Terminal) emitDiagnostic(kind DiagnosticKind, detail string) {
	t.logger.Trace().Str("kind", kind.String()).Msg(detail)

	if t.diagnostics == nil {
		return
	}
	select {
	case t.diagnostics <- Diagnostic{Kind: kind, Detail: detail}:
	default:
	}
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	return t.cols
}

// Cell returns the cell at (row, col) in the active buffer.
// Returns nil if coordinates are out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	return t.activeBuffer.Cell(row, col)
}

// CursorPos returns the current cursor position (0-based).
func (t *Terminal) CursorPos() (row, col int) {
	return t.cursor.Row, t.cursor.Col
}

// CursorVisible returns true if the cursor is currently visible.
func (t *Terminal) CursorVisible() bool {
	return t.cursor.Visible
}

// CursorStyle returns the current cursor rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	return t.cursor.Style
}

// Title returns the current window title string.
func (t *Terminal) Title() string {
	return t.title
}

// HasMode returns true if the specified mode flag is enabled.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	return t.modes&mode != 0
}

// scrollUpEvicting scrolls the active buffer's region up by n lines,
// tracking how many lines left the primary screen for history so hyperlink
// spans can be translated into absolute coordinates later.
func (t *Terminal) scrollUpEvicting(top, bottom, n int) {
	if n <= 0 {
		return
	}
	if t.activeBuffer == t.primaryBuffer && top == 0 {
		t.historyEvictedTotal += n
	}
	t.activeBuffer.ScrollUp(top, bottom, n)
}

// Resize changes the terminal dimensions and adjusts buffers accordingly.
// Column changes reflow the primary buffer's content (history + screen, per
// §4.1) unless config.ReflowOnResize is false, in which case content is
// truncated/padded like the alternate screen always is. When the row count
// shrinks on the primary screen with the cursor below the new bottom row,
// the top lines scroll into history first, whether or not reflow applies;
// otherwise rows are truncated or added at the bottom.
func (t *Terminal) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	oldRows, oldCols := t.rows, t.cols

	if rows < oldRows && t.activeBuffer == t.primaryBuffer {
		linesToScroll := oldRows - rows
		if t.cursor.Row >= rows {
			t.scrollUpEvicting(0, oldRows, linesToScroll)
			t.cursor.Row -= linesToScroll
			if t.cursor.Row < 0 {
				t.cursor.Row = 0
			}
		}
	}

	if cols != oldCols && t.config.ReflowOnResize {
		reflowScreen(t, cols)
	} else {
		t.primaryBuffer.Resize(rows, cols)
	}
	t.alternateBuffer.Resize(rows, cols)

	t.rows = rows
	t.cols = cols
	t.activeBuffer.Resize(rows, cols)
	if t.activeBuffer == t.primaryBuffer && !(cols != oldCols && t.config.ReflowOnResize) {
		// primaryBuffer already resized to the right row count above by the
		// cols-unchanged branch; make sure both dimensions are applied.
		t.primaryBuffer.Resize(rows, cols)
	}

	if t.cursor.Row >= rows {
		t.cursor.Row = rows - 1
	}
	if t.cursor.Row < 0 {
		t.cursor.Row = 0
	}
	if t.cursor.Col >= cols {
		t.cursor.Col = cols - 1
	}
	if t.cursor.Col < 0 {
		t.cursor.Col = 0
	}

	t.scrollTop = 0
	t.scrollBottom = rows
}

// Write processes raw bytes, parsing ANSI escape sequences and updating the terminal state.
// Implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	t.recordingProvider.Record(data)
	return t.decoder.Write(data)
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// clamp ensures the value is within the given range.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// effectiveRow returns the effective row considering origin mode.
func (t *Terminal) effectiveRow(row int) int {
	if t.modes&ModeOrigin != 0 {
		return row + t.scrollTop
	}
	return row
}

// scrollIfNeeded performs scrolling if cursor is outside scroll region.
// In autoResize mode, grows the buffer instead of scrolling.
func (t *Terminal) scrollIfNeeded() {
	if t.cursor.Row >= t.scrollBottom {
		if t.autoResize {
			rowsToAdd := t.cursor.Row - t.scrollBottom + 1
			t.activeBuffer.GrowRows(rowsToAdd)
			t.rows = t.activeBuffer.Rows()
			t.scrollBottom = t.rows
		} else {
			linesToScroll := t.cursor.Row - t.scrollBottom + 1
			t.scrollUpEvicting(t.scrollTop, t.scrollBottom, linesToScroll)
			t.cursor.Row = t.scrollBottom - 1
		}
	} else if t.cursor.Row < t.scrollTop {
		linesToScroll := t.scrollTop - t.cursor.Row
		t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, linesToScroll)
		t.cursor.Row = t.scrollTop
	}
}

// SetResponseProvider sets the response provider at runtime.
func (t *Terminal) SetResponseProvider(p ResponseProvider) {
	t.responseProvider = p
}

// ResponseProvider returns the current response provider.
func (t *Terminal) ResponseProvider() ResponseProvider {
	return t.responseProvider
}

// SetBellProvider sets the bell provider at runtime.
func (t *Terminal) SetBellProvider(p BellProvider) {
	t.bellProvider = p
}

// BellProvider returns the current bell provider.
func (t *Terminal) BellProvider() BellProvider {
	return t.bellProvider
}

// SetTitleProvider sets the title provider at runtime.
func (t *Terminal) SetTitleProvider(p TitleProvider) {
	t.titleProvider = p
}

// TitleProvider returns the current title provider.
func (t *Terminal) TitleProvider() TitleProvider {
	return t.titleProvider
}

// SetAPCProvider sets the APC provider at runtime.
func (t *Terminal) SetAPCProvider(p APCProvider) {
	t.apcProvider = p
}

// APCProvider returns the current APC provider.
func (t *Terminal) APCProvider() APCProvider {
	return t.apcProvider
}

// SetPMProvider sets the PM provider at runtime.
func (t *Terminal) SetPMProvider(p PMProvider) {
	t.pmProvider = p
}

// PMProvider returns the current PM provider.
func (t *Terminal) PMProvider() PMProvider {
	return t.pmProvider
}

// SetSOSProvider sets the SOS provider at runtime.
func (t *Terminal) SetSOSProvider(p SOSProvider) {
	t.sosProvider = p
}

// SOSProvider returns the current SOS provider.
func (t *Terminal) SOSProvider() SOSProvider {
	return t.sosProvider
}

// SetClipboardProvider sets the clipboard provider at runtime.
func (t *Terminal) SetClipboardProvider(c ClipboardProvider) {
	t.clipboardProvider = c
}

// ClipboardProvider returns the current clipboard provider.
func (t *Terminal) ClipboardProvider() ClipboardProvider {
	return t.clipboardProvider
}

// SetSemanticPromptHandler sets the semantic prompt handler at runtime.
func (t *Terminal) SetSemanticPromptHandler(h SemanticPromptHandler) {
	t.semanticPromptHandler = h
}

// SemanticPromptHandlerValue returns the current semantic prompt handler.
func (t *Terminal) SemanticPromptHandlerValue() SemanticPromptHandler {
	return t.semanticPromptHandler
}

// SetNotificationProvider sets the desktop notification provider at runtime.
func (t *Terminal) SetNotificationProvider(p NotificationProvider) {
	t.notificationProvider = p
}

// NotificationProvider returns the current desktop notification provider.
func (t *Terminal) NotificationProvider() NotificationProvider {
	return t.notificationProvider
}

// SetMiddleware sets the middleware at runtime.
func (t *Terminal) SetMiddleware(mw *Middleware) {
	t.middleware = mw
}

// Middleware returns the current middleware.
func (t *Terminal) Middleware() *Middleware {
	return t.middleware
}

// writeResponse writes a response back via the response provider if set.
func (t *Terminal) writeResponse(data []byte) {
	if t.responseProvider != nil {
		t.responseProvider.Write(data)
	}
}

// writeResponseString writes a string response back via the writer if set.
func (t *Terminal) writeResponseString(s string) {
	t.writeResponse([]byte(s))
}

// --- History Methods ---

// HistoryLen returns the number of lines stored in history (primary buffer only).
func (t *Terminal) HistoryLen() int {
	return t.primaryBuffer.HistoryLen()
}

// HistoryLine materializes a Line from history, where 0 is the oldest line.
// Returns nil if index is out of range.
func (t *Terminal) HistoryLine(index int) *Line {
	return t.primaryBuffer.HistoryLine(index)
}

// ClearHistory removes all stored history lines.
func (t *Terminal) ClearHistory() {
	t.primaryBuffer.ClearHistory()
}

// SetMaxHistory sets the maximum number of history lines to retain (Compact
// backend only; no-op on None/File).
func (t *Terminal) SetMaxHistory(max int) {
	t.primaryBuffer.SetMaxHistory(max)
}

// MaxHistory returns the current maximum history capacity.
func (t *Terminal) MaxHistory() int {
	return t.primaryBuffer.MaxHistory()
}

// SetHistory replaces the History backend at runtime, migrating existing
// lines into it (§4.3 backend migration); the Terminal itself is not reset.
func (t *Terminal) SetHistory(h History) {
	t.history = h
	t.primaryBuffer.SetHistory(h)
}

// History returns the current History backend.
func (t *Terminal) History() History {
	return t.primaryBuffer.HistoryProvider()
}

// --- Dirty Tracking Methods ---

// HasDirty returns true if any cell in the active buffer was modified since the last ClearDirty call.
func (t *Terminal) HasDirty() bool {
	return t.activeBuffer.HasDirty()
}

// DirtyCells returns positions of all cells modified since the last ClearDirty call.
func (t *Terminal) DirtyCells() []Position {
	return t.activeBuffer.DirtyCells()
}

// ClearDirty marks all cells as clean, resetting the dirty tracking state.
func (t *Terminal) ClearDirty() {
	t.activeBuffer.ClearAllDirty()
}

// --- Selection Methods ---

// SetSelectionMode sets the active selection's anchor interpretation
// (stream, block, or line). Calling before SetSelection has no visible
// effect until a selection exists.
func (t *Terminal) SetSelectionMode(mode SelectionMode) {
	t.selection.Mode = mode
}

// SetSelection sets the active text selection region.
// Start and end are automatically normalized so start is before or equal to end.
func (t *Terminal) SetSelection(start, end Position) {
	if end.Before(start) {
		start, end = end, start
	}
	t.selection.Start = start
	t.selection.End = end
	t.selection.Active = true
}

// ClearSelection deactivates the current selection.
func (t *Terminal) ClearSelection() {
	t.selection.Active = false
}

// GetSelection returns the current selection state.
func (t *Terminal) GetSelection() Selection {
	return t.selection
}

// HasSelection returns true if a selection is currently active.
func (t *Terminal) HasSelection() bool {
	return t.selection.Active
}

// IsSelected returns true if the cell at (row, col) is within the active selection.
func (t *Terminal) IsSelected(row, col int) bool {
	if !t.selection.Active {
		return false
	}

	pos := Position{Row: row, Col: col}
	start := t.selection.Start
	end := t.selection.End

	if t.selection.Mode == SelectionBlock {
		lo, hi := start.Col, end.Col
		if lo > hi {
			lo, hi = hi, lo
		}
		return row >= start.Row && row <= end.Row && col >= lo && col <= hi
	}

	if pos.Before(start) {
		return false
	}
	if end.Before(pos) {
		return false
	}
	return true
}

// --- Convenience Methods ---

// LineContent returns the text content of a line, trimming trailing spaces.
// Returns empty string if the line contains only spaces or is out of bounds.
func (t *Terminal) LineContent(row int) string {
	return t.activeBuffer.LineContent(row)
}

// String returns the visible screen content as a newline-separated string.
// Trailing empty lines are omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	var lines []string
	lastNonEmpty := -1

	for row := 0; row < t.rows; row++ {
		line := t.activeBuffer.LineContent(row)
		lines = append(lines, line)
		if line != "" {
			lastNonEmpty = row
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	result := ""
	for i, line := range lines[:lastNonEmpty+1] {
		if i > 0 {
			result += "\n"
		}
		result += line
	}

	return result
}

// Search finds all occurrences of pattern in the visible screen content.
// Returns positions of the first character of each match.
func (t *Terminal) Search(pattern string) []Position {
	if pattern == "" {
		return nil
	}

	var matches []Position
	patternRunes := []rune(pattern)

	for row := 0; row < t.rows; row++ {
		line := t.activeBuffer.LineContent(row)
		lineRunes := []rune(line)

		for col := 0; col <= len(lineRunes)-len(patternRunes); col++ {
			found := true
			for i, pr := range patternRunes {
				if lineRunes[col+i] != pr {
					found = false
					break
				}
			}
			if found {
				matches = append(matches, Position{Row: row, Col: col})
			}
		}
	}

	return matches
}

// SearchHistory finds all occurrences of pattern in history lines.
// Returned row values are negative, where -1 is the most recent history line.
func (t *Terminal) SearchHistory(pattern string) []Position {
	if pattern == "" {
		return nil
	}

	var matches []Position
	patternRunes := []rune(pattern)
	historyLen := t.primaryBuffer.HistoryLen()

	for i := 0; i < historyLen; i++ {
		line := t.primaryBuffer.HistoryLine(i)
		if line == nil {
			continue
		}

		var lineRunes []rune
		for _, cell := range line.Cells {
			if cell.IsWideSpacer() {
				continue
			}
			if cell.Char == 0 {
				lineRunes = append(lineRunes, ' ')
			} else {
				lineRunes = append(lineRunes, cell.Char)
			}
		}

		for col := 0; col <= len(lineRunes)-len(patternRunes); col++ {
			found := true
			for j, pr := range patternRunes {
				if lineRunes[col+j] != pr {
					found = false
					break
				}
			}
			if found {
				matches = append(matches, Position{Row: -(historyLen - i), Col: col})
			}
		}
	}

	return matches
}

// IsAlternateScreen returns true if the alternate buffer is currently active.
// The alternate buffer has no history and is typically used by full-screen applications.
func (t *Terminal) IsAlternateScreen() bool {
	return t.activeBuffer == t.alternateBuffer
}

// ScrollRegion returns the current scrolling boundaries (0-based, exclusive bottom).
// When origin mode is enabled, cursor positioning is relative to scrollTop.
func (t *Terminal) ScrollRegion() (top, bottom int) {
	return t.scrollTop, t.scrollBottom
}

// --- Wrapped Line Tracking ---

// IsWrapped returns true if the line was wrapped due to column overflow, false if it ended with an explicit newline.
func (t *Terminal) IsWrapped(row int) bool {
	return t.activeBuffer.IsWrapped(row)
}

// SetWrapped sets whether the line was wrapped or ended with an explicit newline.
func (t *Terminal) SetWrapped(row int, wrapped bool) {
	t.activeBuffer.SetWrapped(row, wrapped)
}

// AutoResize returns true if growth mode is enabled (buffer expands instead of scrolling/wrapping).
func (t *Terminal) AutoResize() bool {
	return t.autoResize
}

// --- Recording Methods ---

// SetRecordingProvider replaces the recording handler at runtime.
func (t *Terminal) SetRecordingProvider(p RecordingProvider) {
	t.recordingProvider = p
}

// RecordingProvider returns the current recording handler.
func (t *Terminal) RecordingProvider() RecordingProvider {
	return t.recordingProvider
}

// RecordedData returns all raw input bytes captured since the last ClearRecording call.
func (t *Terminal) RecordedData() []byte {
	return t.recordingProvider.Data()
}

// ClearRecording discards all captured input data.
func (t *Terminal) ClearRecording() {
	t.recordingProvider.Clear()
}

// SetSizeProvider sets the provider for pixel dimension queries.
func (t *Terminal) SetSizeProvider(p SizeProvider) {
	t.sizeProvider = p
}

// ExtendedChars returns the terminal's ExtendedCharTable.
func (t *Terminal) ExtendedChars() *ExtendedCharTable {
	return t.extendedChars
}

// Config returns the configuration the terminal was constructed or last
// reconfigured with.
func (t *Terminal) Config() Config {
	return t.config
}

// Close releases resources held by the terminal's history backend (the
// Unbounded backend's temp files). It is a no-op for backends that hold
// none. Safe to call even if the terminal's history was never configured.
func (t *Terminal) Close() error {
	if c, ok := t.history.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
