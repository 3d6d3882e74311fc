package headlessterm

import "testing"

func TestNewHistoryModeNoneWiresNoScrollback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryMode = HistoryModeNone
	term := New(WithConfig(cfg))

	if _, ok := term.primaryBuffer.HistoryProvider().(NoopScrollback); !ok {
		t.Fatalf("expected HistoryModeNone to wire NoopScrollback, got %T", term.primaryBuffer.HistoryProvider())
	}
}

func TestNewWiresBoundedHistoryAndEvicts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryMode = HistoryModeBounded
	cfg.HistoryMaxLines = 3
	term := New(WithConfig(cfg), WithSize(2, 10))

	// Scroll the 2-row screen enough to push 4 lines into history; only the
	// most recent 3 should survive (§6 history_mode Bounded(lines)).
	for i := 0; i < 5; i++ {
		term.WriteString("line\r\n")
	}

	h := term.primaryBuffer.HistoryProvider()
	if h.LineCount() != 3 {
		t.Fatalf("expected bounded history capped at 3 lines, got %d", h.LineCount())
	}
	if h.MaxLines() != 3 {
		t.Errorf("expected MaxLines() == 3, got %d", h.MaxLines())
	}
}

func TestNewWiresUnboundedFileHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryMode = HistoryModeUnbounded
	term := New(WithConfig(cfg), WithSize(2, 10))
	defer term.Close()

	for i := 0; i < 5; i++ {
		term.WriteString("line\r\n")
	}

	h := term.primaryBuffer.HistoryProvider()
	if h.LineCount() == 0 {
		t.Fatal("expected the unbounded file backend to have accumulated scrolled-off lines")
	}
	if h.MaxLines() != 0 {
		t.Errorf("expected the unbounded backend to report MaxLines() == 0, got %d", h.MaxLines())
	}
}

func TestWithHistoryOverridesConfiguredMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryMode = HistoryModeUnbounded
	override := &testScrollback{lines: make([][]Cell, 0)}
	term := New(WithConfig(cfg), WithHistory(override))

	if term.primaryBuffer.HistoryProvider() != History(override) {
		t.Error("expected WithHistory to take priority over Config.HistoryMode")
	}
}
