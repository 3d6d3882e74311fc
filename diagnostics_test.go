package headlessterm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danielgatis/go-ansicode"
	"github.com/rs/zerolog"
)

func TestEmitDiagnosticLogsAtTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	ch := make(chan Diagnostic, 1)
	term := New(WithLogger(logger), WithDiagnostics(ch))

	term.emitDiagnostic(DiagnosticExtendedCharTableFull, "cluster exceeds limit")

	if !strings.Contains(buf.String(), "extended_char_table_full") {
		t.Errorf("expected the logger to record the diagnostic kind, got %q", buf.String())
	}
	select {
	case d := <-ch:
		if d.Kind != DiagnosticExtendedCharTableFull {
			t.Errorf("expected channel to also receive the diagnostic, got %v", d.Kind)
		}
	default:
		t.Error("expected the diagnostics channel to receive the event alongside the log line")
	}
}

func TestSetModeUnrecognizedModeLogsMalformedEscape(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	term := New(WithLogger(logger))

	// TerminalMode 9999 has no case in setModeLocked's switch.
	term.setModeLocked(ansicode.TerminalMode(9999), true)

	if !strings.Contains(buf.String(), "malformed_escape") {
		t.Errorf("expected an unrecognized mode to log malformed_escape, got %q", buf.String())
	}
}

func TestSixelReceivedLogsIgnored(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	term := New(WithLogger(logger))

	term.SixelReceived(nil, []byte{1, 2, 3})

	if !strings.Contains(buf.String(), "sixel") {
		t.Errorf("expected SixelReceived to log a trace line, got %q", buf.String())
	}
}

func TestDefaultLoggerProducesNoOutput(t *testing.T) {
	term := New()
	// Should not panic with the default zerolog.Nop() logger.
	term.emitDiagnostic(DiagnosticMalformedEscape, "unreachable in practice")
}
