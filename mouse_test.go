package headlessterm

import (
	"bytes"
	"testing"
)

func TestSendMouseEvent_NoModeEnabledIsNoop(t *testing.T) {
	term := New(WithSize(24, 80))
	var buf bytes.Buffer
	term.SetResponseProvider(&buf)

	term.SendMouseEvent(MouseButtonLeft, 5, 2, MousePress, MouseModifiers{})

	if buf.Len() != 0 {
		t.Errorf("expected no report, got %q", buf.String())
	}
}

func TestSendMouseEvent_LegacyX10Encoding(t *testing.T) {
	term := New(WithSize(24, 80))
	var buf bytes.Buffer
	term.SetResponseProvider(&buf)
	term.WriteString("\x1b[?1000h")

	term.SendMouseEvent(MouseButtonLeft, 5, 2, MousePress, MouseModifiers{})

	want := "\x1b[M" + string([]byte{32, 38, 35})
	if buf.String() != want {
		t.Errorf("report = %q, want %q", buf.String(), want)
	}
}

func TestSendMouseEvent_SGREncoding(t *testing.T) {
	term := New(WithSize(24, 80))
	var buf bytes.Buffer
	term.SetResponseProvider(&buf)
	term.WriteString("\x1b[?1000h\x1b[?1006h")

	term.SendMouseEvent(MouseButtonLeft, 5, 2, MousePress, MouseModifiers{})

	if want := "\x1b[<0;6;3M"; buf.String() != want {
		t.Errorf("report = %q, want %q", buf.String(), want)
	}
}

func TestSendMouseEvent_SGRReleaseUsesLowercaseFinal(t *testing.T) {
	term := New(WithSize(24, 80))
	var buf bytes.Buffer
	term.SetResponseProvider(&buf)
	term.WriteString("\x1b[?1000h\x1b[?1006h")

	term.SendMouseEvent(MouseButtonLeft, 0, 0, MouseRelease, MouseModifiers{})

	if want := "\x1b[<0;1;1m"; buf.String() != want {
		t.Errorf("report = %q, want %q", buf.String(), want)
	}
}

func TestSendMouseEvent_MotionRequiresMotionMode(t *testing.T) {
	term := New(WithSize(24, 80))
	var buf bytes.Buffer
	term.SetResponseProvider(&buf)
	term.WriteString("\x1b[?1000h\x1b[?1006h")

	term.SendMouseEvent(MouseButtonLeft, 1, 1, MouseMotion, MouseModifiers{})
	if buf.Len() != 0 {
		t.Errorf("expected motion suppressed without 1002/1003, got %q", buf.String())
	}

	term.WriteString("\x1b[?1002h")
	term.SendMouseEvent(MouseButtonLeft, 1, 1, MouseMotion, MouseModifiers{})
	if buf.Len() == 0 {
		t.Error("expected motion report once cell motion tracking is enabled")
	}
}

func TestSendMouseEvent_ModifiersAddIntoSGRButtonCode(t *testing.T) {
	term := New(WithSize(24, 80))
	var buf bytes.Buffer
	term.SetResponseProvider(&buf)
	term.WriteString("\x1b[?1000h\x1b[?1006h")

	term.SendMouseEvent(MouseButtonLeft, 0, 0, MousePress, MouseModifiers{Shift: true, Control: true})

	if want := "\x1b[<20;1;1M"; buf.String() != want {
		t.Errorf("report = %q, want %q", buf.String(), want)
	}
}

func TestSendMouseEvent_WheelReportsFixedCodes(t *testing.T) {
	term := New(WithSize(24, 80))
	var buf bytes.Buffer
	term.SetResponseProvider(&buf)
	term.WriteString("\x1b[?1000h\x1b[?1006h")

	term.SendMouseEvent(MouseWheelUp, 0, 0, MousePress, MouseModifiers{})

	if want := "\x1b[<64;1;1M"; buf.String() != want {
		t.Errorf("report = %q, want %q", buf.String(), want)
	}
}
