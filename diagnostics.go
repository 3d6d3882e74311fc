package headlessterm

// DiagnosticKind classifies a non-fatal event a Terminal surfaces to its
// host instead of panicking or failing an operation (§7).
type DiagnosticKind int

const (
	// DiagnosticHistoryIOError reports that the File history backend could
	// not be created; the Terminal then runs with no scrollback (None).
	DiagnosticHistoryIOError DiagnosticKind = iota
	// DiagnosticExtendedCharTableFull reports that a grapheme cluster could
	// not be interned (table at its configured per-handle limit) and was
	// written as its leading code point instead.
	DiagnosticExtendedCharTableFull
	// DiagnosticUnknownColorReference reports an SGR or OSC color reference
	// outside the known palette/named-color range, resolved to a default.
	DiagnosticUnknownColorReference
	// DiagnosticMalformedEscape reports an escape sequence the parser could
	// not interpret, which was swallowed rather than applied.
	DiagnosticMalformedEscape
	// DiagnosticHyperlinkSpanTruncated reports an OSC-8 span that exceeded
	// Config.MaxHyperlinkSpanCells and was cut short.
	DiagnosticHyperlinkSpanTruncated
	// DiagnosticHyperlinkSchemeRejected reports an OSC-8 URI whose scheme
	// was not in Config.OSC8AllowedSchemes.
	DiagnosticHyperlinkSchemeRejected
)

// Diagnostic is one non-fatal event emitted on a Terminal's diagnostics
// channel (see WithDiagnostics). Detail is a short human-readable string;
// it never includes control characters from the offending input.
type Diagnostic struct {
	Kind   DiagnosticKind
	Detail string
}

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticHistoryIOError:
		return "history_io_error"
	case DiagnosticExtendedCharTableFull:
		return "extended_char_table_full"
	case DiagnosticUnknownColorReference:
		return "unknown_color_reference"
	case DiagnosticMalformedEscape:
		return "malformed_escape"
	case DiagnosticHyperlinkSpanTruncated:
		return "hyperlink_span_truncated"
	case DiagnosticHyperlinkSchemeRejected:
		return "hyperlink_scheme_rejected"
	default:
		return "unknown"
	}
}
