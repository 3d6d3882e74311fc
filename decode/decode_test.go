package decode

import (
	"image/color"
	"strings"
	"testing"
)

func TestPlainText_JoinsUnwrappedRowsWithNewline(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{{Char: 'h'}, {Char: 'i'}}, Wrapped: false},
		{Cells: []Cell{{Char: 'x'}}, Wrapped: false},
	}

	got := PlainText(rows, PlainTextOptions{PreserveLineBreaks: true})

	if want := "hi\nx"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestPlainText_WrappedRowsHaveNoSeparator(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{{Char: 'a'}}, Wrapped: true},
		{Cells: []Cell{{Char: 'b'}}, Wrapped: false},
	}

	got := PlainText(rows, PlainTextOptions{PreserveLineBreaks: true})

	if want := "ab"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestPlainText_SpacerCellsAreSkipped(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{{Char: '中'}, {Spacer: true}, {Char: 'x'}}},
	}

	got := PlainText(rows, PlainTextOptions{})

	if want := "中x"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestPlainText_NullCellBecomesSpace(t *testing.T) {
	rows := []Row{{Cells: []Cell{{Char: 'a'}, {Char: 0}, {Char: 'b'}}}}

	got := PlainText(rows, PlainTextOptions{})

	if want := "a b"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestHTML_StylesOnlyChangeOnBoundary(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	rows := []Row{
		{Cells: []Cell{
			{Char: 'a', Fg: red},
			{Char: 'b', Fg: red},
			{Char: 'c'},
		}},
	}

	got := HTML(rows, HTMLOptions{})

	if strings.Count(got, "<span") != 1 {
		t.Errorf("HTML() = %q, want exactly one styled span for the red run", got)
	}
	if !strings.Contains(got, "ab</span>c") {
		t.Errorf("HTML() = %q, want the unstyled run appended after the span", got)
	}
}

func TestHTML_BoldAndUnderlineProduceDeclarations(t *testing.T) {
	rows := []Row{{Cells: []Cell{{Char: 'x', Bold: true, Underline: true}}}}

	got := HTML(rows, HTMLOptions{})

	if !strings.Contains(got, "font-weight:bold") || !strings.Contains(got, "text-decoration:underline") {
		t.Errorf("HTML() = %q, want bold and underline declarations", got)
	}
}

func TestHTML_EscapesSpecialCharacters(t *testing.T) {
	rows := []Row{{Cells: []Cell{{Char: '<'}, {Char: '&'}}}}

	got := HTML(rows, HTMLOptions{})

	if strings.Contains(got, "<&") {
		t.Errorf("HTML() = %q, want escaped special characters", got)
	}
}

func TestHTML_ReverseSwapsForegroundAndBackground(t *testing.T) {
	fg := color.RGBA{R: 10, A: 255}
	bg := color.RGBA{B: 20, A: 255}
	rows := []Row{{Cells: []Cell{{Char: 'x', Fg: fg, Bg: bg, Reverse: true}}}}

	got := HTML(rows, HTMLOptions{})

	if !strings.Contains(got, "color:rgb(0,0,20)") {
		t.Errorf("HTML() = %q, want reversed colors", got)
	}
}

func TestHTML_TrimTrailingWhitespaceDropsUnstyledTrailingSpaces(t *testing.T) {
	rows := []Row{{Cells: []Cell{{Char: 'x'}, {Char: ' '}, {Char: ' '}}}}

	got := HTML(rows, HTMLOptions{TrimTrailingWhitespace: true})

	if strings.Contains(got, "x  ") {
		t.Errorf("HTML() = %q, want trailing spaces trimmed", got)
	}
}
