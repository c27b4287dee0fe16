package pegutil

import (
	"testing"

	"github.com/dynpeg/dynpeg"
)

func fullMatch(t *testing.T, expr peg.Expression, text string) bool {
	t.Helper()
	rt, err := peg.Rules("main", map[string]peg.Expression{"main": expr})
	if err != nil {
		t.Fatalf("building rule table: %v", err)
	}
	_, err = peg.Parse(rt, text)
	return err == nil
}

func TestDigitClasses(t *testing.T) {
	data := []struct {
		text string
		full bool
		pat  peg.Expression
	}{
		{"7", true, OctDigit},
		{"8", false, OctDigit},
		{"9", true, DecDigit},
		{"a", false, DecDigit},
		{"a", true, HexDigit},
		{"F", true, HexDigit},
		{"g", false, HexDigit},
	}
	for _, d := range data {
		if got := fullMatch(t, d.pat, d.text); got != d.full {
			t.Errorf("fullMatch(%q) = %t, want %t", d.text, got, d.full)
		}
	}
}

func TestASCIIClasses(t *testing.T) {
	data := []struct {
		text string
		full bool
		pat  peg.Expression
	}{
		{" ", true, ASCIIWhitespace},
		{"x", false, ASCIIWhitespace},
		{"x", true, ASCIINotWhitespace},
		{" ", false, ASCIINotWhitespace},
		{"5", true, ASCIIDigit},
		{"Z", true, ASCIILetter},
		{"z", true, ASCIILower},
		{"Z", true, ASCIIUpper},
		{"z", false, ASCIIUpper},
		{"9", true, ASCIILetterDigit},
		{"_", false, ASCIILetterDigit},
		{"\x01", true, ASCIIControl},
		{"a", false, ASCIIControl},
		{"a", true, ASCIINotControl},
		{"\x01", false, ASCIINotControl},
	}
	for _, d := range data {
		if got := fullMatch(t, d.pat, d.text); got != d.full {
			t.Errorf("fullMatch(%q) = %t, want %t", d.text, got, d.full)
		}
	}
}

func TestNewlineClasses(t *testing.T) {
	if !fullMatch(t, NewlineRune, "\n") {
		t.Error(`NewlineRune should match "\n"`)
	}
	if !fullMatch(t, NewlineRune, "\r") {
		t.Error(`NewlineRune should match "\r"`)
	}
	if fullMatch(t, NewlineRune, "x") {
		t.Error(`NewlineRune should not match "x"`)
	}
	if !fullMatch(t, NotNewlineRune, "x") {
		t.Error(`NotNewlineRune should match "x"`)
	}
	if fullMatch(t, NotNewlineRune, "\n") {
		t.Error(`NotNewlineRune should not match "\n"`)
	}
}

func TestScopeContainsEveryExported(t *testing.T) {
	want := []string{
		"OctDigit", "DecDigit", "HexDigit",
		"ASCIIWhitespace", "ASCIINotWhitespace", "ASCIIDigit", "ASCIILetter",
		"ASCIILower", "ASCIIUpper", "ASCIILetterDigit", "ASCIIControl", "ASCIINotControl",
		"NewlineRune", "NotNewlineRune",
	}
	for _, name := range want {
		if _, ok := Scope[name]; !ok {
			t.Errorf("Scope missing %q", name)
		}
	}
}
