// Package pegutil collects small, commonly needed single-rune grammar
// fragments — digit and letter classes, ASCII whitespace, line endings —
// built on peg.Match and peg.Dot so a grammar author doesn't have to
// respell "[a-zA-Z0-9_]" by hand in every rule that needs it.
package pegutil

import (
	"github.com/dynpeg/dynpeg"
)

// Digits.
var (
	OctDigit = peg.Match("", [2]rune{'0', '7'})
	DecDigit = peg.Match("", [2]rune{'0', '9'})
	HexDigit = peg.Match("", [2]rune{'0', '9'}, [2]rune{'a', 'f'}, [2]rune{'A', 'F'})
)

// ASCII runes.
var (
	ASCIIWhitespace    = peg.Match(" \t\n\r\v\f")
	ASCIINotWhitespace = peg.And(peg.Not(peg.Match(" \t\n\r\v\f")), peg.Dot())
	ASCIIDigit         = peg.Match("", [2]rune{'0', '9'})
	ASCIILetter        = peg.Match("", [2]rune{'a', 'z'}, [2]rune{'A', 'Z'})
	ASCIILower         = peg.Match("", [2]rune{'a', 'z'})
	ASCIIUpper         = peg.Match("", [2]rune{'A', 'Z'})
	ASCIILetterDigit   = peg.Match("", [2]rune{'a', 'z'}, [2]rune{'A', 'Z'}, [2]rune{'0', '9'})
	ASCIIControl       = peg.Match("", [2]rune{'\x00', '\x1f'}, [2]rune{'\x7f', '\x7f'})
	ASCIINotControl    = peg.Match("", [2]rune{'\x20', '\x7e'})
)

// Line endings.
var (
	NewlineRune    = peg.Match("\n\r")
	NotNewlineRune = peg.And(peg.Not(peg.Match("\n\r")), peg.Dot())
)

// Scope maps every exported rune-class fragment to its name, for code
// that wants to look one up by string (e.g. a REPL completion list).
var Scope = map[string]peg.Expression{
	"OctDigit": OctDigit,
	"DecDigit": DecDigit,
	"HexDigit": HexDigit,

	"ASCIIWhitespace":    ASCIIWhitespace,
	"ASCIINotWhitespace": ASCIINotWhitespace,
	"ASCIIDigit":         ASCIIDigit,
	"ASCIILetter":        ASCIILetter,
	"ASCIILower":         ASCIILower,
	"ASCIIUpper":         ASCIIUpper,
	"ASCIILetterDigit":   ASCIILetterDigit,
	"ASCIIControl":       ASCIIControl,
	"ASCIINotControl":    ASCIINotControl,

	"NewlineRune":    NewlineRune,
	"NotNewlineRune": NotNewlineRune,
}
