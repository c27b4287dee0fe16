package peg

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Atoms are leaves of the expression graph: they never call into
// another Expression, so unlike the combinators in combinators.go
// they do their work and call m.returns in a single step invocation.

type literalExpr struct{ value string }

// Lit matches the given code-point sequence exactly.
func Lit(value string) Expression { return &literalExpr{value: value} }

func (e *literalExpr) String() string { return fmt.Sprintf("Lit(%q)", e.value) }

func (e *literalExpr) step(m *machine) error {
	rest := m.text[m.pos.Offset:]
	if !strings.HasPrefix(rest, e.value) {
		return m.returns(false, m.pos, nil, newNormalError(m.text, m.pos, fmt.Sprintf("expected literal: <%s>", e.value)))
	}
	pos := m.pos
	for _, r := range e.value {
		pos = pos.advance(r, utf8.RuneLen(r))
	}
	return m.returns(true, pos, []Node{ValNode(e.value)}, nil)
}

type dotExpr struct{}

// Dot matches any single code point, failing only at end of input.
func Dot() Expression { return dotSingleton }

var dotSingleton = &dotExpr{}

func (e *dotExpr) String() string { return "Dot()" }

func (e *dotExpr) step(m *machine) error {
	if m.pos.Offset >= len(m.text) {
		return m.returns(false, m.pos, nil, newNormalError(m.text, m.pos, "dot"))
	}
	r, size := utf8.DecodeRuneInString(m.text[m.pos.Offset:])
	pos := m.pos.advance(r, size)
	return m.returns(true, pos, []Node{ValNode(string(r))}, nil)
}

type eofExpr struct{}

// EOF matches iff there is no remaining input.
func EOF() Expression { return eofSingleton }

var eofSingleton = &eofExpr{}

func (e *eofExpr) String() string { return "EOF()" }

func (e *eofExpr) step(m *machine) error {
	if m.pos.Offset >= len(m.text) {
		return m.returns(true, m.pos, []Node{EOFNode}, nil)
	}
	return m.returns(false, m.pos, nil, newNormalError(m.text, m.pos, "expected EOF"))
}

// charRange is an inclusive [Lo, Hi] code point range.
type charRange struct{ Lo, Hi rune }

type matchExpr struct {
	chars  string
	ranges []charRange
}

// Match succeeds on a single code point that either appears in chars
// or falls within one of the inclusive ranges (low, high pairs). Both
// empty means the atom always fails.
func Match(chars string, ranges ...[2]rune) Expression {
	rs := make([]charRange, len(ranges))
	for i, r := range ranges {
		rs[i] = charRange{Lo: r[0], Hi: r[1]}
	}
	return &matchExpr{chars: chars, ranges: rs}
}

func (e *matchExpr) String() string {
	return fmt.Sprintf("Match(%q, %v)", e.chars, e.ranges)
}

func (e *matchExpr) step(m *machine) error {
	if m.pos.Offset >= len(m.text) {
		return m.returns(false, m.pos, nil, newNormalError(m.text, m.pos, e.describe()))
	}
	r, size := utf8.DecodeRuneInString(m.text[m.pos.Offset:])
	if e.matches(r) {
		pos := m.pos.advance(r, size)
		return m.returns(true, pos, []Node{ValNode(string(r))}, nil)
	}
	return m.returns(false, m.pos, nil, newNormalError(m.text, m.pos, e.describe()))
}

func (e *matchExpr) matches(r rune) bool {
	if strings.ContainsRune(e.chars, r) {
		return true
	}
	for _, rg := range e.ranges {
		if rg.Lo <= r && r <= rg.Hi {
			return true
		}
	}
	return false
}

func (e *matchExpr) describe() string {
	return fmt.Sprintf("match. expected %q %v", e.chars, e.ranges)
}

type errorAtomExpr struct{ message string }

// ErrorAtom always fails with a Critical error carrying message. It
// is PEG's "cut": placed as an alternative inside Or, it stops an
// ordered choice from trying any later alternative.
func ErrorAtom(message string) Expression { return &errorAtomExpr{message: message} }

func (e *errorAtomExpr) String() string { return fmt.Sprintf("ErrorAtom(%q)", e.message) }

func (e *errorAtomExpr) step(m *machine) error {
	return newCriticalError(m.text, m.pos, e.message)
}
