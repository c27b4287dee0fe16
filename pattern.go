// Package peg implements a dynamic Parsing Expression Grammar engine:
// ordered choice, syntactic predicates, bounded and unbounded
// repetition, an AST with prune/pass-through/compact/flatten
// transforms, and a rule table that lets grammars be self-referential.
//
// Grammars are built either directly with the combinators in this package
// (And, Or, Not, Rep, Lit, Dot, Match, RuleRef, ErrorAtom, Rules) or by
// compiling a textual PEG dialect with the sibling grammar package.
package peg

// Expression is the compiled form of one PEG construct: a literal, a
// character class, a combinator over child expressions, or a named
// reference resolved through a RuleTable. step is invoked repeatedly
// from a single flat driver loop (see machine.run) rather than through
// native recursion, so that arbitrarily deep self-referential rules —
// the tall right-recursion pattern a grammar like `main = . main / "~"`
// produces — never grow the Go call stack.
//
// step returns a non-nil error only to signal a Critical failure
// (raised by an Error atom or an unresolved rule reference): that
// return value unwinds the whole machine unconditionally, bypassing
// every Choice/Not/Repeat recovery point on the way out. Ordinary
// (Normal) success or failure is instead communicated by calling
// m.returns and returning nil, so the driver loop keeps running.
type Expression interface {
	step(m *machine) error
	String() string
}

// Options configures a parse attempt. The zero value is usable and
// imposes no limits.
type Options struct {
	// CallstackLimit bounds the machine's explicit call-stack depth
	// (distinct from the native Go stack, which this engine is
	// designed to keep shallow regardless of grammar recursion). Zero
	// means unlimited. Mirrors the teacher engine's CallstackLimit.
	CallstackLimit int

	// StepLimit bounds the total number of trampoline steps taken
	// before a parse gives up with a Critical error, guarding against
	// runaway grammars during development. Zero means unlimited.
	StepLimit int
}

// DefaultOptions returns the zero-value Options: no limits.
func DefaultOptions() Options {
	return Options{}
}
