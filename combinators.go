package peg

import "fmt"

// Sequence, Choice, Not and Repeat are the compound expressions. Each
// step method branches on m.justReturned(): false means "I'm starting
// a fresh attempt, set up my locals and call my first child"; true
// means "a child I called just returned, inspect m.ret* and decide
// what happens next". Neither branch ever calls another Expression's
// step directly — control always passes back through the machine's
// call/returns protocol, which is what keeps recursion depth bounded
// regardless of how deep or self-referential the grammar is.

type sequenceExpr struct{ children []Expression }

// And matches every child in order; all must succeed. A single child
// behaves identically to that child (Testable Property #2).
func And(children ...Expression) Expression { return &sequenceExpr{children: children} }

func (e *sequenceExpr) String() string { return fmt.Sprintf("And(%d)", len(e.children)) }

type seqLocals struct {
	i     int
	start Position
	nodes []Node
}

func (e *sequenceExpr) step(m *machine) error {
	if !m.justReturned() {
		m.locals = &seqLocals{start: m.pos}
		if len(e.children) == 0 {
			return m.returns(true, m.pos, nil, nil)
		}
		return m.call(e.children[0])
	}

	loc := m.locals.(*seqLocals)
	if !m.retOK {
		m.pos = loc.start
		return m.returns(false, loc.start, nil, m.retErr)
	}
	loc.nodes = append(loc.nodes, m.retNodes...)
	m.pos = m.retPos
	loc.i++
	if loc.i >= len(e.children) {
		return m.returns(true, m.pos, loc.nodes, nil)
	}
	return m.call(e.children[loc.i])
}

type choiceExpr struct{ children []Expression }

// Or tries each child in order and commits to the first success
// (Testable Property #3). If every child fails with a Normal error,
// Or fails with the deepest of them. A child that fails Critical is
// never seen here at all — it has already unwound past this node by
// the time control would otherwise return to it, which is exactly
// what makes Error(msg) a usable PEG cut.
func Or(children ...Expression) Expression { return &choiceExpr{children: children} }

func (e *choiceExpr) String() string { return fmt.Sprintf("Or(%d)", len(e.children)) }

type choiceLocals struct {
	i          int
	start      Position
	deepestErr *ParseError
}

func (e *choiceExpr) step(m *machine) error {
	if !m.justReturned() {
		m.locals = &choiceLocals{start: m.pos}
		if len(e.children) == 0 {
			return m.returns(false, m.pos, nil, newNormalError(m.text, m.pos, "or"))
		}
		return m.call(e.children[0])
	}

	loc := m.locals.(*choiceLocals)
	if m.retOK {
		return m.returns(true, m.retPos, m.retNodes, nil)
	}
	loc.deepestErr = deepest(loc.deepestErr, m.retErr)
	m.pos = loc.start
	loc.i++
	if loc.i >= len(e.children) {
		return m.returns(false, loc.start, nil, loc.deepestErr)
	}
	return m.call(e.children[loc.i])
}

type notExpr struct{ inner Expression }

// Not is the syntactic predicate: it succeeds, consuming nothing and
// producing no AST children, iff inner fails; it fails iff inner
// succeeds (Testable Property #4). A Critical failure from inner
// still propagates straight through, same as for Or.
func Not(inner Expression) Expression { return &notExpr{inner: inner} }

func (e *notExpr) String() string { return "Not(...)" }

type notLocals struct{ start Position }

func (e *notExpr) step(m *machine) error {
	if !m.justReturned() {
		m.locals = &notLocals{start: m.pos}
		return m.call(e.inner)
	}

	loc := m.locals.(*notLocals)
	m.pos = loc.start
	if m.retOK {
		return m.returns(false, loc.start, nil, newNormalError(m.text, loc.start, "not"))
	}
	return m.returns(true, loc.start, nil, nil)
}

type repeatExpr struct {
	inner Expression
	min   int
	max   int // -1 means unbounded
}

// Rep matches inner greedily between min and max times inclusive
// (max omitted or < 0 means unbounded). The whole expression fails
// only if fewer than min matches were possible (Testable Property #5).
func Rep(inner Expression, min int, max ...int) Expression {
	m := -1
	if len(max) > 0 {
		m = max[0]
	}
	return &repeatExpr{inner: inner, min: min, max: m}
}

func (e *repeatExpr) String() string { return fmt.Sprintf("Rep(min=%d,max=%d)", e.min, e.max) }

type repeatLocals struct {
	count int
	start Position
	pos   Position
	nodes []Node
}

func (e *repeatExpr) step(m *machine) error {
	if !m.justReturned() {
		m.locals = &repeatLocals{start: m.pos, pos: m.pos}
		if e.max == 0 {
			return m.returns(true, m.pos, nil, nil)
		}
		return m.call(e.inner)
	}

	loc := m.locals.(*repeatLocals)
	if m.retOK {
		loc.count++
		loc.pos = m.retPos
		loc.nodes = append(loc.nodes, m.retNodes...)
		m.pos = loc.pos
		if e.max >= 0 && loc.count >= e.max {
			return m.returns(true, loc.pos, loc.nodes, nil)
		}
		return m.call(e.inner)
	}

	if loc.count >= e.min {
		m.pos = loc.pos
		return m.returns(true, loc.pos, loc.nodes, nil)
	}
	m.pos = loc.start
	return m.returns(false, loc.start, nil, m.retErr)
}
