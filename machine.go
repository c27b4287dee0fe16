package peg

// frame is the explicit call-stack entry pushed by machine.call and
// popped by machine.returns. It plays the role of a native stack
// frame without using one: owner is who to resume once the callee
// returns, and locals is the owner's own loop state, stashed away
// while the callee runs and restored verbatim on return.
type frame struct {
	owner  Expression
	locals interface{}
}

// machine drives one parse attempt. It is the Status of spec section
// 3 — position, remaining input, deepest error — plus the explicit
// trampoline bookkeeping (next, locals, callstack, isret/ret*) that
// lets Sequence, Choice, Repeat and RuleRef recurse through the
// expression graph without recursing through Go's own call stack.
// Grounded on the teacher engine's context struct and its
// call/returns/justReturned protocol.
type machine struct {
	text string
	pos  Position

	rules *RuleTable
	opts  Options

	next      Expression
	locals    interface{}
	callstack []frame

	isret    bool
	retOK    bool
	retPos   Position
	retNodes []Node
	retErr   *ParseError

	deepestErr *ParseError

	steps int
}

func newMachine(text string, rules *RuleTable, opts Options) *machine {
	return &machine{text: text, rules: rules, opts: opts}
}

// call transfers control to callee, saving the currently-executing
// expression (m.next) and its locals so returns can resume it later.
// It never invokes callee itself — the driver loop in run does that
// on its next iteration, which is precisely what keeps this a
// trampoline rather than a recursive call.
func (m *machine) call(callee Expression) error {
	m.callstack = append(m.callstack, frame{owner: m.next, locals: m.locals})
	if m.opts.CallstackLimit > 0 && len(m.callstack) > m.opts.CallstackLimit {
		return newCriticalError(m.text, m.pos, "callstack overflow")
	}
	m.next = callee
	return nil
}

// returns pops the call stack, resumes the caller, and stashes the
// outcome where the caller's next step invocation (justReturned will
// report true) can find it. Every Normal failure is folded into the
// machine's running deepest-error record here, in one place, so every
// combinator gets "deepest wins" bookkeeping for free.
func (m *machine) returns(ok bool, pos Position, nodes []Node, err *ParseError) error {
	if !ok && err != nil && err.Priority == Normal {
		m.deepestErr = deepest(m.deepestErr, err)
	}

	top := len(m.callstack) - 1
	fr := m.callstack[top]
	m.callstack = m.callstack[:top]

	m.next = fr.owner
	m.locals = fr.locals
	m.isret = true
	m.retOK = ok
	m.retPos = pos
	m.retNodes = nodes
	m.retErr = err
	return nil
}

// justReturned reports, and consumes, whether the expression about to
// run is being resumed after a child call (true) or is starting fresh
// (false). Every compound Expression's step method branches on this
// exactly once per invocation.
func (m *machine) justReturned() bool {
	if m.isret {
		m.isret = false
		return true
	}
	return false
}

// run drives start to completion. A sentinel call with no owner is
// pushed first, so that when start (however deep its own calls go)
// finally calls m.returns, the loop's exit condition — m.next
// becoming nil — falls naturally out of the same call/returns
// protocol every combinator uses, instead of needing special-casing
// for the outermost expression.
func (m *machine) run(start Expression) (Position, []Node, *ParseError) {
	m.next = nil
	m.locals = nil
	m.callstack = nil
	if err := m.call(start); err != nil {
		return m.pos, nil, err.(*ParseError)
	}

	for m.next != nil {
		if m.opts.StepLimit > 0 {
			m.steps++
			if m.steps > m.opts.StepLimit {
				return m.pos, nil, newCriticalError(m.text, m.pos, "step limit exceeded")
			}
		}
		cur := m.next
		if err := cur.step(m); err != nil {
			pe, ok := err.(*ParseError)
			if !ok {
				pe = newCriticalError(m.text, m.pos, err.Error())
			}
			return m.pos, nil, pe
		}
	}

	if m.retOK {
		return m.retPos, m.retNodes, nil
	}
	return m.pos, nil, m.retErr
}
