package peg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// RuleTable is a name -> Expression mapping, built once and read-only
// for the lifetime of every parse that uses it — which is what makes
// it safe to share across concurrent parses of different inputs, per
// the concurrency model in spec section 5.
type RuleTable struct {
	rules map[string]Expression
	start string
}

// Rules validates and builds a RuleTable rooted at start. It fails if
// start is undefined or if any RuleRef in the table targets a name
// that is not itself a key of rules — the compile-time check spec
// section 4.D and 4.I both call for.
func Rules(start string, rules map[string]Expression) (*RuleTable, error) {
	if _, ok := rules[start]; !ok {
		return nil, errors.Errorf("peg: start rule %q is not defined", start)
	}

	missing := map[string]bool{}
	for _, expr := range rules {
		walk(expr, func(e Expression) {
			if ref, ok := e.(*ruleRefExpr); ok {
				if _, ok := rules[ref.name]; !ok {
					missing[ref.name] = true
				}
			}
		})
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for n := range missing {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, errors.Errorf("peg: undefined rule reference(s): %s", strings.Join(names, ", "))
	}

	cp := make(map[string]Expression, len(rules))
	for k, v := range rules {
		cp[k] = v
	}
	return &RuleTable{rules: cp, start: start}, nil
}

// StartRule is the table's distinguished entry point name.
func (t *RuleTable) StartRule() string { return t.start }

// Names returns the table's rule names in no particular order.
func (t *RuleTable) Names() []string {
	names := make([]string, 0, len(t.rules))
	for n := range t.rules {
		names = append(names, n)
	}
	return names
}

func (t *RuleTable) lookup(name string) (Expression, bool) {
	e, ok := t.rules[name]
	return e, ok
}

// walk visits e and, recursively, every child expression reachable
// from it. RuleRef is deliberately a leaf here: following it would
// make walk diverge on a self-referential grammar.
func walk(e Expression, visit func(Expression)) {
	visit(e)
	switch v := e.(type) {
	case *sequenceExpr:
		for _, c := range v.children {
			walk(c, visit)
		}
	case *choiceExpr:
		for _, c := range v.children {
			walk(c, visit)
		}
	case *notExpr:
		walk(v.inner, visit)
	case *repeatExpr:
		walk(v.inner, visit)
	}
}

type ruleRefExpr struct{ name string }

// RuleRef is indirection through a RuleTable, resolved late at parse
// time rather than by embedding a direct pointer to the referenced
// expression — the only way a rule graph with cycles stays
// expressible and shareable (Design Notes, "Self-reference &
// recursion").
func RuleRef(name string) Expression { return &ruleRefExpr{name: name} }

func (e *ruleRefExpr) String() string { return fmt.Sprintf("RuleRef(%q)", e.name) }

type ruleRefLocals struct {
	name  string
	start Position
}

func (e *ruleRefExpr) step(m *machine) error {
	if !m.justReturned() {
		body, ok := m.rules.lookup(e.name)
		if !ok {
			return newCriticalError(m.text, m.pos, fmt.Sprintf("undefined rule %q", e.name))
		}
		m.locals = &ruleRefLocals{name: e.name, start: m.pos}
		return m.call(body)
	}

	loc := m.locals.(*ruleRefLocals)
	if !m.retOK {
		return m.returns(false, loc.start, nil, m.retErr)
	}
	m.pos = m.retPos
	return m.returns(true, m.pos, []Node{RuleNode(loc.name, m.retNodes)}, nil)
}
