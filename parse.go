package peg

import "fmt"

// Parse runs rules' start rule against input and requires the whole
// input to be consumed. On success it returns the AST rooted at the
// start rule; on failure it returns the deepest Normal error recorded
// during the attempt, or a Critical error if one occurred, or an
// "unexpected <tail>" error if the start rule succeeded but left input
// unconsumed and recorded no failure at all.
func Parse(rules *RuleTable, input string) (Node, error) {
	return ParseWithOptions(rules, input, DefaultOptions())
}

// ParseWithOptions is Parse with explicit Options (call-stack and step
// limits).
func ParseWithOptions(rules *RuleTable, input string, opts Options) (Node, error) {
	m := newMachine(input, rules, opts)
	pos, nodes, err := m.run(RuleRef(rules.StartRule()))
	if err != nil {
		if err.Priority == Normal && m.deepestErr != nil {
			return Node{}, m.deepestErr
		}
		return Node{}, err
	}
	if pos.Offset != len(input) {
		if m.deepestErr != nil {
			return Node{}, m.deepestErr
		}
		return Node{}, newNormalError(input, pos, fmt.Sprintf("unexpected %q", tail(input, pos.Offset)))
	}
	if len(nodes) != 1 {
		return Node{}, newCriticalError(input, pos, "internal error: start rule did not produce exactly one node")
	}
	return nodes[0], nil
}

func tail(text string, offset int) string {
	const maxExcerpt = 32
	rest := text[offset:]
	if len(rest) > maxExcerpt {
		return rest[:maxExcerpt] + "…"
	}
	return rest
}
