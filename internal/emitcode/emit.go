// Package emitcode generates Go source for a grammar file: instead of
// parsing the grammar text at process startup, a caller can embed the
// generated rule table directly as Go combinator calls.
package emitcode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dynpeg/dynpeg"
	"github.com/dynpeg/dynpeg/grammar"
)

// Emit parses text against the grammar meta-grammar and renders its
// rules as a Go source fragment of peg combinator calls, one entry
// per rule, sorted by name for reproducible output. Grounded on
// original_source/src/peg/gcode.rs's rust_from_rules/expr2code family,
// translated from Rust macro syntax (and!/or!/lit!/...) to this
// project's exported Go functions (peg.And/peg.Or/peg.Lit/...).
func Emit(text string) (string, error) {
	tree, err := grammar.Tree(text)
	if err != nil {
		return "", err
	}
	grammarNode, ok := grammar.FirstChildNamed(tree, "grammar")
	if !ok {
		return "", fmt.Errorf("emitcode: grammar parse tree missing its top-level grammar node")
	}

	rules := map[string]string{}
	if err := emitGrammar(grammarNode, "", rules); err != nil {
		return "", err
	}

	names := make([]string, 0, len(rules))
	for n := range rules {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("map[string]peg.Expression{\n")
	for _, n := range names {
		fmt.Fprintf(&b, "\t%q: %s,\n", n, rules[n])
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func emitGrammar(n peg.Node, namespace string, out map[string]string) error {
	for _, child := range n.Children {
		if child.Kind != peg.KindRule {
			continue
		}
		switch child.Name {
		case "rule":
			name, code, err := emitRule(child, namespace)
			if err != nil {
				return err
			}
			out[name] = code
		case "module":
			if err := emitModule(child, namespace, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func emitModule(n peg.Node, namespace string, out map[string]string) error {
	modNameNode, ok := grammar.FirstChildNamed(n, "mod_name")
	if !ok {
		return fmt.Errorf("emitcode: module node missing mod_name")
	}
	symNode, ok := grammar.FirstChildNamed(modNameNode, "symbol")
	if !ok {
		return fmt.Errorf("emitcode: mod_name node missing symbol")
	}
	modName := grammar.CollectVals(symNode)

	nested, ok := grammar.FirstChildNamed(n, "grammar")
	if !ok {
		return fmt.Errorf("emitcode: module %q has no nested grammar", modName)
	}
	return emitGrammar(nested, grammar.Qualify(namespace, modName), out)
}

func emitRule(n peg.Node, namespace string) (string, string, error) {
	nameNode, ok := grammar.FirstChildNamed(n, "rule_name")
	if !ok {
		return "", "", fmt.Errorf("emitcode: rule node missing rule_name")
	}
	exprNode, ok := grammar.FirstChildNamed(n, "expr")
	if !ok {
		return "", "", fmt.Errorf("emitcode: rule %q has no body", grammar.DecodeRuleName(nameNode))
	}
	name := grammar.Qualify(namespace, grammar.DecodeRuleName(nameNode))
	code, err := emitExpr(exprNode, namespace)
	if err != nil {
		return "", "", err
	}
	return name, code, nil
}

func emitExpr(n peg.Node, namespace string) (string, error) {
	orNode, ok := grammar.FirstChildNamed(n, "or")
	if !ok {
		return "", fmt.Errorf("emitcode: expr node missing or")
	}
	return emitOr(orNode, namespace)
}

func emitOr(n peg.Node, namespace string) (string, error) {
	items, err := emitOrItems(n, namespace)
	if err != nil {
		return "", err
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return fmt.Sprintf("peg.Or(%s)", strings.Join(items, ", ")), nil
}

func emitOrItems(n peg.Node, namespace string) ([]string, error) {
	andNode, ok := grammar.FirstChildNamed(n, "and")
	if !ok {
		return nil, fmt.Errorf("emitcode: or node missing and")
	}
	first, err := emitAnd(andNode, namespace)
	if err != nil {
		return nil, err
	}
	items := []string{first}

	if errNode, ok := grammar.FirstChildNamed(n, "error"); ok {
		lit, ok := grammar.FirstChildNamed(errNode, "literal")
		if !ok {
			return nil, fmt.Errorf("emitcode: error() node missing its message literal")
		}
		msg, err := grammar.DecodeLiteral(lit)
		if err != nil {
			return nil, err
		}
		items = append(items, fmt.Sprintf("peg.ErrorAtom(%s)", strconv.Quote(msg)))
		return items, nil
	}

	if orNode, ok := grammar.FirstChildNamed(n, "or"); ok {
		rest, err := emitOrItems(orNode, namespace)
		if err != nil {
			return nil, err
		}
		items = append(items, rest...)
	}
	return items, nil
}

func emitAnd(n peg.Node, namespace string) (string, error) {
	items := []string{}
	cur := n
	for {
		repNode, ok := grammar.FirstChildNamed(cur, "rep_or_neg")
		if !ok {
			return "", fmt.Errorf("emitcode: and node missing rep_or_neg")
		}
		e, err := emitRepOrNeg(repNode, namespace)
		if err != nil {
			return "", err
		}
		items = append(items, e)

		nextAnd, ok := grammar.FirstChildNamed(cur, "and")
		if !ok {
			break
		}
		cur = nextAnd
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return fmt.Sprintf("peg.And(%s)", strings.Join(items, ", ")), nil
}

func emitRepOrNeg(n peg.Node, namespace string) (string, error) {
	if len(n.Children) > 0 && n.Children[0].Kind == peg.KindVal && n.Children[0].Val == "!" {
		atomNode, ok := grammar.FirstChildNamed(n, "atom_or_par")
		if !ok {
			return "", fmt.Errorf("emitcode: negation missing atom_or_par")
		}
		inner, err := emitAtomOrPar(atomNode, namespace)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("peg.Not(%s)", inner), nil
	}

	atomNode, ok := grammar.FirstChildNamed(n, "atom_or_par")
	if !ok {
		return "", fmt.Errorf("emitcode: rep_or_neg missing atom_or_par")
	}
	inner, err := emitAtomOrPar(atomNode, namespace)
	if err != nil {
		return "", err
	}

	quant := ""
	for _, c := range n.Children {
		if c.Kind == peg.KindVal && (c.Val == "*" || c.Val == "+" || c.Val == "?") {
			quant = c.Val
		}
	}
	switch quant {
	case "*":
		return fmt.Sprintf("peg.Rep(%s, 0)", inner), nil
	case "+":
		return fmt.Sprintf("peg.Rep(%s, 1)", inner), nil
	case "?":
		return fmt.Sprintf("peg.Rep(%s, 0, 1)", inner), nil
	default:
		return inner, nil
	}
}

func emitAtomOrPar(n peg.Node, namespace string) (string, error) {
	if atomNode, ok := grammar.FirstChildNamed(n, "atom"); ok {
		return emitAtom(atomNode, namespace)
	}
	if parenthNode, ok := grammar.FirstChildNamed(n, "parenth"); ok {
		exprNode, ok := grammar.FirstChildNamed(parenthNode, "expr")
		if !ok {
			return "", fmt.Errorf("emitcode: parenthesized group missing expr")
		}
		return emitExpr(exprNode, namespace)
	}
	return "", fmt.Errorf("emitcode: atom_or_par node has neither atom nor parenth")
}

func emitAtom(n peg.Node, namespace string) (string, error) {
	if litNode, ok := grammar.FirstChildNamed(n, "literal"); ok {
		s, err := grammar.DecodeLiteral(litNode)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("peg.Lit(%s)", strconv.Quote(s)), nil
	}
	if matchNode, ok := grammar.FirstChildNamed(n, "match"); ok {
		return emitMatch(matchNode)
	}
	if _, ok := grammar.FirstChildNamed(n, "dot"); ok {
		return "peg.Dot()", nil
	}
	if nameNode, ok := grammar.FirstChildNamed(n, "rule_name"); ok {
		name := grammar.Qualify(namespace, grammar.DecodeRuleName(nameNode))
		return fmt.Sprintf("peg.RuleRef(%s)", strconv.Quote(name)), nil
	}
	return "", fmt.Errorf("emitcode: atom node matches none of literal/match/dot/rule_name")
}

func emitMatch(n peg.Node) (string, error) {
	chars := ""
	if mcharsNode, ok := grammar.FirstChildNamed(n, "mchars"); ok {
		chars = grammar.CollectVals(mcharsNode)
	}

	var rangeArgs []string
	for _, b := range grammar.AllChildrenNamed(n, "mbetween") {
		if len(b.Children) != 3 {
			return "", fmt.Errorf("emitcode: mbetween node has unexpected shape")
		}
		lo := b.Children[0].Val
		hi := b.Children[2].Val
		rangeArgs = append(rangeArgs, fmt.Sprintf("[2]rune{%s, %s}", quoteRune(lo), quoteRune(hi)))
	}

	args := []string{strconv.Quote(chars)}
	args = append(args, rangeArgs...)
	return fmt.Sprintf("peg.Match(%s)", strings.Join(args, ", ")), nil
}

func quoteRune(s string) string {
	r := []rune(s)
	if len(r) != 1 {
		return strconv.Quote(s)
	}
	return strconv.QuoteRune(r[0])
}
