package grammar

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"

	"github.com/dynpeg/dynpeg"
	"github.com/dynpeg/dynpeg/internal/diagnostic"
)

func errf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Compile parses grammar text against the meta-grammar and walks the
// resulting tree into a *peg.RuleTable rooted at start. module blocks
// namespace their rules under a dotted prefix; a rule_name beginning
// with "." always resolves at the root namespace regardless of where
// it is written, matching this project's resolution of the module
// Open Question (see DESIGN.md).
func Compile(text string, start string) (*peg.RuleTable, error) {
	tree, err := Tree(text)
	if err != nil {
		return nil, errors.Wrap(err, "grammar: parsing grammar text against the meta-grammar")
	}

	grammarNode, ok := FirstChildNamed(tree, "grammar")
	if !ok {
		return nil, errf("grammar: meta-grammar parse tree missing its top-level grammar node")
	}

	rules := map[string]peg.Expression{}
	if err := compileGrammar(grammarNode, "", rules); err != nil {
		return nil, err
	}

	rt, err := peg.Rules(start, rules)
	if err != nil {
		return nil, annotateUndefinedRefs(err, rules)
	}
	return rt, nil
}

// annotateUndefinedRefs appends did-you-mean suggestions to the plain
// "undefined rule reference" error peg.Rules returns: for each
// undefined name, the defined name with the smallest case-insensitive
// Levenshtein distance, offered only when that distance is at most
// half the undefined name's length.
func annotateUndefinedRefs(err error, rules map[string]peg.Expression) error {
	msg := err.Error()
	const marker = "undefined rule reference(s): "
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return err
	}
	names := strings.Split(msg[idx+len(marker):], ", ")

	known := make([]string, 0, len(rules))
	for n := range rules {
		known = append(known, n)
	}
	sort.Strings(known)

	var suggestions []string
	for _, n := range names {
		best, bestDist := "", -1
		for _, k := range known {
			d := fuzzy.LevenshteinDistance(strings.ToLower(n), strings.ToLower(k))
			if bestDist < 0 || d < bestDist {
				best, bestDist = k, d
			}
		}
		if bestDist < 0 || bestDist > len(n)/2 {
			continue
		}
		suggestions = append(suggestions, n+" (did you mean "+best+"?)")
	}
	if len(suggestions) == 0 {
		return err
	}
	diagnostic.Log.WithField("undefined", names).Debug("grammar: suggesting corrections for undefined rule references")
	return errors.Wrap(err, strings.Join(suggestions, "; "))
}

// Qualify applies the dotted-namespace resolution rule: a name
// beginning with "." always resolves at the root, stripped of that
// leading dot; otherwise it is prefixed with the enclosing module's
// namespace, if any.
func Qualify(namespace, name string) string {
	if strings.HasPrefix(name, ".") {
		return strings.TrimPrefix(name, ".")
	}
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// compileGrammar walks a "grammar" node's rule/module children,
// adding every compiled rule into out under namespace.
func compileGrammar(n peg.Node, namespace string, out map[string]peg.Expression) error {
	for _, child := range n.Children {
		if child.Kind != peg.KindRule {
			continue
		}
		switch child.Name {
		case "rule":
			name, body, err := compileRule(child, namespace)
			if err != nil {
				return err
			}
			if _, dup := out[name]; dup {
				return errf("grammar: duplicate rule %q", name)
			}
			out[name] = body
		case "module":
			if err := compileModule(child, namespace, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func compileModule(n peg.Node, namespace string, out map[string]peg.Expression) error {
	modNameNode, ok := FirstChildNamed(n, "mod_name")
	if !ok {
		return errf("grammar: module node missing mod_name")
	}
	symNode, ok := FirstChildNamed(modNameNode, "symbol")
	if !ok {
		return errf("grammar: mod_name node missing symbol")
	}
	modName := CollectVals(symNode)

	nested, ok := FirstChildNamed(n, "grammar")
	if !ok {
		return errf("grammar: module %q has no nested grammar", modName)
	}
	return compileGrammar(nested, Qualify(namespace, modName), out)
}

func compileRule(n peg.Node, namespace string) (string, peg.Expression, error) {
	nameNode, ok := FirstChildNamed(n, "rule_name")
	if !ok {
		return "", nil, errf("grammar: rule node missing rule_name")
	}
	exprNode, ok := FirstChildNamed(n, "expr")
	if !ok {
		return "", nil, errf("grammar: rule %q has no body", DecodeRuleName(nameNode))
	}
	name := Qualify(namespace, DecodeRuleName(nameNode))
	body, err := compileExpr(exprNode, namespace)
	if err != nil {
		return "", nil, errors.Wrapf(err, "grammar: compiling rule %q", name)
	}
	return name, body, nil
}

// expr = or, a transparent single-child wrapper.
func compileExpr(n peg.Node, namespace string) (peg.Expression, error) {
	orNode, ok := FirstChildNamed(n, "or")
	if !ok {
		return nil, errf("grammar: expr node missing or")
	}
	return compileOr(orNode, namespace)
}

func compileOr(n peg.Node, namespace string) (peg.Expression, error) {
	items, err := compileOrItems(n, namespace)
	if err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return peg.Or(items...), nil
}

// compileOrItems returns the flat list of alternatives in a possibly
// right-nested chain of "or" nodes (or = and (_ "/" _ (error/or))?),
// so a run of N alternatives collapses to one N-ary peg.Or instead of
// N-1 nested binary ones.
func compileOrItems(n peg.Node, namespace string) ([]peg.Expression, error) {
	andNode, ok := FirstChildNamed(n, "and")
	if !ok {
		return nil, errf("grammar: or node missing and")
	}
	first, err := compileAnd(andNode, namespace)
	if err != nil {
		return nil, err
	}
	items := []peg.Expression{first}

	if errNode, ok := FirstChildNamed(n, "error"); ok {
		lit, ok := FirstChildNamed(errNode, "literal")
		if !ok {
			return nil, errf("grammar: error() node missing its message literal")
		}
		msg, err := DecodeLiteral(lit)
		if err != nil {
			return nil, err
		}
		items = append(items, peg.ErrorAtom(msg))
		return items, nil
	}

	if orNode, ok := FirstChildNamed(n, "or"); ok {
		rest, err := compileOrItems(orNode, namespace)
		if err != nil {
			return nil, err
		}
		items = append(items, rest...)
	}
	return items, nil
}

// compileAnd mirrors compileOrItems for the right-nested "and" chain
// (and = rep_or_neg (_1 _ !(...) and)*).
func compileAnd(n peg.Node, namespace string) (peg.Expression, error) {
	items := []peg.Expression{}
	cur := n
	for {
		repNode, ok := FirstChildNamed(cur, "rep_or_neg")
		if !ok {
			return nil, errf("grammar: and node missing rep_or_neg")
		}
		e, err := compileRepOrNeg(repNode, namespace)
		if err != nil {
			return nil, err
		}
		items = append(items, e)

		nextAnd, ok := FirstChildNamed(cur, "and")
		if !ok {
			break
		}
		cur = nextAnd
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return peg.And(items...), nil
}

// rep_or_neg = atom_or_par ("*" / "+" / "?")? / "!" atom_or_par
func compileRepOrNeg(n peg.Node, namespace string) (peg.Expression, error) {
	if len(n.Children) > 0 && n.Children[0].Kind == peg.KindVal && n.Children[0].Val == "!" {
		atomNode, ok := FirstChildNamed(n, "atom_or_par")
		if !ok {
			return nil, errf("grammar: negation missing atom_or_par")
		}
		inner, err := compileAtomOrPar(atomNode, namespace)
		if err != nil {
			return nil, err
		}
		return peg.Not(inner), nil
	}

	atomNode, ok := FirstChildNamed(n, "atom_or_par")
	if !ok {
		return nil, errf("grammar: rep_or_neg missing atom_or_par")
	}
	inner, err := compileAtomOrPar(atomNode, namespace)
	if err != nil {
		return nil, err
	}

	quant := ""
	for _, c := range n.Children {
		if c.Kind == peg.KindVal && (c.Val == "*" || c.Val == "+" || c.Val == "?") {
			quant = c.Val
		}
	}
	switch quant {
	case "*":
		return peg.Rep(inner, 0), nil
	case "+":
		return peg.Rep(inner, 1), nil
	case "?":
		return peg.Rep(inner, 0, 1), nil
	default:
		return inner, nil
	}
}

func compileAtomOrPar(n peg.Node, namespace string) (peg.Expression, error) {
	if atomNode, ok := FirstChildNamed(n, "atom"); ok {
		return compileAtom(atomNode, namespace)
	}
	if parenthNode, ok := FirstChildNamed(n, "parenth"); ok {
		exprNode, ok := FirstChildNamed(parenthNode, "expr")
		if !ok {
			return nil, errf("grammar: parenthesized group missing expr")
		}
		return compileExpr(exprNode, namespace)
	}
	return nil, errf("grammar: atom_or_par node has neither atom nor parenth")
}

func compileAtom(n peg.Node, namespace string) (peg.Expression, error) {
	if litNode, ok := FirstChildNamed(n, "literal"); ok {
		s, err := DecodeLiteral(litNode)
		if err != nil {
			return nil, err
		}
		return peg.Lit(s), nil
	}
	if matchNode, ok := FirstChildNamed(n, "match"); ok {
		return compileMatch(matchNode)
	}
	if _, ok := FirstChildNamed(n, "dot"); ok {
		return peg.Dot(), nil
	}
	if nameNode, ok := FirstChildNamed(n, "rule_name"); ok {
		return peg.RuleRef(Qualify(namespace, DecodeRuleName(nameNode))), nil
	}
	return nil, errf("grammar: atom node matches none of literal/match/dot/rule_name")
}

// match = "[" ((mchars mbetween*) / mbetween+) "]"
func compileMatch(n peg.Node) (peg.Expression, error) {
	chars := ""
	if mcharsNode, ok := FirstChildNamed(n, "mchars"); ok {
		chars = CollectVals(mcharsNode)
	}

	var ranges [][2]rune
	for _, b := range AllChildrenNamed(n, "mbetween") {
		if len(b.Children) != 3 {
			return nil, errf("grammar: mbetween node has unexpected shape")
		}
		lo := []rune(b.Children[0].Val)
		hi := []rune(b.Children[2].Val)
		if len(lo) != 1 || len(hi) != 1 {
			return nil, errf("grammar: mbetween endpoints must be single characters")
		}
		ranges = append(ranges, [2]rune{lo[0], hi[0]})
	}

	return peg.Match(chars, ranges...), nil
}
