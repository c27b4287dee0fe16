package grammar

import (
	"strconv"

	"github.com/dynpeg/dynpeg"
)

// Tree parses grammar text against the meta-grammar and returns the
// raw parse tree, before any compilation into a *peg.RuleTable. Emit
// tooling (internal/emitcode) walks this tree to generate source code
// instead of building an Expression graph.
func Tree(text string) (peg.Node, error) {
	return peg.Parse(metaGrammarTable, text)
}

// FirstChildNamed scans n's direct children, in order, for the first
// Rule node whose Name matches, skipping over any Val or differently
// named Rule children in between (bare literal matches like the "="
// in a rule definition, or the whitespace/comment nodes "_" and
// "_1" weave in between the children a caller actually wants).
func FirstChildNamed(n peg.Node, name string) (peg.Node, bool) {
	for _, c := range n.Children {
		if c.Kind == peg.KindRule && c.Name == name {
			return c, true
		}
	}
	return peg.Node{}, false
}

// AllChildrenNamed collects every direct Rule child with the given
// name, in order.
func AllChildrenNamed(n peg.Node, name string) []peg.Node {
	var out []peg.Node
	for _, c := range n.Children {
		if c.Kind == peg.KindRule && c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// CollectVals concatenates every direct Val child's text, skipping
// any Rule children (used for symbol, whose children are exactly one
// Val per matched character).
func CollectVals(n peg.Node) string {
	s := ""
	for _, c := range n.Children {
		if c.Kind == peg.KindVal {
			s += c.Val
		}
	}
	return s
}

// DecodeLiteral turns a parsed "literal" node's single lit_noesc or
// lit_esc child into the string it denotes. lit_noesc content is
// taken verbatim; lit_esc content is decoded character by character,
// since escape and hex-escape sequences compile down to one real
// rune apiece instead of the two or four source characters that spell
// them.
func DecodeLiteral(literalNode peg.Node) (string, error) {
	if len(literalNode.Children) != 1 {
		return "", errf("literal node has unexpected shape")
	}
	inner := literalNode.Children[0]
	switch inner.Name {
	case "lit_noesc":
		return CollectVals(inner), nil
	case "lit_esc":
		return decodeLitEsc(inner)
	default:
		return "", errf("literal node wraps unknown production %q", inner.Name)
	}
}

var escDecode = map[string]rune{
	`\r`: '\r',
	`\n`: '\n',
	`\t`: '\t',
	`\\`: '\\',
	`\"`: '"',
}

// decodeLitEsc walks the literal's children in order, skipping the
// two quote markers, converting each esc_char/hex_char node to the
// single rune it denotes and passing ordinary Val children through
// unchanged.
func decodeLitEsc(n peg.Node) (string, error) {
	var out []rune
	for _, c := range n.Children {
		switch {
		case c.Kind == peg.KindVal:
			out = append(out, []rune(c.Val)...)
		case c.Kind == peg.KindRule && c.Name == "esc_char":
			seq := CollectVals(c)
			r, ok := escDecode[seq]
			if !ok {
				return "", errf("unknown escape sequence %q", seq)
			}
			out = append(out, r)
		case c.Kind == peg.KindRule && c.Name == "hex_char":
			digits := CollectVals(c)[len(`\0x`):]
			v, err := strconv.ParseInt(digits, 16, 32)
			if err != nil {
				return "", errf("invalid hex escape %q: %v", digits, err)
			}
			out = append(out, rune(v))
		case c.Kind == peg.KindRule && c.Name == `_"`:
			// quote marker, not content
		}
	}
	return string(out), nil
}

// DecodeRuleName reconstructs the dotted name matched by a rule_name
// node: a leading "." (escape to root namespace) plus one or more
// "symbol" segments joined by ".".
func DecodeRuleName(n peg.Node) string {
	name := ""
	for _, c := range n.Children {
		switch {
		case c.Kind == peg.KindVal && c.Val == ".":
			name += "."
		case c.Kind == peg.KindRule && c.Name == "symbol":
			name += CollectVals(c)
		}
	}
	return name
}
