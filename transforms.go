package peg

import (
	"strings"

	"github.com/pkg/errors"
)

// Transforms are pure functions over Node trees: each returns a new
// tree and never mutates its argument, so independent subtrees could
// in principle be transformed in parallel (Design Notes, "Transforms
// as pure functions").

// Prune removes every Rule node whose name is in names, along with
// its whole subtree, and recurses into the survivors. Val and EOF
// nodes always pass through unchanged. The root itself is never
// removed by its own call — only a parent decides to drop a child.
func Prune(n Node, names map[string]bool) Node {
	if n.Kind != KindRule {
		return n
	}
	kept := make([]Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == KindRule && names[c.Name] {
			continue
		}
		kept = append(kept, Prune(c, names))
	}
	return RuleNode(n.Name, kept)
}

// PassThroughExcept replaces every Rule node whose name is not in
// keep with its own (recursively transformed) children, splicing them
// into the parent's child list. Rule nodes named in keep, and every
// Val/EOF, are preserved as-is. The root rule's name must be in keep
// for the result to itself remain a Rule node — PassThroughExcept
// only ever replaces a node from its parent's perspective, never
// itself, so calling it directly on a non-kept root simply returns
// that root node unexpanded.
func PassThroughExcept(n Node, keep map[string]bool) Node {
	if n.Kind != KindRule {
		return n
	}
	result := make([]Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == KindRule && !keep[c.Name] {
			expanded := PassThroughExcept(c, keep)
			result = append(result, expanded.Children...)
			continue
		}
		result = append(result, PassThroughExcept(c, keep))
	}
	return RuleNode(n.Name, result)
}

// Compact merges every run of adjacent Val children into a single
// Val, recursing into Rule children. EOF is not a Val, so it
// terminates any run it's adjacent to, matching the "EOF acts as a
// barrier" rule.
func Compact(n Node) Node {
	if n.Kind != KindRule {
		return n
	}
	result := make([]Node, 0, len(n.Children))
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			result = append(result, ValNode(run.String()))
			run.Reset()
		}
	}
	for _, c := range n.Children {
		if c.Kind == KindVal {
			run.WriteString(c.Val)
			continue
		}
		flush()
		result = append(result, Compact(c))
	}
	flush()
	return RuleNode(n.Name, result)
}

// Flatten linearizes a tree depth-first: a Rule becomes a BeginRule
// marker, its flattened children, and an EndRule marker; a Val is
// emitted as-is; EOF is omitted entirely, so a tree containing only an
// EOF sentinel flattens to nothing.
func Flatten(n Node) []FlatNode {
	switch n.Kind {
	case KindVal:
		return []FlatNode{{Kind: FlatVal, Val: n.Val}}
	case KindEOF:
		return nil
	case KindRule:
		out := make([]FlatNode, 0, len(n.Children)+2)
		out = append(out, FlatNode{Kind: FlatBeginRule, Name: n.Name})
		for _, c := range n.Children {
			out = append(out, Flatten(c)...)
		}
		out = append(out, FlatNode{Kind: FlatEndRule, Name: n.Name})
		return out
	default:
		return nil
	}
}

// Rebuild is Flatten's inverse: for any flat sequence produced by
// Flatten, Rebuild(Flatten(n)) reproduces a tree equal to n with its
// EOF sentinels removed, since Flatten omits them (Testable Property
// #6 — flatten round-trip). It fails on a malformed sequence
// (unbalanced Begin/EndRule markers, or trailing tokens after the
// first complete node).
func Rebuild(flat []FlatNode) (Node, error) {
	nodes, rest, err := rebuildSiblings(flat)
	if err != nil {
		return Node{}, err
	}
	if len(rest) != 0 {
		return Node{}, errors.New("peg: trailing tokens after rebuilt node")
	}
	if len(nodes) != 1 {
		return Node{}, errors.Errorf("peg: expected exactly one top-level node, got %d", len(nodes))
	}
	return nodes[0], nil
}

func rebuildSiblings(flat []FlatNode) ([]Node, []FlatNode, error) {
	var nodes []Node
	for len(flat) > 0 {
		switch flat[0].Kind {
		case FlatVal:
			nodes = append(nodes, ValNode(flat[0].Val))
			flat = flat[1:]
		case FlatEndRule:
			return nodes, flat, nil
		case FlatBeginRule:
			name := flat[0].Name
			children, rest, err := rebuildSiblings(flat[1:])
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 || rest[0].Kind != FlatEndRule || rest[0].Name != name {
				return nil, nil, errors.Errorf("peg: unmatched BeginRule(%q)", name)
			}
			nodes = append(nodes, RuleNode(name, children))
			flat = rest[1:]
		default:
			return nil, nil, errors.New("peg: unknown flat node kind")
		}
	}
	return nodes, flat, nil
}
