// Package grammar turns the textual PEG dialect described in this
// project's grammar-file format into a *peg.RuleTable, by running
// that text through a hard-coded meta-grammar built from peg's own
// combinators and then walking the resulting parse tree.
package grammar

import "github.com/dynpeg/dynpeg"

// metaGrammar returns the rule table for the PEG dialect itself. It
// is transcribed directly from the canonical production set (every
// rule name and shape below matches it one-for-one), just expressed
// with peg's exported combinators instead of Rust macros.
func metaGrammar() *peg.RuleTable {
	rules := map[string]peg.Expression{
		// mod_name = symbol
		"mod_name": peg.RuleRef("symbol"),

		// eol = "\r\n" / "\n" / "\r"
		"eol": peg.Or(peg.Lit("\r\n"), peg.Lit("\n"), peg.Lit("\r")),

		// mline_comment = "/*" (!"*/" .)* "*/"
		"mline_comment": peg.And(
			peg.Lit("/*"),
			peg.Rep(peg.And(peg.Not(peg.Lit("*/")), peg.Dot()), 0),
			peg.Lit("*/"),
		),

		// error = "error" _ "(" _ literal _ ")"
		"error": peg.And(
			peg.Lit("error"), peg.RuleRef("_"),
			peg.Lit("("), peg.RuleRef("_"),
			peg.RuleRef("literal"), peg.RuleRef("_"),
			peg.Lit(")"),
		),

		// atom_or_par = atom / parenth
		"atom_or_par": peg.Or(peg.RuleRef("atom"), peg.RuleRef("parenth")),

		// main = grammar
		"main": peg.RuleRef("grammar"),

		// mchars = (!"]" !(. "-") .)+
		"mchars": peg.Rep(peg.And(
			peg.Not(peg.Lit("]")),
			peg.Not(peg.And(peg.Dot(), peg.Lit("-"))),
			peg.Dot(),
		), 1),

		// dot = "."
		"dot": peg.Lit("."),

		// and = rep_or_neg (_1 _ !(rule_name _ "=") and)*
		"and": peg.And(
			peg.RuleRef("rep_or_neg"),
			peg.Rep(peg.And(
				peg.RuleRef("_1"), peg.RuleRef("_"),
				peg.Not(peg.And(peg.RuleRef("rule_name"), peg.RuleRef("_"), peg.Lit("="))),
				peg.RuleRef("and"),
			), 0),
		),

		// parenth = "(" _ expr _ ")"
		"parenth": peg.And(
			peg.Lit("("), peg.RuleRef("_"),
			peg.RuleRef("expr"),
			peg.RuleRef("_"), peg.Lit(")"),
		),

		// atom = literal / match / dot / rule_name
		"atom": peg.Or(
			peg.RuleRef("literal"),
			peg.RuleRef("match"),
			peg.RuleRef("dot"),
			peg.RuleRef("rule_name"),
		),

		// module = _ mod_name _ "{" _ grammar _ "}"
		"module": peg.And(
			peg.RuleRef("_"), peg.RuleRef("mod_name"), peg.RuleRef("_"),
			peg.Lit("{"), peg.RuleRef("_"),
			peg.RuleRef("grammar"),
			peg.RuleRef("_"), peg.Lit("}"),
		),

		// rule_name = "."? symbol ("." symbol)*
		"rule_name": peg.And(
			peg.Rep(peg.Lit("."), 0, 1),
			peg.RuleRef("symbol"),
			peg.Rep(peg.And(peg.Lit("."), peg.RuleRef("symbol")), 0),
		),

		// _ = (" " / eol / comment)*
		"_": peg.Rep(peg.Or(peg.Lit(" "), peg.RuleRef("eol"), peg.RuleRef("comment")), 0),

		// grammar = (rule / module)+
		"grammar": peg.Rep(peg.Or(peg.RuleRef("rule"), peg.RuleRef("module")), 1),

		// esc_char = "\r" / "\n" / "\t" / "\\" / "\""  (the two-char textual escapes)
		"esc_char": peg.Or(
			peg.Lit(`\r`), peg.Lit(`\n`), peg.Lit(`\t`), peg.Lit(`\\`), peg.Lit(`\"`),
		),

		// hex_char = "\0x" [0-9A-F] [0-9A-F]
		"hex_char": peg.And(
			peg.Lit(`\0x`),
			peg.Match("", [2]rune{'0', '9'}, [2]rune{'A', 'F'}),
			peg.Match("", [2]rune{'0', '9'}, [2]rune{'A', 'F'}),
		),

		// lit_noesc = "'" (!"'" .)* "'"
		"lit_noesc": peg.And(
			peg.RuleRef("_'"),
			peg.Rep(peg.And(peg.Not(peg.RuleRef("_'")), peg.Dot()), 0),
			peg.RuleRef("_'"),
		),

		"_'": peg.Lit("'"),

		// rep_or_neg = atom_or_par ("*" / "+" / "?")? / "!" atom_or_par
		"rep_or_neg": peg.Or(
			peg.And(
				peg.RuleRef("atom_or_par"),
				peg.Rep(peg.Or(peg.Lit("*"), peg.Lit("+"), peg.Lit("?")), 0, 1),
			),
			peg.And(peg.Lit("!"), peg.RuleRef("atom_or_par")),
		),

		// lit_esc = "\"" (esc_char / hex_char / (!"\"" .))* "\""
		"lit_esc": peg.And(
			peg.RuleRef(`_"`),
			peg.Rep(peg.Or(
				peg.RuleRef("esc_char"),
				peg.RuleRef("hex_char"),
				peg.And(peg.Not(peg.RuleRef(`_"`)), peg.Dot()),
			), 0),
			peg.RuleRef(`_"`),
		),

		// _eol = (" " / comment)* eol
		"_eol": peg.And(peg.Rep(peg.Or(peg.Lit(" "), peg.RuleRef("comment")), 0), peg.RuleRef("eol")),

		// match = "[" ((mchars mbetween*) / mbetween+) "]"
		"match": peg.And(
			peg.Lit("["),
			peg.Or(
				peg.And(peg.RuleRef("mchars"), peg.Rep(peg.RuleRef("mbetween"), 0)),
				peg.Rep(peg.RuleRef("mbetween"), 1),
			),
			peg.Lit("]"),
		),

		// or = and (_ "/" _ (error / or))?
		"or": peg.And(
			peg.RuleRef("and"),
			peg.Rep(peg.And(
				peg.RuleRef("_"), peg.Lit("/"), peg.RuleRef("_"),
				peg.Or(peg.RuleRef("error"), peg.RuleRef("or")),
			), 0, 1),
		),

		`_"`: peg.Lit(`"`),

		// mbetween = . "-" .
		"mbetween": peg.And(peg.Dot(), peg.Lit("-"), peg.Dot()),

		// _1 = " " / eol
		"_1": peg.Or(peg.Lit(" "), peg.RuleRef("eol")),

		// rule = _ rule_name _ "=" _ expr _eol _
		"rule": peg.And(
			peg.RuleRef("_"), peg.RuleRef("rule_name"), peg.RuleRef("_"),
			peg.Lit("="), peg.RuleRef("_"),
			peg.RuleRef("expr"),
			peg.RuleRef("_eol"), peg.RuleRef("_"),
		),

		// symbol = [_a-zA-Z0-9] [_'"a-zA-Z0-9]*
		"symbol": peg.And(
			peg.Match("_", [2]rune{'a', 'z'}, [2]rune{'A', 'Z'}, [2]rune{'0', '9'}),
			peg.Rep(peg.Match(`_'"`, [2]rune{'a', 'z'}, [2]rune{'A', 'Z'}, [2]rune{'0', '9'}), 0),
		),

		// literal = lit_noesc / lit_esc
		"literal": peg.Or(peg.RuleRef("lit_noesc"), peg.RuleRef("lit_esc")),

		// expr = or
		"expr": peg.RuleRef("or"),

		// comment = line_comment / mline_comment
		"comment": peg.Or(peg.RuleRef("line_comment"), peg.RuleRef("mline_comment")),

		// line_comment = "//" (!eol .)* eol
		"line_comment": peg.And(
			peg.Lit("//"),
			peg.Rep(peg.And(peg.Not(peg.RuleRef("eol")), peg.Dot()), 0),
			peg.RuleRef("eol"),
		),
	}

	rt, err := peg.Rules("main", rules)
	if err != nil {
		// The meta-grammar is fixed at compile time; a failure here
		// means this file itself is wrong, not anything a caller did.
		panic(err)
	}
	return rt
}

var metaGrammarTable = metaGrammar()
