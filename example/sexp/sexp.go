package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dynpeg/dynpeg"
)

// Grammar. sexpSpaces/sexpSep/sexpSign/... are plain Expression values
// shared between rules, the way a hand-written recursive grammar
// composes fragments before naming the ones that need to be
// addressable by RuleRef or dispatched on by name while building SExp
// values out of the parse tree.
var (
	sexpSpaces = peg.Rep(peg.Match(" \t\n\r\v\f"), 0)
	sexpSep    = peg.Rep(peg.Match(" \t\n\r\v\f"), 1)
	sexpSign   = peg.Rep(peg.Match("+-"), 0, 1)
	sexpDigits = peg.Rep(peg.Match("", [2]rune{'0', '9'}), 0)
	sexpDigit1 = peg.Rep(peg.Match("", [2]rune{'0', '9'}), 1)

	// ciLit("true") etc.: the engine has no case-insensitive literal
	// atom, so a case-insensitive word is spelled out as a sequence of
	// per-character Match sets.
	sexpTrue  = ciLit("true")
	sexpFalse = ciLit("false")

	sexpFraction = peg.Or(
		peg.And(sexpDigit1, peg.Lit("."), sexpDigits),
		peg.And(sexpDigits, peg.Lit("."), sexpDigit1),
		sexpDigit1)
	sexpExponent = peg.And(peg.Or(peg.Lit("e"), peg.Lit("E")), sexpSign, sexpDigit1)

	sexpSymbolHead = peg.Or(
		peg.Match("", [2]rune{'a', 'z'}, [2]rune{'A', 'Z'}),
		peg.Match("!$%&*+,-./:;<=>?@[\\]^_`{|}~"))
	sexpSymbolTail = peg.Rep(peg.Or(
		peg.Match("", [2]rune{'a', 'z'}, [2]rune{'A', 'Z'}, [2]rune{'0', '9'}),
		peg.Match("!$%&*+,-./:;<=>?@[\\]^_`{|}~")), 0)

	sexpQuote = peg.Lit("'")
	sexpLeft  = peg.Lit("(")
	sexpRight = peg.Lit(")")

	// join0(item) matches zero or more item separated by sexpSep,
	// mirroring a J0 combinator the old pattern API offered directly.
	sexpRules = map[string]peg.Expression{
		"number":  peg.And(sexpSign, sexpFraction, peg.Rep(sexpExponent, 0, 1)),
		"symbol":  peg.And(sexpSymbolHead, sexpSymbolTail),
		"special": peg.And(peg.Lit("#"), peg.Or(sexpTrue, sexpFalse)),
		"atom": peg.Or(
			peg.RuleRef("number"),
			peg.RuleRef("symbol"),
			peg.RuleRef("special")),
		"list": peg.And(
			sexpLeft, sexpSpaces,
			join0(peg.RuleRef("sexp"), sexpSep),
			sexpSpaces, sexpRight),
		"quoted": peg.And(sexpQuote, peg.RuleRef("sexp")),
		"sexp": peg.Or(
			peg.RuleRef("atom"),
			peg.RuleRef("list"),
			peg.RuleRef("quoted")),
		"incomplete": peg.Or(
			peg.RuleRef("atom"),
			peg.And(
				sexpLeft, sexpSpaces,
				join0(peg.RuleRef("incomplete"), sexpSep),
				sexpSpaces, peg.Rep(sexpRight, 0, 1)),
			peg.And(sexpQuote, peg.RuleRef("incomplete"))),
		"main":           peg.And(sexpSpaces, peg.RuleRef("sexp"), sexpSpaces),
		"incomplete_top": peg.And(sexpSpaces, peg.RuleRef("incomplete"), sexpSpaces),
	}
)

// ciLit builds a case-insensitive literal out of per-character Match
// atoms.
func ciLit(word string) peg.Expression {
	children := make([]peg.Expression, 0, len(word))
	for _, r := range strings.ToLower(word) {
		children = append(children, peg.Match(string(r)+strings.ToUpper(string(r))))
	}
	return peg.And(children...)
}

// join0 matches zero or more occurrences of item separated by sep.
func join0(item, sep peg.Expression) peg.Expression {
	return peg.And(
		peg.Rep(item, 0, 1),
		peg.Rep(peg.And(sep, item), 0))
}

func sexpTable() (*peg.RuleTable, error) {
	return peg.Rules("main", sexpRules)
}

func incompleteTable() (*peg.RuleTable, error) {
	return peg.Rules("incomplete_top", sexpRules)
}

// childNamed returns the first child of n whose Name is name, the
// same "scan past the interspersed whitespace/literal noise" idiom
// the grammar compiler uses to walk its own parse trees.
func childNamed(n peg.Node, name string) (peg.Node, bool) {
	for _, c := range n.Children {
		if c.Kind == peg.KindRule && c.Name == name {
			return c, true
		}
	}
	return peg.Node{}, false
}

// childrenNamed returns every child of n whose Name is name, in order.
func childrenNamed(n peg.Node, name string) []peg.Node {
	var out []peg.Node
	for _, c := range n.Children {
		if c.Kind == peg.KindRule && c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// text concatenates every Val leaf under n, depth-first.
func text(n peg.Node) string {
	var b strings.Builder
	var walk func(peg.Node)
	walk = func(n peg.Node) {
		if n.Kind == peg.KindVal {
			b.WriteString(n.Val)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// buildSExp converts a "sexp" rule node (or the "atom"/"number"/
// "symbol"/"special"/"list"/"quoted" node nested inside it) into an
// SExp value.
func buildSExp(n peg.Node) (SExp, error) {
	switch n.Name {
	case "sexp", "atom":
		for _, c := range n.Children {
			if c.Kind == peg.KindRule {
				return buildSExp(c)
			}
		}
		return nil, fmt.Errorf("malformed %s node", n.Name)
	case "number":
		return NumberCons(text(n))
	case "symbol":
		return SymbolCons(text(n)), nil
	case "special":
		return SpecialCons(text(n))
	case "list":
		items := childrenNamed(n, "sexp")
		sexps := make([]SExp, len(items))
		for i, item := range items {
			sexp, err := buildSExp(item)
			if err != nil {
				return nil, err
			}
			sexps[i] = sexp
		}
		return ListCons(sexps), nil
	case "quoted":
		inner, ok := childNamed(n, "sexp")
		if !ok {
			return nil, fmt.Errorf("malformed quoted node")
		}
		quoted, err := buildSExp(inner)
		if err != nil {
			return nil, err
		}
		return QuotedCons(quoted), nil
	default:
		return nil, fmt.Errorf("unexpected node %q in sexp tree", n.Name)
	}
}

// Built-in primitives.
var (
	Builtins = map[string]SExp{
		"+":       Primitive(PrimitiveAdd),
		"-":       Primitive(PrimitiveSub),
		"*":       Primitive(PrimitiveMul),
		"/":       Primitive(PrimitiveDiv),
		"<":       Primitive(PrimitiveLT),
		"<=":      Primitive(PrimitiveLE),
		"==":      Primitive(PrimitiveEQ),
		"!=":      Primitive(PrimitiveNE),
		">=":      Primitive(PrimitiveGE),
		">":       Primitive(PrimitiveGT),
		"not":     Primitive(PrimitiveNot),
		"display": Primitive(PrimitiveDisplay),
		"list":    Primitive(PrimitiveList),
		"nil":     List(nil),
	}
)

// Types.
type (
	SExp interface {
		Eval(*Context) (SExp, error)
		Equals(other SExp) bool
		String() string
	}

	Callable interface {
		SExp
		Call(*Context, []SExp) (SExp, error)
	}

	Context struct {
		Scope []map[string]SExp // names are in lower case
	}

	List []SExp

	Symbol string

	Number float64

	Boolean bool

	Primitive func(*Context, []SExp) (SExp, error)

	Closure struct {
		bind []map[string]SExp
		args []string
		body SExp
	}
)

// Number.

func NumberCons(lit string) (Number, error) {
	var sign float64
	if strings.HasPrefix(lit, "+") {
		lit = lit[1:]
		sign = 1.0
	} else if strings.HasPrefix(lit, "-") {
		lit = lit[1:]
		sign = -1.0
	} else {
		sign = 1.0
	}

	num, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, err
	}
	num *= sign
	return Number(num), nil
}

func (num Number) Eval(ctx *Context) (SExp, error) {
	return num, nil
}

func (num Number) Equals(other SExp) bool {
	if othernum, ok := other.(Number); ok {
		return float64(num) == float64(othernum)
	}
	return false
}

func (num Number) String() string {
	return fmt.Sprintf("%g", float64(num))
}

// Symbol.

func SymbolCons(lit string) Symbol {
	return Symbol(strings.ToLower(lit))
}

func (sym Symbol) Eval(ctx *Context) (SExp, error) {
	ret := ctx.Lookup(strings.ToLower(string(sym)))
	if ret == nil {
		return nil, fmt.Errorf("undefined: %s", string(sym))
	}
	return ret, nil
}

func (sym Symbol) Equals(other SExp) bool {
	if othersym, ok := other.(Symbol); ok {
		return strings.ToLower(string(sym)) == strings.ToLower(string(othersym))
	}
	return false
}

func (sym Symbol) String() string {
	return fmt.Sprintf("%s", strings.ToLower(string(sym)))
}

// Boolean.

func SpecialCons(lit string) (Boolean, error) {
	switch strings.ToLower(lit) {
	case "#true":
		return Boolean(true), nil
	case "#false":
		return Boolean(false), nil
	}
	return false, fmt.Errorf("unknown special literal %q", lit)
}

func (b Boolean) Eval(ctx *Context) (SExp, error) {
	return b, nil
}

func (b Boolean) Equals(other SExp) bool {
	if otherb, ok := other.(Boolean); ok {
		return b == otherb
	}
	return false
}

func (b Boolean) String() string {
	return fmt.Sprintf("#%t", bool(b))
}

// Primitive.

func (prim Primitive) Eval(ctx *Context) (SExp, error) {
	return prim, nil
}

func (prim Primitive) Call(ctx *Context, args []SExp) (SExp, error) {
	return prim(ctx, args)
}

func (prim Primitive) Equals(other SExp) bool {
	if otherprim, ok := other.(Primitive); ok {
		return fmt.Sprintf("%p", prim) == fmt.Sprintf("%p", otherprim)
	}
	return false
}

func (prim Primitive) String() string {
	return fmt.Sprintf("<primitive %p>", prim)
}

// Closure.

func (clr *Closure) Eval(ctx *Context) (SExp, error) {
	return clr, nil
}

func (clr *Closure) Call(ctx *Context, args []SExp) (SExp, error) {
	if len(clr.args) != len(args) {
		return nil, fmt.Errorf("closure %p requies %d arguments, but got %d",
			clr, len(clr.args), len(args))
	}

	// build namespace from clr.bind and args.
	backup := ctx.Scope
	ctx.Scope = make([]map[string]SExp, len(clr.bind)+1)
	copy(ctx.Scope, clr.bind)
	top := make(map[string]SExp)
	for i := range args {
		top[clr.args[i]] = args[i]
	}
	ctx.Scope[len(ctx.Scope)-1] = top

	// invoke inner SExp and recover namespace.
	ret, err := clr.body.Eval(ctx)
	ctx.Scope = backup
	return ret, err
}

func (clr *Closure) Equals(other SExp) bool {
	if otherclr, ok := other.(*Closure); ok {
		return clr == otherclr
	}
	return false
}

func (clr *Closure) String() string {
	return fmt.Sprintf("<closure %p>", clr)
}

// List.

func ListCons(items []SExp) List {
	return List(items)
}

func QuotedCons(quoted SExp) List {
	return List([]SExp{Symbol("quote"), quoted})
}

func (list List) Eval(ctx *Context) (SExp, error) {
	sexps := []SExp(list)

	// nil.
	if len(sexps) == 0 {
		return list, nil
	}

	// predefined syntax.
	if sym, ok := sexps[0].(Symbol); ok {
		switch strings.ToLower(string(sym)) {
		case "quote":
			if len(sexps) != 2 {
				return nil, fmt.Errorf("quote syntax requires exactly 1 argument")
			}
			return SyntaxQuote(ctx, sexps[1])
		case "if":
			if len(sexps) != 4 {
				return nil, fmt.Errorf("if syntax requires 3 arguments")
			}
			return SyntaxIf(ctx, sexps[1], sexps[2], sexps[3])
		case "and":
			return SyntaxAnd(ctx, sexps[1:])
		case "or":
			return SyntaxOr(ctx, sexps[1:])
		case "let":
			if len(sexps) != 3 {
				return nil, fmt.Errorf("let syntax requires 2 arguments")
			}
			return SyntaxLet(ctx, sexps[1], sexps[2])
		case "set":
			if len(sexps) != 3 {
				return nil, fmt.Errorf("set syntax requires 2 arguments")
			}
			return SyntaxSet(ctx, sexps[1], sexps[2])
		case "lambda":
			if len(sexps) != 3 {
				return nil, fmt.Errorf("lambda syntax requires 2 arguments")
			}
			return SyntaxLambda(ctx, sexps[1], sexps[2])
		}
	}

	// simple function call.
	evals := make([]SExp, len(sexps))
	for i := range sexps {
		var err error
		evals[i], err = sexps[i].Eval(ctx)
		if err != nil {
			return nil, err
		}
	}

	fn, ok := evals[0].(Callable)
	if !ok {
		return nil, fmt.Errorf("non-callable: %v", evals[0])
	}
	return fn.Call(ctx, evals[1:])
}

func (list List) Equals(other SExp) bool {
	if otherlist, ok := other.(List); ok {
		xs := []SExp(list)
		ys := []SExp(otherlist)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !xs[i].Equals(ys[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (list List) String() string {
	strs := make([]string, len([]SExp(list)))
	for i := range []SExp(list) {
		strs[i] = fmt.Sprint([]SExp(list)[i])
	}
	return fmt.Sprintf("(%s)", strings.Join(strs, " "))
}

// Predefined Syntax.

func SyntaxQuote(ctx *Context, quoted SExp) (SExp, error) {
	return quoted, nil
}

func SyntaxIf(ctx *Context, cond, yes, no SExp) (SExp, error) {
	evalcond, err := cond.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if b, ok := evalcond.(Boolean); ok {
		var ret SExp
		if bool(b) {
			ret, err = yes.Eval(ctx)
		} else {
			ret, err = no.Eval(ctx)
		}
		return ret, err
	}
	return nil, fmt.Errorf("if syntax requires condition to be a boolean, but got %v", evalcond)
}

func SyntaxAnd(ctx *Context, args []SExp) (SExp, error) {
	for _, arg := range args {
		evalarg, err := arg.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if b, ok := evalarg.(Boolean); ok {
			if !bool(b) {
				return Boolean(false), nil
			}
		} else {
			return nil, fmt.Errorf("and syntax requires arguments of boolean type, but got %v", evalarg)
		}
	}
	return Boolean(true), nil
}

func SyntaxOr(ctx *Context, args []SExp) (SExp, error) {
	for _, arg := range args {
		evalarg, err := arg.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if b, ok := evalarg.(Boolean); ok {
			if bool(b) {
				return Boolean(true), nil
			}
		} else {
			return nil, fmt.Errorf("or syntax requires arguments of boolean type, but got %v", evalarg)
		}
	}
	return Boolean(false), nil
}

func SyntaxLet(ctx *Context, bind, expr SExp) (SExp, error) {
	// parse bindings.
	bindings := make(map[string]SExp)
	if list, ok := bind.(List); ok {
		for _, i := range []SExp(list) {
			if pair, ok := i.(List); ok && len([]SExp(pair)) == 2 {
				ksym := []SExp(pair)[0]
				vexpr := []SExp(pair)[1]
				if name, ok := ksym.(Symbol); ok {
					bindings[strings.ToLower(string(name))] = vexpr
					continue
				}
			}
			return nil, fmt.Errorf("bad let syntax binding-pair %v", i)
		}
	} else {
		return nil, fmt.Errorf("let syntax requires binding-pairs, but got %v", bind)
	}

	// evaluate bindings and build namespace.
	top := make(map[string]SExp)
	ctx.Scope = append(ctx.Scope, top)
	for name, _ := range bindings {
		// initialize to nil.
		top[name] = List(nil)
	}
	for name, vexpr := range bindings {
		value, err := vexpr.Eval(ctx)
		if err != nil {
			return nil, err
		}
		top[name] = value
	}

	// evaluate inner SExpr and recover namespace.
	val, err := expr.Eval(ctx)
	ctx.Scope = ctx.Scope[:len(ctx.Scope)-1]
	return val, err
}

func SyntaxSet(ctx *Context, lhs, rhs SExp) (SExp, error) {
	var name string
	if sym, ok := lhs.(Symbol); ok {
		name = strings.ToLower(string(sym))
	} else {
		return nil, fmt.Errorf("set syntax requires a symbol in the left hand side, but got %v", lhs)
	}

	val, err := rhs.Eval(ctx)
	if err != nil {
		return nil, err
	}
	top := ctx.Scope[len(ctx.Scope)-1]
	top[name] = val
	return val, nil
}

func SyntaxLambda(ctx *Context, args, expr SExp) (SExp, error) {
	clr := &Closure{}

	// parse arguments.
	if list, ok := args.(List); ok {
		clr.args = make([]string, len([]SExp(list)))
		for i := range []SExp(list) {
			arg := []SExp(list)[i]
			if sym, ok := arg.(Symbol); ok {
				clr.args[i] = string(sym)
				continue
			}
			return nil, fmt.Errorf("bad lambda syntax argument %v", arg)
		}
	} else {
		return nil, fmt.Errorf("lambda syntax requires arguments list, but got %v", args)
	}

	// snapshot namespace.
	clr.bind = make([]map[string]SExp, len(ctx.Scope))
	copy(clr.bind, ctx.Scope)

	// build closure.
	clr.body = expr
	return clr, nil
}

// Context.

func NewContext(primitives map[string]SExp) *Context {
	scope := make([]map[string]SExp, 2)
	builtins := make(map[string]SExp)
	for k, v := range primitives {
		builtins[strings.ToLower(k)] = v
	}
	scope[0] = builtins
	scope[1] = make(map[string]SExp)
	return &Context{Scope: scope}
}

func (ctx *Context) Lookup(name string) SExp {
	name = strings.ToLower(name)
	for _, top := range ctx.Scope {
		if ret, ok := top[name]; ok {
			return ret
		}
	}
	return nil
}

// Predefined primitive.

func PrimitiveAdd(ctx *Context, args []SExp) (SExp, error) {
	acc := 0.0
	for _, arg := range args {
		if x, ok := arg.(Number); ok {
			acc += float64(x)
			continue
		}
		return nil, fmt.Errorf("'+' requires arguments of number type, but got %v", arg)
	}
	return Number(acc), nil
}

func PrimitiveSub(ctx *Context, args []SExp) (SExp, error) {
	acc := 0.0
	if len(args) > 1 {
		if x, ok := args[0].(Number); ok {
			acc = float64(x)
			args = args[1:]
		} else {
			return nil, fmt.Errorf("'-' requires arguments of number type, but got %v", args[0])
		}
	}

	for _, arg := range args {
		if x, ok := arg.(Number); ok {
			acc -= float64(x)
			continue
		}
		return nil, fmt.Errorf("'-' requires arguments of number type, but got %v", arg)
	}
	return Number(acc), nil
}

func PrimitiveMul(ctx *Context, args []SExp) (SExp, error) {
	acc := 1.0
	for _, arg := range args {
		if x, ok := arg.(Number); ok {
			acc *= float64(x)
			continue
		}
		return nil, fmt.Errorf("'*' requires arguments of number type, but got %v", arg)
	}
	return Number(acc), nil
}

func PrimitiveDiv(ctx *Context, args []SExp) (SExp, error) {
	acc := 1.0
	if len(args) > 1 {
		if x, ok := args[0].(Number); ok {
			acc = float64(x)
			args = args[1:]
		} else {
			return nil, fmt.Errorf("'/' requires arguments of number type, but got %v", args[0])
		}
	}

	for _, arg := range args {
		if x, ok := arg.(Number); ok {
			if float64(x) == 0.0 { // both negative and positive float64 zeroes
				return nil, fmt.Errorf("division by zero")
			}
			acc /= float64(x)
			continue
		}
		return nil, fmt.Errorf("'/' requires arguments of number type, but got %v", arg)
	}
	return Number(acc), nil
}

func PrimitiveLT(ctx *Context, args []SExp) (SExp, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("'<' requires two or more arguments, but got %d", len(args))
	}

	var last float64
	if x, ok := args[0].(Number); ok {
		last = float64(x)
		args = args[1:]
	} else {
		return nil, fmt.Errorf("'<' requires arguments of number type, but got %v", args[0])
	}

	for _, arg := range args {
		if x, ok := arg.(Number); ok {
			if !(last < float64(x)) {
				return Boolean(false), nil
			}
			continue
		}
		return nil, fmt.Errorf("'<' requires arguments of number type, but got %v", arg)
	}
	return Boolean(true), nil
}

func PrimitiveLE(ctx *Context, args []SExp) (SExp, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("'<=' requires two or more arguments, but got %d", len(args))
	}

	var last float64
	if x, ok := args[0].(Number); ok {
		last = float64(x)
		args = args[1:]
	} else {
		return nil, fmt.Errorf("'<=' requires arguments of number type, but got %v", args[0])
	}

	for _, arg := range args {
		if x, ok := arg.(Number); ok {
			if !(last <= float64(x)) {
				return Boolean(false), nil
			}
			continue
		}
		return nil, fmt.Errorf("'<=' requires arguments of number type, but got %v", arg)
	}
	return Boolean(true), nil
}

func PrimitiveEQ(ctx *Context, args []SExp) (SExp, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("'==' requires two or more arguments, but got %d", len(args))
	}

	var first = args[0]
	for _, arg := range args[1:] {
		if !first.Equals(arg) {
			return Boolean(false), nil
		}
	}
	return Boolean(true), nil
}

func PrimitiveNE(ctx *Context, args []SExp) (SExp, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("'!=' requires two or more arguments, but got %d", len(args))
	}

	var first = args[0]
	for _, arg := range args[1:] {
		if !first.Equals(arg) {
			return Boolean(true), nil
		}
	}
	return Boolean(false), nil
}

func PrimitiveGE(ctx *Context, args []SExp) (SExp, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("'>=' requires two or more arguments, but got %d", len(args))
	}

	var last float64
	if x, ok := args[0].(Number); ok {
		last = float64(x)
		args = args[1:]
	} else {
		return nil, fmt.Errorf("'>=' requires arguments of number type, but got %v", args[0])
	}

	for _, arg := range args {
		if x, ok := arg.(Number); ok {
			if !(last >= float64(x)) {
				return Boolean(false), nil
			}
			continue
		}
		return nil, fmt.Errorf("'>=' requires arguments of number type, but got %v", arg)
	}
	return Boolean(true), nil
}

func PrimitiveGT(ctx *Context, args []SExp) (SExp, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("'>' requires two or more arguments, but got %d", len(args))
	}

	var last float64
	if x, ok := args[0].(Number); ok {
		last = float64(x)
		args = args[1:]
	} else {
		return nil, fmt.Errorf("'>' requires arguments of number type, but got %v", args[0])
	}

	for _, arg := range args {
		if x, ok := arg.(Number); ok {
			if !(last > float64(x)) {
				return Boolean(false), nil
			}
			continue
		}
		return nil, fmt.Errorf("'>' requires arguments of number type, but got %v", arg)
	}
	return Boolean(true), nil
}

func PrimitiveNot(ctx *Context, args []SExp) (SExp, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("'not' requires exactly one arguments, but got %d", len(args))
	}

	if b, ok := args[0].(Boolean); ok {
		return Boolean(!bool(b)), nil
	}
	return nil, fmt.Errorf("'not' requires argument of boolean type, but got %v", args[0])
}

func PrimitiveList(ctx *Context, args []SExp) (SExp, error) {
	return List(args), nil
}

func PrimitiveDisplay(ctx *Context, args []SExp) (SExp, error) {
	strs := make([]string, len(args))
	for i := range args {
		strs[i] = fmt.Sprint(args[i])
	}
	fmt.Println(strings.Join(strs, " "))
	return List(nil), nil
}

// The read-evaluate-print loop.

func REPL(ctx *Context, expr string) (val SExp, isprefix bool, err error) {
	// parse.
	rt, err := sexpTable()
	if err != nil {
		return nil, false, err
	}
	tree, err := peg.Parse(rt, expr)
	if err != nil {
		// check if expr is incomplete.
		irt, ierr := incompleteTable()
		if ierr == nil {
			if _, perr := peg.Parse(irt, expr); perr == nil {
				return nil, true, nil
			}
		}
		return nil, false, err
	}
	node, ok := childNamed(tree, "sexp")
	if !ok {
		return nil, false, fmt.Errorf("malformed parse tree: %v", tree)
	}
	sexp, err := buildSExp(node)
	if err != nil {
		return nil, false, err
	}

	// evaluate.
	val, err = sexp.Eval(ctx)
	return val, false, err
}

func main() {
	buf := bufio.NewReader(os.Stdin)
	ctx := NewContext(Builtins)
	src := ""
	for {
		if src == "" {
			fmt.Print(">>> ")
		} else {
			fmt.Print("... ")
		}
		line, isprefix, err := buf.ReadLine()
		if err != nil {
			break
		}

		src += string(line) + "\n"
		if isprefix {
			continue
		}
		val, isprefix, err := REPL(ctx, src)
		if err != nil {
			src = ""
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if isprefix {
			continue
		}
		fmt.Println(val)
		src = ""
	}
}
