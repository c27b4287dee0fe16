package peg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRules(t *testing.T, start string, rules map[string]Expression) *RuleTable {
	t.Helper()
	rt, err := Rules(start, rules)
	require.NoError(t, err)
	return rt
}

// S1: main = "aaaa"
func TestScenarioS1(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": Lit("aaaa"),
	})

	got, err := Parse(rt, "aaaa")
	require.NoError(t, err)
	want := RuleNode("main", []Node{ValNode("aaaa")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	_, err = Parse(rt, "aaa")
	assert.Error(t, err)
}

// S2: main = letter letter_or_num+ ; letter = [a-zA-Z] ; letter_or_num = letter / number ; number = [0-9]
func TestScenarioS2(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main":          And(RuleRef("letter"), Rep(RuleRef("letter_or_num"), 1)),
		"letter":        Match("", [2]rune{'a', 'z'}, [2]rune{'A', 'Z'}),
		"letter_or_num": Or(RuleRef("letter"), RuleRef("number")),
		"number":        Match("", [2]rune{'0', '9'}),
	})

	_, err := Parse(rt, "a2AA456bzJ88")
	assert.NoError(t, err)
}

// S3: main = "a" ("bc" "c" / "bcdd" / b_and_c d_or_z) ; b_and_c = "b" "c" ; d_or_z = "d" / "z"
func TestScenarioS3(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": And(
			Lit("a"),
			Or(
				And(Lit("bc"), Lit("c")),
				Lit("bcdd"),
				And(RuleRef("b_and_c"), RuleRef("d_or_z")),
			),
		),
		"b_and_c": And(Lit("b"), Lit("c")),
		"d_or_z":  Or(Lit("d"), Lit("z")),
	})

	_, err := Parse(rt, "abcz")
	assert.NoError(t, err)

	_, err = Parse(rt, "bczd")
	assert.Error(t, err)
}

// S4: main = (!"~" . main) / "~"
func TestScenarioS4(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": Or(
			And(Not(Lit("~")), Dot(), RuleRef("main")),
			Lit("~"),
		),
	})

	_, err := Parse(rt, "123456789~")
	assert.NoError(t, err)

	_, err = Parse(rt, "123456789~abcd")
	assert.Error(t, err, "trailing input after the terminating ~ must not be consumed")
}

// S5: root = a ; a = _1 _2 ; _1 = "x" ; _2 = "y"
// parse "xy", then pass_through_except(["root","a"]), then compact.
func TestScenarioS5TransformPipeline(t *testing.T) {
	rt := mustRules(t, "root", map[string]Expression{
		"root": RuleRef("a"),
		"a":    And(RuleRef("_1"), RuleRef("_2")),
		"_1":   Lit("x"),
		"_2":   Lit("y"),
	})

	tree, err := Parse(rt, "xy")
	require.NoError(t, err)

	kept := map[string]bool{"root": true, "a": true}
	transformed := Compact(PassThroughExcept(tree, kept))

	want := RuleNode("root", []Node{RuleNode("a", []Node{ValNode("xy")})})
	if diff := cmp.Diff(want, transformed); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// S6: main = error("boom") / "a" ; input "a" still fails, with "boom".
func TestScenarioS6CriticalCutsChoice(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": Or(ErrorAtom("boom"), Lit("a")),
	})

	_, err := Parse(rt, "a")
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, Critical, pe.Priority)
	assert.Equal(t, "boom", pe.Description)
}

// Property #1: a successful literal match advances position by len(s).
func TestPropertyLiteralConsumesLength(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{"main": Lit("hello")})
	_, err := Parse(rt, "hello")
	require.NoError(t, err)
}

// Property #2: And with one child behaves identically to that child.
func TestPropertySequenceSingletonIdentity(t *testing.T) {
	direct := mustRules(t, "main", map[string]Expression{"main": Lit("x")})
	wrapped := mustRules(t, "main", map[string]Expression{"main": And(Lit("x"))})

	d, errD := Parse(direct, "x")
	w, errW := Parse(wrapped, "x")
	require.NoError(t, errD)
	require.NoError(t, errW)
	assert.True(t, cmp.Equal(d.Children, w.Children))
}

// Property #3: Choice commits to the first success, even if a later
// alternative would also match.
func TestPropertyChoiceOrdering(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": Or(Lit("a"), Lit("a")),
	})
	got, err := Parse(rt, "a")
	require.NoError(t, err)
	assert.Equal(t, RuleNode("main", []Node{ValNode("a")}), got)
}

// Property #4: Not is zero-width: it consumes nothing and produces no
// children on success.
func TestPropertyNotIsZeroWidth(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": And(Not(Lit("b")), Lit("a")),
	})
	got, err := Parse(rt, "a")
	require.NoError(t, err)
	assert.Equal(t, RuleNode("main", []Node{ValNode("a")}), got)
}

// Property #5: Repeat bounds the number of inner matches to [min, max].
func TestPropertyRepeatBounds(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": And(Rep(Lit("a"), 2, 3), EOF()),
	})
	_, err := Parse(rt, "a")
	assert.Error(t, err, "below min must fail")

	_, err = Parse(rt, "aa")
	assert.NoError(t, err)

	_, err = Parse(rt, "aaa")
	assert.NoError(t, err)

	_, err = Parse(rt, "aaaa")
	assert.Error(t, err, "above max leaves trailing input, which EOF then rejects")
}

// Property #10: a Critical error inside Or short-circuits the whole
// choice instead of falling through to a later alternative that would
// otherwise match.
func TestPropertyCriticalShortCircuitsChoice(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": Or(ErrorAtom("x"), Lit("a")),
	})
	_, err := Parse(rt, "a")
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, Critical, pe.Priority)
}

func TestDeepestErrorSurfacesAtTopLevel(t *testing.T) {
	rt := mustRules(t, "main", map[string]Expression{
		"main": Or(
			And(Lit("ab"), Lit("x")),
			And(Lit("a"), Lit("y")),
		),
	})
	_, err := Parse(rt, "abz")
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, 2, pe.Pos.Offset, "the deeper failing branch (ab|x) should win over (a|y)")
}
