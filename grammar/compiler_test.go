package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynpeg/dynpeg"
)

func TestCompileLiteralRule(t *testing.T) {
	rt, err := Compile("main = \"hello\"\n", "main")
	require.NoError(t, err)

	_, err = peg.Parse(rt, "hello")
	assert.NoError(t, err)

	_, err = peg.Parse(rt, "goodbye")
	assert.Error(t, err)
}

func TestCompileMatchAndRuleRefAndRepeat(t *testing.T) {
	src := "main = letter letter_or_num+\n" +
		"letter = [a-zA-Z]\n" +
		"letter_or_num = letter / number\n" +
		"number = [0-9]\n"

	rt, err := Compile(src, "main")
	require.NoError(t, err)

	_, err = peg.Parse(rt, "a2AA456bzJ88")
	assert.NoError(t, err)

	_, err = peg.Parse(rt, "2")
	assert.Error(t, err, "must start with a letter")
}

func TestCompileNegationDotAndRecursion(t *testing.T) {
	src := `main = (!"~" . main) / "~"` + "\n"

	rt, err := Compile(src, "main")
	require.NoError(t, err)

	_, err = peg.Parse(rt, "123456789~")
	assert.NoError(t, err)

	_, err = peg.Parse(rt, "123456789~abcd")
	assert.Error(t, err)
}

func TestCompileSingleQuoteLiteralHasNoEscapes(t *testing.T) {
	src := `main = '\n'` + "\n"

	rt, err := Compile(src, "main")
	require.NoError(t, err)

	// '\n' inside single quotes is the two literal characters
	// backslash, n -- not a newline.
	_, err = peg.Parse(rt, `\n`)
	assert.NoError(t, err)
}

func TestCompileDoubleQuoteLiteralDecodesEscapes(t *testing.T) {
	src := "main = \"a\\nb\"\n"

	rt, err := Compile(src, "main")
	require.NoError(t, err)

	_, err = peg.Parse(rt, "a\nb")
	assert.NoError(t, err)
}

func TestCompileHexEscape(t *testing.T) {
	src := `main = "\0x41"` + "\n"

	rt, err := Compile(src, "main")
	require.NoError(t, err)

	_, err = peg.Parse(rt, "A")
	assert.NoError(t, err)
}

func TestCompileModuleNamespacing(t *testing.T) {
	src := "mod {\n" +
		"  inner = \"x\"\n" +
		"}\n" +
		"root = mod.inner\n"

	rt, err := Compile(src, "root")
	require.NoError(t, err)

	_, err = peg.Parse(rt, "x")
	assert.NoError(t, err)
}

// error() is only valid syntax as the last alternative of a chain
// (or = and (_ "/" _ (error/or))?, and error itself does not recurse
// further) -- it reads as "none of the above, so fail with this
// message" rather than a freestanding atom.
func TestCompileErrorCutsChoice(t *testing.T) {
	src := `main = "b" / "c" / error("boom")` + "\n"

	rt, err := Compile(src, "main")
	require.NoError(t, err)

	_, err = peg.Parse(rt, "b")
	assert.NoError(t, err)

	_, err = peg.Parse(rt, "a")
	require.Error(t, err)
	pe, ok := err.(*peg.ParseError)
	require.True(t, ok)
	assert.Equal(t, peg.Critical, pe.Priority)
	assert.Equal(t, "boom", pe.Description)
}

func TestCompileUndefinedReferenceSuggestsCorrection(t *testing.T) {
	src := "main = lettre\n" +
		"letter = [a-zA-Z]\n"
	_, err := Compile(src, "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lettre")
	assert.Contains(t, err.Error(), "letter")
}
