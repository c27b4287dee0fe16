package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynpeg/dynpeg"
)

// TestMetaGrammarParsesItsOwnDialect is a partial self-hosting check
// (Testable Property #9): a handful of the meta-grammar's own
// productions, re-expressed as grammar text, parse under the very
// same meta-grammar table. A full fixpoint (transcribing all of its
// own productions as one grammar file and diffing the resulting table
// against metaGrammarTable) is out of scope here; this exercises the
// same bootstrap property on a representative slice.
func TestMetaGrammarParsesItsOwnDialect(t *testing.T) {
	cases := []string{
		"dot = .\n",
		"eol = \"\\r\\n\" / \"\\n\" / \"\\r\"\n",
		"symbol = [_a-zA-Z0-9] [_'\"a-zA-Z0-9]*\n",
	}
	for _, src := range cases {
		_, err := peg.Parse(metaGrammarTable, src)
		assert.NoError(t, err, "meta-grammar must parse %q", src)
	}
}

func TestMetaGrammarRejectsMalformedGrammarText(t *testing.T) {
	_, err := peg.Parse(metaGrammarTable, "main == \"x\"\n")
	assert.Error(t, err)
}

// The meta-grammar rule table itself must pass the same structural
// validation every compiled grammar does.
func TestMetaGrammarTableIsWellFormed(t *testing.T) {
	rt := metaGrammar()
	require.NotNil(t, rt)
	assert.Equal(t, "main", rt.StartRule())
}
