package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEmitProducesCombinatorSource(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeTemp(t, dir, "g.peg", "main = \"hello\"\n")

	var buf bytes.Buffer
	err := runEmit(&buf, &emitFlags{grammarPath: grammarPath})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"main": peg.Lit("hello")`)
}

func TestRunEmitRequiresGrammarFlag(t *testing.T) {
	var buf bytes.Buffer
	err := runEmit(&buf, &emitFlags{})
	assert.Error(t, err)
}
