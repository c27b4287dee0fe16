package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunParseSucceeds(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeTemp(t, dir, "g.peg", "main = \"hello\"\n")
	inputPath := writeTemp(t, dir, "in.txt", "hello")

	var buf bytes.Buffer
	err := runParse(&buf, &parseFlags{grammarPath: grammarPath, inputPath: inputPath, start: "main"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(main")
	assert.Contains(t, buf.String(), `"hello"`)
}

func TestRunParseReportsFailure(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeTemp(t, dir, "g.peg", "main = \"hello\"\n")
	inputPath := writeTemp(t, dir, "in.txt", "goodbye")

	var buf bytes.Buffer
	err := runParse(&buf, &parseFlags{grammarPath: grammarPath, inputPath: inputPath, start: "main"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "[normal]")
}

func TestRunParseInfersStartRuleWhenOmitted(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeTemp(t, dir, "g.peg", "main = \"x\"\n")
	inputPath := writeTemp(t, dir, "in.txt", "x")

	var buf bytes.Buffer
	err := runParse(&buf, &parseFlags{grammarPath: grammarPath, inputPath: inputPath})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(main")
}

func TestRunParseRequiresGrammarFlag(t *testing.T) {
	var buf bytes.Buffer
	err := runParse(&buf, &parseFlags{inputPath: "-"})
	assert.Error(t, err)
}
