package diagnostic

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynpeg/dynpeg"
)

func TestReportFormatsParseError(t *testing.T) {
	rt, err := peg.Rules("main", map[string]peg.Expression{"main": peg.Lit("a")})
	assert.NoError(t, err)

	_, perr := peg.Parse(rt, "b")
	assert.Error(t, perr)

	var buf bytes.Buffer
	Report(&buf, perr)
	assert.Contains(t, buf.String(), "[normal]")
}

func TestReportFallsBackForPlainErrors(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, errors.New("boom"))
	assert.Equal(t, "boom\n", buf.String())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("plain")))

	rt, _ := peg.Rules("main", map[string]peg.Expression{"main": peg.ErrorAtom("boom")})
	_, perr := peg.Parse(rt, "x")
	assert.Equal(t, 2, ExitCode(perr))
}
