package peg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesRejectsUndefinedStart(t *testing.T) {
	_, err := Rules("main", map[string]Expression{"other": Lit("x")})
	assert.Error(t, err)
}

func TestRulesRejectsUnresolvedReference(t *testing.T) {
	_, err := Rules("main", map[string]Expression{
		"main": RuleRef("missing"),
	})
	assert.Error(t, err)
}

func TestRulesAcceptsSelfReference(t *testing.T) {
	rt, err := Rules("main", map[string]Expression{
		"main": Or(And(Dot(), RuleRef("main")), EOF()),
	})
	require.NoError(t, err)

	_, err = Parse(rt, "abc")
	assert.NoError(t, err)
}
