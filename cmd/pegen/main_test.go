package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Generate_SimpleExpressionGrammar(t *testing.T) {
	src := "start: expr NEWLINE\n" +
		"expr: '-' term | expr '+' term | term\n" +
		"term: NUMBER\n"

	code, err := generate(src, "calc", "Parser")
	require.NoError(t, err)

	assert.Contains(t, code, "package calc")
	assert.Contains(t, code, "func (h *Parser) Start() runtime.Result {")
	assert.Contains(t, code, "func (h *Parser) Expr() runtime.Result {")
	assert.Contains(t, code, "h.CallLeader(\"expr\"")
	assert.Contains(t, code, "h.ExpectToken(lex.NUMBER)")
}

func Test_Generate_RejectsUnresolvedReference(t *testing.T) {
	_, err := generate("start: missing\n", "calc", "Parser")
	assert.Error(t, err)
}

func Test_Vocabulary_RecognizesFixedTokenKinds(t *testing.T) {
	v := defaultVocabulary()
	assert.True(t, v.IsTokenKind("NUMBER"))
	assert.True(t, v.IsTokenKind("NAME"))
	assert.False(t, v.IsTokenKind("expr"))
	assert.False(t, v.IsTokenKind("CUSTOM"))
}
