package pegerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GrammarError_Error(t *testing.T) {
	testCases := []struct {
		name string
		err  *GrammarError
		want string
	}{
		{
			name: "with rule",
			err:  NewGrammarError(DanglingReference, "expr", `undefined rule "term"`),
			want: `DanglingReference: rule "expr": undefined rule "term"`,
		},
		{
			name: "without rule",
			err:  NewGrammarError(MissingStart, "", "grammar declares no start rule"),
			want: "MissingStart: grammar declares no start rule",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func Test_GrammarError_UnwrapsToSentinel(t *testing.T) {
	testCases := []struct {
		name     string
		kind     Kind
		sentinel error
	}{
		{"missing start", MissingStart, ErrMissingStart},
		{"dangling reference", DanglingReference, ErrDanglingReference},
		{"unknown token", UnknownToken, ErrUnknownToken},
		{"invalid named lookahead", InvalidNamedLookahead, ErrInvalidNamedLookahead},
		{"no leader", NoLeader, ErrNoLeader},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewGrammarError(tc.kind, "somerule", "detail")
			assert.True(t, errors.Is(err, tc.sentinel))
		})
	}
}

func Test_Kind_String_UnknownKindFallsBackToGrammarError(t *testing.T) {
	assert.Equal(t, "GrammarError", Kind(999).String())
}

func Test_Position_String(t *testing.T) {
	assert.Equal(t, "3:14", Position{Line: 3, Col: 14}.String())
}

func Test_NewSyntaxError_ErrorUsesHumanMessageWhenNoTechnicalSet(t *testing.T) {
	err := NewSyntaxError(Position{Line: 1, Col: 5}, `expected NUMBER but got ")"`)
	assert.Equal(t, `syntax error at 1:5: expected NUMBER but got ")"`, err.Error())
}

func Test_NewSyntaxErrorf_FormatsHumanMessage(t *testing.T) {
	err := NewSyntaxErrorf(Position{Line: 2, Col: 1}, "expected %s but got %q", "NUMBER", ")")
	assert.Equal(t, `syntax error at 2:1: expected NUMBER but got ")"`, err.Error())
}

func Test_WrapSyntaxError_PrefersTechnicalMessageAndUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := WrapSyntaxError(cause, Position{Line: 4, Col: 2}, "human message", "technical message")

	assert.Equal(t, "technical message", err.Error())
	require.True(t, errors.Is(err, cause))
	assert.Equal(t, "human message", err.Human)
}
