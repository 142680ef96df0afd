package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatthieuDartiailh/pegen/internal/lex"
)

func tok(kind lex.Kind, text string) lex.Token {
	return lex.Token{Kind: kind, Text: text}
}

func newParserOver(tokens ...lex.Token) *Parser {
	return NewParser(lex.NewStream(lex.NewSliceProducer(tokens)))
}

// handParser hand-writes the methods an Emitter would generate for:
//
//	start: expr NEWLINE
//	expr: '-' term | expr '+' term | term
//	term: NUMBER
//
// expr is the leader of its own one-rule left-recursive SCC, matching
// spec.md §8's left-recursion example.
type handParser struct {
	*Parser
}

func (h *handParser) term() Result {
	return h.Call("term", func() Result {
		mark := h.Stream.Mark()
		if t, ok := h.Stream.Expect(lex.NUMBER); ok {
			return Success(t, h.Stream.Mark())
		}
		return Result{Ok: false, End: mark}
	})
}

func (h *handParser) expr() Result {
	return h.CallLeader("expr", func() Result {
		mark := h.Stream.Mark()

		// alt 1: '-' term
		if _, ok := h.Stream.ExpectLiteral("-"); ok {
			if t := h.term(); t.Ok {
				return Success([]any{"-", t.Value}, h.Stream.Mark())
			}
		}
		h.Stream.Reset(mark)

		// alt 2: expr '+' term
		if e := h.expr(); e.Ok {
			if _, ok := h.Stream.ExpectLiteral("+"); ok {
				if t := h.term(); t.Ok {
					return Success([]any{e.Value, "+", t.Value}, h.Stream.Mark())
				}
			}
		}
		h.Stream.Reset(mark)

		// alt 3: term
		if t := h.term(); t.Ok {
			return Success(t.Value, h.Stream.Mark())
		}
		return Result{Ok: false, End: mark}
	})
}

func (h *handParser) start() Result {
	return h.Call("start", func() Result {
		mark := h.Stream.Mark()
		if e := h.expr(); e.Ok {
			if _, ok := h.Stream.Expect(lex.NEWLINE); ok {
				return Success(e.Value, h.Stream.Mark())
			}
		}
		h.Stream.Reset(mark)
		return Result{Ok: false, End: mark}
	})
}

func Test_CallLeader_GrowsSeedAcrossLeftRecursion(t *testing.T) {
	// "1 + 2 + 3" NEWLINE
	p := newParserOver(
		tok(lex.NUMBER, "1"), tok(lex.OP, "+"), tok(lex.NUMBER, "2"), tok(lex.OP, "+"), tok(lex.NUMBER, "3"),
		tok(lex.NEWLINE, "\n"),
	)
	h := &handParser{p}

	result := h.start()
	require.True(t, result.Ok)
	assert.Equal(t, []any{
		[]any{tok(lex.NUMBER, "1"), "+", tok(lex.NUMBER, "2")},
		"+", tok(lex.NUMBER, "3"),
	}, result.Value)
}

func Test_CallLeader_SingleTermNoPlus(t *testing.T) {
	p := newParserOver(tok(lex.NUMBER, "7"), tok(lex.NEWLINE, "\n"))
	h := &handParser{p}

	result := h.start()
	require.True(t, result.Ok)
	assert.Equal(t, tok(lex.NUMBER, "7"), result.Value)
}

func Test_Call_MemoizesRepeatedCallsAtSamePosition(t *testing.T) {
	p := newParserOver(tok(lex.NUMBER, "5"))
	h := &handParser{p}

	calls := 0
	wrapped := func() Result {
		calls++
		mark := h.Stream.Mark()
		if t, ok := h.Stream.Expect(lex.NUMBER); ok {
			return Success(t, h.Stream.Mark())
		}
		return Result{Ok: false, End: mark}
	}

	first := h.Call("term", wrapped)
	h.Stream.Reset(0)
	second := h.Call("term", wrapped)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "body should only run once per (rule, position)")
}

func Test_Call_NoConsumeOnFail(t *testing.T) {
	p := newParserOver(tok(lex.STRING, "nope"))
	h := &handParser{p}

	before := h.Stream.Mark()
	result := h.term()
	assert.False(t, result.Ok)
	assert.Equal(t, before, h.Stream.Mark())
}

// Test_Cut_CommitsAlternative mirrors spec.md §8's cut example:
// start: '(' ~ expr ')'; expr: NUMBER
// On "(1)" this succeeds; on "(1" the cut prevents backing out of the
// first alternative once past the '(', so there is no other alternative
// to try and the Rhs fails outright.
func Test_Cut_CommitsAlternative(t *testing.T) {
	parseParenExpr := func(h *handParser) Result {
		return h.Call("start", func() Result {
			mark := h.Stream.Mark()
			var commit Commit

			if _, ok := h.Stream.ExpectLiteral("("); ok {
				commit.Cut()
				if e := h.term(); e.Ok {
					if _, ok := h.Stream.ExpectLiteral(")"); ok {
						return Success(e.Value, h.Stream.Mark())
					}
				}
			}

			if commit.Committed() {
				// Rhs failure: no other alternative is tried.
				return Result{Ok: false, End: mark}
			}
			h.Stream.Reset(mark)
			return Result{Ok: false, End: mark}
		})
	}

	ok := &handParser{newParserOver(tok(lex.OP, "("), tok(lex.NUMBER, "1"), tok(lex.OP, ")"))}
	result := parseParenExpr(ok)
	assert.True(t, result.Ok)

	fail := &handParser{newParserOver(tok(lex.OP, "("), tok(lex.NUMBER, "1"))}
	result = parseParenExpr(fail)
	assert.False(t, result.Ok)
}

func Test_Lookahead_PositiveConsumesNoInput(t *testing.T) {
	p := newParserOver(tok(lex.NUMBER, "1"))
	h := &handParser{p}

	before := h.Stream.Mark()
	result := h.Lookahead(true, h.term)
	assert.True(t, result.Ok)
	assert.Equal(t, before, h.Stream.Mark())
}

func Test_Lookahead_Negative(t *testing.T) {
	p := newParserOver(tok(lex.STRING, "x"))
	h := &handParser{p}

	result := h.Lookahead(false, h.term)
	assert.True(t, result.Ok)
}

func Test_Opt_NeverFails(t *testing.T) {
	p := newParserOver(tok(lex.STRING, "x"))
	h := &handParser{p}

	before := h.Stream.Mark()
	result := h.Opt(h.term)
	assert.True(t, result.Ok)
	assert.Nil(t, result.Value)
	assert.Equal(t, before, h.Stream.Mark())
}

func Test_Repeat1_RequiresAtLeastOne(t *testing.T) {
	p := newParserOver(tok(lex.NUMBER, "1"), tok(lex.NUMBER, "2"), tok(lex.STRING, "x"))
	h := &handParser{p}

	result := h.Repeat1(h.term)
	require.True(t, result.Ok)
	assert.Equal(t, []any{tok(lex.NUMBER, "1"), tok(lex.NUMBER, "2")}, result.Value)

	empty := &handParser{newParserOver(tok(lex.STRING, "x"))}
	result = empty.Repeat1(empty.term)
	assert.False(t, result.Ok)
}

func Test_TryAlts_StopsAtFirstSuccess(t *testing.T) {
	p := newParserOver(tok(lex.NUMBER, "1"))
	h := &handParser{p}

	tried := []string{}
	result := h.TryAlts(h.Stream.Mark(),
		func(c *Commit) Result {
			tried = append(tried, "a")
			return Result{Ok: false, End: h.Stream.Mark()}
		},
		func(c *Commit) Result {
			tried = append(tried, "b")
			return h.term()
		},
		func(c *Commit) Result {
			tried = append(tried, "c")
			return h.term()
		},
	)

	assert.True(t, result.Ok)
	assert.Equal(t, []string{"a", "b"}, tried)
}

func Test_TryAlts_CommitPreventsLaterAlts(t *testing.T) {
	p := newParserOver(tok(lex.OP, "("), tok(lex.NUMBER, "1"))
	h := &handParser{p}

	mark := h.Stream.Mark()
	result := h.TryAlts(mark,
		func(c *Commit) Result {
			if _, ok := h.Stream.ExpectLiteral("("); !ok {
				return Result{Ok: false, End: mark}
			}
			c.Cut()
			// ')' is never present in the input, so this alt fails after
			// the cut has committed.
			if _, ok := h.Stream.ExpectLiteral(")"); !ok {
				return Result{Ok: false, End: mark}
			}
			return Success(nil, h.Stream.Mark())
		},
		func(c *Commit) Result {
			t.Fatal("second alt must not run once the first has committed")
			return Result{Ok: false, End: mark}
		},
	)

	assert.False(t, result.Ok)
}

func Test_Gather_CollectsSeparatedElements(t *testing.T) {
	p := newParserOver(
		tok(lex.NUMBER, "1"), tok(lex.OP, ","), tok(lex.NUMBER, "2"), tok(lex.OP, ","), tok(lex.NUMBER, "3"),
	)
	h := &handParser{p}

	sep := func() Result {
		mark := h.Stream.Mark()
		if _, ok := h.Stream.ExpectLiteral(","); ok {
			return Success(nil, h.Stream.Mark())
		}
		return Result{Ok: false, End: mark}
	}

	result := h.Gather(sep, h.term)
	require.True(t, result.Ok)
	assert.Equal(t, []any{tok(lex.NUMBER, "1"), tok(lex.NUMBER, "2"), tok(lex.NUMBER, "3")}, result.Value)
}
