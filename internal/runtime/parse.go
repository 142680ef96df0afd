package runtime

import (
	"github.com/MatthieuDartiailh/pegen/internal/lex"
	"github.com/MatthieuDartiailh/pegen/internal/pegerrors"
)

// Parse runs start, the generated parser's top-level rule method, and
// converts a parse failure into a *pegerrors.SyntaxError built from the
// furthest position p's Stream reached, per spec.md §7's dynamic error
// regime. A start rule that succeeds without consuming the input up to
// ENDMARKER is reported the same way. On success it returns the start
// rule's bound value.
func Parse(p *Parser, start func() Result) (any, error) {
	result := start()
	if !result.Ok || p.Stream.Peek().Kind != lex.ENDMARKER {
		return nil, p.syntaxError()
	}
	return result.Value, nil
}

// syntaxError reports the token at Furthest(), the highest position the
// cursor reached before backtracking unwound it.
func (p *Parser) syntaxError() *pegerrors.SyntaxError {
	tok := p.Stream.TokenAt(p.Furthest())
	pos := pegerrors.Position{Line: tok.Span.Start.Line, Col: tok.Span.Start.Col}
	if tok.Kind == lex.ENDMARKER {
		return pegerrors.NewSyntaxErrorf(pos, "unexpected end of input")
	}
	return pegerrors.NewSyntaxErrorf(pos, "unexpected %s %q", tok.Kind, tok.Text)
}
