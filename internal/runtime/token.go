package runtime

import "github.com/MatthieuDartiailh/pegen/internal/lex"

// ExpectToken matches a single token of the given Kind at the current
// position, binding the matched Token itself (not just its text) as
// the Result's value, per spec.md's "success binds the Token" contract.
func (p *Parser) ExpectToken(kind lex.Kind) Result {
	mark := p.Stream.Mark()
	tok, ok := p.Stream.Expect(kind)
	if !ok {
		return Result{Ok: false, End: mark}
	}
	return Success(tok, p.Stream.Mark())
}

// ExpectLiteral matches a single token whose text equals lit at the
// current position, binding the matched Token itself as the Result's
// value.
func (p *Parser) ExpectLiteral(lit string) Result {
	mark := p.Stream.Mark()
	tok, ok := p.Stream.ExpectLiteral(lit)
	if !ok {
		return Result{Ok: false, End: mark}
	}
	return Success(tok, p.Stream.Mark())
}
