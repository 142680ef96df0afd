package runtime

import "github.com/MatthieuDartiailh/pegen/internal/lex"

// Commit tracks whether a Cut has fired within the Alt currently being
// evaluated. TryAlts declares one Commit per Rhs and passes it into each
// Alt attempt; an Alt that fails after the Commit is set reports Rhs failure instead
// of letting the caller try the next Alt, per spec.md §4.4's
// alternative-evaluation rule.
type Commit struct {
	committed bool
}

// Cut records that a Cut item has succeeded in the Alt currently being
// evaluated. It always succeeds and consumes no input. Commit holds no
// stream, so the returned Result's End is 0 rather than the cursor
// position.
func (c *Commit) Cut() Result {
	c.committed = true
	return Success(nil, 0)
}

// Committed reports whether Cut has fired.
func (c *Commit) Committed() bool {
	return c.committed
}

// TryAlts implements spec.md §4.4's alternative-evaluation rule for a
// whole Rhs: try each alt in order from mark, resetting between
// attempts, stopping at the first success. A Cut inside an alt sets the
// shared Commit that alt receives; if that alt then fails, TryAlts does
// not try any later alt and reports Rhs failure instead.
func (p *Parser) TryAlts(mark lex.Mark, alts ...func(*Commit) Result) Result {
	var commit Commit
	for _, tryAlt := range alts {
		p.Stream.Reset(mark)
		r := tryAlt(&commit)
		if r.Ok {
			return r
		}
		if commit.Committed() {
			break
		}
	}
	p.Stream.Reset(mark)
	return Result{Ok: false, End: mark}
}

// Lookahead implements spec.md §4.4's lookahead evaluation: try is run
// from the current position and the stream is always reset to that
// position afterward, regardless of outcome. A positive lookahead
// succeeds iff try succeeds; a negative one succeeds iff try fails.
func (p *Parser) Lookahead(positive bool, try func() Result) Result {
	mark := p.Stream.Mark()
	r := try()
	p.Stream.Reset(mark)

	ok := r.Ok
	if !positive {
		ok = !ok
	}
	if !ok {
		return Result{Ok: false, End: mark}
	}
	return Success(nil, mark)
}
