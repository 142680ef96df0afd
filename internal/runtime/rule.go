package runtime

import "github.com/MatthieuDartiailh/pegen/internal/lex"

// Call implements spec.md §4.4's ordinary rule-invocation protocol: a
// memoized call that runs body at most once per (name, position). body
// must itself reset the stream to the mark it was given on failure;
// Call double-checks this so a misbehaving generated body can't corrupt
// later parses.
func (p *Parser) Call(name string, body func() Result) Result {
	mark := p.Stream.Mark()
	if cached, ok := p.memo.get(name, mark); ok {
		p.trace("%s @ %d: memo hit (ok=%v)", name, mark, cached.Ok)
		p.Stream.Reset(cached.End)
		return cached
	}

	p.trace("%s @ %d: enter", name, mark)
	result := body()
	if !result.Ok {
		result = Result{Ok: false, End: mark}
		p.Stream.Reset(mark)
	}
	p.memo.set(name, mark, result)
	p.trace("%s @ %d: exit (ok=%v, end=%d)", name, mark, result.Ok, result.End)
	return result
}

// CallLeader implements spec.md §4.4's seed-growing protocol for the one
// rule elected leader of a left-recursive SCC. It seeds the memo with a
// failing entry at the call position, then repeatedly reparses from
// scratch, keeping each attempt that ends strictly further than the
// previous best, until an attempt fails to progress. Recursive calls to
// name made by body (directly, or transitively through other members of
// its SCC) see the seed through the ordinary memo lookup in Call, which
// is what bounds the recursion and lets each iteration grow past the
// last.
func (p *Parser) CallLeader(name string, body func() Result) Result {
	mark := p.Stream.Mark()
	if cached, ok := p.memo.get(name, mark); ok {
		p.Stream.Reset(cached.End)
		return cached
	}

	best := Result{Ok: false, End: mark}
	p.memo.set(name, mark, best)
	p.trace("%s @ %d: seeding left recursion", name, mark)

	for {
		p.Stream.Reset(mark)
		candidate := body()
		if !candidate.Ok || !endsFurther(candidate.End, best.End) {
			break
		}
		best = candidate
		p.memo.set(name, mark, best)
		p.trace("%s @ %d: grew seed to end=%d", name, mark, best.End)
	}

	p.memo.set(name, mark, best)
	p.Stream.Reset(best.End)
	if !best.Ok {
		p.Stream.Reset(mark)
	}
	p.trace("%s @ %d: seed grown to ok=%v, end=%d", name, mark, best.Ok, best.End)
	return best
}

func endsFurther(candidate, current lex.Mark) bool {
	return candidate > current
}
