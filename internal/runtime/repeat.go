package runtime

// Opt implements the Opt item: try item once; on failure, reset and
// succeed with a nil value instead of propagating the failure. Opt
// itself never fails.
func (p *Parser) Opt(item func() Result) Result {
	mark := p.Stream.Mark()
	r := item()
	if !r.Ok {
		p.Stream.Reset(mark)
		return Success(nil, mark)
	}
	return r
}

// Repeat0 implements the Repeat0 item: parse item zero or more times,
// collecting each value, stopping (without failing) at the first
// attempt that does not succeed. Repeat0 never fails.
func (p *Parser) Repeat0(item func() Result) Result {
	values := []any{}
	end := p.Stream.Mark()
	for {
		mark := p.Stream.Mark()
		r := item()
		if !r.Ok {
			p.Stream.Reset(mark)
			break
		}
		values = append(values, r.Value)
		end = r.End
	}
	return Success(values, end)
}

// Repeat1 implements the Repeat1 item: like Repeat0, but fails if item
// never succeeded even once.
func (p *Parser) Repeat1(item func() Result) Result {
	start := p.Stream.Mark()
	r := p.Repeat0(item)
	values := r.Value.([]any)
	if len(values) == 0 {
		p.Stream.Reset(start)
		return Result{Ok: false, End: start}
	}
	return r
}

// Gather implements the Gather item: one element, then zero or more
// (separator element) pairs, collecting only the element values. Fails
// if the first element does not parse.
func (p *Parser) Gather(separator, element func() Result) Result {
	start := p.Stream.Mark()
	first := element()
	if !first.Ok {
		p.Stream.Reset(start)
		return Result{Ok: false, End: start}
	}

	values := []any{first.Value}
	end := first.End
	for {
		mark := p.Stream.Mark()
		sep := separator()
		if !sep.Ok {
			p.Stream.Reset(mark)
			break
		}
		next := element()
		if !next.Ok {
			p.Stream.Reset(mark)
			break
		}
		values = append(values, next.Value)
		end = next.End
	}
	return Success(values, end)
}
