package runtime

import "github.com/MatthieuDartiailh/pegen/internal/lex"

// Result is the outcome of attempting to parse a rule or item: Ok
// reports success, Value carries the parsed value (nil for items with
// no value, such as Cut or a lookahead), and End is the cursor position
// immediately after a successful parse. A failed Result's End is
// meaningless; callers always reset to the mark they took before
// trying, per spec.md §4.4's no-consume-on-fail invariant.
type Result struct {
	Value any
	Ok    bool
	End   lex.Mark
}

// Fail is the zero-value failed Result, readable at call sites without
// constructing a literal.
var Fail = Result{}

// Success wraps value as a successful Result ending at end.
func Success(value any, end lex.Mark) Result {
	return Result{Value: value, Ok: true, End: end}
}

type memoKey struct {
	rule string
	pos  lex.Mark
}

// memoTable is the packrat cache of spec.md §3's "Memo table (runtime)":
// keyed by (rule, input position), it lets every rule invoked through
// Call run its body at most once per position for the lifetime of a
// parse. A leader rule invoked through CallLeader reruns its body at the
// same position while growing its seed, overwriting its entry each time.
type memoTable map[memoKey]Result

func newMemoTable() memoTable {
	return memoTable{}
}

func (m memoTable) get(rule string, pos lex.Mark) (Result, bool) {
	r, ok := m[memoKey{rule: rule, pos: pos}]
	return r, ok
}

func (m memoTable) set(rule string, pos lex.Mark, r Result) {
	m[memoKey{rule: rule, pos: pos}] = r
}
