// Package ast defines the grammar model: the typed tree of rules and
// parsing expressions that the Analyzer annotates and the Emitter
// renders. It is the single data model shared by every other package
// in this module.
package ast

// Item is a parsing expression. It is a closed sum type: every
// implementation lives in this file, and every consumer is expected to
// switch exhaustively over the concrete types rather than add new ones
// through an open interface.
type Item interface {
	itemNode()
}

// NameLeaf references a rule or a token kind by name. Which one it is
// isn't decided here — the token classifier of spec.md §6 (an
// all-uppercase name matching a known token kind is a token reference,
// otherwise a rule reference) is applied by the Analyzer when it
// resolves references, not baked into the AST node.
type NameLeaf struct {
	Name string
}

func (NameLeaf) itemNode() {}

// StringLeaf matches a token whose text equals Literal.
type StringLeaf struct {
	Literal string
}

func (StringLeaf) itemNode() {}

// Group is a parenthesized sub-expression.
type Group struct {
	Rhs Rhs
}

func (Group) itemNode() {}

// Opt succeeds with an absent value when Item fails.
type Opt struct {
	Item Item
}

func (Opt) itemNode() {}

// Repeat0 is greedy zero-or-more.
type Repeat0 struct {
	Item Item
}

func (Repeat0) itemNode() {}

// Repeat1 is greedy one-or-more; it fails on zero matches.
type Repeat1 struct {
	Item Item
}

func (Repeat1) itemNode() {}

// Gather is one-or-more Element separated by Separator. Separator
// matches are discarded from the result.
type Gather struct {
	Separator Item
	Element   Item
}

func (Gather) itemNode() {}

// Sign distinguishes positive from negative Lookahead.
type Sign int

const (
	Positive Sign = iota
	Negative
)

func (s Sign) String() string {
	if s == Negative {
		return "!"
	}
	return "&"
}

// Lookahead consumes no input and succeeds according to Sign: Positive
// succeeds iff Atom would succeed, Negative iff it would fail.
type Lookahead struct {
	Sign Sign
	Atom Item
}

func (Lookahead) itemNode() {}

// Cut commits the enclosing Alt: once it has been evaluated, failure of
// a later item in the same Alt propagates as failure of the whole Rhs
// rather than falling through to the next alternative.
type Cut struct{}

func (Cut) itemNode() {}
