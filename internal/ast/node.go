package ast

// NamedItem is an Item with an optional binding name for use in an
// action expression's environment.
type NamedItem struct {
	// Name is the explicit binding, or "" if the item is unnamed (its
	// visible_name is computed instead, see VisibleName).
	Name string
	Item Item
}

// Alt is one alternative: an ordered sequence of items tried
// left-to-right, plus an optional action. PEG ordered choice means the
// first Alt of an Rhs that succeeds at a position wins; later Alts are
// never attempted at that position.
type Alt struct {
	Items []NamedItem

	// Action is opaque user text, reproduced verbatim by the Emitter.
	// Empty means no action: the Alt's value is the plain tuple of its
	// item values (see spec.md §4.4, "Result value shapes").
	Action string
}

// Rhs is an ordered, non-empty list of alternatives.
type Rhs []Alt
