package ast

import (
	"strings"

	"github.com/MatthieuDartiailh/pegen/internal/util"
)

// TokenClassifier distinguishes a token-kind reference from a rule
// reference for an all-uppercase NameLeaf, per spec.md §6: "an
// all-uppercase name that matches a known token kind is a token
// reference; otherwise it is a rule reference".
type TokenClassifier interface {
	IsTokenKind(name string) bool
}

// isAllUpper reports whether name is written in the all-uppercase style
// used for token-kind references (NAME, NUMBER, a user's OP alias, ...).
func isAllUpper(name string) bool {
	if name == "" {
		return false
	}
	return name == strings.ToUpper(name)
}

// IsTokenReference reports whether a NameLeaf with this name is a token
// reference rather than a rule reference.
func IsTokenReference(name string, tc TokenClassifier) bool {
	return isAllUpper(name) && tc.IsTokenKind(name)
}

// VisibleName is the name used to bind a sub-result for action
// expressions: the explicit binding if present, else a canonicalized
// default.
func VisibleName(ni NamedItem) string {
	if ni.Name != "" {
		return ni.Name
	}
	switch v := ni.Item.(type) {
	case NameLeaf:
		return v.Name
	case StringLeaf:
		return "_literal"
	case Group:
		return "_group"
	case Opt:
		return "_opt"
	case Repeat0:
		return "_repeat"
	case Repeat1:
		return "_repeat"
	case Gather:
		return "_gather"
	case Lookahead:
		return "_lookahead"
	case Cut:
		return "_cut"
	default:
		return "_item"
	}
}

// ItemNullable reports whether item can succeed while consuming zero
// tokens. g and tc resolve NameLeaf references to a rule's current
// Nullable flag or to "tokens are never nullable"; during the
// Analyzer's fixed-point pass g's flags may still be converging, which
// is the point — repeated calls monotonically approach the least fixed
// point.
func ItemNullable(item Item, g *Grammar, tc TokenClassifier) bool {
	switch v := item.(type) {
	case NameLeaf:
		if IsTokenReference(v.Name, tc) {
			return false
		}
		rule, ok := g.Rule(v.Name)
		if !ok {
			// A dangling reference; Validate rejects the grammar before
			// this ever matters for real emission, but Nullable must
			// still return a bool during analysis of a not-yet-validated
			// grammar.
			return false
		}
		return rule.Nullable
	case StringLeaf:
		return false
	case Group:
		return RhsNullable(v.Rhs, g, tc)
	case Opt:
		return true
	case Repeat0:
		return true
	case Repeat1:
		return ItemNullable(v.Item, g, tc)
	case Gather:
		return ItemNullable(v.Element, g, tc)
	case Lookahead:
		return true
	case Cut:
		return true
	default:
		return false
	}
}

// AltNullable reports whether every item of alt is nullable.
func AltNullable(alt Alt, g *Grammar, tc TokenClassifier) bool {
	for _, ni := range alt.Items {
		if !ItemNullable(ni.Item, g, tc) {
			return false
		}
	}
	return true
}

// RhsNullable reports whether any alternative of rhs is nullable.
func RhsNullable(rhs Rhs, g *Grammar, tc TokenClassifier) bool {
	for _, alt := range rhs {
		if AltNullable(alt, g, tc) {
			return true
		}
	}
	return false
}

// ItemInitialNames is the set of rule names that may appear first in a
// parse of item. Token references and literals never contribute a name:
// the left-recursion graph only ever has rule nodes.
func ItemInitialNames(item Item, g *Grammar, tc TokenClassifier) util.StringSet {
	switch v := item.(type) {
	case NameLeaf:
		if IsTokenReference(v.Name, tc) {
			return util.NewStringSet()
		}
		return util.StringSetOf([]string{v.Name})
	case StringLeaf:
		return util.NewStringSet()
	case Group:
		return RhsInitialNames(v.Rhs, g, tc)
	case Opt:
		return ItemInitialNames(v.Item, g, tc)
	case Repeat0:
		return ItemInitialNames(v.Item, g, tc)
	case Repeat1:
		return ItemInitialNames(v.Item, g, tc)
	case Gather:
		return ItemInitialNames(v.Element, g, tc)
	case Lookahead:
		return ItemInitialNames(v.Atom, g, tc)
	case Cut:
		return util.NewStringSet()
	default:
		return util.NewStringSet()
	}
}

// AltInitialNames unions ItemInitialNames left to right, stopping after
// (and including) the first item that isn't nullable: anything after a
// mandatory item can never be first.
func AltInitialNames(alt Alt, g *Grammar, tc TokenClassifier) util.StringSet {
	result := util.NewStringSet()
	for _, ni := range alt.Items {
		result.AddAll(ItemInitialNames(ni.Item, g, tc))
		if !ItemNullable(ni.Item, g, tc) {
			break
		}
	}
	return result
}

// RhsInitialNames unions AltInitialNames across every alternative.
func RhsInitialNames(rhs Rhs, g *Grammar, tc TokenClassifier) util.StringSet {
	result := util.NewStringSet()
	for _, alt := range rhs {
		result.AddAll(AltInitialNames(alt, g, tc))
	}
	return result
}
