package ast

import "github.com/MatthieuDartiailh/pegen/internal/pegerrors"

// Validate checks the static invariants of spec.md §3 that do not
// depend on the Analyzer having run: every rule name is a defined rule,
// every uppercase name resolves to a known token kind, a `start` rule
// exists, and no Lookahead carries a binding name. It returns the first
// violation found; callers that want every violation should keep
// calling Validate after fixing each one, the way a human iterates on a
// grammar file.
func Validate(g *Grammar, tc TokenClassifier) error {
	if !g.Has(StartRuleName) {
		return pegerrors.NewGrammarError(pegerrors.MissingStart, "", "grammar has no rule named \"start\"")
	}

	for _, rule := range g.Rules() {
		if err := validateRhs(rule.Name, rule.Rhs, tc); err != nil {
			return err
		}
		if err := checkReferences(rule.Name, rule.Rhs, g, tc); err != nil {
			return err
		}
	}
	return nil
}

func validateRhs(ruleName string, rhs Rhs, tc TokenClassifier) error {
	for _, alt := range rhs {
		for _, ni := range alt.Items {
			if _, isLookahead := ni.Item.(Lookahead); isLookahead && ni.Name != "" {
				return pegerrors.NewGrammarError(pegerrors.InvalidNamedLookahead, ruleName,
					"a lookahead item may not be bound to a name")
			}
			if err := validateItem(ruleName, ni.Item, tc); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateItem(ruleName string, item Item, tc TokenClassifier) error {
	switch v := item.(type) {
	case Group:
		return validateRhs(ruleName, v.Rhs, tc)
	case Opt:
		return validateItem(ruleName, v.Item, tc)
	case Repeat0:
		return validateItem(ruleName, v.Item, tc)
	case Repeat1:
		return validateItem(ruleName, v.Item, tc)
	case Gather:
		if err := validateItem(ruleName, v.Separator, tc); err != nil {
			return err
		}
		return validateItem(ruleName, v.Element, tc)
	case Lookahead:
		return validateItem(ruleName, v.Atom, tc)
	}
	return nil
}

func checkReferences(ruleName string, rhs Rhs, g *Grammar, tc TokenClassifier) error {
	for _, alt := range rhs {
		for _, ni := range alt.Items {
			if err := checkItemReferences(ruleName, ni.Item, g, tc); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkItemReferences(ruleName string, item Item, g *Grammar, tc TokenClassifier) error {
	switch v := item.(type) {
	case NameLeaf:
		if isAllUpper(v.Name) {
			if !tc.IsTokenKind(v.Name) {
				return pegerrors.NewGrammarError(pegerrors.UnknownToken, ruleName,
					"no known token kind named \""+v.Name+"\"")
			}
			return nil
		}
		if !g.Has(v.Name) {
			return pegerrors.NewGrammarError(pegerrors.DanglingReference, ruleName,
				"no rule named \""+v.Name+"\"")
		}
		return nil
	case Group:
		return checkReferences(ruleName, v.Rhs, g, tc)
	case Opt:
		return checkItemReferences(ruleName, v.Item, g, tc)
	case Repeat0:
		return checkItemReferences(ruleName, v.Item, g, tc)
	case Repeat1:
		return checkItemReferences(ruleName, v.Item, g, tc)
	case Gather:
		if err := checkItemReferences(ruleName, v.Separator, g, tc); err != nil {
			return err
		}
		return checkItemReferences(ruleName, v.Element, g, tc)
	case Lookahead:
		return checkItemReferences(ruleName, v.Atom, g, tc)
	}
	return nil
}
