package analyze

import "github.com/MatthieuDartiailh/pegen/internal/ast"

// computeNullable runs spec.md §4.3 Pass 1 to a fixed point: every
// rule starts false, and nullable(rule.rhs) is recomputed for every
// rule until a full sweep changes nothing. The lattice (false -> true
// per rule) is finite and monotone, so this always terminates.
func computeNullable(g *ast.Grammar, tc ast.TokenClassifier) {
	for _, rule := range g.Rules() {
		rule.Nullable = false
		g.SetRule(rule)
	}

	for {
		changed := false
		for _, rule := range g.Rules() {
			computed := ast.RhsNullable(rule.Rhs, g, tc)
			if computed != rule.Nullable {
				rule.Nullable = computed
				g.SetRule(rule)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
