// Package analyze implements the two fixed-point passes of spec.md
// §4.3: nullability, then left-recursion classification with
// SCC-based leader election. Both passes mutate the Grammar's Rule
// flags in place; Analyze is idempotent given the same Grammar.
package analyze

import "github.com/MatthieuDartiailh/pegen/internal/ast"

// Analyze runs nullability and left-recursion analysis over g and
// records the results on each Rule. It returns a *pegerrors.GrammarError
// of kind NoLeader if some left-recursive strongly connected component
// admits no valid leader. Callers should validate g with ast.Validate
// first; Analyze assumes every NameLeaf resolves (it degrades silently,
// not panics, on one that doesn't, since it is pure over its input and
// must terminate regardless).
func Analyze(g *ast.Grammar, tc ast.TokenClassifier) error {
	computeNullable(g, tc)

	if err := computeLeftRecursion(g, tc); err != nil {
		return err
	}

	for _, rule := range g.Rules() {
		g.SetRule(rule.MarkAnalyzed())
	}
	return nil
}
