package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatthieuDartiailh/pegen/internal/ast"
	"github.com/MatthieuDartiailh/pegen/internal/pegerrors"
)

type fixedVocab map[string]bool

func (v fixedVocab) IsTokenKind(name string) bool { return v[name] }

func defaultVocab() fixedVocab {
	return fixedVocab{
		"NAME": true, "NUMBER": true, "STRING": true,
		"NEWLINE": true, "OP": true, "ENDMARKER": true,
	}
}

func name(n string) ast.NamedItem { return ast.NamedItem{Item: ast.NameLeaf{Name: n}} }
func lit(s string) ast.NamedItem  { return ast.NamedItem{Item: ast.StringLeaf{Literal: s}} }
func alt(items ...ast.NamedItem) ast.Alt { return ast.Alt{Items: items} }

func rule(n string, alts ...ast.Alt) ast.Rule {
	return ast.Rule{Name: n, Rhs: ast.Rhs(alts)}
}

// Test_Analyze_SimpleLeftRecursion mirrors test_pegen.py's
// test_left_recursive: a classic expression grammar where expr directly
// left-recurses through its own second alternative.
func Test_Analyze_SimpleLeftRecursion(t *testing.T) {
	g := ast.NewGrammar()
	g.AddRule(rule("start",
		alt(name("expr"), name("NEWLINE")),
	))
	g.AddRule(rule("expr",
		alt(lit("-"), name("term")),
		alt(name("expr"), lit("+"), name("term")),
		alt(name("term")),
	))
	g.AddRule(rule("term",
		alt(name("NUMBER")),
	))

	require.NoError(t, Analyze(g, defaultVocab()))

	start, _ := g.Rule("start")
	expr, _ := g.Rule("expr")
	term, _ := g.Rule("term")

	assert.False(t, start.LeftRecursive)
	assert.True(t, expr.LeftRecursive)
	assert.True(t, expr.Leader)
	assert.False(t, term.LeftRecursive)
}

// Test_Analyze_MutuallyLeftRecursive mirrors
// test_pegen.py's test_mutually_left_recursive: foo and bar form a
// two-rule cycle, start does not participate.
func Test_Analyze_MutuallyLeftRecursive(t *testing.T) {
	g := ast.NewGrammar()
	g.AddRule(rule("start",
		alt(name("foo"), lit("E")),
	))
	g.AddRule(rule("foo",
		alt(name("bar"), lit("A")),
		alt(lit("B")),
	))
	g.AddRule(rule("bar",
		alt(name("foo"), lit("C")),
		alt(lit("D")),
	))

	require.NoError(t, Analyze(g, defaultVocab()))

	start, _ := g.Rule("start")
	foo, _ := g.Rule("foo")
	bar, _ := g.Rule("bar")

	assert.False(t, start.LeftRecursive)
	assert.True(t, foo.LeftRecursive)
	assert.True(t, bar.LeftRecursive)
	assert.True(t, foo.Leader != bar.Leader, "exactly one of foo/bar is elected leader")
}

// Test_Analyze_AdvancedLeftRecursion mirrors
// test_pegen.py's test_advanced_left_recursive: start recurses through
// the tail of its own second alternative, past a nullable sign rule.
func Test_Analyze_AdvancedLeftRecursion(t *testing.T) {
	g := ast.NewGrammar()
	g.AddRule(rule("start",
		alt(name("NUMBER")),
		alt(name("sign"), name("start")),
	))
	g.AddRule(rule("sign",
		alt(ast.NamedItem{Item: ast.Opt{Item: ast.StringLeaf{Literal: "-"}}}),
	))

	require.NoError(t, Analyze(g, defaultVocab()))

	start, _ := g.Rule("start")
	sign, _ := g.Rule("sign")

	assert.False(t, start.Nullable)
	assert.True(t, start.LeftRecursive)
	assert.True(t, start.Leader)
	assert.False(t, sign.LeftRecursive)
}

// Test_Analyze_TooComplexHasNoLeader mirrors
// test_pegen.py's test_left_recursion_too_complex: foo, bar, and baz form
// a fully connected three-cycle where no single rule's removal leaves an
// acyclic remainder, so leader election must fail.
func Test_Analyze_TooComplexHasNoLeader(t *testing.T) {
	g := ast.NewGrammar()
	g.AddRule(rule("start",
		alt(name("foo")),
	))
	g.AddRule(rule("foo",
		alt(name("bar"), lit("+")),
		alt(name("baz"), lit("+")),
		alt(lit("+")),
	))
	g.AddRule(rule("bar",
		alt(name("baz"), lit("-")),
		alt(name("foo"), lit("-")),
		alt(lit("-")),
	))
	g.AddRule(rule("baz",
		alt(name("foo"), lit("*")),
		alt(name("bar"), lit("*")),
		alt(lit("*")),
	))

	err := Analyze(g, defaultVocab())
	require.Error(t, err)

	var gerr *pegerrors.GrammarError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, pegerrors.NoLeader, gerr.Kind)
}

// Test_Analyze_MarksRulesAnalyzed checks that a successful Analyze run
// flips every rule's Analyzed flag, not just the ones on a cycle.
func Test_Analyze_MarksRulesAnalyzed(t *testing.T) {
	g := ast.NewGrammar()
	g.AddRule(rule("start", alt(name("NUMBER"))))

	require.NoError(t, Analyze(g, defaultVocab()))

	start, _ := g.Rule("start")
	assert.True(t, start.Analyzed())
}
