package ast

import "fmt"

// Rule is a named production. Nullable and LeftRecursive are undefined
// until the Analyzer has run; Leader is meaningful only when
// LeftRecursive is true, and then only for the one rule elected as the
// representative of its strongly-connected component.
type Rule struct {
	Name string

	// Type is an opaque result-type annotation, reproduced verbatim in
	// emission. Empty means no annotation.
	Type string

	Rhs Rhs

	Nullable      bool
	LeftRecursive bool
	Leader        bool

	// analyzed records whether the Analyzer has visited this rule (see
	// Analyzed). Reading Nullable/LeftRecursive directly does not consult
	// it: before analysis they simply read false.
	analyzed bool
}

func (r Rule) String() string {
	return fmt.Sprintf("%s: <%d alternative(s)>", r.Name, len(r.Rhs))
}

// Grammar maps rule name to Rule, preserving insertion order for
// deterministic emission. It is built by a meta-parser (or by hand in
// tests) and then mutated by the Analyzer, which sets derived flags, and
// by the Emitter, which rewrites rule bodies and adds synthesized helper
// rules; it is not read-only during emission.
type Grammar struct {
	rulesByName map[string]int
	rules       []Rule
}

// NewGrammar returns an empty Grammar ready for AddRule.
func NewGrammar() *Grammar {
	return &Grammar{rulesByName: map[string]int{}}
}

// AddRule appends a new rule or overwrites an existing one in place,
// preserving its original position. Calling it twice for the same name
// never panics and the contents are not compared: last write wins, matching
// how a meta-parser would build up a Grammar incrementally while still
// allowing tests to construct fixtures by a sequence of AddRule calls.
func (g *Grammar) AddRule(r Rule) {
	if g.rulesByName == nil {
		g.rulesByName = map[string]int{}
	}
	if idx, ok := g.rulesByName[r.Name]; ok {
		g.rules[idx] = r
		return
	}
	g.rulesByName[r.Name] = len(g.rules)
	g.rules = append(g.rules, r)
}

// Rule returns the named rule and whether it exists.
func (g *Grammar) Rule(name string) (Rule, bool) {
	if g == nil || g.rulesByName == nil {
		return Rule{}, false
	}
	idx, ok := g.rulesByName[name]
	if !ok {
		return Rule{}, false
	}
	return g.rules[idx], true
}

// SetRule overwrites an existing rule. It panics if name isn't already
// present; the Analyzer uses it to persist derived flags and must never
// introduce a rule that didn't come from the meta-parser.
func (g *Grammar) SetRule(r Rule) {
	idx, ok := g.rulesByName[r.Name]
	if !ok {
		panic(fmt.Sprintf("ast: SetRule on undefined rule %q", r.Name))
	}
	g.rules[idx] = r
}

// Rules returns every rule in insertion order.
func (g *Grammar) Rules() []Rule {
	if g == nil {
		return nil
	}
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// Has reports whether name is a defined rule.
func (g *Grammar) Has(name string) bool {
	if g == nil {
		return false
	}
	_, ok := g.rulesByName[name]
	return ok
}

// StartRuleName is the name every grammar must define a rule for.
const StartRuleName = "start"

// MarkAnalyzed is used only by package analyze (via SetRule, which
// copies the whole Rule) to record that Nullable/LeftRecursive are now
// meaningful. Exported so analyze doesn't need unsafe tricks or a
// second struct; kept out of the Rule doc comment's public contract
// since ast callers should set Nullable/LeftRecursive through the
// Analyzer, not by hand.
func (r Rule) MarkAnalyzed() Rule {
	r.analyzed = true
	return r
}

// Analyzed reports whether the Analyzer has visited this rule.
func (r Rule) Analyzed() bool {
	return r.analyzed
}
