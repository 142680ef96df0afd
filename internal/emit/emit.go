// Package emit renders a *ast.Grammar that has already been through
// package analyze into Go source for a parser built on package
// runtime's contract: one method per rule (ordinary or leader
// invocation, per the rule's LeftRecursive/Leader flags), with inline
// sub-expressions pulled out into synthesized helper rules the way
// CPython's pegen lifts anonymous groups into `_tmp_N_rule` methods.
package emit

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/MatthieuDartiailh/pegen/internal/ast"
)

// Emitter renders one Grammar into one Go source file.
type Emitter struct {
	grammar     *ast.Grammar
	tc          ast.TokenClassifier
	packageName string
	parserType  string

	// helperOf deduplicates synthesized helper rules: the same canonical
	// sub-expression text appearing twice within a rule reuses one
	// helper rather than emitting two identical methods.
	helperOf map[string]string
	counters map[string]int

	// usesLex records whether any rendered item referenced a lex.Kind
	// constant, so the header only imports package lex when needed.
	usesLex bool
}

// Options configures the rendered file's package and receiver names.
type Options struct {
	// PackageName is the `package` clause of the emitted file.
	PackageName string

	// ParserType is the receiver type name for generated rule methods,
	// e.g. "Parser". It must embed *runtime.Parser.
	ParserType string
}

// NewEmitter builds an Emitter over g. Emit mutates g: it adds the
// synthesized helper rules via g.AddRule and rewrites each rule's Rhs
// via g.SetRule so that lifted groups reference those helpers.
func NewEmitter(g *ast.Grammar, tc ast.TokenClassifier, opts Options) *Emitter {
	if opts.ParserType == "" {
		opts.ParserType = "Parser"
	}
	return &Emitter{
		grammar:     g,
		tc:          tc,
		packageName: opts.PackageName,
		parserType:  opts.ParserType,
		helperOf:    map[string]string{},
		counters:    map[string]int{},
	}
}

// Emit validates the grammar per spec.md §3 and, if it passes, returns
// complete Go source for a package implementing it. On invariant
// violation it returns the *pegerrors.GrammarError unchanged.
func (e *Emitter) Emit() (string, error) {
	if err := ast.Validate(e.grammar, e.tc); err != nil {
		return "", err
	}

	// Synthesize helper rules before reading e.grammar.Rules(), so they
	// are appended in a stable, deterministic order (one rule at a time,
	// depth-first within each original rule).
	for _, rule := range e.grammar.Rules() {
		e.liftRule(rule)
	}

	var body strings.Builder
	for _, rule := range e.grammar.Rules() {
		e.renderRule(&body, rule)
	}

	return e.header() + body.String(), nil
}

func (e *Emitter) header() string {
	doc := rosed.Edit(
		"Code generated by pegen. DO NOT EDIT.",
	).Wrap(77).String()

	var b strings.Builder
	for _, line := range strings.Split(doc, "\n") {
		b.WriteString("// " + line + "\n")
	}
	b.WriteString("\npackage " + e.packageName + "\n\n")
	b.WriteString("import (\n")
	if e.usesLex {
		b.WriteString("\t\"github.com/MatthieuDartiailh/pegen/internal/lex\"\n")
	}
	b.WriteString("\t\"github.com/MatthieuDartiailh/pegen/internal/runtime\"\n)\n\n")
	return b.String()
}

// ruleMethodName is the Go method name for rule, exported so a caller
// embedding the generated parser can call the start rule directly.
func ruleMethodName(rule string) string {
	if rule == "" {
		return rule
	}
	return strings.ToUpper(rule[:1]) + rule[1:]
}

// freshHelperName returns a deterministic, never-yet-used name for a
// synthesized helper rule scoped under enclosing, e.g. "expr__1".
func (e *Emitter) freshHelperName(enclosing string) string {
	for {
		e.counters[enclosing]++
		candidate := fmt.Sprintf("%s__%d", enclosing, e.counters[enclosing])
		if !e.grammar.Has(candidate) {
			return candidate
		}
	}
}

func canonicalItem(item ast.Item) string {
	switch v := item.(type) {
	case ast.NameLeaf:
		return "name:" + v.Name
	case ast.StringLeaf:
		return "lit:" + v.Literal
	case ast.Group:
		return "group:" + canonicalRhs(v.Rhs)
	case ast.Opt:
		return "opt:" + canonicalItem(v.Item)
	case ast.Repeat0:
		return "rep0:" + canonicalItem(v.Item)
	case ast.Repeat1:
		return "rep1:" + canonicalItem(v.Item)
	case ast.Gather:
		return "gather:" + canonicalItem(v.Separator) + "," + canonicalItem(v.Element)
	case ast.Lookahead:
		sign := "+"
		if v.Sign == ast.Negative {
			sign = "-"
		}
		return "look" + sign + ":" + canonicalItem(v.Atom)
	case ast.Cut:
		return "cut"
	default:
		return fmt.Sprintf("item:%T", v)
	}
}

func canonicalRhs(rhs ast.Rhs) string {
	parts := make([]string, len(rhs))
	for i, alt := range rhs {
		itemParts := make([]string, len(alt.Items))
		for j, ni := range alt.Items {
			itemParts[j] = ni.Name + "=" + canonicalItem(ni.Item)
		}
		parts[i] = strings.Join(itemParts, " ") + "{" + alt.Action + "}"
	}
	return strings.Join(parts, "|")
}
