package emit

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/MatthieuDartiailh/pegen/internal/ast"
)

// renderRule appends one Go method to body for rule, dispatching to the
// ordinary or leader invocation protocol per its Analyzer flags. The
// TryAlts block is rendered at indent level zero by renderAlt and shifted
// two levels right by rosed, the same tool the teacher reaches for to
// reflow structured multi-line text, so the nesting introduced by the
// enclosing method/closure doesn't have to be threaded through every
// renderAlt call site by hand.
func (e *Emitter) renderRule(body *strings.Builder, rule ast.Rule) {
	invocation := "Call"
	if rule.LeftRecursive && rule.Leader {
		invocation = "CallLeader"
	}

	var inner strings.Builder
	inner.WriteString("mark := h.Stream.Mark()\n")
	inner.WriteString("return h.TryAlts(mark,\n")
	for _, alt := range rule.Rhs {
		e.renderAlt(&inner, alt)
	}
	inner.WriteString(")\n")

	body.WriteString(fmt.Sprintf("func (h *%s) %s() runtime.Result {\n", e.parserType, ruleMethodName(rule.Name)))
	body.WriteString(fmt.Sprintf("\treturn h.%s(%q, func() runtime.Result {\n", invocation, rule.Name))
	body.WriteString(rosed.Edit(inner.String()).Indent(2).String())
	body.WriteString("\t})\n")
	body.WriteString("}\n\n")
}

// renderAlt appends one TryAlts alternative closure to body, indented
// relative to column zero; renderRule's rosed.Indent call is what puts it
// at its real column in the emitted method.
func (e *Emitter) renderAlt(body *strings.Builder, alt ast.Alt) {
	body.WriteString("\tfunc(commit *runtime.Commit) runtime.Result {\n")
	body.WriteString("\t\tmark := h.Stream.Mark()\n")

	var bindings []string
	for i, ni := range alt.Items {
		if _, isCut := ni.Item.(ast.Cut); isCut {
			body.WriteString("\t\tcommit.Cut()\n")
			continue
		}
		if _, isLookahead := ni.Item.(ast.Lookahead); isLookahead {
			varName := fmt.Sprintf("_la%d", i)
			body.WriteString(fmt.Sprintf("\t\tif %s := %s; !%s.Ok {\n", varName, e.renderItemExpr(ni.Item), varName))
			body.WriteString("\t\t\treturn runtime.Result{Ok: false, End: mark}\n")
			body.WriteString("\t\t}\n")
			continue
		}

		varName := fmt.Sprintf("v%d", i)
		body.WriteString(fmt.Sprintf("\t\t%s := %s\n", varName, e.renderItemExpr(ni.Item)))
		body.WriteString(fmt.Sprintf("\t\tif !%s.Ok {\n", varName))
		body.WriteString("\t\t\treturn runtime.Result{Ok: false, End: mark}\n")
		body.WriteString("\t\t}\n")
		bindings = append(bindings, varName)
	}

	body.WriteString("\t\t_ = mark\n")
	body.WriteString(fmt.Sprintf("\t\treturn runtime.Success(%s, h.Stream.Mark())\n", e.renderValue(alt, bindings)))
	body.WriteString("\t},\n")
}

// renderValue produces the expression for an Alt's result value: the
// spliced action text when present (spec.md §6 treats action content as
// opaque core-external syntax; the Emitter's job is only to splice it
// into a scope where each visible name is bound), otherwise the
// tuple-or-single-value shape of spec.md §4.4. bindings is the same
// v<N> variable-name list renderAlt just emitted declarations for, in
// the same order as alt.Items with Cut/Lookahead slots skipped, so
// renderAction can zip it against alt.Items without recomputing a
// second index that could drift from the first.
func (e *Emitter) renderValue(alt ast.Alt, bindings []string) string {
	if alt.Action != "" {
		return e.renderAction(alt, bindings)
	}
	if len(bindings) == 1 {
		return bindings[0] + ".Value"
	}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b + ".Value"
	}
	return "[]any{" + strings.Join(parts, ", ") + "}"
}

// renderAction splices the action text verbatim, preceded by let-bindings
// exposing each NamedItem's visible name, matching the pegen convention
// that action blocks are arbitrary target-language code evaluated in a
// scope where the alt's captures are already bound. bindings must be the
// same list renderAlt built, indexed in lockstep with this loop's walk
// over alt.Items minus Cut/Lookahead, so a name always resolves to the
// v<N> variable actually declared for it.
func (e *Emitter) renderAction(alt ast.Alt, bindings []string) string {
	var lets strings.Builder
	n := 0
	for _, ni := range alt.Items {
		switch ni.Item.(type) {
		case ast.Lookahead, ast.Cut:
			continue
		}
		name := ast.VisibleName(ni)
		fmt.Fprintf(&lets, "%s := %s.Value; _ = %s; ", name, bindings[n], name)
		n++
	}
	return fmt.Sprintf("func() any { %s return %s }()", lets.String(), alt.Action)
}

// renderItemExpr returns a Go expression of type runtime.Result for
// item, evaluated at the current cursor.
func (e *Emitter) renderItemExpr(item ast.Item) string {
	switch v := item.(type) {
	case ast.NameLeaf:
		if ast.IsTokenReference(v.Name, e.tc) {
			e.usesLex = true
			return fmt.Sprintf("h.ExpectToken(lex.%s)", v.Name)
		}
		return fmt.Sprintf("h.%s()", ruleMethodName(v.Name))

	case ast.StringLeaf:
		return fmt.Sprintf("h.ExpectLiteral(%q)", v.Literal)

	case ast.Opt:
		return fmt.Sprintf("h.Opt(func() runtime.Result { return %s })", e.renderItemExpr(v.Item))

	case ast.Repeat0:
		return fmt.Sprintf("h.Repeat0(func() runtime.Result { return %s })", e.renderItemExpr(v.Item))

	case ast.Repeat1:
		return fmt.Sprintf("h.Repeat1(func() runtime.Result { return %s })", e.renderItemExpr(v.Item))

	case ast.Gather:
		return fmt.Sprintf(
			"h.Gather(func() runtime.Result { return %s }, func() runtime.Result { return %s })",
			e.renderItemExpr(v.Separator), e.renderItemExpr(v.Element),
		)

	case ast.Lookahead:
		positive := "true"
		if v.Sign == ast.Negative {
			positive = "false"
		}
		return fmt.Sprintf("h.Lookahead(%s, func() runtime.Result { return %s })", positive, e.renderItemExpr(v.Atom))

	case ast.Cut:
		// handled by the caller via commit.Cut(); never reached directly.
		return "commit.Cut()"

	case ast.Group:
		// liftRule/liftItem rewrite every Group into a NameLeaf before
		// render runs; reaching this means a caller invoked render
		// without lifting first.
		panic("emit: unlifted Group reached render; call Emit, not renderRule, directly")

	default:
		panic(fmt.Sprintf("emit: unhandled item type %T", v))
	}
}
