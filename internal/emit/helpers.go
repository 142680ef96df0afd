package emit

import "github.com/MatthieuDartiailh/pegen/internal/ast"

// liftRule rewrites rule's Rhs in place, pulling every Group (including
// one nested inside a repetition, optional, gather, or lookahead) out
// into a synthesized helper rule. Only Groups are lifted: an optional,
// repetition, gather, or lookahead itself stays inline and is rendered
// as a closure passed to the runtime. The rewritten Rhs is written back
// to the grammar with SetRule.
func (e *Emitter) liftRule(rule ast.Rule) {
	rewritten := make(ast.Rhs, len(rule.Rhs))
	for i, alt := range rule.Rhs {
		items := make([]ast.NamedItem, len(alt.Items))
		for j, ni := range alt.Items {
			items[j] = ast.NamedItem{Name: ni.Name, Item: e.liftItem(rule.Name, ni.Item)}
		}
		rewritten[i] = ast.Alt{Items: items, Action: alt.Action}
	}
	rule.Rhs = rewritten
	e.grammar.SetRule(rule)
}

// liftItem returns a replacement for item with any Group lifted into a
// helper rule, recursing into the item's children first so nested
// groups are lifted bottom-up.
func (e *Emitter) liftItem(enclosing string, item ast.Item) ast.Item {
	switch v := item.(type) {
	case ast.Group:
		lifted := make(ast.Rhs, len(v.Rhs))
		for i, alt := range v.Rhs {
			items := make([]ast.NamedItem, len(alt.Items))
			for j, ni := range alt.Items {
				items[j] = ast.NamedItem{Name: ni.Name, Item: e.liftItem(enclosing, ni.Item)}
			}
			lifted[i] = ast.Alt{Items: items, Action: alt.Action}
		}
		return ast.NameLeaf{Name: e.helperFor(enclosing, ast.Group{Rhs: lifted})}

	case ast.Opt:
		return ast.Opt{Item: e.liftItem(enclosing, v.Item)}
	case ast.Repeat0:
		return ast.Repeat0{Item: e.liftItem(enclosing, v.Item)}
	case ast.Repeat1:
		return ast.Repeat1{Item: e.liftItem(enclosing, v.Item)}
	case ast.Gather:
		return ast.Gather{
			Separator: e.liftItem(enclosing, v.Separator),
			Element:   e.liftItem(enclosing, v.Element),
		}
	case ast.Lookahead:
		return ast.Lookahead{Sign: v.Sign, Atom: e.liftItem(enclosing, v.Atom)}

	default:
		return item
	}
}

// helperFor registers group as a synthesized rule scoped under
// enclosing and returns its name, reusing an existing helper if the
// same canonical sub-expression was already lifted within this rule.
func (e *Emitter) helperFor(enclosing string, group ast.Group) string {
	key := enclosing + "::" + canonicalRhs(group.Rhs)
	if name, ok := e.helperOf[key]; ok {
		return name
	}

	name := e.freshHelperName(enclosing)
	e.helperOf[key] = name
	e.grammar.AddRule(ast.Rule{Name: name, Rhs: group.Rhs, Nullable: ast.RhsNullable(group.Rhs, e.grammar, e.tc)})
	return name
}
