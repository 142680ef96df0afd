package metagrammar

import (
	"fmt"

	"github.com/MatthieuDartiailh/pegen/internal/ast"
	"github.com/MatthieuDartiailh/pegen/internal/lex"
)

// Reader is a one-shot recursive-descent reader over a Stream of
// Tokenizer output. It builds an ast.Grammar directly; it has no
// separate parse-tree stage since the meta-language is simple enough
// that each production maps onto exactly one ast node.
type Reader struct {
	stream *lex.Stream
}

// NewReader wraps source for reading. Callers that want keyword
// retagging, a wrapped Producer, or other Stream configuration should
// build the Stream themselves and use NewReaderFromStream instead.
func NewReader(source string) *Reader {
	return &Reader{stream: lex.NewStream(NewTokenizer(source))}
}

// NewReaderFromStream wraps an already-built Stream, for callers that
// want to supply their own lex.Producer (e.g. one that wraps the
// Tokenizer to log each token) instead of reading raw source text.
func NewReaderFromStream(stream *lex.Stream) *Reader {
	return &Reader{stream: stream}
}

// ReadGrammar parses source as a sequence of rule definitions and
// returns the resulting ast.Grammar.
func ReadGrammar(source string) (*ast.Grammar, error) {
	return NewReader(source).Read()
}

// ReadGrammarFromStream is ReadGrammar for a caller-supplied Stream.
func ReadGrammarFromStream(stream *lex.Stream) (*ast.Grammar, error) {
	return NewReaderFromStream(stream).Read()
}

// Read consumes the reader's whole source and returns the grammar it
// describes, or the first syntax error encountered.
func (r *Reader) Read() (*ast.Grammar, error) {
	g := ast.NewGrammar()
	r.skipNewlines()
	for r.stream.Peek().Kind != lex.ENDMARKER {
		rule, err := r.parseRule()
		if err != nil {
			return nil, err
		}
		g.AddRule(rule)
		r.skipNewlines()
	}
	return g, nil
}

func (r *Reader) skipNewlines() {
	for {
		if _, ok := r.stream.Expect(lex.NEWLINE); !ok {
			return
		}
	}
}

// parseRule reads `name['['type']'] ':' alt ('|' alt)*`, terminated by
// a newline or end of input. Multi-line rule bodies aren't supported;
// this is a supplemental convenience reader, not the core.
func (r *Reader) parseRule() (ast.Rule, error) {
	nameTok, ok := r.stream.Expect(lex.NAME)
	if !ok {
		return ast.Rule{}, fmt.Errorf("metagrammar: expected rule name, got %s", r.stream.Peek())
	}

	typ := ""
	if _, ok := r.stream.ExpectLiteral("["); ok {
		typTok, ok2 := r.stream.Expect(lex.NAME)
		if !ok2 {
			return ast.Rule{}, fmt.Errorf("metagrammar: expected a type name after '[' in rule %q", nameTok.Text)
		}
		typ = typTok.Text
		for {
			if _, dot := r.stream.ExpectLiteral("."); !dot {
				break
			}
			part, ok4 := r.stream.Expect(lex.NAME)
			if !ok4 {
				return ast.Rule{}, fmt.Errorf("metagrammar: expected a name after '.' in the type annotation of rule %q", nameTok.Text)
			}
			typ += "." + part.Text
		}
		if _, ok3 := r.stream.ExpectLiteral("]"); !ok3 {
			return ast.Rule{}, fmt.Errorf("metagrammar: expected ']' closing the type annotation in rule %q", nameTok.Text)
		}
	}

	if _, ok := r.stream.ExpectLiteral(":"); !ok {
		return ast.Rule{}, fmt.Errorf("metagrammar: expected ':' after rule name %q", nameTok.Text)
	}

	rhs, err := r.parseRhs("")
	if err != nil {
		return ast.Rule{}, err
	}
	return ast.Rule{Name: nameTok.Text, Type: typ, Rhs: rhs}, nil
}

// parseRhs reads one or more '|'-separated alternatives. closer is the
// punctuation that ends the enclosing group ("" at the top level, ")"
// or "]" inside a parenthesized or bracketed atom); an alt also always
// ends at NEWLINE or end of input regardless of closer.
func (r *Reader) parseRhs(closer string) (ast.Rhs, error) {
	var rhs ast.Rhs

	first, err := r.parseAlt(closer)
	if err != nil {
		return nil, err
	}
	rhs = append(rhs, first)

	for {
		if _, ok := r.stream.ExpectLiteral("|"); !ok {
			break
		}
		next, err := r.parseAlt(closer)
		if err != nil {
			return nil, err
		}
		rhs = append(rhs, next)
	}
	return rhs, nil
}

func (r *Reader) parseAlt(closer string) (ast.Alt, error) {
	var items []ast.NamedItem
	action := ""

	for {
		tok := r.stream.Peek()
		if tok.Kind == lex.ENDMARKER {
			break
		}
		if tok.Kind == lex.NEWLINE {
			break
		}
		if tok.Kind == lex.OP && tok.Text == "|" {
			break
		}
		if closer != "" && tok.Kind == lex.OP && tok.Text == closer {
			break
		}
		if tok.Kind == Action {
			r.stream.Advance()
			action = tok.Text
			break
		}

		item, err := r.parseNamedItem()
		if err != nil {
			return ast.Alt{}, err
		}
		items = append(items, item)
	}

	return ast.Alt{Items: items, Action: action}, nil
}

// parseNamedItem reads an optional `name=` binding prefix followed by
// an item.
func (r *Reader) parseNamedItem() (ast.NamedItem, error) {
	mark := r.stream.Mark()
	name := ""
	if tok, ok := r.stream.Expect(lex.NAME); ok {
		if _, ok2 := r.stream.ExpectLiteral("="); ok2 {
			name = tok.Text
		} else {
			r.stream.Reset(mark)
		}
	}

	item, err := r.parseItemWithPostfix()
	if err != nil {
		return ast.NamedItem{}, err
	}
	return ast.NamedItem{Name: name, Item: item}, nil
}

// parseItemWithPostfix reads a cut, a lookahead, or an atom optionally
// followed by a gather or repetition postfix.
func (r *Reader) parseItemWithPostfix() (ast.Item, error) {
	if _, ok := r.stream.ExpectLiteral("~"); ok {
		return ast.Cut{}, nil
	}
	if _, ok := r.stream.ExpectLiteral("&"); ok {
		atom, err := r.parseAtom()
		if err != nil {
			return nil, err
		}
		return ast.Lookahead{Sign: ast.Positive, Atom: atom}, nil
	}
	if _, ok := r.stream.ExpectLiteral("!"); ok {
		atom, err := r.parseAtom()
		if err != nil {
			return nil, err
		}
		return ast.Lookahead{Sign: ast.Negative, Atom: atom}, nil
	}

	atom, err := r.parseAtom()
	if err != nil {
		return nil, err
	}

	if _, ok := r.stream.ExpectLiteral("."); ok {
		elem, err := r.parseAtom()
		if err != nil {
			return nil, err
		}
		if _, ok2 := r.stream.ExpectLiteral("+"); !ok2 {
			return nil, fmt.Errorf("metagrammar: gather separator %v must be followed by an element and '+'", atom)
		}
		return ast.Gather{Separator: atom, Element: elem}, nil
	}
	if _, ok := r.stream.ExpectLiteral("?"); ok {
		return ast.Opt{Item: atom}, nil
	}
	if _, ok := r.stream.ExpectLiteral("*"); ok {
		return ast.Repeat0{Item: atom}, nil
	}
	if _, ok := r.stream.ExpectLiteral("+"); ok {
		return ast.Repeat1{Item: atom}, nil
	}
	return atom, nil
}

func (r *Reader) parseAtom() (ast.Item, error) {
	tok := r.stream.Peek()
	switch {
	case tok.Kind == lex.STRING:
		r.stream.Advance()
		return ast.StringLeaf{Literal: tok.Text}, nil

	case tok.Kind == lex.NAME:
		r.stream.Advance()
		return ast.NameLeaf{Name: tok.Text}, nil

	case tok.Kind == lex.OP && tok.Text == "(":
		r.stream.Advance()
		rhs, err := r.parseRhs(")")
		if err != nil {
			return nil, err
		}
		if _, ok := r.stream.ExpectLiteral(")"); !ok {
			return nil, fmt.Errorf("metagrammar: expected ')' to close group")
		}
		return ast.Group{Rhs: rhs}, nil

	case tok.Kind == lex.OP && tok.Text == "[":
		r.stream.Advance()
		rhs, err := r.parseRhs("]")
		if err != nil {
			return nil, err
		}
		if _, ok := r.stream.ExpectLiteral("]"); !ok {
			return nil, fmt.Errorf("metagrammar: expected ']' to close optional group")
		}
		return ast.Opt{Item: ast.Group{Rhs: rhs}}, nil

	default:
		return nil, fmt.Errorf("metagrammar: unexpected token %s", tok)
	}
}
