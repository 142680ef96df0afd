package lex

import "golang.org/x/text/unicode/norm"

// Mark is an opaque cursor snapshot. Two marks from the same Stream can
// be compared for equality but carry no other meaning to callers.
type Mark int

// Stream is a cursor over a cached, filtered sequence of Tokens pulled
// lazily from a Producer. Once a Token is cached its Kind is fixed
// (keyword retagging, if any, has already happened); resetting the
// cursor backwards or forwards never discards or re-derives cached
// entries, which is what makes mark/reset O(1) and memoization sound.
type Stream struct {
	producer Producer
	cache    []Token
	pos      int
	done     bool

	keywords map[string]Kind

	// furthest is the highest cursor position any Advance (including one
	// made by Expect or ExpectLiteral) has reached, used to report the furthest-reached position on syntax failure even
	// though backtracking will have reset pos to somewhere earlier.
	furthest Mark
}

// NewStream wraps p in a Stream. Call InstallKeywords before the first
// Peek/Expect if the grammar has reserved words; retagging only ever
// happens at first materialization, so installing keywords later leaves
// already-cached tokens alone.
func NewStream(p Producer) *Stream {
	return &Stream{producer: p}
}

// InstallKeywords installs the name -> Kind table used to retag NAME
// tokens into keyword tokens the first time they're cached.
func (s *Stream) InstallKeywords(table map[string]Kind) {
	s.keywords = table
}

func (s *Stream) materializeUpTo(idx int) {
	for len(s.cache) <= idx && !s.done {
		tok, err := s.producer.Next()
		if err != nil {
			// A Producer is documented to never error; a misbehaving one
			// simply ends the stream here rather than panicking the
			// parser mid-backtrack.
			s.done = true
			break
		}
		if s.shouldFilter(tok) {
			if tok.Kind == ENDMARKER {
				s.cache = append(s.cache, tok)
				s.done = true
			}
			continue
		}
		s.cache = append(s.cache, s.retag(tok))
		if tok.Kind == ENDMARKER {
			s.done = true
		}
	}
}

func (s *Stream) shouldFilter(tok Token) bool {
	switch tok.Kind {
	case COMMENT, NL:
		return true
	case ERRORTOKEN:
		return isAllWhitespace(tok.Text)
	default:
		return false
	}
}

func isAllWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\r' && r != '\n' {
			return false
		}
	}
	return true
}

func (s *Stream) retag(tok Token) Token {
	tok.Text = norm.NFC.String(tok.Text)
	if tok.Kind == NAME && s.keywords != nil {
		if kw, ok := s.keywords[tok.Text]; ok {
			tok.Kind = kw
		}
	}
	return tok
}

func (s *Stream) current() Token {
	s.materializeUpTo(s.pos)
	if s.pos < len(s.cache) {
		return s.cache[s.pos]
	}
	// stream exhausted before a real ENDMARKER ever arrived; synthesize
	// one rather than panic so a malformed Producer can't crash a parse.
	return Token{Kind: ENDMARKER}
}

// Peek returns the current token without advancing the cursor.
func (s *Stream) Peek() Token {
	return s.current()
}

// Advance returns the current token and moves the cursor one position
// forward.
func (s *Stream) Advance() Token {
	tok := s.current()
	s.pos++
	if Mark(s.pos) > s.furthest {
		s.furthest = Mark(s.pos)
	}
	return tok
}

// Mark snapshots the current cursor position.
func (s *Stream) Mark() Mark {
	return Mark(s.pos)
}

// Reset unconditionally moves the cursor to m. Resetting backwards never
// discards cached tokens, which is what keeps this O(1).
func (s *Stream) Reset(m Mark) {
	s.pos = int(m)
}

// Furthest returns the highest cursor position any Advance (including
// one made by Expect or ExpectLiteral) has reached, independent of where
// backtracking has since reset the cursor.
// A generated parser's SyntaxError reports this position.
func (s *Stream) Furthest() Mark {
	return s.furthest
}

// TokenAt returns the token at m without disturbing the current cursor
// position. Used to report the token a SyntaxError's furthest position
// landed on after backtracking has already moved the cursor elsewhere.
func (s *Stream) TokenAt(m Mark) Token {
	saved := s.pos
	s.pos = int(m)
	tok := s.current()
	s.pos = saved
	return tok
}

// Expect advances and returns the current token if its Kind equals kind;
// otherwise it reports absence without moving the cursor.
func (s *Stream) Expect(kind Kind) (Token, bool) {
	tok := s.current()
	if tok.Kind != kind {
		return Token{}, false
	}
	return s.Advance(), true
}

// ExpectLiteral advances and returns the current token if its text
// equals lit and its kind is recognized punctuation/keyword vocabulary
// (OP, or a Producer-assigned kind from NextUserKind() up, which is
// where retagged keywords live); otherwise it reports absence without
// moving the cursor.
func (s *Stream) ExpectLiteral(lit string) (Token, bool) {
	tok := s.current()
	if tok.Text != lit {
		return Token{}, false
	}
	if tok.Kind != OP && tok.Kind < firstUserKind {
		return Token{}, false
	}
	return s.Advance(), true
}
