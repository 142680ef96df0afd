package runtime

import (
	"log"

	"github.com/google/uuid"

	"github.com/MatthieuDartiailh/pegen/internal/lex"
)

// Parser is the shared state every generated rule method operates
// against: the token stream of spec.md §4.1, the memo table of §3, and
// an optional verbose-trace hook. A generated parser embeds or wraps a
// *Parser; it never constructs a memoTable itself.
type Parser struct {
	Stream *lex.Stream
	memo   memoTable

	// SessionID correlates this parse's trace lines when a generated
	// parser runs inside a service handling many parses concurrently.
	// It has no effect on parse results.
	SessionID uuid.UUID

	// Verbose, when true, logs rule entry/exit via log.Printf. The caller
	// that owns the Parser sets it; generated code never does. It is off
	// by default because packrat traces are large.
	Verbose bool
}

// NewParser builds a Parser over stream with a fresh memo table and
// session ID.
func NewParser(stream *lex.Stream) *Parser {
	return &Parser{
		Stream:    stream,
		memo:      newMemoTable(),
		SessionID: uuid.New(),
	}
}

func (p *Parser) trace(format string, args ...any) {
	if !p.Verbose {
		return
	}
	log.Printf("TRACE %s: "+format, append([]any{p.SessionID}, args...)...)
}

// Furthest is the furthest cursor position any Expect reached over the
// life of the parse, the position a SyntaxError should report per
// spec.md §7.
func (p *Parser) Furthest() lex.Mark {
	return p.Stream.Furthest()
}
