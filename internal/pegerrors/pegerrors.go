// Package pegerrors defines the two failure regimes a pegen-generated
// toolchain can raise: GrammarError at generation time and SyntaxError
// at parse time. Internal alternative/item failures are ordinary
// control flow and never appear here.
package pegerrors

import (
	"errors"
	"fmt"
)

// Kind identifies which static invariant a GrammarError violates.
type Kind int

const (
	MissingStart Kind = iota
	DanglingReference
	UnknownToken
	InvalidNamedLookahead
	NoLeader
)

func (k Kind) String() string {
	switch k {
	case MissingStart:
		return "MissingStart"
	case DanglingReference:
		return "DanglingReference"
	case UnknownToken:
		return "UnknownToken"
	case InvalidNamedLookahead:
		return "InvalidNamedLookahead"
	case NoLeader:
		return "NoLeader"
	default:
		return "GrammarError"
	}
}

// sentinels so callers can test the failure class with errors.Is without
// caring about the offending rule name.
var (
	ErrMissingStart          = errors.New("missing start rule")
	ErrDanglingReference     = errors.New("dangling reference")
	ErrUnknownToken          = errors.New("unknown token")
	ErrInvalidNamedLookahead = errors.New("lookahead item may not carry a binding name")
	ErrNoLeader              = errors.New("left-recursion too complex: no leader")
)

func sentinelFor(k Kind) error {
	switch k {
	case MissingStart:
		return ErrMissingStart
	case DanglingReference:
		return ErrDanglingReference
	case UnknownToken:
		return ErrUnknownToken
	case InvalidNamedLookahead:
		return ErrInvalidNamedLookahead
	case NoLeader:
		return ErrNoLeader
	default:
		return errors.New("grammar error")
	}
}

// GrammarError is a static error raised by the Analyzer or Emitter.
// It is fatal to generation and is never recovered internally.
type GrammarError struct {
	Kind Kind

	// Rule is the rule the error was raised against, if any.
	Rule string

	// Detail is additional human-readable context, e.g. the name of an
	// undefined reference.
	Detail string
}

func (e *GrammarError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: rule %q: %s", e.Kind, e.Rule, e.Detail)
}

func (e *GrammarError) Unwrap() error {
	return sentinelFor(e.Kind)
}

func NewGrammarError(kind Kind, rule, detail string) *GrammarError {
	return &GrammarError{Kind: kind, Rule: rule, Detail: detail}
}

// Position is a 1-indexed line/column in grammar or parser input, used to
// report the furthest point a parse reached before failing.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// SyntaxError is a dynamic error raised by a generated parser at runtime:
// the start rule failed, or the input was not fully consumed once it
// succeeded. It carries the furthest cursor position any expect() reached,
// which is the most useful position to report to a human even when the
// eventual failure unwound to an earlier point via backtracking.
type SyntaxError struct {
	// Pos is the furthest position reached during the parse.
	Pos Position

	// Human is a message suitable for showing to whoever wrote the input
	// being parsed.
	Human string

	// technical is the Error() string; kept distinct from Human so a
	// caller can show one and log the other, separating an
	// operator-facing message from a user-facing one.
	technical string

	wrap error
}

func (e *SyntaxError) Error() string {
	if e.technical != "" {
		return e.technical
	}
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Human)
}

func (e *SyntaxError) Unwrap() error {
	return e.wrap
}

// NewSyntaxError builds a SyntaxError with an auto-generated technical
// message from the human-readable one.
func NewSyntaxError(pos Position, human string) *SyntaxError {
	return &SyntaxError{Pos: pos, Human: human}
}

// NewSyntaxErrorf is a convenience wrapper around NewSyntaxError that
// formats the human-readable message.
func NewSyntaxErrorf(pos Position, format string, args ...interface{}) *SyntaxError {
	return NewSyntaxError(pos, fmt.Sprintf(format, args...))
}

// WrapSyntaxError returns a new SyntaxError with both a human message and
// a distinct technical Error() string, wrapping err for errors.Is/As.
func WrapSyntaxError(err error, pos Position, human, technical string) *SyntaxError {
	return &SyntaxError{Pos: pos, Human: human, technical: technical, wrap: err}
}
