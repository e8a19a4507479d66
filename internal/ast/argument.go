package ast

import "github.com/mago-go/phrix/internal/span"

// Arguments is a call site's parenthesized, token-separated argument
// list.
type Arguments struct {
	base
	LParen span.Span
	List   TokenSeparatedSequence[Argument]
	RParen span.Span
}

// Argument is the sum of the two call-argument shapes. Disambiguation
// at parse time is by two-token lookahead: IDENT followed by ':'
// selects Named; anything else selects Positional.
type Argument interface {
	Node
	argumentNode()
}

// PositionalArgument is a positional call argument, optionally marked
// for unpacking with a leading '...'.
type PositionalArgument struct {
	base
	Ellipsis *span.Span // present iff this argument unpacks (...$xs)
	Value    Expr
}

func (PositionalArgument) argumentNode() {}

// NamedArgument is a `name: value` call argument.
type NamedArgument struct {
	base
	Name  LocalIdentifier
	Colon span.Span
	Value Expr
}

func (NamedArgument) argumentNode() {}
