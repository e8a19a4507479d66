package ast

import "github.com/mago-go/phrix/internal/span"

// TypeHint is the core AST's (non-callable-type-syntax) type
// annotation grammar: plain and nullable named types, e.g. `int`,
// `?string`, `Foo\Bar`. The richer callable-type annotation grammar
// lives in package typesyntax and is parsed separately.
type TypeHint interface {
	Node
	typeHintNode()
}

// NamedTypeHint is a (possibly namespaced) type name used as a hint.
type NamedTypeHint struct {
	base
	Name LocalIdentifier
}

func (NamedTypeHint) typeHintNode() {}

// NullableTypeHint is `?` followed by a type hint.
type NullableTypeHint struct {
	base
	Question span.Span
	Inner    TypeHint
}

func (NullableTypeHint) typeHintNode() {}
