package ast

import "github.com/mago-go/phrix/internal/span"

// Modifier is a property/parameter visibility or mutability modifier
// (public, private, protected, readonly, static).
type Modifier struct {
	Keyword LocalIdentifier
}

// PropertyHook is a `get`/`set` accessor attached to a promoted
// constructor parameter.
type PropertyHook struct {
	base
	Keyword LocalIdentifier // "get" or "set"
	Body    Stmt            // nil for an abstract hook (no body)
}

// Attribute is a single `#[Name(args)]` attribute entry; attribute
// lists are treated as an opaque present/absent prefix for
// span-computation purposes.
type Attribute struct {
	base
	Name      LocalIdentifier
	Arguments *Arguments
}

// AttributeList is one `#[...]` bracketed group of attributes.
type AttributeList struct {
	base
	Items TokenSeparatedSequence[Attribute]
}

// Parameter is a function-like parameter. Its span is computed from
// whichever prefix is actually present (attributes → modifiers → hint
// → ellipsis → ampersand → variable) to the rightmost present suffix
// (hooks → default → variable).
type Parameter struct {
	base
	Attributes []AttributeList
	Modifiers  []Modifier
	Hint       TypeHint   // nil if absent
	Ampersand  *span.Span // present iff by-reference
	Ellipsis   *span.Span // present iff variadic
	Variable   LocalIdentifier
	Default    Expr // nil if absent
	Hooks      []PropertyHook
}

// IsPromotedProperty reports whether this parameter also declares a
// class property: true iff it has at least one modifier or any hooks.
// Used by lint rules, not by the parser itself.
func (p Parameter) IsPromotedProperty() bool {
	return len(p.Modifiers) > 0 || len(p.Hooks) > 0
}

// ParameterList is a function-like's parenthesized, token-separated
// parameter list.
type ParameterList struct {
	base
	LParen span.Span
	List   TokenSeparatedSequence[Parameter]
	RParen span.Span
}
