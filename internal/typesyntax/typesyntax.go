// Package typesyntax implements the callable-type annotation grammar:
// a logically separate sub-parser from the main recursive-descent
// parser in internal/parser, operating on its own small grammar and
// producing nodes that borrow identifier text directly from the input
// buffer rather than interning it — the opposite discipline from
// internal/ast, carried consistently within this one sub-grammar.
package typesyntax

import (
	"strconv"

	"github.com/mago-go/phrix/internal/span"
)

// CallableKind is one of the four callable-type keywords: plain or
// pure, callable or Closure. Pure is modeled as a boolean facet of the
// base kind.
type CallableKind int

const (
	Callable CallableKind = iota
	PureCallable
	ClosureKind
	PureClosureKind
)

func (k CallableKind) IsPure() bool {
	return k == PureCallable || k == PureClosureKind
}

func (k CallableKind) IsClosure() bool {
	return k == ClosureKind || k == PureClosureKind
}

func (k CallableKind) String() string {
	switch k {
	case Callable:
		return "callable"
	case PureCallable:
		return "pure callable"
	case ClosureKind:
		return "Closure"
	case PureClosureKind:
		return "pure Closure"
	default:
		return "callable"
	}
}

func (k CallableKind) keyword() string {
	if k.IsClosure() {
		return "Closure"
	}
	return "callable"
}

// Type is the sum of the forms a (possibly nested) type can take in
// this grammar: a named type, a nullable type, or a nested callable
// type. Every variant carries its own span, composed the same way a
// node's span is composed in internal/ast: wide enough to cover every
// byte the variant consumed, nothing more.
type Type interface {
	typeNode()
	String() string
	Span() span.Span
}

// NamedType is a plain type name, e.g. `int`, `string`, `Foo\Bar`. Name
// is a slice of the original input buffer, not a copy.
type NamedType struct {
	Name     string
	NameSpan span.Span
}

func (NamedType) typeNode()        {}
func (t NamedType) String() string { return t.Name }
func (t NamedType) Span() span.Span { return t.NameSpan }

// NullableType is `?` followed by a type.
type NullableType struct {
	Question span.Span
	Inner    Type
}

func (NullableType) typeNode()        {}
func (t NullableType) String() string { return "?" + t.Inner.String() }
func (t NullableType) Span() span.Span {
	return span.Join(t.Question, t.Inner.Span())
}

// CallableTypeParameter is one entry in a callable type's parameter
// list: a (possibly nested) type, at most one of Optional or Variadic
// (set to the span of the `=`/`...` marker, nil if absent), and Comma
// (the span of the separator that follows the entry, nil when no comma
// follows it).
type CallableTypeParameter struct {
	Type     Type
	Optional *span.Span
	Variadic *span.Span
	Comma    *span.Span
}

func (p CallableTypeParameter) String() string {
	s := p.Type.String()
	if p.Optional != nil {
		s += "="
	}
	if p.Variadic != nil {
		s += "..."
	}
	return s
}

// Span composes the parameter's span the same way callable.rs's
// HasSpan impl does: widen from the type's span through whichever of
// comma/variadic/optional is present, in that priority order, since
// each implies the ones before it in source position.
func (p CallableTypeParameter) Span() span.Span {
	s := p.Type.Span()
	switch {
	case p.Comma != nil:
		return span.Join(s, *p.Comma)
	case p.Variadic != nil:
		return span.Join(s, *p.Variadic)
	case p.Optional != nil:
		return span.Join(s, *p.Optional)
	default:
		return s
	}
}

// CallableTypeSpecification is the optional `(params): returnType`
// suffix of a callable type.
type CallableTypeSpecification struct {
	LParen     span.Span
	Parameters []CallableTypeParameter
	RParen     span.Span
	Colon      *span.Span // nil if no return type is present
	Return     Type       // nil if no return type is present
}

// Span joins the parenthesized parameter list with the return type,
// when present, mirroring callable.rs's
// CallableTypeSpecification::span.
func (s *CallableTypeSpecification) Span() span.Span {
	parens := span.Join(s.LParen, s.RParen)
	if s.Return == nil {
		return parens
	}
	return span.Join(parens, s.Return.Span())
}

// CallableType is a callable-type annotation: one of four keywords,
// optionally followed by a parameter list and return type.
type CallableType struct {
	Kind    CallableKind
	Keyword span.Span // covers the full keyword phrase, e.g. "pure Closure"
	Spec    *CallableTypeSpecification // nil if the bare keyword form is used
}

func (*CallableType) typeNode() {}

// Span joins the keyword with the parameter spec, when present,
// mirroring callable.rs's CallableType::span.
func (c *CallableType) Span() span.Span {
	if c.Spec == nil {
		return c.Keyword
	}
	return span.Join(c.Keyword, c.Spec.Span())
}

// String implements Display. format(parse(s)) == s is the round-trip
// property this grammar guarantees: canonical spacing is one space
// after `pure`, after each comma and after the return-type colon, and
// no space anywhere else — a convention the parser accepts on input.
func (c *CallableType) String() string {
	s := c.Kind.keyword()
	if c.Kind.IsPure() {
		s = "pure " + s
	}
	if c.Spec == nil {
		return s
	}
	s += "("
	for i, p := range c.Spec.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	s += ")"
	if c.Spec.Return != nil {
		s += ": " + c.Spec.Return.String()
	}
	return s
}

// ---- parsing ----

// ParseError is returned when the input is not a well-formed callable
// type annotation.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return "typesyntax: " + e.Message + " at offset " + strconv.Itoa(e.Pos)
}

// parser is a minimal hand-rolled scanner+recursive-descent parser
// over the raw string, in the same single-cursor-never-consumes-on-
// lookahead discipline as internal/token.Stream, but specialized to
// this much smaller grammar. Spans it produces carry only a byte
// offset: this sub-grammar has no notion of the line/column the
// annotation occupies in the file it was sliced from.
type parser struct {
	src string
	pos int
}

// spanAt builds a span.Span from a pair of byte offsets into src.
func spanAt(start, end int) span.Span {
	return span.Span{
		Start: span.Position{Offset: start},
		End:   span.Position{Offset: end},
	}
}

// parse parses a single callable-type annotation from src and requires
// the entire string (apart from surrounding spaces and tabs) to be
// consumed. ParseCallableType is its exported entry point.
func parse(src string) (*CallableType, error) {
	p := &parser{src: src}
	p.skipSpace()
	ct, err := p.parseCallableType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, &ParseError{Pos: p.pos, Message: "trailing input after callable type"}
	}
	return ct, nil
}

// ParseCallableType parses src as a complete callable-type annotation,
// e.g. "Closure(int, string=, float...): void".
func ParseCallableType(src string) (*CallableType, error) {
	return parse(src)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peekByte() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) hasPrefix(s string) bool {
	return p.pos+len(s) <= len(p.src) && p.src[p.pos:p.pos+len(s)] == s
}

func isIdentByte(b byte, first bool) bool {
	if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_' || b == '\\' {
		return true
	}
	if !first && b >= '0' && b <= '9' {
		return true
	}
	return false
}

func (p *parser) parseIdent() (string, error) {
	start := p.pos
	if p.pos >= len(p.src) || !isIdentByte(p.src[p.pos], true) {
		return "", &ParseError{Pos: p.pos, Message: "expected identifier"}
	}
	p.pos++
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos], false) {
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func (p *parser) parseCallableType() (*CallableType, error) {
	keywordStart := p.pos
	pure := false
	if p.hasPrefix("pure") && p.pos+4 <= len(p.src) && (p.pos+4 == len(p.src) || !isIdentByte(p.src[p.pos+4], false)) {
		p.pos += 4
		pure = true
		p.skipSpace()
	}

	var base CallableKind
	switch {
	case p.hasPrefix("callable"):
		p.pos += len("callable")
		base = Callable
	case p.hasPrefix("Closure"):
		p.pos += len("Closure")
		base = ClosureKind
	default:
		return nil, &ParseError{Pos: p.pos, Message: "expected 'callable' or 'Closure'"}
	}
	keywordEnd := p.pos

	kind := base
	if pure {
		if base == Callable {
			kind = PureCallable
		} else {
			kind = PureClosureKind
		}
	}

	ct := &CallableType{Kind: kind, Keyword: spanAt(keywordStart, keywordEnd)}

	save := p.pos
	p.skipSpace()
	if p.peekByte() != '(' {
		p.pos = save
		return ct, nil
	}
	lParenStart := p.pos
	p.pos++ // consume '('
	spec := &CallableTypeSpecification{LParen: spanAt(lParenStart, p.pos)}

	p.skipSpace()
	for p.peekByte() != ')' {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		if p.skipSpace(); p.peekByte() == ',' {
			commaSpan := spanAt(p.pos, p.pos+1)
			param.Comma = &commaSpan
			p.pos++
			spec.Parameters = append(spec.Parameters, param)
			p.skipSpace()
			continue
		}
		spec.Parameters = append(spec.Parameters, param)
		break
	}
	if p.peekByte() != ')' {
		return nil, &ParseError{Pos: p.pos, Message: "expected ')'"}
	}
	rParenStart := p.pos
	p.pos++ // consume ')'
	spec.RParen = spanAt(rParenStart, p.pos)

	p.skipSpace()
	if p.peekByte() == ':' {
		colonStart := p.pos
		p.pos++
		colonSpan := spanAt(colonStart, p.pos)
		spec.Colon = &colonSpan
		p.skipSpace()
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		spec.Return = ret
	}

	ct.Spec = spec
	return ct, nil
}

func (p *parser) parseParameter() (CallableTypeParameter, error) {
	t, err := p.parseType()
	if err != nil {
		return CallableTypeParameter{}, err
	}
	param := CallableTypeParameter{Type: t}
	if p.peekByte() == '=' {
		s := spanAt(p.pos, p.pos+1)
		p.pos++
		param.Optional = &s
	} else if p.hasPrefix("...") {
		s := spanAt(p.pos, p.pos+3)
		p.pos += 3
		param.Variadic = &s
	}
	return param, nil
}

func (p *parser) parseType() (Type, error) {
	start := p.pos
	if p.peekByte() == '?' {
		p.pos++
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return NullableType{Question: spanAt(start, start+1), Inner: inner}, nil
	}
	if p.hasPrefix("pure ") || p.hasPrefix("callable") || p.hasPrefix("Closure") {
		save := p.pos
		if nested, err := p.parseCallableType(); err == nil {
			return nested, nil
		}
		p.pos = save
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return NamedType{Name: name, NameSpan: spanAt(start, p.pos)}, nil
}
