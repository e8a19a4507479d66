package ast

import (
	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/span"
	"github.com/mago-go/phrix/internal/token"
)

// IdentifierExpr represents a bare name reference (a variable,
// constant, or function/class name depending on context).
type IdentifierExpr struct {
	ExprBase
	Name interner.SymbolID
}

// VariableExpr represents a $-prefixed variable reference.
type VariableExpr struct {
	ExprBase
	Name interner.SymbolID
}

// IntLiteral represents an integer literal.
type IntLiteral struct {
	ExprBase
	Value int64
}

// FloatLiteral represents a floating-point literal.
type FloatLiteral struct {
	ExprBase
	Value float64
}

// StringLiteral represents a string literal.
type StringLiteral struct {
	ExprBase
	Value string
}

// BoolLiteral represents true or false.
type BoolLiteral struct {
	ExprBase
	Value bool
}

// NullLiteral represents null.
type NullLiteral struct {
	ExprBase
}

// UnaryExpr represents a unary operation: !x, -x.
type UnaryExpr struct {
	ExprBase
	Op      token.Kind
	OpSpan  span.Span
	Operand Expr
}

// BinaryExpr represents a binary operation: a + b, x == y.
type BinaryExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// CallExpr represents a function call: f(args).
type CallExpr struct {
	ExprBase
	Callee    Expr
	Arguments Arguments
}

// MemberAccessExpr represents member access: a->b.
type MemberAccessExpr struct {
	ExprBase
	Object   Expr
	Arrow    span.Span
	Property LocalIdentifier
}

// ArrayLiteral represents an array literal: [e1, e2, ...].
type ArrayLiteral struct {
	ExprBase
	Elements TokenSeparatedSequence[Expr]
}

// NewExpr represents object creation: new ClassName(args).
type NewExpr struct {
	ExprBase
	ClassName LocalIdentifier
	Arguments *Arguments // nil if the constructor call has no parens
}
