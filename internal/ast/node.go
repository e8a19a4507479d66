// Package ast defines the typed Abstract Syntax Tree produced by the
// parser. Nodes are immutable value types constructed once
// by the parser and never mutated afterward; the tree is acyclic by
// construction and owns its subtrees exclusively. No node holds a
// parent pointer — rules needing contextual state get it from the
// lint engine's LintContext instead.
package ast

import (
	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/span"
)

// Node is the interface implemented by every AST node. Every node's
// span must cover the spans of every child it structurally contains.
type Node interface {
	Span() span.Span
	nodeNode()
}

// Expr is an open sum of expression variants; this AST implements the
// subset needed to exercise every parser algorithm and lint rule this
// toolchain supports: literals, identifiers, calls with Arguments,
// member access, unary/binary operators, array literals, and new.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// base is embedded by every concrete node to provide the common Span
// field and satisfy Node.
type base struct {
	span span.Span
}

func (b base) Span() span.Span { return b.span }
func (base) nodeNode()         {}

// SetSpan sets the node's span. Exposed (via promotion) so the parser
// can finish constructing a node's exported fields before sealing in
// the span computed from whichever prefix/suffix components turned
// out to be present.
func (b *base) SetSpan(s span.Span) { b.span = s }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ base }

func (ExprBase) exprNode() {}

// NewExprBase constructs an ExprBase with the given span.
func NewExprBase(s span.Span) ExprBase { return ExprBase{base{s}} }

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ base }

func (StmtBase) stmtNode() {}

// NewStmtBase constructs a StmtBase with the given span.
func NewStmtBase(s span.Span) StmtBase { return StmtBase{base{s}} }

// LocalIdentifier is an interned symbol id plus the span of its
// occurrence. Comparing two LocalIdentifiers by Name is
// O(1); resolving to text requires the interner. It is a plain value
// type embedded by nodes, not itself a Node — there is nowhere in the
// grammar an identifier stands alone as a top-level AST node.
type LocalIdentifier struct {
	Name   interner.SymbolID
	IDSpan span.Span
}

func (id LocalIdentifier) Span() span.Span { return id.IDSpan }

// Text resolves the identifier's text via in.
func (id LocalIdentifier) Text(in *interner.Interner) string {
	return in.Lookup(id.Name)
}

// File is the AST root: the entire source file.
type File struct {
	base
	Body []Node // top-level statements and declarations
}

// NewFile constructs a File with the given span.
func NewFile(body []Node, s span.Span) *File {
	return &File{base: base{s}, Body: body}
}
