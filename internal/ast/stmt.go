package ast

import "github.com/mago-go/phrix/internal/span"

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	StmtBase
	Expr      Expr
	Semicolon span.Span
}

// Block represents a brace-delimited block of statements: { ... }.
type Block struct {
	StmtBase
	LBrace span.Span
	Stmts  []Stmt
	RBrace span.Span
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil if absent
}

// ============================================================
// If
// ============================================================

// If represents a conditional with exactly one of two mutually
// exclusive body shapes.
type If struct {
	StmtBase
	Keyword   span.Span
	Condition Expr
	Body      IfBody
}

// IfBody is the closed sum of the two shapes an If's body can take.
type IfBody interface {
	ifBodyNode()
}

// StatementIfBody is `if (cond) stmt [elseif (cond) stmt]* [else stmt]`.
type StatementIfBody struct {
	Then    Stmt
	ElseIfs []ElseIfClause
	Else    Stmt // nil if absent
}

func (StatementIfBody) ifBodyNode() {}

// ElseIfClause is one `elseif (cond) stmt` branch of a statement-form If.
type ElseIfClause struct {
	Span_     span.Span
	Condition Expr
	Body      Stmt
}

func (c ElseIfClause) Span() span.Span { return c.Span_ }

// ColonDelimitedIfBody is the `: stmts... [elseif(...): stmts...]*
// [else: stmts...] endif terminator` shape.
type ColonDelimitedIfBody struct {
	Colon      span.Span
	Then       []Stmt
	ElseIfs    []ColonElseIfClause
	Else       *ColonElseClause
	EndIf      span.Span
	Terminator span.Span // semicolon or closing tag
}

func (ColonDelimitedIfBody) ifBodyNode() {}

// ColonElseIfClause is one `elseif (cond): stmts...` branch.
type ColonElseIfClause struct {
	Span_     span.Span
	Condition Expr
	Colon     span.Span
	Body      []Stmt
}

func (c ColonElseIfClause) Span() span.Span { return c.Span_ }

// ColonElseClause is the `else: stmts...` tail.
type ColonElseClause struct {
	Span_ span.Span
	Colon span.Span
	Body  []Stmt
}

func (c ColonElseClause) Span() span.Span { return c.Span_ }

// ============================================================
// Use imports
// ============================================================

// UseItemType marks whether a use-import item is specifically for a
// const, a function, or untyped (a class/namespace import).
type UseItemType int

const (
	UseItemTypeNone UseItemType = iota
	UseItemTypeConst
	UseItemTypeFunction
)

func (t UseItemType) String() string {
	switch t {
	case UseItemTypeConst:
		return "const"
	case UseItemTypeFunction:
		return "function"
	default:
		return ""
	}
}

// UseItem is one imported name, with an optional per-item type marker
// (only ever set for items inside a MixedUseItemList) and an optional
// alias.
type UseItem struct {
	Span_ span.Span
	Type  UseItemType // UseItemTypeNone unless this item overrides the list's type
	Name  LocalIdentifier
	As    *span.Span
	Alias *LocalIdentifier
}

func (u UseItem) Span() span.Span { return u.Span_ }

// UseItemList is the closed sum of the four shapes a `use` import can
// take:
//
//   - TypedSequenceUseItemList:  use const|function name[, name]*;
//   - TypedListUseItemList:      use const|function ns\{ name[, name]* [,] };
//   - SequenceUseItemList:       use name[, name]*;
//   - MixedUseItemList:          use ns\{ [type?] name[, name]* [,] };
//
// The four shapes are disjoint and total over legal input: the
// parser's two-token lookahead in parseUse always selects exactly one.
type UseItemList interface {
	useItemListNode()
}

// TypedSequenceUseItemList is `use const|function name[, name]*;`.
type TypedSequenceUseItemList struct {
	Type  UseItemType // always Const or Function
	Items TokenSeparatedSequence[UseItem]
}

func (TypedSequenceUseItemList) useItemListNode() {}

// TypedListUseItemList is `use const|function ns\{ name[, name]* [,] };`.
type TypedListUseItemList struct {
	Type      UseItemType // always Const or Function
	Namespace LocalIdentifier
	Backslash span.Span
	LBrace    span.Span
	Items     TokenSeparatedSequence[UseItem]
	RBrace    span.Span
}

func (TypedListUseItemList) useItemListNode() {}

// SequenceUseItemList is `use name[, name]*;`.
type SequenceUseItemList struct {
	Items TokenSeparatedSequence[UseItem]
}

func (SequenceUseItemList) useItemListNode() {}

// MixedUseItemList is `use ns\{ [type?] name[, name]* [,] };`, where
// each item may independently carry `const`/`function`.
type MixedUseItemList struct {
	Namespace LocalIdentifier
	Backslash span.Span
	LBrace    span.Span
	Items     TokenSeparatedSequence[UseItem]
	RBrace    span.Span
}

func (MixedUseItemList) useItemListNode() {}

// Use is a `use` import statement.
type Use struct {
	StmtBase
	Keyword   span.Span
	Items     UseItemList
	Semicolon span.Span
}

// ============================================================
// Goto / labels
// ============================================================

// Goto is a `goto label;` statement.
type Goto struct {
	StmtBase
	Keyword   span.Span
	Label     LocalIdentifier
	Semicolon span.Span
}

// Label is a `label:` declaration, the target of a Goto.
type Label struct {
	StmtBase
	Name  LocalIdentifier
	Colon span.Span
}

// ============================================================
// Class-like constants
// ============================================================

// ConstantItem is one `NAME = value` entry inside a ClassLikeConstant.
type ConstantItem struct {
	Span_ span.Span
	Name  LocalIdentifier
	Equal span.Span
	Value Expr
}

func (c ConstantItem) Span() span.Span { return c.Span_ }

// ClassLikeConstant is `[modifiers] const [Type] NAME = value[, ...];`
// declared inside a class/interface/trait/enum body.
type ClassLikeConstant struct {
	StmtBase
	Modifiers []Modifier
	Keyword   span.Span
	Hint      TypeHint // nil if no type hint is present
	Items     TokenSeparatedSequence[ConstantItem]
	Semicolon span.Span
}

// ============================================================
// Declarations
// ============================================================

// FuncDecl represents a function declaration:
// function name(params) [: returnHint] { ... }
type FuncDecl struct {
	StmtBase
	Keyword    span.Span
	Name       LocalIdentifier
	Parameters ParameterList
	ReturnHint TypeHint // nil if absent
	Body       *Block
}

// ClassDecl represents a class declaration.
type ClassDecl struct {
	StmtBase
	Keyword span.Span
	Name    LocalIdentifier
	LBrace  span.Span
	Members []Stmt // methods, ClassLikeConstant, etc.
	RBrace  span.Span
}
