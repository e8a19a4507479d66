// Package parser implements the syntax analysis for the toolchain. It
// drives a token.Stream with a recursive-descent grammar for
// statements and declarations and a Pratt grammar for expressions,
// producing the typed ast.Node tree.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/span"
	"github.com/mago-go/phrix/internal/token"
)

// ============================================================
// Binding power (precedence) levels
// ============================================================

const (
	bpNone       = 0
	bpAssign     = 5  // = (right-associative)
	bpOr         = 10 // ||
	bpAnd        = 20 // &&
	bpEquality   = 30 // == !=
	bpComparison = 40 // < <= > >=
	bpAdditive   = 50 // + -
	bpMultiply   = 60 // * / %
	bpPrefix     = 70 // ! -
	bpPostfix    = 80 // () [] ->
)

func infixBP(kind token.Kind) int {
	switch kind {
	case token.ASSIGN:
		return bpAssign
	case token.OROR:
		return bpOr
	case token.ANDAND:
		return bpAnd
	case token.EQ, token.NEQ:
		return bpEquality
	case token.LT, token.LTE, token.GT, token.GTE:
		return bpComparison
	case token.PLUS, token.MINUS:
		return bpAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return bpMultiply
	case token.LPAREN, token.LBRACKET, token.ARROW:
		return bpPostfix
	default:
		return bpNone
	}
}

// ============================================================
// Errors
// ============================================================

// Malformed reports a syntactically well-delimited construct whose
// contents violate a grammar-level constraint (e.g. an integer or float
// literal whose text does not convert to its value). Distinct from the
// token.Stream's UnexpectedToken/UnexpectedEnd, which report raw
// expectation mismatches.
type Malformed struct {
	Span    span.Span
	Message string
}

func (e *Malformed) Error() string { return e.Message }

// ============================================================
// Parser
// ============================================================

// Parser performs syntax analysis on a token.Stream, interning
// identifier text through in. A Parser is single-use: construct one
// per ParseFile call.
type Parser struct {
	s  *token.Stream
	in *interner.Interner
}

// New creates a Parser over an already-lexed token stream.
func New(s *token.Stream, in *interner.Interner) *Parser {
	return &Parser{s: s, in: in}
}

// ParseFile parses an entire source file. Parsing is all-or-nothing:
// on any error, no partial AST is returned.
func (p *Parser) ParseFile() (*ast.File, error) {
	start := p.s.Peek().Span.Start

	if p.s.Check(token.OpenTag) {
		p.s.Advance()
	}

	var body []ast.Node
	for !p.s.AtEnd() && !p.s.Check(token.CloseTag) {
		node, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		body = append(body, node)
	}

	end := p.s.Peek().Span.End
	if p.s.Check(token.CloseTag) {
		end = p.s.Advance().Span.End
	}

	return ast.NewFile(body, span.Span{Start: start, End: end}), nil
}

// ============================================================
// Top-level / statement dispatch
// ============================================================

func (p *Parser) parseTopLevel() (ast.Node, error) {
	return p.parseStatement()
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.s.Check(token.KW_IF):
		return p.parseIf()
	case p.s.Check(token.KW_USE):
		return p.parseUse()
	case p.s.Check(token.KW_GOTO):
		return p.parseGoto()
	case p.s.Check(token.KW_RETURN):
		return p.parseReturn()
	case p.s.Check(token.KW_FUNCTION):
		return p.parseFuncDecl()
	case p.s.Check(token.KW_CLASS):
		return p.parseClassDecl()
	case p.s.Check(token.LBRACE):
		return p.parseBlock()
	case p.s.Check(token.IDENT) && p.s.MaybePeekNth(2).Kind == token.COLON:
		return p.parseLabel()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.s.Expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.s.Check(token.RBRACE) && !p.s.AtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	rbrace, err := p.s.Expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.Block{
		StmtBase: ast.NewStmtBase(span.Between(lbrace.Span, rbrace.Span)),
		LBrace:   lbrace.Span,
		Stmts:    stmts,
		RBrace:   rbrace.Span,
	}, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	expr, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	semi, err := p.s.Expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{
		StmtBase:  ast.NewStmtBase(span.Between(expr.Span(), semi.Span)),
		Expr:      expr,
		Semicolon: semi.Span,
	}, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStmt, error) {
	kw, err := p.s.Expect(token.KW_RETURN)
	if err != nil {
		return nil, err
	}
	var value ast.Expr
	if !p.s.Check(token.SEMICOLON) {
		value, err = p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
	}
	semi, err := p.s.Expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{
		StmtBase: ast.NewStmtBase(span.Between(kw.Span, semi.Span)),
		Value:    value,
	}, nil
}

func (p *Parser) parseGoto() (*ast.Goto, error) {
	kw, err := p.s.Expect(token.KW_GOTO)
	if err != nil {
		return nil, err
	}
	label, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	semi, err := p.s.Expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.Goto{
		StmtBase:  ast.NewStmtBase(span.Between(kw.Span, semi.Span)),
		Keyword:   kw.Span,
		Label:     label,
		Semicolon: semi.Span,
	}, nil
}

func (p *Parser) parseLabel() (*ast.Label, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	colon, err := p.s.Expect(token.COLON)
	if err != nil {
		return nil, err
	}
	return &ast.Label{
		StmtBase: ast.NewStmtBase(span.Between(name.Span(), colon.Span)),
		Name:     name,
		Colon:    colon.Span,
	}, nil
}

// ============================================================
// If-statement dispatch
// ============================================================

func (p *Parser) parseIf() (*ast.If, error) {
	kw, err := p.s.Expect(token.KW_IF)
	if err != nil {
		return nil, err
	}
	if _, err := p.s.Expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.s.Expect(token.RPAREN); err != nil {
		return nil, err
	}

	// Two-shape dispatch: peeking for ':' picks the body shape.
	if p.s.Check(token.COLON) {
		return p.parseColonIf(kw.Span, cond)
	}
	return p.parseStatementIf(kw.Span, cond)
}

func (p *Parser) parseStatementIf(kw span.Span, cond ast.Expr) (*ast.If, error) {
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseIfs []ast.ElseIfClause
	for p.s.Check(token.KW_ELSEIF) {
		eiKw, _ := p.s.Expect(token.KW_ELSEIF)
		if _, err := p.s.Expect(token.LPAREN); err != nil {
			return nil, err
		}
		eiCond, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.s.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		eiBody, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		elseIfs = append(elseIfs, ast.ElseIfClause{
			Span_:     span.Between(eiKw.Span, eiBody.Span()),
			Condition: eiCond,
			Body:      eiBody,
		})
	}

	var elseStmt ast.Stmt
	end := then.Span()
	if len(elseIfs) > 0 {
		end = elseIfs[len(elseIfs)-1].Span()
	}
	if p.s.Check(token.KW_ELSE) {
		p.s.Advance()
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
		end = elseStmt.Span()
	}

	return &ast.If{
		StmtBase:  ast.NewStmtBase(span.Between(kw, end)),
		Keyword:   kw,
		Condition: cond,
		Body: ast.StatementIfBody{
			Then:    then,
			ElseIfs: elseIfs,
			Else:    elseStmt,
		},
	}, nil
}

func (p *Parser) parseColonIf(kw span.Span, cond ast.Expr) (*ast.If, error) {
	colon, err := p.s.Expect(token.COLON)
	if err != nil {
		return nil, err
	}
	then, err := p.parseStmtsUntil(token.KW_ELSEIF, token.KW_ELSE, token.KW_ENDIF)
	if err != nil {
		return nil, err
	}

	var elseIfs []ast.ColonElseIfClause
	for p.s.Check(token.KW_ELSEIF) {
		eiKw, _ := p.s.Expect(token.KW_ELSEIF)
		if _, err := p.s.Expect(token.LPAREN); err != nil {
			return nil, err
		}
		eiCond, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.s.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		eiColon, err := p.s.Expect(token.COLON)
		if err != nil {
			return nil, err
		}
		body, err := p.parseStmtsUntil(token.KW_ELSEIF, token.KW_ELSE, token.KW_ENDIF)
		if err != nil {
			return nil, err
		}
		elseIfs = append(elseIfs, ast.ColonElseIfClause{
			Span_:     span.Between(eiKw.Span, eiColon.Span),
			Condition: eiCond,
			Colon:     eiColon.Span,
			Body:      body,
		})
	}

	var elseClause *ast.ColonElseClause
	if p.s.Check(token.KW_ELSE) {
		elseKw, _ := p.s.Expect(token.KW_ELSE)
		elseColon, err := p.s.Expect(token.COLON)
		if err != nil {
			return nil, err
		}
		body, err := p.parseStmtsUntil(token.KW_ENDIF)
		if err != nil {
			return nil, err
		}
		elseClause = &ast.ColonElseClause{
			Span_: span.Between(elseKw.Span, elseColon.Span),
			Colon: elseColon.Span,
			Body:  body,
		}
	}

	endif, err := p.s.Expect(token.KW_ENDIF)
	if err != nil {
		return nil, err
	}
	terminator, err := p.s.ExpectAny(token.SEMICOLON, token.CloseTag)
	if err != nil {
		return nil, err
	}

	return &ast.If{
		StmtBase:  ast.NewStmtBase(span.Between(kw, terminator.Span)),
		Keyword:   kw,
		Condition: cond,
		Body: ast.ColonDelimitedIfBody{
			Colon:      colon.Span,
			Then:       then,
			ElseIfs:    elseIfs,
			Else:       elseClause,
			EndIf:      endif.Span,
			Terminator: terminator.Span,
		},
	}, nil
}

// parseStmtsUntil parses statements until the next token is one of
// stop (not consumed).
func (p *Parser) parseStmtsUntil(stop ...token.Kind) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.s.CheckAny(stop...) && !p.s.AtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ============================================================
// Use-import dispatch
// ============================================================

func (p *Parser) parseUse() (*ast.Use, error) {
	kw, err := p.s.Expect(token.KW_USE)
	if err != nil {
		return nil, err
	}

	var itemType ast.UseItemType
	hasTypeKeyword := false
	if p.s.Check(token.KW_CONST) {
		p.s.Advance()
		itemType = ast.UseItemTypeConst
		hasTypeKeyword = true
	} else if p.s.Check(token.KW_FUNCTION) {
		p.s.Advance()
		itemType = ast.UseItemTypeFunction
		hasTypeKeyword = true
	}

	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}

	var items ast.UseItemList

	if p.s.Check(token.BACKSLASH) && p.s.MaybePeekNth(2).Kind == token.LBRACE {
		backslash := p.s.Advance().Span
		lbrace, _ := p.s.Expect(token.LBRACE)
		if hasTypeKeyword {
			list, rbrace, err := p.parseUseItemGroup(false)
			if err != nil {
				return nil, err
			}
			items = ast.TypedListUseItemList{Type: itemType, Namespace: name, Backslash: backslash, LBrace: lbrace.Span, Items: list, RBrace: rbrace.Span}
		} else {
			list, rbrace, err := p.parseUseItemGroup(true)
			if err != nil {
				return nil, err
			}
			items = ast.MixedUseItemList{Namespace: name, Backslash: backslash, LBrace: lbrace.Span, Items: list, RBrace: rbrace.Span}
		}
	} else {
		first := ast.UseItem{Span_: name.Span(), Name: name}
		if p.s.Check(token.KW_AS) {
			asSpan, _ := p.s.Expect(token.KW_AS)
			alias, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			first.As = &asSpan.Span
			first.Alias = &alias
			first.Span_ = span.Between(name.Span(), alias.Span())
		}
		rest, seps, err := p.parseUseItemTail()
		if err != nil {
			return nil, err
		}
		seq := ast.TokenSeparatedSequence[ast.UseItem]{
			Items:      append([]ast.UseItem{first}, rest...),
			Separators: seps,
		}
		if hasTypeKeyword {
			items = ast.TypedSequenceUseItemList{Type: itemType, Items: seq}
		} else {
			items = ast.SequenceUseItemList{Items: seq}
		}
	}

	semi, err := p.s.Expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}

	return &ast.Use{
		StmtBase:  ast.NewStmtBase(span.Between(kw.Span, semi.Span)),
		Keyword:   kw.Span,
		Items:     items,
		Semicolon: semi.Span,
	}, nil
}

// parseUseItemTail parses zero or more ", item" entries after the
// first use item, stopping at ';'.
func (p *Parser) parseUseItemTail() ([]ast.UseItem, []span.Span, error) {
	var items []ast.UseItem
	var seps []span.Span
	for p.s.Check(token.COMMA) {
		comma, _ := p.s.Expect(token.COMMA)
		seps = append(seps, comma.Span)
		if p.s.Check(token.SEMICOLON) {
			break // trailing comma
		}
		item, err := p.parseUseItem(false)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}
	return items, seps, nil
}

// parseUseItemGroup parses the brace-delimited item list of a
// TypedListUseItemList or MixedUseItemList: `{ item[, item]* [,] }`.
// allowPerItemType controls whether each item may carry its own
// const/function marker (true only for MixedUseItemList).
func (p *Parser) parseUseItemGroup(allowPerItemType bool) (ast.TokenSeparatedSequence[ast.UseItem], token.Token, error) {
	var seq ast.TokenSeparatedSequence[ast.UseItem]
	for !p.s.Check(token.RBRACE) && !p.s.AtEnd() {
		item, err := p.parseUseItem(allowPerItemType)
		if err != nil {
			return seq, token.Token{}, err
		}
		seq.Items = append(seq.Items, item)
		if p.s.Check(token.COMMA) {
			comma, _ := p.s.Expect(token.COMMA)
			seq.Separators = append(seq.Separators, comma.Span)
			continue
		}
		break
	}
	rbrace, err := p.s.Expect(token.RBRACE)
	if err != nil {
		return seq, token.Token{}, err
	}
	return seq, rbrace, nil
}

func (p *Parser) parseUseItem(allowPerItemType bool) (ast.UseItem, error) {
	var itemType ast.UseItemType
	start := p.s.Peek().Span
	if allowPerItemType {
		if p.s.Check(token.KW_CONST) {
			p.s.Advance()
			itemType = ast.UseItemTypeConst
		} else if p.s.Check(token.KW_FUNCTION) {
			p.s.Advance()
			itemType = ast.UseItemTypeFunction
		}
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return ast.UseItem{}, err
	}
	item := ast.UseItem{Span_: span.Between(start, name.Span()), Type: itemType, Name: name}
	if p.s.Check(token.KW_AS) {
		asSpan, _ := p.s.Expect(token.KW_AS)
		alias, err := p.parseIdent()
		if err != nil {
			return ast.UseItem{}, err
		}
		item.As = &asSpan.Span
		item.Alias = &alias
		item.Span_ = span.Between(start, alias.Span())
	}
	return item, nil
}

// parseQualifiedName parses a (possibly namespaced) name: IDENT
// (BACKSLASH IDENT)*, joining segments with '\' into one interned
// identifier.
func (p *Parser) parseQualifiedName() (ast.LocalIdentifier, error) {
	first, err := p.s.Expect(token.IDENT)
	if err != nil {
		return ast.LocalIdentifier{}, err
	}
	segments := []string{first.Lexeme}
	end := first.Span
	for p.s.Check(token.BACKSLASH) && p.s.MaybePeekNth(2).Kind == token.IDENT {
		p.s.Advance()
		seg, _ := p.s.Expect(token.IDENT)
		segments = append(segments, seg.Lexeme)
		end = seg.Span
	}
	full := strings.Join(segments, "\\")
	return ast.LocalIdentifier{
		Name:   p.in.Intern(full),
		IDSpan: span.Between(first.Span, end),
	}, nil
}

func (p *Parser) parseIdent() (ast.LocalIdentifier, error) {
	tok, err := p.s.Expect(token.IDENT)
	if err != nil {
		return ast.LocalIdentifier{}, err
	}
	return ast.LocalIdentifier{Name: p.in.Intern(tok.Lexeme), IDSpan: tok.Span}, nil
}

func (p *Parser) parseVariableIdent() (ast.LocalIdentifier, error) {
	tok, err := p.s.Expect(token.VARIABLE)
	if err != nil {
		return ast.LocalIdentifier{}, err
	}
	return ast.LocalIdentifier{Name: p.in.Intern(tok.Lexeme), IDSpan: tok.Span}, nil
}

// ============================================================
// Declarations
// ============================================================

func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	kw, err := p.s.Expect(token.KW_FUNCTION)
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	var returnHint ast.TypeHint
	if p.s.Check(token.COLON) {
		p.s.Advance()
		returnHint, err = p.parseTypeHint()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{
		StmtBase:   ast.NewStmtBase(span.Between(kw.Span, body.Span())),
		Keyword:    kw.Span,
		Name:       name,
		Parameters: params,
		ReturnHint: returnHint,
		Body:       body,
	}, nil
}

func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	kw, err := p.s.Expect(token.KW_CLASS)
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	lbrace, err := p.s.Expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	var members []ast.Stmt
	for !p.s.Check(token.RBRACE) && !p.s.AtEnd() {
		member, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	rbrace, err := p.s.Expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.ClassDecl{
		StmtBase: ast.NewStmtBase(span.Between(kw.Span, rbrace.Span)),
		Keyword:  kw.Span,
		Name:     name,
		LBrace:   lbrace.Span,
		Members:  members,
		RBrace:   rbrace.Span,
	}, nil
}

var modifierKinds = []token.Kind{
	token.KW_PUBLIC, token.KW_PRIVATE, token.KW_PROTECTED, token.KW_READONLY, token.KW_STATIC,
}

func (p *Parser) parseModifiers() ([]ast.Modifier, error) {
	var mods []ast.Modifier
	for p.s.CheckAny(modifierKinds...) {
		tok := p.s.Advance()
		mods = append(mods, ast.Modifier{Keyword: ast.LocalIdentifier{Name: p.in.Intern(tok.Lexeme), IDSpan: tok.Span}})
	}
	return mods, nil
}

// parseClassMember dispatches between a class-like constant and a
// method declaration, the two member shapes this grammar models.
func (p *Parser) parseClassMember() (ast.Stmt, error) {
	start := p.s.Peek().Span
	mods, _ := p.parseModifiers()

	if p.s.Check(token.KW_CONST) {
		return p.parseClassLikeConstant(start, mods)
	}
	return p.parseFuncDecl()
}

func (p *Parser) parseClassLikeConstant(start span.Span, mods []ast.Modifier) (*ast.ClassLikeConstant, error) {
	kw, err := p.s.Expect(token.KW_CONST)
	if err != nil {
		return nil, err
	}

	// A type hint is present iff the token after the (possible) hint
	// is NOT immediately followed by '=' on the first item name — i.e.
	// IDENT IDENT '=' means the first IDENT was a type hint.
	var hint ast.TypeHint
	if p.s.Check(token.IDENT) && p.s.MaybePeekNth(2).Kind == token.IDENT {
		hint, err = p.parseTypeHint()
		if err != nil {
			return nil, err
		}
	} else if p.s.Check(token.QUESTION) {
		hint, err = p.parseTypeHint()
		if err != nil {
			return nil, err
		}
	}

	var seq ast.TokenSeparatedSequence[ast.ConstantItem]
	for {
		item, err := p.parseConstantItem()
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, item)
		if p.s.Check(token.COMMA) {
			comma, _ := p.s.Expect(token.COMMA)
			seq.Separators = append(seq.Separators, comma.Span)
			continue
		}
		break
	}

	semi, err := p.s.Expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}

	begin := start
	if len(mods) == 0 {
		begin = kw.Span
	}

	return &ast.ClassLikeConstant{
		StmtBase:  ast.NewStmtBase(span.Between(begin, semi.Span)),
		Modifiers: mods,
		Keyword:   kw.Span,
		Hint:      hint,
		Items:     seq,
		Semicolon: semi.Span,
	}, nil
}

func (p *Parser) parseConstantItem() (ast.ConstantItem, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ast.ConstantItem{}, err
	}
	eq, err := p.s.Expect(token.ASSIGN)
	if err != nil {
		return ast.ConstantItem{}, err
	}
	value, err := p.parseExpr(bpNone)
	if err != nil {
		return ast.ConstantItem{}, err
	}
	return ast.ConstantItem{
		Span_: span.Between(name.Span(), value.Span()),
		Name:  name,
		Equal: eq.Span,
		Value: value,
	}, nil
}

// ============================================================
// Type hints
// ============================================================

func (p *Parser) parseTypeHint() (ast.TypeHint, error) {
	if p.s.Check(token.QUESTION) {
		q := p.s.Advance()
		inner, err := p.parseTypeHint()
		if err != nil {
			return nil, err
		}
		nt := &ast.NullableTypeHint{Question: q.Span, Inner: inner}
		nt.SetSpan(span.Between(q.Span, inner.Span()))
		return nt, nil
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	nt := &ast.NamedTypeHint{Name: name}
	nt.SetSpan(name.Span())
	return nt, nil
}

// ============================================================
// Parameters
// ============================================================

func (p *Parser) parseParameterList() (ast.ParameterList, error) {
	lparen, err := p.s.Expect(token.LPAREN)
	if err != nil {
		return ast.ParameterList{}, err
	}
	var seq ast.TokenSeparatedSequence[ast.Parameter]
	for !p.s.Check(token.RPAREN) && !p.s.AtEnd() {
		param, err := p.parseParameter()
		if err != nil {
			return ast.ParameterList{}, err
		}
		seq.Items = append(seq.Items, param)
		if p.s.Check(token.COMMA) {
			comma, _ := p.s.Expect(token.COMMA)
			seq.Separators = append(seq.Separators, comma.Span)
			continue
		}
		break
	}
	rparen, err := p.s.Expect(token.RPAREN)
	if err != nil {
		return ast.ParameterList{}, err
	}
	pl := ast.ParameterList{LParen: lparen.Span, List: seq, RParen: rparen.Span}
	pl.SetSpan(span.Between(lparen.Span, rparen.Span))
	return pl, nil
}

// parseParameter implements the attributes -> modifiers -> hint ->
// ellipsis -> ampersand -> variable -> default -> hooks grammar, and
// computes the parameter's span from whichever prefix component is
// actually present through to whichever suffix component is actually
// present.
func (p *Parser) parseParameter() (ast.Parameter, error) {
	var param ast.Parameter
	var firstSpan span.Span
	haveFirst := false

	mark := func(s span.Span) {
		if !haveFirst {
			firstSpan = s
			haveFirst = true
		}
	}

	for p.s.Check(token.ATTR_OPEN) {
		attrList, err := p.parseAttributeList()
		if err != nil {
			return ast.Parameter{}, err
		}
		mark(attrList.Span())
		param.Attributes = append(param.Attributes, attrList)
	}

	mods, _ := p.parseModifiers()
	if len(mods) > 0 {
		mark(mods[0].Keyword.Span())
	}
	param.Modifiers = mods

	if p.s.Check(token.IDENT) || p.s.Check(token.QUESTION) {
		hint, err := p.parseTypeHint()
		if err != nil {
			return ast.Parameter{}, err
		}
		mark(hint.Span())
		param.Hint = hint
	}

	if s, ok := p.s.MaybeExpect(token.ELLIPSIS); ok {
		mark(s)
		param.Ellipsis = &s
	}
	if s, ok := p.s.MaybeExpect(token.AMP); ok {
		mark(s)
		param.Ampersand = &s
	}

	variable, err := p.parseVariableIdent()
	if err != nil {
		return ast.Parameter{}, err
	}
	mark(variable.Span())
	param.Variable = variable

	lastSpan := variable.Span()

	if p.s.Check(token.ASSIGN) {
		p.s.Advance()
		def, err := p.parseExpr(bpNone)
		if err != nil {
			return ast.Parameter{}, err
		}
		param.Default = def
		lastSpan = def.Span()
	}

	if p.s.Check(token.LBRACE) {
		hooks, err := p.parsePropertyHooks()
		if err != nil {
			return ast.Parameter{}, err
		}
		param.Hooks = hooks
		if len(hooks) > 0 {
			lastSpan = hooks[len(hooks)-1].Span()
		}
	}

	param.SetSpan(span.Between(firstSpan, lastSpan))
	return param, nil
}

func (p *Parser) parsePropertyHooks() ([]ast.PropertyHook, error) {
	if _, err := p.s.Expect(token.LBRACE); err != nil {
		return nil, err
	}
	var hooks []ast.PropertyHook
	for p.s.CheckAny(token.KW_GET, token.KW_SET) {
		tok := p.s.Advance()
		keyword := ast.LocalIdentifier{Name: p.in.Intern(tok.Lexeme), IDSpan: tok.Span}
		var body ast.Stmt
		end := tok.Span
		if p.s.Check(token.LBRACE) {
			block, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			body = block
			end = block.Span()
		} else if _, ok := p.s.MaybeExpect(token.SEMICOLON); ok {
			// abstract hook, no body
		}
		hook := ast.PropertyHook{Keyword: keyword, Body: body}
		hook.SetSpan(span.Between(tok.Span, end))
		hooks = append(hooks, hook)
	}
	if _, err := p.s.Expect(token.RBRACE); err != nil {
		return nil, err
	}
	return hooks, nil
}

func (p *Parser) parseAttributeList() (ast.AttributeList, error) {
	open, err := p.s.Expect(token.ATTR_OPEN)
	if err != nil {
		return ast.AttributeList{}, err
	}
	var seq ast.TokenSeparatedSequence[ast.Attribute]
	for !p.s.Check(token.RBRACKET) && !p.s.AtEnd() {
		attr, err := p.parseAttribute()
		if err != nil {
			return ast.AttributeList{}, err
		}
		seq.Items = append(seq.Items, attr)
		if p.s.Check(token.COMMA) {
			comma, _ := p.s.Expect(token.COMMA)
			seq.Separators = append(seq.Separators, comma.Span)
			continue
		}
		break
	}
	closeBracket, err := p.s.Expect(token.RBRACKET)
	if err != nil {
		return ast.AttributeList{}, err
	}
	al := ast.AttributeList{Items: seq}
	al.SetSpan(span.Between(open.Span, closeBracket.Span))
	return al, nil
}

func (p *Parser) parseAttribute() (ast.Attribute, error) {
	name, err := p.parseQualifiedName()
	if err != nil {
		return ast.Attribute{}, err
	}
	end := name.Span()
	var args *ast.Arguments
	if p.s.Check(token.LPAREN) {
		a, err := p.parseArguments()
		if err != nil {
			return ast.Attribute{}, err
		}
		args = &a
		end = a.Span()
	}
	attr := ast.Attribute{Name: name, Arguments: args}
	attr.SetSpan(span.Between(name.Span(), end))
	return attr, nil
}

// ============================================================
// Arguments
// ============================================================

func (p *Parser) parseArguments() (ast.Arguments, error) {
	lparen, err := p.s.Expect(token.LPAREN)
	if err != nil {
		return ast.Arguments{}, err
	}
	var seq ast.TokenSeparatedSequence[ast.Argument]
	for !p.s.Check(token.RPAREN) && !p.s.AtEnd() {
		arg, err := p.parseArgument()
		if err != nil {
			return ast.Arguments{}, err
		}
		seq.Items = append(seq.Items, arg)
		if p.s.Check(token.COMMA) {
			comma, _ := p.s.Expect(token.COMMA)
			seq.Separators = append(seq.Separators, comma.Span)
			continue
		}
		break
	}
	rparen, err := p.s.Expect(token.RPAREN)
	if err != nil {
		return ast.Arguments{}, err
	}
	args := ast.Arguments{LParen: lparen.Span, List: seq, RParen: rparen.Span}
	args.SetSpan(span.Between(lparen.Span, rparen.Span))
	return args, nil
}

// parseArgument disambiguates Named from Positional by a two-token
// lookahead: IDENT followed by ':' selects Named.
func (p *Parser) parseArgument() (ast.Argument, error) {
	if p.s.Check(token.IDENT) && p.s.MaybePeekNth(2).Kind == token.COLON {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		colon, _ := p.s.Expect(token.COLON)
		value, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		na := &ast.NamedArgument{Name: name, Colon: colon.Span, Value: value}
		na.SetSpan(span.Between(name.Span(), value.Span()))
		return na, nil
	}

	var ellipsis *span.Span
	start := p.s.Peek().Span
	if s, ok := p.s.MaybeExpect(token.ELLIPSIS); ok {
		ellipsis = &s
	}
	value, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	begin := start
	if ellipsis == nil {
		begin = value.Span()
	}
	pa := &ast.PositionalArgument{Ellipsis: ellipsis, Value: value}
	pa.SetSpan(span.Between(begin, value.Span()))
	return pa, nil
}

// ============================================================
// Expressions (Pratt parsing)
// ============================================================

func (p *Parser) parseExpr(minBP int) (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		kind := p.s.Peek().Kind
		bp := infixBP(kind)
		if bp == 0 || bp <= minBP {
			break
		}

		switch kind {
		case token.LPAREN:
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			call := &ast.CallExpr{Arguments: args, Callee: left}
			call.SetSpan(span.Between(left.Span(), args.Span()))
			left = call
		case token.ARROW:
			arrow := p.s.Advance()
			prop, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			m := &ast.MemberAccessExpr{Object: left, Arrow: arrow.Span, Property: prop}
			m.SetSpan(span.Between(left.Span(), prop.Span()))
			left = m
		case token.LBRACKET:
			// not modeled as indexing in this grammar's expression
			// surface; treat as end of the expression instead of
			// erroring, so callers see a clean stop.
			return left, nil
		default:
			op := p.s.Advance()
			rightMinBP := bp
			if op.Kind == token.ASSIGN {
				rightMinBP = bp - 1 // right-associative
			}
			right, err := p.parseExpr(rightMinBP)
			if err != nil {
				return nil, err
			}
			bin := &ast.BinaryExpr{Op: op.Kind, Left: left, Right: right}
			bin.SetSpan(span.Between(left.Span(), right.Span()))
			left = bin
		}
	}

	return left, nil
}

func (p *Parser) parsePrefix() (ast.Expr, error) {
	tok := p.s.Peek()
	switch tok.Kind {
	case token.BANG, token.MINUS:
		p.s.Advance()
		operand, err := p.parseExpr(bpPrefix)
		if err != nil {
			return nil, err
		}
		u := &ast.UnaryExpr{Op: tok.Kind, OpSpan: tok.Span, Operand: operand}
		u.SetSpan(span.Between(tok.Span, operand.Span()))
		return u, nil
	case token.LPAREN:
		p.s.Advance()
		inner, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.s.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case token.VARIABLE:
		p.s.Advance()
		v := &ast.VariableExpr{Name: p.in.Intern(tok.Lexeme)}
		v.SetSpan(tok.Span)
		return v, nil
	case token.INT:
		p.s.Advance()
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, &Malformed{Span: tok.Span, Message: fmt.Sprintf("invalid integer literal %q: %s", tok.Lexeme, err)}
		}
		lit := &ast.IntLiteral{Value: n}
		lit.SetSpan(tok.Span)
		return lit, nil
	case token.FLOAT:
		p.s.Advance()
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, &Malformed{Span: tok.Span, Message: fmt.Sprintf("invalid float literal %q: %s", tok.Lexeme, err)}
		}
		lit := &ast.FloatLiteral{Value: f}
		lit.SetSpan(tok.Span)
		return lit, nil
	case token.STRING:
		p.s.Advance()
		lit := &ast.StringLiteral{Value: tok.Lexeme}
		lit.SetSpan(tok.Span)
		return lit, nil
	case token.KW_TRUE, token.KW_FALSE:
		p.s.Advance()
		lit := &ast.BoolLiteral{Value: tok.Kind == token.KW_TRUE}
		lit.SetSpan(tok.Span)
		return lit, nil
	case token.KW_NULL:
		p.s.Advance()
		lit := &ast.NullLiteral{}
		lit.SetSpan(tok.Span)
		return lit, nil
	case token.KW_NEW:
		return p.parseNewExpr()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.IDENT:
		p.s.Advance()
		id := &ast.IdentifierExpr{Name: p.in.Intern(tok.Lexeme)}
		id.SetSpan(tok.Span)
		return id, nil
	default:
		if tok.Kind == token.EOF {
			return nil, &token.UnexpectedEnd{Span: tok.Span}
		}
		return nil, &token.UnexpectedToken{Actual: tok.Kind, Span: tok.Span}
	}
}

func (p *Parser) parseNewExpr() (*ast.NewExpr, error) {
	kw, err := p.s.Expect(token.KW_NEW)
	if err != nil {
		return nil, err
	}
	className, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	end := className.Span()
	var args *ast.Arguments
	if p.s.Check(token.LPAREN) {
		a, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		args = &a
		end = a.Span()
	}
	n := &ast.NewExpr{ClassName: className, Arguments: args}
	n.SetSpan(span.Between(kw.Span, end))
	return n, nil
}

func (p *Parser) parseArrayLiteral() (*ast.ArrayLiteral, error) {
	lbracket, err := p.s.Expect(token.LBRACKET)
	if err != nil {
		return nil, err
	}
	var seq ast.TokenSeparatedSequence[ast.Expr]
	for !p.s.Check(token.RBRACKET) && !p.s.AtEnd() {
		elem, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, elem)
		if p.s.Check(token.COMMA) {
			comma, _ := p.s.Expect(token.COMMA)
			seq.Separators = append(seq.Separators, comma.Span)
			continue
		}
		break
	}
	rbracket, err := p.s.Expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	arr := &ast.ArrayLiteral{Elements: seq}
	arr.SetSpan(span.Between(lbracket.Span, rbracket.Span))
	return arr, nil
}

