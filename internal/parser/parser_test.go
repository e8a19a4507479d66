package parser

import (
	"encoding/json"
	"testing"

	"github.com/mago-go/phrix/internal/ast"
	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/lexer"
	"github.com/mago-go/phrix/internal/token"
)

// parseOK lexes and parses source, failing the test on any error.
func parseOK(t *testing.T, source string) (*ast.File, *interner.Interner) {
	t.Helper()
	in := interner.New()
	l := lexer.New(source, in)
	tokens, lexErrs := l.Tokenize()
	if len(lexErrs) > 0 {
		t.Fatalf("lex errors: %v", lexErrs)
	}
	p := New(token.NewStream(tokens), in)
	file, err := p.ParseFile()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return file, in
}

func parseToJSON(t *testing.T, source string) string {
	t.Helper()
	file, in := parseOK(t, source)
	m := ast.NodeToMap(file, in)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		t.Fatalf("json error: %v", err)
	}
	return string(data)
}

func TestParseExprStmt(t *testing.T) {
	file, in := parseOK(t, `<?php $x = 1 + 2 * 3;`)
	if len(file.Body) != 1 {
		t.Fatalf("expected 1 node, got %d", len(file.Body))
	}
	stmt, ok := file.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", file.Body[0])
	}
	bin, ok := stmt.Expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr at top, got %T", stmt.Expr)
	}
	if bin.Op != token.ASSIGN {
		t.Errorf("expected top-level op ASSIGN, got %s", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != token.PLUS {
		t.Fatalf("expected '+' at top of RHS (precedence), got %#v", bin.Right)
	}
	_ = in
}

func TestParseIfStatementForm(t *testing.T) {
	file, _ := parseOK(t, `<?php if ($x) { return $x; } elseif ($y) { return $y; } else { return 0; }`)
	ifStmt, ok := file.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", file.Body[0])
	}
	body, ok := ifStmt.Body.(ast.StatementIfBody)
	if !ok {
		t.Fatalf("expected StatementIfBody, got %T", ifStmt.Body)
	}
	if len(body.ElseIfs) != 1 {
		t.Fatalf("expected 1 elseif, got %d", len(body.ElseIfs))
	}
	if body.Else == nil {
		t.Fatal("expected else branch")
	}
}

func TestParseIfColonForm(t *testing.T) {
	file, _ := parseOK(t, `<?php if ($x): return $x; elseif ($y): return $y; else: return 0; endif;`)
	ifStmt, ok := file.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", file.Body[0])
	}
	body, ok := ifStmt.Body.(ast.ColonDelimitedIfBody)
	if !ok {
		t.Fatalf("expected ColonDelimitedIfBody, got %T", ifStmt.Body)
	}
	if len(body.ElseIfs) != 1 {
		t.Fatalf("expected 1 elseif, got %d", len(body.ElseIfs))
	}
	if body.Else == nil {
		t.Fatal("expected else clause")
	}
}

func TestParseUseSequence(t *testing.T) {
	file, in := parseOK(t, `<?php use Foo, Bar as Baz;`)
	use, ok := file.Body[0].(*ast.Use)
	if !ok {
		t.Fatalf("expected Use, got %T", file.Body[0])
	}
	seq, ok := use.Items.(ast.SequenceUseItemList)
	if !ok {
		t.Fatalf("expected SequenceUseItemList, got %T", use.Items)
	}
	if len(seq.Items.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(seq.Items.Items))
	}
	if seq.Items.Items[1].Alias == nil || seq.Items.Items[1].Alias.Text(in) != "Baz" {
		t.Errorf("expected second item aliased to Baz")
	}
}

func TestParseUseTypedSequence(t *testing.T) {
	file, _ := parseOK(t, `<?php use function foo, bar;`)
	use := file.Body[0].(*ast.Use)
	seq, ok := use.Items.(ast.TypedSequenceUseItemList)
	if !ok {
		t.Fatalf("expected TypedSequenceUseItemList, got %T", use.Items)
	}
	if seq.Type != ast.UseItemTypeFunction {
		t.Errorf("expected function type marker")
	}
}

func TestParseUseTypedList(t *testing.T) {
	file, _ := parseOK(t, `<?php use const App\Config\{A, B};`)
	use := file.Body[0].(*ast.Use)
	list, ok := use.Items.(ast.TypedListUseItemList)
	if !ok {
		t.Fatalf("expected TypedListUseItemList, got %T", use.Items)
	}
	if list.Type != ast.UseItemTypeConst {
		t.Errorf("expected const type marker")
	}
	if len(list.Items.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(list.Items.Items))
	}
}

func TestParseUseMixed(t *testing.T) {
	file, _ := parseOK(t, `<?php use App\Util\{function helper, Thing};`)
	use := file.Body[0].(*ast.Use)
	mixed, ok := use.Items.(ast.MixedUseItemList)
	if !ok {
		t.Fatalf("expected MixedUseItemList, got %T", use.Items)
	}
	if len(mixed.Items.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(mixed.Items.Items))
	}
	if mixed.Items.Items[0].Type != ast.UseItemTypeFunction {
		t.Errorf("expected first item marked function")
	}
	if mixed.Items.Items[1].Type != ast.UseItemTypeNone {
		t.Errorf("expected second item unmarked")
	}
}

func TestParseGotoAndLabel(t *testing.T) {
	file, in := parseOK(t, `<?php goto done; done: return 1;`)
	if len(file.Body) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(file.Body))
	}
	g, ok := file.Body[0].(*ast.Goto)
	if !ok {
		t.Fatalf("expected Goto, got %T", file.Body[0])
	}
	if g.Label.Text(in) != "done" {
		t.Errorf("expected label 'done', got %q", g.Label.Text(in))
	}
	if _, ok := file.Body[1].(*ast.Label); !ok {
		t.Fatalf("expected Label, got %T", file.Body[1])
	}
}

func TestParseClassWithTypedConstant(t *testing.T) {
	file, _ := parseOK(t, `<?php class C { public const int X = 1; }`)
	class := file.Body[0].(*ast.ClassDecl)
	if len(class.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(class.Members))
	}
	cst, ok := class.Members[0].(*ast.ClassLikeConstant)
	if !ok {
		t.Fatalf("expected ClassLikeConstant, got %T", class.Members[0])
	}
	if cst.Hint == nil {
		t.Error("expected a type hint to be present")
	}
	if len(cst.Modifiers) != 1 {
		t.Errorf("expected 1 modifier, got %d", len(cst.Modifiers))
	}
}

func TestParseClassWithUntypedConstant(t *testing.T) {
	file, _ := parseOK(t, `<?php class C { const X = 1; }`)
	class := file.Body[0].(*ast.ClassDecl)
	cst := class.Members[0].(*ast.ClassLikeConstant)
	if cst.Hint != nil {
		t.Error("expected no type hint")
	}
}

func TestParseFunctionWithPromotedParameter(t *testing.T) {
	file, _ := parseOK(t, `<?php function make(public int $id, $plain) { return $id; }`)
	fn := file.Body[0].(*ast.FuncDecl)
	if len(fn.Parameters.List.Items) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters.List.Items))
	}
	promoted := fn.Parameters.List.Items[0]
	if !promoted.IsPromotedProperty() {
		t.Error("expected first parameter to be a promoted property")
	}
	if promoted.Hint == nil {
		t.Error("expected first parameter to carry a type hint")
	}
	plain := fn.Parameters.List.Items[1]
	if plain.IsPromotedProperty() {
		t.Error("expected second parameter not to be promoted")
	}
}

func TestParseVariadicByRefParameter(t *testing.T) {
	file, _ := parseOK(t, `<?php function f(...&$rest) {}`)
	fn := file.Body[0].(*ast.FuncDecl)
	param := fn.Parameters.List.Items[0]
	if param.Ellipsis == nil {
		t.Error("expected ellipsis to be present")
	}
	if param.Ampersand == nil {
		t.Error("expected ampersand to be present")
	}
}

func TestParseCallWithNamedAndPositionalArguments(t *testing.T) {
	file, in := parseOK(t, `<?php f(1, name: 2, ...$rest);`)
	stmt := file.Body[0].(*ast.ExprStmt)
	call, ok := stmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", stmt.Expr)
	}
	if len(call.Arguments.List.Items) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Arguments.List.Items))
	}
	if _, ok := call.Arguments.List.Items[0].(*ast.PositionalArgument); !ok {
		t.Errorf("expected first argument to be positional, got %T", call.Arguments.List.Items[0])
	}
	named, ok := call.Arguments.List.Items[1].(*ast.NamedArgument)
	if !ok {
		t.Fatalf("expected second argument to be named, got %T", call.Arguments.List.Items[1])
	}
	if named.Name.Text(in) != "name" {
		t.Errorf("expected named argument 'name', got %q", named.Name.Text(in))
	}
	unpack, ok := call.Arguments.List.Items[2].(*ast.PositionalArgument)
	if !ok || unpack.Ellipsis == nil {
		t.Fatalf("expected third argument to be an unpacking positional argument")
	}
}

func TestParseNewExprWithAndWithoutArgs(t *testing.T) {
	file, _ := parseOK(t, `<?php $a = new Thing(); $b = new Other;`)
	s1 := file.Body[0].(*ast.ExprStmt)
	assign1 := s1.Expr.(*ast.BinaryExpr)
	n1 := assign1.Right.(*ast.NewExpr)
	if n1.Arguments == nil {
		t.Error("expected arguments to be present")
	}

	s2 := file.Body[1].(*ast.ExprStmt)
	assign2 := s2.Expr.(*ast.BinaryExpr)
	n2 := assign2.Right.(*ast.NewExpr)
	if n2.Arguments != nil {
		t.Error("expected no arguments")
	}
}

func TestParseMemberAccessChain(t *testing.T) {
	file, in := parseOK(t, `<?php $x->foo->bar;`)
	stmt := file.Body[0].(*ast.ExprStmt)
	outer, ok := stmt.Expr.(*ast.MemberAccessExpr)
	if !ok {
		t.Fatalf("expected MemberAccessExpr, got %T", stmt.Expr)
	}
	if outer.Property.Text(in) != "bar" {
		t.Errorf("expected outer property 'bar', got %q", outer.Property.Text(in))
	}
	inner, ok := outer.Object.(*ast.MemberAccessExpr)
	if !ok {
		t.Fatalf("expected inner MemberAccessExpr, got %T", outer.Object)
	}
	if inner.Property.Text(in) != "foo" {
		t.Errorf("expected inner property 'foo', got %q", inner.Property.Text(in))
	}
}

func TestParseArrayLiteral(t *testing.T) {
	file, _ := parseOK(t, `<?php $xs = [1, 2, 3,];`)
	stmt := file.Body[0].(*ast.ExprStmt)
	assign := stmt.Expr.(*ast.BinaryExpr)
	arr, ok := assign.Right.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected ArrayLiteral, got %T", assign.Right)
	}
	if !arr.Elements.Valid() {
		t.Error("expected a valid separator-accounting sequence")
	}
	if !arr.Elements.HasTrailingSeparator() {
		t.Error("expected trailing separator to be recorded")
	}
}

func TestParseFileSpanCoversWholeFile(t *testing.T) {
	src := `<?php $x = 1;`
	file, _ := parseOK(t, src)
	if file.Span().Start.Offset != 0 {
		t.Errorf("expected file span to start at 0, got %d", file.Span().Start.Offset)
	}
	if file.Span().End.Offset != len(src) {
		t.Errorf("expected file span to end at %d, got %d", len(src), file.Span().End.Offset)
	}
}

func TestParseJSONRoundTripShape(t *testing.T) {
	out := parseToJSON(t, `<?php $x = 1;`)
	if out == "" {
		t.Fatal("expected non-empty JSON output")
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("expected the JSON output to decode again: %v", err)
	}
	if decoded["kind"] != "File" {
		t.Errorf("expected root kind File, got %v", decoded["kind"])
	}
	body, ok := decoded["body"].([]interface{})
	if !ok || len(body) != 1 {
		t.Fatalf("expected a body with 1 statement, got %v", decoded["body"])
	}
	stmt, ok := body[0].(map[string]interface{})
	if !ok || stmt["kind"] != "ExprStmt" {
		t.Errorf("expected the statement kind ExprStmt, got %v", body[0])
	}
}

func TestParseErrorIsAllOrNothing(t *testing.T) {
	in := interner.New()
	l := lexer.New(`<?php $x = ;`, in)
	tokens, _ := l.Tokenize()
	p := New(token.NewStream(tokens), in)
	file, err := p.ParseFile()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if file != nil {
		t.Fatal("expected no partial AST on error")
	}
}
