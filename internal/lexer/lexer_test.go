package lexer

import (
	"testing"

	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/token"
)

func tokenize(t *testing.T, source string) ([]token.Token, []LexError, *interner.Interner) {
	t.Helper()
	in := interner.New()
	l := New(source, in)
	tokens, errs := l.Tokenize()
	return tokens, errs, in
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, tokens []token.Token, expected []token.Kind) {
	t.Helper()
	got := kinds(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("token[%d]: expected %s, got %s (%q)", i, exp, got[i], tokens[i].Lexeme)
		}
	}
}

func TestTokenizeOpenCloseTags(t *testing.T) {
	tokens, errs, _ := tokenize(t, `<?php $x = 1; ?>`)
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	assertKinds(t, tokens, []token.Kind{
		token.OpenTag, token.VARIABLE, token.ASSIGN, token.INT, token.SEMICOLON,
		token.CloseTag, token.EOF,
	})
}

func TestTokenizeVariableInterning(t *testing.T) {
	tokens, _, in := tokenize(t, `$foo $bar $foo`)
	if len(tokens) != 4 { // 3 variables + EOF
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}
	if tokens[0].Text != tokens[2].Text {
		t.Errorf("expected $foo occurrences to share a symbol id, got %d and %d", tokens[0].Text, tokens[2].Text)
	}
	if in.Lookup(tokens[0].Text) != "foo" {
		t.Errorf("expected interned text %q, got %q", "foo", in.Lookup(tokens[0].Text))
	}
}

func TestTokenizeKeywords(t *testing.T) {
	source := `if elseif else endif use const function class goto as return new true false null public private protected readonly static get set callable Closure pure`
	tokens, errs, _ := tokenize(t, source)
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	assertKinds(t, tokens, []token.Kind{
		token.KW_IF, token.KW_ELSEIF, token.KW_ELSE, token.KW_ENDIF,
		token.KW_USE, token.KW_CONST, token.KW_FUNCTION, token.KW_CLASS,
		token.KW_GOTO, token.KW_AS, token.KW_RETURN, token.KW_NEW,
		token.KW_TRUE, token.KW_FALSE, token.KW_NULL,
		token.KW_PUBLIC, token.KW_PRIVATE, token.KW_PROTECTED, token.KW_READONLY, token.KW_STATIC,
		token.KW_GET, token.KW_SET,
		token.KW_CALLABLE, token.KW_CLOSURE, token.KW_PURE,
		token.EOF,
	})
}

func TestTokenizeOperators(t *testing.T) {
	tokens, errs, _ := tokenize(t, `-> => ... \ == != <= >= && ||`)
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	assertKinds(t, tokens, []token.Kind{
		token.ARROW, token.DOUBLE_ARROW, token.ELLIPSIS, token.BACKSLASH,
		token.EQ, token.NEQ, token.LTE, token.GTE, token.ANDAND, token.OROR,
		token.EOF,
	})
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens, errs, _ := tokenize(t, `"hello\nworld"`)
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if tokens[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", tokens[0].Kind)
	}
	if tokens[0].Lexeme != "hello\nworld" {
		t.Errorf("expected escaped lexeme %q, got %q", "hello\nworld", tokens[0].Lexeme)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, errs, _ := tokenize(t, `"unterminated`)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one lex error, got %d: %v", len(errs), errs)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tokens, errs, _ := tokenize(t, `42 3.14 0`)
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	assertKinds(t, tokens, []token.Kind{token.INT, token.FLOAT, token.INT, token.EOF})
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	_, errs, _ := tokenize(t, `@`)
	if len(errs) != 1 {
		t.Fatalf("expected one lex error for illegal character, got %d", len(errs))
	}
}

func TestTokenizeComments(t *testing.T) {
	tokens, errs, _ := tokenize(t, "// line\n# shell\n/* block */\n$x")
	if len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	assertKinds(t, tokens, []token.Kind{token.VARIABLE, token.EOF})
}
