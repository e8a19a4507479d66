// Package token defines the token kinds produced by the lexer and the
// Stream cursor the parser drives over them.
package token

import (
	"fmt"

	"github.com/mago-go/phrix/internal/interner"
	"github.com/mago-go/phrix/internal/span"
)

// Kind represents the type of a token in the source language's
// grammar: a C-style, dynamically typed server scripting language.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF
	OpenTag    // <?php
	CloseTag   // ?>
	InlineHTML // raw text outside of tag delimiters

	// Literals
	IDENT
	VARIABLE // $name
	INT
	FLOAT
	STRING

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	DOT
	SEMICOLON
	COLON
	QUESTION
	ARROW        // ->
	DOUBLE_ARROW // =>
	AMP          // &
	ELLIPSIS     // ...
	BACKSLASH    // \ (namespace separator)
	ASSIGN       // =
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	BANG
	EQ
	NEQ
	LT
	LTE
	GT
	GTE
	ANDAND
	OROR

	// Keywords
	KW_IF
	KW_ELSEIF
	KW_ELSE
	KW_ENDIF
	KW_USE
	KW_CONST
	KW_FUNCTION
	KW_CLASS
	KW_GOTO
	KW_AS
	KW_RETURN
	KW_NEW
	KW_TRUE
	KW_FALSE
	KW_NULL
	KW_PUBLIC
	KW_PRIVATE
	KW_PROTECTED
	KW_READONLY
	KW_STATIC
	KW_GET
	KW_SET

	// Type-syntax keywords
	KW_CALLABLE
	KW_CLOSURE
	KW_PURE

	ATTR_OPEN // #[
)

var kindNames = map[Kind]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	OpenTag:    "<?php",
	CloseTag:   "?>",
	InlineHTML: "InlineHTML",

	IDENT:    "IDENT",
	VARIABLE: "VARIABLE",
	INT:      "INT",
	FLOAT:    "FLOAT",
	STRING:   "STRING",

	LPAREN:       "(",
	RPAREN:       ")",
	LBRACE:       "{",
	RBRACE:       "}",
	LBRACKET:     "[",
	RBRACKET:     "]",
	COMMA:        ",",
	DOT:          ".",
	SEMICOLON:    ";",
	COLON:        ":",
	QUESTION:     "?",
	ARROW:        "->",
	DOUBLE_ARROW: "=>",
	AMP:          "&",
	ELLIPSIS:     "...",
	BACKSLASH:    "\\",
	ASSIGN:       "=",
	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	PERCENT:      "%",
	BANG:         "!",
	EQ:           "==",
	NEQ:          "!=",
	LT:           "<",
	LTE:          "<=",
	GT:           ">",
	GTE:          ">=",
	ANDAND:       "&&",
	OROR:         "||",

	KW_IF:        "if",
	KW_ELSEIF:    "elseif",
	KW_ELSE:      "else",
	KW_ENDIF:     "endif",
	KW_USE:       "use",
	KW_CONST:     "const",
	KW_FUNCTION:  "function",
	KW_CLASS:     "class",
	KW_GOTO:      "goto",
	KW_AS:        "as",
	KW_RETURN:    "return",
	KW_NEW:       "new",
	KW_TRUE:      "true",
	KW_FALSE:     "false",
	KW_NULL:      "null",
	KW_PUBLIC:    "public",
	KW_PRIVATE:   "private",
	KW_PROTECTED: "protected",
	KW_READONLY:  "readonly",
	KW_STATIC:    "static",
	KW_GET:       "get",
	KW_SET:       "set",

	KW_CALLABLE: "callable",
	KW_CLOSURE:  "Closure",
	KW_PURE:     "pure",

	ATTR_OPEN: "#[",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword returns true if the kind is a reserved keyword.
func (k Kind) IsKeyword() bool {
	return k >= KW_IF && k <= KW_PURE
}

var keywords = map[string]Kind{
	"if":        KW_IF,
	"elseif":    KW_ELSEIF,
	"else":      KW_ELSE,
	"endif":     KW_ENDIF,
	"use":       KW_USE,
	"const":     KW_CONST,
	"function":  KW_FUNCTION,
	"class":     KW_CLASS,
	"goto":      KW_GOTO,
	"as":        KW_AS,
	"return":    KW_RETURN,
	"new":       KW_NEW,
	"true":      KW_TRUE,
	"false":     KW_FALSE,
	"null":      KW_NULL,
	"public":    KW_PUBLIC,
	"private":   KW_PRIVATE,
	"protected": KW_PROTECTED,
	"readonly":  KW_READONLY,
	"static":    KW_STATIC,
	"get":       KW_GET,
	"set":       KW_SET,
	"callable":  KW_CALLABLE,
	"Closure":   KW_CLOSURE,
	"pure":      KW_PURE,
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is
// not a keyword.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Token is a single lexical token: a kind tag, a span, and — for
// identifier/literal kinds — the raw lexeme plus a reference into the
// interner.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   span.Span
	Text   interner.SymbolID // valid only for IDENT/VARIABLE/literal kinds
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}

// KindSet is a small set of Kinds, used to report every kind that
// would have been accepted at a failed Expect call.
type KindSet []Kind

func (ks KindSet) String() string {
	s := "{"
	for i, k := range ks {
		if i > 0 {
			s += ", "
		}
		s += k.String()
	}
	return s + "}"
}

func (ks KindSet) Contains(k Kind) bool {
	for _, want := range ks {
		if want == k {
			return true
		}
	}
	return false
}
