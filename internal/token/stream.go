package token

import "github.com/mago-go/phrix/internal/span"

// UnexpectedEnd is returned by Expect/ExpectAny/ExpectAnyKeyword when
// the grammar requires a token but the stream is already at EOF.
type UnexpectedEnd struct {
	Expected KindSet
	Span     span.Span
}

func (e *UnexpectedEnd) Error() string {
	return "unexpected end of input, expected one of " + e.Expected.String()
}

// UnexpectedToken is returned by Expect when the next token's kind
// does not match what the grammar requires.
type UnexpectedToken struct {
	Expected KindSet
	Actual   Kind
	Span     span.Span
}

func (e *UnexpectedToken) Error() string {
	return "unexpected token " + e.Actual.String() + ", expected one of " + e.Expected.String()
}

// Stream is a single-threaded cursor over a pre-lexed token buffer.
// Lookahead (Peek/MaybePeek/MaybePeekNth/Check/CheckAny) never
// consumes; only Advance, the Expect* methods, and MaybeExpect advance
// the cursor.
type Stream struct {
	tokens []Token
	pos    int
}

// NewStream wraps a finite token slice. The final token is assumed to
// be (or is synthesized as) an EOF token so Peek never runs off the
// end of the slice.
func NewStream(tokens []Token) *Stream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		last := span.Span{}
		if len(tokens) > 0 {
			last = tokens[len(tokens)-1].Span
			last.Start = last.End
		}
		tokens = append(tokens, Token{Kind: EOF, Span: last})
	}
	return &Stream{tokens: tokens}
}

// Pos returns the current cursor position (for diagnostics/tests).
func (s *Stream) Pos() int { return s.pos }

// Peek returns the current token without advancing the cursor.
func (s *Stream) Peek() Token {
	return s.tokens[s.pos]
}

// MaybePeek returns (token, true) or (zero, false) at EOF.
func (s *Stream) MaybePeek() (Token, bool) {
	if s.Peek().Kind == EOF {
		return Token{}, false
	}
	return s.Peek(), true
}

// MaybePeekNth looks ahead k tokens (1-indexed: k=1 is the same as
// Peek). It never fails; at or past EOF it keeps returning the EOF
// token.
func (s *Stream) MaybePeekNth(k int) Token {
	idx := s.pos + k - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[idx]
}

// Advance unconditionally consumes and returns the current token.
func (s *Stream) Advance() Token {
	tok := s.Peek()
	if s.tokens[s.pos].Kind != EOF {
		s.pos++
	}
	return tok
}

// Check reports whether the current token has the given kind, without
// consuming it.
func (s *Stream) Check(kind Kind) bool {
	return s.Peek().Kind == kind
}

// CheckAny reports whether the current token's kind is any of kinds.
func (s *Stream) CheckAny(kinds ...Kind) bool {
	return KindSet(kinds).Contains(s.Peek().Kind)
}

// Expect consumes the current token iff it has the given kind.
func (s *Stream) Expect(kind Kind) (Token, error) {
	tok := s.Peek()
	if tok.Kind == EOF && kind != EOF {
		return tok, &UnexpectedEnd{Expected: KindSet{kind}, Span: tok.Span}
	}
	if tok.Kind != kind {
		return tok, &UnexpectedToken{Expected: KindSet{kind}, Actual: tok.Kind, Span: tok.Span}
	}
	return s.Advance(), nil
}

// ExpectAny consumes the current token iff its kind is one of kinds.
func (s *Stream) ExpectAny(kinds ...Kind) (Token, error) {
	tok := s.Peek()
	if !KindSet(kinds).Contains(tok.Kind) {
		if tok.Kind == EOF {
			return tok, &UnexpectedEnd{Expected: kinds, Span: tok.Span}
		}
		return tok, &UnexpectedToken{Expected: kinds, Actual: tok.Kind, Span: tok.Span}
	}
	return s.Advance(), nil
}

// MaybeExpect consumes the current token if it matches kind, returning
// the consumed span and true; otherwise it is a no-op and returns
// false. Never fails.
func (s *Stream) MaybeExpect(kind Kind) (span.Span, bool) {
	if s.Check(kind) {
		return s.Advance().Span, true
	}
	return span.Span{}, false
}

// ExpectKeyword consumes the current token iff it is the given keyword
// kind, returning the consumed token. Semantically identical to Expect but named
// separately to keep keyword expectation distinct from general token
// expectation at call sites.
func (s *Stream) ExpectKeyword(kind Kind) (Token, error) {
	return s.Expect(kind)
}

// ExpectAnyKeyword consumes the current token iff it is a keyword,
// returning the consumed token.
func (s *Stream) ExpectAnyKeyword() (Token, error) {
	tok := s.Peek()
	if !tok.Kind.IsKeyword() {
		if tok.Kind == EOF {
			return tok, &UnexpectedEnd{Span: tok.Span}
		}
		return tok, &UnexpectedToken{Actual: tok.Kind, Span: tok.Span}
	}
	return s.Advance(), nil
}

// AtEnd reports whether the cursor is at EOF.
func (s *Stream) AtEnd() bool {
	return s.Peek().Kind == EOF
}
