package syntax

import (
	"unicode/utf8"

	"github.com/KromDaniel/regauto/internal/alphabet"
)

// Scanner splits a regular expression into tokens, one per call to Next.
// Operators are recognized by character alone; every other character is
// classified by alphabet membership. Symbol validity is left to the parser.
type Scanner struct {
	alpha *alphabet.Alphabet
	src   string
	pos   int
}

// NewScanner creates a scanner over src.
func NewScanner(alpha *alphabet.Alphabet, src string) *Scanner {
	return &Scanner{alpha: alpha, src: src}
}

// Next returns the next token. Past the end of input it keeps returning End.
func (s *Scanner) Next() Token {
	if s.pos >= len(s.src) {
		return NewToken(End)
	}

	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size

	switch r {
	case '|':
		return NewToken(Union)
	case '*':
		return NewToken(ZeroOrMore)
	case '+':
		return NewToken(OneOrMore)
	case '?':
		return NewToken(ZeroOrOne)
	case '(':
		return NewToken(LParen)
	case ')':
		return NewToken(RParen)
	}

	if s.alpha.Contains(r) {
		return Token{Kind: Symbol, Literal: string(r)}
	}
	return Token{Kind: Unknown, Literal: string(r)}
}

// Pos returns the byte offset of the next unread character.
func (s *Scanner) Pos() int {
	return s.pos
}

// Tokenize scans src to completion. The trailing End token is included.
func Tokenize(alpha *alphabet.Alphabet, src string) []Token {
	s := NewScanner(alpha, src)
	var tokens []Token
	for {
		tok := s.Next()
		tokens = append(tokens, tok)
		if tok.Kind == End {
			return tokens
		}
	}
}
