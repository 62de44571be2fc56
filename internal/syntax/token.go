// Package syntax implements the lexical scanner and the recursive-descent parser
// that turn a regular expression into a postfix token sequence.
package syntax

import (
	"fmt"
	"strings"
)

// Kind identifies the class of a token.
type Kind int

const (
	Union      Kind = iota // |
	Concat                 // # (synthetic, inserted by the parser)
	ZeroOrMore             // *
	OneOrMore              // +
	ZeroOrOne              // ?
	LParen                 // (
	RParen                 // )
	Symbol                 // alphabet member
	Unknown                // any other character
	End                    // end of input
)

var kindNames = [...]string{
	Union:      "UNION",
	Concat:     "CONCAT",
	ZeroOrMore: "ZERO_OR_MORE",
	OneOrMore:  "ONE_OR_MORE",
	ZeroOrOne:  "ZERO_OR_ONE",
	LParen:     "LPAREN",
	RParen:     "RPAREN",
	Symbol:     "SYMBOL",
	Unknown:    "UNKNOWN",
	End:        "END",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Literal returns the canonical text of fixed-literal kinds.
// Symbol and Unknown have no canonical literal and return "".
func (k Kind) Literal() string {
	switch k {
	case Union:
		return "|"
	case Concat:
		return "#"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	case ZeroOrOne:
		return "?"
	case LParen:
		return "("
	case RParen:
		return ")"
	case Symbol, Unknown, End:
		return ""
	}
	return ""
}

// IsOperator reports whether k is one of the postfix operators.
func (k Kind) IsOperator() bool {
	switch k {
	case Union, Concat, ZeroOrMore, OneOrMore, ZeroOrOne:
		return true
	}
	return false
}

// Token is a scanned or synthesized unit of a regular expression.
type Token struct {
	Kind    Kind
	Literal string
}

// NewToken returns the token of a fixed-literal kind.
func NewToken(k Kind) Token {
	return Token{Kind: k, Literal: k.Literal()}
}

// Rune returns the character carried by a Symbol or Unknown token.
func (t Token) Rune() rune {
	for _, r := range t.Literal {
		return r
	}
	return 0
}

func (t Token) String() string {
	return t.Literal
}

// Postfix is a token sequence in which every operator follows its operands.
type Postfix []Token

// String joins the literals, e.g. "ab|*a#b#b#".
func (p Postfix) String() string {
	var b strings.Builder
	for _, tok := range p {
		b.WriteString(tok.Literal)
	}
	return b.String()
}
