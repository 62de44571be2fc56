package syntax

import (
	"github.com/KromDaniel/regauto/internal/alphabet"
)

// Grammar, lowest precedence first:
//
//	Expr   → Concat ('|' Concat)*
//	Concat → Group+
//	Group  → Elem Oper?
//	Elem   → '(' Expr ')' | SYMBOL
//	Oper   → '*' | '+' | '?'
type parser struct {
	alpha   *alphabet.Alphabet
	scanner *Scanner
	look    Token
	count   int
	out     Postfix
}

// Parse translates src into postfix form in a single left-to-right pass,
// inserting explicit Concat tokens between consecutive groups.
// The first grammar violation aborts the parse with a *ParseError.
func Parse(alpha *alphabet.Alphabet, src string) (Postfix, error) {
	p := &parser{
		alpha:   alpha,
		scanner: NewScanner(alpha, src),
	}
	p.advance()

	if p.look.Kind == End {
		return nil, p.fail(CauseEmpty)
	}

	if err := p.expr(); err != nil {
		return nil, err
	}

	switch p.look.Kind {
	case End:
		return p.out, nil
	case RParen:
		return nil, p.fail(CauseUnmatchedClosing)
	default:
		// Concat stops only before tokens that cannot start an element.
		return nil, p.fail(CauseExpectedElement)
	}
}

func (p *parser) expr() error {
	if err := p.concat(); err != nil {
		return err
	}
	for p.look.Kind == Union {
		if err := p.match(Union); err != nil {
			return err
		}
		if err := p.concat(); err != nil {
			return err
		}
		p.emit(NewToken(Union))
	}
	return nil
}

func (p *parser) concat() error {
	if err := p.group(); err != nil {
		return err
	}
	for {
		switch p.look.Kind {
		case LParen, Symbol, Unknown:
			if err := p.group(); err != nil {
				return err
			}
			p.emit(NewToken(Concat))
		default:
			return nil
		}
	}
}

func (p *parser) group() error {
	if err := p.elem(); err != nil {
		return err
	}
	p.oper()
	return nil
}

func (p *parser) elem() error {
	switch p.look.Kind {
	case LParen:
		if err := p.match(LParen); err != nil {
			return err
		}
		if err := p.expr(); err != nil {
			return err
		}
		return p.match(RParen)
	case Symbol:
		return p.symbol()
	case Unknown:
		return p.fail(CauseNotInAlphabet)
	case Union, Concat, ZeroOrMore, OneOrMore, ZeroOrOne, RParen, End:
		return p.fail(CauseExpectedElement)
	}
	return p.fail(CauseUnexpectedToken)
}

func (p *parser) oper() {
	switch p.look.Kind {
	case ZeroOrMore, OneOrMore, ZeroOrOne:
		p.emit(p.look)
		p.advance()
	case Union, Concat, LParen, RParen, Symbol, Unknown, End:
	}
}

func (p *parser) symbol() error {
	if !p.alpha.Contains(p.look.Rune()) {
		return p.fail(CauseNotInAlphabet)
	}
	p.emit(p.look)
	p.advance()
	return nil
}

// match consumes the lookahead if it has the expected kind.
func (p *parser) match(want Kind) error {
	if p.look.Kind == want {
		p.advance()
		return nil
	}
	if want == RParen {
		return p.fail(CauseMissingClosing)
	}
	return p.fail(CauseUnexpectedToken)
}

func (p *parser) emit(tok Token) {
	p.out = append(p.out, tok)
}

func (p *parser) advance() {
	p.count++
	p.look = p.scanner.Next()
}

func (p *parser) fail(cause string) *ParseError {
	return &ParseError{
		Literal:  p.look.Literal,
		Position: p.count,
		Cause:    cause,
	}
}
