package automaton

import (
	"errors"
	"fmt"

	"github.com/KromDaniel/regauto/internal/alphabet"
	"github.com/KromDaniel/regauto/internal/syntax"
)

// ErrMalformedPostfix means the parser handed the NFA builder a sequence that is
// not a well-formed postfix expression. A correct parser never does this.
var ErrMalformedPostfix = errors.New("malformed postfix sequence")

// fragment is a partial NFA with a single entry and a single exit.
type fragment struct {
	start  int
	accept int
}

// Thompson builds an NFA from a postfix token sequence. The result has exactly
// one initial state (id 0) and one final state.
func Thompson(alpha *alphabet.Alphabet, regex string, postfix syntax.Postfix) (*Automaton, error) {
	if alpha == nil {
		return nil, fmt.Errorf("%w: no alphabet", ErrInvalidAutomaton)
	}
	if len(postfix) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrMalformedPostfix)
	}

	nfa := New(NFA, alpha, regex)
	stack := make([]fragment, 0, len(postfix))

	pop := func() fragment {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f
	}

	for i, tok := range postfix {
		if need := arity(tok.Kind); len(stack) < need {
			return nil, fmt.Errorf("%w: %s at %d needs %d operands, have %d",
				ErrMalformedPostfix, tok.Kind, i, need, len(stack))
		}

		switch tok.Kind {
		case syntax.Symbol:
			r := tok.Rune()
			if !alpha.Contains(r) {
				return nil, fmt.Errorf("%w: symbol %q at %d is not in the alphabet", ErrMalformedPostfix, r, i)
			}
			start := nfa.AddState(false)
			accept := nfa.AddState(false)
			nfa.AddTransition(start, accept, r)
			stack = append(stack, fragment{start, accept})

		case syntax.Concat:
			right := pop()
			left := pop()
			nfa.AddTransition(left.accept, right.start, Epsilon)
			stack = append(stack, fragment{left.start, right.accept})

		case syntax.Union:
			right := pop()
			left := pop()
			start := nfa.AddState(false)
			accept := nfa.AddState(false)
			nfa.AddTransition(start, left.start, Epsilon)
			nfa.AddTransition(start, right.start, Epsilon)
			nfa.AddTransition(left.accept, accept, Epsilon)
			nfa.AddTransition(right.accept, accept, Epsilon)
			stack = append(stack, fragment{start, accept})

		case syntax.ZeroOrMore, syntax.OneOrMore, syntax.ZeroOrOne:
			inner := pop()
			start := nfa.AddState(false)
			accept := nfa.AddState(false)
			nfa.AddTransition(start, inner.start, Epsilon)
			nfa.AddTransition(inner.accept, accept, Epsilon)
			// Repetition loops back into the operand.
			if tok.Kind != syntax.ZeroOrOne {
				nfa.AddTransition(inner.accept, inner.start, Epsilon)
			}
			// Optional operands can be skipped entirely.
			if tok.Kind != syntax.OneOrMore {
				nfa.AddTransition(start, accept, Epsilon)
			}
			stack = append(stack, fragment{start, accept})

		case syntax.LParen, syntax.RParen, syntax.Unknown, syntax.End:
			return nil, fmt.Errorf("%w: unexpected %s token at %d", ErrMalformedPostfix, tok.Kind, i)

		default:
			return nil, fmt.Errorf("%w: unknown token kind %d at %d", ErrMalformedPostfix, int(tok.Kind), i)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d fragments left on the stack", ErrMalformedPostfix, len(stack))
	}

	whole := stack[0]
	nfa.states[whole.accept].Final = true
	return nfa.withInitial(whole.start), nil
}

// arity returns the number of fragments an operator consumes.
func arity(k syntax.Kind) int {
	switch k {
	case syntax.Concat, syntax.Union:
		return 2
	case syntax.ZeroOrMore, syntax.OneOrMore, syntax.ZeroOrOne:
		return 1
	}
	return 0
}

// withInitial returns a copy of a renumbered so that state start comes first.
// The other states keep their relative order.
func (a *Automaton) withInitial(start int) *Automaton {
	order := make([]int, 0, len(a.states))
	order = append(order, start)
	for _, s := range a.states {
		if s != nil && s.ID != start {
			order = append(order, s.ID)
		}
	}

	renamed := make(map[int]int, len(order))
	out := New(a.kind, a.alphabet, a.regex)
	for _, old := range order {
		renamed[old] = out.AddState(a.states[old].Final)
	}
	for _, old := range order {
		for _, t := range a.states[old].Transitions {
			out.AddTransition(renamed[old], renamed[t.To], t.Symbol)
		}
	}
	return out
}
