package automaton

import (
	"testing"

	"github.com/KromDaniel/regauto/internal/alphabet"
	"github.com/KromDaniel/regauto/internal/syntax"
)

// buildNFA parses pattern and runs the Thompson construction.
func buildNFA(t *testing.T, chars, pattern string) *Automaton {
	t.Helper()
	alpha := alphabet.New(chars)
	postfix, err := syntax.Parse(alpha, pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	nfa, err := Thompson(alpha, pattern, postfix)
	if err != nil {
		t.Fatalf("Thompson(%q): %v", pattern, err)
	}
	return nfa
}

// buildDFA runs the pipeline up to the subset construction.
func buildDFA(t *testing.T, chars, pattern string) *Automaton {
	t.Helper()
	dfa, err := Determinize(buildNFA(t, chars, pattern))
	if err != nil {
		t.Fatalf("Determinize(%q): %v", pattern, err)
	}
	return dfa
}

// withoutAlphabet builds a two-state automaton with a nil alphabet.
func withoutAlphabet(kind Kind) *Automaton {
	a := New(kind, nil, "a")
	a.AddState(false)
	a.AddState(true)
	a.AddTransition(0, 1, 'a')
	return a
}

// accepts walks a DFA over input. Tests only; the package does not simulate.
func accepts(a *Automaton, input string) bool {
	state := a.Initial()
	if state == nil {
		return false
	}
	id := state.ID
	for _, r := range input {
		next, ok := a.Next(id, r)
		if !ok {
			return false
		}
		id = next
	}
	return a.State(id).Final
}

// words lists every string over symbols up to length n.
func words(symbols []rune, n int) []string {
	out := []string{""}
	layer := []string{""}
	for i := 0; i < n; i++ {
		var grown []string
		for _, w := range layer {
			for _, r := range symbols {
				grown = append(grown, w+string(r))
			}
		}
		out = append(out, grown...)
		layer = grown
	}
	return out
}

// fixture builds a DFA from a compact description: finals lists the final state
// ids and edges holds from, symbol, to triples.
func fixture(chars string, states int, finals []int, edges ...any) *Automaton {
	a := New(DFA, alphabet.New(chars), "")
	isFinal := make(map[int]bool)
	for _, f := range finals {
		isFinal[f] = true
	}
	for i := 0; i < states; i++ {
		a.AddState(isFinal[i])
	}
	for i := 0; i+2 < len(edges); i += 3 {
		a.AddTransition(edges[i].(int), edges[i+2].(int), edges[i+1].(rune))
	}
	return a
}
