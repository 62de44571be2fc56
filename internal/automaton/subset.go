package automaton

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Determinize converts an NFA into an equivalent DFA with the subset construction.
func Determinize(nfa *Automaton) (*Automaton, error) {
	dfa, _, err := DeterminizeTrace(nfa)
	return dfa, err
}

// DeterminizeTrace is Determinize that also returns, for every DFA state id,
// the ascending NFA state ids it stands for.
//
// Only subsets reachable from the initial closure are materialized, and empty
// moves produce no state, so the DFA has no dead state. State ids follow
// discovery order, which is fixed by the alphabet order and the NFA ids.
func DeterminizeTrace(nfa *Automaton) (*Automaton, [][]int, error) {
	if nfa == nil || nfa.Len() == 0 {
		return nil, nil, fmt.Errorf("determinize: %w", ErrEmptyAutomaton)
	}
	if nfa.Kind() != NFA {
		return nil, nil, fmt.Errorf("determinize: %w: got %s", ErrNotNondeterministic, nfa.Kind())
	}
	if err := nfa.Validate(); err != nil {
		return nil, nil, fmt.Errorf("determinize: %w", err)
	}
	initial := nfa.Initial()

	size := uint(len(nfa.states))
	symbols := nfa.alphabet.Symbols()
	dfa := New(DFA, nfa.alphabet, nfa.regex)

	var subsets []*bitset.BitSet
	index := make(map[string]int) // NFA set key -> DFA state id

	discover := func(set *bitset.BitSet) int {
		id := dfa.AddState(nfa.containsFinal(set))
		index[set.String()] = id
		subsets = append(subsets, set)
		return id
	}

	start := bitset.New(size)
	start.Set(uint(initial.ID))
	discover(nfa.closure(start))

	// New states are appended to subsets, so this walks them in discovery order.
	for current := 0; current < len(subsets); current++ {
		for _, symbol := range symbols {
			moved := nfa.move(subsets[current], symbol)
			if moved.None() {
				continue
			}

			next := nfa.closure(moved)
			target, exists := index[next.String()]
			if !exists {
				target = discover(next)
			}
			dfa.AddTransition(current, target, symbol)
		}
	}

	trace := make([][]int, len(subsets))
	for i, set := range subsets {
		trace[i] = members(set)
	}
	return dfa, trace, nil
}

// closure extends set in place with every state reachable through epsilon
// transitions and returns it.
func (a *Automaton) closure(set *bitset.BitSet) *bitset.BitSet {
	stack := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		stack = append(stack, int(i))
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, t := range a.states[id].Transitions {
			if t.Symbol == Epsilon && !set.Test(uint(t.To)) {
				set.Set(uint(t.To))
				stack = append(stack, t.To)
			}
		}
	}
	return set
}

// move returns the states reached from set by one transition on symbol.
func (a *Automaton) move(set *bitset.BitSet, symbol rune) *bitset.BitSet {
	out := bitset.New(uint(len(a.states)))
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		for _, t := range a.states[i].Transitions {
			if t.Symbol == symbol {
				out.Set(uint(t.To))
			}
		}
	}
	return out
}

func (a *Automaton) containsFinal(set *bitset.BitSet) bool {
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if a.states[i].Final {
			return true
		}
	}
	return false
}

func members(set *bitset.BitSet) []int {
	out := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
