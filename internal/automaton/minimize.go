package automaton

import (
	"fmt"
	"strings"
)

// Result bundles every snapshot of a minimization run.
type Result struct {
	Original         *Automaton
	PostUnreachable  *Automaton
	PostMinimization *Automaton
	PostIdentity     *Automaton

	// UnreachableRemoved is set when phase one deleted at least one state.
	UnreachableRemoved bool
	// IdentitiesRemoved is set when phase three deleted at least one state.
	IdentitiesRemoved bool

	// Trace holds every partition produced during refinement, first to last.
	Trace []Partition
}

// Minimal returns the final automaton of the run.
func (r *Result) Minimal() *Automaton {
	return r.PostIdentity
}

// TraceString renders the refinement trace, one "P<n>: ..." line per partition.
func (r *Result) TraceString() string {
	var b strings.Builder
	for i, p := range r.Trace {
		fmt.Fprintf(&b, "P%d: %s\n", i, p)
	}
	return b.String()
}

// Minimize runs the four minimization phases over independent copies of dfa:
// unreachable-state removal, partition refinement, identity-state removal and
// bundling. The input is never modified.
func Minimize(dfa *Automaton) (*Result, error) {
	if dfa == nil || dfa.Len() == 0 {
		return nil, fmt.Errorf("minimize: %w", ErrEmptyAutomaton)
	}
	if dfa.Kind() != DFA {
		return nil, fmt.Errorf("minimize: %w: got %s", ErrNotDeterministic, dfa.Kind())
	}
	if err := dfa.Validate(); err != nil {
		return nil, fmt.Errorf("minimize: %w", err)
	}

	res := &Result{Original: dfa.Clone()}
	res.PostUnreachable, res.UnreachableRemoved = RemoveUnreachable(dfa)
	res.PostMinimization, res.Trace = Refine(res.PostUnreachable)
	res.PostIdentity, res.IdentitiesRemoved = RemoveIdentities(res.PostMinimization)
	return res, nil
}

// RemoveUnreachable returns a copy of a without the states that cannot be reached
// from the initial state, and whether anything was removed. Ids are not renumbered.
func RemoveUnreachable(a *Automaton) (*Automaton, bool) {
	out := a.Clone()
	reached := out.reachable()

	var doomed []int
	for _, s := range out.States() {
		if !reached.Test(uint(s.ID)) {
			doomed = append(doomed, s.ID)
		}
	}

	out.removeStates(doomed)
	return out, len(doomed) > 0
}

// Refine merges indistinguishable states by Myhill-Nerode partition refinement.
// It returns the minimized automaton, with one state per final group, and every
// partition computed on the way.
func Refine(a *Automaton) (*Automaton, []Partition) {
	symbols := a.alphabet.Symbols()

	current := initialPartition(a)
	trace := []Partition{current}

	for {
		groupOf := current.groupOf()

		var next Partition
		for _, group := range current {
			if len(group) <= 1 {
				next = append(next, group)
				continue
			}

			// Split the group by signature, keeping first-seen order.
			bySignature := make(map[string]int)
			var split [][]int
			for _, id := range group {
				key := a.signature(id, symbols, groupOf)
				if i, ok := bySignature[key]; ok {
					split[i] = append(split[i], id)
					continue
				}
				bySignature[key] = len(split)
				split = append(split, []int{id})
			}
			next = append(next, split...)
		}

		next.normalize()
		if next.Equal(current) {
			break
		}
		trace = append(trace, next)
		current = next
	}

	return a.quotient(current), trace
}

// initialPartition separates final from non-final states, dropping an empty side.
func initialPartition(a *Automaton) Partition {
	var finals, others []int
	for _, s := range a.States() {
		if s.Final {
			finals = append(finals, s.ID)
		} else {
			others = append(others, s.ID)
		}
	}

	var p Partition
	if len(finals) > 0 {
		p = append(p, finals)
	}
	if len(others) > 0 {
		p = append(p, others)
	}
	p.normalize()
	return p
}

// signature lists, per alphabet symbol in order, the group the transition on that
// symbol lands in, or NoTransition.
func (a *Automaton) signature(id int, symbols []rune, groupOf map[int]int) string {
	var b strings.Builder
	for _, symbol := range symbols {
		group := NoTransition
		if to, ok := a.Next(id, symbol); ok {
			group = groupOf[to]
		}
		fmt.Fprintf(&b, "%d,", group)
	}
	return b.String()
}

// quotient builds the automaton with one state per group of p. The group of the
// initial state comes first in a normalized partition, so it stays initial.
func (a *Automaton) quotient(p Partition) *Automaton {
	out := New(DFA, a.alphabet, a.regex)
	groupOf := p.groupOf()

	for _, group := range p {
		final := false
		for _, id := range group {
			if a.states[id].Final {
				final = true
				break
			}
		}
		id := out.AddState(final)
		out.states[id].Label = "(" + joinInts(group, " ") + ")"
	}

	// Members of a stable group agree on every symbol, so one representative suffices.
	for i, group := range p {
		for _, t := range a.states[group[0]].Transitions {
			out.AddTransition(i, groupOf[t.To], t.Symbol)
		}
	}
	return out
}

// RemoveIdentities returns a copy of a without its non-final identity states,
// together with every transition that led to them, and whether anything was
// removed. Final identity states and the initial state are always kept.
func RemoveIdentities(a *Automaton) (*Automaton, bool) {
	out := a.Clone()
	size := out.alphabet.Len()
	initial := out.Initial()

	var doomed []int
	for _, s := range out.States() {
		if s != initial && !s.Final && s.isIdentity(size) {
			doomed = append(doomed, s.ID)
		}
	}

	out.removeStates(doomed)
	return out, len(doomed) > 0
}
