// Package automaton holds the shared NFA/DFA model and the algorithms that build
// and reduce it: Thompson construction, subset construction and minimization.
//
// States live in an arena and are addressed by integer id. The first state is the
// initial state. Removing states leaves a hole in the arena, so the ids of the
// remaining states never change.
package automaton

import (
	"errors"
	"fmt"

	"github.com/KromDaniel/regauto/internal/alphabet"
	"github.com/bits-and-blooms/bitset"
)

// Epsilon is the symbol of empty transitions. No alphabet can contain it.
const Epsilon rune = -1

var (
	// ErrEmptyAutomaton is returned when an operation needs at least one state.
	ErrEmptyAutomaton = errors.New("automaton has no states")
	// ErrNotDeterministic is returned when a DFA is required.
	ErrNotDeterministic = errors.New("automaton is not deterministic")
	// ErrNotNondeterministic is returned when an NFA is required.
	ErrNotNondeterministic = errors.New("automaton is not an NFA")
	// ErrInvalidAutomaton is returned by Validate.
	ErrInvalidAutomaton = errors.New("invalid automaton")
)

// Kind tells whether an automaton may hold epsilon and duplicate transitions.
type Kind int

const (
	NFA Kind = iota
	DFA
)

func (k Kind) String() string {
	switch k {
	case NFA:
		return "NFA"
	case DFA:
		return "DFA"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Transition is an edge to the state with id To, labelled Symbol.
type Transition struct {
	To     int
	Symbol rune
}

// State is a node of an automaton.
type State struct {
	ID    int
	Final bool
	// Label names the states a minimized state was merged from, e.g. "(0 2)".
	Label       string
	Transitions []Transition
}

// isIdentity reports whether every one of the size alphabet symbols loops back to s.
func (s *State) isIdentity(size int) bool {
	if len(s.Transitions) != size {
		return false
	}
	for _, t := range s.Transitions {
		if t.To != s.ID {
			return false
		}
	}
	return true
}

// Automaton is a finite automaton over an alphabet, built from a regular expression.
type Automaton struct {
	kind     Kind
	alphabet *alphabet.Alphabet
	regex    string
	states   []*State // nil marks a removed state
	live     int
}

// New creates an empty automaton.
func New(kind Kind, alpha *alphabet.Alphabet, regex string) *Automaton {
	return &Automaton{
		kind:     kind,
		alphabet: alpha,
		regex:    regex,
	}
}

// Kind returns whether this is an NFA or a DFA.
func (a *Automaton) Kind() Kind {
	return a.kind
}

// Alphabet returns the alphabet the automaton is defined over.
func (a *Automaton) Alphabet() *alphabet.Alphabet {
	return a.alphabet
}

// Regex returns the source regular expression.
func (a *Automaton) Regex() string {
	return a.regex
}

// AddState appends a new state and returns its id.
func (a *Automaton) AddState(final bool) int {
	id := len(a.states)
	a.states = append(a.states, &State{ID: id, Final: final})
	a.live++
	return id
}

// AddTransition appends an edge from one state to another.
// Both states must exist; Validate reports violations of the DFA rules.
func (a *Automaton) AddTransition(from, to int, symbol rune) {
	s := a.states[from]
	s.Transitions = append(s.Transitions, Transition{To: to, Symbol: symbol})
}

// State returns the state with the given id, or nil if it does not exist or was removed.
func (a *Automaton) State(id int) *State {
	if id < 0 || id >= len(a.states) {
		return nil
	}
	return a.states[id]
}

// States returns the live states in insertion order.
func (a *Automaton) States() []*State {
	out := make([]*State, 0, a.live)
	for _, s := range a.states {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of live states.
func (a *Automaton) Len() int {
	return a.live
}

// Initial returns the initial state, or nil for an empty automaton.
func (a *Automaton) Initial() *State {
	for _, s := range a.states {
		if s != nil {
			return s
		}
	}
	return nil
}

// Finals returns the final states in insertion order.
func (a *Automaton) Finals() []*State {
	var out []*State
	for _, s := range a.states {
		if s != nil && s.Final {
			out = append(out, s)
		}
	}
	return out
}

// TransitionCount returns the number of transitions over all live states.
func (a *Automaton) TransitionCount() int {
	n := 0
	for _, s := range a.states {
		if s != nil {
			n += len(s.Transitions)
		}
	}
	return n
}

// Next returns the target of the first transition of state id labelled symbol.
func (a *Automaton) Next(id int, symbol rune) (int, bool) {
	s := a.State(id)
	if s == nil {
		return 0, false
	}
	for _, t := range s.Transitions {
		if t.Symbol == symbol {
			return t.To, true
		}
	}
	return 0, false
}

// Clone returns a deep copy sharing only the immutable alphabet.
func (a *Automaton) Clone() *Automaton {
	out := &Automaton{
		kind:     a.kind,
		alphabet: a.alphabet,
		regex:    a.regex,
		states:   make([]*State, len(a.states)),
		live:     a.live,
	}
	for i, s := range a.states {
		if s == nil {
			continue
		}
		cp := *s
		cp.Transitions = append([]Transition(nil), s.Transitions...)
		out.states[i] = &cp
	}
	return out
}

// removeStates deletes the given states and every transition that targets them.
// The caller collects ids before calling, so nothing is deleted while iterating.
func (a *Automaton) removeStates(ids []int) {
	if len(ids) == 0 {
		return
	}

	doomed := bitset.New(uint(len(a.states)))
	for _, id := range ids {
		if a.states[id] == nil {
			continue
		}
		doomed.Set(uint(id))
		a.states[id] = nil
		a.live--
	}

	for _, s := range a.states {
		if s == nil {
			continue
		}
		kept := s.Transitions[:0]
		for _, t := range s.Transitions {
			if !doomed.Test(uint(t.To)) {
				kept = append(kept, t)
			}
		}
		s.Transitions = kept
	}
}

// reachable collects the states reachable from the initial state with an
// explicit-stack depth-first traversal.
func (a *Automaton) reachable() *bitset.BitSet {
	seen := bitset.New(uint(len(a.states)))
	initial := a.Initial()
	if initial == nil {
		return seen
	}

	seen.Set(uint(initial.ID))
	stack := []int{initial.ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, t := range a.states[id].Transitions {
			if !seen.Test(uint(t.To)) {
				seen.Set(uint(t.To))
				stack = append(stack, t.To)
			}
		}
	}
	return seen
}

// Validate checks the structural invariants of the automaton.
func (a *Automaton) Validate() error {
	if a.alphabet == nil {
		return fmt.Errorf("%w: no alphabet", ErrInvalidAutomaton)
	}
	if a.live > 0 && (len(a.states) == 0 || a.states[0] == nil) {
		return fmt.Errorf("%w: initial state was removed", ErrInvalidAutomaton)
	}

	for i, s := range a.states {
		if s == nil {
			continue
		}
		if s.ID != i {
			return fmt.Errorf("%w: state at %d has id %d", ErrInvalidAutomaton, i, s.ID)
		}

		seen := make(map[rune]bool, len(s.Transitions))
		for _, t := range s.Transitions {
			if a.State(t.To) == nil {
				return fmt.Errorf("%w: state %d targets missing state %d", ErrInvalidAutomaton, s.ID, t.To)
			}
			if t.Symbol == Epsilon {
				if a.kind == DFA {
					return fmt.Errorf("%w: DFA state %d has an epsilon transition", ErrInvalidAutomaton, s.ID)
				}
				continue
			}
			if !a.alphabet.Contains(t.Symbol) {
				return fmt.Errorf("%w: state %d uses symbol %q outside the alphabet", ErrInvalidAutomaton, s.ID, t.Symbol)
			}
			if a.kind == DFA && seen[t.Symbol] {
				return fmt.Errorf("%w: DFA state %d has two transitions on %q", ErrInvalidAutomaton, s.ID, t.Symbol)
			}
			seen[t.Symbol] = true
		}
	}
	return nil
}
