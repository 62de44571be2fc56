package automaton

import (
	"fmt"
	"strconv"
	"strings"
)

// SymbolString renders a transition symbol; epsilon is shown as "ε".
func SymbolString(r rune) string {
	if r == Epsilon {
		return "ε"
	}
	return string(r)
}

// Name renders a state for diagnostics: its label (or id) followed by a single
// marker, "f" for final states or "i" for the initial state.
func (a *Automaton) Name(id int) string {
	s := a.State(id)
	if s == nil {
		return strconv.Itoa(id) + "?"
	}

	name := s.Label
	if name == "" {
		name = strconv.Itoa(s.ID)
	}
	switch {
	case s.Final:
		name += "f"
	case s == a.Initial():
		name += "i"
	}
	return name
}

// String renders one line per state, each followed by " --> target(symbol)"
// for every outgoing transition.
func (a *Automaton) String() string {
	var b strings.Builder
	for _, s := range a.States() {
		b.WriteString(a.Name(s.ID))
		for _, t := range s.Transitions {
			fmt.Fprintf(&b, " --> %s(%s)", a.Name(t.To), SymbolString(t.Symbol))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
