package automaton

import (
	"errors"
	"strings"
	"testing"

	"github.com/KromDaniel/regauto/internal/alphabet"
	"github.com/d4l3k/messagediff"
)

func TestMinimizeClassicExample(t *testing.T) {
	dfa := buildDFA(t, "ab", "(a|b)*abb")
	res, err := Minimize(dfa)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}

	minimal := res.Minimal()
	want := "(0 2)i --> (1)(a) --> (0 2)i(b)\n" +
		"(1) --> (1)(a) --> (3)(b)\n" +
		"(3) --> (1)(a) --> (4)f(b)\n" +
		"(4)f --> (1)(a) --> (0 2)i(b)\n"
	if got := minimal.String(); got != want {
		t.Errorf("Minimal() =\n%s\nwant\n%s", got, want)
	}

	if res.UnreachableRemoved {
		t.Error("UnreachableRemoved = true, want false")
	}
	if res.IdentitiesRemoved {
		t.Error("IdentitiesRemoved = true, want false")
	}

	wantTrace := "P0: {0, 1, 2, 3} {4}\n" +
		"P1: {0, 1, 2} {3} {4}\n" +
		"P2: {0, 2} {1} {3} {4}\n"
	if got := res.TraceString(); got != wantTrace {
		t.Errorf("TraceString() =\n%s\nwant\n%s", got, wantTrace)
	}

	for _, w := range words([]rune("ab"), 7) {
		if got, want := accepts(minimal, w), strings.HasSuffix(w, "abb"); got != want {
			t.Errorf("accepts(%q) = %v, want %v", w, got, want)
		}
	}
}

func TestMinimizeSnapshots(t *testing.T) {
	dfa := buildDFA(t, "ab", "(a|b)*abb")
	before := dfa.String()

	res, err := Minimize(dfa)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}

	if dfa.String() != before {
		t.Error("Minimize modified its input")
	}
	if res.Original == dfa {
		t.Error("Original shares the input pointer")
	}
	if res.Original.String() != before {
		t.Errorf("Original =\n%s\nwant\n%s", res.Original, before)
	}
	if res.PostUnreachable.Len() != 5 || res.PostMinimization.Len() != 4 || res.PostIdentity.Len() != 4 {
		t.Errorf("snapshot sizes = %d, %d, %d, want 5, 4, 4",
			res.PostUnreachable.Len(), res.PostMinimization.Len(), res.PostIdentity.Len())
	}
	if res.PostMinimization == res.PostIdentity {
		t.Error("PostMinimization and PostIdentity share a pointer")
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	patterns := []string{"a", "(a|b)*abb", "a*b+", "(ab|ba)*", "a?b?"}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			first, err := Minimize(buildDFA(t, "ab", pattern))
			if err != nil {
				t.Fatalf("Minimize: %v", err)
			}
			second, err := Minimize(first.Minimal())
			if err != nil {
				t.Fatalf("Minimize(minimal): %v", err)
			}

			if first.Minimal().Len() != second.Minimal().Len() {
				t.Errorf("second pass changed size: %d -> %d", first.Minimal().Len(), second.Minimal().Len())
			}
			if second.UnreachableRemoved || second.IdentitiesRemoved {
				t.Errorf("second pass removed states: unreachable=%v identities=%v",
					second.UnreachableRemoved, second.IdentitiesRemoved)
			}
		})
	}
}

func TestMinimizePreservesLanguage(t *testing.T) {
	patterns := []string{
		"a",
		"a|b",
		"(a|b)*",
		"(a|b)*abb",
		"a*b+a?",
		"((a|b)(a|b))*",
		"(a?b?)+",
		"a(a|b)*a|b",
		"(aa|bb)+(ab)?",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			dfa := buildDFA(t, "ab", pattern)
			res, err := Minimize(dfa)
			if err != nil {
				t.Fatalf("Minimize: %v", err)
			}

			minimal := res.Minimal()
			if minimal.Len() > dfa.Len() {
				t.Errorf("minimal has %d states, dfa has %d", minimal.Len(), dfa.Len())
			}
			if err := minimal.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			for _, w := range words([]rune("ab"), 6) {
				if got, want := accepts(minimal, w), accepts(dfa, w); got != want {
					t.Errorf("input %q: minimal accepts %v, dfa accepts %v", w, got, want)
				}
			}
		})
	}
}

func TestMinimizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *Automaton
		want  error
	}{
		{"nil", nil, ErrEmptyAutomaton},
		{"empty", New(DFA, alphabet.New("a"), ""), ErrEmptyAutomaton},
		{"nfa", buildNFA(t, "a", "a*"), ErrNotDeterministic},
		{"invalid", fixture("a", 2, []int{1}, 0, 'a', 1, 0, 'a', 0), ErrInvalidAutomaton},
		{"no alphabet", withoutAlphabet(DFA), ErrInvalidAutomaton},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Minimize(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Minimize() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRemoveUnreachable(t *testing.T) {
	// 3 and 4 have no path from 0.
	a := fixture("ab", 5, []int{2}, 0, 'a', 1, 1, 'b', 2, 3, 'a', 2, 4, 'a', 0)

	out, removed := RemoveUnreachable(a)
	if !removed {
		t.Error("removed = false, want true")
	}
	if out.Len() != 3 {
		t.Errorf("Len() = %d, want 3", out.Len())
	}
	for _, id := range []int{0, 1, 2} {
		if s := out.State(id); s == nil || s.ID != id {
			t.Errorf("State(%d) missing or renumbered", id)
		}
	}
	for _, id := range []int{3, 4} {
		if out.State(id) != nil {
			t.Errorf("State(%d) still present", id)
		}
	}
	if a.Len() != 5 {
		t.Errorf("input Len() = %d after removal, want 5", a.Len())
	}

	again, removed := RemoveUnreachable(out)
	if removed || again.Len() != 3 {
		t.Errorf("second pass: removed=%v Len()=%d, want false, 3", removed, again.Len())
	}
}

func TestRemoveIdentities(t *testing.T) {
	tests := []struct {
		name        string
		input       *Automaton
		wantRemoved bool
		wantString  string
	}{
		{
			name: "dead state removed, final identity kept",
			input: fixture("ab", 3, []int{1},
				0, 'a', 1, 0, 'b', 2,
				1, 'a', 1, 1, 'b', 1,
				2, 'a', 2, 2, 'b', 2),
			wantRemoved: true,
			wantString:  "0i --> 1f(a)\n1f --> 1f(a) --> 1f(b)\n",
		},
		{
			name:        "initial identity kept",
			input:       fixture("a", 1, nil, 0, 'a', 0),
			wantRemoved: false,
			wantString:  "0i --> 0i(a)\n",
		},
		{
			name:        "partial self loop is not an identity",
			input:       fixture("ab", 2, []int{0}, 0, 'b', 1, 1, 'a', 1),
			wantRemoved: false,
			wantString:  "0f --> 1(b)\n1 --> 1(a)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, removed := RemoveIdentities(tt.input)
			if removed != tt.wantRemoved {
				t.Errorf("removed = %v, want %v", removed, tt.wantRemoved)
			}
			if got := out.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
			if err := out.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestRefineTrace(t *testing.T) {
	// 1 and 2 are equivalent finals, 0 is the only non-final.
	a := fixture("a", 3, []int{1, 2}, 0, 'a', 1, 1, 'a', 2, 2, 'a', 1)

	minimal, trace := Refine(a)
	want := []Partition{{{0}, {1, 2}}}
	if diff, equal := messagediff.PrettyDiff(want, trace); !equal {
		t.Errorf("trace differs:\n%s", diff)
	}
	if got, want := minimal.String(), "(0)i --> (1 2)f(a)\n(1 2)f --> (1 2)f(a)\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPartitionString(t *testing.T) {
	p := Partition{{3, 1}, {0, 2}}
	p.normalize()

	if got, want := p.String(), "{0, 2} {1, 3}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !p.Equal(Partition{{0, 2}, {1, 3}}) {
		t.Error("Equal() = false for identical partitions")
	}
	if p.Equal(Partition{{0}, {2}, {1, 3}}) {
		t.Error("Equal() = true for different partitions")
	}
}
