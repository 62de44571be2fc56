package codegen

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/KromDaniel/regauto/internal/alphabet"
	"github.com/KromDaniel/regauto/internal/automaton"
	"github.com/KromDaniel/regauto/internal/syntax"
)

func minimalDFA(t *testing.T, chars, pattern string) *automaton.Automaton {
	t.Helper()
	alpha := alphabet.New(chars)
	postfix, err := syntax.Parse(alpha, pattern)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	nfa, err := automaton.Thompson(alpha, pattern, postfix)
	if err != nil {
		t.Fatalf("Thompson: %v", err)
	}
	dfa, err := automaton.Determinize(nfa)
	if err != nil {
		t.Fatalf("Determinize: %v", err)
	}
	res, err := automaton.Minimize(dfa)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	return res.Minimal()
}

func TestEmit(t *testing.T) {
	dfa := minimalDFA(t, "ab", "(a|b)*abb")

	var buf bytes.Buffer
	if err := Emit(&buf, dfa, Config{Name: "abb", Package: "tables"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	src := buf.String()

	if _, err := parser.ParseFile(token.NewFileSet(), "abb.go", src, parser.ParseComments); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}

	for _, want := range []string{
		`// Code generated by regauto from "(a|b)*abb". DO NOT EDIT.`,
		"package tables",
		"const AbbInitial = 0",
		"var AbbAlphabet = []rune{'a', 'b'}",
		"var AbbFinal = []bool{false, false, false, true}",
		`var AbbLabels = []string{"(0 2)", "(1)", "(3)", "(4)"}`,
		"var AbbTransitions = [][]int{{1, 0}, {1, 2}, {1, 3}, {1, 0}}",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source is missing %q\n%s", want, src)
		}
	}
}

func TestEmitMissingTransitions(t *testing.T) {
	dfa := minimalDFA(t, "ab", "ab")

	var buf bytes.Buffer
	if err := Emit(&buf, dfa, Config{Name: "pair", Package: "main", Unexported: true}); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	want := "var pairTransitions = [][]int{{1, -1}, {-1, 2}, {-1, -1}}"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("generated source is missing %q\n%s", want, buf.String())
	}
}

func TestEmitDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	config := Config{Name: "Automaton", Package: "main"}

	if err := Emit(&first, minimalDFA(t, "abc", "(a|b)+c?"), config); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := Emit(&second, minimalDFA(t, "abc", "(a|b)+c?"), config); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("two runs differ:\n%s\nvs\n%s", first.String(), second.String())
	}
}

func TestTablesErrors(t *testing.T) {
	dfa := minimalDFA(t, "a", "a")
	alpha := alphabet.New("a")
	nfa := automaton.New(automaton.NFA, alpha, "a")
	nfa.AddState(true)

	tests := []struct {
		name    string
		dfa     *automaton.Automaton
		config  Config
		wantErr error
	}{
		{"empty name", dfa, Config{Package: "main"}, nil},
		{"bad name", dfa, Config{Name: "a-b", Package: "main"}, nil},
		{"bad package", dfa, Config{Name: "A", Package: "main pkg"}, nil},
		{"empty automaton", automaton.New(automaton.DFA, alpha, ""), Config{Name: "A", Package: "main"}, automaton.ErrEmptyAutomaton},
		{"nfa", nfa, Config{Name: "A", Package: "main"}, automaton.ErrNotDeterministic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tables(tt.dfa, tt.config)
			if err == nil {
				t.Fatal("Tables() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Tables() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
