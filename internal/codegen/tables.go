package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"strconv"

	"github.com/KromDaniel/regauto/internal/automaton"
	"github.com/dave/jennifer/jen"
)

// Config names the generated file and its tables.
type Config struct {
	Name       string // Prefix of every table identifier (e.g. "Abb" gives "AbbTransitions")
	Package    string // Go package of the generated file
	Unexported bool   // Declare unexported identifiers
}

// Validate checks that Name and Package produce valid identifiers.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.New("name cannot be empty")
	}
	if id := TableName(c.Name, TransitionsSuffix, c.Unexported); !token.IsIdentifier(id) {
		return fmt.Errorf("name %q does not form a Go identifier", c.Name)
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a valid package name", c.Package)
	}
	return nil
}

// Tables builds a Go file declaring dfa as lookup tables. States are numbered
// densely in arena order, so the initial state is always row 0.
func Tables(dfa *automaton.Automaton, config Config) (*jen.File, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if dfa == nil || dfa.Len() == 0 {
		return nil, automaton.ErrEmptyAutomaton
	}
	if dfa.Kind() != automaton.DFA {
		return nil, fmt.Errorf("%w: got %s", automaton.ErrNotDeterministic, dfa.Kind())
	}

	states := dfa.States()
	row := make(map[int]int, len(states))
	for i, s := range states {
		row[s.ID] = i
	}
	symbols := dfa.Alphabet().Symbols()

	name := func(suffix string) string {
		return TableName(config.Name, suffix, config.Unexported)
	}

	f := jen.NewFile(config.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by regauto from %q. DO NOT EDIT.", dfa.Regex()))

	f.Comment(fmt.Sprintf("%s is the row of the initial state.", name(InitialSuffix)))
	f.Const().Id(name(InitialSuffix)).Op("=").Lit(0)

	alpha := make([]jen.Code, len(symbols))
	for i, r := range symbols {
		alpha[i] = jen.LitRune(r)
	}
	f.Comment(fmt.Sprintf("%s lists the input symbols, one per column of %s.",
		name(AlphabetSuffix), name(TransitionsSuffix)))
	f.Var().Id(name(AlphabetSuffix)).Op("=").Index().Rune().Values(alpha...)

	finals := make([]jen.Code, len(states))
	labels := make([]jen.Code, len(states))
	table := make([]jen.Code, len(states))
	for i, s := range states {
		finals[i] = jen.Lit(s.Final)
		labels[i] = jen.Lit(label(s))

		cells := make([]jen.Code, len(symbols))
		for j, r := range symbols {
			next := NoTransition
			if to, ok := dfa.Next(s.ID, r); ok {
				next = row[to]
			}
			cells[j] = jen.Lit(next)
		}
		table[i] = jen.Values(cells...)
	}

	f.Comment(fmt.Sprintf("%s reports, per state, whether it accepts.", name(FinalSuffix)))
	f.Var().Id(name(FinalSuffix)).Op("=").Index().Bool().Values(finals...)

	f.Comment(fmt.Sprintf("%s holds the original state name of every row.", name(LabelsSuffix)))
	f.Var().Id(name(LabelsSuffix)).Op("=").Index().String().Values(labels...)

	f.Comment(fmt.Sprintf("%s[state][symbol] is the next state, or %d.", name(TransitionsSuffix), NoTransition))
	f.Var().Id(name(TransitionsSuffix)).Op("=").Index().Index().Int().Values(table...)

	return f, nil
}

// Emit writes the tables of dfa as formatted Go source to w.
func Emit(w io.Writer, dfa *automaton.Automaton, config Config) error {
	f, err := Tables(dfa, config)
	if err != nil {
		return err
	}
	if err := f.Render(w); err != nil {
		return fmt.Errorf("failed to render tables: %w", err)
	}
	return nil
}

func label(s *automaton.State) string {
	if s.Label != "" {
		return s.Label
	}
	return strconv.Itoa(s.ID)
}
