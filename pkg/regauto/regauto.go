// Package regauto converts regular expressions over a finite alphabet into
// minimal deterministic finite automata.
//
// The pipeline is a lexical scan, a recursive-descent parse into postfix
// order, the Thompson construction of an NFA, the subset construction of a
// DFA, and a minimization that removes unreachable states, merges equivalent
// ones and drops non-accepting identity states.
//
// Expressions use the symbols of the alphabet and the operators | (union),
// * (zero or more), + (one or more), ? (zero or one) and parentheses.
// Concatenation is implicit.
package regauto

import (
	"fmt"
	"io"

	"github.com/KromDaniel/regauto/internal/alphabet"
	"github.com/KromDaniel/regauto/internal/automaton"
	"github.com/KromDaniel/regauto/internal/codegen"
	"github.com/KromDaniel/regauto/internal/compiler"
	"github.com/KromDaniel/regauto/internal/syntax"
)

type (
	// Alphabet is an ordered set of distinct input symbols.
	Alphabet = alphabet.Alphabet
	// Automaton is an NFA or a DFA over an Alphabet.
	Automaton = automaton.Automaton
	// State is one state of an Automaton.
	State = automaton.State
	// Result bundles every snapshot of a minimization run.
	Result = automaton.Result
	// Partition is one step of the refinement trace.
	Partition = automaton.Partition
	// Postfix is a parsed expression in postfix order.
	Postfix = syntax.Postfix
	// ParseError reports a syntax error with its 1-based token position.
	ParseError = syntax.ParseError
	// Output holds the product of every pipeline stage.
	Output = compiler.Output
)

// Epsilon is the symbol of empty transitions in an NFA.
const Epsilon = automaton.Epsilon

// Automaton kinds.
const (
	NFA = automaton.NFA
	DFA = automaton.DFA
)

// Sentinel errors re-exported for errors.Is.
var (
	ErrEmptyAutomaton      = automaton.ErrEmptyAutomaton
	ErrNotDeterministic    = automaton.ErrNotDeterministic
	ErrNotNondeterministic = automaton.ErrNotNondeterministic
	ErrInvalidAutomaton    = automaton.ErrInvalidAutomaton
	ErrMalformedPostfix    = automaton.ErrMalformedPostfix
)

// NewAlphabet builds an alphabet from the distinct characters of chars.
func NewAlphabet(chars string) *Alphabet {
	return alphabet.New(chars)
}

// SymbolString renders a transition symbol, showing Epsilon as "ε".
func SymbolString(r rune) string {
	return automaton.SymbolString(r)
}

// Parse scans and parses regex, returning its postfix form.
func Parse(alpha *Alphabet, regex string, opts ...Option) (Postfix, error) {
	c, err := newCompiler(alpha, regex, opts)
	if err != nil {
		return nil, err
	}
	return c.Parse()
}

// BuildNFA parses regex and returns its Thompson NFA.
func BuildNFA(alpha *Alphabet, regex string, opts ...Option) (*Automaton, error) {
	c, err := newCompiler(alpha, regex, opts)
	if err != nil {
		return nil, err
	}
	return c.BuildNFA()
}

// BuildAutomaton parses regex and returns the DFA obtained from its NFA by the
// subset construction. Syntax errors are returned as *ParseError.
func BuildAutomaton(alpha *Alphabet, regex string, opts ...Option) (*Automaton, error) {
	c, err := newCompiler(alpha, regex, opts)
	if err != nil {
		return nil, err
	}
	return c.BuildDFA()
}

// Minimize minimizes dfa and returns every intermediate snapshot. dfa is not modified.
func Minimize(dfa *Automaton, opts ...Option) (*Result, error) {
	if dfa == nil {
		return nil, fmt.Errorf("failed to minimize: %w", ErrEmptyAutomaton)
	}
	c, err := newCompiler(dfa.Alphabet(), dfa.Regex(), opts)
	if err != nil {
		return nil, err
	}
	return c.Minimize(dfa)
}

// Compile runs the whole pipeline and returns the product of every stage.
func Compile(alpha *Alphabet, regex string, opts ...Option) (*Output, error) {
	c, err := newCompiler(alpha, regex, opts)
	if err != nil {
		return nil, err
	}
	return c.Compile()
}

// EmitGo writes dfa as Go lookup tables named after name into a file of package pkg.
func EmitGo(w io.Writer, dfa *Automaton, name, pkg string) error {
	return codegen.Emit(w, dfa, codegen.Config{Name: name, Package: pkg})
}

func newCompiler(alpha *Alphabet, regex string, opts []Option) (*compiler.Compiler, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return compiler.New(compiler.Config{
		Alphabet:  alpha,
		Pattern:   regex,
		Verbose:   o.verbose,
		LogOutput: o.logOutput,
	})
}
