// Package compiler drives the regular expression to minimal DFA pipeline.
package compiler

import (
	"errors"
	"fmt"
	"io"

	"github.com/KromDaniel/regauto/internal/alphabet"
	"github.com/KromDaniel/regauto/internal/automaton"
	"github.com/KromDaniel/regauto/internal/syntax"
)

// ErrNoAlphabet is returned by Config.Validate when no alphabet is set.
var ErrNoAlphabet = errors.New("alphabet cannot be nil")

// Config holds the input of one pipeline run.
type Config struct {
	Alphabet  *alphabet.Alphabet
	Pattern   string
	Verbose   bool      // Enable verbose logging of every stage
	LogOutput io.Writer // Destination of verbose logs (default: stderr)
}

// Validate checks if the configuration is usable. An empty pattern is valid here
// and reported by the parser with its position.
func (c Config) Validate() error {
	if c.Alphabet == nil {
		return ErrNoAlphabet
	}
	return nil
}

// Compiler runs the pipeline stages for a single pattern.
type Compiler struct {
	config Config
	logger *Logger
}

// Output collects the product of every stage of a full run.
type Output struct {
	Postfix syntax.Postfix
	NFA     *automaton.Automaton
	DFA     *automaton.Automaton
	Subsets [][]int // NFA state ids behind every DFA state
	Result  *automaton.Result
}

// New creates a new compiler instance.
func New(config Config) (*Compiler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := NewLogger(config.Verbose)
	logger.SetOutput(config.LogOutput)

	return &Compiler{
		config: config,
		logger: logger,
	}, nil
}

// Parse scans and parses the pattern into postfix order.
func (c *Compiler) Parse() (syntax.Postfix, error) {
	c.logger.Section("Lexical Scan")
	c.logger.Log("Alphabet: %s", c.config.Alphabet)
	c.logger.Log("Pattern: %q", c.config.Pattern)
	if c.logger.Enabled() {
		tokens := syntax.Tokenize(c.config.Alphabet, c.config.Pattern)
		c.logger.Log("Tokens: %d", len(tokens))
		for i, tok := range tokens {
			c.logger.Log("  %d: %s %q", i+1, tok.Kind, tok.Literal)
		}
	}

	c.logger.Section("Syntax Analysis")
	postfix, err := syntax.Parse(c.config.Alphabet, c.config.Pattern)
	if err != nil {
		c.logger.Log("Rejected: %v", err)
		return nil, err
	}
	c.logger.Log("Postfix: %s", postfix)
	return postfix, nil
}

// BuildNFA parses the pattern and runs the Thompson construction.
func (c *Compiler) BuildNFA() (*automaton.Automaton, error) {
	postfix, err := c.Parse()
	if err != nil {
		return nil, err
	}
	return c.thompson(postfix)
}

func (c *Compiler) thompson(postfix syntax.Postfix) (*automaton.Automaton, error) {
	c.logger.Section("Thompson Construction")
	nfa, err := automaton.Thompson(c.config.Alphabet, c.config.Pattern, postfix)
	if err != nil {
		return nil, fmt.Errorf("failed to build NFA: %w", err)
	}
	c.logger.Log("NFA states: %d", nfa.Len())
	c.logger.Log("NFA transitions: %d", nfa.TransitionCount())
	c.logger.Block(nfa.String())
	return nfa, nil
}

// BuildDFA runs the pipeline up to the subset construction.
func (c *Compiler) BuildDFA() (*automaton.Automaton, error) {
	nfa, err := c.BuildNFA()
	if err != nil {
		return nil, err
	}
	dfa, _, err := c.determinize(nfa)
	return dfa, err
}

func (c *Compiler) determinize(nfa *automaton.Automaton) (*automaton.Automaton, [][]int, error) {
	c.logger.Section("Subset Construction")
	dfa, subsets, err := automaton.DeterminizeTrace(nfa)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build DFA: %w", err)
	}
	for id, set := range subsets {
		c.logger.Log("D%d = %v", id, set)
	}
	c.logger.Log("DFA states: %d", dfa.Len())
	c.logger.Block(dfa.String())
	return dfa, subsets, nil
}

// Minimize runs the four minimization phases over dfa.
func (c *Compiler) Minimize(dfa *automaton.Automaton) (*automaton.Result, error) {
	c.logger.Section("Minimization")
	res, err := automaton.Minimize(dfa)
	if err != nil {
		return nil, fmt.Errorf("failed to minimize: %w", err)
	}

	c.logger.Log("Unreachable states removed: %v (%d -> %d)",
		res.UnreachableRemoved, res.Original.Len(), res.PostUnreachable.Len())
	c.logger.Log("Refinement partitions: %d", len(res.Trace))
	c.logger.Block(res.TraceString())
	c.logger.Log("Identity states removed: %v (%d -> %d)",
		res.IdentitiesRemoved, res.PostMinimization.Len(), res.PostIdentity.Len())
	c.logger.Block(res.Minimal().String())
	return res, nil
}

// Compile runs every stage and keeps all intermediate products.
func (c *Compiler) Compile() (*Output, error) {
	postfix, err := c.Parse()
	if err != nil {
		return nil, err
	}
	nfa, err := c.thompson(postfix)
	if err != nil {
		return nil, err
	}
	dfa, subsets, err := c.determinize(nfa)
	if err != nil {
		return nil, err
	}
	res, err := c.Minimize(dfa)
	if err != nil {
		return nil, err
	}

	return &Output{
		Postfix: postfix,
		NFA:     nfa,
		DFA:     dfa,
		Subsets: subsets,
		Result:  res,
	}, nil
}
