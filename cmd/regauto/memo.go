package main

import (
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/KromDaniel/regauto/internal/compiler"
	"github.com/KromDaniel/regauto/pkg/regauto"
)

type memoKey struct {
	alphabet string
	regex    string
}

// memo keeps finished pipeline outputs so that jobs repeating an (alphabet,
// regex) pair are compiled once. Alphabets are keyed by their sorted symbols.
// Failures are not cached.
type memo struct {
	cache   *lru.Cache[memoKey, *regauto.Output]
	verbose bool
	log     io.Writer
	logger  *compiler.Logger
}

func newMemo(size int, verbose bool, log io.Writer) (*memo, error) {
	if size < 1 {
		size = 1
	}
	cache, err := lru.New[memoKey, *regauto.Output](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	logger := compiler.NewLogger(verbose)
	logger.SetOutput(log)

	return &memo{cache: cache, verbose: verbose, log: log, logger: logger}, nil
}

func (m *memo) compile(alphabet, regex string) (*regauto.Output, error) {
	alpha := regauto.NewAlphabet(alphabet)
	key := memoKey{alphabet: alpha.String(), regex: regex}
	if out, ok := m.cache.Get(key); ok {
		m.logger.Log("Reusing compiled %q over %s", regex, key.alphabet)
		return out, nil
	}

	out, err := regauto.Compile(alpha, regex,
		regauto.WithVerbose(m.verbose), regauto.WithLogOutput(m.log))
	if err != nil {
		return nil, err
	}
	m.cache.Add(key, out)
	return out, nil
}
