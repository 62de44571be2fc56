// Package alphabet implements the finite symbol set a regular expression is written over.
package alphabet

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrIndexOutOfRange is returned by Symbol when the requested position does not exist.
var ErrIndexOutOfRange = errors.New("symbol index out of range")

// Alphabet is an ordered set of distinct one-character symbols.
// It is sorted at construction and never modified afterwards.
type Alphabet struct {
	symbols []rune
}

// New builds an alphabet from every distinct character of chars.
// An empty string yields an empty alphabet.
func New(chars string) *Alphabet {
	symbols := []rune(chars)
	slices.Sort(symbols)
	return &Alphabet{symbols: slices.Compact(symbols)}
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Symbol returns the symbol at sorted position i.
func (a *Alphabet) Symbol(i int) (rune, error) {
	if i < 0 || i >= len(a.symbols) {
		return 0, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, len(a.symbols))
	}
	return a.symbols[i], nil
}

// Symbols returns a copy of the symbols in sorted order.
func (a *Alphabet) Symbols() []rune {
	return slices.Clone(a.symbols)
}

// Contains reports whether r belongs to the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, found := slices.BinarySearch(a.symbols, r)
	return found
}

// Index returns the sorted position of r, or -1 if r is not a member.
func (a *Alphabet) Index(r rune) int {
	i, found := slices.BinarySearch(a.symbols, r)
	if !found {
		return -1
	}
	return i
}

// Equal reports whether both alphabets hold the same symbols.
func (a *Alphabet) Equal(other *Alphabet) bool {
	if other == nil {
		return false
	}
	return slices.Equal(a.symbols, other.symbols)
}

// String renders the alphabet as {s0, s1, ...}.
func (a *Alphabet) String() string {
	parts := make([]string, len(a.symbols))
	for i, r := range a.symbols {
		parts[i] = string(r)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
