// Package codegen emits automata as Go source with lookup tables.
package codegen

import (
	"unicode"
	"unicode/utf8"
)

// Suffixes of the identifiers declared in generated code.
const (
	InitialSuffix     = "Initial"
	AlphabetSuffix    = "Alphabet"
	FinalSuffix       = "Final"
	LabelsSuffix      = "Labels"
	TransitionsSuffix = "Transitions"
)

// NoTransition fills table cells for symbols a state has no transition on.
const NoTransition = -1

// TableName joins a name and a suffix, exporting the result unless unexported is set.
func TableName(name, suffix string, unexported bool) string {
	if unexported {
		return LowerFirst(name) + suffix
	}
	return UpperFirst(name) + suffix
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
