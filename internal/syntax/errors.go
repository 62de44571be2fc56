package syntax

import "fmt"

// Causes reported by ParseError.
const (
	CauseEmpty            = "empty regular expression"
	CauseExpectedElement  = "expected opening parenthesis or alphabet symbol"
	CauseNotInAlphabet    = "symbol does not belong to the alphabet"
	CauseMissingClosing   = "missing closing parenthesis"
	CauseUnmatchedClosing = "unmatched closing parenthesis"
	CauseUnexpectedToken  = "unexpected token"
)

// ParseError describes the first grammar violation found in a regular expression.
type ParseError struct {
	// Literal is the text of the offending token ("" at end of input).
	Literal string
	// Position is the 1-based count of tokens read when the error was found.
	Position int
	// Cause is one of the Cause* constants.
	Cause string
}

func (e *ParseError) Error() string {
	if e.Literal == "" {
		return fmt.Sprintf("syntax error at token %d (end of input): %s", e.Position, e.Cause)
	}
	return fmt.Sprintf("syntax error at token %d (%q): %s", e.Position, e.Literal, e.Cause)
}
