package parser

import "fmt"

// LexError reports malformed token-level input such as an unterminated
// string literal or block comment.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// SyntaxError reports a token sequence that does not match the
// declaration grammar. Parsing stops at the first one.
type SyntaxError struct {
	Pos      Position
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}
