package parser

import "fmt"

// Error is a fatal configuration error detected while parsing or
// validating the input. Hint, when set, carries a corrective example
// shown to the user alongside the message.
type Error struct {
	Message string
	Hint    string
}

func (e *Error) Error() string {
	return e.Message
}

// errf builds an *Error with a formatted message and a hint.
func errf(hint, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Hint: hint}
}

// Hints for the common configuration mistakes, kept next to the errors
// that use them.
const (
	hintRelation = "Define a configuration string for each table.\n" +
		"For example:\n" +
		"-- TIKZ: relation, table_name, ts, te, ypos, relation description"
	hintTableOutput = "Either delete a configuration string for a table, or provide\n" +
		"an additional SQL command to produce a table output.\n" +
		"For example:\n" +
		"-- TIKZ: relation, table_name, ts, te, ypos, relation description"
	hintTimeline = "Define a single configuration string for the timeline.\n" +
		"For example:\n" +
		"-- TIKZ: timeline, from, to, step, time line description"
)
