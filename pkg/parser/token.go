package parser

import "fmt"

// TokenKind identifies the structural class of one tokenized input line.
type TokenKind int

const (
	// TokenComment is a SQL comment line with the marker stripped.
	TokenComment TokenKind = iota
	// TokenHeader is a table header line split into column names.
	TokenHeader
	// TokenTuple is a data row split into cells.
	TokenTuple
	// TokenTupleCount is the trailing "(n rows)" marker of a table block.
	TokenTupleCount
	// TokenCommand is any other non-blank line (a SQL command echo).
	TokenCommand
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenComment:
		return "COMMENT"
	case TokenHeader:
		return "HEADER"
	case TokenTuple:
		return "TUPLE"
	case TokenTupleCount:
		return "TUPLECOUNT"
	case TokenCommand:
		return "COMMAND"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one tokenized input line. Tokens are immutable once produced
// and are consumed in input order.
type Token struct {
	Kind  TokenKind
	Text  string   // payload for TokenComment and TokenCommand
	Cells []string // payload for TokenHeader and TokenTuple, whitespace-trimmed
	Count int      // payload for TokenTupleCount
	Line  int      // 1-based input line number
}
