package parser

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Format selects the input dialect.
type Format int

const (
	// FormatPostgres is the output of "psql --echo-all": |-separated
	// headers, a ---+--- rule line, and a trailing "(n rows)" marker.
	FormatPostgres Format = iota
	// FormatTSV is tab-separated: the first non-comment line is the
	// header, immediately followed by tuple lines.
	FormatTSV
)

// Lexer states. The machine rests in stateOutside between table blocks.
type lexState int

const (
	stateFirstLine lexState = iota
	stateOutside
	stateHeader
	stateTuples
)

const commentMarker = "--"

var (
	tsvMarkerRe  = regexp.MustCompile(`--\s*TIKZ:\s*TSV`)
	headerRe     = regexp.MustCompile(`[^|]+\|[^|]+`)
	tupleCountRe = regexp.MustCompile(`\((\d+)\s\w*\)`)
)

// Lexer tokenizes a psql transcript or TSV dump line by line.
// It is a single forward pass with no backtracking; directive syntax
// inside comments is opaque at this layer.
type Lexer struct {
	scanner *bufio.Scanner
	state   lexState
	format  Format
	sep     string
	line    int
}

// NewLexer creates a Lexer reading from r. The input dialect is
// auto-detected from an optional "-- TIKZ: TSV" marker on the first line.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		scanner: bufio.NewScanner(r),
		state:   stateFirstLine,
		format:  FormatPostgres,
		sep:     "|",
	}
}

// Format reports the detected input dialect. The result is stable once
// the first line has been consumed.
func (l *Lexer) Format() Format {
	return l.format
}

// Next returns the next token, or ok=false at end of input.
// Lines that only drive the state machine (blank lines, rule lines, the
// TSV marker) produce no token and are skipped.
func (l *Lexer) Next() (Token, bool) {
	for l.scanner.Scan() {
		l.line++
		line := strings.TrimLeft(l.scanner.Text(), " \t")

		if l.state == stateFirstLine {
			l.state = stateOutside
			if tsvMarkerRe.MatchString(line) {
				l.format = FormatTSV
				l.sep = "\t"
				continue
			}
		}

		// A blank line ends the current block at any state.
		if strings.TrimSpace(line) == "" {
			l.state = stateOutside
			continue
		}

		if strings.HasPrefix(line, commentMarker) {
			// Past a header this is the ---+--- rule line that
			// starts the tuple section.
			if l.state == stateHeader {
				l.state = stateTuples
				continue
			}
			if l.state == stateOutside {
				return Token{
					Kind: TokenComment,
					Text: strings.TrimRight(strings.TrimLeft(line, "- "), " \t"),
					Line: l.line,
				}, true
			}
			continue
		}

		if l.state == stateOutside {
			// In PostgreSQL output a header needs a cell separator
			// between two non-separator spans; anything else is an
			// echoed SQL command. In TSV the first non-comment line
			// is always the header.
			if l.format == FormatPostgres && !headerRe.MatchString(line) {
				return Token{
					Kind: TokenCommand,
					Text: strings.TrimRight(line, " \t"),
					Line: l.line,
				}, true
			}
			if l.format == FormatTSV {
				l.state = stateTuples
			} else {
				l.state = stateHeader
			}
			return Token{Kind: TokenHeader, Cells: l.splitCells(line), Line: l.line}, true
		}

		if l.state == stateTuples {
			if m := tupleCountRe.FindStringSubmatch(line); m != nil {
				l.state = stateOutside
				n, _ := strconv.Atoi(m[1])
				return Token{Kind: TokenTupleCount, Count: n, Line: l.line}, true
			}
			return Token{Kind: TokenTuple, Cells: l.splitCells(line), Line: l.line}, true
		}
	}
	return Token{}, false
}

// Err returns the first error encountered while reading the input.
func (l *Lexer) Err() error {
	return l.scanner.Err()
}

// splitCells splits a line on the active cell separator and trims each field.
func (l *Lexer) splitCells(line string) []string {
	parts := strings.Split(line, l.sep)
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// Tokenize returns all tokens from the input.
func Tokenize(r io.Reader) ([]Token, error) {
	l := NewLexer(r)
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.Err()
}
