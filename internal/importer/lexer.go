package importer

import (
	"strconv"

	"github.com/tdewolff/parse/v2"
)

type tokenType int

const (
	errorToken tokenType = iota
	eofToken
	newlineToken
	intToken
	stringToken
	identToken
	openToken
	closeToken
)

func (tt tokenType) String() string {
	switch tt {
	case errorToken:
		return "error"
	case eofToken:
		return "end of file"
	case newlineToken:
		return "newline"
	case intToken:
		return "integer"
	case stringToken:
		return "string"
	case identToken:
		return "identifier"
	case openToken:
		return "'('"
	case closeToken:
		return "')'"
	}
	return "token " + strconv.Itoa(int(tt))
}

// lexer splits the rectangle source formats into tokens. Comments run from
// the comment byte to the end of the line.
type lexer struct {
	z        *parse.Input
	comment  byte
	newlines bool // report line ends instead of skipping them
	commas   bool // treat commas as blanks
	err      error
}

func newLexer(data []byte, comment byte) *lexer {
	return &lexer{z: parse.NewInputBytes(data), comment: comment}
}

// Err returns the first lexing or parsing error.
func (l *lexer) Err() error { return l.err }

// errorf records an error at the current position.
func (l *lexer) errorf(format string, args ...interface{}) {
	if l.err == nil {
		l.err = parse.NewErrorLexer(l.z, format, args...)
	}
}

func (l *lexer) atEOF() bool {
	return l.z.Peek(0) == 0 && l.z.Err() != nil
}

// Next returns the next token and its text.
func (l *lexer) Next() (tokenType, []byte) {
	if l.err != nil {
		return errorToken, nil
	}
	for {
		c := l.z.Peek(0)
		switch {
		case c == ' ' || c == '\t' || c == '\r' || (c == ',' && l.commas):
			l.z.Move(1)
			l.z.Skip()
		case c == '\n':
			l.z.Move(1)
			if l.newlines {
				return newlineToken, l.z.Shift()
			}
			l.z.Skip()
		case c == l.comment:
			for c := l.z.Peek(0); c != '\n' && !l.atEOF(); c = l.z.Peek(0) {
				l.z.Move(1)
			}
			l.z.Skip()
		case c == 0 && l.atEOF():
			return eofToken, nil
		case c == '(':
			l.z.Move(1)
			return openToken, l.z.Shift()
		case c == ')':
			l.z.Move(1)
			return closeToken, l.z.Shift()
		case c == '-' || c == '+' || isDigit(c):
			l.z.Move(1)
			if !isDigit(c) && !isDigit(l.z.Peek(0)) {
				l.errorf("expected digits after sign")
				return errorToken, nil
			}
			for isDigit(l.z.Peek(0)) {
				l.z.Move(1)
			}
			return intToken, l.z.Shift()
		case c == '"':
			l.z.Move(1)
			for c := l.z.Peek(0); c != '"'; c = l.z.Peek(0) {
				if c == '\n' || l.atEOF() {
					l.errorf("unterminated string")
					return errorToken, nil
				}
				l.z.Move(1)
			}
			l.z.Move(1)
			lexeme := l.z.Shift()
			return stringToken, lexeme[1 : len(lexeme)-1]
		case isLetter(c):
			for isLetter(l.z.Peek(0)) || isDigit(l.z.Peek(0)) {
				l.z.Move(1)
			}
			return identToken, l.z.Shift()
		default:
			l.errorf("unexpected character %q", c)
			return errorToken, nil
		}
	}
}

// expect reads the next token and records an error unless it has type tt.
func (l *lexer) expect(tt tokenType) ([]byte, bool) {
	got, text := l.Next()
	if got != tt {
		if got != errorToken {
			l.errorf("expected %s, found %s", tt, got)
		}
		return nil, false
	}
	return text, true
}

// int32 reads an integer token that fits a coordinate.
func (l *lexer) int32() (int32, bool) {
	text, ok := l.expect(intToken)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(string(text), 10, 32)
	if err != nil {
		l.errorf("coordinate %s out of range", text)
		return 0, false
	}
	return int32(v), true
}

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' }
