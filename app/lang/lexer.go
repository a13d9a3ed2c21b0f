package lang

import (
	"iter"
	"strconv"
)

// Lexer scans a single line of input one token at a time.
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken scans and returns the next token. Once the input is exhausted
// every further call returns TOKEN_EOF.
func (l *Lexer) NextToken() Token {
	for l.pos < len(l.input) && l.input[l.pos] == ' ' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return Token{Type: TOKEN_EOF, Pos: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]
	switch ch {
	case '+':
		l.pos++
		return Token{Type: TOKEN_PLUS, Literal: "+", Pos: start}
	case '-':
		l.pos++
		return Token{Type: TOKEN_MINUS, Literal: "-", Pos: start}
	case ':':
		l.pos++
		return Token{Type: TOKEN_COLON, Literal: ":", Pos: start}
	case '/':
		l.pos++
		return Token{Type: TOKEN_SLASH, Literal: "/", Pos: start}
	}

	switch {
	case isDigit(ch):
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
		lit := l.input[start:l.pos]
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			// Only a range error is possible for a pure digit run.
			return Token{Type: TOKEN_ILLEGAL, Literal: lit, Pos: start}
		}
		return Token{Type: TOKEN_NUMBER, Literal: lit, Num: n, Pos: start}
	case isLetter(ch):
		for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
			l.pos++
		}
		return Token{Type: TOKEN_IDENT, Literal: l.input[start:l.pos], Pos: start}
	default:
		l.pos++
		return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: start}
	}
}

// Tokens returns a lazy token sequence over input. Each range over the
// sequence rescans from the beginning. After the end of input the sequence
// keeps yielding TOKEN_EOF until the consumer stops.
func Tokens(input string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := NewLexer(input)
		for {
			if !yield(l.NextToken()) {
				return
			}
		}
	}
}

// Lex tokenizes input into a slice ending with exactly one TOKEN_EOF.
func Lex(input string) []Token {
	var tokens []Token
	for tok := range Tokens(input) {
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
