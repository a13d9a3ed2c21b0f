package lang

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TOKEN_NUMBER TokenType = iota
	TOKEN_IDENT
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_COLON
	TOKEN_SLASH
	TOKEN_EOF
	TOKEN_ILLEGAL
)

// Token represents a single lexer token.
type Token struct {
	Type    TokenType
	Literal string
	Num     int64 // value of a TOKEN_NUMBER
	Pos     int   // byte offset in the input
}

// String renders the token the way error messages quote it,
// e.g. Number(12), Ident(days), Plus, Eof.
func (t Token) String() string {
	switch t.Type {
	case TOKEN_NUMBER:
		return fmt.Sprintf("Number(%d)", t.Num)
	case TOKEN_IDENT:
		return fmt.Sprintf("Ident(%s)", t.Literal)
	case TOKEN_PLUS:
		return "Plus"
	case TOKEN_MINUS:
		return "Minus"
	case TOKEN_COLON:
		return "Colon"
	case TOKEN_SLASH:
		return "Slash"
	case TOKEN_EOF:
		return "Eof"
	default:
		return "Illegal"
	}
}
