package main

import (
	"image/color"
	"strings"

	"tcalc/app/lang"
)

// TokenKind represents the category of a syntax token.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenKeyword
	TokenNumber
	TokenComment
	TokenOperator
	TokenSeparator
	TokenUnit
	TokenMeridiem
	TokenIllegal
)

// Token is a span of text with a syntax category.
type Token struct {
	Text string
	Kind TokenKind
}

// tokenColors maps token kinds to colors. Dark-theme oriented.
var tokenColors = map[TokenKind]color.NRGBA{
	TokenPlain:     {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	TokenKeyword:   {R: 0x56, G: 0x9C, B: 0xD6, A: 0xFF}, // blue
	TokenNumber:    {R: 0xB5, G: 0xCE, B: 0xA8, A: 0xFF}, // green
	TokenComment:   {R: 0x6A, G: 0x99, B: 0x55, A: 0xFF}, // dark green
	TokenOperator:  {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	TokenSeparator: {R: 0xB5, G: 0xCE, B: 0xA8, A: 0xFF}, // same as numbers, dates read as one unit
	TokenUnit:      {R: 0x4E, G: 0xC9, B: 0xB0, A: 0xFF}, // teal
	TokenMeridiem:  {R: 0xCE, G: 0x91, B: 0x78, A: 0xFF}, // orange
	TokenIllegal:   {R: 0xF4, G: 0x47, B: 0x47, A: 0xFF}, // red
}

// TokenColor returns the color for a token kind.
func TokenColor(kind TokenKind) color.NRGBA {
	if c, ok := tokenColors[kind]; ok {
		return c
	}
	return tokenColors[TokenPlain]
}

// highlightKind maps a lexer token to a highlight TokenKind.
func highlightKind(t lang.Token) TokenKind {
	switch t.Type {
	case lang.TOKEN_NUMBER:
		return TokenNumber
	case lang.TOKEN_PLUS, lang.TOKEN_MINUS:
		return TokenOperator
	case lang.TOKEN_SLASH, lang.TOKEN_COLON:
		return TokenSeparator
	case lang.TOKEN_ILLEGAL:
		return TokenIllegal
	case lang.TOKEN_IDENT:
		if _, ok := lang.LookupKeyword(t.Literal); ok {
			return TokenKeyword
		}
		if lang.IsMeridiem(t.Literal) {
			return TokenMeridiem
		}
		if _, ok := lang.LookupUnit(t.Literal); ok {
			return TokenUnit
		}
		return TokenPlain
	default:
		return TokenPlain
	}
}

// Tokenize splits a line into highlighted tokens using the lang lexer.
func Tokenize(line string) []Token {
	if line == "" {
		return nil
	}
	if lang.IsCommentOrBlank(line) && strings.TrimSpace(line) != "" {
		return []Token{{Text: line, Kind: TokenComment}}
	}

	var result []Token
	lastEnd := 0

	for _, lt := range lang.Lex(line) {
		if lt.Type == lang.TOKEN_EOF {
			break
		}

		// Add any whitespace/gap before this token
		if lt.Pos > lastEnd {
			result = append(result, Token{
				Text: line[lastEnd:lt.Pos],
				Kind: TokenPlain,
			})
		}

		kind := highlightKind(lt)
		end := lt.Pos + len(lt.Literal)

		// The lexer rejects multi-byte characters one byte at a time; keep
		// the run in one span so the glyph is drawn whole.
		if n := len(result); kind == TokenIllegal && n > 0 && result[n-1].Kind == TokenIllegal && lt.Pos == lastEnd {
			result[n-1].Text += lt.Literal
			lastEnd = end
			continue
		}

		result = append(result, Token{
			Text: lt.Literal,
			Kind: kind,
		})

		lastEnd = end
	}

	// Any trailing text
	if lastEnd < len(line) {
		result = append(result, Token{
			Text: line[lastEnd:],
			Kind: TokenPlain,
		})
	}

	return result
}
