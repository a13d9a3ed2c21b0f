package lang

import (
	"fmt"
	"iter"
	"math"
)

const hoursInHalfDay = 12

// Parser holds the state for parsing a token stream with one token of lookahead.
type Parser struct {
	next   func() (Token, bool)
	tok    Token
	peeked bool
}

// Parse parses a token sequence into an AST node.
//
// Grammar:
//
//	expr     := primary (('+' | '-') primary)* EOF
//	primary  := datetime | time | duration | keyword
//	datetime := NUMBER '/' NUMBER '/' NUMBER (NUMBER ':' NUMBER)?
//	time     := NUMBER ':' NUMBER | NUMBER ('am' | 'pm')
//	duration := NUMBER IDENT
//	keyword  := IDENT
func Parse(tokens iter.Seq[Token]) (Node, error) {
	next, stop := iter.Pull(tokens)
	defer stop()

	p := &Parser{next: next}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	// Make sure we consumed everything
	switch tok := p.peek(); tok.Type {
	case TOKEN_EOF:
		return node, nil
	case TOKEN_IDENT:
		return nil, &ParseError{Kind: UnexpectedIdent, Text: tok.Literal}
	default:
		return nil, &ParseError{Kind: UnexpectedToken, Token: tok}
	}
}

// ParseLine lexes and parses a single line without evaluating it.
func ParseLine(line string) (Node, error) {
	return Parse(Tokens(line))
}

func (p *Parser) peek() Token {
	if !p.peeked {
		tok, ok := p.next()
		if !ok {
			tok = Token{Type: TOKEN_EOF}
		}
		p.tok = tok
		p.peeked = true
	}
	return p.tok
}

func (p *Parser) advance() Token {
	t := p.peek()
	p.peeked = false
	return t
}

// parseExpression: primary ( ("+" | "-") primary )*
func (p *Parser) parseExpression() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TOKEN_PLUS || p.peek().Type == TOKEN_MINUS {
		op := OpAdd
		if p.advance().Type == TOKEN_MINUS {
			op = OpSub
		}
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// parsePrimary: number-led literal | keyword
func (p *Parser) parsePrimary() (Node, error) {
	tok := p.peek()

	switch tok.Type {
	case TOKEN_NUMBER:
		return p.parseNumber()
	case TOKEN_IDENT:
		return p.parseKeyword()
	case TOKEN_EOF:
		return nil, &ParseError{Kind: UnexpectedEndOfInput}
	default:
		return nil, &ParseError{Kind: UnexpectedToken, Token: tok}
	}
}

func (p *Parser) parseKeyword() (Node, error) {
	tok := p.advance()
	if tok.Type != TOKEN_IDENT {
		return nil, &ParseError{Kind: ExpectedIdent}
	}
	kw, ok := LookupKeyword(tok.Literal)
	if !ok {
		return nil, &ParseError{Kind: UnknownKeyword, Text: tok.Literal}
	}
	return &KeywordRef{Keyword: kw}, nil
}

// parseNumber decides what a leading number starts by looking at the token
// right after it.
func (p *Parser) parseNumber() (Node, error) {
	first, err := p.expectNumber()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	switch tok.Type {
	case TOKEN_SLASH:
		return p.parseDate(first)
	case TOKEN_COLON:
		return p.parseTime(first)
	case TOKEN_IDENT:
		if IsMeridiem(tok.Literal) {
			p.advance() // consume am/pm
			return clockHour(first, tok.Literal == "pm")
		}
		return p.parseDuration(first)
	case TOKEN_EOF:
		return nil, &ParseError{Kind: UnexpectedEndOfInput}
	default:
		return nil, &ParseError{Kind: UnexpectedToken, Token: tok}
	}
}

// clockHour converts a 12-hour clock hour into a 24-hour time literal.
func clockHour(hour int64, pm bool) (Node, error) {
	switch {
	case hour >= 1 && hour < hoursInHalfDay:
		if pm {
			hour += hoursInHalfDay
		}
		return &TimeLit{Hour: int(hour)}, nil
	case hour == hoursInHalfDay:
		if pm {
			return &TimeLit{Hour: hoursInHalfDay}, nil
		}
		return &TimeLit{Hour: 0}, nil
	}
	suffix := "am"
	if pm {
		suffix = "pm"
	}
	return nil, &ParseError{Kind: InvalidClockTime, Text: fmt.Sprintf("%d %s", hour, suffix)}
}

// parseDate: NUMBER "/" NUMBER "/" NUMBER ( NUMBER ":" NUMBER )?
func (p *Parser) parseDate(year int64) (Node, error) {
	if year > math.MaxUint32 {
		return nil, &ParseError{Kind: InvalidYear, Num: year}
	}
	if err := p.expect(TOKEN_SLASH, ExpectedSlash); err != nil {
		return nil, err
	}
	month, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOKEN_SLASH, ExpectedSlash); err != nil {
		return nil, err
	}
	dayOfMonth, err := p.expectNumber()
	if err != nil {
		return nil, err
	}

	if p.peek().Type != TOKEN_NUMBER {
		return &DateLit{Year: uint32(year), Month: narrow(month), Day: narrow(dayOfMonth)}, nil
	}

	hour, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOKEN_COLON, ExpectedColon); err != nil {
		return nil, err
	}
	minute, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	return &DateTimeLit{
		Year:   uint32(year),
		Month:  narrow(month),
		Day:    narrow(dayOfMonth),
		Hour:   narrow(hour),
		Minute: narrow(minute),
	}, nil
}

// parseTime: NUMBER ":" NUMBER
func (p *Parser) parseTime(hour int64) (Node, error) {
	if err := p.expect(TOKEN_COLON, ExpectedColon); err != nil {
		return nil, err
	}
	minute, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	return &TimeLit{Hour: narrow(hour), Minute: narrow(minute)}, nil
}

// parseDuration: NUMBER IDENT
func (p *Parser) parseDuration(magnitude int64) (Node, error) {
	tok := p.advance()
	if tok.Type != TOKEN_IDENT {
		return nil, &ParseError{Kind: ExpectedUnit}
	}
	u, ok := LookupUnit(tok.Literal)
	if !ok {
		return nil, &ParseError{Kind: UnknownUnit, Text: tok.Literal}
	}
	return &DurationLit{Magnitude: magnitude, Unit: u}, nil
}

// expect consumes a token of type want. At end of input it reports
// missing, otherwise the offending token.
func (p *Parser) expect(want TokenType, missing ParseErrorKind) error {
	tok := p.advance()
	switch tok.Type {
	case want:
		return nil
	case TOKEN_EOF:
		return &ParseError{Kind: missing}
	default:
		return &ParseError{Kind: UnexpectedToken, Token: tok}
	}
}

func (p *Parser) expectNumber() (int64, error) {
	tok := p.advance()
	if tok.Type != TOKEN_NUMBER {
		return 0, &ParseError{Kind: ExpectedNumber}
	}
	return tok.Num, nil
}

// narrow clamps a calendar or clock field into int range. Anything this
// large is rejected by the evaluator's range checks anyway.
func narrow(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
