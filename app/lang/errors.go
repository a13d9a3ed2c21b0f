package lang

import (
	"errors"
	"fmt"
)

// ErrParse and ErrEval classify failures by pipeline stage. Every
// *ParseError matches ErrParse and every *EvalError matches ErrEval
// under errors.Is.
var (
	ErrParse = errors.New("failed to parse expression")
	ErrEval  = errors.New("failed to evaluate expression")
)

// ParseErrorKind enumerates grammar failures.
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	UnknownKeyword
	UnknownUnit
	UnexpectedIdent
	UnexpectedEndOfInput
	ExpectedIdent
	ExpectedNumber
	ExpectedSlash
	ExpectedColon
	ExpectedUnit
	InvalidYear
	InvalidClockTime
)

// ParseError is returned by the parser.
type ParseError struct {
	Kind  ParseErrorKind
	Token Token  // UnexpectedToken
	Text  string // UnknownKeyword, UnknownUnit, UnexpectedIdent, InvalidClockTime
	Num   int64  // InvalidYear
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token '%s'", e.Token)
	case UnknownKeyword:
		return fmt.Sprintf("unknown keyword '%s'", e.Text)
	case UnknownUnit:
		return fmt.Sprintf("unknown unit '%s'", e.Text)
	case UnexpectedIdent:
		return fmt.Sprintf("unexpected identifier '%s'", e.Text)
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case ExpectedIdent:
		return "expected identifier"
	case ExpectedNumber:
		return "expected number"
	case ExpectedSlash:
		return "expected slash"
	case ExpectedColon:
		return "expected colon"
	case ExpectedUnit:
		return "expected unit"
	case InvalidYear:
		return fmt.Sprintf("invalid year '%d'", e.Num)
	case InvalidClockTime:
		return fmt.Sprintf("invalid time '%s'", e.Text)
	default:
		return "parse error"
	}
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// EvalErrorKind enumerates semantic failures.
type EvalErrorKind int

const (
	InvalidDate EvalErrorKind = iota
	InvalidMonth
	InvalidTime
	InvalidOp
	DurationOverflow
	OutOfRange
	UnsupportedNode
)

// EvalError is returned by the evaluator.
type EvalError struct {
	Kind EvalErrorKind

	// InvalidDate, InvalidMonth
	Year  int64
	Month int
	Day   int

	// InvalidTime
	Hour   int
	Minute int
	Second int

	// InvalidOp
	Op    Op
	Left  string
	Right string
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case InvalidDate:
		return fmt.Sprintf("invalid date '%d-%d-%d'", e.Year, e.Month, e.Day)
	case InvalidMonth:
		return fmt.Sprintf("invalid month '%d'", e.Month)
	case InvalidTime:
		return fmt.Sprintf("invalid time '%d:%d:%d'", e.Hour, e.Minute, e.Second)
	case InvalidOp:
		return fmt.Sprintf("invalid operation '%s' for '%s' and '%s'", e.Op, e.Left, e.Right)
	case DurationOverflow:
		return "duration out of range"
	case OutOfRange:
		return "date out of range"
	case UnsupportedNode:
		return "unsupported expression"
	default:
		return "evaluation error"
	}
}

func (e *EvalError) Is(target error) bool {
	return target == ErrEval
}
