package lang

import "time"

// Clock supplies the current instant for today, now, tomorrow and yesterday.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(e *Evaluator) {
		if c != nil {
			e.clock = c
		}
	}
}

// Evaluator reduces AST nodes to values. It holds no mutable state and is
// safe for concurrent use.
type Evaluator struct {
	clock Clock
}

// NewEvaluator returns an evaluator reading the system clock unless
// configured otherwise.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{clock: SystemClock}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEvaluator = NewEvaluator()

// Eval evaluates an AST node against the system clock.
func Eval(node Node) (Value, error) {
	return defaultEvaluator.Eval(node)
}

// Eval evaluates an AST node.
func (e *Evaluator) Eval(node Node) (Value, error) {
	switch n := node.(type) {
	case *DateLit:
		return NewDate(int64(n.Year), n.Month, n.Day)

	case *DateTimeLit:
		d, err := NewDate(int64(n.Year), n.Month, n.Day)
		if err != nil {
			return nil, err
		}
		tod, err := NewTime(n.Hour, n.Minute, 0)
		if err != nil {
			return nil, err
		}
		return DateTimeValue{t: d.t.Add(tod.sinceMidnight)}, nil

	case *TimeLit:
		return NewTime(n.Hour, n.Minute, 0)

	case *DurationLit:
		d, err := scaleDuration(n.Magnitude, n.Unit.Elapsed())
		if err != nil {
			return nil, err
		}
		return d, nil

	case *KeywordRef:
		return e.evalKeyword(n.Keyword)

	case *BinaryExpr:
		left, err := e.Eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.Eval(n.Right)
		if err != nil {
			return nil, err
		}
		if n.Op == OpSub {
			return valSub(left, right)
		}
		return valAdd(left, right)

	default:
		return nil, &EvalError{Kind: UnsupportedNode}
	}
}

func (e *Evaluator) evalKeyword(k Keyword) (Value, error) {
	now := e.clock.Now().UTC()
	if k == KeywordNow {
		return DateTimeValue{t: now}, nil
	}
	today := DateOf(now)
	switch k {
	case KeywordTomorrow:
		return today.addDays(1)
	case KeywordYesterday:
		return today.addDays(-1)
	default:
		return today, nil
	}
}
