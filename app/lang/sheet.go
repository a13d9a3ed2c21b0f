package lang

import "strings"

// CachedLine holds the cached state for a single line.
type CachedLine struct {
	Text      string
	Result    EvalResult
	UsesClock bool // line references today, now, tomorrow or yesterday
	IsEmpty   bool // line was blank or comment
}

// EvalResult is the result of evaluating a single line.
type EvalResult struct {
	Text  string // formatted result or error message
	IsErr bool
}

// Sheet evaluates a scratchpad of independent lines, reusing cached results
// for lines whose text did not change. Lines never refer to each other.
// A Sheet is not safe for concurrent use.
type Sheet struct {
	Lines []CachedLine
	eval  *Evaluator
}

// NewSheet returns an empty sheet evaluating with e, or with the system
// clock when e is nil.
func NewSheet(e *Evaluator) *Sheet {
	if e == nil {
		e = defaultEvaluator
	}
	return &Sheet{eval: e}
}

// UsesClock reports whether evaluating node reads the clock.
func UsesClock(node Node) bool {
	switch n := node.(type) {
	case *KeywordRef:
		return true
	case *BinaryExpr:
		return UsesClock(n.Left) || UsesClock(n.Right)
	default:
		return false
	}
}

// IsCommentOrBlank reports whether a line holds no expression.
func IsCommentOrBlank(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "//")
}

// EvalAll evaluates lines incrementally. clockTicked marks that the wall
// clock advanced since the previous call, which invalidates every line that
// reads it.
func (s *Sheet) EvalAll(lines []string, clockTicked bool) []EvalResult {
	if s.eval == nil {
		s.eval = defaultEvaluator
	}
	results := make([]EvalResult, len(lines))

	// Full reset when line count changes
	if len(lines) != len(s.Lines) {
		s.Lines = make([]CachedLine, len(lines))
		for i := range s.Lines {
			s.Lines[i].Text = "\x00" // force dirty
		}
	}

	for i, line := range lines {
		cached := &s.Lines[i]
		dirty := cached.Text != line || (clockTicked && cached.UsesClock)
		if !dirty {
			results[i] = cached.Result
			continue
		}

		cached.Text = line
		cached.IsEmpty = IsCommentOrBlank(line)
		cached.UsesClock = false
		if cached.IsEmpty {
			cached.Result = EvalResult{}
			results[i] = cached.Result
			continue
		}

		node, err := ParseLine(line)
		if err != nil {
			cached.Result = EvalResult{Text: err.Error(), IsErr: true}
			results[i] = cached.Result
			continue
		}
		cached.UsesClock = UsesClock(node)

		val, err := s.eval.Eval(node)
		if err != nil {
			cached.Result = EvalResult{Text: err.Error(), IsErr: true}
		} else {
			cached.Result = EvalResult{Text: val.String()}
		}
		results[i] = cached.Result
	}

	return results
}
