package lang

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSheetEvalAll(t *testing.T) {
	s := NewSheet(fixedEvaluator())
	lines := []string{
		"2025/09/27 + 2d",
		"",
		"// a comment",
		"; another",
		"today",
		"34pm",
		"2025/09/27 + 2025/09/28",
	}
	results := s.EvalAll(lines, false)
	want := []EvalResult{
		{Text: "2025-09-29"},
		{},
		{},
		{},
		{Text: "2025-09-27"},
		{Text: "invalid time '34 pm'", IsErr: true},
		{Text: "invalid operation '+' for 'Date' and 'Date'", IsErr: true},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("line %d (%q) = %+v, want %+v", i, lines[i], results[i], want[i])
		}
	}
	if !s.Lines[1].IsEmpty || !s.Lines[2].IsEmpty || !s.Lines[3].IsEmpty {
		t.Error("blank and comment lines should be marked empty")
	}
	if !s.Lines[4].UsesClock || s.Lines[0].UsesClock {
		t.Error("only the today line should depend on the clock")
	}
}

func TestSheetRefreshesClockLinesOnTick(t *testing.T) {
	var calls atomic.Int64
	now := time.Date(2025, 9, 27, 23, 59, 0, 0, time.UTC)
	clock := ClockFunc(func() time.Time {
		calls.Add(1)
		return now
	})
	s := NewSheet(NewEvaluator(WithClock(clock)))
	lines := []string{"today", "2025/01/01"}

	first := s.EvalAll(lines, false)
	if first[0].Text != "2025-09-27" {
		t.Fatalf("today = %q", first[0].Text)
	}
	if calls.Load() != 1 {
		t.Fatalf("clock read %d times, want 1", calls.Load())
	}

	// Unchanged text without a tick is served from cache.
	now = now.Add(2 * time.Minute)
	cached := s.EvalAll(lines, false)
	if cached[0].Text != "2025-09-27" || calls.Load() != 1 {
		t.Errorf("untick re-eval: today = %q, clock reads = %d", cached[0].Text, calls.Load())
	}

	ticked := s.EvalAll(lines, true)
	if ticked[0].Text != "2025-09-28" {
		t.Errorf("after tick today = %q, want 2025-09-28", ticked[0].Text)
	}
	if ticked[1].Text != "2025-01-01" {
		t.Errorf("static line = %q", ticked[1].Text)
	}
	if calls.Load() != 2 {
		t.Errorf("clock read %d times, want 2", calls.Load())
	}
}

func TestSheetLineEdits(t *testing.T) {
	s := NewSheet(fixedEvaluator())
	s.EvalAll([]string{"1h", "2h"}, false)

	results := s.EvalAll([]string{"1h", "3h"}, false)
	if results[0].Text != "1h0m0s" || results[1].Text != "3h0m0s" {
		t.Errorf("edit results = %+v", results)
	}

	// Line count change resets the cache.
	results = s.EvalAll([]string{"1h", "3h", "4h"}, false)
	if len(s.Lines) != 3 || results[2].Text != "4h0m0s" {
		t.Errorf("after insert: lines=%d results=%+v", len(s.Lines), results)
	}

	// A line that turns into a comment drops its previous result.
	results = s.EvalAll([]string{"1h", "// 3h", "4h"}, false)
	if results[1] != (EvalResult{}) {
		t.Errorf("commented line = %+v, want empty", results[1])
	}
}

func TestSheetZeroValue(t *testing.T) {
	var s Sheet
	results := s.EvalAll([]string{"2d"}, false)
	if results[0].Text != "48h0m0s" {
		t.Errorf("zero-value sheet result = %+v", results[0])
	}
}

func TestUsesClock(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2d", false},
		{"2025/09/27 + 2d", false},
		{"now", true},
		{"2d + 1h - yesterday", true},
	}
	for _, tt := range tests {
		node, err := ParseLine(tt.input)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", tt.input, err)
		}
		if got := UsesClock(node); got != tt.want {
			t.Errorf("UsesClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
