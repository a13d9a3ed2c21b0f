package lang

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// fixedNow is Saturday 2025-09-27 10:15 UTC.
var fixedNow = time.Date(2025, 9, 27, 10, 15, 0, 0, time.UTC)

func fixedEvaluator() *Evaluator {
	return NewEvaluator(WithClock(FixedClock(fixedNow)))
}

func TestEvalLine(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025/09/27", "2025-09-27"},
		{"2025/9/7", "2025-09-07"},
		{"2025/09/27 + 2d", "2025-09-29"},
		{"2025/09/27 - 2 days", "2025-09-25"},
		{"2025/12/31 + 1 day", "2026-01-01"},
		{"2024/02/28 + 1d", "2024-02-29"},
		{"2025/09/27 + 36h", "2025-09-28"},
		{"2025/09/27 - 36h", "2025-09-26"},
		{"2025/09/27 + 1 month", "2025-10-27"},
		{"2025/09/27 + 1y", "2026-09-27"},
		{"2024/01/01 + 1 year", "2024-12-31"},
		{"2025/09/29 - 2025/09/27", "48h0m0s"},
		{"2025/09/27 - 2025/09/29", "-48h0m0s"},
		{"2025/09/27 14:30", "2025-09-27 14:30 +00:00"},
		{"2025/09/27 14:30 + 90m", "2025-09-27 16:00 +00:00"},
		{"2025/09/27 23:30 + 1h", "2025-09-28 00:30 +00:00"},
		{"2025/09/27 14:30 - 45s", "2025-09-27 14:29:15 +00:00"},
		{"14:30", "14:30"},
		{"2am", "02:00"},
		{"2am - 30m", "01:30"},
		{"12am", "00:00"},
		{"12pm + 15m", "12:15"},
		{"23:30 + 1h", "00:30"},
		{"00:15 - 30m", "23:45"},
		{"12:00 + 2 days", "12:00"},
		{"1am - 25h", "00:00"},
		{"9:00 + 30s", "09:00:30"},
		{"2d", "48h0m0s"},
		{"1 month", "720h0m0s"},
		{"1y", "8760h0m0s"},
		{"1h + 30m", "1h30m0s"},
		{"1h - 2h", "-1h0m0s"},
		{"5 seconds", "5s"},
		{"2d - 1d + 3h", "27h0m0s"},
	}

	e := fixedEvaluator()
	for _, tt := range tests {
		val, err := e.EvalLine(tt.input)
		if err != nil {
			t.Errorf("EvalLine(%q) error: %v", tt.input, err)
			continue
		}
		if got := val.String(); got != tt.want {
			t.Errorf("EvalLine(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		typeName string
	}{
		{"today", "2025-09-27", "Date"},
		{"tomorrow", "2025-09-28", "Date"},
		{"yesterday", "2025-09-26", "Date"},
		{"now", "2025-09-27 10:15 +00:00", "DateTime"},
		{"now + 90m", "2025-09-27 11:45 +00:00", "DateTime"},
		{"tomorrow - today", "24h0m0s", "Duration"},
		{"today + 1 week", "", ""},
	}

	e := fixedEvaluator()
	for _, tt := range tests {
		val, err := e.EvalLine(tt.input)
		if tt.want == "" {
			if err == nil {
				t.Errorf("EvalLine(%q) expected error, got %v", tt.input, val)
			}
			continue
		}
		if err != nil {
			t.Errorf("EvalLine(%q) error: %v", tt.input, err)
			continue
		}
		if val.String() != tt.want || val.TypeName() != tt.typeName {
			t.Errorf("EvalLine(%q) = %s %q, want %s %q", tt.input, val.TypeName(), val.String(), tt.typeName, tt.want)
		}
	}
}

// A date plus hours stays a Date; sub-day durations are dropped.
func TestTodayPlusHoursIsDate(t *testing.T) {
	e := fixedEvaluator()
	for _, input := range []string{"today + 2h", "today - 2h", "today + 23h"} {
		val, err := e.EvalLine(input)
		if err != nil {
			t.Fatalf("EvalLine(%q) error: %v", input, err)
		}
		if _, ok := val.(DateValue); !ok {
			t.Errorf("EvalLine(%q) = %T, want DateValue", input, val)
		}
		if val.String() != "2025-09-27" {
			t.Errorf("EvalLine(%q) = %q, want 2025-09-27", input, val.String())
		}
	}

	// Against the wall clock the result still has the Date shape.
	got, err := Evaluate("today + 2h")
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if len(got) != len("2006-01-02") || strings.Count(got, "-") != 2 {
		t.Errorf("Evaluate(today + 2h) = %q, want YYYY-MM-DD", got)
	}
}

func TestClockConvertedToUTC(t *testing.T) {
	zone := time.FixedZone("CEST", 2*3600)
	e := NewEvaluator(WithClock(FixedClock(time.Date(2025, 9, 28, 1, 30, 0, 0, zone))))
	val, err := e.EvalLine("now")
	if err != nil {
		t.Fatalf("EvalLine error: %v", err)
	}
	if got := val.String(); got != "2025-09-27 23:30 +00:00" {
		t.Errorf("now = %q, want 2025-09-27 23:30 +00:00", got)
	}
	val, _ = e.EvalLine("today")
	if got := val.String(); got != "2025-09-27" {
		t.Errorf("today = %q, want the UTC date 2025-09-27", got)
	}
}

func TestNowSubSecond(t *testing.T) {
	e := NewEvaluator(WithClock(ClockFunc(func() time.Time {
		return time.Date(2025, 9, 27, 10, 15, 30, 500000000, time.UTC)
	})))
	val, err := e.EvalLine("now")
	if err != nil {
		t.Fatalf("EvalLine error: %v", err)
	}
	if got := val.String(); got != "2025-09-27 10:15:30.5 +00:00" {
		t.Errorf("now = %q", got)
	}
}

func TestWithNilClockKeepsDefault(t *testing.T) {
	e := NewEvaluator(WithClock(nil))
	if e.clock == nil {
		t.Fatal("WithClock(nil) cleared the clock")
	}
	if _, err := e.EvalLine("now"); err != nil {
		t.Errorf("now error: %v", err)
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  EvalErrorKind
		msg   string
	}{
		{"2025/09/27 + 2025/09/28", InvalidOp, "invalid operation '+' for 'Date' and 'Date'"},
		{"2d + 2025/09/27", InvalidOp, "invalid operation '+' for 'Duration' and 'Date'"},
		{"12:00 - 2025/09/27", InvalidOp, "invalid operation '-' for 'Time' and 'Date'"},
		{"12:00 + 13:00", InvalidOp, "invalid operation '+' for 'Time' and 'Time'"},
		{"now - now", InvalidOp, "invalid operation '-' for 'DateTime' and 'DateTime'"},
		{"today - now", InvalidOp, "invalid operation '-' for 'Date' and 'DateTime'"},
		{"2d - today", InvalidOp, "invalid operation '-' for 'Duration' and 'Date'"},
		{"2025/02/29", InvalidDate, "invalid date '2025-2-29'"},
		{"2025/13/01", InvalidMonth, "invalid month '13'"},
		{"2025/13/01 + 2025/02/30", InvalidMonth, "invalid month '13'"},
		{"25:00", InvalidTime, "invalid time '25:0:0'"},
		{"12:60", InvalidTime, "invalid time '12:60:0'"},
		{"2025/09/27 24:00", InvalidTime, "invalid time '24:0:0'"},
		{"10000/01/01", InvalidDate, "invalid date '10000-1-1'"},
		{"9223372036854775807 m", DurationOverflow, "duration out of range"},
		{"9223372036854775807 s + 1s", DurationOverflow, "duration out of range"},
		{"0s - 9223372036854775807 s - 2s", DurationOverflow, "duration out of range"},
		{"2025/01/01 + 9223372036854775807 s", OutOfRange, "date out of range"},
		{"2025/09/27 12:00 - 9223372036854775807 s", OutOfRange, "date out of range"},
		{"0001/01/01 - 20000 years", OutOfRange, "date out of range"},
		{"9999/12/31 + 1d", OutOfRange, "date out of range"},
		{"9999/12/31 23:00 + 2h", OutOfRange, "date out of range"},
	}

	e := fixedEvaluator()
	for _, tt := range tests {
		_, err := e.EvalLine(tt.input)
		if err == nil {
			t.Errorf("EvalLine(%q) expected error", tt.input)
			continue
		}
		var ee *EvalError
		if !errors.As(err, &ee) {
			t.Errorf("EvalLine(%q) error %v, want *EvalError", tt.input, err)
			continue
		}
		if ee.Kind != tt.kind {
			t.Errorf("EvalLine(%q) kind = %d, want %d (%v)", tt.input, ee.Kind, tt.kind, ee)
		}
		if ee.Error() != tt.msg {
			t.Errorf("EvalLine(%q) error = %q, want %q", tt.input, ee.Error(), tt.msg)
		}
	}
}

// Durations cover every span between two representable dates.
func TestLongSpans(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		typeName string
	}{
		{"0001/01/01 - 9999/12/31", "-87649392h0m0s", "Duration"},
		{"9999/12/31 - 0001/01/01", "87649392h0m0s", "Duration"},
		{"2025/09/27 - 1700/01/01", "2855352h0m0s", "Duration"},
		{"1000 years", "8760000h0m0s", "Duration"},
		{"106752 days", "2562048h0m0s", "Duration"},
		{"9223372036854775807 s", "2562047788015215h30m7s", "Duration"},
		{"2025/01/01 + 1000 years", "3024-05-04", "Date"},
		{"2025/01/01 + 300 years", "2324-10-21", "Date"},
		{"today - 400y", "1626-01-02", "Date"},
		{"2025/09/27 12:00 + 110000 days", "2326-11-29 12:00 +00:00", "DateTime"},
		{"12:00 + 1000 years", "12:00", "Time"},
		{"12:00 + 100001 h", "05:00", "Time"},
		{"12:00 - 100001 h", "19:00", "Time"},
	}

	e := fixedEvaluator()
	for _, tt := range tests {
		val, err := e.EvalLine(tt.input)
		if err != nil {
			t.Errorf("EvalLine(%q) error: %v", tt.input, err)
			continue
		}
		if got := val.String(); got != tt.want {
			t.Errorf("EvalLine(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if got := val.TypeName(); got != tt.typeName {
			t.Errorf("EvalLine(%q) type = %q, want %q", tt.input, got, tt.typeName)
		}
	}
}

func TestEvalUnsupportedNode(t *testing.T) {
	_, err := Eval(nil)
	var ee *EvalError
	if !errors.As(err, &ee) || ee.Kind != UnsupportedNode {
		t.Errorf("Eval(nil) error = %v, want UnsupportedNode", err)
	}
}

// Every valid calendar date renders back as zero-padded YYYY-MM-DD.
func TestDateRoundTrip(t *testing.T) {
	e := fixedEvaluator()
	start := time.Date(1999, 12, 25, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		input := strings.Join([]string{
			strconv.Itoa(d.Year()), strconv.Itoa(int(d.Month())), strconv.Itoa(d.Day()),
		}, "/")
		got, err := e.Evaluate(input)
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", input, err)
		}
		if want := d.Format("2006-01-02"); got != want {
			t.Fatalf("Evaluate(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEvaluatorConcurrentUse(t *testing.T) {
	e := fixedEvaluator()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := e.Evaluate("tomorrow + 2d")
				if err != nil || got != "2025-09-30" {
					t.Errorf("Evaluate = %q, %v", got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
