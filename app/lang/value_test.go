package lang

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		h, m, s, ns int
		want        string
	}{
		{0, 0, 0, 0, "00:00"},
		{9, 5, 0, 0, "09:05"},
		{23, 59, 59, 0, "23:59:59"},
		{1, 2, 3, 120000000, "01:02:03.12"},
		{1, 2, 0, 500000000, "01:02:00.5"},
		{1, 2, 3, 1, "01:02:03.000000001"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.h, tt.m, tt.s, tt.ns); got != tt.want {
			t.Errorf("formatClock(%d, %d, %d, %d) = %q, want %q", tt.h, tt.m, tt.s, tt.ns, got, tt.want)
		}
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "+00:00"},
		{3600, "+01:00"},
		{5*3600 + 30*60, "+05:30"},
		{-8 * 3600, "-08:00"},
		{-(3600 + 1), "-01:00:01"},
	}
	for _, tt := range tests {
		if got := formatOffset(tt.offset); got != tt.want {
			t.Errorf("formatOffset(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{mustDate(t, 2025, 9, 27), "2025-09-27"},
		{mustDate(t, 7, 1, 2), "0007-01-02"},
		{NewDateTime(time.Date(2025, 9, 27, 14, 30, 0, 0, time.UTC)), "2025-09-27 14:30 +00:00"},
		{NewDateTime(time.Date(2025, 9, 27, 14, 30, 15, 0, time.FixedZone("IST", 5*3600+30*60))), "2025-09-27 14:30:15 +05:30"},
		{NewDateTime(time.Date(2025, 9, 27, 14, 30, 0, 250000000, time.FixedZone("", -3600-1))), "2025-09-27 14:30:00.25 -01:00:01"},
		{NewDuration(48 * time.Hour), "48h0m0s"},
		{NewDuration(-90 * time.Minute), "-1h30m0s"},
		{NewDuration(0), "0s"},
		{NewDuration(90 * time.Second), "1m30s"},
		{NewDuration(1500 * time.Millisecond), "1.5s"},
		{NewDuration(-1500 * time.Millisecond), "-1.5s"},
		{NewDuration(250 * time.Millisecond), "250ms"},
		{DurationValue{secs: math.MaxInt64}, "2562047788015215h30m7s"},
		{DurationValue{secs: math.MinInt64}, "-2562047788015215h30m8s"},
		{TimeValue{sinceMidnight: 2*time.Hour + 120*time.Millisecond}, "02:00:00.12"},
	}
	for _, tt := range tests {
		if got := tt.val.String(); got != tt.want {
			t.Errorf("%s.String() = %q, want %q", tt.val.TypeName(), got, tt.want)
		}
	}
}

func TestNewDate(t *testing.T) {
	valid := [][3]int{{2024, 2, 29}, {2000, 2, 29}, {2025, 12, 31}, {0, 1, 1}, {9999, 12, 31}}
	for _, d := range valid {
		if _, err := NewDate(int64(d[0]), d[1], d[2]); err != nil {
			t.Errorf("NewDate(%v) error: %v", d, err)
		}
	}

	tests := []struct {
		year       int64
		month, day int
		kind       EvalErrorKind
		msg        string
	}{
		{2025, 2, 29, InvalidDate, "invalid date '2025-2-29'"},
		{1900, 2, 29, InvalidDate, "invalid date '1900-2-29'"},
		{2025, 4, 31, InvalidDate, "invalid date '2025-4-31'"},
		{2025, 1, 0, InvalidDate, "invalid date '2025-1-0'"},
		{10000, 1, 1, InvalidDate, "invalid date '10000-1-1'"},
		{2025, 13, 1, InvalidMonth, "invalid month '13'"},
		{2025, 0, 1, InvalidMonth, "invalid month '0'"},
	}
	for _, tt := range tests {
		_, err := NewDate(tt.year, tt.month, tt.day)
		var ee *EvalError
		if !errors.As(err, &ee) {
			t.Errorf("NewDate(%d, %d, %d) error = %v, want *EvalError", tt.year, tt.month, tt.day, err)
			continue
		}
		if ee.Kind != tt.kind || err.Error() != tt.msg {
			t.Errorf("NewDate(%d, %d, %d) = %v (kind %d), want %q (kind %d)", tt.year, tt.month, tt.day, err, ee.Kind, tt.msg, tt.kind)
		}
	}
}

func TestNewTime(t *testing.T) {
	if v, err := NewTime(23, 59, 59); err != nil || v.String() != "23:59:59" {
		t.Errorf("NewTime(23, 59, 59) = %v, %v", v, err)
	}
	for _, hms := range [][3]int{{24, 0, 0}, {0, 60, 0}, {0, 0, 60}, {-1, 0, 0}} {
		_, err := NewTime(hms[0], hms[1], hms[2])
		var ee *EvalError
		if !errors.As(err, &ee) || ee.Kind != InvalidTime {
			t.Errorf("NewTime(%v) error = %v, want InvalidTime", hms, err)
		}
	}
}

func TestScaleDuration(t *testing.T) {
	d, err := scaleDuration(10000, 365*day)
	if err != nil || d.Seconds() != 10000*365*86400 {
		t.Errorf("10000 years = %v, %v", d, err)
	}
	if _, err := scaleDuration(math.MaxInt64, time.Second); err != nil {
		t.Errorf("max seconds should fit: %v", err)
	}
	if _, err := scaleDuration(math.MaxInt64/60+1, time.Minute); err == nil {
		t.Error("minutes past the int64 seconds range should overflow")
	}
	if _, err := scaleDuration(math.MinInt64/86400-1, day); err == nil {
		t.Error("negative days past the int64 seconds range should overflow")
	}
}

func TestNewDurationSeconds(t *testing.T) {
	tests := []struct {
		secs, nanos int64
		want        string
	}{
		{1, -250000000, "750ms"},
		{-1, 250000000, "-750ms"},
		{2, 1500000000, "3.5s"},
		{0, -3000000000, "-3s"},
	}
	for _, tt := range tests {
		d, err := NewDurationSeconds(tt.secs, tt.nanos)
		if err != nil {
			t.Errorf("NewDurationSeconds(%d, %d) error: %v", tt.secs, tt.nanos, err)
			continue
		}
		if got := d.String(); got != tt.want {
			t.Errorf("NewDurationSeconds(%d, %d) = %q, want %q", tt.secs, tt.nanos, got, tt.want)
		}
	}
	if _, err := NewDurationSeconds(math.MaxInt64, 1000000000); err == nil {
		t.Error("carrying past the int64 seconds range should overflow")
	}
}

func mustDate(t *testing.T, year int64, month, dayOfMonth int) DateValue {
	t.Helper()
	d, err := NewDate(year, month, dayOfMonth)
	if err != nil {
		t.Fatalf("NewDate(%d, %d, %d): %v", year, month, dayOfMonth, err)
	}
	return d
}
