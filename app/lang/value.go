package lang

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	minYear = -9999
	maxYear = 9999

	secondsPerDay = int64(day / time.Second)
	nanosPerSec   = int64(time.Second)

	// maxDaySpan bounds day offsets well beyond the distance between
	// minYear and maxYear so calendar arithmetic cannot overflow.
	maxDaySpan = 20000 * 366
)

// Value is the result of evaluating an expression. It is one of DateValue,
// DateTimeValue, DurationValue or TimeValue; all of them are immutable.
type Value interface {
	// TypeName is the name used in error messages: Date, DateTime, Duration or Time.
	TypeName() string
	String() string
	valueTag()
}

// DateValue is a calendar date without a time of day.
type DateValue struct {
	t time.Time // midnight UTC
}

// DateTimeValue is an instant with a fixed UTC offset.
type DateTimeValue struct {
	t time.Time
}

// DurationValue is a signed amount of elapsed time. It is kept as whole
// seconds plus a nanosecond part of the same sign, which covers any span
// between two representable dates.
type DurationValue struct {
	secs  int64
	nanos int32 // |nanos| < 1e9
}

// TimeValue is a time of day, kept as the elapsed time since midnight.
type TimeValue struct {
	sinceMidnight time.Duration
}

func (DateValue) valueTag()     {}
func (DateTimeValue) valueTag() {}
func (DurationValue) valueTag() {}
func (TimeValue) valueTag()     {}

func (DateValue) TypeName() string     { return "Date" }
func (DateTimeValue) TypeName() string { return "DateTime" }
func (DurationValue) TypeName() string { return "Duration" }
func (TimeValue) TypeName() string     { return "Time" }

// NewDate validates a calendar date.
func NewDate(year int64, month, dayOfMonth int) (DateValue, error) {
	if month < 1 || month > 12 {
		return DateValue{}, &EvalError{Kind: InvalidMonth, Month: month}
	}
	if year < minYear || year > maxYear || dayOfMonth < 1 || dayOfMonth > daysIn(int(year), time.Month(month)) {
		return DateValue{}, &EvalError{Kind: InvalidDate, Year: year, Month: month, Day: dayOfMonth}
	}
	return DateValue{t: time.Date(int(year), time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)}, nil
}

// NewTime validates a time of day on the 24-hour clock.
func NewTime(hour, minute, second int) (TimeValue, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeValue{}, &EvalError{Kind: InvalidTime, Hour: hour, Minute: minute, Second: second}
	}
	d := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
	return TimeValue{sinceMidnight: d}, nil
}

// NewDateTime wraps an instant; its location supplies the offset.
func NewDateTime(t time.Time) DateTimeValue {
	return DateTimeValue{t: t}
}

// NewDuration wraps an elapsed time.
func NewDuration(d time.Duration) DurationValue {
	return DurationValue{secs: int64(d / time.Second), nanos: int32(d % time.Second)}
}

// NewDurationSeconds builds a duration from whole seconds and a nanosecond
// adjustment of either sign.
func NewDurationSeconds(secs, nanos int64) (DurationValue, error) {
	return normalizeDuration(secs, nanos)
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) DateValue {
	return DateValue{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time returns the date as midnight UTC.
func (v DateValue) Time() time.Time { return v.t }

// Time returns the instant.
func (v DateTimeValue) Time() time.Time { return v.t }

// Seconds returns the whole seconds of the duration, truncated toward zero.
func (v DurationValue) Seconds() int64 { return v.secs }

// Nanoseconds returns the sub-second part, with the sign of Seconds.
func (v DurationValue) Nanoseconds() int32 { return v.nanos }

// wholeDays truncates toward zero, so a date plus a few hours is the same date.
func (v DurationValue) wholeDays() int64 { return v.secs / secondsPerDay }

// withinDay returns the part of the duration left after whole days.
func (v DurationValue) withinDay() time.Duration {
	return time.Duration(v.secs%secondsPerDay)*time.Second + time.Duration(v.nanos)
}

// SinceMidnight returns the time of day as elapsed time since 00:00.
func (v TimeValue) SinceMidnight() time.Duration { return v.sinceMidnight }

func (v DateValue) String() string {
	return formatDate(v.t)
}

func (v TimeValue) String() string {
	d := v.sinceMidnight
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	ns := int(d % time.Second)
	return formatClock(h, m, s, ns)
}

func (v DateTimeValue) String() string {
	t := v.t
	_, offset := t.Zone()
	return formatDate(t) + " " + formatClock(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()) + " " + formatOffset(offset)
}

// String follows time.Duration's layout ("48h0m0s", "1m30s", "1.5s") but
// hours are unbounded.
func (v DurationValue) String() string {
	if v.secs == 0 {
		return time.Duration(v.nanos).String()
	}

	var b strings.Builder
	secs, nanos := uint64(v.secs), v.nanos
	if v.secs < 0 {
		b.WriteByte('-')
		secs, nanos = -secs, -nanos
	}
	h, m, sec := secs/3600, secs%3600/60, secs%60
	if h > 0 {
		fmt.Fprintf(&b, "%dh", h)
	}
	if h > 0 || m > 0 {
		fmt.Fprintf(&b, "%dm", m)
	}
	fmt.Fprintf(&b, "%d", sec)
	if nanos != 0 {
		b.WriteString("." + strings.TrimRight(fmt.Sprintf("%09d", nanos), "0"))
	}
	b.WriteByte('s')
	return b.String()
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// formatClock renders HH:MM, adding :SS only for non-zero seconds and a
// fraction only for non-zero nanoseconds.
func formatClock(h, m, s, ns int) string {
	if s == 0 && ns == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	if ns == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", ns), "0")
	return fmt.Sprintf("%02d:%02d:%02d.%s", h, m, s, frac)
}

// formatOffset renders a UTC offset in seconds as +00:00, ±HH:MM or ±HH:MM:SS.
func formatOffset(offset int) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	h := offset / 3600
	m := offset % 3600 / 60
	s := offset % 60
	if s != 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}

// Arithmetic on Values. The operator table is deliberately asymmetric:
// a duration may be added to a date, never a date to a duration, and only
// two dates may be subtracted from each other.

func valAdd(a, b Value) (Value, error) {
	switch l := a.(type) {
	case DateValue:
		if r, ok := b.(DurationValue); ok {
			return l.addDays(r.wholeDays())
		}
	case DateTimeValue:
		if r, ok := b.(DurationValue); ok {
			return l.add(r)
		}
	case TimeValue:
		if r, ok := b.(DurationValue); ok {
			return l.shift(r.withinDay()), nil
		}
	case DurationValue:
		if r, ok := b.(DurationValue); ok {
			return l.add(r)
		}
	}
	return nil, invalidOp(OpAdd, a, b)
}

func valSub(a, b Value) (Value, error) {
	switch l := a.(type) {
	case DateValue:
		switch r := b.(type) {
		case DurationValue:
			return l.addDays(-r.wholeDays())
		case DateValue:
			return l.sub(r), nil
		}
	case DateTimeValue:
		if r, ok := b.(DurationValue); ok {
			neg, err := r.neg()
			if err != nil {
				return nil, err
			}
			return l.add(neg)
		}
	case TimeValue:
		if r, ok := b.(DurationValue); ok {
			return l.shift(-r.withinDay()), nil
		}
	case DurationValue:
		if r, ok := b.(DurationValue); ok {
			neg, err := r.neg()
			if err != nil {
				return nil, err
			}
			return l.add(neg)
		}
	}
	return nil, invalidOp(OpSub, a, b)
}

func invalidOp(op Op, a, b Value) error {
	return &EvalError{Kind: InvalidOp, Op: op, Left: a.TypeName(), Right: b.TypeName()}
}

func checkYear(t time.Time) error {
	if t.Year() < minYear || t.Year() > maxYear {
		return &EvalError{Kind: OutOfRange}
	}
	return nil
}

func (v DateValue) addDays(n int64) (Value, error) {
	if n > maxDaySpan || n < -maxDaySpan {
		return nil, &EvalError{Kind: OutOfRange}
	}
	t := v.t.AddDate(0, 0, int(n))
	if err := checkYear(t); err != nil {
		return nil, err
	}
	return DateValue{t: t}, nil
}

// sub never overflows: dates span at most a few million days.
func (v DateValue) sub(other DateValue) DurationValue {
	return DurationValue{secs: v.t.Unix() - other.t.Unix()}
}

// add steps whole days on the calendar, then the remainder as elapsed time.
func (v DateTimeValue) add(d DurationValue) (Value, error) {
	days := d.wholeDays()
	if days > maxDaySpan || days < -maxDaySpan {
		return nil, &EvalError{Kind: OutOfRange}
	}
	t := v.t.AddDate(0, 0, int(days)).Add(d.withinDay())
	if err := checkYear(t); err != nil {
		return nil, err
	}
	return DateTimeValue{t: t}, nil
}

// shift moves the time of day by less than a day in either direction,
// wrapping around midnight.
func (v TimeValue) shift(d time.Duration) TimeValue {
	return TimeValue{sinceMidnight: ((v.sinceMidnight+d)%day + day) % day}
}

func (v DurationValue) add(o DurationValue) (Value, error) {
	secs := v.secs + o.secs
	if (o.secs > 0 && secs < v.secs) || (o.secs < 0 && secs > v.secs) {
		return nil, &EvalError{Kind: DurationOverflow}
	}
	sum, err := normalizeDuration(secs, int64(v.nanos)+int64(o.nanos))
	if err != nil {
		return nil, err
	}
	return sum, nil
}

func (v DurationValue) neg() (DurationValue, error) {
	if v.secs == math.MinInt64 {
		return DurationValue{}, &EvalError{Kind: DurationOverflow}
	}
	return DurationValue{secs: -v.secs, nanos: -v.nanos}, nil
}

// normalizeDuration carries whole seconds out of nanos and gives both parts
// the same sign.
func normalizeDuration(secs, nanos int64) (DurationValue, error) {
	carry := nanos / nanosPerSec
	nanos %= nanosPerSec
	if (carry > 0 && secs > math.MaxInt64-carry) || (carry < 0 && secs < math.MinInt64-carry) {
		return DurationValue{}, &EvalError{Kind: DurationOverflow}
	}
	secs += carry
	switch {
	case secs > 0 && nanos < 0:
		secs--
		nanos += nanosPerSec
	case secs < 0 && nanos > 0:
		secs++
		nanos -= nanosPerSec
	}
	return DurationValue{secs: secs, nanos: int32(nanos)}, nil
}

// scaleDuration returns n units, failing when the product leaves the
// range of int64 seconds.
func scaleDuration(n int64, unit time.Duration) (DurationValue, error) {
	unitSecs := int64(unit / time.Second)
	if n > math.MaxInt64/unitSecs || n < math.MinInt64/unitSecs {
		return DurationValue{}, &EvalError{Kind: DurationOverflow}
	}
	return DurationValue{secs: n * unitSecs}, nil
}
